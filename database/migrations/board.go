package migrations

import (
	"akis.link/configs/configslog"
	"akis.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func MigrateBoardsTables(db *gorm.DB) error {
	configslog.SLog.Info("Migrating folders, boards, board_columns, board_cards & card_attachments tables...")
	err := db.AutoMigrate(
		&models.Folder{},
		&models.Board{},
		&models.BoardColumn{},
		&models.BoardCard{},
		&models.CardAttachment{},
	)
	if err != nil {
		configslog.Log.Error("Failed to migrate board tables", zap.Error(err))
		return err
	}
	configslog.SLog.Info("Board tables migrated successfully")
	return nil
}
