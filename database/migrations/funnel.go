package migrations

import (
	"akis.link/configs/configslog"
	"akis.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func MigrateFunnelsTables(db *gorm.DB) error {
	configslog.SLog.Info("Migrating funnels, funnel_nodes & funnel_edges tables...")
	err := db.AutoMigrate(&models.Funnel{}, &models.FunnelNode{}, &models.FunnelEdge{})
	if err != nil {
		configslog.Log.Error("Failed to migrate funnel tables", zap.Error(err))
		return err
	}
	configslog.SLog.Info("Funnel tables migrated successfully")
	return nil
}
