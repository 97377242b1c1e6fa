package migrations

import (
	"akis.link/configs/configslog"
	"akis.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func MigrateExecutionLogsTable(db *gorm.DB) error {
	configslog.SLog.Info("Migrating ai_flow_execution_logs table...")
	err := db.AutoMigrate(&models.AIFlowExecutionLog{})
	if err != nil {
		configslog.Log.Error("Failed to migrate ai_flow_execution_logs table", zap.Error(err))
		return err
	}
	configslog.SLog.Info("AI flow execution logs table migrated successfully")
	return nil
}
