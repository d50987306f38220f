package migrations

import (
	"sofra.link/configs/configslog"
	"sofra.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// MigrateMealsTable Meal modeli için tabloyu oluşturur/günceller.
func MigrateMealsTable(db *gorm.DB) error {
	configslog.SLog.Info("Migrating meals table...")
	if err := db.AutoMigrate(&models.Meal{}); err != nil {
		configslog.Log.Error("Failed to migrate meals table", zap.Error(err))
		return err
	}
	configslog.SLog.Info("Meals table migrated successfully")
	return nil
}
