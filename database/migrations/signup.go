package migrations

import (
	"sofra.link/configs/configslog"
	"sofra.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// MigrateSignupsTable Signup modeli için tabloyu oluşturur/günceller.
// (meal_id, person_id) unique index'i rezervasyon motorunun idempotans
// kontrolünün veritabanı güvencesidir; AutoMigrate model tag'inden üretir.
func MigrateSignupsTable(db *gorm.DB) error {
	configslog.SLog.Info("Migrating signups table...")
	if err := db.AutoMigrate(&models.Signup{}); err != nil {
		configslog.Log.Error("Failed to migrate signups table", zap.Error(err))
		return err
	}
	configslog.SLog.Info("Signups table migrated successfully")
	return nil
}
