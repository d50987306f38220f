package database

import (
	"sofra.link/configs/configslog"
	"sofra.link/database/migrations"
	"sofra.link/database/seeders"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Initialize migrasyonları ve seeder'ları tek bir transaction içinde çalıştırır.
func Initialize(db *gorm.DB, migrate bool, seed bool) {
	if !migrate && !seed {
		configslog.SLog.Info("Migrate veya seed bayrağı belirtilmedi, işlem yapılmayacak.")
		return
	}

	tx := db.Begin()
	if tx.Error != nil {
		configslog.Log.Fatal("Veritabanı transaction başlatılamadı", zap.Error(tx.Error))
		return
	}

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			configslog.Log.Fatal("Veritabanı başlatma işlemi başarısız oldu (panic)", zap.Any("panic_info", r))
		}
	}()

	configslog.SLog.Info("Veritabanı başlatma işlemi başlıyor...")

	if migrate {
		if err := RunMigrationsInOrder(tx); err != nil {
			configslog.Log.Error("Migrasyon başarısız oldu, işlem geri alınıyor", zap.Error(err))
			tx.Rollback()
			return
		}
		configslog.SLog.Info("Migrasyonlar tamamlandı.")
	}

	if seed {
		if err := seeders.SeedDemoData(tx); err != nil {
			configslog.Log.Error("Seeding başarısız oldu, işlem geri alınıyor", zap.Error(err))
			tx.Rollback()
			return
		}
		configslog.SLog.Info("Seeder'lar tamamlandı.")
	}

	if err := tx.Commit().Error; err != nil {
		configslog.Log.Error("Commit başarısız oldu", zap.Error(err))
		return
	}

	configslog.SLog.Info("Veritabanı başlatma işlemi başarıyla tamamlandı")
}

// RunMigrationsInOrder tabloları bağımlılık sırasıyla oluşturur/günceller:
// önce bağımsız aggregate'ler (persons, meals), sonra onlara FK veren signups.
func RunMigrationsInOrder(db *gorm.DB) error {
	configslog.SLog.Info(" -> Person migrasyonları çalıştırılıyor...")
	if err := migrations.MigratePersonsTable(db); err != nil {
		configslog.Log.Error("Persons tablosu migrasyonu başarısız oldu", zap.Error(err))
		return err
	}

	configslog.SLog.Info(" -> Meal migrasyonları çalıştırılıyor...")
	if err := migrations.MigrateMealsTable(db); err != nil {
		configslog.Log.Error("Meals tablosu migrasyonu başarısız oldu", zap.Error(err))
		return err
	}

	configslog.SLog.Info(" -> Signup migrasyonları çalıştırılıyor...")
	if err := migrations.MigrateSignupsTable(db); err != nil {
		configslog.Log.Error("Signups tablosu migrasyonu başarısız oldu", zap.Error(err))
		return err
	}

	configslog.SLog.Info("Tüm migrasyonlar başarıyla çalıştırıldı.")
	return nil
}
