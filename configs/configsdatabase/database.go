package configsdatabase

import (
	"fmt"
	"time"

	"sofra.link/configs"
	"sofra.link/configs/configslog"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var db *gorm.DB

// InitDB PostgreSQL bağlantısını kurar ve bağlantı havuzunu ayarlar.
// DSN parçaları ortam değişkenlerinden okunur.
func InitDB() {
	host := configs.GetEnv("DB_HOST", "localhost")
	port := configs.GetEnv("DB_PORT", "5432")
	user := configs.GetEnv("DB_USER", "sofra")
	password := configs.GetEnv("DB_PASSWORD", "")
	name := configs.GetEnv("DB_NAME", "sofra")
	sslMode := configs.GetEnv("DB_SSLMODE", "disable")

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
		host, port, user, password, name, sslMode)

	gormDB, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		// Unique ihlali gibi sürücü hatalarını gorm.ErrDuplicatedKey'e çevirir;
		// repository katmanı bu hatalara güvenir.
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		configslog.Log.Fatal("Veritabanı bağlantısı kurulamadı", zap.Error(err))
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		configslog.Log.Fatal("Veritabanı havuzuna erişilemedi", zap.Error(err))
	}
	sqlDB.SetMaxOpenConns(configs.GetEnvInt("DB_MAX_OPEN_CONNS", 25))
	sqlDB.SetMaxIdleConns(configs.GetEnvInt("DB_MAX_IDLE_CONNS", 5))
	sqlDB.SetConnMaxLifetime(time.Duration(configs.GetEnvInt("DB_CONN_MAX_LIFETIME_MIN", 30)) * time.Minute)

	db = gormDB
	configslog.SLog.Infof("Veritabanı bağlantısı kuruldu: %s@%s:%s/%s", user, host, port, name)
}

// GetDB aktif GORM bağlantısını döndürür. InitDB çağrılmış olmalıdır.
func GetDB() *gorm.DB {
	if db == nil {
		configslog.Log.Fatal("GetDB çağrıldı ancak veritabanı başlatılmamış (InitDB unutuldu mu?)")
	}
	return db
}

// CloseDB bağlantı havuzunu kapatır.
func CloseDB() {
	if db == nil {
		return
	}
	sqlDB, err := db.DB()
	if err != nil {
		configslog.Log.Error("Veritabanı kapatılırken havuza erişilemedi", zap.Error(err))
		return
	}
	if err := sqlDB.Close(); err != nil {
		configslog.Log.Error("Veritabanı bağlantısı kapatılamadı", zap.Error(err))
	}
}
