package configslog

import (
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log yapılandırılmış logger, SLog ise sugared versiyonu.
// InitLogger çağrılmadan kullanılmamalıdır.
var (
	Log  *zap.Logger
	SLog *zap.SugaredLogger

	initOnce sync.Once
)

// InitLogger global zap logger'ları başlatır. APP_ENV=production ise JSON,
// aksi halde okunabilir konsol çıktısı üretir. Birden fazla çağrı zararsızdır.
func InitLogger() {
	initOnce.Do(func() {
		var cfg zap.Config
		if os.Getenv("APP_ENV") == "production" {
			cfg = zap.NewProductionConfig()
		} else {
			cfg = zap.NewDevelopmentConfig()
			cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		}
		cfg.EncoderConfig.TimeKey = "time"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

		logger, err := cfg.Build(zap.AddCallerSkip(0))
		if err != nil {
			// Logger kurulamazsa uygulamanın devam etmesinin anlamı yok.
			panic("logger başlatılamadı: " + err.Error())
		}
		Log = logger
		SLog = logger.Sugar()
	})
}

// SyncLogger tamponlanmış log kayıtlarını boşaltır. main'de defer ile çağrılır.
func SyncLogger() {
	if Log != nil {
		_ = Log.Sync()
	}
}
