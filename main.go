package main

import (
	"os"
	"os/signal"
	"syscall"

	"sofra.link/configs"
	"sofra.link/configs/configsdatabase"
	"sofra.link/configs/configslog"
	"sofra.link/database"
	"sofra.link/routes"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func main() {
	_ = configs.LoadEnv()
	configslog.InitLogger()
	defer configslog.SyncLogger()

	configsdatabase.InitDB()
	defer configsdatabase.CloseDB()

	// AUTO_MIGRATE=true ile açılışta şema güncellenir; üretimde migration
	// CLI'ı (database/cmd) tercih edilir.
	database.Initialize(configsdatabase.GetDB(),
		configs.GetEnvBool("AUTO_MIGRATE", false),
		configs.GetEnvBool("SEED_DEMO_DATA", false))

	app := fiber.New(fiber.Config{
		AppName:               "sofra.link",
		DisableStartupMessage: configs.GetEnv("APP_ENV", "") == "production",
	})
	routes.SetupRoutes(app)

	// Graceful shutdown: dinleyen goroutine sinyali bekler, Shutdown çağırır.
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		configslog.SLog.Info("Kapatma sinyali alındı, sunucu durduruluyor...")
		if err := app.Shutdown(); err != nil {
			configslog.Log.Error("Sunucu kapatılırken hata", zap.Error(err))
		}
	}()

	addr := ":" + configs.GetEnv("APP_PORT", "3000")
	configslog.SLog.Infof("Sunucu dinlemede: %s", addr)
	if err := app.Listen(addr); err != nil {
		configslog.Log.Fatal("Sunucu başlatılamadı", zap.Error(err))
	}
}
