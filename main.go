package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/html/v2"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"akis.link/configs"
	"akis.link/configs/configsdatabase"
	"akis.link/configs/configslog"
	"akis.link/routes"
	"akis.link/services"
)

func main() {
	// .env opsiyoneldir; üretimde değişkenler ortamdan gelir
	if err := godotenv.Load(); err != nil {
		configslog.InitLogger()
		configslog.SLog.Info(".env dosyası bulunamadı, ortam değişkenleri kullanılacak.")
	} else {
		configslog.InitLogger()
	}
	defer configslog.SyncLogger()

	configsdatabase.InitDB()
	defer configsdatabase.CloseDB()

	aiService, err := services.NewAIToolService()
	if err != nil {
		configslog.Log.Fatal("AI araç kataloğu yüklenemedi", zap.Error(err))
	}

	engine := html.New("./views", ".html")
	app := fiber.New(fiber.Config{
		AppName:   "akis.link",
		Views:     engine,
		BodyLimit: 25 << 20, // Ek yüklemeleri için
	})

	routes.SetupRoutes(app, aiService)

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan
		configslog.SLog.Info("Kapatma sinyali alındı, sunucu durduruluyor...")
		if err := app.Shutdown(); err != nil {
			configslog.Log.Error("Sunucu kapatılırken hata oluştu", zap.Error(err))
		}
	}()

	port := configs.GetAppPort()
	configslog.SLog.Infof("Sunucu %s portunda dinliyor...", port)
	if err := app.Listen(port); err != nil {
		configslog.Log.Fatal("Sunucu başlatılamadı", zap.Error(err))
	}
}
