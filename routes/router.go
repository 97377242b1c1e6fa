package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	recoverMiddleware "github.com/gofiber/fiber/v2/middleware/recover"

	"akis.link/services"
)

// SetupRoutes tüm uygulama rotalarını ve genel middleware'leri ayarlar.
// AI araç servisi katalog dosyalarını açılışta yüklediği için dışarıdan verilir.
func SetupRoutes(app *fiber.App, aiService services.IAIToolService) {
	// --- Genel Middleware'ler ---
	app.Use(recoverMiddleware.New()) // Panic yakalama
	app.Use(logger.New())            // İstek loglama
	app.Use(cors.New())

	// --- Rota Grupları ---
	registerAuthRoutes(app)             // /auth rotaları
	registerPanelRoutes(app, aiService) // /api rotaları (oturum gerekli)
	registerPublicRoutes(app)           // /f/:key public paylaşım

	// --- 404 Handler ---
	// En sonda, eşleşmeyen tüm rotaları yakalar.
	app.Use(notFoundHandler)
}

// notFoundHandler eşleşmeyen istekler için JSON 404 döndürür.
func notFoundHandler(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"error": "kaynak bulunamadı",
	})
}
