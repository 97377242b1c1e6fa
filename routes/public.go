package routes

import (
	"github.com/gofiber/fiber/v2"

	public_handlers "akis.link/handlers/public"
)

// registerPublicRoutes paylaşım anahtarıyla erişilen public rotaları tanımlar.
// Oturum gerektirmez; erişim anahtarın gizliliğine dayanır.
func registerPublicRoutes(app *fiber.App) {
	publicHandler := public_handlers.NewPublicFunnelHandler()

	app.Get("/f/:key", publicHandler.ShowSharedFunnel)          // GET /f/{key} (HTML)
	app.Get("/f/:key/graph", publicHandler.GetSharedFunnelJSON) // GET /f/{key}/graph (JSON)
}
