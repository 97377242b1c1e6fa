package routes

import (
	"github.com/gofiber/fiber/v2"

	panel_handlers "akis.link/handlers/panel"
	"akis.link/middlewares"
	"akis.link/services"
)

// registerPanelRoutes /api altındaki rotaları ve middleware'leri tanımlar.
// Tüm uçlar oturum ve aktif hesap gerektirir; kayıtlar sahiplik kontrolüyle
// servis katmanında kullanıcıya daraltılır.
func registerPanelRoutes(app *fiber.App, aiService services.IAIToolService) {
	// Handler instance'larını başta oluştur
	boardHandler := panel_handlers.NewPanelBoardHandler()
	funnelHandler := panel_handlers.NewPanelFunnelHandler()
	attachmentHandler := panel_handlers.NewPanelAttachmentHandler()
	aiToolHandler := panel_handlers.NewPanelAIToolHandler(aiService)

	// /api grubu oluştur ve middleware'leri uygula
	api := app.Group("/api")
	api.Use(
		middlewares.AuthMiddleware,   // 1. Giriş yapmış mı?
		middlewares.StatusMiddleware, // 2. Hesap aktif mi?
	)

	// --- Klasörler ---
	api.Get("/folders", boardHandler.ListFolders)         // GET    /api/folders
	api.Post("/folders", boardHandler.CreateFolder)       // POST   /api/folders
	api.Put("/folders/:id", boardHandler.RenameFolder)    // PUT    /api/folders/{id}
	api.Delete("/folders/:id", boardHandler.DeleteFolder) // DELETE /api/folders/{id}

	// --- Panolar ---
	api.Get("/boards", boardHandler.ListBoards)         // GET    /api/boards
	api.Post("/boards", boardHandler.CreateBoard)       // POST   /api/boards
	api.Get("/boards/:id", boardHandler.GetBoard)       // GET    /api/boards/{id}
	api.Put("/boards/:id", boardHandler.UpdateBoard)    // PUT    /api/boards/{id}
	api.Delete("/boards/:id", boardHandler.DeleteBoard) // DELETE /api/boards/{id}

	// --- Kolonlar ---
	api.Post("/boards/:id/columns", boardHandler.CreateColumn)                   // POST   /api/boards/{id}/columns
	api.Put("/boards/:id/columns/:columnID/reorder", boardHandler.ReorderColumn) // PUT    /api/boards/{id}/columns/{columnID}/reorder
	api.Put("/columns/:id", boardHandler.UpdateColumn)                           // PUT    /api/columns/{id}
	api.Delete("/columns/:id", boardHandler.DeleteColumn)                        // DELETE /api/columns/{id}?cascade=true

	// --- Kartlar ---
	api.Post("/columns/:id/cards", boardHandler.CreateCard) // POST   /api/columns/{id}/cards
	api.Put("/cards/:id", boardHandler.UpdateCard)          // PUT    /api/cards/{id}
	api.Delete("/cards/:id", boardHandler.DeleteCard)       // DELETE /api/cards/{id}
	api.Put("/cards/:id/move", boardHandler.MoveCard)       // PUT    /api/cards/{id}/move

	// --- Kart Ekleri ---
	api.Post("/cards/:id/attachments", attachmentHandler.UploadAttachment)  // POST   /api/cards/{id}/attachments
	api.Get("/cards/:id/attachments", attachmentHandler.ListAttachments)    // GET    /api/cards/{id}/attachments
	api.Delete("/attachments/:id", attachmentHandler.DeleteAttachment)      // DELETE /api/attachments/{id}

	// --- Akışlar ---
	api.Get("/funnels", funnelHandler.ListFunnels)           // GET    /api/funnels
	api.Post("/funnels", funnelHandler.CreateFunnel)         // POST   /api/funnels
	api.Get("/funnels/:id", funnelHandler.GetFunnel)         // GET    /api/funnels/{id}
	api.Put("/funnels/:id", funnelHandler.RenameFunnel)      // PUT    /api/funnels/{id}
	api.Delete("/funnels/:id", funnelHandler.DeleteFunnel)   // DELETE /api/funnels/{id}
	api.Post("/funnels/:id/share", funnelHandler.EnableShare)    // POST   /api/funnels/{id}/share
	api.Delete("/funnels/:id/share", funnelHandler.DisableShare) // DELETE /api/funnels/{id}/share

	// --- Akış Grafiği ---
	api.Post("/funnels/:id/nodes", funnelHandler.AddNode)                                        // POST   /api/funnels/{id}/nodes
	api.Put("/funnels/:id/nodes/:nodeID/position", funnelHandler.MoveNode)                       // PUT    /api/funnels/{id}/nodes/{nodeID}/position
	api.Put("/funnels/:id/nodes/:nodeID/rename", funnelHandler.RenameNode)                       // PUT    /api/funnels/{id}/nodes/{nodeID}/rename
	api.Post("/funnels/:id/nodes/:nodeID/duplicate", funnelHandler.DuplicateNode)                // POST   /api/funnels/{id}/nodes/{nodeID}/duplicate
	api.Delete("/funnels/:id/nodes/:nodeID", funnelHandler.DeleteNode)                           // DELETE /api/funnels/{id}/nodes/{nodeID}
	api.Get("/funnels/:id/nodes/:nodeID/connected-tools", funnelHandler.ConnectedTools)          // GET    /api/funnels/{id}/nodes/{nodeID}/connected-tools
	api.Get("/funnels/:id/nodes/:nodeID/connected-attachments", funnelHandler.ConnectedAttachments) // GET /api/funnels/{id}/nodes/{nodeID}/connected-attachments
	api.Post("/funnels/:id/edges", funnelHandler.ConnectNodes)                                   // POST   /api/funnels/{id}/edges
	api.Delete("/funnels/:id/edges/:edgeID", funnelHandler.DeleteEdge)                           // DELETE /api/funnels/{id}/edges/{edgeID}
	api.Post("/funnels/:id/push-output", funnelHandler.PushToolOutput)                           // POST   /api/funnels/{id}/push-output

	// --- AI Araçları ve Krediler ---
	api.Get("/tools", aiToolHandler.ListTools)            // GET    /api/tools
	api.Post("/tools/invoke", aiToolHandler.Invoke)       // POST   /api/tools/invoke
	api.Post("/chat/stream", aiToolHandler.StreamChat)    // POST   /api/chat/stream
	api.Get("/credits", aiToolHandler.CreditBalance)      // GET    /api/credits
	api.Get("/executions", aiToolHandler.ExecutionLogs)   // GET    /api/executions
}
