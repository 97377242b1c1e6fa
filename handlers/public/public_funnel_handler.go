package handlers // handlers/public paketi

import (
	"github.com/gofiber/fiber/v2"

	"akis.link/services"
)

// PublicFunnelHandler paylaşım anahtarıyla public akış görüntüleme.
type PublicFunnelHandler struct {
	service services.IFunnelService
}

// NewPublicFunnelHandler yeni bir PublicFunnelHandler örneği oluşturur.
func NewPublicFunnelHandler() *PublicFunnelHandler {
	return &PublicFunnelHandler{service: services.NewFunnelService()}
}

// ShowSharedFunnel paylaşılan akışın salt-okunur sayfasını render eder.
// Sahiplik kontrolü yoktur; erişim anahtarın gizliliğine dayanır.
func (h *PublicFunnelHandler) ShowSharedFunnel(c *fiber.Ctx) error {
	key := c.Params("key")
	funnel, err := h.service.GetFunnelByShareKey(c.UserContext(), key)
	if err != nil {
		return c.Status(fiber.StatusNotFound).Render("public/not_found", fiber.Map{
			"Title": "Akış bulunamadı",
		})
	}
	return c.Render("public/funnel_share", fiber.Map{
		"Title":  funnel.Name,
		"Funnel": funnel,
		"Nodes":  funnel.Nodes,
		"Edges":  funnel.Edges,
	})
}

// GetSharedFunnelJSON paylaşılan akışın grafiğini JSON olarak döndürür
// (paylaşım sayfasındaki canvas çizimi için).
func (h *PublicFunnelHandler) GetSharedFunnelJSON(c *fiber.Ctx) error {
	funnel, err := h.service.GetFunnelByShareKey(c.UserContext(), c.Params("key"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": services.ErrFunnelNotFound.Error()})
	}
	return c.JSON(funnel)
}
