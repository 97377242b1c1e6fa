package handlers // handlers/panel paketi

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"akis.link/configs/configslog"
	"akis.link/models"
	"akis.link/pkg/queryparams"
	"akis.link/services"
)

// PanelFunnelHandler akış grafiği uçları için handler.
type PanelFunnelHandler struct {
	service services.IFunnelService
}

// NewPanelFunnelHandler yeni bir PanelFunnelHandler örneği oluşturur.
func NewPanelFunnelHandler() *PanelFunnelHandler {
	return &PanelFunnelHandler{service: services.NewFunnelService()}
}

type funnelRequest struct {
	Name string `json:"name"`
	Kind string `json:"kind"`
}

type nodeRequest struct {
	NodeType string                 `json:"node_type"`
	X        float64                `json:"x"`
	Y        float64                `json:"y"`
	Data     map[string]interface{} `json:"data"`
}

type positionRequest struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type connectRequest struct {
	SourceNodeID uuid.UUID `json:"source_node_id"`
	SourceHandle string    `json:"source_handle"`
	TargetNodeID uuid.UUID `json:"target_node_id"`
	TargetHandle string    `json:"target_handle"`
}

type renameRequest struct {
	Label string `json:"label"`
}

type pushOutputRequest struct {
	ChatNodeID uuid.UUID `json:"chat_node_id"`
	ToolNodeID uuid.UUID `json:"tool_node_id"`
	Output     string    `json:"output"`
}

// --- Akış ---

// ListFunnels kullanıcının akışlarını listeler.
func (h *PanelFunnelHandler) ListFunnels(c *fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}
	var params queryparams.ListParams
	if err := c.QueryParser(&params); err != nil {
		configslog.Log.Warn("ListFunnels: query çözülemedi", zap.Error(err))
		params = queryparams.DefaultListParams("created_at")
	}
	result, err := h.service.GetFunnelsForUserPaginated(c.UserContext(), userID, params)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(result)
}

// CreateFunnel yeni akış oluşturur.
func (h *PanelFunnelHandler) CreateFunnel(c *fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}
	var req funnelRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "geçersiz istek gövdesi"})
	}
	funnel, err := h.service.CreateFunnel(c.UserContext(), userID, req.Name, req.Kind)
	if err != nil {
		return jsonError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(funnel)
}

// GetFunnel akışı düğüm ve kenarlarıyla döndürür.
func (h *PanelFunnelHandler) GetFunnel(c *fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}
	funnelID, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	funnel, err := h.service.GetFunnelWithGraph(c.UserContext(), funnelID, userID)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(funnel)
}

// RenameFunnel akışın adını günceller.
func (h *PanelFunnelHandler) RenameFunnel(c *fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}
	funnelID, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	var req funnelRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "geçersiz istek gövdesi"})
	}
	if err := h.service.RenameFunnel(c.UserContext(), funnelID, userID, req.Name); err != nil {
		return jsonError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// DeleteFunnel akışı tüm grafiğiyle siler.
func (h *PanelFunnelHandler) DeleteFunnel(c *fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}
	funnelID, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.service.DeleteFunnel(c.UserContext(), funnelID, userID); err != nil {
		return jsonError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// --- Paylaşım ---

// EnableShare paylaşım anahtarı üretir ve public URL yolunu döndürür.
func (h *PanelFunnelHandler) EnableShare(c *fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}
	funnelID, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	key, err := h.service.EnableShare(c.UserContext(), funnelID, userID)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(fiber.Map{"share_key": key, "share_path": "/f/" + key})
}

// DisableShare paylaşımı kapatır.
func (h *PanelFunnelHandler) DisableShare(c *fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}
	funnelID, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.service.DisableShare(c.UserContext(), funnelID, userID); err != nil {
		return jsonError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// --- Grafik ---

// AddNode canvas'a düğüm ekler.
func (h *PanelFunnelHandler) AddNode(c *fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}
	funnelID, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	var req nodeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "geçersiz istek gövdesi"})
	}
	data, err := models.DecodeNodeData(req.NodeType, req.Data)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	node, err := h.service.AddNode(c.UserContext(), funnelID, userID, req.NodeType, req.X, req.Y, data)
	if err != nil {
		return jsonError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(node)
}

// MoveNode düğümü yeni konuma taşır.
func (h *PanelFunnelHandler) MoveNode(c *fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}
	funnelID, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	nodeID, err := parseUUIDParam(c, "nodeID")
	if err != nil {
		return err
	}
	var req positionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "geçersiz istek gövdesi"})
	}
	if err := h.service.MoveNode(c.UserContext(), funnelID, nodeID, userID, req.X, req.Y); err != nil {
		return jsonError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ConnectNodes iki düğüm arasında kenar oluşturur.
func (h *PanelFunnelHandler) ConnectNodes(c *fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}
	funnelID, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	var req connectRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "geçersiz istek gövdesi"})
	}
	edge, err := h.service.ConnectNodes(c.UserContext(), funnelID, userID,
		req.SourceNodeID, req.SourceHandle, req.TargetNodeID, req.TargetHandle)
	if err != nil {
		return jsonError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(edge)
}

// DeleteNode düğümü ve değen kenarları siler.
func (h *PanelFunnelHandler) DeleteNode(c *fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}
	funnelID, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	nodeID, err := parseUUIDParam(c, "nodeID")
	if err != nil {
		return err
	}
	if err := h.service.DeleteNode(c.UserContext(), funnelID, nodeID, userID); err != nil {
		return jsonError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// DuplicateNode düğümün bağlantısız kopyasını oluşturur.
func (h *PanelFunnelHandler) DuplicateNode(c *fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}
	funnelID, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	nodeID, err := parseUUIDParam(c, "nodeID")
	if err != nil {
		return err
	}
	clone, err := h.service.DuplicateNode(c.UserContext(), funnelID, nodeID, userID)
	if err != nil {
		return jsonError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(clone)
}

// RenameNode düğümün etiketini günceller (düğüm yoksa sessiz no-op).
func (h *PanelFunnelHandler) RenameNode(c *fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}
	funnelID, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	nodeID, err := parseUUIDParam(c, "nodeID")
	if err != nil {
		return err
	}
	var req renameRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "geçersiz istek gövdesi"})
	}
	if err := h.service.RenameNode(c.UserContext(), funnelID, nodeID, userID, req.Label); err != nil {
		return jsonError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// DeleteEdge tek kenarı siler.
func (h *PanelFunnelHandler) DeleteEdge(c *fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}
	funnelID, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	edgeID, err := parseUUIDParam(c, "edgeID")
	if err != nil {
		return err
	}
	if err := h.service.DeleteEdge(c.UserContext(), funnelID, edgeID, userID); err != nil {
		return jsonError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ConnectedTools düğüme bağlı ai_tool düğümlerini döndürür.
func (h *PanelFunnelHandler) ConnectedTools(c *fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}
	funnelID, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	nodeID, err := parseUUIDParam(c, "nodeID")
	if err != nil {
		return err
	}
	nodes, err := h.service.GetConnectedToolNodes(c.UserContext(), funnelID, nodeID, userID)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(nodes)
}

// ConnectedAttachments düğüme kaynak olarak bağlı attachment düğümlerini döndürür.
func (h *PanelFunnelHandler) ConnectedAttachments(c *fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}
	funnelID, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	nodeID, err := parseUUIDParam(c, "nodeID")
	if err != nil {
		return err
	}
	nodes, err := h.service.GetConnectedAttachmentNodes(c.UserContext(), funnelID, nodeID, userID)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(nodes)
}

// PushToolOutput sohbet çıktısını bağlı araç düğümüne iter.
func (h *PanelFunnelHandler) PushToolOutput(c *fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}
	funnelID, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	var req pushOutputRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "geçersiz istek gövdesi"})
	}
	if err := h.service.PushToolOutput(c.UserContext(), funnelID, req.ChatNodeID, req.ToolNodeID, userID, req.Output); err != nil {
		return jsonError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
