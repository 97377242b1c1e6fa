package handlers // handlers/panel paketi

import (
	"bufio"
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"akis.link/configs/configslog"
	"akis.link/pkg/aigateway"
	"akis.link/pkg/queryparams"
	"akis.link/services"
)

// PanelAIToolHandler AI araç uçları için handler.
type PanelAIToolHandler struct {
	service services.IAIToolService
}

// NewPanelAIToolHandler verilen servisle handler oluşturur. Katalog uygulama
// açılışında bir kez yüklendiği için servis dışarıdan verilir.
func NewPanelAIToolHandler(service services.IAIToolService) *PanelAIToolHandler {
	return &PanelAIToolHandler{service: service}
}

type invokeRequest struct {
	ToolID   string            `json:"tool_id"`
	Values   map[string]string `json:"values"`
	FunnelID *uuid.UUID        `json:"funnel_id"`
	ImageURL string            `json:"image_url"`
}

type chatRequest struct {
	Model    string              `json:"model"`
	Messages []aigateway.Message `json:"messages"`
}

// ListTools katalogdaki araçları döndürür.
func (h *PanelAIToolHandler) ListTools(c *fiber.Ctx) error {
	if _, err := requireUserID(c); err != nil {
		return err
	}
	return c.JSON(h.service.ListTools())
}

// Invoke aracı çalıştırır ve sonucu döndürür.
func (h *PanelAIToolHandler) Invoke(c *fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}
	var req invokeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "geçersiz istek gövdesi"})
	}
	result, err := h.service.Invoke(c.UserContext(), userID, services.InvokeRequest{
		ToolID:   req.ToolID,
		Values:   req.Values,
		FunnelID: req.FunnelID,
		ImageURL: req.ImageURL,
	})
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(result)
}

// StreamChat sohbet tamamlamasını satır satır iletir (chunked).
func (h *PanelAIToolHandler) StreamChat(c *fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}
	var req chatRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "geçersiz istek gövdesi"})
	}
	if len(req.Messages) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": services.ErrToolInvalidInput.Error()})
	}

	c.Set(fiber.HeaderContentType, "text/plain; charset=utf-8")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		// Handler dönüşünden sonra istek context'i geçersizleşir
		err := h.service.StreamChat(context.Background(), userID, req.Model, req.Messages, func(chunk string) error {
			if _, err := w.WriteString(chunk + "\n"); err != nil {
				return err
			}
			return w.Flush()
		})
		if err != nil {
			configslog.Log.Warn("Sohbet akışı kesildi",
				zap.String("user_id", userID.String()), zap.Error(err))
		}
	}))
	return nil
}

// CreditBalance kullanıcının kredi bakiyesini döndürür.
func (h *PanelAIToolHandler) CreditBalance(c *fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}
	balance, err := h.service.GetCreditBalance(c.UserContext(), userID)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(fiber.Map{"credits": balance})
}

// ExecutionLogs kullanıcının araç çağrı geçmişini listeler.
func (h *PanelAIToolHandler) ExecutionLogs(c *fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}
	var params queryparams.ListParams
	if err := c.QueryParser(&params); err != nil {
		params = queryparams.DefaultListParams("created_at")
	}
	result, err := h.service.GetExecutionLogs(c.UserContext(), userID, params)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(result)
}
