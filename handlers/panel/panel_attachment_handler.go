package handlers // handlers/panel paketi

import (
	"io"

	"github.com/gofiber/fiber/v2"

	"akis.link/services"
)

// Tek ekin üst sınırı. Fiber'ın body limiti de main.go'da buna göre ayarlanır.
const maxAttachmentSize = 20 << 20 // 20 MiB

// PanelAttachmentHandler kart eki uçları için handler.
type PanelAttachmentHandler struct {
	service services.IAttachmentService
}

// NewPanelAttachmentHandler yeni bir PanelAttachmentHandler örneği oluşturur.
func NewPanelAttachmentHandler() *PanelAttachmentHandler {
	return &PanelAttachmentHandler{service: services.NewAttachmentService()}
}

// UploadAttachment multipart "file" alanındaki içeriği karta ekler.
func (h *PanelAttachmentHandler) UploadAttachment(c *fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}
	cardID, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "dosya alanı (file) eksik"})
	}
	if fileHeader.Size > maxAttachmentSize {
		return c.Status(fiber.StatusRequestEntityTooLarge).JSON(fiber.Map{"error": "dosya çok büyük"})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "dosya okunamadı"})
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "dosya okunamadı"})
	}

	attachment, err := h.service.UploadAttachment(c.UserContext(), cardID, userID,
		fileHeader.Filename, fileHeader.Header.Get("Content-Type"), data)
	if err != nil {
		return jsonError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(attachment)
}

// ListAttachments kartın eklerini listeler.
func (h *PanelAttachmentHandler) ListAttachments(c *fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}
	cardID, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	attachments, err := h.service.GetAttachmentsForCard(c.UserContext(), cardID, userID)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(attachments)
}

// DeleteAttachment eki siler (önce blob, sonra satır).
func (h *PanelAttachmentHandler) DeleteAttachment(c *fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}
	attachmentID, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.service.DeleteAttachment(c.UserContext(), attachmentID, userID); err != nil {
		return jsonError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
