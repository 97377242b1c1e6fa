package handlers // handlers/panel paketi

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"akis.link/configs/configslog"
	"akis.link/pkg/queryparams"
	"akis.link/services"
)

// PanelBoardHandler pano, kolon ve kart uçları için handler.
type PanelBoardHandler struct {
	service services.IBoardService
}

// NewPanelBoardHandler yeni bir PanelBoardHandler örneği oluşturur.
func NewPanelBoardHandler() *PanelBoardHandler {
	return &PanelBoardHandler{service: services.NewBoardService()}
}

type boardRequest struct {
	Name         string     `json:"name"`
	TemplateKind string     `json:"template_kind"`
	FolderID     *uuid.UUID `json:"folder_id"`
}

type folderRequest struct {
	Name string `json:"name"`
}

type columnRequest struct {
	Title string `json:"title"`
	Icon  string `json:"icon"`
}

type reorderRequest struct {
	ToIndex int `json:"to_index"`
}

type cardRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
}

type cardUpdateRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Priority    *string `json:"priority"`
	Completed   *bool   `json:"completed"`
}

type cardMoveRequest struct {
	ToColumnID uuid.UUID `json:"to_column_id"`
	ToIndex    int       `json:"to_index"`
}

// --- Pano ---

// ListBoards kullanıcının panolarını listeler.
func (h *PanelBoardHandler) ListBoards(c *fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}
	var params queryparams.ListParams
	if err := c.QueryParser(&params); err != nil {
		configslog.Log.Warn("ListBoards: query çözülemedi", zap.Error(err))
		params = queryparams.DefaultListParams("created_at")
	}
	result, err := h.service.GetBoardsForUserPaginated(c.UserContext(), userID, params)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(result)
}

// CreateBoard yeni pano oluşturur.
func (h *PanelBoardHandler) CreateBoard(c *fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}
	var req boardRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "geçersiz istek gövdesi"})
	}
	board, err := h.service.CreateBoard(c.UserContext(), userID, req.Name, req.TemplateKind, req.FolderID)
	if err != nil {
		return jsonError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(board)
}

// GetBoard panoyu kolonları ve kartlarıyla döndürür.
func (h *PanelBoardHandler) GetBoard(c *fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}
	boardID, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	board, err := h.service.GetBoardByID(c.UserContext(), boardID, userID)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(board)
}

// UpdateBoard pano adını ve klasörünü günceller.
func (h *PanelBoardHandler) UpdateBoard(c *fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}
	boardID, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	var req boardRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "geçersiz istek gövdesi"})
	}
	if err := h.service.UpdateBoard(c.UserContext(), boardID, userID, req.Name, req.FolderID); err != nil {
		return jsonError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// DeleteBoard panoyu tüm içeriğiyle siler.
func (h *PanelBoardHandler) DeleteBoard(c *fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}
	boardID, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.service.DeleteBoard(c.UserContext(), boardID, userID); err != nil {
		return jsonError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// --- Klasör ---

// ListFolders kullanıcının klasörlerini listeler.
func (h *PanelBoardHandler) ListFolders(c *fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}
	folders, err := h.service.GetFoldersForUser(c.UserContext(), userID)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(folders)
}

// CreateFolder yeni klasör oluşturur.
func (h *PanelBoardHandler) CreateFolder(c *fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}
	var req folderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "geçersiz istek gövdesi"})
	}
	folder, err := h.service.CreateFolder(c.UserContext(), userID, req.Name)
	if err != nil {
		return jsonError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(folder)
}

// RenameFolder klasörün adını günceller.
func (h *PanelBoardHandler) RenameFolder(c *fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}
	folderID, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	var req folderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "geçersiz istek gövdesi"})
	}
	if err := h.service.RenameFolder(c.UserContext(), folderID, userID, req.Name); err != nil {
		return jsonError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// DeleteFolder klasörü siler; panolar klasörsüz kalır.
func (h *PanelBoardHandler) DeleteFolder(c *fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}
	folderID, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.service.DeleteFolder(c.UserContext(), folderID, userID); err != nil {
		return jsonError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// --- Kolon ---

// CreateColumn panoya kolon ekler (sona).
func (h *PanelBoardHandler) CreateColumn(c *fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}
	boardID, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	var req columnRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "geçersiz istek gövdesi"})
	}
	column, err := h.service.CreateColumn(c.UserContext(), boardID, userID, req.Title, req.Icon)
	if err != nil {
		return jsonError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(column)
}

// UpdateColumn kolon başlığını ve ikonunu günceller.
func (h *PanelBoardHandler) UpdateColumn(c *fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}
	columnID, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	var req columnRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "geçersiz istek gövdesi"})
	}
	if err := h.service.UpdateColumn(c.UserContext(), columnID, userID, req.Title, req.Icon); err != nil {
		return jsonError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ReorderColumn kolonu pano içinde yeni indekse taşır.
func (h *PanelBoardHandler) ReorderColumn(c *fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}
	boardID, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	columnID, err := parseUUIDParam(c, "columnID")
	if err != nil {
		return err
	}
	var req reorderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "geçersiz istek gövdesi"})
	}
	if err := h.service.ReorderColumn(c.UserContext(), boardID, columnID, userID, req.ToIndex); err != nil {
		return jsonError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// DeleteColumn kolonu siler. ?cascade=true ile kartları da siler;
// aksi halde dolu kolon 409 ile reddedilir.
func (h *PanelBoardHandler) DeleteColumn(c *fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}
	columnID, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	cascade := c.QueryBool("cascade", false)
	if err := h.service.DeleteColumn(c.UserContext(), columnID, userID, cascade); err != nil {
		return jsonError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// --- Kart ---

// CreateCard kolona kart ekler (sona).
func (h *PanelBoardHandler) CreateCard(c *fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}
	columnID, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	var req cardRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "geçersiz istek gövdesi"})
	}
	card, err := h.service.CreateCard(c.UserContext(), columnID, userID, req.Title, req.Description, req.Priority)
	if err != nil {
		return jsonError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(card)
}

// UpdateCard kartın içerik alanlarını günceller. Gönderilmeyen alanlar değişmez.
func (h *PanelBoardHandler) UpdateCard(c *fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}
	cardID, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	var req cardUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "geçersiz istek gövdesi"})
	}

	data := map[string]interface{}{}
	if req.Title != nil {
		data["title"] = *req.Title
	}
	if req.Description != nil {
		data["description"] = *req.Description
	}
	if req.Priority != nil {
		data["priority"] = *req.Priority
	}
	if req.Completed != nil {
		data["completed"] = *req.Completed
	}
	if err := h.service.UpdateCard(c.UserContext(), cardID, userID, data); err != nil {
		return jsonError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// DeleteCard kartı ve eklerini siler.
func (h *PanelBoardHandler) DeleteCard(c *fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}
	cardID, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.service.DeleteCard(c.UserContext(), cardID, userID); err != nil {
		return jsonError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// MoveCard kartı hedef kolona ve indekse taşır (aynı kolon içi dahil).
func (h *PanelBoardHandler) MoveCard(c *fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}
	cardID, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	var req cardMoveRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "geçersiz istek gövdesi"})
	}
	move := services.CardMoveRequest{
		CardID:     cardID,
		ToColumnID: req.ToColumnID,
		ToIndex:    req.ToIndex,
	}
	if err := h.service.MoveCard(c.UserContext(), userID, move); err != nil {
		return jsonError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
