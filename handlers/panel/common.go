package handlers // handlers/panel paketi

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"akis.link/middlewares"
	"akis.link/services"
)

// requireUserID oturumdaki kullanıcı kimliğini okur; yoksa 401 yazar.
func requireUserID(c *fiber.Ctx) (uuid.UUID, error) {
	userID, ok := middlewares.UserID(c)
	if !ok {
		return uuid.Nil, c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "oturum gerekli"})
	}
	return userID, nil
}

// parseUUIDParam path parametresini UUID olarak çözer; bozuksa 400 yazar.
func parseUUIDParam(c *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "geçersiz kimlik: " + name})
	}
	return id, nil
}

// serviceErrorStatus servis hatalarını HTTP durum kodlarına çevirir.
func serviceErrorStatus(err error) int {
	switch {
	case errors.Is(err, services.ErrBoardNotFound),
		errors.Is(err, services.ErrColumnNotFound),
		errors.Is(err, services.ErrCardNotFound),
		errors.Is(err, services.ErrFolderNotFound),
		errors.Is(err, services.ErrFunnelNotFound),
		errors.Is(err, services.ErrFunNodeNotFound),
		errors.Is(err, services.ErrFunEdgeNotFound),
		errors.Is(err, services.ErrAttachmentNotFound),
		errors.Is(err, services.ErrToolNotFound),
		errors.Is(err, services.ErrToolUserNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, services.ErrBoardForbidden),
		errors.Is(err, services.ErrFunnelForbidden),
		errors.Is(err, services.ErrAttachmentForbidden):
		return fiber.StatusForbidden
	case errors.Is(err, services.ErrColumnNotEmpty):
		return fiber.StatusConflict
	case errors.Is(err, services.ErrToolRateLimited):
		return fiber.StatusTooManyRequests
	case errors.Is(err, services.ErrToolCreditsExhausted):
		return fiber.StatusPaymentRequired
	case errors.Is(err, services.ErrBrdInvalidInput),
		errors.Is(err, services.ErrFunInvalidInput),
		errors.Is(err, services.ErrToolInvalidInput),
		errors.Is(err, services.ErrBoardNameRequired),
		errors.Is(err, services.ErrColumnTitleRequired),
		errors.Is(err, services.ErrCardTitleRequired),
		errors.Is(err, services.ErrFolderNameRequired),
		errors.Is(err, services.ErrFunnelNameRequired),
		errors.Is(err, services.ErrAttFileNameRequired),
		errors.Is(err, services.ErrAttEmptyContent):
		return fiber.StatusBadRequest
	}
	return fiber.StatusInternalServerError
}

// jsonError servis hatasını standart JSON hata gövdesiyle yazar.
func jsonError(c *fiber.Ctx, err error) error {
	return c.Status(serviceErrorStatus(err)).JSON(fiber.Map{"error": err.Error()})
}
