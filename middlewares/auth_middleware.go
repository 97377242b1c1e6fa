// middlewares/auth_middleware.go
package middlewares

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"akis.link/services"
)

// AuthMiddleware Authorization başlığındaki Bearer token'ı doğrular ve
// kullanıcı kimliğini c.Locals("userID") olarak ayarlar.
func AuthMiddleware(c *fiber.Ctx) error {
	header := c.Get(fiber.HeaderAuthorization)
	if !strings.HasPrefix(header, "Bearer ") {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "oturum gerekli",
		})
	}
	tokenString := strings.TrimPrefix(header, "Bearer ")

	userID, err := services.NewAuthService().VerifyToken(tokenString)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": services.ErrTokenInvalid.Error(),
		})
	}
	c.Locals("userID", userID)
	return c.Next()
}

// StatusMiddleware hesabın aktif olduğunu doğrular. AuthMiddleware'den sonra
// çalışmalıdır.
func StatusMiddleware(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uuid.UUID)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "oturum gerekli",
		})
	}
	user, err := services.NewAuthService().GetProfile(c.UserContext(), userID)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": services.ErrAuthUserNotFound.Error(),
		})
	}
	if !user.IsActive {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": services.ErrUserInactive.Error(),
		})
	}
	return c.Next()
}

// UserID c.Locals("userID") değerini okur; handler'ların ortak yardımcıdır.
func UserID(c *fiber.Ctx) (uuid.UUID, bool) {
	userID, ok := c.Locals("userID").(uuid.UUID)
	return userID, ok
}
