package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/pkg/jwt"
)

// Locals keys para la identidad de quien opera.
const (
	LocalUserID    = "user_id"
	LocalPerformer = "performer"
)

// AuthMiddleware lee el Bearer Token si viene y guarda UserID y Performer en c.Locals.
// Sin header la petición continúa anónima; un token inválido responde 401.
// Con jwtSecret vacío el middleware no hace nada.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if jwtSecret == "" {
			return c.Next()
		}
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return c.Next()
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		claims, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		c.Locals(LocalUserID, claims.UserID)
		c.Locals(LocalPerformer, claims.Performer())
		return c.Next()
	}
}

// GetUserID devuelve el UserID del token ("" si la petición es anónima).
func GetUserID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalUserID).(string)
	return s
}

// GetPerformer devuelve el nombre a registrar como performedBy ("" si es anónima).
func GetPerformer(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalPerformer).(string)
	return s
}

// performerFor prioriza la identidad del token sobre el campo del body.
func performerFor(c *fiber.Ctx, fromBody string) string {
	if p := GetPerformer(c); p != "" {
		return p
	}
	return strings.TrimSpace(fromBody)
}
