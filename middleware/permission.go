package middleware

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/meinhoongagan/healthy-alternative/models"
	"github.com/meinhoongagan/healthy-alternative/utils"
)

// RequireRole checks if the user has the required role. It must run after
// RequireAuth.
func RequireRole(role models.UserType) fiber.Handler {
	message := fmt.Sprintf("%s access required", roleLabel(role))
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user == nil {
			return utils.Respond(c, fiber.StatusUnauthorized, utils.CodeUnauthorized, "Authentication required")
		}
		if user.UserType != role {
			return utils.Respond(c, fiber.StatusForbidden, utils.CodeForbidden, message)
		}
		return c.Next()
	}
}

func roleLabel(role models.UserType) string {
	switch role {
	case models.UserTypeProvider:
		return "Provider"
	case models.UserTypeCustomer:
		return "Customer"
	default:
		return string(role)
	}
}
