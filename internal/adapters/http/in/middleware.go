package in

import (
	"github.com/gofiber/fiber/v2"

	"github.com/PAIR-Systems-Inc/goodmem-sub000/internal/authz"
	"github.com/PAIR-Systems-Inc/goodmem-sub000/internal/services/command"
	"github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/constant"
)

const apiKeyHeader = "x-api-key"

const callerLocalsKey = "authz.principal"

// Authorize authenticates the x-api-key header against cmd and stores
// the resolved authz.Principal in the request's locals for handlers to
// read via caller(c).
func Authorize(cmd *command.UseCase) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := c.Get(apiKeyHeader)
		if raw == "" {
			return WithError(c, constant.UnauthenticatedError{Message: "missing x-api-key header"})
		}

		principal, err := cmd.Authenticate(c.UserContext(), raw)
		if err != nil {
			return WithError(c, err)
		}

		c.Locals(callerLocalsKey, principal)

		return c.Next()
	}
}

// caller retrieves the Principal Authorize attached to the request.
func caller(c *fiber.Ctx) authz.Principal {
	p, _ := c.Locals(callerLocalsKey).(authz.Principal)
	return p
}
