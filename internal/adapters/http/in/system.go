package in

import (
	"github.com/gofiber/fiber/v2"

	"github.com/PAIR-Systems-Inc/goodmem-sub000/internal/services/command"
)

// SystemHandler wires the unauthenticated bootstrap endpoint.
type SystemHandler struct {
	Command *command.UseCase
}

// Init godoc
//
//	@Summary	Idempotent first-run bootstrap: creates the root user and its API key
//	@Tags		System
//	@Produce	json
//	@Success	200	{object}	command.SystemInitResult
//	@Router		/v1/system/init [post]
func (h *SystemHandler) Init(c *fiber.Ctx) error {
	result, err := h.Command.SystemInit(c.UserContext())
	if err != nil {
		return WithError(c, err)
	}

	return OK(c, result)
}
