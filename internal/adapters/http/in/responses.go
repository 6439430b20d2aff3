package in

import (
	"github.com/gofiber/fiber/v2"

	"github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/constant"
	"github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/mstatus"
)

// errorBody is the JSON shape every non-2xx response carries.
type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// WithError classifies err through constant.ToStatus and writes the
// matching HTTP status and body.
func WithError(c *fiber.Ctx, err error) error {
	st := constant.ToStatus(err)

	return c.Status(httpStatus(st.Code)).JSON(errorBody{Code: st.Code.String(), Message: st.Message})
}

func httpStatus(code mstatus.Code) int {
	switch code {
	case mstatus.NotFound:
		return fiber.StatusNotFound
	case mstatus.AlreadyExists:
		return fiber.StatusConflict
	case mstatus.InvalidArgument:
		return fiber.StatusBadRequest
	case mstatus.PermissionDenied:
		return fiber.StatusForbidden
	case mstatus.Unauthenticated:
		return fiber.StatusUnauthorized
	case mstatus.FailedPrecondition:
		return fiber.StatusBadRequest
	case mstatus.Unavailable:
		return fiber.StatusServiceUnavailable
	case mstatus.Unimplemented:
		return fiber.StatusNotImplemented
	default:
		return fiber.StatusInternalServerError
	}
}

// OK writes a 200 with body.
func OK(c *fiber.Ctx, body any) error {
	return c.Status(fiber.StatusOK).JSON(body)
}

// NoContent writes a 204 with no body, used by delete handlers.
func NoContent(c *fiber.Ctx) error {
	return c.SendStatus(fiber.StatusNoContent)
}
