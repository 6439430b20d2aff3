package in

import (
	"github.com/gofiber/fiber/v2"

	"github.com/PAIR-Systems-Inc/goodmem-sub000/internal/services/command"
	"github.com/PAIR-Systems-Inc/goodmem-sub000/internal/services/query"
	"github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/mmodel"
)

// UserHandler wires the /v1/users routes to the command/query
// use cases.
type UserHandler struct {
	Command *command.UseCase
	Query   *query.UseCase
}

// Create godoc
//
//	@Summary	Create a new user
//	@Tags		Users
//	@Accept		json
//	@Produce	json
//	@Param		request	body	mmodel.CreateUserInput	true	"Create user input"
//	@Success	200		{object}	mmodel.User
//	@Router		/v1/users [post]
func (h *UserHandler) Create(c *fiber.Ctx) error {
	var in mmodel.CreateUserInput
	if err := bindAndValidate(c, &in); err != nil {
		return WithError(c, err)
	}

	u, err := h.Command.CreateUser(c.UserContext(), caller(c), &in)
	if err != nil {
		return WithError(c, err)
	}

	return OK(c, u)
}

// Get godoc
//
//	@Summary	Get a user by id, or by email via the email query parameter
//	@Tags		Users
//	@Produce	json
//	@Param		id		path	string	true	"User id"
//	@Param		email	query	string	false	"Look up by email instead"
//	@Success	200	{object}	mmodel.User
//	@Router		/v1/users/{id} [get]
func (h *UserHandler) Get(c *fiber.Ctx) error {
	if email := c.Query("email"); email != "" {
		u, err := h.Query.GetUserByEmail(c.UserContext(), caller(c), email)
		if err != nil {
			return WithError(c, err)
		}

		return OK(c, u)
	}

	id, err := pathID(c, "id")
	if err != nil {
		return WithError(c, err)
	}

	u, err := h.Query.GetUser(c.UserContext(), caller(c), id)
	if err != nil {
		return WithError(c, err)
	}

	return OK(c, u)
}

// Update godoc
//
//	@Summary	Update a user's mutable profile fields
//	@Tags		Users
//	@Accept		json
//	@Produce	json
//	@Param		id		path	string					true	"User id"
//	@Param		request	body	command.UpdateUserInput	true	"Update user input"
//	@Success	200	{object}	mmodel.User
//	@Router		/v1/users/{id} [put]
func (h *UserHandler) Update(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return WithError(c, err)
	}

	var in command.UpdateUserInput
	if err := bindAndValidate(c, &in); err != nil {
		return WithError(c, err)
	}

	u, err := h.Command.UpdateUser(c.UserContext(), caller(c), id, &in)
	if err != nil {
		return WithError(c, err)
	}

	return OK(c, u)
}

// Delete godoc
//
//	@Summary	Delete a user
//	@Tags		Users
//	@Param		id	path	string	true	"User id"
//	@Success	204
//	@Router		/v1/users/{id} [delete]
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return WithError(c, err)
	}

	if err := h.Command.DeleteUser(c.UserContext(), caller(c), id); err != nil {
		return WithError(c, err)
	}

	return NoContent(c)
}
