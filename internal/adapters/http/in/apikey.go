package in

import (
	"github.com/gofiber/fiber/v2"

	"github.com/PAIR-Systems-Inc/goodmem-sub000/internal/services/command"
	"github.com/PAIR-Systems-Inc/goodmem-sub000/internal/services/query"
	"github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/mmodel"
)

// ApiKeyHandler wires the /v1/apikeys routes.
type ApiKeyHandler struct {
	Command *command.UseCase
	Query   *query.UseCase
}

// Create godoc
//
//	@Summary	Create a new API key
//	@Tags		ApiKeys
//	@Accept		json
//	@Produce	json
//	@Param		request	body	mmodel.CreateApiKeyInput	true	"Create api key input"
//	@Success	200		{object}	mmodel.CreatedApiKey
//	@Router		/v1/apikeys [post]
func (h *ApiKeyHandler) Create(c *fiber.Ctx) error {
	var in mmodel.CreateApiKeyInput
	if err := bindAndValidate(c, &in); err != nil {
		return WithError(c, err)
	}

	k, err := h.Command.CreateApiKey(c.UserContext(), caller(c), &in)
	if err != nil {
		return WithError(c, err)
	}

	return OK(c, k)
}

// Get godoc
//
//	@Summary	Get an API key by id
//	@Tags		ApiKeys
//	@Produce	json
//	@Param		id	path	string	true	"Api key id"
//	@Success	200	{object}	mmodel.ApiKey
//	@Router		/v1/apikeys/{id} [get]
func (h *ApiKeyHandler) Get(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return WithError(c, err)
	}

	k, err := h.Query.GetApiKey(c.UserContext(), caller(c), id)
	if err != nil {
		return WithError(c, err)
	}

	return OK(c, k)
}

// List godoc
//
//	@Summary	List API keys
//	@Tags		ApiKeys
//	@Produce	json
//	@Param		ownerId	query	string	false	"Restrict to one owner"
//	@Param		maxResults	query	int	false	"Page size cap"
//	@Param		pageToken	query	string	false	"Continuation token"
//	@Success	200	{object}	mmodel.Page[mmodel.ApiKey]
//	@Router		/v1/apikeys [get]
func (h *ApiKeyHandler) List(c *fiber.Ctx) error {
	in := query.ListApiKeysInput{
		OwnerID:    c.Query("ownerId"),
		MaxResults: c.QueryInt("maxResults"),
		Token:      c.Query("pageToken"),
	}

	page, err := h.Query.ListApiKeys(c.UserContext(), caller(c), in)
	if err != nil {
		return WithError(c, err)
	}

	return OK(c, page)
}

// Update godoc
//
//	@Summary	Update an API key's status or labels
//	@Tags		ApiKeys
//	@Accept		json
//	@Produce	json
//	@Param		id		path	string						true	"Api key id"
//	@Param		request	body	mmodel.UpdateApiKeyInput	true	"Update api key input"
//	@Success	200	{object}	mmodel.ApiKey
//	@Router		/v1/apikeys/{id} [put]
func (h *ApiKeyHandler) Update(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return WithError(c, err)
	}

	var in mmodel.UpdateApiKeyInput
	if err := bindAndValidate(c, &in); err != nil {
		return WithError(c, err)
	}

	k, err := h.Command.UpdateApiKey(c.UserContext(), caller(c), id, &in)
	if err != nil {
		return WithError(c, err)
	}

	return OK(c, k)
}

// Delete godoc
//
//	@Summary	Delete an API key
//	@Tags		ApiKeys
//	@Param		id	path	string	true	"Api key id"
//	@Success	204
//	@Router		/v1/apikeys/{id} [delete]
func (h *ApiKeyHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return WithError(c, err)
	}

	if err := h.Command.DeleteApiKey(c.UserContext(), caller(c), id); err != nil {
		return WithError(c, err)
	}

	return NoContent(c)
}
