package in

import (
	"github.com/gofiber/fiber/v2"

	"github.com/PAIR-Systems-Inc/goodmem-sub000/internal/services/command"
	"github.com/PAIR-Systems-Inc/goodmem-sub000/internal/services/query"
	"github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/mmodel"
)

// EmbedderHandler wires the /v1/embedders routes.
type EmbedderHandler struct {
	Command *command.UseCase
	Query   *query.UseCase
}

// Create godoc
//
//	@Summary	Create a new embedder
//	@Tags		Embedders
//	@Accept		json
//	@Produce	json
//	@Param		request	body	mmodel.CreateEmbedderInput	true	"Create embedder input"
//	@Success	200		{object}	mmodel.Embedder
//	@Router		/v1/embedders [post]
func (h *EmbedderHandler) Create(c *fiber.Ctx) error {
	var in mmodel.CreateEmbedderInput
	if err := bindAndValidate(c, &in); err != nil {
		return WithError(c, err)
	}

	e, err := h.Command.CreateEmbedder(c.UserContext(), caller(c), &in)
	if err != nil {
		return WithError(c, err)
	}

	return OK(c, e)
}

// Get godoc
//
//	@Summary	Get an embedder by id
//	@Tags		Embedders
//	@Produce	json
//	@Param		id	path	string	true	"Embedder id"
//	@Success	200	{object}	mmodel.Embedder
//	@Router		/v1/embedders/{id} [get]
func (h *EmbedderHandler) Get(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return WithError(c, err)
	}

	e, err := h.Query.GetEmbedder(c.UserContext(), caller(c), id)
	if err != nil {
		return WithError(c, err)
	}

	return OK(c, e)
}

// List godoc
//
//	@Summary	List embedders
//	@Tags		Embedders
//	@Produce	json
//	@Param		ownerId			query	string	false	"Restrict to one owner"
//	@Param		providerType	query	string	false	"Restrict to one provider type"
//	@Param		maxResults		query	int	false	"Page size cap"
//	@Param		pageToken		query	string	false	"Continuation token"
//	@Success	200	{object}	mmodel.Page[mmodel.Embedder]
//	@Router		/v1/embedders [get]
func (h *EmbedderHandler) List(c *fiber.Ctx) error {
	in := query.ListEmbeddersInput{
		OwnerID:      c.Query("ownerId"),
		ProviderType: mmodel.ParseProviderType(c.Query("providerType")),
		MaxResults:   c.QueryInt("maxResults"),
		Token:        c.Query("pageToken"),
	}

	if selectors := parseLabelSelectors(c); len(selectors) > 0 {
		in.LabelSelectors = selectors
	}

	page, err := h.Query.ListEmbedders(c.UserContext(), caller(c), in)
	if err != nil {
		return WithError(c, err)
	}

	return OK(c, page)
}

// Update godoc
//
//	@Summary	Update an embedder's mutable fields
//	@Tags		Embedders
//	@Accept		json
//	@Produce	json
//	@Param		id		path	string						true	"Embedder id"
//	@Param		request	body	mmodel.UpdateEmbedderInput	true	"Update embedder input"
//	@Success	200	{object}	mmodel.Embedder
//	@Router		/v1/embedders/{id} [put]
func (h *EmbedderHandler) Update(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return WithError(c, err)
	}

	if err := rejectFields(c, "providerType", "dimensionality"); err != nil {
		return WithError(c, err)
	}

	var in mmodel.UpdateEmbedderInput
	if err := bindAndValidate(c, &in); err != nil {
		return WithError(c, err)
	}

	e, err := h.Command.UpdateEmbedder(c.UserContext(), caller(c), id, &in)
	if err != nil {
		return WithError(c, err)
	}

	return OK(c, e)
}

// Delete godoc
//
//	@Summary	Delete an embedder
//	@Tags		Embedders
//	@Param		id	path	string	true	"Embedder id"
//	@Success	204
//	@Router		/v1/embedders/{id} [delete]
func (h *EmbedderHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return WithError(c, err)
	}

	if err := h.Command.DeleteEmbedder(c.UserContext(), caller(c), id); err != nil {
		return WithError(c, err)
	}

	return NoContent(c)
}
