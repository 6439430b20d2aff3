package in

import (
	"github.com/gofiber/fiber/v2"

	"github.com/PAIR-Systems-Inc/goodmem-sub000/internal/services/command"
	"github.com/PAIR-Systems-Inc/goodmem-sub000/internal/services/query"
	"github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/mmodel"
)

// SpaceHandler wires the /v1/spaces routes.
type SpaceHandler struct {
	Command *command.UseCase
	Query   *query.UseCase
}

// Create godoc
//
//	@Summary	Create a new space
//	@Tags		Spaces
//	@Accept		json
//	@Produce	json
//	@Param		request	body	mmodel.CreateSpaceInput	true	"Create space input"
//	@Success	200		{object}	mmodel.Space
//	@Router		/v1/spaces [post]
func (h *SpaceHandler) Create(c *fiber.Ctx) error {
	var in mmodel.CreateSpaceInput
	if err := bindAndValidate(c, &in); err != nil {
		return WithError(c, err)
	}

	s, err := h.Command.CreateSpace(c.UserContext(), caller(c), &in)
	if err != nil {
		return WithError(c, err)
	}

	return OK(c, s)
}

// Get godoc
//
//	@Summary	Get a space by id
//	@Tags		Spaces
//	@Produce	json
//	@Param		id	path	string	true	"Space id"
//	@Success	200	{object}	mmodel.Space
//	@Router		/v1/spaces/{id} [get]
func (h *SpaceHandler) Get(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return WithError(c, err)
	}

	s, err := h.Query.GetSpace(c.UserContext(), caller(c), id)
	if err != nil {
		return WithError(c, err)
	}

	return OK(c, s)
}

// List godoc
//
//	@Summary	List spaces
//	@Tags		Spaces
//	@Produce	json
//	@Param		ownerId		query	string	false	"Restrict to one owner"
//	@Param		nameFilter	query	string	false	"Glob-style name match"
//	@Param		sortBy		query	string	false	"created_time|name|updated_time"
//	@Param		sortOrder	query	string	false	"ASCENDING|DESCENDING"
//	@Param		maxResults	query	int	false	"Page size cap"
//	@Param		pageToken	query	string	false	"Continuation token"
//	@Success	200	{object}	mmodel.Page[mmodel.Space]
//	@Router		/v1/spaces [get]
func (h *SpaceHandler) List(c *fiber.Ctx) error {
	in := query.ListSpacesInput{
		OwnerID:    c.Query("ownerId"),
		NameFilter: c.Query("nameFilter"),
		SortBy:     mmodel.ParseSortField(c.Query("sortBy")),
		SortOrder:  mmodel.ParseSortOrder(c.Query("sortOrder")),
		MaxResults: c.QueryInt("maxResults"),
		Token:      c.Query("pageToken"),
	}

	if selectors := parseLabelSelectors(c); len(selectors) > 0 {
		in.LabelSelectors = selectors
	}

	page, err := h.Query.ListSpaces(c.UserContext(), caller(c), in)
	if err != nil {
		return WithError(c, err)
	}

	return OK(c, page)
}

// Update godoc
//
//	@Summary	Update a space's mutable fields
//	@Tags		Spaces
//	@Accept		json
//	@Produce	json
//	@Param		id		path	string					true	"Space id"
//	@Param		request	body	mmodel.UpdateSpaceInput	true	"Update space input"
//	@Success	200	{object}	mmodel.Space
//	@Router		/v1/spaces/{id} [put]
func (h *SpaceHandler) Update(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return WithError(c, err)
	}

	var in mmodel.UpdateSpaceInput
	if err := bindAndValidate(c, &in); err != nil {
		return WithError(c, err)
	}

	s, err := h.Command.UpdateSpace(c.UserContext(), caller(c), id, &in)
	if err != nil {
		return WithError(c, err)
	}

	return OK(c, s)
}

// Delete godoc
//
//	@Summary	Delete a space and cascade-delete its memories
//	@Tags		Spaces
//	@Param		id	path	string	true	"Space id"
//	@Success	204
//	@Router		/v1/spaces/{id} [delete]
func (h *SpaceHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return WithError(c, err)
	}

	if err := h.Command.DeleteSpace(c.UserContext(), caller(c), id); err != nil {
		return WithError(c, err)
	}

	return NoContent(c)
}
