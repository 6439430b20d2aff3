package in

import (
	"github.com/gofiber/fiber/v2"

	"github.com/PAIR-Systems-Inc/goodmem-sub000/internal/services/command"
	"github.com/PAIR-Systems-Inc/goodmem-sub000/internal/services/query"
	"github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/mmodel"
)

// MemoryHandler wires the /v1/memories and
// /v1/spaces/{spaceId}/memories routes.
type MemoryHandler struct {
	Command *command.UseCase
	Query   *query.UseCase
}

// Create godoc
//
//	@Summary	Register a memory for an already-uploaded blob
//	@Tags		Memories
//	@Accept		json
//	@Produce	json
//	@Param		request	body	mmodel.CreateMemoryInput	true	"Create memory input"
//	@Success	200		{object}	mmodel.Memory
//	@Router		/v1/memories [post]
func (h *MemoryHandler) Create(c *fiber.Ctx) error {
	var in mmodel.CreateMemoryInput
	if err := bindAndValidate(c, &in); err != nil {
		return WithError(c, err)
	}

	m, err := h.Command.CreateMemory(c.UserContext(), caller(c), &in)
	if err != nil {
		return WithError(c, err)
	}

	return OK(c, m)
}

// Get godoc
//
//	@Summary	Get a memory by id
//	@Tags		Memories
//	@Produce	json
//	@Param		id	path	string	true	"Memory id"
//	@Success	200	{object}	mmodel.Memory
//	@Router		/v1/memories/{id} [get]
func (h *MemoryHandler) Get(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return WithError(c, err)
	}

	m, err := h.Query.GetMemory(c.UserContext(), caller(c), id)
	if err != nil {
		return WithError(c, err)
	}

	return OK(c, m)
}

// ListForSpace godoc
//
//	@Summary	List memories within a space
//	@Tags		Memories
//	@Produce	json
//	@Param		spaceId	path	string	true	"Space id"
//	@Param		status	query	string	false	"Restrict to one processing status"
//	@Param		maxResults	query	int	false	"Page size cap"
//	@Param		pageToken	query	string	false	"Continuation token"
//	@Success	200	{object}	mmodel.Page[mmodel.Memory]
//	@Router		/v1/spaces/{spaceId}/memories [get]
func (h *MemoryHandler) ListForSpace(c *fiber.Ctx) error {
	spaceID, err := pathID(c, "spaceId")
	if err != nil {
		return WithError(c, err)
	}

	in := query.ListMemoriesInput{SpaceID: spaceID, MaxResults: c.QueryInt("maxResults"), Token: c.Query("pageToken")}

	if s := c.Query("status"); s != "" {
		status := mmodel.ParseProcessingStatus(s)
		in.Status = &status
	}

	page, err := h.Query.ListMemories(c.UserContext(), caller(c), in)
	if err != nil {
		return WithError(c, err)
	}

	return OK(c, page)
}

// Delete godoc
//
//	@Summary	Delete a memory
//	@Tags		Memories
//	@Param		id	path	string	true	"Memory id"
//	@Success	204
//	@Router		/v1/memories/{id} [delete]
func (h *MemoryHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return WithError(c, err)
	}

	if err := h.Command.DeleteMemory(c.UserContext(), caller(c), id); err != nil {
		return WithError(c, err)
	}

	return NoContent(c)
}
