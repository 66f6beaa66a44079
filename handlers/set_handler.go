package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pun-intended/lending-library/database"
	"github.com/pun-intended/lending-library/models"
)

type SetHandler struct{}

func NewSetHandler() *SetHandler { return &SetHandler{} }

type createSetPayload struct {
	SchoolID uint `json:"schoolId"`
	Stage    *int `json:"stage"`
}

type patchSetPayload struct {
	SchoolID uint `json:"schoolId"`
}

// List handles GET /sets?schoolId=: the per-set copy inventory.
func (h *SetHandler) List(c echo.Context) error {
	schoolID, ok := queryUint(c, "schoolId")
	if !ok {
		return badRequest(c, "schoolId must be numeric")
	}
	books, err := models.GetSetBooks(database.DB, schoolID)
	if err != nil {
		return modelError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"sets": books})
}

// Create handles POST /sets/new: create a set and fan out one copy per
// catalog title, optionally limited to one reading stage.
func (h *SetHandler) Create(c echo.Context) error {
	var p createSetPayload
	if err := c.Bind(&p); err != nil {
		return badRequest(c, "invalid payload")
	}
	if p.SchoolID == 0 {
		return badRequest(c, "schoolId is required")
	}

	setID, err := models.CreateSet(database.DB, p.SchoolID, p.Stage)
	if err != nil {
		return modelError(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]any{"newSet": map[string]any{"set_id": setID}})
}

// Patch handles PATCH /sets/:id: reassign the set to another school.
func (h *SetHandler) Patch(c echo.Context) error {
	id, ok := paramID(c)
	if !ok {
		return badRequest(c, "id must be numeric")
	}
	var p patchSetPayload
	if err := c.Bind(&p); err != nil {
		return badRequest(c, "invalid payload")
	}
	if p.SchoolID == 0 {
		return badRequest(c, "schoolId is required")
	}

	if err := models.PatchSet(database.DB, id, p.SchoolID); err != nil {
		return modelError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"patchSet": map[string]any{"set_id": id}})
}

// Delete handles DELETE /sets/:id: remove the set and its copies.
func (h *SetHandler) Delete(c echo.Context) error {
	id, ok := paramID(c)
	if !ok {
		return badRequest(c, "id must be numeric")
	}
	if err := models.RemoveSet(database.DB, id); err != nil {
		return modelError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"deleteSet": map[string]any{"set_id": id}})
}
