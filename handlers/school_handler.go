package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/pun-intended/lending-library/database"
	"github.com/pun-intended/lending-library/models"
)

type SchoolHandler struct{}

func NewSchoolHandler() *SchoolHandler { return &SchoolHandler{} }

type schoolPayload struct {
	Name string `json:"name"`
}

func (h *SchoolHandler) List(c echo.Context) error {
	schools, err := models.GetAllSchools(database.DB)
	if err != nil {
		return modelError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"schools": schools})
}

func (h *SchoolHandler) Get(c echo.Context) error {
	id, ok := paramID(c)
	if !ok {
		return badRequest(c, "id must be numeric")
	}
	school, err := models.GetSchool(database.DB, id)
	if err != nil {
		return modelError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"school": school})
}

func (h *SchoolHandler) Create(c echo.Context) error {
	var p schoolPayload
	if err := c.Bind(&p); err != nil {
		return badRequest(c, "invalid payload")
	}
	name := strings.TrimSpace(p.Name)
	if name == "" {
		return badRequest(c, "name is required")
	}
	school, err := models.CreateSchool(database.DB, name)
	if err != nil {
		return modelError(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]any{"school": school})
}

func (h *SchoolHandler) Patch(c echo.Context) error {
	id, ok := paramID(c)
	if !ok {
		return badRequest(c, "id must be numeric")
	}
	var p schoolPayload
	if err := c.Bind(&p); err != nil {
		return badRequest(c, "invalid payload")
	}
	name := strings.TrimSpace(p.Name)
	if name == "" {
		return badRequest(c, "name is required")
	}
	school, err := models.PatchSchool(database.DB, id, name)
	if err != nil {
		return modelError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"school": school})
}

func (h *SchoolHandler) Delete(c echo.Context) error {
	id, ok := paramID(c)
	if !ok {
		return badRequest(c, "id must be numeric")
	}
	if err := models.RemoveSchool(database.DB, id); err != nil {
		return modelError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"school": map[string]any{"id": id}})
}
