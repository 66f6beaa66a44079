package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/pun-intended/lending-library/database"
	"github.com/pun-intended/lending-library/models"
)

type ClassHandler struct{}

func NewClassHandler() *ClassHandler { return &ClassHandler{} }

type createClassPayload struct {
	Name     string `json:"name"`
	SchoolID uint   `json:"schoolId"`
}

func (h *ClassHandler) List(c echo.Context) error {
	classes, err := models.GetAllClasses(database.DB)
	if err != nil {
		return modelError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"classes": classes})
}

func (h *ClassHandler) Get(c echo.Context) error {
	id, ok := paramID(c)
	if !ok {
		return badRequest(c, "id must be numeric")
	}
	cls, err := models.GetClass(database.DB, id)
	if err != nil {
		return modelError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"classInfo": cls})
}

func (h *ClassHandler) Create(c echo.Context) error {
	var p createClassPayload
	if err := c.Bind(&p); err != nil {
		return badRequest(c, "invalid payload")
	}
	var msgs []string
	if strings.TrimSpace(p.Name) == "" {
		msgs = append(msgs, "name is required")
	}
	if p.SchoolID == 0 {
		msgs = append(msgs, "schoolId is required")
	}
	if len(msgs) > 0 {
		return badRequest(c, msgs...)
	}

	cls, err := models.CreateClass(database.DB, strings.TrimSpace(p.Name), p.SchoolID)
	if err != nil {
		return modelError(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]any{"newClass": cls})
}

func (h *ClassHandler) Patch(c echo.Context) error {
	id, ok := paramID(c)
	if !ok {
		return badRequest(c, "id must be numeric")
	}
	var patch models.ClassPatch
	if err := c.Bind(&patch); err != nil {
		return badRequest(c, "invalid payload")
	}
	cls, err := models.PatchClass(database.DB, id, patch)
	if err != nil {
		return modelError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"classInfo": cls})
}

func (h *ClassHandler) Delete(c echo.Context) error {
	id, ok := paramID(c)
	if !ok {
		return badRequest(c, "id must be numeric")
	}
	if err := models.RemoveClass(database.DB, id); err != nil {
		return modelError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"classInfo": map[string]any{"id": id}})
}
