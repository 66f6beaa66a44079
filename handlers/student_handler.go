package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/pun-intended/lending-library/database"
	"github.com/pun-intended/lending-library/models"
)

type StudentHandler struct{}

func NewStudentHandler() *StudentHandler { return &StudentHandler{} }

type createStudentPayload struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	ClassID   uint   `json:"class_id"`
}

type patchStudentPayload struct {
	ClassID uint `json:"class_id"`
}

// List handles GET /students?schoolId=: the roster with each student's
// current loan and reading history.
func (h *StudentHandler) List(c echo.Context) error {
	schoolID, ok := queryUint(c, "schoolId")
	if !ok {
		return badRequest(c, "schoolId must be numeric")
	}
	students, err := models.GetAllStudents(database.DB, schoolID)
	if err != nil {
		return modelError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"students": students})
}

func (h *StudentHandler) Get(c echo.Context) error {
	id, ok := paramID(c)
	if !ok {
		return badRequest(c, "id must be numeric")
	}
	student, err := models.GetStudent(database.DB, id)
	if err != nil {
		return modelError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"student": student})
}

func (h *StudentHandler) Create(c echo.Context) error {
	var p createStudentPayload
	if err := c.Bind(&p); err != nil {
		return badRequest(c, "invalid payload")
	}
	var msgs []string
	if strings.TrimSpace(p.FirstName) == "" {
		msgs = append(msgs, "first_name is required")
	}
	if strings.TrimSpace(p.LastName) == "" {
		msgs = append(msgs, "last_name is required")
	}
	if p.ClassID == 0 {
		msgs = append(msgs, "class_id is required")
	}
	if len(msgs) > 0 {
		return badRequest(c, msgs...)
	}

	student, err := models.CreateStudent(database.DB,
		strings.TrimSpace(p.FirstName), strings.TrimSpace(p.LastName), p.ClassID)
	if err != nil {
		return modelError(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]any{"newStudent": student})
}

// Patch handles PATCH /students/:id: move the student to another class.
func (h *StudentHandler) Patch(c echo.Context) error {
	id, ok := paramID(c)
	if !ok {
		return badRequest(c, "id must be numeric")
	}
	var p patchStudentPayload
	if err := c.Bind(&p); err != nil {
		return badRequest(c, "invalid payload")
	}
	if p.ClassID == 0 {
		return badRequest(c, "class_id is required")
	}
	if err := models.SetStudentClass(database.DB, id, p.ClassID); err != nil {
		return modelError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"student": map[string]any{"id": id, "class_id": p.ClassID}})
}

func (h *StudentHandler) Delete(c echo.Context) error {
	id, ok := paramID(c)
	if !ok {
		return badRequest(c, "id must be numeric")
	}
	if err := models.RemoveStudent(database.DB, id); err != nil {
		return modelError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"student": map[string]any{"id": id}})
}

// Unread handles GET /students/:id/unread?schoolId=: catalog titles the
// student has never borrowed, with availability for the given school.
func (h *StudentHandler) Unread(c echo.Context) error {
	id, ok := paramID(c)
	if !ok {
		return badRequest(c, "id must be numeric")
	}
	schoolID, ok := queryUint(c, "schoolId")
	if !ok {
		return badRequest(c, "schoolId must be numeric")
	}
	if schoolID == nil {
		return badRequest(c, "schoolId is required")
	}
	if _, err := models.GetStudent(database.DB, id); err != nil {
		return modelError(c, err)
	}
	unread, err := models.GetUnreadBooks(database.DB, id, *schoolID)
	if err != nil {
		return modelError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"unread": unread})
}
