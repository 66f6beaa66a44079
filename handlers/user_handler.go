package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/pun-intended/lending-library/database"
	"github.com/pun-intended/lending-library/models"
)

type UserHandler struct{}

func NewUserHandler() *UserHandler { return &UserHandler{} }

type createUserPayload struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Password  string `json:"password"`
	Role      string `json:"role"`
}

func (h *UserHandler) List(c echo.Context) error {
	users, err := models.GetAllUsers(database.DB)
	if err != nil {
		return modelError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"users": users})
}

func (h *UserHandler) Get(c echo.Context) error {
	id, ok := paramID(c)
	if !ok {
		return badRequest(c, "id must be numeric")
	}
	user, err := models.GetUser(database.DB, id)
	if err != nil {
		return modelError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"user": user})
}

// Create handles POST /users. Only a master admin may mint another
// master admin.
func (h *UserHandler) Create(c echo.Context) error {
	var p createUserPayload
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
	if p.Password == "" {
		msgs = append(msgs, "password is required")
	}
	if p.Role == "" {
		p.Role = models.RoleUser
	}
	if len(msgs) > 0 {
		return badRequest(c, msgs...)
	}

	callerRole, _ := c.Get("role").(string)
	if p.Role == models.RoleMasterAdmin && callerRole != models.RoleMasterAdmin {
		return echo.NewHTTPError(http.StatusUnauthorized, map[string]any{"error": "FORBIDDEN_ROLE"})
	}

	user, err := models.CreateUser(database.DB,
		strings.TrimSpace(p.FirstName), strings.TrimSpace(p.LastName), p.Password, p.Role)
	if err != nil {
		return modelError(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]any{"user": user})
}

func (h *UserHandler) Patch(c echo.Context) error {
	id, ok := paramID(c)
	if !ok {
		return badRequest(c, "id must be numeric")
	}
	var patch models.UserPatch
	if err := c.Bind(&patch); err != nil {
		return badRequest(c, "invalid payload")
	}
	user, err := models.PatchUser(database.DB, id, patch)
	if err != nil {
		return modelError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"updated": user})
}

func (h *UserHandler) Delete(c echo.Context) error {
	id, ok := paramID(c)
	if !ok {
		return badRequest(c, "id must be numeric")
	}
	if err := models.RemoveUser(database.DB, id); err != nil {
		return modelError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"deleted": map[string]any{"id": id}})
}
