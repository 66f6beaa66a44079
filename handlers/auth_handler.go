package handlers

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/pun-intended/lending-library/database"
	"github.com/pun-intended/lending-library/middlewares"
	"github.com/pun-intended/lending-library/models"
)

type AuthHandler struct {
	JWTSecret string
	TokenTTL  time.Duration
}

func NewAuthHandler(secret string) *AuthHandler {
	return &AuthHandler{JWTSecret: secret, TokenTTL: 24 * time.Hour}
}

func (h *AuthHandler) signJWT(id uint, role string) (string, error) {
	now := time.Now()
	claims := middlewares.Claims{
		ID:   id,
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(h.TokenTTL)),
		},
	}
	tk := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tk.SignedString([]byte(h.JWTSecret))
}

type tokenPayload struct {
	ID       uint   `json:"id"`
	Password string `json:"password"`
}

// Token handles POST /auth/token: verify credentials, return a bearer JWT
// carrying {id, role}.
func (h *AuthHandler) Token(c echo.Context) error {
	var p tokenPayload
	if err := c.Bind(&p); err != nil {
		return badRequest(c, "invalid payload")
	}
	var msgs []string
	if p.ID == 0 {
		msgs = append(msgs, "id is required")
	}
	if p.Password == "" {
		msgs = append(msgs, "password is required")
	}
	if len(msgs) > 0 {
		return badRequest(c, msgs...)
	}

	user, err := models.Authenticate(database.DB, p.ID, p.Password)
	if err != nil {
		return modelError(c, err)
	}
	token, err := h.signJWT(user.ID, user.Role)
	if err != nil {
		return modelError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"token": token})
}
