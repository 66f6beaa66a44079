package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/pun-intended/lending-library/models"
)

// modelError maps a model-layer error kind onto its HTTP response body
// {error:{message,status}}. Anything outside the taxonomy is a 500.
func modelError(c echo.Context, err error) error {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, models.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, models.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, models.ErrBadRequest):
		status = http.StatusBadRequest
	case errors.Is(err, models.ErrUnauthorized):
		status = http.StatusUnauthorized
	}
	return c.JSON(status, map[string]any{
		"error": map[string]any{"message": err.Error(), "status": status},
	})
}

// badRequest reports payload validation failures as a message list.
func badRequest(c echo.Context, msgs ...string) error {
	return c.JSON(http.StatusBadRequest, map[string]any{
		"error": map[string]any{"message": msgs, "status": http.StatusBadRequest},
	})
}

// paramID parses the numeric :id route parameter.
func paramID(c echo.Context) (uint, bool) {
	n, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, false
	}
	return uint(n), true
}

// queryUint parses an optional numeric query parameter: nil when absent,
// ok=false when present but not a number.
func queryUint(c echo.Context, name string) (*uint, bool) {
	v := c.QueryParam(name)
	if v == "" {
		return nil, true
	}
	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return nil, false
	}
	u := uint(n)
	return &u, true
}

// queryInt parses an optional numeric query parameter: nil when absent,
// ok=false when present but not a number.
func queryInt(c echo.Context, name string) (*int, bool) {
	v := c.QueryParam(name)
	if v == "" {
		return nil, true
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil, false
	}
	return &n, true
}

// parseDate accepts the wire date format YYYY-MM-DD.
func parseDate(s string) (time.Time, bool) {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
