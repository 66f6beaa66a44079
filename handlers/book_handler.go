package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pun-intended/lending-library/database"
	"github.com/pun-intended/lending-library/models"
)

type BookHandler struct{}

func NewBookHandler() *BookHandler { return &BookHandler{} }

type checkOutPayload struct {
	BookID    uint   `json:"book_id"`
	StudentID uint   `json:"student_id"`
	Date      string `json:"date"`
}

type checkInPayload struct {
	BookID    uint   `json:"book_id"`
	Date      string `json:"date"`
	Condition string `json:"condition"`
}

type addBookPayload struct {
	ISBN  string `json:"isbn"`
	SetID uint   `json:"set_id"`
}

// List handles GET /books?schoolId=&stage=. Availability is derived per
// school; without schoolId every title reports available=false.
func (h *BookHandler) List(c echo.Context) error {
	schoolID, ok := queryUint(c, "schoolId")
	if !ok {
		return badRequest(c, "schoolId must be numeric")
	}
	stage, ok := queryInt(c, "stage")
	if !ok {
		return badRequest(c, "stage must be numeric")
	}
	books, err := models.GetAllBooks(database.DB, schoolID, stage)
	if err != nil {
		return modelError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"books": books})
}

// Outstanding handles GET /books/outstanding?schoolId=.
func (h *BookHandler) Outstanding(c echo.Context) error {
	schoolID, ok := queryUint(c, "schoolId")
	if !ok {
		return badRequest(c, "schoolId must be numeric")
	}
	if schoolID == nil {
		return badRequest(c, "schoolId is required")
	}
	books, err := models.GetOutstanding(database.DB, *schoolID)
	if err != nil {
		return modelError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"books": books})
}

// Copies handles GET /books/copies?isbn=&schoolId=.
func (h *BookHandler) Copies(c echo.Context) error {
	isbn := c.QueryParam("isbn")
	if isbn == "" {
		return badRequest(c, "isbn is required")
	}
	schoolID, ok := queryUint(c, "schoolId")
	if !ok {
		return badRequest(c, "schoolId must be numeric")
	}
	copies, err := models.GetCopies(database.DB, isbn, schoolID)
	if err != nil {
		return modelError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"copies": copies})
}

// CheckOut handles POST /books/checkout.
func (h *BookHandler) CheckOut(c echo.Context) error {
	var p checkOutPayload
	if err := c.Bind(&p); err != nil {
		return badRequest(c, "invalid payload")
	}
	var msgs []string
	if p.BookID == 0 {
		msgs = append(msgs, "book_id is required")
	}
	if p.StudentID == 0 {
		msgs = append(msgs, "student_id is required")
	}
	date, ok := parseDate(p.Date)
	if !ok {
		msgs = append(msgs, "date must be YYYY-MM-DD")
	}
	if len(msgs) > 0 {
		return badRequest(c, msgs...)
	}

	borrowed, err := models.CheckOut(database.DB, p.BookID, p.StudentID, date)
	if err != nil {
		return modelError(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]any{"borrowed": borrowed})
}

// CheckIn handles POST /books/checkin.
func (h *BookHandler) CheckIn(c echo.Context) error {
	var p checkInPayload
	if err := c.Bind(&p); err != nil {
		return badRequest(c, "invalid payload")
	}
	var msgs []string
	if p.BookID == 0 {
		msgs = append(msgs, "book_id is required")
	}
	if p.Condition == "" {
		msgs = append(msgs, "condition is required")
	}
	date, ok := parseDate(p.Date)
	if !ok {
		msgs = append(msgs, "date must be YYYY-MM-DD")
	}
	if len(msgs) > 0 {
		return badRequest(c, msgs...)
	}

	returned, err := models.CheckIn(database.DB, p.BookID, date, p.Condition)
	if err != nil {
		return modelError(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]any{"returned": returned})
}

// Get handles GET /books/:id.
func (h *BookHandler) Get(c echo.Context) error {
	id, ok := paramID(c)
	if !ok {
		return badRequest(c, "id must be numeric")
	}
	book, err := models.GetBook(database.DB, id)
	if err != nil {
		return modelError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"book": book})
}

// Create handles POST /books: register a single copy.
func (h *BookHandler) Create(c echo.Context) error {
	var p addBookPayload
	if err := c.Bind(&p); err != nil {
		return badRequest(c, "invalid payload")
	}
	var msgs []string
	if p.ISBN == "" {
		msgs = append(msgs, "isbn is required")
	}
	if p.SetID == 0 {
		msgs = append(msgs, "set_id is required")
	}
	if len(msgs) > 0 {
		return badRequest(c, msgs...)
	}

	id, err := models.AddBook(database.DB, p.ISBN, p.SetID)
	if err != nil {
		return modelError(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]any{"book": map[string]any{"id": id}})
}

// Update handles PATCH /books/:id with a partial copy update.
func (h *BookHandler) Update(c echo.Context) error {
	id, ok := paramID(c)
	if !ok {
		return badRequest(c, "id must be numeric")
	}
	var patch models.BookPatch
	if err := c.Bind(&patch); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := models.UpdateBook(database.DB, id, patch); err != nil {
		return modelError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"book": map[string]any{"id": id}})
}

// Delete handles DELETE /books/:id.
func (h *BookHandler) Delete(c echo.Context) error {
	id, ok := paramID(c)
	if !ok {
		return badRequest(c, "id must be numeric")
	}
	if err := models.RemoveBook(database.DB, id); err != nil {
		return modelError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"book": map[string]any{"id": id}})
}
