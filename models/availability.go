package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Availability is derived at read time, never stored: a title is available
// for a school iff some copy of it, in a set owned by that school, has no
// open borrow record. The EXISTS form below makes a title with zero copies
// for the school unavailable, and is immune to the false positive a closed
// historical loan would otherwise introduce.
const availableExpr = `EXISTS (
		SELECT 1 FROM books b
		JOIN book_sets s ON s.set_id = b.set_id
		WHERE b.isbn = m.isbn
		  AND s.school_id = ?
		  AND NOT EXISTS (
			SELECT 1 FROM borrow_records r
			WHERE r.book_id = b.id AND r.return_date IS NULL))`

// BookAvailability is one catalog row with its derived availability flag.
type BookAvailability struct {
	ISBN      string `json:"isbn"`
	Title     string `json:"title"`
	Stage     int    `json:"stage"`
	Available bool   `json:"available"`
}

// GetAllBooks lists the catalog with per-school availability, optionally
// filtered by reading stage. Without a school there is nothing to scope
// availability to, so every title reports available=false; that degenerate
// mode is deliberate and mirrors the unscoped catalog listing.
func GetAllBooks(db *gorm.DB, schoolID *uint, stage *int) ([]BookAvailability, error) {
	var (
		query string
		args  []any
	)
	if schoolID != nil {
		query = "SELECT m.isbn, m.title, m.stage, " + availableExpr + " AS available FROM master_books m"
		args = append(args, *schoolID)
	} else {
		query = "SELECT m.isbn, m.title, m.stage, ? AS available FROM master_books m"
		args = append(args, false)
	}
	if stage != nil {
		query += " WHERE m.stage = ?"
		args = append(args, *stage)
	}
	query += " ORDER BY m.isbn"

	books := []BookAvailability{}
	if err := db.Raw(query, args...).Scan(&books).Error; err != nil {
		return nil, err
	}
	return books, nil
}

// GetUnreadBooks lists the catalog rows for titles the student has never
// borrowed, open or closed, with availability computed for the given school.
func GetUnreadBooks(db *gorm.DB, studentID, schoolID uint) ([]BookAvailability, error) {
	query := "SELECT m.isbn, m.title, m.stage, " + availableExpr + ` AS available
		FROM master_books m
		WHERE m.isbn NOT IN (
			SELECT b.isbn FROM borrow_records r
			JOIN books b ON b.id = r.book_id
			WHERE r.student_id = ?)
		ORDER BY m.isbn`

	books := []BookAvailability{}
	if err := db.Raw(query, schoolID, studentID).Scan(&books).Error; err != nil {
		return nil, err
	}
	return books, nil
}

// OutstandingBook is one currently open loan within a school.
type OutstandingBook struct {
	BookID     uint   `json:"book_id"`
	ISBN       string `json:"isbn"`
	Title      string `json:"title"`
	Stage      int    `json:"stage"`
	Condition  string `json:"condition"`
	StudentID  uint   `json:"student_id"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	BorrowDate string `json:"borrow_date"`
}

// GetOutstanding lists every open borrow record for copies owned by the
// school, joined with catalog and student data.
func GetOutstanding(db *gorm.DB, schoolID uint) ([]OutstandingBook, error) {
	type row struct {
		BookID     uint
		ISBN       string
		Title      string
		Stage      int
		Condition  string
		StudentID  uint
		FirstName  string
		LastName   string
		BorrowDate time.Time
	}
	var rows []row
	err := db.Raw(`
		SELECT b.id AS book_id, m.isbn, m.title, m.stage, b.condition,
		       st.id AS student_id, st.first_name, st.last_name, r.borrow_date
		FROM books b
		JOIN borrow_records r ON r.book_id = b.id AND r.return_date IS NULL
		JOIN book_sets s ON s.set_id = b.set_id
		JOIN master_books m ON m.isbn = b.isbn
		JOIN students st ON st.id = r.student_id
		WHERE s.school_id = ?
		ORDER BY r.borrow_date, b.id`, schoolID).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	books := make([]OutstandingBook, 0, len(rows))
	for _, r := range rows {
		books = append(books, OutstandingBook{
			BookID:     r.BookID,
			ISBN:       r.ISBN,
			Title:      r.Title,
			Stage:      r.Stage,
			Condition:  r.Condition,
			StudentID:  r.StudentID,
			FirstName:  r.FirstName,
			LastName:   r.LastName,
			BorrowDate: r.BorrowDate.Format(time.DateOnly),
		})
	}
	return books, nil
}

// BorrowingStudent identifies who currently holds a copy.
type BorrowingStudent struct {
	ID         uint   `json:"id"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	ClassID    uint   `json:"class_id"`
	BorrowDate string `json:"borrow_date"`
}

// BookDetail is a single copy with its catalog data and, when the copy is
// out, the borrowing student.
type BookDetail struct {
	BookID    uint              `json:"book_id"`
	ISBN      string            `json:"isbn"`
	Title     string            `json:"title"`
	Stage     int               `json:"stage"`
	Condition string            `json:"condition"`
	Student   *BorrowingStudent `json:"student,omitempty"`
}

// GetBook returns one copy's detail. The student field is only present when
// an open borrow record exists for the copy.
func GetBook(db *gorm.DB, bookID uint) (*BookDetail, error) {
	type bookRow struct {
		BookID    uint
		ISBN      string
		Title     string
		Stage     int
		Condition string
	}
	var book bookRow
	res := db.Raw(`
		SELECT b.id AS book_id, b.isbn, m.title, m.stage, b.condition
		FROM books b
		JOIN master_books m ON m.isbn = b.isbn
		WHERE b.id = ?`, bookID).Scan(&book)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("no book with id %d: %w", bookID, ErrNotFound)
	}
	detail := BookDetail{
		BookID:    book.BookID,
		ISBN:      book.ISBN,
		Title:     book.Title,
		Stage:     book.Stage,
		Condition: book.Condition,
	}

	type row struct {
		ID         uint
		FirstName  string
		LastName   string
		ClassID    uint
		BorrowDate time.Time
	}
	var borrower row
	res = db.Raw(`
		SELECT st.id, st.first_name, st.last_name, st.class_id, r.borrow_date
		FROM borrow_records r
		JOIN students st ON st.id = r.student_id
		WHERE r.book_id = ? AND r.return_date IS NULL`, bookID).Scan(&borrower)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected > 0 {
		detail.Student = &BorrowingStudent{
			ID:         borrower.ID,
			FirstName:  borrower.FirstName,
			LastName:   borrower.LastName,
			ClassID:    borrower.ClassID,
			BorrowDate: borrower.BorrowDate.Format(time.DateOnly),
		}
	}
	return &detail, nil
}

// CopyInfo is one physical copy of a title with its current borrower, if any.
type CopyInfo struct {
	BookID    uint              `json:"book_id"`
	ISBN      string            `json:"isbn"`
	Title     string            `json:"title"`
	Stage     int               `json:"stage"`
	Condition string            `json:"condition"`
	SchoolID  *uint             `json:"school_id"`
	Student   *BorrowingStudent `json:"student,omitempty"`
}

// GetCopies lists every copy of an ISBN, optionally scoped to one school.
func GetCopies(db *gorm.DB, isbn string, schoolID *uint) ([]CopyInfo, error) {
	type row struct {
		BookID     uint
		ISBN       string
		Title      string
		Stage      int
		Condition  string
		SchoolID   *uint
		StudentID  *uint
		FirstName  *string
		LastName   *string
		ClassID    *uint
		BorrowDate *time.Time
	}
	query := `
		SELECT b.id AS book_id, b.isbn, m.title, m.stage, b.condition, s.school_id,
		       st.id AS student_id, st.first_name, st.last_name, st.class_id, r.borrow_date
		FROM books b
		JOIN master_books m ON m.isbn = b.isbn
		JOIN book_sets s ON s.set_id = b.set_id
		LEFT JOIN borrow_records r ON r.book_id = b.id AND r.return_date IS NULL
		LEFT JOIN students st ON st.id = r.student_id
		WHERE b.isbn = ?`
	args := []any{isbn}
	if schoolID != nil {
		query += " AND s.school_id = ?"
		args = append(args, *schoolID)
	}
	query += " ORDER BY b.id"

	var rows []row
	if err := db.Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, err
	}

	copies := make([]CopyInfo, 0, len(rows))
	for _, r := range rows {
		info := CopyInfo{
			BookID:    r.BookID,
			ISBN:      r.ISBN,
			Title:     r.Title,
			Stage:     r.Stage,
			Condition: r.Condition,
			SchoolID:  r.SchoolID,
		}
		if r.StudentID != nil {
			info.Student = &BorrowingStudent{
				ID:         *r.StudentID,
				FirstName:  *r.FirstName,
				LastName:   *r.LastName,
				ClassID:    *r.ClassID,
				BorrowDate: r.BorrowDate.Format(time.DateOnly),
			}
		}
		copies = append(copies, info)
	}
	return copies, nil
}
