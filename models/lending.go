package models

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// BorrowedRecord is the checkout response: the freshly opened ledger row.
type BorrowedRecord struct {
	ID         uint   `json:"id"`
	BookID     uint   `json:"book_id"`
	StudentID  uint   `json:"student_id"`
	BorrowDate string `json:"borrow_date"`
}

// ReturnedRecord is the check-in response: the closed ledger row.
type ReturnedRecord struct {
	ID         uint   `json:"id"`
	ReturnDate string `json:"return_date"`
	Condition  string `json:"condition"`
}

// CheckOut opens a borrow record for a copy. The existence checks, the
// open-loan check and the insert run in one transaction so two concurrent
// checkouts of the same copy cannot both succeed; the partial unique index
// on borrow_records backstops the race at the database level.
func CheckOut(db *gorm.DB, bookID, studentID uint, date time.Time) (*BorrowedRecord, error) {
	var rec BorrowRecord
	err := db.Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&Book{}).Where("id = ?", bookID).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return fmt.Errorf("no book with id %d: %w", bookID, ErrNotFound)
		}
		if err := tx.Model(&Student{}).Where("id = ?", studentID).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return fmt.Errorf("no student with id %d: %w", studentID, ErrNotFound)
		}
		if err := tx.Model(&BorrowRecord{}).
			Where("book_id = ? AND return_date IS NULL", bookID).
			Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return fmt.Errorf("book %d is already checked out: %w", bookID, ErrConflict)
		}

		rec = BorrowRecord{BookID: bookID, StudentID: studentID, BorrowDate: date}
		if err := tx.Create(&rec).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fmt.Errorf("book %d is already checked out: %w", bookID, ErrConflict)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &BorrowedRecord{
		ID:         rec.ID,
		BookID:     rec.BookID,
		StudentID:  rec.StudentID,
		BorrowDate: rec.BorrowDate.Format(time.DateOnly),
	}, nil
}

// CheckIn closes the unique open borrow record for a copy and records the
// returned condition on both the record and the copy. The open-record lookup
// and both updates run in one transaction; the copy is never touched when the
// lookup fails. More than one open record means the ledger invariant is
// broken, which fails loudly instead of picking a row.
func CheckIn(db *gorm.DB, bookID uint, date time.Time, condition string) (*ReturnedRecord, error) {
	var out ReturnedRecord
	err := db.Transaction(func(tx *gorm.DB) error {
		var open []BorrowRecord
		if err := tx.Where("book_id = ? AND return_date IS NULL", bookID).Find(&open).Error; err != nil {
			return err
		}
		if len(open) == 0 {
			return fmt.Errorf("no outstanding record for book %d: %w", bookID, ErrNotFound)
		}
		if len(open) > 1 {
			return fmt.Errorf("%d open records for book %d: %w", len(open), bookID, ErrConflict)
		}

		rec := open[0]
		updates := map[string]any{"return_date": date, "return_condition": condition}
		if err := tx.Model(&BorrowRecord{}).Where("id = ?", rec.ID).Updates(updates).Error; err != nil {
			return err
		}
		if err := tx.Model(&Book{}).Where("id = ?", bookID).Update("condition", condition).Error; err != nil {
			return err
		}
		out = ReturnedRecord{ID: rec.ID, ReturnDate: date.Format(time.DateOnly), Condition: condition}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}
