package models

import (
	"fmt"

	"gorm.io/gorm"
)

// CreateSet creates a book set for a school and fans out one copy per
// catalog title, optionally restricted to a reading stage. Set row and
// fan-out run in one transaction so a failed fan-out leaves no orphaned set.
func CreateSet(db *gorm.DB, schoolID uint, stage *int) (uint, error) {
	var setID uint
	err := db.Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&School{}).Where("id = ?", schoolID).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return fmt.Errorf("no school with id %d: %w", schoolID, ErrNotFound)
		}

		set := BookSet{SchoolID: &schoolID}
		if err := tx.Create(&set).Error; err != nil {
			return err
		}

		query := "INSERT INTO books (isbn, set_id) SELECT isbn, ? FROM master_books"
		args := []any{set.SetID}
		if stage != nil {
			query += " WHERE stage = ?"
			args = append(args, *stage)
		}
		if err := tx.Exec(query, args...).Error; err != nil {
			return err
		}
		setID = set.SetID
		return nil
	})
	if err != nil {
		return 0, err
	}
	return setID, nil
}

// PatchSet reassigns a whole set, and with it every copy, to another school.
func PatchSet(db *gorm.DB, setID, schoolID uint) error {
	res := db.Model(&BookSet{}).Where("set_id = ?", setID).Update("school_id", schoolID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("no set with id %d: %w", setID, ErrNotFound)
	}
	return nil
}

// RemoveSet deletes a set and all of its copies in one transaction, so no
// copy row can be left pointing at a deleted set.
func RemoveSet(db *gorm.DB, setID uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&BookSet{}).Where("set_id = ?", setID).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return fmt.Errorf("no set with id %d: %w", setID, ErrNotFound)
		}
		if err := tx.Where("set_id = ?", setID).Delete(&Book{}).Error; err != nil {
			return err
		}
		return tx.Where("set_id = ?", setID).Delete(&BookSet{}).Error
	})
}

// SetBook is one copy as listed in the per-set inventory view.
type SetBook struct {
	ISBN  string `json:"isbn"`
	SetID uint   `json:"set_id"`
	Title string `json:"title"`
	Stage int    `json:"stage"`
}

// GetSetBooks lists every copy grouped by set, optionally for one school.
// An empty result is NotFound, matching the inventory view's contract.
func GetSetBooks(db *gorm.DB, schoolID *uint) ([]SetBook, error) {
	query := `
		SELECT b.isbn, b.set_id, m.title, m.stage
		FROM books b
		JOIN book_sets s ON s.set_id = b.set_id
		JOIN master_books m ON m.isbn = b.isbn`
	var args []any
	if schoolID != nil {
		query += " WHERE s.school_id = ?"
		args = append(args, *schoolID)
	}
	query += " ORDER BY b.set_id, b.isbn"

	var books []SetBook
	if err := db.Raw(query, args...).Scan(&books).Error; err != nil {
		return nil, err
	}
	if len(books) == 0 {
		return nil, fmt.Errorf("no set books found: %w", ErrNotFound)
	}
	return books, nil
}
