package models

import (
	"fmt"

	"gorm.io/gorm"
)

// AddBook registers a single physical copy of a catalog title in a set.
func AddBook(db *gorm.DB, isbn string, setID uint) (uint, error) {
	var book Book
	err := db.Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&MasterBook{}).Where("isbn = ?", isbn).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return fmt.Errorf("no catalog title with isbn %s: %w", isbn, ErrNotFound)
		}
		if err := tx.Model(&BookSet{}).Where("set_id = ?", setID).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return fmt.Errorf("no set with id %d: %w", setID, ErrNotFound)
		}
		book = Book{ISBN: isbn, SetID: setID}
		return tx.Create(&book).Error
	})
	if err != nil {
		return 0, err
	}
	return book.ID, nil
}

// BookPatch carries the updatable copy fields; nil means leave unchanged.
type BookPatch struct {
	Condition *string `json:"condition"`
	SetID     *uint   `json:"set_id"`
}

// UpdateBook partially updates one copy. A patch with no fields is rejected
// rather than issuing an empty update.
func UpdateBook(db *gorm.DB, bookID uint, patch BookPatch) error {
	updates := map[string]any{}
	if patch.Condition != nil {
		updates["condition"] = *patch.Condition
	}
	if patch.SetID != nil {
		updates["set_id"] = *patch.SetID
	}
	if len(updates) == 0 {
		return fmt.Errorf("no fields to update: %w", ErrBadRequest)
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if patch.SetID != nil {
			var n int64
			if err := tx.Model(&BookSet{}).Where("set_id = ?", *patch.SetID).Count(&n).Error; err != nil {
				return err
			}
			if n == 0 {
				return fmt.Errorf("no set with id %d: %w", *patch.SetID, ErrNotFound)
			}
		}
		res := tx.Model(&Book{}).Where("id = ?", bookID).Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("no book with id %d: %w", bookID, ErrNotFound)
		}
		return nil
	})
}

// RemoveBook deletes one physical copy.
func RemoveBook(db *gorm.DB, bookID uint) error {
	res := db.Where("id = ?", bookID).Delete(&Book{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("no book with id %d: %w", bookID, ErrNotFound)
	}
	return nil
}
