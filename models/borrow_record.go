package models

import "time"

// BorrowRecord is one checkout-to-checkin cycle for a copy and student.
// The record is open while ReturnDate is null. The partial unique index
// uq_open_borrow enforces at most one open record per copy at the database
// level; the lending transactions re-check it on the way in.
type BorrowRecord struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	BookID          uint       `gorm:"not null;index:uq_open_borrow,unique,where:return_date IS NULL" json:"book_id"`
	StudentID       uint       `gorm:"not null;index" json:"student_id"`
	BorrowDate      time.Time  `gorm:"type:date;not null" json:"borrow_date"`
	ReturnDate      *time.Time `gorm:"type:date" json:"return_date,omitempty"`
	ReturnCondition *string    `gorm:"size:100" json:"return_condition,omitempty"`
}
