package models

// Book is one physical, trackable copy of a title. Condition is free text,
// rewritten on every check-in.
type Book struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	ISBN      string `gorm:"size:20;not null;index" json:"isbn"`
	SetID     uint   `gorm:"not null;index" json:"set_id"`
	Condition string `gorm:"size:100;not null;default:''" json:"condition"`
}
