package models

type Class struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Name     string `gorm:"size:50;not null" json:"name"`
	SchoolID uint   `gorm:"not null;index" json:"school_id"`
}
