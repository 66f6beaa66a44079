package models

// BookSet groups physical copies into a shelving unit owned by one school.
// Deleting a set removes its copies with it.
type BookSet struct {
	SetID    uint  `gorm:"primaryKey;column:set_id" json:"set_id"`
	SchoolID *uint `gorm:"index" json:"school_id"`

	Books []Book `gorm:"foreignKey:SetID;references:SetID;constraint:OnDelete:CASCADE" json:"-"`
}
