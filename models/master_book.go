package models

// MasterBook is catalog-level title metadata shared by every physical copy
// of an ISBN. Reference data only; never mutated by the lending workflow.
type MasterBook struct {
	ISBN  string `gorm:"primaryKey;size:20" json:"isbn"`
	Title string `gorm:"size:200;not null" json:"title"`
	Stage int    `gorm:"not null;index" json:"stage"` // reading-level classification
}
