package models

import "time"

const (
	RoleUser        = "user"
	RoleSchoolAdmin = "school_admin"
	RoleMasterAdmin = "master_admin"
)

// User is a staff account. Password holds a bcrypt hash and never leaves
// the server.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	FirstName string    `gorm:"size:50;not null" json:"first_name"`
	LastName  string    `gorm:"size:50;not null" json:"last_name"`
	Password  string    `gorm:"not null" json:"-"`
	Role      string    `gorm:"size:20;not null" json:"role"` // user | school_admin | master_admin
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsAdmin reports whether the role carries administrative rights.
func IsAdmin(role string) bool {
	return role == RoleSchoolAdmin || role == RoleMasterAdmin
}
