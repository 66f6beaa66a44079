package models

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var validRoles = map[string]bool{
	RoleUser:        true,
	RoleSchoolAdmin: true,
	RoleMasterAdmin: true,
}

// CreateUser registers a staff account with a bcrypt-hashed password.
func CreateUser(db *gorm.DB, firstName, lastName, password, role string) (*User, error) {
	if !validRoles[role] {
		return nil, fmt.Errorf("unknown role %q: %w", role, ErrBadRequest)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := User{FirstName: firstName, LastName: lastName, Password: string(hash), Role: role}
	if err := db.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Authenticate verifies a user's credentials. Wrong id and wrong password
// both come back as ErrUnauthorized so callers cannot probe for valid ids.
func Authenticate(db *gorm.DB, id uint, password string) (*User, error) {
	var user User
	if err := db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("invalid credentials: %w", ErrUnauthorized)
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, fmt.Errorf("invalid credentials: %w", ErrUnauthorized)
	}
	return &user, nil
}

func GetAllUsers(db *gorm.DB) ([]User, error) {
	users := []User{}
	if err := db.Order("id").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func GetUser(db *gorm.DB, id uint) (*User, error) {
	var user User
	if err := db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("no user with id %d: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return &user, nil
}

// UserPatch carries the updatable account fields; nil means leave unchanged.
// Role changes go through here too and are gated in the handler.
type UserPatch struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Password  *string `json:"password"`
}

func PatchUser(db *gorm.DB, id uint, patch UserPatch) (*User, error) {
	updates := map[string]any{}
	if patch.FirstName != nil {
		updates["first_name"] = *patch.FirstName
	}
	if patch.LastName != nil {
		updates["last_name"] = *patch.LastName
	}
	if patch.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*patch.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		updates["password"] = string(hash)
	}
	if len(updates) == 0 {
		return nil, fmt.Errorf("no fields to update: %w", ErrBadRequest)
	}
	res := db.Model(&User{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("no user with id %d: %w", id, ErrNotFound)
	}
	return GetUser(db, id)
}

func RemoveUser(db *gorm.DB, id uint) error {
	res := db.Delete(&User{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("no user with id %d: %w", id, ErrNotFound)
	}
	return nil
}
