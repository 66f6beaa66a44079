// scripts/create_admin.go
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/pun-intended/lending-library/config"
	"github.com/pun-intended/lending-library/database"
	"github.com/pun-intended/lending-library/models"
)

// Bootstraps the first master_admin account so the role-gated user routes
// become reachable on a fresh database.
func main() {
	cfg := config.Load()
	database.Connect(cfg)

	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "changeme"
	}

	var count int64
	if err := database.DB.Model(&models.User{}).
		Where("role = ?", models.RoleMasterAdmin).
		Count(&count).Error; err != nil {
		log.Fatalf("failed to query users: %v", err)
	}
	if count > 0 {
		fmt.Println("master_admin already exists, nothing to do")
		os.Exit(0)
	}

	user, err := models.CreateUser(database.DB, "Master", "Admin", password, models.RoleMasterAdmin)
	if err != nil {
		log.Fatalf("failed to create admin: %v", err)
	}

	fmt.Println("master_admin created")
	fmt.Println("   id:      ", user.ID)
	fmt.Println("   password:", password, "(change it after first login)")
}
