package database

import (
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/pun-intended/lending-library/config"
	"github.com/pun-intended/lending-library/models"
)

var DB *gorm.DB

// Connect opens the PostgreSQL connection and runs migrations. Failing fast
// here is intentional: the server is useless without its store.
func Connect(cfg *config.Config) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	DB = db

	if err := Migrate(db); err != nil {
		log.Fatalf("auto migrate failed: %v", err)
	}
}

// Migrate creates the schema, including the partial unique index on
// borrow_records(book_id) WHERE return_date IS NULL that guarantees at most
// one open loan per copy. Shared with the test setup.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.School{},
		&models.Class{},
		&models.Student{},
		&models.User{},
		&models.MasterBook{},
		&models.BookSet{},
		&models.Book{},
		&models.BorrowRecord{},
	)
}
