package models_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/pun-intended/lending-library/database"
	"github.com/pun-intended/lending-library/models"
)

// setupDB creates a fresh migrated database for one test.
func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse(time.DateOnly, s)
	require.NoError(t, err)
	return d
}

// seedLibrary builds the fixture used across the lending tests: school 101
// owns one set (copies 101-112) covering 11 titles, with two copies of isbn
// 448461587 (copies 104 and 112); class 11 and student 1001 belong to the
// school.
func seedLibrary(t *testing.T, db *gorm.DB) {
	t.Helper()

	school := models.School{ID: 101, Name: "Northside Primary"}
	require.NoError(t, db.Create(&school).Error)
	require.NoError(t, db.Create(&models.Class{ID: 11, Name: "4B", SchoolID: 101}).Error)
	require.NoError(t, db.Create(&models.Student{ID: 1001, FirstName: "Jesse", LastName: "Moore", ClassID: 11}).Error)
	require.NoError(t, db.Create(&models.Student{ID: 1002, FirstName: "Ana", LastName: "Silva", ClassID: 11}).Error)

	// Ordered so the fan-out below puts isbn 448461587 on copy 104 and
	// 448461588 on copy 105, which the lending tests rely on.
	titles := []models.MasterBook{
		{ISBN: "448461590", Title: "Night Owls", Stage: 3},
		{ISBN: "448461591", Title: "The Old Map", Stage: 3},
		{ISBN: "448461592", Title: "Paper Boats", Stage: 3},
		{ISBN: "448461587", Title: "The Blue Kite", Stage: 2},
		{ISBN: "448461588", Title: "River Stones", Stage: 2},
		{ISBN: "448461589", Title: "A Long Walk", Stage: 2},
		{ISBN: "448461593", Title: "Winter Light", Stage: 4},
		{ISBN: "448461594", Title: "The Far Field", Stage: 4},
		{ISBN: "448461595", Title: "Small Hours", Stage: 4},
		{ISBN: "448461596", Title: "Clay Birds", Stage: 5},
		{ISBN: "448461597", Title: "The Last Door", Stage: 5},
	}
	require.NoError(t, db.Create(&titles).Error)

	schoolID := uint(101)
	require.NoError(t, db.Create(&models.BookSet{SetID: 21, SchoolID: &schoolID}).Error)

	copies := make([]models.Book, 0, 12)
	for i, m := range titles {
		copies = append(copies, models.Book{ID: uint(101 + i), ISBN: m.ISBN, SetID: 21, Condition: "good"})
	}
	// second copy of the first title
	copies = append(copies, models.Book{ID: 112, ISBN: "448461587", SetID: 21, Condition: "good"})
	require.NoError(t, db.Create(&copies).Error)
}

func openLoanCount(t *testing.T, db *gorm.DB, bookID uint) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&models.BorrowRecord{}).
		Where("book_id = ? AND return_date IS NULL", bookID).
		Count(&n).Error)
	return n
}

func ledgerCount(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&models.BorrowRecord{}).Count(&n).Error)
	return n
}
