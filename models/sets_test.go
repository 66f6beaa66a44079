package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pun-intended/lending-library/models"
)

func TestCreateSet(t *testing.T) {
	t.Run("fans out one copy per catalog title", func(t *testing.T) {
		db := setupDB(t)
		seedLibrary(t, db)
		require.NoError(t, db.Create(&models.School{ID: 103, Name: "Eastgate"}).Error)

		setID, err := models.CreateSet(db, 103, nil)
		require.NoError(t, err)
		require.NotZero(t, setID)

		var n int64
		require.NoError(t, db.Model(&models.Book{}).Where("set_id = ?", setID).Count(&n).Error)
		assert.Equal(t, int64(11), n)
	})

	t.Run("stage filter limits the fan-out", func(t *testing.T) {
		db := setupDB(t)
		seedLibrary(t, db)
		require.NoError(t, db.Create(&models.School{ID: 103, Name: "Eastgate"}).Error)

		stage := 2
		setID, err := models.CreateSet(db, 103, &stage)
		require.NoError(t, err)

		var copies []models.Book
		require.NoError(t, db.Where("set_id = ?", setID).Find(&copies).Error)
		require.Len(t, copies, 3)

		// and the catalog view counts exactly those stage-2 titles for the school
		schoolID := uint(103)
		books, err := models.GetAllBooks(db, &schoolID, &stage)
		require.NoError(t, err)
		require.Len(t, books, 3)
		for _, b := range books {
			assert.True(t, b.Available)
		}
	})

	t.Run("unknown school fails NotFound without a set row", func(t *testing.T) {
		db := setupDB(t)
		seedLibrary(t, db)

		_, err := models.CreateSet(db, 999, nil)
		assert.ErrorIs(t, err, models.ErrNotFound)

		var n int64
		require.NoError(t, db.Model(&models.BookSet{}).Count(&n).Error)
		assert.Equal(t, int64(1), n) // only the seeded set
	})
}

func TestPatchSet(t *testing.T) {
	db := setupDB(t)
	seedLibrary(t, db)
	require.NoError(t, db.Create(&models.School{ID: 102, Name: "Hillcrest"}).Error)

	require.NoError(t, models.PatchSet(db, 21, 102))

	var set models.BookSet
	require.NoError(t, db.First(&set, 21).Error)
	require.NotNil(t, set.SchoolID)
	assert.Equal(t, uint(102), *set.SchoolID)

	// availability follows the set to its new school
	oldSchool, newSchool := uint(101), uint(102)
	books, err := models.GetAllBooks(db, &oldSchool, nil)
	require.NoError(t, err)
	for _, b := range books {
		assert.False(t, b.Available)
	}
	books, err = models.GetAllBooks(db, &newSchool, nil)
	require.NoError(t, err)
	assert.True(t, findBook(books, "448461587").Available)

	assert.ErrorIs(t, models.PatchSet(db, 999, 102), models.ErrNotFound)
}

func TestRemoveSet(t *testing.T) {
	t.Run("deletes the set and every copy in it", func(t *testing.T) {
		db := setupDB(t)
		seedLibrary(t, db)

		require.NoError(t, models.RemoveSet(db, 21))

		var n int64
		require.NoError(t, db.Model(&models.Book{}).Where("set_id = ?", 21).Count(&n).Error)
		assert.Equal(t, int64(0), n)
		require.NoError(t, db.Model(&models.BookSet{}).Where("set_id = ?", 21).Count(&n).Error)
		assert.Equal(t, int64(0), n)
	})

	t.Run("unknown set fails NotFound", func(t *testing.T) {
		db := setupDB(t)
		seedLibrary(t, db)

		assert.ErrorIs(t, models.RemoveSet(db, 999), models.ErrNotFound)

		var n int64
		require.NoError(t, db.Model(&models.Book{}).Count(&n).Error)
		assert.Equal(t, int64(12), n)
	})
}

func TestGetSetBooks(t *testing.T) {
	db := setupDB(t)
	seedLibrary(t, db)

	schoolID := uint(101)
	books, err := models.GetSetBooks(db, &schoolID)
	require.NoError(t, err)
	assert.Len(t, books, 12)

	other := uint(999)
	_, err = models.GetSetBooks(db, &other)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestBookCRUD(t *testing.T) {
	t.Run("add copy validates isbn and set", func(t *testing.T) {
		db := setupDB(t)
		seedLibrary(t, db)

		id, err := models.AddBook(db, "448461597", 21)
		require.NoError(t, err)
		assert.NotZero(t, id)

		_, err = models.AddBook(db, "000000000", 21)
		assert.ErrorIs(t, err, models.ErrNotFound)
		_, err = models.AddBook(db, "448461597", 999)
		assert.ErrorIs(t, err, models.ErrNotFound)
	})

	t.Run("partial update requires at least one field", func(t *testing.T) {
		db := setupDB(t)
		seedLibrary(t, db)

		err := models.UpdateBook(db, 104, models.BookPatch{})
		assert.ErrorIs(t, err, models.ErrBadRequest)

		cond := "spine damaged"
		require.NoError(t, models.UpdateBook(db, 104, models.BookPatch{Condition: &cond}))
		var book models.Book
		require.NoError(t, db.First(&book, 104).Error)
		assert.Equal(t, "spine damaged", book.Condition)

		err = models.UpdateBook(db, 999, models.BookPatch{Condition: &cond})
		assert.ErrorIs(t, err, models.ErrNotFound)

		badSet := uint(999)
		err = models.UpdateBook(db, 104, models.BookPatch{SetID: &badSet})
		assert.ErrorIs(t, err, models.ErrNotFound)
	})

	t.Run("remove copy", func(t *testing.T) {
		db := setupDB(t)
		seedLibrary(t, db)

		require.NoError(t, models.RemoveBook(db, 104))
		assert.ErrorIs(t, models.RemoveBook(db, 104), models.ErrNotFound)
	})
}
