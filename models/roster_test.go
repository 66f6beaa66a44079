package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pun-intended/lending-library/models"
)

func TestStudents(t *testing.T) {
	t.Run("create requires an existing class", func(t *testing.T) {
		db := setupDB(t)
		seedLibrary(t, db)

		student, err := models.CreateStudent(db, "Robin", "Chu", 11)
		require.NoError(t, err)
		assert.NotZero(t, student.ID)

		_, err = models.CreateStudent(db, "Robin", "Chu", 999)
		assert.ErrorIs(t, err, models.ErrNotFound)
	})

	t.Run("roster list carries current loan and history", func(t *testing.T) {
		db := setupDB(t)
		seedLibrary(t, db)

		_, err := models.CheckOut(db, 105, 1001, date(t, "2023-09-01"))
		require.NoError(t, err)
		_, err = models.CheckIn(db, 105, date(t, "2023-09-10"), "good")
		require.NoError(t, err)
		_, err = models.CheckOut(db, 104, 1001, date(t, "2023-10-24"))
		require.NoError(t, err)

		schoolID := uint(101)
		students, err := models.GetAllStudents(db, &schoolID)
		require.NoError(t, err)
		require.Len(t, students, 2)

		jesse := students[0]
		assert.Equal(t, uint(1001), jesse.ID)
		assert.ElementsMatch(t, []string{"448461587", "448461588"}, jesse.HasRead)
		require.NotNil(t, jesse.BookID)
		assert.Equal(t, uint(104), *jesse.BookID)
		require.NotNil(t, jesse.BorrowDate)
		assert.Equal(t, "2023-10-24", *jesse.BorrowDate)

		ana := students[1]
		assert.Empty(t, ana.HasRead)
		assert.Nil(t, ana.BookID)

		// unknown school scopes to an empty roster
		other := uint(999)
		students, err = models.GetAllStudents(db, &other)
		require.NoError(t, err)
		assert.Empty(t, students)
	})

	t.Run("class reassignment", func(t *testing.T) {
		db := setupDB(t)
		seedLibrary(t, db)
		require.NoError(t, db.Create(&models.Class{ID: 12, Name: "5A", SchoolID: 101}).Error)

		require.NoError(t, models.SetStudentClass(db, 1001, 12))
		student, err := models.GetStudent(db, 1001)
		require.NoError(t, err)
		assert.Equal(t, uint(12), student.ClassID)

		assert.ErrorIs(t, models.SetStudentClass(db, 1001, 999), models.ErrNotFound)
		assert.ErrorIs(t, models.SetStudentClass(db, 9999, 12), models.ErrNotFound)
	})
}

func TestUsers(t *testing.T) {
	t.Run("create hashes the password and authenticate verifies it", func(t *testing.T) {
		db := setupDB(t)

		user, err := models.CreateUser(db, "Pat", "Reed", "s3cret", models.RoleSchoolAdmin)
		require.NoError(t, err)
		assert.NotEqual(t, "s3cret", user.Password)

		got, err := models.Authenticate(db, user.ID, "s3cret")
		require.NoError(t, err)
		assert.Equal(t, models.RoleSchoolAdmin, got.Role)

		_, err = models.Authenticate(db, user.ID, "wrong")
		assert.ErrorIs(t, err, models.ErrUnauthorized)
		_, err = models.Authenticate(db, 999, "s3cret")
		assert.ErrorIs(t, err, models.ErrUnauthorized)
	})

	t.Run("unknown role is rejected", func(t *testing.T) {
		db := setupDB(t)

		_, err := models.CreateUser(db, "Pat", "Reed", "s3cret", "superuser")
		assert.ErrorIs(t, err, models.ErrBadRequest)
	})

	t.Run("patch rehashes password and rejects empty patches", func(t *testing.T) {
		db := setupDB(t)
		user, err := models.CreateUser(db, "Pat", "Reed", "s3cret", models.RoleUser)
		require.NoError(t, err)

		_, err = models.PatchUser(db, user.ID, models.UserPatch{})
		assert.ErrorIs(t, err, models.ErrBadRequest)

		newPass := "n3wpass"
		_, err = models.PatchUser(db, user.ID, models.UserPatch{Password: &newPass})
		require.NoError(t, err)

		_, err = models.Authenticate(db, user.ID, "n3wpass")
		assert.NoError(t, err)
	})
}

func TestSchoolsAndClasses(t *testing.T) {
	db := setupDB(t)

	school, err := models.CreateSchool(db, "Northside Primary")
	require.NoError(t, err)

	cls, err := models.CreateClass(db, "4B", school.ID)
	require.NoError(t, err)

	_, err = models.CreateClass(db, "4C", 999)
	assert.ErrorIs(t, err, models.ErrNotFound)

	renamed := "4B (am)"
	got, err := models.PatchClass(db, cls.ID, models.ClassPatch{Name: &renamed})
	require.NoError(t, err)
	assert.Equal(t, "4B (am)", got.Name)

	_, err = models.PatchClass(db, cls.ID, models.ClassPatch{})
	assert.ErrorIs(t, err, models.ErrBadRequest)

	_, err = models.PatchSchool(db, 999, "x")
	assert.ErrorIs(t, err, models.ErrNotFound)

	require.NoError(t, models.RemoveClass(db, cls.ID))
	require.NoError(t, models.RemoveSchool(db, school.ID))
	assert.ErrorIs(t, models.RemoveSchool(db, school.ID), models.ErrNotFound)
}
