package models

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Reference-data queries for schools, classes and students. The lending
// ledger validates its foreign keys against these tables.

func GetAllSchools(db *gorm.DB) ([]School, error) {
	schools := []School{}
	if err := db.Order("id").Find(&schools).Error; err != nil {
		return nil, err
	}
	return schools, nil
}

func GetSchool(db *gorm.DB, id uint) (*School, error) {
	var school School
	if err := db.First(&school, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("no school with id %d: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return &school, nil
}

func CreateSchool(db *gorm.DB, name string) (*School, error) {
	school := School{Name: name}
	if err := db.Create(&school).Error; err != nil {
		return nil, err
	}
	return &school, nil
}

func PatchSchool(db *gorm.DB, id uint, name string) (*School, error) {
	res := db.Model(&School{}).Where("id = ?", id).Update("name", name)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("no school with id %d: %w", id, ErrNotFound)
	}
	return &School{ID: id, Name: name}, nil
}

func RemoveSchool(db *gorm.DB, id uint) error {
	res := db.Delete(&School{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("no school with id %d: %w", id, ErrNotFound)
	}
	return nil
}

func GetAllClasses(db *gorm.DB) ([]Class, error) {
	classes := []Class{}
	if err := db.Order("id").Find(&classes).Error; err != nil {
		return nil, err
	}
	return classes, nil
}

func GetClass(db *gorm.DB, id uint) (*Class, error) {
	var cls Class
	if err := db.First(&cls, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("no class with id %d: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return &cls, nil
}

func CreateClass(db *gorm.DB, name string, schoolID uint) (*Class, error) {
	var cls Class
	err := db.Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&School{}).Where("id = ?", schoolID).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return fmt.Errorf("no school with id %d: %w", schoolID, ErrNotFound)
		}
		cls = Class{Name: name, SchoolID: schoolID}
		return tx.Create(&cls).Error
	})
	if err != nil {
		return nil, err
	}
	return &cls, nil
}

// ClassPatch carries the updatable class fields; nil means leave unchanged.
type ClassPatch struct {
	Name     *string `json:"name"`
	SchoolID *uint   `json:"school_id"`
}

func PatchClass(db *gorm.DB, id uint, patch ClassPatch) (*Class, error) {
	updates := map[string]any{}
	if patch.Name != nil {
		updates["name"] = *patch.Name
	}
	if patch.SchoolID != nil {
		updates["school_id"] = *patch.SchoolID
	}
	if len(updates) == 0 {
		return nil, fmt.Errorf("no fields to update: %w", ErrBadRequest)
	}
	res := db.Model(&Class{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("no class with id %d: %w", id, ErrNotFound)
	}
	return GetClass(db, id)
}

func RemoveClass(db *gorm.DB, id uint) error {
	res := db.Delete(&Class{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("no class with id %d: %w", id, ErrNotFound)
	}
	return nil
}

func CreateStudent(db *gorm.DB, firstName, lastName string, classID uint) (*Student, error) {
	var student Student
	err := db.Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&Class{}).Where("id = ?", classID).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return fmt.Errorf("no class with id %d: %w", classID, ErrNotFound)
		}
		student = Student{FirstName: firstName, LastName: lastName, ClassID: classID}
		return tx.Create(&student).Error
	})
	if err != nil {
		return nil, err
	}
	return &student, nil
}

func GetStudent(db *gorm.DB, id uint) (*Student, error) {
	var student Student
	if err := db.First(&student, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("no student with id %d: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return &student, nil
}

// StudentSummary is a roster row with the student's reading history and,
// when a copy is currently out, the open loan.
type StudentSummary struct {
	ID         uint     `json:"id"`
	FirstName  string   `json:"first_name"`
	LastName   string   `json:"last_name"`
	ClassID    uint     `json:"class_id"`
	SchoolID   uint     `json:"school_id"`
	HasRead    []string `json:"has_read"`
	BookID     *uint    `json:"book_id,omitempty"`
	Title      *string  `json:"title,omitempty"`
	ISBN       *string  `json:"isbn,omitempty"`
	BorrowDate *string  `json:"borrow_date,omitempty"`
}

// GetAllStudents lists the roster with each student's current open loan and
// the ISBNs they have read. The history is attached in a second pass so the
// query stays portable across stores.
func GetAllStudents(db *gorm.DB, schoolID *uint) ([]StudentSummary, error) {
	type row struct {
		ID         uint
		FirstName  string
		LastName   string
		ClassID    uint
		SchoolID   uint
		BookID     *uint
		Title      *string
		ISBN       *string
		BorrowDate *time.Time
	}
	query := `
		SELECT st.id, st.first_name, st.last_name, st.class_id, c.school_id,
		       q.book_id, q.title, q.isbn, q.borrow_date
		FROM students st
		JOIN classes c ON c.id = st.class_id
		LEFT JOIN (
			SELECT b.id AS book_id, m.title, b.isbn, r.borrow_date, r.student_id
			FROM books b
			JOIN master_books m ON m.isbn = b.isbn
			JOIN borrow_records r ON r.book_id = b.id
			WHERE r.return_date IS NULL) q ON q.student_id = st.id`
	var args []any
	if schoolID != nil {
		query += " WHERE c.school_id = ?"
		args = append(args, *schoolID)
	}
	query += " ORDER BY st.id"

	var rows []row
	if err := db.Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, err
	}

	type historyRow struct {
		StudentID uint
		ISBN      string
	}
	var history []historyRow
	err := db.Raw(`
		SELECT DISTINCT r.student_id, b.isbn
		FROM borrow_records r
		JOIN books b ON b.id = r.book_id
		ORDER BY b.isbn`).Scan(&history).Error
	if err != nil {
		return nil, err
	}
	read := map[uint][]string{}
	for _, h := range history {
		read[h.StudentID] = append(read[h.StudentID], h.ISBN)
	}

	students := make([]StudentSummary, 0, len(rows))
	for _, r := range rows {
		s := StudentSummary{
			ID:        r.ID,
			FirstName: r.FirstName,
			LastName:  r.LastName,
			ClassID:   r.ClassID,
			SchoolID:  r.SchoolID,
			HasRead:   read[r.ID],
			BookID:    r.BookID,
			Title:     r.Title,
			ISBN:      r.ISBN,
		}
		if s.HasRead == nil {
			s.HasRead = []string{}
		}
		if r.BorrowDate != nil {
			d := r.BorrowDate.Format(time.DateOnly)
			s.BorrowDate = &d
		}
		students = append(students, s)
	}
	return students, nil
}

// SetStudentClass moves a student to another class.
func SetStudentClass(db *gorm.DB, studentID, classID uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&Class{}).Where("id = ?", classID).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return fmt.Errorf("no class with id %d: %w", classID, ErrNotFound)
		}
		res := tx.Model(&Student{}).Where("id = ?", studentID).Update("class_id", classID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("no student with id %d: %w", studentID, ErrNotFound)
		}
		return nil
	})
}

func RemoveStudent(db *gorm.DB, id uint) error {
	res := db.Delete(&Student{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("no student with id %d: %w", id, ErrNotFound)
	}
	return nil
}
