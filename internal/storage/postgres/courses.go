package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/pharmtrack/internal/models"
	"github.com/julianstephens/pharmtrack/internal/storage"
)

const courseAssignments = `package_id = $2, course_name = $3, active_substance = $4, current_stock = $5,
	start_date = $6, end_date = $7, is_lifelong = $8, is_active = $9, interval_days = $10,
	schedule = $11, dose_per_intake = $12, use_different_doses = $13, doses = $14,
	exact_times = $15, meal_condition = $16, low_stock_reminder_days = $17,
	created_at = $18, deleted_at = $19`

func (s *Store) AddCourse(course models.Course) error {
	args, err := storage.CourseArgs(course)
	if err != nil {
		return fmt.Errorf("failed to encode course %s: %w", course.ID, err)
	}
	_, err = s.db.Exec(`
		INSERT INTO courses (`+storage.CourseColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
		ON CONFLICT (id) DO UPDATE SET `+courseAssignments,
		args...)
	return err
}

func (s *Store) GetCourse(id string) (models.Course, error) {
	row := s.db.QueryRow(`SELECT `+storage.CourseColumns+`
		FROM courses WHERE id = $1 AND deleted_at IS NULL`, id)
	course, err := storage.ScanCourse(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Course{}, fmt.Errorf("course %s: %w", id, storage.ErrNotFound)
	}
	return course, err
}

func (s *Store) GetAllCourses() ([]models.Course, error) {
	rows, err := s.db.Query(`SELECT ` + storage.CourseColumns + `
		FROM courses WHERE deleted_at IS NULL ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	return storage.CollectRows(rows, storage.ScanCourse)
}

func (s *Store) GetAllCoursesIncludingDeleted() ([]models.Course, error) {
	rows, err := s.db.Query(`SELECT ` + storage.CourseColumns + `
		FROM courses ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	return storage.CollectRows(rows, storage.ScanCourse)
}

func (s *Store) UpdateCourse(course models.Course) error {
	args, err := storage.CourseArgs(course)
	if err != nil {
		return fmt.Errorf("failed to encode course %s: %w", course.ID, err)
	}
	res, err := s.db.Exec(`UPDATE courses SET `+courseAssignments+` WHERE id = $1`, args...)
	if err != nil {
		return err
	}
	return storage.CheckAffected(res, "course", course.ID)
}

func (s *Store) DeleteCourse(id string) error {
	res, err := s.db.Exec(`UPDATE courses SET deleted_at = $1 WHERE id = $2 AND deleted_at IS NULL`,
		time.Now().UTC().Format(time.RFC3339), id)
	if err != nil {
		return err
	}
	return storage.CheckAffected(res, "course", id)
}

func (s *Store) RestoreCourse(id string) error {
	var deletedAt sql.NullString
	err := s.db.QueryRow(`SELECT deleted_at FROM courses WHERE id = $1`, id).Scan(&deletedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("course %s: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return err
	}
	if !deletedAt.Valid {
		return fmt.Errorf("cannot restore a course that is not deleted: %s", id)
	}

	_, err = s.db.Exec(`UPDATE courses SET deleted_at = NULL WHERE id = $1`, id)
	return err
}
