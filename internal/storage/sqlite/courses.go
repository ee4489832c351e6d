package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/pharmtrack/internal/models"
	"github.com/julianstephens/pharmtrack/internal/storage"
)

func (s *Store) AddCourse(course models.Course) error {
	args, err := storage.CourseArgs(course)
	if err != nil {
		return fmt.Errorf("failed to encode course %s: %w", course.ID, err)
	}
	_, err = s.db.Exec(`
		INSERT OR REPLACE INTO courses (`+storage.CourseColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		args...)
	return err
}

func (s *Store) GetCourse(id string) (models.Course, error) {
	row := s.db.QueryRow(`SELECT `+storage.CourseColumns+`
		FROM courses WHERE id = ? AND deleted_at IS NULL`, id)
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
	res, err := s.db.Exec(`
		UPDATE courses SET package_id = ?, course_name = ?, active_substance = ?, current_stock = ?,
			start_date = ?, end_date = ?, is_lifelong = ?, is_active = ?, interval_days = ?,
			schedule = ?, dose_per_intake = ?, use_different_doses = ?, doses = ?, exact_times = ?,
			meal_condition = ?, low_stock_reminder_days = ?, created_at = ?, deleted_at = ?
		WHERE id = ?`,
		append(args[1:], course.ID)...)
	if err != nil {
		return err
	}
	return storage.CheckAffected(res, "course", course.ID)
}

func (s *Store) DeleteCourse(id string) error {
	res, err := s.db.Exec(`UPDATE courses SET deleted_at = ? WHERE id = ? AND deleted_at IS NULL`,
		time.Now().UTC().Format(time.RFC3339), id)
	if err != nil {
		return err
	}
	return storage.CheckAffected(res, "course", id)
}

func (s *Store) RestoreCourse(id string) error {
	var deletedAt sql.NullString
	err := s.db.QueryRow(`SELECT deleted_at FROM courses WHERE id = ?`, id).Scan(&deletedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("course %s: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return err
	}
	if !deletedAt.Valid {
		return fmt.Errorf("cannot restore a course that is not deleted: %s", id)
	}

	_, err = s.db.Exec(`UPDATE courses SET deleted_at = NULL WHERE id = ?`, id)
	return err
}
