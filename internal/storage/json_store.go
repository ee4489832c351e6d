package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/julianstephens/pharmtrack/internal/constants"
	"github.com/julianstephens/pharmtrack/internal/ledger"
	"github.com/julianstephens/pharmtrack/internal/models"
)

// JSONStore keeps all data in a single file using the four-key export layout,
// so an exported document can be opened directly with --config file.json.
type JSONStore struct {
	path string
	doc  *models.Snapshot
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{path: configPath}
}

func (s *JSONStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	settings := models.DefaultSettings()
	s.doc = &models.Snapshot{
		Packages: []models.Package{},
		Courses:  []models.Course{},
		Intakes:  []models.IntakeRecord{},
		Settings: &settings,
	}
	return s.save()
}

func (s *JSONStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run '%s init' first", constants.AppName)
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	doc := &models.Snapshot{}
	if err := json.Unmarshal(data, doc); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}
	if doc.Settings == nil {
		settings := models.DefaultSettings()
		doc.Settings = &settings
	}
	for i, rec := range doc.Intakes {
		if normalized, err := ledger.Normalize(rec); err == nil {
			doc.Intakes[i] = normalized
		}
	}
	s.doc = doc
	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	return nil
}

func (s *JSONStore) loaded() error {
	if s.doc == nil {
		return fmt.Errorf("storage not loaded")
	}
	return nil
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339)
}

func (s *JSONStore) GetSettings() (models.Settings, error) {
	if err := s.loaded(); err != nil {
		return models.Settings{}, err
	}
	return *s.doc.Settings, nil
}

func (s *JSONStore) SaveSettings(settings models.Settings) error {
	if err := s.loaded(); err != nil {
		return err
	}
	s.doc.Settings = &settings
	return s.save()
}

// Packages

func (s *JSONStore) findPackage(id string) int {
	for i := range s.doc.Packages {
		if s.doc.Packages[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *JSONStore) AddPackage(pkg models.Package) error {
	if err := s.loaded(); err != nil {
		return err
	}
	if i := s.findPackage(pkg.ID); i >= 0 {
		s.doc.Packages[i] = pkg
	} else {
		s.doc.Packages = append(s.doc.Packages, pkg)
	}
	return s.save()
}

func (s *JSONStore) GetPackage(id string) (models.Package, error) {
	if err := s.loaded(); err != nil {
		return models.Package{}, err
	}
	i := s.findPackage(id)
	if i < 0 || s.doc.Packages[i].DeletedAt != nil {
		return models.Package{}, fmt.Errorf("package %s: %w", id, ErrNotFound)
	}
	return s.doc.Packages[i], nil
}

func (s *JSONStore) GetAllPackages() ([]models.Package, error) {
	if err := s.loaded(); err != nil {
		return nil, err
	}
	pkgs := make([]models.Package, 0, len(s.doc.Packages))
	for _, p := range s.doc.Packages {
		if p.DeletedAt == nil {
			pkgs = append(pkgs, p)
		}
	}
	return pkgs, nil
}

func (s *JSONStore) GetAllPackagesIncludingDeleted() ([]models.Package, error) {
	if err := s.loaded(); err != nil {
		return nil, err
	}
	return append([]models.Package(nil), s.doc.Packages...), nil
}

func (s *JSONStore) UpdatePackage(pkg models.Package) error {
	if err := s.loaded(); err != nil {
		return err
	}
	i := s.findPackage(pkg.ID)
	if i < 0 {
		return fmt.Errorf("package %s: %w", pkg.ID, ErrNotFound)
	}
	s.doc.Packages[i] = pkg
	return s.save()
}

func (s *JSONStore) DeletePackage(id string) error {
	if err := s.loaded(); err != nil {
		return err
	}
	i := s.findPackage(id)
	if i < 0 || s.doc.Packages[i].DeletedAt != nil {
		return fmt.Errorf("package %s: %w", id, ErrNotFound)
	}
	ts := now()
	s.doc.Packages[i].DeletedAt = &ts
	return s.save()
}

func (s *JSONStore) RestorePackage(id string) error {
	if err := s.loaded(); err != nil {
		return err
	}
	i := s.findPackage(id)
	if i < 0 {
		return fmt.Errorf("package %s: %w", id, ErrNotFound)
	}
	if s.doc.Packages[i].DeletedAt == nil {
		return fmt.Errorf("cannot restore a package that is not deleted: %s", id)
	}
	s.doc.Packages[i].DeletedAt = nil
	return s.save()
}

// Courses

func (s *JSONStore) findCourse(id string) int {
	for i := range s.doc.Courses {
		if s.doc.Courses[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *JSONStore) AddCourse(course models.Course) error {
	if err := s.loaded(); err != nil {
		return err
	}
	if i := s.findCourse(course.ID); i >= 0 {
		s.doc.Courses[i] = course
	} else {
		s.doc.Courses = append(s.doc.Courses, course)
	}
	return s.save()
}

func (s *JSONStore) GetCourse(id string) (models.Course, error) {
	if err := s.loaded(); err != nil {
		return models.Course{}, err
	}
	i := s.findCourse(id)
	if i < 0 || s.doc.Courses[i].DeletedAt != nil {
		return models.Course{}, fmt.Errorf("course %s: %w", id, ErrNotFound)
	}
	return s.doc.Courses[i], nil
}

func (s *JSONStore) GetAllCourses() ([]models.Course, error) {
	if err := s.loaded(); err != nil {
		return nil, err
	}
	courses := make([]models.Course, 0, len(s.doc.Courses))
	for _, c := range s.doc.Courses {
		if c.DeletedAt == nil {
			courses = append(courses, c)
		}
	}
	return courses, nil
}

func (s *JSONStore) GetAllCoursesIncludingDeleted() ([]models.Course, error) {
	if err := s.loaded(); err != nil {
		return nil, err
	}
	return append([]models.Course(nil), s.doc.Courses...), nil
}

func (s *JSONStore) UpdateCourse(course models.Course) error {
	if err := s.loaded(); err != nil {
		return err
	}
	i := s.findCourse(course.ID)
	if i < 0 {
		return fmt.Errorf("course %s: %w", course.ID, ErrNotFound)
	}
	s.doc.Courses[i] = course
	return s.save()
}

func (s *JSONStore) DeleteCourse(id string) error {
	if err := s.loaded(); err != nil {
		return err
	}
	i := s.findCourse(id)
	if i < 0 || s.doc.Courses[i].DeletedAt != nil {
		return fmt.Errorf("course %s: %w", id, ErrNotFound)
	}
	ts := now()
	s.doc.Courses[i].DeletedAt = &ts
	return s.save()
}

func (s *JSONStore) RestoreCourse(id string) error {
	if err := s.loaded(); err != nil {
		return err
	}
	i := s.findCourse(id)
	if i < 0 {
		return fmt.Errorf("course %s: %w", id, ErrNotFound)
	}
	if s.doc.Courses[i].DeletedAt == nil {
		return fmt.Errorf("cannot restore a course that is not deleted: %s", id)
	}
	s.doc.Courses[i].DeletedAt = nil
	return s.save()
}

// Intakes

func (s *JSONStore) SaveIntake(rec models.IntakeRecord) error {
	if err := s.loaded(); err != nil {
		return err
	}
	for i := range s.doc.Intakes {
		if s.doc.Intakes[i].ID == rec.ID {
			s.doc.Intakes[i] = rec
			return s.save()
		}
	}
	s.doc.Intakes = append(s.doc.Intakes, rec)
	return s.save()
}

func (s *JSONStore) GetIntakesForDate(date string) ([]models.IntakeRecord, error) {
	return s.GetIntakesInRange(date, date)
}

// GetIntakesInRange matches records imported without split-out columns on the date in their key.
func (s *JSONStore) GetIntakesInRange(startDate, endDate string) ([]models.IntakeRecord, error) {
	if err := s.loaded(); err != nil {
		return nil, err
	}
	var out []models.IntakeRecord
	for _, rec := range s.doc.Intakes {
		date := rec.Date
		if date == "" {
			_, date, _, _ = ledger.ParseKey(rec.ID)
		}
		if date >= startDate && date <= endDate {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (s *JSONStore) GetAllIntakes() ([]models.IntakeRecord, error) {
	if err := s.loaded(); err != nil {
		return nil, err
	}
	return append([]models.IntakeRecord(nil), s.doc.Intakes...), nil
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}
