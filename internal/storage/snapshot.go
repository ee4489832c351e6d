package storage

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/julianstephens/pharmtrack/internal/constants"
	"github.com/julianstephens/pharmtrack/internal/ledger"
	"github.com/julianstephens/pharmtrack/internal/logger"
	"github.com/julianstephens/pharmtrack/internal/models"
)

// ImportResult counts what an import wrote.
type ImportResult struct {
	Packages int
	Courses  int
	Intakes  int
	Skipped  int
	Settings bool
}

// ExportSnapshot reads every record, soft-deleted ones included, into one document.
func ExportSnapshot(p Provider) (models.Snapshot, error) {
	var snap models.Snapshot
	var err error

	if snap.Packages, err = p.GetAllPackagesIncludingDeleted(); err != nil {
		return snap, fmt.Errorf("failed to read packages: %w", err)
	}
	if snap.Courses, err = p.GetAllCoursesIncludingDeleted(); err != nil {
		return snap, fmt.Errorf("failed to read courses: %w", err)
	}
	if snap.Intakes, err = p.GetAllIntakes(); err != nil {
		return snap, fmt.Errorf("failed to read intakes: %w", err)
	}
	settings, err := p.GetSettings()
	if err != nil {
		return snap, fmt.Errorf("failed to read settings: %w", err)
	}
	snap.Settings = &settings

	if snap.Packages == nil {
		snap.Packages = []models.Package{}
	}
	if snap.Courses == nil {
		snap.Courses = []models.Course{}
	}
	if snap.Intakes == nil {
		snap.Intakes = []models.IntakeRecord{}
	}
	return snap, nil
}

// ImportSnapshot writes a document into p, replacing records with the same ID.
// Intake records whose key cannot be parsed are skipped and counted.
func ImportSnapshot(p Provider, snap models.Snapshot) (ImportResult, error) {
	var res ImportResult

	for _, pkg := range snap.Packages {
		if err := p.AddPackage(pkg); err != nil {
			return res, fmt.Errorf("failed to import package %s: %w", pkg.ID, err)
		}
		res.Packages++
	}
	for _, course := range snap.Courses {
		if err := p.AddCourse(course); err != nil {
			return res, fmt.Errorf("failed to import course %s: %w", course.ID, err)
		}
		res.Courses++
	}
	for _, rec := range snap.Intakes {
		normalized, err := ledger.Normalize(rec)
		if err != nil {
			logger.Warn("Skipping intake record", "id", rec.ID, "error", err)
			res.Skipped++
			continue
		}
		if err := p.SaveIntake(normalized); err != nil {
			return res, fmt.Errorf("failed to import intake %s: %w", rec.ID, err)
		}
		res.Intakes++
	}
	if snap.Settings != nil {
		settings := *snap.Settings
		models.ApplyDefaultSettings(&settings)
		if err := p.SaveSettings(settings); err != nil {
			return res, fmt.Errorf("failed to import settings: %w", err)
		}
		res.Settings = true
	}
	return res, nil
}

// ReadSnapshot decodes a four-key document. JSON that carries none of the
// keys is rejected instead of importing as an empty data set.
func ReadSnapshot(r io.Reader) (models.Snapshot, error) {
	var snap models.Snapshot
	var raw map[string]json.RawMessage
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return snap, fmt.Errorf("failed to parse document: %w", err)
	}

	known := false
	for _, k := range []string{constants.KeyPackages, constants.KeyCourses, constants.KeyIntakes, constants.KeySettings} {
		if _, ok := raw[k]; ok {
			known = true
			break
		}
	}
	if !known {
		return snap, fmt.Errorf("not a pharmtrack document: none of %s, %s, %s or %s found",
			constants.KeyPackages, constants.KeyCourses, constants.KeyIntakes, constants.KeySettings)
	}

	doc, err := json.Marshal(raw)
	if err != nil {
		return snap, err
	}
	if err := json.Unmarshal(doc, &snap); err != nil {
		return snap, fmt.Errorf("failed to parse document: %w", err)
	}
	return snap, nil
}

// WriteSnapshot encodes a document with two-space indentation.
func WriteSnapshot(w io.Writer, snap models.Snapshot) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(snap)
}
