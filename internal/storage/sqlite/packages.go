package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/pharmtrack/internal/models"
	"github.com/julianstephens/pharmtrack/internal/storage"
)

func (s *Store) AddPackage(pkg models.Package) error {
	_, err := s.db.Exec(`
		INSERT OR REPLACE INTO packages (`+storage.PackageColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		storage.PackageArgs(pkg)...)
	return err
}

func (s *Store) GetPackage(id string) (models.Package, error) {
	row := s.db.QueryRow(`SELECT `+storage.PackageColumns+`
		FROM packages WHERE id = ? AND deleted_at IS NULL`, id)
	pkg, err := storage.ScanPackage(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Package{}, fmt.Errorf("package %s: %w", id, storage.ErrNotFound)
	}
	return pkg, err
}

func (s *Store) GetAllPackages() ([]models.Package, error) {
	rows, err := s.db.Query(`SELECT ` + storage.PackageColumns + `
		FROM packages WHERE deleted_at IS NULL ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	return storage.CollectRows(rows, storage.ScanPackage)
}

func (s *Store) GetAllPackagesIncludingDeleted() ([]models.Package, error) {
	rows, err := s.db.Query(`SELECT ` + storage.PackageColumns + `
		FROM packages ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	return storage.CollectRows(rows, storage.ScanPackage)
}

func (s *Store) UpdatePackage(pkg models.Package) error {
	res, err := s.db.Exec(`
		UPDATE packages SET trade_name = ?, quantity = ?, current_quantity = ?, dosage_value = ?,
			dosage_unit = ?, medication_type = ?, active_ingredient = ?, display_name = ?,
			indications = ?, comment = ?, rda_percent = ?, created_at = ?, deleted_at = ?
		WHERE id = ?`,
		append(storage.PackageArgs(pkg)[1:], pkg.ID)...)
	if err != nil {
		return err
	}
	return storage.CheckAffected(res, "package", pkg.ID)
}

func (s *Store) DeletePackage(id string) error {
	res, err := s.db.Exec(`UPDATE packages SET deleted_at = ? WHERE id = ? AND deleted_at IS NULL`,
		time.Now().UTC().Format(time.RFC3339), id)
	if err != nil {
		return err
	}
	return storage.CheckAffected(res, "package", id)
}

func (s *Store) RestorePackage(id string) error {
	var deletedAt sql.NullString
	err := s.db.QueryRow(`SELECT deleted_at FROM packages WHERE id = ?`, id).Scan(&deletedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("package %s: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return err
	}
	if !deletedAt.Valid {
		return fmt.Errorf("cannot restore a package that is not deleted: %s", id)
	}

	_, err = s.db.Exec(`UPDATE packages SET deleted_at = NULL WHERE id = ?`, id)
	return err
}
