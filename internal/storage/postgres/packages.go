package postgres

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
		INSERT INTO packages (`+storage.PackageColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (id) DO UPDATE SET
			trade_name = EXCLUDED.trade_name, quantity = EXCLUDED.quantity,
			current_quantity = EXCLUDED.current_quantity, dosage_value = EXCLUDED.dosage_value,
			dosage_unit = EXCLUDED.dosage_unit, medication_type = EXCLUDED.medication_type,
			active_ingredient = EXCLUDED.active_ingredient, display_name = EXCLUDED.display_name,
			indications = EXCLUDED.indications, comment = EXCLUDED.comment,
			rda_percent = EXCLUDED.rda_percent, created_at = EXCLUDED.created_at,
			deleted_at = EXCLUDED.deleted_at`,
		storage.PackageArgs(pkg)...)
	return err
}

func (s *Store) GetPackage(id string) (models.Package, error) {
	row := s.db.QueryRow(`SELECT `+storage.PackageColumns+`
		FROM packages WHERE id = $1 AND deleted_at IS NULL`, id)
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
		UPDATE packages SET trade_name = $2, quantity = $3, current_quantity = $4, dosage_value = $5,
			dosage_unit = $6, medication_type = $7, active_ingredient = $8, display_name = $9,
			indications = $10, comment = $11, rda_percent = $12, created_at = $13, deleted_at = $14
		WHERE id = $1`,
		storage.PackageArgs(pkg)...)
	if err != nil {
		return err
	}
	return storage.CheckAffected(res, "package", pkg.ID)
}

func (s *Store) DeletePackage(id string) error {
	res, err := s.db.Exec(`UPDATE packages SET deleted_at = $1 WHERE id = $2 AND deleted_at IS NULL`,
		time.Now().UTC().Format(time.RFC3339), id)
	if err != nil {
		return err
	}
	return storage.CheckAffected(res, "package", id)
}

func (s *Store) RestorePackage(id string) error {
	var deletedAt sql.NullString
	err := s.db.QueryRow(`SELECT deleted_at FROM packages WHERE id = $1`, id).Scan(&deletedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("package %s: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return err
	}
	if !deletedAt.Valid {
		return fmt.Errorf("cannot restore a package that is not deleted: %s", id)
	}

	_, err = s.db.Exec(`UPDATE packages SET deleted_at = NULL WHERE id = $1`, id)
	return err
}
