package postgres

import (
	"github.com/julianstephens/pharmtrack/internal/models"
	"github.com/julianstephens/pharmtrack/internal/storage"
)

func (s *Store) SaveIntake(rec models.IntakeRecord) error {
	_, err := s.db.Exec(`
		INSERT INTO intakes (`+storage.IntakeColumns+`) VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET taken = EXCLUDED.taken, updated_at = EXCLUDED.updated_at`,
		storage.IntakeArgs(rec)...)
	return err
}

func (s *Store) GetIntakesForDate(date string) ([]models.IntakeRecord, error) {
	return s.GetIntakesInRange(date, date)
}

func (s *Store) GetIntakesInRange(startDate, endDate string) ([]models.IntakeRecord, error) {
	rows, err := s.db.Query(`SELECT `+storage.IntakeColumns+`
		FROM intakes WHERE date >= $1 AND date <= $2 ORDER BY date, id`, startDate, endDate)
	if err != nil {
		return nil, err
	}
	return storage.CollectRows(rows, storage.ScanIntake)
}

func (s *Store) GetAllIntakes() ([]models.IntakeRecord, error) {
	rows, err := s.db.Query(`SELECT ` + storage.IntakeColumns + ` FROM intakes ORDER BY date, id`)
	if err != nil {
		return nil, err
	}
	return storage.CollectRows(rows, storage.ScanIntake)
}
