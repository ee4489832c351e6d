package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/julianstephens/pharmtrack/internal/constants"
	"github.com/julianstephens/pharmtrack/internal/ledger"
	"github.com/julianstephens/pharmtrack/internal/models"
)

// Column lists shared by the SQL backends. The Scan helpers below expect
// exactly this order.
const (
	PackageColumns = `id, trade_name, quantity, current_quantity, dosage_value, dosage_unit,
		medication_type, active_ingredient, display_name, indications, comment, rda_percent,
		created_at, deleted_at`

	CourseColumns = `id, package_id, course_name, active_substance, current_stock, start_date,
		end_date, is_lifelong, is_active, interval_days, schedule, dose_per_intake,
		use_different_doses, doses, exact_times, meal_condition, low_stock_reminder_days,
		created_at, deleted_at`

	IntakeColumns = `id, course_id, date, time_of_day, taken, updated_at`
)

// Scanner is satisfied by *sql.Row and *sql.Rows.
type Scanner interface {
	Scan(dest ...any) error
}

func ScanPackage(row Scanner) (models.Package, error) {
	var p models.Package
	var current sql.NullInt64
	var deletedAt sql.NullString

	err := row.Scan(
		&p.ID, &p.TradeName, &p.Quantity, &current, &p.DosageValue, &p.DosageUnit,
		&p.MedicationType, &p.ActiveIngredient, &p.DisplayName, &p.Indications, &p.Comment, &p.RdaPercent,
		&p.CreatedAt, &deletedAt,
	)
	if err != nil {
		return models.Package{}, err
	}
	if current.Valid {
		q := int(current.Int64)
		p.CurrentQuantity = &q
	}
	p.DeletedAt = stringPtr(deletedAt)
	return p, nil
}

// PackageArgs returns the values for an INSERT in PackageColumns order.
func PackageArgs(p models.Package) []any {
	return []any{
		p.ID, p.TradeName, p.Quantity, nullInt(p.CurrentQuantity), p.DosageValue, p.DosageUnit,
		p.MedicationType, p.ActiveIngredient, p.DisplayName, p.Indications, p.Comment, p.RdaPercent,
		p.CreatedAt, nullString(p.DeletedAt),
	}
}

func ScanCourse(row Scanner) (models.Course, error) {
	var c models.Course
	var stock, dose sql.NullFloat64
	var endDate, doses, exactTimes, deletedAt sql.NullString
	var lowStock sql.NullInt64
	var schedule, meal string

	err := row.Scan(
		&c.ID, &c.PackageID, &c.CourseName, &c.ActiveSubstance, &stock, &c.StartDate,
		&endDate, &c.IsLifelong, &c.IsActive, &c.IntervalDays, &schedule, &dose,
		&c.UseDifferentDoses, &doses, &exactTimes, &meal, &lowStock,
		&c.CreatedAt, &deletedAt,
	)
	if err != nil {
		return models.Course{}, err
	}

	c.CurrentStock = floatPtr(stock)
	c.DosePerIntake = floatPtr(dose)
	c.EndDate = stringPtr(endDate)
	c.DeletedAt = stringPtr(deletedAt)
	c.MealCondition = constants.MealCondition(meal)
	if lowStock.Valid {
		n := int(lowStock.Int64)
		c.LowStockReminderDays = &n
	}

	if err := json.Unmarshal([]byte(schedule), &c.Schedule); err != nil {
		return models.Course{}, fmt.Errorf("course %s: bad schedule column: %w", c.ID, err)
	}
	if doses.Valid {
		c.Doses = &models.SlotDoses{}
		if err := json.Unmarshal([]byte(doses.String), c.Doses); err != nil {
			return models.Course{}, fmt.Errorf("course %s: bad doses column: %w", c.ID, err)
		}
	}
	if exactTimes.Valid {
		c.ExactTimes = &models.SlotTimes{}
		if err := json.Unmarshal([]byte(exactTimes.String), c.ExactTimes); err != nil {
			return models.Course{}, fmt.Errorf("course %s: bad exact_times column: %w", c.ID, err)
		}
	}
	return c, nil
}

// CourseArgs returns the values for an INSERT in CourseColumns order.
// Schedule, doses and exact times are stored as JSON text.
func CourseArgs(c models.Course) ([]any, error) {
	schedule, err := json.Marshal(c.Schedule)
	if err != nil {
		return nil, err
	}
	doses, err := jsonColumn(c.Doses)
	if err != nil {
		return nil, err
	}
	exactTimes, err := jsonColumn(c.ExactTimes)
	if err != nil {
		return nil, err
	}

	return []any{
		c.ID, c.PackageID, c.CourseName, c.ActiveSubstance, nullFloat(c.CurrentStock), c.StartDate,
		nullString(c.EndDate), c.IsLifelong, c.IsActive, c.IntervalDays, string(schedule), nullFloat(c.DosePerIntake),
		c.UseDifferentDoses, doses, exactTimes, string(c.MealCondition), nullInt(c.LowStockReminderDays),
		c.CreatedAt, nullString(c.DeletedAt),
	}, nil
}

func ScanIntake(row Scanner) (models.IntakeRecord, error) {
	var r models.IntakeRecord
	var slot string
	if err := row.Scan(&r.ID, &r.CourseID, &r.Date, &slot, &r.Taken, &r.UpdatedAt); err != nil {
		return models.IntakeRecord{}, err
	}
	r.TimeOfDay = constants.TimeOfDay(slot)
	return r, nil
}

// IntakeArgs fills the split-out key columns from the ID when they are missing,
// so the date range queries find records saved by key alone.
func IntakeArgs(r models.IntakeRecord) []any {
	if r.Date == "" || r.CourseID == "" || r.TimeOfDay == "" {
		if normalized, err := ledger.Normalize(r); err == nil {
			r = normalized
		}
	}
	return []any{r.ID, r.CourseID, r.Date, string(r.TimeOfDay), r.Taken, r.UpdatedAt}
}

// CollectRows drains rows through scan.
func CollectRows[T any](rows *sql.Rows, scan func(Scanner) (T, error)) ([]T, error) {
	defer rows.Close()
	var out []T
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// CheckAffected converts "no rows changed" into ErrNotFound.
func CheckAffected(res sql.Result, what, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", what, id, ErrNotFound)
	}
	return nil
}

func jsonColumn(v any) (sql.NullString, error) {
	switch t := v.(type) {
	case *models.SlotDoses:
		if t == nil {
			return sql.NullString{}, nil
		}
	case *models.SlotTimes:
		if t == nil {
			return sql.NullString{}, nil
		}
	}
	data, err := json.Marshal(v)
	if err != nil {
		return sql.NullString{}, err
	}
	return sql.NullString{String: string(data), Valid: true}, nil
}

func nullString(p *string) sql.NullString {
	if p == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *p, Valid: true}
}

func nullFloat(p *float64) sql.NullFloat64 {
	if p == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *p, Valid: true}
}

func nullInt(p *int) sql.NullInt64 {
	if p == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*p), Valid: true}
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

func floatPtr(nf sql.NullFloat64) *float64 {
	if !nf.Valid {
		return nil
	}
	f := nf.Float64
	return &f
}
