package scheduler

import (
	"math"
	"time"

	"github.com/julianstephens/pharmtrack/internal/models"
	"github.com/julianstephens/pharmtrack/internal/utils"
)

// MaxForecastDays caps StockForecast.DaysLeft.
const MaxForecastDays = 100 * 365

// StockForecast estimates how long a course's remaining stock lasts.
type StockForecast struct {
	DailyConsumption float64 // average units per day
	Known            bool    // false when stock or consumption is unknown
	DaysLeft         int
	RunsOutOn        string // YYYY-MM-DD, set when Known
	Low              bool   // DaysLeft is within the course's reminder window
}

// DailyConsumption returns the average number of units a course uses per day:
// the sum of its slot doses spread over its interval.
func DailyConsumption(course models.Course) float64 {
	interval := course.Interval()
	if interval < 1 {
		return 0
	}
	var perDueDay float64
	for _, slot := range course.Schedule.Slots() {
		perDueDay += ResolveDose(course, slot)
	}
	return perDueDay / float64(interval)
}

// Forecast projects the course's current stock forward from the given date.
func Forecast(course models.Course, from time.Time) StockForecast {
	f := StockForecast{DailyConsumption: DailyConsumption(course)}
	if course.CurrentStock == nil || f.DailyConsumption <= 0 {
		return f
	}

	f.Known = true
	days := math.Floor(*course.CurrentStock / f.DailyConsumption)
	switch {
	case math.IsNaN(days) || days < 0:
		days = 0
	case days > MaxForecastDays:
		days = MaxForecastDays
	}
	f.DaysLeft = int(days)
	f.RunsOutOn = utils.FormatDate(utils.AddDays(from, f.DaysLeft))
	if course.LowStockReminderDays != nil {
		f.Low = f.DaysLeft <= *course.LowStockReminderDays
	}
	return f
}
