package courses

import (
	"fmt"
	"sort"
	"strings"

	"github.com/julianstephens/pharmtrack/internal/cli"
	"github.com/julianstephens/pharmtrack/internal/constants"
	"github.com/julianstephens/pharmtrack/internal/models"
	"github.com/julianstephens/pharmtrack/internal/utils"
)

func parseSlot(s string) (constants.TimeOfDay, error) {
	slot := constants.TimeOfDay(strings.ToLower(strings.TrimSpace(s)))
	if constants.SlotIndex(slot) < 0 {
		return "", fmt.Errorf("invalid time of day %q: expected morning, day, evening or night", s)
	}
	return slot, nil
}

func parseSchedule(times []string) (models.Schedule, error) {
	var schedule models.Schedule
	for _, t := range times {
		slot, err := parseSlot(t)
		if err != nil {
			return models.Schedule{}, err
		}
		schedule.Set(slot, true)
	}
	if !schedule.Any() {
		return models.Schedule{}, fmt.Errorf("at least one time of day is required")
	}
	return schedule, nil
}

// sortedKeys keeps error messages stable for map flags.
func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func parseSlotDoses(m map[string]string) (*models.SlotDoses, error) {
	if len(m) == 0 {
		return nil, nil
	}
	doses := &models.SlotDoses{}
	for _, key := range sortedKeys(m) {
		slot, err := parseSlot(key)
		if err != nil {
			return nil, err
		}
		dose, err := cli.ParseDose(m[key])
		if err != nil {
			return nil, fmt.Errorf("%s dose: %w", slot, err)
		}
		doses.Set(slot, &dose)
	}
	return doses, nil
}

func parseSlotTimes(m map[string]string) (*models.SlotTimes, error) {
	if len(m) == 0 {
		return nil, nil
	}
	times := &models.SlotTimes{}
	for _, key := range sortedKeys(m) {
		slot, err := parseSlot(key)
		if err != nil {
			return nil, err
		}
		clock := strings.TrimSpace(m[key])
		if !utils.ValidateTimeFormat(clock) {
			return nil, fmt.Errorf("invalid %s time %q (expected HH:MM)", slot, clock)
		}
		times.Set(slot, clock)
	}
	return times, nil
}

func parseMeal(s string) (constants.MealCondition, error) {
	meal := constants.MealCondition(strings.ToLower(strings.TrimSpace(s)))
	if meal == "" {
		return "", nil
	}
	if _, ok := constants.MealLabels[meal]; !ok {
		return "", fmt.Errorf("invalid meal condition %q: expected before, after, during, empty or any", s)
	}
	return meal, nil
}

func parseStock(s string) (*float64, error) {
	stock, err := utils.ParseDecimal(s)
	if err != nil {
		return nil, fmt.Errorf("invalid stock: %w", err)
	}
	if stock < 0 {
		return nil, fmt.Errorf("stock cannot be negative")
	}
	return &stock, nil
}
