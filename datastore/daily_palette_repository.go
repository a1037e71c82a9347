package datastore

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/color-palette/api/models"
)

const dailyPalettePrefix = "dailyPalette:"

type DailyPaletteRepository interface {
	Create(daily models.DailyPalette) (models.DailyPalette, error)
	GetByDate(date time.Time) (models.DailyPalette, error)
	GetToday() (models.DailyPalette, error)
	GetAll() ([]models.DailyPalette, error)
	Delete(date time.Time) error
}

type DailyPaletteStore struct {
	kv KeyValueRepository
}

func NewDailyPaletteStore(kv KeyValueRepository) DailyPaletteStore {
	return DailyPaletteStore{kv: kv}
}

// DateKey formats the calendar day of date in its own location
func DateKey(date time.Time) string {
	return date.Format("2006-01-02")
}

func dailyKey(date time.Time) string {
	return dailyPalettePrefix + DateKey(date)
}

// Create stores daily under its Date, replacing any earlier entry
func (dps DailyPaletteStore) Create(daily models.DailyPalette) (models.DailyPalette, error) {
	date, err := time.ParseInLocation("2006-01-02", daily.Date, time.Local)
	if err != nil {
		return models.DailyPalette{}, fmt.Errorf("invalid daily palette date %q: %v", daily.Date, err)
	}
	if daily.CreatedAt.IsZero() {
		daily.CreatedAt = time.Now()
	}

	raw, err := json.Marshal(daily)
	if err != nil {
		return models.DailyPalette{}, err
	}
	if err := dps.kv.Set(dailyKey(date), string(raw)); err != nil {
		return models.DailyPalette{}, fmt.Errorf("failed to create daily palette: %v", err)
	}
	return daily, nil
}

// GetByDate returns the palette for the day of date or a NoRowsError
func (dps DailyPaletteStore) GetByDate(date time.Time) (models.DailyPalette, error) {
	raw, err := dps.kv.Get(dailyKey(date))
	if err != nil {
		return models.DailyPalette{}, err
	}

	var daily models.DailyPalette
	if err := json.Unmarshal([]byte(raw), &daily); err != nil {
		return models.DailyPalette{}, fmt.Errorf("failed to decode daily palette: %v", err)
	}
	return daily, nil
}

func (dps DailyPaletteStore) GetToday() (models.DailyPalette, error) {
	return dps.GetByDate(time.Now())
}

// GetAll returns every stored palette, newest first
func (dps DailyPaletteStore) GetAll() ([]models.DailyPalette, error) {
	keys, err := dps.kv.Keys(dailyPalettePrefix)
	if err != nil {
		return nil, err
	}

	palettes := make([]models.DailyPalette, 0, len(keys))
	for i := len(keys) - 1; i >= 0; i-- {
		date, err := time.ParseInLocation("2006-01-02", strings.TrimPrefix(keys[i], dailyPalettePrefix), time.Local)
		if err != nil {
			continue
		}
		daily, err := dps.GetByDate(date)
		if err != nil {
			return nil, err
		}
		palettes = append(palettes, daily)
	}
	return palettes, nil
}

func (dps DailyPaletteStore) Delete(date time.Time) error {
	return dps.kv.Delete(dailyKey(date))
}
