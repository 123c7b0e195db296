package prefs

import (
	"context"
	"fmt"

	"github.com/jask/ebandobast/internal/database/repository"
)

// GPSIntervalKey is the settings row holding the GPS sampling interval in milliseconds.
const GPSIntervalKey = "gps_sample_interval_ms"

// GPSInterval persists the one durable session setting.
type GPSInterval struct {
	Settings  *repository.SettingsRepo
	DefaultMs int
}

// Load returns the stored interval, or DefaultMs when none was ever written
// or the stored value is unusable.
func (g *GPSInterval) Load(ctx context.Context) (int, error) {
	v, ok, err := g.Settings.GetInt(ctx, GPSIntervalKey)
	if err != nil {
		return g.DefaultMs, fmt.Errorf("load gps interval: %w", err)
	}
	if !ok || v <= 0 {
		return g.DefaultMs, nil
	}
	return v, nil
}

// Save writes the interval through to storage before returning.
func (g *GPSInterval) Save(ctx context.Context, ms int) error {
	if ms <= 0 {
		return fmt.Errorf("save gps interval: %d is not positive", ms)
	}
	if err := g.Settings.SetInt(ctx, GPSIntervalKey, ms); err != nil {
		return fmt.Errorf("save gps interval: %w", err)
	}
	return nil
}
