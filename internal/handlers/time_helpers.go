package handlers

import (
	"time"

	"github.com/KaribuVetLabs/clinic-scheduler/internal/config"
	"github.com/KaribuVetLabs/clinic-scheduler/internal/timezone"
)

// parseClinicTime accepts a naive "2006-01-02T15:04:05" in the clinic's
// timezone, or a full RFC3339 timestamp.
func parseClinicTime(cfg *config.Config, s string) (time.Time, error) {
	loc := timezone.Location(cfg.ClinicTimezone)

	if t, err := time.ParseInLocation("2006-01-02T15:04:05", s, loc); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

func parseClinicDate(cfg *config.Config, s string) (time.Time, error) {
	loc := timezone.Location(cfg.ClinicTimezone)
	return time.ParseInLocation("2006-01-02", s, loc)
}
