package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/KaribuVetLabs/clinic-scheduler/internal/timezone"
)

func TestKeyFor_NormalizesToClinicDay(t *testing.T) {
	c := &ScheduleCache{loc: timezone.Location("Africa/Nairobi")}

	// 22:30 UTC is already the next day in Nairobi (UTC+3), so the key a
	// booking write invalidates must match the key the schedule read uses.
	utc := time.Date(2025, 9, 20, 22, 30, 0, 0, time.UTC)
	local := time.Date(2025, 9, 21, 1, 30, 0, 0, timezone.Location("Africa/Nairobi"))

	assert.Equal(t, "schedule:vet:7:2025-09-21", c.keyFor(7, utc))
	assert.Equal(t, c.keyFor(7, local), c.keyFor(7, utc))

	// Midday stays on its own day.
	assert.Equal(t, "schedule:vet:7:2025-09-20", c.keyFor(7, time.Date(2025, 9, 20, 12, 0, 0, 0, time.UTC)))
}
