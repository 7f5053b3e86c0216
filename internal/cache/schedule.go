package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/KaribuVetLabs/clinic-scheduler/internal/dto"
	"github.com/KaribuVetLabs/clinic-scheduler/internal/timezone"
)

// ScheduleCache keeps the per-vet day schedule projection in redis for the
// reception dashboard. Every booking write invalidates the affected day, so
// reads still reflect committed state. A nil *ScheduleCache is a no-op.
type ScheduleCache struct {
	rdb *redis.Client
	loc *time.Location
	ttl time.Duration
}

func New(addr, password, clinicTimezone string) *ScheduleCache {
	if addr == "" {
		return nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})

	return &ScheduleCache{
		rdb: rdb,
		loc: timezone.Location(clinicTimezone),
		ttl: 5 * time.Minute,
	}
}

// keyFor normalizes the timestamp to the clinic timezone before deriving the
// day, so a booking sent with a foreign UTC offset invalidates the same key
// the schedule reads use.
func (c *ScheduleCache) keyFor(vetID uint, at time.Time) string {
	return fmt.Sprintf("schedule:vet:%d:%s", vetID, at.In(c.loc).Format("2006-01-02"))
}

func (c *ScheduleCache) GetDay(ctx context.Context, vetID uint, at time.Time) ([]dto.AppointmentDetailDTO, bool) {
	if c == nil {
		return nil, false
	}

	b, err := c.rdb.Get(ctx, c.keyFor(vetID, at)).Bytes()
	if err != nil {
		return nil, false
	}

	var details []dto.AppointmentDetailDTO
	if err := json.Unmarshal(b, &details); err != nil {
		return nil, false
	}
	return details, true
}

func (c *ScheduleCache) SetDay(ctx context.Context, vetID uint, at time.Time, details []dto.AppointmentDetailDTO) {
	if c == nil {
		return
	}

	b, err := json.Marshal(details)
	if err != nil {
		return
	}

	if err := c.rdb.Set(ctx, c.keyFor(vetID, at), b, c.ttl).Err(); err != nil {
		log.Println("schedule cache set:", err)
	}
}

func (c *ScheduleCache) InvalidateDay(ctx context.Context, vetID uint, at time.Time) {
	if c == nil {
		return
	}

	if err := c.rdb.Del(ctx, c.keyFor(vetID, at)).Err(); err != nil {
		log.Println("schedule cache invalidate:", err)
	}
}
