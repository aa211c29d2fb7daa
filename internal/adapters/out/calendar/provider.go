// Package calendar implements the business calendar from shop configuration:
// opening hours, a per-slot capacity limit, and a holiday list. The
// configuration can be swapped at runtime; readers always see a consistent
// snapshot.
package calendar

import (
	"sync"
	"time"

	"bakeshop/internal/core/domain/model/kernel"
	"bakeshop/internal/pkg/errs"
)

// Config describes one calendar configuration snapshot.
type Config struct {
	// OpenHour is the first bookable hour of a business day (inclusive).
	OpenHour int

	// CloseHour is the hour the shop closes (exclusive).
	CloseHour int

	// SlotLimit is the number of orders each open slot can take.
	SlotLimit int

	// Holidays lists closed dates in "2006-01-02" form.
	Holidays []string
}

// Provider implements ports.BusinessCalendar over a Config snapshot.
// Reload replaces the snapshot atomically; staleness between reloads is
// acceptable since calendar changes happen on a human timescale.
type Provider struct {
	mu        sync.RWMutex
	openHour  int
	closeHour int
	slotLimit int
	holidays  map[string]struct{}

	now func() time.Time
}

// NewProvider creates a calendar provider from the initial configuration.
func NewProvider(cfg Config) (*Provider, error) {
	p := &Provider{now: time.Now}
	if err := p.Reload(cfg); err != nil {
		return nil, err
	}
	return p, nil
}

// Reload validates and installs a new configuration snapshot.
// On error the previous snapshot stays in effect.
func (p *Provider) Reload(cfg Config) error {
	if cfg.OpenHour < 0 || cfg.OpenHour > 23 {
		return errs.NewValueIsOutOfRangeError("openHour", cfg.OpenHour, 0, 23)
	}
	if cfg.CloseHour < 1 || cfg.CloseHour > 24 {
		return errs.NewValueIsOutOfRangeError("closeHour", cfg.CloseHour, 1, 24)
	}
	if cfg.CloseHour <= cfg.OpenHour {
		return errs.NewValueIsInvalidError("closeHour")
	}
	if cfg.SlotLimit < 0 {
		return errs.NewValueIsOutOfRangeError("slotLimit", cfg.SlotLimit, 0, int(^uint(0)>>1))
	}

	holidays := make(map[string]struct{}, len(cfg.Holidays))
	for _, day := range cfg.Holidays {
		if _, err := time.Parse("2006-01-02", day); err != nil {
			return errs.NewValueIsInvalidErrorWithCause("holiday", err)
		}
		holidays[day] = struct{}{}
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.openHour = cfg.OpenHour
	p.closeHour = cfg.CloseHour
	p.slotLimit = cfg.SlotLimit
	p.holidays = holidays

	return nil
}

// Now returns the current time.
func (p *Provider) Now() time.Time {
	return p.now()
}

// SlotLimit returns the capacity of the given slot: the configured limit for
// open hours, 0 for closed hours and holidays.
func (p *Provider) SlotLimit(slot kernel.Slot) int {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.isHolidayLocked(slot.Date()) {
		return 0
	}
	if slot.Hour() < p.openHour || slot.Hour() >= p.closeHour {
		return 0
	}
	return p.slotLimit
}

// DaySlots returns the bookable slots of the given date, one per open hour.
// Holidays yield an empty list.
func (p *Provider) DaySlots(date time.Time) []kernel.Slot {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.isHolidayLocked(date) {
		return nil
	}

	slots := make([]kernel.Slot, 0, p.closeHour-p.openHour)
	for hour := p.openHour; hour < p.closeHour; hour++ {
		slot, err := kernel.NewSlot(date, hour)
		if err != nil {
			continue
		}
		slots = append(slots, slot)
	}
	return slots
}

func (p *Provider) isHolidayLocked(date time.Time) bool {
	_, ok := p.holidays[date.UTC().Format("2006-01-02")]
	return ok
}
