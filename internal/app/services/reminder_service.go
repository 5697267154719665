package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/prop101/strataops/internal/app/models"
	"github.com/prop101/strataops/internal/pkg/logger"
)

// PropertyReader is the snapshot source the reminder projection recomputes
// from. Recompute must always see a consistent portfolio, never a
// partially-updated one.
type PropertyReader interface {
	GetAllWithMeetings(ctx context.Context) ([]*models.Property, error)
}

// ReminderService owns the derived reminder set. The set is regenerated
// wholesale on every Recompute: stale reminders whose triggering condition no
// longer holds vanish rather than being patched incrementally.
type ReminderService interface {
	// Recompute rebuilds the reminder set from the current portfolio.
	// Callers invoke it after every property or meeting mutation.
	Recompute(ctx context.Context) error
	// Reminders returns the current reminder set in evaluation order.
	Reminders() []*models.Reminder
	// Reminder looks up a single reminder by its deterministic ID.
	Reminder(id string) (*models.Reminder, bool)
}

// reminderServiceImpl implements ReminderService.
type reminderServiceImpl struct {
	properties PropertyReader
	now        func() time.Time

	mu      sync.RWMutex
	current []*models.Reminder
}

// NewReminderService creates a new reminder service instance.
func NewReminderService(properties PropertyReader) ReminderService {
	return &reminderServiceImpl{
		properties: properties,
		now:        time.Now,
		current:    []*models.Reminder{},
	}
}

// Recompute loads a portfolio snapshot, derives the full reminder set and
// replaces the previous one.
func (s *reminderServiceImpl) Recompute(ctx context.Context) error {
	properties, err := s.properties.GetAllWithMeetings(ctx)
	if err != nil {
		return fmt.Errorf("error loading portfolio snapshot: %w", err)
	}

	reminders := ComputeReminders(properties, s.now())

	s.mu.Lock()
	s.current = reminders
	s.mu.Unlock()

	logger.Debug().Int("reminders", len(reminders)).Int("properties", len(properties)).Msg("Reminder set recomputed")
	return nil
}

// Reminders returns a copy of the current reminder set.
func (s *reminderServiceImpl) Reminders() []*models.Reminder {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.Reminder, len(s.current))
	copy(out, s.current)
	return out
}

// Reminder looks up a reminder by ID in the current set.
func (s *reminderServiceImpl) Reminder(id string) (*models.Reminder, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, r := range s.current {
		if r.ID == id {
			return r, true
		}
	}
	return nil, false
}
