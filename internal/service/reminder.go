package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"babylog/internal/logger"
	"babylog/internal/models"
	"babylog/internal/repository"
)

// ReminderState is the feeding-reminder cycle state.
type ReminderState string

const (
	ReminderDisabled ReminderState = "DISABLED"
	ReminderArmed    ReminderState = "ARMED"
	ReminderOverdue  ReminderState = "OVERDUE"
)

// notifyCooldown throttles repeat notifications while overdue.
const notifyCooldown = time.Hour

// ReminderStatus is one poll's evaluation result.
type ReminderStatus struct {
	State         ReminderState `json:"state"`
	IntervalHours float64       `json:"interval_hours"`
	NextDue       *time.Time    `json:"next_due,omitempty"`
}

// Notification is the payload handed to the delivery collaborator.
type Notification struct {
	Title string    `json:"title"`
	Body  string    `json:"body"`
	At    time.Time `json:"at"`
}

// Notifier delivers a reminder notification. Delivery (and permission
// handling) belongs to the platform collaborator, not this evaluator.
type Notifier interface {
	Notify(ctx context.Context, n Notification)
}

type ReminderService struct {
	logs     repository.LogRepo
	settings repository.SettingsRepo
	notifier Notifier
	log      *logger.Logger

	mu           sync.Mutex
	lastNotified time.Time // zero until the first fire; reset on restart
}

func NewReminderService(logs repository.LogRepo, settings repository.SettingsRepo, notifier Notifier, log *logger.Logger) *ReminderService {
	return &ReminderService{
		logs:     logs,
		settings: settings,
		notifier: notifier,
		log:      log,
	}
}

// EvaluateReminder computes the reminder state against an explicit now.
// lastFeed may be nil; without a prior feed the reminder stays armed with
// no due time.
func EvaluateReminder(now time.Time, intervalHours float64, lastFeed *models.LogEntry) ReminderStatus {
	status := ReminderStatus{IntervalHours: intervalHours}

	if intervalHours <= 0 {
		status.State = ReminderDisabled
		return status
	}

	status.State = ReminderArmed
	if lastFeed == nil {
		return status
	}

	due := lastFeed.CreatedAt.Add(time.Duration(intervalHours * float64(time.Hour)))
	status.NextDue = &due
	if !now.Before(due) {
		status.State = ReminderOverdue
	}
	return status
}

// Status evaluates the current reminder state from the store.
func (s *ReminderService) Status(ctx context.Context, now time.Time) (ReminderStatus, error) {
	hours, err := s.settings.ReminderInterval(ctx)
	if err != nil {
		return ReminderStatus{}, err
	}
	lastFeed, err := s.logs.LastOfType(ctx, models.FeedTypes...)
	if err != nil {
		return ReminderStatus{}, err
	}
	return EvaluateReminder(now, hours, lastFeed), nil
}

// Run polls the reminder state at the given interval until ctx is canceled.
// Each overdue tick may fire the notifier, at most once per hour.
func (s *ReminderService) Run(ctx context.Context, tick time.Duration) {
	t := time.NewTicker(tick)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			s.poll(ctx, now.UTC())
		}
	}
}

func (s *ReminderService) poll(ctx context.Context, now time.Time) {
	status, err := s.Status(ctx, now)
	if err != nil {
		if s.log != nil {
			s.log.Errorw("reminder_poll_failed", "err", err)
		}
		return
	}
	if status.State != ReminderOverdue {
		return
	}
	s.maybeNotify(ctx, now, status)
}

// maybeNotify fires the notifier unless one fired within the cooldown.
func (s *ReminderService) maybeNotify(ctx context.Context, now time.Time, status ReminderStatus) {
	s.mu.Lock()
	if !s.lastNotified.IsZero() && now.Sub(s.lastNotified) < notifyCooldown {
		s.mu.Unlock()
		return
	}
	s.lastNotified = now
	s.mu.Unlock()

	if s.notifier == nil {
		return
	}
	s.notifier.Notify(ctx, Notification{
		Title: "BabyLog Reminder",
		Body:  fmt.Sprintf("It's been over %g hours since the last feed.", status.IntervalHours),
		At:    now,
	})
}
