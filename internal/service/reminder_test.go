package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"babylog/internal/models"
)

func TestEvaluateReminder(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 8, 20, 18, 0, 0, 0, time.UTC)
	feedAt := func(ago time.Duration) *models.LogEntry {
		return &models.LogEntry{Type: models.TypeBottle, CreatedAt: now.Add(-ago)}
	}

	cases := []struct {
		name     string
		hours    float64
		lastFeed *models.LogEntry
		want     ReminderState
		wantDue  bool
	}{
		{name: "interval unset disables", hours: 0, lastFeed: feedAt(10 * time.Hour), want: ReminderDisabled},
		{name: "negative interval disables", hours: -1, want: ReminderDisabled},
		{name: "no feed yet stays armed", hours: 3, lastFeed: nil, want: ReminderArmed},
		{name: "fed 2h ago within 3h", hours: 3, lastFeed: feedAt(2 * time.Hour), want: ReminderArmed, wantDue: true},
		{name: "fed 4h ago past 3h", hours: 3, lastFeed: feedAt(4 * time.Hour), want: ReminderOverdue, wantDue: true},
		{name: "exactly at the boundary is overdue", hours: 3, lastFeed: feedAt(3 * time.Hour), want: ReminderOverdue, wantDue: true},
		{name: "fractional interval", hours: 2.5, lastFeed: feedAt(3 * time.Hour), want: ReminderOverdue, wantDue: true},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			status := EvaluateReminder(now, tc.hours, tc.lastFeed)
			if status.State != tc.want {
				t.Fatalf("state = %s; want %s", status.State, tc.want)
			}
			if tc.wantDue != (status.NextDue != nil) {
				t.Fatalf("next_due = %v; wantDue=%v", status.NextDue, tc.wantDue)
			}
			if tc.wantDue {
				due := tc.lastFeed.CreatedAt.Add(time.Duration(tc.hours * float64(time.Hour)))
				if !status.NextDue.Equal(due) {
					t.Fatalf("next_due = %v; want %v", status.NextDue, due)
				}
			}
		})
	}
}

func TestReminderStatus_ReadsStoreAndSettings(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 8, 20, 18, 0, 0, 0, time.UTC)
	repo := &fakeLogRepo{entries: []models.LogEntry{
		{Type: models.TypeDiaper, CreatedAt: now.Add(-time.Hour)},
		{Type: models.TypeNursing, CreatedAt: now.Add(-4 * time.Hour), DurationSeconds: 600},
	}}
	svc := NewReminderService(repo, &fakeSettingsRepo{hours: 3}, nil, nil)

	status, err := svc.Status(context.Background(), now)
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	// diapers don't count as feeds; the nursing session 4h ago does
	if status.State != ReminderOverdue {
		t.Fatalf("state = %s; want OVERDUE", status.State)
	}
}

func TestReminderStatus_SettingsError(t *testing.T) {
	t.Parallel()

	wantErr := errors.New("settings gone")
	svc := NewReminderService(&fakeLogRepo{}, &fakeSettingsRepo{err: wantErr}, nil, nil)
	if _, err := svc.Status(context.Background(), time.Now()); !errors.Is(err, wantErr) {
		t.Fatalf("err = %v; want %v", err, wantErr)
	}
}

func TestReminderPoll_NotifiesOncePerHour(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 8, 20, 18, 0, 0, 0, time.UTC)
	repo := &fakeLogRepo{entries: []models.LogEntry{
		{Type: models.TypeBottle, CreatedAt: now.Add(-5 * time.Hour), AmountMl: 100},
	}}
	notifier := &fakeNotifier{}
	svc := NewReminderService(repo, &fakeSettingsRepo{hours: 3}, notifier, nil)

	ctx := context.Background()
	svc.poll(ctx, now)
	svc.poll(ctx, now.Add(time.Minute))
	svc.poll(ctx, now.Add(30*time.Minute))
	if len(notifier.notified) != 1 {
		t.Fatalf("got %d notifications within the hour; want 1", len(notifier.notified))
	}

	svc.poll(ctx, now.Add(time.Hour))
	if len(notifier.notified) != 2 {
		t.Fatalf("got %d notifications after cooldown; want 2", len(notifier.notified))
	}

	n := notifier.notified[0]
	if n.Title != "BabyLog Reminder" {
		t.Fatalf("title = %q", n.Title)
	}
	if n.Body != "It's been over 3 hours since the last feed." {
		t.Fatalf("body = %q", n.Body)
	}
}

func TestReminderPoll_QuietWhenNotOverdue(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 8, 20, 18, 0, 0, 0, time.UTC)
	repo := &fakeLogRepo{entries: []models.LogEntry{
		{Type: models.TypeBottle, CreatedAt: now.Add(-time.Hour), AmountMl: 100},
	}}
	notifier := &fakeNotifier{}
	svc := NewReminderService(repo, &fakeSettingsRepo{hours: 3}, notifier, nil)

	svc.poll(context.Background(), now)
	if len(notifier.notified) != 0 {
		t.Fatalf("notified while armed: %+v", notifier.notified)
	}
}

func TestReminderRun_StopsOnCancel(t *testing.T) {
	t.Parallel()

	svc := NewReminderService(&fakeLogRepo{}, &fakeSettingsRepo{}, nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		svc.Run(ctx, time.Millisecond)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
