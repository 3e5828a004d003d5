package service

import (
	"context"
	"testing"
	"time"

	"babylog/internal/models"
)

func TestFormatTimeSince(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		d    time.Duration
		want string
	}{
		{name: "under a minute", d: 30 * time.Second, want: "now"},
		{name: "zero", d: 0, want: "now"},
		{name: "whole minutes", d: 37 * time.Minute, want: "37m"},
		{name: "just under an hour", d: 59*time.Minute + 59*time.Second, want: "59m"},
		{name: "hours and minutes", d: 2*time.Hour + 5*time.Minute, want: "2h 5m"},
		{name: "exact hour", d: time.Hour, want: "1h 0m"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := FormatTimeSince(tc.d); got != tc.want {
				t.Fatalf("FormatTimeSince(%v) = %q; want %q", tc.d, got, tc.want)
			}
		})
	}
}

func TestSleepEffectiveTime_WakeTime(t *testing.T) {
	t.Parallel()

	start := time.Date(2025, 8, 20, 13, 0, 0, 0, time.UTC)
	entry := models.LogEntry{Type: models.TypeSleep, CreatedAt: start, DurationSeconds: 3600}

	wake := SleepEffectiveTime(entry)
	if !wake.Equal(start.Add(time.Hour)) {
		t.Fatalf("wake = %v; want %v", wake, start.Add(time.Hour))
	}

	// "time since last sleep" measures from the wake time
	now := start.Add(time.Hour + 5*time.Minute)
	if got := FormatTimeSince(TimeSince(now, wake)); got != "5m" {
		t.Fatalf("time since wake = %q; want 5m", got)
	}
}

func TestSleepEffectiveTime_NoDurationFallsBackToStart(t *testing.T) {
	t.Parallel()

	start := time.Date(2025, 8, 20, 13, 0, 0, 0, time.UTC)
	entry := models.LogEntry{Type: models.TypeSleep, CreatedAt: start}
	if got := SleepEffectiveTime(entry); !got.Equal(start) {
		t.Fatalf("effective = %v; want %v", got, start)
	}
}

func TestBuildWeeklyStats_BucketSums(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 8, 20, 18, 0, 0, 0, time.UTC)
	dayD := now.Truncate(24 * time.Hour).Add(9 * time.Hour)
	logs := []models.LogEntry{
		{Type: models.TypeBottle, CreatedAt: dayD, AmountMl: 100},
		{Type: models.TypePump, CreatedAt: dayD.Add(time.Hour), AmountMl: 50},
		{Type: models.TypeBottle, CreatedAt: dayD.AddDate(0, 0, -3), AmountMl: 200},
	}

	stats := BuildWeeklyStats(logs, now)
	if len(stats.Buckets) != 7 {
		t.Fatalf("expected 7 buckets, got %d", len(stats.Buckets))
	}
	// oldest first; today is the last bucket
	for i, b := range stats.Buckets {
		var want int
		switch i {
		case 6:
			want = 150
		case 3:
			want = 200
		}
		if b.VolumeMl != want {
			t.Fatalf("bucket %d (%s) volume = %d; want %d", i, b.Day, b.VolumeMl, want)
		}
	}
}

func TestBuildWeeklyStats_NursingMinutesRounded(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 8, 20, 18, 0, 0, 0, time.UTC)
	logs := []models.LogEntry{
		// 650s + 100s = 750s = 12.5min, rounds to 13
		{Type: models.TypeNursing, CreatedAt: now.Add(-2 * time.Hour), DurationSeconds: 650},
		{Type: models.TypeNursing, CreatedAt: now.Add(-3 * time.Hour), DurationSeconds: 100},
	}

	stats := BuildWeeklyStats(logs, now)
	if got := stats.Buckets[6].NursingMinutes; got != 13 {
		t.Fatalf("today nursing minutes = %d; want 13", got)
	}
}

func TestBuildWeeklyStats_DiaperCounts(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 8, 20, 18, 0, 0, 0, time.UTC)
	logs := []models.LogEntry{
		{Type: models.TypeDiaper, CreatedAt: now.Add(-time.Hour), SubType: models.SubTypeWet},
		{Type: models.TypeDiaper, CreatedAt: now.Add(-2 * time.Hour), SubType: models.SubTypeDirty},
		{Type: models.TypeDiaper, CreatedAt: now.AddDate(0, 0, -2), SubType: models.SubTypeBoth},
	}

	stats := BuildWeeklyStats(logs, now)
	// BOTH increments both counters, it is not split
	if stats.WetCount != 2 || stats.DirtyCount != 2 {
		t.Fatalf("wet=%d dirty=%d; want 2/2", stats.WetCount, stats.DirtyCount)
	}
}

func TestBuildWeeklyStats_OutsideWindowIgnored(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 8, 20, 18, 0, 0, 0, time.UTC)
	logs := []models.LogEntry{
		{Type: models.TypeBottle, CreatedAt: now.AddDate(0, 0, -7), AmountMl: 500},
		{Type: models.TypeDiaper, CreatedAt: now.AddDate(0, 0, -10), SubType: models.SubTypeBoth},
	}

	stats := BuildWeeklyStats(logs, now)
	for _, b := range stats.Buckets {
		if b.VolumeMl != 0 {
			t.Fatalf("entry 8 days old leaked into bucket %s", b.Day)
		}
	}
	if stats.WetCount != 0 || stats.DirtyCount != 0 {
		t.Fatalf("stale diaper entries counted: wet=%d dirty=%d", stats.WetCount, stats.DirtyCount)
	}
}

func TestBuildWeeklyStats_EmptyLogs(t *testing.T) {
	t.Parallel()

	stats := BuildWeeklyStats(nil, time.Date(2025, 8, 20, 18, 0, 0, 0, time.UTC))
	if len(stats.Buckets) != 7 {
		t.Fatalf("expected 7 buckets, got %d", len(stats.Buckets))
	}
	for _, b := range stats.Buckets {
		if b.VolumeMl != 0 || b.NursingMinutes != 0 {
			t.Fatalf("expected zero bucket, got %+v", b)
		}
	}
	if stats.AvgVolumeMl != 0 || stats.AvgNursingMinutes != 0 {
		t.Fatalf("expected zero averages: %+v", stats)
	}
}

func TestBuildWeeklyStats_AveragesDivideBySeven(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 8, 20, 18, 0, 0, 0, time.UTC)
	// 700ml on a single day still averages over all 7 days
	logs := []models.LogEntry{
		{Type: models.TypeBottle, CreatedAt: now.Add(-time.Hour), AmountMl: 700},
	}

	stats := BuildWeeklyStats(logs, now)
	if stats.AvgVolumeMl != 100 {
		t.Fatalf("avg volume = %d; want 100", stats.AvgVolumeMl)
	}
}

func TestBuildDashboard_TilesAndOverdue(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 8, 20, 18, 0, 0, 0, time.UTC)
	sleepStart := now.Add(-3 * time.Hour)
	logs := []models.LogEntry{ // newest first
		{ID: "d1", Type: models.TypeDiaper, CreatedAt: now.Add(-30 * time.Minute), SubType: models.SubTypeWet},
		{ID: "s1", Type: models.TypeSleep, CreatedAt: sleepStart, DurationSeconds: 3600},
		{ID: "b1", Type: models.TypeBottle, CreatedAt: now.Add(-4 * time.Hour), SubType: models.SubTypeFormula, AmountMl: 120},
	}

	view := BuildDashboard(logs, now, models.ReminderConfig{IntervalHours: 3})

	if view.LastActivity.Entry == nil || view.LastActivity.Entry.ID != "d1" {
		t.Fatalf("last activity: %+v", view.LastActivity)
	}
	if view.LastFeed.Entry == nil || view.LastFeed.Entry.ID != "b1" {
		t.Fatalf("last feed: %+v", view.LastFeed)
	}
	if view.LastDiaper.TimeAgo != "30m" {
		t.Fatalf("last diaper ago = %q; want 30m", view.LastDiaper.TimeAgo)
	}
	// sleep tile measures from wake time: started -3h, slept 1h => woke -2h
	if view.LastSleep.TimeAgo != "2h 0m" {
		t.Fatalf("last sleep ago = %q; want 2h 0m", view.LastSleep.TimeAgo)
	}
	// fed 4h ago with a 3h interval => overdue, due at -1h
	if !view.Overdue {
		t.Fatalf("expected overdue")
	}
	if view.NextFeedDue == nil || !view.NextFeedDue.Equal(now.Add(-time.Hour)) {
		t.Fatalf("next due = %v; want %v", view.NextFeedDue, now.Add(-time.Hour))
	}
}

func TestBuildDashboard_EmptyLogs(t *testing.T) {
	t.Parallel()

	view := BuildDashboard(nil, time.Now().UTC(), models.ReminderConfig{IntervalHours: 3})
	if view.LastFeed.Entry != nil || view.LastDiaper.Entry != nil || view.LastSleep.Entry != nil {
		t.Fatalf("expected empty tiles: %+v", view)
	}
	if view.Overdue || view.NextFeedDue != nil {
		t.Fatalf("no feed recorded: reminder must stay quiet: %+v", view)
	}
}

func TestBuildDashboard_ReminderDisabled(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 8, 20, 18, 0, 0, 0, time.UTC)
	logs := []models.LogEntry{
		{ID: "b1", Type: models.TypeBottle, CreatedAt: now.Add(-8 * time.Hour), AmountMl: 100},
	}
	view := BuildDashboard(logs, now, models.ReminderConfig{})
	if view.Overdue || view.NextFeedDue != nil {
		t.Fatalf("disabled reminder must not mark overdue: %+v", view)
	}
}

func TestStatsService_ReadsStoreOnce(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 8, 20, 18, 0, 0, 0, time.UTC)
	repo := &fakeLogRepo{entries: []models.LogEntry{
		{ID: "b1", Type: models.TypeBottle, CreatedAt: now.Add(-time.Hour), AmountMl: 80},
	}}
	svc := NewStatsService(repo, &fakeSettingsRepo{hours: 2})

	view, err := svc.Dashboard(context.Background(), now)
	if err != nil {
		t.Fatalf("Dashboard: %v", err)
	}
	if repo.listed != 1 {
		t.Fatalf("expected one store read, got %d", repo.listed)
	}
	if view.LastFeed.Entry == nil || view.Reminder.IntervalHours != 2 {
		t.Fatalf("unexpected view: %+v", view)
	}
}
