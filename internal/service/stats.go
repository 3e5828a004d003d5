package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"babylog/internal/models"
	"babylog/internal/repository"
)

// weeklyWindowDays is the trailing calendar-day window for charts and counts.
const weeklyWindowDays = 7

// DayBucket is one calendar-day aggregate.
type DayBucket struct {
	Day            string `json:"day"` // YYYY-MM-DD
	VolumeMl       int    `json:"volume_ml"`
	NursingMinutes int    `json:"nursing_minutes"`
}

// WeeklyStats covers the 7 calendar days ending today, oldest first.
// Averages divide by 7; days with no activity count toward the denominator.
type WeeklyStats struct {
	Buckets           []DayBucket `json:"buckets"`
	WetCount          int         `json:"wet_count"`
	DirtyCount        int         `json:"dirty_count"`
	AvgVolumeMl       int         `json:"avg_volume_ml"`
	AvgNursingMinutes int         `json:"avg_nursing_minutes"`
}

// LastEvent is a dashboard tile: the most recent entry of a kind and how long
// ago it was. A nil entry renders as "no data" upstream, never as an error.
type LastEvent struct {
	Entry   *models.LogEntry `json:"entry,omitempty"`
	TimeAgo string           `json:"time_ago,omitempty"`
	Summary string           `json:"summary,omitempty"`
}

// DashboardView is the home-screen snapshot.
type DashboardView struct {
	LastFeed     LastEvent             `json:"last_feed"`
	LastDiaper   LastEvent             `json:"last_diaper"`
	LastSleep    LastEvent             `json:"last_sleep"`
	LastActivity LastEvent             `json:"last_activity"`
	Reminder     models.ReminderConfig `json:"reminder"`
	NextFeedDue  *time.Time            `json:"next_feed_due,omitempty"`
	Overdue      bool                  `json:"overdue"`
}

type StatsService struct {
	logs     repository.LogRepo
	settings repository.SettingsRepo
}

func NewStatsService(logs repository.LogRepo, settings repository.SettingsRepo) *StatsService {
	return &StatsService{logs: logs, settings: settings}
}

// Dashboard reads the store once and derives every tile against now.
func (s *StatsService) Dashboard(ctx context.Context, now time.Time) (DashboardView, error) {
	logs, err := s.logs.ListAll(ctx)
	if err != nil {
		return DashboardView{}, err
	}
	hours, err := s.settings.ReminderInterval(ctx)
	if err != nil {
		return DashboardView{}, err
	}
	return BuildDashboard(logs, now, models.ReminderConfig{IntervalHours: hours}), nil
}

// Weekly reads the store once and derives the 7-day aggregates against now.
func (s *StatsService) Weekly(ctx context.Context, now time.Time) (WeeklyStats, error) {
	logs, err := s.logs.ListAll(ctx)
	if err != nil {
		return WeeklyStats{}, err
	}
	return BuildWeeklyStats(logs, now), nil
}

//
// Pure derivations. now is always an explicit parameter.
//

// TimeSince is now - t.
func TimeSince(now, t time.Time) time.Duration {
	return now.Sub(t)
}

// FormatTimeSince renders a duration for a dashboard tile:
// under a minute "now", under an hour whole minutes, else hours and minutes.
func FormatTimeSince(d time.Duration) string {
	if d < time.Minute {
		return "now"
	}
	mins := int(d.Minutes())
	if mins < 60 {
		return fmt.Sprintf("%dm", mins)
	}
	return fmt.Sprintf("%dh %dm", mins/60, mins%60)
}

// SleepEffectiveTime is the instant "time since last sleep" measures from:
// the wake time, falling back to the start when no duration was recorded.
func SleepEffectiveTime(e models.LogEntry) time.Time {
	if e.DurationSeconds <= 0 {
		return e.CreatedAt
	}
	return e.CreatedAt.Add(time.Duration(e.DurationSeconds) * time.Second)
}

// firstOfType returns the newest entry among types from a newest-first slice.
func firstOfType(logs []models.LogEntry, types ...models.LogType) *models.LogEntry {
	for i := range logs {
		for _, t := range types {
			if logs[i].Type == t {
				return &logs[i]
			}
		}
	}
	return nil
}

// SummarizeEntry renders an entry as a one-line summary.
func SummarizeEntry(e models.LogEntry) string {
	switch e.Type {
	case models.TypeNursing:
		return fmt.Sprintf("Nursing • %dmin", e.DurationSeconds/60)
	case models.TypeBottle:
		return fmt.Sprintf("Bottle • %dml", e.AmountMl)
	case models.TypePump:
		return fmt.Sprintf("Pump • %dml", e.AmountMl)
	case models.TypeDiaper:
		return "Diaper • " + e.SubType
	case models.TypeSleep:
		return fmt.Sprintf("Sleep • %dmin", e.DurationSeconds/60)
	}
	return "Activity"
}

// BuildDashboard derives the home-screen snapshot from a newest-first log
// slice, the reference now, and the reminder setting.
func BuildDashboard(logs []models.LogEntry, now time.Time, reminder models.ReminderConfig) DashboardView {
	view := DashboardView{Reminder: reminder}

	if len(logs) > 0 {
		view.LastActivity = newLastEvent(&logs[0], logs[0].CreatedAt, now)
	}
	if feed := firstOfType(logs, models.FeedTypes...); feed != nil {
		view.LastFeed = newLastEvent(feed, feed.CreatedAt, now)

		if reminder.Enabled() {
			due := feed.CreatedAt.Add(time.Duration(reminder.IntervalHours * float64(time.Hour)))
			view.NextFeedDue = &due
			view.Overdue = !now.Before(due)
		}
	}
	if diaper := firstOfType(logs, models.TypeDiaper); diaper != nil {
		view.LastDiaper = newLastEvent(diaper, diaper.CreatedAt, now)
	}
	if sleep := firstOfType(logs, models.TypeSleep); sleep != nil {
		// Measured from the wake time, not the fall-asleep time.
		view.LastSleep = newLastEvent(sleep, SleepEffectiveTime(*sleep), now)
	}
	return view
}

func newLastEvent(e *models.LogEntry, at, now time.Time) LastEvent {
	return LastEvent{
		Entry:   e,
		TimeAgo: FormatTimeSince(TimeSince(now, at)),
		Summary: SummarizeEntry(*e),
	}
}

// weeklyDays returns the window's day keys (YYYY-MM-DD), oldest first,
// in now's location.
func weeklyDays(now time.Time) []string {
	days := make([]string, 0, weeklyWindowDays)
	for i := weeklyWindowDays - 1; i >= 0; i-- {
		days = append(days, now.AddDate(0, 0, -i).Format("2006-01-02"))
	}
	return days
}

// BuildWeeklyStats derives the 7-day buckets, diaper counts, and averages.
// An empty log slice yields all-zero buckets.
func BuildWeeklyStats(logs []models.LogEntry, now time.Time) WeeklyStats {
	days := weeklyDays(now)
	loc := now.Location()

	index := make(map[string]int, len(days))
	buckets := make([]DayBucket, len(days))
	for i, day := range days {
		index[day] = i
		buckets[i] = DayBucket{Day: day}
	}

	var (
		wet, dirty     int
		nursingSeconds = make([]int, len(days))
	)
	for _, e := range logs {
		day := e.CreatedAt.In(loc).Format("2006-01-02")
		i, ok := index[day]
		if !ok {
			continue
		}
		switch e.Type {
		case models.TypeBottle, models.TypePump:
			buckets[i].VolumeMl += e.AmountMl
		case models.TypeNursing:
			nursingSeconds[i] += e.DurationSeconds
		case models.TypeDiaper:
			if e.SubType == models.SubTypeWet || e.SubType == models.SubTypeBoth {
				wet++
			}
			if e.SubType == models.SubTypeDirty || e.SubType == models.SubTypeBoth {
				dirty++
			}
		}
	}

	var volumeSum, nursingSum int
	for i := range buckets {
		buckets[i].NursingMinutes = int(math.Round(float64(nursingSeconds[i]) / 60))
		volumeSum += buckets[i].VolumeMl
		nursingSum += buckets[i].NursingMinutes
	}

	return WeeklyStats{
		Buckets:           buckets,
		WetCount:          wet,
		DirtyCount:        dirty,
		AvgVolumeMl:       int(math.Round(float64(volumeSum) / weeklyWindowDays)),
		AvgNursingMinutes: int(math.Round(float64(nursingSum) / weeklyWindowDays)),
	}
}
