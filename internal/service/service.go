package service

import (
	"context"
	"time"

	"babylog/internal/logger"
	"babylog/internal/models"
	"babylog/internal/repository"
)

// Logbook records caregiving events. Drafts are validated per type before
// anything reaches the store; an invalid draft never creates an entry.
type Logbook interface {
	LogNursing(ctx context.Context, d NursingDraft) (models.LogEntry, error)
	LogBottle(ctx context.Context, d BottleDraft) (models.LogEntry, error)
	LogPump(ctx context.Context, d PumpDraft) (models.LogEntry, error)
	LogDiaper(ctx context.Context, d DiaperDraft) (models.LogEntry, error)
	LogSleep(ctx context.Context, d SleepDraft) (models.LogEntry, error)
	List(ctx context.Context, f LogFilter) ([]models.LogEntry, error)
	LastOfType(ctx context.Context, types ...models.LogType) (*models.LogEntry, error)
}

// Stats exposes the derived read models for the dashboard and history charts.
type Stats interface {
	Dashboard(ctx context.Context, now time.Time) (DashboardView, error)
	Weekly(ctx context.Context, now time.Time) (WeeklyStats, error)
}

// Reminder evaluates the feeding-reminder state. Run polls periodically and
// fires the notifier on the transition into overdue; stop via context cancel.
type Reminder interface {
	Status(ctx context.Context, now time.Time) (ReminderStatus, error)
	Run(ctx context.Context, tick time.Duration)
}

// Assistant answers a user question with recent-log context.
// It never returns an error; failures degrade to fixed fallback replies.
type Assistant interface {
	Ask(ctx context.Context, message string) string
}

// Settings reads and mutates the persisted device settings.
type Settings interface {
	Reminder(ctx context.Context) (models.ReminderConfig, error)
	SetReminder(ctx context.Context, hours float64) error
	Language(ctx context.Context) (string, error)
	SetLanguage(ctx context.Context, lang string) error
}

type Service struct {
	Logbook
	Stats
	Reminder
	Assistant
	Settings
}

// Deps carries the non-repository collaborators of the service layer.
type Deps struct {
	Log      *logger.Logger
	Notifier Notifier
	Gemini   GeminiConfig
}

// NewService wires the repository layer into concrete services.
func NewService(repos *repository.Repository, deps Deps) *Service {
	return &Service{
		Logbook:   NewLogbookService(repos.Logs),
		Stats:     NewStatsService(repos.Logs, repos.Settings),
		Reminder:  NewReminderService(repos.Logs, repos.Settings, deps.Notifier, deps.Log),
		Assistant: NewAssistantService(repos.Logs, deps.Gemini, deps.Log),
		Settings:  NewSettingsService(repos.Settings),
	}
}

// LogFilter bounds a history read by time range and/or type.
type LogFilter struct {
	From time.Time      // inclusive; zero means no lower bound
	To   time.Time      // inclusive; zero means no upper bound
	Type models.LogType // empty means all types
}

// NursingDraft is a finished nursing session. StartedAt is the session start;
// per-side seconds come from the client-side timers.
type NursingDraft struct {
	StartedAt    time.Time
	LeftSeconds  int
	RightSeconds int
	Notes        string
}

type BottleDraft struct {
	At       time.Time
	SubType  string // FORMULA | BREAST_MILK
	AmountMl int
	Notes    string
}

type PumpDraft struct {
	At      time.Time
	LeftMl  int
	RightMl int
	Notes   string
}

type DiaperDraft struct {
	At      time.Time
	SubType string // WET | DIRTY | BOTH
	Notes   string
}

// SleepDraft records a finished sleep by its start and end instants.
type SleepDraft struct {
	Start time.Time
	End   time.Time
	Notes string
}
