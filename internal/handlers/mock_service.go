package handlers

import (
	"context"
	"time"

	"babylog/internal/models"
	"babylog/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockLogbook struct {
	entry   models.LogEntry
	entries []models.LogEntry
	last    *models.LogEntry
	err     error

	lastNursing service.NursingDraft
	lastBottle  service.BottleDraft
	lastPump    service.PumpDraft
	lastDiaper  service.DiaperDraft
	lastSleep   service.SleepDraft
	lastFilter  service.LogFilter
	lastTypes   []models.LogType
}

func (m *mockLogbook) LogNursing(ctx context.Context, d service.NursingDraft) (models.LogEntry, error) {
	m.lastNursing = d
	return m.entry, m.err
}
func (m *mockLogbook) LogBottle(ctx context.Context, d service.BottleDraft) (models.LogEntry, error) {
	m.lastBottle = d
	return m.entry, m.err
}
func (m *mockLogbook) LogPump(ctx context.Context, d service.PumpDraft) (models.LogEntry, error) {
	m.lastPump = d
	return m.entry, m.err
}
func (m *mockLogbook) LogDiaper(ctx context.Context, d service.DiaperDraft) (models.LogEntry, error) {
	m.lastDiaper = d
	return m.entry, m.err
}
func (m *mockLogbook) LogSleep(ctx context.Context, d service.SleepDraft) (models.LogEntry, error) {
	m.lastSleep = d
	return m.entry, m.err
}
func (m *mockLogbook) List(ctx context.Context, f service.LogFilter) ([]models.LogEntry, error) {
	m.lastFilter = f
	return m.entries, m.err
}
func (m *mockLogbook) LastOfType(ctx context.Context, types ...models.LogType) (*models.LogEntry, error) {
	m.lastTypes = types
	return m.last, m.err
}

type mockStats struct {
	view   service.DashboardView
	weekly service.WeeklyStats
	err    error
}

func (m *mockStats) Dashboard(ctx context.Context, now time.Time) (service.DashboardView, error) {
	return m.view, m.err
}
func (m *mockStats) Weekly(ctx context.Context, now time.Time) (service.WeeklyStats, error) {
	return m.weekly, m.err
}

type mockReminder struct {
	status service.ReminderStatus
	err    error
}

func (m *mockReminder) Status(ctx context.Context, now time.Time) (service.ReminderStatus, error) {
	return m.status, m.err
}
func (m *mockReminder) Run(ctx context.Context, tick time.Duration) {}

type mockAssistant struct {
	reply       string
	lastMessage string
	calls       int
}

func (m *mockAssistant) Ask(ctx context.Context, message string) string {
	m.calls++
	m.lastMessage = message
	return m.reply
}

type mockSettings struct {
	reminder models.ReminderConfig
	lang     string
	getErr   error
	setErr   error

	lastHours float64
	lastLang  string
}

func (m *mockSettings) Reminder(ctx context.Context) (models.ReminderConfig, error) {
	return m.reminder, m.getErr
}
func (m *mockSettings) SetReminder(ctx context.Context, hours float64) error {
	m.lastHours = hours
	return m.setErr
}
func (m *mockSettings) Language(ctx context.Context) (string, error) {
	if m.lang == "" {
		return models.LangEnglish, m.getErr
	}
	return m.lang, m.getErr
}
func (m *mockSettings) SetLanguage(ctx context.Context, lang string) error {
	m.lastLang = lang
	return m.setErr
}

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil, NewHub())
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}
