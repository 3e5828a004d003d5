package service

import (
	"context"
	"fmt"
	"time"

	"babylog/internal/models"
)

// fakeLogRepo is a minimal in-memory stub of repository.LogRepo.
// entries are held newest first, like the real store returns them.
type fakeLogRepo struct {
	entries []models.LogEntry
	err     error

	appended []models.LogEntry
	gotFrom  time.Time
	gotTo    time.Time
	gotType  models.LogType
	listed   int
}

func (f *fakeLogRepo) Append(ctx context.Context, e models.LogEntry) (models.LogEntry, error) {
	if f.err != nil {
		return models.LogEntry{}, f.err
	}
	if e.ID == "" {
		e.ID = fmt.Sprintf("id-%d", len(f.appended)+1)
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	f.appended = append(f.appended, e)
	return e, nil
}

func (f *fakeLogRepo) List(ctx context.Context, from, to time.Time, typ models.LogType) ([]models.LogEntry, error) {
	f.listed++
	f.gotFrom = from
	f.gotTo = to
	f.gotType = typ
	return f.entries, f.err
}

func (f *fakeLogRepo) ListAll(ctx context.Context) ([]models.LogEntry, error) {
	f.listed++
	return f.entries, f.err
}

func (f *fakeLogRepo) LastOfType(ctx context.Context, types ...models.LogType) (*models.LogEntry, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.entries {
		for _, t := range types {
			if f.entries[i].Type == t {
				return &f.entries[i], nil
			}
		}
	}
	return nil, nil
}

// fakeSettingsRepo stubs repository.SettingsRepo.
type fakeSettingsRepo struct {
	hours float64
	lang  string
	err   error
}

func (f *fakeSettingsRepo) ReminderInterval(ctx context.Context) (float64, error) {
	return f.hours, f.err
}

func (f *fakeSettingsRepo) SaveReminderInterval(ctx context.Context, hours float64) error {
	f.hours = hours
	return f.err
}

func (f *fakeSettingsRepo) Language(ctx context.Context) (string, error) {
	if f.lang == "" {
		return models.LangEnglish, f.err
	}
	return f.lang, f.err
}

func (f *fakeSettingsRepo) SaveLanguage(ctx context.Context, lang string) error {
	f.lang = lang
	return f.err
}

// fakeNotifier records delivered notifications.
type fakeNotifier struct {
	notified []Notification
}

func (f *fakeNotifier) Notify(_ context.Context, n Notification) {
	f.notified = append(f.notified, n)
}
