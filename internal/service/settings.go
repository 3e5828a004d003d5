package service

import (
	"context"
	"errors"

	"babylog/internal/models"
	"babylog/internal/repository"
)

type SettingsService struct {
	settings repository.SettingsRepo
}

func NewSettingsService(settings repository.SettingsRepo) *SettingsService {
	return &SettingsService{settings: settings}
}

var (
	errNegativeInterval = errors.New("reminder interval must not be negative")
	errUnknownLanguage  = errors.New("language must be en or he")
)

func (s *SettingsService) Reminder(ctx context.Context) (models.ReminderConfig, error) {
	hours, err := s.settings.ReminderInterval(ctx)
	if err != nil {
		return models.ReminderConfig{}, err
	}
	return models.ReminderConfig{IntervalHours: hours}, nil
}

// SetReminder persists the interval; 0 disables the reminder.
func (s *SettingsService) SetReminder(ctx context.Context, hours float64) error {
	if hours < 0 {
		return errNegativeInterval
	}
	return s.settings.SaveReminderInterval(ctx, hours)
}

func (s *SettingsService) Language(ctx context.Context) (string, error) {
	return s.settings.Language(ctx)
}

func (s *SettingsService) SetLanguage(ctx context.Context, lang string) error {
	if !models.ValidLanguage(lang) {
		return errUnknownLanguage
	}
	return s.settings.SaveLanguage(ctx, lang)
}

// IsSettingsValidationErr reports whether err is a settings-input rejection.
func IsSettingsValidationErr(err error) bool {
	return errors.Is(err, errNegativeInterval) || errors.Is(err, errUnknownLanguage)
}
