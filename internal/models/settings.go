package models

// ReminderConfig is the single process-wide feeding-reminder setting.
// IntervalHours == 0 disables the reminder.
type ReminderConfig struct {
	IntervalHours float64 `json:"interval_hours"`
}

// Enabled reports whether the reminder is active.
func (c ReminderConfig) Enabled() bool {
	return c.IntervalHours > 0
}

// Supported UI languages. Presentation only; the service never localizes.
const (
	LangEnglish = "en"
	LangHebrew  = "he"
)

// ValidLanguage reports whether lang is a supported language code.
func ValidLanguage(lang string) bool {
	return lang == LangEnglish || lang == LangHebrew
}
