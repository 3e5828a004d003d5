package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"babylog/internal/models"
	"babylog/internal/repository"
)

type LogbookService struct {
	logs repository.LogRepo
}

func NewLogbookService(logs repository.LogRepo) *LogbookService {
	return &LogbookService{logs: logs}
}

var (
	errNursingNoTime    = errors.New("nursing session has no recorded time")
	errBottleAmount     = errors.New("bottle amount must be greater than zero")
	errBottleSubType    = errors.New("bottle sub-type must be FORMULA or BREAST_MILK")
	errPumpNoAmount     = errors.New("pump output must be greater than zero")
	errDiaperSubType    = errors.New("diaper sub-type must be WET, DIRTY, or BOTH")
	errSleepRange       = errors.New("sleep end must be after start")
	errNegativeQuantity = errors.New("quantities must not be negative")
)

// IsValidationErr reports whether err is a draft-validation rejection,
// as opposed to a persistence fault.
func IsValidationErr(err error) bool {
	for _, v := range []error{
		errNursingNoTime, errBottleAmount, errBottleSubType,
		errPumpNoAmount, errDiaperSubType, errSleepRange, errNegativeQuantity,
		errInvalidTimeRange, errUnknownLogType,
	} {
		if errors.Is(err, v) {
			return true
		}
	}
	return false
}

// LogNursing derives the total duration and primary side from the per-side
// timers. The primary side is the one with recorded time, left on a tie.
func (s *LogbookService) LogNursing(ctx context.Context, d NursingDraft) (models.LogEntry, error) {
	if d.LeftSeconds < 0 || d.RightSeconds < 0 {
		return models.LogEntry{}, errNegativeQuantity
	}
	total := d.LeftSeconds + d.RightSeconds
	if total == 0 {
		return models.LogEntry{}, errNursingNoTime
	}

	side := models.SideLeft
	if d.RightSeconds > 0 && d.LeftSeconds == 0 {
		side = models.SideRight
	}

	return s.logs.Append(ctx, models.LogEntry{
		CreatedAt:       d.StartedAt,
		Type:            models.TypeNursing,
		Side:            side,
		LeftSeconds:     d.LeftSeconds,
		RightSeconds:    d.RightSeconds,
		DurationSeconds: total,
		Notes:           d.Notes,
	})
}

func (s *LogbookService) LogBottle(ctx context.Context, d BottleDraft) (models.LogEntry, error) {
	if d.AmountMl <= 0 {
		return models.LogEntry{}, errBottleAmount
	}
	if d.SubType != models.SubTypeFormula && d.SubType != models.SubTypeBreastMilk {
		return models.LogEntry{}, errBottleSubType
	}

	return s.logs.Append(ctx, models.LogEntry{
		CreatedAt: d.At,
		Type:      models.TypeBottle,
		SubType:   d.SubType,
		AmountMl:  d.AmountMl,
		Notes:     d.Notes,
	})
}

// LogPump stores per-side outputs with the total as their sum.
func (s *LogbookService) LogPump(ctx context.Context, d PumpDraft) (models.LogEntry, error) {
	if d.LeftMl < 0 || d.RightMl < 0 {
		return models.LogEntry{}, errNegativeQuantity
	}
	total := d.LeftMl + d.RightMl
	if total == 0 {
		return models.LogEntry{}, errPumpNoAmount
	}

	return s.logs.Append(ctx, models.LogEntry{
		CreatedAt: d.At,
		Type:      models.TypePump,
		LeftMl:    d.LeftMl,
		RightMl:   d.RightMl,
		AmountMl:  total,
		Notes:     d.Notes,
	})
}

func (s *LogbookService) LogDiaper(ctx context.Context, d DiaperDraft) (models.LogEntry, error) {
	switch d.SubType {
	case models.SubTypeWet, models.SubTypeDirty, models.SubTypeBoth:
	default:
		return models.LogEntry{}, errDiaperSubType
	}

	return s.logs.Append(ctx, models.LogEntry{
		CreatedAt: d.At,
		Type:      models.TypeDiaper,
		SubType:   d.SubType,
		Notes:     d.Notes,
	})
}

// LogSleep stores the sleep start as the entry time plus the elapsed
// duration; the wake time is derived, never stored.
func (s *LogbookService) LogSleep(ctx context.Context, d SleepDraft) (models.LogEntry, error) {
	if d.Start.IsZero() || d.End.IsZero() || !d.End.After(d.Start) {
		return models.LogEntry{}, errSleepRange
	}

	return s.logs.Append(ctx, models.LogEntry{
		CreatedAt:       d.Start,
		Type:            models.TypeSleep,
		DurationSeconds: int(d.End.Sub(d.Start).Seconds()),
		Notes:           d.Notes,
	})
}

func (s *LogbookService) List(ctx context.Context, f LogFilter) ([]models.LogEntry, error) {
	from, to, typ, err := normalizeFilter(f)
	if err != nil {
		return nil, err
	}
	return s.logs.List(ctx, from, to, typ)
}

func (s *LogbookService) LastOfType(ctx context.Context, types ...models.LogType) (*models.LogEntry, error) {
	return s.logs.LastOfType(ctx, types...)
}

var (
	errInvalidTimeRange = errors.New("invalid time range: From must be <= To")
	errUnknownLogType   = errors.New("unknown log type")
)

// normalizeFilter converts bounds to UTC and validates the range and type.
func normalizeFilter(f LogFilter) (time.Time, time.Time, models.LogType, error) {
	from := normalizeToUTC(f.From)
	to := normalizeToUTC(f.To)

	if !from.IsZero() && !to.IsZero() && from.After(to) {
		return time.Time{}, time.Time{}, "", errInvalidTimeRange
	}

	typ := models.LogType(strings.ToUpper(strings.TrimSpace(string(f.Type))))
	if typ != "" && !models.ValidType(typ) {
		return time.Time{}, time.Time{}, "", errUnknownLogType
	}
	return from, to, typ, nil
}

// normalizeToUTC returns t in UTC, preserving zero time values.
func normalizeToUTC(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC()
}
