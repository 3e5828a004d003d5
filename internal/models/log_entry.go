package models

import "time"

// LogType classifies a caregiving event.
type LogType string

const (
	TypeNursing LogType = "NURSING"
	TypeBottle  LogType = "BOTTLE"
	TypePump    LogType = "PUMP"
	TypeDiaper  LogType = "DIAPER"
	TypeSleep   LogType = "SLEEP"
)

// Bottle sub-types.
const (
	SubTypeFormula    = "FORMULA"
	SubTypeBreastMilk = "BREAST_MILK"
)

// Diaper sub-types. BOTH counts toward wet and dirty alike.
const (
	SubTypeWet   = "WET"
	SubTypeDirty = "DIRTY"
	SubTypeBoth  = "BOTH"
)

// Nursing sides.
const (
	SideLeft  = "LEFT"
	SideRight = "RIGHT"
)

// FeedTypes are the entry types that count as a feed for the
// "last feed" lookup and the overdue reminder.
var FeedTypes = []LogType{TypeNursing, TypeBottle}

// LogEntry is one recorded caregiving event. Entries are created once and
// never edited or deleted; CreatedAt is the event start time (for sleep and
// nursing this is the session start, not the save time).
//
// Each type uses only the fields meaningful to it:
//
//	NURSING: side, left_seconds, right_seconds, duration_seconds (= left+right)
//	BOTTLE:  sub_type (FORMULA | BREAST_MILK), amount_ml
//	PUMP:    left_ml, right_ml, amount_ml (= left+right)
//	DIAPER:  sub_type (WET | DIRTY | BOTH)
//	SLEEP:   duration_seconds
type LogEntry struct {
	ID              string    `json:"id"`
	CreatedAt       time.Time `json:"created_at"`
	Type            LogType   `json:"type"`
	SubType         string    `json:"sub_type,omitempty"`
	Side            string    `json:"side,omitempty"` // primary nursing side
	AmountMl        int       `json:"amount_ml,omitempty"`
	LeftMl          int       `json:"left_ml,omitempty"`
	RightMl         int       `json:"right_ml,omitempty"`
	LeftSeconds     int       `json:"left_seconds,omitempty"`
	RightSeconds    int       `json:"right_seconds,omitempty"`
	DurationSeconds int       `json:"duration_seconds,omitempty"`
	Notes           string    `json:"notes,omitempty"`
}

// IsFeed reports whether the entry counts as a feed.
func (e LogEntry) IsFeed() bool {
	return e.Type == TypeNursing || e.Type == TypeBottle
}

// ValidType reports whether t is one of the known log types.
func ValidType(t LogType) bool {
	switch t {
	case TypeNursing, TypeBottle, TypePump, TypeDiaper, TypeSleep:
		return true
	}
	return false
}
