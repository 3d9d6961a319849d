// Package attendancedomain holds the attendance outcome model. Outcomes
// are recorded per character per event once a raid locks or completes,
// and aggregate into per-character attendance rates.
package attendancedomain

import (
	"time"

	sharedtypes "github.com/hnaspl/woltk-calendar/app/shared/types"
)

// Outcome is what happened to a rostered character on raid night.
type Outcome string

const (
	OutcomeAttended Outcome = "attended"
	OutcomeLate     Outcome = "late"
	OutcomeNoShow   Outcome = "no_show"
	OutcomeBenched  Outcome = "benched"
	OutcomeBackup   Outcome = "backup"
)

// Valid reports whether o is a known outcome.
func (o Outcome) Valid() bool {
	switch o {
	case OutcomeAttended, OutcomeLate, OutcomeNoShow, OutcomeBenched, OutcomeBackup:
		return true
	}
	return false
}

// Present reports whether the outcome counts toward the attendance rate.
// Late arrivals still raided; benched players showed up and sat out.
func (o Outcome) Present() bool {
	switch o {
	case OutcomeAttended, OutcomeLate, OutcomeBenched:
		return true
	}
	return false
}

// Record is one character's outcome for one event.
type Record struct {
	ID          int64                   `json:"id"`
	EventID     sharedtypes.EventID     `json:"event_id"`
	GuildID     sharedtypes.GuildID     `json:"guild_id"`
	CharacterID sharedtypes.CharacterID `json:"character_id"`
	Outcome     Outcome                 `json:"outcome"`
	Note        string                  `json:"note,omitempty"`
	RecordedBy  sharedtypes.UserID      `json:"recorded_by"`
	RecordedAt  time.Time               `json:"recorded_at"`
}

// CharacterSummary aggregates one character's outcomes across events.
type CharacterSummary struct {
	CharacterID   sharedtypes.CharacterID `json:"character_id"`
	CharacterName string                  `json:"character_name"`
	Attended      int                     `json:"attended"`
	Late          int                     `json:"late"`
	NoShow        int                     `json:"no_show"`
	Benched       int                     `json:"benched"`
	Backup        int                     `json:"backup"`
}

// Total is the number of events the character has an outcome for.
func (s CharacterSummary) Total() int {
	return s.Attended + s.Late + s.NoShow + s.Benched + s.Backup
}

// Rate is the share of recorded events the character showed up for.
func (s CharacterSummary) Rate() float64 {
	total := s.Total()
	if total == 0 {
		return 0
	}
	return float64(s.Attended+s.Late+s.Benched) / float64(total)
}
