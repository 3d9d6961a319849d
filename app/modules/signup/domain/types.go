// Package signupdomain holds the signup entity. A signup is one character's
// declared intent to attend one event, with the role they queue for.
package signupdomain

import (
	"time"

	lineupdomain "github.com/hnaspl/woltk-calendar/app/modules/lineup/domain"
	sharedtypes "github.com/hnaspl/woltk-calendar/app/shared/types"
)

// Signup ties a character to an event. One signup per character per event.
type Signup struct {
	ID          sharedtypes.SignupID    `json:"id"`
	EventID     sharedtypes.EventID     `json:"event_id"`
	GuildID     sharedtypes.GuildID     `json:"guild_id"`
	UserID      sharedtypes.UserID      `json:"user_id"`
	CharacterID sharedtypes.CharacterID `json:"character_id"`
	Role        lineupdomain.Role       `json:"chosen_role"`
	Note        string                  `json:"note,omitempty"`
	Banned      bool                    `json:"banned,omitempty"`
	CreatedAt   time.Time               `json:"created_at"`
}

// ToLineup converts to the lineup model's signup record.
func (s Signup) ToLineup() lineupdomain.Signup {
	return lineupdomain.Signup{
		ID:          s.ID,
		UserID:      s.UserID,
		CharacterID: s.CharacterID,
		Role:        s.Role,
		Note:        s.Note,
		Banned:      s.Banned,
	}
}
