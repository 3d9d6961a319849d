package signupdb

import (
	"time"

	"github.com/uptrace/bun"

	lineupdomain "github.com/hnaspl/woltk-calendar/app/modules/lineup/domain"
	signupdomain "github.com/hnaspl/woltk-calendar/app/modules/signup/domain"
	sharedtypes "github.com/hnaspl/woltk-calendar/app/shared/types"
)

// Signup is the signups table model. The (event_id, character_id) unique
// index enforces one signup per character per event.
type Signup struct {
	bun.BaseModel `bun:"table:signups,alias:s"`

	ID          sharedtypes.SignupID    `bun:"id,pk,autoincrement"`
	EventID     sharedtypes.EventID     `bun:"event_id,notnull,unique:uq_signup_event_character"`
	GuildID     sharedtypes.GuildID     `bun:"guild_id,notnull"`
	UserID      sharedtypes.UserID      `bun:"user_id,notnull"`
	CharacterID sharedtypes.CharacterID `bun:"character_id,notnull,unique:uq_signup_event_character"`
	Role        lineupdomain.Role       `bun:"role,notnull,type:varchar(20)"`
	Note        string                  `bun:"note,nullzero,type:varchar(255)"`
	Banned      bool                    `bun:"banned,notnull,default:false"`
	CreatedAt   time.Time               `bun:"created_at,nullzero,notnull,default:current_timestamp"`
}

func (s *Signup) toDomain() *signupdomain.Signup {
	if s == nil {
		return nil
	}
	return &signupdomain.Signup{
		ID:          s.ID,
		EventID:     s.EventID,
		GuildID:     s.GuildID,
		UserID:      s.UserID,
		CharacterID: s.CharacterID,
		Role:        s.Role,
		Note:        s.Note,
		Banned:      s.Banned,
		CreatedAt:   s.CreatedAt,
	}
}
