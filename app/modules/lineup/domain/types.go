// Package lineupdomain holds the in-memory lineup aggregate for one raid
// event: signups, role-keyed slot assignments, and the ordered bench queue.
// All operations are pure transformations; callers persist and broadcast
// the returned change descriptions.
package lineupdomain

import (
	"fmt"
	"strconv"
	"strings"

	sharedtypes "github.com/hnaspl/woltk-calendar/app/shared/types"
)

// Role is a raid role category. Slot positions are scoped per role.
type Role string

const (
	RoleMainTank Role = "main_tank"
	RoleOffTank  Role = "off_tank"
	RoleTank     Role = "tank"
	RoleHealer   Role = "healer"
	RoleDPS      Role = "dps"
)

// RoleOrder is the canonical ordering used for snapshots and fingerprints.
var RoleOrder = []Role{RoleMainTank, RoleOffTank, RoleTank, RoleHealer, RoleDPS}

// Valid reports whether r is a known role category.
func (r Role) Valid() bool {
	switch r {
	case RoleMainTank, RoleOffTank, RoleTank, RoleHealer, RoleDPS:
		return true
	}
	return false
}

// SlotKey identifies one seat in the raid composition, e.g. tank-1.
// Positions are zero-based and unique within a role.
type SlotKey struct {
	Role     Role
	Position int
}

func (k SlotKey) String() string {
	return fmt.Sprintf("%s-%d", k.Role, k.Position)
}

// ParseSlotKey parses "healer-3" style keys.
func ParseSlotKey(s string) (SlotKey, error) {
	i := strings.LastIndex(s, "-")
	if i <= 0 || i == len(s)-1 {
		return SlotKey{}, fmt.Errorf("malformed slot key %q", s)
	}
	role := Role(s[:i])
	if !role.Valid() {
		return SlotKey{}, fmt.Errorf("unknown role in slot key %q", s)
	}
	pos, err := strconv.Atoi(s[i+1:])
	if err != nil || pos < 0 {
		return SlotKey{}, fmt.Errorf("bad position in slot key %q", s)
	}
	return SlotKey{Role: role, Position: pos}, nil
}

// Signup is one character's registration for the event, as the lineup
// engine sees it.
type Signup struct {
	ID          sharedtypes.SignupID    `json:"id"`
	UserID      sharedtypes.UserID      `json:"user_id"`
	CharacterID sharedtypes.CharacterID `json:"character_id"`
	Role        Role                    `json:"chosen_role"`
	Note        string                  `json:"note,omitempty"`
	Banned      bool                    `json:"banned,omitempty"`
}

// SlotAssignment is one occupied seat in a snapshot.
type SlotAssignment struct {
	Slot     SlotKey              `json:"-"`
	Key      string               `json:"slot"`
	SignupID sharedtypes.SignupID `json:"signup_id"`
}

// Snapshot is the full wire representation of a lineup, as served by
// GET lineup and consumed on model rebuild.
type Snapshot struct {
	EventID sharedtypes.EventID    `json:"event_id"`
	Slots   []SlotAssignment       `json:"slots"`
	Bench   []sharedtypes.SignupID `json:"bench"`
	Signups []Signup               `json:"signups"`
	Version string                 `json:"version,omitempty"`
}

// Grouped is the bulk-replace payload: signup ids per role, in slot order,
// plus the bench queue.
type Grouped struct {
	Roles map[Role][]sharedtypes.SignupID `json:"roles"`
	Bench []sharedtypes.SignupID          `json:"bench_queue"`
}

// ChangeKind labels what a mutation did to the aggregate.
type ChangeKind string

const (
	ChangeNone           ChangeKind = ""
	ChangeAssigned       ChangeKind = "assigned"
	ChangeSwapped        ChangeKind = "swapped"
	ChangeUnassigned     ChangeKind = "unassigned"
	ChangeBenchReordered ChangeKind = "bench_reordered"
	ChangeSignupAdded    ChangeKind = "signup_added"
	ChangeSignupRemoved  ChangeKind = "signup_removed"
	ChangeBanned         ChangeKind = "banned"
	ChangeUnbanned       ChangeKind = "unbanned"
	ChangePromoted       ChangeKind = "promoted"
	ChangeReplaced       ChangeKind = "replaced"
)

// Change describes one applied mutation. It doubles as the body of the
// realtime message broadcast to other viewers and as the diff consumers
// use to update their views.
type Change struct {
	Kind          ChangeKind             `json:"kind"`
	SignupID      sharedtypes.SignupID   `json:"signup_id,omitempty"`
	OtherSignupID sharedtypes.SignupID   `json:"other_signup_id,omitempty"`
	From          *SlotKey               `json:"-"`
	To            *SlotKey               `json:"-"`
	FromKey       string                 `json:"from,omitempty"`
	ToKey         string                 `json:"to,omitempty"`
	Bench         []sharedtypes.SignupID `json:"bench,omitempty"`
}

func changeWithSlots(c Change) Change {
	if c.From != nil {
		c.FromKey = c.From.String()
	}
	if c.To != nil {
		c.ToKey = c.To.String()
	}
	return c
}
