package raiddb

import (
	"context"
	"time"

	raiddomain "github.com/hnaspl/woltk-calendar/app/modules/raid/domain"
	sharedtypes "github.com/hnaspl/woltk-calendar/app/shared/types"
)

// Repository defines the contract for raid event persistence.
//
// Error semantics:
//   - ErrNotFound: record does not exist (GetEvent)
//   - ErrStaleStatus: UpdateStatus lost a compare-and-set race
//   - Other errors: infrastructure failures
type Repository interface {
	// GetEvent retrieves a raid event by ID. Returns ErrNotFound when no
	// such event exists.
	GetEvent(ctx context.Context, eventID sharedtypes.EventID) (*raiddomain.RaidEvent, error)

	// CreateEvent inserts a new event row and fills in the generated ID
	// and timestamps.
	CreateEvent(ctx context.Context, event *raiddomain.RaidEvent) error

	// UpdateEvent persists title, description, size and schedule changes.
	UpdateEvent(ctx context.Context, event *raiddomain.RaidEvent) error

	// UpdateStatus applies a status change guarded by the expected current
	// status. Returns ErrStaleStatus when the row no longer carries the
	// expected status.
	UpdateStatus(ctx context.Context, eventID sharedtypes.EventID, from, to raiddomain.EventStatus) error

	// ListUpcoming returns a guild's non-terminal events scheduled at or
	// after the given time, soonest first.
	ListUpcoming(ctx context.Context, guildID sharedtypes.GuildID, after time.Time) ([]raiddomain.RaidEvent, error)
}
