package lineupservice

import (
	"context"
	"errors"
	"fmt"

	lineupdomain "github.com/hnaspl/woltk-calendar/app/modules/lineup/domain"
	lineupevents "github.com/hnaspl/woltk-calendar/app/modules/lineup/events"
	lineupdb "github.com/hnaspl/woltk-calendar/app/modules/lineup/infrastructure/repositories"
	raiddomain "github.com/hnaspl/woltk-calendar/app/modules/raid/domain"
	raiddb "github.com/hnaspl/woltk-calendar/app/modules/raid/infrastructure/repositories"
	"github.com/hnaspl/woltk-calendar/app/shared/results"
	sharedtypes "github.com/hnaspl/woltk-calendar/app/shared/types"
)

// loaded bundles everything a mutation needs: the rebuilt model, the raid
// event for the lifecycle gate, and the version the model was built from.
type loaded struct {
	model       lineupdomain.Model
	event       *raiddomain.RaidEvent
	baseVersion string
}

func (s *LineupService) load(ctx context.Context, eventID sharedtypes.EventID) (*loaded, error) {
	event, err := s.raids.GetEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	stored, err := s.lineups.GetLineup(ctx, eventID)
	if err != nil {
		return nil, err
	}

	signups, err := s.signups.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	snap := lineupdomain.Snapshot{
		EventID: eventID,
		Bench:   stored.Bench,
	}
	known := make(map[sharedtypes.SignupID]bool, len(signups))
	for _, su := range signups {
		known[su.ID] = true
		snap.Signups = append(snap.Signups, su.ToLineup())
	}
	// Slot rows can outlive their signup: deletion and banning are signup
	// operations, and the stale seat is reconciled here instead of at
	// write time. The next save sweeps it from the table.
	for _, sa := range stored.Slots {
		if known[sa.SignupID] {
			snap.Slots = append(snap.Slots, sa)
		}
	}

	model, err := lineupdomain.BuildFromSnapshot(snap)
	if err != nil {
		return nil, fmt.Errorf("rebuild lineup event=%d: %w", eventID, err)
	}
	return &loaded{model: model, event: event, baseVersion: stored.Version}, nil
}

type mutation func(lineupdomain.Model) (lineupdomain.Model, lineupdomain.Change, error)

// mutate runs the standard write path: load, lifecycle gate, domain
// operation, save guarded by the base version. Domain rejections and lost
// write races come back as failures; infrastructure problems as errors.
func (s *LineupService) mutate(ctx context.Context, eventID sharedtypes.EventID, apply mutation) (results.OperationResult, error) {
	state, err := s.load(ctx, eventID)
	if err != nil {
		if errors.Is(err, raiddb.ErrNotFound) {
			return results.FailureResult(ErrEventNotFound), nil
		}
		return results.OperationResult{}, err
	}

	if err := state.event.CheckMutable(); err != nil {
		return results.FailureResult(err), nil
	}

	next, change, err := apply(state.model)
	if err != nil {
		return results.FailureResult(err), nil
	}

	snap := next.Snapshot()
	snap.Version = next.Fingerprint()
	if err := s.lineups.SaveLineup(ctx, snap, state.baseVersion); err != nil {
		if errors.Is(err, lineupdb.ErrVersionMismatch) {
			return results.FailureResult(ErrConflictRejected), nil
		}
		return results.OperationResult{}, err
	}

	return results.SuccessResult(&lineupevents.ChangedPayloadV1{
		EventID:  eventID,
		GuildID:  state.event.GuildID,
		Change:   change,
		Version:  snap.Version,
		Snapshot: &snap,
	}), nil
}
