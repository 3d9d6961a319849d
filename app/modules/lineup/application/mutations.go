package lineupservice

import (
	"context"

	lineupdomain "github.com/hnaspl/woltk-calendar/app/modules/lineup/domain"
	"github.com/hnaspl/woltk-calendar/app/shared/results"
	sharedtypes "github.com/hnaspl/woltk-calendar/app/shared/types"
)

// Assign seats a signup in a slot. With swap set, an occupied target slot
// exchanges occupants instead of rejecting.
func (s *LineupService) Assign(ctx context.Context, eventID sharedtypes.EventID, signupID sharedtypes.SignupID, slot string, swap bool) (results.OperationResult, error) {
	return s.withTelemetry(ctx, "Assign", eventID, func(ctx context.Context) (results.OperationResult, error) {
		key, err := lineupdomain.ParseSlotKey(slot)
		if err != nil {
			return results.FailureResult(err), nil
		}
		return s.mutate(ctx, eventID, func(m lineupdomain.Model) (lineupdomain.Model, lineupdomain.Change, error) {
			return m.AssignToSlot(signupID, key, swap)
		})
	})
}

// Unassign returns a seated signup to the bench tail.
func (s *LineupService) Unassign(ctx context.Context, eventID sharedtypes.EventID, signupID sharedtypes.SignupID) (results.OperationResult, error) {
	return s.withTelemetry(ctx, "Unassign", eventID, func(ctx context.Context) (results.OperationResult, error) {
		return s.mutate(ctx, eventID, func(m lineupdomain.Model) (lineupdomain.Model, lineupdomain.Change, error) {
			return m.Unassign(signupID)
		})
	})
}

// ReorderBench replaces the bench order with a permutation of itself.
func (s *LineupService) ReorderBench(ctx context.Context, eventID sharedtypes.EventID, order []sharedtypes.SignupID) (results.OperationResult, error) {
	return s.withTelemetry(ctx, "ReorderBench", eventID, func(ctx context.Context) (results.OperationResult, error) {
		return s.mutate(ctx, eventID, func(m lineupdomain.Model) (lineupdomain.Model, lineupdomain.Change, error) {
			return m.ReorderBench(order)
		})
	})
}

// Replace applies a bulk role-grouped arrangement.
func (s *LineupService) Replace(ctx context.Context, eventID sharedtypes.EventID, grouped lineupdomain.Grouped) (results.OperationResult, error) {
	return s.withTelemetry(ctx, "Replace", eventID, func(ctx context.Context) (results.OperationResult, error) {
		return s.mutate(ctx, eventID, func(m lineupdomain.Model) (lineupdomain.Model, lineupdomain.Change, error) {
			return m.ReplaceAll(grouped)
		})
	})
}
