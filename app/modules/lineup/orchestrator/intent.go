package lineuporch

import (
	"context"

	lineupdomain "github.com/hnaspl/woltk-calendar/app/modules/lineup/domain"
	"github.com/hnaspl/woltk-calendar/app/modules/lineup/dragdrop"
	sharedtypes "github.com/hnaspl/woltk-calendar/app/shared/types"
)

// ApplyIntent translates a completed drag into the matching lineup
// operation. Drops that change nothing (back onto the origin) are
// silently absorbed so ordinary fumbled gestures never hit the wire.
func (o *Orchestrator) ApplyIntent(ctx context.Context, intent dragdrop.Intent) error {
	if intent.TargetKey == intent.SourceKey && intent.TargetIndex == intent.SourceIndex {
		return nil
	}

	if intent.TargetKey == dragdrop.BenchKey {
		if intent.SourceKey == dragdrop.BenchKey {
			order, changed := o.benchReorderedFor(intent.ItemID, intent.TargetIndex)
			if !changed {
				return nil
			}
			return o.ReorderBench(ctx, order)
		}
		return o.Unassign(ctx, intent.ItemID)
	}

	slot, err := lineupdomain.ParseSlotKey(intent.TargetKey)
	if err != nil {
		return err
	}
	return o.Assign(ctx, intent.ItemID, slot, true)
}

// benchReorderedFor builds the bench order with id moved to targetIndex.
// Indices are clamped, so a drop past the end appends.
func (o *Orchestrator) benchReorderedFor(id sharedtypes.SignupID, targetIndex int) ([]sharedtypes.SignupID, bool) {
	o.mu.Lock()
	bench := o.current.Bench()
	o.mu.Unlock()

	from := -1
	for i, b := range bench {
		if b == id {
			from = i
			break
		}
	}
	if from < 0 {
		return nil, false
	}

	order := make([]sharedtypes.SignupID, 0, len(bench))
	order = append(order, bench[:from]...)
	order = append(order, bench[from+1:]...)
	if targetIndex < 0 {
		targetIndex = 0
	}
	if targetIndex > len(order) {
		targetIndex = len(order)
	}
	order = append(order[:targetIndex], append([]sharedtypes.SignupID{id}, order[targetIndex:]...)...)

	if targetIndex == from {
		return nil, false
	}
	return order, true
}
