package lineupdomain

import (
	"slices"

	sharedtypes "github.com/hnaspl/woltk-calendar/app/shared/types"
)

// ReplaceAll rebuilds the whole assignment state from grouped role lists
// plus a bench queue, the payload shape of the bulk PUT. Reconciliation
// rules, in order:
//
//   - Unknown and banned signup ids are skipped.
//   - One character per player: a second signup for a user already placed
//     in a role slot overflows to the front of the bench.
//   - Signups the caller moved out of role slots land at the end of the
//     bench, behind players already waiting.
//   - Signups missing from the payload entirely (orphans) are appended to
//     the bench tail rather than dropped.
//   - Net-freed role slots are backfilled by promoting waiting bench
//     players with a matching desired role.
func (m Model) ReplaceAll(g Grouped) (Model, Change, error) {
	next := m.clone()

	oldRoleIDs := make(map[Role]map[sharedtypes.SignupID]bool)
	for key, id := range next.slots {
		if oldRoleIDs[key.Role] == nil {
			oldRoleIDs[key.Role] = map[sharedtypes.SignupID]bool{}
		}
		oldRoleIDs[key.Role][id] = true
	}
	oldBench := slices.Clone(next.bench)

	next.slots = map[SlotKey]sharedtypes.SignupID{}
	next.slotOf = map[sharedtypes.SignupID]SlotKey{}
	next.bench = nil

	usersPlaced := map[sharedtypes.UserID]bool{}
	var overflow []sharedtypes.SignupID
	newRoleIDs := make(map[Role]map[sharedtypes.SignupID]bool)

	for _, role := range RoleOrder {
		for _, id := range g.Roles[role] {
			s, ok := next.signups[id]
			if !ok || s.Banned {
				continue
			}
			if _, already := next.slotOf[id]; already {
				continue
			}
			if usersPlaced[s.UserID] {
				overflow = append(overflow, id)
				continue
			}
			usersPlaced[s.UserID] = true
			key := SlotKey{Role: role, Position: next.nextFreePosition(role)}
			next.slots[key] = id
			next.slotOf[id] = key
			if newRoleIDs[role] == nil {
				newRoleIDs[role] = map[sharedtypes.SignupID]bool{}
			}
			newRoleIDs[role][id] = true
		}
	}

	// Demoted: previously slotted, not re-slotted. They queue behind
	// everyone already waiting.
	demoted := map[sharedtypes.SignupID]bool{}
	for _, ids := range oldRoleIDs {
		for id := range ids {
			if _, slotted := next.slotOf[id]; !slotted {
				demoted[id] = true
			}
		}
	}

	appendBench := func(id sharedtypes.SignupID) {
		s, ok := next.signups[id]
		if !ok || s.Banned {
			return
		}
		if _, slotted := next.slotOf[id]; slotted {
			return
		}
		if slices.Contains(next.bench, id) {
			return
		}
		next.bench = append(next.bench, id)
	}

	requested := append(slices.Clone(overflow), g.Bench...)
	for _, id := range requested {
		if !demoted[id] {
			appendBench(id)
		}
	}
	for _, id := range requested {
		if demoted[id] {
			appendBench(id)
		}
	}

	// Orphans keep their previous relative order; demoted stragglers the
	// caller never mentioned go last, in id order.
	for _, id := range oldBench {
		appendBench(id)
	}
	demotedIDs := make([]sharedtypes.SignupID, 0, len(demoted))
	for id := range demoted {
		demotedIDs = append(demotedIDs, id)
	}
	slices.Sort(demotedIDs)
	for _, id := range demotedIDs {
		appendBench(id)
	}

	// Backfill net-freed role slots from the bench.
	for _, role := range RoleOrder {
		freed := 0
		for id := range oldRoleIDs[role] {
			if !newRoleIDs[role][id] {
				freed++
			}
		}
		for id := range newRoleIDs[role] {
			if !oldRoleIDs[role][id] {
				freed--
			}
		}
		for ; freed > 0; freed-- {
			promoted, c, err := next.PromoteBenchHead(role)
			if err != nil {
				return m, Change{}, err
			}
			if c.Kind == ChangeNone {
				break
			}
			next = promoted
		}
	}

	if err := next.Validate(); err != nil {
		return m, Change{}, err
	}
	return next, Change{
		Kind:  ChangeReplaced,
		Bench: slices.Clone(next.bench),
	}, nil
}
