package lineupdomain

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	sharedtypes "github.com/hnaspl/woltk-calendar/app/shared/types"
)

// Model is the lineup aggregate for exactly one raid event.
//
// Invariants (checked by Validate, preserved by every operation):
//  1. Every non-banned signup is either in exactly one slot or at exactly
//     one bench position, never both, never neither.
//  2. A slot holds at most one signup; a signup occupies at most one slot.
//  3. The bench is a duplicate-free ordering of all unassigned,
//     non-banned signup ids.
//
// Operations never mutate the receiver; they return the next state plus a
// Change describing what happened.
type Model struct {
	eventID sharedtypes.EventID
	signups map[sharedtypes.SignupID]Signup
	slots   map[SlotKey]sharedtypes.SignupID
	slotOf  map[sharedtypes.SignupID]SlotKey
	bench   []sharedtypes.SignupID
}

// NewModel returns an empty lineup for the given event.
func NewModel(eventID sharedtypes.EventID) Model {
	return Model{
		eventID: eventID,
		signups: map[sharedtypes.SignupID]Signup{},
		slots:   map[SlotKey]sharedtypes.SignupID{},
		slotOf:  map[sharedtypes.SignupID]SlotKey{},
	}
}

// EventID returns the raid event this lineup belongs to.
func (m Model) EventID() sharedtypes.EventID { return m.eventID }

// Signup looks up a signup record by id.
func (m Model) Signup(id sharedtypes.SignupID) (Signup, bool) {
	s, ok := m.signups[id]
	return s, ok
}

// SlotOf returns the slot a signup occupies, if any.
func (m Model) SlotOf(id sharedtypes.SignupID) (SlotKey, bool) {
	k, ok := m.slotOf[id]
	return k, ok
}

// Occupant returns the signup holding a slot, if any.
func (m Model) Occupant(key SlotKey) (sharedtypes.SignupID, bool) {
	id, ok := m.slots[key]
	return id, ok
}

// Bench returns a copy of the bench order.
func (m Model) Bench() []sharedtypes.SignupID {
	return slices.Clone(m.bench)
}

// Len returns the number of signup records, banned included.
func (m Model) Len() int { return len(m.signups) }

func (m Model) clone() Model {
	next := Model{
		eventID: m.eventID,
		signups: make(map[sharedtypes.SignupID]Signup, len(m.signups)),
		slots:   make(map[SlotKey]sharedtypes.SignupID, len(m.slots)),
		slotOf:  make(map[sharedtypes.SignupID]SlotKey, len(m.slotOf)),
		bench:   slices.Clone(m.bench),
	}
	for id, s := range m.signups {
		next.signups[id] = s
	}
	for k, id := range m.slots {
		next.slots[k] = id
	}
	for id, k := range m.slotOf {
		next.slotOf[id] = k
	}
	return next
}

// AssignToSlot places a signup at the target slot, removing it from the
// bench or its previous slot. If the slot is held by another signup the
// call fails with SlotOccupiedError unless swap is set, in which case the
// two signups exchange positions atomically. Dropping a signup onto the
// slot it already holds is a silent no-op: ordinary drag gestures end on
// their origin all the time.
func (m Model) AssignToSlot(id sharedtypes.SignupID, key SlotKey, swap bool) (Model, Change, error) {
	s, ok := m.signups[id]
	if !ok {
		return m, Change{}, ErrSignupNotFound
	}
	if s.Banned {
		return m, Change{}, ErrSignupBanned
	}
	if !key.Role.Valid() || key.Position < 0 {
		return m, Change{}, &InvalidSlotError{Slot: key}
	}

	occupant, occupied := m.slots[key]
	if occupied && occupant == id {
		return m, Change{Kind: ChangeNone}, nil
	}
	if occupied && !swap {
		return m, Change{}, &SlotOccupiedError{Slot: key, Occupant: occupant}
	}

	next := m.clone()
	from, hadSlot := next.slotOf[id]
	benchIdx := slices.Index(next.bench, id)

	if occupied {
		// Swap: the prior occupant takes the mover's old place.
		switch {
		case hadSlot:
			next.slots[from] = occupant
			next.slotOf[occupant] = from
		case benchIdx >= 0:
			next.bench[benchIdx] = occupant
			delete(next.slotOf, occupant)
		default:
			return m, Change{}, fmt.Errorf("signup %d is neither slotted nor benched", id)
		}
		next.slots[key] = id
		next.slotOf[id] = key
		c := Change{Kind: ChangeSwapped, SignupID: id, OtherSignupID: occupant, To: &key}
		if hadSlot {
			f := from
			c.From = &f
		} else {
			c.Bench = slices.Clone(next.bench)
		}
		return next, changeWithSlots(c), nil
	}

	// Plain move into an empty slot.
	switch {
	case hadSlot:
		delete(next.slots, from)
	case benchIdx >= 0:
		next.bench = slices.Delete(next.bench, benchIdx, benchIdx+1)
	default:
		return m, Change{}, fmt.Errorf("signup %d is neither slotted nor benched", id)
	}
	next.slots[key] = id
	next.slotOf[id] = key

	c := Change{Kind: ChangeAssigned, SignupID: id, To: &key}
	if hadSlot {
		f := from
		c.From = &f
	} else {
		c.Bench = slices.Clone(next.bench)
	}
	return next, changeWithSlots(c), nil
}

// Unassign moves a slotted signup to the end of the bench.
func (m Model) Unassign(id sharedtypes.SignupID) (Model, Change, error) {
	s, ok := m.signups[id]
	if !ok {
		return m, Change{}, ErrSignupNotFound
	}
	if s.Banned {
		return m, Change{}, ErrSignupBanned
	}
	from, hadSlot := m.slotOf[id]
	if !hadSlot {
		return m, Change{}, ErrNotAssigned
	}

	next := m.clone()
	delete(next.slots, from)
	delete(next.slotOf, id)
	next.bench = append(next.bench, id)

	f := from
	return next, changeWithSlots(Change{
		Kind:     ChangeUnassigned,
		SignupID: id,
		From:     &f,
		Bench:    slices.Clone(next.bench),
	}), nil
}

// ReorderBench replaces the bench order wholesale. The given list must be
// an exact permutation of the current bench membership.
func (m Model) ReorderBench(order []sharedtypes.SignupID) (Model, Change, error) {
	if err := m.checkPermutation(order); err != nil {
		return m, Change{}, err
	}

	next := m.clone()
	next.bench = slices.Clone(order)
	return next, Change{
		Kind:  ChangeBenchReordered,
		Bench: slices.Clone(order),
	}, nil
}

func (m Model) checkPermutation(order []sharedtypes.SignupID) error {
	if len(order) != len(m.bench) {
		return &InvalidOrderError{Reason: fmt.Sprintf("got %d ids, bench has %d", len(order), len(m.bench))}
	}
	current := make(map[sharedtypes.SignupID]bool, len(m.bench))
	for _, id := range m.bench {
		current[id] = true
	}
	seen := make(map[sharedtypes.SignupID]bool, len(order))
	for _, id := range order {
		if seen[id] {
			return &InvalidOrderError{Reason: fmt.Sprintf("duplicate signup %d", id)}
		}
		seen[id] = true
		if !current[id] {
			return &InvalidOrderError{Reason: fmt.Sprintf("signup %d is not on the bench", id)}
		}
	}
	return nil
}

// AddSignup reflects an externally created signup. Non-banned signups
// default to the bench tail; banned ones keep only their record.
func (m Model) AddSignup(s Signup) (Model, Change, error) {
	if _, exists := m.signups[s.ID]; exists {
		return m, Change{}, ErrDuplicateSignup
	}

	next := m.clone()
	next.signups[s.ID] = s
	if !s.Banned {
		next.bench = append(next.bench, s.ID)
	}
	return next, Change{
		Kind:     ChangeSignupAdded,
		SignupID: s.ID,
		Bench:    slices.Clone(next.bench),
	}, nil
}

// RemoveSignup reflects an externally deleted signup, dropping it from its
// slot or bench position along with its record.
func (m Model) RemoveSignup(id sharedtypes.SignupID) (Model, Change, error) {
	if _, ok := m.signups[id]; !ok {
		return m, Change{}, ErrSignupNotFound
	}

	next := m.clone()
	c := Change{Kind: ChangeSignupRemoved, SignupID: id}
	if from, hadSlot := next.slotOf[id]; hadSlot {
		delete(next.slots, from)
		delete(next.slotOf, id)
		f := from
		c.From = &f
	} else if i := slices.Index(next.bench, id); i >= 0 {
		next.bench = slices.Delete(next.bench, i, i+1)
	}
	delete(next.signups, id)
	c.Bench = slices.Clone(next.bench)
	return next, changeWithSlots(c), nil
}

// BanSignup marks a signup ineligible: force-unassigned from any slot and
// removed from the bench, record retained so history survives.
func (m Model) BanSignup(id sharedtypes.SignupID) (Model, Change, error) {
	s, ok := m.signups[id]
	if !ok {
		return m, Change{}, ErrSignupNotFound
	}
	if s.Banned {
		return m, Change{Kind: ChangeNone}, nil
	}

	next := m.clone()
	c := Change{Kind: ChangeBanned, SignupID: id}
	if from, hadSlot := next.slotOf[id]; hadSlot {
		delete(next.slots, from)
		delete(next.slotOf, id)
		f := from
		c.From = &f
	} else if i := slices.Index(next.bench, id); i >= 0 {
		next.bench = slices.Delete(next.bench, i, i+1)
	}
	s.Banned = true
	next.signups[id] = s
	c.Bench = slices.Clone(next.bench)
	return next, changeWithSlots(c), nil
}

// UnbanSignup clears the ban and returns the signup to the bench tail.
func (m Model) UnbanSignup(id sharedtypes.SignupID) (Model, Change, error) {
	s, ok := m.signups[id]
	if !ok {
		return m, Change{}, ErrSignupNotFound
	}
	if !s.Banned {
		return m, Change{Kind: ChangeNone}, nil
	}

	next := m.clone()
	s.Banned = false
	next.signups[id] = s
	next.bench = append(next.bench, id)
	return next, Change{
		Kind:     ChangeUnbanned,
		SignupID: id,
		Bench:    slices.Clone(next.bench),
	}, nil
}

// PromoteBenchHead moves the first bench signup whose desired role matches
// the given role into the lowest free position for that role. Returns
// ChangeNone when nobody on the bench wants the role.
func (m Model) PromoteBenchHead(role Role) (Model, Change, error) {
	if !role.Valid() {
		return m, Change{}, &InvalidSlotError{Slot: SlotKey{Role: role}}
	}
	for _, id := range m.bench {
		if m.signups[id].Role != role {
			continue
		}
		key := SlotKey{Role: role, Position: m.nextFreePosition(role)}
		next, c, err := m.AssignToSlot(id, key, false)
		if err != nil {
			return m, Change{}, err
		}
		c.Kind = ChangePromoted
		return next, c, nil
	}
	return m, Change{Kind: ChangeNone}, nil
}

func (m Model) nextFreePosition(role Role) int {
	for pos := 0; ; pos++ {
		if _, taken := m.slots[SlotKey{Role: role, Position: pos}]; !taken {
			return pos
		}
	}
}

// Validate checks the aggregate invariants. A nil return means the model
// is internally consistent.
func (m Model) Validate() error {
	for key, id := range m.slots {
		s, ok := m.signups[id]
		if !ok {
			return fmt.Errorf("slot %s references unknown signup %d", key, id)
		}
		if s.Banned {
			return fmt.Errorf("slot %s holds banned signup %d", key, id)
		}
		if got, ok := m.slotOf[id]; !ok || got != key {
			return fmt.Errorf("slot index out of sync for signup %d", id)
		}
	}
	for id, key := range m.slotOf {
		if m.slots[key] != id {
			return fmt.Errorf("signup %d claims slot %s held by %d", id, key, m.slots[key])
		}
	}

	seen := make(map[sharedtypes.SignupID]bool, len(m.bench))
	for _, id := range m.bench {
		s, ok := m.signups[id]
		if !ok {
			return fmt.Errorf("bench references unknown signup %d", id)
		}
		if s.Banned {
			return fmt.Errorf("banned signup %d is on the bench", id)
		}
		if seen[id] {
			return fmt.Errorf("signup %d appears twice on the bench", id)
		}
		if _, slotted := m.slotOf[id]; slotted {
			return fmt.Errorf("signup %d is both slotted and benched", id)
		}
		seen[id] = true
	}

	for id, s := range m.signups {
		if s.Banned {
			continue
		}
		_, slotted := m.slotOf[id]
		if !slotted && !seen[id] {
			return fmt.Errorf("signup %d is neither slotted nor benched", id)
		}
	}
	return nil
}

// Snapshot serializes the aggregate in canonical order.
func (m Model) Snapshot() Snapshot {
	snap := Snapshot{
		EventID: m.eventID,
		Bench:   slices.Clone(m.bench),
	}
	keys := make([]SlotKey, 0, len(m.slots))
	for k := range m.slots {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Role != keys[j].Role {
			return roleRank(keys[i].Role) < roleRank(keys[j].Role)
		}
		return keys[i].Position < keys[j].Position
	})
	for _, k := range keys {
		snap.Slots = append(snap.Slots, SlotAssignment{
			Slot:     k,
			Key:      k.String(),
			SignupID: m.slots[k],
		})
	}
	ids := make([]sharedtypes.SignupID, 0, len(m.signups))
	for id := range m.signups {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	for _, id := range ids {
		snap.Signups = append(snap.Signups, m.signups[id])
	}
	snap.Version = m.Fingerprint()
	return snap
}

// Fingerprint condenses the assignment state into a comparable version
// string used for optimistic-concurrency checks against the server.
func (m Model) Fingerprint() string {
	var b strings.Builder
	for i, role := range RoleOrder {
		if i > 0 {
			b.WriteByte('|')
		}
		b.WriteString(string(role))
		b.WriteByte(':')
		positions := make([]int, 0, 4)
		for k := range m.slots {
			if k.Role == role {
				positions = append(positions, k.Position)
			}
		}
		slices.Sort(positions)
		for j, pos := range positions {
			if j > 0 {
				b.WriteByte(',')
			}
			fmt.Fprintf(&b, "%d", m.slots[SlotKey{Role: role, Position: pos}])
		}
	}
	b.WriteString("|bench:")
	for i, id := range m.bench {
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, "%d", id)
	}
	return b.String()
}

// BuildFromSnapshot rebuilds the aggregate from a full server snapshot.
// Signups missing from both slots and bench are appended to the bench tail
// rather than dropped, so a partial server response never loses anyone.
func BuildFromSnapshot(snap Snapshot) (Model, error) {
	m := NewModel(snap.EventID)
	for _, s := range snap.Signups {
		if _, dup := m.signups[s.ID]; dup {
			return Model{}, fmt.Errorf("snapshot repeats signup %d", s.ID)
		}
		m.signups[s.ID] = s
	}

	for _, sa := range snap.Slots {
		key := sa.Slot
		if key.Role == "" {
			parsed, err := ParseSlotKey(sa.Key)
			if err != nil {
				return Model{}, err
			}
			key = parsed
		}
		s, ok := m.signups[sa.SignupID]
		if !ok {
			return Model{}, fmt.Errorf("snapshot slot %s references unknown signup %d", key, sa.SignupID)
		}
		if s.Banned {
			continue
		}
		if prior, taken := m.slots[key]; taken {
			return Model{}, fmt.Errorf("snapshot slot %s held by both %d and %d", key, prior, sa.SignupID)
		}
		if _, already := m.slotOf[sa.SignupID]; already {
			return Model{}, fmt.Errorf("snapshot places signup %d in two slots", sa.SignupID)
		}
		m.slots[key] = sa.SignupID
		m.slotOf[sa.SignupID] = key
	}

	benched := make(map[sharedtypes.SignupID]bool, len(snap.Bench))
	for _, id := range snap.Bench {
		s, ok := m.signups[id]
		if !ok || s.Banned || benched[id] {
			continue
		}
		if _, slotted := m.slotOf[id]; slotted {
			continue
		}
		benched[id] = true
		m.bench = append(m.bench, id)
	}

	// Orphans: present in signups but in neither structure.
	ids := make([]sharedtypes.SignupID, 0, len(m.signups))
	for id := range m.signups {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	for _, id := range ids {
		s := m.signups[id]
		if s.Banned || benched[id] {
			continue
		}
		if _, slotted := m.slotOf[id]; slotted {
			continue
		}
		m.bench = append(m.bench, id)
	}

	if err := m.Validate(); err != nil {
		return Model{}, fmt.Errorf("snapshot produced inconsistent lineup: %w", err)
	}
	return m, nil
}

func roleRank(r Role) int {
	for i, role := range RoleOrder {
		if r == role {
			return i
		}
	}
	return len(RoleOrder)
}
