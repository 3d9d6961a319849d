// Package lineuporch coordinates a live lineup view: it keeps a local model,
// applies the user's edits optimistically, reconciles against the messages
// fanned out on the event room, and falls back to a snapshot refetch whenever
// the local state can no longer be trusted.
package lineuporch

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	guildservice "github.com/hnaspl/woltk-calendar/app/modules/guild/application"
	guilddomain "github.com/hnaspl/woltk-calendar/app/modules/guild/domain"
	lineupdomain "github.com/hnaspl/woltk-calendar/app/modules/lineup/domain"
	lineupevents "github.com/hnaspl/woltk-calendar/app/modules/lineup/events"
	raiddomain "github.com/hnaspl/woltk-calendar/app/modules/raid/domain"
	raidevents "github.com/hnaspl/woltk-calendar/app/modules/raid/events"
	"github.com/hnaspl/woltk-calendar/app/realtime"
	"github.com/hnaspl/woltk-calendar/app/shared/attr"
	sharedtypes "github.com/hnaspl/woltk-calendar/app/shared/types"
)

// Channel is the slice of the realtime channel the orchestrator uses.
type Channel interface {
	Acquire()
	Release()
	JoinEvent(ctx context.Context, eventID sharedtypes.EventID) error
	LeaveEvent(ctx context.Context, eventID sharedtypes.EventID) error
	On(name string, h realtime.Handler) uint64
	Off(name string, token uint64)
	Send(ctx context.Context, msg realtime.Message) error
	NotifyStatus(h realtime.StateHandler)
	Connected() bool
}

// SnapshotFetcher retrieves the authoritative snapshot for an event.
type SnapshotFetcher interface {
	FetchSnapshot(ctx context.Context, eventID sharedtypes.EventID) (lineupdomain.Snapshot, error)
}

// UpdateFunc observes every change to the orchestrator's view of the lineup.
type UpdateFunc func(snapshot lineupdomain.Snapshot)

// ErrNotStarted is returned by mutations before Start or after Stop.
var ErrNotStarted = errors.New("orchestrator not started")

type pendingOp struct {
	requestID string
	apply     func(lineupdomain.Model) (lineupdomain.Model, lineupdomain.Change, error)
}

// Orchestrator owns the live lineup state for exactly one event at a time.
type Orchestrator struct {
	channel    Channel
	fetcher    SnapshotFetcher
	logger     *slog.Logger
	user       guilddomain.User
	membership *guilddomain.Membership

	mu        sync.Mutex
	started   bool
	eventID   sharedtypes.EventID
	guildID   sharedtypes.GuildID
	status    raiddomain.EventStatus
	confirmed lineupdomain.Model
	current   lineupdomain.Model
	version   string
	pending   []pendingOp

	// epoch invalidates in-flight fetches when the event changes, the
	// channel reconnects, or the orchestrator stops. fetching coalesces
	// concurrent refetch requests into one round trip; a fetch that
	// completes at a stale epoch re-issues for the current one.
	epoch    uint64
	fetching bool

	tokens   []registration
	onUpdate UpdateFunc
}

type registration struct {
	name  string
	token uint64
}

// New builds an orchestrator. user and membership are the caller's
// identity snapshot: the user's ID is stamped on outgoing requests and
// the pair feeds the local permission gate on every edit.
func New(channel Channel, fetcher SnapshotFetcher, user guilddomain.User, membership *guilddomain.Membership, logger *slog.Logger) *Orchestrator {
	return &Orchestrator{
		channel:    channel,
		fetcher:    fetcher,
		logger:     logger,
		user:       user,
		membership: membership,
	}
}

// OnUpdate registers the view callback. It runs with the orchestrator
// unlocked, after every accepted local or remote change.
func (o *Orchestrator) OnUpdate(fn UpdateFunc) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.onUpdate = fn
}

// Start joins the event room and loads the initial snapshot. status is the
// event's lifecycle state as last seen by the caller; the orchestrator
// tracks it from there via status-changed messages. Starting while already
// started switches events: the previous room is left and all optimistic
// state is discarded.
func (o *Orchestrator) Start(ctx context.Context, eventID sharedtypes.EventID, guildID sharedtypes.GuildID, status raiddomain.EventStatus) error {
	o.mu.Lock()
	if o.started {
		prev := o.eventID
		o.mu.Unlock()
		if prev == eventID {
			return nil
		}
		if err := o.Stop(ctx); err != nil {
			return err
		}
		o.mu.Lock()
	}

	o.started = true
	o.eventID = eventID
	o.guildID = guildID
	o.status = status
	o.confirmed = lineupdomain.NewModel(eventID)
	o.current = o.confirmed
	o.version = ""
	o.pending = nil
	o.epoch++
	o.mu.Unlock()

	o.channel.Acquire()
	if err := o.channel.JoinEvent(ctx, eventID); err != nil {
		o.channel.Release()
		o.mu.Lock()
		o.started = false
		o.mu.Unlock()
		return err
	}

	o.register(lineupevents.MsgLineupChanged, o.handleChanged)
	o.register(lineupevents.MsgChangeFailed, o.handleChangeFailed)
	o.register(lineupevents.MsgStatusChanged, o.handleStatusChanged)
	o.channel.NotifyStatus(o.onStatusChange)

	o.refetch(ctx)
	return nil
}

// Stop leaves the room and drops all state, pending edits included.
func (o *Orchestrator) Stop(ctx context.Context) error {
	o.mu.Lock()
	if !o.started {
		o.mu.Unlock()
		return nil
	}
	eventID := o.eventID
	tokens := o.tokens
	o.tokens = nil
	o.started = false
	o.pending = nil
	o.epoch++
	o.mu.Unlock()

	for _, reg := range tokens {
		o.channel.Off(reg.name, reg.token)
	}
	err := o.channel.LeaveEvent(ctx, eventID)
	o.channel.Release()
	return err
}

// Snapshot returns the current (optimistic) view.
func (o *Orchestrator) Snapshot() lineupdomain.Snapshot {
	o.mu.Lock()
	defer o.mu.Unlock()
	snap := o.current.Snapshot()
	snap.Version = o.version
	return snap
}

// Version returns the fingerprint of the last server-acknowledged state.
func (o *Orchestrator) Version() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.version
}

// PendingCount reports how many optimistic edits await acknowledgement.
func (o *Orchestrator) PendingCount() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.pending)
}

func (o *Orchestrator) register(name string, h realtime.Handler) {
	token := o.channel.On(name, h)
	o.mu.Lock()
	o.tokens = append(o.tokens, registration{name: name, token: token})
	o.mu.Unlock()
}

// submit runs the optimistic write path: check permission and lifecycle,
// apply locally, remember the op, send the request. A gate or domain
// rejection surfaces immediately and changes nothing; a send failure rolls
// the optimistic application back. The server re-checks both gates, this
// one just keeps a doomed edit from ever touching the local model.
func (o *Orchestrator) submit(ctx context.Context, apply func(lineupdomain.Model) (lineupdomain.Model, lineupdomain.Change, error), build func(requestID string) realtime.Message) error {
	o.mu.Lock()
	if !o.started {
		o.mu.Unlock()
		return ErrNotStarted
	}
	if !guilddomain.Can(sharedtypes.CapManageLineup, o.user, o.membership) {
		o.mu.Unlock()
		return guildservice.ErrPermissionDenied
	}
	if !o.status.Mutable() {
		from := o.status
		o.mu.Unlock()
		return &raiddomain.LifecycleViolationError{From: from}
	}
	next, _, err := apply(o.current)
	if err != nil {
		o.mu.Unlock()
		return err
	}

	requestID := uuid.New().String()
	o.current = next
	o.pending = append(o.pending, pendingOp{requestID: requestID, apply: apply})
	msg := build(requestID)
	o.mu.Unlock()

	if err := o.channel.Send(ctx, msg); err != nil {
		o.mu.Lock()
		o.dropPendingLocked(requestID)
		o.rebuildCurrentLocked()
		o.mu.Unlock()
		o.notify()
		return err
	}
	o.notify()
	return nil
}

// Assign optimistically seats a signup and submits the request.
func (o *Orchestrator) Assign(ctx context.Context, signupID sharedtypes.SignupID, slot lineupdomain.SlotKey, swap bool) error {
	return o.submit(ctx,
		func(m lineupdomain.Model) (lineupdomain.Model, lineupdomain.Change, error) {
			return m.AssignToSlot(signupID, slot, swap)
		},
		func(requestID string) realtime.Message {
			return o.request(lineupevents.MsgAssignRequest, lineupevents.AssignRequestedPayloadV1{
				RequestID:   requestID,
				EventID:     o.eventID,
				GuildID:     o.guildID,
				RequestedBy: o.user.ID,
				SignupID:    signupID,
				Slot:        slot.String(),
				Swap:        swap,
			})
		})
}

// Unassign optimistically benches a signup and submits the request.
func (o *Orchestrator) Unassign(ctx context.Context, signupID sharedtypes.SignupID) error {
	return o.submit(ctx,
		func(m lineupdomain.Model) (lineupdomain.Model, lineupdomain.Change, error) {
			return m.Unassign(signupID)
		},
		func(requestID string) realtime.Message {
			return o.request(lineupevents.MsgUnassignRequest, lineupevents.UnassignRequestedPayloadV1{
				RequestID:   requestID,
				EventID:     o.eventID,
				GuildID:     o.guildID,
				RequestedBy: o.user.ID,
				SignupID:    signupID,
			})
		})
}

// ReorderBench optimistically reorders the bench and submits the request.
func (o *Orchestrator) ReorderBench(ctx context.Context, order []sharedtypes.SignupID) error {
	return o.submit(ctx,
		func(m lineupdomain.Model) (lineupdomain.Model, lineupdomain.Change, error) {
			return m.ReorderBench(order)
		},
		func(requestID string) realtime.Message {
			return o.request(lineupevents.MsgBenchReorderRequest, lineupevents.BenchReorderRequestedPayloadV1{
				RequestID:   requestID,
				EventID:     o.eventID,
				GuildID:     o.guildID,
				RequestedBy: o.user.ID,
				Order:       order,
			})
		})
}

// Replace optimistically applies a bulk arrangement and submits the request.
func (o *Orchestrator) Replace(ctx context.Context, grouped lineupdomain.Grouped) error {
	return o.submit(ctx,
		func(m lineupdomain.Model) (lineupdomain.Model, lineupdomain.Change, error) {
			return m.ReplaceAll(grouped)
		},
		func(requestID string) realtime.Message {
			return o.request(lineupevents.MsgReplaceRequest, lineupevents.ReplaceRequestedPayloadV1{
				RequestID:   requestID,
				EventID:     o.eventID,
				GuildID:     o.guildID,
				RequestedBy: o.user.ID,
				Grouped:     grouped,
			})
		})
}

// Confirm submits a confirmation request. Not optimistic: the mark only
// matters once the server applied it.
func (o *Orchestrator) Confirm(ctx context.Context) error {
	o.mu.Lock()
	if !o.started {
		o.mu.Unlock()
		return ErrNotStarted
	}
	msg := o.request(lineupevents.MsgConfirmRequest, lineupevents.ConfirmRequestedPayloadV1{
		EventID:     o.eventID,
		GuildID:     o.guildID,
		RequestedBy: o.user.ID,
	})
	o.mu.Unlock()
	return o.channel.Send(ctx, msg)
}

func (o *Orchestrator) request(name string, payload any) realtime.Message {
	data, err := json.Marshal(payload)
	if err != nil {
		// Payloads are plain structs; a marshal failure is a programming
		// error worth surfacing loudly in logs.
		o.logger.Error("Failed to marshal lineup request", attr.String("name", name), attr.Error(err))
	}
	return realtime.Message{Name: name, EventID: o.eventID, Data: data}
}

// handleChanged reconciles an acknowledged or remote mutation. The payload's
// snapshot becomes the confirmed state; unacknowledged local edits are
// replayed on top and silently dropped if they no longer apply.
func (o *Orchestrator) handleChanged(ctx context.Context, msg realtime.Message) {
	var payload lineupevents.ChangedPayloadV1
	if err := json.Unmarshal(msg.Data, &payload); err != nil {
		o.logger.Warn("Dropping undecodable lineup change", attr.Error(err))
		return
	}

	o.mu.Lock()
	if !o.started || payload.EventID != o.eventID {
		o.mu.Unlock()
		return
	}
	if payload.Snapshot == nil {
		epoch := o.epoch
		o.mu.Unlock()
		o.refetchEpoch(ctx, epoch)
		return
	}

	model, err := lineupdomain.BuildFromSnapshot(*payload.Snapshot)
	if err != nil {
		epoch := o.epoch
		o.mu.Unlock()
		o.logger.Warn("Rejecting inconsistent lineup snapshot", attr.Error(err))
		o.refetchEpoch(ctx, epoch)
		return
	}

	if payload.RequestID != "" {
		o.dropPendingLocked(payload.RequestID)
	}
	o.confirmed = model
	o.version = payload.Version
	o.rebuildCurrentLocked()
	o.mu.Unlock()
	o.notify()
}

// handleChangeFailed rolls back the rejected edit. A conflict rejection
// drops all optimistic state and refetches; any other rejection removes
// just the failed edit.
func (o *Orchestrator) handleChangeFailed(ctx context.Context, msg realtime.Message) {
	var payload lineupevents.ChangeFailedPayloadV1
	if err := json.Unmarshal(msg.Data, &payload); err != nil {
		o.logger.Warn("Dropping undecodable lineup rejection", attr.Error(err))
		return
	}

	o.mu.Lock()
	if !o.started || payload.EventID != o.eventID {
		o.mu.Unlock()
		return
	}
	if payload.RequestID == "" || !o.dropPendingLocked(payload.RequestID) {
		// Someone else's rejection; nothing of ours to undo.
		o.mu.Unlock()
		return
	}

	if payload.Code == lineupevents.CodeConflict {
		o.pending = nil
		o.current = o.confirmed
		epoch := o.epoch
		o.mu.Unlock()
		o.notify()
		o.refetchEpoch(ctx, epoch)
		return
	}

	o.rebuildCurrentLocked()
	o.mu.Unlock()
	o.notify()
}

// handleStatusChanged refetches when the event leaves the mutable state:
// the server force-unassigns nothing on lock, but local optimistic edits
// can no longer land.
func (o *Orchestrator) handleStatusChanged(ctx context.Context, msg realtime.Message) {
	var payload raidevents.RaidStatusChangedPayloadV1
	if err := json.Unmarshal(msg.Data, &payload); err != nil {
		o.logger.Warn("Dropping undecodable status change", attr.Error(err))
		return
	}

	o.mu.Lock()
	if !o.started || payload.EventID != o.eventID {
		o.mu.Unlock()
		return
	}
	o.status = payload.To
	if payload.To == raiddomain.StatusScheduled {
		// Unlock: local state is still valid and edits may resume.
		o.mu.Unlock()
		return
	}
	o.pending = nil
	o.current = o.confirmed
	epoch := o.epoch
	o.mu.Unlock()
	o.notify()
	o.refetchEpoch(ctx, epoch)
}

// onStatusChange discards unacknowledged optimistic state and refetches
// exactly once per reconnect.
func (o *Orchestrator) onStatusChange(connected bool) {
	if !connected {
		return
	}
	o.mu.Lock()
	if !o.started {
		o.mu.Unlock()
		return
	}
	o.pending = nil
	o.current = o.confirmed
	o.epoch++
	o.mu.Unlock()
	o.notify()
	o.refetch(context.Background())
}

// refetch fetches the snapshot for the current epoch.
func (o *Orchestrator) refetch(ctx context.Context) {
	o.mu.Lock()
	epoch := o.epoch
	o.mu.Unlock()
	o.refetchEpoch(ctx, epoch)
}

// refetchEpoch coalesces concurrent refetches. A result that arrives
// after the epoch moved on (event switch, reconnect) is discarded and
// the fetch re-issued at the current epoch, since the request that moved
// the epoch was coalesced against it.
func (o *Orchestrator) refetchEpoch(ctx context.Context, epoch uint64) {
	o.mu.Lock()
	if !o.started || o.epoch != epoch || o.fetching {
		o.mu.Unlock()
		return
	}
	o.fetching = true
	eventID := o.eventID
	o.mu.Unlock()

	go func() {
		snap, err := o.fetcher.FetchSnapshot(ctx, eventID)

		o.mu.Lock()
		o.fetching = false
		if !o.started {
			o.mu.Unlock()
			return
		}
		if o.epoch != epoch {
			// A refetch requested at the newer epoch coalesced against
			// this stale fetch; re-issue it so the current epoch still
			// gets its snapshot.
			current := o.epoch
			o.mu.Unlock()
			o.refetchEpoch(context.Background(), current)
			return
		}
		if err != nil {
			o.mu.Unlock()
			o.logger.Warn("Lineup snapshot fetch failed",
				attr.Int64("event_id", int64(eventID)),
				attr.Error(err),
			)
			return
		}
		model, buildErr := lineupdomain.BuildFromSnapshot(snap)
		if buildErr != nil {
			o.mu.Unlock()
			o.logger.Warn("Fetched lineup snapshot is inconsistent", attr.Error(buildErr))
			return
		}
		o.confirmed = model
		o.version = snap.Version
		o.rebuildCurrentLocked()
		o.mu.Unlock()
		o.notify()
	}()
}

// dropPendingLocked removes a pending op by request ID. Caller holds mu.
func (o *Orchestrator) dropPendingLocked(requestID string) bool {
	for i, op := range o.pending {
		if op.requestID == requestID {
			o.pending = append(o.pending[:i:i], o.pending[i+1:]...)
			return true
		}
	}
	return false
}

// rebuildCurrentLocked replays the surviving pending ops on the confirmed
// model. Ops that no longer apply are dropped. Caller holds mu.
func (o *Orchestrator) rebuildCurrentLocked() {
	current := o.confirmed
	kept := o.pending[:0]
	for _, op := range o.pending {
		next, _, err := op.apply(current)
		if err != nil {
			continue
		}
		current = next
		kept = append(kept, op)
	}
	o.pending = kept
	o.current = current
}

func (o *Orchestrator) notify() {
	o.mu.Lock()
	fn := o.onUpdate
	var snap lineupdomain.Snapshot
	if fn != nil {
		snap = o.current.Snapshot()
		snap.Version = o.version
	}
	o.mu.Unlock()
	if fn != nil {
		fn(snap)
	}
}
