package lineuporch

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	guildservice "github.com/hnaspl/woltk-calendar/app/modules/guild/application"
	guilddomain "github.com/hnaspl/woltk-calendar/app/modules/guild/domain"
	lineupdomain "github.com/hnaspl/woltk-calendar/app/modules/lineup/domain"
	"github.com/hnaspl/woltk-calendar/app/modules/lineup/dragdrop"
	lineupevents "github.com/hnaspl/woltk-calendar/app/modules/lineup/events"
	raiddomain "github.com/hnaspl/woltk-calendar/app/modules/raid/domain"
	raidevents "github.com/hnaspl/woltk-calendar/app/modules/raid/events"
	sharedtypes "github.com/hnaspl/woltk-calendar/app/shared/types"
)

const (
	testEventID sharedtypes.EventID = 100
	testGuildID sharedtypes.GuildID = 7
	testUserID  sharedtypes.UserID  = 42
)

func testSignups() []lineupdomain.Signup {
	return []lineupdomain.Signup{
		{ID: 1, UserID: 10, CharacterID: 100, Role: lineupdomain.RoleTank},
		{ID: 2, UserID: 11, CharacterID: 101, Role: lineupdomain.RoleHealer},
		{ID: 3, UserID: 12, CharacterID: 102, Role: lineupdomain.RoleDPS},
	}
}

// benchedSnapshot has every signup on the bench, in signup order.
func benchedSnapshot(version string) lineupdomain.Snapshot {
	return lineupdomain.Snapshot{
		EventID: testEventID,
		Bench:   []sharedtypes.SignupID{1, 2, 3},
		Signups: testSignups(),
		Version: version,
	}
}

type harness struct {
	orch    *Orchestrator
	channel *FakeChannel
	fetcher *FakeFetcher
	updates chan lineupdomain.Snapshot
}

func officerMembership() *guilddomain.Membership {
	return &guilddomain.Membership{GuildID: testGuildID, UserID: testUserID, Role: guilddomain.RoleOfficer}
}

// buildHarness wires the fakes without starting the orchestrator, for
// tests that need to arrange state around Start itself.
func buildHarness(initial lineupdomain.Snapshot, membership *guilddomain.Membership) *harness {
	h := &harness{
		channel: NewFakeChannel(),
		fetcher: NewFakeFetcher(initial),
		updates: make(chan lineupdomain.Snapshot, 64),
	}
	h.orch = New(h.channel, h.fetcher, guilddomain.User{ID: testUserID, Username: "velra"}, membership, slog.New(slog.DiscardHandler))
	h.orch.OnUpdate(func(snap lineupdomain.Snapshot) {
		h.updates <- snap
	})
	return h
}

func newHarnessFor(t *testing.T, initial lineupdomain.Snapshot, membership *guilddomain.Membership, status raiddomain.EventStatus) *harness {
	t.Helper()
	h := buildHarness(initial, membership)
	require.NoError(t, h.orch.Start(context.Background(), testEventID, testGuildID, status))
	h.waitVersion(t, initial.Version)
	return h
}

func newHarness(t *testing.T, initial lineupdomain.Snapshot) *harness {
	t.Helper()
	return newHarnessFor(t, initial, officerMembership(), raiddomain.StatusScheduled)
}

// waitVersion consumes updates until the view reports the wanted version.
func (h *harness) waitVersion(t *testing.T, want string) lineupdomain.Snapshot {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case snap := <-h.updates:
			if snap.Version == want {
				return snap
			}
		case <-deadline:
			t.Fatalf("timed out waiting for version %q, at %q", want, h.orch.Version())
		}
	}
}

func (h *harness) drainUpdates() {
	for {
		select {
		case <-h.updates:
		default:
			return
		}
	}
}

func TestStartJoinsRoomAndLoadsSnapshot(t *testing.T) {
	h := newHarness(t, benchedSnapshot("v1"))

	assert.Equal(t, []sharedtypes.EventID{testEventID}, h.channel.joins)
	assert.Equal(t, 1, h.channel.HandlerCount(lineupevents.MsgLineupChanged))
	assert.Equal(t, 1, h.channel.HandlerCount(lineupevents.MsgChangeFailed))
	assert.Equal(t, 1, h.channel.HandlerCount(lineupevents.MsgStatusChanged))

	snap := h.orch.Snapshot()
	assert.Equal(t, []sharedtypes.SignupID{1, 2, 3}, snap.Bench)
	assert.Empty(t, snap.Slots)
	assert.Equal(t, "v1", snap.Version)
}

func TestAssignAppliesOptimisticallyAndSendsRequest(t *testing.T) {
	h := newHarness(t, benchedSnapshot("v1"))

	slot := lineupdomain.SlotKey{Role: lineupdomain.RoleTank, Position: 0}
	require.NoError(t, h.orch.Assign(context.Background(), 1, slot, false))

	snap := h.orch.Snapshot()
	require.Len(t, snap.Slots, 1)
	assert.Equal(t, sharedtypes.SignupID(1), snap.Slots[0].SignupID)
	assert.Equal(t, []sharedtypes.SignupID{2, 3}, snap.Bench)
	assert.Equal(t, 1, h.orch.PendingCount())
	// The acknowledged version is unchanged until the server answers.
	assert.Equal(t, "v1", h.orch.Version())

	var sent lineupevents.AssignRequestedPayloadV1
	msg := h.channel.LastSent(t, &sent)
	assert.Equal(t, lineupevents.MsgAssignRequest, msg.Name)
	assert.Equal(t, testEventID, msg.EventID)
	assert.NotEmpty(t, sent.RequestID)
	assert.Equal(t, testUserID, sent.RequestedBy)
	assert.Equal(t, "tank-0", sent.Slot)
	assert.False(t, sent.Swap)
}

func TestAckClearsPendingAndAdoptsServerState(t *testing.T) {
	h := newHarness(t, benchedSnapshot("v1"))

	slot := lineupdomain.SlotKey{Role: lineupdomain.RoleTank, Position: 0}
	require.NoError(t, h.orch.Assign(context.Background(), 1, slot, false))

	var sent lineupevents.AssignRequestedPayloadV1
	h.channel.LastSent(t, &sent)

	serverSnap := benchedSnapshot("v2")
	serverSnap.Slots = []lineupdomain.SlotAssignment{{Key: "tank-0", SignupID: 1}}
	serverSnap.Bench = []sharedtypes.SignupID{2, 3}
	h.channel.Deliver(context.Background(), lineupevents.MsgLineupChanged, lineupevents.ChangedPayloadV1{
		RequestID: sent.RequestID,
		EventID:   testEventID,
		GuildID:   testGuildID,
		Version:   "v2",
		Snapshot:  &serverSnap,
	})

	assert.Equal(t, 0, h.orch.PendingCount())
	assert.Equal(t, "v2", h.orch.Version())
	snap := h.orch.Snapshot()
	require.Len(t, snap.Slots, 1)
	assert.Equal(t, sharedtypes.SignupID(1), snap.Slots[0].SignupID)
}

func TestDomainRejectionLeavesStateUntouched(t *testing.T) {
	h := newHarness(t, benchedSnapshot("v1"))

	slot := lineupdomain.SlotKey{Role: lineupdomain.RoleHealer, Position: 0}
	require.NoError(t, h.orch.Assign(context.Background(), 2, slot, false))
	before := len(h.channel.Sent())

	// Occupied without swap is rejected locally; nothing goes out.
	err := h.orch.Assign(context.Background(), 3, slot, false)
	var occupied *lineupdomain.SlotOccupiedError
	require.ErrorAs(t, err, &occupied)
	assert.Len(t, h.channel.Sent(), before)
	assert.Equal(t, 1, h.orch.PendingCount())
}

func TestAssignDeniedWithoutManageCapability(t *testing.T) {
	member := &guilddomain.Membership{GuildID: testGuildID, UserID: testUserID, Role: guilddomain.RoleMember}
	h := newHarnessFor(t, benchedSnapshot("v1"), member, raiddomain.StatusScheduled)

	err := h.orch.Assign(context.Background(), 1, lineupdomain.SlotKey{Role: lineupdomain.RoleTank, Position: 0}, false)
	require.ErrorIs(t, err, guildservice.ErrPermissionDenied)

	assert.Empty(t, h.channel.Sent())
	assert.Equal(t, 0, h.orch.PendingCount())
	assert.Empty(t, h.orch.Snapshot().Slots)
}

func TestAssignRejectedWhileEventLocked(t *testing.T) {
	h := newHarnessFor(t, benchedSnapshot("v1"), officerMembership(), raiddomain.StatusLocked)

	err := h.orch.Assign(context.Background(), 1, lineupdomain.SlotKey{Role: lineupdomain.RoleTank, Position: 0}, false)
	var violation *raiddomain.LifecycleViolationError
	require.ErrorAs(t, err, &violation)
	assert.Equal(t, raiddomain.StatusLocked, violation.From)

	assert.Empty(t, h.channel.Sent())
	assert.Equal(t, 0, h.orch.PendingCount())
	assert.Empty(t, h.orch.Snapshot().Slots)
}

func TestStatusChangeGatesAndUngatesEdits(t *testing.T) {
	h := newHarness(t, benchedSnapshot("v1"))

	h.fetcher.SetSnapshot(benchedSnapshot("v2"))
	h.channel.Deliver(context.Background(), lineupevents.MsgStatusChanged, raidevents.RaidStatusChangedPayloadV1{
		EventID: testEventID,
		GuildID: testGuildID,
		From:    raiddomain.StatusScheduled,
		To:      raiddomain.StatusLocked,
	})
	h.waitVersion(t, "v2")

	slot := lineupdomain.SlotKey{Role: lineupdomain.RoleTank, Position: 0}
	var violation *raiddomain.LifecycleViolationError
	require.ErrorAs(t, h.orch.Assign(context.Background(), 1, slot, false), &violation)

	h.channel.Deliver(context.Background(), lineupevents.MsgStatusChanged, raidevents.RaidStatusChangedPayloadV1{
		EventID: testEventID,
		GuildID: testGuildID,
		From:    raiddomain.StatusLocked,
		To:      raiddomain.StatusScheduled,
	})

	require.NoError(t, h.orch.Assign(context.Background(), 1, slot, false))
	assert.Equal(t, 1, h.orch.PendingCount())
}

func TestSendFailureRollsBackOptimisticEdit(t *testing.T) {
	h := newHarness(t, benchedSnapshot("v1"))
	h.channel.sendErr = context.DeadlineExceeded

	slot := lineupdomain.SlotKey{Role: lineupdomain.RoleTank, Position: 0}
	err := h.orch.Assign(context.Background(), 1, slot, false)
	require.Error(t, err)

	assert.Equal(t, 0, h.orch.PendingCount())
	snap := h.orch.Snapshot()
	assert.Empty(t, snap.Slots)
	assert.Equal(t, []sharedtypes.SignupID{1, 2, 3}, snap.Bench)
}

func TestRejectionRollsBackOnlyTheFailedEdit(t *testing.T) {
	h := newHarness(t, benchedSnapshot("v1"))

	require.NoError(t, h.orch.Assign(context.Background(), 1, lineupdomain.SlotKey{Role: lineupdomain.RoleTank, Position: 0}, false))
	var first lineupevents.AssignRequestedPayloadV1
	h.channel.LastSent(t, &first)
	require.NoError(t, h.orch.Assign(context.Background(), 2, lineupdomain.SlotKey{Role: lineupdomain.RoleHealer, Position: 0}, false))
	require.Equal(t, 2, h.orch.PendingCount())

	h.channel.Deliver(context.Background(), lineupevents.MsgChangeFailed, lineupevents.ChangeFailedPayloadV1{
		RequestID: first.RequestID,
		EventID:   testEventID,
		GuildID:   testGuildID,
		Code:      lineupevents.CodeInvalid,
		Reason:    "signup not found",
	})

	assert.Equal(t, 1, h.orch.PendingCount())
	snap := h.orch.Snapshot()
	require.Len(t, snap.Slots, 1)
	assert.Equal(t, "healer-0", snap.Slots[0].Key)
	assert.Equal(t, sharedtypes.SignupID(2), snap.Slots[0].SignupID)
}

func TestConflictRejectionDropsEverythingAndRefetches(t *testing.T) {
	h := newHarness(t, benchedSnapshot("v1"))

	require.NoError(t, h.orch.Assign(context.Background(), 1, lineupdomain.SlotKey{Role: lineupdomain.RoleTank, Position: 0}, false))
	var sent lineupevents.AssignRequestedPayloadV1
	h.channel.LastSent(t, &sent)

	h.fetcher.SetSnapshot(benchedSnapshot("v3"))
	h.channel.Deliver(context.Background(), lineupevents.MsgChangeFailed, lineupevents.ChangeFailedPayloadV1{
		RequestID: sent.RequestID,
		EventID:   testEventID,
		GuildID:   testGuildID,
		Code:      lineupevents.CodeConflict,
		Reason:    "version mismatch",
	})

	h.waitVersion(t, "v3")
	assert.Equal(t, 0, h.orch.PendingCount())
	assert.Equal(t, 2, h.fetcher.Calls())
}

func TestRemoteChangeReplaysPendingEditsOnTop(t *testing.T) {
	h := newHarness(t, benchedSnapshot("v1"))

	require.NoError(t, h.orch.Assign(context.Background(), 2, lineupdomain.SlotKey{Role: lineupdomain.RoleHealer, Position: 0}, false))

	// Another client seats the tank; our healer edit is still pending.
	serverSnap := benchedSnapshot("v2")
	serverSnap.Slots = []lineupdomain.SlotAssignment{{Key: "tank-0", SignupID: 1}}
	serverSnap.Bench = []sharedtypes.SignupID{2, 3}
	h.channel.Deliver(context.Background(), lineupevents.MsgLineupChanged, lineupevents.ChangedPayloadV1{
		RequestID: "someone-elses-request",
		EventID:   testEventID,
		GuildID:   testGuildID,
		Version:   "v2",
		Snapshot:  &serverSnap,
	})

	assert.Equal(t, 1, h.orch.PendingCount())
	snap := h.orch.Snapshot()
	require.Len(t, snap.Slots, 2)
	assert.Equal(t, []sharedtypes.SignupID{3}, snap.Bench)
}

func TestRemoteChangeDropsPendingEditThatNoLongerApplies(t *testing.T) {
	h := newHarness(t, benchedSnapshot("v1"))

	require.NoError(t, h.orch.Assign(context.Background(), 1, lineupdomain.SlotKey{Role: lineupdomain.RoleTank, Position: 0}, false))

	// Another client wins the same slot with a different signup. Our
	// pending assign now collides and is discarded on replay.
	serverSnap := benchedSnapshot("v2")
	serverSnap.Slots = []lineupdomain.SlotAssignment{{Key: "tank-0", SignupID: 3}}
	serverSnap.Bench = []sharedtypes.SignupID{1, 2}
	h.channel.Deliver(context.Background(), lineupevents.MsgLineupChanged, lineupevents.ChangedPayloadV1{
		RequestID: "someone-elses-request",
		EventID:   testEventID,
		GuildID:   testGuildID,
		Version:   "v2",
		Snapshot:  &serverSnap,
	})

	assert.Equal(t, 0, h.orch.PendingCount())
	snap := h.orch.Snapshot()
	require.Len(t, snap.Slots, 1)
	assert.Equal(t, sharedtypes.SignupID(3), snap.Slots[0].SignupID)
}

func TestReconnectRefetchesExactlyOnce(t *testing.T) {
	h := newHarness(t, benchedSnapshot("v1"))

	require.NoError(t, h.orch.Assign(context.Background(), 1, lineupdomain.SlotKey{Role: lineupdomain.RoleTank, Position: 0}, false))

	h.fetcher.SetSnapshot(benchedSnapshot("v4"))
	h.channel.SetConnected(false)
	h.channel.SetConnected(true)

	h.waitVersion(t, "v4")
	assert.Equal(t, 0, h.orch.PendingCount())
	assert.Equal(t, 2, h.fetcher.Calls())
	h.fetcher.ExpectNoFetch(t)
}

func TestReconnectDuringInFlightFetchStillRefetches(t *testing.T) {
	h := buildHarness(benchedSnapshot("v1"), officerMembership())
	h.fetcher.SetBlocking()
	require.NoError(t, h.orch.Start(context.Background(), testEventID, testGuildID, raiddomain.StatusScheduled))

	// The connection cycles while the initial snapshot fetch is parked,
	// so the reconnect's refetch coalesces against the stale one.
	h.channel.SetConnected(false)
	h.channel.SetConnected(true)

	h.fetcher.SetSnapshot(benchedSnapshot("v2"))
	h.fetcher.ReleaseFetch()
	h.fetcher.ReleaseFetch()

	h.waitVersion(t, "v2")
	assert.Equal(t, 2, h.fetcher.Calls())
	h.fetcher.ExpectNoFetch(t)
}

func TestFreezeDropsPendingAndRefetches(t *testing.T) {
	h := newHarness(t, benchedSnapshot("v1"))

	require.NoError(t, h.orch.Assign(context.Background(), 1, lineupdomain.SlotKey{Role: lineupdomain.RoleTank, Position: 0}, false))

	h.fetcher.SetSnapshot(benchedSnapshot("v5"))
	h.channel.Deliver(context.Background(), lineupevents.MsgStatusChanged, raidevents.RaidStatusChangedPayloadV1{
		EventID: testEventID,
		GuildID: testGuildID,
		From:    raiddomain.StatusScheduled,
		To:      raiddomain.StatusLocked,
	})

	h.waitVersion(t, "v5")
	assert.Equal(t, 0, h.orch.PendingCount())
}

func TestUnlockDoesNotRefetch(t *testing.T) {
	h := newHarness(t, benchedSnapshot("v1"))
	h.drainUpdates()

	h.channel.Deliver(context.Background(), lineupevents.MsgStatusChanged, raidevents.RaidStatusChangedPayloadV1{
		EventID: testEventID,
		GuildID: testGuildID,
		From:    raiddomain.StatusLocked,
		To:      raiddomain.StatusScheduled,
	})

	h.fetcher.ExpectNoFetch(t)
	assert.Equal(t, 1, h.fetcher.Calls())
}

func TestChangeForOtherEventIsIgnored(t *testing.T) {
	h := newHarness(t, benchedSnapshot("v1"))

	other := benchedSnapshot("v9")
	other.EventID = testEventID + 1
	h.channel.Deliver(context.Background(), lineupevents.MsgLineupChanged, lineupevents.ChangedPayloadV1{
		EventID:  testEventID + 1,
		GuildID:  testGuildID,
		Version:  "v9",
		Snapshot: &other,
	})

	assert.Equal(t, "v1", h.orch.Version())
}

func TestStopTearsDown(t *testing.T) {
	h := newHarness(t, benchedSnapshot("v1"))

	require.NoError(t, h.orch.Stop(context.Background()))

	assert.Equal(t, []sharedtypes.EventID{testEventID}, h.channel.leaves)
	assert.Equal(t, h.channel.acquires, h.channel.releases)
	assert.Equal(t, 0, h.channel.HandlerCount(lineupevents.MsgLineupChanged))
	assert.ErrorIs(t, h.orch.Assign(context.Background(), 1, lineupdomain.SlotKey{Role: lineupdomain.RoleTank, Position: 0}, false), ErrNotStarted)
}

func TestConfirmSendsRequestWithoutOptimisticState(t *testing.T) {
	h := newHarness(t, benchedSnapshot("v1"))

	require.NoError(t, h.orch.Confirm(context.Background()))

	var sent lineupevents.ConfirmRequestedPayloadV1
	msg := h.channel.LastSent(t, &sent)
	assert.Equal(t, lineupevents.MsgConfirmRequest, msg.Name)
	assert.Equal(t, testUserID, sent.RequestedBy)
	assert.Equal(t, 0, h.orch.PendingCount())
}

func TestApplyIntentBenchToSlotAssignsWithSwap(t *testing.T) {
	h := newHarness(t, benchedSnapshot("v1"))

	require.NoError(t, h.orch.ApplyIntent(context.Background(), dragdrop.Intent{
		ItemID:      1,
		SourceKey:   dragdrop.BenchKey,
		SourceIndex: 0,
		TargetKey:   "tank-0",
		TargetIndex: -1,
	}))

	var sent lineupevents.AssignRequestedPayloadV1
	msg := h.channel.LastSent(t, &sent)
	assert.Equal(t, lineupevents.MsgAssignRequest, msg.Name)
	assert.Equal(t, "tank-0", sent.Slot)
	assert.True(t, sent.Swap)
}

func TestApplyIntentSlotToBenchUnassigns(t *testing.T) {
	snap := benchedSnapshot("v1")
	snap.Slots = []lineupdomain.SlotAssignment{{Key: "tank-0", SignupID: 1}}
	snap.Bench = []sharedtypes.SignupID{2, 3}
	h := newHarness(t, snap)

	require.NoError(t, h.orch.ApplyIntent(context.Background(), dragdrop.Intent{
		ItemID:      1,
		SourceKey:   "tank-0",
		SourceIndex: -1,
		TargetKey:   dragdrop.BenchKey,
		TargetIndex: 0,
	}))

	var sent lineupevents.UnassignRequestedPayloadV1
	msg := h.channel.LastSent(t, &sent)
	assert.Equal(t, lineupevents.MsgUnassignRequest, msg.Name)
	assert.Equal(t, sharedtypes.SignupID(1), sent.SignupID)
}

func TestApplyIntentBenchReorder(t *testing.T) {
	h := newHarness(t, benchedSnapshot("v1"))

	// Drag signup 3 from the back of the bench to the front.
	require.NoError(t, h.orch.ApplyIntent(context.Background(), dragdrop.Intent{
		ItemID:      3,
		SourceKey:   dragdrop.BenchKey,
		SourceIndex: 2,
		TargetKey:   dragdrop.BenchKey,
		TargetIndex: 0,
	}))

	var sent lineupevents.BenchReorderRequestedPayloadV1
	msg := h.channel.LastSent(t, &sent)
	assert.Equal(t, lineupevents.MsgBenchReorderRequest, msg.Name)
	assert.Equal(t, []sharedtypes.SignupID{3, 1, 2}, sent.Order)
	assert.Equal(t, []sharedtypes.SignupID{3, 1, 2}, h.orch.Snapshot().Bench)
}

func TestApplyIntentDropOnOriginIsNoOp(t *testing.T) {
	h := newHarness(t, benchedSnapshot("v1"))

	require.NoError(t, h.orch.ApplyIntent(context.Background(), dragdrop.Intent{
		ItemID:      1,
		SourceKey:   dragdrop.BenchKey,
		SourceIndex: 0,
		TargetKey:   dragdrop.BenchKey,
		TargetIndex: 0,
	}))

	assert.Empty(t, h.channel.Sent())
	assert.Equal(t, 0, h.orch.PendingCount())
}
