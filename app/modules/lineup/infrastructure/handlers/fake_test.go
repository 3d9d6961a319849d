package lineuphandlers

import (
	"context"

	guildservice "github.com/hnaspl/woltk-calendar/app/modules/guild/application"
	guilddomain "github.com/hnaspl/woltk-calendar/app/modules/guild/domain"
	lineupservice "github.com/hnaspl/woltk-calendar/app/modules/lineup/application"
	lineupdomain "github.com/hnaspl/woltk-calendar/app/modules/lineup/domain"
	"github.com/hnaspl/woltk-calendar/app/shared/results"
	sharedtypes "github.com/hnaspl/woltk-calendar/app/shared/types"
)

// FakeLineupService returns programmed results per operation.
type FakeLineupService struct {
	trace []string

	GetLineupResult    results.OperationResult
	AssignResult       results.OperationResult
	UnassignResult     results.OperationResult
	ReorderBenchResult results.OperationResult
	ReplaceResult      results.OperationResult
	ConfirmResult      results.OperationResult
	Err                error
}

func (f *FakeLineupService) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeLineupService) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeLineupService) GetLineup(ctx context.Context, eventID sharedtypes.EventID) (results.OperationResult, error) {
	f.record("GetLineup")
	return f.GetLineupResult, f.Err
}

func (f *FakeLineupService) Assign(ctx context.Context, eventID sharedtypes.EventID, signupID sharedtypes.SignupID, slot string, swap bool) (results.OperationResult, error) {
	f.record("Assign")
	return f.AssignResult, f.Err
}

func (f *FakeLineupService) Unassign(ctx context.Context, eventID sharedtypes.EventID, signupID sharedtypes.SignupID) (results.OperationResult, error) {
	f.record("Unassign")
	return f.UnassignResult, f.Err
}

func (f *FakeLineupService) ReorderBench(ctx context.Context, eventID sharedtypes.EventID, order []sharedtypes.SignupID) (results.OperationResult, error) {
	f.record("ReorderBench")
	return f.ReorderBenchResult, f.Err
}

func (f *FakeLineupService) Replace(ctx context.Context, eventID sharedtypes.EventID, grouped lineupdomain.Grouped) (results.OperationResult, error) {
	f.record("Replace")
	return f.ReplaceResult, f.Err
}

func (f *FakeLineupService) Confirm(ctx context.Context, eventID sharedtypes.EventID, userID sharedtypes.UserID) (results.OperationResult, error) {
	f.record("Confirm")
	return f.ConfirmResult, f.Err
}

var _ lineupservice.Service = (*FakeLineupService)(nil)

// FakeGuildService answers Authorize with a programmed outcome.
type FakeGuildService struct {
	Denied bool
	Err    error
}

func (f *FakeGuildService) Authorize(ctx context.Context, guildID sharedtypes.GuildID, userID sharedtypes.UserID, capability sharedtypes.Capability) (results.OperationResult, error) {
	if f.Err != nil {
		return results.OperationResult{}, f.Err
	}
	if f.Denied {
		return results.FailureResult(guildservice.ErrPermissionDenied), nil
	}
	return results.SuccessResult(&guildservice.Actor{}), nil
}

func (f *FakeGuildService) GetGuild(ctx context.Context, guildID sharedtypes.GuildID) (results.OperationResult, error) {
	return results.OperationResult{}, nil
}

func (f *FakeGuildService) ListMembers(ctx context.Context, guildID sharedtypes.GuildID) (results.OperationResult, error) {
	return results.OperationResult{}, nil
}

func (f *FakeGuildService) ListCharacters(ctx context.Context, guildID sharedtypes.GuildID, userID sharedtypes.UserID) (results.OperationResult, error) {
	return results.OperationResult{}, nil
}

func (f *FakeGuildService) CreateCharacter(ctx context.Context, character *guilddomain.Character) (results.OperationResult, error) {
	return results.OperationResult{}, nil
}

var _ guildservice.Service = (*FakeGuildService)(nil)

// FakeBroadcaster records room sends.
type FakeBroadcaster struct {
	EventSends []BroadcastCall
	GuildSends []BroadcastCall
	Err        error
}

type BroadcastCall struct {
	EventID sharedtypes.EventID
	GuildID sharedtypes.GuildID
	Name    string
	Payload any
}

func (f *FakeBroadcaster) ToEvent(ctx context.Context, eventID sharedtypes.EventID, name string, payload any) error {
	if f.Err != nil {
		return f.Err
	}
	f.EventSends = append(f.EventSends, BroadcastCall{EventID: eventID, Name: name, Payload: payload})
	return nil
}

func (f *FakeBroadcaster) ToGuild(ctx context.Context, guildID sharedtypes.GuildID, name string, payload any) error {
	if f.Err != nil {
		return f.Err
	}
	f.GuildSends = append(f.GuildSends, BroadcastCall{GuildID: guildID, Name: name, Payload: payload})
	return nil
}

var _ RoomBroadcaster = (*FakeBroadcaster)(nil)
