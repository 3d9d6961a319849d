package lineuphttp

import (
	"context"

	"github.com/ThreeDotsLabs/watermill/message"

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

func (f *FakeLineupService) GetLineup(ctx context.Context, eventID sharedtypes.EventID) (results.OperationResult, error) {
	f.trace = append(f.trace, "GetLineup")
	return f.GetLineupResult, f.Err
}

func (f *FakeLineupService) Assign(ctx context.Context, eventID sharedtypes.EventID, signupID sharedtypes.SignupID, slot string, swap bool) (results.OperationResult, error) {
	f.trace = append(f.trace, "Assign")
	return f.AssignResult, f.Err
}

func (f *FakeLineupService) Unassign(ctx context.Context, eventID sharedtypes.EventID, signupID sharedtypes.SignupID) (results.OperationResult, error) {
	f.trace = append(f.trace, "Unassign")
	return f.UnassignResult, f.Err
}

func (f *FakeLineupService) ReorderBench(ctx context.Context, eventID sharedtypes.EventID, order []sharedtypes.SignupID) (results.OperationResult, error) {
	f.trace = append(f.trace, "ReorderBench")
	return f.ReorderBenchResult, f.Err
}

func (f *FakeLineupService) Replace(ctx context.Context, eventID sharedtypes.EventID, grouped lineupdomain.Grouped) (results.OperationResult, error) {
	f.trace = append(f.trace, "Replace")
	return f.ReplaceResult, f.Err
}

func (f *FakeLineupService) Confirm(ctx context.Context, eventID sharedtypes.EventID, userID sharedtypes.UserID) (results.OperationResult, error) {
	f.trace = append(f.trace, "Confirm")
	return f.ConfirmResult, f.Err
}

var _ lineupservice.Service = (*FakeLineupService)(nil)

// FakeGuildService answers Authorize with a programmed outcome.
type FakeGuildService struct {
	Denied bool
}

func (f *FakeGuildService) Authorize(ctx context.Context, guildID sharedtypes.GuildID, userID sharedtypes.UserID, capability sharedtypes.Capability) (results.OperationResult, error) {
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

// FakePublisher records bus publishes.
type FakePublisher struct {
	published []publishedMessage
}

type publishedMessage struct {
	Topic string
	Msg   *message.Message
}

func (f *FakePublisher) Publish(ctx context.Context, topic string, msg *message.Message) error {
	f.published = append(f.published, publishedMessage{Topic: topic, Msg: msg})
	return nil
}
