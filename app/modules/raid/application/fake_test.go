package raidservice

import (
	"context"
	"time"

	raiddomain "github.com/hnaspl/woltk-calendar/app/modules/raid/domain"
	raiddb "github.com/hnaspl/woltk-calendar/app/modules/raid/infrastructure/repositories"
	raidtime "github.com/hnaspl/woltk-calendar/app/modules/raid/timeutil"
	sharedtypes "github.com/hnaspl/woltk-calendar/app/shared/types"
)

// FakeRaidRepository provides a programmable stub for the raiddb.Repository
// interface.
type FakeRaidRepository struct {
	trace []string

	GetEventFunc     func(ctx context.Context, eventID sharedtypes.EventID) (*raiddomain.RaidEvent, error)
	CreateEventFunc  func(ctx context.Context, event *raiddomain.RaidEvent) error
	UpdateEventFunc  func(ctx context.Context, event *raiddomain.RaidEvent) error
	UpdateStatusFunc func(ctx context.Context, eventID sharedtypes.EventID, from, to raiddomain.EventStatus) error
	ListUpcomingFunc func(ctx context.Context, guildID sharedtypes.GuildID, after time.Time) ([]raiddomain.RaidEvent, error)
}

func NewFakeRaidRepository() *FakeRaidRepository {
	return &FakeRaidRepository{trace: []string{}}
}

func (f *FakeRaidRepository) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeRaidRepository) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeRaidRepository) GetEvent(ctx context.Context, eventID sharedtypes.EventID) (*raiddomain.RaidEvent, error) {
	f.record("GetEvent")
	if f.GetEventFunc != nil {
		return f.GetEventFunc(ctx, eventID)
	}
	return nil, raiddb.ErrNotFound
}

func (f *FakeRaidRepository) CreateEvent(ctx context.Context, event *raiddomain.RaidEvent) error {
	f.record("CreateEvent")
	if f.CreateEventFunc != nil {
		return f.CreateEventFunc(ctx, event)
	}
	event.ID = 1
	return nil
}

func (f *FakeRaidRepository) UpdateEvent(ctx context.Context, event *raiddomain.RaidEvent) error {
	f.record("UpdateEvent")
	if f.UpdateEventFunc != nil {
		return f.UpdateEventFunc(ctx, event)
	}
	return nil
}

func (f *FakeRaidRepository) UpdateStatus(ctx context.Context, eventID sharedtypes.EventID, from, to raiddomain.EventStatus) error {
	f.record("UpdateStatus")
	if f.UpdateStatusFunc != nil {
		return f.UpdateStatusFunc(ctx, eventID, from, to)
	}
	return nil
}

func (f *FakeRaidRepository) ListUpcoming(ctx context.Context, guildID sharedtypes.GuildID, after time.Time) ([]raiddomain.RaidEvent, error) {
	f.record("ListUpcoming")
	if f.ListUpcomingFunc != nil {
		return f.ListUpcomingFunc(ctx, guildID, after)
	}
	return nil, nil
}

var _ raiddb.Repository = (*FakeRaidRepository)(nil)

// FakeTimeParser returns a fixed time or error.
type FakeTimeParser struct {
	Result time.Time
	Err    error
}

func (f *FakeTimeParser) ResolveTimezone(input string) (string, bool) {
	return input, true
}

func (f *FakeTimeParser) ParseScheduleInput(input string, timezone string, clock raidtime.Clock) (time.Time, error) {
	if f.Err != nil {
		return time.Time{}, f.Err
	}
	return f.Result, nil
}

var _ raidtime.TimeParserInterface = (*FakeTimeParser)(nil)
