package attendanceservice

import (
	"context"
	"time"

	attendancedomain "github.com/hnaspl/woltk-calendar/app/modules/attendance/domain"
	raiddomain "github.com/hnaspl/woltk-calendar/app/modules/raid/domain"
	raiddb "github.com/hnaspl/woltk-calendar/app/modules/raid/infrastructure/repositories"
	sharedtypes "github.com/hnaspl/woltk-calendar/app/shared/types"
)

// FakeAttendanceRepository provides a programmable stub for the
// attendancedb.Repository interface.
type FakeAttendanceRepository struct {
	trace []string

	UpsertFunc      func(ctx context.Context, record *attendancedomain.Record) error
	ListByEventFunc func(ctx context.Context, eventID sharedtypes.EventID) ([]attendancedomain.Record, error)
	SummarizeFunc   func(ctx context.Context, guildID sharedtypes.GuildID) ([]attendancedomain.CharacterSummary, error)
}

func NewFakeAttendanceRepository() *FakeAttendanceRepository {
	return &FakeAttendanceRepository{trace: []string{}}
}

func (f *FakeAttendanceRepository) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeAttendanceRepository) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeAttendanceRepository) Upsert(ctx context.Context, record *attendancedomain.Record) error {
	f.record("Upsert")
	if f.UpsertFunc != nil {
		return f.UpsertFunc(ctx, record)
	}
	record.ID = 1
	record.RecordedAt = time.Now().UTC()
	return nil
}

func (f *FakeAttendanceRepository) ListByEvent(ctx context.Context, eventID sharedtypes.EventID) ([]attendancedomain.Record, error) {
	f.record("ListByEvent")
	if f.ListByEventFunc != nil {
		return f.ListByEventFunc(ctx, eventID)
	}
	return nil, nil
}

func (f *FakeAttendanceRepository) Summarize(ctx context.Context, guildID sharedtypes.GuildID) ([]attendancedomain.CharacterSummary, error) {
	f.record("Summarize")
	if f.SummarizeFunc != nil {
		return f.SummarizeFunc(ctx, guildID)
	}
	return nil, nil
}

// FakeRaidRepository stubs the raid repository so attendance tests can
// control the event an outcome is recorded against.
type FakeRaidRepository struct {
	GetEventFunc func(ctx context.Context, eventID sharedtypes.EventID) (*raiddomain.RaidEvent, error)
}

func (f *FakeRaidRepository) GetEvent(ctx context.Context, eventID sharedtypes.EventID) (*raiddomain.RaidEvent, error) {
	if f.GetEventFunc != nil {
		return f.GetEventFunc(ctx, eventID)
	}
	return nil, raiddb.ErrNotFound
}

func (f *FakeRaidRepository) CreateEvent(ctx context.Context, event *raiddomain.RaidEvent) error {
	return nil
}

func (f *FakeRaidRepository) UpdateEvent(ctx context.Context, event *raiddomain.RaidEvent) error {
	return nil
}

func (f *FakeRaidRepository) UpdateStatus(ctx context.Context, eventID sharedtypes.EventID, from, to raiddomain.EventStatus) error {
	return nil
}

func (f *FakeRaidRepository) ListUpcoming(ctx context.Context, guildID sharedtypes.GuildID, after time.Time) ([]raiddomain.RaidEvent, error) {
	return nil, nil
}
