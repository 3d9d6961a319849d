package signupservice

import (
	"context"
	"time"

	lineupdomain "github.com/hnaspl/woltk-calendar/app/modules/lineup/domain"
	raiddomain "github.com/hnaspl/woltk-calendar/app/modules/raid/domain"
	raiddb "github.com/hnaspl/woltk-calendar/app/modules/raid/infrastructure/repositories"
	signupdomain "github.com/hnaspl/woltk-calendar/app/modules/signup/domain"
	signupdb "github.com/hnaspl/woltk-calendar/app/modules/signup/infrastructure/repositories"
	sharedtypes "github.com/hnaspl/woltk-calendar/app/shared/types"
)

// FakeSignupRepository provides a programmable stub for the
// signupdb.Repository interface.
type FakeSignupRepository struct {
	trace []string

	GetSignupFunc    func(ctx context.Context, signupID sharedtypes.SignupID) (*signupdomain.Signup, error)
	CreateSignupFunc func(ctx context.Context, signup *signupdomain.Signup) error
	UpdateSignupFunc func(ctx context.Context, signupID sharedtypes.SignupID, role lineupdomain.Role, note string) error
	DeleteSignupFunc func(ctx context.Context, signupID sharedtypes.SignupID) error
	SetBannedFunc    func(ctx context.Context, signupID sharedtypes.SignupID, banned bool) error
	ListByEventFunc  func(ctx context.Context, eventID sharedtypes.EventID) ([]signupdomain.Signup, error)
	ListBannedFunc   func(ctx context.Context, eventID sharedtypes.EventID) ([]signupdomain.Signup, error)
}

func NewFakeSignupRepository() *FakeSignupRepository {
	return &FakeSignupRepository{trace: []string{}}
}

func (f *FakeSignupRepository) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeSignupRepository) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeSignupRepository) GetSignup(ctx context.Context, signupID sharedtypes.SignupID) (*signupdomain.Signup, error) {
	f.record("GetSignup")
	if f.GetSignupFunc != nil {
		return f.GetSignupFunc(ctx, signupID)
	}
	return nil, signupdb.ErrNotFound
}

func (f *FakeSignupRepository) CreateSignup(ctx context.Context, signup *signupdomain.Signup) error {
	f.record("CreateSignup")
	if f.CreateSignupFunc != nil {
		return f.CreateSignupFunc(ctx, signup)
	}
	signup.ID = 1
	signup.CreatedAt = time.Unix(0, 0).UTC()
	return nil
}

func (f *FakeSignupRepository) UpdateSignup(ctx context.Context, signupID sharedtypes.SignupID, role lineupdomain.Role, note string) error {
	f.record("UpdateSignup")
	if f.UpdateSignupFunc != nil {
		return f.UpdateSignupFunc(ctx, signupID, role, note)
	}
	return nil
}

func (f *FakeSignupRepository) DeleteSignup(ctx context.Context, signupID sharedtypes.SignupID) error {
	f.record("DeleteSignup")
	if f.DeleteSignupFunc != nil {
		return f.DeleteSignupFunc(ctx, signupID)
	}
	return nil
}

func (f *FakeSignupRepository) SetBanned(ctx context.Context, signupID sharedtypes.SignupID, banned bool) error {
	f.record("SetBanned")
	if f.SetBannedFunc != nil {
		return f.SetBannedFunc(ctx, signupID, banned)
	}
	return nil
}

func (f *FakeSignupRepository) ListByEvent(ctx context.Context, eventID sharedtypes.EventID) ([]signupdomain.Signup, error) {
	f.record("ListByEvent")
	if f.ListByEventFunc != nil {
		return f.ListByEventFunc(ctx, eventID)
	}
	return nil, nil
}

func (f *FakeSignupRepository) ListBanned(ctx context.Context, eventID sharedtypes.EventID) ([]signupdomain.Signup, error) {
	f.record("ListBanned")
	if f.ListBannedFunc != nil {
		return f.ListBannedFunc(ctx, eventID)
	}
	return nil, nil
}

var _ signupdb.Repository = (*FakeSignupRepository)(nil)

// FakeRaidRepository serves one event for the lifecycle gate.
type FakeRaidRepository struct {
	Event *raiddomain.RaidEvent
}

func (f *FakeRaidRepository) GetEvent(ctx context.Context, eventID sharedtypes.EventID) (*raiddomain.RaidEvent, error) {
	if f.Event == nil || f.Event.ID != eventID {
		return nil, raiddb.ErrNotFound
	}
	ev := *f.Event
	return &ev, nil
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

var _ raiddb.Repository = (*FakeRaidRepository)(nil)
