package lineupservice

import (
	"context"
	"time"

	lineupdomain "github.com/hnaspl/woltk-calendar/app/modules/lineup/domain"
	lineupdb "github.com/hnaspl/woltk-calendar/app/modules/lineup/infrastructure/repositories"
	raiddomain "github.com/hnaspl/woltk-calendar/app/modules/raid/domain"
	raiddb "github.com/hnaspl/woltk-calendar/app/modules/raid/infrastructure/repositories"
	signupdomain "github.com/hnaspl/woltk-calendar/app/modules/signup/domain"
	signupdb "github.com/hnaspl/woltk-calendar/app/modules/signup/infrastructure/repositories"
	sharedtypes "github.com/hnaspl/woltk-calendar/app/shared/types"
)

// FakeLineupRepository keeps one stored lineup in memory and enforces the
// version guard the way the real repository does.
type FakeLineupRepository struct {
	Stored      lineupdb.StoredLineup
	SaveErr     error
	ConfirmedBy []sharedtypes.UserID
}

func (f *FakeLineupRepository) GetLineup(ctx context.Context, eventID sharedtypes.EventID) (*lineupdb.StoredLineup, error) {
	stored := f.Stored
	stored.EventID = eventID
	return &stored, nil
}

func (f *FakeLineupRepository) SaveLineup(ctx context.Context, snapshot lineupdomain.Snapshot, expectedVersion string) error {
	if f.SaveErr != nil {
		return f.SaveErr
	}
	if f.Stored.Version != expectedVersion {
		return lineupdb.ErrVersionMismatch
	}
	f.Stored = lineupdb.StoredLineup{
		EventID: snapshot.EventID,
		Slots:   snapshot.Slots,
		Bench:   snapshot.Bench,
		Version: snapshot.Version,
	}
	return nil
}

func (f *FakeLineupRepository) Confirm(ctx context.Context, eventID sharedtypes.EventID, userID sharedtypes.UserID) error {
	f.ConfirmedBy = append(f.ConfirmedBy, userID)
	return nil
}

var _ lineupdb.Repository = (*FakeLineupRepository)(nil)

// FakeSignupRepository serves a fixed signup list.
type FakeSignupRepository struct {
	Signups []signupdomain.Signup
}

func (f *FakeSignupRepository) GetSignup(ctx context.Context, signupID sharedtypes.SignupID) (*signupdomain.Signup, error) {
	for i := range f.Signups {
		if f.Signups[i].ID == signupID {
			return &f.Signups[i], nil
		}
	}
	return nil, signupdb.ErrNotFound
}

func (f *FakeSignupRepository) CreateSignup(ctx context.Context, signup *signupdomain.Signup) error {
	f.Signups = append(f.Signups, *signup)
	return nil
}

func (f *FakeSignupRepository) UpdateSignup(ctx context.Context, signupID sharedtypes.SignupID, role lineupdomain.Role, note string) error {
	return nil
}

func (f *FakeSignupRepository) DeleteSignup(ctx context.Context, signupID sharedtypes.SignupID) error {
	return nil
}

func (f *FakeSignupRepository) SetBanned(ctx context.Context, signupID sharedtypes.SignupID, banned bool) error {
	return nil
}

func (f *FakeSignupRepository) ListByEvent(ctx context.Context, eventID sharedtypes.EventID) ([]signupdomain.Signup, error) {
	return f.Signups, nil
}

func (f *FakeSignupRepository) ListBanned(ctx context.Context, eventID sharedtypes.EventID) ([]signupdomain.Signup, error) {
	var banned []signupdomain.Signup
	for _, s := range f.Signups {
		if s.Banned {
			banned = append(banned, s)
		}
	}
	return banned, nil
}

var _ signupdb.Repository = (*FakeSignupRepository)(nil)

// FakeRaidRepository serves a fixed raid event.
type FakeRaidRepository struct {
	Event *raiddomain.RaidEvent
}

func (f *FakeRaidRepository) GetEvent(ctx context.Context, eventID sharedtypes.EventID) (*raiddomain.RaidEvent, error) {
	if f.Event == nil {
		return nil, raiddb.ErrNotFound
	}
	event := *f.Event
	return &event, nil
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
