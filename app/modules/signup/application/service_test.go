package signupservice

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"

	raiddomain "github.com/hnaspl/woltk-calendar/app/modules/raid/domain"
	signupdomain "github.com/hnaspl/woltk-calendar/app/modules/signup/domain"
	signupevents "github.com/hnaspl/woltk-calendar/app/modules/signup/events"
	signupdb "github.com/hnaspl/woltk-calendar/app/modules/signup/infrastructure/repositories"
	"github.com/hnaspl/woltk-calendar/app/shared/metrics"
	sharedtypes "github.com/hnaspl/woltk-calendar/app/shared/types"
)

const testEventID sharedtypes.EventID = 100

func scheduledEvent() *raiddomain.RaidEvent {
	return &raiddomain.RaidEvent{
		ID:      testEventID,
		GuildID: 7,
		Title:   "Naxx clear",
		Size:    25,
		Status:  raiddomain.StatusScheduled,
	}
}

func newTestService(repo *FakeSignupRepository, raids *FakeRaidRepository) *SignupService {
	return NewSignupService(
		repo,
		raids,
		slog.New(slog.DiscardHandler),
		metrics.NoOpMetrics{},
		noop.NewTracerProvider().Tracer("test"),
	)
}

func TestCreateSignup(t *testing.T) {
	repo := NewFakeSignupRepository()
	svc := newTestService(repo, &FakeRaidRepository{Event: scheduledEvent()})

	result, err := svc.CreateSignup(context.Background(), signupevents.SignupCreateRequestedPayloadV1{
		EventID:     testEventID,
		UserID:      42,
		CharacterID: 9,
		Role:        "healer",
		Note:        "can swap to dps",
	})
	require.NoError(t, err)
	require.NotNil(t, result.Success)

	created := result.Success.(*signupevents.SignupCreatedPayloadV1)
	assert.Equal(t, sharedtypes.SignupID(1), created.Signup.ID)
	assert.Equal(t, sharedtypes.GuildID(7), created.GuildID)
	assert.Equal(t, "healer", string(created.Signup.Role))
	assert.Equal(t, []string{"CreateSignup"}, repo.Trace())
}

func TestCreateSignupRejectsUnknownRole(t *testing.T) {
	repo := NewFakeSignupRepository()
	svc := newTestService(repo, &FakeRaidRepository{Event: scheduledEvent()})

	result, err := svc.CreateSignup(context.Background(), signupevents.SignupCreateRequestedPayloadV1{
		EventID:     testEventID,
		CharacterID: 9,
		Role:        "bard",
	})
	require.NoError(t, err)
	assert.ErrorIs(t, result.Failure.(error), ErrInvalidRole)
	assert.Empty(t, repo.Trace())
}

func TestCreateSignupDuplicateCharacter(t *testing.T) {
	repo := NewFakeSignupRepository()
	repo.CreateSignupFunc = func(ctx context.Context, signup *signupdomain.Signup) error {
		return signupdb.ErrDuplicate
	}
	svc := newTestService(repo, &FakeRaidRepository{Event: scheduledEvent()})

	result, err := svc.CreateSignup(context.Background(), signupevents.SignupCreateRequestedPayloadV1{
		EventID:     testEventID,
		CharacterID: 9,
		Role:        "tank",
	})
	require.NoError(t, err)
	assert.ErrorIs(t, result.Failure.(error), ErrDuplicateSignup)
}

func TestCreateSignupRejectedOnLockedEvent(t *testing.T) {
	event := scheduledEvent()
	event.Status = raiddomain.StatusLocked
	svc := newTestService(NewFakeSignupRepository(), &FakeRaidRepository{Event: event})

	result, err := svc.CreateSignup(context.Background(), signupevents.SignupCreateRequestedPayloadV1{
		EventID:     testEventID,
		CharacterID: 9,
		Role:        "dps",
	})
	require.NoError(t, err)

	var violation *raiddomain.LifecycleViolationError
	require.ErrorAs(t, result.Failure.(error), &violation)
}

func TestWithdrawSignup(t *testing.T) {
	repo := NewFakeSignupRepository()
	repo.GetSignupFunc = func(ctx context.Context, signupID sharedtypes.SignupID) (*signupdomain.Signup, error) {
		return &signupdomain.Signup{ID: signupID, EventID: testEventID, GuildID: 7, CreatedAt: time.Now()}, nil
	}
	svc := newTestService(repo, &FakeRaidRepository{Event: scheduledEvent()})

	result, err := svc.WithdrawSignup(context.Background(), 5)
	require.NoError(t, err)
	require.NotNil(t, result.Success)

	withdrawn := result.Success.(*signupevents.SignupWithdrawnPayloadV1)
	assert.Equal(t, sharedtypes.SignupID(5), withdrawn.SignupID)
	assert.Equal(t, testEventID, withdrawn.EventID)
	assert.Equal(t, []string{"GetSignup", "DeleteSignup"}, repo.Trace())
}

func TestWithdrawUnknownSignup(t *testing.T) {
	svc := newTestService(NewFakeSignupRepository(), &FakeRaidRepository{Event: scheduledEvent()})

	result, err := svc.WithdrawSignup(context.Background(), 5)
	require.NoError(t, err)
	assert.ErrorIs(t, result.Failure.(error), ErrSignupNotFound)
}

func TestUpdateSignupRole(t *testing.T) {
	repo := NewFakeSignupRepository()
	repo.GetSignupFunc = func(ctx context.Context, signupID sharedtypes.SignupID) (*signupdomain.Signup, error) {
		return &signupdomain.Signup{ID: signupID, EventID: testEventID, GuildID: 7, Role: "dps"}, nil
	}
	svc := newTestService(repo, &FakeRaidRepository{Event: scheduledEvent()})

	result, err := svc.UpdateSignup(context.Background(), signupevents.SignupUpdateRequestedPayloadV1{
		SignupID: 5,
		Role:     "healer",
		Note:     "respecced",
	})
	require.NoError(t, err)
	require.NotNil(t, result.Success)

	updated := result.Success.(*signupevents.SignupUpdatedPayloadV1)
	assert.Equal(t, "healer", string(updated.Signup.Role))
	assert.Equal(t, "respecced", updated.Signup.Note)
}

func TestSetBannedIsIdempotent(t *testing.T) {
	repo := NewFakeSignupRepository()
	repo.GetSignupFunc = func(ctx context.Context, signupID sharedtypes.SignupID) (*signupdomain.Signup, error) {
		return &signupdomain.Signup{ID: signupID, EventID: testEventID, GuildID: 7, Banned: true}, nil
	}
	svc := newTestService(repo, &FakeRaidRepository{Event: scheduledEvent()})

	result, err := svc.SetBanned(context.Background(), 5, true)
	require.NoError(t, err)
	require.NotNil(t, result.Success)
	// Already banned: no write issued.
	assert.Equal(t, []string{"GetSignup"}, repo.Trace())
}

func TestSetBannedOnLockedEventStillApplies(t *testing.T) {
	event := scheduledEvent()
	event.Status = raiddomain.StatusLocked
	repo := NewFakeSignupRepository()
	repo.GetSignupFunc = func(ctx context.Context, signupID sharedtypes.SignupID) (*signupdomain.Signup, error) {
		return &signupdomain.Signup{ID: signupID, EventID: testEventID, GuildID: 7}, nil
	}
	svc := newTestService(repo, &FakeRaidRepository{Event: event})

	result, err := svc.SetBanned(context.Background(), 5, true)
	require.NoError(t, err)
	require.NotNil(t, result.Success)
	assert.True(t, result.Success.(*signupevents.SignupBanStatePayloadV1).Signup.Banned)
}
