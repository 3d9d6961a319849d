package signupdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/driver/pgdriver"

	lineupdomain "github.com/hnaspl/woltk-calendar/app/modules/lineup/domain"
	signupdomain "github.com/hnaspl/woltk-calendar/app/modules/signup/domain"
	sharedtypes "github.com/hnaspl/woltk-calendar/app/shared/types"
)

var (
	// ErrNotFound is returned when a requested signup does not exist.
	ErrNotFound = errors.New("signupdb: not found")
	// ErrDuplicate is returned when the character already signed up for
	// the event.
	ErrDuplicate = errors.New("signupdb: duplicate signup")
)

type SignupDBImpl struct {
	DB *bun.DB
}

func (db *SignupDBImpl) GetSignup(ctx context.Context, signupID sharedtypes.SignupID) (*signupdomain.Signup, error) {
	var signup Signup
	err := db.DB.NewSelect().Model(&signup).Where("s.id = ?", signupID).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get signup %d: %w", signupID, err)
	}
	return signup.toDomain(), nil
}

func (db *SignupDBImpl) CreateSignup(ctx context.Context, signup *signupdomain.Signup) error {
	model := &Signup{
		EventID:     signup.EventID,
		GuildID:     signup.GuildID,
		UserID:      signup.UserID,
		CharacterID: signup.CharacterID,
		Role:        signup.Role,
		Note:        signup.Note,
	}
	if _, err := db.DB.NewInsert().Model(model).Exec(ctx); err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("create signup: %w", err)
	}
	signup.ID = model.ID
	signup.CreatedAt = model.CreatedAt
	return nil
}

func (db *SignupDBImpl) UpdateSignup(ctx context.Context, signupID sharedtypes.SignupID, role lineupdomain.Role, note string) error {
	res, err := db.DB.NewUpdate().Model(&Signup{}).
		Set("role = ?", role).
		Set("note = ?", note).
		Where("id = ?", signupID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("update signup %d: %w", signupID, err)
	}
	rows, err := res.RowsAffected()
	if err == nil && rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (db *SignupDBImpl) DeleteSignup(ctx context.Context, signupID sharedtypes.SignupID) error {
	res, err := db.DB.NewDelete().Model(&Signup{}).Where("id = ?", signupID).Exec(ctx)
	if err != nil {
		return fmt.Errorf("delete signup %d: %w", signupID, err)
	}
	rows, err := res.RowsAffected()
	if err == nil && rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (db *SignupDBImpl) SetBanned(ctx context.Context, signupID sharedtypes.SignupID, banned bool) error {
	res, err := db.DB.NewUpdate().Model(&Signup{}).
		Set("banned = ?", banned).
		Where("id = ?", signupID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("set banned signup=%d: %w", signupID, err)
	}
	rows, err := res.RowsAffected()
	if err == nil && rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (db *SignupDBImpl) ListByEvent(ctx context.Context, eventID sharedtypes.EventID) ([]signupdomain.Signup, error) {
	var rows []Signup
	err := db.DB.NewSelect().Model(&rows).
		Where("s.event_id = ?", eventID).
		Order("s.created_at ASC").
		Order("s.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("list signups event=%d: %w", eventID, err)
	}
	signups := make([]signupdomain.Signup, 0, len(rows))
	for i := range rows {
		signups = append(signups, *rows[i].toDomain())
	}
	return signups, nil
}

func (db *SignupDBImpl) ListBanned(ctx context.Context, eventID sharedtypes.EventID) ([]signupdomain.Signup, error) {
	var rows []Signup
	err := db.DB.NewSelect().Model(&rows).
		Where("s.event_id = ?", eventID).
		Where("s.banned").
		Order("s.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("list banned event=%d: %w", eventID, err)
	}
	signups := make([]signupdomain.Signup, 0, len(rows))
	for i := range rows {
		signups = append(signups, *rows[i].toDomain())
	}
	return signups, nil
}

// isUniqueViolation detects a Postgres duplicate-key error (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pgErr pgdriver.Error
	if errors.As(err, &pgErr) {
		return pgErr.Field('C') == "23505"
	}
	return false
}
