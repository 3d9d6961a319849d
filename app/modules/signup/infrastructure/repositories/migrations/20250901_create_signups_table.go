package migrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	signupdb "github.com/hnaspl/woltk-calendar/app/modules/signup/infrastructure/repositories"
)

func init() {
	Migrations.MustRegister(
		func(ctx context.Context, db *bun.DB) error {
			fmt.Println("Creating signups table...")
			if _, err := db.NewCreateTable().Model((*signupdb.Signup)(nil)).IfNotExists().Exec(ctx); err != nil {
				return fmt.Errorf("failed to create signups table: %w", err)
			}
			if _, err := db.ExecContext(ctx, `
                CREATE INDEX IF NOT EXISTS idx_signups_event ON signups (event_id);
            `); err != nil {
				return fmt.Errorf("failed to index signups: %w", err)
			}
			fmt.Println("signups table created successfully!")
			return nil
		},
		func(ctx context.Context, db *bun.DB) error {
			fmt.Println("Dropping signups table...")
			if _, err := db.NewDropTable().Model((*signupdb.Signup)(nil)).IfExists().Cascade().Exec(ctx); err != nil {
				return fmt.Errorf("failed to drop signups table: %w", err)
			}
			fmt.Println("signups table dropped successfully!")
			return nil
		},
	)
}
