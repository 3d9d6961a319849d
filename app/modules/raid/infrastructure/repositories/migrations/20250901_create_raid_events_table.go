package migrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	raiddb "github.com/hnaspl/woltk-calendar/app/modules/raid/infrastructure/repositories"
)

func init() {
	Migrations.MustRegister(
		func(ctx context.Context, db *bun.DB) error {
			fmt.Println("Creating raid_events table...")
			if _, err := db.NewCreateTable().Model((*raiddb.RaidEvent)(nil)).IfNotExists().Exec(ctx); err != nil {
				return fmt.Errorf("failed to create raid_events table: %w", err)
			}
			if _, err := db.ExecContext(ctx, `
                CREATE INDEX IF NOT EXISTS idx_raid_events_guild_scheduled ON raid_events (guild_id, scheduled_at);
            `); err != nil {
				return fmt.Errorf("failed to index raid_events: %w", err)
			}
			fmt.Println("raid_events table created successfully!")
			return nil
		},
		func(ctx context.Context, db *bun.DB) error {
			fmt.Println("Dropping raid_events table...")
			if _, err := db.NewDropTable().Model((*raiddb.RaidEvent)(nil)).IfExists().Cascade().Exec(ctx); err != nil {
				return fmt.Errorf("failed to drop raid_events table: %w", err)
			}
			fmt.Println("raid_events table dropped successfully!")
			return nil
		},
	)
}
