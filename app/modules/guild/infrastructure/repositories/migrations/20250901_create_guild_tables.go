package migrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	guilddb "github.com/hnaspl/woltk-calendar/app/modules/guild/infrastructure/repositories"
)

func init() {
	Migrations.MustRegister(
		func(ctx context.Context, db *bun.DB) error {
			fmt.Println("Creating guild tables...")
			models := []interface{}{
				(*guilddb.Guild)(nil),
				(*guilddb.User)(nil),
				(*guilddb.Membership)(nil),
				(*guilddb.Character)(nil),
			}
			for _, model := range models {
				if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
					return fmt.Errorf("failed to create guild tables: %w", err)
				}
			}
			if _, err := db.ExecContext(ctx, `
                CREATE INDEX IF NOT EXISTS idx_characters_guild_user ON characters (guild_id, user_id);
            `); err != nil {
				return fmt.Errorf("failed to index characters: %w", err)
			}
			fmt.Println("guild tables created successfully!")
			return nil
		},
		func(ctx context.Context, db *bun.DB) error {
			fmt.Println("Dropping guild tables...")
			models := []interface{}{
				(*guilddb.Character)(nil),
				(*guilddb.Membership)(nil),
				(*guilddb.User)(nil),
				(*guilddb.Guild)(nil),
			}
			for _, model := range models {
				if _, err := db.NewDropTable().Model(model).IfExists().Cascade().Exec(ctx); err != nil {
					return fmt.Errorf("failed to drop guild tables: %w", err)
				}
			}
			fmt.Println("guild tables dropped successfully!")
			return nil
		},
	)
}
