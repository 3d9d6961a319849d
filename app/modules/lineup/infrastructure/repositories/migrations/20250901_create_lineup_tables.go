package migrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	lineupdb "github.com/hnaspl/woltk-calendar/app/modules/lineup/infrastructure/repositories"
)

func init() {
	Migrations.MustRegister(
		func(ctx context.Context, db *bun.DB) error {
			fmt.Println("Creating lineup tables...")
			models := []interface{}{
				(*lineupdb.LineupState)(nil),
				(*lineupdb.LineupSlot)(nil),
			}
			for _, model := range models {
				if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
					return fmt.Errorf("failed to create lineup tables: %w", err)
				}
			}
			fmt.Println("lineup tables created successfully!")
			return nil
		},
		func(ctx context.Context, db *bun.DB) error {
			fmt.Println("Dropping lineup tables...")
			models := []interface{}{
				(*lineupdb.LineupSlot)(nil),
				(*lineupdb.LineupState)(nil),
			}
			for _, model := range models {
				if _, err := db.NewDropTable().Model(model).IfExists().Cascade().Exec(ctx); err != nil {
					return fmt.Errorf("failed to drop lineup tables: %w", err)
				}
			}
			fmt.Println("lineup tables dropped successfully!")
			return nil
		},
	)
}
