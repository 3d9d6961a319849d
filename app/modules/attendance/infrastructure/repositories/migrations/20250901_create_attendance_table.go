package migrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	attendancedb "github.com/hnaspl/woltk-calendar/app/modules/attendance/infrastructure/repositories"
)

func init() {
	Migrations.MustRegister(
		func(ctx context.Context, db *bun.DB) error {
			fmt.Println("Creating attendance table...")
			if _, err := db.NewCreateTable().Model((*attendancedb.Attendance)(nil)).IfNotExists().Exec(ctx); err != nil {
				return fmt.Errorf("failed to create attendance table: %w", err)
			}
			if _, err := db.ExecContext(ctx, `
                CREATE INDEX IF NOT EXISTS idx_attendance_guild ON attendance (guild_id);
            `); err != nil {
				return fmt.Errorf("failed to index attendance: %w", err)
			}
			fmt.Println("attendance table created successfully!")
			return nil
		},
		func(ctx context.Context, db *bun.DB) error {
			fmt.Println("Dropping attendance table...")
			if _, err := db.NewDropTable().Model((*attendancedb.Attendance)(nil)).IfExists().Cascade().Exec(ctx); err != nil {
				return fmt.Errorf("failed to drop attendance table: %w", err)
			}
			fmt.Println("attendance table dropped successfully!")
			return nil
		},
	)
}
