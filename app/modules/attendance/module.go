// Package attendance assembles the attendance module: outcome tracking,
// summaries, the rate chart, the xlsx export, and the attendance REST
// surface.
package attendance

import (
	"log/slog"

	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/trace"

	attendanceservice "github.com/hnaspl/woltk-calendar/app/modules/attendance/application"
	attendancehttp "github.com/hnaspl/woltk-calendar/app/modules/attendance/infrastructure/httpapi"
	attendancedb "github.com/hnaspl/woltk-calendar/app/modules/attendance/infrastructure/repositories"
	guildservice "github.com/hnaspl/woltk-calendar/app/modules/guild/application"
	raiddb "github.com/hnaspl/woltk-calendar/app/modules/raid/infrastructure/repositories"
	"github.com/hnaspl/woltk-calendar/app/shared/metrics"
)

// Module bundles the attendance service and its HTTP surface.
type Module struct {
	Service attendanceservice.Service
	API     *attendancehttp.API
}

// NewAttendanceModule wires the attendance module. Outcome recording
// checks event lifecycle state through the raid repository.
func NewAttendanceModule(
	db *bun.DB,
	guilds guildservice.Service,
	raids raiddb.Repository,
	logger *slog.Logger,
	serviceMetrics metrics.ServiceMetrics,
	tracer trace.Tracer,
) *Module {
	repo := &attendancedb.AttendanceDBImpl{DB: db}
	service := attendanceservice.NewAttendanceService(repo, raids, logger, serviceMetrics, tracer)

	return &Module{
		Service: service,
		API:     attendancehttp.NewAPI(service, guilds, logger),
	}
}
