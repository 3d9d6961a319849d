// Package guild assembles the guild module: roster persistence, the
// capability evaluator every other module authorizes through, and the
// guild REST surface.
package guild

import (
	"log/slog"

	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/trace"

	guildservice "github.com/hnaspl/woltk-calendar/app/modules/guild/application"
	guildhttp "github.com/hnaspl/woltk-calendar/app/modules/guild/infrastructure/httpapi"
	guilddb "github.com/hnaspl/woltk-calendar/app/modules/guild/infrastructure/repositories"
	"github.com/hnaspl/woltk-calendar/app/shared/metrics"
)

// Module bundles the guild service and its HTTP surface.
type Module struct {
	Service guildservice.Service
	API     *guildhttp.API
}

// NewGuildModule wires the guild module.
func NewGuildModule(
	db *bun.DB,
	logger *slog.Logger,
	serviceMetrics metrics.ServiceMetrics,
	tracer trace.Tracer,
) *Module {
	repo := &guilddb.GuildDBImpl{DB: db}
	service := guildservice.NewGuildService(repo, logger, serviceMetrics, tracer)

	return &Module{
		Service: service,
		API:     guildhttp.NewAPI(service, logger),
	}
}
