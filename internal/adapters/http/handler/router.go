package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/ogurasousui/shift-scheduler/internal/core/export"
	"github.com/ogurasousui/shift-scheduler/internal/core/schedule"
	"github.com/ogurasousui/shift-scheduler/internal/core/shift"
	"github.com/ogurasousui/shift-scheduler/internal/core/staff"
	"github.com/ogurasousui/shift-scheduler/internal/platform/metrics"
)

// Dependencies はルーターが必要とするユースケースと基盤です。
type Dependencies struct {
	Staff       staff.UseCase
	Shifts      shift.UseCase
	Scheduler   schedule.UseCase
	Exporter    export.UseCase
	DB          Pinger
	Logger      *zap.Logger
	Metrics     *metrics.Metrics
	Gatherer    prometheus.Gatherer
	CORSOrigins []string
}

// NewRouter は HTTP API のルーティングを構築します。
func NewRouter(deps Dependencies) http.Handler {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	staffHandler := NewStaffHandler(deps.Staff, logger)
	shiftHandler := NewShiftHandler(deps.Shifts, logger)
	scheduleHandler := NewScheduleHandler(deps.Scheduler, deps.Exporter, deps.Metrics, logger)

	r := chi.NewRouter()
	r.Use(
		RequestID(logger),
		Recoverer(logger),
		Logging(logger),
		CORS(deps.CORSOrigins),
		chimw.StripSlashes,
		Metrics(deps.Metrics),
	)

	r.Get("/healthz", Healthz)
	r.Get("/readyz", Readyz(deps.DB, logger))
	if deps.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api", func(r chi.Router) {
		r.Route("/staff", func(r chi.Router) {
			r.Post("/", staffHandler.Create)
			r.Get("/", staffHandler.List)
			r.Get("/{id}", staffHandler.Get)
			r.Put("/{id}", staffHandler.Update)
			r.Delete("/{id}", staffHandler.Delete)
		})
		r.Route("/shifts", func(r chi.Router) {
			r.Post("/", shiftHandler.Create)
			r.Get("/", shiftHandler.List)
			r.Get("/{id}", shiftHandler.Get)
			r.Put("/{id}", shiftHandler.Update)
			r.Delete("/{id}", shiftHandler.Delete)
		})
		r.Route("/schedule", func(r chi.Router) {
			r.Get("/export", scheduleHandler.Export)
			r.Post("/auto", scheduleHandler.AutoSchedule)
		})
	})

	return r
}
