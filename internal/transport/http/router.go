// http собирает HTTP API портала на chi.
package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pribylovaa/go-content-portal/internal/metrics"
	"github.com/pribylovaa/go-content-portal/internal/region"
	"github.com/pribylovaa/go-content-portal/internal/transport/http/handlers"
	"github.com/pribylovaa/go-content-portal/internal/transport/http/middleware"
)

// Options — параметры сборки HTTP-роутера.
type Options struct {
	Logger   *slog.Logger
	Metrics  *metrics.Metrics
	Timeout  time.Duration
	BasePath string // например, "/api"; если пустой — роуты регистрируются на корне.
	// DefaultRegion — регион для маршрутов без {region} (по умолчанию region.Default).
	DefaultRegion region.Region
}

// NewRouter собирает http.Handler с chi и подключёнными middleware/роутами.
func NewRouter(p handlers.Portal, opts Options) http.Handler {
	root := chi.NewRouter()

	// Middleware (внешний -> внутренний).
	root.Use(
		middleware.Recover(opts.Logger), // безопасно ловим паники
		middleware.RequestID(),          // формируем/прокидываем X-Request-Id (до логирования!)
		middleware.Logging(opts.Logger), // кладём request-scoped логгер в контекст и логируем
		middleware.Metrics(opts.Metrics),
	)
	if opts.Timeout > 0 {
		root.Use(middleware.Timeout(opts.Timeout)) // общий дедлайн запроса
	}

	fallback := opts.DefaultRegion
	if !fallback.Valid() {
		fallback = region.Default
	}

	h := handlers.New(p)

	if opts.BasePath != "" {
		sub := chi.NewRouter()
		registerRoutes(sub, h, fallback)
		root.Mount(opts.BasePath, sub)
		return root
	}

	registerRoutes(root, h, fallback)
	return root
}

// registerRoutes — единая точка регистрации всех REST-эндпойнтов.
// Статические сегменты (search, leads) у chi приоритетнее {kind}.
func registerRoutes(r chi.Router, h *handlers.Handlers, fallback region.Region) {
	r.With(middleware.Region(fallback)).Get("/regions", h.Regions)

	r.Route("/{region}", func(r chi.Router) {
		r.Use(middleware.Region(fallback))

		r.Get("/search", h.Search)
		r.Post("/leads", h.CaptureLead)

		r.Get("/{kind}", h.List)
		r.Get("/{kind}/{id}", h.ByID)
		r.Post("/{kind}/{id}/download", h.RequestDownload)
	})
}
