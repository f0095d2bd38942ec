package middleware

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pribylovaa/go-content-portal/internal/region"
	apierrors "github.com/pribylovaa/go-content-portal/internal/transport/http/errors"
	logctx "github.com/pribylovaa/go-content-portal/pkg/log"
)

// Region читает регион из параметра маршрута {region} и кладёт его в контекст
// (region.Into) и в request-scoped логгер. Неизвестный регион — 400.
// Без параметра в маршруте используется fallback.
func Region(fallback region.Region) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reg := fallback
			if raw := chi.URLParam(r, "region"); raw != "" {
				parsed, err := region.Parse(raw)
				if err != nil {
					apierrors.WriteError(w, r, fmt.Errorf("region %q: %w", raw, err))
					return
				}
				reg = parsed
			}

			ctx := region.Into(r.Context(), reg)
			ctx = logctx.With(ctx, slog.String("region", reg.Code()))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
