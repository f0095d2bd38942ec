package middleware

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	apierrors "github.com/pribylovaa/go-content-portal/internal/transport/http/errors"
)

// Recover перехватывает panic, отвечает 500/internal и пишет запись panic
// с регионом, шаблоном маршрута и request_id. Детали паники клиенту не отдаются.
//
// Стоит снаружи Logging и Region, поэтому регион и маршрут берутся из
// chi.RouteContext (он заполняется по ходу маршрутизации), а request_id из
// заголовка ответа.
func Recover(l *slog.Logger) Middleware {
	if l == nil {
		l = slog.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}

				attrs := []slog.Attr{
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.Any("reason", rec),
				}
				if rctx := chi.RouteContext(r.Context()); rctx != nil {
					attrs = append(attrs,
						slog.String("route", rctx.RoutePattern()),
						slog.String("region", rctx.URLParam("region")),
					)
				}
				if rid := w.Header().Get("X-Request-Id"); rid != "" {
					attrs = append(attrs, slog.String("request_id", rid))
				}

				l.LogAttrs(r.Context(), slog.LevelError, "panic", attrs...)
				apierrors.WriteError(w, r, fmt.Errorf("internal"))
			}()
			next.ServeHTTP(w, r)
		})
	}
}
