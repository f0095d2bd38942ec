package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/pribylovaa/go-content-portal/internal/models"
	"github.com/pribylovaa/go-content-portal/internal/region"
	"github.com/pribylovaa/go-content-portal/internal/storage"
	"github.com/pribylovaa/go-content-portal/pkg/log"
)

// List возвращает последние видимые записи вида kind в регионе r
// (секции главной, ленты каруселей). Тип результата — []T view-модели вида.
//
// Правила нормализации:
//   - limit <= 0 -> cfg.Limits.Default;
//   - limit > max -> cfg.Limits.Max.
func (s *Service) List(ctx context.Context, kind models.Kind, r region.Region, limit int) (any, error) {
	switch kind {
	case models.KindNews:
		return list(ctx, s, newsSource, r, limit)
	case models.KindSupplier:
		return list(ctx, s, supplierSource, r, limit)
	case models.KindFoundry:
		return list(ctx, s, foundrySource, r, limit)
	case models.KindMaterial:
		return list(ctx, s, materialSource, r, limit)
	case models.KindEbook:
		return list(ctx, s, ebookSource, r, limit)
	case models.KindEvent:
		return list(ctx, s, eventSource, r, limit)
	default:
		return nil, fmt.Errorf("service.list.List: kind %q: %w", kind, ErrInvalidArgument)
	}
}

func list[T any](ctx context.Context, s *Service, src source[T], r region.Region, limit int) ([]T, error) {
	const op = "service.list.List"

	lg := log.From(ctx)
	lg.Info("list_request",
		slog.String("op", op),
		slog.String("kind", string(src.kind)),
		slog.String("region", r.Code()),
		slog.Int("limit", limit),
	)

	if limit <= 0 {
		limit = s.cfg.Limits.Default
	}
	if s.cfg.Limits.Max > 0 && limit > s.cfg.Limits.Max {
		limit = s.cfg.Limits.Max
	}

	items, err := src.fetch(ctx, s, storage.Query{Limit: limit}, r)
	if err != nil {
		if errors.Is(err, ErrInvalidArgument) {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		s.metrics.KindFailure(string(src.kind), "list")
		lg.Error("list_storage_error",
			slog.String("op", op),
			slog.String("kind", string(src.kind)),
			slog.String("err", err.Error()),
		)

		return nil, fmt.Errorf("%s: %w: %w", op, ErrUnavailable, err)
	}

	lg.Info("list_ok",
		slog.String("op", op),
		slog.String("kind", string(src.kind)),
		slog.Int("items", len(items)),
	)

	return items, nil
}
