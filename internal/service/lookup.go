package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/pribylovaa/go-content-portal/internal/models"
	"github.com/pribylovaa/go-content-portal/internal/region"
	"github.com/pribylovaa/go-content-portal/internal/storage"
	"github.com/pribylovaa/go-content-portal/pkg/log"
)

// categoryColumn — колонка категории, по которой подбираются связанные материалы.
const categoryColumn = "category"

// ByID возвращает сущность вида kind с идентификатором id в регионе r
// вместе со связанными материалами. Тип результата — *models.Detail[T]
// для соответствующей view-модели.
//
// Ошибки:
//   - ErrInvalidArgument — неизвестный вид контента или регион;
//   - ErrNotFound — записи нет, она скрыта или принадлежит другому региону;
//   - ErrUnavailable — хранилище недоступно.
func (s *Service) ByID(ctx context.Context, kind models.Kind, id string, r region.Region) (any, error) {
	switch kind {
	case models.KindNews:
		return s.NewsByID(ctx, id, r)
	case models.KindSupplier:
		return s.SupplierByID(ctx, id, r)
	case models.KindFoundry:
		return s.FoundryByID(ctx, id, r)
	case models.KindMaterial:
		return s.MaterialByID(ctx, id, r)
	case models.KindEbook:
		return s.EbookByID(ctx, id, r)
	case models.KindEvent:
		return s.EventByID(ctx, id, r)
	default:
		return nil, fmt.Errorf("service.lookup.ByID: kind %q: %w", kind, ErrInvalidArgument)
	}
}

// NewsByID возвращает новость региона r.
func (s *Service) NewsByID(ctx context.Context, id string, r region.Region) (*models.Detail[models.NewsItem], error) {
	return lookup(ctx, s, newsSource, id, r)
}

// SupplierByID возвращает поставщика региона r.
func (s *Service) SupplierByID(ctx context.Context, id string, r region.Region) (*models.Detail[models.Supplier], error) {
	return lookup(ctx, s, supplierSource, id, r)
}

// FoundryByID возвращает литейное производство региона r.
func (s *Service) FoundryByID(ctx context.Context, id string, r region.Region) (*models.Detail[models.Foundry], error) {
	return lookup(ctx, s, foundrySource, id, r)
}

// MaterialByID возвращает технический материал региона r.
func (s *Service) MaterialByID(ctx context.Context, id string, r region.Region) (*models.Detail[models.TechnicalMaterial], error) {
	return lookup(ctx, s, materialSource, id, r)
}

// EbookByID возвращает e-book региона r.
func (s *Service) EbookByID(ctx context.Context, id string, r region.Region) (*models.Detail[models.Ebook], error) {
	return lookup(ctx, s, ebookSource, id, r)
}

// EventByID возвращает событие региона r.
func (s *Service) EventByID(ctx context.Context, id string, r region.Region) (*models.Detail[models.Event], error) {
	return lookup(ctx, s, eventSource, id, r)
}

// lookup — поиск по id с обязательным фильтром региона.
// Запись другого региона неотличима от отсутствующей.
func lookup[T any](ctx context.Context, s *Service, src source[T], id string, r region.Region) (*models.Detail[T], error) {
	const op = "service.lookup.ByID"

	lg := log.From(ctx)
	lg.Info("by_id_request",
		slog.String("op", op),
		slog.String("kind", string(src.kind)),
		slog.String("id", id),
		slog.String("region", r.Code()),
	)

	rec, err := one(ctx, s, src, id, r)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			lg.Warn("by_id_not_found",
				slog.String("op", op),
				slog.String("kind", string(src.kind)),
				slog.String("id", id),
			)
		case errors.Is(err, ErrInvalidArgument):
		default:
			lg.Error("by_id_storage_error",
				slog.String("op", op),
				slog.String("kind", string(src.kind)),
				slog.String("id", id),
				slog.String("err", err.Error()),
			)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	detail := &models.Detail[T]{
		Item:    src.mapRaw(rec, r),
		Related: related(ctx, s, src, rec, r),
	}

	lg.Info("by_id_ok",
		slog.String("op", op),
		slog.String("kind", string(src.kind)),
		slog.String("id", id),
		slog.Int("related", len(detail.Related)),
	)

	return detail, nil
}

// one возвращает сырую запись вида по id в регионе r.
//
// Ошибки: ErrInvalidArgument, ErrNotFound, ErrUnavailable.
func one[T any](ctx context.Context, s *Service, src source[T], id string, r region.Region) (storage.Record, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrNotFound
	}

	q := storage.Query{
		Filters: []storage.Filter{storage.Eq("id", id)},
		Limit:   1,
	}
	recs, err := src.records(ctx, s, q, r)
	switch {
	case errors.Is(err, ErrInvalidArgument):
		return nil, err
	case errors.Is(err, storage.ErrNotFound):
		return nil, ErrNotFound
	case err != nil:
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	case len(recs) == 0:
		return nil, ErrNotFound
	}

	return recs[0], nil
}

// related — другие записи той же категории в том же регионе, без самой записи.
// Сбой логируется и даёт пустой список: обогащение не блокирует основной контент.
func related[T any](ctx context.Context, s *Service, src source[T], rec storage.Record, r region.Region) []T {
	const op = "service.lookup.related"

	limit := s.cfg.Search.RelatedLimit
	cat, _ := rec[categoryColumn].(string)
	if limit <= 0 || cat == "" {
		return []T{}
	}

	filters := []storage.Filter{storage.Eq(categoryColumn, cat)}
	if id := rec["id"]; id != nil {
		filters = append(filters, storage.Neq("id", id))
	}

	items, err := src.fetch(ctx, s, storage.Query{Filters: filters, Limit: limit}, r)
	if err != nil {
		s.metrics.KindFailure(string(src.kind), "related")
		log.From(ctx).Warn("related_failed",
			slog.String("op", op),
			slog.String("kind", string(src.kind)),
			slog.String("region", r.Code()),
			slog.String("err", (&KindError{Kind: src.kind, Err: err}).Error()),
		)

		return []T{}
	}

	return items
}
