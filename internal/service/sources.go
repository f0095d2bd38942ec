package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pribylovaa/go-content-portal/internal/mapper"
	"github.com/pribylovaa/go-content-portal/internal/models"
	"github.com/pribylovaa/go-content-portal/internal/region"
	"github.com/pribylovaa/go-content-portal/internal/storage"
	"github.com/pribylovaa/go-content-portal/pkg/log"
)

// source — описание одного вида контента: коллекция, политика видимости,
// поля текстового поиска, порядок и маппер.
// Политики видимости у видов разные и намеренно не унифицируются.
type source[T any] struct {
	kind       models.Kind
	collection string
	visibility storage.Filter
	fields     []string
	order      storage.Order
	mapRaw     func(storage.Record, region.Region) T
}

var (
	newsSource = source[models.NewsItem]{
		kind:       models.KindNews,
		collection: "news",
		visibility: storage.Eq("status", "published"),
		fields:     []string{"title", "summary", "category"},
		order:      storage.Order{Column: "publish_date", Desc: true},
		mapRaw:     mapper.News,
	}
	supplierSource = source[models.Supplier]{
		kind:       models.KindSupplier,
		collection: "suppliers",
		visibility: storage.Eq("status", "active"),
		fields:     []string{"name", "description", "category", "location"},
		order:      storage.Order{Column: "created_at", Desc: true},
		mapRaw:     mapper.Supplier,
	}
	// Литейные без статуса видимы: скрыты только явно неактивные.
	foundrySource = source[models.Foundry]{
		kind:       models.KindFoundry,
		collection: "foundries",
		visibility: storage.Neq("status", "inactive"),
		fields:     []string{"name", "description", "category", "location"},
		order:      storage.Order{Column: "created_at", Desc: true},
		mapRaw:     mapper.Foundry,
	}
	materialSource = source[models.TechnicalMaterial]{
		kind:       models.KindMaterial,
		collection: "technical_materials",
		visibility: storage.Eq("status", "published"),
		fields:     []string{"title", "description", "category"},
		order:      storage.Order{Column: "created_at", Desc: true},
		mapRaw:     mapper.Material,
	}
	ebookSource = source[models.Ebook]{
		kind:       models.KindEbook,
		collection: "ebooks",
		visibility: storage.Eq("status", "published"),
		fields:     []string{"title", "description", "category", "author"},
		order:      storage.Order{Column: "created_at", Desc: true},
		mapRaw:     mapper.Ebook,
	}
	eventSource = source[models.Event]{
		kind:       models.KindEvent,
		collection: "events",
		visibility: storage.Eq("status", "published"),
		fields:     []string{"title", "description", "category", "location"},
		order:      storage.Order{Column: "event_date"},
		mapRaw:     mapper.Event,
	}
)

// records выполняет запрос к коллекции вида в границах региона r
// и отбрасывает записи чужого региона, если хранилище их всё же вернуло.
func (src source[T]) records(ctx context.Context, s *Service, q storage.Query, r region.Region) ([]storage.Record, error) {
	const op = "service.sources.records"

	q.Collection = src.collection
	q.Filters = append([]storage.Filter{src.visibility}, q.Filters...)
	if q.Order == nil {
		order := src.order
		q.Order = &order
	}

	scoped, err := isolate(q, r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if d := s.queryTimeout(); d > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d)
		defer cancel()
	}

	recs, err := s.repo.Find(ctx, scoped)
	if err != nil {
		return nil, fmt.Errorf("%s: %s: %w", op, src.collection, err)
	}

	kept := recs[:0]
	for _, rec := range recs {
		if !inRegion(rec, r) {
			log.From(ctx).Warn("foreign_region_record_dropped",
				slog.String("op", op),
				slog.String("collection", src.collection),
				slog.String("region", r.Code()),
			)
			continue
		}
		kept = append(kept, rec)
	}

	return kept, nil
}

// mapAll строит view-модели в локали региона r.
func (src source[T]) mapAll(recs []storage.Record, r region.Region) []T {
	out := make([]T, 0, len(recs))
	for _, rec := range recs {
		out = append(out, src.mapRaw(rec, r))
	}

	return out
}

// fetch — выборка и маппинг одного вида контента.
func (src source[T]) fetch(ctx context.Context, s *Service, q storage.Query, r region.Region) ([]T, error) {
	recs, err := src.records(ctx, s, q, r)
	if err != nil {
		return nil, err
	}

	return src.mapAll(recs, r), nil
}
