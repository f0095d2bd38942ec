package service

import (
	"fmt"

	"github.com/pribylovaa/go-content-portal/internal/region"
	"github.com/pribylovaa/go-content-portal/internal/storage"
)

// regionColumn — колонка раздела по региону во всех коллекциях.
const regionColumn = "region"

// isolate добавляет к запросу обязательное равенство region = r.
// Любые условия вызывающего по колонке региона удаляются: ослабить
// или подменить изоляцию через фильтры нельзя.
func isolate(q storage.Query, r region.Region) (storage.Query, error) {
	if !r.Valid() {
		return storage.Query{}, fmt.Errorf("region %q: %w", r, ErrInvalidArgument)
	}

	filters := make([]storage.Filter, 0, len(q.Filters)+1)
	for _, f := range q.Filters {
		if f.Column == regionColumn {
			continue
		}
		filters = append(filters, f)
	}
	q.Filters = append(filters, storage.Eq(regionColumn, r.Code()))

	return q, nil
}

// inRegion — запись принадлежит региону r. Запись без поля region
// (проекция без колонки) принимается: фильтр уже применён хранилищем.
func inRegion(rec storage.Record, r region.Region) bool {
	v, ok := rec[regionColumn]
	if !ok || v == nil {
		return true
	}

	return fmt.Sprint(v) == r.Code()
}
