package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/pribylovaa/go-content-portal/internal/config"
	"github.com/pribylovaa/go-content-portal/internal/storage"
)

// Общие хелперы unit-тестов сервисного слоя.
//
// memRepo — in-memory ContentRepository, честно применяющий примитивы
// запроса (eq / neq / ilike-OR / limit). Для точечных сценариев (сбой
// конкретного вызова, отсутствие вызовов) используются gomock-моки.

func testConfig() config.Config {
	return config.Config{
		Search: config.SearchConfig{PerKindLimit: 10, RelatedLimit: 4},
		Limits: config.LimitsConfig{Default: 12, Max: 100},
	}
}

type memRepo struct {
	mu    sync.Mutex
	rows  map[string][]storage.Record
	fail  map[string]error
	calls []storage.Query
}

func newMemRepo() *memRepo {
	return &memRepo{
		rows: map[string][]storage.Record{},
		fail: map[string]error{},
	}
}

func (m *memRepo) add(collection string, rec storage.Record) {
	m.rows[collection] = append(m.rows[collection], rec)
}

func (m *memRepo) queries() []storage.Query {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]storage.Query(nil), m.calls...)
}

func (m *memRepo) Find(_ context.Context, q storage.Query) ([]storage.Record, error) {
	m.mu.Lock()
	m.calls = append(m.calls, q)
	err := m.fail[q.Collection]
	rows := m.rows[q.Collection]
	m.mu.Unlock()

	if err != nil {
		return nil, err
	}

	out := []storage.Record{}
	for _, rec := range rows {
		if !matchesFilters(rec, q.Filters) || !matchesPattern(rec, q.Match) {
			continue
		}
		out = append(out, rec)
		if q.Limit > 0 && len(out) == q.Limit {
			break
		}
	}

	return out, nil
}

func matchesFilters(rec storage.Record, filters []storage.Filter) bool {
	for _, f := range filters {
		v, ok := rec[f.Column]
		same := ok && v != nil && fmt.Sprint(v) == fmt.Sprint(f.Value)
		switch f.Op {
		case storage.OpEq:
			if !same {
				return false
			}
		case storage.OpNeq:
			if same {
				return false
			}
		}
	}
	return true
}

var likeUnescaper = strings.NewReplacer(`\\`, `\`, `\%`, `%`, `\_`, `_`)

func matchesPattern(rec storage.Record, m *storage.Match) bool {
	if m == nil {
		return true
	}
	needle := strings.ToLower(likeUnescaper.Replace(strings.TrimSuffix(strings.TrimPrefix(m.Pattern, "%"), "%")))
	for _, col := range m.Columns {
		if v, ok := rec[col]; ok && v != nil && strings.Contains(strings.ToLower(fmt.Sprint(v)), needle) {
			return true
		}
	}
	return false
}
