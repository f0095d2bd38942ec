package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/pribylovaa/go-content-portal/internal/models"
	"github.com/pribylovaa/go-content-portal/internal/region"
	"github.com/pribylovaa/go-content-portal/pkg/log"
)

// Searcher — агрегированный поиск (реализуется *Service).
type Searcher interface {
	Search(ctx context.Context, term string, r region.Region) (*models.SearchResults, error)
}

// Session — владелец текущей выдачи поиска посетителя.
//
// Ответ фиксируется, только если с момента запроса не сменился регион
// (поколение region.Store) и не стартовал более новый поиск.
// Иначе возвращается ErrStale, а текущая выдача не меняется.
type Session struct {
	searcher Searcher
	store    *region.Store

	mu      sync.Mutex
	seq     uint64
	current *models.SearchResults
	gen     uint64
}

// NewSession создаёт сессию поверх хранилища региона.
func NewSession(searcher Searcher, store *region.Store) *Session {
	return &Session{searcher: searcher, store: store}
}

// Search выполняет поиск в текущем регионе и фиксирует результат.
func (s *Session) Search(ctx context.Context, term string) (*models.SearchResults, error) {
	const op = "service.session.Search"

	r, gen := s.store.Snapshot()

	s.mu.Lock()
	s.seq++
	seq := s.seq
	s.mu.Unlock()

	res, err := s.searcher.Search(ctx, term, r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.store.Generation() != gen || s.seq != seq {
		log.From(ctx).Debug("search_stale_dropped",
			slog.String("op", op),
			slog.String("region", r.Code()),
		)

		return nil, fmt.Errorf("%s: %w", op, ErrStale)
	}

	s.current = res
	s.gen = gen

	return res, nil
}

// SwitchRegion меняет регион; выдача прежнего региона становится недействительной.
func (s *Session) SwitchRegion(r region.Region) error {
	if _, err := s.store.Switch(r); err != nil {
		return fmt.Errorf("service.session.SwitchRegion: %w", err)
	}
	return nil
}

// Results возвращает зафиксированную выдачу текущего региона;
// после смены региона — пустую выдачу нового региона.
func (s *Session) Results() *models.SearchResults {
	r, gen := s.store.Snapshot()

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil || s.gen != gen {
		res := models.NewSearchResults("", r.Code())
		res.Finalize()
		return res
	}

	return s.current
}
