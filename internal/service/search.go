package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/unicode/norm"

	"github.com/pribylovaa/go-content-portal/internal/models"
	"github.com/pribylovaa/go-content-portal/internal/region"
	"github.com/pribylovaa/go-content-portal/internal/storage"
	"github.com/pribylovaa/go-content-portal/pkg/log"
)

// maxTermRunes — длина поискового запроса после нормализации.
const maxTermRunes = 128

// Search — агрегированный поиск по всем шести видам контента в регионе r.
//
// Правила:
//   - пустой (после trim) term — пустая выдача без запросов к хранилищу;
//   - запросы видов идут параллельно; сбой одного не отменяет остальные,
//     его список пуст, а вид попадает в Failed/Errors;
//   - порядок внутри вида — порядок хранилища;
//   - HasResults == true, если хотя бы один вид непуст.
//
// Ошибки:
//   - ErrInvalidArgument — неизвестный регион.
func (s *Service) Search(ctx context.Context, term string, r region.Region) (*models.SearchResults, error) {
	const op = "service.search.Search"

	lg := log.From(ctx)

	if !r.Valid() {
		lg.Warn("search_invalid_region",
			slog.String("op", op),
			slog.String("region", r.Code()),
		)

		return nil, fmt.Errorf("%s: region %q: %w", op, r, ErrInvalidArgument)
	}

	term = normalizeTerm(term)
	res := models.NewSearchResults(term, r.Code())
	if term == "" {
		lg.Debug("search_empty_term",
			slog.String("op", op),
			slog.String("region", r.Code()),
		)
		res.Finalize()

		return res, nil
	}

	lg.Info("search_request",
		slog.String("op", op),
		slog.String("region", r.Code()),
		slog.Int("term_len", len([]rune(term))),
	)

	started := s.now()
	pattern := likePattern(term)
	limit := s.perKindLimit()

	var (
		mu sync.Mutex
		g  errgroup.Group
	)

	// Ошибка вида не возвращается в errgroup: иначе Wait вернул бы только
	// первую, а остальные виды должны дорабатывать независимо.
	collect := func(kind models.Kind, run func(context.Context) error) {
		g.Go(func() error {
			if err := run(ctx); err != nil {
				mu.Lock()
				res.Errors[kind] = &KindError{Kind: kind, Err: err}
				mu.Unlock()

				s.metrics.KindFailure(string(kind), "search")
				lg.Warn("search_kind_failed",
					slog.String("op", op),
					slog.String("kind", string(kind)),
					slog.String("region", r.Code()),
					slog.String("err", err.Error()),
				)
			}
			return nil
		})
	}

	collect(models.KindNews, func(ctx context.Context) (err error) {
		res.News, err = searchKind(ctx, s, newsSource, pattern, limit, r)
		return err
	})
	collect(models.KindSupplier, func(ctx context.Context) (err error) {
		res.Suppliers, err = searchKind(ctx, s, supplierSource, pattern, limit, r)
		return err
	})
	collect(models.KindFoundry, func(ctx context.Context) (err error) {
		res.Foundries, err = searchKind(ctx, s, foundrySource, pattern, limit, r)
		return err
	})
	collect(models.KindMaterial, func(ctx context.Context) (err error) {
		res.Materials, err = searchKind(ctx, s, materialSource, pattern, limit, r)
		return err
	})
	collect(models.KindEbook, func(ctx context.Context) (err error) {
		res.Ebooks, err = searchKind(ctx, s, ebookSource, pattern, limit, r)
		return err
	})
	collect(models.KindEvent, func(ctx context.Context) (err error) {
		res.Events, err = searchKind(ctx, s, eventSource, pattern, limit, r)
		return err
	})

	_ = g.Wait()
	res.Finalize()

	s.metrics.Search(r.Code(), searchOutcome(res), s.now().Sub(started))
	lg.Info("search_ok",
		slog.String("op", op),
		slog.String("region", r.Code()),
		slog.Int("total", res.Total()),
		slog.Int("failed_kinds", len(res.Failed)),
	)

	return res, nil
}

// searchKind — поиск по одному виду: OR ilike по полям вида, потолок limit.
func searchKind[T any](ctx context.Context, s *Service, src source[T], pattern string, limit int, r region.Region) ([]T, error) {
	q := storage.Query{
		Match: &storage.Match{Columns: src.fields, Pattern: pattern},
		Limit: limit,
	}

	return src.fetch(ctx, s, q, r)
}

func searchOutcome(res *models.SearchResults) string {
	switch {
	case len(res.Failed) > 0:
		return "partial"
	case res.HasResults:
		return "hit"
	default:
		return "empty"
	}
}

// normalizeTerm приводит запрос к NFC, схлопывает пробелы и обрезает длину.
// Составная и предсоставленная формы диакритики дают один и тот же запрос.
func normalizeTerm(term string) string {
	term = strings.Join(strings.Fields(norm.NFC.String(term)), " ")
	if runes := []rune(term); len(runes) > maxTermRunes {
		term = strings.TrimSpace(string(runes[:maxTermRunes]))
	}

	return term
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likePattern — шаблон подстроки для ILIKE; метасимволы запроса экранируются.
func likePattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}
