package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pribylovaa/go-content-portal/internal/models"
	"github.com/pribylovaa/go-content-portal/internal/region"
)

// gatedSearcher блокирует поиск до сигнала теста.
type gatedSearcher struct {
	started chan region.Region
	release chan struct{}
}

func newGatedSearcher() *gatedSearcher {
	return &gatedSearcher{started: make(chan region.Region, 4), release: make(chan struct{})}
}

func (g *gatedSearcher) Search(_ context.Context, term string, r region.Region) (*models.SearchResults, error) {
	g.started <- r
	<-g.release
	res := models.NewSearchResults(term, r.Code())
	res.News = []models.NewsItem{{ID: "n-" + r.Code()}}
	res.Finalize()
	return res, nil
}

func TestSession_RegionSwitchDuringSearch_IsStale(t *testing.T) {
	t.Parallel()

	store, err := region.NewStore(region.Portugal)
	require.NoError(t, err)

	g := newGatedSearcher()
	sess := NewSession(g, store)

	done := make(chan error, 1)
	go func() {
		_, err := sess.Search(context.Background(), "aço")
		done <- err
	}()

	require.Equal(t, region.Portugal, <-g.started)
	require.NoError(t, sess.SwitchRegion(region.Mexico))
	close(g.release)

	require.ErrorIs(t, <-done, ErrStale)

	// Выдача pt не попала в сессию mx.
	res := sess.Results()
	require.Equal(t, "mx", res.Region)
	require.False(t, res.HasResults)
}

func TestSession_NewerSearchWins(t *testing.T) {
	t.Parallel()

	store, err := region.NewStore(region.Spain)
	require.NoError(t, err)

	g := newGatedSearcher()
	sess := NewSession(g, store)

	first := make(chan error, 1)
	go func() {
		_, err := sess.Search(context.Background(), "arena")
		first <- err
	}()
	<-g.started

	second := make(chan error, 1)
	go func() {
		_, err := sess.Search(context.Background(), "arena verde")
		second <- err
	}()
	<-g.started

	close(g.release)
	errs := []error{<-first, <-second}

	// Ровно один ответ устаревший — первый запрос, второй зафиксирован.
	require.ErrorIs(t, errs[0], ErrStale)
	require.NoError(t, errs[1])
	require.Equal(t, "arena verde", sess.Results().Term)
}

func TestSession_SameRegionSwitchKeepsResults(t *testing.T) {
	t.Parallel()

	store, err := region.NewStore(region.USA)
	require.NoError(t, err)

	g := newGatedSearcher()
	close(g.release)
	sess := NewSession(g, store)

	res, err := sess.Search(context.Background(), "casting")
	require.NoError(t, err)
	require.True(t, res.HasResults)

	require.NoError(t, sess.SwitchRegion(region.USA))
	require.Same(t, res, sess.Results())

	require.Error(t, sess.SwitchRegion(region.Region("xx")))
}
