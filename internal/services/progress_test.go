package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yungbote/lsbmorph-backend/internal/data/repos/testutil"
	types "github.com/yungbote/lsbmorph-backend/internal/domain"
)

type memCountCache struct {
	n      int64
	ok     bool
	sets   int
	resets int
}

func (c *memCountCache) Get(context.Context) (int64, bool, error) { return c.n, c.ok, nil }
func (c *memCountCache) Set(_ context.Context, n int64) error {
	c.n, c.ok = n, true
	c.sets++
	return nil
}
func (c *memCountCache) Invalidate(context.Context) error {
	c.n, c.ok = 0, false
	c.resets++
	return nil
}

func newProgressService(env *testEnv, cache CountCache) ProgressService {
	return NewProgressService(env.log, env.repo.Galaxies, env.repo.Classifications, env.repo.Skips, cache)
}

func TestProgress_EmptyCatalog(t *testing.T) {
	env := newTestEnv(t)
	u := testutil.SeedUser(t, env.ctx, env.db, "alice")

	p, err := newProgressService(env, nil).Progress(env.dbc, u.ID)
	require.NoError(t, err)
	require.Zero(t, p.Total)
	require.Zero(t, p.ClassifiedCount)
	require.Zero(t, p.Percentage)
}

func TestProgress_PercentageAndCache(t *testing.T) {
	env := newTestEnv(t)
	u := testutil.SeedUser(t, env.ctx, env.db, "alice")
	testutil.SeedGalaxyChain(t, env.ctx, env.db, "A", "B", "C", "D")
	testutil.SeedClassification(t, env.ctx, env.db, u.ID, "A", 1, 1)

	cache := &memCountCache{}
	svc := newProgressService(env, cache)

	p, err := svc.Progress(env.dbc, u.ID)
	require.NoError(t, err)
	require.EqualValues(t, 4, p.Total)
	require.EqualValues(t, 1, p.ClassifiedCount)
	require.InDelta(t, 25.0, p.Percentage, 1e-9)
	require.Equal(t, 1, cache.sets)

	testutil.SeedGalaxy(t, env.ctx, env.db, &types.Galaxy{ID: "E"})
	p, err = svc.Progress(env.dbc, u.ID)
	require.NoError(t, err)
	require.EqualValues(t, 4, p.Total, "total is served from the cache")

	require.NoError(t, svc.InvalidateTotal(env.dbc))
	p, err = svc.Progress(env.dbc, u.ID)
	require.NoError(t, err)
	require.EqualValues(t, 5, p.Total)
	require.InDelta(t, 20.0, p.Percentage, 1e-9)
}

func TestStats(t *testing.T) {
	env := newTestEnv(t)
	u := testutil.SeedUser(t, env.ctx, env.db, "alice")
	other := testutil.SeedUser(t, env.ctx, env.db, "bob")
	testutil.SeedGalaxyChain(t, env.ctx, env.db, "A", "B", "C", "D", "E")

	labels := newLabelService(env, testClockStart)
	inputs := []ClassificationInput{
		{UserID: u.ID, GalaxyID: "A", LSBClass: 1, Morphology: 2, AwesomeFlag: true},
		{UserID: u.ID, GalaxyID: "B", LSBClass: 1, Morphology: 1},
		{UserID: u.ID, GalaxyID: "C", LSBClass: 0, Morphology: -1},
		{UserID: u.ID, GalaxyID: "D", LSBClass: -1, Morphology: 0},
		{UserID: other.ID, GalaxyID: "A", LSBClass: 0, Morphology: 0, AwesomeFlag: true},
	}
	for _, in := range inputs {
		_, err := labels.UpsertClassification(env.dbc, in)
		require.NoError(t, err)
	}
	_, err := labels.UpsertSkip(env.dbc, u.ID, "E", "")
	require.NoError(t, err)

	stats, err := newProgressService(env, nil).Stats(env.dbc, u.ID, 2)
	require.NoError(t, err)
	require.EqualValues(t, 4, stats.TotalClassified)
	require.EqualValues(t, 2, stats.LSBCount)
	require.EqualValues(t, 1, stats.AwesomeCount)
	require.Equal(t, LSBCounts{Failed: 1, NonLSB: 1, LSB: 2}, stats.LSBCounts)
	require.Equal(t, MorphCounts{Featureless: 1, NotSure: 1, LTG: 1, ETG: 1}, stats.MorphCounts)
	require.EqualValues(t, 1, stats.SkippedCount)
	require.Len(t, stats.Recent, 2)
	require.Equal(t, "D", stats.Recent[0].GalaxyID)
	require.Equal(t, "C", stats.Recent[1].GalaxyID)

	stats, err = newProgressService(env, nil).Stats(env.dbc, u.ID, 0)
	require.NoError(t, err)
	require.Len(t, stats.Recent, 4)
}

func TestClampRecent(t *testing.T) {
	cases := map[int]int{
		-5:                 DefaultRecentLimit,
		0:                  DefaultRecentLimit,
		1:                  1,
		MaxRecentLimit:     MaxRecentLimit,
		MaxRecentLimit + 1: MaxRecentLimit,
		1 << 30:            MaxRecentLimit,
	}
	for in, want := range cases {
		if got := ClampRecent(in); got != want {
			t.Fatalf("ClampRecent(%d): want=%d got=%d", in, want, got)
		}
	}
}
