package testutil

import (
	"context"
	"testing"
	"time"

	"gorm.io/gorm"

	types "github.com/yungbote/lsbmorph-backend/internal/domain"
)

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, username string) *types.User {
	tb.Helper()
	u := &types.User{Username: username}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedGalaxy(tb testing.TB, ctx context.Context, tx *gorm.DB, g *types.Galaxy) *types.Galaxy {
	tb.Helper()
	if err := tx.WithContext(ctx).Create(g).Error; err != nil {
		tb.Fatalf("seed galaxy %s: %v", g.ID, err)
	}
	return g
}

// SeedGalaxyChain creates galaxies linked in the given order: ids[0] is the
// head and ids[len-1] the tail.
func SeedGalaxyChain(tb testing.TB, ctx context.Context, tx *gorm.DB, ids ...string) []*types.Galaxy {
	tb.Helper()
	out := make([]*types.Galaxy, 0, len(ids))
	for i, id := range ids {
		g := &types.Galaxy{ID: id, RA: float64(i), Dec: -float64(i)}
		if i > 0 {
			prev := ids[i-1]
			g.PreviousID = &prev
		}
		if i < len(ids)-1 {
			next := ids[i+1]
			g.NextID = &next
		}
		out = append(out, SeedGalaxy(tb, ctx, tx, g))
	}
	return out
}

func SeedClassification(tb testing.TB, ctx context.Context, tx *gorm.DB, userID uint, galaxyID string, lsb, morph int) *types.Classification {
	tb.Helper()
	c := &types.Classification{
		UserID:         userID,
		GalaxyID:       galaxyID,
		LSBClass:       lsb,
		Morphology:     morph,
		DateClassified: time.Now().UTC(),
	}
	if err := tx.WithContext(ctx).Create(c).Error; err != nil {
		tb.Fatalf("seed classification: %v", err)
	}
	return c
}

func SeedSkip(tb testing.TB, ctx context.Context, tx *gorm.DB, userID uint, galaxyID string) *types.SkippedGalaxy {
	tb.Helper()
	s := &types.SkippedGalaxy{
		UserID:      userID,
		GalaxyID:    galaxyID,
		DateSkipped: time.Now().UTC(),
	}
	if err := tx.WithContext(ctx).Create(s).Error; err != nil {
		tb.Fatalf("seed skip: %v", err)
	}
	return s
}

func F(v float64) *float64 { return &v }
func S(v string) *string    { return &v }
func I(v int) *int          { return &v }
func B(v bool) *bool        { return &v }
