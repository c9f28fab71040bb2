package services

import (
	"context"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/yungbote/lsbmorph-backend/internal/data/repos"
	"github.com/yungbote/lsbmorph-backend/internal/data/repos/testutil"
	"github.com/yungbote/lsbmorph-backend/internal/platform/dbctx"
	"github.com/yungbote/lsbmorph-backend/internal/platform/logger"
)

type testEnv struct {
	ctx  context.Context
	db   *gorm.DB
	dbc  dbctx.Context
	log  *logger.Logger
	repo repos.Set
}

// newTestEnv runs on a plain handle; services open their own transactions.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := testutil.DB(t)
	log := testutil.Logger(t)
	return &testEnv{
		ctx:  context.Background(),
		db:   db,
		dbc:  dbctx.Background(),
		log:  log,
		repo: repos.NewSet(db, log),
	}
}

var testClockStart = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

// stepClock returns start, start+step, start+2*step, ...
func stepClock(start time.Time, step time.Duration) func() time.Time {
	next := start
	return func() time.Time {
		now := next
		next = next.Add(step)
		return now
	}
}
