package navigation

import (
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/yungbote/lsbmorph-backend/internal/data/repos/catalog"
	types "github.com/yungbote/lsbmorph-backend/internal/domain"
	"github.com/yungbote/lsbmorph-backend/internal/platform/dbctx"
	"github.com/yungbote/lsbmorph-backend/internal/platform/logger"
)

const (
	modeAnchored   = "anchored"
	modeUnanchored = "unanchored"
)

type Option func(*Engine)

// WithMaxSteps bounds the number of links one walk may follow. Zero means no
// bound; the visited set still stops cycles.
func WithMaxSteps(n int) Option {
	return func(e *Engine) {
		if n >= 0 {
			e.maxSteps = n
		}
	}
}

// Engine finds the galaxy a user should see next. It only reads.
type Engine struct {
	log      *logger.Logger
	store    Store
	maxSteps int
}

func NewEngine(log *logger.Logger, store Store, opts ...Option) *Engine {
	e := &Engine{log: log.With("service", "NavigationEngine"), store: store}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) Next(dbc dbctx.Context, userID uint, currentGalaxyID string, f Filter) (*types.Galaxy, error) {
	return e.FindAdjacent(dbc, userID, currentGalaxyID, Forward, f)
}

func (e *Engine) Previous(dbc dbctx.Context, userID uint, currentGalaxyID string, f Filter) (*types.Galaxy, error) {
	return e.FindAdjacent(dbc, userID, currentGalaxyID, Backward, f)
}

// First is the unanchored lookup: the first galaxy in catalog order that
// passes f.
func (e *Engine) First(dbc dbctx.Context, userID uint, f Filter) (*types.Galaxy, error) {
	return e.FindAdjacent(dbc, userID, "", Forward, f)
}

// FindAdjacent returns the nearest galaxy in direction dir from
// currentGalaxyID that passes f, or nil when there is none. An empty
// currentGalaxyID selects the unanchored lookup, which only goes forward.
func (e *Engine) FindAdjacent(dbc dbctx.Context, userID uint, currentGalaxyID string, dir Direction, f Filter) (*types.Galaxy, error) {
	mode := modeAnchored
	if currentGalaxyID == "" {
		mode = modeUnanchored
	}

	ctx, span := tracer.Start(dbc.Context(), "navigation.FindAdjacent", trace.WithAttributes(
		attribute.String("navigation.mode", mode),
		attribute.String("navigation.direction", dir.String()),
	))
	defer span.End()
	dbc.Ctx = ctx

	var (
		g         *types.Galaxy
		steps     int
		truncated bool
		err       error
	)
	if mode == modeUnanchored {
		g, err = e.first(dbc, userID, dir, f)
	} else {
		g, steps, truncated, err = e.walk(dbc, userID, currentGalaxyID, dir, f)
		walkSteps.Observe(float64(steps))
	}
	span.SetAttributes(
		attribute.Int("navigation.steps", steps),
		attribute.Bool("navigation.truncated", truncated),
	)

	result := "found"
	switch {
	case err != nil:
		result = "error"
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		e.log.Warn("navigation lookup failed",
			"mode", mode,
			"direction", dir.String(),
			"user_id", userID,
			"galaxy_id", currentGalaxyID,
			"error", err,
		)
	case truncated:
		result = "truncated"
		e.log.Warn("navigation walk hit step limit",
			"mode", mode,
			"direction", dir.String(),
			"user_id", userID,
			"galaxy_id", currentGalaxyID,
			"steps", steps,
		)
	case g == nil:
		result = "none"
	}
	lookupsTotal.WithLabelValues(mode, dir.String(), result).Inc()

	if err != nil {
		return nil, err
	}
	return g, nil
}

// walk follows links from startID. truncated is true when the step bound
// stopped it before the chain ended, so a match may lie further on.
func (e *Engine) walk(dbc dbctx.Context, userID uint, startID string, dir Direction, f Filter) (g *types.Galaxy, steps int, truncated bool, err error) {
	start, err := e.store.GetGalaxy(dbc, startID)
	if err != nil {
		return nil, 0, false, fmt.Errorf("load galaxy %s: %w", startID, err)
	}
	if start == nil {
		return nil, 0, false, nil
	}

	visited := map[string]struct{}{start.ID: {}}
	cur := start
	for {
		link := cur.Link(dir == Forward)
		if link == nil || *link == "" {
			return nil, steps, false, nil
		}
		if _, seen := visited[*link]; seen {
			return nil, steps, false, nil
		}
		if e.maxSteps > 0 && steps >= e.maxSteps {
			return nil, steps, true, nil
		}
		visited[*link] = struct{}{}

		cand, err := e.store.GetGalaxy(dbc, *link)
		if err != nil {
			return nil, steps, false, fmt.Errorf("load galaxy %s: %w", *link, err)
		}
		steps++
		if cand == nil {
			e.log.Debug("navigation link points at missing galaxy", "from", cur.ID, "to", *link)
			return nil, steps, false, nil
		}

		ok, err := e.matches(dbc, userID, cand, f)
		if err != nil {
			return nil, steps, false, err
		}
		if ok {
			return cand, steps, false, nil
		}
		cur = cand
	}
}

// matches checks f against one candidate. Each store lookup happens at most
// once and only when some field needs it.
func (e *Engine) matches(dbc dbctx.Context, userID uint, g *types.Galaxy, f Filter) (bool, error) {
	if f.Skipped != Any {
		skipped, err := e.store.IsSkipped(dbc, userID, g.ID)
		if err != nil {
			return false, fmt.Errorf("check skip %s: %w", g.ID, err)
		}
		if !f.Skipped.accepts(skipped) {
			return false, nil
		}
	}

	if f.needsClassification() {
		cls, err := e.store.GetClassification(dbc, userID, g.ID)
		if err != nil {
			return false, fmt.Errorf("load classification %s: %w", g.ID, err)
		}
		if !f.Classified.accepts(cls != nil) {
			return false, nil
		}
		if f.LSBClass != nil && (cls == nil || cls.LSBClass != *f.LSBClass) {
			return false, nil
		}
		if f.Morphology != nil && (cls == nil || cls.Morphology != *f.Morphology) {
			return false, nil
		}
		if f.ValidRedshift != nil {
			if !g.HasRedshift() || cls == nil || cls.ValidRedshift != *f.ValidRedshift {
				return false, nil
			}
		}
	}

	return f.WithRedshift.accepts(g.HasRedshift()), nil
}

func (e *Engine) first(dbc dbctx.Context, userID uint, dir Direction, f Filter) (*types.Galaxy, error) {
	if dir == Backward {
		return nil, nil
	}
	g, err := e.store.FirstMatching(dbc, QueryFor(userID, f))
	if err != nil {
		return nil, fmt.Errorf("first matching galaxy: %w", err)
	}
	return g, nil
}

// QueryFor translates f into the set-based catalog query. A label constraint
// implies the galaxy is classified.
func QueryFor(userID uint, f Filter) catalog.Query {
	q := catalog.Query{
		UserID:        userID,
		Classified:    membership(f.Classified),
		Skipped:       membership(f.Skipped),
		LSBClass:      f.LSBClass,
		Morphology:    f.Morphology,
		ValidRedshift: f.ValidRedshift,
	}
	if f.LSBClass != nil || f.Morphology != nil {
		q.Classified = catalog.MemberIn
	}
	switch f.WithRedshift {
	case Yes:
		v := true
		q.WithRedshift = &v
	case No:
		v := false
		q.WithRedshift = &v
	}
	return q
}

func membership(t Tri) catalog.Membership {
	switch t {
	case Yes:
		return catalog.MemberIn
	case No:
		return catalog.MemberNotIn
	default:
		return catalog.MemberAny
	}
}
