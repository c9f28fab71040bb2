package services

import (
	"fmt"

	"github.com/yungbote/lsbmorph-backend/internal/data/repos"
	types "github.com/yungbote/lsbmorph-backend/internal/domain"
	"github.com/yungbote/lsbmorph-backend/internal/domain/labels"
	"github.com/yungbote/lsbmorph-backend/internal/platform/dbctx"
	"github.com/yungbote/lsbmorph-backend/internal/platform/logger"
)

const (
	DefaultRecentLimit = 10
	MaxRecentLimit     = 100
)

// ClampRecent maps a requested recent-list size into 1..MaxRecentLimit,
// using DefaultRecentLimit for zero or negative input.
func ClampRecent(n int) int {
	switch {
	case n <= 0:
		return DefaultRecentLimit
	case n > MaxRecentLimit:
		return MaxRecentLimit
	default:
		return n
	}
}

type Progress struct {
	ClassifiedCount int64   `json:"classified_count"`
	Total           int64   `json:"total"`
	Percentage      float64 `json:"percentage"`
}

type LSBCounts struct {
	Failed int64 `json:"failed"`
	NonLSB int64 `json:"non_lsb"`
	LSB    int64 `json:"lsb"`
}

type MorphCounts struct {
	Featureless int64 `json:"featureless"`
	NotSure     int64 `json:"not_sure"`
	LTG         int64 `json:"ltg"`
	ETG         int64 `json:"etg"`
}

type Stats struct {
	TotalClassified int64                   `json:"total_classified"`
	LSBCount        int64                   `json:"lsb_count"`
	AwesomeCount    int64                   `json:"awesome_count"`
	LSBCounts       LSBCounts               `json:"lsb_counts"`
	MorphCounts     MorphCounts             `json:"morph_counts"`
	SkippedCount    int64                   `json:"skipped_count"`
	Recent          []*types.Classification `json:"recent_classifications"`
}

type ProgressService interface {
	Progress(dbc dbctx.Context, userID uint) (*Progress, error)
	Stats(dbc dbctx.Context, userID uint, recentN int) (*Stats, error)
	InvalidateTotal(dbc dbctx.Context) error
}

type progressService struct {
	log                *logger.Logger
	galaxyRepo         repos.GalaxyRepo
	classificationRepo repos.ClassificationRepo
	skipRepo           repos.SkippedGalaxyRepo
	cache              CountCache
}

func NewProgressService(
	log *logger.Logger,
	galaxyRepo repos.GalaxyRepo,
	classificationRepo repos.ClassificationRepo,
	skipRepo repos.SkippedGalaxyRepo,
	cache CountCache,
) ProgressService {
	if cache == nil {
		cache = NewNoopCountCache()
	}
	return &progressService{
		log:                log.With("service", "ProgressService"),
		galaxyRepo:         galaxyRepo,
		classificationRepo: classificationRepo,
		skipRepo:           skipRepo,
		cache:              cache,
	}
}

func (s *progressService) Progress(dbc dbctx.Context, userID uint) (*Progress, error) {
	total, err := s.total(dbc)
	if err != nil {
		return nil, err
	}
	classified, err := s.classificationRepo.CountByUser(dbc, userID, nil)
	if err != nil {
		return nil, fmt.Errorf("count classifications: %w", err)
	}
	p := &Progress{ClassifiedCount: classified, Total: total}
	if total > 0 {
		p.Percentage = float64(classified) / float64(total) * 100
	}
	return p, nil
}

// total reads the galaxy count through the cache. Cache failures fall back
// to the database.
func (s *progressService) total(dbc dbctx.Context) (int64, error) {
	ctx := dbc.Context()
	if n, ok, err := s.cache.Get(ctx); err != nil {
		s.log.Warn("galaxy count cache read failed", "error", err)
	} else if ok {
		return n, nil
	}
	n, err := s.galaxyRepo.Count(dbc)
	if err != nil {
		return 0, fmt.Errorf("count galaxies: %w", err)
	}
	if err := s.cache.Set(ctx, n); err != nil {
		s.log.Warn("galaxy count cache write failed", "error", err)
	}
	return n, nil
}

func (s *progressService) InvalidateTotal(dbc dbctx.Context) error {
	return s.cache.Invalidate(dbc.Context())
}

func (s *progressService) Stats(dbc dbctx.Context, userID uint, recentN int) (*Stats, error) {
	recentN = ClampRecent(recentN)
	total, err := s.classificationRepo.CountByUser(dbc, userID, nil)
	if err != nil {
		return nil, fmt.Errorf("count classifications: %w", err)
	}
	awesome, err := s.classificationRepo.CountByUser(dbc, userID, map[string]any{"awesome_flag": true})
	if err != nil {
		return nil, fmt.Errorf("count awesome: %w", err)
	}
	byClass, err := s.classificationRepo.CountByColumn(dbc, userID, "lsb_class")
	if err != nil {
		return nil, fmt.Errorf("count by lsb class: %w", err)
	}
	byMorph, err := s.classificationRepo.CountByColumn(dbc, userID, "morphology")
	if err != nil {
		return nil, fmt.Errorf("count by morphology: %w", err)
	}
	skipped, err := s.skipRepo.CountByUser(dbc, userID)
	if err != nil {
		return nil, fmt.Errorf("count skips: %w", err)
	}
	recent, err := s.classificationRepo.ListRecentByUser(dbc, userID, recentN)
	if err != nil {
		return nil, fmt.Errorf("list recent: %w", err)
	}

	return &Stats{
		TotalClassified: total,
		LSBCount:        byClass[int(labels.LSBYes)],
		AwesomeCount:    awesome,
		LSBCounts: LSBCounts{
			Failed: byClass[int(labels.LSBFailedFitting)],
			NonLSB: byClass[int(labels.LSBNonLSB)],
			LSB:    byClass[int(labels.LSBYes)],
		},
		MorphCounts: MorphCounts{
			Featureless: byMorph[int(labels.MorphFeatureless)],
			NotSure:     byMorph[int(labels.MorphNotSure)],
			LTG:         byMorph[int(labels.MorphLTG)],
			ETG:         byMorph[int(labels.MorphETG)],
		},
		SkippedCount: skipped,
		Recent:       recent,
	}, nil
}
