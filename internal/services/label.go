package services

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/yungbote/lsbmorph-backend/internal/data/repos"
	types "github.com/yungbote/lsbmorph-backend/internal/domain"
	"github.com/yungbote/lsbmorph-backend/internal/platform/dbctx"
	"github.com/yungbote/lsbmorph-backend/internal/platform/logger"
)

type ClassificationInput struct {
	UserID        uint   `json:"user_id" validate:"required"`
	GalaxyID      string `json:"galaxy_id" validate:"required"`
	LSBClass      int    `json:"lsb_class" validate:"oneof=-1 0 1"`
	Morphology    int    `json:"morphology" validate:"oneof=-1 0 1 2"`
	Comments      string `json:"comments" validate:"max=4000"`
	AwesomeFlag   bool   `json:"awesome_flag"`
	ValidRedshift bool   `json:"valid_redshift"`
}

// LabelService records classifications and skips. It writes on dbc.Tx and
// never commits; wrap calls in WithTx.
type LabelService interface {
	UpsertClassification(dbc dbctx.Context, in ClassificationInput) (*types.Classification, error)
	GetClassification(dbc dbctx.Context, userID uint, galaxyID string) (*types.Classification, error)
	UpsertSkip(dbc dbctx.Context, userID uint, galaxyID, comments string) (*types.SkippedGalaxy, error)
	DeleteSkip(dbc dbctx.Context, userID uint, galaxyID string) (bool, error)
	ListSkipped(dbc dbctx.Context, userID uint) ([]*types.SkippedGalaxy, error)
}

type LabelOption func(*labelService)

func WithClock(now func() time.Time) LabelOption {
	return func(s *labelService) {
		if now != nil {
			s.now = now
		}
	}
}

type labelService struct {
	db                 *gorm.DB
	log                *logger.Logger
	classificationRepo repos.ClassificationRepo
	skipRepo           repos.SkippedGalaxyRepo
	now                func() time.Time
}

func NewLabelService(
	db *gorm.DB,
	log *logger.Logger,
	classificationRepo repos.ClassificationRepo,
	skipRepo repos.SkippedGalaxyRepo,
	opts ...LabelOption,
) LabelService {
	s := &labelService{
		db:                 db,
		log:                log.With("service", "LabelService"),
		classificationRepo: classificationRepo,
		skipRepo:           skipRepo,
		now:                func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *labelService) UpsertClassification(dbc dbctx.Context, in ClassificationInput) (*types.Classification, error) {
	in.GalaxyID = strings.TrimSpace(in.GalaxyID)
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	existing, err := s.classificationRepo.GetByUserAndGalaxy(dbc, in.UserID, in.GalaxyID)
	if err != nil {
		return nil, fmt.Errorf("load classification: %w", err)
	}
	now := s.now()

	if existing != nil {
		existing.LSBClass = in.LSBClass
		existing.Morphology = in.Morphology
		existing.Comments = in.Comments
		existing.AwesomeFlag = in.AwesomeFlag
		existing.ValidRedshift = in.ValidRedshift
		existing.DateClassified = now
		if err := s.classificationRepo.Save(dbc, existing); err != nil {
			return nil, fmt.Errorf("update classification: %w", err)
		}
		s.log.Debug("classification updated", "user_id", in.UserID, "galaxy_id", in.GalaxyID)
		return existing, nil
	}

	row := &types.Classification{
		UserID:         in.UserID,
		GalaxyID:       in.GalaxyID,
		LSBClass:       in.LSBClass,
		Morphology:     in.Morphology,
		Comments:       in.Comments,
		SkyBkg:         types.SkyBkgMasked,
		AwesomeFlag:    in.AwesomeFlag,
		ValidRedshift:  in.ValidRedshift,
		DateClassified: now,
	}
	if err := s.classificationRepo.Create(dbc, row); err != nil {
		return nil, fmt.Errorf("create classification: %w", err)
	}
	s.log.Debug("classification created", "user_id", in.UserID, "galaxy_id", in.GalaxyID)
	return row, nil
}

func (s *labelService) GetClassification(dbc dbctx.Context, userID uint, galaxyID string) (*types.Classification, error) {
	return s.classificationRepo.GetByUserAndGalaxy(dbc, userID, galaxyID)
}

func (s *labelService) UpsertSkip(dbc dbctx.Context, userID uint, galaxyID, comments string) (*types.SkippedGalaxy, error) {
	galaxyID = strings.TrimSpace(galaxyID)
	var fields []string
	if userID == 0 {
		fields = append(fields, "user_id")
	}
	if galaxyID == "" {
		fields = append(fields, "galaxy_id")
	}
	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	existing, err := s.skipRepo.GetByUserAndGalaxy(dbc, userID, galaxyID)
	if err != nil {
		return nil, fmt.Errorf("load skip: %w", err)
	}
	now := s.now()
	if existing != nil {
		existing.DateSkipped = now
		existing.Comments = comments
		if err := s.skipRepo.Save(dbc, existing); err != nil {
			return nil, fmt.Errorf("update skip: %w", err)
		}
		return existing, nil
	}

	row := &types.SkippedGalaxy{
		UserID:      userID,
		GalaxyID:    galaxyID,
		DateSkipped: now,
		Comments:    comments,
	}
	if err := s.skipRepo.Create(dbc, row); err != nil {
		return nil, fmt.Errorf("create skip: %w", err)
	}
	return row, nil
}

// DeleteSkip reports false when there was nothing to delete.
func (s *labelService) DeleteSkip(dbc dbctx.Context, userID uint, galaxyID string) (bool, error) {
	n, err := s.skipRepo.DeleteByUserAndGalaxy(dbc, userID, strings.TrimSpace(galaxyID))
	if err != nil {
		return false, fmt.Errorf("delete skip: %w", err)
	}
	return n > 0, nil
}

func (s *labelService) ListSkipped(dbc dbctx.Context, userID uint) ([]*types.SkippedGalaxy, error) {
	return s.skipRepo.ListByUser(dbc, userID)
}
