package catalog

import (
	"gorm.io/gorm"

	types "github.com/yungbote/lsbmorph-backend/internal/domain"
	"github.com/yungbote/lsbmorph-backend/internal/platform/dbctx"
	"github.com/yungbote/lsbmorph-backend/internal/platform/logger"
)

// Membership constrains a galaxy against a per-user activity table.
type Membership int

const (
	MemberAny Membership = iota
	MemberIn
	MemberNotIn
)

// Query describes the set-based selection used when there is no current
// galaxy to walk from. Nil pointer fields do not filter.
type Query struct {
	UserID     uint
	Classified Membership
	Skipped    Membership

	LSBClass      *int
	Morphology    *int
	ValidRedshift *bool

	// WithRedshift true requires both marker coordinates; false matches any
	// galaxy missing at least one, as Galaxy.HasRedshift does.
	WithRedshift *bool
}

const hasRedshift = "redshift_x IS NOT NULL AND redshift_y IS NOT NULL"

type GalaxyRepo interface {
	Create(dbc dbctx.Context, galaxies []*types.Galaxy) error
	GetByID(dbc dbctx.Context, id string) (*types.Galaxy, error)
	GetByIDs(dbc dbctx.Context, ids []string) ([]*types.Galaxy, error)
	Count(dbc dbctx.Context) (int64, error)
	FirstMatching(dbc dbctx.Context, q Query) (*types.Galaxy, error)
}

type galaxyRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewGalaxyRepo(db *gorm.DB, baseLog *logger.Logger) GalaxyRepo {
	return &galaxyRepo{db: db, log: baseLog.With("repo", "GalaxyRepo")}
}

func (r *galaxyRepo) Create(dbc dbctx.Context, galaxies []*types.Galaxy) error {
	if len(galaxies) == 0 {
		return nil
	}
	return dbc.Conn(r.db).CreateInBatches(galaxies, 500).Error
}

// GetByID returns nil, nil when the galaxy does not exist.
func (r *galaxyRepo) GetByID(dbc dbctx.Context, id string) (*types.Galaxy, error) {
	if id == "" {
		return nil, nil
	}
	var rows []*types.Galaxy
	if err := dbc.Conn(r.db).
		Where("id = ?", id).
		Limit(1).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

func (r *galaxyRepo) GetByIDs(dbc dbctx.Context, ids []string) ([]*types.Galaxy, error) {
	var results []*types.Galaxy
	if len(ids) == 0 {
		return results, nil
	}
	if err := dbc.Conn(r.db).
		Where("id IN ?", ids).
		Order("id ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *galaxyRepo) Count(dbc dbctx.Context) (int64, error) {
	var n int64
	if err := dbc.Conn(r.db).Model(&types.Galaxy{}).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

// FirstMatching applies q as existence subqueries against classifications and
// skipped_galaxies, then orders chain heads (no previous_id) first and breaks
// ties by ID.
func (r *galaxyRepo) FirstMatching(dbc dbctx.Context, q Query) (*types.Galaxy, error) {
	conn := dbc.Conn(r.db)

	classifiedBy := func() *gorm.DB {
		return conn.Model(&types.Classification{}).Select("galaxy_id").Where("user_id = ?", q.UserID)
	}
	skippedBy := func() *gorm.DB {
		return conn.Model(&types.SkippedGalaxy{}).Select("galaxy_id").Where("user_id = ?", q.UserID)
	}

	query := conn.Model(&types.Galaxy{})

	if q.LSBClass != nil {
		query = query.Where("id IN (?)", classifiedBy().Where("lsb_class = ?", *q.LSBClass))
	}
	if q.Morphology != nil {
		query = query.Where("id IN (?)", classifiedBy().Where("morphology = ?", *q.Morphology))
	}

	switch q.Classified {
	case MemberIn:
		query = query.Where("id IN (?)", classifiedBy())
	case MemberNotIn:
		query = query.Where("id NOT IN (?)", classifiedBy())
	}

	switch q.Skipped {
	case MemberIn:
		query = query.Where("id IN (?)", skippedBy())
	case MemberNotIn:
		query = query.Where("id NOT IN (?)", skippedBy())
	}

	if q.WithRedshift != nil {
		if *q.WithRedshift {
			query = query.Where(hasRedshift)
		} else {
			query = query.Where("NOT (" + hasRedshift + ")")
		}
	}

	if q.ValidRedshift != nil {
		query = query.
			Where(hasRedshift).
			Where("id IN (?)", classifiedBy().Where("valid_redshift = ?", *q.ValidRedshift))
	}

	var rows []*types.Galaxy
	if err := query.
		Order("previous_id IS NULL DESC").
		Order("id ASC").
		Limit(1).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}
