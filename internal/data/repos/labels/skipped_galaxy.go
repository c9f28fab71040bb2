package labels

import (
	"gorm.io/gorm"

	types "github.com/yungbote/lsbmorph-backend/internal/domain"
	"github.com/yungbote/lsbmorph-backend/internal/platform/dbctx"
	"github.com/yungbote/lsbmorph-backend/internal/platform/logger"
)

type SkippedGalaxyRepo interface {
	GetByUserAndGalaxy(dbc dbctx.Context, userID uint, galaxyID string) (*types.SkippedGalaxy, error)
	Exists(dbc dbctx.Context, userID uint, galaxyID string) (bool, error)
	Create(dbc dbctx.Context, row *types.SkippedGalaxy) error
	Save(dbc dbctx.Context, row *types.SkippedGalaxy) error
	DeleteByUserAndGalaxy(dbc dbctx.Context, userID uint, galaxyID string) (int64, error)
	ListByUser(dbc dbctx.Context, userID uint) ([]*types.SkippedGalaxy, error)
	CountByUser(dbc dbctx.Context, userID uint) (int64, error)
}

type skippedGalaxyRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSkippedGalaxyRepo(db *gorm.DB, baseLog *logger.Logger) SkippedGalaxyRepo {
	return &skippedGalaxyRepo{db: db, log: baseLog.With("repo", "SkippedGalaxyRepo")}
}

func (r *skippedGalaxyRepo) GetByUserAndGalaxy(dbc dbctx.Context, userID uint, galaxyID string) (*types.SkippedGalaxy, error) {
	var rows []*types.SkippedGalaxy
	if err := dbc.Conn(r.db).
		Where("user_id = ? AND galaxy_id = ?", userID, galaxyID).
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

func (r *skippedGalaxyRepo) Exists(dbc dbctx.Context, userID uint, galaxyID string) (bool, error) {
	var n int64
	if err := dbc.Conn(r.db).
		Model(&types.SkippedGalaxy{}).
		Where("user_id = ? AND galaxy_id = ?", userID, galaxyID).
		Limit(1).
		Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *skippedGalaxyRepo) Create(dbc dbctx.Context, row *types.SkippedGalaxy) error {
	return dbc.Conn(r.db).Create(row).Error
}

func (r *skippedGalaxyRepo) Save(dbc dbctx.Context, row *types.SkippedGalaxy) error {
	return dbc.Conn(r.db).Save(row).Error
}

// DeleteByUserAndGalaxy removes every row for the pair and reports how many went.
func (r *skippedGalaxyRepo) DeleteByUserAndGalaxy(dbc dbctx.Context, userID uint, galaxyID string) (int64, error) {
	res := dbc.Conn(r.db).
		Where("user_id = ? AND galaxy_id = ?", userID, galaxyID).
		Delete(&types.SkippedGalaxy{})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

func (r *skippedGalaxyRepo) ListByUser(dbc dbctx.Context, userID uint) ([]*types.SkippedGalaxy, error) {
	var results []*types.SkippedGalaxy
	if err := dbc.Conn(r.db).
		Where("user_id = ?", userID).
		Order("date_skipped DESC").
		Order("id DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *skippedGalaxyRepo) CountByUser(dbc dbctx.Context, userID uint) (int64, error) {
	var n int64
	if err := dbc.Conn(r.db).
		Model(&types.SkippedGalaxy{}).
		Where("user_id = ?", userID).
		Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}
