package labels

import (
	"fmt"

	"gorm.io/gorm"

	types "github.com/yungbote/lsbmorph-backend/internal/domain"
	"github.com/yungbote/lsbmorph-backend/internal/platform/dbctx"
	"github.com/yungbote/lsbmorph-backend/internal/platform/logger"
)

type ClassificationRepo interface {
	GetByUserAndGalaxy(dbc dbctx.Context, userID uint, galaxyID string) (*types.Classification, error)
	Create(dbc dbctx.Context, row *types.Classification) error
	Save(dbc dbctx.Context, row *types.Classification) error
	CountByUser(dbc dbctx.Context, userID uint, where map[string]any) (int64, error)
	CountByColumn(dbc dbctx.Context, userID uint, column string) (map[int]int64, error)
	ListRecentByUser(dbc dbctx.Context, userID uint, limit int) ([]*types.Classification, error)
	ListByUser(dbc dbctx.Context, userID uint) ([]*types.Classification, error)
}

type classificationRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewClassificationRepo(db *gorm.DB, baseLog *logger.Logger) ClassificationRepo {
	return &classificationRepo{db: db, log: baseLog.With("repo", "ClassificationRepo")}
}

// GetByUserAndGalaxy returns the oldest row for the pair, or nil, nil.
func (r *classificationRepo) GetByUserAndGalaxy(dbc dbctx.Context, userID uint, galaxyID string) (*types.Classification, error) {
	var rows []*types.Classification
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

func (r *classificationRepo) Create(dbc dbctx.Context, row *types.Classification) error {
	return dbc.Conn(r.db).Create(row).Error
}

func (r *classificationRepo) Save(dbc dbctx.Context, row *types.Classification) error {
	return dbc.Conn(r.db).Save(row).Error
}

func (r *classificationRepo) CountByUser(dbc dbctx.Context, userID uint, where map[string]any) (int64, error) {
	q := dbc.Conn(r.db).Model(&types.Classification{}).Where("user_id = ?", userID)
	if len(where) > 0 {
		q = q.Where(where)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

var countableColumns = map[string]struct{}{
	"lsb_class":  {},
	"morphology": {},
}

// CountByColumn groups a user's classifications by an integer label column.
func (r *classificationRepo) CountByColumn(dbc dbctx.Context, userID uint, column string) (map[int]int64, error) {
	if _, ok := countableColumns[column]; !ok {
		return nil, fmt.Errorf("column %q cannot be grouped", column)
	}
	var rows []struct {
		Value int
		N     int64
	}
	if err := dbc.Conn(r.db).
		Model(&types.Classification{}).
		Select(column+" AS value, COUNT(*) AS n").
		Where("user_id = ?", userID).
		Group(column).
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[int]int64, len(rows))
	for _, row := range rows {
		out[row.Value] = row.N
	}
	return out, nil
}

func (r *classificationRepo) ListRecentByUser(dbc dbctx.Context, userID uint, limit int) ([]*types.Classification, error) {
	var results []*types.Classification
	q := dbc.Conn(r.db).
		Where("user_id = ?", userID).
		Order("date_classified DESC").
		Order("id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *classificationRepo) ListByUser(dbc dbctx.Context, userID uint) ([]*types.Classification, error) {
	var results []*types.Classification
	if err := dbc.Conn(r.db).
		Where("user_id = ?", userID).
		Order("galaxy_id ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
