package user

import (
	"gorm.io/gorm"

	types "github.com/yungbote/lsbmorph-backend/internal/domain"
	"github.com/yungbote/lsbmorph-backend/internal/platform/dbctx"
	"github.com/yungbote/lsbmorph-backend/internal/platform/logger"
)

type UserRepo interface {
	Create(dbc dbctx.Context, u *types.User) error
	GetByID(dbc dbctx.Context, id uint) (*types.User, error)
	GetByUsername(dbc dbctx.Context, username string) (*types.User, error)
	First(dbc dbctx.Context) (*types.User, error)
}

type userRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo {
	return &userRepo{db: db, log: baseLog.With("repo", "UserRepo")}
}

func (ur *userRepo) Create(dbc dbctx.Context, u *types.User) error {
	return dbc.Conn(ur.db).Create(u).Error
}

func (ur *userRepo) GetByID(dbc dbctx.Context, id uint) (*types.User, error) {
	return ur.findOne(dbc, "id = ?", id)
}

func (ur *userRepo) GetByUsername(dbc dbctx.Context, username string) (*types.User, error) {
	return ur.findOne(dbc, "username = ?", username)
}

// First returns the lowest-ID user; tools use it as the default owner.
func (ur *userRepo) First(dbc dbctx.Context) (*types.User, error) {
	var rows []*types.User
	if err := dbc.Conn(ur.db).Order("id ASC").Limit(1).Find(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

func (ur *userRepo) findOne(dbc dbctx.Context, cond string, arg any) (*types.User, error) {
	var rows []*types.User
	if err := dbc.Conn(ur.db).Where(cond, arg).Limit(1).Find(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}
