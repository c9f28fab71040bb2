package services

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"

	"github.com/yungbote/lsbmorph-backend/internal/data/repos"
	types "github.com/yungbote/lsbmorph-backend/internal/domain"
	"github.com/yungbote/lsbmorph-backend/internal/platform/dbctx"
	"github.com/yungbote/lsbmorph-backend/internal/platform/errs"
	"github.com/yungbote/lsbmorph-backend/internal/platform/logger"
	"github.com/yungbote/lsbmorph-backend/internal/platform/textnorm"
)

type JWTClaims struct {
	UserID uint `json:"uid"`
	jwt.RegisteredClaims
}

type UserService interface {
	Login(dbc dbctx.Context, rawUsername string) (*types.User, string, error)
	ParseToken(tokenString string) (uint, string, error)
	GetByID(dbc dbctx.Context, id uint) (*types.User, error)
	AccessTTL() time.Duration
}

type userService struct {
	db           *gorm.DB
	log          *logger.Logger
	userRepo     repos.UserRepo
	jwtSecretKey string
	accessTTL    time.Duration
	now          func() time.Time
}

func NewUserService(db *gorm.DB, log *logger.Logger, userRepo repos.UserRepo, jwtSecretKey string, accessTTL time.Duration) UserService {
	if accessTTL <= 0 {
		accessTTL = 24 * time.Hour
	}
	return &userService{
		db:           db,
		log:          log.With("service", "UserService"),
		userRepo:     userRepo,
		jwtSecretKey: jwtSecretKey,
		accessTTL:    accessTTL,
		now:          time.Now,
	}
}

// Login normalizes the username, creates the user on first sight and issues
// an access token.
func (us *userService) Login(dbc dbctx.Context, rawUsername string) (*types.User, string, error) {
	username := textnorm.Username(rawUsername)
	if username == "" {
		return nil, "", &ValidationError{Fields: []string{"username"}}
	}

	var user *types.User
	err := WithTx(dbc, us.db, func(dbc dbctx.Context) error {
		found, err := us.userRepo.GetByUsername(dbc, username)
		if err != nil {
			return fmt.Errorf("load user: %w", err)
		}
		if found != nil {
			user = found
			return nil
		}
		user = &types.User{Username: username}
		if err := us.userRepo.Create(dbc, user); err != nil {
			return fmt.Errorf("create user: %w", err)
		}
		us.log.Info("user created", "user_id", user.ID, "username", username)
		return nil
	})
	if err != nil {
		return nil, "", err
	}

	token, err := us.generateAccessToken(user)
	if err != nil {
		return nil, "", fmt.Errorf("generate access token: %w", err)
	}
	return user, token, nil
}

func (us *userService) generateAccessToken(user *types.User) (string, error) {
	now := us.now()
	claims := JWTClaims{
		UserID: user.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Username,
			ID:        strconv.FormatUint(uint64(user.ID), 10) + "-" + strconv.FormatInt(now.UnixNano(), 36),
			ExpiresAt: jwt.NewNumericDate(now.Add(us.accessTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(us.jwtSecretKey))
}

// ParseToken validates an access token and returns its user ID and username.
func (us *userService) ParseToken(tokenString string) (uint, string, error) {
	if tokenString == "" {
		return 0, "", errs.ErrUnauthorized
	}
	parsed, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(us.jwtSecretKey), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return 0, "", fmt.Errorf("%w: %v", errs.ErrUnauthorized, err)
	}
	claims, ok := parsed.Claims.(*JWTClaims)
	if !ok || !parsed.Valid || claims.UserID == 0 {
		return 0, "", errs.ErrUnauthorized
	}
	return claims.UserID, claims.Subject, nil
}

func (us *userService) GetByID(dbc dbctx.Context, id uint) (*types.User, error) {
	u, err := us.userRepo.GetByID(dbc, id)
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	if u == nil {
		return nil, errs.ErrNotFound
	}
	return u, nil
}

func (us *userService) AccessTTL() time.Duration { return us.accessTTL }
