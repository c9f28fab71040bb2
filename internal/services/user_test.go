package services

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/lsbmorph-backend/internal/platform/errs"
)

const testSecret = "test-secret"

func newUserService(env *testEnv) UserService {
	return NewUserService(env.db, env.log, env.repo.Users, testSecret, time.Hour)
}

func TestLogin_GetOrCreate(t *testing.T) {
	env := newTestEnv(t)
	svc := newUserService(env)

	u1, tok1, err := svc.Login(env.dbc, "  Zoë Smith ")
	require.NoError(t, err)
	require.Equal(t, "zoesmith", u1.Username)
	require.NotEmpty(t, tok1)

	u2, _, err := svc.Login(env.dbc, "ZOESMITH")
	require.NoError(t, err)
	require.Equal(t, u1.ID, u2.ID)

	uid, name, err := svc.ParseToken(tok1)
	require.NoError(t, err)
	require.Equal(t, u1.ID, uid)
	require.Equal(t, "zoesmith", name)

	got, err := svc.GetByID(env.dbc, u1.ID)
	require.NoError(t, err)
	require.Equal(t, "zoesmith", got.Username)

	_, err = svc.GetByID(env.dbc, 9999)
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestLogin_EmptyUsername(t *testing.T) {
	env := newTestEnv(t)
	_, _, err := newUserService(env).Login(env.dbc, "日本 !!")
	require.ErrorIs(t, err, ErrValidation)
}

func TestParseToken_Rejects(t *testing.T) {
	env := newTestEnv(t)
	svc := newUserService(env)

	_, _, err := svc.ParseToken("")
	require.ErrorIs(t, err, errs.ErrUnauthorized)

	_, _, err = svc.ParseToken("not-a-token")
	require.ErrorIs(t, err, errs.ErrUnauthorized)

	foreign := jwt.NewWithClaims(jwt.SigningMethodHS256, JWTClaims{
		UserID:           1,
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	})
	signed, err := foreign.SignedString([]byte("other-secret"))
	require.NoError(t, err)
	_, _, err = svc.ParseToken(signed)
	require.ErrorIs(t, err, errs.ErrUnauthorized)

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, JWTClaims{
		UserID:           1,
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour))},
	})
	signed, err = expired.SignedString([]byte(testSecret))
	require.NoError(t, err)
	_, _, err = svc.ParseToken(signed)
	require.ErrorIs(t, err, errs.ErrUnauthorized)
}
