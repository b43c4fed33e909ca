package services

import (
	"context"
	"testing"

	"github.com/meinhoongagan/healthy-alternative/models"
	"github.com/meinhoongagan/healthy-alternative/store/memory"
	"github.com/meinhoongagan/healthy-alternative/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func newTestAuth(t *testing.T) (*AuthService, *memory.Store) {
	t.Helper()
	st := memory.New()
	svc := NewAuthService(st, zap.NewNop())
	svc.WithCost(bcrypt.MinCost)
	return svc, st
}

func register(t *testing.T, svc *AuthService, email, password string) *models.User {
	t.Helper()
	u, err := svc.CreateUser(context.Background(), Registration{
		Email: email, Password: password, FirstName: "A", LastName: "B", UserType: models.UserTypeCustomer,
	})
	require.NoError(t, err)
	return u
}

func TestHashPasswordUsesConfiguredCost(t *testing.T) {
	svc := NewAuthService(memory.New(), zap.NewNop())
	hash, err := svc.HashPassword("secret1")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, BcryptCost, cost)
	assert.True(t, svc.VerifyPassword("secret1", hash))
	assert.False(t, svc.VerifyPassword("secret2", hash))
}

func TestCreateUserRejectsDuplicateEmail(t *testing.T) {
	svc, _ := newTestAuth(t)
	u := register(t, svc, "A@X.com", "secret1")
	assert.Equal(t, "a@x.com", u.Email)
	assert.NotEqual(t, "secret1", u.Password)

	_, err := svc.CreateUser(context.Background(), Registration{
		Email: "a@x.COM", Password: "other12", FirstName: "C", LastName: "D", UserType: models.UserTypeCustomer,
	})
	assert.ErrorIs(t, err, utils.ErrDuplicateEmail)
}

func TestAuthenticateUser(t *testing.T) {
	svc, _ := newTestAuth(t)
	u := register(t, svc, "a@x.com", "secret1")
	ctx := context.Background()

	got, err := svc.AuthenticateUser(ctx, "A@x.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = svc.AuthenticateUser(ctx, "a@x.com", "wrong")
	assert.ErrorIs(t, err, utils.ErrInvalidCredentials)

	_, err = svc.AuthenticateUser(ctx, "nobody@x.com", "secret1")
	assert.ErrorIs(t, err, utils.ErrInvalidCredentials)
}

func TestUnknownEmailStillComparesHash(t *testing.T) {
	svc, _ := newTestAuth(t)

	_, err := svc.AuthenticateUser(context.Background(), "nobody@x.com", "secret1")
	assert.ErrorIs(t, err, utils.ErrInvalidCredentials)

	require.NotEmpty(t, svc.dummyHash)
	cost, err := bcrypt.Cost(svc.dummyHash)
	require.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost, cost)
}

func TestChangePassword(t *testing.T) {
	svc, st := newTestAuth(t)
	u := register(t, svc, "a@x.com", "secret1")
	ctx := context.Background()

	ok, err := svc.ChangePassword(ctx, u.ID, "wrong", "newpass1")
	require.NoError(t, err)
	assert.False(t, ok)
	stored, err := st.GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, u.Password, stored.Password, "hash must be untouched")

	ok, err = svc.ChangePassword(ctx, u.ID, "secret1", "newpass1")
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = svc.AuthenticateUser(ctx, "a@x.com", "secret1")
	assert.ErrorIs(t, err, utils.ErrInvalidCredentials)
	_, err = svc.AuthenticateUser(ctx, "a@x.com", "newpass1")
	assert.NoError(t, err)

	stored, err = st.GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	assert.False(t, stored.UpdatedAt.Before(u.UpdatedAt))

	_, err = svc.ChangePassword(ctx, "missing", "a", "b")
	assert.ErrorIs(t, err, utils.ErrNotFound)
}
