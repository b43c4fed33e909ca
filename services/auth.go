package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/meinhoongagan/healthy-alternative/models"
	"github.com/meinhoongagan/healthy-alternative/store"
	"github.com/meinhoongagan/healthy-alternative/utils"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// BcryptCost is the work factor for stored password hashes.
const BcryptCost = 12

type Registration struct {
	Email     string          `json:"email" validate:"required,email"`
	Password  string          `json:"password" validate:"required,min=6,bcryptmax"`
	FirstName string          `json:"firstName" validate:"notblank"`
	LastName  string          `json:"lastName" validate:"notblank"`
	UserType  models.UserType `json:"userType" validate:"required,oneof=customer provider"`
	Phone     *string         `json:"phone"`
}

type AuthService struct {
	users store.Users
	log   *zap.Logger
	cost  int
	now   func() time.Time

	dummyOnce sync.Once
	dummyHash []byte
}

func NewAuthService(users store.Users, log *zap.Logger) *AuthService {
	return &AuthService{users: users, log: log, cost: BcryptCost, now: time.Now}
}

// WithCost overrides the bcrypt work factor, e.g. bcrypt.MinCost in tests.
func (s *AuthService) WithCost(cost int) *AuthService {
	s.cost = cost
	return s
}

func (s *AuthService) HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), s.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

func (s *AuthService) VerifyPassword(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// CreateUser relies on the store's unique email index, so two concurrent
// registrations for one address cannot both succeed.
func (s *AuthService) CreateUser(ctx context.Context, reg Registration) (*models.User, error) {
	hash, err := s.HashPassword(reg.Password)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		Email:     models.NormalizeEmail(reg.Email),
		Password:  hash,
		FirstName: reg.FirstName,
		LastName:  reg.LastName,
		UserType:  reg.UserType,
		Phone:     reg.Phone,
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	s.log.Info("user registered", zap.String("user_id", user.ID), zap.String("user_type", string(user.UserType)))
	return user, nil
}

// AuthenticateUser returns ErrInvalidCredentials for both an unknown email
// and a wrong password.
func (s *AuthService) AuthenticateUser(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.users.GetUserByEmail(ctx, email)
	if errors.Is(err, utils.ErrNotFound) {
		// match the cost of the wrong-password path
		_ = bcrypt.CompareHashAndPassword(s.dummy(), []byte(password))
		return nil, utils.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !s.VerifyPassword(password, user.Password) {
		return nil, utils.ErrInvalidCredentials
	}
	return user, nil
}

func (s *AuthService) dummy() []byte {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = bcrypt.GenerateFromPassword([]byte("not-a-real-password"), s.cost)
	})
	return s.dummyHash
}

func (s *AuthService) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	return s.users.GetUserByID(ctx, id)
}

func (s *AuthService) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.users.GetUserByEmail(ctx, email)
}

// ChangePassword reports false, with nothing written, when current does not
// match the stored hash.
func (s *AuthService) ChangePassword(ctx context.Context, userID, current, next string) (bool, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return false, err
	}
	if !s.VerifyPassword(current, user.Password) {
		return false, nil
	}
	hash, err := s.HashPassword(next)
	if err != nil {
		return false, err
	}
	if err := s.users.UpdateUserPassword(ctx, userID, hash, s.now()); err != nil {
		return false, err
	}
	s.log.Info("password changed", zap.String("user_id", userID))
	return true, nil
}
