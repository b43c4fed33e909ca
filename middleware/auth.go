package middleware

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/meinhoongagan/healthy-alternative/models"
	"github.com/meinhoongagan/healthy-alternative/store"
	"github.com/meinhoongagan/healthy-alternative/utils"
	"go.uber.org/zap"
)

const userLocalsKey = "user"

// UserLookup resolves the user a session points at.
type UserLookup interface {
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

type SessionConfig struct {
	CookieName string
	TTL        time.Duration
	Secure     bool
}

// Sessions ties the session cookie to a server-side session record.
type Sessions struct {
	store store.Sessions
	users UserLookup
	cfg   SessionConfig
	log   *zap.Logger
	now   func() time.Time
}

func NewSessions(st store.Sessions, users UserLookup, cfg SessionConfig, log *zap.Logger) *Sessions {
	if cfg.CookieName == "" {
		cfg.CookieName = "sid"
	}
	if cfg.TTL <= 0 {
		cfg.TTL = 7 * 24 * time.Hour
	}
	return &Sessions{store: st, users: users, cfg: cfg, log: log, now: time.Now}
}

// Resolve maps the request's cookie to a user. It returns
// utils.ErrUnauthenticated when there is no cookie, the session is unknown or
// expired, or the user no longer exists.
func (s *Sessions) Resolve(c *fiber.Ctx) (*models.User, error) {
	sid := c.Cookies(s.cfg.CookieName)
	if sid == "" {
		return nil, utils.ErrUnauthenticated
	}

	ctx := c.UserContext()
	session, err := s.store.GetSession(ctx, sid)
	if errors.Is(err, utils.ErrNotFound) {
		return nil, utils.ErrUnauthenticated
	}
	if err != nil {
		return nil, err
	}
	if session.Expired(s.now()) {
		return nil, utils.ErrUnauthenticated
	}

	user, err := s.users.GetUserByID(ctx, session.UserID)
	if errors.Is(err, utils.ErrNotFound) {
		return nil, utils.ErrUnauthenticated
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// RequireAuth rejects requests without a live session with 401 and stores the
// user for the handlers that follow.
func (s *Sessions) RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := s.Resolve(c)
		if errors.Is(err, utils.ErrUnauthenticated) {
			return utils.Respond(c, fiber.StatusUnauthorized, utils.CodeUnauthorized, "Authentication required")
		}
		if err != nil {
			return err
		}
		c.Locals(userLocalsKey, user)
		return c.Next()
	}
}

// OptionalAuth attaches the user when the session resolves and never rejects.
func (s *Sessions) OptionalAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := s.Resolve(c)
		if err == nil {
			c.Locals(userLocalsKey, user)
		} else if !errors.Is(err, utils.ErrUnauthenticated) {
			s.log.Warn("session lookup failed", zap.Error(err))
		}
		return c.Next()
	}
}

// Start opens a session for userID and sets the cookie.
func (s *Sessions) Start(c *fiber.Ctx, userID string) error {
	sid, err := utils.GenerateSessionID()
	if err != nil {
		return err
	}
	now := s.now()
	session := &models.Session{
		ID:        sid,
		UserID:    userID,
		ExpiresAt: now.Add(s.cfg.TTL),
		CreatedAt: now,
	}
	if err := s.store.SaveSession(c.UserContext(), session); err != nil {
		return err
	}

	c.Cookie(&fiber.Cookie{
		Name:     s.cfg.CookieName,
		Value:    sid,
		Path:     "/",
		Expires:  session.ExpiresAt,
		MaxAge:   int(s.cfg.TTL.Seconds()),
		HTTPOnly: true,
		Secure:   s.cfg.Secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return nil
}

// End destroys the current session, if any, and clears the cookie.
func (s *Sessions) End(c *fiber.Ctx) error {
	if sid := c.Cookies(s.cfg.CookieName); sid != "" {
		if err := s.store.DeleteSession(c.UserContext(), sid); err != nil {
			return err
		}
	}
	c.Cookie(&fiber.Cookie{
		Name:     s.cfg.CookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HTTPOnly: true,
		Secure:   s.cfg.Secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return nil
}

// CurrentUser returns the user attached by RequireAuth or OptionalAuth.
func CurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(userLocalsKey).(*models.User)
	return user
}

// Authed passes the authenticated user to h explicitly. Mount it behind
// RequireAuth; without a user it answers 401.
func Authed(h func(c *fiber.Ctx, user *models.User) error) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user == nil {
			return utils.Respond(c, fiber.StatusUnauthorized, utils.CodeUnauthorized, "Authentication required")
		}
		return h(c, user)
	}
}
