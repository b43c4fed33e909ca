// Package store defines the persistence operations the API depends on.
// db.Store backs it with PostgreSQL; memory.Store keeps everything in process.
package store

import (
	"context"
	"time"

	"github.com/meinhoongagan/healthy-alternative/models"
)

// Directory is the read side of the marketplace plus reviews.
type Directory interface {
	ListCategories(ctx context.Context) ([]models.ServiceCategory, error)
	ListProviders(ctx context.Context, filter models.ProviderFilter) ([]models.Provider, error)
	GetProvider(ctx context.Context, id string) (*models.Provider, error)
	// FeaturedProviders returns providers rated at least models.FeaturedMinRating,
	// best rated first, ties broken by review count.
	FeaturedProviders(ctx context.Context, limit int) ([]models.Provider, error)
	ListServicesByProvider(ctx context.Context, providerID string) ([]models.Service, error)
	GetService(ctx context.Context, id string) (*models.Service, error)
	// ListReviewsByProvider is newest first.
	ListReviewsByProvider(ctx context.Context, providerID string) ([]models.Review, error)
	// CreateReview inserts the review and folds it into the provider's
	// rating and review count atomically.
	CreateReview(ctx context.Context, review *models.Review) error
}

type Appointments interface {
	CreateAppointment(ctx context.Context, appt *models.Appointment) error
	// HasOverlappingAppointment reports whether a non-cancelled appointment of
	// the provider intersects [start, end).
	HasOverlappingAppointment(ctx context.Context, providerID string, start, end time.Time) (bool, error)
	// ListCustomerAppointments preloads Provider and Service, latest date first.
	ListCustomerAppointments(ctx context.Context, customerID string) ([]models.Appointment, error)
	// ListProviderAppointments preloads Service, latest date first.
	ListProviderAppointments(ctx context.Context, providerID string) ([]models.Appointment, error)
	// CountAppointments counts a provider's appointments; an empty status
	// counts all of them.
	CountAppointments(ctx context.Context, providerID string, status models.AppointmentStatus) (int64, error)
	// UpcomingAppointments lists scheduled appointments starting in [from, to)
	// with Provider and Service preloaded.
	UpcomingAppointments(ctx context.Context, from, to time.Time) ([]models.Appointment, error)
}

type ProfileViews interface {
	CreateProfileView(ctx context.Context, view *models.ProfileView) error
	// CountProfileViews counts views at or after since; a zero since counts all.
	CountProfileViews(ctx context.Context, providerID string, since time.Time) (int64, error)
	RecentProfileViews(ctx context.Context, providerID string, limit int) ([]models.ProfileView, error)
}

type Users interface {
	// CreateUser fails with utils.ErrDuplicateEmail when the email is taken.
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	// GetUserByEmail matches case-insensitively.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateUserPassword(ctx context.Context, id, hash string, at time.Time) error
}

type Applications interface {
	CreateProviderApplication(ctx context.Context, app *models.ProviderApplication) error
}

// Store is everything the HTTP layer needs. Lookups by id return
// utils.ErrNotFound when nothing matches.
type Store interface {
	Directory
	Appointments
	ProfileViews
	Users
	Applications
}

// Sessions persists login sessions. GetSession returns utils.ErrNotFound for
// unknown or expired ids.
type Sessions interface {
	SaveSession(ctx context.Context, session *models.Session) error
	GetSession(ctx context.Context, id string) (*models.Session, error)
	DeleteSession(ctx context.Context, id string) error
}

// SessionPurger is implemented by session stores without native expiry.
type SessionPurger interface {
	PurgeExpiredSessions(ctx context.Context, now time.Time) (int64, error)
}
