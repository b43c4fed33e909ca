// Package memory is a map-backed store seeded with fixture data. State lives
// in one process and is lost on restart; never run more than one instance
// against it.
package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/meinhoongagan/healthy-alternative/models"
	"github.com/meinhoongagan/healthy-alternative/store"
	"github.com/meinhoongagan/healthy-alternative/utils"
)

var (
	_ store.Store         = (*Store)(nil)
	_ store.Sessions      = (*Store)(nil)
	_ store.SessionPurger = (*Store)(nil)
)

var errEmptySessionID = errors.New("memory: empty session id")

type Store struct {
	mu  sync.RWMutex
	now func() time.Time

	categories   []models.ServiceCategory
	providers    []models.Provider
	services     []models.Service
	reviews      []models.Review
	appointments []models.Appointment
	views        []models.ProfileView
	users        map[string]models.User
	emails       map[string]string // normalized email -> user id
	applications []models.ProviderApplication
	sessions     map[string]models.Session
}

// New returns an empty store.
func New() *Store {
	return &Store{
		now:      time.Now,
		users:    make(map[string]models.User),
		emails:   make(map[string]string),
		sessions: make(map[string]models.Session),
	}
}

// NewSeeded returns a store holding models.Fixtures.
func NewSeeded() *Store {
	s := New()
	s.Seed(models.Fixtures(s.now()))
	return s
}

// Seed appends fixture rows as-is.
func (s *Store) Seed(f models.FixtureSet) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.categories = append(s.categories, f.Categories...)
	s.providers = append(s.providers, f.Providers...)
	s.services = append(s.services, f.Services...)
	s.reviews = append(s.reviews, f.Reviews...)
}

// AddProvider inserts a provider profile, assigning an id when empty.
func (s *Store) AddProvider(p *models.Provider) error {
	if err := p.BeforeCreate(nil); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.providers = append(s.providers, *p)
	return nil
}

func (s *Store) ListCategories(ctx context.Context) ([]models.ServiceCategory, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.ServiceCategory{}, s.categories...), nil
}

func (s *Store) ListProviders(ctx context.Context, filter models.ProviderFilter) ([]models.Provider, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.Provider{}
	for i := range s.providers {
		if filter.Matches(&s.providers[i]) {
			out = append(out, s.providers[i])
		}
	}
	return out, nil
}

func (s *Store) GetProvider(ctx context.Context, id string) (*models.Provider, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.providerIndex(id); i >= 0 {
		p := s.providers[i]
		return &p, nil
	}
	return nil, utils.ErrNotFound
}

func (s *Store) providerIndex(id string) int {
	for i := range s.providers {
		if s.providers[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) FeaturedProviders(ctx context.Context, limit int) ([]models.Provider, error) {
	s.mu.RLock()
	out := []models.Provider{}
	for i := range s.providers {
		if s.providers[i].IsFeatured() {
			out = append(out, s.providers[i])
		}
	}
	s.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		if c := out[i].Rating.Cmp(out[j].Rating); c != 0 {
			return c > 0
		}
		return out[i].ReviewCount > out[j].ReviewCount
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *Store) ListServicesByProvider(ctx context.Context, providerID string) ([]models.Service, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.Service{}
	for _, svc := range s.services {
		if svc.ProviderID == providerID {
			out = append(out, svc)
		}
	}
	return out, nil
}

func (s *Store) GetService(ctx context.Context, id string) (*models.Service, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, svc := range s.services {
		if svc.ID == id {
			return &svc, nil
		}
	}
	return nil, utils.ErrNotFound
}

func (s *Store) ListReviewsByProvider(ctx context.Context, providerID string) ([]models.Review, error) {
	s.mu.RLock()
	out := []models.Review{}
	for _, r := range s.reviews {
		if r.ProviderID == providerID {
			out = append(out, r)
		}
	}
	s.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *Store) CreateReview(ctx context.Context, review *models.Review) error {
	if err := review.BeforeCreate(nil); err != nil {
		return err
	}
	if review.CreatedAt.IsZero() {
		review.CreatedAt = s.now()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.providerIndex(review.ProviderID)
	if i < 0 {
		return utils.ErrNotFound
	}
	s.providers[i].ApplyReview(review.Rating)
	s.reviews = append(s.reviews, *review)
	return nil
}

func (s *Store) CreateAppointment(ctx context.Context, appt *models.Appointment) error {
	if err := appt.BeforeCreate(nil); err != nil {
		return err
	}
	if appt.CreatedAt.IsZero() {
		appt.CreatedAt = s.now()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.appointments = append(s.appointments, *appt)
	return nil
}

func (s *Store) serviceDuration(id string) int {
	for _, svc := range s.services {
		if svc.ID == id {
			return svc.Duration
		}
	}
	return 0
}

func (s *Store) HasOverlappingAppointment(ctx context.Context, providerID string, start, end time.Time) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.appointments {
		a := &s.appointments[i]
		if a.ProviderID != providerID || a.Status == models.StatusCancelled {
			continue
		}
		if utils.Overlaps(start, end, a.AppointmentDate, a.EndsAt(s.serviceDuration(a.ServiceID))) {
			return true, nil
		}
	}
	return false, nil
}

// withRelations copies a and attaches its Provider and Service. Callers hold
// at least a read lock.
func (s *Store) withRelations(a models.Appointment, provider bool) models.Appointment {
	if provider {
		if i := s.providerIndex(a.ProviderID); i >= 0 {
			p := s.providers[i]
			a.Provider = &p
		}
	}
	for _, svc := range s.services {
		if svc.ID == a.ServiceID {
			a.Service = &svc
			break
		}
	}
	return a
}

func (s *Store) listAppointments(match func(*models.Appointment) bool, withProvider bool) []models.Appointment {
	s.mu.RLock()
	out := []models.Appointment{}
	for i := range s.appointments {
		if match(&s.appointments[i]) {
			out = append(out, s.withRelations(s.appointments[i], withProvider))
		}
	}
	s.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].AppointmentDate.After(out[j].AppointmentDate)
	})
	return out
}

func (s *Store) ListCustomerAppointments(ctx context.Context, customerID string) ([]models.Appointment, error) {
	return s.listAppointments(func(a *models.Appointment) bool {
		return a.CustomerID != nil && *a.CustomerID == customerID
	}, true), nil
}

func (s *Store) ListProviderAppointments(ctx context.Context, providerID string) ([]models.Appointment, error) {
	return s.listAppointments(func(a *models.Appointment) bool {
		return a.ProviderID == providerID
	}, false), nil
}

func (s *Store) CountAppointments(ctx context.Context, providerID string, status models.AppointmentStatus) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var n int64
	for _, a := range s.appointments {
		if a.ProviderID == providerID && (status == "" || a.Status == status) {
			n++
		}
	}
	return n, nil
}

func (s *Store) UpcomingAppointments(ctx context.Context, from, to time.Time) ([]models.Appointment, error) {
	out := s.listAppointments(func(a *models.Appointment) bool {
		return a.Status == models.StatusScheduled &&
			!a.AppointmentDate.Before(from) && a.AppointmentDate.Before(to)
	}, true)
	// soonest first
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}

func (s *Store) CreateProfileView(ctx context.Context, view *models.ProfileView) error {
	if err := view.BeforeCreate(nil); err != nil {
		return err
	}
	if view.ViewedAt.IsZero() {
		view.ViewedAt = s.now()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.views = append(s.views, *view)
	return nil
}

func (s *Store) CountProfileViews(ctx context.Context, providerID string, since time.Time) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var n int64
	for _, v := range s.views {
		if v.ProviderID == providerID && !v.ViewedAt.Before(since) {
			n++
		}
	}
	return n, nil
}

func (s *Store) RecentProfileViews(ctx context.Context, providerID string, limit int) ([]models.ProfileView, error) {
	s.mu.RLock()
	out := []models.ProfileView{}
	for _, v := range s.views {
		if v.ProviderID == providerID {
			out = append(out, v)
		}
	}
	s.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ViewedAt.After(out[j].ViewedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	if err := user.BeforeCreate(nil); err != nil {
		return err
	}
	now := s.now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, taken := s.emails[user.Email]; taken {
		return utils.ErrDuplicateEmail
	}
	s.users[user.ID] = *user
	s.emails[user.Email] = user.ID
	return nil
}

func (s *Store) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, utils.ErrNotFound
	}
	return &u, nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.emails[models.NormalizeEmail(email)]
	if !ok {
		return nil, utils.ErrNotFound
	}
	u := s.users[id]
	return &u, nil
}

func (s *Store) UpdateUserPassword(ctx context.Context, id, hash string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return utils.ErrNotFound
	}
	u.Password = hash
	u.UpdatedAt = at
	s.users[id] = u
	return nil
}

func (s *Store) CreateProviderApplication(ctx context.Context, app *models.ProviderApplication) error {
	if err := app.BeforeCreate(nil); err != nil {
		return err
	}
	if app.SubmittedAt.IsZero() {
		app.SubmittedAt = s.now()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.applications = append(s.applications, *app)
	return nil
}

// Applications returns submitted applications, oldest first.
func (s *Store) Applications() []models.ProviderApplication {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.ProviderApplication{}, s.applications...)
}

func (s *Store) SaveSession(ctx context.Context, session *models.Session) error {
	if session.ID == "" {
		return errEmptySessionID
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = *session
	return nil
}

func (s *Store) GetSession(ctx context.Context, id string) (*models.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	if !ok || sess.Expired(s.now()) {
		return nil, utils.ErrNotFound
	}
	return &sess, nil
}

func (s *Store) DeleteSession(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

func (s *Store) PurgeExpiredSessions(ctx context.Context, now time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for id, sess := range s.sessions {
		if sess.Expired(now) {
			delete(s.sessions, id)
			n++
		}
	}
	return n, nil
}
