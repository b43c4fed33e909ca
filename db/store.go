package db

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/meinhoongagan/healthy-alternative/models"
	"github.com/meinhoongagan/healthy-alternative/store"
	"github.com/meinhoongagan/healthy-alternative/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	_ store.Store         = (*Store)(nil)
	_ store.Sessions      = (*Store)(nil)
	_ store.SessionPurger = (*Store)(nil)
)

// Store implements store.Store on PostgreSQL.
type Store struct {
	db *gorm.DB
}

func NewStore(gdb *gorm.DB) *Store {
	return &Store{db: gdb}
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.ErrNotFound
	}
	return err
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

func (s *Store) ListCategories(ctx context.Context) ([]models.ServiceCategory, error) {
	var categories []models.ServiceCategory
	if err := s.db.WithContext(ctx).Order("name").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (s *Store) ListProviders(ctx context.Context, filter models.ProviderFilter) ([]models.Provider, error) {
	providers := []models.Provider{}
	if err := providersQuery(s.db.WithContext(ctx), filter).Find(&providers).Error; err != nil {
		return nil, err
	}
	return providers, nil
}

// providersQuery turns filter into conditions on the providers table. tx
// must be a fresh session, not a chained query.
func providersQuery(tx *gorm.DB, filter models.ProviderFilter) *gorm.DB {
	q := tx.Model(&models.Provider{})

	if terms := filter.SpecialtyTerms(); terms != nil {
		group := tx.Where("LOWER(specialty) LIKE ?", containsPattern(terms[0]))
		for _, term := range terms[1:] {
			group = group.Or("LOWER(specialty) LIKE ?", containsPattern(term))
		}
		q = q.Where(group)
	}
	if loc := filter.LocationTerm(); loc != "" {
		pattern := containsPattern(loc)
		q = q.Where("LOWER(city) LIKE ? OR LOWER(state) LIKE ? OR LOWER(zip_code) LIKE ?", pattern, pattern, pattern)
	}
	if filter.AcceptsInsurance != nil {
		q = q.Where("accepts_insurance = ?", *filter.AcceptsInsurance)
	}
	if filter.NewPatientsWelcome != nil {
		q = q.Where("new_patients_welcome = ?", *filter.NewPatientsWelcome)
	}
	if filter.TelehealthAvailable != nil {
		q = q.Where("telehealth_available = ?", *filter.TelehealthAvailable)
	}
	if filter.EveningHours != nil {
		q = q.Where("evening_hours = ?", *filter.EveningHours)
	}
	return q.Order("id")
}

func (s *Store) GetProvider(ctx context.Context, id string) (*models.Provider, error) {
	var provider models.Provider
	if err := s.db.WithContext(ctx).First(&provider, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &provider, nil
}

func (s *Store) FeaturedProviders(ctx context.Context, limit int) ([]models.Provider, error) {
	providers := []models.Provider{}
	if err := featuredQuery(s.db.WithContext(ctx), limit).Find(&providers).Error; err != nil {
		return nil, err
	}
	return providers, nil
}

func featuredQuery(tx *gorm.DB, limit int) *gorm.DB {
	return tx.Where("rating >= ?", models.FeaturedMinRating).
		Order("rating DESC").Order("review_count DESC").
		Limit(limit)
}

func (s *Store) ListServicesByProvider(ctx context.Context, providerID string) ([]models.Service, error) {
	services := []models.Service{}
	if err := s.db.WithContext(ctx).Where("provider_id = ?", providerID).Order("id").Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}

func (s *Store) GetService(ctx context.Context, id string) (*models.Service, error) {
	var service models.Service
	if err := s.db.WithContext(ctx).First(&service, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &service, nil
}

func (s *Store) ListReviewsByProvider(ctx context.Context, providerID string) ([]models.Review, error) {
	reviews := []models.Review{}
	if err := s.db.WithContext(ctx).Where("provider_id = ?", providerID).Order("created_at DESC").Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

// CreateReview locks the provider row so concurrent reviews fold into the
// aggregate one at a time.
func (s *Store) CreateReview(ctx context.Context, review *models.Review) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var provider models.Provider
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&provider, "id = ?", review.ProviderID).Error
		if err != nil {
			return notFound(err)
		}
		if err := tx.Create(review).Error; err != nil {
			return err
		}
		provider.ApplyReview(review.Rating)
		return tx.Model(&provider).Updates(map[string]interface{}{
			"rating":       provider.Rating,
			"review_count": provider.ReviewCount,
		}).Error
	})
}

func (s *Store) CreateAppointment(ctx context.Context, appt *models.Appointment) error {
	return s.db.WithContext(ctx).Create(appt).Error
}

func (s *Store) HasOverlappingAppointment(ctx context.Context, providerID string, start, end time.Time) (bool, error) {
	var count int64
	if err := overlapQuery(s.db.WithContext(ctx), providerID, start, end).Scan(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// overlapQuery counts the provider's non-cancelled bookings whose
// [date, date+duration) intersects [start, end).
func overlapQuery(tx *gorm.DB, providerID string, start, end time.Time) *gorm.DB {
	return tx.Raw(`
		SELECT COUNT(*)
		FROM appointments a
		JOIN services s ON s.id = a.service_id
		WHERE a.provider_id = ? AND a.status <> ? AND
			a.appointment_date < ? AND
			a.appointment_date + s.duration * INTERVAL '1 minute' > ?
	`, providerID, models.StatusCancelled, end, start)
}

func (s *Store) ListCustomerAppointments(ctx context.Context, customerID string) ([]models.Appointment, error) {
	appointments := []models.Appointment{}
	err := s.db.WithContext(ctx).
		Preload("Provider").Preload("Service").
		Where("customer_id = ?", customerID).
		Order("appointment_date DESC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (s *Store) ListProviderAppointments(ctx context.Context, providerID string) ([]models.Appointment, error) {
	appointments := []models.Appointment{}
	err := s.db.WithContext(ctx).
		Preload("Service").
		Where("provider_id = ?", providerID).
		Order("appointment_date DESC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (s *Store) CountAppointments(ctx context.Context, providerID string, status models.AppointmentStatus) (int64, error) {
	var count int64
	q := s.db.WithContext(ctx).Model(&models.Appointment{}).Where("provider_id = ?", providerID)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if err := q.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (s *Store) UpcomingAppointments(ctx context.Context, from, to time.Time) ([]models.Appointment, error) {
	var appointments []models.Appointment
	err := s.db.WithContext(ctx).
		Preload("Provider").Preload("Service").
		Where("status = ? AND appointment_date >= ? AND appointment_date < ?", models.StatusScheduled, from, to).
		Order("appointment_date").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (s *Store) CreateProfileView(ctx context.Context, view *models.ProfileView) error {
	return s.db.WithContext(ctx).Create(view).Error
}

func (s *Store) CountProfileViews(ctx context.Context, providerID string, since time.Time) (int64, error) {
	var count int64
	q := s.db.WithContext(ctx).Model(&models.ProfileView{}).Where("provider_id = ?", providerID)
	if !since.IsZero() {
		q = q.Where("viewed_at >= ?", since)
	}
	if err := q.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (s *Store) RecentProfileViews(ctx context.Context, providerID string, limit int) ([]models.ProfileView, error) {
	views := []models.ProfileView{}
	err := s.db.WithContext(ctx).
		Where("provider_id = ?", providerID).
		Order("viewed_at DESC").
		Limit(limit).
		Find(&views).Error
	if err != nil {
		return nil, err
	}
	return views, nil
}

func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	err := s.db.WithContext(ctx).Create(user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return utils.ErrDuplicateEmail
	}
	return err
}

func (s *Store) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "email = ?", models.NormalizeEmail(email)).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

func (s *Store) UpdateUserPassword(ctx context.Context, id, hash string, at time.Time) error {
	res := s.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).
		Updates(map[string]interface{}{"password": hash, "updated_at": at})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return utils.ErrNotFound
	}
	return nil
}

func (s *Store) CreateProviderApplication(ctx context.Context, app *models.ProviderApplication) error {
	return s.db.WithContext(ctx).Create(app).Error
}
