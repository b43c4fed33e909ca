package memory

import (
	"context"
	"testing"
	"time"

	"github.com/meinhoongagan/healthy-alternative/models"
	"github.com/meinhoongagan/healthy-alternative/utils"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolPtr(b bool) *bool { return &b }

func providerIDs(ps []models.Provider) []string {
	ids := make([]string, 0, len(ps))
	for _, p := range ps {
		ids = append(ids, p.ID)
	}
	return ids
}

func TestListProvidersFilters(t *testing.T) {
	s := NewSeeded()
	ctx := context.Background()

	cases := []struct {
		name   string
		filter models.ProviderFilter
		want   []string
	}{
		{"no filter", models.ProviderFilter{}, []string{"provider-1", "provider-2", "provider-3", "provider-4"}},
		{"all sentinel", models.ProviderFilter{ServiceType: "all"}, []string{"provider-1", "provider-2", "provider-3", "provider-4"}},
		{"All Services sentinel", models.ProviderFilter{ServiceType: "All Services"}, []string{"provider-1", "provider-2", "provider-3", "provider-4"}},
		{"massage alias", models.ProviderFilter{ServiceType: "Massage Therapy"}, []string{"provider-3"}},
		{"acupuncture alias", models.ProviderFilter{ServiceType: "acupuncture"}, []string{"provider-1"}},
		{"chiropractic", models.ProviderFilter{ServiceType: "Chiropractic"}, []string{"provider-4"}},
		{"location by state", models.ProviderFilter{Location: "or"}, []string{"provider-2"}},
		{"location by zip", models.ProviderFilter{Location: "941"}, []string{"provider-3"}},
		{"telehealth", models.ProviderFilter{TelehealthAvailable: boolPtr(true)}, []string{"provider-2"}},
		{"explicit false", models.ProviderFilter{AcceptsInsurance: boolPtr(false)}, []string{"provider-2"}},
		{"conjunction", models.ProviderFilter{AcceptsInsurance: boolPtr(true), EveningHours: boolPtr(true), Location: "seattle"}, []string{"provider-1"}},
		{"no match", models.ProviderFilter{ServiceType: "reiki"}, []string{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := s.ListProviders(ctx, tc.filter)
			require.NoError(t, err)
			assert.Equal(t, tc.want, providerIDs(got))
		})
	}
}

func TestFeaturedProvidersOrdering(t *testing.T) {
	s := NewSeeded()
	require.NoError(t, s.AddProvider(&models.Provider{ID: "low", Name: "Low", Rating: decimal.RequireFromString("4.6"), ReviewCount: 500}))
	require.NoError(t, s.AddProvider(&models.Provider{ID: "edge", Name: "Edge", Rating: decimal.RequireFromString("4.7"), ReviewCount: 1}))

	got, err := s.FeaturedProviders(context.Background(), models.FeaturedLimit)
	require.NoError(t, err)

	// 5.0, then the two 4.9s by review count, then 4.8
	assert.Equal(t, []string{"provider-3", "provider-4", "provider-1", "provider-2"}, providerIDs(got))
	for _, p := range got {
		assert.True(t, p.Rating.GreaterThanOrEqual(models.FeaturedMinRating))
	}
}

func TestCreateReviewUpdatesAggregate(t *testing.T) {
	s := NewSeeded()
	ctx := context.Background()

	review := &models.Review{ProviderID: "provider-3", PatientName: "Ann", Rating: 1, Content: "meh"}
	require.NoError(t, s.CreateReview(ctx, review))
	assert.NotEmpty(t, review.ID)
	assert.False(t, review.CreatedAt.IsZero())

	p, err := s.GetProvider(ctx, "provider-3")
	require.NoError(t, err)
	assert.Equal(t, 65, p.ReviewCount)
	// (5.0*64 + 1) / 65 = 4.9384...
	assert.Equal(t, "4.94", p.Rating.StringFixed(2))

	reviews, err := s.ListReviewsByProvider(ctx, "provider-3")
	require.NoError(t, err)
	require.Len(t, reviews, 2)
	assert.Equal(t, review.ID, reviews[0].ID)
}

func TestCreateReviewRejectsBadInput(t *testing.T) {
	s := NewSeeded()
	ctx := context.Background()

	err := s.CreateReview(ctx, &models.Review{ProviderID: "missing", PatientName: "A", Rating: 4, Content: "x"})
	assert.ErrorIs(t, err, utils.ErrNotFound)

	err = s.CreateReview(ctx, &models.Review{ProviderID: "provider-1", PatientName: "A", Rating: 6, Content: "x"})
	assert.Error(t, err)

	p, err := s.GetProvider(ctx, "provider-1")
	require.NoError(t, err)
	assert.Equal(t, 127, p.ReviewCount)
}

func TestUsersAreCaseInsensitive(t *testing.T) {
	s := New()
	ctx := context.Background()

	require.NoError(t, s.CreateUser(ctx, &models.User{Email: "Ann@Example.com", Password: "h", FirstName: "A", LastName: "B"}))
	err := s.CreateUser(ctx, &models.User{Email: "ann@example.COM", Password: "h", FirstName: "A", LastName: "B"})
	assert.ErrorIs(t, err, utils.ErrDuplicateEmail)

	u, err := s.GetUserByEmail(ctx, "ANN@example.com")
	require.NoError(t, err)
	assert.Equal(t, "ann@example.com", u.Email)
	assert.Equal(t, models.UserTypeCustomer, u.UserType)

	_, err = s.GetUserByID(ctx, "nope")
	assert.ErrorIs(t, err, utils.ErrNotFound)
}

func TestAppointmentsAndOverlap(t *testing.T) {
	s := NewSeeded()
	ctx := context.Background()
	customer := "user-1"
	start := time.Date(2030, 5, 1, 10, 0, 0, 0, time.UTC)

	first := &models.Appointment{ProviderID: "provider-1", ServiceID: "service-2", CustomerID: &customer, PatientName: "A", PatientEmail: "a@x.com", AppointmentDate: start}
	require.NoError(t, s.CreateAppointment(ctx, first))
	assert.Equal(t, models.StatusScheduled, first.Status)

	// service-2 lasts 60 minutes
	overlap, err := s.HasOverlappingAppointment(ctx, "provider-1", start.Add(30*time.Minute), start.Add(90*time.Minute))
	require.NoError(t, err)
	assert.True(t, overlap)

	overlap, err = s.HasOverlappingAppointment(ctx, "provider-1", start.Add(time.Hour), start.Add(2*time.Hour))
	require.NoError(t, err)
	assert.False(t, overlap, "back-to-back slots do not overlap")

	overlap, err = s.HasOverlappingAppointment(ctx, "provider-2", start, start.Add(time.Hour))
	require.NoError(t, err)
	assert.False(t, overlap)

	later := &models.Appointment{ProviderID: "provider-3", ServiceID: "service-6", CustomerID: &customer, PatientName: "A", PatientPhone: "555", AppointmentDate: start.Add(48 * time.Hour), Status: models.StatusCompleted}
	require.NoError(t, s.CreateAppointment(ctx, later))

	list, err := s.ListCustomerAppointments(ctx, customer)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, later.ID, list[0].ID)
	require.NotNil(t, list[0].Provider)
	require.NotNil(t, list[0].Service)
	assert.Equal(t, "Lisa Wang", list[0].Provider.Name)

	n, err := s.CountAppointments(ctx, "provider-3", "")
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
	n, err = s.CountAppointments(ctx, "provider-3", models.StatusScheduled)
	require.NoError(t, err)
	assert.EqualValues(t, 0, n)

	upcoming, err := s.UpcomingAppointments(ctx, start, start.Add(time.Minute))
	require.NoError(t, err)
	require.Len(t, upcoming, 1)
	assert.Equal(t, first.ID, upcoming[0].ID)
}

func TestProfileViews(t *testing.T) {
	s := NewSeeded()
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, s.CreateProfileView(ctx, &models.ProfileView{ProviderID: "provider-1", ViewedAt: now.Add(-40 * 24 * time.Hour)}))
	for i := 0; i < 12; i++ {
		require.NoError(t, s.CreateProfileView(ctx, &models.ProfileView{ProviderID: "provider-1", ViewedAt: now.Add(-time.Duration(i) * time.Hour), Source: models.SourceSearch}))
	}

	total, err := s.CountProfileViews(ctx, "provider-1", time.Time{})
	require.NoError(t, err)
	assert.EqualValues(t, 13, total)

	recent, err := s.CountProfileViews(ctx, "provider-1", now.AddDate(0, 0, -30))
	require.NoError(t, err)
	assert.EqualValues(t, 12, recent)

	views, err := s.RecentProfileViews(ctx, "provider-1", 10)
	require.NoError(t, err)
	require.Len(t, views, 10)
	assert.True(t, views[0].ViewedAt.After(views[9].ViewedAt))
}

func TestSessionsExpire(t *testing.T) {
	s := New()
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, s.SaveSession(ctx, &models.Session{ID: "live", UserID: "u", ExpiresAt: now.Add(time.Hour)}))
	require.NoError(t, s.SaveSession(ctx, &models.Session{ID: "dead", UserID: "u", ExpiresAt: now.Add(-time.Second)}))

	sess, err := s.GetSession(ctx, "live")
	require.NoError(t, err)
	assert.Equal(t, "u", sess.UserID)

	_, err = s.GetSession(ctx, "dead")
	assert.ErrorIs(t, err, utils.ErrNotFound)

	n, err := s.PurgeExpiredSessions(ctx, now)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	require.NoError(t, s.DeleteSession(ctx, "live"))
	_, err = s.GetSession(ctx, "live")
	assert.ErrorIs(t, err, utils.ErrNotFound)
}
