package db

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/meinhoongagan/healthy-alternative/models"
	"github.com/meinhoongagan/healthy-alternative/utils"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newSeededSQLite migrates and seeds a throwaway sqlite file.
func newSeededSQLite(t *testing.T) (*gorm.DB, *Store) {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "store.db")), &gorm.Config{
		Logger: logger.Discard,
	})
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, Migrate(gdb))
	require.NoError(t, Seed(context.Background(), gdb, zap.NewNop()))
	return gdb, NewStore(gdb)
}

func count(t *testing.T, gdb *gorm.DB, model interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, gdb.Model(model).Count(&n).Error)
	return n
}

func TestSeedFillsEveryTable(t *testing.T) {
	gdb, st := newSeededSQLite(t)
	ctx := context.Background()

	assert.EqualValues(t, 4, count(t, gdb, &models.ServiceCategory{}))
	assert.EqualValues(t, 4, count(t, gdb, &models.Provider{}))
	assert.EqualValues(t, 7, count(t, gdb, &models.Service{}))
	assert.EqualValues(t, 4, count(t, gdb, &models.Review{}))

	categories, err := st.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 4)
	for _, c := range categories {
		assert.NotEmpty(t, c.Name)
		assert.Positive(t, c.ProviderCount)
	}

	provider, err := st.GetProvider(ctx, "provider-3")
	require.NoError(t, err)
	assert.Equal(t, "Lisa Wang", provider.Name)
	assert.Equal(t, 64, provider.ReviewCount)
	assert.True(t, provider.Rating.Equal(decimal.NewFromInt(5)))

	service, err := st.GetService(ctx, "service-6")
	require.NoError(t, err)
	assert.Equal(t, "provider-3", service.ProviderID)
	assert.Equal(t, 90, service.Duration)
}

func TestSeedIsIdempotent(t *testing.T) {
	gdb, _ := newSeededSQLite(t)

	require.NoError(t, Seed(context.Background(), gdb, zap.NewNop()))
	assert.EqualValues(t, 4, count(t, gdb, &models.Provider{}))
	assert.EqualValues(t, 7, count(t, gdb, &models.Service{}))
}

func TestListProvidersFiltersRows(t *testing.T) {
	_, st := newSeededSQLite(t)
	yes := true

	ids := func(filter models.ProviderFilter) []string {
		providers, err := st.ListProviders(context.Background(), filter)
		require.NoError(t, err)
		out := []string{}
		for _, p := range providers {
			out = append(out, p.ID)
		}
		return out
	}

	assert.Len(t, ids(models.ProviderFilter{}), 4)
	assert.Equal(t, []string{"provider-3"}, ids(models.ProviderFilter{ServiceType: "Massage Therapy"}))
	assert.Equal(t, []string{"provider-2"}, ids(models.ProviderFilter{ServiceType: "naturopathy"}))
	assert.Equal(t, []string{"provider-4"}, ids(models.ProviderFilter{Location: "787"}))
	assert.Equal(t, []string{"provider-1"}, ids(models.ProviderFilter{Location: "seattle", AcceptsInsurance: &yes}))
	assert.Equal(t, []string{"provider-2"}, ids(models.ProviderFilter{TelehealthAvailable: &yes}))
	assert.Empty(t, ids(models.ProviderFilter{ServiceType: "reiki"}))
}

func TestFeaturedProvidersOrder(t *testing.T) {
	_, st := newSeededSQLite(t)

	providers, err := st.FeaturedProviders(context.Background(), models.FeaturedLimit)
	require.NoError(t, err)

	ids := []string{}
	for _, p := range providers {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []string{"provider-3", "provider-4", "provider-1", "provider-2"}, ids)
}

func TestCreateReviewUpdatesProvider(t *testing.T) {
	_, st := newSeededSQLite(t)
	ctx := context.Background()

	review := &models.Review{ProviderID: "provider-3", PatientName: "Ana", Rating: 1, Content: "Too firm", Verified: true}
	require.NoError(t, st.CreateReview(ctx, review))
	assert.NotEmpty(t, review.ID)

	provider, err := st.GetProvider(ctx, "provider-3")
	require.NoError(t, err)
	assert.Equal(t, 65, provider.ReviewCount)
	assert.Equal(t, "4.94", provider.Rating.StringFixed(2))

	reviews, err := st.ListReviewsByProvider(ctx, "provider-3")
	require.NoError(t, err)
	require.Len(t, reviews, 2)
}

func TestCreateReviewRollsBack(t *testing.T) {
	gdb, st := newSeededSQLite(t)
	ctx := context.Background()

	err := st.CreateReview(ctx, &models.Review{ProviderID: "nope", PatientName: "Ana", Rating: 4, Content: "x"})
	assert.ErrorIs(t, err, utils.ErrNotFound)

	err = st.CreateReview(ctx, &models.Review{ProviderID: "provider-1", PatientName: "Ana", Rating: 9, Content: "x"})
	require.Error(t, err)

	provider, err := st.GetProvider(ctx, "provider-1")
	require.NoError(t, err)
	assert.Equal(t, 127, provider.ReviewCount)
	assert.EqualValues(t, 4, count(t, gdb, &models.Review{}))
}

func TestAppointmentsAndCounts(t *testing.T) {
	_, st := newSeededSQLite(t)
	ctx := context.Background()
	at := time.Date(2026, 6, 1, 15, 0, 0, 0, time.UTC)

	for i, status := range []models.AppointmentStatus{models.StatusScheduled, models.StatusScheduled, models.StatusCancelled} {
		require.NoError(t, st.CreateAppointment(ctx, &models.Appointment{
			ProviderID: "provider-1", ServiceID: "service-2", PatientName: "Jo",
			PatientPhone: "5550000", AppointmentDate: at.Add(time.Duration(i) * time.Hour), Status: status,
		}))
	}

	total, err := st.CountAppointments(ctx, "provider-1", "")
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	cancelled, err := st.CountAppointments(ctx, "provider-1", models.StatusCancelled)
	require.NoError(t, err)
	assert.EqualValues(t, 1, cancelled)

	appointments, err := st.ListProviderAppointments(ctx, "provider-1")
	require.NoError(t, err)
	require.Len(t, appointments, 3)
	require.NotNil(t, appointments[0].Service)
	assert.Equal(t, "Cupping Therapy", appointments[0].Service.Name)
}

func TestUsers(t *testing.T) {
	_, st := newSeededSQLite(t)
	ctx := context.Background()

	user := &models.User{Email: "a@x.com", Password: "hash", FirstName: "A", LastName: "B", UserType: models.UserTypeCustomer}
	require.NoError(t, st.CreateUser(ctx, user))

	found, err := st.GetUserByEmail(ctx, "A@X.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)

	require.NoError(t, st.UpdateUserPassword(ctx, user.ID, "new-hash", time.Now()))
	found, err = st.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "new-hash", found.Password)

	assert.ErrorIs(t, st.UpdateUserPassword(ctx, "nope", "x", time.Now()), utils.ErrNotFound)
	_, err = st.GetUserByID(ctx, "nope")
	assert.ErrorIs(t, err, utils.ErrNotFound)
}
