package db

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/meinhoongagan/healthy-alternative/models"
	"github.com/meinhoongagan/healthy-alternative/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// openTestPostgres runs against TEST_DATABASE_URL and wipes its tables.
func openTestPostgres(t *testing.T) *Store {
	t.Helper()
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	gdb, err := Open(url, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, Migrate(gdb))
	require.NoError(t, gdb.Exec(`TRUNCATE appointments, profile_views, reviews, services, providers,
		service_categories, sessions, users, provider_applications CASCADE`).Error)
	require.NoError(t, Seed(context.Background(), gdb, zap.NewNop()))
	return NewStore(gdb)
}

func TestPostgresOverlap(t *testing.T) {
	st := openTestPostgres(t)
	ctx := context.Background()
	start := time.Now().Add(48 * time.Hour).UTC().Truncate(time.Minute)

	appt := &models.Appointment{
		ProviderID: "provider-4", ServiceID: "service-7", PatientName: "Jo",
		PatientPhone: "5550000", AppointmentDate: start,
	}
	require.NoError(t, st.CreateAppointment(ctx, appt))

	taken, err := st.HasOverlappingAppointment(ctx, "provider-4", start.Add(15*time.Minute), start.Add(45*time.Minute))
	require.NoError(t, err)
	assert.True(t, taken)

	// service-7 lasts 30 minutes
	taken, err = st.HasOverlappingAppointment(ctx, "provider-4", start.Add(30*time.Minute), start.Add(60*time.Minute))
	require.NoError(t, err)
	assert.False(t, taken)

	require.NoError(t, st.db.Model(appt).Update("status", models.StatusCancelled).Error)
	taken, err = st.HasOverlappingAppointment(ctx, "provider-4", start, start.Add(30*time.Minute))
	require.NoError(t, err)
	assert.False(t, taken)
}

func TestPostgresSessions(t *testing.T) {
	st := openTestPostgres(t)
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, st.SaveSession(ctx, &models.Session{ID: "live", UserID: "u", ExpiresAt: now.Add(time.Hour)}))
	require.NoError(t, st.SaveSession(ctx, &models.Session{ID: "old", UserID: "u", ExpiresAt: now.Add(-time.Hour)}))

	live, err := st.GetSession(ctx, "live")
	require.NoError(t, err)
	assert.Equal(t, "u", live.UserID)
	_, err = st.GetSession(ctx, "old")
	assert.ErrorIs(t, err, utils.ErrNotFound)

	n, err := st.PurgeExpiredSessions(ctx, now)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestPostgresDuplicateEmail(t *testing.T) {
	st := openTestPostgres(t)
	ctx := context.Background()

	require.NoError(t, st.CreateUser(ctx, &models.User{Email: "a@x.com", Password: "h", FirstName: "A", LastName: "B"}))
	err := st.CreateUser(ctx, &models.User{Email: "A@x.com", Password: "h", FirstName: "A", LastName: "B"})
	assert.ErrorIs(t, err, utils.ErrDuplicateEmail)
}
