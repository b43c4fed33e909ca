package controllers

import (
	"context"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/meinhoongagan/healthy-alternative/metrics"
	"github.com/meinhoongagan/healthy-alternative/models"
	"github.com/meinhoongagan/healthy-alternative/store"
	"github.com/meinhoongagan/healthy-alternative/utils"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	viewsWindowDays = 30
	recentViewLimit = 10
)

type DashboardStore interface {
	GetProvider(ctx context.Context, id string) (*models.Provider, error)
	store.Appointments
	store.ProfileViews
}

type DashboardController struct {
	store DashboardStore
	log   *zap.Logger
	now   func() time.Time
}

func NewDashboardController(st DashboardStore, log *zap.Logger) *DashboardController {
	return &DashboardController{store: st, log: log, now: time.Now}
}

type ProviderSummary struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Specialty string `json:"specialty"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	City      string `json:"city"`
	State     string `json:"state"`
}

type ServiceSummary struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Duration int             `json:"duration"`
}

type CustomerAppointment struct {
	ID              string                   `json:"id"`
	AppointmentDate time.Time                `json:"appointmentDate"`
	Status          models.AppointmentStatus `json:"status"`
	Notes           *string                  `json:"notes"`
	CreatedAt       time.Time                `json:"createdAt"`
	Provider        *ProviderSummary         `json:"provider"`
	Service         *ServiceSummary          `json:"service"`
}

// ProviderAppointment includes patient contact details; only the provider
// who owns the appointment sees it.
type ProviderAppointment struct {
	ID              string                   `json:"id"`
	AppointmentDate time.Time                `json:"appointmentDate"`
	Status          models.AppointmentStatus `json:"status"`
	PatientName     string                   `json:"patientName"`
	PatientEmail    string                   `json:"patientEmail"`
	PatientPhone    string                   `json:"patientPhone"`
	Notes           *string                  `json:"notes"`
	CreatedAt       time.Time                `json:"createdAt"`
	Service         *ServiceSummary          `json:"service"`
}

type ViewSummary struct {
	ID       string            `json:"id"`
	ViewedAt time.Time         `json:"viewedAt"`
	Source   models.ViewSource `json:"source"`
}

type ProfileViewStats struct {
	TotalViews      int64 `json:"totalViews"`
	ViewsLast30Days int64 `json:"viewsLast30Days"`
}

type AppointmentStats struct {
	TotalAppointments     int64 `json:"totalAppointments"`
	ScheduledAppointments int64 `json:"scheduledAppointments"`
	CompletedAppointments int64 `json:"completedAppointments"`
	CancelledAppointments int64 `json:"cancelledAppointments"`
}

type ProviderAnalytics struct {
	ProfileViews ProfileViewStats `json:"profileViews"`
	Appointments AppointmentStats `json:"appointments"`
	RecentViews  []ViewSummary    `json:"recentViews"`
}

type trackViewRequest struct {
	Source models.ViewSource `json:"source" validate:"omitempty,oneof=search direct category"`
}

func summarizeProvider(p *models.Provider) *ProviderSummary {
	if p == nil {
		return nil
	}
	return &ProviderSummary{
		ID:        p.ID,
		Name:      p.Name,
		Specialty: p.Specialty,
		Phone:     p.Phone,
		Address:   p.Address,
		City:      p.City,
		State:     p.State,
	}
}

func summarizeService(s *models.Service) *ServiceSummary {
	if s == nil {
		return nil
	}
	return &ServiceSummary{ID: s.ID, Name: s.Name, Price: s.Price, Duration: s.Duration}
}

// GetCustomerDashboard lists the caller's own appointments, latest first.
func (dc *DashboardController) GetCustomerDashboard(c *fiber.Ctx, user *models.User) error {
	appointments, err := dc.store.ListCustomerAppointments(c.UserContext(), user.ID)
	if err != nil {
		return err
	}

	out := make([]CustomerAppointment, 0, len(appointments))
	for i := range appointments {
		a := &appointments[i]
		out = append(out, CustomerAppointment{
			ID:              a.ID,
			AppointmentDate: a.AppointmentDate,
			Status:          a.Status,
			Notes:           a.Notes,
			CreatedAt:       a.CreatedAt,
			Provider:        summarizeProvider(a.Provider),
			Service:         summarizeService(a.Service),
		})
	}
	return c.JSON(fiber.Map{"appointments": out})
}

// GetProviderDashboard returns the linked provider's appointments and
// analytics. Counts are computed at request time.
func (dc *DashboardController) GetProviderDashboard(c *fiber.Ctx, user *models.User) error {
	if user.ProviderID == nil || *user.ProviderID == "" {
		return utils.ErrMissingProviderProfile
	}
	providerID := *user.ProviderID
	ctx := c.UserContext()

	appointments, err := dc.store.ListProviderAppointments(ctx, providerID)
	if err != nil {
		return err
	}
	out := make([]ProviderAppointment, 0, len(appointments))
	for i := range appointments {
		a := &appointments[i]
		out = append(out, ProviderAppointment{
			ID:              a.ID,
			AppointmentDate: a.AppointmentDate,
			Status:          a.Status,
			PatientName:     a.PatientName,
			PatientEmail:    a.PatientEmail,
			PatientPhone:    a.PatientPhone,
			Notes:           a.Notes,
			CreatedAt:       a.CreatedAt,
			Service:         summarizeService(a.Service),
		})
	}

	var analytics ProviderAnalytics
	if analytics.ProfileViews.TotalViews, err = dc.store.CountProfileViews(ctx, providerID, time.Time{}); err != nil {
		return err
	}
	since := dc.now().AddDate(0, 0, -viewsWindowDays)
	if analytics.ProfileViews.ViewsLast30Days, err = dc.store.CountProfileViews(ctx, providerID, since); err != nil {
		return err
	}

	counts := []struct {
		status models.AppointmentStatus
		dst    *int64
	}{
		{"", &analytics.Appointments.TotalAppointments},
		{models.StatusScheduled, &analytics.Appointments.ScheduledAppointments},
		{models.StatusCompleted, &analytics.Appointments.CompletedAppointments},
		{models.StatusCancelled, &analytics.Appointments.CancelledAppointments},
	}
	for _, cnt := range counts {
		if *cnt.dst, err = dc.store.CountAppointments(ctx, providerID, cnt.status); err != nil {
			return err
		}
	}

	views, err := dc.store.RecentProfileViews(ctx, providerID, recentViewLimit)
	if err != nil {
		return err
	}
	analytics.RecentViews = make([]ViewSummary, 0, len(views))
	for _, v := range views {
		analytics.RecentViews = append(analytics.RecentViews, ViewSummary{ID: v.ID, ViewedAt: v.ViewedAt, Source: v.Source})
	}

	return c.JSON(fiber.Map{
		"appointments": out,
		"analytics":    analytics,
	})
}

// TrackProfileView records an anonymous visit to a provider page.
func (dc *DashboardController) TrackProfileView(c *fiber.Ctx) error {
	var req trackViewRequest
	if len(strings.TrimSpace(string(c.Body()))) > 0 {
		if err := utils.ParseBody(c, &req); err != nil {
			return err
		}
	}
	if req.Source == "" {
		req.Source = models.SourceDirect
	}

	ctx := c.UserContext()
	providerID := c.Params("providerId")
	if _, err := dc.store.GetProvider(ctx, providerID); err != nil {
		return err
	}

	view := &models.ProfileView{
		ProviderID: providerID,
		ViewerIP:   c.IP(),
		Source:     req.Source,
		ViewedAt:   dc.now(),
	}
	if err := dc.store.CreateProfileView(ctx, view); err != nil {
		return err
	}
	metrics.ProfileViews.WithLabelValues(string(view.Source)).Inc()

	return c.JSON(fiber.Map{"message": "View tracked successfully"})
}
