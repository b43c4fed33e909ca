package controllers

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/meinhoongagan/healthy-alternative/metrics"
	"github.com/meinhoongagan/healthy-alternative/middleware"
	"github.com/meinhoongagan/healthy-alternative/models"
	"github.com/meinhoongagan/healthy-alternative/queue"
	"github.com/meinhoongagan/healthy-alternative/store"
	"github.com/meinhoongagan/healthy-alternative/utils"
	"go.uber.org/zap"
)

// BookingStore is what booking needs from persistence.
type BookingStore interface {
	GetProvider(ctx context.Context, id string) (*models.Provider, error)
	GetService(ctx context.Context, id string) (*models.Service, error)
	store.Appointments
}

type BookingController struct {
	store         BookingStore
	notifier      Notifier
	events        EventPublisher
	rejectOverlap bool
	log           *zap.Logger
	now           func() time.Time
}

func NewBookingController(st BookingStore, notifier Notifier, events EventPublisher, rejectOverlap bool, log *zap.Logger) *BookingController {
	return &BookingController{
		store:         st,
		notifier:      notifier,
		events:        events,
		rejectOverlap: rejectOverlap,
		log:           log,
		now:           time.Now,
	}
}

type appointmentRequest struct {
	ProviderID      string     `json:"providerId" validate:"required"`
	ServiceID       string     `json:"serviceId" validate:"required"`
	PatientName     string     `json:"patientName" validate:"notblank"`
	PatientEmail    string     `json:"patientEmail" validate:"omitempty,email"`
	PatientPhone    string     `json:"patientPhone"`
	AppointmentDate *time.Time `json:"appointmentDate" validate:"required"`
	Notes           *string    `json:"notes"`
}

// CreateAppointment godoc
// @Summary Book an appointment
// @Description Guests and signed-in customers can book. Status always starts as scheduled.
// @Tags appointments
// @Accept json
// @Produce json
// @Param appointment body appointmentRequest true "Appointment"
// @Success 201 {object} models.Appointment
// @Failure 400 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Router /api/appointments [post]
func (bc *BookingController) CreateAppointment(c *fiber.Ctx) error {
	var req appointmentRequest
	if err := utils.ParseBody(c, &req); err != nil {
		return err
	}
	req.PatientEmail = strings.TrimSpace(req.PatientEmail)
	req.PatientPhone = strings.TrimSpace(req.PatientPhone)
	if req.PatientEmail == "" && req.PatientPhone == "" {
		return utils.NewValidationError("Invalid input", map[string]string{
			"patientEmail": "email or phone is required",
			"patientPhone": "email or phone is required",
		})
	}
	if req.AppointmentDate.Before(bc.now()) {
		return utils.InvalidField("appointmentDate", "must be in the future")
	}

	ctx := c.UserContext()
	provider, err := bc.store.GetProvider(ctx, req.ProviderID)
	if errors.Is(err, utils.ErrNotFound) {
		return utils.InvalidField("providerId", "provider does not exist")
	}
	if err != nil {
		return err
	}
	service, err := bc.store.GetService(ctx, req.ServiceID)
	if errors.Is(err, utils.ErrNotFound) {
		return utils.InvalidField("serviceId", "service does not exist")
	}
	if err != nil {
		return err
	}
	if service.ProviderID != provider.ID {
		return utils.InvalidField("serviceId", "service is not offered by this provider")
	}

	appt := &models.Appointment{
		ProviderID:      provider.ID,
		ServiceID:       service.ID,
		PatientName:     strings.TrimSpace(req.PatientName),
		PatientEmail:    req.PatientEmail,
		PatientPhone:    req.PatientPhone,
		AppointmentDate: req.AppointmentDate.UTC(),
		Status:          models.StatusScheduled,
		Notes:           req.Notes,
	}
	if user := middleware.CurrentUser(c); user != nil && user.UserType == models.UserTypeCustomer {
		appt.CustomerID = &user.ID
	}

	if bc.rejectOverlap {
		taken, err := bc.store.HasOverlappingAppointment(ctx, provider.ID, appt.AppointmentDate, appt.EndsAt(service.Duration))
		if err != nil {
			return err
		}
		if taken {
			return utils.ErrSlotTaken
		}
	}

	if err := bc.store.CreateAppointment(ctx, appt); err != nil {
		return err
	}
	metrics.AppointmentsCreated.Inc()
	bc.log.Info("appointment created",
		zap.String("appointment_id", appt.ID),
		zap.String("provider_id", appt.ProviderID),
		zap.Time("appointment_date", appt.AppointmentDate),
	)

	// the appointment stands even if these fail
	bc.confirm(*appt, provider, service)
	publish(ctx, bc.events, bc.log, queue.EventAppointmentCreated, appt.ProviderID, appt)

	return c.Status(fiber.StatusCreated).JSON(appt)
}

func (bc *BookingController) confirm(appt models.Appointment, provider *models.Provider, service *models.Service) {
	if bc.notifier == nil || appt.PatientEmail == "" {
		return
	}
	go func() {
		if err := bc.notifier.SendBookingConfirmation(&appt, provider, service); err != nil {
			bc.log.Warn("booking confirmation not sent", zap.String("appointment_id", appt.ID), zap.Error(err))
		}
	}()
}
