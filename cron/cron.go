package cron

import (
	"context"
	"time"

	"github.com/meinhoongagan/healthy-alternative/metrics"
	"github.com/meinhoongagan/healthy-alternative/models"
	"github.com/meinhoongagan/healthy-alternative/store"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// ReminderSender delivers the one-hour reminder for a booking.
type ReminderSender interface {
	SendAppointmentReminder(appt *models.Appointment) error
}

type Scheduler struct {
	cron         *cron.Cron
	appointments store.Appointments
	sessions     store.SessionPurger
	reminders    ReminderSender
	log          *zap.Logger
	now          func() time.Time
}

// NewScheduler wires the background jobs. A nil purger or sender skips
// the matching job.
func NewScheduler(appointments store.Appointments, sessions store.SessionPurger, reminders ReminderSender, log *zap.Logger) *Scheduler {
	return &Scheduler{
		cron:         cron.New(),
		appointments: appointments,
		sessions:     sessions,
		reminders:    reminders,
		log:          log.Named("cron"),
		now:          time.Now,
	}
}

// Start registers the jobs and starts the scheduler.
func (s *Scheduler) Start() error {
	if s.sessions != nil {
		if _, err := s.cron.AddFunc("@hourly", func() { s.PurgeSessions(context.Background()) }); err != nil {
			return err
		}
	}
	if s.reminders != nil {
		// every minute, for bookings starting an hour from now
		if _, err := s.cron.AddFunc("* * * * *", func() { s.SendReminders(context.Background()) }); err != nil {
			return err
		}
	}
	s.cron.Start()
	s.log.Info("Cron job scheduler started", zap.Int("jobs", len(s.cron.Entries())))
	return nil
}

// Stop waits for running jobs to finish or ctx to expire.
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
	}
}

func (s *Scheduler) PurgeSessions(ctx context.Context) {
	n, err := s.sessions.PurgeExpiredSessions(ctx, s.now())
	if err != nil {
		s.log.Error("Failed to purge expired sessions", zap.Error(err))
		return
	}
	if n > 0 {
		s.log.Info("Purged expired sessions", zap.Int64("count", n))
	}
}

// SendReminders mails every scheduled appointment that starts within the
// minute one hour from now. Running once a minute covers each booking once.
func (s *Scheduler) SendReminders(ctx context.Context) {
	start := s.now().Truncate(time.Minute).Add(time.Hour)
	appointments, err := s.appointments.UpcomingAppointments(ctx, start, start.Add(time.Minute))
	if err != nil {
		s.log.Error("Error fetching appointments for reminders", zap.Error(err))
		return
	}

	for i := range appointments {
		appt := &appointments[i]
		if appt.PatientEmail == "" {
			metrics.RemindersSent.WithLabelValues("skipped").Inc()
			continue
		}
		if err := s.reminders.SendAppointmentReminder(appt); err != nil {
			metrics.RemindersSent.WithLabelValues("failed").Inc()
			s.log.Warn("Failed to send reminder", zap.String("appointment_id", appt.ID), zap.Error(err))
			continue
		}
		metrics.RemindersSent.WithLabelValues("sent").Inc()
		s.log.Debug("Sent reminder", zap.String("appointment_id", appt.ID))
	}
}
