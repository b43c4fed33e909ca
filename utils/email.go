package utils

import (
	"fmt"
	"time"

	"github.com/meinhoongagan/healthy-alternative/models"
	"gopkg.in/gomail.v2"
)

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Mailer sends transactional email over SMTP.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
}

// NewMailer returns nil when no SMTP host is configured; a nil *Mailer
// silently drops every message.
func NewMailer(cfg SMTPConfig) *Mailer {
	if cfg.Host == "" {
		return nil
	}
	from := cfg.From
	if from == "" {
		from = cfg.Username
	}
	return &Mailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   from,
	}
}

func (m *Mailer) SendEmail(to, subject, body string) error {
	if m == nil || to == "" {
		return nil
	}
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)
	return m.dialer.DialAndSend(msg)
}

func (m *Mailer) SendBookingConfirmation(appt *models.Appointment, provider *models.Provider, service *models.Service) error {
	subject := fmt.Sprintf("Appointment booked with %s", provider.Name)
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Your appointment has been scheduled.</p>
		<ul>
			<li><strong>Service:</strong> %s (%d min)</li>
			<li><strong>Provider:</strong> %s</li>
			<li><strong>When:</strong> %s</li>
			<li><strong>Where:</strong> %s, %s, %s %s</li>
		</ul>
		<p>To reschedule or cancel, call %s.</p>
	`, appt.PatientName, service.Name, service.Duration, provider.Name,
		appt.AppointmentDate.Format(time.RFC1123),
		provider.Address, provider.City, provider.State, provider.ZipCode,
		provider.Phone)

	return m.SendEmail(appt.PatientEmail, subject, body)
}

func (m *Mailer) SendAppointmentReminder(appt *models.Appointment) error {
	providerName, serviceName := "your provider", "your appointment"
	if appt.Provider != nil {
		providerName = appt.Provider.Name
	}
	if appt.Service != nil {
		serviceName = appt.Service.Name
	}
	subject := fmt.Sprintf("Reminder: Upcoming Appointment - %s", serviceName)
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>This is a reminder for your upcoming appointment scheduled in one hour.</p>
		<ul>
			<li><strong>Service:</strong> %s</li>
			<li><strong>Provider:</strong> %s</li>
			<li><strong>Start Time:</strong> %s</li>
		</ul>
		<p>Please arrive on time. If you need to reschedule or cancel, contact us as soon as possible.</p>
	`, appt.PatientName, serviceName, providerName,
		appt.AppointmentDate.Format("2006-01-02 15:04"))

	return m.SendEmail(appt.PatientEmail, subject, body)
}
