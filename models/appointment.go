package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AppointmentStatus string

const (
	StatusScheduled AppointmentStatus = "scheduled"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
)

type Appointment struct {
	ID              string            `json:"id" gorm:"type:varchar(64);primaryKey"`
	ProviderID      string            `json:"providerId" gorm:"type:varchar(64);not null;index"`
	Provider        *Provider         `json:"-" gorm:"foreignKey:ProviderID"`
	ServiceID       string            `json:"serviceId" gorm:"type:varchar(64);not null"`
	Service         *Service          `json:"-" gorm:"foreignKey:ServiceID"`
	CustomerID      *string           `json:"customerId,omitempty" gorm:"type:varchar(64);index"`
	PatientName     string            `json:"patientName" gorm:"not null"`
	PatientEmail    string            `json:"patientEmail"`
	PatientPhone    string            `json:"patientPhone"`
	AppointmentDate time.Time         `json:"appointmentDate" gorm:"not null;index"`
	Status          AppointmentStatus `json:"status" gorm:"type:varchar(16);not null;default:scheduled"`
	Notes           *string           `json:"notes"`
	CreatedAt       time.Time         `json:"createdAt"`
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.Status == "" {
		a.Status = StatusScheduled
	}
	return nil
}

// EndsAt is the end of the appointment given the booked service's length.
func (a *Appointment) EndsAt(durationMinutes int) time.Time {
	return a.AppointmentDate.Add(time.Duration(durationMinutes) * time.Minute)
}
