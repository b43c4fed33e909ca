package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ApplicationStatus string

const (
	ApplicationUnderReview ApplicationStatus = "under_review"
	ApplicationApproved    ApplicationStatus = "approved"
	ApplicationRejected    ApplicationStatus = "rejected"
)

type ApplicationService struct {
	Name     string `json:"name" validate:"required"`
	Duration string `json:"duration" validate:"required"`
	Price    string `json:"price" validate:"required"`
}

// ProviderApplication is a practitioner's request to be listed, kept until
// someone reviews it.
type ProviderApplication struct {
	ID               string                       `json:"id" gorm:"type:varchar(64);primaryKey"`
	FirstName        string                       `json:"firstName" gorm:"not null"`
	LastName         string                       `json:"lastName" gorm:"not null"`
	Email            string                       `json:"email" gorm:"not null;index"`
	Phone            string                       `json:"phone" gorm:"not null"`
	Title            string                       `json:"title" gorm:"not null"`
	Specialties      JSONList[string]             `json:"specialties"`
	YearsExperience  string                       `json:"yearsExperience"`
	Licenses         string                       `json:"licenses" gorm:"type:text"`
	ClinicName       string                       `json:"clinicName"`
	Address          string                       `json:"address"`
	City             string                       `json:"city"`
	State            string                       `json:"state"`
	ZipCode          string                       `json:"zipCode"`
	Website          string                       `json:"website"`
	Services         JSONList[ApplicationService] `json:"services"`
	AcceptsInsurance bool                         `json:"acceptsInsurance"`
	Languages        JSONList[string]             `json:"languages"`
	Bio              string                       `json:"bio" gorm:"type:text"`
	PhotoURL         string                       `json:"photoUrl"`
	Status           ApplicationStatus            `json:"status" gorm:"type:varchar(16);not null;default:under_review;index"`
	SubmittedAt      time.Time                    `json:"submittedAt"`
}

func (a *ProviderApplication) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = "app_" + uuid.NewString()
	}
	if a.Status == "" {
		a.Status = ApplicationUnderReview
	}
	return nil
}
