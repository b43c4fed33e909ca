package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	MinRating = 1
	MaxRating = 5
)

type Review struct {
	ID          string    `json:"id" gorm:"type:varchar(64);primaryKey"`
	ProviderID  string    `json:"providerId" gorm:"type:varchar(64);not null;index"`
	Provider    *Provider `json:"-" gorm:"foreignKey:ProviderID"`
	PatientName string    `json:"patientName" gorm:"not null"`
	Rating      int       `json:"rating" gorm:"not null"`
	Content     string    `json:"content" gorm:"type:text;not null"`
	CreatedAt   time.Time `json:"createdAt" gorm:"index"`
	Verified    bool      `json:"verified" gorm:"default:true"`
}

// BeforeCreate hook to validate rating
func (r *Review) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.Rating < MinRating || r.Rating > MaxRating {
		return fmt.Errorf("rating %d out of range %d-%d", r.Rating, MinRating, MaxRating)
	}
	return nil
}
