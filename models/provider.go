package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const FeaturedLimit = 4

// FeaturedMinRating is the lowest rating shown on the featured list.
var FeaturedMinRating = decimal.RequireFromString("4.7")

type OfficeHours struct {
	Day   string `json:"day"`
	Hours string `json:"hours"`
}

// Provider is a bookable practitioner or practice profile. Rating and
// ReviewCount are maintained from the provider's reviews.
type Provider struct {
	ID                  string                `json:"id" gorm:"type:varchar(64);primaryKey"`
	Name                string                `json:"name" gorm:"not null"`
	Specialty           string                `json:"specialty" gorm:"not null;index"`
	Title               string                `json:"title" gorm:"not null"`
	Bio                 string                `json:"bio" gorm:"type:text;not null"`
	Experience          string                `json:"experience" gorm:"not null"`
	Philosophy          *string               `json:"philosophy"`
	Phone               string                `json:"phone" gorm:"not null"`
	Email               string                `json:"email" gorm:"not null"`
	Address             string                `json:"address" gorm:"not null"`
	City                string                `json:"city" gorm:"not null"`
	State               string                `json:"state" gorm:"not null"`
	ZipCode             string                `json:"zipCode" gorm:"not null"`
	Rating              decimal.Decimal       `json:"rating" gorm:"type:decimal(3,2);not null;default:0"`
	ReviewCount         int                   `json:"reviewCount" gorm:"not null;default:0"`
	ImageURL            *string               `json:"imageUrl"`
	AcceptsInsurance    bool                  `json:"acceptsInsurance" gorm:"not null;default:false"`
	NewPatientsWelcome  bool                  `json:"newPatientsWelcome" gorm:"not null;default:true"`
	TelehealthAvailable bool                  `json:"telehealthAvailable" gorm:"not null;default:false"`
	EveningHours        bool                  `json:"eveningHours" gorm:"not null;default:false"`
	OfficeHours         JSONList[OfficeHours] `json:"officeHours"`
	NextAvailable       *string               `json:"nextAvailable"`
}

func (p *Provider) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// ApplyReview folds one more review into the provider's running average.
func (p *Provider) ApplyReview(rating int) {
	count := decimal.NewFromInt(int64(p.ReviewCount))
	total := p.Rating.Mul(count).Add(decimal.NewFromInt(int64(rating)))
	p.ReviewCount++
	p.Rating = total.Div(decimal.NewFromInt(int64(p.ReviewCount))).Round(2)
}

// IsFeatured reports whether the provider qualifies for the featured list.
func (p *Provider) IsFeatured() bool {
	return p.Rating.GreaterThanOrEqual(FeaturedMinRating)
}
