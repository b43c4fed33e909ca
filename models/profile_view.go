package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ViewSource string

const (
	SourceSearch   ViewSource = "search"
	SourceDirect   ViewSource = "direct"
	SourceCategory ViewSource = "category"
)

// ProfileView is one visit to a provider's detail page.
type ProfileView struct {
	ID         string     `json:"id" gorm:"type:varchar(64);primaryKey"`
	ProviderID string     `json:"providerId" gorm:"type:varchar(64);not null;index:idx_profile_views_provider_viewed"`
	Provider   *Provider  `json:"-" gorm:"foreignKey:ProviderID"`
	ViewerIP   string     `json:"-"`
	ViewedAt   time.Time  `json:"viewedAt" gorm:"not null;index:idx_profile_views_provider_viewed"`
	Source     ViewSource `json:"source" gorm:"type:varchar(16);not null;default:direct"`
}

func (v *ProfileView) BeforeCreate(tx *gorm.DB) error {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	if v.Source == "" {
		v.Source = SourceDirect
	}
	return nil
}
