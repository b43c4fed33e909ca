package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ServiceCategory struct {
	ID            string `json:"id" gorm:"type:varchar(64);primaryKey"`
	Name          string `json:"name" gorm:"not null"`
	Description   string `json:"description" gorm:"not null"`
	Icon          string `json:"icon" gorm:"not null"`
	ProviderCount int    `json:"providerCount" gorm:"default:0"` // informational only
}

func (c *ServiceCategory) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

type Service struct {
	ID          string           `json:"id" gorm:"type:varchar(64);primaryKey"`
	ProviderID  string           `json:"providerId" gorm:"type:varchar(64);not null;index"`
	Provider    *Provider        `json:"-" gorm:"foreignKey:ProviderID"`
	Name        string           `json:"name" gorm:"not null"`
	Description string           `json:"description" gorm:"type:text;not null"`
	Price       decimal.Decimal  `json:"price" gorm:"type:decimal(10,2);not null"`
	Duration    int              `json:"duration" gorm:"not null"` // minutes
	CategoryID  *string          `json:"categoryId" gorm:"type:varchar(64)"`
	Category    *ServiceCategory `json:"-" gorm:"foreignKey:CategoryID"`
}

func (s *Service) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}
