package models

import "time"

// Session maps an opaque cookie value to an authenticated user.
type Session struct {
	ID        string    `json:"id" gorm:"type:varchar(128);primaryKey"`
	UserID    string    `json:"userId" gorm:"type:varchar(64);not null;index"`
	ExpiresAt time.Time `json:"expiresAt" gorm:"not null;index"`
	CreatedAt time.Time `json:"createdAt"`
}

func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
