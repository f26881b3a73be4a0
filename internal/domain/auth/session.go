package auth

import "time"

// Session is a server-side login session referenced by the sid cookie.
type Session struct {
	ID        string    `gorm:"primaryKey;column:id" json:"id"`
	UserID    string    `gorm:"index;not null;column:user_id" json:"user_id"`
	ExpiresAt time.Time `gorm:"index;not null;column:expires_at" json:"expires_at"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}

func (Session) TableName() string { return "session" }

func (s *Session) Expired(now time.Time) bool {
	return s == nil || !now.Before(s.ExpiresAt)
}
