package model

import "time"

// Profile is the per-identity record. The primary key is the auth provider's
// user id, profiles are created lazily on first sight of a new identity and
// never deleted.
type Profile struct {
	ID               string    `gorm:"primaryKey;type:uuid" json:"id"`
	Email            string    `gorm:"not null" json:"email"`
	SubscriptionType string    `gorm:"not null;default:free" json:"subscription_type"`
	Points           int64     `gorm:"not null;default:0" json:"points"`
	ReferralCode     string    `gorm:"not null;uniqueIndex" json:"referral_code"`
	Nickname         string    `json:"nickname"`
	CreatedAt        time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Profile) TableName() string {
	return "profiles"
}
