package model

import (
	"time"

	"gorm.io/datatypes"
)

// Report is the audit row for one generation call: the exact prompt sent and
// the raw API response, next to the extracted verdict.
type Report struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	ProfileID   string         `gorm:"not null;type:uuid;index" json:"profile_id"`
	Ticker      string         `gorm:"not null;index" json:"ticker"`
	Model       string         `gorm:"not null" json:"model"`
	Prompt      string         `gorm:"not null" json:"prompt"`
	Response    datatypes.JSON `gorm:"type:jsonb" json:"response"`
	Verdict     string         `gorm:"not null" json:"verdict"`
	MarketPrice float64        `gorm:"not null;default:0" json:"market_price"`
	Degraded    bool           `gorm:"not null;default:false" json:"degraded"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
}

func (Report) TableName() string {
	return "reports"
}
