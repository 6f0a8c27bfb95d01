package model

import "time"

// Prediction is the append-only outcome of one completed report generation:
// the verdict at the price seen at analysis time, to be checked against the
// market on TargetDate. Outcome fields stay NULL until the evaluator runs.
type Prediction struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	ProfileID    string     `gorm:"not null;type:uuid;index" json:"profile_id"`
	Ticker       string     `gorm:"not null;index" json:"ticker"`
	Price        float64    `gorm:"not null" json:"price"`
	Verdict      string     `gorm:"not null" json:"verdict"`
	TargetDate   time.Time  `gorm:"not null;index" json:"target_date"`
	OutcomePrice *float64   `json:"outcome_price,omitempty"`
	VerdictHit   *bool      `json:"verdict_hit,omitempty"`
	EvaluatedAt  *time.Time `json:"evaluated_at,omitempty"`
	CreatedAt    time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

func (Prediction) TableName() string {
	return "predictions"
}
