package dto

import "time"

// ReportResult is the payload of a completed report request. For anonymous
// callers Teaser is set and ReportText is empty, never the other way around.
type ReportResult struct {
	Ticker     string     `json:"ticker"`
	Tier       AccessTier `json:"tier"`
	Quote      Quote      `json:"quote"`
	ReportText string     `json:"report_text,omitempty"`
	Teaser     string     `json:"teaser,omitempty"`
	Verdict    string     `json:"verdict,omitempty"`
	Degraded   bool       `json:"degraded"`
	TargetDate *time.Time `json:"target_date,omitempty"`
}
