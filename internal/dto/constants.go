package dto

// AccessTier is the caller's access level, derived per request. It controls
// whether the full report or a teaser is rendered and which generation model
// is requested.
type AccessTier string

const (
	TierAnonymous AccessTier = "anonymous"
	TierFree      AccessTier = "free"
	TierPremium   AccessTier = "premium"
)

const (
	SubscriptionFree    = "free"
	SubscriptionPremium = "premium"
)

const (
	VerdictStrongBuy = "STRONG BUY"
	VerdictBuy       = "BUY"
	VerdictHold      = "HOLD"
	VerdictSell      = "SELL"
)

// VerdictValues is the closed verdict enumeration the generator is instructed
// to choose from. Extraction does not clamp to it, see service.ExtractVerdict.
func VerdictValues() []string {
	return []string{
		VerdictStrongBuy,
		VerdictBuy,
		VerdictHold,
		VerdictSell,
	}
}
