package service

import (
	"tetrades/internal/dto"
	"tetrades/internal/model"
)

// ResolveTier derives the caller's access tier for this request. It is pure
// and total: an absent identity or profile is a valid input, not a failure.
func ResolveTier(identity *dto.Identity, profile *model.Profile) dto.AccessTier {
	if identity == nil {
		return dto.TierAnonymous
	}
	if profile != nil && profile.SubscriptionType == dto.SubscriptionPremium {
		return dto.TierPremium
	}
	return dto.TierFree
}
