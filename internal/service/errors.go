package service

import "errors"

// Failure classes the handler layer maps to HTTP statuses. Generation
// failures are deliberately absent: they degrade to a fallback report and
// never fail the request.
var (
	ErrInvalidTicker         = errors.New("invalid ticker")
	ErrMarketDataUnavailable = errors.New("market data unavailable, please try again")
	ErrUnauthorized          = errors.New("authentication required")
	ErrProfileNotFound       = errors.New("profile not found")
	ErrUnknownProvider       = errors.New("unknown oauth provider")
)
