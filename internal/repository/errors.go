package repository

import "errors"

// ErrQuoteUnavailable means the market data collaborator could not produce a
// quote at all: transport, timeout, decode failure, or an unknown symbol.
// Callers must treat it as fully distinct from a quote with zero values.
var ErrQuoteUnavailable = errors.New("market data unavailable")

// ErrAuthRejected means the identity provider refused the credentials or the
// supplied session token.
var ErrAuthRejected = errors.New("auth provider rejected request")
