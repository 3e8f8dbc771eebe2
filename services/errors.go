package services

import "errors"

// Claim/issuance failure taxonomy. All are surfaced synchronously and
// none leaves a mutation behind.
var (
	ErrInvalidRequest       = errors.New("missing platform, subid or uid")
	ErrInvalidOrExpiredLink = errors.New("link is invalid or expired")
	ErrIPAlreadyClaimed     = errors.New("this IP already claimed for this platform today")
	ErrQuotaExceeded        = errors.New("daily quota for this platform exhausted")
	ErrShortenerUnavailable = errors.New("no shortener endpoint configured for platform")
	ErrUnknownPlatform      = errors.New("unknown platform")
)
