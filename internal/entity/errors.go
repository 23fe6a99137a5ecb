package entity

import "errors"

var (
	ErrSelfSwipe         = errors.New("cannot swipe on your own profile")
	ErrInvalidDecision   = errors.New("unsupported decision")
	ErrDuplicateDecision = errors.New("decision already recorded for this profile")
	ErrTargetNotFound    = errors.New("target profile not found")
	ErrPairingNotFound   = errors.New("pairing not found")
	ErrForbidden         = errors.New("not a member of this pairing")
	ErrEmptyMessage      = errors.New("message content is empty")
)
