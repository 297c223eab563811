package domain

import "errors"

var (
	ErrScopeListUnavailable  = errors.New("scope list unavailable")
	ErrInvalidScopeSelection = errors.New("invalid scope selection")
	ErrNoScopeSelected       = errors.New("no scope selected")
	ErrSelectionNotFound     = errors.New("scope selection not found")
)
