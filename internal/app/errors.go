package service

import (
	"errors"
)

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrNotStarted      = errors.New("service not started")
	ErrEmptyName       = errors.New("player name must not be empty")
	ErrPoolTooLarge    = errors.New("player pool exceeds the supported maximum")
	ErrDuplicateInPool = errors.New("duplicate player in pool")
	ErrInvalidMatch    = errors.New("invalid match submission")
)
