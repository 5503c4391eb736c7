package repository

import "errors"

// Sentinel kinds for store errors.
var (
	ErrNotFound     = errors.New("player not found")
	ErrExists       = errors.New("player already exists")
	ErrInvalidLimit = errors.New("invalid leaderboard limit")
)
