// Package repository defines the roster and match store interface and its
// in-memory and SQLite implementations.
package repository

import (
	"context"

	"github.com/sundayfc/matchday/internal/domain/model"
)

// Store provides read/write access to the roster and the match history.
// Player names are unique case-insensitively; lookups ignore case. Guests
// are ephemeral and must never reach a Store.
type Store interface {
	// ListPlayers returns the full roster snapshot.
	ListPlayers(ctx context.Context) ([]model.Player, error)

	// GetPlayer returns the player with the given name.
	// Returns ErrNotFound if the player is unknown.
	GetPlayer(ctx context.Context, name string) (model.Player, error)

	// SavePlayer adds a new player to the roster.
	// Returns ErrExists when the name is already taken (case-insensitive).
	SavePlayer(ctx context.Context, p model.Player) error

	// UpdatePlayer replaces a player's rating, tags and match count.
	UpdatePlayer(ctx context.Context, name string, rating float64, tags []model.Tag, matchesPlayed int) error

	// UpdateRating applies a post-match rating and match count. Called once
	// per non-guest player per recorded match.
	UpdateRating(ctx context.Context, name string, rating float64, matchesPlayed int) error

	// DeletePlayer removes a player from the roster.
	DeletePlayer(ctx context.Context, name string) error

	// ListMatches returns the full match history in insertion order.
	ListMatches(ctx context.Context) ([]model.Match, error)

	// SaveMatch appends an immutable match record.
	SaveMatch(ctx context.Context, m model.Match) error

	// Count returns the number of players on the roster.
	Count(ctx context.Context) int

	// Close releases underlying resources.
	Close() error
}
