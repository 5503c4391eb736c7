// Package model contains domain models passed between layers.
package model

import "strings"

// Rating and pool constants.
const (
	// DefaultRating is the starting rating for new players.
	DefaultRating = 1200.0
	// MaxPoolSize is the maximum number of players in a match-day pool (7v7).
	MaxPoolSize = 14
)

// Tag is an uppercase role label on a player. Four tags carry a balancing
// weight; GK drives goalkeeper placement instead.
type Tag string

// Known tags.
const (
	TagPlaymaker Tag = "PLAYMAKER"
	TagRunner    Tag = "RUNNER"
	TagDef       Tag = "DEF"
	TagAtk       Tag = "ATK"
	TagGK        Tag = "GK"
)

// WeightedTags lists the tags that participate in the balance cost, in
// descending weight order.
var WeightedTags = []Tag{TagPlaymaker, TagRunner, TagDef, TagAtk} //nolint:gochecknoglobals // fixed vocabulary

// DefaultTagWeights returns the default balancing weight per weighted tag.
// Ball handlers define the game; stamina beats positioning at this level.
func DefaultTagWeights() map[Tag]float64 {
	return map[Tag]float64{
		TagPlaymaker: 100,
		TagRunner:    80,
		TagDef:       40,
		TagAtk:       20,
	}
}

// Player represents a roster member or an ephemeral guest.
type Player struct {
	Name          string  `json:"name"`
	Rating        float64 `json:"rating"`
	Tags          []Tag   `json:"tags,omitempty"`
	MatchesPlayed int     `json:"matches_played"`
	Guest         bool    `json:"guest,omitempty"`
}

// HasTag reports whether the player carries the given tag.
func (p Player) HasTag(tag Tag) bool {
	for _, t := range p.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// ParseTags parses a comma-separated tag string into normalized tags.
// Values are upper-cased and trimmed; empties are dropped.
func ParseTags(s string) []Tag {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	tags := make([]Tag, 0, len(parts))
	for _, p := range parts {
		p = strings.ToUpper(strings.TrimSpace(p))
		if p == "" {
			continue
		}
		tags = append(tags, Tag(p))
	}
	if len(tags) == 0 {
		return nil
	}
	return tags
}

// FormatTags renders tags to the persisted comma-separated form.
func FormatTags(tags []Tag) string {
	parts := make([]string, len(tags))
	for i, t := range tags {
		parts[i] = string(t)
	}
	return strings.Join(parts, ",")
}

// NormalizeTags upper-cases and de-duplicates a tag list.
func NormalizeTags(tags []Tag) []Tag {
	if len(tags) == 0 {
		return nil
	}
	seen := make(map[Tag]struct{}, len(tags))
	out := make([]Tag, 0, len(tags))
	for _, t := range tags {
		n := Tag(strings.ToUpper(strings.TrimSpace(string(t))))
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// CountTag counts how many players in the list carry the tag.
func CountTag(players []Player, tag Tag) int {
	n := 0
	for _, p := range players {
		if p.HasTag(tag) {
			n++
		}
	}
	return n
}
