package profile

import (
	"strings"
	"time"
)

// Profile is the per-user identity record. It is upserted on first login and
// mutated only by its owner.
type Profile struct {
	ID             string
	DisplayName    string
	FavTeams       []string
	FavDrivers     []string
	TimezoneOffset int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// MaxFavorites bounds the ranked favorite teams and drivers lists.
const MaxFavorites = 3

// HandleFor derives the @mention handle from a display name: the lowercased
// first whitespace-delimited token. An empty or unset name yields an empty
// handle. Handles are not guaranteed unique across profiles.
func HandleFor(displayName string) string {
	fields := strings.Fields(displayName)
	if len(fields) == 0 {
		return ""
	}
	return strings.ToLower(fields[0])
}

// Handle returns the profile's derived mention handle.
func (p Profile) Handle() string {
	return HandleFor(p.DisplayName)
}
