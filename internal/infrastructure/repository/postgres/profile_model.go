package postgres

import (
	"database/sql"
	"time"
)

type profileTableModel struct {
	ID             string         `db:"id"`
	DisplayName    string         `db:"display_name"`
	FavTeam1       sql.NullString `db:"fav_team_1"`
	FavTeam2       sql.NullString `db:"fav_team_2"`
	FavTeam3       sql.NullString `db:"fav_team_3"`
	FavDriver1     sql.NullString `db:"fav_driver_1"`
	FavDriver2     sql.NullString `db:"fav_driver_2"`
	FavDriver3     sql.NullString `db:"fav_driver_3"`
	TimezoneOffset int            `db:"timezone_offset"`
	CreatedAt      time.Time      `db:"created_at"`
	UpdatedAt      time.Time      `db:"updated_at"`
}

type profileInsertModel struct {
	ID             string         `db:"id"`
	DisplayName    string         `db:"display_name"`
	FavTeam1       sql.NullString `db:"fav_team_1"`
	FavTeam2       sql.NullString `db:"fav_team_2"`
	FavTeam3       sql.NullString `db:"fav_team_3"`
	FavDriver1     sql.NullString `db:"fav_driver_1"`
	FavDriver2     sql.NullString `db:"fav_driver_2"`
	FavDriver3     sql.NullString `db:"fav_driver_3"`
	TimezoneOffset int            `db:"timezone_offset"`
}

// favoriteColumns spreads a ranked favorites list across the three slot
// columns. Entries past the third are dropped.
func favoriteColumns(favorites []string) [3]sql.NullString {
	var out [3]sql.NullString
	for i := 0; i < len(favorites) && i < 3; i++ {
		out[i] = sql.NullString{String: favorites[i], Valid: true}
	}
	return out
}

func favoriteSlice(cols ...sql.NullString) []string {
	out := make([]string, 0, len(cols))
	for _, c := range cols {
		if c.Valid && c.String != "" {
			out = append(out, c.String)
		}
	}
	return out
}
