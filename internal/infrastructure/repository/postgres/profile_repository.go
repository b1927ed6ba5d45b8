package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/radiogagalight/f1-together/internal/domain/profile"
	qb "github.com/radiogagalight/f1-together/internal/platform/querybuilder"
)

type ProfileRepository struct {
	db *sqlx.DB
}

func NewProfileRepository(db *sqlx.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

func (r *ProfileRepository) GetByID(ctx context.Context, id string) (profile.Profile, bool, error) {
	query, args, err := qb.Select("*").From("profiles").
		Where(qb.Eq("id", id)).
		ToSQL()
	if err != nil {
		return profile.Profile{}, false, fmt.Errorf("build get profile query: %w", err)
	}

	var row profileTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return profile.Profile{}, false, nil
		}
		return profile.Profile{}, false, fmt.Errorf("get profile: %w", err)
	}

	return profileFromRow(row), true, nil
}

func (r *ProfileRepository) List(ctx context.Context) ([]profile.Profile, error) {
	query, args, err := qb.Select("*").From("profiles").
		OrderBy("created_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list profiles query: %w", err)
	}

	var rows []profileTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}

	out := make([]profile.Profile, 0, len(rows))
	for _, row := range rows {
		out = append(out, profileFromRow(row))
	}
	return out, nil
}

func (r *ProfileRepository) Upsert(ctx context.Context, p profile.Profile) error {
	teams := favoriteColumns(p.FavTeams)
	drivers := favoriteColumns(p.FavDrivers)
	insertModel := profileInsertModel{
		ID:             p.ID,
		DisplayName:    p.DisplayName,
		FavTeam1:       teams[0],
		FavTeam2:       teams[1],
		FavTeam3:       teams[2],
		FavDriver1:     drivers[0],
		FavDriver2:     drivers[1],
		FavDriver3:     drivers[2],
		TimezoneOffset: p.TimezoneOffset,
	}
	query, args, err := qb.InsertModel("profiles", insertModel, `ON CONFLICT (id)
DO UPDATE SET
    display_name = EXCLUDED.display_name,
    fav_team_1 = EXCLUDED.fav_team_1,
    fav_team_2 = EXCLUDED.fav_team_2,
    fav_team_3 = EXCLUDED.fav_team_3,
    fav_driver_1 = EXCLUDED.fav_driver_1,
    fav_driver_2 = EXCLUDED.fav_driver_2,
    fav_driver_3 = EXCLUDED.fav_driver_3,
    timezone_offset = EXCLUDED.timezone_offset,
    updated_at = NOW()`)
	if err != nil {
		return fmt.Errorf("build upsert profile query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert profile: %w", err)
	}
	return nil
}

func (r *ProfileRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM profiles WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	return nil
}

func profileFromRow(row profileTableModel) profile.Profile {
	return profile.Profile{
		ID:             row.ID,
		DisplayName:    row.DisplayName,
		FavTeams:       favoriteSlice(row.FavTeam1, row.FavTeam2, row.FavTeam3),
		FavDrivers:     favoriteSlice(row.FavDriver1, row.FavDriver2, row.FavDriver3),
		TimezoneOffset: row.TimezoneOffset,
		CreatedAt:      row.CreatedAt,
		UpdatedAt:      row.UpdatedAt,
	}
}
