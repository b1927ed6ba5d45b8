package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/radiogagalight/f1-together/internal/domain/seasonpick"
	qb "github.com/radiogagalight/f1-together/internal/platform/querybuilder"
)

type SeasonPickRepository struct {
	db *sqlx.DB
}

func NewSeasonPickRepository(db *sqlx.DB) *SeasonPickRepository {
	return &SeasonPickRepository{db: db}
}

func (r *SeasonPickRepository) GetByUser(ctx context.Context, userID string) (seasonpick.Picks, bool, error) {
	query, args, err := qb.Select("*").From("season_picks").
		Where(qb.Eq("user_id", userID)).
		ToSQL()
	if err != nil {
		return seasonpick.Picks{}, false, fmt.Errorf("build get season picks query: %w", err)
	}

	var row seasonPickTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return seasonpick.Picks{}, false, nil
		}
		return seasonpick.Picks{}, false, fmt.Errorf("get season picks: %w", err)
	}

	return seasonpick.Picks{
		UserID:              row.UserID,
		WDCWinner:           stringPtr(row.WDCWinner),
		WCCWinner:           stringPtr(row.WCCWinner),
		MostWins:            stringPtr(row.MostWins),
		MostPoles:           stringPtr(row.MostPoles),
		MostPodiums:         stringPtr(row.MostPodiums),
		FirstDNFDriver:      stringPtr(row.FirstDNFDriver),
		FirstDNFConstructor: stringPtr(row.FirstDNFConstructor),
		UpdatedAt:           row.UpdatedAt,
	}, true, nil
}

func (r *SeasonPickRepository) UpsertCategory(ctx context.Context, userID string, category seasonpick.Category, value *string) error {
	if !category.Valid() {
		return fmt.Errorf("upsert season pick: unknown category %q", category)
	}

	// Category names double as column names; Valid() above keeps the
	// interpolation closed over the known set.
	column := string(category)
	query := fmt.Sprintf(`
INSERT INTO season_picks (user_id, %s)
VALUES ($1, $2)
ON CONFLICT (user_id)
DO UPDATE SET %s = EXCLUDED.%s, updated_at = NOW()`, column, column, column)

	if _, err := r.db.ExecContext(ctx, query, userID, nullString(value)); err != nil {
		return fmt.Errorf("upsert season pick %s: %w", column, err)
	}
	return nil
}

func (r *SeasonPickRepository) ListRecentUpdates(ctx context.Context, limit int) ([]seasonpick.Update, error) {
	query, args, err := qb.Select("user_id", "updated_at").From("season_picks").
		OrderBy("updated_at DESC", "user_id").
		Limit(limit).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list recent season pick updates query: %w", err)
	}

	var rows []struct {
		UserID    string    `db:"user_id"`
		UpdatedAt time.Time `db:"updated_at"`
	}
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list recent season pick updates: %w", err)
	}

	out := make([]seasonpick.Update, 0, len(rows))
	for _, row := range rows {
		out = append(out, seasonpick.Update{UserID: row.UserID, UpdatedAt: row.UpdatedAt})
	}
	return out, nil
}

func (r *SeasonPickRepository) DeleteByUser(ctx context.Context, userID string) error {
	const query = `DELETE FROM season_picks WHERE user_id = $1`
	if _, err := r.db.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("delete season picks by user: %w", err)
	}
	return nil
}

type MidseasonPickRepository struct {
	db *sqlx.DB
}

func NewMidseasonPickRepository(db *sqlx.DB) *MidseasonPickRepository {
	return &MidseasonPickRepository{db: db}
}

func (r *MidseasonPickRepository) GetByUser(ctx context.Context, userID string) (seasonpick.MidseasonPicks, bool, error) {
	query, args, err := qb.Select("*").From("midseason_picks").
		Where(qb.Eq("user_id", userID)).
		ToSQL()
	if err != nil {
		return seasonpick.MidseasonPicks{}, false, fmt.Errorf("build get midseason picks query: %w", err)
	}

	var row midseasonPickTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return seasonpick.MidseasonPicks{}, false, nil
		}
		return seasonpick.MidseasonPicks{}, false, fmt.Errorf("get midseason picks: %w", err)
	}

	return seasonpick.MidseasonPicks{
		UserID:    row.UserID,
		WDCWinner: stringPtr(row.WDCWinner),
		WCCWinner: stringPtr(row.WCCWinner),
		UpdatedAt: row.UpdatedAt,
	}, true, nil
}

func (r *MidseasonPickRepository) UpsertCategory(ctx context.Context, userID string, category seasonpick.MidseasonCategory, value *string) error {
	if !category.Valid() {
		return fmt.Errorf("upsert midseason pick: unknown category %q", category)
	}

	column := string(category)
	query := fmt.Sprintf(`
INSERT INTO midseason_picks (user_id, %s)
VALUES ($1, $2)
ON CONFLICT (user_id)
DO UPDATE SET %s = EXCLUDED.%s, updated_at = NOW()`, column, column, column)

	if _, err := r.db.ExecContext(ctx, query, userID, nullString(value)); err != nil {
		return fmt.Errorf("upsert midseason pick %s: %w", column, err)
	}
	return nil
}

func (r *MidseasonPickRepository) DeleteByUser(ctx context.Context, userID string) error {
	const query = `DELETE FROM midseason_picks WHERE user_id = $1`
	if _, err := r.db.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("delete midseason picks by user: %w", err)
	}
	return nil
}
