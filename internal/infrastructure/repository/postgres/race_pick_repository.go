package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/radiogagalight/f1-together/internal/domain/racepick"
	qb "github.com/radiogagalight/f1-together/internal/platform/querybuilder"
)

type RacePickRepository struct {
	db *sqlx.DB
}

func NewRacePickRepository(db *sqlx.DB) *RacePickRepository {
	return &RacePickRepository{db: db}
}

func (r *RacePickRepository) GetByUserAndRound(ctx context.Context, userID string, round int) (racepick.Picks, bool, error) {
	query, args, err := qb.Select("*").From("race_picks").
		Where(
			qb.Eq("user_id", userID),
			qb.Eq("round", round),
		).
		ToSQL()
	if err != nil {
		return racepick.Picks{}, false, fmt.Errorf("build get race picks query: %w", err)
	}

	var row racePickTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return racepick.Picks{}, false, nil
		}
		return racepick.Picks{}, false, fmt.Errorf("get race picks: %w", err)
	}

	return racePickFromRow(row), true, nil
}

func (r *RacePickRepository) Upsert(ctx context.Context, p racepick.Picks) error {
	insertModel := racePickInsertModel{
		UserID:         p.UserID,
		Round:          p.Round,
		QualPole:       nullString(p.QualPole),
		QualP2:         nullString(p.QualP2),
		QualP3:         nullString(p.QualP3),
		RaceWinner:     nullString(p.RaceWinner),
		RaceP2:         nullString(p.RaceP2),
		RaceP3:         nullString(p.RaceP3),
		FastestLap:     nullString(p.FastestLap),
		SafetyCar:      nullBool(p.SafetyCar),
		SprintQualPole: nullString(p.SprintQualPole),
		SprintQualP2:   nullString(p.SprintQualP2),
		SprintQualP3:   nullString(p.SprintQualP3),
		SprintWinner:   nullString(p.SprintWinner),
		SprintP2:       nullString(p.SprintP2),
		SprintP3:       nullString(p.SprintP3),
	}
	query, args, err := qb.InsertModel("race_picks", insertModel, `ON CONFLICT (user_id, round)
DO UPDATE SET
    qual_pole = EXCLUDED.qual_pole,
    qual_p2 = EXCLUDED.qual_p2,
    qual_p3 = EXCLUDED.qual_p3,
    race_winner = EXCLUDED.race_winner,
    race_p2 = EXCLUDED.race_p2,
    race_p3 = EXCLUDED.race_p3,
    fastest_lap = EXCLUDED.fastest_lap,
    safety_car = EXCLUDED.safety_car,
    sprint_qual_pole = EXCLUDED.sprint_qual_pole,
    sprint_qual_p2 = EXCLUDED.sprint_qual_p2,
    sprint_qual_p3 = EXCLUDED.sprint_qual_p3,
    sprint_winner = EXCLUDED.sprint_winner,
    sprint_p2 = EXCLUDED.sprint_p2,
    sprint_p3 = EXCLUDED.sprint_p3,
    updated_at = NOW()`)
	if err != nil {
		return fmt.Errorf("build upsert race picks query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert race picks: %w", err)
	}
	return nil
}

func (r *RacePickRepository) ListByUser(ctx context.Context, userID string) ([]racepick.Picks, error) {
	query, args, err := qb.Select("*").From("race_picks").
		Where(qb.Eq("user_id", userID)).
		OrderBy("round").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list race picks by user query: %w", err)
	}

	var rows []racePickTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list race picks by user: %w", err)
	}

	out := make([]racepick.Picks, 0, len(rows))
	for _, row := range rows {
		out = append(out, racePickFromRow(row))
	}
	return out, nil
}

func (r *RacePickRepository) ListRecentUpdates(ctx context.Context, limit int) ([]racepick.Update, error) {
	query, args, err := qb.Select("user_id", "round", "updated_at").From("race_picks").
		OrderBy("updated_at DESC", "user_id", "round").
		Limit(limit).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list recent race pick updates query: %w", err)
	}

	var rows []struct {
		UserID    string    `db:"user_id"`
		Round     int       `db:"round"`
		UpdatedAt time.Time `db:"updated_at"`
	}
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list recent race pick updates: %w", err)
	}

	out := make([]racepick.Update, 0, len(rows))
	for _, row := range rows {
		out = append(out, racepick.Update{UserID: row.UserID, Round: row.Round, UpdatedAt: row.UpdatedAt})
	}
	return out, nil
}

func (r *RacePickRepository) DeleteByUser(ctx context.Context, userID string) error {
	const query = `DELETE FROM race_picks WHERE user_id = $1`
	if _, err := r.db.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("delete race picks by user: %w", err)
	}
	return nil
}
