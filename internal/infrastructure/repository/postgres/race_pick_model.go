package postgres

import (
	"database/sql"
	"time"

	"github.com/radiogagalight/f1-together/internal/domain/racepick"
)

type racePickTableModel struct {
	UserID         string         `db:"user_id"`
	Round          int            `db:"round"`
	QualPole       sql.NullString `db:"qual_pole"`
	QualP2         sql.NullString `db:"qual_p2"`
	QualP3         sql.NullString `db:"qual_p3"`
	RaceWinner     sql.NullString `db:"race_winner"`
	RaceP2         sql.NullString `db:"race_p2"`
	RaceP3         sql.NullString `db:"race_p3"`
	FastestLap     sql.NullString `db:"fastest_lap"`
	SafetyCar      sql.NullBool   `db:"safety_car"`
	SprintQualPole sql.NullString `db:"sprint_qual_pole"`
	SprintQualP2   sql.NullString `db:"sprint_qual_p2"`
	SprintQualP3   sql.NullString `db:"sprint_qual_p3"`
	SprintWinner   sql.NullString `db:"sprint_winner"`
	SprintP2       sql.NullString `db:"sprint_p2"`
	SprintP3       sql.NullString `db:"sprint_p3"`
	UpdatedAt      time.Time      `db:"updated_at"`
}

type racePickInsertModel struct {
	UserID         string         `db:"user_id"`
	Round          int            `db:"round"`
	QualPole       sql.NullString `db:"qual_pole"`
	QualP2         sql.NullString `db:"qual_p2"`
	QualP3         sql.NullString `db:"qual_p3"`
	RaceWinner     sql.NullString `db:"race_winner"`
	RaceP2         sql.NullString `db:"race_p2"`
	RaceP3         sql.NullString `db:"race_p3"`
	FastestLap     sql.NullString `db:"fastest_lap"`
	SafetyCar      sql.NullBool   `db:"safety_car"`
	SprintQualPole sql.NullString `db:"sprint_qual_pole"`
	SprintQualP2   sql.NullString `db:"sprint_qual_p2"`
	SprintQualP3   sql.NullString `db:"sprint_qual_p3"`
	SprintWinner   sql.NullString `db:"sprint_winner"`
	SprintP2       sql.NullString `db:"sprint_p2"`
	SprintP3       sql.NullString `db:"sprint_p3"`
}

func racePickFromRow(row racePickTableModel) racepick.Picks {
	return racepick.Picks{
		UserID:         row.UserID,
		Round:          row.Round,
		QualPole:       stringPtr(row.QualPole),
		QualP2:         stringPtr(row.QualP2),
		QualP3:         stringPtr(row.QualP3),
		RaceWinner:     stringPtr(row.RaceWinner),
		RaceP2:         stringPtr(row.RaceP2),
		RaceP3:         stringPtr(row.RaceP3),
		FastestLap:     stringPtr(row.FastestLap),
		SafetyCar:      boolPtr(row.SafetyCar),
		SprintQualPole: stringPtr(row.SprintQualPole),
		SprintQualP2:   stringPtr(row.SprintQualP2),
		SprintQualP3:   stringPtr(row.SprintQualP3),
		SprintWinner:   stringPtr(row.SprintWinner),
		SprintP2:       stringPtr(row.SprintP2),
		SprintP3:       stringPtr(row.SprintP3),
		UpdatedAt:      row.UpdatedAt,
	}
}
