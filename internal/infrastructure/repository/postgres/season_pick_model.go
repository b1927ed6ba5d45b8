package postgres

import (
	"database/sql"
	"time"
)

type seasonPickTableModel struct {
	UserID              string         `db:"user_id"`
	WDCWinner           sql.NullString `db:"wdc_winner"`
	WCCWinner           sql.NullString `db:"wcc_winner"`
	MostWins            sql.NullString `db:"most_wins"`
	MostPoles           sql.NullString `db:"most_poles"`
	MostPodiums         sql.NullString `db:"most_podiums"`
	FirstDNFDriver      sql.NullString `db:"first_dnf_driver"`
	FirstDNFConstructor sql.NullString `db:"first_dnf_constructor"`
	UpdatedAt           time.Time      `db:"updated_at"`
}

type midseasonPickTableModel struct {
	UserID    string         `db:"user_id"`
	WDCWinner sql.NullString `db:"wdc_winner"`
	WCCWinner sql.NullString `db:"wcc_winner"`
	UpdatedAt time.Time      `db:"updated_at"`
}
