package postgres

import (
	"database/sql"
	"time"

	"github.com/dugoutlabs/prop-pipeline/internal/domain/playerstats"
)

type playerStatsTableModel struct {
	PlayerID string    `db:"player_id"`
	GameID   int64     `db:"game_id"`
	GameDate time.Time `db:"game_date"`
	Team     string    `db:"team"`
	Opponent string    `db:"opponent"`
	IsHome   bool      `db:"is_home"`
	Position string    `db:"position"`

	Hits              sql.NullInt64 `db:"hits"`
	Runs              sql.NullInt64 `db:"runs"`
	RBIs              sql.NullInt64 `db:"rbis"`
	Doubles           sql.NullInt64 `db:"doubles"`
	Triples           sql.NullInt64 `db:"triples"`
	HomeRuns          sql.NullInt64 `db:"home_runs"`
	Walks             sql.NullInt64 `db:"walks"`
	StrikeoutsBatting sql.NullInt64 `db:"strikeouts_batting"`
	StolenBases       sql.NullInt64 `db:"stolen_bases"`
	TotalBases        sql.NullInt64 `db:"total_bases"`

	OutsRecorded       sql.NullInt64 `db:"outs_recorded"`
	StrikeoutsPitching sql.NullInt64 `db:"strikeouts_pitching"`
	WalksAllowed       sql.NullInt64 `db:"walks_allowed"`
	EarnedRuns         sql.NullInt64 `db:"earned_runs"`
	HitsAllowed        sql.NullInt64 `db:"hits_allowed"`

	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (m playerStatsTableModel) toDomain() playerstats.Record {
	return playerstats.Record{
		PlayerID:           m.PlayerID,
		GameID:             m.GameID,
		GameDate:           m.GameDate,
		Team:               m.Team,
		Opponent:           m.Opponent,
		IsHome:             m.IsHome,
		Position:           m.Position,
		Hits:               nullIntToPtr(m.Hits),
		Runs:               nullIntToPtr(m.Runs),
		RBIs:               nullIntToPtr(m.RBIs),
		Doubles:            nullIntToPtr(m.Doubles),
		Triples:            nullIntToPtr(m.Triples),
		HomeRuns:           nullIntToPtr(m.HomeRuns),
		Walks:              nullIntToPtr(m.Walks),
		StrikeoutsBatting:  nullIntToPtr(m.StrikeoutsBatting),
		StolenBases:        nullIntToPtr(m.StolenBases),
		TotalBases:         nullIntToPtr(m.TotalBases),
		OutsRecorded:       nullIntToPtr(m.OutsRecorded),
		StrikeoutsPitching: nullIntToPtr(m.StrikeoutsPitching),
		WalksAllowed:       nullIntToPtr(m.WalksAllowed),
		EarnedRuns:         nullIntToPtr(m.EarnedRuns),
		HitsAllowed:        nullIntToPtr(m.HitsAllowed),
	}
}
