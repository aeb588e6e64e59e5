package postgres

import (
	"database/sql"
	"time"

	"github.com/dugoutlabs/prop-pipeline/internal/domain/prop"
)

type propTableModel struct {
	ID               string          `db:"id"`
	PlayerID         string          `db:"player_id"`
	PlayerName       string          `db:"player_name"`
	Team             string          `db:"team"`
	PropType         string          `db:"prop_type"`
	PropValue        float64         `db:"prop_value"`
	OverUnder        string          `db:"over_under"`
	GameID           int64           `db:"game_id"`
	GameDate         time.Time       `db:"game_date"`
	GameTime         sql.NullString  `db:"game_time"`
	Status           string          `db:"status"`
	Result           sql.NullFloat64 `db:"result"`
	Outcome          sql.NullString  `db:"outcome"`
	PredictedOutcome sql.NullString  `db:"predicted_outcome"`
	ConfidenceScore  sql.NullFloat64 `db:"confidence_score"`
	WasCorrect       sql.NullBool    `db:"was_correct"`
	CreatedAt        time.Time       `db:"created_at"`
	UpdatedAt        time.Time       `db:"updated_at"`
}

func (m propTableModel) toDomain() prop.Prop {
	return prop.Prop{
		ID:               m.ID,
		PlayerID:         m.PlayerID,
		PlayerName:       m.PlayerName,
		Team:             m.Team,
		Type:             prop.Type(m.PropType),
		Line:             m.PropValue,
		Direction:        prop.Direction(m.OverUnder),
		GameID:           m.GameID,
		GameDate:         m.GameDate,
		GameTime:         m.GameTime.String,
		Status:           prop.Status(m.Status),
		Result:           nullFloatToPtr(m.Result),
		Outcome:          nullStringToPtr(m.Outcome),
		PredictedOutcome: nullStringToPtr(m.PredictedOutcome),
		Confidence:       nullFloatToPtr(m.ConfidenceScore),
		WasCorrect:       nullBoolToPtr(m.WasCorrect),
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}
