package match

import (
	"errors"
	"strings"
	"time"

	"github.com/DhavalSuthar-24/clubhouse/internal/models"
	"github.com/DhavalSuthar-24/clubhouse/internal/scoring"
)

type MatchStatus string

const (
	StatusMatchScheduled MatchStatus = "scheduled"
	StatusMatchPreToss   MatchStatus = "pre_toss"
	StatusMatchLive      MatchStatus = "live"
	StatusMatchCompleted MatchStatus = "completed"
	StatusMatchCancelled MatchStatus = "cancelled"
	StatusMatchPostponed MatchStatus = "postponed"
	StatusMatchAbandoned MatchStatus = "abandoned" // e.g. rain
)

// MatchDateLayout is the fixture date format written by the scheduler.
const MatchDateLayout = "2006-01-02T15:04:05"

var (
	ErrSameTeams      = errors.New("team1 and team2 must be different")
	ErrBadMatchDate   = errors.New("match_date must be YYYY-MM-DD or YYYY-MM-DDTHH:MM:SS")
	ErrMatchNotFound  = errors.New("match not found")
	ErrWicketTypeOnly = errors.New("wicket_type requires is_wicket")
)

// TournamentMatch is one fixture. Rows are created in bulk when a scheduling
// session is confirmed and are then scored ball by ball.
type TournamentMatch struct {
	models.Base
	TournamentID    uint        `json:"tournament_id" gorm:"index" binding:"required"`
	Team1ID         uint        `json:"team1_id" gorm:"index"`
	Team1Name       string      `json:"team1_name" binding:"required"`
	Team2ID         uint        `json:"team2_id" gorm:"index"`
	Team2Name       string      `json:"team2_name" binding:"required"`
	Stage           string      `json:"stage" binding:"omitempty,max=40"`
	Group           string      `json:"group" gorm:"column:group_name"`
	Round           int         `json:"round" binding:"gte=0"`
	BracketPosition int         `json:"bracket_position" binding:"gte=0"`
	MatchDate       string      `json:"match_date" gorm:"index"`
	Venue           string      `json:"venue"`
	StartTime       string      `json:"start_time"`
	EndTime         string      `json:"end_time"`
	Status          MatchStatus `json:"status" gorm:"default:scheduled" binding:"omitempty,oneof=scheduled pre_toss live completed cancelled postponed abandoned"`
	Overs           int         `json:"overs" binding:"gte=0"`
	BallsPerOver    int         `json:"balls_per_over" binding:"gte=0,lte=10"`
	TossWinner      string      `json:"toss_winner"`
	TossDecision    string      `json:"toss_decision" binding:"omitempty,oneof=bat bowl"`
	WinnerTeamID    *uint       `json:"winner_team_id,omitempty"`
	Result          string      `json:"result"`
}

// Validate rejects a team playing itself and malformed match dates.
func (m *TournamentMatch) Validate() error {
	if m.Team1ID != 0 && m.Team1ID == m.Team2ID {
		return ErrSameTeams
	}
	if strings.EqualFold(strings.TrimSpace(m.Team1Name), strings.TrimSpace(m.Team2Name)) {
		return ErrSameTeams
	}
	if m.Status == "" {
		m.Status = StatusMatchScheduled
	}
	if m.MatchDate == "" {
		return nil
	}
	if _, err := ParseMatchDate(m.MatchDate); err != nil {
		return ErrBadMatchDate
	}
	return nil
}

// ParseMatchDate accepts a date or a local date-time.
func ParseMatchDate(s string) (time.Time, error) {
	if t, err := time.Parse(MatchDateLayout, s); err == nil {
		return t, nil
	}
	return time.Parse(time.DateOnly, s)
}

// BallByBall is one persisted delivery.
type BallByBall struct {
	models.Base
	MatchID          uint               `json:"match_id" gorm:"index;not null" binding:"required"`
	Innings          int                `json:"innings" gorm:"index" binding:"gte=0,lte=4"`
	OverNumber       int                `json:"over_number" binding:"gte=0"`
	BallNumber       int                `json:"ball_number" binding:"gte=0"`
	Batsman          string             `json:"batsman" binding:"max=120"`
	NonStriker       string             `json:"non_striker" binding:"max=120"`
	Bowler           string             `json:"bowler" binding:"max=120"`
	Runs             int                `json:"runs" binding:"gte=0,lte=7"`
	Extras           int                `json:"extras" binding:"gte=0"`
	ExtraType        scoring.ExtraType  `json:"extra_type,omitempty"`
	IsLegalDelivery  *bool              `json:"is_legal_delivery,omitempty"`
	IsWicket         bool               `json:"is_wicket"`
	WicketType       scoring.WicketType `json:"wicket_type,omitempty"`
	DismissedBatsman string             `json:"dismissed_batsman,omitempty"`
	IsFour           bool               `json:"is_four"`
	IsSix            bool               `json:"is_six"`
	DisplayValue     string             `json:"display_value,omitempty"`
	WagonWheelZone   int                `json:"wagon_wheel_zone,omitempty" binding:"gte=0,lte=8"`
	BattingTeam      string             `json:"batting_team,omitempty"`
}

// Validate fills the four/six flags from the runs when the scorer left them
// unset and rejects a dismissal type on a non-wicket ball.
func (b *BallByBall) Validate() error {
	if !b.IsWicket && b.WicketType != "" {
		return ErrWicketTypeOnly
	}
	if !b.IsFour && !b.IsSix {
		b.IsFour = b.Runs == 4
		b.IsSix = b.Runs == 6
	}
	return nil
}

// ToBall converts the stored row into the derivation input.
func (b *BallByBall) ToBall() scoring.Ball {
	return scoring.Ball{
		MatchID:          formatID(b.MatchID),
		Innings:          b.Innings,
		OverNumber:       b.OverNumber,
		BallNumber:       b.BallNumber,
		Batsman:          b.Batsman,
		NonStriker:       b.NonStriker,
		Bowler:           b.Bowler,
		Runs:             b.Runs,
		Extras:           b.Extras,
		ExtraType:        b.ExtraType,
		IsLegalDelivery:  b.IsLegalDelivery,
		IsWicket:         b.IsWicket,
		WicketType:       b.WicketType,
		DismissedBatsman: b.DismissedBatsman,
		IsFour:           b.IsFour,
		IsSix:            b.IsSix,
		DisplayValue:     b.DisplayValue,
		WagonWheelZone:   b.WagonWheelZone,
		BattingTeam:      b.BattingTeam,
	}
}

func ToBalls(rows []BallByBall) []scoring.Ball {
	out := make([]scoring.Ball, len(rows))
	for i := range rows {
		out[i] = rows[i].ToBall()
	}
	return out
}
