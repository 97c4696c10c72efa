package tournament

import (
	"errors"
	"fmt"
	"time"

	"github.com/DhavalSuthar-24/clubhouse/internal/models"
	"github.com/DhavalSuthar-24/clubhouse/internal/scheduler"
)

type TournamentStatus string

const (
	StatusDraft        TournamentStatus = "draft"
	StatusRegistration TournamentStatus = "registration"
	StatusScheduled    TournamentStatus = "scheduled"
	StatusInProgress   TournamentStatus = "in_progress"
	StatusCompleted    TournamentStatus = "completed"
	StatusCancelled    TournamentStatus = "cancelled"
)

type EntryStatus string

const (
	EntryPending   EntryStatus = "pending"
	EntryApproved  EntryStatus = "approved"
	EntryRejected  EntryStatus = "rejected"
	EntryWithdrawn EntryStatus = "withdrawn"
)

type Tournament struct {
	models.Base
	Name         string           `json:"name" gorm:"not null" binding:"required,max=160"`
	Description  string           `json:"description" gorm:"type:text"`
	Format       scheduler.Format `json:"format" gorm:"not null" binding:"required,oneof=league super_league group_knockout knockout"`
	StartDate    string           `json:"start_date"`
	EndDate      string           `json:"end_date"`
	Status       TournamentStatus `json:"status" gorm:"default:draft" binding:"omitempty,oneof=draft registration scheduled in_progress completed cancelled"`
	Overs        int              `json:"overs" binding:"gte=0"`
	BallsPerOver int              `json:"balls_per_over" binding:"gte=0,lte=10"`
	EntryFee     int64            `json:"entry_fee" binding:"gte=0"`
}

// Validate checks the date range when both ends are set.
func (t *Tournament) Validate() error {
	var start, end time.Time
	var err error
	if t.StartDate != "" {
		if start, err = time.Parse(scheduler.DateLayout, t.StartDate); err != nil {
			return fmt.Errorf("start_date %q is not YYYY-MM-DD", t.StartDate)
		}
	}
	if t.EndDate != "" {
		if end, err = time.Parse(scheduler.DateLayout, t.EndDate); err != nil {
			return fmt.Errorf("end_date %q is not YYYY-MM-DD", t.EndDate)
		}
	}
	if !start.IsZero() && !end.IsZero() && end.Before(start) {
		return errors.New("end_date is before start_date")
	}
	if t.Status == "" {
		t.Status = StatusDraft
	}
	return nil
}

// TournamentTeam is a team's entry into a tournament. Only approved entries
// are scheduled.
type TournamentTeam struct {
	models.Base
	TournamentID uint        `json:"tournament_id" gorm:"index;not null" binding:"required"`
	TeamID       uint        `json:"team_id" gorm:"index;not null" binding:"required"`
	TeamName     string      `json:"team_name" gorm:"not null" binding:"required,max=120"`
	Group        string      `json:"group" gorm:"column:group_name" binding:"max=20"`
	Seed         int         `json:"seed" binding:"gte=0"`
	Status       EntryStatus `json:"status" gorm:"default:pending" binding:"omitempty,oneof=pending approved rejected withdrawn"`
}

func (tt *TournamentTeam) Validate() error {
	if tt.Status == "" {
		tt.Status = EntryPending
	}
	return nil
}

func (tt TournamentTeam) SchedulerTeam() scheduler.Team {
	return scheduler.Team{ID: tt.TeamID, Name: tt.TeamName, Group: tt.Group}
}
