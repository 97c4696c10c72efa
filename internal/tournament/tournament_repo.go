package tournament

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/DhavalSuthar-24/clubhouse/internal/match"
	"github.com/DhavalSuthar-24/clubhouse/internal/scheduler"
)

var (
	ErrTournamentNotFound = errors.New("tournament not found")
	ErrAlreadyScheduled   = errors.New("tournament already has a confirmed schedule")
)

type TournamentRepository interface {
	WithTransaction(txFunc func(TournamentRepository) error) error

	GetTournament(ctx context.Context, id uint) (*Tournament, error)
	ApprovedTeams(ctx context.Context, tournamentID uint) ([]TournamentTeam, error)
	SetStatus(ctx context.Context, id uint, status TournamentStatus) error

	// CommitFixtures satisfies scheduler.Committer.
	CommitFixtures(ctx context.Context, tournamentID uint, fixtures []scheduler.Fixture) error
}

type GormTournamentRepository struct {
	db *gorm.DB
}

func NewGormTournamentRepository(db *gorm.DB) *GormTournamentRepository {
	return &GormTournamentRepository{db: db}
}

func (r *GormTournamentRepository) WithTransaction(txFunc func(TournamentRepository) error) error {
	tx := r.db.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	txRepo := &GormTournamentRepository{db: tx}
	if err := txFunc(txRepo); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}

func (r *GormTournamentRepository) GetTournament(ctx context.Context, id uint) (*Tournament, error) {
	var t Tournament
	if err := r.db.WithContext(ctx).First(&t, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

// ApprovedTeams lists approved entries by group, then seed, then entry
// order. The scheduler pairs them in this order.
func (r *GormTournamentRepository) ApprovedTeams(ctx context.Context, tournamentID uint) ([]TournamentTeam, error) {
	var teams []TournamentTeam
	err := r.db.WithContext(ctx).
		Where("tournament_id = ? AND status = ?", tournamentID, EntryApproved).
		Order("group_name ASC, seed ASC, id ASC").
		Find(&teams).Error
	return teams, err
}

func (r *GormTournamentRepository) SetStatus(ctx context.Context, id uint, status TournamentStatus) error {
	return r.db.WithContext(ctx).Model(&Tournament{}).Where("id = ?", id).Update("status", status).Error
}

// CommitFixtures writes one TournamentMatch per fixture and marks the
// tournament scheduled, all in one transaction. A tournament is scheduled at
// most once: a second commit fails with ErrAlreadyScheduled and writes nothing.
func (r *GormTournamentRepository) CommitFixtures(ctx context.Context, tournamentID uint, fixtures []scheduler.Fixture) error {
	return r.WithTransaction(func(tx TournamentRepository) error {
		txRepo := tx.(*GormTournamentRepository)

		t, err := txRepo.lockTournament(ctx, tournamentID)
		if err != nil {
			return err
		}
		if t == nil {
			return ErrTournamentNotFound
		}
		if err := txRepo.ensureUnscheduled(ctx, t); err != nil {
			return err
		}

		rows := make([]match.TournamentMatch, len(fixtures))
		for i, f := range fixtures {
			rows[i] = fixtureToMatch(t, f)
			if err := rows[i].Validate(); err != nil {
				return fmt.Errorf("fixture %d: %w", i, err)
			}
		}
		if err := match.NewGormMatchRepository(txRepo.db).CreateMatches(ctx, rows); err != nil {
			return err
		}
		return txRepo.SetStatus(ctx, tournamentID, StatusScheduled)
	})
}

// lockTournament reads the tournament row FOR UPDATE so concurrent commits for
// the same tournament run one after the other. sqlite ignores the lock and
// serialises writers itself.
func (r *GormTournamentRepository) lockTournament(ctx context.Context, id uint) (*Tournament, error) {
	var t Tournament
	err := r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).First(&t, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func (r *GormTournamentRepository) ensureUnscheduled(ctx context.Context, t *Tournament) error {
	switch t.Status {
	case StatusScheduled, StatusInProgress, StatusCompleted:
		return fmt.Errorf("%w: status %s", ErrAlreadyScheduled, t.Status)
	}
	var existing int64
	if err := r.db.WithContext(ctx).Model(&match.TournamentMatch{}).
		Where("tournament_id = ?", t.ID).
		Count(&existing).Error; err != nil {
		return err
	}
	if existing > 0 {
		return fmt.Errorf("%w: %d matches exist", ErrAlreadyScheduled, existing)
	}
	return nil
}

func fixtureToMatch(t *Tournament, f scheduler.Fixture) match.TournamentMatch {
	return match.TournamentMatch{
		TournamentID:    t.ID,
		Team1ID:         f.Team1ID,
		Team1Name:       f.Team1Name,
		Team2ID:         f.Team2ID,
		Team2Name:       f.Team2Name,
		Stage:           string(f.Stage),
		Group:           f.Group,
		Round:           f.Round,
		BracketPosition: f.BracketPosition,
		MatchDate:       f.MatchDate,
		Venue:           f.Venue,
		StartTime:       f.StartTime,
		EndTime:         f.EndTime,
		Status:          match.StatusMatchScheduled,
		Overs:           t.Overs,
		BallsPerOver:    t.BallsPerOver,
	}
}
