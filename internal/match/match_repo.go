package match

import (
	"context"
	"errors"
	"strconv"

	"gorm.io/gorm"
)

type MatchRepository interface {
	WithTransaction(txFunc func(MatchRepository) error) error

	GetMatch(ctx context.Context, id uint) (*TournamentMatch, error)
	MatchesForTournament(ctx context.Context, tournamentID uint) ([]TournamentMatch, error)
	CreateMatches(ctx context.Context, matches []TournamentMatch) error
	BallsForMatch(ctx context.Context, matchID uint) ([]BallByBall, error)
}

type GormMatchRepository struct {
	db *gorm.DB
}

func NewGormMatchRepository(db *gorm.DB) *GormMatchRepository {
	return &GormMatchRepository{db: db}
}

func (r *GormMatchRepository) WithTransaction(txFunc func(MatchRepository) error) error {
	tx := r.db.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	txRepo := &GormMatchRepository{db: tx}
	if err := txFunc(txRepo); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}

// GetMatch returns (nil, nil) when the match does not exist.
func (r *GormMatchRepository) GetMatch(ctx context.Context, id uint) (*TournamentMatch, error) {
	var m TournamentMatch
	result := r.db.WithContext(ctx).First(&m, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &m, nil
}

func (r *GormMatchRepository) MatchesForTournament(ctx context.Context, tournamentID uint) ([]TournamentMatch, error) {
	var out []TournamentMatch
	err := r.db.WithContext(ctx).
		Where("tournament_id = ?", tournamentID).
		Order("match_date ASC, start_time ASC, id ASC").
		Find(&out).Error
	return out, err
}

// CreateMatches inserts every row or none.
func (r *GormMatchRepository) CreateMatches(ctx context.Context, matches []TournamentMatch) error {
	if len(matches) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&matches).Error
	})
}

// BallsForMatch returns deliveries in scoring order.
func (r *GormMatchRepository) BallsForMatch(ctx context.Context, matchID uint) ([]BallByBall, error) {
	var balls []BallByBall
	err := r.db.WithContext(ctx).
		Where("match_id = ?", matchID).
		Order("innings ASC, over_number ASC, ball_number ASC, id ASC").
		Find(&balls).Error
	return balls, err
}

func formatID(id uint) string {
	if id == 0 {
		return ""
	}
	return strconv.FormatUint(uint64(id), 10)
}
