package match

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/DhavalSuthar-24/clubhouse/internal/scoring"
)

// Overlay is the live broadcast snapshot of the innings in progress.
type Overlay struct {
	MatchID      uint                  `json:"match_id"`
	Status       MatchStatus           `json:"status"`
	Team1Name    string                `json:"team1_name"`
	Team2Name    string                `json:"team2_name"`
	Innings      int                   `json:"innings"`
	BattingTeam  string                `json:"batting_team,omitempty"`
	Totals       scoring.InningsTotals `json:"totals"`
	Extras       scoring.Extras        `json:"extras"`
	CurrentOver  scoring.OverSummary   `json:"current_over"`
	Striker      *scoring.BattingLine  `json:"striker,omitempty"`
	NonStriker   *scoring.BattingLine  `json:"non_striker,omitempty"`
	Bowler       *scoring.BowlingLine  `json:"bowler,omitempty"`
	LastWicket   *scoring.FallOfWicket `json:"last_wicket,omitempty"`
	Target       *int                  `json:"target,omitempty"`
	RequiredRuns *int                  `json:"required_runs,omitempty"`
}

type Scorecard struct {
	Match   *TournamentMatch      `json:"match"`
	Innings []scoring.InningsCard `json:"innings"`
}

// Service derives report views from stored deliveries.
type Service struct {
	repo         MatchRepository
	ballsPerOver int
	log          zerolog.Logger
}

func NewService(repo MatchRepository, ballsPerOver int, log zerolog.Logger) *Service {
	return &Service{repo: repo, ballsPerOver: ballsPerOver, log: log}
}

// processorFor honours a per-match balls-per-over, falling back to the club default.
func (s *Service) processorFor(m *TournamentMatch) *scoring.Processor {
	if m != nil && m.BallsPerOver > 0 {
		return scoring.NewProcessor(m.BallsPerOver)
	}
	return scoring.NewProcessor(s.ballsPerOver)
}

// load fetches the match and its deliveries concurrently.
func (s *Service) load(ctx context.Context, id uint) (*TournamentMatch, []scoring.Ball, error) {
	var (
		m    *TournamentMatch
		rows []BallByBall
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		m, err = s.repo.GetMatch(gctx, id)
		if err != nil {
			return fmt.Errorf("load match: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		rows, err = s.repo.BallsForMatch(gctx, id)
		if err != nil {
			return fmt.Errorf("load balls: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	if m == nil {
		return nil, nil, ErrMatchNotFound
	}
	return m, ToBalls(rows), nil
}

func (s *Service) Scorecard(ctx context.Context, id uint) (*Scorecard, error) {
	m, balls, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return &Scorecard{Match: m, Innings: s.processorFor(m).Scorecard(balls)}, nil
}

// WagonWheel tallies every innings; an empty batsman includes everyone.
func (s *Service) WagonWheel(ctx context.Context, id uint, batsman string) ([]scoring.ZoneTally, error) {
	m, balls, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	p := s.processorFor(m)
	return p.WagonWheel(p.Normalize(balls), batsman), nil
}

func (s *Service) Overlay(ctx context.Context, id uint) (*Overlay, error) {
	m, raw, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return BuildOverlay(s.processorFor(m), m, raw), nil
}

// BuildOverlay assembles the snapshot for the latest innings. A target is set
// from the second innings on, one more than the previous innings' total.
func BuildOverlay(p *scoring.Processor, m *TournamentMatch, raw []scoring.Ball) *Overlay {
	balls := p.Normalize(raw)
	n := scoring.LatestInnings(balls)
	current := scoring.ForInnings(balls, n)

	o := &Overlay{
		MatchID:     m.ID,
		Status:      m.Status,
		Team1Name:   m.Team1Name,
		Team2Name:   m.Team2Name,
		Innings:     n,
		Totals:      p.InningsTotals(current),
		Extras:      p.Extras(current),
		CurrentOver: p.CurrentOver(current),
	}

	if len(current) > 0 {
		last := current[len(current)-1]
		o.BattingTeam = last.BattingTeam
		batting := p.Batting(current)
		o.Striker = atCrease(batting, last.Batsman)
		o.NonStriker = atCrease(batting, last.NonStriker)
		for _, line := range p.Bowling(current) {
			if line.Name == last.Bowler {
				line := line
				o.Bowler = &line
				break
			}
		}
	}

	if fow := p.FallOfWickets(current); len(fow) > 0 {
		w := fow[len(fow)-1]
		o.LastWicket = &w
	}

	if n > 1 {
		previous := scoring.ForInnings(balls, n-1)
		if len(previous) > 0 {
			target := p.InningsTotals(previous).Runs + 1
			required := target - o.Totals.Runs
			if required < 0 {
				required = 0
			}
			o.Target = &target
			o.RequiredRuns = &required
		}
	}
	return o
}

// atCrease returns the batting line for name unless that batsman is out.
func atCrease(lines []scoring.BattingLine, name string) *scoring.BattingLine {
	if name == "" {
		return nil
	}
	for _, line := range lines {
		if line.Name != name {
			continue
		}
		if line.IsOut {
			return nil
		}
		line := line
		return &line
	}
	return &scoring.BattingLine{Name: name, StrikeRate: "0.00", Dismissal: "not out"}
}
