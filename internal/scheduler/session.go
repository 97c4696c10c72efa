package scheduler

import (
	"context"
	"fmt"
	"math/rand"
	"time"
)

// Step of a scheduling session.
type Step string

const (
	StepConfig    Step = "config"
	StepPreview   Step = "preview"
	StepCommitted Step = "committed"
)

var transitions = map[Step][]Step{
	StepConfig:  {StepPreview},
	StepPreview: {StepConfig, StepCommitted},
}

// CanTransition reports whether from -> to is allowed. Committed is terminal.
func CanTransition(from, to Step) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Committer persists a confirmed fixture list. Implementations must write
// all fixtures or none.
type Committer interface {
	CommitFixtures(ctx context.Context, tournamentID uint, fixtures []Fixture) error
}

// Session is an operator's in-progress schedule. It is a plain value so that
// stores can serialize it; every method either fully applies or leaves the
// session untouched.
type Session struct {
	ID           string     `json:"id"`
	TournamentID uint       `json:"tournament_id"`
	Format       Format     `json:"format"`
	Teams        []Team     `json:"teams"`
	Config       Config     `json:"config"`
	Step         Step       `json:"step"`
	Fixtures     []Fixture  `json:"fixtures"`
	Conflicts    []Conflict `json:"conflicts"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func NewSession(id string, tournamentID uint, format Format, teams []Team, cfg Config) *Session {
	now := time.Now()
	return &Session{
		ID:           id,
		TournamentID: tournamentID,
		Format:       format,
		Teams:        teams,
		Config:       cfg,
		Step:         StepConfig,
		Fixtures:     []Fixture{},
		Conflicts:    []Conflict{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func (s *Session) moveTo(to Step) error {
	if !CanTransition(s.Step, to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, s.Step, to)
	}
	s.Step = to
	s.UpdatedAt = time.Now()
	return nil
}

func (s *Session) require(step Step) error {
	if s.Step != step {
		return fmt.Errorf("%w: session is in %s, need %s", ErrWrongStep, s.Step, step)
	}
	return nil
}

// Blocking is the number of error-severity conflicts.
func (s *Session) Blocking() int {
	return BlockingConflicts(s.Conflicts)
}

// Configure replaces the format and scheduling config while in config.
func (s *Session) Configure(format Format, cfg Config) error {
	if err := s.require(StepConfig); err != nil {
		return err
	}
	if format == "" {
		format = s.Format
	}
	if !format.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	s.Format = format
	s.Config = cfg
	s.UpdatedAt = time.Now()
	return nil
}

// Generate builds the fixture list and moves to preview.
func (s *Session) Generate(rng *rand.Rand) error {
	if err := s.require(StepConfig); err != nil {
		return err
	}
	fixtures, err := Generate(s.Format, s.Teams, s.Config, rng)
	if err != nil {
		return err
	}
	if err := s.moveTo(StepPreview); err != nil {
		return err
	}
	s.setFixtures(fixtures)
	return nil
}

// Back discards the preview and returns to config.
func (s *Session) Back() error {
	if err := s.moveTo(StepConfig); err != nil {
		return err
	}
	s.Fixtures = []Fixture{}
	s.Conflicts = []Conflict{}
	return nil
}

func (s *Session) setFixtures(fixtures []Fixture) {
	s.Fixtures = fixtures
	s.Conflicts = DetectConflicts(fixtures, s.Config)
	s.UpdatedAt = time.Now()
}

func (s *Session) UpdateFixture(index int, field, value string) error {
	if err := s.require(StepPreview); err != nil {
		return err
	}
	fixtures, err := UpdateFixture(s.Fixtures, index, field, value)
	if err != nil {
		return err
	}
	s.setFixtures(fixtures)
	return nil
}

func (s *Session) SwapFixtures(i, j int) error {
	if err := s.require(StepPreview); err != nil {
		return err
	}
	fixtures, err := SwapFixtures(s.Fixtures, i, j)
	if err != nil {
		return err
	}
	s.setFixtures(fixtures)
	return nil
}

// AddFixture appends a manually entered match. It rejects a team playing
// itself, a repeat of an existing fixture in the same stage, group and round,
// and a team that already plays on the new fixture's date.
func (s *Session) AddFixture(f Fixture) error {
	if err := s.require(StepPreview); err != nil {
		return err
	}
	if f.Team1Name == "" || f.Team2Name == "" {
		return fmt.Errorf("%w: both teams are required", ErrInvalidValue)
	}
	if f.Team1Name == f.Team2Name || (f.Team1ID != 0 && f.Team1ID == f.Team2ID) {
		return ErrSelfPairing
	}
	if _, err := time.Parse(DateLayout, f.Date); err != nil {
		return fmt.Errorf("%w: date %q", ErrInvalidValue, f.Date)
	}
	if f.StartTime != "" {
		if _, err := time.Parse(TimeLayout, f.StartTime); err != nil {
			return fmt.Errorf("%w: start time %q", ErrInvalidValue, f.StartTime)
		}
	}
	if f.Stage == "" {
		f.Stage = StageLeague
	}

	for _, existing := range s.Fixtures {
		samePair := (existing.Team1Name == f.Team1Name && existing.Team2Name == f.Team2Name) ||
			(existing.Team1Name == f.Team2Name && existing.Team2Name == f.Team1Name)
		if samePair && existing.Stage == f.Stage && existing.Group == f.Group && existing.Round == f.Round {
			return fmt.Errorf("%w: %s vs %s", ErrDuplicateFixture, f.Team1Name, f.Team2Name)
		}
		if existing.Date == f.Date {
			if team := sharedTeam(f, existing); team != "" {
				return fmt.Errorf("%w: %s on %s", ErrTeamBusy, team, f.Date)
			}
		}
	}

	f.MatchDate = matchDate(f.Date, f.StartTime)
	f.Status = StatusScheduled

	fixtures := make([]Fixture, len(s.Fixtures), len(s.Fixtures)+1)
	copy(fixtures, s.Fixtures)
	s.setFixtures(append(fixtures, f))
	return nil
}

func (s *Session) RemoveFixture(index int) error {
	if err := s.require(StepPreview); err != nil {
		return err
	}
	if index < 0 || index >= len(s.Fixtures) {
		return fmt.Errorf("%w: %d", ErrFixtureIndex, index)
	}
	fixtures := make([]Fixture, 0, len(s.Fixtures)-1)
	fixtures = append(fixtures, s.Fixtures[:index]...)
	fixtures = append(fixtures, s.Fixtures[index+1:]...)
	s.setFixtures(fixtures)
	return nil
}

// Confirm hands the fixtures to c and marks the session committed. Nothing is
// written while an error-severity conflict remains.
func (s *Session) Confirm(ctx context.Context, c Committer) error {
	if err := s.require(StepPreview); err != nil {
		return err
	}
	conflicts := DetectConflicts(s.Fixtures, s.Config)
	if n := BlockingConflicts(conflicts); n > 0 {
		s.Conflicts = conflicts
		return fmt.Errorf("%w: %d remaining", ErrBlockingConflicts, n)
	}
	if len(s.Fixtures) == 0 {
		return ErrNoFixtures
	}
	if err := c.CommitFixtures(ctx, s.TournamentID, s.Fixtures); err != nil {
		return fmt.Errorf("commit fixtures: %w", err)
	}
	return s.moveTo(StepCommitted)
}
