// Package scheduler builds tournament fixture lists and checks them for
// scheduling conflicts.
package scheduler

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// Format of a tournament
type Format string

const (
	FormatLeague        Format = "league"
	FormatSuperLeague   Format = "super_league"
	FormatGroupKnockout Format = "group_knockout"
	FormatKnockout      Format = "knockout"
)

func (f Format) Valid() bool {
	switch f {
	case FormatLeague, FormatSuperLeague, FormatGroupKnockout, FormatKnockout:
		return true
	}
	return false
}

// Stage of a fixture within the tournament
type Stage string

const (
	StageLeague       Stage = "league"
	StageGroup        Stage = "group"
	StageRound1       Stage = "round1"
	StageQuarterfinal Stage = "quarterfinal"
	StageSemifinal    Stage = "semifinal"
	StageThirdPlace   Stage = "third_place"
	StageFinal        Stage = "final"
	StageBracket      Stage = "bracket"
)

const StatusScheduled = "scheduled"

// Team is an approved tournament entrant.
type Team struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Group string `json:"group,omitempty"`
}

// Pairing is a matchup before it has been given a slot.
type Pairing struct {
	Team1           Team   `json:"team1"`
	Team2           Team   `json:"team2"`
	Stage           Stage  `json:"stage"`
	Group           string `json:"group,omitempty"`
	Round           int    `json:"round,omitempty"`
	BracketPosition int    `json:"bracket_position,omitempty"`
}

// TimeSlot is a start/end time of day at a venue, both "15:04".
type TimeSlot struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// ParseTimeSlot reads the "HH:MM-HH:MM" form venues are stored in.
func ParseTimeSlot(s string) (TimeSlot, error) {
	start, end, ok := strings.Cut(strings.TrimSpace(s), "-")
	if !ok {
		return TimeSlot{}, fmt.Errorf("%w: time slot %q is not HH:MM-HH:MM", ErrInvalidConfig, s)
	}
	ts := TimeSlot{Start: strings.TrimSpace(start), End: strings.TrimSpace(end)}
	return ts, ts.validate()
}

func (t TimeSlot) validate() error {
	if _, err := time.Parse(TimeLayout, t.Start); err != nil {
		return fmt.Errorf("%w: start time %q", ErrInvalidConfig, t.Start)
	}
	if t.End == "" {
		return nil
	}
	if _, err := time.Parse(TimeLayout, t.End); err != nil {
		return fmt.Errorf("%w: end time %q", ErrInvalidConfig, t.End)
	}
	return nil
}

// VenueSlots lists the time slots a venue offers on every available day.
type VenueSlots struct {
	Name  string     `json:"name"`
	Slots []TimeSlot `json:"slots"`
}

// Config is the operator's scheduling input.
type Config struct {
	StartDate             string       `json:"start_date"`
	EndDate               string       `json:"end_date"`
	AvailableDays         []string     `json:"available_days"`
	Venues                []VenueSlots `json:"venues"`
	AvoidConsecutiveDays  bool         `json:"avoid_consecutive_days"`
	MinDaysBetweenMatches int          `json:"min_days_between_matches"`
}

var weekdays = map[string]time.Weekday{
	"sunday": time.Sunday, "sun": time.Sunday,
	"monday": time.Monday, "mon": time.Monday,
	"tuesday": time.Tuesday, "tue": time.Tuesday,
	"wednesday": time.Wednesday, "wed": time.Wednesday,
	"thursday": time.Thursday, "thu": time.Thursday,
	"friday": time.Friday, "fri": time.Friday,
	"saturday": time.Saturday, "sat": time.Saturday,
}

// Validate checks dates, day names and venue times.
func (c Config) Validate() error {
	start, end, err := c.dateRange()
	if err != nil {
		return err
	}
	if end.Before(start) {
		return fmt.Errorf("%w: end date %s is before start date %s", ErrInvalidConfig, c.EndDate, c.StartDate)
	}
	if _, err := c.weekdaySet(); err != nil {
		return err
	}
	if c.MinDaysBetweenMatches < 0 {
		return fmt.Errorf("%w: min days between matches cannot be negative", ErrInvalidConfig)
	}
	for _, v := range c.Venues {
		if strings.TrimSpace(v.Name) == "" {
			return fmt.Errorf("%w: venue name is required", ErrInvalidConfig)
		}
		for _, ts := range v.Slots {
			if err := ts.validate(); err != nil {
				return err
			}
		}
	}
	return nil
}

func (c Config) dateRange() (time.Time, time.Time, error) {
	start, err := time.Parse(DateLayout, c.StartDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: start date %q", ErrInvalidConfig, c.StartDate)
	}
	end, err := time.Parse(DateLayout, c.EndDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: end date %q", ErrInvalidConfig, c.EndDate)
	}
	return start, end, nil
}

func (c Config) weekdaySet() (map[time.Weekday]bool, error) {
	set := make(map[time.Weekday]bool, len(c.AvailableDays))
	for _, d := range c.AvailableDays {
		wd, ok := weekdays[strings.ToLower(strings.TrimSpace(d))]
		if !ok {
			return nil, fmt.Errorf("%w: unknown day %q", ErrInvalidConfig, d)
		}
		set[wd] = true
	}
	return set, nil
}

// Slot is one bookable (date, venue, time) combination.
type Slot struct {
	Date      string `json:"date"`
	Venue     string `json:"venue"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// Fixture is a draft match. Once confirmed it becomes a TournamentMatch.
type Fixture struct {
	Team1ID         uint   `json:"team1_id"`
	Team1Name       string `json:"team1_name"`
	Team2ID         uint   `json:"team2_id"`
	Team2Name       string `json:"team2_name"`
	Stage           Stage  `json:"stage"`
	Group           string `json:"group,omitempty"`
	Round           int    `json:"round,omitempty"`
	BracketPosition int    `json:"bracket_position,omitempty"`
	Date            string `json:"date"`
	MatchDate       string `json:"match_date"`
	Venue           string `json:"venue"`
	StartTime       string `json:"start_time"`
	EndTime         string `json:"end_time"`
	Status          string `json:"status"`
}

// matchDate combines date and start time into the ISO form stored on the
// match entity.
func matchDate(date, start string) string {
	if date == "" {
		return ""
	}
	if start == "" {
		start = "00:00"
	}
	return date + "T" + start + ":00"
}

func (f Fixture) involves(name string) bool {
	return name != "" && (f.Team1Name == name || f.Team2Name == name)
}

// Severity of a conflict. Only errors block confirmation.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

type ConflictType string

const (
	ConflictSameDay     ConflictType = "same_day"
	ConflictConsecutive ConflictType = "consecutive"
	ConflictVenueClash  ConflictType = "venue_clash"
)

// Conflict references the two fixtures involved by index.
type Conflict struct {
	Type     ConflictType `json:"type"`
	Message  string       `json:"message"`
	Indices  [2]int       `json:"indices"`
	Severity Severity     `json:"severity"`
}

var (
	ErrNotEnoughTeams    = errors.New("at least two teams are required")
	ErrNotEnoughSlots    = errors.New("not enough slots for all matches")
	ErrNoPairings        = errors.New("format produced no matches")
	ErrUnknownFormat     = errors.New("unknown tournament format")
	ErrInvalidConfig     = errors.New("invalid schedule configuration")
	ErrInvalidTransition = errors.New("invalid schedule step transition")
	ErrWrongStep         = errors.New("action not allowed in current step")
	ErrFixtureIndex      = errors.New("fixture index out of range")
	ErrUnknownField      = errors.New("unknown fixture field")
	ErrInvalidValue      = errors.New("invalid fixture value")
	ErrSelfPairing       = errors.New("a team cannot play itself")
	ErrDuplicateFixture  = errors.New("fixture already exists")
	ErrTeamBusy          = errors.New("team already plays on that date")
	ErrBlockingConflicts = errors.New("schedule has unresolved conflicts")
	ErrNoFixtures        = errors.New("no fixtures to confirm")
)
