package scheduler

import (
	"fmt"
	"sort"
	"time"
)

// DetectConflicts recomputes every conflict over the full fixture list.
// Results are ordered same_day, consecutive, venue_clash.
func DetectConflicts(fixtures []Fixture, cfg Config) []Conflict {
	conflicts := []Conflict{}
	conflicts = append(conflicts, sameDay(fixtures)...)
	if cfg.AvoidConsecutiveDays {
		conflicts = append(conflicts, consecutive(fixtures, cfg.MinDaysBetweenMatches)...)
	}
	conflicts = append(conflicts, venueClash(fixtures)...)
	return conflicts
}

// BlockingConflicts counts the conflicts that prevent confirmation.
func BlockingConflicts(conflicts []Conflict) int {
	n := 0
	for _, c := range conflicts {
		if c.Severity == SeverityError {
			n++
		}
	}
	return n
}

func sharedTeam(a, b Fixture) string {
	for _, name := range []string{a.Team1Name, a.Team2Name} {
		if b.involves(name) {
			return name
		}
	}
	return ""
}

func sameDay(fixtures []Fixture) []Conflict {
	var out []Conflict
	for i := 0; i < len(fixtures); i++ {
		for j := i + 1; j < len(fixtures); j++ {
			a, b := fixtures[i], fixtures[j]
			if a.Date == "" || a.Date != b.Date {
				continue
			}
			team := sharedTeam(a, b)
			if team == "" {
				continue
			}
			out = append(out, Conflict{
				Type:     ConflictSameDay,
				Message:  fmt.Sprintf("%s plays twice on %s (matches %d and %d)", team, a.Date, i+1, j+1),
				Indices:  [2]int{i, j},
				Severity: SeverityError,
			})
		}
	}
	return out
}

type appearance struct {
	index int
	date  time.Time
}

// consecutive warns when a team's next match comes before minDays full rest
// days have passed. Two matches on one date are left to sameDay.
func consecutive(fixtures []Fixture, minDays int) []Conflict {
	var order []string
	seen := make(map[string][]appearance)
	add := func(name string, a appearance) {
		if name == "" {
			return
		}
		if _, ok := seen[name]; !ok {
			order = append(order, name)
		}
		seen[name] = append(seen[name], a)
	}
	for i, f := range fixtures {
		d, err := time.Parse(DateLayout, f.Date)
		if err != nil {
			continue
		}
		add(f.Team1Name, appearance{index: i, date: d})
		if f.Team2Name != f.Team1Name {
			add(f.Team2Name, appearance{index: i, date: d})
		}
	}

	var out []Conflict
	for _, team := range order {
		apps := seen[team]
		sort.SliceStable(apps, func(i, j int) bool { return apps[i].date.Before(apps[j].date) })
		for k := 1; k < len(apps); k++ {
			prev, cur := apps[k-1], apps[k]
			gap := int(cur.date.Sub(prev.date).Hours() / 24)
			if gap == 0 || gap >= minDays+1 {
				continue
			}
			out = append(out, Conflict{
				Type: ConflictConsecutive,
				Message: fmt.Sprintf("%s has only %d day(s) between matches %d and %d",
					team, gap, prev.index+1, cur.index+1),
				Indices:  [2]int{prev.index, cur.index},
				Severity: SeverityWarning,
			})
		}
	}
	return out
}

func venueClash(fixtures []Fixture) []Conflict {
	var out []Conflict
	for i := 0; i < len(fixtures); i++ {
		for j := i + 1; j < len(fixtures); j++ {
			a, b := fixtures[i], fixtures[j]
			if a.Venue == "" || a.Date == "" {
				continue
			}
			if a.Date != b.Date || a.Venue != b.Venue || a.StartTime != b.StartTime {
				continue
			}
			out = append(out, Conflict{
				Type:     ConflictVenueClash,
				Message:  fmt.Sprintf("%s is double-booked on %s at %s (matches %d and %d)", a.Venue, a.Date, a.StartTime, i+1, j+1),
				Indices:  [2]int{i, j},
				Severity: SeverityError,
			})
		}
	}
	return out
}

// Fixture fields an operator may edit in preview.
const (
	FieldDate      = "date"
	FieldMatchDate = "match_date"
	FieldStartTime = "start_time"
	FieldEndTime   = "end_time"
	FieldVenue     = "venue"
)

// UpdateFixture returns a copy of fixtures with one field of fixtures[index]
// changed. Changing the date or start time recomputes match_date.
func UpdateFixture(fixtures []Fixture, index int, field, value string) ([]Fixture, error) {
	if index < 0 || index >= len(fixtures) {
		return nil, fmt.Errorf("%w: %d", ErrFixtureIndex, index)
	}
	f := fixtures[index]
	switch field {
	case FieldDate, FieldMatchDate:
		date := value
		if len(value) > len(DateLayout) {
			date = value[:len(DateLayout)]
		}
		if _, err := time.Parse(DateLayout, date); err != nil {
			return nil, fmt.Errorf("%w: date %q", ErrInvalidValue, value)
		}
		f.Date = date
		f.MatchDate = matchDate(f.Date, f.StartTime)
	case FieldStartTime:
		if _, err := time.Parse(TimeLayout, value); err != nil {
			return nil, fmt.Errorf("%w: start time %q", ErrInvalidValue, value)
		}
		f.StartTime = value
		f.MatchDate = matchDate(f.Date, f.StartTime)
	case FieldEndTime:
		if value != "" {
			if _, err := time.Parse(TimeLayout, value); err != nil {
				return nil, fmt.Errorf("%w: end time %q", ErrInvalidValue, value)
			}
		}
		f.EndTime = value
	case FieldVenue:
		f.Venue = value
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownField, field)
	}

	out := make([]Fixture, len(fixtures))
	copy(out, fixtures)
	out[index] = f
	return out, nil
}

// SwapFixtures exchanges the date, time and venue of two fixtures. Teams stay
// where they are.
func SwapFixtures(fixtures []Fixture, i, j int) ([]Fixture, error) {
	for _, idx := range []int{i, j} {
		if idx < 0 || idx >= len(fixtures) {
			return nil, fmt.Errorf("%w: %d", ErrFixtureIndex, idx)
		}
	}
	out := make([]Fixture, len(fixtures))
	copy(out, fixtures)
	a, b := out[i], out[j]
	a.Date, b.Date = b.Date, a.Date
	a.MatchDate, b.MatchDate = b.MatchDate, a.MatchDate
	a.Venue, b.Venue = b.Venue, a.Venue
	a.StartTime, b.StartTime = b.StartTime, a.StartTime
	a.EndTime, b.EndTime = b.EndTime, a.EndTime
	out[i], out[j] = a, b
	return out, nil
}
