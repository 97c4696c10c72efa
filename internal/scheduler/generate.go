package scheduler

import (
	"fmt"
	"math/rand"
	"time"
)

// GeneratePairings lists the matchups a format implies, in a fixed order.
// Knockout shuffles teams with rng; a nil rng is seeded from the clock.
func GeneratePairings(format Format, teams []Team, rng *rand.Rand) ([]Pairing, error) {
	switch format {
	case FormatLeague:
		return roundRobin(teams, StageLeague, "", 1), nil
	case FormatSuperLeague:
		first := roundRobin(teams, StageLeague, "", 1)
		second := make([]Pairing, len(first))
		for i, p := range first {
			p.Team1, p.Team2 = p.Team2, p.Team1
			p.Round = 2
			second[i] = p
		}
		return append(first, second...), nil
	case FormatGroupKnockout:
		return groupRoundRobin(teams), nil
	case FormatKnockout:
		return knockout(teams, rng), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

func roundRobin(teams []Team, stage Stage, group string, round int) []Pairing {
	pairings := []Pairing{}
	for i := 0; i < len(teams); i++ {
		for j := i + 1; j < len(teams); j++ {
			pairings = append(pairings, Pairing{
				Team1: teams[i],
				Team2: teams[j],
				Stage: stage,
				Group: group,
				Round: round,
			})
		}
	}
	return pairings
}

// groupRoundRobin plays a round-robin inside each group, groups in order of
// first appearance. Teams without a group are left out.
func groupRoundRobin(teams []Team) []Pairing {
	var order []string
	members := make(map[string][]Team)
	for _, t := range teams {
		if t.Group == "" {
			continue
		}
		if _, ok := members[t.Group]; !ok {
			order = append(order, t.Group)
		}
		members[t.Group] = append(members[t.Group], t)
	}

	pairings := []Pairing{}
	for _, g := range order {
		pairings = append(pairings, roundRobin(members[g], StageGroup, g, 1)...)
	}
	return pairings
}

func knockout(teams []Team, rng *rand.Rand) []Pairing {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	shuffled := make([]Team, len(teams))
	copy(shuffled, teams)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	stage := StageRound1
	switch {
	case len(shuffled) <= 4:
		stage = StageSemifinal
	case len(shuffled) <= 8:
		stage = StageQuarterfinal
	}

	pairings := []Pairing{}
	for i := 0; i+1 < len(shuffled); i += 2 {
		pairings = append(pairings, Pairing{
			Team1:           shuffled[i],
			Team2:           shuffled[i+1],
			Stage:           stage,
			Round:           1,
			BracketPosition: i/2 + 1,
		})
	}
	return pairings
}

// AvailableSlots enumerates every (date, venue, time) the config allows,
// date-major, then venue order, then slot order.
func AvailableSlots(cfg Config) ([]Slot, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	start, end, _ := cfg.dateRange()
	days, _ := cfg.weekdaySet()

	slots := []Slot{}
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if !days[d.Weekday()] {
			continue
		}
		date := d.Format(DateLayout)
		for _, v := range cfg.Venues {
			for _, ts := range v.Slots {
				slots = append(slots, Slot{
					Date:      date,
					Venue:     v.Name,
					StartTime: ts.Start,
					EndTime:   ts.End,
				})
			}
		}
	}
	return slots, nil
}

// Generate pairs the teams and assigns pairing i to slot i. It fails without
// output when there are fewer than two teams or fewer slots than matches.
func Generate(format Format, teams []Team, cfg Config, rng *rand.Rand) ([]Fixture, error) {
	if len(teams) < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrNotEnoughTeams, len(teams))
	}
	pairings, err := GeneratePairings(format, teams, rng)
	if err != nil {
		return nil, err
	}
	if len(pairings) == 0 {
		return nil, ErrNoPairings
	}
	slots, err := AvailableSlots(cfg)
	if err != nil {
		return nil, err
	}
	if len(slots) < len(pairings) {
		return nil, fmt.Errorf("%w: %d matches but only %d slots", ErrNotEnoughSlots, len(pairings), len(slots))
	}

	fixtures := make([]Fixture, len(pairings))
	for i, p := range pairings {
		fixtures[i] = assign(p, slots[i])
	}
	return fixtures, nil
}

func assign(p Pairing, s Slot) Fixture {
	return Fixture{
		Team1ID:         p.Team1.ID,
		Team1Name:       p.Team1.Name,
		Team2ID:         p.Team2.ID,
		Team2Name:       p.Team2.Name,
		Stage:           p.Stage,
		Group:           p.Group,
		Round:           p.Round,
		BracketPosition: p.BracketPosition,
		Date:            s.Date,
		MatchDate:       matchDate(s.Date, s.StartTime),
		Venue:           s.Venue,
		StartTime:       s.StartTime,
		EndTime:         s.EndTime,
		Status:          StatusScheduled,
	}
}
