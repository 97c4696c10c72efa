package scoring

import "sort"

// InningsCard is everything the match report shows for one innings.
type InningsCard struct {
	Innings       int            `json:"innings"`
	BattingTeam   string         `json:"batting_team"`
	Batting       []BattingLine  `json:"batting"`
	Bowling       []BowlingLine  `json:"bowling"`
	FallOfWickets []FallOfWicket `json:"fall_of_wickets"`
	Extras        Extras         `json:"extras"`
	Totals        InningsTotals  `json:"totals"`
	TopScorer     string         `json:"top_scorer,omitempty"`
}

// Innings builds the card for a single innings' deliveries.
func (p *Processor) Innings(n int, balls []Ball) InningsCard {
	card := InningsCard{
		Innings:       n,
		Batting:       p.Batting(balls),
		Bowling:       p.Bowling(balls),
		FallOfWickets: p.FallOfWickets(balls),
		Extras:        p.Extras(balls),
		Totals:        p.InningsTotals(balls),
	}
	card.TopScorer = TopScorer(card.Batting)
	for _, b := range balls {
		if b.BattingTeam != "" {
			card.BattingTeam = b.BattingTeam
			break
		}
	}
	return card
}

// Scorecard normalizes raw and returns one card per innings present, in
// innings order. No deliveries means no cards.
func (p *Processor) Scorecard(raw []Ball) []InningsCard {
	balls := p.Normalize(raw)

	set := make(map[int]struct{})
	for _, b := range balls {
		set[b.Innings] = struct{}{}
	}
	numbers := make([]int, 0, len(set))
	for n := range set {
		numbers = append(numbers, n)
	}
	sort.Ints(numbers)

	cards := make([]InningsCard, 0, len(numbers))
	for _, n := range numbers {
		cards = append(cards, p.Innings(n, ForInnings(balls, n)))
	}
	return cards
}

// LatestInnings returns the highest innings number present, or 1 when there
// are no deliveries yet.
func LatestInnings(balls []Ball) int {
	latest := 1
	for _, b := range balls {
		if b.Innings > latest {
			latest = b.Innings
		}
	}
	return latest
}
