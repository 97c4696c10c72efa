package scoring

// FallOfWicket records the score when a wicket fell.
type FallOfWicket struct {
	Innings int    `json:"innings"`
	Score   int    `json:"score"`
	Wicket  int    `json:"wicket"`
	Batsman string `json:"batsman"`
	Overs   string `json:"overs"`
}

// FallOfWickets walks deliveries in (innings, over, ball) order keeping a
// running score, and emits one entry per wicket. Score and wicket count reset
// at the start of each innings. The running score follows InningsTotals, so
// bat runs without a batsman are left out.
func (p *Processor) FallOfWickets(balls []Ball) []FallOfWicket {
	out := []FallOfWicket{}
	innings, score, wickets, legal := 0, 0, 0, 0

	for _, b := range ordered(balls) {
		if b.Innings != innings {
			innings, score, wickets, legal = b.Innings, 0, 0, 0
		}
		if b.Batsman != "" {
			score += b.Runs
		}
		score += b.Extras
		if b.Legal() {
			legal++
		}
		if !b.CountsAsWicket() {
			continue
		}
		wickets++
		out = append(out, FallOfWicket{
			Innings: b.Innings,
			Score:   score,
			Wicket:  wickets,
			Batsman: b.Dismissed(),
			Overs:   p.FormatOvers(legal),
		})
	}
	return out
}

// Extras is the breakdown of runs not scored off the bat.
type Extras struct {
	Wides     int `json:"wides"`
	NoBalls   int `json:"no_balls"`
	Byes      int `json:"byes"`
	LegByes   int `json:"leg_byes"`
	Penalties int `json:"penalties"`
	Total     int `json:"total"`
}

// Extras tallies the extras field of each delivery by type. Runs off the bat
// on a no-ball are the batsman's, not extras. Extras recorded without a type
// are counted as penalties so the total always equals the sum of the field.
func (p *Processor) Extras(balls []Ball) Extras {
	var e Extras
	for _, b := range balls {
		if b.Extras == 0 {
			continue
		}
		switch canonicalExtraType(b.ExtraType) {
		case ExtraWide:
			e.Wides += b.Extras
		case ExtraNoBall:
			e.NoBalls += b.Extras
		case ExtraBye:
			e.Byes += b.Extras
		case ExtraLegBye:
			e.LegByes += b.Extras
		default:
			e.Penalties += b.Extras
		}
		e.Total += b.Extras
	}
	return e
}

// InningsTotals is the headline score line.
type InningsTotals struct {
	Runs       int    `json:"runs"`
	Wickets    int    `json:"wickets"`
	Overs      string `json:"overs"`
	LegalBalls int    `json:"balls"`
	RunRate    string `json:"run_rate"`
}

// InningsTotals sums bat runs and all extras. Bat runs on deliveries with no
// batsman are dropped, the same as in Batting, so the batting card plus extras
// always reconciles with the total.
func (p *Processor) InningsTotals(balls []Ball) InningsTotals {
	var t InningsTotals
	for _, b := range balls {
		if b.Batsman != "" {
			t.Runs += b.Runs
		}
		t.Runs += b.Extras
		if b.CountsAsWicket() {
			t.Wickets++
		}
		if b.Legal() {
			t.LegalBalls++
		}
	}
	t.Overs = p.FormatOvers(t.LegalBalls)
	t.RunRate = p.rate(t.Runs, t.LegalBalls)
	return t
}
