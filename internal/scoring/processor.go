// Package scoring derives scorecards from ball-by-ball delivery records.
//
// Every function here is pure: it never mutates its input, keeps no state
// between calls and treats an empty slice as a valid innings that has not
// started. Malformed records (no batsman, no bowler) are skipped from the
// per-player groupings instead of failing the whole card.
package scoring

import (
	"fmt"
)

// DefaultBallsPerOver is used when a match does not say otherwise.
const DefaultBallsPerOver = 6

// Processor holds the one per-match setting the derivations depend on.
type Processor struct {
	ballsPerOver int
}

// NewProcessor returns a Processor for matches with the given over length.
// Non-positive values fall back to DefaultBallsPerOver.
func NewProcessor(ballsPerOver int) *Processor {
	if ballsPerOver <= 0 {
		ballsPerOver = DefaultBallsPerOver
	}
	return &Processor{ballsPerOver: ballsPerOver}
}

func (p *Processor) BallsPerOver() int {
	return p.ballsPerOver
}

// FormatOvers renders a legal-ball count as "overs.balls", e.g. 15 -> "2.3".
func (p *Processor) FormatOvers(legalBalls int) string {
	return fmt.Sprintf("%d.%d", legalBalls/p.ballsPerOver, legalBalls%p.ballsPerOver)
}

// rate returns runs per over formatted to two decimals, "0.00" when no legal
// ball has been bowled.
func (p *Processor) rate(runs, legalBalls int) string {
	if legalBalls == 0 {
		return "0.00"
	}
	overs := float64(legalBalls) / float64(p.ballsPerOver)
	return fmt.Sprintf("%.2f", float64(runs)/overs)
}

// BattingLine is one row of the batting card.
type BattingLine struct {
	Name       string `json:"name"`
	Runs       int    `json:"runs"`
	Balls      int    `json:"balls"`
	Fours      int    `json:"fours"`
	Sixes      int    `json:"sixes"`
	StrikeRate string `json:"strike_rate"`
	IsOut      bool   `json:"is_out"`
	Dismissal  string `json:"dismissal"`
}

// Batting groups deliveries by batsman in order of first appearance.
// Balls faced excludes wides. A batsman dismissed without facing (a
// non-striker run out) still gets a row.
func (p *Processor) Batting(balls []Ball) []BattingLine {
	lines := []BattingLine{}
	index := make(map[string]int)

	lineFor := func(name string) *BattingLine {
		i, ok := index[name]
		if !ok {
			lines = append(lines, BattingLine{Name: name, Dismissal: "not out"})
			i = len(lines) - 1
			index[name] = i
		}
		return &lines[i]
	}

	for _, b := range ordered(balls) {
		if b.Batsman != "" {
			line := lineFor(b.Batsman)
			line.Runs += b.Runs
			if b.ExtraType != ExtraWide {
				line.Balls++
			}
			if b.IsFour {
				line.Fours++
			}
			if b.IsSix {
				line.Sixes++
			}
		}

		if out := b.Dismissed(); out != "" {
			line := lineFor(out)
			line.IsOut = true
			line.Dismissal = dismissalText(b)
		}
	}

	for i := range lines {
		lines[i].StrikeRate = strikeRate(lines[i].Runs, lines[i].Balls)
	}
	return lines
}

func strikeRate(runs, balls int) string {
	if balls == 0 {
		return "0.00"
	}
	return fmt.Sprintf("%.2f", float64(runs)*100/float64(balls))
}

func dismissalText(b Ball) string {
	bowler := b.Bowler
	credit := func(prefix string) string {
		if bowler == "" {
			if prefix == "" {
				return "bowled"
			}
			return prefix
		}
		if prefix == "" {
			return "b " + bowler
		}
		return prefix + " b " + bowler
	}

	switch canonicalWicketType(b.WicketType) {
	case WicketBowled:
		return credit("")
	case WicketCaught:
		return credit("c")
	case WicketLBW:
		return credit("lbw")
	case WicketStumped:
		return credit("st")
	case WicketHitWicket:
		return credit("hit wicket")
	case WicketRunOut:
		return "run out"
	case WicketRetiredHurt:
		return "retired hurt"
	case WicketRetiredOut:
		return "retired out"
	case "":
		return "out"
	default:
		return string(b.WicketType)
	}
}

// TopScorer returns the name of the batsman with the strictly highest score.
// Ties and all-zero cards have no top scorer.
func TopScorer(lines []BattingLine) string {
	best, name, tied := 0, "", false
	for _, l := range lines {
		switch {
		case l.Runs > best:
			best, name, tied = l.Runs, l.Name, false
		case l.Runs == best && best > 0:
			tied = true
		}
	}
	if tied {
		return ""
	}
	return name
}

// BowlingLine is one row of the bowling card.
type BowlingLine struct {
	Name       string `json:"name"`
	Overs      string `json:"overs"`
	LegalBalls int    `json:"balls"`
	Maidens    int    `json:"maidens"`
	Runs       int    `json:"runs"`
	Wickets    int    `json:"wickets"`
	Economy    string `json:"economy"`
	Wides      int    `json:"wides"`
	NoBalls    int    `json:"no_balls"`
	Dots       int    `json:"dots"`
}

type overKey struct {
	innings int
	over    int
}

type overTally struct {
	legal    int
	conceded int
}

// Bowling groups deliveries by bowler. Runs conceded are bat runs plus wide and
// no-ball extras; byes, leg-byes and penalties are not charged. Run-outs and
// retirements are not credited as wickets.
func (p *Processor) Bowling(balls []Ball) []BowlingLine {
	lines := []BowlingLine{}
	index := make(map[string]int)
	overs := make(map[string]map[overKey]*overTally)

	for _, b := range ordered(balls) {
		if b.Bowler == "" {
			continue
		}
		i, ok := index[b.Bowler]
		if !ok {
			lines = append(lines, BowlingLine{Name: b.Bowler})
			i = len(lines) - 1
			index[b.Bowler] = i
			overs[b.Bowler] = make(map[overKey]*overTally)
		}
		line := &lines[i]

		conceded := b.Runs
		if b.ExtraType.ChargedToBowler() {
			conceded += b.Extras
		}
		line.Runs += conceded

		legal := b.Legal()
		if legal {
			line.LegalBalls++
			if conceded == 0 {
				line.Dots++
			}
		}
		switch b.ExtraType {
		case ExtraWide:
			line.Wides++
		case ExtraNoBall:
			line.NoBalls++
		}
		if b.BowlerWicket() {
			line.Wickets++
		}

		key := overKey{innings: b.Innings, over: b.OverNumber}
		t, ok := overs[b.Bowler][key]
		if !ok {
			t = &overTally{}
			overs[b.Bowler][key] = t
		}
		if legal {
			t.legal++
		}
		t.conceded += conceded
	}

	for i := range lines {
		line := &lines[i]
		line.Overs = p.FormatOvers(line.LegalBalls)
		line.Economy = p.rate(line.Runs, line.LegalBalls)
		for _, t := range overs[line.Name] {
			if t.legal >= p.ballsPerOver && t.conceded == 0 {
				line.Maidens++
			}
		}
	}
	return lines
}
