package scoring

import (
	"sort"
	"strconv"
	"strings"
)

var extraTypeAliases = map[string]ExtraType{
	"wide":     ExtraWide,
	"wides":    ExtraWide,
	"wd":       ExtraWide,
	"no_ball":  ExtraNoBall,
	"noball":   ExtraNoBall,
	"nb":       ExtraNoBall,
	"bye":      ExtraBye,
	"byes":     ExtraBye,
	"b":        ExtraBye,
	"leg_bye":  ExtraLegBye,
	"legbye":   ExtraLegBye,
	"leg_byes": ExtraLegBye,
	"lb":       ExtraLegBye,
	"penalty":  ExtraPenalty,
	"pen":      ExtraPenalty,
}

// canonicalExtraType maps the spellings scorers use onto the canonical enum.
// Unknown values collapse to ExtraNone.
func canonicalExtraType(raw ExtraType) ExtraType {
	key := strings.ToLower(strings.TrimSpace(string(raw)))
	key = strings.NewReplacer("-", "_", " ", "_").Replace(key)
	if key == "" || key == "null" || key == "none" {
		return ExtraNone
	}
	if t, ok := extraTypeAliases[key]; ok {
		return t
	}
	return ExtraNone
}

func canonicalWicketType(raw WicketType) WicketType {
	key := strings.ToLower(strings.TrimSpace(string(raw)))
	key = strings.NewReplacer("-", "_", " ", "_").Replace(key)
	if key == "runout" {
		return WicketRunOut
	}
	return WicketType(key)
}

// Normalize returns a cleaned copy of raw. It is idempotent:
// Normalize(Normalize(b)) equals Normalize(b) for every input.
func (p *Processor) Normalize(raw []Ball) []Ball {
	out := make([]Ball, len(raw))
	for i, b := range raw {
		out[i] = normalizeBall(b)
	}
	return out
}

func normalizeBall(b Ball) Ball {
	if b.Innings <= 0 {
		b.Innings = 1
	}
	if b.OverNumber < 0 {
		b.OverNumber = 0
	}
	if b.BallNumber < 0 {
		b.BallNumber = 0
	}
	if b.Runs < 0 {
		b.Runs = 0
	}
	if b.Extras < 0 {
		b.Extras = 0
	}
	if b.WagonWheelZone < 0 || b.WagonWheelZone > 8 {
		b.WagonWheelZone = 0
	}

	b.Batsman = strings.TrimSpace(b.Batsman)
	b.NonStriker = strings.TrimSpace(b.NonStriker)
	b.Bowler = strings.TrimSpace(b.Bowler)
	b.DismissedBatsman = strings.TrimSpace(b.DismissedBatsman)
	b.BattingTeam = strings.TrimSpace(b.BattingTeam)

	b.ExtraType = canonicalExtraType(b.ExtraType)
	b.WicketType = canonicalWicketType(b.WicketType)

	if b.IsLegalDelivery == nil {
		legal := !b.ExtraType.Illegal()
		b.IsLegalDelivery = &legal
	} else {
		legal := *b.IsLegalDelivery
		b.IsLegalDelivery = &legal
	}

	if b.IsWicket && b.DismissedBatsman == "" {
		b.DismissedBatsman = b.Batsman
	}
	if b.DisplayValue == "" {
		b.DisplayValue = displayValue(b)
	}
	return b
}

// displayValue is the short label shown in the over-by-over strip.
func displayValue(b Ball) string {
	if b.IsWicket {
		return "W"
	}
	switch b.ExtraType {
	case ExtraWide:
		if b.Extras > 1 {
			return strconv.Itoa(b.Extras-1) + "Wd"
		}
		return "Wd"
	case ExtraNoBall:
		if b.Runs > 0 {
			return strconv.Itoa(b.Runs) + "Nb"
		}
		return "Nb"
	case ExtraBye:
		return strconv.Itoa(b.Extras) + "B"
	case ExtraLegBye:
		return strconv.Itoa(b.Extras) + "Lb"
	}
	return strconv.Itoa(b.Runs)
}

// ordered returns a copy of balls sorted by (innings, over, ball). The sort is
// stable so records sharing a position keep their recorded order.
func ordered(balls []Ball) []Ball {
	out := make([]Ball, len(balls))
	copy(out, balls)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Innings != b.Innings {
			return a.Innings < b.Innings
		}
		if a.OverNumber != b.OverNumber {
			return a.OverNumber < b.OverNumber
		}
		return a.BallNumber < b.BallNumber
	})
	return out
}

// ForInnings filters balls down to a single innings. Innings 0 on a record is
// treated as innings 1, matching Normalize.
func ForInnings(balls []Ball, innings int) []Ball {
	var out []Ball
	for _, b := range balls {
		n := b.Innings
		if n <= 0 {
			n = 1
		}
		if n == innings {
			out = append(out, b)
		}
	}
	return out
}
