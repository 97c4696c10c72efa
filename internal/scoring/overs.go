package scoring

// OverSummary is the over-by-over strip for the over in progress.
type OverSummary struct {
	Number int      `json:"number"`
	Bowler string   `json:"bowler"`
	Runs   int      `json:"runs"`
	Balls  []string `json:"balls"`
}

// CurrentOver returns the over in progress for a single innings. The over
// index is floor(legal/ballsPerOver)+1, so once an over is complete the strip
// starts empty for the next one.
func (p *Processor) CurrentOver(balls []Ball) OverSummary {
	legal := 0
	for _, b := range balls {
		if b.Legal() {
			legal++
		}
	}
	current := legal/p.ballsPerOver + 1
	summary := OverSummary{Number: current, Balls: []string{}}

	// Walk again assigning each delivery the over it belongs to by legal-ball
	// position; illegal deliveries stay in the over they were bowled in.
	seen := 0
	for _, b := range ordered(balls) {
		over := seen/p.ballsPerOver + 1
		if b.Legal() {
			seen++
		}
		if over != current {
			continue
		}
		label := b.DisplayValue
		if label == "" {
			label = displayValue(normalizeBall(b))
		}
		summary.Balls = append(summary.Balls, label)
		summary.Runs += b.TotalRuns()
		if b.Bowler != "" {
			summary.Bowler = b.Bowler
		}
	}
	return summary
}

// ZoneTally is one sector of the wagon wheel.
type ZoneTally struct {
	Zone  int `json:"zone"`
	Runs  int `json:"runs"`
	Shots int `json:"shots"`
}

// WagonWheel tallies runs off the bat per field sector. An empty batsman
// includes every batsman. Deliveries with no zone recorded are ignored.
func (p *Processor) WagonWheel(balls []Ball, batsman string) []ZoneTally {
	zones := make([]ZoneTally, 8)
	for i := range zones {
		zones[i].Zone = i + 1
	}
	for _, b := range balls {
		if b.WagonWheelZone < 1 || b.WagonWheelZone > 8 {
			continue
		}
		if batsman != "" && b.Batsman != batsman {
			continue
		}
		z := &zones[b.WagonWheelZone-1]
		z.Runs += b.Runs
		z.Shots++
	}
	return zones
}
