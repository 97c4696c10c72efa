package scoring

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ExtraType for runs not scored off the bat
type ExtraType string

const (
	ExtraNone    ExtraType = ""
	ExtraWide    ExtraType = "wide"
	ExtraNoBall  ExtraType = "no_ball"
	ExtraBye     ExtraType = "bye"
	ExtraLegBye  ExtraType = "leg_bye"
	ExtraPenalty ExtraType = "penalty"
)

// Illegal reports whether a delivery of this type must be re-bowled.
func (e ExtraType) Illegal() bool {
	return e == ExtraWide || e == ExtraNoBall
}

// ChargedToBowler reports whether extras of this type count against the bowler.
// Byes, leg-byes and penalty runs never do.
func (e ExtraType) ChargedToBowler() bool {
	return e == ExtraWide || e == ExtraNoBall
}

// WicketType for cricket dismissals
type WicketType string

const (
	WicketBowled      WicketType = "bowled"
	WicketCaught      WicketType = "caught"
	WicketLBW         WicketType = "lbw"
	WicketRunOut      WicketType = "run_out"
	WicketStumped     WicketType = "stumped"
	WicketHitWicket   WicketType = "hit_wicket"
	WicketRetiredHurt WicketType = "retired_hurt"
	WicketRetiredOut  WicketType = "retired_out"
)

// Retired reports a batsman leaving without a dismissal. Retirements are not
// counted as wickets anywhere: not in the innings total, the fall of wickets,
// or a bowler's figures.
func (w WicketType) Retired() bool {
	switch canonicalWicketType(w) {
	case WicketRetiredHurt, WicketRetiredOut:
		return true
	}
	return false
}

// Ball is a single delivery as recorded by the scorer. Records are append-only
// within a match and are never mutated by the derivation functions.
type Ball struct {
	MatchID          string     `json:"match_id,omitempty"`
	Innings          int        `json:"innings"`
	OverNumber       int        `json:"over_number"`
	BallNumber       int        `json:"ball_number"`
	Batsman          string     `json:"batsman"`
	NonStriker       string     `json:"non_striker"`
	Bowler           string     `json:"bowler"`
	Runs             int        `json:"runs"`
	Extras           int        `json:"extras"`
	ExtraType        ExtraType  `json:"extra_type,omitempty"`
	IsLegalDelivery  *bool      `json:"is_legal_delivery,omitempty"`
	IsWicket         bool       `json:"is_wicket"`
	WicketType       WicketType `json:"wicket_type,omitempty"`
	DismissedBatsman string     `json:"dismissed_batsman,omitempty"`
	IsFour           bool       `json:"is_four"`
	IsSix            bool       `json:"is_six"`
	DisplayValue     string     `json:"display_value,omitempty"`
	WagonWheelZone   int        `json:"wagon_wheel_zone,omitempty"`
	BattingTeam      string     `json:"batting_team,omitempty"`
}

// Legal reports whether the delivery counts towards the over. An explicit
// flag wins; otherwise only wides and no-balls are illegal.
func (b Ball) Legal() bool {
	if b.IsLegalDelivery != nil {
		return *b.IsLegalDelivery
	}
	return !b.ExtraType.Illegal()
}

// Dismissed returns the name of the batsman out on this delivery, if any.
func (b Ball) Dismissed() string {
	if !b.IsWicket {
		return ""
	}
	if b.DismissedBatsman != "" {
		return b.DismissedBatsman
	}
	return b.Batsman
}

// CountsAsWicket reports whether the delivery adds to the innings wicket count.
func (b Ball) CountsAsWicket() bool {
	return b.IsWicket && !b.WicketType.Retired()
}

// BowlerWicket reports whether the wicket is credited to the bowler. Run-outs
// and wickets recorded without a bowler are not.
func (b Ball) BowlerWicket() bool {
	return b.CountsAsWicket() && b.Bowler != "" && canonicalWicketType(b.WicketType) != WicketRunOut
}

// TotalRuns is everything the delivery added to the batting side's score.
func (b Ball) TotalRuns() int {
	return b.Runs + b.Extras
}

// UnmarshalJSON accepts numeric fields as JSON numbers or numeric strings,
// since scorer clients are not consistent about either.
func (b *Ball) UnmarshalJSON(data []byte) error {
	type alias Ball
	aux := struct {
		*alias
		Innings        flexInt    `json:"innings"`
		OverNumber     flexInt    `json:"over_number"`
		BallNumber     flexInt    `json:"ball_number"`
		Runs           flexInt    `json:"runs"`
		Extras         flexInt    `json:"extras"`
		WagonWheelZone flexInt    `json:"wagon_wheel_zone"`
		MatchID        flexString `json:"match_id"`
	}{alias: (*alias)(b)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	b.Innings = int(aux.Innings)
	b.OverNumber = int(aux.OverNumber)
	b.BallNumber = int(aux.BallNumber)
	b.Runs = int(aux.Runs)
	b.Extras = int(aux.Extras)
	b.WagonWheelZone = int(aux.WagonWheelZone)
	b.MatchID = string(aux.MatchID)
	return nil
}

type flexInt int

func (f *flexInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = 0
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*f = 0
			return nil
		}
		data = []byte(s)
	}
	n, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return fmt.Errorf("expected number, got %s", string(data))
	}
	*f = flexInt(int(n))
	return nil
}

type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	*f = flexString(string(data))
	return nil
}
