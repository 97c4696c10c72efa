package entity

import (
	"github.com/DhavalSuthar-24/clubhouse/internal/club"
	"github.com/DhavalSuthar-24/clubhouse/internal/match"
	"github.com/DhavalSuthar-24/clubhouse/internal/tournament"
)

// Catalog registers every entity the club frontend reads and writes.
func Catalog() *Registry {
	r := NewRegistry()
	Define[club.Team](r, "Team")
	Define[club.TeamPlayer](r, "TeamPlayer")
	Define[club.Venue](r, "Venue")
	Define[club.News](r, "News")
	Define[club.Payment](r, "Payment")
	Define[tournament.Tournament](r, "Tournament")
	Define[tournament.TournamentTeam](r, "TournamentTeam")
	Define[match.TournamentMatch](r, "TournamentMatch")
	Define[match.BallByBall](r, "BallByBall")
	return r
}
