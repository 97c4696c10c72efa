package club

import (
	"context"

	"gorm.io/gorm"

	"github.com/DhavalSuthar-24/clubhouse/internal/scheduler"
)

type ClubRepository interface {
	AvailableVenues(ctx context.Context) ([]Venue, error)
	TeamsByID(ctx context.Context, ids []uint) (map[uint]Team, error)
}

type clubRepository struct {
	db *gorm.DB
}

func NewClubRepository(db *gorm.DB) ClubRepository {
	return &clubRepository{db: db}
}

func (r *clubRepository) AvailableVenues(ctx context.Context) ([]Venue, error) {
	var venues []Venue
	err := r.db.WithContext(ctx).Where("is_available = ?", true).Order("name ASC").Find(&venues).Error
	return venues, err
}

func (r *clubRepository) TeamsByID(ctx context.Context, ids []uint) (map[uint]Team, error) {
	out := make(map[uint]Team, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var teams []Team
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&teams).Error; err != nil {
		return nil, err
	}
	for _, t := range teams {
		out[t.ID] = t
	}
	return out, nil
}

// SchedulerVenues converts venues with at least one valid slot into
// scheduler input. Venues with malformed slots are skipped.
func SchedulerVenues(venues []Venue) []scheduler.VenueSlots {
	var out []scheduler.VenueSlots
	for i := range venues {
		slots, err := venues[i].Slots()
		if err != nil || len(slots) == 0 {
			continue
		}
		out = append(out, scheduler.VenueSlots{Name: venues[i].Name, Slots: slots})
	}
	return out
}
