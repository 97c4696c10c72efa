package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Club is the static club profile served at /api/club and used as defaults
// by the scorer and the fixture scheduler.
type Club struct {
	Name         string            `yaml:"name" json:"name"`
	ShortName    string            `yaml:"short_name" json:"short_name"`
	Founded      int               `yaml:"founded,omitempty" json:"founded,omitempty"`
	Colors       ClubColors        `yaml:"colors" json:"colors"`
	Contact      ClubContact       `yaml:"contact" json:"contact"`
	Social       map[string]string `yaml:"social,omitempty" json:"social,omitempty"`
	BallsPerOver int               `yaml:"balls_per_over" json:"balls_per_over"`
	Scheduler    ClubScheduler     `yaml:"scheduler" json:"scheduler"`
}

type ClubColors struct {
	Primary   string `yaml:"primary" json:"primary"`
	Secondary string `yaml:"secondary" json:"secondary"`
}

type ClubContact struct {
	Email   string `yaml:"email" json:"email"`
	Phone   string `yaml:"phone" json:"phone"`
	Address string `yaml:"address" json:"address"`
}

// ClubScheduler holds the club's default fixture settings. Tournament dates are
// not part of it; each tournament brings its own.
type ClubScheduler struct {
	AvailableDays         []string    `yaml:"available_days" json:"available_days"`
	Venues                []ClubVenue `yaml:"venues" json:"venues"`
	AvoidConsecutiveDays  bool        `yaml:"avoid_consecutive_days" json:"avoid_consecutive_days"`
	MinDaysBetweenMatches int         `yaml:"min_days_between_matches" json:"min_days_between_matches"`
}

// ClubVenue is a ground with its daily slots, each "HH:MM" start and end.
type ClubVenue struct {
	Name  string     `yaml:"name" json:"name"`
	Slots []ClubSlot `yaml:"slots" json:"slots"`
}

type ClubSlot struct {
	Start string `yaml:"start" json:"start"`
	End   string `yaml:"end" json:"end"`
}

// DefaultClub is used when no club file is configured.
func DefaultClub() *Club {
	return &Club{
		Name:         "Clubhouse Cricket Club",
		ShortName:    "CCC",
		Colors:       ClubColors{Primary: "#1b5e20", Secondary: "#ffffff"},
		BallsPerOver: 6,
		Scheduler: ClubScheduler{
			AvailableDays:         []string{"saturday", "sunday"},
			AvoidConsecutiveDays:  true,
			MinDaysBetweenMatches: 1,
		},
	}
}

// LoadClub reads the club YAML at path. An empty path yields DefaultClub.
func LoadClub(path string) (*Club, error) {
	club := DefaultClub()
	if path == "" {
		return club, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read club config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, club); err != nil {
		return nil, fmt.Errorf("parse club config %s: %w", path, err)
	}
	if club.Name == "" {
		return nil, errors.New("club config: name is required")
	}
	if club.BallsPerOver < 0 {
		return nil, fmt.Errorf("club config: balls_per_over must be positive, got %d", club.BallsPerOver)
	}
	for _, v := range club.Scheduler.Venues {
		if v.Name == "" {
			return nil, errors.New("club config: scheduler venue without a name")
		}
	}
	return club, nil
}
