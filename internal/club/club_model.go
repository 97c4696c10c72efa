package club

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/DhavalSuthar-24/clubhouse/internal/models"
	"github.com/DhavalSuthar-24/clubhouse/internal/scheduler"
)

type Team struct {
	models.Base
	Name      string `json:"name" gorm:"not null;uniqueIndex" binding:"required,max=120"`
	ShortName string `json:"short_name" binding:"max=12"`
	LogoURL   string `json:"logo_url" binding:"omitempty,url"`
	Captain   string `json:"captain"`
	Division  string `json:"division"`
	IsActive  bool   `json:"is_active" gorm:"default:true"`
}

type PlayerRole string

const (
	RoleBatsman      PlayerRole = "batsman"
	RoleBowler       PlayerRole = "bowler"
	RoleAllRounder   PlayerRole = "all_rounder"
	RoleWicketKeeper PlayerRole = "wicket_keeper"
)

// TeamPlayer is a player profile attached to a team.
type TeamPlayer struct {
	models.Base
	TeamID       uint               `json:"team_id" gorm:"index" binding:"required"`
	UserID       *uint              `json:"user_id,omitempty" gorm:"index"`
	Name         string             `json:"name" gorm:"not null" binding:"required,max=120"`
	Role         PlayerRole         `json:"role" binding:"omitempty,oneof=batsman bowler all_rounder wicket_keeper"`
	BattingStyle string             `json:"batting_style" binding:"omitempty,oneof=right_hand left_hand"`
	BowlingStyle string             `json:"bowling_style"`
	JerseyNumber int                `json:"jersey_number" binding:"gte=0,lte=999"`
	IsCaptain    bool               `json:"is_captain"`
	PhotoURL     string             `json:"photo_url" binding:"omitempty,url"`
	Social       models.SocialMedia `json:"social" gorm:"type:text"`
}

type Venue struct {
	models.Base
	Name        string             `json:"name" gorm:"not null;uniqueIndex" binding:"required,max=120"`
	Address     string             `json:"address"`
	Location    models.Coordinates `json:"location" gorm:"type:text"`
	TimeSlots   models.StringSlice `json:"time_slots" gorm:"type:text"`
	IsAvailable bool               `json:"is_available" gorm:"default:true"`
}

// Validate checks every time slot is "HH:MM-HH:MM".
func (v *Venue) Validate() error {
	_, err := v.Slots()
	return err
}

// Slots parses the venue's time slots.
func (v *Venue) Slots() ([]scheduler.TimeSlot, error) {
	out := make([]scheduler.TimeSlot, 0, len(v.TimeSlots))
	for _, raw := range v.TimeSlots {
		ts, err := scheduler.ParseTimeSlot(raw)
		if err != nil {
			return nil, err
		}
		out = append(out, ts)
	}
	return out, nil
}

type News struct {
	models.Base
	Title       string     `json:"title" gorm:"not null" binding:"required,max=200"`
	Body        string     `json:"body" gorm:"type:text"`
	Author      string     `json:"author"`
	Category    string     `json:"category" binding:"omitempty,oneof=match club social announcement"`
	ImageURL    string     `json:"image_url" binding:"omitempty,url"`
	Published   bool       `json:"published"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
}

// Validate stamps PublishedAt the first time a post is published.
func (n *News) Validate() error {
	if n.Published && n.PublishedAt == nil {
		now := time.Now().UTC()
		n.PublishedAt = &now
	}
	return nil
}

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentFailed   PaymentStatus = "failed"
	PaymentRefunded PaymentStatus = "refunded"
)

// Payment amounts are in minor units (pence, cents).
type Payment struct {
	models.Base
	MemberName  string        `json:"member_name" binding:"required"`
	MemberEmail string        `json:"member_email" binding:"omitempty,email"`
	Amount      int64         `json:"amount" binding:"required,gt=0"`
	Currency    string        `json:"currency" binding:"required,len=3"`
	Purpose     string        `json:"purpose" binding:"required,oneof=membership match_fee tournament_entry kit other"`
	Status      PaymentStatus `json:"status" gorm:"default:pending" binding:"omitempty,oneof=pending paid failed refunded"`
	Reference   string        `json:"reference"`
	PaidAt      *time.Time    `json:"paid_at,omitempty"`
}

func (p *Payment) Validate() error {
	p.Currency = strings.ToUpper(p.Currency)
	if p.Status == "" {
		p.Status = PaymentPending
	}
	if p.Status == PaymentPaid && p.PaidAt == nil {
		now := time.Now().UTC()
		p.PaidAt = &now
	}
	if p.Status != PaymentPaid && p.Status != PaymentRefunded && p.PaidAt != nil {
		return errors.New("paid_at is only set on paid or refunded payments")
	}
	return nil
}

// FormatAmount renders minor units, e.g. 2550 GBP -> "25.50 GBP".
func (p *Payment) FormatAmount() string {
	return fmt.Sprintf("%d.%02d %s", p.Amount/100, p.Amount%100, p.Currency)
}
