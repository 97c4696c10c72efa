package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Base is embedded by every persisted entity.
type Base struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_date"`
	UpdatedAt time.Time      `json:"updated_date"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	CreatedBy uint           `gorm:"index" json:"created_by,omitempty"`
}

// Record gives generic code access to the embedded Base.
type Record interface {
	BaseRecord() *Base
}

func (b *Base) BaseRecord() *Base { return b }

// JSON column types. Postgres hands back []byte, sqlite may return string.

type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type SocialMedia struct {
	Facebook  string `json:"facebook,omitempty"`
	Instagram string `json:"instagram,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
	YouTube   string `json:"youtube,omitempty"`
}

type StringSlice []string

func (s StringSlice) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	b, err := json.Marshal(s)
	return string(b), err
}

func (s *StringSlice) Scan(src interface{}) error {
	return scanJSON("StringSlice", src, s)
}

func (c Coordinates) Value() (driver.Value, error) {
	b, err := json.Marshal(c)
	return string(b), err
}

func (c *Coordinates) Scan(src interface{}) error {
	return scanJSON("Coordinates", src, c)
}

func (sm SocialMedia) Value() (driver.Value, error) {
	b, err := json.Marshal(sm)
	return string(b), err
}

func (sm *SocialMedia) Scan(src interface{}) error {
	return scanJSON("SocialMedia", src, sm)
}

func scanJSON(name string, src interface{}, dst interface{}) error {
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		if len(v) == 0 {
			return nil
		}
		return json.Unmarshal(v, dst)
	case string:
		if v == "" {
			return nil
		}
		return json.Unmarshal([]byte(v), dst)
	default:
		return fmt.Errorf("%s: expected []byte or string, got %T", name, src)
	}
}
