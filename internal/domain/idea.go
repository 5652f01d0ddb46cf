package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// ReelIdea is a single generated content idea.
type ReelIdea struct {
	Idea         string     `json:"idea" db:"idea" validate:"required"`
	Hooks        StringList `json:"hooks" db:"hooks" validate:"required,min=1"`
	CaptionShort string     `json:"caption_short" db:"caption_short" validate:"required"`
	CaptionLong  string     `json:"caption_long" db:"caption_long" validate:"required"`
	Hashtags     StringList `json:"hashtags" db:"hashtags" validate:"required,min=1"`
}

// SavedIdea is a ReelIdea persisted for a niche. ID and CreatedAt are
// assigned by the backend.
type SavedIdea struct {
	ID    string `json:"id" db:"id"`
	Niche string `json:"niche" db:"niche"`
	ReelIdea
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// StringList is stored as a JSON array column.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *StringList) Scan(src any) error {
	var data []byte
	switch v := src.(type) {
	case nil:
		*l = nil
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("scan string list: unsupported type %T", src)
	}

	var out []string
	if err := json.Unmarshal(data, &out); err != nil {
		return fmt.Errorf("scan string list: %w", err)
	}
	*l = out
	return nil
}
