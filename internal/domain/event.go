package domain

import "time"

const (
	ActionSaved   = "saved"
	ActionDeleted = "deleted"
)

// IdeaEvent is published after a saved idea changes.
type IdeaEvent struct {
	Action    string     `json:"action"`
	IdeaID    string     `json:"idea_id"`
	Idea      *SavedIdea `json:"idea,omitempty"`
	Timestamp time.Time  `json:"timestamp"`
}
