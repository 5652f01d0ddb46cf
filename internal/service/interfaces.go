package service

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"reel_planner/internal/domain"
)

type Generator interface {
	Generate(ctx context.Context, niche string) ([]domain.ReelIdea, error)
}

// IdeaStore persists saved ideas. Insert returns the stored row with backend
// assigned fields. Delete returns domain.ErrNotFound when no row matched.
type IdeaStore interface {
	Insert(ctx context.Context, niche string, idea domain.ReelIdea) (*domain.SavedIdea, error)
	List(ctx context.Context) ([]domain.SavedIdea, error)
	Delete(ctx context.Context, id string) error
}

type Publisher interface {
	Publish(ctx context.Context, event domain.IdeaEvent) error
	Close() error
}
