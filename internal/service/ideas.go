package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"reel_planner/internal/domain"
)

var errNoRowReturned = errors.New("no data returned from insert")

type IdeaService struct {
	generator Generator
	store     IdeaStore
	publisher Publisher
	logger    *slog.Logger
}

// NewIdeaService wires the service. publisher may be nil.
func NewIdeaService(generator Generator, store IdeaStore, publisher Publisher, logger *slog.Logger) *IdeaService {
	return &IdeaService{
		generator: generator,
		store:     store,
		publisher: publisher,
		logger:    logger.With("component", "ideas"),
	}
}

func (s *IdeaService) Generate(ctx context.Context, niche string) ([]domain.ReelIdea, error) {
	niche = strings.TrimSpace(niche)
	if niche == "" {
		return nil, fmt.Errorf("%w: niche is required", domain.ErrValidation)
	}

	ideas, err := s.generator.Generate(ctx, niche)
	if err != nil {
		s.logger.Error("generation failed", "niche", niche, "error", err)
		return nil, err
	}

	s.logger.Info("generated ideas", "niche", niche, "count", len(ideas))
	return ideas, nil
}

func (s *IdeaService) Save(ctx context.Context, niche string, idea domain.ReelIdea) (*domain.SavedIdea, error) {
	niche = strings.TrimSpace(niche)
	if niche == "" {
		return nil, fmt.Errorf("%w: niche is required", domain.ErrValidation)
	}
	if err := domain.Validate(idea); err != nil {
		return nil, err
	}

	saved, err := s.store.Insert(ctx, niche, idea)
	if err != nil {
		return nil, fmt.Errorf("insert idea: %w", err)
	}
	if saved == nil {
		return nil, errNoRowReturned
	}

	s.logger.Info("saved idea", "id", saved.ID, "niche", niche)
	s.publish(ctx, domain.IdeaEvent{
		Action: domain.ActionSaved,
		IdeaID: saved.ID,
		Idea:   saved,
	})

	return saved, nil
}

// List returns saved ideas, newest first.
func (s *IdeaService) List(ctx context.Context) ([]domain.SavedIdea, error) {
	ideas, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list ideas: %w", err)
	}
	if ideas == nil {
		ideas = []domain.SavedIdea{}
	}
	return ideas, nil
}

// Delete removes the idea with the given id. Ids that are not UUIDs cannot
// match a row and report domain.ErrNotFound without reaching the store.
func (s *IdeaService) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("idea %q: %w", id, domain.ErrNotFound)
	}

	if err := s.store.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return err
		}
		return fmt.Errorf("delete idea: %w", err)
	}

	s.logger.Info("deleted idea", "id", id)
	s.publish(ctx, domain.IdeaEvent{
		Action: domain.ActionDeleted,
		IdeaID: id,
	})

	return nil
}

func (s *IdeaService) publish(ctx context.Context, event domain.IdeaEvent) {
	if s.publisher == nil {
		return
	}

	event.Timestamp = time.Now().UTC()
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("publish event failed", "action", event.Action, "id", event.IdeaID, "error", err)
	}
}
