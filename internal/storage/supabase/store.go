package supabase

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/supabase-community/postgrest-go"

	"reel_planner/internal/domain"
)

const DefaultTable = "saved_ideas"

type Config struct {
	URL     string
	AnonKey string
	Table   string
}

// Store keeps saved ideas in a Supabase table through its PostgREST API.
type Store struct {
	client *postgrest.Client
	table  string
	logger *slog.Logger
}

// New builds a store for the project at cfg.URL. The REST endpoint is
// cfg.URL + "/rest/v1".
func New(cfg Config, logger *slog.Logger) (*Store, error) {
	base, err := url.Parse(strings.TrimRight(cfg.URL, "/"))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid supabase url %q", cfg.URL)
	}

	table := cfg.Table
	if table == "" {
		table = DefaultTable
	}

	client := postgrest.NewClient(base.JoinPath("rest", "v1").String(), "public", map[string]string{
		"apikey":        cfg.AnonKey,
		"Authorization": "Bearer " + cfg.AnonKey,
	})

	return &Store{
		client: client,
		table:  table,
		logger: logger.With("store", "supabase", "table", table),
	}, nil
}

type insertRow struct {
	Niche string `json:"niche"`
	domain.ReelIdea
}

// savedRow decodes a saved_ideas row. created_at shadows the embedded field
// so timestamps without a zone still decode.
type savedRow struct {
	domain.SavedIdea
	CreatedAt timestamp `json:"created_at"`
}

func (r savedRow) idea() domain.SavedIdea {
	saved := r.SavedIdea
	saved.CreatedAt = time.Time(r.CreatedAt)
	return saved
}

func (s *Store) Insert(ctx context.Context, niche string, idea domain.ReelIdea) (*domain.SavedIdea, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	data, _, err := s.client.From(s.table).
		Insert(insertRow{Niche: niche, ReelIdea: idea}, false, "", "representation", "").
		Execute()
	if err != nil {
		return nil, fmt.Errorf("supabase insert: %w", err)
	}
	s.logger.Debug("supabase insert", "duration", time.Since(start))

	rows, err := decodeRows(data)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

// List returns every saved idea, newest first.
func (s *Store) List(ctx context.Context) ([]domain.SavedIdea, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	data, _, err := s.client.From(s.table).
		Select("*", "", false).
		Order("created_at", &postgrest.OrderOpts{Ascending: false}).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("supabase select: %w", err)
	}
	s.logger.Debug("supabase select", "duration", time.Since(start))

	return decodeRows(data)
}

func (s *Store) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, _, err := s.client.From(s.table).
		Delete("representation", "").
		Eq("id", id).
		Execute()
	if err != nil {
		return fmt.Errorf("supabase delete: %w", err)
	}

	rows, err := decodeRows(data)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return fmt.Errorf("idea %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

func decodeRows(data []byte) ([]domain.SavedIdea, error) {
	ideas := []domain.SavedIdea{}
	if len(strings.TrimSpace(string(data))) == 0 {
		return ideas, nil
	}

	var rows []savedRow
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	for _, r := range rows {
		ideas = append(ideas, r.idea())
	}
	return ideas, nil
}

// timestampLayouts covers timestamptz (RFC 3339) and plain timestamp columns,
// which PostgREST renders without a zone. Zone-less values are read as UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999Z07",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999Z07",
	"2006-01-02 15:04:05.999999999",
}

type timestamp time.Time

func (t *timestamp) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("created_at: %w", err)
	}
	if s == "" {
		*t = timestamp{}
		return nil
	}

	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			*t = timestamp(parsed)
			return nil
		}
	}
	return fmt.Errorf("created_at: unrecognised timestamp %q", s)
}
