package sqlstore

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"reel_planner/internal/domain"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite3"
)

var (
	//go:embed schema_postgres.sql
	postgresSchema string

	//go:embed schema_sqlite.sql
	sqliteSchema string
)

const ideaColumns = "id, niche, idea, hooks, caption_short, caption_long, hashtags, created_at"

// IdeaStore keeps saved ideas in a saved_ideas table on PostgreSQL or SQLite.
// Queries are written with ? placeholders and rebound for the driver.
type IdeaStore struct {
	db *sqlx.DB
}

func NewIdeaStore(db *sqlx.DB) *IdeaStore {
	return &IdeaStore{db: db}
}

// Open connects and pings the database behind dsn.
func Open(ctx context.Context, driver, dsn string) (*sqlx.DB, error) {
	switch driver {
	case DriverPostgres, DriverSQLite:
	default:
		return nil, fmt.Errorf("unsupported sql driver %q", driver)
	}

	db, err := sqlx.ConnectContext(ctx, driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect to %s: %w", driver, err)
	}
	if driver == DriverSQLite {
		// a single connection keeps :memory: databases shared
		db.SetMaxOpenConns(1)
	}
	return db, nil
}

// Migrate creates the saved_ideas table if it does not exist.
func (s *IdeaStore) Migrate(ctx context.Context) error {
	schema := postgresSchema
	if s.db.DriverName() == DriverSQLite {
		schema = sqliteSchema
	}

	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("init schema: %w", err)
	}
	return nil
}

func (s *IdeaStore) Insert(ctx context.Context, niche string, idea domain.ReelIdea) (*domain.SavedIdea, error) {
	query := s.db.Rebind(`
		INSERT INTO saved_ideas (niche, idea, hooks, caption_short, caption_long, hashtags)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING id`)

	var id string
	err := s.db.QueryRowContext(ctx, query,
		niche,
		idea.Idea,
		idea.Hooks,
		idea.CaptionShort,
		idea.CaptionLong,
		idea.Hashtags,
	).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return s.get(ctx, id)
}

func (s *IdeaStore) get(ctx context.Context, id string) (*domain.SavedIdea, error) {
	query := s.db.Rebind("SELECT " + ideaColumns + " FROM saved_ideas WHERE id = ?")

	var saved domain.SavedIdea
	if err := s.db.GetContext(ctx, &saved, query, id); err != nil {
		return nil, fmt.Errorf("get idea %s: %w", id, err)
	}
	return &saved, nil
}

func (s *IdeaStore) List(ctx context.Context) ([]domain.SavedIdea, error) {
	query := "SELECT " + ideaColumns + " FROM saved_ideas ORDER BY created_at DESC"

	ideas := []domain.SavedIdea{}
	if err := s.db.SelectContext(ctx, &ideas, query); err != nil {
		return nil, err
	}
	return ideas, nil
}

func (s *IdeaStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, s.db.Rebind("DELETE FROM saved_ideas WHERE id = ?"), id)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("idea %s: %w", id, domain.ErrNotFound)
	}
	return nil
}
