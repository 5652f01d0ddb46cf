//go:build integration

package sqlstore

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"reel_planner/internal/domain"
)

type PostgresIntegrationSuite struct {
	suite.Suite
	ctx       context.Context
	container *postgres.PostgresContainer
	db        *sqlx.DB
	store     *IdeaStore
}

func (s *PostgresIntegrationSuite) SetupSuite() {
	s.ctx = context.Background()

	container, err := postgres.Run(s.ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("test_db"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	s.Require().NoError(err)
	s.container = container

	connStr, err := container.ConnectionString(s.ctx, "sslmode=disable")
	s.Require().NoError(err)

	db, err := Open(s.ctx, DriverPostgres, connStr)
	s.Require().NoError(err)
	s.db = db

	s.store = NewIdeaStore(db)
	s.Require().NoError(s.store.Migrate(s.ctx))
}

func (s *PostgresIntegrationSuite) TearDownSuite() {
	if s.db != nil {
		s.db.Close()
	}
	if s.container != nil {
		_ = s.container.Terminate(s.ctx)
	}
}

func (s *PostgresIntegrationSuite) SetupTest() {
	_, _ = s.db.ExecContext(s.ctx, "DELETE FROM saved_ideas")
}

func TestPostgresIntegrationSuite(t *testing.T) {
	suite.Run(t, new(PostgresIntegrationSuite))
}

func (s *PostgresIntegrationSuite) TestInsert() {
	idea := sampleIdea("7 coffee hacks you need to know")

	saved, err := s.store.Insert(s.ctx, "coffee", idea)
	s.Require().NoError(err)

	_, err = uuid.Parse(saved.ID)
	s.NoError(err)
	s.Equal(idea, saved.ReelIdea)
	s.WithinDuration(time.Now(), saved.CreatedAt, time.Minute)

	var count int
	err = s.db.GetContext(s.ctx, &count, "SELECT COUNT(*) FROM saved_ideas WHERE niche = $1", "coffee")
	s.NoError(err)
	s.Equal(1, count)
}

func (s *PostgresIntegrationSuite) TestHooksStoredAsJSON() {
	_, err := s.store.Insert(s.ctx, "coffee", sampleIdea("json"))
	s.Require().NoError(err)

	var n int
	err = s.db.GetContext(s.ctx, &n, "SELECT jsonb_array_length(hooks) FROM saved_ideas LIMIT 1")
	s.NoError(err)
	s.Equal(3, n)
}

func (s *PostgresIntegrationSuite) TestList_NewestFirst() {
	var ids []string
	for _, text := range []string{"a", "b", "c"} {
		saved, err := s.store.Insert(s.ctx, "coffee", sampleIdea(text))
		s.Require().NoError(err)
		ids = append(ids, saved.ID)
	}

	ideas, err := s.store.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(ideas, 3)

	s.Equal(ids[2], ideas[0].ID)
	s.Equal(ids[1], ideas[1].ID)
	s.Equal(ids[0], ideas[2].ID)
}

func (s *PostgresIntegrationSuite) TestDelete() {
	saved, err := s.store.Insert(s.ctx, "coffee", sampleIdea("gone"))
	s.Require().NoError(err)

	s.NoError(s.store.Delete(s.ctx, saved.ID))
	s.ErrorIs(s.store.Delete(s.ctx, saved.ID), domain.ErrNotFound)

	ideas, err := s.store.List(s.ctx)
	s.NoError(err)
	s.Empty(ideas)
}
