//go:build integration

package publisher

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/rabbitmq"
	"github.com/testcontainers/testcontainers-go/wait"

	"reel_planner/internal/domain"
)

type RabbitMQIntegrationSuite struct {
	suite.Suite
	ctx       context.Context
	container *rabbitmq.RabbitMQContainer
	amqpURL   string
	logger    *slog.Logger
}

func (s *RabbitMQIntegrationSuite) SetupSuite() {
	s.ctx = context.Background()
	s.logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

	container, err := rabbitmq.Run(s.ctx,
		"rabbitmq:3.13-management-alpine",
		testcontainers.WithWaitStrategy(
			wait.ForLog("Server startup complete").
				WithStartupTimeout(60*time.Second),
		),
	)
	s.Require().NoError(err)
	s.container = container

	amqpURL, err := container.AmqpURL(s.ctx)
	s.Require().NoError(err)
	s.amqpURL = amqpURL
}

func (s *RabbitMQIntegrationSuite) TearDownSuite() {
	if s.container != nil {
		_ = s.container.Terminate(s.ctx)
	}
}

func TestRabbitMQIntegrationSuite(t *testing.T) {
	suite.Run(t, new(RabbitMQIntegrationSuite))
}

func (s *RabbitMQIntegrationSuite) config(name string) Config {
	return Config{
		URL:        s.amqpURL,
		Exchange:   "test-exchange-" + name,
		RoutingKey: "ideas",
		QueueName:  "test-queue-" + name,
	}
}

func (s *RabbitMQIntegrationSuite) TestPublisher_Connection() {
	pub, err := NewRabbitMQ(s.config("conn"), s.logger)
	s.NoError(err)
	s.NotNil(pub)

	s.NoError(pub.Close())
}

func (s *RabbitMQIntegrationSuite) TestPublisher_PublishSaved() {
	cfg := s.config("saved")
	pub, err := NewRabbitMQ(cfg, s.logger)
	s.Require().NoError(err)
	defer pub.Close()

	idea := &domain.SavedIdea{
		ID:    "3f2c9d8e-2b1a-4c5d-9e8f-0a1b2c3d4e5f",
		Niche: "fitness",
		ReelIdea: domain.ReelIdea{
			Idea:         "5 fitness tips you need to know",
			Hooks:        domain.StringList{"a", "b", "c"},
			CaptionShort: "short",
			CaptionLong:  "long",
			Hashtags:     domain.StringList{"#fitness"},
		},
		CreatedAt: time.Now().UTC().Truncate(time.Millisecond),
	}

	err = pub.Publish(s.ctx, domain.IdeaEvent{Action: domain.ActionSaved, IdeaID: idea.ID, Idea: idea})
	s.NoError(err)

	msg := s.consumeMessage(cfg)
	s.Require().NotNil(msg)

	s.Equal("application/json", msg.ContentType)
	s.Equal("ideas.saved", msg.RoutingKey)
	s.Equal("idea.saved", msg.Type)
	s.Equal(uint8(amqp.Persistent), msg.DeliveryMode)

	var received domain.IdeaEvent
	s.Require().NoError(json.Unmarshal(msg.Body, &received))
	s.Equal(domain.ActionSaved, received.Action)
	s.Equal(idea.ID, received.IdeaID)
	s.Require().NotNil(received.Idea)
	s.Equal("fitness", received.Idea.Niche)
	s.Len(received.Idea.Hooks, 3)
	s.False(received.Timestamp.IsZero())
}

func (s *RabbitMQIntegrationSuite) TestPublisher_PublishDeleted() {
	cfg := s.config("deleted")
	pub, err := NewRabbitMQ(cfg, s.logger)
	s.Require().NoError(err)
	defer pub.Close()

	err = pub.Publish(s.ctx, domain.IdeaEvent{Action: domain.ActionDeleted, IdeaID: "gone"})
	s.NoError(err)

	msg := s.consumeMessage(cfg)
	s.Require().NotNil(msg)
	s.Equal("ideas.deleted", msg.RoutingKey)

	var received domain.IdeaEvent
	s.Require().NoError(json.Unmarshal(msg.Body, &received))
	s.Equal(domain.ActionDeleted, received.Action)
	s.Nil(received.Idea)
}

func (s *RabbitMQIntegrationSuite) consumeMessage(cfg Config) *amqp.Delivery {
	conn, err := amqp.Dial(s.amqpURL)
	s.Require().NoError(err)
	defer conn.Close()

	ch, err := conn.Channel()
	s.Require().NoError(err)
	defer ch.Close()

	msgs, err := ch.Consume(cfg.QueueName, "", true, false, false, false, nil)
	s.Require().NoError(err)

	select {
	case msg := <-msgs:
		return &msg
	case <-time.After(5 * time.Second):
		s.Fail("Timeout waiting for message")
		return nil
	}
}
