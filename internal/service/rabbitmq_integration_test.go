//go:build integration
// +build integration

package service

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/ad-tracker/videoshelf-go/internal/config"
	"github.com/ad-tracker/videoshelf-go/internal/models"
	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/rabbitmq"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupTestRabbitMQ(t *testing.T) (*config.RabbitMQConfig, func()) {
	ctx := context.Background()

	rabbitmqContainer, err := rabbitmq.Run(ctx,
		"rabbitmq:3.13-alpine",
		testcontainers.WithWaitStrategy(
			wait.ForLog("Server startup complete").
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)

	host, err := rabbitmqContainer.Host(ctx)
	require.NoError(t, err)

	port, err := rabbitmqContainer.MappedPort(ctx, "5672/tcp")
	require.NoError(t, err)

	cfg := &config.RabbitMQConfig{
		Enabled:    true,
		Host:       host,
		Port:       port.Int(),
		User:       "guest",
		Password:   "guest",
		Exchange:   "test.videos",
		RoutingKey: "video.created",
	}

	cleanup := func() {
		if err := rabbitmqContainer.Terminate(ctx); err != nil {
			t.Logf("Failed to terminate container: %v", err)
		}
	}

	return cfg, cleanup
}

// bindTestQueue declares an exclusive queue on the exchange and returns its deliveries.
func bindTestQueue(t *testing.T, cfg *config.RabbitMQConfig) <-chan amqp.Delivery {
	conn, err := amqp.Dial(fmt.Sprintf("amqp://%s:%s@%s:%d/", cfg.User, cfg.Password, cfg.Host, cfg.Port))
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	ch, err := conn.Channel()
	require.NoError(t, err)

	q, err := ch.QueueDeclare("", false, true, true, false, nil)
	require.NoError(t, err)
	require.NoError(t, ch.QueueBind(q.Name, cfg.RoutingKey, cfg.Exchange, false, nil))

	deliveries, err := ch.Consume(q.Name, "", true, true, false, false, nil)
	require.NoError(t, err)
	return deliveries
}

func TestMessagePublisher_PublishVideoCreated(t *testing.T) {
	cfg, cleanup := setupTestRabbitMQ(t)
	defer cleanup()

	publisher, err := NewMessagePublisher(cfg)
	require.NoError(t, err)
	defer publisher.Close()

	assert.True(t, publisher.IsHealthy())

	deliveries := bindTestQueue(t, cfg)

	video := &models.Video{
		ID:          uuid.New(),
		Title:       "My Test Video",
		Description: "This is a test video",
		URL:         "http://www.youtube.com/0.42",
		CreatedAt:   time.Now(),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	require.NoError(t, publisher.PublishVideoCreated(ctx, video))

	select {
	case d := <-deliveries:
		assert.Equal(t, "application/json", d.ContentType)
		assert.Equal(t, "video.created", d.Type)

		var event models.VideoCreatedEvent
		require.NoError(t, json.Unmarshal(d.Body, &event))
		assert.Equal(t, event.EventID.String(), d.MessageId)
		assert.Equal(t, video.ID, event.Video.ID)
		assert.Equal(t, video.Title, event.Video.Title)
		assert.Equal(t, video.URL, event.Video.URL)
	case <-ctx.Done():
		t.Fatal("timed out waiting for video created event")
	}
}

func TestMessagePublisher_Close(t *testing.T) {
	cfg, cleanup := setupTestRabbitMQ(t)
	defer cleanup()

	publisher, err := NewMessagePublisher(cfg)
	require.NoError(t, err)

	require.NoError(t, publisher.Close())
	assert.False(t, publisher.IsHealthy())
}

func TestNewMessagePublisher_Unreachable(t *testing.T) {
	cfg := &config.RabbitMQConfig{
		Host:     "127.0.0.1",
		Port:     1,
		User:     "guest",
		Password: "guest",
		Exchange: "test.videos",
	}

	_, err := NewMessagePublisher(cfg)
	assert.Error(t, err)
}
