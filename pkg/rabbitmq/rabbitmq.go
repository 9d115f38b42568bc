package rabbitmq

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/streadway/amqp"
)

const jobEventsQueue = "job_events"

// Client publishes job lifecycle events so downstream consumers (mail
// digests, feed rebuilds) can react without polling the catalog.
type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
}

type Config struct {
	URL string
}

func NewClient(cfg Config) (*Client, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if _, err = ch.QueueDeclare(jobEventsQueue, true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare %s: %w", jobEventsQueue, err)
	}

	slog.Info("rabbitmq connected", "queue", jobEventsQueue)
	return &Client{conn: conn, channel: ch}, nil
}

func (c *Client) Close() error {
	var errs []error
	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close channel: %w", err))
		}
	}
	if c.conn != nil {
		if err := c.conn.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close connection: %w", err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("errors closing rabbitmq client: %v", errs)
	}
	return nil
}

// PublishJobCreated emits a job.created event with the job payload.
func (c *Client) PublishJobCreated(payload map[string]interface{}) error {
	if c.channel == nil {
		return fmt.Errorf("rabbitmq channel is not available")
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal job event: %w", err)
	}

	err = c.channel.Publish("", jobEventsQueue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		Type:         "job.created",
		Body:         body,
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
	})
	if err != nil {
		return fmt.Errorf("failed to publish job event: %w", err)
	}
	return nil
}
