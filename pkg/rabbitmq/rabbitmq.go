package rabbitmq

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"katalog/internal/models"

	amqp "github.com/streadway/amqp"
)

// ProductEventsQueue is the durable queue product events are published to.
const ProductEventsQueue = "product_events"

// Client holds the RabbitMQ connection and channel.
type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
}

// Config holds RabbitMQ connection details.
type Config struct {
	URL string
}

// ProductEvent is the message body published for every product change.
type ProductEvent struct {
	Event      string         `json:"event"`
	Product    models.Product `json:"product"`
	OccurredAt time.Time      `json:"occurredAt"`
}

// NewClient connects to RabbitMQ, opens a channel and declares the product events queue.
func NewClient(cfg Config) (*Client, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close() // Close connection if channel creation fails
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	_, err = ch.QueueDeclare(
		ProductEventsQueue, // name
		true,               // durable
		false,              // delete when unused
		false,              // exclusive
		false,              // no-wait
		nil,                // arguments
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare %s: %w", ProductEventsQueue, err)
	}

	log.Printf("RabbitMQ client connected and %s declared.", ProductEventsQueue)

	return &Client{
		conn:    conn,
		channel: ch,
	}, nil
}

// Close closes the RabbitMQ connection and channel.
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
		return fmt.Errorf("multiple errors occurred during RabbitMQ client close: %v", errs)
	}
	return nil
}

// PublishProductEvent publishes a product change to the product events queue.
func (c *Client) PublishProductEvent(event string, product models.Product) error {
	if c.channel == nil {
		return fmt.Errorf("RabbitMQ channel is not available")
	}

	msg, err := NewProductEventMessage(event, product, time.Now())
	if err != nil {
		return err
	}

	// Publish through the default exchange, routed by queue name
	if err := c.channel.Publish("", ProductEventsQueue, false, false, msg); err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}

	log.Printf(" [x] Sent %s event for product %s", event, product.ID)
	return nil
}

// NewProductEventMessage builds the persistent JSON message for a product event.
func NewProductEventMessage(event string, product models.Product, at time.Time) (amqp.Publishing, error) {
	body, err := json.Marshal(ProductEvent{
		Event:      event,
		Product:    product,
		OccurredAt: at.UTC(),
	})
	if err != nil {
		return amqp.Publishing{}, fmt.Errorf("failed to marshal product event to JSON: %w", err)
	}

	return amqp.Publishing{
		ContentType:  "application/json",
		Type:         event,
		Body:         body,
		DeliveryMode: amqp.Persistent, // Make message persistent
		Timestamp:    at,
	}, nil
}
