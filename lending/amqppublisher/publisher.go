package amqppublisher

import (
	"context"
	"errors"
	"time"

	jsoniter "github.com/json-iterator/go"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/shelfwise/lending-lifecycle-go/lending"
)

const (
	defaultExchangeName = "lending.events"
	exchangeKindTopic   = "topic"
	contentTypeJSON     = "application/json"
)

var (
	// ErrEmptyBrokerURL is returned when the publisher is built without a broker URL.
	ErrEmptyBrokerURL = errors.New("broker url must not be empty")

	// ErrEmptyExchangeName is returned when the exchange name option is empty.
	ErrEmptyExchangeName = errors.New("exchange name must not be empty")
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Publisher implements lending.EventPublisher over a RabbitMQ topic exchange.
type Publisher struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
}

// Option defines a functional option for configuring the Publisher.
type Option func(*Publisher) error

// WithExchangeName overrides the default exchange name.
func WithExchangeName(exchange string) Option {
	return func(p *Publisher) error {
		if exchange == "" {
			return ErrEmptyExchangeName
		}

		p.exchange = exchange

		return nil
	}
}

// NewPublisher dials the broker, opens a channel and declares the durable
// topic exchange the events are published to.
func NewPublisher(brokerURL string, options ...Option) (*Publisher, error) {
	if brokerURL == "" {
		return nil, ErrEmptyBrokerURL
	}

	publisher := &Publisher{exchange: defaultExchangeName}

	for _, option := range options {
		if err := option(publisher); err != nil {
			return nil, err
		}
	}

	conn, dialErr := amqp.Dial(brokerURL)
	if dialErr != nil {
		return nil, dialErr
	}

	channel, channelErr := conn.Channel()
	if channelErr != nil {
		_ = conn.Close()
		return nil, channelErr
	}

	declareErr := channel.ExchangeDeclare(publisher.exchange, exchangeKindTopic, true, false, false, false, nil)
	if declareErr != nil {
		_ = channel.Close()
		_ = conn.Close()

		return nil, declareErr
	}

	publisher.conn = conn
	publisher.channel = channel

	return publisher, nil
}

// Publish marshals the event and delivers it with its kind as routing key.
func (p *Publisher) Publish(ctx context.Context, event lending.DomainEvent) error {
	publishing, buildErr := buildPublishing(event)
	if buildErr != nil {
		return buildErr
	}

	return p.channel.PublishWithContext(ctx, p.exchange, event.Kind(), false, false, publishing)
}

// Close releases the channel and the connection.
func (p *Publisher) Close() error {
	channelErr := p.channel.Close()
	connErr := p.conn.Close()

	return errors.Join(channelErr, connErr)
}

func buildPublishing(event lending.DomainEvent) (amqp.Publishing, error) {
	body, marshalErr := json.Marshal(event)
	if marshalErr != nil {
		return amqp.Publishing{}, marshalErr
	}

	return amqp.Publishing{
		ContentType: contentTypeJSON,
		Body:        body,
		Timestamp:   time.Now(),
		Type:        event.Kind(),
	}, nil
}

var _ lending.EventPublisher = (*Publisher)(nil)
