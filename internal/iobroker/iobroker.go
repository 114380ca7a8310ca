// Package iobroker publishes persisted sample records to an AMQP exchange
// so downstream services learn about new samples without polling the
// sample store.
package iobroker

import (
	"context"
	"log/slog"
	"time"

	"github.com/gnames/gnfmt"
	"github.com/gnames/gnuuid"
	"github.com/mpsense/sampler/pkg/config"
	"github.com/mpsense/sampler/pkg/sample"
	"github.com/streadway/amqp"
)

// Channel is the part of an AMQP channel the publisher needs.
type Channel interface {
	Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// Publisher implements capture.Notifier.
type Publisher struct {
	conn       *amqp.Connection
	channel    Channel
	exchange   string
	routingKey string
	enc        gnfmt.GNjson
}

// Dial connects to the broker and declares a durable topic exchange.
func Dial(cfg config.BrokerConfig) (*Publisher, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, ConnectError(cfg.Exchange, err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, ConnectError(cfg.Exchange, err)
	}

	err = ch.ExchangeDeclare(
		cfg.Exchange, // name
		"topic",      // type
		true,         // durable
		false,        // auto-deleted
		false,        // internal
		false,        // no-wait
		nil,          // arguments
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, ConnectError(cfg.Exchange, err)
	}

	res := NewWithChannel(ch, cfg)
	res.conn = conn
	slog.Info("Connected to broker", "exchange", cfg.Exchange)
	return res, nil
}

// NewWithChannel creates Publisher on an open channel.
func NewWithChannel(ch Channel, cfg config.BrokerConfig) *Publisher {
	return &Publisher{
		channel:    ch,
		exchange:   cfg.Exchange,
		routingKey: cfg.RoutingKey,
	}
}

// MessageID is derived from the image locator, so a record published twice
// carries the same ID.
func MessageID(rec sample.Record) string {
	return gnuuid.New(rec.ImageURL).String()
}

// Notify publishes the record as a persistent JSON message.
func (p *Publisher) Notify(ctx context.Context, rec sample.Record) error {
	if err := ctx.Err(); err != nil {
		return PublishError(rec.SampleID, err)
	}

	body, err := p.enc.Encode(rec)
	if err != nil {
		return PublishError(rec.SampleID, err)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		MessageId:    MessageID(rec),
		Type:         p.routingKey,
		Body:         body,
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
	}

	err = p.channel.Publish(
		p.exchange,   // exchange
		p.routingKey, // routing key
		false,        // mandatory
		false,        // immediate
		msg,
	)
	if err != nil {
		return PublishError(rec.SampleID, err)
	}
	return nil
}

// Close closes the channel and the connection.
func (p *Publisher) Close() error {
	var err error
	if p.channel != nil {
		if chErr := p.channel.Close(); chErr != nil {
			slog.Warn("Cannot close broker channel", "error", chErr)
			err = chErr
		}
	}
	if p.conn != nil {
		if connErr := p.conn.Close(); connErr != nil {
			slog.Warn("Cannot close broker connection", "error", connErr)
			if err == nil {
				err = connErr
			}
		}
	}
	return err
}
