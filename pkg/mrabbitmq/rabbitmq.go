// Package mrabbitmq manages the RabbitMQ connection used to publish
// embedding.requested events from memory creation.
package mrabbitmq

import (
	"context"
	"errors"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/mlog"
)

// Connection is a hub for the RabbitMQ connection and channel.
type Connection struct {
	ConnectionStringSource string
	Conn                   *amqp.Connection
	Channel                *amqp.Channel
	Connected              bool
	Logger                 mlog.Logger
}

// Connect keeps a singleton connection with rabbitmq.
func (rc *Connection) Connect(ctx context.Context) error {
	if rc.Logger == nil {
		rc.Logger = mlog.NoOp{}
	}

	rc.Logger.Info("connecting to rabbitmq")

	conn, err := amqp.Dial(rc.ConnectionStringSource)
	if err != nil {
		return fmt.Errorf("dialing rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return fmt.Errorf("opening rabbitmq channel: %w", err)
	}

	if ch == nil {
		conn.Close()
		return errors.New("rabbitmq channel was not opened")
	}

	rc.Logger.Info("connected to rabbitmq")

	rc.Conn = conn
	rc.Channel = ch
	rc.Connected = true

	return nil
}

// GetChannel returns the rabbitmq channel, connecting lazily if
// necessary.
func (rc *Connection) GetChannel(ctx context.Context) (*amqp.Channel, error) {
	if !rc.Connected {
		if err := rc.Connect(ctx); err != nil {
			return nil, err
		}
	}

	return rc.Channel, nil
}

// Close releases the channel and connection. Safe to call on an
// unopened Connection.
func (rc *Connection) Close() {
	if rc.Channel != nil {
		rc.Channel.Close()
	}

	if rc.Conn != nil {
		rc.Conn.Close()
	}
}
