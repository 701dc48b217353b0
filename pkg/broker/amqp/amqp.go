package amqp

import (
	"context"

	"github.com/rabbitmq/amqp091-go"
)

// session 发布所需的 amqp091.Channel 方法
type session interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp091.Table) error
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp091.Table) (amqp091.Queue, error)
	QueueBind(name, key, exchange string, noWait bool, args amqp091.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error
	Close() error
}

type dialer func(dsn string) (session, error)

type channelSession struct {
	*amqp091.Channel
	conn *amqp091.Connection
}

func (s *channelSession) Close() error {
	s.Channel.Close()
	return s.conn.Close()
}

func dial(dsn string) (session, error) {
	conn, err := amqp091.Dial(dsn)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}
	return &channelSession{ch, conn}, nil
}

func exchangeDeclare(ch session, es ...ExchangeOption) error {
	// 自动声明exchange
	for _, x := range es {
		if err := ch.ExchangeDeclare(
			x.Name, x.Kind, x.Durable, x.AutoDelete, false, false, nil,
		); err != nil {
			return err
		}
	}
	return nil
}

func queueDeclare(ch session, qs ...QueueOption) error {
	for _, x := range qs {
		if _, err := ch.QueueDeclare(
			x.Queue, x.Durable, x.AutoDelete, false, false, nil,
		); err != nil {
			return err
		}
		for _, v := range x.BindExchange {
			if err := ch.QueueBind(
				x.Queue, v.RoutingKey, v.Exchange, false, nil,
			); err != nil {
				return err
			}
		}
	}
	return nil
}
