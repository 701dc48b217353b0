package amqp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rabbitmq/amqp091-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/parkingwang/oasgen/pkg/broker/amqp"

// Pub 同步发布 每次发布建立一次连接
type Pub struct {
	opt *option
}

func NewPub(opts ...Option) *Pub {
	opt := defaultOption()
	for _, v := range opts {
		v(opt)
	}
	return &Pub{opt: opt}
}

func (p *Pub) PublishMsg(ctx context.Context, exchange, key string, msg amqp091.Publishing) (err error) {
	if p.opt.dsn == "" {
		return errors.New("amqp: dsn is empty")
	}
	ctx, span := otel.Tracer(tracerName).Start(ctx, "amqp.publish",
		trace.WithSpanKind(trace.SpanKindProducer),
		trace.WithAttributes(attribute.String("exchange", exchange)),
		trace.WithAttributes(attribute.String("routingkey", key)),
	)
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	if msg.Headers == nil {
		msg.Headers = make(amqp091.Table)
	}
	tablemap := make(map[string]string)
	otel.GetTextMapPropagator().Inject(ctx, propagation.MapCarrier(tablemap))
	for k, v := range tablemap {
		msg.Headers[k] = v
	}

	sess, err := p.opt.dial(p.opt.dsn)
	if err != nil {
		return fmt.Errorf("amqp: dial: %w", err)
	}
	defer sess.Close()

	if err := p.opt.apply(sess); err != nil {
		return fmt.Errorf("amqp: declare: %w", err)
	}
	return sess.PublishWithContext(ctx, exchange, key, false, false, msg)
}

func (p *Pub) Publish(ctx context.Context, exchange, key, contentType string, data []byte) error {
	msg := amqp091.Publishing{
		ContentType:  contentType,
		MessageId:    uuid.NewString(),
		Body:         data,
		DeliveryMode: amqp091.Transient,
		Timestamp:    time.Now(),
	}
	if p.opt.persistent {
		msg.DeliveryMode = amqp091.Persistent
	}
	return p.PublishMsg(ctx, exchange, key, msg)
}
