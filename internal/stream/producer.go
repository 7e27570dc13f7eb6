package stream

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

// Publisher is what the application services see; a nil-safe no-op lives in
// publish.go for deployments without Kafka.
type Publisher interface {
	Publish(ctx context.Context, topic, eventType, correlationID string, payload any)
}

// Producer fans messages out to Kafka through a buffered inbox so request
// handlers never block on the broker.
type Producer struct {
	w           *kafka.Writer
	inbox       chan kafka.Message
	done        chan struct{}
	serviceName string
	logger      *log.Logger
}

func NewProducer(brokers []string, serviceName string, buf int, logger *log.Logger) *Producer {
	if logger == nil {
		logger = log.Default()
	}
	if buf <= 0 {
		buf = 256
	}
	return &Producer{
		w: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
		},
		inbox:       make(chan kafka.Message, buf),
		done:        make(chan struct{}),
		serviceName: serviceName,
		logger:      logger,
	}
}

// Start drains the inbox until ctx is cancelled, then flushes what is left.
func (p *Producer) Start(ctx context.Context) {
	go func() {
		defer close(p.done)
		for {
			select {
			case <-ctx.Done():
				for {
					select {
					case m := <-p.inbox:
						p.write(m)
					default:
						_ = p.w.Close()
						return
					}
				}
			case m := <-p.inbox:
				p.write(m)
			}
		}
	}()
}

func (p *Producer) write(m kafka.Message) {
	if err := p.w.WriteMessages(context.Background(), m); err != nil {
		p.logger.Printf("kafka publish topic=%s: %v", m.Topic, err)
	}
}

func (p *Producer) Publish(ctx context.Context, topic, eventType, correlationID string, payload any) {
	env := Envelope{
		EventID:       uuid.NewString(),
		EventType:     eventType,
		EventVersion:  1,
		OccurredAt:    time.Now().UTC(),
		Producer:      p.serviceName,
		CorrelationID: correlationID,
		Payload:       MustMarshal(payload),
	}
	msg := kafka.Message{
		Topic: topic,
		Key:   PartitionKey(correlationID),
		Value: MustMarshal(env),
		Time:  time.Now(),
		Headers: []kafka.Header{
			{Key: "x-event-type", Value: []byte(eventType)},
			{Key: "x-event-version", Value: []byte("1")},
		},
	}
	select {
	case p.inbox <- msg:
	default:
		p.logger.Printf("kafka inbox full, dropping %s for %s", eventType, correlationID)
	}
}

// WaitClosed blocks until the drain goroutine has flushed and exited.
func (p *Producer) WaitClosed() { <-p.done }
