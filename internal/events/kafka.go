package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/Shopify/sarama"
	"go.uber.org/zap"

	"github.com/fleetdepot/depot/internal/domain"
)

// KafkaPublisher writes events to one topic keyed by part id, so a part's
// events stay ordered within a partition. Publish never waits on the broker:
// when the producer's input buffer is full the event is dropped and logged.
type KafkaPublisher struct {
	producer sarama.AsyncProducer
	topic    string
	drained  chan struct{}
}

func NewKafkaProducer(brokers []string) (sarama.AsyncProducer, error) {
	conf := sarama.NewConfig()
	conf.Producer.Return.Successes = false
	conf.Producer.Return.Errors = true
	conf.Producer.RequiredAcks = sarama.WaitForAll
	conf.Producer.Flush.Frequency = 100 * time.Millisecond

	producer, err := sarama.NewAsyncProducer(brokers, conf)
	if err != nil {
		return nil, fmt.Errorf("sarama.NewAsyncProducer -> %w", err)
	}

	return producer, nil
}

// NewKafkaPublisher takes ownership of producer. Its Errors channel must be
// enabled; delivery failures are logged from a background goroutine.
func NewKafkaPublisher(producer sarama.AsyncProducer, topic string) *KafkaPublisher {
	p := &KafkaPublisher{
		producer: producer,
		topic:    topic,
		drained:  make(chan struct{}),
	}
	go p.logErrors()

	return p
}

func (p *KafkaPublisher) logErrors() {
	defer close(p.drained)

	for perr := range p.producer.Errors() {
		zap.L().Error("kafka publish failed", zap.String("topic", perr.Msg.Topic), zap.Error(perr.Err))
	}
}

func (p *KafkaPublisher) Publish(_ context.Context, events ...domain.StockEvent) {
	for _, e := range events {
		value, err := json.Marshal(e)
		if err != nil {
			zap.L().Error("kafka event encode failed", zap.String("type", e.Type), zap.Error(err))
			continue
		}
		msg := &sarama.ProducerMessage{
			Topic: p.topic,
			Key:   sarama.StringEncoder(strconv.FormatUint(uint64(e.PartID), 10)),
			Value: sarama.ByteEncoder(value),
		}

		select {
		case p.producer.Input() <- msg:
		default:
			zap.L().Warn("kafka input buffer full, event dropped", zap.String("topic", p.topic), zap.String("type", e.Type))
		}
	}
}

// Close flushes buffered messages and waits for the error log to drain.
func (p *KafkaPublisher) Close() error {
	p.producer.AsyncClose()
	<-p.drained

	return nil
}
