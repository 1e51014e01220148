// Package broadcaster drains the mutation outbox to Kafka. Records are
// marked SENT before publishing and ACKED after the broker confirms,
// so a crash between the two replays the message rather than losing
// it (at-least-once).
package broadcaster

import (
	"context"
	"log"
	"strconv"
	"time"

	"github.com/IBM/sarama"

	"arbor/infra/outbox"
)

type Broadcaster struct {
	outbox   *outbox.Outbox
	producer sarama.SyncProducer
	topic    string
	interval time.Duration
}

func New(
	ob *outbox.Outbox,
	brokers []string,
	topic string,
	interval time.Duration,
) (*Broadcaster, error) {
	cfg := sarama.NewConfig()
	cfg.Producer.Return.Successes = true
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Retry.Max = 5

	producer, err := sarama.NewSyncProducer(brokers, cfg)
	if err != nil {
		return nil, err
	}

	return &Broadcaster{
		outbox:   ob,
		producer: producer,
		topic:    topic,
		interval: interval,
	}, nil
}

func (b *Broadcaster) Start(ctx context.Context) {
	log.Println("[broadcaster] started")

	go func() {
		ticker := time.NewTicker(b.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				b.drainOnce()
			}
		}
	}()
}

func (b *Broadcaster) drainOnce() {
	_ = b.outbox.ScanByState(outbox.StateNew, func(seq uint64, rec outbox.Record) error {
		if err := b.outbox.UpdateState(seq, outbox.StateSent, rec.Retries+1); err != nil {
			return err
		}

		msg := &sarama.ProducerMessage{
			Topic: b.topic,
			Key:   sarama.StringEncoder(keyFor(seq)),
			Value: sarama.ByteEncoder(rec.Payload),
		}
		if _, _, err := b.producer.SendMessage(msg); err != nil {
			// leave SENT; the retry pass below picks it up
			return nil
		}

		return b.outbox.UpdateState(seq, outbox.StateAcked, rec.Retries+1)
	})

	// retry anything stuck in SENT from a previous crash or broker error
	_ = b.outbox.ScanByState(outbox.StateSent, func(seq uint64, rec outbox.Record) error {
		msg := &sarama.ProducerMessage{
			Topic: b.topic,
			Key:   sarama.StringEncoder(keyFor(seq)),
			Value: sarama.ByteEncoder(rec.Payload),
		}
		if _, _, err := b.producer.SendMessage(msg); err != nil {
			return nil
		}
		return b.outbox.UpdateState(seq, outbox.StateAcked, rec.Retries+1)
	})
}

func (b *Broadcaster) Close() error {
	return b.producer.Close()
}

func keyFor(seq uint64) string {
	return strconv.FormatUint(seq, 10)
}
