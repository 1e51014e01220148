// Package kafka publishes snapshot announcements over kafka-go. The
// outbox broadcaster has its own (sarama) producer; this one exists so
// snapshot consumers can follow durable progress without reading the
// mutation stream.
package kafka

import (
	"context"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"

	"arbor/api/wire"
)

type Producer struct {
	writer *kafka.Writer
}

func NewProducer(brokers []string, topic string) *Producer {
	return &Producer{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			RequiredAcks: kafka.RequireAll,
			Async:        false,
			BatchTimeout: 10 * time.Millisecond,
		},
	}
}

// AnnounceSnapshot publishes one completed snapshot. The key is the
// snapshot sequence so the topic stays readable with plain console
// tools; the value is the protowire-encoded announcement.
func (p *Producer) AnnounceSnapshot(ctx context.Context, seq uint64, created time.Time, members int) error {
	return p.writer.WriteMessages(ctx, announcementMessage(seq, created, members))
}

func announcementMessage(seq uint64, created time.Time, members int) kafka.Message {
	ann := wire.SnapshotAnnouncement{
		Seq:         seq,
		CreatedUnix: created.Unix(),
		Members:     uint64(members),
	}
	return kafka.Message{
		Key:   []byte(strconv.FormatUint(seq, 10)),
		Value: ann.MarshalWire(),
	}
}

func (p *Producer) Close() error {
	return p.writer.Close()
}
