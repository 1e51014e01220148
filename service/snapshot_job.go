package service

import (
	"context"
	"log"
	"time"

	"arbor/infra/kafka"
	"arbor/snapshot"
)

// StartSnapshotJob periodically persists the board, truncates the WAL
// behind the snapshot and GCs acked outbox records. When announce is
// non-nil, each completed snapshot is published to Kafka.
func (s *BoardService) StartSnapshotJob(
	ctx context.Context,
	dir string,
	interval time.Duration,
	announce *kafka.Producer,
) {
	w := &snapshot.Writer{Dir: dir}

	go func() {
		t := time.NewTicker(interval)
		defer t.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
			}

			s.mu.RLock()
			seq := s.seqGen.Current()
			members := s.board.Len()
			s.reader.Begin()
			err := w.Write(seq, s.board)
			s.reader.End()
			s.mu.RUnlock()
			if err != nil {
				log.Printf("[snapshot] write failed: %v", err)
				continue
			}

			_ = s.wal.TruncateBefore(seq)
			if s.outbox != nil {
				_ = s.outbox.TruncateAckedUpTo(seq)
			}

			if announce != nil {
				sendCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
				if err := announce.AnnounceSnapshot(sendCtx, seq, time.Now(), members); err != nil {
					log.Printf("[snapshot] announce failed: %v", err)
				}
				cancel()
			}
		}
	}()
}
