package main

import (
	"context"
	"flag"
	"log"
	"net"
	"path/filepath"
	"strings"
	"time"

	"google.golang.org/grpc"

	"arbor/api/grpcserver"
	"arbor/api/wire"
	"arbor/domain/scoreboard"
	"arbor/infra/kafka"
	"arbor/infra/memory"
	"arbor/infra/outbox"
	"arbor/infra/sequence"
	"arbor/infra/wal"
	"arbor/jobs/broadcaster"
	"arbor/service"
	"arbor/snapshot"
)

func main() {
	var (
		listenAddr  = flag.String("listen", ":50051", "gRPC listen address")
		dataDir     = flag.String("data", "./data", "data directory")
		brokers     = flag.String("brokers", "", "comma-separated Kafka brokers (empty disables publishing)")
		eventTopic  = flag.String("event-topic", "arbor.mutations", "topic for mutation events")
		snapTopic   = flag.String("snapshot-topic", "arbor.snapshots", "topic for snapshot announcements")
		snapEvery   = flag.Duration("snapshot-interval", time.Minute, "snapshot interval")
		epochEvery  = flag.Duration("epoch-interval", 2*time.Second, "reclamation interval")
		drainEvery  = flag.Duration("drain-interval", 250*time.Millisecond, "outbox drain interval")
		segmentSize = flag.Int64("wal-segment-size", 2<<20, "WAL segment size in bytes")
	)
	flag.Parse()

	walDir := filepath.Join(*dataDir, "wal")
	snapDir := filepath.Join(*dataDir, "snapshot")
	outboxDir := filepath.Join(*dataDir, "outbox")

	// ---------------- Durability ----------------

	entryWAL, err := wal.Open(wal.Config{
		Dir:             walDir,
		SegmentSize:     *segmentSize,
		SegmentDuration: time.Minute,
	})
	if err != nil {
		log.Fatalf("WAL init failed: %v", err)
	}
	defer entryWAL.Close()

	ob, err := outbox.Open(outboxDir)
	if err != nil {
		log.Fatalf("outbox init failed: %v", err)
	}
	defer ob.Close()

	// ---------------- Memory ----------------

	pool := memory.NewPool(func() *scoreboard.Entry {
		return &scoreboard.Entry{}
	})
	ring := memory.NewRetireRing(1 << 18)
	reader := snapshot.NewReader()

	// ---------------- Domain ----------------

	board := scoreboard.NewBoard()
	seqGen := sequence.New(0)

	// ---------------- Recovery ----------------

	snapSeq, err := snapshot.Load(filepath.Join(snapDir, "snapshot.bin"), board, pool)
	if err != nil {
		log.Fatalf("snapshot load failed: %v", err)
	}
	seqGen.Reset(snapSeq)

	if err := service.ReplayFromWAL(walDir, board, pool, seqGen); err != nil {
		log.Fatalf("WAL replay failed: %v", err)
	}

	// ---------------- Service ----------------

	svc := service.NewBoardService(
		board,
		pool,
		ring,
		reader,
		seqGen,
		entryWAL,
		ob,
	)

	// ---------------- Background Jobs ----------------

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		ticker := time.NewTicker(*epochEvery)
		defer ticker.Stop()
		for range ticker.C {
			svc.AdvanceEpoch()
		}
	}()

	var announce *kafka.Producer
	if *brokers != "" {
		brokerList := strings.Split(*brokers, ",")

		announce = kafka.NewProducer(brokerList, *snapTopic)
		defer announce.Close()

		bc, err := broadcaster.New(ob, brokerList, *eventTopic, *drainEvery)
		if err != nil {
			log.Fatalf("broadcaster init failed: %v", err)
		}
		defer bc.Close()
		bc.Start(ctx)
	}

	svc.StartSnapshotJob(ctx, snapDir, *snapEvery, announce)

	// ---------------- gRPC ----------------

	lis, err := net.Listen("tcp", *listenAddr)
	if err != nil {
		log.Fatalf("listen failed: %v", err)
	}

	grpcSrv := grpc.NewServer(grpc.ForceServerCodec(wire.Codec{}))
	grpcserver.Register(grpcSrv, grpcserver.NewServer(svc))

	log.Printf("arbor board engine running on %s", *listenAddr)

	if err := grpcSrv.Serve(lis); err != nil {
		log.Fatalf("gRPC server exited: %v", err)
	}
}
