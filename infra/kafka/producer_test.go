package kafka

import (
	"testing"
	"time"

	"arbor/api/wire"
)

func TestAnnouncementMessage(t *testing.T) {
	created := time.Unix(1756166400, 0)
	msg := announcementMessage(42, created, 7)

	if string(msg.Key) != "42" {
		t.Errorf("key = %q", msg.Key)
	}

	var ann wire.SnapshotAnnouncement
	if err := ann.UnmarshalWire(msg.Value); err != nil {
		t.Fatalf("decode value: %v", err)
	}
	if ann.Seq != 42 || ann.CreatedUnix != created.Unix() || ann.Members != 7 {
		t.Errorf("announcement = %+v", ann)
	}
}
