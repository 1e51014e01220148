// Package wire holds the protobuf wire encoding for arbor's external
// surfaces: WAL payloads, outbox events, and the gRPC API. Messages
// are maintained by hand against api/proto/scoreboard.proto using the
// protowire package, so the module carries no generated code.
package wire

import "google.golang.org/protobuf/encoding/protowire"

// Op is the mutation kind carried in WAL records and outbox events.
type Op uint8

const (
	OpPut Op = iota + 1
	OpRemove
)

// Mutation is the durable form of one board command.
type Mutation struct {
	Op     Op
	Member string
	Score  int64
}

func (m *Mutation) MarshalWire() []byte {
	var b []byte
	b = appendUint(b, 1, uint64(m.Op))
	b = appendString(b, 2, m.Member)
	b = appendSint(b, 3, m.Score)
	return b
}

func (m *Mutation) UnmarshalWire(b []byte) error {
	*m = Mutation{}
	return walkFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch {
		case num == 1 && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			m.Op = Op(v)
			return n, nil
		case num == 2 && typ == protowire.BytesType:
			s, n := protowire.ConsumeString(b)
			m.Member = s
			return n, nil
		case num == 3 && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			m.Score = protowire.DecodeZigZag(v)
			return n, nil
		}
		return protowire.ConsumeFieldValue(num, typ, b), nil
	})
}

// SnapshotAnnouncement is published to Kafka after each completed
// snapshot so downstream consumers know how far the durable state
// reaches.
type SnapshotAnnouncement struct {
	Seq         uint64
	CreatedUnix int64
	Members     uint64
}

func (a *SnapshotAnnouncement) MarshalWire() []byte {
	var b []byte
	b = appendUint(b, 1, a.Seq)
	b = appendSint(b, 2, a.CreatedUnix)
	b = appendUint(b, 3, a.Members)
	return b
}

func (a *SnapshotAnnouncement) UnmarshalWire(b []byte) error {
	*a = SnapshotAnnouncement{}
	return walkFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch {
		case num == 1 && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			a.Seq = v
			return n, nil
		case num == 2 && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			a.CreatedUnix = protowire.DecodeZigZag(v)
			return n, nil
		case num == 3 && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			a.Members = v
			return n, nil
		}
		return protowire.ConsumeFieldValue(num, typ, b), nil
	})
}

// BoardEntry is one ranked member as exposed over the API.
type BoardEntry struct {
	Member string
	Score  int64
	Rank   int64
}

func (e *BoardEntry) MarshalWire() []byte {
	var b []byte
	b = appendString(b, 1, e.Member)
	b = appendSint(b, 2, e.Score)
	b = appendSint(b, 3, e.Rank)
	return b
}

func (e *BoardEntry) UnmarshalWire(b []byte) error {
	*e = BoardEntry{}
	return walkFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch {
		case num == 1 && typ == protowire.BytesType:
			s, n := protowire.ConsumeString(b)
			e.Member = s
			return n, nil
		case num == 2 && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			e.Score = protowire.DecodeZigZag(v)
			return n, nil
		case num == 3 && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			e.Rank = protowire.DecodeZigZag(v)
			return n, nil
		}
		return protowire.ConsumeFieldValue(num, typ, b), nil
	})
}

type PutRequest struct {
	Member string
	Score  int64
}

func (r *PutRequest) MarshalWire() []byte {
	var b []byte
	b = appendString(b, 1, r.Member)
	b = appendSint(b, 2, r.Score)
	return b
}

func (r *PutRequest) UnmarshalWire(b []byte) error {
	*r = PutRequest{}
	return walkFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch {
		case num == 1 && typ == protowire.BytesType:
			s, n := protowire.ConsumeString(b)
			r.Member = s
			return n, nil
		case num == 2 && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			r.Score = protowire.DecodeZigZag(v)
			return n, nil
		}
		return protowire.ConsumeFieldValue(num, typ, b), nil
	})
}

type PutResponse struct {
	Seq uint64
}

func (r *PutResponse) MarshalWire() []byte {
	return appendUint(nil, 1, r.Seq)
}

func (r *PutResponse) UnmarshalWire(b []byte) error {
	*r = PutResponse{}
	return walkFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		if num == 1 && typ == protowire.VarintType {
			v, n := protowire.ConsumeVarint(b)
			r.Seq = v
			return n, nil
		}
		return protowire.ConsumeFieldValue(num, typ, b), nil
	})
}

type RemoveRequest struct {
	Member string
}

func (r *RemoveRequest) MarshalWire() []byte {
	return appendString(nil, 1, r.Member)
}

func (r *RemoveRequest) UnmarshalWire(b []byte) error {
	*r = RemoveRequest{}
	return walkFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		if num == 1 && typ == protowire.BytesType {
			s, n := protowire.ConsumeString(b)
			r.Member = s
			return n, nil
		}
		return protowire.ConsumeFieldValue(num, typ, b), nil
	})
}

type RemoveResponse struct {
	Removed bool
	Seq     uint64
}

func (r *RemoveResponse) MarshalWire() []byte {
	var b []byte
	b = appendBool(b, 1, r.Removed)
	b = appendUint(b, 2, r.Seq)
	return b
}

func (r *RemoveResponse) UnmarshalWire(b []byte) error {
	*r = RemoveResponse{}
	return walkFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch {
		case num == 1 && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			r.Removed = v != 0
			return n, nil
		case num == 2 && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			r.Seq = v
			return n, nil
		}
		return protowire.ConsumeFieldValue(num, typ, b), nil
	})
}

type RankRequest struct {
	Member string
}

func (r *RankRequest) MarshalWire() []byte {
	return appendString(nil, 1, r.Member)
}

func (r *RankRequest) UnmarshalWire(b []byte) error {
	*r = RankRequest{}
	return walkFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		if num == 1 && typ == protowire.BytesType {
			s, n := protowire.ConsumeString(b)
			r.Member = s
			return n, nil
		}
		return protowire.ConsumeFieldValue(num, typ, b), nil
	})
}

type RankResponse struct {
	Found bool
	Rank  int64
	Score int64
}

func (r *RankResponse) MarshalWire() []byte {
	var b []byte
	b = appendBool(b, 1, r.Found)
	b = appendSint(b, 2, r.Rank)
	b = appendSint(b, 3, r.Score)
	return b
}

func (r *RankResponse) UnmarshalWire(b []byte) error {
	*r = RankResponse{}
	return walkFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch {
		case num == 1 && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			r.Found = v != 0
			return n, nil
		case num == 2 && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			r.Rank = protowire.DecodeZigZag(v)
			return n, nil
		case num == 3 && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			r.Score = protowire.DecodeZigZag(v)
			return n, nil
		}
		return protowire.ConsumeFieldValue(num, typ, b), nil
	})
}

type TopRequest struct {
	Limit uint64
}

func (r *TopRequest) MarshalWire() []byte {
	return appendUint(nil, 1, r.Limit)
}

func (r *TopRequest) UnmarshalWire(b []byte) error {
	*r = TopRequest{}
	return walkFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		if num == 1 && typ == protowire.VarintType {
			v, n := protowire.ConsumeVarint(b)
			r.Limit = v
			return n, nil
		}
		return protowire.ConsumeFieldValue(num, typ, b), nil
	})
}

type TopResponse struct {
	Entries []BoardEntry
}

func (r *TopResponse) MarshalWire() []byte {
	var b []byte
	for i := range r.Entries {
		b = appendBytes(b, 1, r.Entries[i].MarshalWire())
	}
	return b
}

func (r *TopResponse) UnmarshalWire(b []byte) error {
	*r = TopResponse{}
	return walkFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		if num == 1 && typ == protowire.BytesType {
			body, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return n, nil
			}
			var e BoardEntry
			if err := e.UnmarshalWire(body); err != nil {
				return n, err
			}
			r.Entries = append(r.Entries, e)
			return n, nil
		}
		return protowire.ConsumeFieldValue(num, typ, b), nil
	})
}

type NeighborsRequest struct {
	Member string
}

func (r *NeighborsRequest) MarshalWire() []byte {
	return appendString(nil, 1, r.Member)
}

func (r *NeighborsRequest) UnmarshalWire(b []byte) error {
	*r = NeighborsRequest{}
	return walkFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		if num == 1 && typ == protowire.BytesType {
			s, n := protowire.ConsumeString(b)
			r.Member = s
			return n, nil
		}
		return protowire.ConsumeFieldValue(num, typ, b), nil
	})
}

type NeighborsResponse struct {
	Above *BoardEntry
	Below *BoardEntry
}

func (r *NeighborsResponse) MarshalWire() []byte {
	var b []byte
	if r.Above != nil {
		b = appendBytes(b, 1, r.Above.MarshalWire())
	}
	if r.Below != nil {
		b = appendBytes(b, 2, r.Below.MarshalWire())
	}
	return b
}

func (r *NeighborsResponse) UnmarshalWire(b []byte) error {
	*r = NeighborsResponse{}
	return walkFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch {
		case num == 1 && typ == protowire.BytesType:
			body, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return n, nil
			}
			r.Above = new(BoardEntry)
			return n, r.Above.UnmarshalWire(body)
		case num == 2 && typ == protowire.BytesType:
			body, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return n, nil
			}
			r.Below = new(BoardEntry)
			return n, r.Below.UnmarshalWire(body)
		}
		return protowire.ConsumeFieldValue(num, typ, b), nil
	})
}

type SnapshotRequest struct{}

func (r *SnapshotRequest) MarshalWire() []byte { return nil }

func (r *SnapshotRequest) UnmarshalWire(b []byte) error {
	return walkFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		return protowire.ConsumeFieldValue(num, typ, b), nil
	})
}

type SnapshotResponse struct {
	Seq     uint64
	Entries []BoardEntry
}

func (r *SnapshotResponse) MarshalWire() []byte {
	b := appendUint(nil, 1, r.Seq)
	for i := range r.Entries {
		b = appendBytes(b, 2, r.Entries[i].MarshalWire())
	}
	return b
}

func (r *SnapshotResponse) UnmarshalWire(b []byte) error {
	*r = SnapshotResponse{}
	return walkFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch {
		case num == 1 && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			r.Seq = v
			return n, nil
		case num == 2 && typ == protowire.BytesType:
			body, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return n, nil
			}
			var e BoardEntry
			if err := e.UnmarshalWire(body); err != nil {
				return n, err
			}
			r.Entries = append(r.Entries, e)
			return n, nil
		}
		return protowire.ConsumeFieldValue(num, typ, b), nil
	})
}
