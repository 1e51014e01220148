// Package grpcserver exposes the board service over gRPC. The service
// descriptor and handlers are maintained by hand against
// api/proto/scoreboard.proto and speak the wire codec, so no generated
// stubs are involved; clients must force the codec by name.
package grpcserver

import (
	"context"
	"log"

	"google.golang.org/grpc"

	"arbor/api/wire"
	"arbor/service"
)

const serviceName = "arbor.BoardService"

type Server struct {
	svc *service.BoardService
}

func NewServer(svc *service.BoardService) *Server {
	return &Server{svc: svc}
}

// Register attaches the board service to a gRPC server. The server
// must be constructed with grpc.ForceServerCodec(wire.Codec{}).
func Register(s *grpc.Server, srv *Server) {
	s.RegisterService(&serviceDesc, srv)
}

func (s *Server) Put(ctx context.Context, req *wire.PutRequest) (*wire.PutResponse, error) {
	seq, err := s.svc.Put(req.Member, req.Score)
	if err != nil {
		return nil, err
	}
	log.Printf("[gRPC] put member=%s score=%d seq=%d", req.Member, req.Score, seq)
	return &wire.PutResponse{Seq: seq}, nil
}

func (s *Server) Remove(ctx context.Context, req *wire.RemoveRequest) (*wire.RemoveResponse, error) {
	removed, seq, err := s.svc.Remove(req.Member)
	if err != nil {
		return nil, err
	}
	return &wire.RemoveResponse{Removed: removed, Seq: seq}, nil
}

func (s *Server) Rank(ctx context.Context, req *wire.RankRequest) (*wire.RankResponse, error) {
	rank, score, ok := s.svc.Rank(req.Member)
	return &wire.RankResponse{
		Found: ok,
		Rank:  int64(rank),
		Score: score,
	}, nil
}

func (s *Server) Top(ctx context.Context, req *wire.TopRequest) (*wire.TopResponse, error) {
	// Limit comes off the wire unchecked; clamp it before it becomes an int.
	limit := req.Limit
	if total := uint64(s.svc.Len()); limit > total {
		limit = total
	}
	resp := &wire.TopResponse{}
	for i, e := range s.svc.Top(int(limit)) {
		resp.Entries = append(resp.Entries, wire.BoardEntry{
			Member: e.Member,
			Score:  e.Score,
			Rank:   int64(i),
		})
	}
	return resp, nil
}

func (s *Server) Neighbors(ctx context.Context, req *wire.NeighborsRequest) (*wire.NeighborsResponse, error) {
	above, below := s.svc.Neighbors(req.Member)
	resp := &wire.NeighborsResponse{}
	if above != nil {
		resp.Above = &wire.BoardEntry{Member: above.Member, Score: above.Score}
	}
	if below != nil {
		resp.Below = &wire.BoardEntry{Member: below.Member, Score: below.Score}
	}
	return resp, nil
}

func (s *Server) Snapshot(ctx context.Context, req *wire.SnapshotRequest) (*wire.SnapshotResponse, error) {
	resp := &wire.SnapshotResponse{Seq: s.svc.Seq()}
	for i, e := range s.svc.Snapshot() {
		resp.Entries = append(resp.Entries, wire.BoardEntry{
			Member: e.Member,
			Score:  e.Score,
			Rank:   int64(i),
		})
	}
	return resp, nil
}

// --- hand-rolled service descriptor ---

func unary[Req, Resp any](
	method string,
	call func(*Server, context.Context, *Req) (*Resp, error),
) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: method,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(*Server), ctx, in)
			}
			info := &grpc.UnaryServerInfo{
				Server:     srv,
				FullMethod: "/" + serviceName + "/" + method,
			}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(*Server), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

var serviceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*any)(nil),
	Methods: []grpc.MethodDesc{
		unary("Put", (*Server).Put),
		unary("Remove", (*Server).Remove),
		unary("Rank", (*Server).Rank),
		unary("Top", (*Server).Top),
		unary("Neighbors", (*Server).Neighbors),
		unary("Snapshot", (*Server).Snapshot),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "api/proto/scoreboard.proto",
}
