package types

import (
	"context"

	gogogrpc "github.com/cosmos/gogoproto/grpc"
	"google.golang.org/grpc"

	"onchainpoker-chain/internal/wire"
)

// RegisterQueryServer wires a QueryServer implementation into the module
// configurator's gRPC registrar.
func RegisterQueryServer(s gogogrpc.Server, srv QueryServer) {
	s.RegisterService(&_Query_serviceDesc, srv)
}

// QueryServer is the server API for the dealer module's Query service.
type QueryServer interface {
	Epoch(context.Context, *QueryEpochRequest) (*QueryEpochResponse, error)
	Dkg(context.Context, *QueryDkgRequest) (*QueryDkgResponse, error)
	Hand(context.Context, *QueryHandRequest) (*QueryHandResponse, error)
}

type QueryEpochRequest struct{}

func (q QueryEpochRequest) Marshal() ([]byte, error)  { return nil, nil }
func (q *QueryEpochRequest) Unmarshal([]byte) error   { return nil }
func (q QueryEpochRequest) Size() int                 { return 0 }
func (q *QueryEpochRequest) Reset()                   { *q = QueryEpochRequest{} }
func (q QueryEpochRequest) String() string            { return "QueryEpochRequest" }
func (*QueryEpochRequest) ProtoMessage()              {}

type QueryEpochResponse struct {
	Epoch *DealerEpoch
}

func (q QueryEpochResponse) Marshal() ([]byte, error) {
	e := wire.NewEncoder()
	e.Bool(q.Epoch != nil)
	if q.Epoch != nil {
		if err := e.Message(*q.Epoch); err != nil {
			return nil, err
		}
	}
	return e.Bytes(), nil
}

func (q *QueryEpochResponse) Unmarshal(bz []byte) error {
	d := wire.NewDecoder(bz)
	has, err := d.Bool()
	if err != nil {
		return err
	}
	if !has {
		q.Epoch = nil
		return nil
	}
	q.Epoch = &DealerEpoch{}
	return d.Message(q.Epoch.Unmarshal)
}

func (q QueryEpochResponse) Size() int      { bz, _ := q.Marshal(); return len(bz) }
func (q *QueryEpochResponse) Reset()        { *q = QueryEpochResponse{} }
func (q QueryEpochResponse) String() string { return "QueryEpochResponse" }
func (*QueryEpochResponse) ProtoMessage()   {}

type QueryDkgRequest struct{}

func (q QueryDkgRequest) Marshal() ([]byte, error) { return nil, nil }
func (q *QueryDkgRequest) Unmarshal([]byte) error  { return nil }
func (q QueryDkgRequest) Size() int                { return 0 }
func (q *QueryDkgRequest) Reset()                  { *q = QueryDkgRequest{} }
func (q QueryDkgRequest) String() string           { return "QueryDkgRequest" }
func (*QueryDkgRequest) ProtoMessage()              {}

type QueryDkgResponse struct {
	Dkg *DealerDKG
}

func (q QueryDkgResponse) Marshal() ([]byte, error) {
	e := wire.NewEncoder()
	e.Bool(q.Dkg != nil)
	if q.Dkg != nil {
		if err := e.Message(*q.Dkg); err != nil {
			return nil, err
		}
	}
	return e.Bytes(), nil
}

func (q *QueryDkgResponse) Unmarshal(bz []byte) error {
	d := wire.NewDecoder(bz)
	has, err := d.Bool()
	if err != nil {
		return err
	}
	if !has {
		q.Dkg = nil
		return nil
	}
	q.Dkg = &DealerDKG{}
	return d.Message(q.Dkg.Unmarshal)
}

func (q QueryDkgResponse) Size() int      { bz, _ := q.Marshal(); return len(bz) }
func (q *QueryDkgResponse) Reset()        { *q = QueryDkgResponse{} }
func (q QueryDkgResponse) String() string { return "QueryDkgResponse" }
func (*QueryDkgResponse) ProtoMessage()   {}

type QueryHandRequest struct {
	TableId uint64
	HandId  uint64
}

func (q QueryHandRequest) Marshal() ([]byte, error) {
	e := wire.NewEncoder()
	e.Uint64(q.TableId)
	e.Uint64(q.HandId)
	return e.Bytes(), nil
}

func (q *QueryHandRequest) Unmarshal(bz []byte) error {
	d := wire.NewDecoder(bz)
	var err error
	if q.TableId, err = d.Uint64(); err != nil {
		return err
	}
	q.HandId, err = d.Uint64()
	return err
}

func (q QueryHandRequest) Size() int      { bz, _ := q.Marshal(); return len(bz) }
func (q *QueryHandRequest) Reset()        { *q = QueryHandRequest{} }
func (q QueryHandRequest) String() string { return "QueryHandRequest" }
func (*QueryHandRequest) ProtoMessage()   {}

type QueryHandResponse struct {
	Hand *DealerHand
}

func (q QueryHandResponse) Marshal() ([]byte, error) {
	e := wire.NewEncoder()
	e.Bool(q.Hand != nil)
	if q.Hand != nil {
		if err := e.Message(*q.Hand); err != nil {
			return nil, err
		}
	}
	return e.Bytes(), nil
}

func (q *QueryHandResponse) Unmarshal(bz []byte) error {
	d := wire.NewDecoder(bz)
	has, err := d.Bool()
	if err != nil {
		return err
	}
	if !has {
		q.Hand = nil
		return nil
	}
	q.Hand = &DealerHand{}
	return d.Message(q.Hand.Unmarshal)
}

func (q QueryHandResponse) Size() int      { bz, _ := q.Marshal(); return len(bz) }
func (q *QueryHandResponse) Reset()        { *q = QueryHandResponse{} }
func (q QueryHandResponse) String() string { return "QueryHandResponse" }
func (*QueryHandResponse) ProtoMessage()   {}

func _Query_Epoch_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(QueryEpochRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(QueryServer).Epoch(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/ocp.dealer.v1.Query/Epoch"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(QueryServer).Epoch(ctx, req.(*QueryEpochRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _Query_Dkg_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(QueryDkgRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(QueryServer).Dkg(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/ocp.dealer.v1.Query/Dkg"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(QueryServer).Dkg(ctx, req.(*QueryDkgRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _Query_Hand_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(QueryHandRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(QueryServer).Hand(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/ocp.dealer.v1.Query/Hand"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(QueryServer).Hand(ctx, req.(*QueryHandRequest))
	}
	return interceptor(ctx, in, info, handler)
}

var _Query_serviceDesc = grpc.ServiceDesc{
	ServiceName: "ocp.dealer.v1.Query",
	HandlerType: (*QueryServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Epoch", Handler: _Query_Epoch_Handler},
		{MethodName: "Dkg", Handler: _Query_Dkg_Handler},
		{MethodName: "Hand", Handler: _Query_Hand_Handler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "dealer/query.proto",
}
