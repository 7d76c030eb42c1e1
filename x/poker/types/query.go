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

// QueryServer is the server API for the poker module's Query service.
type QueryServer interface {
	Table(context.Context, *QueryTableRequest) (*QueryTableResponse, error)
	Tables(context.Context, *QueryTablesRequest) (*QueryTablesResponse, error)
}

type QueryTableRequest struct {
	TableId uint64
}

func (q QueryTableRequest) Marshal() ([]byte, error) {
	e := wire.NewEncoder()
	e.Uint64(q.TableId)
	return e.Bytes(), nil
}
func (q *QueryTableRequest) Unmarshal(bz []byte) error {
	d := wire.NewDecoder(bz)
	var err error
	q.TableId, err = d.Uint64()
	return err
}
func (q QueryTableRequest) Size() int      { bz, _ := q.Marshal(); return len(bz) }
func (q *QueryTableRequest) Reset()        { *q = QueryTableRequest{} }
func (q QueryTableRequest) String() string { return "QueryTableRequest" }
func (*QueryTableRequest) ProtoMessage()   {}

type QueryTableResponse struct {
	Table Table
}

func (q QueryTableResponse) Marshal() ([]byte, error) {
	e := wire.NewEncoder()
	if err := e.Message(q.Table); err != nil {
		return nil, err
	}
	return e.Bytes(), nil
}
func (q *QueryTableResponse) Unmarshal(bz []byte) error {
	d := wire.NewDecoder(bz)
	return d.Message(q.Table.Unmarshal)
}
func (q QueryTableResponse) Size() int      { bz, _ := q.Marshal(); return len(bz) }
func (q *QueryTableResponse) Reset()        { *q = QueryTableResponse{} }
func (q QueryTableResponse) String() string { return "QueryTableResponse" }
func (*QueryTableResponse) ProtoMessage()   {}

type QueryTablesRequest struct{}

func (q QueryTablesRequest) Marshal() ([]byte, error)   { return nil, nil }
func (q *QueryTablesRequest) Unmarshal(bz []byte) error { return nil }
func (q QueryTablesRequest) Size() int                  { return 0 }
func (q *QueryTablesRequest) Reset()                    { *q = QueryTablesRequest{} }
func (q QueryTablesRequest) String() string             { return "QueryTablesRequest" }
func (*QueryTablesRequest) ProtoMessage()                {}

type QueryTablesResponse struct {
	TableIds []uint64
}

func (q QueryTablesResponse) Marshal() ([]byte, error) {
	e := wire.NewEncoder()
	marshalU64s(e, q.TableIds)
	return e.Bytes(), nil
}
func (q *QueryTablesResponse) Unmarshal(bz []byte) error {
	d := wire.NewDecoder(bz)
	var err error
	q.TableIds, err = unmarshalU64s(d)
	return err
}
func (q QueryTablesResponse) Size() int      { bz, _ := q.Marshal(); return len(bz) }
func (q *QueryTablesResponse) Reset()        { *q = QueryTablesResponse{} }
func (q QueryTablesResponse) String() string { return "QueryTablesResponse" }
func (*QueryTablesResponse) ProtoMessage()   {}

func _Query_Table_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(QueryTableRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(QueryServer).Table(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/ocp.poker.v1.Query/Table"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(QueryServer).Table(ctx, req.(*QueryTableRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _Query_Tables_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(QueryTablesRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(QueryServer).Tables(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/ocp.poker.v1.Query/Tables"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(QueryServer).Tables(ctx, req.(*QueryTablesRequest))
	}
	return interceptor(ctx, in, info, handler)
}

var _Query_serviceDesc = grpc.ServiceDesc{
	ServiceName: "ocp.poker.v1.Query",
	HandlerType: (*QueryServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Table", Handler: _Query_Table_Handler},
		{MethodName: "Tables", Handler: _Query_Tables_Handler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "poker/query.proto",
}
