package types

import (
	"context"

	gogogrpc "github.com/cosmos/gogoproto/grpc"
	"google.golang.org/grpc"

	"onchainpoker-chain/internal/wire"
)

// RegisterMsgServer wires a MsgServer implementation into the module
// configurator's gRPC registrar.
func RegisterMsgServer(s gogogrpc.Server, srv MsgServer) {
	s.RegisterService(&_Msg_serviceDesc, srv)
}

// MsgServer is the server API for the poker module's Msg service.
type MsgServer interface {
	CreateTable(context.Context, *MsgCreateTable) (*MsgCreateTableResponse, error)
	Sit(context.Context, *MsgSit) (*MsgSitResponse, error)
	StartHand(context.Context, *MsgStartHand) (*MsgStartHandResponse, error)
	Act(context.Context, *MsgAct) (*MsgActResponse, error)
	Tick(context.Context, *MsgTick) (*MsgTickResponse, error)
	Leave(context.Context, *MsgLeave) (*MsgLeaveResponse, error)
}

// --- MsgCreateTable ---

type MsgCreateTable struct {
	Creator           string
	Label             string
	MaxPlayers        uint32
	SmallBlind        uint64
	BigBlind          uint64
	MinBuyIn          uint64
	MaxBuyIn          uint64
	ActionTimeoutSecs uint64
	DealerTimeoutSecs uint64
	PlayerBond        uint64
	RakeBps           uint32
	Password          string
}

func (m MsgCreateTable) Marshal() ([]byte, error) {
	e := wire.NewEncoder()
	e.String(m.Creator)
	e.String(m.Label)
	e.Uint32(m.MaxPlayers)
	e.Uint64(m.SmallBlind)
	e.Uint64(m.BigBlind)
	e.Uint64(m.MinBuyIn)
	e.Uint64(m.MaxBuyIn)
	e.Uint64(m.ActionTimeoutSecs)
	e.Uint64(m.DealerTimeoutSecs)
	e.Uint64(m.PlayerBond)
	e.Uint32(m.RakeBps)
	e.String(m.Password)
	return e.Bytes(), nil
}

func (m *MsgCreateTable) Unmarshal(bz []byte) error {
	d := wire.NewDecoder(bz)
	var err error
	if m.Creator, err = d.String(); err != nil {
		return err
	}
	if m.Label, err = d.String(); err != nil {
		return err
	}
	if m.MaxPlayers, err = d.Uint32(); err != nil {
		return err
	}
	if m.SmallBlind, err = d.Uint64(); err != nil {
		return err
	}
	if m.BigBlind, err = d.Uint64(); err != nil {
		return err
	}
	if m.MinBuyIn, err = d.Uint64(); err != nil {
		return err
	}
	if m.MaxBuyIn, err = d.Uint64(); err != nil {
		return err
	}
	if m.ActionTimeoutSecs, err = d.Uint64(); err != nil {
		return err
	}
	if m.DealerTimeoutSecs, err = d.Uint64(); err != nil {
		return err
	}
	if m.PlayerBond, err = d.Uint64(); err != nil {
		return err
	}
	if m.RakeBps, err = d.Uint32(); err != nil {
		return err
	}
	if m.Password, err = d.String(); err != nil {
		return err
	}
	return nil
}

func (m MsgCreateTable) Size() int          { bz, _ := m.Marshal(); return len(bz) }
func (m *MsgCreateTable) Reset()            { *m = MsgCreateTable{} }
func (m MsgCreateTable) String() string     { return "MsgCreateTable" }
func (*MsgCreateTable) ProtoMessage()       {}
func (m *MsgCreateTable) GetSigners() []string { return []string{m.Creator} }

type MsgCreateTableResponse struct {
	TableId uint64
}

func (m MsgCreateTableResponse) Marshal() ([]byte, error) {
	e := wire.NewEncoder()
	e.Uint64(m.TableId)
	return e.Bytes(), nil
}
func (m *MsgCreateTableResponse) Unmarshal(bz []byte) error {
	d := wire.NewDecoder(bz)
	var err error
	m.TableId, err = d.Uint64()
	return err
}
func (m MsgCreateTableResponse) Size() int      { bz, _ := m.Marshal(); return len(bz) }
func (m *MsgCreateTableResponse) Reset()        { *m = MsgCreateTableResponse{} }
func (m MsgCreateTableResponse) String() string { return "MsgCreateTableResponse" }
func (*MsgCreateTableResponse) ProtoMessage()   {}

// --- MsgSit ---

// MsgSit carries no seat index: the engine assigns one clockwise from the
// big blind so a joining player queues up to post it next.
type MsgSit struct {
	TableId  uint64
	Player   string
	BuyIn    uint64
	PkPlayer []byte
	Password string
}

func (m MsgSit) Marshal() ([]byte, error) {
	e := wire.NewEncoder()
	e.Uint64(m.TableId)
	e.String(m.Player)
	e.Uint64(m.BuyIn)
	e.Blob(m.PkPlayer)
	e.String(m.Password)
	return e.Bytes(), nil
}

func (m *MsgSit) Unmarshal(bz []byte) error {
	d := wire.NewDecoder(bz)
	var err error
	if m.TableId, err = d.Uint64(); err != nil {
		return err
	}
	if m.Player, err = d.String(); err != nil {
		return err
	}
	if m.BuyIn, err = d.Uint64(); err != nil {
		return err
	}
	if m.PkPlayer, err = d.Blob(); err != nil {
		return err
	}
	if m.Password, err = d.String(); err != nil {
		return err
	}
	return nil
}

func (m MsgSit) Size() int             { bz, _ := m.Marshal(); return len(bz) }
func (m *MsgSit) Reset()               { *m = MsgSit{} }
func (m MsgSit) String() string        { return "MsgSit" }
func (*MsgSit) ProtoMessage()          {}
func (m *MsgSit) GetSigners() []string { return []string{m.Player} }

type MsgSitResponse struct {
	Seat uint32
}

func (m MsgSitResponse) Marshal() ([]byte, error) {
	e := wire.NewEncoder()
	e.Uint32(m.Seat)
	return e.Bytes(), nil
}
func (m *MsgSitResponse) Unmarshal(bz []byte) error {
	d := wire.NewDecoder(bz)
	var err error
	m.Seat, err = d.Uint32()
	return err
}
func (m MsgSitResponse) Size() int      { bz, _ := m.Marshal(); return len(bz) }
func (m *MsgSitResponse) Reset()        { *m = MsgSitResponse{} }
func (m MsgSitResponse) String() string { return "MsgSitResponse" }
func (*MsgSitResponse) ProtoMessage()   {}

// --- MsgStartHand ---

type MsgStartHand struct {
	TableId uint64
	Caller  string
}

func (m MsgStartHand) Marshal() ([]byte, error) {
	e := wire.NewEncoder()
	e.Uint64(m.TableId)
	e.String(m.Caller)
	return e.Bytes(), nil
}

func (m *MsgStartHand) Unmarshal(bz []byte) error {
	d := wire.NewDecoder(bz)
	var err error
	if m.TableId, err = d.Uint64(); err != nil {
		return err
	}
	m.Caller, err = d.String()
	return err
}

func (m MsgStartHand) Size() int             { bz, _ := m.Marshal(); return len(bz) }
func (m *MsgStartHand) Reset()               { *m = MsgStartHand{} }
func (m MsgStartHand) String() string        { return "MsgStartHand" }
func (*MsgStartHand) ProtoMessage()          {}
func (m *MsgStartHand) GetSigners() []string { return []string{m.Caller} }

type MsgStartHandResponse struct{}

func (m MsgStartHandResponse) Marshal() ([]byte, error)   { return nil, nil }
func (m *MsgStartHandResponse) Unmarshal(bz []byte) error { return nil }
func (m MsgStartHandResponse) Size() int                  { return 0 }
func (m *MsgStartHandResponse) Reset()                    { *m = MsgStartHandResponse{} }
func (m MsgStartHandResponse) String() string             { return "MsgStartHandResponse" }
func (*MsgStartHandResponse) ProtoMessage()               {}

// --- MsgAct ---

type MsgAct struct {
	TableId uint64
	Player  string
	Action  string
	Amount  uint64
}

func (m MsgAct) Marshal() ([]byte, error) {
	e := wire.NewEncoder()
	e.Uint64(m.TableId)
	e.String(m.Player)
	e.String(m.Action)
	e.Uint64(m.Amount)
	return e.Bytes(), nil
}

func (m *MsgAct) Unmarshal(bz []byte) error {
	d := wire.NewDecoder(bz)
	var err error
	if m.TableId, err = d.Uint64(); err != nil {
		return err
	}
	if m.Player, err = d.String(); err != nil {
		return err
	}
	if m.Action, err = d.String(); err != nil {
		return err
	}
	m.Amount, err = d.Uint64()
	return err
}

func (m MsgAct) Size() int             { bz, _ := m.Marshal(); return len(bz) }
func (m *MsgAct) Reset()               { *m = MsgAct{} }
func (m MsgAct) String() string        { return "MsgAct" }
func (*MsgAct) ProtoMessage()          {}
func (m *MsgAct) GetSigners() []string { return []string{m.Player} }

type MsgActResponse struct{}

func (m MsgActResponse) Marshal() ([]byte, error)   { return nil, nil }
func (m *MsgActResponse) Unmarshal(bz []byte) error { return nil }
func (m MsgActResponse) Size() int                  { return 0 }
func (m *MsgActResponse) Reset()                    { *m = MsgActResponse{} }
func (m MsgActResponse) String() string             { return "MsgActResponse" }
func (*MsgActResponse) ProtoMessage()                {}

// --- MsgTick ---

// MsgTick is a permissionless keeper-bot transaction that applies a pending
// action timeout. Anyone may submit it once the deadline has passed.
type MsgTick struct {
	TableId uint64
	Caller  string
}

func (m MsgTick) Marshal() ([]byte, error) {
	e := wire.NewEncoder()
	e.Uint64(m.TableId)
	e.String(m.Caller)
	return e.Bytes(), nil
}

func (m *MsgTick) Unmarshal(bz []byte) error {
	d := wire.NewDecoder(bz)
	var err error
	if m.TableId, err = d.Uint64(); err != nil {
		return err
	}
	m.Caller, err = d.String()
	return err
}

func (m MsgTick) Size() int             { bz, _ := m.Marshal(); return len(bz) }
func (m *MsgTick) Reset()               { *m = MsgTick{} }
func (m MsgTick) String() string        { return "MsgTick" }
func (*MsgTick) ProtoMessage()          {}
func (m *MsgTick) GetSigners() []string { return []string{m.Caller} }

type MsgTickResponse struct{}

func (m MsgTickResponse) Marshal() ([]byte, error)   { return nil, nil }
func (m *MsgTickResponse) Unmarshal(bz []byte) error { return nil }
func (m MsgTickResponse) Size() int                  { return 0 }
func (m *MsgTickResponse) Reset()                    { *m = MsgTickResponse{} }
func (m MsgTickResponse) String() string             { return "MsgTickResponse" }
func (*MsgTickResponse) ProtoMessage()                {}

// --- MsgLeave ---

type MsgLeave struct {
	TableId uint64
	Player  string
}

func (m MsgLeave) Marshal() ([]byte, error) {
	e := wire.NewEncoder()
	e.Uint64(m.TableId)
	e.String(m.Player)
	return e.Bytes(), nil
}

func (m *MsgLeave) Unmarshal(bz []byte) error {
	d := wire.NewDecoder(bz)
	var err error
	if m.TableId, err = d.Uint64(); err != nil {
		return err
	}
	m.Player, err = d.String()
	return err
}

func (m MsgLeave) Size() int             { bz, _ := m.Marshal(); return len(bz) }
func (m *MsgLeave) Reset()               { *m = MsgLeave{} }
func (m MsgLeave) String() string        { return "MsgLeave" }
func (*MsgLeave) ProtoMessage()          {}
func (m *MsgLeave) GetSigners() []string { return []string{m.Player} }

type MsgLeaveResponse struct{}

func (m MsgLeaveResponse) Marshal() ([]byte, error)   { return nil, nil }
func (m *MsgLeaveResponse) Unmarshal(bz []byte) error { return nil }
func (m MsgLeaveResponse) Size() int                  { return 0 }
func (m *MsgLeaveResponse) Reset()                    { *m = MsgLeaveResponse{} }
func (m MsgLeaveResponse) String() string             { return "MsgLeaveResponse" }
func (*MsgLeaveResponse) ProtoMessage()                {}

// --- grpc plumbing ---

func _Msg_CreateTable_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(MsgCreateTable)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(MsgServer).CreateTable(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/ocp.poker.v1.Msg/CreateTable"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(MsgServer).CreateTable(ctx, req.(*MsgCreateTable))
	}
	return interceptor(ctx, in, info, handler)
}

func _Msg_Sit_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(MsgSit)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(MsgServer).Sit(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/ocp.poker.v1.Msg/Sit"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(MsgServer).Sit(ctx, req.(*MsgSit))
	}
	return interceptor(ctx, in, info, handler)
}

func _Msg_StartHand_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(MsgStartHand)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(MsgServer).StartHand(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/ocp.poker.v1.Msg/StartHand"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(MsgServer).StartHand(ctx, req.(*MsgStartHand))
	}
	return interceptor(ctx, in, info, handler)
}

func _Msg_Act_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(MsgAct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(MsgServer).Act(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/ocp.poker.v1.Msg/Act"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(MsgServer).Act(ctx, req.(*MsgAct))
	}
	return interceptor(ctx, in, info, handler)
}

func _Msg_Tick_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(MsgTick)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(MsgServer).Tick(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/ocp.poker.v1.Msg/Tick"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(MsgServer).Tick(ctx, req.(*MsgTick))
	}
	return interceptor(ctx, in, info, handler)
}

func _Msg_Leave_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(MsgLeave)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(MsgServer).Leave(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/ocp.poker.v1.Msg/Leave"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(MsgServer).Leave(ctx, req.(*MsgLeave))
	}
	return interceptor(ctx, in, info, handler)
}

var _Msg_serviceDesc = grpc.ServiceDesc{
	ServiceName: "ocp.poker.v1.Msg",
	HandlerType: (*MsgServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "CreateTable", Handler: _Msg_CreateTable_Handler},
		{MethodName: "Sit", Handler: _Msg_Sit_Handler},
		{MethodName: "StartHand", Handler: _Msg_StartHand_Handler},
		{MethodName: "Act", Handler: _Msg_Act_Handler},
		{MethodName: "Tick", Handler: _Msg_Tick_Handler},
		{MethodName: "Leave", Handler: _Msg_Leave_Handler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "poker/tx.proto",
}
