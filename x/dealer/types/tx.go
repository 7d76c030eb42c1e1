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

// MsgServer is the server API for the dealer module's Msg service.
type MsgServer interface {
	BeginEpoch(context.Context, *MsgBeginEpoch) (*MsgBeginEpochResponse, error)
	DkgCommit(context.Context, *MsgDkgCommit) (*MsgDkgCommitResponse, error)
	DkgComplaintMissing(context.Context, *MsgDkgComplaintMissing) (*MsgDkgComplaintMissingResponse, error)
	DkgComplaintInvalid(context.Context, *MsgDkgComplaintInvalid) (*MsgDkgComplaintInvalidResponse, error)
	DkgShareReveal(context.Context, *MsgDkgShareReveal) (*MsgDkgShareRevealResponse, error)
	FinalizeEpoch(context.Context, *MsgFinalizeEpoch) (*MsgFinalizeEpochResponse, error)
	DkgTimeout(context.Context, *MsgDkgTimeout) (*MsgDkgTimeoutResponse, error)

	InitHand(context.Context, *MsgInitHand) (*MsgInitHandResponse, error)
	SubmitShuffle(context.Context, *MsgSubmitShuffle) (*MsgSubmitShuffleResponse, error)
	FinalizeDeck(context.Context, *MsgFinalizeDeck) (*MsgFinalizeDeckResponse, error)
	SubmitEncShare(context.Context, *MsgSubmitEncShare) (*MsgSubmitEncShareResponse, error)
	SubmitPubShare(context.Context, *MsgSubmitPubShare) (*MsgSubmitPubShareResponse, error)
	FinalizeReveal(context.Context, *MsgFinalizeReveal) (*MsgFinalizeRevealResponse, error)
	Timeout(context.Context, *MsgTimeout) (*MsgTimeoutResponse, error)

	UpdateParams(context.Context, *MsgUpdateParams) (*MsgUpdateParamsResponse, error)
}

// emptyResponse is embedded by every response message that carries no
// fields; it satisfies the Marshaler fast path with a zero-length payload.
type emptyResponse struct{}

func (emptyResponse) Marshal() ([]byte, error)  { return nil, nil }
func (*emptyResponse) Unmarshal([]byte) error   { return nil }
func (emptyResponse) Size() int                 { return 0 }
func (*emptyResponse) ProtoMessage()            {}

// --- MsgBeginEpoch ---

type MsgBeginEpoch struct {
	Caller          string
	EpochId         uint64
	CommitteeSize   uint32
	Threshold       uint32
	RandEpoch       []byte
	CommitBlocks    uint64
	ComplaintBlocks uint64
	RevealBlocks    uint64
	FinalizeBlocks  uint64
}

func (m MsgBeginEpoch) Marshal() ([]byte, error) {
	e := wire.NewEncoder()
	e.String(m.Caller)
	e.Uint64(m.EpochId)
	e.Uint32(m.CommitteeSize)
	e.Uint32(m.Threshold)
	e.Blob(m.RandEpoch)
	e.Uint64(m.CommitBlocks)
	e.Uint64(m.ComplaintBlocks)
	e.Uint64(m.RevealBlocks)
	e.Uint64(m.FinalizeBlocks)
	return e.Bytes(), nil
}

func (m *MsgBeginEpoch) Unmarshal(bz []byte) error {
	d := wire.NewDecoder(bz)
	var err error
	if m.Caller, err = d.String(); err != nil {
		return err
	}
	if m.EpochId, err = d.Uint64(); err != nil {
		return err
	}
	if m.CommitteeSize, err = d.Uint32(); err != nil {
		return err
	}
	if m.Threshold, err = d.Uint32(); err != nil {
		return err
	}
	if m.RandEpoch, err = d.Blob(); err != nil {
		return err
	}
	if m.CommitBlocks, err = d.Uint64(); err != nil {
		return err
	}
	if m.ComplaintBlocks, err = d.Uint64(); err != nil {
		return err
	}
	if m.RevealBlocks, err = d.Uint64(); err != nil {
		return err
	}
	m.FinalizeBlocks, err = d.Uint64()
	return err
}

func (m MsgBeginEpoch) Size() int             { bz, _ := m.Marshal(); return len(bz) }
func (m *MsgBeginEpoch) Reset()               { *m = MsgBeginEpoch{} }
func (m MsgBeginEpoch) String() string        { return "MsgBeginEpoch" }
func (*MsgBeginEpoch) ProtoMessage()          {}
func (m *MsgBeginEpoch) GetSigners() []string { return []string{m.Caller} }

type MsgBeginEpochResponse struct{ emptyResponse }

func (MsgBeginEpochResponse) String() string { return "MsgBeginEpochResponse" }
func (*MsgBeginEpochResponse) Reset()        {}

// --- MsgDkgCommit ---

type MsgDkgCommit struct {
	Dealer      string
	EpochId     uint64
	Commitments [][]byte
}

func (m MsgDkgCommit) Marshal() ([]byte, error) {
	e := wire.NewEncoder()
	e.String(m.Dealer)
	e.Uint64(m.EpochId)
	marshalBlobs(e, m.Commitments)
	return e.Bytes(), nil
}

func (m *MsgDkgCommit) Unmarshal(bz []byte) error {
	d := wire.NewDecoder(bz)
	var err error
	if m.Dealer, err = d.String(); err != nil {
		return err
	}
	if m.EpochId, err = d.Uint64(); err != nil {
		return err
	}
	m.Commitments, err = unmarshalBlobs(d)
	return err
}

func (m MsgDkgCommit) Size() int             { bz, _ := m.Marshal(); return len(bz) }
func (m *MsgDkgCommit) Reset()               { *m = MsgDkgCommit{} }
func (m MsgDkgCommit) String() string        { return "MsgDkgCommit" }
func (*MsgDkgCommit) ProtoMessage()          {}
func (m *MsgDkgCommit) GetSigners() []string { return []string{m.Dealer} }

type MsgDkgCommitResponse struct{ emptyResponse }

func (MsgDkgCommitResponse) String() string { return "MsgDkgCommitResponse" }
func (*MsgDkgCommitResponse) Reset()        {}

// --- MsgDkgComplaintMissing ---

type MsgDkgComplaintMissing struct {
	Complainer string
	Dealer     string
	EpochId    uint64
}

func (m MsgDkgComplaintMissing) Marshal() ([]byte, error) {
	e := wire.NewEncoder()
	e.String(m.Complainer)
	e.String(m.Dealer)
	e.Uint64(m.EpochId)
	return e.Bytes(), nil
}

func (m *MsgDkgComplaintMissing) Unmarshal(bz []byte) error {
	d := wire.NewDecoder(bz)
	var err error
	if m.Complainer, err = d.String(); err != nil {
		return err
	}
	if m.Dealer, err = d.String(); err != nil {
		return err
	}
	m.EpochId, err = d.Uint64()
	return err
}

func (m MsgDkgComplaintMissing) Size() int             { bz, _ := m.Marshal(); return len(bz) }
func (m *MsgDkgComplaintMissing) Reset()               { *m = MsgDkgComplaintMissing{} }
func (m MsgDkgComplaintMissing) String() string        { return "MsgDkgComplaintMissing" }
func (*MsgDkgComplaintMissing) ProtoMessage()          {}
func (m *MsgDkgComplaintMissing) GetSigners() []string { return []string{m.Complainer} }

type MsgDkgComplaintMissingResponse struct{ emptyResponse }

func (MsgDkgComplaintMissingResponse) String() string { return "MsgDkgComplaintMissingResponse" }
func (*MsgDkgComplaintMissingResponse) Reset()        {}

// --- MsgDkgComplaintInvalid ---

type MsgDkgComplaintInvalid struct {
	Complainer string
	Dealer     string
	EpochId    uint64
	ShareMsg   []byte
}

func (m MsgDkgComplaintInvalid) Marshal() ([]byte, error) {
	e := wire.NewEncoder()
	e.String(m.Complainer)
	e.String(m.Dealer)
	e.Uint64(m.EpochId)
	e.Blob(m.ShareMsg)
	return e.Bytes(), nil
}

func (m *MsgDkgComplaintInvalid) Unmarshal(bz []byte) error {
	d := wire.NewDecoder(bz)
	var err error
	if m.Complainer, err = d.String(); err != nil {
		return err
	}
	if m.Dealer, err = d.String(); err != nil {
		return err
	}
	if m.EpochId, err = d.Uint64(); err != nil {
		return err
	}
	m.ShareMsg, err = d.Blob()
	return err
}

func (m MsgDkgComplaintInvalid) Size() int             { bz, _ := m.Marshal(); return len(bz) }
func (m *MsgDkgComplaintInvalid) Reset()               { *m = MsgDkgComplaintInvalid{} }
func (m MsgDkgComplaintInvalid) String() string        { return "MsgDkgComplaintInvalid" }
func (*MsgDkgComplaintInvalid) ProtoMessage()          {}
func (m *MsgDkgComplaintInvalid) GetSigners() []string { return []string{m.Complainer} }

type MsgDkgComplaintInvalidResponse struct{ emptyResponse }

func (MsgDkgComplaintInvalidResponse) String() string { return "MsgDkgComplaintInvalidResponse" }
func (*MsgDkgComplaintInvalidResponse) Reset()        {}

// --- MsgDkgShareReveal ---

type MsgDkgShareReveal struct {
	Dealer  string
	To      string
	EpochId uint64
	Share   []byte
}

func (m MsgDkgShareReveal) Marshal() ([]byte, error) {
	e := wire.NewEncoder()
	e.String(m.Dealer)
	e.String(m.To)
	e.Uint64(m.EpochId)
	e.Blob(m.Share)
	return e.Bytes(), nil
}

func (m *MsgDkgShareReveal) Unmarshal(bz []byte) error {
	d := wire.NewDecoder(bz)
	var err error
	if m.Dealer, err = d.String(); err != nil {
		return err
	}
	if m.To, err = d.String(); err != nil {
		return err
	}
	if m.EpochId, err = d.Uint64(); err != nil {
		return err
	}
	m.Share, err = d.Blob()
	return err
}

func (m MsgDkgShareReveal) Size() int             { bz, _ := m.Marshal(); return len(bz) }
func (m *MsgDkgShareReveal) Reset()               { *m = MsgDkgShareReveal{} }
func (m MsgDkgShareReveal) String() string        { return "MsgDkgShareReveal" }
func (*MsgDkgShareReveal) ProtoMessage()          {}
func (m *MsgDkgShareReveal) GetSigners() []string { return []string{m.Dealer} }

type MsgDkgShareRevealResponse struct{ emptyResponse }

func (MsgDkgShareRevealResponse) String() string { return "MsgDkgShareRevealResponse" }
func (*MsgDkgShareRevealResponse) Reset()        {}

// --- MsgFinalizeEpoch ---

type MsgFinalizeEpoch struct {
	Caller  string
	EpochId uint64
}

func (m MsgFinalizeEpoch) Marshal() ([]byte, error) {
	e := wire.NewEncoder()
	e.String(m.Caller)
	e.Uint64(m.EpochId)
	return e.Bytes(), nil
}

func (m *MsgFinalizeEpoch) Unmarshal(bz []byte) error {
	d := wire.NewDecoder(bz)
	var err error
	if m.Caller, err = d.String(); err != nil {
		return err
	}
	m.EpochId, err = d.Uint64()
	return err
}

func (m MsgFinalizeEpoch) Size() int             { bz, _ := m.Marshal(); return len(bz) }
func (m *MsgFinalizeEpoch) Reset()               { *m = MsgFinalizeEpoch{} }
func (m MsgFinalizeEpoch) String() string        { return "MsgFinalizeEpoch" }
func (*MsgFinalizeEpoch) ProtoMessage()          {}
func (m *MsgFinalizeEpoch) GetSigners() []string { return []string{m.Caller} }

type MsgFinalizeEpochResponse struct{ emptyResponse }

func (MsgFinalizeEpochResponse) String() string { return "MsgFinalizeEpochResponse" }
func (*MsgFinalizeEpochResponse) Reset()        {}

// --- MsgDkgTimeout ---

type MsgDkgTimeout struct {
	Caller  string
	EpochId uint64
}

func (m MsgDkgTimeout) Marshal() ([]byte, error) {
	e := wire.NewEncoder()
	e.String(m.Caller)
	e.Uint64(m.EpochId)
	return e.Bytes(), nil
}

func (m *MsgDkgTimeout) Unmarshal(bz []byte) error {
	d := wire.NewDecoder(bz)
	var err error
	if m.Caller, err = d.String(); err != nil {
		return err
	}
	m.EpochId, err = d.Uint64()
	return err
}

func (m MsgDkgTimeout) Size() int             { bz, _ := m.Marshal(); return len(bz) }
func (m *MsgDkgTimeout) Reset()               { *m = MsgDkgTimeout{} }
func (m MsgDkgTimeout) String() string        { return "MsgDkgTimeout" }
func (*MsgDkgTimeout) ProtoMessage()          {}
func (m *MsgDkgTimeout) GetSigners() []string { return []string{m.Caller} }

type MsgDkgTimeoutResponse struct{ emptyResponse }

func (MsgDkgTimeoutResponse) String() string { return "MsgDkgTimeoutResponse" }
func (*MsgDkgTimeoutResponse) Reset()        {}

// --- MsgInitHand ---

type MsgInitHand struct {
	Caller   string
	TableId  uint64
	HandId   uint64
	EpochId  uint64
	DeckSize uint32
}

func (m MsgInitHand) Marshal() ([]byte, error) {
	e := wire.NewEncoder()
	e.String(m.Caller)
	e.Uint64(m.TableId)
	e.Uint64(m.HandId)
	e.Uint64(m.EpochId)
	e.Uint32(m.DeckSize)
	return e.Bytes(), nil
}

func (m *MsgInitHand) Unmarshal(bz []byte) error {
	d := wire.NewDecoder(bz)
	var err error
	if m.Caller, err = d.String(); err != nil {
		return err
	}
	if m.TableId, err = d.Uint64(); err != nil {
		return err
	}
	if m.HandId, err = d.Uint64(); err != nil {
		return err
	}
	if m.EpochId, err = d.Uint64(); err != nil {
		return err
	}
	m.DeckSize, err = d.Uint32()
	return err
}

func (m MsgInitHand) Size() int             { bz, _ := m.Marshal(); return len(bz) }
func (m *MsgInitHand) Reset()               { *m = MsgInitHand{} }
func (m MsgInitHand) String() string        { return "MsgInitHand" }
func (*MsgInitHand) ProtoMessage()          {}
func (m *MsgInitHand) GetSigners() []string { return []string{m.Caller} }

type MsgInitHandResponse struct{ emptyResponse }

func (MsgInitHandResponse) String() string { return "MsgInitHandResponse" }
func (*MsgInitHandResponse) Reset()        {}

// --- MsgSubmitShuffle ---

type MsgSubmitShuffle struct {
	Shuffler     string
	TableId      uint64
	HandId       uint64
	Round        uint32
	ProofShuffle []byte
}

func (m MsgSubmitShuffle) Marshal() ([]byte, error) {
	e := wire.NewEncoder()
	e.String(m.Shuffler)
	e.Uint64(m.TableId)
	e.Uint64(m.HandId)
	e.Uint32(m.Round)
	e.Blob(m.ProofShuffle)
	return e.Bytes(), nil
}

func (m *MsgSubmitShuffle) Unmarshal(bz []byte) error {
	d := wire.NewDecoder(bz)
	var err error
	if m.Shuffler, err = d.String(); err != nil {
		return err
	}
	if m.TableId, err = d.Uint64(); err != nil {
		return err
	}
	if m.HandId, err = d.Uint64(); err != nil {
		return err
	}
	if m.Round, err = d.Uint32(); err != nil {
		return err
	}
	m.ProofShuffle, err = d.Blob()
	return err
}

func (m MsgSubmitShuffle) Size() int             { bz, _ := m.Marshal(); return len(bz) }
func (m *MsgSubmitShuffle) Reset()               { *m = MsgSubmitShuffle{} }
func (m MsgSubmitShuffle) String() string        { return "MsgSubmitShuffle" }
func (*MsgSubmitShuffle) ProtoMessage()          {}
func (m *MsgSubmitShuffle) GetSigners() []string { return []string{m.Shuffler} }

type MsgSubmitShuffleResponse struct{ emptyResponse }

func (MsgSubmitShuffleResponse) String() string { return "MsgSubmitShuffleResponse" }
func (*MsgSubmitShuffleResponse) Reset()        {}

// --- MsgFinalizeDeck ---

type MsgFinalizeDeck struct {
	Caller  string
	TableId uint64
	HandId  uint64
}

func (m MsgFinalizeDeck) Marshal() ([]byte, error) {
	e := wire.NewEncoder()
	e.String(m.Caller)
	e.Uint64(m.TableId)
	e.Uint64(m.HandId)
	return e.Bytes(), nil
}

func (m *MsgFinalizeDeck) Unmarshal(bz []byte) error {
	d := wire.NewDecoder(bz)
	var err error
	if m.Caller, err = d.String(); err != nil {
		return err
	}
	if m.TableId, err = d.Uint64(); err != nil {
		return err
	}
	m.HandId, err = d.Uint64()
	return err
}

func (m MsgFinalizeDeck) Size() int             { bz, _ := m.Marshal(); return len(bz) }
func (m *MsgFinalizeDeck) Reset()               { *m = MsgFinalizeDeck{} }
func (m MsgFinalizeDeck) String() string        { return "MsgFinalizeDeck" }
func (*MsgFinalizeDeck) ProtoMessage()          {}
func (m *MsgFinalizeDeck) GetSigners() []string { return []string{m.Caller} }

type MsgFinalizeDeckResponse struct{ emptyResponse }

func (MsgFinalizeDeckResponse) String() string { return "MsgFinalizeDeckResponse" }
func (*MsgFinalizeDeckResponse) Reset()        {}

// --- MsgSubmitEncShare ---

type MsgSubmitEncShare struct {
	Validator     string
	TableId       uint64
	HandId        uint64
	Pos           uint32
	PkPlayer      []byte
	EncShare      []byte
	ProofEncShare []byte
}

func (m MsgSubmitEncShare) Marshal() ([]byte, error) {
	e := wire.NewEncoder()
	e.String(m.Validator)
	e.Uint64(m.TableId)
	e.Uint64(m.HandId)
	e.Uint32(m.Pos)
	e.Blob(m.PkPlayer)
	e.Blob(m.EncShare)
	e.Blob(m.ProofEncShare)
	return e.Bytes(), nil
}

func (m *MsgSubmitEncShare) Unmarshal(bz []byte) error {
	d := wire.NewDecoder(bz)
	var err error
	if m.Validator, err = d.String(); err != nil {
		return err
	}
	if m.TableId, err = d.Uint64(); err != nil {
		return err
	}
	if m.HandId, err = d.Uint64(); err != nil {
		return err
	}
	if m.Pos, err = d.Uint32(); err != nil {
		return err
	}
	if m.PkPlayer, err = d.Blob(); err != nil {
		return err
	}
	if m.EncShare, err = d.Blob(); err != nil {
		return err
	}
	m.ProofEncShare, err = d.Blob()
	return err
}

func (m MsgSubmitEncShare) Size() int             { bz, _ := m.Marshal(); return len(bz) }
func (m *MsgSubmitEncShare) Reset()               { *m = MsgSubmitEncShare{} }
func (m MsgSubmitEncShare) String() string        { return "MsgSubmitEncShare" }
func (*MsgSubmitEncShare) ProtoMessage()          {}
func (m *MsgSubmitEncShare) GetSigners() []string { return []string{m.Validator} }

type MsgSubmitEncShareResponse struct{ emptyResponse }

func (MsgSubmitEncShareResponse) String() string { return "MsgSubmitEncShareResponse" }
func (*MsgSubmitEncShareResponse) Reset()        {}

// --- MsgSubmitPubShare ---

type MsgSubmitPubShare struct {
	Validator  string
	TableId    uint64
	HandId     uint64
	Pos        uint32
	PubShare   []byte
	ProofShare []byte
}

func (m MsgSubmitPubShare) Marshal() ([]byte, error) {
	e := wire.NewEncoder()
	e.String(m.Validator)
	e.Uint64(m.TableId)
	e.Uint64(m.HandId)
	e.Uint32(m.Pos)
	e.Blob(m.PubShare)
	e.Blob(m.ProofShare)
	return e.Bytes(), nil
}

func (m *MsgSubmitPubShare) Unmarshal(bz []byte) error {
	d := wire.NewDecoder(bz)
	var err error
	if m.Validator, err = d.String(); err != nil {
		return err
	}
	if m.TableId, err = d.Uint64(); err != nil {
		return err
	}
	if m.HandId, err = d.Uint64(); err != nil {
		return err
	}
	if m.Pos, err = d.Uint32(); err != nil {
		return err
	}
	if m.PubShare, err = d.Blob(); err != nil {
		return err
	}
	m.ProofShare, err = d.Blob()
	return err
}

func (m MsgSubmitPubShare) Size() int             { bz, _ := m.Marshal(); return len(bz) }
func (m *MsgSubmitPubShare) Reset()               { *m = MsgSubmitPubShare{} }
func (m MsgSubmitPubShare) String() string        { return "MsgSubmitPubShare" }
func (*MsgSubmitPubShare) ProtoMessage()          {}
func (m *MsgSubmitPubShare) GetSigners() []string { return []string{m.Validator} }

type MsgSubmitPubShareResponse struct{ emptyResponse }

func (MsgSubmitPubShareResponse) String() string { return "MsgSubmitPubShareResponse" }
func (*MsgSubmitPubShareResponse) Reset()        {}

// --- MsgFinalizeReveal ---

type MsgFinalizeReveal struct {
	Caller  string
	TableId uint64
	HandId  uint64
	Pos     uint32
}

func (m MsgFinalizeReveal) Marshal() ([]byte, error) {
	e := wire.NewEncoder()
	e.String(m.Caller)
	e.Uint64(m.TableId)
	e.Uint64(m.HandId)
	e.Uint32(m.Pos)
	return e.Bytes(), nil
}

func (m *MsgFinalizeReveal) Unmarshal(bz []byte) error {
	d := wire.NewDecoder(bz)
	var err error
	if m.Caller, err = d.String(); err != nil {
		return err
	}
	if m.TableId, err = d.Uint64(); err != nil {
		return err
	}
	if m.HandId, err = d.Uint64(); err != nil {
		return err
	}
	m.Pos, err = d.Uint32()
	return err
}

func (m MsgFinalizeReveal) Size() int             { bz, _ := m.Marshal(); return len(bz) }
func (m *MsgFinalizeReveal) Reset()               { *m = MsgFinalizeReveal{} }
func (m MsgFinalizeReveal) String() string        { return "MsgFinalizeReveal" }
func (*MsgFinalizeReveal) ProtoMessage()          {}
func (m *MsgFinalizeReveal) GetSigners() []string { return []string{m.Caller} }

type MsgFinalizeRevealResponse struct{ emptyResponse }

func (MsgFinalizeRevealResponse) String() string { return "MsgFinalizeRevealResponse" }
func (*MsgFinalizeRevealResponse) Reset()        {}

// --- MsgTimeout ---

type MsgTimeout struct {
	Caller  string
	TableId uint64
	HandId  uint64
}

func (m MsgTimeout) Marshal() ([]byte, error) {
	e := wire.NewEncoder()
	e.String(m.Caller)
	e.Uint64(m.TableId)
	e.Uint64(m.HandId)
	return e.Bytes(), nil
}

func (m *MsgTimeout) Unmarshal(bz []byte) error {
	d := wire.NewDecoder(bz)
	var err error
	if m.Caller, err = d.String(); err != nil {
		return err
	}
	if m.TableId, err = d.Uint64(); err != nil {
		return err
	}
	m.HandId, err = d.Uint64()
	return err
}

func (m MsgTimeout) Size() int             { bz, _ := m.Marshal(); return len(bz) }
func (m *MsgTimeout) Reset()               { *m = MsgTimeout{} }
func (m MsgTimeout) String() string        { return "MsgTimeout" }
func (*MsgTimeout) ProtoMessage()          {}
func (m *MsgTimeout) GetSigners() []string { return []string{m.Caller} }

type MsgTimeoutResponse struct{ emptyResponse }

func (MsgTimeoutResponse) String() string { return "MsgTimeoutResponse" }
func (*MsgTimeoutResponse) Reset()        {}

// --- MsgUpdateParams ---

// MsgUpdateParams replaces the module parameters. Only the module authority
// (the governance account) may sign it.
type MsgUpdateParams struct {
	Authority string
	Params    Params
}

func (m MsgUpdateParams) Marshal() ([]byte, error) {
	e := wire.NewEncoder()
	e.String(m.Authority)
	if err := e.Message(m.Params); err != nil {
		return nil, err
	}
	return e.Bytes(), nil
}

func (m *MsgUpdateParams) Unmarshal(bz []byte) error {
	d := wire.NewDecoder(bz)
	var err error
	if m.Authority, err = d.String(); err != nil {
		return err
	}
	return d.Message(m.Params.Unmarshal)
}

func (m MsgUpdateParams) Size() int             { bz, _ := m.Marshal(); return len(bz) }
func (m *MsgUpdateParams) Reset()               { *m = MsgUpdateParams{} }
func (m MsgUpdateParams) String() string        { return "MsgUpdateParams" }
func (*MsgUpdateParams) ProtoMessage()          {}
func (m *MsgUpdateParams) GetSigners() []string { return []string{m.Authority} }

type MsgUpdateParamsResponse struct{ emptyResponse }

func (MsgUpdateParamsResponse) String() string { return "MsgUpdateParamsResponse" }
func (*MsgUpdateParamsResponse) Reset()        {}

// --- grpc plumbing ---

func dealerMsgHandler[Req any, Resp any](call func(context.Context, *Req) (*Resp, error)) func(interface{}, context.Context, func(interface{}) error, grpc.UnaryServerInterceptor) (interface{}, error) {
	return func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv}
		handler := func(ctx context.Context, req interface{}) (interface{}, error) {
			return call(ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

func _Msg_BeginEpoch_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	return dealerMsgHandler(srv.(MsgServer).BeginEpoch)(srv, ctx, dec, interceptor)
}
func _Msg_DkgCommit_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	return dealerMsgHandler(srv.(MsgServer).DkgCommit)(srv, ctx, dec, interceptor)
}
func _Msg_DkgComplaintMissing_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	return dealerMsgHandler(srv.(MsgServer).DkgComplaintMissing)(srv, ctx, dec, interceptor)
}
func _Msg_DkgComplaintInvalid_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	return dealerMsgHandler(srv.(MsgServer).DkgComplaintInvalid)(srv, ctx, dec, interceptor)
}
func _Msg_DkgShareReveal_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	return dealerMsgHandler(srv.(MsgServer).DkgShareReveal)(srv, ctx, dec, interceptor)
}
func _Msg_FinalizeEpoch_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	return dealerMsgHandler(srv.(MsgServer).FinalizeEpoch)(srv, ctx, dec, interceptor)
}
func _Msg_DkgTimeout_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	return dealerMsgHandler(srv.(MsgServer).DkgTimeout)(srv, ctx, dec, interceptor)
}
func _Msg_InitHand_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	return dealerMsgHandler(srv.(MsgServer).InitHand)(srv, ctx, dec, interceptor)
}
func _Msg_SubmitShuffle_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	return dealerMsgHandler(srv.(MsgServer).SubmitShuffle)(srv, ctx, dec, interceptor)
}
func _Msg_FinalizeDeck_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	return dealerMsgHandler(srv.(MsgServer).FinalizeDeck)(srv, ctx, dec, interceptor)
}
func _Msg_SubmitEncShare_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	return dealerMsgHandler(srv.(MsgServer).SubmitEncShare)(srv, ctx, dec, interceptor)
}
func _Msg_SubmitPubShare_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	return dealerMsgHandler(srv.(MsgServer).SubmitPubShare)(srv, ctx, dec, interceptor)
}
func _Msg_FinalizeReveal_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	return dealerMsgHandler(srv.(MsgServer).FinalizeReveal)(srv, ctx, dec, interceptor)
}
func _Msg_Timeout_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	return dealerMsgHandler(srv.(MsgServer).Timeout)(srv, ctx, dec, interceptor)
}
func _Msg_UpdateParams_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	return dealerMsgHandler(srv.(MsgServer).UpdateParams)(srv, ctx, dec, interceptor)
}

var _Msg_serviceDesc = grpc.ServiceDesc{
	ServiceName: "ocp.dealer.v1.Msg",
	HandlerType: (*MsgServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "BeginEpoch", Handler: _Msg_BeginEpoch_Handler},
		{MethodName: "DkgCommit", Handler: _Msg_DkgCommit_Handler},
		{MethodName: "DkgComplaintMissing", Handler: _Msg_DkgComplaintMissing_Handler},
		{MethodName: "DkgComplaintInvalid", Handler: _Msg_DkgComplaintInvalid_Handler},
		{MethodName: "DkgShareReveal", Handler: _Msg_DkgShareReveal_Handler},
		{MethodName: "FinalizeEpoch", Handler: _Msg_FinalizeEpoch_Handler},
		{MethodName: "DkgTimeout", Handler: _Msg_DkgTimeout_Handler},
		{MethodName: "InitHand", Handler: _Msg_InitHand_Handler},
		{MethodName: "SubmitShuffle", Handler: _Msg_SubmitShuffle_Handler},
		{MethodName: "FinalizeDeck", Handler: _Msg_FinalizeDeck_Handler},
		{MethodName: "SubmitEncShare", Handler: _Msg_SubmitEncShare_Handler},
		{MethodName: "SubmitPubShare", Handler: _Msg_SubmitPubShare_Handler},
		{MethodName: "FinalizeReveal", Handler: _Msg_FinalizeReveal_Handler},
		{MethodName: "Timeout", Handler: _Msg_Timeout_Handler},
		{MethodName: "UpdateParams", Handler: _Msg_UpdateParams_Handler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "dealer/tx.proto",
}
