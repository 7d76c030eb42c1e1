package types

import (
	"fmt"

	"onchainpoker-chain/internal/wire"
)

// HandPhase tracks where a hand is in its lifecycle, from deck setup through
// showdown. Board-card reveals (AWAIT_*) are driven by the dealer module
// submitting threshold shares, not by player action.
type HandPhase int32

const (
	HandPhase_HAND_PHASE_UNSPECIFIED   HandPhase = 0
	HandPhase_HAND_PHASE_SHUFFLE       HandPhase = 1
	HandPhase_HAND_PHASE_BETTING       HandPhase = 2
	HandPhase_HAND_PHASE_AWAIT_FLOP    HandPhase = 3
	HandPhase_HAND_PHASE_AWAIT_TURN    HandPhase = 4
	HandPhase_HAND_PHASE_AWAIT_RIVER   HandPhase = 5
	HandPhase_HAND_PHASE_AWAIT_SHOWDOWN HandPhase = 6
	HandPhase_HAND_PHASE_SHOWDOWN      HandPhase = 7
)

var handPhaseNames = map[HandPhase]string{
	HandPhase_HAND_PHASE_UNSPECIFIED:    "HAND_PHASE_UNSPECIFIED",
	HandPhase_HAND_PHASE_SHUFFLE:        "HAND_PHASE_SHUFFLE",
	HandPhase_HAND_PHASE_BETTING:        "HAND_PHASE_BETTING",
	HandPhase_HAND_PHASE_AWAIT_FLOP:     "HAND_PHASE_AWAIT_FLOP",
	HandPhase_HAND_PHASE_AWAIT_TURN:     "HAND_PHASE_AWAIT_TURN",
	HandPhase_HAND_PHASE_AWAIT_RIVER:    "HAND_PHASE_AWAIT_RIVER",
	HandPhase_HAND_PHASE_AWAIT_SHOWDOWN: "HAND_PHASE_AWAIT_SHOWDOWN",
	HandPhase_HAND_PHASE_SHOWDOWN:       "HAND_PHASE_SHOWDOWN",
}

func (p HandPhase) String() string {
	if n, ok := handPhaseNames[p]; ok {
		return n
	}
	return fmt.Sprintf("HandPhase(%d)", int32(p))
}

// Street is the current betting round within a hand.
type Street int32

const (
	Street_STREET_UNSPECIFIED Street = 0
	Street_STREET_PREFLOP     Street = 1
	Street_STREET_FLOP        Street = 2
	Street_STREET_TURN        Street = 3
	Street_STREET_RIVER       Street = 4
)

var streetNames = map[Street]string{
	Street_STREET_UNSPECIFIED: "STREET_UNSPECIFIED",
	Street_STREET_PREFLOP:     "STREET_PREFLOP",
	Street_STREET_FLOP:        "STREET_FLOP",
	Street_STREET_TURN:        "STREET_TURN",
	Street_STREET_RIVER:       "STREET_RIVER",
}

func (s Street) String() string {
	if n, ok := streetNames[s]; ok {
		return n
	}
	return fmt.Sprintf("Street(%d)", int32(s))
}

// TableParams are the immutable configuration values chosen at table
// creation time.
type TableParams struct {
	MaxPlayers        uint32
	SmallBlind        uint64
	BigBlind          uint64
	MinBuyIn          uint64
	MaxBuyIn          uint64
	ActionTimeoutSecs uint64
	DealerTimeoutSecs uint64
	PlayerBond        uint64
	RakeBps           uint32

	// PasswordHash is the SHA-256 of the table passphrase, or empty for an
	// open table. The passphrase itself never touches the store.
	PasswordHash []byte
}

func (p TableParams) Marshal() ([]byte, error) {
	e := wire.NewEncoder()
	e.Uint32(p.MaxPlayers)
	e.Uint64(p.SmallBlind)
	e.Uint64(p.BigBlind)
	e.Uint64(p.MinBuyIn)
	e.Uint64(p.MaxBuyIn)
	e.Uint64(p.ActionTimeoutSecs)
	e.Uint64(p.DealerTimeoutSecs)
	e.Uint64(p.PlayerBond)
	e.Uint32(p.RakeBps)
	e.Blob(p.PasswordHash)
	return e.Bytes(), nil
}

func (p *TableParams) Unmarshal(bz []byte) error {
	d := wire.NewDecoder(bz)
	var err error
	if p.MaxPlayers, err = d.Uint32(); err != nil {
		return err
	}
	if p.SmallBlind, err = d.Uint64(); err != nil {
		return err
	}
	if p.BigBlind, err = d.Uint64(); err != nil {
		return err
	}
	if p.MinBuyIn, err = d.Uint64(); err != nil {
		return err
	}
	if p.MaxBuyIn, err = d.Uint64(); err != nil {
		return err
	}
	if p.ActionTimeoutSecs, err = d.Uint64(); err != nil {
		return err
	}
	if p.DealerTimeoutSecs, err = d.Uint64(); err != nil {
		return err
	}
	if p.PlayerBond, err = d.Uint64(); err != nil {
		return err
	}
	if p.RakeBps, err = d.Uint32(); err != nil {
		return err
	}
	if p.PasswordHash, err = d.Blob(); err != nil {
		return err
	}
	return nil
}

func (p TableParams) Size() int {
	bz, _ := p.Marshal()
	return len(bz)
}
func (p *TableParams) Reset()         { *p = TableParams{} }
func (p TableParams) String() string  { return fmt.Sprintf("%+v", struct{ TableParams }{p}) }
func (*TableParams) ProtoMessage()    {}

// Seat holds a single player's state at a table. An unoccupied seat is
// represented by the zero value (Player == "").
type Seat struct {
	Player string
	Pk     []byte
	Stack  uint64
	Bond   uint64
	Hole   []uint32
}

func (s Seat) Marshal() ([]byte, error) {
	e := wire.NewEncoder()
	e.String(s.Player)
	e.Blob(s.Pk)
	e.Uint64(s.Stack)
	e.Uint64(s.Bond)
	e.Uint32(uint32(len(s.Hole)))
	for _, h := range s.Hole {
		e.Uint32(h)
	}
	return e.Bytes(), nil
}

func (s *Seat) Unmarshal(bz []byte) error {
	d := wire.NewDecoder(bz)
	var err error
	if s.Player, err = d.String(); err != nil {
		return err
	}
	if s.Pk, err = d.Blob(); err != nil {
		return err
	}
	if s.Stack, err = d.Uint64(); err != nil {
		return err
	}
	if s.Bond, err = d.Uint64(); err != nil {
		return err
	}
	n, err := d.Uint32()
	if err != nil {
		return err
	}
	s.Hole = make([]uint32, n)
	for i := range s.Hole {
		if s.Hole[i], err = d.Uint32(); err != nil {
			return err
		}
	}
	return nil
}

func (s Seat) Size() int {
	bz, _ := s.Marshal()
	return len(bz)
}
func (s *Seat) Reset()        { *s = Seat{} }
func (s Seat) String() string { return fmt.Sprintf("%+v", struct{ Seat }{s}) }
func (*Seat) ProtoMessage()   {}

// DealerMeta tracks the on-chain dealer module's progress through a single
// hand's deck: shuffle/finalize state, the deal cursor, and the position
// currently awaiting a threshold reveal.
type DealerMeta struct {
	EpochId        uint64
	DeckSize       uint32
	DeckFinalized  bool
	HolePos        []uint32
	Cursor         uint32
	RevealPos      uint32
	RevealDeadline int64
}

func (m DealerMeta) Marshal() ([]byte, error) {
	e := wire.NewEncoder()
	e.Uint64(m.EpochId)
	e.Uint32(m.DeckSize)
	e.Bool(m.DeckFinalized)
	e.Uint32(uint32(len(m.HolePos)))
	for _, p := range m.HolePos {
		e.Uint32(p)
	}
	e.Uint32(m.Cursor)
	e.Uint32(m.RevealPos)
	e.Int64(m.RevealDeadline)
	return e.Bytes(), nil
}

func (m *DealerMeta) Unmarshal(bz []byte) error {
	d := wire.NewDecoder(bz)
	var err error
	if m.EpochId, err = d.Uint64(); err != nil {
		return err
	}
	if m.DeckSize, err = d.Uint32(); err != nil {
		return err
	}
	if m.DeckFinalized, err = d.Bool(); err != nil {
		return err
	}
	n, err := d.Uint32()
	if err != nil {
		return err
	}
	m.HolePos = make([]uint32, n)
	for i := range m.HolePos {
		if m.HolePos[i], err = d.Uint32(); err != nil {
			return err
		}
	}
	if m.Cursor, err = d.Uint32(); err != nil {
		return err
	}
	if m.RevealPos, err = d.Uint32(); err != nil {
		return err
	}
	if m.RevealDeadline, err = d.Int64(); err != nil {
		return err
	}
	return nil
}

func (m DealerMeta) Size() int {
	bz, _ := m.Marshal()
	return len(bz)
}
func (m *DealerMeta) Reset()        { *m = DealerMeta{} }
func (m DealerMeta) String() string { return fmt.Sprintf("%+v", struct{ DealerMeta }{m}) }
func (*DealerMeta) ProtoMessage()   {}

// Hand is the mutable state of a single hand in progress at a table.
type Hand struct {
	HandId         uint64
	Phase          HandPhase
	Street         Street
	ButtonSeat     int32
	SmallBlindSeat int32
	BigBlindSeat   int32
	ActionOn       int32
	BetTo          uint64
	MinRaiseSize   uint64
	IntervalId     uint64

	InHand            []bool
	Folded            []bool
	AllIn             []bool
	StreetCommit      []uint64
	TotalCommit       []uint64
	LastIntervalActed []int32

	Board          []uint32
	ActionDeadline int64

	Dealer *DealerMeta
}

func marshalBools(e *wire.Encoder, vs []bool) {
	e.Uint32(uint32(len(vs)))
	for _, v := range vs {
		e.Bool(v)
	}
}

func unmarshalBools(d *wire.Decoder) ([]bool, error) {
	n, err := d.Uint32()
	if err != nil {
		return nil, err
	}
	out := make([]bool, n)
	for i := range out {
		if out[i], err = d.Bool(); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func marshalU64s(e *wire.Encoder, vs []uint64) {
	e.Uint32(uint32(len(vs)))
	for _, v := range vs {
		e.Uint64(v)
	}
}

func unmarshalU64s(d *wire.Decoder) ([]uint64, error) {
	n, err := d.Uint32()
	if err != nil {
		return nil, err
	}
	out := make([]uint64, n)
	for i := range out {
		if out[i], err = d.Uint64(); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func marshalU32s(e *wire.Encoder, vs []uint32) {
	e.Uint32(uint32(len(vs)))
	for _, v := range vs {
		e.Uint32(v)
	}
}

func unmarshalU32s(d *wire.Decoder) ([]uint32, error) {
	n, err := d.Uint32()
	if err != nil {
		return nil, err
	}
	out := make([]uint32, n)
	for i := range out {
		if out[i], err = d.Uint32(); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func marshalI32s(e *wire.Encoder, vs []int32) {
	e.Uint32(uint32(len(vs)))
	for _, v := range vs {
		e.Int32(v)
	}
}

func unmarshalI32s(d *wire.Decoder) ([]int32, error) {
	n, err := d.Uint32()
	if err != nil {
		return nil, err
	}
	out := make([]int32, n)
	for i := range out {
		if out[i], err = d.Int32(); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (h Hand) Marshal() ([]byte, error) {
	e := wire.NewEncoder()
	e.Uint64(h.HandId)
	e.Int32(int32(h.Phase))
	e.Int32(int32(h.Street))
	e.Int32(h.ButtonSeat)
	e.Int32(h.SmallBlindSeat)
	e.Int32(h.BigBlindSeat)
	e.Int32(h.ActionOn)
	e.Uint64(h.BetTo)
	e.Uint64(h.MinRaiseSize)
	e.Uint64(h.IntervalId)

	marshalBools(e, h.InHand)
	marshalBools(e, h.Folded)
	marshalBools(e, h.AllIn)
	marshalU64s(e, h.StreetCommit)
	marshalU64s(e, h.TotalCommit)
	marshalI32s(e, h.LastIntervalActed)

	marshalU32s(e, h.Board)
	e.Int64(h.ActionDeadline)

	e.Bool(h.Dealer != nil)
	if h.Dealer != nil {
		if err := e.Message(*h.Dealer); err != nil {
			return nil, err
		}
	}
	return e.Bytes(), nil
}

func (h *Hand) Unmarshal(bz []byte) error {
	d := wire.NewDecoder(bz)
	var err error
	if h.HandId, err = d.Uint64(); err != nil {
		return err
	}
	var phase, street int32
	if phase, err = d.Int32(); err != nil {
		return err
	}
	h.Phase = HandPhase(phase)
	if street, err = d.Int32(); err != nil {
		return err
	}
	h.Street = Street(street)
	if h.ButtonSeat, err = d.Int32(); err != nil {
		return err
	}
	if h.SmallBlindSeat, err = d.Int32(); err != nil {
		return err
	}
	if h.BigBlindSeat, err = d.Int32(); err != nil {
		return err
	}
	if h.ActionOn, err = d.Int32(); err != nil {
		return err
	}
	if h.BetTo, err = d.Uint64(); err != nil {
		return err
	}
	if h.MinRaiseSize, err = d.Uint64(); err != nil {
		return err
	}
	if h.IntervalId, err = d.Uint64(); err != nil {
		return err
	}

	if h.InHand, err = unmarshalBools(d); err != nil {
		return err
	}
	if h.Folded, err = unmarshalBools(d); err != nil {
		return err
	}
	if h.AllIn, err = unmarshalBools(d); err != nil {
		return err
	}
	if h.StreetCommit, err = unmarshalU64s(d); err != nil {
		return err
	}
	if h.TotalCommit, err = unmarshalU64s(d); err != nil {
		return err
	}
	if h.LastIntervalActed, err = unmarshalI32s(d); err != nil {
		return err
	}

	if h.Board, err = unmarshalU32s(d); err != nil {
		return err
	}
	if h.ActionDeadline, err = d.Int64(); err != nil {
		return err
	}

	hasDealer, err := d.Bool()
	if err != nil {
		return err
	}
	if hasDealer {
		h.Dealer = &DealerMeta{}
		if err := d.Message(h.Dealer.Unmarshal); err != nil {
			return err
		}
	} else {
		h.Dealer = nil
	}
	return nil
}

func (h Hand) Size() int {
	bz, _ := h.Marshal()
	return len(bz)
}
func (h *Hand) Reset()        { *h = Hand{} }
func (h Hand) String() string { return fmt.Sprintf("%+v", struct{ Hand }{h}) }
func (*Hand) ProtoMessage()   {}

// Table is the top-level persisted state for one poker table.
type Table struct {
	Id         uint64
	Creator    string
	Label      string
	Params     TableParams
	Seats      []*Seat
	NextHandId uint64
	ButtonSeat int32
	Hand       *Hand
}

func (t Table) Marshal() ([]byte, error) {
	e := wire.NewEncoder()
	e.Uint64(t.Id)
	e.String(t.Creator)
	e.String(t.Label)
	if err := e.Message(t.Params); err != nil {
		return nil, err
	}
	e.Uint32(uint32(len(t.Seats)))
	for _, s := range t.Seats {
		if s == nil {
			s = &Seat{}
		}
		if err := e.Message(*s); err != nil {
			return nil, err
		}
	}
	e.Uint64(t.NextHandId)
	e.Int32(t.ButtonSeat)
	e.Bool(t.Hand != nil)
	if t.Hand != nil {
		if err := e.Message(*t.Hand); err != nil {
			return nil, err
		}
	}
	return e.Bytes(), nil
}

func (t *Table) Unmarshal(bz []byte) error {
	d := wire.NewDecoder(bz)
	var err error
	if t.Id, err = d.Uint64(); err != nil {
		return err
	}
	if t.Creator, err = d.String(); err != nil {
		return err
	}
	if t.Label, err = d.String(); err != nil {
		return err
	}
	if err := d.Message(t.Params.Unmarshal); err != nil {
		return err
	}
	n, err := d.Uint32()
	if err != nil {
		return err
	}
	t.Seats = make([]*Seat, n)
	for i := range t.Seats {
		s := &Seat{}
		if err := d.Message(s.Unmarshal); err != nil {
			return err
		}
		t.Seats[i] = s
	}
	if t.NextHandId, err = d.Uint64(); err != nil {
		return err
	}
	if t.ButtonSeat, err = d.Int32(); err != nil {
		return err
	}
	hasHand, err := d.Bool()
	if err != nil {
		return err
	}
	if hasHand {
		t.Hand = &Hand{}
		if err := d.Message(t.Hand.Unmarshal); err != nil {
			return err
		}
	} else {
		t.Hand = nil
	}
	return nil
}

func (t Table) Size() int {
	bz, _ := t.Marshal()
	return len(bz)
}
func (t *Table) Reset()        { *t = Table{} }
func (t Table) String() string { return fmt.Sprintf("%+v", struct{ Table }{t}) }
func (*Table) ProtoMessage()   {}
