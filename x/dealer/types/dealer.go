package types

import (
	"fmt"

	"onchainpoker-chain/internal/wire"
)

// DealerMember is one validator's seat in a dealer committee: its Feldman
// share index, its aggregated public share once DKG finalizes, and the
// consensus pubkey used to verify signed DKG share messages.
type DealerMember struct {
	Validator  string
	Index      uint32
	PubShare   []byte
	ConsPubkey []byte
	Power      int64
}

func (m DealerMember) Marshal() ([]byte, error) {
	e := wire.NewEncoder()
	e.String(m.Validator)
	e.Uint32(m.Index)
	e.Blob(m.PubShare)
	e.Blob(m.ConsPubkey)
	e.Int64(m.Power)
	return e.Bytes(), nil
}

func (m *DealerMember) Unmarshal(bz []byte) error {
	d := wire.NewDecoder(bz)
	var err error
	if m.Validator, err = d.String(); err != nil {
		return err
	}
	if m.Index, err = d.Uint32(); err != nil {
		return err
	}
	if m.PubShare, err = d.Blob(); err != nil {
		return err
	}
	if m.ConsPubkey, err = d.Blob(); err != nil {
		return err
	}
	m.Power, err = d.Int64()
	return err
}

func (m DealerMember) Size() int      { bz, _ := m.Marshal(); return len(bz) }
func (m *DealerMember) Reset()        { *m = DealerMember{} }
func (m DealerMember) String() string { return fmt.Sprintf("%+v", struct{ DealerMember }{m}) }
func (*DealerMember) ProtoMessage()   {}

func marshalMembers(e *wire.Encoder, ms []DealerMember) error {
	e.Uint32(uint32(len(ms)))
	for _, m := range ms {
		if err := e.Message(m); err != nil {
			return err
		}
	}
	return nil
}

func unmarshalMembers(d *wire.Decoder) ([]DealerMember, error) {
	n, err := d.Uint32()
	if err != nil {
		return nil, err
	}
	out := make([]DealerMember, n)
	for i := range out {
		if err := d.Message(out[i].Unmarshal); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func marshalStrings(e *wire.Encoder, ss []string) {
	e.Uint32(uint32(len(ss)))
	for _, s := range ss {
		e.String(s)
	}
}

func unmarshalStrings(d *wire.Decoder) ([]string, error) {
	n, err := d.Uint32()
	if err != nil {
		return nil, err
	}
	out := make([]string, n)
	for i := range out {
		if out[i], err = d.String(); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func marshalBlobs(e *wire.Encoder, bs [][]byte) {
	e.Uint32(uint32(len(bs)))
	for _, b := range bs {
		e.Blob(b)
	}
}

func unmarshalBlobs(d *wire.Decoder) ([][]byte, error) {
	n, err := d.Uint32()
	if err != nil {
		return nil, err
	}
	out := make([][]byte, n)
	for i := range out {
		if out[i], err = d.Blob(); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// DealerDKGCommit is one dealer's Feldman VSS polynomial commitment vector.
type DealerDKGCommit struct {
	Dealer      string
	Commitments [][]byte
}

func (c DealerDKGCommit) Marshal() ([]byte, error) {
	e := wire.NewEncoder()
	e.String(c.Dealer)
	marshalBlobs(e, c.Commitments)
	return e.Bytes(), nil
}

func (c *DealerDKGCommit) Unmarshal(bz []byte) error {
	d := wire.NewDecoder(bz)
	var err error
	if c.Dealer, err = d.String(); err != nil {
		return err
	}
	c.Commitments, err = unmarshalBlobs(d)
	return err
}

func (c DealerDKGCommit) Size() int      { bz, _ := c.Marshal(); return len(bz) }
func (c *DealerDKGCommit) Reset()        { *c = DealerDKGCommit{} }
func (c DealerDKGCommit) String() string { return fmt.Sprintf("%+v", struct{ DealerDKGCommit }{c}) }
func (*DealerDKGCommit) ProtoMessage()   {}

// DealerDKGComplaint is filed by a committee member against a dealer who
// either never shared a polynomial piece with them ("missing") or shared one
// that doesn't match the dealer's published commitments ("invalid").
type DealerDKGComplaint struct {
	EpochId    uint64
	Complainer string
	Dealer     string
	Kind       string
	ShareMsg   []byte
}

func (c DealerDKGComplaint) Marshal() ([]byte, error) {
	e := wire.NewEncoder()
	e.Uint64(c.EpochId)
	e.String(c.Complainer)
	e.String(c.Dealer)
	e.String(c.Kind)
	e.Blob(c.ShareMsg)
	return e.Bytes(), nil
}

func (c *DealerDKGComplaint) Unmarshal(bz []byte) error {
	d := wire.NewDecoder(bz)
	var err error
	if c.EpochId, err = d.Uint64(); err != nil {
		return err
	}
	if c.Complainer, err = d.String(); err != nil {
		return err
	}
	if c.Dealer, err = d.String(); err != nil {
		return err
	}
	if c.Kind, err = d.String(); err != nil {
		return err
	}
	c.ShareMsg, err = d.Blob()
	return err
}

func (c DealerDKGComplaint) Size() int { bz, _ := c.Marshal(); return len(bz) }
func (c *DealerDKGComplaint) Reset()   { *c = DealerDKGComplaint{} }
func (c DealerDKGComplaint) String() string {
	return fmt.Sprintf("%+v", struct{ DealerDKGComplaint }{c})
}
func (*DealerDKGComplaint) ProtoMessage() {}

// DealerDKGShareReveal is a dealer's response to a complaint: the original
// (previously private) Feldman share, now public so every member can verify
// whether the complaint was justified.
type DealerDKGShareReveal struct {
	EpochId uint64
	Dealer  string
	To      string
	Share   []byte
}

func (r DealerDKGShareReveal) Marshal() ([]byte, error) {
	e := wire.NewEncoder()
	e.Uint64(r.EpochId)
	e.String(r.Dealer)
	e.String(r.To)
	e.Blob(r.Share)
	return e.Bytes(), nil
}

func (r *DealerDKGShareReveal) Unmarshal(bz []byte) error {
	d := wire.NewDecoder(bz)
	var err error
	if r.EpochId, err = d.Uint64(); err != nil {
		return err
	}
	if r.Dealer, err = d.String(); err != nil {
		return err
	}
	if r.To, err = d.String(); err != nil {
		return err
	}
	r.Share, err = d.Blob()
	return err
}

func (r DealerDKGShareReveal) Size() int { bz, _ := r.Marshal(); return len(bz) }
func (r *DealerDKGShareReveal) Reset()   { *r = DealerDKGShareReveal{} }
func (r DealerDKGShareReveal) String() string {
	return fmt.Sprintf("%+v", struct{ DealerDKGShareReveal }{r})
}
func (*DealerDKGShareReveal) ProtoMessage() {}

func marshalCommits(e *wire.Encoder, cs []DealerDKGCommit) error {
	e.Uint32(uint32(len(cs)))
	for _, c := range cs {
		if err := e.Message(c); err != nil {
			return err
		}
	}
	return nil
}

func unmarshalCommits(d *wire.Decoder) ([]DealerDKGCommit, error) {
	n, err := d.Uint32()
	if err != nil {
		return nil, err
	}
	out := make([]DealerDKGCommit, n)
	for i := range out {
		if err := d.Message(out[i].Unmarshal); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func marshalComplaints(e *wire.Encoder, cs []DealerDKGComplaint) error {
	e.Uint32(uint32(len(cs)))
	for _, c := range cs {
		if err := e.Message(c); err != nil {
			return err
		}
	}
	return nil
}

func unmarshalComplaints(d *wire.Decoder) ([]DealerDKGComplaint, error) {
	n, err := d.Uint32()
	if err != nil {
		return nil, err
	}
	out := make([]DealerDKGComplaint, n)
	for i := range out {
		if err := d.Message(out[i].Unmarshal); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func marshalReveals(e *wire.Encoder, rs []DealerDKGShareReveal) error {
	e.Uint32(uint32(len(rs)))
	for _, r := range rs {
		if err := e.Message(r); err != nil {
			return err
		}
	}
	return nil
}

func unmarshalReveals(d *wire.Decoder) ([]DealerDKGShareReveal, error) {
	n, err := d.Uint32()
	if err != nil {
		return nil, err
	}
	out := make([]DealerDKGShareReveal, n)
	for i := range out {
		if err := d.Message(out[i].Unmarshal); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// DealerDKG is the in-flight distributed key generation round for one
// epoch: the sampled committee, the deadlines for each phase, and the
// commit/complaint/reveal evidence gathered so far.
type DealerDKG struct {
	EpochId           uint64
	Threshold         uint32
	Members           []DealerMember
	StartHeight       int64
	CommitDeadline    int64
	ComplaintDeadline int64
	RevealDeadline    int64
	FinalizeDeadline  int64
	RandEpoch         []byte
	Commits           []DealerDKGCommit
	Complaints        []DealerDKGComplaint
	Reveals           []DealerDKGShareReveal
	Slashed           []string
}

func (k DealerDKG) Marshal() ([]byte, error) {
	e := wire.NewEncoder()
	e.Uint64(k.EpochId)
	e.Uint32(k.Threshold)
	if err := marshalMembers(e, k.Members); err != nil {
		return nil, err
	}
	e.Int64(k.StartHeight)
	e.Int64(k.CommitDeadline)
	e.Int64(k.ComplaintDeadline)
	e.Int64(k.RevealDeadline)
	e.Int64(k.FinalizeDeadline)
	e.Blob(k.RandEpoch)
	if err := marshalCommits(e, k.Commits); err != nil {
		return nil, err
	}
	if err := marshalComplaints(e, k.Complaints); err != nil {
		return nil, err
	}
	if err := marshalReveals(e, k.Reveals); err != nil {
		return nil, err
	}
	marshalStrings(e, k.Slashed)
	return e.Bytes(), nil
}

func (k *DealerDKG) Unmarshal(bz []byte) error {
	d := wire.NewDecoder(bz)
	var err error
	if k.EpochId, err = d.Uint64(); err != nil {
		return err
	}
	if k.Threshold, err = d.Uint32(); err != nil {
		return err
	}
	if k.Members, err = unmarshalMembers(d); err != nil {
		return err
	}
	if k.StartHeight, err = d.Int64(); err != nil {
		return err
	}
	if k.CommitDeadline, err = d.Int64(); err != nil {
		return err
	}
	if k.ComplaintDeadline, err = d.Int64(); err != nil {
		return err
	}
	if k.RevealDeadline, err = d.Int64(); err != nil {
		return err
	}
	if k.FinalizeDeadline, err = d.Int64(); err != nil {
		return err
	}
	if k.RandEpoch, err = d.Blob(); err != nil {
		return err
	}
	if k.Commits, err = unmarshalCommits(d); err != nil {
		return err
	}
	if k.Complaints, err = unmarshalComplaints(d); err != nil {
		return err
	}
	if k.Reveals, err = unmarshalReveals(d); err != nil {
		return err
	}
	k.Slashed, err = unmarshalStrings(d)
	return err
}

func (k DealerDKG) Size() int      { bz, _ := k.Marshal(); return len(bz) }
func (k *DealerDKG) Reset()        { *k = DealerDKG{} }
func (k DealerDKG) String() string { return fmt.Sprintf("%+v", struct{ DealerDKG }{k}) }
func (*DealerDKG) ProtoMessage()   {}

// DealerEpoch is the finalized, operative dealer committee for the chain:
// the aggregate public key used to encrypt every hand's deck, and each
// member's public share used to verify their threshold contributions.
type DealerEpoch struct {
	EpochId        uint64
	Threshold      uint32
	PkEpoch        []byte
	TranscriptRoot string
	StartHeight    int64
	Slashed        []string
	Members        []DealerMember
}

func (e_ DealerEpoch) Marshal() ([]byte, error) {
	e := wire.NewEncoder()
	e.Uint64(e_.EpochId)
	e.Uint32(e_.Threshold)
	e.Blob(e_.PkEpoch)
	e.String(e_.TranscriptRoot)
	e.Int64(e_.StartHeight)
	marshalStrings(e, e_.Slashed)
	if err := marshalMembers(e, e_.Members); err != nil {
		return nil, err
	}
	return e.Bytes(), nil
}

func (e_ *DealerEpoch) Unmarshal(bz []byte) error {
	d := wire.NewDecoder(bz)
	var err error
	if e_.EpochId, err = d.Uint64(); err != nil {
		return err
	}
	if e_.Threshold, err = d.Uint32(); err != nil {
		return err
	}
	if e_.PkEpoch, err = d.Blob(); err != nil {
		return err
	}
	if e_.TranscriptRoot, err = d.String(); err != nil {
		return err
	}
	if e_.StartHeight, err = d.Int64(); err != nil {
		return err
	}
	if e_.Slashed, err = unmarshalStrings(d); err != nil {
		return err
	}
	e_.Members, err = unmarshalMembers(d)
	return err
}

func (e_ DealerEpoch) Size() int      { bz, _ := e_.Marshal(); return len(bz) }
func (e_ *DealerEpoch) Reset()        { *e_ = DealerEpoch{} }
func (e_ DealerEpoch) String() string { return fmt.Sprintf("%+v", struct{ DealerEpoch }{e_}) }
func (*DealerEpoch) ProtoMessage()    {}

// DealerCiphertext is an ElGamal-encrypted card: C1 = r*G, C2 = M + r*PK.
type DealerCiphertext struct {
	C1 []byte
	C2 []byte
}

func (c DealerCiphertext) Marshal() ([]byte, error) {
	e := wire.NewEncoder()
	e.Blob(c.C1)
	e.Blob(c.C2)
	return e.Bytes(), nil
}

func (c *DealerCiphertext) Unmarshal(bz []byte) error {
	d := wire.NewDecoder(bz)
	var err error
	if c.C1, err = d.Blob(); err != nil {
		return err
	}
	c.C2, err = d.Blob()
	return err
}

func (c DealerCiphertext) Size() int      { bz, _ := c.Marshal(); return len(bz) }
func (c *DealerCiphertext) Reset()        { *c = DealerCiphertext{} }
func (c DealerCiphertext) String() string { return fmt.Sprintf("%+v", struct{ DealerCiphertext }{c}) }
func (*DealerCiphertext) ProtoMessage()   {}

func marshalDeck(e *wire.Encoder, cs []DealerCiphertext) error {
	e.Uint32(uint32(len(cs)))
	for _, c := range cs {
		if err := e.Message(c); err != nil {
			return err
		}
	}
	return nil
}

func unmarshalDeck(d *wire.Decoder) ([]DealerCiphertext, error) {
	n, err := d.Uint32()
	if err != nil {
		return nil, err
	}
	out := make([]DealerCiphertext, n)
	for i := range out {
		if err := d.Message(out[i].Unmarshal); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// DealerPubShare is one committee member's partial decryption of a card's
// C1, proven correct via a Chaum-Pedersen DLEQ proof against their public
// share.
type DealerPubShare struct {
	Pos       uint32
	Validator string
	Index     uint32
	Share     []byte
	Proof     []byte
}

func (p DealerPubShare) Marshal() ([]byte, error) {
	e := wire.NewEncoder()
	e.Uint32(p.Pos)
	e.String(p.Validator)
	e.Uint32(p.Index)
	e.Blob(p.Share)
	e.Blob(p.Proof)
	return e.Bytes(), nil
}

func (p *DealerPubShare) Unmarshal(bz []byte) error {
	d := wire.NewDecoder(bz)
	var err error
	if p.Pos, err = d.Uint32(); err != nil {
		return err
	}
	if p.Validator, err = d.String(); err != nil {
		return err
	}
	if p.Index, err = d.Uint32(); err != nil {
		return err
	}
	if p.Share, err = d.Blob(); err != nil {
		return err
	}
	p.Proof, err = d.Blob()
	return err
}

func (p DealerPubShare) Size() int      { bz, _ := p.Marshal(); return len(bz) }
func (p *DealerPubShare) Reset()        { *p = DealerPubShare{} }
func (p DealerPubShare) String() string { return fmt.Sprintf("%+v", struct{ DealerPubShare }{p}) }
func (*DealerPubShare) ProtoMessage()   {}

func marshalPubShares(e *wire.Encoder, ps []DealerPubShare) error {
	e.Uint32(uint32(len(ps)))
	for _, p := range ps {
		if err := e.Message(p); err != nil {
			return err
		}
	}
	return nil
}

func unmarshalPubShares(d *wire.Decoder) ([]DealerPubShare, error) {
	n, err := d.Uint32()
	if err != nil {
		return nil, err
	}
	out := make([]DealerPubShare, n)
	for i := range out {
		if err := d.Message(out[i].Unmarshal); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// DealerEncShare is a committee member's hole-card re-encryption toward a
// single player's public key, proven correct via a Schnorr-style EncShare
// proof.
type DealerEncShare struct {
	Pos       uint32
	Validator string
	Index     uint32
	PkPlayer  []byte
	EncShare  []byte
	Proof     []byte
}

func (s DealerEncShare) Marshal() ([]byte, error) {
	e := wire.NewEncoder()
	e.Uint32(s.Pos)
	e.String(s.Validator)
	e.Uint32(s.Index)
	e.Blob(s.PkPlayer)
	e.Blob(s.EncShare)
	e.Blob(s.Proof)
	return e.Bytes(), nil
}

func (s *DealerEncShare) Unmarshal(bz []byte) error {
	d := wire.NewDecoder(bz)
	var err error
	if s.Pos, err = d.Uint32(); err != nil {
		return err
	}
	if s.Validator, err = d.String(); err != nil {
		return err
	}
	if s.Index, err = d.Uint32(); err != nil {
		return err
	}
	if s.PkPlayer, err = d.Blob(); err != nil {
		return err
	}
	if s.EncShare, err = d.Blob(); err != nil {
		return err
	}
	s.Proof, err = d.Blob()
	return err
}

func (s DealerEncShare) Size() int      { bz, _ := s.Marshal(); return len(bz) }
func (s *DealerEncShare) Reset()        { *s = DealerEncShare{} }
func (s DealerEncShare) String() string { return fmt.Sprintf("%+v", struct{ DealerEncShare }{s}) }
func (*DealerEncShare) ProtoMessage()   {}

func marshalEncShares(e *wire.Encoder, ss []DealerEncShare) error {
	e.Uint32(uint32(len(ss)))
	for _, s := range ss {
		if err := e.Message(s); err != nil {
			return err
		}
	}
	return nil
}

func unmarshalEncShares(d *wire.Decoder) ([]DealerEncShare, error) {
	n, err := d.Uint32()
	if err != nil {
		return nil, err
	}
	out := make([]DealerEncShare, n)
	for i := range out {
		if err := d.Message(out[i].Unmarshal); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// DealerReveal records a position in the deck whose plaintext card has been
// fully recovered via threshold combination.
type DealerReveal struct {
	Pos    uint32
	CardId uint32
}

func (r DealerReveal) Marshal() ([]byte, error) {
	e := wire.NewEncoder()
	e.Uint32(r.Pos)
	e.Uint32(r.CardId)
	return e.Bytes(), nil
}

func (r *DealerReveal) Unmarshal(bz []byte) error {
	d := wire.NewDecoder(bz)
	var err error
	if r.Pos, err = d.Uint32(); err != nil {
		return err
	}
	r.CardId, err = d.Uint32()
	return err
}

func (r DealerReveal) Size() int      { bz, _ := r.Marshal(); return len(bz) }
func (r *DealerReveal) Reset()        { *r = DealerReveal{} }
func (r DealerReveal) String() string { return fmt.Sprintf("%+v", struct{ DealerReveal }{r}) }
func (*DealerReveal) ProtoMessage()   {}

func marshalDealerReveals(e *wire.Encoder, rs []DealerReveal) error {
	e.Uint32(uint32(len(rs)))
	for _, r := range rs {
		if err := e.Message(r); err != nil {
			return err
		}
	}
	return nil
}

func unmarshalDealerReveals(d *wire.Decoder) ([]DealerReveal, error) {
	n, err := d.Uint32()
	if err != nil {
		return nil, err
	}
	out := make([]DealerReveal, n)
	for i := range out {
		if err := d.Message(out[i].Unmarshal); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// DealerHand is the dealer module's per-hand state: the encrypted deck, the
// shuffle chain's progress, and every threshold share gathered toward
// revealing cards.
type DealerHand struct {
	EpochId            uint64
	PkHand             []byte
	DeckSize           uint32
	Deck               []DealerCiphertext
	ShuffleStep        uint32
	Finalized          bool
	ShuffleDeadline    int64
	HoleSharesDeadline int64
	PubShares          []DealerPubShare
	EncShares          []DealerEncShare
	Reveals            []DealerReveal
}

func (h DealerHand) Marshal() ([]byte, error) {
	e := wire.NewEncoder()
	e.Uint64(h.EpochId)
	e.Blob(h.PkHand)
	e.Uint32(h.DeckSize)
	if err := marshalDeck(e, h.Deck); err != nil {
		return nil, err
	}
	e.Uint32(h.ShuffleStep)
	e.Bool(h.Finalized)
	e.Int64(h.ShuffleDeadline)
	e.Int64(h.HoleSharesDeadline)
	if err := marshalPubShares(e, h.PubShares); err != nil {
		return nil, err
	}
	if err := marshalEncShares(e, h.EncShares); err != nil {
		return nil, err
	}
	if err := marshalDealerReveals(e, h.Reveals); err != nil {
		return nil, err
	}
	return e.Bytes(), nil
}

func (h *DealerHand) Unmarshal(bz []byte) error {
	d := wire.NewDecoder(bz)
	var err error
	if h.EpochId, err = d.Uint64(); err != nil {
		return err
	}
	if h.PkHand, err = d.Blob(); err != nil {
		return err
	}
	if h.DeckSize, err = d.Uint32(); err != nil {
		return err
	}
	if h.Deck, err = unmarshalDeck(d); err != nil {
		return err
	}
	if h.ShuffleStep, err = d.Uint32(); err != nil {
		return err
	}
	if h.Finalized, err = d.Bool(); err != nil {
		return err
	}
	if h.ShuffleDeadline, err = d.Int64(); err != nil {
		return err
	}
	if h.HoleSharesDeadline, err = d.Int64(); err != nil {
		return err
	}
	if h.PubShares, err = unmarshalPubShares(d); err != nil {
		return err
	}
	if h.EncShares, err = unmarshalEncShares(d); err != nil {
		return err
	}
	h.Reveals, err = unmarshalDealerReveals(d)
	return err
}

func (h DealerHand) Size() int      { bz, _ := h.Marshal(); return len(bz) }
func (h *DealerHand) Reset()        { *h = DealerHand{} }
func (h DealerHand) String() string { return fmt.Sprintf("%+v", struct{ DealerHand }{h}) }
func (*DealerHand) ProtoMessage()   {}
