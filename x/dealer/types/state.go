package types

import "onchainpoker-chain/internal/wire"

// Params are the governance-tunable slashing/jailing penalties applied to
// dealer committee members who misbehave during DKG or during a hand.
type Params struct {
	SlashBpsDkg           uint32
	SlashBpsHandDealer    uint32
	JailSecondsDkg        uint64
	JailSecondsHandDealer uint64
}

func (p Params) Marshal() ([]byte, error) {
	e := wire.NewEncoder()
	e.Uint32(p.SlashBpsDkg)
	e.Uint32(p.SlashBpsHandDealer)
	e.Uint64(p.JailSecondsDkg)
	e.Uint64(p.JailSecondsHandDealer)
	return e.Bytes(), nil
}

func (p *Params) Unmarshal(bz []byte) error {
	d := wire.NewDecoder(bz)
	var err error
	if p.SlashBpsDkg, err = d.Uint32(); err != nil {
		return err
	}
	if p.SlashBpsHandDealer, err = d.Uint32(); err != nil {
		return err
	}
	if p.JailSecondsDkg, err = d.Uint64(); err != nil {
		return err
	}
	p.JailSecondsHandDealer, err = d.Uint64()
	return err
}

func (p Params) Size() int      { bz, _ := p.Marshal(); return len(bz) }
func (p *Params) Reset()        { *p = Params{} }
func (p Params) String() string { return "Params" }
func (*Params) ProtoMessage()   {}

// GenesisState is the full exported/imported state of x/dealer.
type GenesisState struct {
	NextEpochId uint64
	Epoch       *DealerEpoch
	Dkg         *DealerDKG
	Params      Params
}

func (g GenesisState) Marshal() ([]byte, error) {
	e := wire.NewEncoder()
	e.Uint64(g.NextEpochId)
	e.Bool(g.Epoch != nil)
	if g.Epoch != nil {
		if err := e.Message(*g.Epoch); err != nil {
			return nil, err
		}
	}
	e.Bool(g.Dkg != nil)
	if g.Dkg != nil {
		if err := e.Message(*g.Dkg); err != nil {
			return nil, err
		}
	}
	if err := e.Message(g.Params); err != nil {
		return nil, err
	}
	return e.Bytes(), nil
}

func (g *GenesisState) Unmarshal(bz []byte) error {
	d := wire.NewDecoder(bz)
	var err error
	if g.NextEpochId, err = d.Uint64(); err != nil {
		return err
	}
	hasEpoch, err := d.Bool()
	if err != nil {
		return err
	}
	if hasEpoch {
		g.Epoch = &DealerEpoch{}
		if err := d.Message(g.Epoch.Unmarshal); err != nil {
			return err
		}
	} else {
		g.Epoch = nil
	}
	hasDkg, err := d.Bool()
	if err != nil {
		return err
	}
	if hasDkg {
		g.Dkg = &DealerDKG{}
		if err := d.Message(g.Dkg.Unmarshal); err != nil {
			return err
		}
	} else {
		g.Dkg = nil
	}
	return d.Message(g.Params.Unmarshal)
}

func (g GenesisState) Size() int      { bz, _ := g.Marshal(); return len(bz) }
func (g *GenesisState) Reset()        { *g = GenesisState{} }
func (g GenesisState) String() string { return "GenesisState" }
func (*GenesisState) ProtoMessage()   {}
