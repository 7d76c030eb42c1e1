package types

import "onchainpoker-chain/internal/wire"

// GenesisState is the full exported/imported state of x/poker.
type GenesisState struct {
	NextTableId uint64
	Tables      []*Table
}

func (g GenesisState) Marshal() ([]byte, error) {
	e := wire.NewEncoder()
	e.Uint64(g.NextTableId)
	e.Uint32(uint32(len(g.Tables)))
	for _, t := range g.Tables {
		if t == nil {
			t = &Table{}
		}
		if err := e.Message(*t); err != nil {
			return nil, err
		}
	}
	return e.Bytes(), nil
}

func (g *GenesisState) Unmarshal(bz []byte) error {
	d := wire.NewDecoder(bz)
	var err error
	if g.NextTableId, err = d.Uint64(); err != nil {
		return err
	}
	n, err := d.Uint32()
	if err != nil {
		return err
	}
	g.Tables = make([]*Table, n)
	for i := range g.Tables {
		t := &Table{}
		if err := d.Message(t.Unmarshal); err != nil {
			return err
		}
		g.Tables[i] = t
	}
	return nil
}

func (g GenesisState) Size() int {
	bz, _ := g.Marshal()
	return len(bz)
}
func (g *GenesisState) Reset()        { *g = GenesisState{} }
func (g GenesisState) String() string { return "GenesisState" }
func (*GenesisState) ProtoMessage()   {}
