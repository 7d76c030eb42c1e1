package wire

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeDecode_FieldOrderRoundTrip(t *testing.T) {
	e := NewEncoder()
	e.Uint64(^uint64(0))
	e.Uint32(42)
	e.Int64(-7)
	e.Int32(-1)
	e.Bool(true)
	e.Bool(false)
	e.Blob([]byte{0xde, 0xad})
	e.Blob(nil)
	e.String("hold'em")
	e.String("")

	d := NewDecoder(e.Bytes())

	u64, err := d.Uint64()
	require.NoError(t, err)
	require.Equal(t, ^uint64(0), u64)

	u32, err := d.Uint32()
	require.NoError(t, err)
	require.Equal(t, uint32(42), u32)

	i64, err := d.Int64()
	require.NoError(t, err)
	require.Equal(t, int64(-7), i64)

	i32, err := d.Int32()
	require.NoError(t, err)
	require.Equal(t, int32(-1), i32)

	b, err := d.Bool()
	require.NoError(t, err)
	require.True(t, b)
	b, err = d.Bool()
	require.NoError(t, err)
	require.False(t, b)

	blob, err := d.Blob()
	require.NoError(t, err)
	require.Equal(t, []byte{0xde, 0xad}, blob)
	blob, err = d.Blob()
	require.NoError(t, err)
	require.Empty(t, blob)

	s, err := d.String()
	require.NoError(t, err)
	require.Equal(t, "hold'em", s)
	s, err = d.String()
	require.NoError(t, err)
	require.Equal(t, "", s)

	require.Zero(t, d.Remaining())
}

func TestDecoder_ShortBuffer(t *testing.T) {
	d := NewDecoder([]byte{0x01, 0x02})
	_, err := d.Uint64()
	require.ErrorIs(t, err, ErrShortBuffer)

	// A blob length prefix larger than the remaining input must fail
	// instead of over-reading.
	e := NewEncoder()
	e.Uint32(100)
	d = NewDecoder(e.Bytes())
	_, err = d.Blob()
	require.ErrorIs(t, err, ErrShortBuffer)
}

func TestEncoder_DeterministicOutput(t *testing.T) {
	build := func() []byte {
		e := NewEncoder()
		e.Uint64(9)
		e.String("table")
		e.Bool(true)
		return e.Bytes()
	}
	require.Equal(t, build(), build())
}

type nestedMsg struct {
	ID uint64
}

func (m nestedMsg) Marshal() ([]byte, error) {
	e := NewEncoder()
	e.Uint64(m.ID)
	return e.Bytes(), nil
}

func (m *nestedMsg) Unmarshal(bz []byte) error {
	d := NewDecoder(bz)
	var err error
	m.ID, err = d.Uint64()
	return err
}

func TestMessage_NestedRoundTrip(t *testing.T) {
	e := NewEncoder()
	require.NoError(t, e.Message(nestedMsg{ID: 77}))
	e.String("trailer")

	d := NewDecoder(e.Bytes())
	var got nestedMsg
	require.NoError(t, d.Message(got.Unmarshal))
	require.Equal(t, uint64(77), got.ID)

	s, err := d.String()
	require.NoError(t, err)
	require.Equal(t, "trailer", s)
}
