// Package wire implements the on-chain binary encoding shared by the poker
// and dealer module types.
//
// The chain's domain and message types are hand-authored (there is no
// protoc toolchain in this build), but they still need to satisfy
// gogoproto's Marshaler/Unmarshaler fast path so cosmos-sdk's BinaryCodec
// and grpc message dispatch can (de)serialize them without reflection. That
// fast path only calls a type's own Marshal/Unmarshal/Size methods, so the
// wire format here only has to be internally consistent, not
// protobuf-wire-compatible: every field is encoded in declaration order, no
// tags; integers and bools are fixed-width big-endian, while byte slices,
// strings and sub-messages carry a uint32 length prefix.
package wire

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// ErrShortBuffer is returned when a Decoder runs out of input mid-field.
var ErrShortBuffer = errors.New("wire: short buffer")

// Encoder appends fields to an internal byte buffer in call order.
type Encoder struct {
	buf []byte
}

func NewEncoder() *Encoder { return &Encoder{} }

func (e *Encoder) Bytes() []byte { return e.buf }

func (e *Encoder) Uint64(v uint64) {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	e.buf = append(e.buf, b[:]...)
}

func (e *Encoder) Uint32(v uint32) {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	e.buf = append(e.buf, b[:]...)
}

func (e *Encoder) Int64(v int64) { e.Uint64(uint64(v)) }
func (e *Encoder) Int32(v int32) { e.Uint32(uint32(v)) }

func (e *Encoder) Bool(v bool) {
	if v {
		e.buf = append(e.buf, 1)
	} else {
		e.buf = append(e.buf, 0)
	}
}

// Blob writes a length-prefixed byte slice.
func (e *Encoder) Blob(v []byte) {
	e.Uint32(uint32(len(v)))
	e.buf = append(e.buf, v...)
}

func (e *Encoder) String(v string) { e.Blob([]byte(v)) }

// Message writes a length-prefixed sub-message by calling its own Marshal.
func (e *Encoder) Message(m interface{ Marshal() ([]byte, error) }) error {
	bz, err := m.Marshal()
	if err != nil {
		return err
	}
	e.Blob(bz)
	return nil
}

// Decoder reads fields back out in the same order they were written.
type Decoder struct {
	buf []byte
	pos int
}

func NewDecoder(buf []byte) *Decoder { return &Decoder{buf: buf} }

func (d *Decoder) Remaining() int { return len(d.buf) - d.pos }

func (d *Decoder) need(n int) error {
	if d.pos+n > len(d.buf) {
		return ErrShortBuffer
	}
	return nil
}

func (d *Decoder) Uint64() (uint64, error) {
	if err := d.need(8); err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint64(d.buf[d.pos:])
	d.pos += 8
	return v, nil
}

func (d *Decoder) Uint32() (uint32, error) {
	if err := d.need(4); err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint32(d.buf[d.pos:])
	d.pos += 4
	return v, nil
}

func (d *Decoder) Int64() (int64, error) {
	v, err := d.Uint64()
	return int64(v), err
}

func (d *Decoder) Int32() (int32, error) {
	v, err := d.Uint32()
	return int32(v), err
}

func (d *Decoder) Bool() (bool, error) {
	if err := d.need(1); err != nil {
		return false, err
	}
	v := d.buf[d.pos] != 0
	d.pos++
	return v, nil
}

func (d *Decoder) Blob() ([]byte, error) {
	n, err := d.Uint32()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		// A zero-length blob decodes to nil so encode/decode round-trips
		// preserve deep equality for unset byte fields.
		return nil, nil
	}
	if err := d.need(int(n)); err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, d.buf[d.pos:d.pos+int(n)])
	d.pos += int(n)
	return out, nil
}

func (d *Decoder) String() (string, error) {
	b, err := d.Blob()
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Message reads a length-prefixed sub-message and unmarshals it via fn.
func (d *Decoder) Message(fn func([]byte) error) error {
	bz, err := d.Blob()
	if err != nil {
		return err
	}
	return fn(bz)
}

func SizeUint64() int { return 8 }
func SizeUint32() int { return 4 }
func SizeBool() int   { return 1 }
func SizeBlob(v []byte) int { return 4 + len(v) }
func SizeString(v string) int { return SizeBlob([]byte(v)) }
func SizeMessage(n int) int { return 4 + n }

// ErrNilUnmarshal reports an unmarshal into a nil receiver. Nothing in this
// package returns it; the Decoder methods only report ErrShortBuffer.
var ErrNilUnmarshal = fmt.Errorf("wire: cannot unmarshal into nil receiver")
