package ocpcrypto

import (
	"crypto/sha512"
	"encoding/binary"
	"fmt"

	"github.com/gtank/ristretto255"
)

const ScalarBytes = 32

// Scalar is a ristretto255 scalar (canonical 32-byte little-endian encoding),
// the field elements every committee index, DKG share, and re-encryption
// blinding factor in this package is drawn from.
type Scalar struct {
	v ristretto255.Scalar
}

// ScalarFromUint64 embeds a small integer (a committee index, e.g.) as a
// scalar via its canonical little-endian byte encoding.
func ScalarFromUint64(x uint64) Scalar {
	var b [32]byte
	binary.LittleEndian.PutUint64(b[:8], x)
	var s Scalar
	if _, err := s.v.SetCanonicalBytes(b[:]); err == nil {
		return s
	}
	// Unreachable for any uint64 value (the group order comfortably exceeds
	// 2^64), but fall back to uniform reduction rather than panic.
	var uni [64]byte
	copy(uni[:], b[:])
	s.v.FromUniformBytes(uni[:])
	return s
}

// ScalarZero returns the additive identity.
func ScalarZero() Scalar {
	return Scalar{}
}

func ScalarFromBytesCanonical(b []byte) (Scalar, error) {
	if len(b) != ScalarBytes {
		return Scalar{}, fmt.Errorf("scalar: expected %d bytes", ScalarBytes)
	}
	var s Scalar
	if _, err := s.v.SetCanonicalBytes(b); err != nil {
		return Scalar{}, fmt.Errorf("scalar: non-canonical: %w", err)
	}
	return s, nil
}

// scalarFromUniformBytes reduces a 64-byte uniform digest into the scalar
// field, used to turn a hash output into a scalar without bias.
func scalarFromUniformBytes(b []byte) (Scalar, error) {
	if len(b) != 64 {
		return Scalar{}, fmt.Errorf("scalar: expected 64 uniform bytes")
	}
	var s Scalar
	s.v.FromUniformBytes(b)
	return s, nil
}

func (s Scalar) Bytes() []byte {
	return s.v.Bytes()
}

func (s Scalar) IsZero() bool {
	var zero ristretto255.Scalar
	return s.v.Equal(&zero) == 1
}

func ScalarAdd(a, b Scalar) Scalar {
	var out Scalar
	out.v.Add(&a.v, &b.v)
	return out
}

func ScalarSub(a, b Scalar) Scalar {
	var out Scalar
	out.v.Subtract(&a.v, &b.v)
	return out
}

func ScalarMul(a, b Scalar) Scalar {
	var out Scalar
	out.v.Multiply(&a.v, &b.v)
	return out
}

func ScalarNeg(a Scalar) Scalar {
	var out Scalar
	out.v.Negate(&a.v)
	return out
}

func ScalarInv(a Scalar) (Scalar, error) {
	if a.IsZero() {
		return Scalar{}, fmt.Errorf("scalar: inverse of zero")
	}
	var out Scalar
	out.v.Invert(&a.v)
	return out, nil
}

var hashToScalarPrefix = []byte("ocp/v1/hash-to-scalar|")

// writeLengthPrefixed feeds a SHA-512 hasher a 4-byte little-endian length
// followed by the bytes themselves, so concatenation of variable-length
// fields can't be reinterpreted across a field boundary.
func writeLengthPrefixed(h interface{ Write([]byte) (int, error) }, b []byte) {
	var lenBuf [4]byte
	binary.LittleEndian.PutUint32(lenBuf[:], uint32(len(b)))
	h.Write(lenBuf[:])
	h.Write(b)
}

// HashToScalar derives a uniform scalar from a domain separator and a list
// of message fields, each length-prefixed so the mapping is injective over
// the tuple (domainSep, msgs...).
func HashToScalar(domainSep string, msgs ...[]byte) (Scalar, error) {
	h := sha512.New()
	h.Write(hashToScalarPrefix)
	writeLengthPrefixed(h, []byte(domainSep))
	for _, m := range msgs {
		if m == nil {
			return Scalar{}, fmt.Errorf("hashToScalar: nil msg")
		}
		writeLengthPrefixed(h, m)
	}
	return scalarFromUniformBytes(h.Sum(nil))
}
