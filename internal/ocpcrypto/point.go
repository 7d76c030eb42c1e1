package ocpcrypto

import (
	"fmt"

	"github.com/gtank/ristretto255"
)

// PointBytes is the canonical encoded size of a group element.
const PointBytes = 32

// Point wraps a ristretto255 group element. The zero value is not a valid
// point; always obtain one via PointZero, PointBase, or PointFromBytesCanonical.
type Point struct {
	el ristretto255.Element
}

// PointZero returns the group identity.
func PointZero() Point {
	var p Point
	p.el.Zero()
	return p
}

// PointBase returns the conventional ristretto255 base point G.
func PointBase() Point {
	var p Point
	p.el.Base()
	return p
}

// PointFromBytesCanonical decodes a 32-byte canonical encoding, rejecting
// any encoding that is not the unique canonical form for its point.
func PointFromBytesCanonical(b []byte) (Point, error) {
	if len(b) != PointBytes {
		return Point{}, fmt.Errorf("ocpcrypto: point must be %d bytes, got %d", PointBytes, len(b))
	}
	var p Point
	if _, err := p.el.SetCanonicalBytes(b); err != nil {
		return Point{}, fmt.Errorf("ocpcrypto: non-canonical point encoding: %w", err)
	}
	return p, nil
}

// Bytes returns the canonical 32-byte encoding of p.
func (p Point) Bytes() []byte {
	return p.el.Bytes()
}

// PointEq reports whether a and b encode the same group element.
func PointEq(a, b Point) bool {
	return a.el.Equal(&b.el) == 1
}

// PointAdd returns a+b in the ristretto255 group.
func PointAdd(a, b Point) Point {
	var sum Point
	sum.el.Add(&a.el, &b.el)
	return sum
}

// PointSub returns a-b in the ristretto255 group.
func PointSub(a, b Point) Point {
	var diff Point
	diff.el.Subtract(&a.el, &b.el)
	return diff
}

// MulBase returns k*G for the base point G.
func MulBase(k Scalar) Point {
	var out Point
	out.el.ScalarBaseMult(&k.v)
	return out
}

// MulPoint returns k*p.
func MulPoint(p Point, k Scalar) Point {
	var out Point
	out.el.ScalarMult(&k.v, &p.el)
	return out
}

// MulBaseAndAdd returns k*G + p, the shape every ElGamal re-encryption and
// Schnorr commitment in this package boils down to.
func MulBaseAndAdd(k Scalar, p Point) Point {
	return PointAdd(MulBase(k), p)
}
