package ocpcrypto

import "fmt"

// ElGamalCiphertext is an exponential ElGamal ciphertext over the
// ristretto255 group: a message point m encrypted under public key pk as
// (r*G, m+r*pk). Recovering m from a ciphertext requires solving a discrete
// log, which is why every message this package encrypts is one of the 52
// fixed card-point markers rather than an arbitrary point.
type ElGamalCiphertext struct {
	C1 Point
	C2 Point
}

// ElGamalEncrypt produces a fresh encryption of m under pk using blinding
// scalar r. r must be caller-supplied and secret so re-encryption during a
// shuffle can reuse this same construction with an attacker-unpredictable r.
func ElGamalEncrypt(pk, m Point, r Scalar) (ElGamalCiphertext, error) {
	if r.IsZero() {
		return ElGamalCiphertext{}, fmt.Errorf("ocpcrypto: elgamal blinding scalar must be non-zero")
	}
	return ElGamalCiphertext{
		C1: MulBase(r),
		C2: PointAdd(m, MulPoint(pk, r)),
	}, nil
}

// ElGamalDecrypt recovers the message point from a ciphertext given the
// matching secret key: m = C2 - sk*C1.
func ElGamalDecrypt(sk Scalar, ct ElGamalCiphertext) Point {
	return PointSub(ct.C2, MulPoint(ct.C1, sk))
}

// ElGamalReRandomize blinds ct by an additional factor delta without
// changing the message it encrypts: (C1+delta*G, C2+delta*pk). This is the
// move a shuffle performs on every card at every layer of its network.
func ElGamalReRandomize(pk Point, ct ElGamalCiphertext, delta Scalar) ElGamalCiphertext {
	return ElGamalCiphertext{
		C1: PointAdd(ct.C1, MulBase(delta)),
		C2: PointAdd(ct.C2, MulPoint(pk, delta)),
	}
}
