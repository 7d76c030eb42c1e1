package ocpcrypto

import "fmt"

// ChaumPedersenProof proves, without revealing x, that the same scalar x
// satisfies both y = x*G and d = x*c1 for a caller-supplied c1. A dealer
// uses this to show a published decryption share is the honest product of
// its secret key share against the hand's ElGamal C1 component.
type ChaumPedersenProof struct {
	A Point  // w*G
	B Point  // w*c1
	S Scalar // w + e*x
}

const chaumPedersenDomain = "ocp/v1/chaum-pedersen-eqdl"

// ChaumPedersenProve builds a proof of equal discrete log for (y, d) = (x*G, x*c1),
// given a fresh random nonce w.
func ChaumPedersenProve(y, c1, d Point, x, w Scalar) (ChaumPedersenProof, error) {
	if w.IsZero() {
		return ChaumPedersenProof{}, fmt.Errorf("ocpcrypto: chaum-pedersen nonce must be non-zero")
	}

	a := MulBase(w)
	b := MulPoint(c1, w)

	e, err := chaumPedersenChallenge(y, c1, d, a, b)
	if err != nil {
		return ChaumPedersenProof{}, err
	}

	return ChaumPedersenProof{A: a, B: b, S: ScalarAdd(w, ScalarMul(e, x))}, nil
}

// ChaumPedersenVerify checks a proof against the claimed statement (y, c1, d).
func ChaumPedersenVerify(y, c1, d Point, proof ChaumPedersenProof) (bool, error) {
	e, err := chaumPedersenChallenge(y, c1, d, proof.A, proof.B)
	if err != nil {
		return false, err
	}

	sG := MulBase(proof.S)
	if !PointEq(sG, PointAdd(proof.A, MulPoint(y, e))) {
		return false, nil
	}
	sC1 := MulPoint(c1, proof.S)
	if !PointEq(sC1, PointAdd(proof.B, MulPoint(d, e))) {
		return false, nil
	}
	return true, nil
}

func chaumPedersenChallenge(y, c1, d, a, b Point) (Scalar, error) {
	tr := NewTranscript(chaumPedersenDomain)
	for _, step := range []struct {
		label string
		p     Point
	}{
		{"y", y}, {"c1", c1}, {"d", d}, {"a", a}, {"b", b},
	} {
		if err := tr.AppendMessage(step.label, step.p.Bytes()); err != nil {
			return Scalar{}, err
		}
	}
	return tr.ChallengeScalar("e")
}

// EncodeChaumPedersenProof packs a proof as A(32) || B(32) || S(32).
func EncodeChaumPedersenProof(p ChaumPedersenProof) []byte {
	return joinBytes(p.A.Bytes(), p.B.Bytes(), p.S.Bytes())
}

const chaumPedersenProofBytes = 3 * PointBytes

// DecodeChaumPedersenProof is the inverse of EncodeChaumPedersenProof.
func DecodeChaumPedersenProof(b []byte) (ChaumPedersenProof, error) {
	if len(b) != chaumPedersenProofBytes {
		return ChaumPedersenProof{}, fmt.Errorf("ocpcrypto: chaum-pedersen proof must be %d bytes, got %d", chaumPedersenProofBytes, len(b))
	}
	a, err := PointFromBytesCanonical(b[0:32])
	if err != nil {
		return ChaumPedersenProof{}, fmt.Errorf("ocpcrypto: chaum-pedersen A: %w", err)
	}
	bp, err := PointFromBytesCanonical(b[32:64])
	if err != nil {
		return ChaumPedersenProof{}, fmt.Errorf("ocpcrypto: chaum-pedersen B: %w", err)
	}
	s, err := ScalarFromBytesCanonical(b[64:96])
	if err != nil {
		return ChaumPedersenProof{}, fmt.Errorf("ocpcrypto: chaum-pedersen S: %w", err)
	}
	return ChaumPedersenProof{A: a, B: bp, S: s}, nil
}
