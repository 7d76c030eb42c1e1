package ocpcrypto

import "fmt"

// EncShareProof is a Schnorr-style proof of knowledge for the statement:
//
//	Y  = x*G
//	U  = r*G
//	V  = x*C1 + r*PKP
//
// i.e. (U, V) is an ElGamal encryption under PKP of the decryption share
// x*C1, without revealing either x or the encryption randomness r. A dealer
// delivers one of these alongside every encrypted hole-card share so a
// player can trust the share without the dealer ever exposing its key.
type EncShareProof struct {
	A1 Point  // wx*G
	A2 Point  // wr*G
	A3 Point  // wx*C1 + wr*PKP
	SX Scalar // wx + e*x
	SR Scalar // wr + e*r
}

const encShareDomain = "ocp/v1/dealer/encshare"

// EncShareProve builds the proof given the witnesses (x, r) and two fresh
// nonces (wx, wr).
func EncShareProve(y, c1, pkp, u, v Point, x, r, wx, wr Scalar) (EncShareProof, error) {
	if wx.IsZero() || wr.IsZero() {
		return EncShareProof{}, fmt.Errorf("ocpcrypto: encshare nonces must be non-zero")
	}

	a1 := MulBase(wx)
	a2 := MulBase(wr)
	a3 := PointAdd(MulPoint(c1, wx), MulPoint(pkp, wr))

	e, err := encShareChallenge(y, c1, pkp, u, v, a1, a2, a3)
	if err != nil {
		return EncShareProof{}, err
	}

	return EncShareProof{
		A1: a1, A2: a2, A3: a3,
		SX: ScalarAdd(wx, ScalarMul(e, x)),
		SR: ScalarAdd(wr, ScalarMul(e, r)),
	}, nil
}

// EncShareVerify checks a proof against the claimed statement.
func EncShareVerify(y, c1, pkp, u, v Point, proof EncShareProof) (bool, error) {
	e, err := encShareChallenge(y, c1, pkp, u, v, proof.A1, proof.A2, proof.A3)
	if err != nil {
		return false, err
	}

	if !PointEq(MulBase(proof.SX), PointAdd(proof.A1, MulPoint(y, e))) {
		return false, nil
	}
	if !PointEq(MulBase(proof.SR), PointAdd(proof.A2, MulPoint(u, e))) {
		return false, nil
	}
	lhs := PointAdd(MulPoint(c1, proof.SX), MulPoint(pkp, proof.SR))
	if !PointEq(lhs, PointAdd(proof.A3, MulPoint(v, e))) {
		return false, nil
	}
	return true, nil
}

func encShareChallenge(y, c1, pkp, u, v, a1, a2, a3 Point) (Scalar, error) {
	tr := NewTranscript(encShareDomain)
	for _, step := range []struct {
		label string
		p     Point
	}{
		{"Y", y}, {"C1", c1}, {"PKP", pkp}, {"U", u}, {"V", v},
		{"A1", a1}, {"A2", a2}, {"A3", a3},
	} {
		if err := tr.AppendMessage(step.label, step.p.Bytes()); err != nil {
			return Scalar{}, err
		}
	}
	return tr.ChallengeScalar("e")
}

// EncodeEncShareProof packs a proof as A1||A2||A3||SX||SR (5*32 = 160 bytes).
func EncodeEncShareProof(p EncShareProof) []byte {
	return joinBytes(p.A1.Bytes(), p.A2.Bytes(), p.A3.Bytes(), p.SX.Bytes(), p.SR.Bytes())
}

const encShareProofBytes = 3*PointBytes + 2*ScalarBytes

// DecodeEncShareProof is the inverse of EncodeEncShareProof.
func DecodeEncShareProof(b []byte) (EncShareProof, error) {
	if len(b) != encShareProofBytes {
		return EncShareProof{}, fmt.Errorf("ocpcrypto: encshare proof must be %d bytes, got %d", encShareProofBytes, len(b))
	}
	a1, err := PointFromBytesCanonical(b[0:32])
	if err != nil {
		return EncShareProof{}, fmt.Errorf("ocpcrypto: encshare A1: %w", err)
	}
	a2, err := PointFromBytesCanonical(b[32:64])
	if err != nil {
		return EncShareProof{}, fmt.Errorf("ocpcrypto: encshare A2: %w", err)
	}
	a3, err := PointFromBytesCanonical(b[64:96])
	if err != nil {
		return EncShareProof{}, fmt.Errorf("ocpcrypto: encshare A3: %w", err)
	}
	sx, err := ScalarFromBytesCanonical(b[96:128])
	if err != nil {
		return EncShareProof{}, fmt.Errorf("ocpcrypto: encshare SX: %w", err)
	}
	sr, err := ScalarFromBytesCanonical(b[128:160])
	if err != nil {
		return EncShareProof{}, fmt.Errorf("ocpcrypto: encshare SR: %w", err)
	}
	return EncShareProof{A1: a1, A2: a2, A3: a3, SX: sx, SR: sr}, nil
}
