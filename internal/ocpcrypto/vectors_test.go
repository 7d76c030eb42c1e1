package ocpcrypto

import (
	"bytes"
	"testing"
)

func TestHashToScalar_DeterministicAndDomainSeparated(t *testing.T) {
	a, err := HashToScalar("dealer/dkg/commit", []byte("msg1"))
	if err != nil {
		t.Fatalf("hash to scalar: %v", err)
	}
	b, err := HashToScalar("dealer/dkg/commit", []byte("msg1"))
	if err != nil {
		t.Fatalf("hash to scalar: %v", err)
	}
	if !bytes.Equal(a.Bytes(), b.Bytes()) {
		t.Fatalf("expected identical inputs to produce identical scalars")
	}

	c, err := HashToScalar("dealer/dkg/share", []byte("msg1"))
	if err != nil {
		t.Fatalf("hash to scalar: %v", err)
	}
	if bytes.Equal(a.Bytes(), c.Bytes()) {
		t.Fatalf("expected different domains to produce different scalars")
	}

	if _, err := HashToScalar("dealer/dkg/commit", nil); err == nil {
		t.Fatalf("expected error for nil message")
	}
}

func TestElGamal_EncryptDecryptRoundTrip(t *testing.T) {
	sk := ScalarFromUint64(42)
	pk := MulBase(sk)
	msg := MulBase(ScalarFromUint64(7))
	r := ScalarFromUint64(99)

	ct, err := ElGamalEncrypt(pk, msg, r)
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}
	got := ElGamalDecrypt(sk, ct)
	if !PointEq(got, msg) {
		t.Fatalf("decrypt mismatch")
	}

	if _, err := ElGamalEncrypt(pk, msg, ScalarZero()); err == nil {
		t.Fatalf("expected error for zero blinding scalar")
	}
}

func TestElGamal_ReRandomizePreservesMessage(t *testing.T) {
	sk := ScalarFromUint64(5)
	pk := MulBase(sk)
	msg := MulBase(ScalarFromUint64(3))
	ct, err := ElGamalEncrypt(pk, msg, ScalarFromUint64(11))
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}

	reenc := ElGamalReRandomize(pk, ct, ScalarFromUint64(17))
	if PointEq(reenc.C1, ct.C1) {
		t.Fatalf("expected re-randomization to change C1")
	}
	if !PointEq(ElGamalDecrypt(sk, reenc), msg) {
		t.Fatalf("re-randomized ciphertext decrypts to a different message")
	}
}

func TestChaumPedersenProof_RoundTripAndTamperFails(t *testing.T) {
	x := ScalarFromUint64(21)
	w := ScalarFromUint64(31)
	c1 := MulBase(ScalarFromUint64(123))

	y := MulBase(x)
	d := MulPoint(c1, x)

	proof, err := ChaumPedersenProve(y, c1, d, x, w)
	if err != nil {
		t.Fatalf("prove: %v", err)
	}
	ok, err := ChaumPedersenVerify(y, c1, d, proof)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if !ok {
		t.Fatalf("expected proof to verify")
	}

	enc := EncodeChaumPedersenProof(proof)
	dec, err := DecodeChaumPedersenProof(enc)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	ok, err = ChaumPedersenVerify(y, c1, d, dec)
	if err != nil {
		t.Fatalf("verify(decoded): %v", err)
	}
	if !ok {
		t.Fatalf("expected decoded proof to verify")
	}

	enc[0] ^= 0x01
	if tampered, err := DecodeChaumPedersenProof(enc); err == nil {
		ok, err := ChaumPedersenVerify(y, c1, d, tampered)
		if err != nil {
			t.Fatalf("verify(tampered): %v", err)
		}
		if ok {
			t.Fatalf("expected tampered proof to fail verification")
		}
	}

	if _, err := ChaumPedersenProve(y, c1, d, x, ScalarZero()); err == nil {
		t.Fatalf("expected error for zero nonce")
	}
}

func TestEncShareProof_RoundTripAndTamperFails(t *testing.T) {
	x := ScalarFromUint64(5)
	r := ScalarFromUint64(7)
	wx := ScalarFromUint64(11)
	wr := ScalarFromUint64(13)

	y := MulBase(x)
	c1 := MulBase(ScalarFromUint64(123))
	pkp := MulBase(ScalarFromUint64(9))
	u := MulBase(r)
	v := PointAdd(MulPoint(c1, x), MulPoint(pkp, r))

	p, err := EncShareProve(y, c1, pkp, u, v, x, r, wx, wr)
	if err != nil {
		t.Fatalf("prove: %v", err)
	}
	ok, err := EncShareVerify(y, c1, pkp, u, v, p)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if !ok {
		t.Fatalf("expected proof to verify")
	}

	enc := EncodeEncShareProof(p)
	dec, err := DecodeEncShareProof(enc)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	ok, err = EncShareVerify(y, c1, pkp, u, v, dec)
	if err != nil {
		t.Fatalf("verify(decoded): %v", err)
	}
	if !ok {
		t.Fatalf("expected decoded proof to verify")
	}

	enc[0] ^= 0x01
	if bad, err := DecodeEncShareProof(enc); err == nil {
		ok, err := EncShareVerify(y, c1, pkp, u, v, bad)
		if err != nil {
			t.Fatalf("verify(tampered): %v", err)
		}
		if ok {
			t.Fatalf("expected tampered proof to fail verification")
		}
	}
}

func TestLagrangeAtZero_ReconstructsConstantTerm(t *testing.T) {
	// f(x) = a0 + a1*x + a2*x^2 over the scalar field.
	a0 := ScalarFromUint64(12345)
	a1 := ScalarFromUint64(77)
	a2 := ScalarFromUint64(5)

	eval := func(x uint32) Scalar {
		xs := ScalarFromUint64(uint64(x))
		x2 := ScalarMul(xs, xs)
		return ScalarAdd(a0, ScalarAdd(ScalarMul(a1, xs), ScalarMul(a2, x2)))
	}

	idxs := []uint32{1, 2, 5}
	ls, err := LagrangeAtZero(idxs)
	if err != nil {
		t.Fatalf("lagrange: %v", err)
	}
	if len(ls) != len(idxs) {
		t.Fatalf("lambda len mismatch")
	}

	got := ScalarZero()
	for i, idx := range idxs {
		got = ScalarAdd(got, ScalarMul(ls[i], eval(idx)))
	}
	if !bytes.Equal(got.Bytes(), a0.Bytes()) {
		t.Fatalf("reconstruction mismatch: got=%s want=%s", bytesToHex(got.Bytes()), bytesToHex(a0.Bytes()))
	}
}

func TestLagrangeAtZero_RejectsZeroIndexAndDuplicates(t *testing.T) {
	if _, err := LagrangeAtZero([]uint32{0, 1}); err == nil {
		t.Fatalf("expected error for index 0")
	}
	if _, err := LagrangeAtZero([]uint32{3, 3}); err == nil {
		t.Fatalf("expected error for duplicate index")
	}
	if _, err := LagrangeAtZero(nil); err == nil {
		t.Fatalf("expected error for empty index set")
	}
}
