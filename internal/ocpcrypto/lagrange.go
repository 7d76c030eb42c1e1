package ocpcrypto

import "fmt"

// LagrangeAtZero computes, for each index in indices, the Lagrange basis
// coefficient λ_i such that Σ λ_i * f(x_i) = f(0) for any polynomial f of
// degree < len(indices) sampled at the distinct non-zero points x_i.
//
//	λ_i = Π_{j≠i} (0 - x_j) / (x_i - x_j)
//
// This is how a dealer committee recovers a secret (or a per-card decryption
// share) from any qualifying subset of per-member shares without ever
// reconstructing the underlying polynomial.
func LagrangeAtZero(indices []uint32) ([]Scalar, error) {
	if err := checkDistinctNonZero(indices); err != nil {
		return nil, err
	}

	coeffs := make([]Scalar, len(indices))
	for i, xi := range indices {
		c, err := lagrangeCoefficient(xi, indices)
		if err != nil {
			return nil, err
		}
		coeffs[i] = c
	}
	return coeffs, nil
}

func checkDistinctNonZero(indices []uint32) error {
	if len(indices) == 0 {
		return fmt.Errorf("ocpcrypto: lagrange requires at least one index")
	}
	seen := make(map[uint32]struct{}, len(indices))
	for _, idx := range indices {
		if idx == 0 {
			return fmt.Errorf("ocpcrypto: lagrange index 0 is reserved for the evaluation point")
		}
		if _, dup := seen[idx]; dup {
			return fmt.Errorf("ocpcrypto: duplicate lagrange index %d", idx)
		}
		seen[idx] = struct{}{}
	}
	return nil
}

// lagrangeCoefficient folds the numerator and denominator products for the
// basis coefficient of xi over the full index set, then divides.
func lagrangeCoefficient(xi uint32, indices []uint32) (Scalar, error) {
	xiS := ScalarFromUint64(uint64(xi))
	num := ScalarFromUint64(1)
	den := ScalarFromUint64(1)
	for _, xj := range indices {
		if xj == xi {
			continue
		}
		xjS := ScalarFromUint64(uint64(xj))
		num = ScalarMul(num, ScalarNeg(xjS))
		den = ScalarMul(den, ScalarSub(xiS, xjS))
	}
	denInv, err := ScalarInv(den)
	if err != nil {
		return Scalar{}, err
	}
	return ScalarMul(num, denInv), nil
}
