package ocpshuffle

import "onchainpoker-chain/internal/ocpcrypto"

// elgamalReencrypt re-randomizes ct under pk by rho without changing the
// message it encrypts. Every switch gate and every output-layer finalization
// in the shuffle network routes through this one call.
func elgamalReencrypt(pk ocpcrypto.Point, ct ocpcrypto.ElGamalCiphertext, rho ocpcrypto.Scalar) ocpcrypto.ElGamalCiphertext {
	return ocpcrypto.ElGamalReRandomize(pk, ct, rho)
}
