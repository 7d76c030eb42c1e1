package ocpcrypto

import (
	"encoding/binary"
	"encoding/hex"
)

// le32 encodes x as 4 little-endian bytes, the length-prefix width used
// throughout this package's transcripts and proof encodings.
func le32(x uint32) []byte {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, x)
	return b
}

// joinBytes concatenates chunks into one allocation sized to fit them all.
func joinBytes(chunks ...[]byte) []byte {
	total := 0
	for _, c := range chunks {
		total += len(c)
	}
	out := make([]byte, 0, total)
	for _, c := range chunks {
		out = append(out, c...)
	}
	return out
}

func bytesToHex(b []byte) string {
	return "0x" + hex.EncodeToString(b)
}
