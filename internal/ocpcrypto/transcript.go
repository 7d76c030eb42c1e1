package ocpcrypto

import (
	"crypto/sha512"
	"fmt"
)

var transcriptDomainPrefix = []byte("OCPv1|transcript|")

// Transcript implements a Fiat-Shamir transcript: callers append labeled
// messages in a fixed order and then draw challenge scalars derived from
// everything appended so far. Go's sha512.Hash can't be cloned mid-write, so
// Transcript accumulates the raw byte history instead of live hash state and
// re-hashes it on each challenge draw.
type Transcript struct {
	history []byte
}

// NewTranscript starts a transcript bound to domainSep, keeping proofs for
// different statements (Chaum-Pedersen, EncShare, ...) from colliding even
// if their appended labels happen to match.
func NewTranscript(domainSep string) *Transcript {
	dst := []byte(domainSep)
	t := &Transcript{history: make([]byte, 0, len(transcriptDomainPrefix)+4+len(dst))}
	t.history = append(t.history, transcriptDomainPrefix...)
	t.history = append(t.history, le32(uint32(len(dst)))...)
	t.history = append(t.history, dst...)
	return t
}

// AppendMessage records a labeled field. Labels and lengths are both folded
// in so two different (label, msg) sequences never produce the same bytes.
func (t *Transcript) AppendMessage(label string, msg []byte) error {
	if t == nil {
		return fmt.Errorf("ocpcrypto: append to nil transcript")
	}
	if msg == nil {
		return fmt.Errorf("ocpcrypto: append nil message for label %q", label)
	}
	lb := []byte(label)
	t.history = append(t.history, []byte("msg")...)
	t.history = append(t.history, le32(uint32(len(lb)))...)
	t.history = append(t.history, lb...)
	t.history = append(t.history, le32(uint32(len(msg)))...)
	t.history = append(t.history, msg...)
	return nil
}

// ChallengeScalar draws a scalar bound to the transcript history so far and
// to label, without mutating the transcript (a transcript may be challenged
// more than once under different labels, e.g. for multi-round proofs).
func (t *Transcript) ChallengeScalar(label string) (Scalar, error) {
	if t == nil {
		return Scalar{}, fmt.Errorf("ocpcrypto: challenge from nil transcript")
	}
	lb := []byte(label)
	h := sha512.New()
	h.Write(t.history)
	h.Write([]byte("challenge"))
	h.Write(le32(uint32(len(lb))))
	h.Write(lb)
	return scalarFromUniformBytes(h.Sum(nil))
}
