package keeper

import (
	"bytes"
	"context"
	"crypto/ed25519"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"

	sdkmath "cosmossdk.io/math"

	"onchainpoker-chain/internal/ocpcrypto"
	"onchainpoker-chain/internal/ocpshuffle"
	dealercommittee "onchainpoker-chain/x/dealer/committee"
	"onchainpoker-chain/x/dealer/types"
	pokertypes "onchainpoker-chain/x/poker/types"
)

const (
	handDeriveDomain = "ocp/v1/dealer/hand-derive"
	deckInitDomain   = "ocp/v1/dealer/deck-init"

	dkgTranscriptDomain = "ocp/v1/dkg/transcript"

	dkgShareMsgMagicV1  = "OCP1"
	dkgShareMsgDomainV1 = "ocp/dkg/sharemsg/v1"
)

const (
	// v0 localnet defaults (measured in blocks).
	dkgCommitBlocksDefault    uint64 = 5
	dkgComplaintBlocksDefault uint64 = 5
	dkgRevealBlocksDefault    uint64 = 5
	dkgFinalizeBlocksDefault  uint64 = 5
)

// ---------------------------------------------------------------------
// Scalars, points, and the card <-> group-element mapping.
// ---------------------------------------------------------------------

func bpsToFraction(bps uint32) sdkmath.LegacyDec {
	return sdkmath.LegacyNewDec(int64(bps)).QuoInt64(10000)
}

func encodeU64LE(x uint64) []byte {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint64(b, x)
	return b
}

func encodeU16LE(x uint16) []byte {
	b := make([]byte, 2)
	binary.LittleEndian.PutUint16(b, x)
	return b
}

// scalarForHand derives the per-hand re-randomization scalar from the
// (epoch, table, hand) triple so every committee member can independently
// reproduce it without coordination.
func scalarForHand(epochID, tableID, handID uint64) (ocpcrypto.Scalar, error) {
	return ocpcrypto.HashToScalar(handDeriveDomain, encodeU64LE(epochID), encodeU64LE(tableID), encodeU64LE(handID))
}

// nonZeroScalarFromHash hashes msgs under domain, retrying with an
// incrementing counter suffix in the vanishingly unlikely event the result
// lands on the zero scalar.
func nonZeroScalarFromHash(domain string, msgs ...[]byte) (ocpcrypto.Scalar, error) {
	for counter := uint32(0); counter < 256; counter++ {
		all := msgs
		if counter > 0 {
			all = append(append([][]byte(nil), msgs...), []byte{byte(counter)})
		}
		s, err := ocpcrypto.HashToScalar(domain, all...)
		if err != nil {
			return ocpcrypto.Scalar{}, err
		}
		if !s.IsZero() {
			return s, nil
		}
	}
	return ocpcrypto.Scalar{}, fmt.Errorf("nonZeroScalarFromHash: failed to find non-zero scalar")
}

// pointForCard maps a 0..51 card id to a deterministic, collision-free
// group element: M_c = (c+1)*G.
func pointForCard(cardID int) ocpcrypto.Point {
	return ocpcrypto.MulBase(ocpcrypto.ScalarFromUint64(uint64(cardID + 1)))
}

// cardIDForPoint inverts pointForCard by brute-force search over the active
// deck size; the deck is small enough that a linear scan is cheap.
func cardIDForPoint(p ocpcrypto.Point, deckSize int) (uint32, error) {
	if deckSize <= 0 || deckSize > 52 {
		deckSize = 52
	}
	for c := 0; c < deckSize; c++ {
		if ocpcrypto.PointEq(p, pointForCard(c)) {
			return uint32(c), nil
		}
	}
	return 0, fmt.Errorf("plaintext does not map to a known card id")
}

// ---------------------------------------------------------------------
// DKG share envelope (wire format for the out-of-band scalar share sent
// dealer -> recipient, bundled with an ed25519 signature over its body).
// ---------------------------------------------------------------------

type dkgShareEnvelope struct {
	EpochID uint64
	Dealer  string
	To      string
	Share   []byte // 32 bytes scalar
	Sig     []byte // 64 bytes ed25519 signature
	Body    []byte // signed payload prefix (everything up to, but excluding, Sig)
}

// decodeShareEnvelope parses:
//
//	magic(4) || epochId(8 LE) || dealerLen(2 LE) || dealer || toLen(2 LE) || to || share(32) || sig(64)
func decodeShareEnvelope(b []byte) (*dkgShareEnvelope, error) {
	const fixedMin = 4 + 8 + 2 + 2 + 32 + 64
	if len(b) < fixedMin {
		return nil, fmt.Errorf("shareMsg too short")
	}
	if string(b[:4]) != dkgShareMsgMagicV1 {
		return nil, fmt.Errorf("shareMsg bad magic")
	}
	off := 4
	epochID := binary.LittleEndian.Uint64(b[off : off+8])
	off += 8

	dealerLen := int(binary.LittleEndian.Uint16(b[off : off+2]))
	off += 2
	if dealerLen <= 0 || off+dealerLen+2 > len(b) {
		return nil, fmt.Errorf("shareMsg bad dealer length")
	}
	dealer := string(b[off : off+dealerLen])
	off += dealerLen

	toLen := int(binary.LittleEndian.Uint16(b[off : off+2]))
	off += 2
	if toLen <= 0 || off+toLen+32+64 > len(b) {
		return nil, fmt.Errorf("shareMsg bad to length")
	}
	to := string(b[off : off+toLen])
	off += toLen

	share := append([]byte(nil), b[off:off+32]...)
	off += 32
	sig := append([]byte(nil), b[off:off+64]...)
	off += 64

	if off != len(b) {
		return nil, fmt.Errorf("shareMsg trailing bytes")
	}

	return &dkgShareEnvelope{
		EpochID: epochID,
		Dealer:  dealer,
		To:      to,
		Share:   share,
		Sig:     sig,
		Body:    append([]byte(nil), b[:len(b)-64]...),
	}, nil
}

// verifyShareEnvelopeSig checks the dealer's ed25519 consensus key signed
// the envelope body under the share-message domain separator.
func verifyShareEnvelopeSig(consPubkey []byte, env *dkgShareEnvelope) bool {
	if len(consPubkey) != ed25519.PublicKeySize || env == nil {
		return false
	}
	signed := append(append([]byte(dkgShareMsgDomainV1), 0), env.Body...)
	return ed25519.Verify(ed25519.PublicKey(consPubkey), signed, env.Sig)
}

// ---------------------------------------------------------------------
// Feldman VSS: commitment evaluation and share verification.
// ---------------------------------------------------------------------

// evalFeldmanCommitment evaluates the degree-(t-1) commitment polynomial
// C_0, C_1, ..., C_{t-1} at x, i.e. sum_i C_i * x^i, in the exponent.
func evalFeldmanCommitment(commitments [][]byte, x uint32) (ocpcrypto.Point, error) {
	xs := ocpcrypto.ScalarFromUint64(uint64(x))
	pow := ocpcrypto.ScalarFromUint64(1)
	acc := ocpcrypto.PointZero()
	for i, cBytes := range commitments {
		c, err := ocpcrypto.PointFromBytesCanonical(cBytes)
		if err != nil {
			return ocpcrypto.PointZero(), fmt.Errorf("commitment[%d] invalid: %w", i, err)
		}
		acc = ocpcrypto.PointAdd(acc, ocpcrypto.MulPoint(c, pow))
		pow = ocpcrypto.ScalarMul(pow, xs)
	}
	return acc, nil
}

// verifyFeldmanShare checks g^share == eval(commitments, toIndex).
func verifyFeldmanShare(commitments [][]byte, toIndex uint32, shareBytes []byte) (bool, error) {
	if len(shareBytes) != ocpcrypto.ScalarBytes {
		return false, fmt.Errorf("share must be 32 bytes")
	}
	share, err := ocpcrypto.ScalarFromBytesCanonical(shareBytes)
	if err != nil {
		return false, err
	}
	left := ocpcrypto.MulBase(share)
	right, err := evalFeldmanCommitment(commitments, toIndex)
	if err != nil {
		return false, err
	}
	return ocpcrypto.PointEq(left, right), nil
}

// ---------------------------------------------------------------------
// Generic sorted-roster helpers, shared by both the in-progress DKG's
// member/slashed lists and the finalized epoch's member/slashed lists.
// ---------------------------------------------------------------------

func findMember(members []types.DealerMember, valoper string) *types.DealerMember {
	if valoper == "" {
		return nil
	}
	for i := range members {
		if members[i].Validator == valoper {
			return &members[i]
		}
	}
	return nil
}

func sortedListHas(list []string, v string) bool {
	if v == "" || len(list) == 0 {
		return false
	}
	i := sort.SearchStrings(list, v)
	return i < len(list) && list[i] == v
}

// sortedListInsert inserts v into the sorted list, preserving order.
// Returns false (no-op) if v is empty or already present.
func sortedListInsert(list *[]string, v string) bool {
	if v == "" || sortedListHas(*list, v) {
		return false
	}
	i := sort.SearchStrings(*list, v)
	*list = append(*list, "")
	copy((*list)[i+1:], (*list)[i:])
	(*list)[i] = v
	return true
}

func dkgMemberByValidator(dkg *types.DealerDKG, valoper string) *types.DealerMember {
	if dkg == nil {
		return nil
	}
	return findMember(dkg.Members, valoper)
}

func dkgCommitByDealer(dkg *types.DealerDKG, dealer string) *types.DealerDKGCommit {
	if dkg == nil || dealer == "" {
		return nil
	}
	for i := range dkg.Commits {
		if dkg.Commits[i].Dealer == dealer {
			return &dkg.Commits[i]
		}
	}
	return nil
}

func dkgComplaintFor(dkg *types.DealerDKG, complainer, dealer string) *types.DealerDKGComplaint {
	if dkg == nil || complainer == "" || dealer == "" {
		return nil
	}
	for i := range dkg.Complaints {
		c := &dkg.Complaints[i]
		if c.Complainer == complainer && c.Dealer == dealer {
			return c
		}
	}
	return nil
}

func dkgRevealFor(dkg *types.DealerDKG, dealer, to string) *types.DealerDKGShareReveal {
	if dkg == nil || dealer == "" || to == "" {
		return nil
	}
	for i := range dkg.Reveals {
		r := &dkg.Reveals[i]
		if r.Dealer == dealer && r.To == to {
			return r
		}
	}
	return nil
}

func dkgHasSlashed(dkg *types.DealerDKG, valoper string) bool {
	if dkg == nil {
		return false
	}
	return sortedListHas(dkg.Slashed, valoper)
}

func dkgRecordSlash(dkg *types.DealerDKG, valoper string) bool {
	if dkg == nil {
		return false
	}
	return sortedListInsert(&dkg.Slashed, valoper)
}

func epochMemberByValidator(epoch *types.DealerEpoch, valoper string) *types.DealerMember {
	if epoch == nil {
		return nil
	}
	return findMember(epoch.Members, valoper)
}

func epochHasSlashed(epoch *types.DealerEpoch, valoper string) bool {
	if epoch == nil {
		return false
	}
	return sortedListHas(epoch.Slashed, valoper)
}

func epochRecordSlash(epoch *types.DealerEpoch, valoper string) bool {
	if epoch == nil {
		return false
	}
	return sortedListInsert(&epoch.Slashed, valoper)
}

// epochQualifiedMembers returns the subset of the epoch roster that has not
// been slashed out of committee duty.
func epochQualifiedMembers(epoch *types.DealerEpoch) []types.DealerMember {
	if epoch == nil {
		return nil
	}
	out := make([]types.DealerMember, 0, len(epoch.Members))
	for _, m := range epoch.Members {
		if epochHasSlashed(epoch, m.Validator) {
			continue
		}
		out = append(out, m)
	}
	return out
}

// ---------------------------------------------------------------------
// DKG transcript root: a content hash of the full DKG record, used as an
// auditable commitment to exactly which commits/complaints/reveals/
// slashing decisions produced a given epoch key.
// ---------------------------------------------------------------------

func computeTranscriptRoot(dkg *types.DealerDKG) ([]byte, error) {
	if dkg == nil {
		return nil, fmt.Errorf("dkg is nil")
	}
	view := struct {
		EpochID           uint64                       `json:"epochId"`
		Threshold         uint32                       `json:"threshold"`
		Members           []types.DealerMember         `json:"members"`
		StartHeight       int64                        `json:"startHeight"`
		CommitDeadline    int64                        `json:"commitDeadline"`
		ComplaintDeadline int64                        `json:"complaintDeadline"`
		RevealDeadline    int64                        `json:"revealDeadline"`
		FinalizeDeadline  int64                        `json:"finalizeDeadline"`
		RandEpoch         []byte                       `json:"randEpoch,omitempty"`
		Commits           []types.DealerDKGCommit      `json:"commits,omitempty"`
		Complaints        []types.DealerDKGComplaint   `json:"complaints,omitempty"`
		Reveals           []types.DealerDKGShareReveal `json:"reveals,omitempty"`
		Slashed           []string                     `json:"slashed,omitempty"`
	}{
		EpochID:           dkg.EpochId,
		Threshold:         dkg.Threshold,
		Members:           dkg.Members,
		StartHeight:       dkg.StartHeight,
		CommitDeadline:    dkg.CommitDeadline,
		ComplaintDeadline: dkg.ComplaintDeadline,
		RevealDeadline:    dkg.RevealDeadline,
		FinalizeDeadline:  dkg.FinalizeDeadline,
		RandEpoch:         dkg.RandEpoch,
		Commits:           dkg.Commits,
		Complaints:        dkg.Complaints,
		Reveals:           dkg.Reveals,
		Slashed:           dkg.Slashed,
	}
	b, err := json.Marshal(view)
	if err != nil {
		return nil, err
	}
	sum := sha256.Sum256(append([]byte(dkgTranscriptDomain), b...))
	return sum[:], nil
}

// ---------------------------------------------------------------------
// Per-hand dealer-duty bookkeeping: timeout windows, deal order, and
// readiness checks over the poker table's hand state.
// ---------------------------------------------------------------------

func dealerRevealTimeoutSecs(t *pokertypes.Table) uint64 {
	if t == nil || t.Params.DealerTimeoutSecs == 0 {
		return 120
	}
	return t.Params.DealerTimeoutSecs
}

// holeCardDealOrder lists in-hand seats starting from the small blind,
// wrapping once around the table -- the order hole cards are dealt in.
func holeCardDealOrder(t *pokertypes.Table) []int {
	if t == nil || t.Hand == nil {
		return nil
	}
	h := t.Hand
	start := int(h.SmallBlindSeat)
	if start < 0 || start >= 9 {
		start = 0
	}
	var order []int
	cur := start
	for {
		if cur >= 0 && cur < len(h.InHand) && h.InHand[cur] {
			order = append(order, cur)
		}
		cur = (cur + 1) % 9
		if cur == start {
			break
		}
	}
	return order
}

// missingPubShareValidators lists the qualified committee members who have
// not yet submitted a public share for the given reveal position.
func missingPubShareValidators(epoch *types.DealerEpoch, dh *types.DealerHand, pos uint32) []string {
	if epoch == nil || dh == nil {
		return nil
	}
	have := map[string]bool{}
	for _, ps := range dh.PubShares {
		if ps.Pos == pos {
			have[ps.Validator] = true
		}
	}
	var missing []string
	for _, m := range epochQualifiedMembers(epoch) {
		if !have[m.Validator] {
			missing = append(missing, m.Validator)
		}
	}
	sort.Strings(missing)
	return missing
}

// requiredHolePositions lists every deck position that must receive an enc
// share: both hole cards of every seat still in the hand.
func requiredHolePositions(h *pokertypes.Hand) ([]uint32, error) {
	meta := h.Dealer
	if len(meta.HolePos) != 18 {
		return nil, fmt.Errorf("hole_pos not initialized")
	}
	required := make([]uint32, 0, 18)
	for seat := 0; seat < 9; seat++ {
		if seat >= len(h.InHand) || !h.InHand[seat] {
			continue
		}
		for c := 0; c < 2; c++ {
			pos := meta.HolePos[seat*2+c]
			if pos == 255 {
				return nil, fmt.Errorf("hole_pos unset for seat %d", seat)
			}
			required = append(required, pos)
		}
	}
	return required, nil
}

// missingHoleEncShareValidators lists the qualified committee members who
// have not yet submitted enc shares for every required hole position.
func missingHoleEncShareValidators(epoch *types.DealerEpoch, t *pokertypes.Table, dh *types.DealerHand) ([]string, error) {
	if epoch == nil || t == nil || t.Hand == nil || t.Hand.Dealer == nil || dh == nil {
		return nil, fmt.Errorf("missing dealer hand")
	}
	required, err := requiredHolePositions(t.Hand)
	if err != nil {
		return nil, err
	}

	have := map[string]map[uint32]bool{}
	for _, es := range dh.EncShares {
		m := have[es.Validator]
		if m == nil {
			m = map[uint32]bool{}
			have[es.Validator] = m
		}
		m[es.Pos] = true
	}

	var missing []string
	for _, m := range epochQualifiedMembers(epoch) {
		mm := have[m.Validator]
		ok := mm != nil
		if ok {
			for _, pos := range required {
				if !mm[pos] {
					ok = false
					break
				}
			}
		}
		if !ok {
			missing = append(missing, m.Validator)
		}
	}
	sort.Strings(missing)
	return missing, nil
}

// holeEncSharesComplete reports whether every in-hand seat's hole positions
// have at least a threshold count of enc shares targeted at that seat's pk.
func holeEncSharesComplete(epoch *types.DealerEpoch, t *pokertypes.Table, dh *types.DealerHand) (bool, error) {
	if epoch == nil || t == nil || t.Hand == nil || t.Hand.Dealer == nil || dh == nil {
		return false, nil
	}
	h := t.Hand
	meta := h.Dealer
	if !meta.DeckFinalized || len(meta.HolePos) != 18 {
		return false, nil
	}
	tNeed := int(epoch.Threshold)
	if tNeed <= 0 {
		return false, fmt.Errorf("invalid threshold")
	}

	for seat := 0; seat < 9; seat++ {
		if seat >= len(h.InHand) || !h.InHand[seat] {
			continue
		}
		s := t.Seats[seat]
		if s == nil || len(s.Pk) != ocpcrypto.PointBytes {
			return false, fmt.Errorf("seat %d missing pk", seat)
		}
		for c := 0; c < 2; c++ {
			pos := meta.HolePos[seat*2+c]
			if pos == 255 {
				return false, fmt.Errorf("hole_pos unset for seat %d", seat)
			}
			n := 0
			for _, es := range dh.EncShares {
				if es.Pos == pos && bytes.Equal(es.PkPlayer, s.Pk) {
					n++
				}
			}
			if n < tNeed {
				return false, nil
			}
		}
	}
	return true, nil
}

// seatForHolePos inverts the hole-position assignment: which in-hand seat
// owns deck position pos.
func seatForHolePos(meta *pokertypes.DealerMeta, h *pokertypes.Hand, pos uint32) (seat int, ok bool) {
	if meta == nil || h == nil || len(meta.HolePos) != 18 {
		return -1, false
	}
	for s := 0; s < 9; s++ {
		if s >= len(h.InHand) || !h.InHand[s] {
			continue
		}
		if meta.HolePos[s*2] == pos || meta.HolePos[s*2+1] == pos {
			return s, true
		}
	}
	return -1, false
}

// ---------------------------------------------------------------------
// Verifiable shuffle.
// ---------------------------------------------------------------------

// verifyShuffleProof checks a submitted re-encryption-shuffle proof against
// the incoming deck and, on success, returns the shuffled output deck and a
// hex digest of the raw proof bytes for event logging.
func verifyShuffleProof(pkHandBytes []byte, deckIn []types.DealerCiphertext, proofBytes []byte) ([]types.DealerCiphertext, string, error) {
	pkHand, err := ocpcrypto.PointFromBytesCanonical(pkHandBytes)
	if err != nil {
		return nil, "", fmt.Errorf("pkHand invalid: %w", err)
	}

	in := make([]ocpcrypto.ElGamalCiphertext, 0, len(deckIn))
	for _, c := range deckIn {
		c1, err := ocpcrypto.PointFromBytesCanonical(c.C1)
		if err != nil {
			return nil, "", fmt.Errorf("deck c1 invalid: %w", err)
		}
		c2, err := ocpcrypto.PointFromBytesCanonical(c.C2)
		if err != nil {
			return nil, "", fmt.Errorf("deck c2 invalid: %w", err)
		}
		in = append(in, ocpcrypto.ElGamalCiphertext{C1: c1, C2: c2})
	}

	vr := ocpshuffle.ShuffleVerifyV1(pkHand, in, proofBytes)
	if !vr.OK {
		return nil, "", fmt.Errorf("shuffle verify failed: %s", vr.Error)
	}

	out := make([]types.DealerCiphertext, 0, len(vr.DeckOut))
	for _, ct := range vr.DeckOut {
		out = append(out, types.DealerCiphertext{
			C1: append([]byte(nil), ct.C1.Bytes()...),
			C2: append([]byte(nil), ct.C2.Bytes()...),
		})
	}

	sum := sha256.Sum256(proofBytes)
	return out, hex.EncodeToString(sum[:]), nil
}

// ---------------------------------------------------------------------
// Committee sampling.
// ---------------------------------------------------------------------

// sampleCommitteeMembers draws a stake-weighted committee of size k for the
// given epoch, deriving the sampling seed from on-chain randomness (or a
// devnet fallback) bound to epochID.
func sampleCommitteeMembers(ctx context.Context, stakingKeeper dealercommittee.StakingKeeper, epochID uint64, randEpoch []byte, k int) ([]types.DealerMember, [32]byte, error) {
	re, err := dealercommittee.RandEpochOrDevnet(ctx, epochID, randEpoch)
	if err != nil {
		return nil, [32]byte{}, err
	}
	seed := dealercommittee.CommitteeSeed(re, epochID)
	snaps, err := dealercommittee.SampleBondedMemberSnapshotsByPower(ctx, stakingKeeper, seed, k)
	if err != nil {
		return nil, [32]byte{}, err
	}
	members, err := dealercommittee.DealerMembersFromSnapshots(snaps)
	if err != nil {
		return nil, [32]byte{}, err
	}
	return members, re, nil
}
