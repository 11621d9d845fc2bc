package gohx

import (
	"bytes"
	"strings"
)

// Signature is a canonical, relabeling-invariant encoding of a motif class.
//
// Layout: the first byte is the motif order k (3 or 4); every following byte
// encodes one induced hyperedge as (sourceMask << 4) | targetMask, where each
// mask has one bit per canonical node position 0..k-1. Edge bytes are sorted
// ascending and the whole encoding is the lexicographic minimum over all k!
// node relabelings, so structural (bytes) equality is class equality.
//
// Duplicate hyperedges stay distinct bytes: an induced edge set is a multiset.
type Signature []byte

// Order returns the motif order this signature encodes, or 0 if empty.
func (sig Signature) Order() int {
	if len(sig) == 0 {
		return 0
	}
	return int(sig[0])
}

// NumEdges returns the number of induced hyperedges in the pattern.
func (sig Signature) NumEdges() int {
	if len(sig) == 0 {
		return 0
	}
	return len(sig) - 1
}

func (sig Signature) Clone() Signature {
	return append(Signature{}, sig...)
}

func (sig Signature) IsEqual(other Signature) bool {
	return bytes.Equal(sig, other)
}

// Compare orders signatures lexicographically; order byte first, so all
// order-3 classes sort before order-4 classes.
func (sig Signature) Compare(other Signature) int {
	return bytes.Compare(sig, other)
}

// Key returns sig as a map key with structural equality.
func (sig Signature) Key() string {
	return string(sig)
}

// AppendLSM appends the catalog key form of sig to out: the signature bytes
// followed by a double NUL suffix terminating the entry.
func (sig Signature) AppendLSM(out []byte) []byte {
	out = append(out, sig...)
	return append(out, 0, 0)
}

// SigFromLSM recovers a Signature from a catalog key made by AppendLSM.
func SigFromLSM(key []byte) (Signature, error) {
	n := len(key)
	if n < 3 || key[n-2] != 0 || key[n-1] != 0 {
		return nil, ErrBadSignature
	}
	return Signature(key[:n-2]).Clone(), nil
}

// String renders the pattern in hyperedge expression form over canonical
// node positions, e.g. "0,1>2; 1>2,3". The rendering round-trips through the
// libhx expression grammar.
func (sig Signature) String() string {
	if len(sig) == 0 {
		return ""
	}
	k := int(sig[0])
	b := strings.Builder{}
	b.Grow(8 * len(sig))

	for ei, edge := range sig[1:] {
		if ei > 0 {
			b.WriteString("; ")
		}
		writeMask(&b, byte(edge>>4), k)
		b.WriteByte('>')
		writeMask(&b, byte(edge&0xF), k)
	}
	return b.String()
}

func writeMask(b *strings.Builder, mask byte, k int) {
	first := true
	for pos := 0; pos < k; pos++ {
		if mask&(1<<pos) == 0 {
			continue
		}
		if !first {
			b.WriteByte(',')
		}
		b.WriteByte('0' + byte(pos))
		first = false
	}
}
