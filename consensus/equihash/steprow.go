package equihash

import (
	"bytes"
	"cmp"
	"encoding/hex"
	"slices"
	"sort"
)

// stepRow is one entry of the collision engine's work lists: the current
// (post-trim) hash prefix plus the leaf indices of the subtree it represents,
// in canonical order. Basic rows carry full 32-bit indices. Truncated rows
// additionally carry the top 8 bits of each index in trunc; the full indices
// are retained for diagnostics only.
type stepRow struct {
	hash    []byte
	indices []uint32
	trunc   []uint8
}

func newBasicRow(state *HashState, i uint32) stepRow {
	return stepRow{hash: state.hashLeaf(i), indices: []uint32{i}}
}

// newTruncatedRow keeps the top 8 bits of i as the working index; ilen is the
// bit width of the full index space.
func newTruncatedRow(state *HashState, i uint32, ilen uint32) stepRow {
	return stepRow{
		hash:    state.hashLeaf(i),
		indices: []uint32{i},
		trunc:   []uint8{uint8(i >> (ilen - 8))},
	}
}

// trimHash drops the first l bytes of the hash prefix.
func (r *stepRow) trimHash(l int) {
	r.hash = r.hash[l:]
}

func (r *stepRow) isZero() bool {
	for _, b := range r.hash {
		if b != 0 {
			return false
		}
	}
	return true
}

func (r *stepRow) hex() string {
	return hex.EncodeToString(r.hash)
}

// hasCollision reports whether the first l bytes of the two hash prefixes
// are equal.
func hasCollision(a, b *stepRow, l int) bool {
	return bytes.Equal(a.hash[:l], b.hash[:l])
}

// firstIndex is the row's leftmost working index: the truncated index in the
// truncated pass, the full index otherwise.
func (r *stepRow) firstIndex() uint32 {
	if r.trunc != nil {
		return uint32(r.trunc[0])
	}
	return r.indices[0]
}

// indicesBefore reports whether r's leftmost index precedes a's.
func (r *stepRow) indicesBefore(a *stepRow) bool {
	return r.firstIndex() < a.firstIndex()
}

// distinctIndices reports whether the two rows' working index multisets are
// disjoint.
func distinctIndices(a, b *stepRow) bool {
	if a.trunc != nil && b.trunc != nil {
		return disjoint(a.trunc, b.trunc)
	}
	return disjoint(a.indices, b.indices)
}

// concat returns a new slice containing the elements of s1 followed by s2.
func concat[T any](s1, s2 []T) []T {
	res := make([]T, 0, len(s1)+len(s2))
	res = append(res, s1...)
	res = append(res, s2...)
	return res
}

// disjoint sorts copies of the two equal-length multisets and walks them in
// a single linear merge.
func disjoint[T cmp.Ordered](a, b []T) bool {
	aSrt := slices.Clone(a)
	bSrt := slices.Clone(b)
	slices.Sort(aSrt)
	slices.Sort(bSrt)

	i := 0
	for j := 0; j < len(bSrt); j++ {
		for aSrt[i] < bSrt[j] {
			i++
			if i == len(aSrt) {
				return true
			}
		}
		if aSrt[i] == bSrt[j] {
			return false
		}
	}
	return true
}

// xorRows merges two colliding rows: the hash is the byte-wise XOR, and the
// half whose leftmost index is smaller becomes the left child. Merging rows
// of unequal shape is a contract violation.
func xorRows(a, b *stepRow) stepRow {
	if len(a.hash) != len(b.hash) {
		panic("equihash: hash length differs")
	}
	if len(a.indices) != len(b.indices) {
		panic("equihash: number of indices differs")
	}
	left, right := a, b
	if !a.indicesBefore(b) {
		left, right = b, a
	}
	hash := make([]byte, len(a.hash))
	for i := range hash {
		hash[i] = a.hash[i] ^ b.hash[i]
	}
	res := stepRow{hash: hash, indices: concat(left.indices, right.indices)}
	if a.trunc != nil {
		res.trunc = concat(left.trunc, right.trunc)
	}
	return res
}

// sortRows orders rows by ascending hash prefix.
func sortRows(rows []stepRow) {
	sort.Slice(rows, func(i, j int) bool {
		return bytes.Compare(rows[i].hash, rows[j].hash) < 0
	})
}
