package equihash

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestXorRowsCanonicalOrder(t *testing.T) {
	a := stepRow{hash: []byte{0x01, 0x02}, indices: []uint32{2}}
	b := stepRow{hash: []byte{0x03, 0x05}, indices: []uint32{1}}

	res := xorRows(&a, &b)
	require.Equal(t, []byte{0x02, 0x07}, res.hash)
	require.Equal(t, []uint32{1, 2}, res.indices)

	// Commutative up to the canonical re-ordering of halves.
	require.Equal(t, res, xorRows(&b, &a))
}

func TestXorRowsTruncated(t *testing.T) {
	a := stepRow{hash: []byte{0x0f}, indices: []uint32{300}, trunc: []uint8{150}}
	b := stepRow{hash: []byte{0xf0}, indices: []uint32{40}, trunc: []uint8{20}}

	res := xorRows(&a, &b)
	require.Equal(t, []byte{0xff}, res.hash)
	require.Equal(t, []uint8{20, 150}, res.trunc)
	require.Equal(t, []uint32{40, 300}, res.indices)
}

func TestXorRowsContractViolations(t *testing.T) {
	a := stepRow{hash: []byte{0x01, 0x02}, indices: []uint32{0}}
	shortHash := stepRow{hash: []byte{0x01}, indices: []uint32{1}}
	wideIndices := stepRow{hash: []byte{0x01, 0x02}, indices: []uint32{1, 2}}

	require.Panics(t, func() { xorRows(&a, &shortHash) })
	require.Panics(t, func() { xorRows(&a, &wideIndices) })
}

func TestTrimHash(t *testing.T) {
	r := stepRow{hash: []byte{0xaa, 0xbb, 0xcc}, indices: []uint32{0}}
	r.trimHash(1)
	require.Equal(t, []byte{0xbb, 0xcc}, r.hash)
	r.trimHash(2)
	require.Empty(t, r.hash)
}

func TestIsZero(t *testing.T) {
	a := stepRow{hash: []byte{0x01, 0x02}, indices: []uint32{1}}
	require.False(t, a.isZero())

	// A row XORed with an identically hashed row collapses to zero.
	b := stepRow{hash: []byte{0x01, 0x02}, indices: []uint32{2}}
	xored := xorRows(&a, &b)
	require.True(t, xored.isZero())
	zero := stepRow{hash: []byte{0, 0}}
	require.True(t, zero.isZero())
}

func TestHasCollision(t *testing.T) {
	a := stepRow{hash: []byte{0xaa, 0x01}}
	b := stepRow{hash: []byte{0xaa, 0x02}}
	require.True(t, hasCollision(&a, &b, 1))
	require.False(t, hasCollision(&a, &b, 2))
}

func TestIndicesBefore(t *testing.T) {
	a := stepRow{indices: []uint32{3, 9}}
	b := stepRow{indices: []uint32{5, 1}}
	require.True(t, a.indicesBefore(&b))
	require.False(t, b.indicesBefore(&a))
}

func TestDistinctIndices(t *testing.T) {
	a := stepRow{indices: []uint32{1, 7, 3}}
	b := stepRow{indices: []uint32{2, 8, 4}}
	c := stepRow{indices: []uint32{9, 7, 5}}
	require.True(t, distinctIndices(&a, &b))
	require.False(t, distinctIndices(&a, &c))

	// Truncated rows compare their 8-bit working indices: distinct full
	// indices sharing a truncation are not considered disjoint.
	d := stepRow{indices: []uint32{300}, trunc: []uint8{150}}
	e := stepRow{indices: []uint32{301}, trunc: []uint8{150}}
	f := stepRow{indices: []uint32{40}, trunc: []uint8{20}}
	require.False(t, distinctIndices(&d, &e))
	require.True(t, distinctIndices(&d, &f))
}
