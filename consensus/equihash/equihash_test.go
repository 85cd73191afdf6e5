package equihash

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zcash-collective/go-equihash/log"
)

func newTestEngine(t *testing.T, n, k uint32) *Equihash {
	t.Helper()
	equihash, err := New(Config{N: n, K: k, PowMode: ModeTest, Log: log.New(log.WithNullLogger())})
	require.NoError(t, err)
	return equihash
}

func TestValidateParams(t *testing.T) {
	for _, tt := range []struct {
		n, k uint32
		ok   bool
	}{
		{96, 5, true},
		{48, 5, true},
		{144, 5, true},
		{5, 96, false},  // k >= n
		{100, 4, false}, // n != 0 mod 8
		{96, 7, false},  // n/(k+1) = 12, not a multiple of 8
		{200, 9, false}, // n/(k+1) = 20, not a multiple of 8
		{64, 1, false},  // n/(k+1)+1 = 33 overflows the 32-bit index width
	} {
		_, err := New(Config{N: tt.n, K: tt.k, Log: log.New(log.WithNullLogger())})
		if tt.ok {
			require.NoError(t, err, "n=%d k=%d", tt.n, tt.k)
		} else {
			require.ErrorIs(t, err, ErrInvalidParams, "n=%d k=%d", tt.n, tt.k)
		}
	}
}

func TestPersonalisationBytes(t *testing.T) {
	want := []byte{
		0x5a, 0x63, 0x61, 0x73, 0x68, 0x50, 0x4f, 0x57, // "ZcashPOW"
		0x60, 0x00, 0x00, 0x00, // le32(96)
		0x05, 0x00, 0x00, 0x00, // le32(5)
	}
	require.Equal(t, want, personal(96, 5))
}

func TestLeafDeterminism(t *testing.T) {
	equihash := newTestEngine(t, 96, 5)
	state := equihash.InitialiseState(nil)

	leaf0 := state.hashLeaf(0)
	require.Len(t, leaf0, 12)
	require.Equal(t, leaf0, state.hashLeaf(0))
	require.NotEqual(t, leaf0, state.hashLeaf(1))

	// Two engines with identical parameters and pre-images agree.
	other := newTestEngine(t, 96, 5).InitialiseState(nil)
	require.Equal(t, leaf0, other.hashLeaf(0))
	require.Equal(t, state.hashLeaf(7), other.hashLeaf(7))
}

func TestDerivedQuantities(t *testing.T) {
	equihash := newTestEngine(t, 96, 5)
	require.Equal(t, uint32(16), equihash.CollisionBitLength())
	require.Equal(t, uint32(2), equihash.CollisionByteLength())
	require.Equal(t, uint32(32), equihash.SolutionWidth())
	require.Equal(t, uint32(1)<<17, equihash.initialListSize())
}

func TestFakeModes(t *testing.T) {
	tester := NewTester()
	require.Equal(t, uint32(8), tester.CollisionBitLength())

	faker := NewFaker()
	state := faker.InitialiseState(nil)
	require.True(t, faker.Verify(state, make([]uint32, 32)))
	require.False(t, faker.Verify(state, make([]uint32, 31)))

	fullFaker := NewFullFaker()
	require.True(t, fullFaker.Verify(fullFaker.InitialiseState(nil), nil))
}
