package equihash

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVerifyRejectsWrongLength(t *testing.T) {
	equihash := NewTester()
	state := equihash.InitialiseState(nil)

	require.False(t, equihash.Verify(state, nil))
	require.False(t, equihash.Verify(state, make([]uint32, 31)))
	require.False(t, equihash.Verify(state, make([]uint32, 64)))
}

func TestVerifyRejectsTamperedSolutions(t *testing.T) {
	equihash := NewTester()
	state, solns := solveUntilFound(t, equihash, 32)
	soln := solns[0]

	require.True(t, equihash.Verify(state, soln))

	// Swapping siblings breaks the canonical ordering.
	swapped := slices.Clone(soln)
	swapped[0], swapped[1] = swapped[1], swapped[0]
	require.False(t, equihash.Verify(state, swapped))

	// Swapping non-siblings breaks the collision schedule or the ordering.
	crossed := slices.Clone(soln)
	crossed[0], crossed[2] = crossed[2], crossed[0]
	require.False(t, equihash.Verify(state, crossed))

	// Duplicating a leaf index fails distinctness.
	duplicated := slices.Clone(soln)
	duplicated[1] = duplicated[0]
	require.False(t, equihash.Verify(state, duplicated))
}

func TestVerifyRejectsForeignState(t *testing.T) {
	equihash := NewTester()
	state, solns := solveUntilFound(t, equihash, 32)
	require.True(t, equihash.Verify(state, solns[0]))

	other := equihash.InitialiseState([]byte("some other header"))
	require.False(t, equihash.Verify(other, solns[0]))
}
