package equihash

import (
	"errors"
	"fmt"
)

// ErrMalformedSolution is returned by the minimal solution codec when the
// input has the wrong shape for the engine's parameters.
var ErrMalformedSolution = errors.New("malformed minimal solution")

// minimalLength is the byte size of the bit-packed encoding: 2^k indices of
// n/(k+1)+1 bits each.
func (equihash *Equihash) minimalLength() int {
	return int(equihash.SolutionWidth()) * int(equihash.CollisionBitLength()+1) / 8
}

// MinimalFromIndices packs a solution into its canonical wire form: each
// index written MSB-first in n/(k+1)+1 bits. The packing is rejected when the
// parameter set does not fill whole bytes.
func (equihash *Equihash) MinimalFromIndices(indices []uint32) ([]byte, error) {
	if uint32(len(indices)) != equihash.SolutionWidth() {
		return nil, fmt.Errorf("%w: want %d indices, have %d",
			ErrMalformedSolution, equihash.SolutionWidth(), len(indices))
	}
	bitLen := uint(equihash.CollisionBitLength() + 1)
	if (uint(len(indices))*bitLen)%8 != 0 {
		return nil, fmt.Errorf("%w: %d indices of %d bits are not byte aligned",
			ErrMalformedSolution, len(indices), bitLen)
	}

	out := make([]byte, 0, equihash.minimalLength())
	var acc uint64
	var accBits uint
	for _, index := range indices {
		if uint64(index) >= 1<<bitLen {
			return nil, fmt.Errorf("%w: index %d exceeds %d bits",
				ErrMalformedSolution, index, bitLen)
		}
		acc = acc<<bitLen | uint64(index)
		accBits += bitLen
		for accBits >= 8 {
			accBits -= 8
			out = append(out, byte(acc>>accBits))
		}
	}
	return out, nil
}

// IndicesFromMinimal unpacks a bit-packed solution back into its index
// sequence.
func (equihash *Equihash) IndicesFromMinimal(minimal []byte) ([]uint32, error) {
	bitLen := uint(equihash.CollisionBitLength() + 1)
	if (uint(equihash.SolutionWidth())*bitLen)%8 != 0 {
		return nil, fmt.Errorf("%w: %d indices of %d bits are not byte aligned",
			ErrMalformedSolution, equihash.SolutionWidth(), bitLen)
	}
	if len(minimal) != equihash.minimalLength() {
		return nil, fmt.Errorf("%w: want %d bytes, have %d",
			ErrMalformedSolution, equihash.minimalLength(), len(minimal))
	}

	indices := make([]uint32, 0, equihash.SolutionWidth())
	var acc uint64
	var accBits uint
	for _, b := range minimal {
		acc = acc<<8 | uint64(b)
		accBits += 8
		if accBits >= bitLen {
			accBits -= bitLen
			indices = append(indices, uint32((acc>>accBits)&(1<<bitLen-1)))
		}
	}
	return indices, nil
}
