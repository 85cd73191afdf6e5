package equihash

import (
	"github.com/zcash-collective/go-equihash/log"
)

// Verify reports whether soln is a valid solution for the given hash state:
// the balanced binary tree over its leaves must collapse under XOR-merge to
// an all-zero root, with every sibling pair colliding on the collision width,
// canonically ordered, and index-disjoint. Structural defects surface as a
// plain false; they are not errors.
func (equihash *Equihash) Verify(state *HashState, soln []uint32) bool {
	if equihash.config.PowMode == ModeFullFake {
		return true
	}
	logger := equihash.config.Log

	if uint32(len(soln)) != equihash.SolutionWidth() {
		logger.WithField("size", len(soln)).Debug("Invalid solution size")
		return false
	}
	if equihash.config.PowMode == ModeFake {
		return true
	}

	collByteLen := int(equihash.CollisionByteLength())
	X := make([]stepRow, 0, len(soln))
	for _, i := range soln {
		X = append(X, newBasicRow(state, i))
	}

	for len(X) > 1 {
		Xc := make([]stepRow, 0, len(X)/2)
		for i := 0; i+1 < len(X); i += 2 {
			a, b := &X[i], &X[i+1]
			if !hasCollision(a, b, collByteLen) {
				logger.WithFields(log.Fields{
					"left":  a.hex(),
					"right": b.hex(),
				}).Debug("Invalid solution: invalid collision length between rows")
				return false
			}
			if b.indicesBefore(a) {
				logger.Debug("Invalid solution: index tree incorrectly ordered")
				return false
			}
			if !distinctIndices(a, b) {
				logger.Debug("Invalid solution: duplicate indices")
				return false
			}
			res := xorRows(a, b)
			res.trimHash(collByteLen)
			Xc = append(Xc, res)
		}
		X = Xc
	}

	return X[0].isZero()
}
