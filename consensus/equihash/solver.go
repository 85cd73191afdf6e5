package equihash

import (
	"encoding/binary"
	"slices"
	"sort"

	mapset "github.com/deckarep/golang-set"
)

// SolveBasic runs the generalised-birthday collision search over full-index
// rows and returns every solution found, deduplicated and sorted. An empty
// result is not an error; callers iterate by varying the nonce in the
// pre-image.
func (equihash *Equihash) SolveBasic(state *HashState) [][]uint32 {
	logger := equihash.config.Log

	// 1) Generate first list
	logger.Debug("Generating first list")
	initSize := equihash.initialListSize()
	X := make([]stepRow, 0, initSize)
	for i := uint32(0); i < initSize; i++ {
		X = append(X, newBasicRow(state, i))
	}

	// 3) Repeat step 2 until 2n/(k+1) bits remain
	for r := uint32(1); r < equihash.config.K && len(X) > 0; r++ {
		logger.WithField("round", r).Debug("Sorting and finding collisions")
		X = equihash.collisionRound(X, true)
	}

	// k+1) Find a collision on the last 2n/(k+1) bits
	logger.Debug("Final round")
	seen := mapset.NewSet()
	var solns [][]uint32
	if len(X) > 1 {
		sortRows(X)
		for i := 0; i+1 < len(X); i++ {
			res := xorRows(&X[i], &X[i+1])
			if res.isZero() && distinctIndices(&X[i], &X[i+1]) {
				if seen.Add(solutionKey(res.indices)) {
					solns = append(solns, res.indices)
				}
			}
		}
	} else {
		logger.Debug("List is empty")
	}
	sortSolutions(solns)
	return solns
}

// collisionRound performs one sort-and-collide reduction over X. Rows whose
// current prefixes collide are pairwise XOR-merged and trimmed; merged rows
// back-fill slots the scan has already consumed, with an overflow buffer for
// the rest. Duplicate-index filtering is optional because truncated working
// indices alias distinct leaves.
func (equihash *Equihash) collisionRound(X []stepRow, checkDistinct bool) []stepRow {
	collByteLen := int(equihash.CollisionByteLength())

	// 2a) Sort the list
	sortRows(X)

	// 2b-2d) Merge each collision group, reusing scanned slots
	i := 0
	posFree := 0
	var Xc []stepRow
	for i < len(X)-1 {
		j := 1
		for i+j < len(X) && hasCollision(&X[i], &X[i+j], collByteLen) {
			j++
		}

		for l := 0; l < j-1; l++ {
			for m := l + 1; m < j; m++ {
				if checkDistinct && !distinctIndices(&X[i+l], &X[i+m]) {
					continue
				}
				res := xorRows(&X[i+l], &X[i+m])
				res.trimHash(collByteLen)
				Xc = append(Xc, res)
			}
		}

		// posFree never passes i+j, so only consumed slots are overwritten
		for posFree < i+j && len(Xc) > 0 {
			X[posFree] = Xc[len(Xc)-1]
			Xc = Xc[:len(Xc)-1]
			posFree++
		}

		i += j
	}

	// 2e) A trailing singleton has no collision; its slot is reusable too
	for posFree < len(X) && len(Xc) > 0 {
		X[posFree] = Xc[len(Xc)-1]
		Xc = Xc[:len(Xc)-1]
		posFree++
	}

	if len(Xc) > 0 {
		// 2f) Add overflow to the end of the table
		X = append(X, Xc...)
	} else if posFree < len(X) {
		// 2g) Remove empty space at the end
		X = X[:posFree]
	}
	return X
}

// SolveOptimised runs the collision search over 8-bit truncated rows first,
// then refines each partial solution back to full index solutions by pairing
// sublists of re-derived leaves. Output matches SolveBasic's shape; partials
// that cannot be refined contribute nothing.
func (equihash *Equihash) SolveOptimised(state *HashState) [][]uint32 {
	logger := equihash.config.Log
	collBitLen := equihash.CollisionBitLength()

	// First run the algorithm with truncated indices
	logger.Debug("Generating first list")
	initSize := equihash.initialListSize()
	Xt := make([]stepRow, 0, initSize)
	for i := uint32(0); i < initSize; i++ {
		Xt = append(Xt, newTruncatedRow(state, i, collBitLen+1))
	}

	for r := uint32(1); r < equihash.config.K && len(Xt) > 0; r++ {
		logger.WithField("round", r).Debug("Sorting and finding collisions")
		// We truncated, so don't check for distinct indices here
		Xt = equihash.collisionRound(Xt, false)
	}

	logger.Debug("Final round")
	seenPartial := mapset.NewSet()
	var partials [][]uint8
	if len(Xt) > 1 {
		sortRows(Xt)
		for i := 0; i+1 < len(Xt); i++ {
			res := xorRows(&Xt[i], &Xt[i+1])
			if res.isZero() && distinctIndices(&Xt[i], &Xt[i+1]) {
				if seenPartial.Add(string(res.trunc)) {
					partials = append(partials, res.trunc)
				}
			}
		}
	} else {
		logger.Debug("List is empty")
	}
	logger.WithField("count", len(partials)).Debug("Found partial solutions")

	// Now for each partial solution run the pairing reduction to recreate
	// the full indices
	seen := mapset.NewSet()
	var solns [][]uint32
	recreateSize := uint32(1) << (collBitLen - 7)
	for _, partial := range partials {
		sublists := make([][]stepRow, 0, len(partial))
		for _, t := range partial {
			ic := make([]stepRow, 0, recreateSize)
			for j := uint32(0); j < recreateSize; j++ {
				ic = append(ic, newBasicRow(state, uint32(t)<<(collBitLen-7)|j))
			}
			sublists = append(sublists, ic)
		}

		for len(sublists) > 1 {
			merged := make([][]stepRow, 0, len(sublists)/2)
			for v := 0; v+1 < len(sublists); v += 2 {
				merged = append(merged, equihash.mergeSublists(sublists[v], sublists[v+1]))
			}
			sublists = merged
		}

		// Rows surviving to the top of the tree are solutions only if the
		// residual hash collapsed to zero.
		for i := range sublists[0] {
			row := &sublists[0][i]
			if !row.isZero() {
				continue
			}
			if seen.Add(solutionKey(row.indices)) {
				solns = append(solns, row.indices)
			}
		}
	}
	sortSolutions(solns)
	return solns
}

// mergeSublists pairs rows across two sibling sublists: all rows of L that
// collide with R's head and all rows of R that collide with L's head form a
// cross-product of candidate merges. When neither head collides, the R
// cursor advances to make progress.
func (equihash *Equihash) mergeSublists(L, R []stepRow) []stepRow {
	collByteLen := int(equihash.CollisionByteLength())
	sortRows(L)
	sortRows(R)

	var out []stepRow
	iChecked, jChecked := 0, 0
	for iChecked < len(L) && jChecked < len(R) {
		i := 0
		for iChecked+i < len(L) && hasCollision(&L[iChecked+i], &R[jChecked], collByteLen) {
			i++
		}
		j := 0
		for jChecked+j < len(R) && hasCollision(&L[iChecked], &R[jChecked+j], collByteLen) {
			j++
		}

		for l := 0; l < i; l++ {
			for m := 0; m < j; m++ {
				if distinctIndices(&L[iChecked+l], &R[jChecked+m]) {
					res := xorRows(&L[iChecked+l], &R[jChecked+m])
					res.trimHash(collByteLen)
					out = append(out, res)
				}
			}
		}

		if i == 0 && j == 0 {
			jChecked++
		} else {
			iChecked += i
			jChecked += j
		}
	}
	return out
}

// solutionKey packs an index sequence into a comparable set key.
func solutionKey(indices []uint32) string {
	b := make([]byte, 4*len(indices))
	for i, index := range indices {
		binary.LittleEndian.PutUint32(b[4*i:], index)
	}
	return string(b)
}

// sortSolutions orders solutions lexicographically so repeated solves return
// identical slices.
func sortSolutions(solns [][]uint32) {
	sort.Slice(solns, func(i, j int) bool {
		return slices.Compare(solns[i], solns[j]) < 0
	})
}
