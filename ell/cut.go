// Copyright ©2026 The Ellcut Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ell

// A Cut is a half-space g·(x-xc)+β ≤ 0 known to contain the solution
// set, expressed relative to the current center xc of a search space.
// Beta holds a single scalar for an ordinary cut, or a pair β0 ≤ β1
// for a parallel cut bracketing the solution set between two parallel
// half-spaces.
type Cut struct {
	Grad []float64
	Beta []float64
}

// NewCut returns a single cut with gradient g and offset beta.
func NewCut(g []float64, beta float64) Cut {
	return Cut{Grad: g, Beta: []float64{beta}}
}

// NewParallelCut returns a parallel cut with gradient g and the offset
// pair beta0 ≤ beta1.
func NewParallelCut(g []float64, beta0, beta1 float64) Cut {
	return Cut{Grad: g, Beta: []float64{beta0, beta1}}
}

// IsParallel reports whether the cut carries a parallel offset pair.
func (c Cut) IsParallel() bool { return len(c.Beta) == 2 }

// CutStatus reports the outcome of applying a cut to a search space.
type CutStatus int

const (
	// Success means the space was shrunk by the cut.
	Success CutStatus = iota
	// NoSoln means the cut proves the problem infeasible: the
	// half-space misses the current ellipsoid entirely.
	NoSoln
	// SmallEnough means the space has contracted below the caller's
	// tolerance. Update never returns it; it is reserved for callers
	// reporting tolerance collapse through the same enum.
	SmallEnough
	// NoEffect means the cut cannot reduce the space. The discrete
	// driver uses it to request an alternative cut for the same
	// lattice point.
	NoEffect
)

func (s CutStatus) String() string {
	switch s {
	case Success:
		return "Success"
	case NoSoln:
		return "NoSoln"
	case SmallEnough:
		return "SmallEnough"
	case NoEffect:
		return "NoEffect"
	}
	return "CutStatus(unknown)"
}

// A Space is a bounded search region that can be shrunk by separating
// cuts. It is implemented by Ellipsoid and EllStable.
type Space interface {
	// Xc returns the current center. The returned slice is owned by
	// the space and must not be modified.
	Xc() []float64
	// SetXc overwrites the center.
	SetXc(x []float64)
	// Tsq returns τ² = gᵀQg from the most recent update, the squared
	// half-width of the space along the last cut normal. It is zero
	// before the first update.
	Tsq() float64
	// Update applies a cut and reports the outcome. The center and
	// shape change only on Success; Tsq is refreshed by every cut with
	// a nonzero gᵀQg, including rejected ones.
	Update(c Cut) CutStatus
}

// A Copier is a Space that can duplicate itself. The bisection
// adaptor requires a cheap copy.
type Copier interface {
	Space
	Copy() Space
}
