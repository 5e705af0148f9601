// Copyright ©2026 The Ellcut Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cutplane

import "github.com/convexopt/ellcut/ell"

// A BSOracle decides whether the problem parametrized by gamma is
// feasible. Feasibility must be monotone: feasible at gamma implies
// feasible at every larger gamma.
type BSOracle interface {
	AssessBS(gamma float64) bool
}

// A FeasTargetOracle is a feasibility oracle whose constraint set
// depends on an adjustable target, for use with BSearchAdaptor.
type FeasTargetOracle interface {
	FeasOracle
	SetTarget(gamma float64)
}

// BSearch bisects [lo, hi] for the least feasible gamma: a feasible
// midpoint lowers hi, an infeasible one raises lo. It returns the
// best upper bound and the index of the terminating iteration
// (MaxIter if the interval never contracted below tolerance).
func BSearch(omega BSOracle, lo, hi float64, opts Options) (gamma float64, niter int) {
	opts = opts.ensure()
	for niter = 0; niter < opts.MaxIter; niter++ {
		tau := (hi - lo) / 2
		if tau < opts.Tol {
			return hi, niter
		}
		gamma = lo + tau
		if omega.AssessBS(gamma) {
			hi = gamma
		} else {
			lo = gamma
		}
	}
	return hi, opts.MaxIter
}

// BSearchAdaptor turns a target-parametrized feasibility problem into
// a BSOracle by running the inner cutting-plane search on a copy of
// the space at every probe. A feasible probe moves the outer space's
// center to the feasible point found, so the final center is the
// best known solution.
type BSearchAdaptor struct {
	Omega FeasTargetOracle
	Space ell.Copier
	Opts  Options
}

// XBest returns the center of the adapted space, the feasible point
// of the most recent successful probe.
func (a *BSearchAdaptor) XBest() []float64 { return a.Space.Xc() }

// AssessBS probes feasibility at target gamma.
func (a *BSearchAdaptor) AssessBS(gamma float64) bool {
	inner := a.Space.Copy()
	a.Omega.SetTarget(gamma)
	x, _ := Feas(a.Omega, inner, a.Opts)
	if x == nil {
		return false
	}
	a.Space.SetXc(x)
	return true
}
