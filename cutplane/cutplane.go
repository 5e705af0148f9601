// Copyright ©2026 The Ellcut Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cutplane implements cutting-plane search drivers over the
// ellipsoid spaces of package ell: convex feasibility, continuous and
// discrete (lattice) optimization, and one-dimensional bisection. A
// driver repeatedly hands the space's center to a user-supplied
// oracle, feeds the returned separating cut back to the space, and
// stops on a terminal cut status, on τ² contracting below tolerance,
// or at the iteration cap.
package cutplane // import "github.com/convexopt/ellcut/cutplane"

import "github.com/convexopt/ellcut/ell"

// A FeasOracle assesses feasibility of a query point. AssessFeas
// returns nil when x is feasible, otherwise a separating cut.
type FeasOracle interface {
	AssessFeas(x []float64) *ell.Cut
}

// An OptimOracle assesses a query point against the best objective
// value gamma found so far. When the oracle can improve the target it
// returns the new value with shrunk true and a central cut; otherwise
// gamma is returned unchanged alongside a deep cut.
type OptimOracle interface {
	AssessOptim(x []float64, gamma float64) (cut ell.Cut, gammaNew float64, shrunk bool)
}

// A QOracle assesses a query point for discrete optimization. The
// oracle rounds x to an evaluable lattice point x0 and cuts relative
// to x. moreAlt reports whether an alternative cut for the same
// lattice point remains; the driver requests it by setting retry on
// the next call after a NoEffect update.
type QOracle interface {
	AssessQ(x []float64, gamma float64, retry bool) (cut ell.Cut, x0 []float64, gammaNew float64, shrunk, moreAlt bool)
}

// A Recorder observes driver progress once per iteration.
type Recorder interface {
	Record(niter int, tsq float64, status ell.CutStatus)
}

// Options control a driver run. The zero value selects the defaults.
type Options struct {
	// MaxIter is the iteration cap. Defaults to 2000.
	MaxIter int
	// Tol terminates the run once τ² falls below it. Defaults to 1e-8.
	Tol float64
	// Recorder, when non-nil, observes every iteration.
	Recorder Recorder
}

const (
	defaultMaxIter = 2000
	defaultTol     = 1e-8
)

func (o Options) ensure() Options {
	if o.MaxIter == 0 {
		o.MaxIter = defaultMaxIter
	}
	if o.Tol == 0 {
		o.Tol = defaultTol
	}
	return o
}

func (o Options) record(niter int, tsq float64, status ell.CutStatus) {
	if o.Recorder != nil {
		o.Recorder.Record(niter, tsq, status)
	}
}

// Feas searches space for a point satisfying the oracle. It returns a
// copy of the feasible point, or nil if the region shrank away or the
// iteration cap was reached first, together with the index of the
// terminating iteration (MaxIter if the cap was exhausted).
func Feas(omega FeasOracle, space ell.Space, opts Options) (x []float64, niter int) {
	opts = opts.ensure()
	for niter = 0; niter < opts.MaxIter; niter++ {
		cut := omega.AssessFeas(space.Xc())
		if cut == nil {
			x = append(x, space.Xc()...)
			return x, niter
		}
		status := space.Update(*cut)
		opts.record(niter, space.Tsq(), status)
		if status != ell.Success || space.Tsq() < opts.Tol {
			return nil, niter
		}
	}
	return nil, opts.MaxIter
}

// Optim minimizes (or maximizes, by the oracle's own convention) the
// oracle's objective starting from target gamma. Every improving
// assessment records the current center as the incumbent. xBest is
// nil if no cut ever improved the target.
func Optim(omega OptimOracle, space ell.Space, gamma float64, opts Options) (xBest []float64, gammaBest float64, niter int) {
	opts = opts.ensure()
	for niter = 0; niter < opts.MaxIter; niter++ {
		cut, gammaNew, shrunk := omega.AssessOptim(space.Xc(), gamma)
		if shrunk {
			gamma = gammaNew
			xBest = append(xBest[:0], space.Xc()...)
		}
		status := space.Update(cut)
		opts.record(niter, space.Tsq(), status)
		if status != ell.Success || space.Tsq() < opts.Tol {
			return xBest, gamma, niter
		}
	}
	return xBest, gamma, opts.MaxIter
}

// OptimQ is Optim over a discrete lattice. The incumbent is the
// oracle's rounded point x0, not the ellipsoid center. When a cut has
// no effect and the oracle still holds an alternative cut for the
// same lattice point, the driver retries instead of terminating.
func OptimQ(omega QOracle, space ell.Space, gamma float64, opts Options) (xBest []float64, gammaBest float64, niter int) {
	opts = opts.ensure()
	retry := false
	for niter = 0; niter < opts.MaxIter; niter++ {
		cut, x0, gammaNew, shrunk, moreAlt := omega.AssessQ(space.Xc(), gamma, retry)
		if shrunk {
			gamma = gammaNew
			xBest = append(xBest[:0], x0...)
		}
		status := space.Update(cut)
		opts.record(niter, space.Tsq(), status)
		switch status {
		case ell.Success:
			retry = false
		case ell.NoEffect:
			if !moreAlt {
				return xBest, gamma, niter
			}
			retry = true
		default:
			return xBest, gamma, niter
		}
		if space.Tsq() < opts.Tol {
			return xBest, gamma, niter
		}
	}
	return xBest, gamma, opts.MaxIter
}
