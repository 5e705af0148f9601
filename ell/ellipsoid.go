// Copyright ©2026 The Ellcut Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ell

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Ellipsoid is a search space E(xc, κQ) = {x : (x-xc)ᵀ(κQ)⁻¹(x-xc) ≤ 1}
// with the shape matrix kept explicitly. The volume-shrink factor of
// each update is folded into the scalar κ rather than the matrix, so
// an update costs one matrix-vector product and one symmetric
// rank-one update.
//
// The explicit rank-one subtraction can erode the symmetry and
// positive-definiteness of Q over very long runs; EllStable carries
// the same contract on a factored representation for those cases.
type Ellipsoid struct {
	// UseParallelCut enables the tighter two-sided update for
	// parallel cuts. When false a parallel cut is applied as its
	// single deep-cut component. It defaults to true.
	UseParallelCut bool

	// NoDefer folds κ into Q on every update instead of keeping it
	// as a lazy scalar. Slower, kept as a numerical escape hatch.
	NoDefer bool

	n     int
	calc  *Calc
	xc    []float64
	q     *mat.SymDense
	kappa float64
	tsq   float64

	// scratch, allocated once at construction
	gbuf []float64
	gv   *mat.VecDense
	qg   *mat.VecDense
}

var (
	_ Space  = (*Ellipsoid)(nil)
	_ Copier = (*Ellipsoid)(nil)
)

// NewEllipsoid returns a ball-shaped ellipsoid of squared radius
// alpha centered at xc: κ = alpha, Q = I. The center slice is copied.
func NewEllipsoid(alpha float64, xc []float64) *Ellipsoid {
	if alpha <= 0 {
		panic("ell: non-positive ellipsoid radius")
	}
	n := len(xc)
	e := newEllipsoid(n, xc)
	e.kappa = alpha
	for i := 0; i < n; i++ {
		e.q.SetSym(i, i, 1)
	}
	return e
}

// NewEllipsoidDiag returns an axis-aligned ellipsoid with squared
// semi-axes d centered at xc: κ = 1, Q = diag(d).
func NewEllipsoidDiag(d, xc []float64) *Ellipsoid {
	if len(d) != len(xc) {
		panic("ell: dimension mismatch")
	}
	e := newEllipsoid(len(xc), xc)
	e.kappa = 1
	for i, v := range d {
		if v <= 0 {
			panic("ell: non-positive semi-axis")
		}
		e.q.SetSym(i, i, v)
	}
	return e
}

func newEllipsoid(n int, xc []float64) *Ellipsoid {
	e := &Ellipsoid{
		UseParallelCut: true,
		n:              n,
		calc:           NewCalc(n),
		xc:             make([]float64, n),
		q:              mat.NewSymDense(n, nil),
		gbuf:           make([]float64, n),
	}
	copy(e.xc, xc)
	e.gv = mat.NewVecDense(n, e.gbuf)
	e.qg = mat.NewVecDense(n, nil)
	return e
}

// Xc returns the center. The slice is owned by the ellipsoid.
func (e *Ellipsoid) Xc() []float64 { return e.xc }

// SetXc overwrites the center.
func (e *Ellipsoid) SetXc(x []float64) {
	if len(x) != e.n {
		panic("ell: dimension mismatch")
	}
	copy(e.xc, x)
}

// Tsq returns τ² from the most recent update, zero before the first.
func (e *Ellipsoid) Tsq() float64 { return e.tsq }

// Dim returns the dimension of the space.
func (e *Ellipsoid) Dim() int { return e.n }

// Shape returns a copy of the effective shape matrix κQ.
func (e *Ellipsoid) Shape() *mat.SymDense {
	s := mat.NewSymDense(e.n, nil)
	s.ScaleSym(e.kappa, e.q)
	return s
}

// Copy returns an independent duplicate of the space.
func (e *Ellipsoid) Copy() Space {
	c := newEllipsoid(e.n, e.xc)
	c.UseParallelCut = e.UseParallelCut
	c.NoDefer = e.NoDefer
	c.kappa = e.kappa
	c.tsq = e.tsq
	c.q.CopySym(e.q)
	return c
}

// Update applies a cut and shrinks the ellipsoid to the minimum-volume
// ellipsoid containing the intersection of the current one with the
// cut half-space (or band, for a parallel cut). On any status other
// than Success the geometry is left untouched; a cut with gᵀQg ≤ 0
// (in particular g = 0) leaves the state bit-identical.
func (e *Ellipsoid) Update(cut Cut) CutStatus {
	if len(cut.Grad) != e.n {
		panic("ell: dimension mismatch")
	}
	copy(e.gbuf, cut.Grad)
	e.qg.MulVec(e.q, e.gv)
	omega := mat.Dot(e.gv, e.qg)
	if omega <= 0 {
		return NoEffect
	}
	tsq := e.kappa * omega
	e.tsq = tsq

	status, rho, sigma, delta := e.calc.Classify(cut, e.UseParallelCut, tsq)
	if status != Success {
		return status
	}

	qg := e.qg.RawVector().Data
	floats.AddScaled(e.xc, -rho/omega, qg)
	e.q.SymRankOne(e.q, -sigma/omega, e.qg)
	if e.NoDefer {
		e.q.ScaleSym(delta*e.kappa, e.q)
		e.kappa = 1
	} else {
		e.kappa *= delta
	}
	return Success
}
