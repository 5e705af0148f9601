// Copyright ©2026 The Ellcut Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ell

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// EllStable is an ellipsoid search space that stores the shape matrix
// through its Cholesky factor, Q = κ·LLᵀ with L lower triangular and
// positive on the diagonal. The rank-one update of each cut becomes a
// factor update: a column sweep of plane rotations that keeps L
// triangular with a positive diagonal, so Q can never lose symmetry
// or definiteness to rounding. The explicit matrix is never formed.
type EllStable struct {
	// UseParallelCut enables the tighter two-sided update for
	// parallel cuts. It defaults to true.
	UseParallelCut bool

	n     int
	calc  *Calc
	xc    []float64
	lf    *mat.TriDense // current factor
	lscr  *mat.TriDense // sweep workspace
	kappa float64
	tsq   float64

	// scratch, allocated once at construction
	v  []float64 // Lᵀg
	qg []float64 // Lv = Qg
	w  []float64 // sweep vector
}

var (
	_ Space  = (*EllStable)(nil)
	_ Copier = (*EllStable)(nil)
)

// NewStable returns a ball-shaped stable ellipsoid of squared radius
// alpha centered at xc: κ = alpha, L = I.
func NewStable(alpha float64, xc []float64) *EllStable {
	if alpha <= 0 {
		panic("ell: non-positive ellipsoid radius")
	}
	e := newStable(len(xc), xc)
	e.kappa = alpha
	for i := 0; i < e.n; i++ {
		e.lf.SetTri(i, i, 1)
	}
	return e
}

// NewStableDiag returns an axis-aligned stable ellipsoid with squared
// semi-axes d centered at xc: κ = 1, L = diag(√d).
func NewStableDiag(d, xc []float64) *EllStable {
	if len(d) != len(xc) {
		panic("ell: dimension mismatch")
	}
	e := newStable(len(xc), xc)
	e.kappa = 1
	for i, v := range d {
		if v <= 0 {
			panic("ell: non-positive semi-axis")
		}
		e.lf.SetTri(i, i, math.Sqrt(v))
	}
	return e
}

func newStable(n int, xc []float64) *EllStable {
	e := &EllStable{
		UseParallelCut: true,
		n:              n,
		calc:           NewCalc(n),
		xc:             make([]float64, n),
		lf:             mat.NewTriDense(n, mat.Lower, nil),
		lscr:           mat.NewTriDense(n, mat.Lower, nil),
		v:              make([]float64, n),
		qg:             make([]float64, n),
		w:              make([]float64, n),
	}
	copy(e.xc, xc)
	return e
}

// Xc returns the center. The slice is owned by the space.
func (e *EllStable) Xc() []float64 { return e.xc }

// SetXc overwrites the center.
func (e *EllStable) SetXc(x []float64) {
	if len(x) != e.n {
		panic("ell: dimension mismatch")
	}
	copy(e.xc, x)
}

// Tsq returns τ² from the most recent update, zero before the first.
func (e *EllStable) Tsq() float64 { return e.tsq }

// Dim returns the dimension of the space.
func (e *EllStable) Dim() int { return e.n }

// Shape reconstructs the effective shape matrix κ·LLᵀ. It is intended
// for inspection and tests, not the update path.
func (e *EllStable) Shape() *mat.SymDense {
	s := mat.NewSymDense(e.n, nil)
	for i := 0; i < e.n; i++ {
		for j := 0; j <= i; j++ {
			var sum float64
			for k := 0; k <= j; k++ {
				sum += e.lf.At(i, k) * e.lf.At(j, k)
			}
			s.SetSym(i, j, e.kappa*sum)
		}
	}
	return s
}

// Copy returns an independent duplicate of the space.
func (e *EllStable) Copy() Space {
	c := newStable(e.n, e.xc)
	c.UseParallelCut = e.UseParallelCut
	c.kappa = e.kappa
	c.tsq = e.tsq
	c.lf.Copy(e.lf)
	return c
}

// Update applies a cut. The classification and coefficients are
// identical to Ellipsoid.Update; only the representation of the
// rank-one step differs. The factor sweep runs on a workspace and is
// swapped in on success, so every non-Success outcome leaves the
// space untouched. A degenerate boundary cut (σ ≥ 1, ellipsoid
// flattened to measure zero) is reported as NoEffect rather than
// destroying the factor.
func (e *EllStable) Update(cut Cut) CutStatus {
	if len(cut.Grad) != e.n {
		panic("ell: dimension mismatch")
	}
	n := e.n
	// v = Lᵀg and ω = vᵀv = gᵀ(LLᵀ)g.
	for i := 0; i < n; i++ {
		var sum float64
		for j := i; j < n; j++ {
			sum += e.lf.At(j, i) * cut.Grad[j]
		}
		e.v[i] = sum
	}
	omega := floats.Dot(e.v, e.v)
	if omega <= 0 {
		return NoEffect
	}
	tsq := e.kappa * omega
	e.tsq = tsq

	status, rho, sigma, delta := e.calc.Classify(cut, e.UseParallelCut, tsq)
	if status != Success {
		return status
	}

	// Qg = Lv.
	for i := 0; i < n; i++ {
		var sum float64
		for j := 0; j <= i; j++ {
			sum += e.lf.At(i, j) * e.v[j]
		}
		e.qg[i] = sum
	}

	if !e.rankOne(sigma / omega) {
		return NoEffect
	}
	e.lf, e.lscr = e.lscr, e.lf
	floats.AddScaled(e.xc, -rho/omega, e.qg)
	e.kappa *= delta
	return Success
}

// rankOne transforms the workspace factor so that L'L'ᵀ = LLᵀ - c·QgQgᵀ,
// reporting whether the sweep kept every diagonal entry positive.
// c > 0 is a downdate eliminated by hyperbolic rotations; c < 0 is an
// ordinary update eliminated by Givens rotations and cannot fail.
func (e *EllStable) rankOne(c float64) bool {
	n := e.n
	e.lscr.Copy(e.lf)
	down := c >= 0
	scale := math.Sqrt(math.Abs(c))
	for i := 0; i < n; i++ {
		e.w[i] = scale * e.qg[i]
	}
	for k := 0; k < n; k++ {
		lkk := e.lscr.At(k, k)
		t := e.w[k] / lkk
		var r float64
		if down {
			d := 1 - t*t
			if d <= 0 {
				return false
			}
			r = math.Sqrt(d)
		} else {
			r = math.Sqrt(1 + t*t)
		}
		e.lscr.SetTri(k, k, lkk*r)
		for i := k + 1; i < n; i++ {
			lik := e.lscr.At(i, k)
			wi := e.w[i]
			if down {
				e.lscr.SetTri(i, k, (lik-t*wi)/r)
				e.w[i] = (wi - t*lik) / r
			} else {
				e.lscr.SetTri(i, k, (lik+t*wi)/r)
				e.w[i] = (wi - t*lik) / r
			}
		}
	}
	return true
}
