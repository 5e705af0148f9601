// Copyright ©2026 The Ellcut Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ldl provides an incremental LDLᵀ factorization manager for
// matrix-inequality oracles. The manager factors a dense symmetric
// matrix through an element accessor, stopping at the first pivot
// that certifies the matrix is not positive definite, and can then
// produce a witness vector v with vᵀAv < 0 for the separating cut.
package ldl // import "github.com/convexopt/ellcut/ldl"

import "gonum.org/v1/gonum/mat"

// Mgr is a factorization manager of fixed dimension n. The workspace
// T holds D on the diagonal, the unit lower-triangular factor L
// strictly below it, and the D-weighted partial dot products strictly
// above it. After a failed factorization the pivot range (start, stop)
// marks the principal block whose trailing pivot went non-positive.
type Mgr struct {
	n   int
	t   *mat.Dense
	wit []float64

	start, stop int
}

// NewMgr returns a manager for n×n symmetric matrices.
func NewMgr(n int) *Mgr {
	if n < 1 {
		panic("ldl: non-positive dimension")
	}
	return &Mgr{
		n:   n,
		t:   mat.NewDense(n, n, nil),
		wit: make([]float64, n),
	}
}

// Dim returns the matrix dimension the manager was built for.
func (m *Mgr) Dim() int { return m.n }

// Factor runs a left-looking LDLᵀ factorization, reading matrix
// elements through get in row-major lower-triangular order. The
// matrix is never materialized. Factor returns true if every pivot
// was strictly positive, i.e. the matrix is positive definite; on the
// first pivot D[i] ≤ 0 it records the failing range and stops.
func (m *Mgr) Factor(get func(i, j int) float64) bool {
	return m.factor(get, false)
}

// FactorWithAllowSemidefinite is Factor for matrices that are allowed
// to be positive semidefinite: a pivot of exactly zero restarts the
// factorization at the next diagonal instead of failing, so
// block-PSD matrices pass. A strictly negative pivot still fails.
func (m *Mgr) FactorWithAllowSemidefinite(get func(i, j int) float64) bool {
	return m.factor(get, true)
}

// Factorize is Factor applied to an explicit symmetric matrix.
func (m *Mgr) Factorize(a mat.Symmetric) bool {
	if a.SymmetricDim() != m.n {
		panic("ldl: dimension mismatch")
	}
	return m.Factor(a.At)
}

func (m *Mgr) factor(get func(i, j int) float64, allowSemi bool) bool {
	start := 0
	m.start, m.stop = 0, 0
	for i := 0; i < m.n; i++ {
		d := get(i, start)
		for j := start; j < i; j++ {
			m.t.Set(j, i, d)              // L[i,j]·D[j], kept for the running dot products
			m.t.Set(i, j, d/m.t.At(j, j)) // L[i,j]
			s := j + 1
			d = get(i, s)
			for k := start; k < s; k++ {
				d -= m.t.At(i, k) * m.t.At(k, s)
			}
		}
		m.t.Set(i, i, d)
		switch {
		case allowSemi && d < 0:
			m.start, m.stop = start, i+1
			return false
		case allowSemi && d == 0:
			start = i + 1
		case !allowSemi && d <= 0:
			m.start, m.stop = start, i+1
			return false
		}
	}
	return true
}

// IsSPD reports whether the most recent factorization succeeded.
func (m *Mgr) IsSPD() bool { return m.stop == 0 }

// Pos returns the pivot range (start, stop) recorded by a failed
// factorization. Both are zero after a success.
func (m *Mgr) Pos() (start, stop int) { return m.start, m.stop }

// Witness builds the certificate vector for a failed factorization:
// v is zero outside [start, stop), v[stop-1] = 1, and the remaining
// entries back-substitute through L so that vᵀAv equals the failing
// pivot D[stop-1]. Witness returns -D[stop-1] ≥ 0 and panics if the
// last factorization succeeded.
func (m *Mgr) Witness() float64 {
	if m.IsSPD() {
		panic("ldl: matrix is positive definite, no witness exists")
	}
	last := m.stop - 1
	for i := range m.wit {
		m.wit[i] = 0
	}
	m.wit[last] = 1
	for i := last; i > m.start; i-- {
		var sum float64
		for k := i; k <= last; k++ {
			sum += m.t.At(k, i-1) * m.wit[k]
		}
		m.wit[i-1] = -sum
	}
	return -m.t.At(last, last)
}

// WitnessVec returns the witness vector built by the last call to
// Witness. The slice is owned by the manager.
func (m *Mgr) WitnessVec() []float64 { return m.wit }

// SymQuad computes vᵀMv over the failing pivot range using the
// witness vector, for assembling oracle subgradients.
func (m *Mgr) SymQuad(a mat.Symmetric) float64 {
	var s float64
	for i := m.start; i < m.stop; i++ {
		var inner float64
		for j := i + 1; j < m.stop; j++ {
			inner += a.At(i, j) * m.wit[j]
		}
		s += m.wit[i] * (a.At(i, i)*m.wit[i] + 2*inner)
	}
	return s
}
