// Copyright ©2026 The Ellcut Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package oracle

import (
	"gonum.org/v1/gonum/mat"

	"github.com/convexopt/ellcut/ell"
	"github.com/convexopt/ellcut/ldl"
)

// LMI assesses feasibility of the linear matrix inequality
//
//	B - Σ xₖ·Fₖ ≽ 0.
//
// The candidate matrix is factored incrementally through an element
// accessor, so it is never materialized; when a pivot fails, the
// factorization's witness vector v (with vᵀAv < 0) yields the
// separating cut gₖ = vᵀFₖv, β = -vᵀAv.
type LMI struct {
	f   []*mat.SymDense
	f0  *mat.SymDense
	mgr *ldl.Mgr
}

// NewLMI returns an oracle for the inequality B - Σ xₖFₖ ≽ 0. All
// matrices must share B's dimension.
func NewLMI(f []*mat.SymDense, b *mat.SymDense) *LMI {
	n := b.SymmetricDim()
	for _, fk := range f {
		if fk.SymmetricDim() != n {
			panic("oracle: LMI coefficient dimension mismatch")
		}
	}
	return &LMI{f: f, f0: b, mgr: ldl.NewMgr(n)}
}

// AssessFeas implements the cutplane.FeasOracle contract.
func (o *LMI) AssessFeas(x []float64) *ell.Cut {
	if len(x) != len(o.f) {
		panic("oracle: LMI variable dimension mismatch")
	}
	get := func(i, j int) float64 {
		v := o.f0.At(i, j)
		for k, fk := range o.f {
			v -= fk.At(i, j) * x[k]
		}
		return v
	}
	if o.mgr.Factor(get) {
		return nil
	}
	ep := o.mgr.Witness()
	g := make([]float64, len(o.f))
	for k, fk := range o.f {
		g[k] = o.mgr.SymQuad(fk)
	}
	cut := ell.NewCut(g, ep)
	return &cut
}
