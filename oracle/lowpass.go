// Copyright ©2026 The Ellcut Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package oracle

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/convexopt/ellcut/ell"
)

// Lowpass assesses feasibility of an FIR lowpass filter design on
// the filter's autocorrelation coefficients r. The squared magnitude
// response R(ω) = r₀ + 2·Σ rₖcos(kω) must stay inside [L², U²] on the
// passband, inside [0, S²] on the stopband, and nonnegative on the
// transition band (nonnegativity makes r spectrally factorable into
// filter taps). Band constraints produce parallel cuts; the
// transition band produces single cuts.
//
// Constraints are checked on a dense frequency grid in round-robin
// order per band, so the oracle carries cursor state across calls
// and must not be shared between concurrent solves.
type Lowpass struct {
	spectrum *mat.Dense
	nwpass   int
	nwstop   int
	lpsq     float64
	upsq     float64
	spsq     float64

	idxPass, idxStop, idxTran int
}

// NewLowpass returns a lowpass design oracle for n autocorrelation
// coefficients. wpass and wstop are the passband and stopband edges
// as fractions of π; lpsq, upsq and spsq are the squared magnitude
// bounds. The response is sampled on a 15n-point grid over [0, π].
func NewLowpass(n int, wpass, wstop, lpsq, upsq, spsq float64) *Lowpass {
	m := 15 * n
	spectrum := mat.NewDense(m, n, nil)
	for i := 0; i < m; i++ {
		w := math.Pi * float64(i) / float64(m-1)
		spectrum.Set(i, 0, 1)
		for k := 1; k < n; k++ {
			spectrum.Set(i, k, 2*math.Cos(float64(k)*w))
		}
	}
	o := &Lowpass{
		spectrum: spectrum,
		nwpass:   int(wpass*float64(m-1)) + 1,
		nwstop:   int(wstop*float64(m-1)) + 1,
		lpsq:     lpsq,
		upsq:     upsq,
		spsq:     spsq,
	}
	o.idxPass = o.nwpass - 1
	o.idxStop = m - 1
	o.idxTran = o.nwstop - 1
	return o
}

// NewLowpassCase returns the reference design instance: passband edge
// 0.12π, stopband edge 0.20π, ripple 0.125 on both bands.
func NewLowpassCase(n int) *Lowpass {
	const delta = 0.125
	return NewLowpass(n, 0.12, 0.20,
		(1-delta)*(1-delta), (1+delta)*(1+delta), delta*delta)
}

// AssessFeas implements the cutplane.FeasOracle contract.
func (o *Lowpass) AssessFeas(x []float64) *ell.Cut {
	m, _ := o.spectrum.Dims()

	// passband: lpsq ≤ R(ω) ≤ upsq
	for c := 0; c < o.nwpass; c++ {
		o.idxPass++
		if o.idxPass == o.nwpass {
			o.idxPass = 0
		}
		row := o.spectrum.RawRowView(o.idxPass)
		v := floats.Dot(row, x)
		if v > o.upsq {
			cut := ell.NewParallelCut(cloneRow(row, 1), v-o.upsq, v-o.lpsq)
			return &cut
		}
		if v < o.lpsq {
			cut := ell.NewParallelCut(cloneRow(row, -1), o.lpsq-v, o.upsq-v)
			return &cut
		}
	}

	// stopband: 0 ≤ R(ω) ≤ spsq
	for c := 0; c < m-o.nwstop; c++ {
		o.idxStop++
		if o.idxStop == m {
			o.idxStop = o.nwstop
		}
		row := o.spectrum.RawRowView(o.idxStop)
		v := floats.Dot(row, x)
		if v > o.spsq {
			cut := ell.NewParallelCut(cloneRow(row, 1), v-o.spsq, v)
			return &cut
		}
		if v < 0 {
			cut := ell.NewParallelCut(cloneRow(row, -1), -v, o.spsq-v)
			return &cut
		}
	}

	// transition band: R(ω) ≥ 0
	for c := 0; c < o.nwstop-o.nwpass; c++ {
		o.idxTran++
		if o.idxTran == o.nwstop {
			o.idxTran = o.nwpass
		}
		row := o.spectrum.RawRowView(o.idxTran)
		v := floats.Dot(row, x)
		if v < 0 {
			cut := ell.NewCut(cloneRow(row, -1), -v)
			return &cut
		}
	}
	return nil
}

func cloneRow(row []float64, sign float64) []float64 {
	g := make([]float64, len(row))
	for i, v := range row {
		g[i] = sign * v
	}
	return g
}
