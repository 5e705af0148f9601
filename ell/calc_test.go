// Copyright ©2026 The Ellcut Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ell

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
)

func TestCentralCut(t *testing.T) {
	for _, n := range []int{2, 3, 4, 7} {
		c := NewCalc(n)
		status, rho, sigma, delta := c.CentralCut(4)
		if status != Success {
			t.Fatalf("n=%d: central cut status %v", n, status)
		}
		nf := float64(n)
		if !scalar.EqualWithinAbs(sigma, 2/(nf+1), 1e-15) {
			t.Errorf("n=%d: sigma = %v, want %v", n, sigma, 2/(nf+1))
		}
		if !scalar.EqualWithinAbs(rho, 2/(nf+1), 1e-15) {
			t.Errorf("n=%d: rho = %v, want %v", n, rho, 2/(nf+1))
		}
		if !scalar.EqualWithinAbs(delta, nf*nf/(nf*nf-1), 1e-15) {
			t.Errorf("n=%d: delta = %v, want %v", n, delta, nf*nf/(nf*nf-1))
		}
	}
}

func TestDeepCut(t *testing.T) {
	c := NewCalc(4)
	status, rho, sigma, delta := c.DeepCut(0.05, 0.01)
	if status != Success {
		t.Fatalf("status = %v, want Success", status)
	}
	if !scalar.EqualWithinAbs(sigma, 0.8, 1e-14) {
		t.Errorf("sigma = %v, want 0.8", sigma)
	}
	if !scalar.EqualWithinAbs(rho, 0.06, 1e-14) {
		t.Errorf("rho = %v, want 0.06", rho)
	}
	if !scalar.EqualWithinAbs(delta, 0.8, 1e-14) {
		t.Errorf("delta = %v, want 0.8", delta)
	}
}

func TestDeepCutClassification(t *testing.T) {
	for _, test := range []struct {
		n    int
		beta float64
		tsq  float64
		want CutStatus
	}{
		{2, 1.01, 1, NoSoln},   // misses the ellipsoid
		{2, -0.51, 1, NoEffect}, // τ + nβ < 0
		{2, -0.5, 1, NoEffect},  // τ + nβ = 0, identity update
		{2, 1.0, 1, Success},    // boundary cut is still a cut
		{2, -0.49, 1, Success},  // shallow but effective
		{5, 0.1, 0.04, Success},
	} {
		c := NewCalc(test.n)
		status, _, _, _ := c.DeepCut(test.beta, test.tsq)
		if status != test.want {
			t.Errorf("n=%d beta=%v tsq=%v: status = %v, want %v",
				test.n, test.beta, test.tsq, status, test.want)
		}
	}
}

// A deep cut through the center must agree with the dedicated
// central-cut path.
func TestDeepCutCentralLimit(t *testing.T) {
	c := NewCalc(3)
	const tsq = 0.25
	_, rho, sigma, delta := c.DeepCut(0, tsq)
	_, crho, csigma, cdelta := c.CentralCut(tsq)
	if !scalar.EqualWithinULP(sigma, csigma, 4) {
		t.Errorf("sigma = %v, central %v", sigma, csigma)
	}
	if !scalar.EqualWithinULP(rho, crho, 4) {
		t.Errorf("rho = %v, central %v", rho, crho)
	}
	if !scalar.EqualWithinULP(delta, cdelta, 4) {
		t.Errorf("delta = %v, central %v", delta, cdelta)
	}
}

func TestParallelCutClassification(t *testing.T) {
	c := NewCalc(2)
	if status, _, _, _ := c.ParallelCut(0.5, 0.4, 1); status != NoSoln {
		t.Errorf("inverted pair: status = %v, want NoSoln", status)
	}
	// band too shallow to shrink anything: nβ0β1 < -τ²
	if status, _, _, _ := c.ParallelCut(-0.8, 0.7, 1); status != NoEffect {
		t.Errorf("shallow band: status = %v, want NoEffect", status)
	}
}

// An equal pair must take the single-cut path exactly.
func TestParallelCutEqualPair(t *testing.T) {
	c := NewCalc(3)
	const beta, tsq = 0.2, 1.0
	s1, rho1, sigma1, delta1 := c.ParallelCut(beta, beta, tsq)
	s2, rho2, sigma2, delta2 := c.DeepCut(beta, tsq)
	if s1 != s2 || rho1 != rho2 || sigma1 != sigma2 || delta1 != delta2 {
		t.Errorf("equal pair (%v,%v,%v,%v) != deep cut (%v,%v,%v,%v)",
			s1, rho1, sigma1, delta1, s2, rho2, sigma2, delta2)
	}
}

// When the second half-space is tangent (β1 = τ) the band formula
// must agree with the plain deep cut on β0; beyond it (β1 > τ) the
// calculator degenerates explicitly.
func TestParallelCutDeepLimit(t *testing.T) {
	c := NewCalc(4)
	const tsq = 4.0 // τ = 2
	s, rho, sigma, delta := c.ParallelCut(0.5, 2, tsq)
	if s != Success {
		t.Fatalf("status = %v, want Success", s)
	}
	sd, rhod, sigmad, deltad := c.DeepCut(0.5, tsq)
	if sd != Success {
		t.Fatalf("deep status = %v, want Success", sd)
	}
	if !scalar.EqualWithinAbs(sigma, sigmad, 1e-12) {
		t.Errorf("sigma = %v, deep %v", sigma, sigmad)
	}
	if !scalar.EqualWithinAbs(rho, rhod, 1e-12) {
		t.Errorf("rho = %v, deep %v", rho, rhod)
	}
	if !scalar.EqualWithinAbs(delta, deltad, 1e-12) {
		t.Errorf("delta = %v, deep %v", delta, deltad)
	}

	s, rho2, sigma2, delta2 := c.ParallelCut(0.5, 2.5, tsq)
	if s != Success {
		t.Fatalf("status = %v, want Success", s)
	}
	if rho2 != rhod || sigma2 != sigmad || delta2 != deltad {
		t.Errorf("β1 > τ did not degenerate to the deep cut")
	}
}

// The β0 = 0 sub-case of the band formula against its closed form.
func TestParallelCutCentral(t *testing.T) {
	c := NewCalc(2)
	status, rho, sigma, delta := c.ParallelCut(0, 0.5, 1)
	if status != Success {
		t.Fatalf("status = %v, want Success", status)
	}
	xi := math.Sqrt(4*1*(1-0.25) + math.Pow(2*0.25, 2))
	wantSigma := (2 + (2-xi)/0.25) / 3
	wantDelta := (4.0 / 3.0) * (1 - 0.125 + xi/4)
	if !scalar.EqualWithinAbs(sigma, wantSigma, 1e-14) {
		t.Errorf("sigma = %v, want %v", sigma, wantSigma)
	}
	if !scalar.EqualWithinAbs(rho, wantSigma*0.25, 1e-14) {
		t.Errorf("rho = %v, want %v", rho, wantSigma*0.25)
	}
	if !scalar.EqualWithinAbs(delta, wantDelta, 1e-14) {
		t.Errorf("delta = %v, want %v", delta, wantDelta)
	}
}

func TestNewCalcPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("NewCalc(1) did not panic")
		}
	}()
	NewCalc(1)
}
