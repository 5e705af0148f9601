// Copyright ©2026 The Ellcut Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ell

import "math"

// Calc computes minimum-volume ellipsoid update coefficients from a
// cut offset and the squared half-width τ² along the cut normal. It
// classifies the cut (deep, central, parallel, shallow) and produces
// the center-shift scale ρ, the rank-one coefficient σ and the
// volume-shrink factor δ consumed by the search spaces. Calc is pure:
// it holds only dimension constants and may be shared.
type Calc struct {
	n     int
	nf    float64 // n as float64
	cst1  float64 // n²/(n²-1)
	cst2  float64 // 2/(n+1), the central-cut σ
	invN1 float64 // 1/(n+1)
}

// NewCalc returns a calculator for dimension n. NewCalc panics if
// n < 2; a one-dimensional search space degenerates to bisection.
func NewCalc(n int) *Calc {
	if n < 2 {
		panic("ell: dimension must be at least 2")
	}
	nf := float64(n)
	return &Calc{
		n:     n,
		nf:    nf,
		cst1:  nf * nf / (nf*nf - 1),
		cst2:  2 / (nf + 1),
		invN1: 1 / (nf + 1),
	}
}

// DeepCut classifies a single cut with offset beta against τ²=tsq and
// returns the update coefficients. β > τ rejects the cut as proof of
// infeasibility; a cut so shallow that it cannot shrink the ellipsoid
// (τ + nβ ≤ 0, which covers the vacuous β < -τ case) returns
// NoEffect.
func (c *Calc) DeepCut(beta, tsq float64) (status CutStatus, rho, sigma, delta float64) {
	tau := math.Sqrt(tsq)
	if beta > tau {
		return NoSoln, 0, 0, 0
	}
	eta := tau + c.nf*beta
	if eta <= 0 {
		return NoEffect, 0, 0, 0
	}
	sigma = 2 * eta / ((c.nf + 1) * (tau + beta))
	rho = eta * c.invN1
	delta = c.cst1 * (tsq - beta*beta) / tsq
	return Success, rho, sigma, delta
}

// CentralCut returns the update coefficients for a cut through the
// center (β = 0): σ = 2/(n+1), ρ = τ/(n+1), δ = n²/(n²-1).
func (c *Calc) CentralCut(tsq float64) (status CutStatus, rho, sigma, delta float64) {
	sigma = c.cst2
	rho = math.Sqrt(tsq) * c.invN1
	delta = c.cst1
	return Success, rho, sigma, delta
}

// ParallelCut classifies a parallel cut with offsets beta0 ≤ beta1
// and returns the update coefficients. The pair degenerates to a
// single deep cut on beta0 when the second half-space is inactive
// (β1 ≤ 0 or τ < β1) or when the offsets coincide; at β1 = τ the
// band formula and the deep cut agree, so the hand-off is
// continuous. A band shallow enough that nβ0β1 < -τ² cannot shrink
// the ellipsoid.
func (c *Calc) ParallelCut(beta0, beta1, tsq float64) (status CutStatus, rho, sigma, delta float64) {
	if beta1 < beta0 {
		return NoSoln, 0, 0, 0
	}
	tau := math.Sqrt(tsq)
	if beta1 <= 0 || tau < beta1 || beta0 == beta1 {
		return c.DeepCut(beta0, tsq)
	}
	b0b1 := beta0 * beta1
	if c.nf*b0b1 < -tsq {
		return NoEffect, 0, 0, 0
	}
	b0sq := beta0 * beta0
	b1sq := beta1 * beta1
	bsum := beta0 + beta1
	xisq := 4*(tsq-b0sq)*(tsq-b1sq) + (c.nf*(b1sq-b0sq))*(c.nf*(b1sq-b0sq))
	if xisq < 0 {
		// not reachable in exact arithmetic; rounding guard
		return NoEffect, 0, 0, 0
	}
	xi := math.Sqrt(xisq)
	sigma = (c.nf + (2*(tsq+b0b1)-xi)/(bsum*bsum)) * c.invN1
	rho = sigma * bsum / 2
	delta = c.cst1 * (tsq - (b0sq+b1sq)/2 + xi/(2*c.nf)) / tsq
	return Success, rho, sigma, delta
}

// Classify routes a cut through the calculator: a single offset of
// zero is a central cut, any other single offset a deep cut, and an
// offset pair a parallel cut unless useParallel is false, in which
// case only the first component is applied.
func (c *Calc) Classify(cut Cut, useParallel bool, tsq float64) (status CutStatus, rho, sigma, delta float64) {
	switch len(cut.Beta) {
	case 1:
		beta := cut.Beta[0]
		if beta == 0 {
			return c.CentralCut(tsq)
		}
		return c.DeepCut(beta, tsq)
	case 2:
		if !useParallel {
			return c.DeepCut(cut.Beta[0], tsq)
		}
		return c.ParallelCut(cut.Beta[0], cut.Beta[1], tsq)
	}
	panic("ell: cut must carry one or two offsets")
}

// Dim returns the dimension the calculator was built for.
func (c *Calc) Dim() int { return c.n }
