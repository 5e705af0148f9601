// Copyright ©2026 The Ellcut Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package oracle provides separation oracles for the cutplane
// drivers: Cobb-Douglas profit maximization in continuous and lattice
// form, FIR lowpass filter design with parallel cuts, and linear
// matrix inequalities backed by the ldl factorization manager.
package oracle // import "github.com/convexopt/ellcut/oracle"

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/convexopt/ellcut/ell"
)

// Profit assesses the Cobb-Douglas profit maximization problem
//
//	maximize   p·A·x₀^α₀·x₁^α₁ - v₀x₀ - v₁x₁
//	subject to x₀ ≤ k
//
// in the log coordinates y = log x, where the production function is
// concave. The target gamma is the best profit found so far; an
// assessment that can raise it returns the new value with a central
// cut.
type Profit struct {
	logPA float64
	logK  float64
	price []float64
	elast []float64
}

// NewProfit returns a profit oracle with unit price p, production
// scale a, input limit k, output elasticities and input prices.
func NewProfit(p, a, k float64, elasticities, priceOut []float64) *Profit {
	if len(elasticities) != 2 || len(priceOut) != 2 {
		panic("oracle: profit model is two-dimensional")
	}
	return &Profit{
		logPA: math.Log(p * a),
		logK:  math.Log(k),
		price: append([]float64(nil), priceOut...),
		elast: append([]float64(nil), elasticities...),
	}
}

// AssessOptim implements the cutplane.OptimOracle contract.
func (o *Profit) AssessOptim(y []float64, gamma float64) (cut ell.Cut, gammaNew float64, shrunk bool) {
	if fj := y[0] - o.logK; fj > 0 {
		return ell.NewCut([]float64{1, 0}, fj), gamma, false
	}
	logCobb := o.logPA + floats.Dot(o.elast, y)
	q0 := o.price[0] * math.Exp(y[0])
	q1 := o.price[1] * math.Exp(y[1])
	vx := q0 + q1
	if fj := math.Log(gamma+vx) - logCobb; fj >= 0 {
		g := []float64{q0/(gamma+vx) - o.elast[0], q1/(gamma+vx) - o.elast[1]}
		return ell.NewCut(g, fj), gamma, false
	}
	gamma = math.Exp(logCobb) - vx
	g := []float64{q0/(gamma+vx) - o.elast[0], q1/(gamma+vx) - o.elast[1]}
	return ell.NewCut(g, 0), gamma, true
}

// ProfitQ assesses the same problem over the integer lattice: the
// query point is rounded to the nearest positive integer quantities,
// the continuous oracle is evaluated there, and the cut is shifted
// back to the query point. The first assessment after a rounding is
// retryable: the driver may come back for an alternative cut when the
// shifted one has no effect.
type ProfitQ struct {
	omega *Profit
	yd    []float64
}

// NewProfitQ wraps a continuous profit oracle for lattice search.
func NewProfitQ(omega *Profit) *ProfitQ {
	return &ProfitQ{omega: omega, yd: make([]float64, 2)}
}

// AssessQ implements the cutplane.QOracle contract.
func (o *ProfitQ) AssessQ(y []float64, gamma float64, retry bool) (cut ell.Cut, x0 []float64, gammaNew float64, shrunk, moreAlt bool) {
	if !retry {
		for i, yi := range y {
			xi := math.Round(math.Exp(yi))
			if xi == 0 {
				xi = 1
			}
			o.yd[i] = math.Log(xi)
		}
	}
	cut, gammaNew, shrunk = o.omega.AssessOptim(o.yd, gamma)
	beta := cut.Beta[0]
	for i := range y {
		beta += cut.Grad[i] * (o.yd[i] - y[i])
	}
	cut.Beta[0] = beta
	return cut, o.yd, gammaNew, shrunk, !retry
}
