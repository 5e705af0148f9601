// Copyright ©2026 The Ellcut Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package oracle

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestProfitConstraintCut(t *testing.T) {
	omega := NewProfit(20, 40, 30.5, []float64{0.1, 0.4}, []float64{10, 35})

	// beyond the input limit: the constraint cut fires
	y := []float64{math.Log(30.5) + 0.2, 0}
	cut, gamma, shrunk := omega.AssessOptim(y, 0)
	require.False(t, shrunk)
	require.Equal(t, 0.0, gamma)
	require.Equal(t, []float64{1, 0}, cut.Grad)
	require.InDelta(t, 0.2, cut.Beta[0], 1e-12)
}

func TestProfitImprovingCut(t *testing.T) {
	omega := NewProfit(20, 40, 30.5, []float64{0.1, 0.4}, []float64{10, 35})

	// a modest interior point improves on the initial target of zero
	y := []float64{math.Log(10), math.Log(10)}
	cut, gamma, shrunk := omega.AssessOptim(y, 0)
	require.True(t, shrunk)
	require.Greater(t, gamma, 0.0)
	require.Equal(t, 0.0, cut.Beta[0], "an improving cut is central")

	// the profit at y is exactly the new target
	cobb := 20 * 40 * math.Pow(10, 0.1) * math.Pow(10, 0.4)
	require.InDelta(t, cobb-10*10-35*10, gamma, 1e-9)

	// asking with an unreachable target yields a deep cut
	cut, gamma2, shrunk := omega.AssessOptim(y, gamma+1)
	require.False(t, shrunk)
	require.Equal(t, gamma+1, gamma2)
	require.Greater(t, cut.Beta[0], 0.0)
}

func TestProfitQRoundsToLattice(t *testing.T) {
	omega := NewProfitQ(NewProfit(20, 40, 30.5, []float64{0.1, 0.4}, []float64{10, 35}))

	y := []float64{math.Log(10.4), math.Log(20.6)}
	_, x0, _, _, moreAlt := omega.AssessQ(y, 0, false)
	require.True(t, moreAlt)
	require.InDelta(t, math.Log(10), x0[0], 1e-12)
	require.InDelta(t, math.Log(21), x0[1], 1e-12)

	// a retry reuses the lattice point and reports no further
	// alternatives
	_, x1, _, _, moreAlt := omega.AssessQ(y, 0, true)
	require.False(t, moreAlt)
	require.Equal(t, x0, x1)

	// quantities below one clamp to the lattice point one
	_, x2, _, _, _ := omega.AssessQ([]float64{-3, -3}, 0, false)
	require.Equal(t, []float64{0, 0}, x2)
}
