// Copyright ©2026 The Ellcut Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package oracle

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLowpassCutShapes(t *testing.T) {
	omega := NewLowpassCase(8)

	// the zero response violates the passband lower bound: a
	// parallel cut with ordered positive offsets
	x := make([]float64, 8)
	cut := omega.AssessFeas(x)
	require.NotNil(t, cut)
	require.True(t, cut.IsParallel())
	require.Greater(t, cut.Beta[0], 0.0)
	require.LessOrEqual(t, cut.Beta[0], cut.Beta[1])
	require.Len(t, cut.Grad, 8)

	// an excessive flat response violates the passband upper bound
	x[0] = 4
	cut = omega.AssessFeas(x)
	require.NotNil(t, cut)
	require.True(t, cut.IsParallel())
	require.Greater(t, cut.Beta[0], 0.0)
	require.LessOrEqual(t, cut.Beta[0], cut.Beta[1])
}

// The round-robin cursor must rotate between calls so repeated
// assessments spread over the grid.
func TestLowpassRoundRobin(t *testing.T) {
	omega := NewLowpassCase(8)
	x := make([]float64, 8)
	first := omega.AssessFeas(x)
	second := omega.AssessFeas(x)
	require.NotNil(t, first)
	require.NotNil(t, second)
	require.NotEqual(t, first.Grad, second.Grad)
}
