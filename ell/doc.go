// Copyright ©2026 The Ellcut Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ell provides ellipsoid search spaces for cutting-plane
// methods. An ellipsoid is shrunk around the feasible set by applying
// separating half-space cuts; Ellipsoid keeps the shape matrix
// explicitly while EllStable keeps its Cholesky factor for numerical
// robustness on long runs. The cut classification and the update
// coefficients are computed by Calc.
package ell // import "github.com/convexopt/ellcut/ell"
