// Copyright ©2026 The Ellcut Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cutplane

import (
	"fmt"
	"io"
	"os"

	"github.com/convexopt/ellcut/ell"
)

// Printer is a Recorder that writes column-format progress to the
// specified writer as the search contracts. By default it writes to
// standard output.
type Printer struct {
	Writer io.Writer
	// HeadingInterval is the number of rows between repeated column
	// headings. Defaults to 30.
	HeadingInterval int

	sinceHeading int
}

// NewPrinter returns a Printer with the default configuration.
func NewPrinter() *Printer {
	return &Printer{
		Writer:          os.Stdout,
		HeadingInterval: 30,
	}
}

// Record implements the Recorder interface.
func (p *Printer) Record(niter int, tsq float64, status ell.CutStatus) {
	w := p.Writer
	if w == nil {
		w = os.Stdout
	}
	interval := p.HeadingInterval
	if interval == 0 {
		interval = 30
	}
	if p.sinceHeading%interval == 0 {
		fmt.Fprintf(w, "%8s  %14s  %s\n", "Iter", "Tsq", "Status")
	}
	p.sinceHeading++
	fmt.Fprintf(w, "%8d  %14.6e  %s\n", niter, tsq, status)
}
