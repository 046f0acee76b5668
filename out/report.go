// Copyright 2017 The Gorb Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package out reports the trajectories of the most recent online solve
package out

import (
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/plt"
	"github.com/cpmech/gosl/utl"
	"github.com/guptarohit/asciigraph"

	"github.com/cpmech/gorb/rb"
)

// Report prints a table with the solution error bound and the output values
// per time level
func Report(e *rb.TransientEvaluation) {
	nout := len(e.RBOutputsAllK)
	io.Pf("%6s%14s", "step", "bound")
	for i := 0; i < nout; i++ {
		io.Pf("%14s%14s", io.Sf("out%d", i), io.Sf("outbnd%d", i))
	}
	io.Pf("\n")
	for k := 0; k < len(e.ErrorBoundAllK); k++ {
		io.Pf("%6d%14.6e", k, e.ErrorBoundAllK[k])
		for i := 0; i < nout; i++ {
			io.Pf("%14.6e%14.6e", e.RBOutputsAllK[i][k], e.RBOutputErrorBoundsAllK[i][k])
		}
		io.Pf("\n")
	}
}

// Ascii returns a terminal graph of the solution error bound over time
func Ascii(e *rb.TransientEvaluation) string {
	return asciigraph.Plot(e.ErrorBoundAllK,
		asciigraph.Height(10),
		asciigraph.Width(72),
		asciigraph.Caption("solution error bound per time level"),
	)
}

// PlotBounds saves a figure with the error bound and, when present, the first
// output with its bound band
func PlotBounds(e *rb.TransientEvaluation, dirout, fnkey string) {
	K := len(e.ErrorBoundAllK) - 1
	T := utl.LinSpace(0, float64(K)*e.Tdisc.DeltaT(), K+1)
	plt.Reset(true, nil)
	plt.Plot(T, e.ErrorBoundAllK, &plt.A{C: "r", L: "error bound"})
	if len(e.RBOutputsAllK) > 0 {
		plt.Plot(T, e.RBOutputsAllK[0], &plt.A{C: "b", L: "output 0"})
		plt.Plot(T, e.RBOutputErrorBoundsAllK[0], &plt.A{C: "g", L: "output 0 bound"})
	}
	plt.Gll("t", "value", nil)
	plt.Save(dirout, fnkey)
}
