// Copyright 2017 The Gorb Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"os"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/spf13/cobra"

	"github.com/cpmech/gorb/inp"
	"github.com/cpmech/gorb/out"
	"github.com/cpmech/gorb/rb"
)

func main() {

	// catch errors
	defer func() {
		if err := recover(); err != nil {
			io.PfRed("\nERROR: %v\n", err)
			os.Exit(1)
		}
	}()

	root := &cobra.Command{
		Use:   "gorb",
		Short: "online evaluation of certified reduced-basis transient problems",
	}

	// info command
	root.AddCommand(&cobra.Command{
		Use:   "info <offline-data-dir>",
		Short: "summarize a persisted offline-data directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			nfo, err := rb.ReadOfflineInfo(args[0])
			if err != nil {
				return err
			}
			io.Pf("%v\n", io.ArgsTable("OFFLINE DATA",
				"layout version", "version", nfo.Version,
				"maximum basis size", "n_max", nfo.Nmax,
				"affine stiffness terms", "q_a", nfo.Qa,
				"affine mass terms", "q_m", nfo.Qm,
				"affine forcing terms", "q_f", nfo.Qf,
				"number of outputs", "n_outputs", nfo.NumOutputs,
				"number of time-steps", "n_time_steps", nfo.NumSteps,
				"time-step size", "delta_t", nfo.DeltaT,
				"scheme parameter", "euler_theta", nfo.EulerTheta,
			))
			return nil
		},
	})

	// solve command
	var alpha float64
	solve := &cobra.Command{
		Use:   "solve <query.yaml>",
		Short: "run one online solve described by a yaml query file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := inp.Load(args[0])
			if err != nil {
				return err
			}
			return runQuery(q, alpha)
		},
	}
	solve.Flags().Float64Var(&alpha, "alpha", 1.0, "coercivity lower bound at the query parameter")
	root.AddCommand(solve)

	if err := root.Execute(); err != nil {
		chk.Panic("%v", err)
	}
}

// runQuery loads the offline data, applies the query overrides and performs
// the online solve, reporting the trajectories
func runQuery(q *inp.Query, alpha float64) error {

	// expansion from the persisted affine-term counts; the thetas are read
	// directly from the parameter vector (see rb.ComponentExpansion)
	nfo, err := rb.ReadOfflineInfo(q.DataDir)
	if err != nil {
		return err
	}
	if len(q.Mu) != nfo.Qa+nfo.Qm+nfo.Qf {
		return chk.Err("query: mu must have %d components (q_a=%d + q_m=%d + q_f=%d), found %d",
			nfo.Qa+nfo.Qm+nfo.Qf, nfo.Qa, nfo.Qm, nfo.Qf, len(q.Mu))
	}
	var eva rb.TransientEvaluation
	eva.Init(&rb.ComponentExpansion{Qa: nfo.Qa, Qm: nfo.Qm, Qf: nfo.Qf, QOut: nfo.QOutputs}, &rb.ConstantStability{Alpha: alpha})
	if err = eva.ReadOfflineDataFromFiles(q.DataDir); err != nil {
		return err
	}

	// overrides
	if q.NumSteps >= 0 {
		eva.Tdisc.SetNumSteps(q.NumSteps)
	}
	if q.DeltaT > 0 {
		eva.Tdisc.SetDeltaT(q.DeltaT)
	}
	if q.EulerTheta >= 0 {
		eva.Tdisc.SetEulerTheta(q.EulerTheta)
	}

	// solve
	eva.SetParameters(q.Mu)
	bound, err := eva.Solve(q.N)
	if err != nil {
		return err
	}
	io.Pf("> online solve done: N=%d, %d time-steps\n", q.N, eva.Tdisc.NumSteps())
	io.Pf("> final error bound = %g\n\n", bound)

	// report
	out.Report(&eva)
	if q.Ascii {
		io.Pf("\n%s\n", out.Ascii(&eva))
	}
	if q.Figure {
		out.PlotBounds(&eva, q.DirOut, "bounds")
		io.Pf("> figure saved in %s\n", q.DirOut)
	}
	return nil
}
