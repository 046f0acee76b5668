// Copyright 2017 The Gorb Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rb

import (
	"math"
)

// buildDecayModel creates the single-affine-term model with identity mass and
// stiffness, zero forcing and unit initial condition on the first basis
// vector. With dt=1 and theta=1 the reduced trajectory is x_k = x_{k-1}/2
func buildDecayModel(Nmax, nsteps int) (e *TransientEvaluation) {
	expansion := &ConstantExpansion{
		CoefsA:   []float64{1},
		CoefsM:   []float64{1},
		CoefsF:   []float64{0},
		CoefsOut: [][]float64{{1}},
	}
	e = new(TransientEvaluation)
	e.Init(expansion, &ConstantStability{Alpha: 1})
	e.ResizeDataStructures(Nmax)
	for i := 0; i < Nmax; i++ {
		e.RBAq[0][i][i] = 1
		e.RBMq[0][i][i] = 1
		e.RBL2Matrix[i][i] = 1
		e.RBOutputVectors[0][0][i] = 1
		e.AqAqNorms[0][i][i] = 1
		e.MqMqNorms[0][i][i] = 1
		e.AqMqNorms[0][0][i][i] = 1
	}
	e.OutputDualNorms[0][0] = 1
	for n := 1; n <= Nmax; n++ {
		e.RBInitialConditionAllN[n-1][0] = 1
	}
	e.Tdisc.SetDeltaT(1)
	e.Tdisc.SetEulerTheta(1)
	e.Tdisc.SetNumSteps(nsteps)
	e.SetParameters([]float64{1})
	return
}

// buildTwoTermModel creates a two-affine-term model (Qa=Qm=Qf=2, one output
// with two terms) with deterministic, parameter-dependent coefficients and
// densely filled representor-norm tables
func buildTwoTermModel(Nmax, nsteps int) (e *TransientEvaluation) {
	expansion := &FuncExpansion{
		FnA: []func(mu []float64) float64{
			func(mu []float64) float64 { return 1 + mu[0] },
			func(mu []float64) float64 { return mu[1] },
		},
		FnM: []func(mu []float64) float64{
			func(mu []float64) float64 { return 1 },
			func(mu []float64) float64 { return 0.5 * mu[0] },
		},
		FnF: []func(mu []float64) float64{
			func(mu []float64) float64 { return mu[1] },
			func(mu []float64) float64 { return 1 - mu[0] },
		},
		FnOut: [][]func(mu []float64) float64{{
			func(mu []float64) float64 { return 1 },
			func(mu []float64) float64 { return mu[0] },
		}},
	}
	e = new(TransientEvaluation)
	e.Init(expansion, &ConstantStability{Alpha: 0.5})
	e.ResizeDataStructures(Nmax)

	// deterministic fill; diagonally dominant operators keep the march stable
	val := func(args ...int) float64 {
		v := 0.0
		for p, a := range args {
			v += float64(a+1) / math.Pow(10, float64(p+1))
		}
		return v
	}
	for q := 0; q < 2; q++ {
		for i := 0; i < Nmax; i++ {
			e.RBFq[q][i] = val(q, i)
			for j := 0; j < Nmax; j++ {
				e.RBAq[q][i][j] = val(q, i, j)
				e.RBMq[q][i][j] = val(q, j, i)
			}
			e.RBAq[q][i][i] += 4
			e.RBMq[q][i][i] += 4
			e.RBL2Matrix[i][i] = 1
		}
	}
	for q := 0; q < symPairs(2); q++ {
		e.FqNorms[q] = val(q)
		for i := 0; i < Nmax; i++ {
			for j := 0; j < Nmax; j++ {
				e.AqAqNorms[q][i][j] = val(q, i, j)
				e.MqMqNorms[q][i][j] = val(q, j, i)
			}
		}
	}
	for q1 := 0; q1 < 2; q1++ {
		for q2 := 0; q2 < 2; q2++ {
			for i := 0; i < Nmax; i++ {
				e.FqAqNorms[q1][q2][i] = val(q1, q2, i)
				e.FqMqNorms[q1][q2][i] = val(q2, q1, i)
				for j := 0; j < Nmax; j++ {
					e.AqMqNorms[q1][q2][i][j] = val(q1, q2, i, j)
				}
			}
			e.RBOutputVectors[0][q1][q2] = val(q1, q2)
		}
	}
	for q := 0; q < symPairs(2); q++ {
		e.OutputDualNorms[0][q] = val(q)
	}
	for n := 1; n <= Nmax; n++ {
		for i := 0; i < n; i++ {
			e.RBInitialConditionAllN[n-1][i] = val(n, i)
		}
		e.InitialL2ErrorAllN[n-1] = 0.01 / float64(n)
	}
	e.Tdisc.SetDeltaT(0.1)
	e.Tdisc.SetEulerTheta(0.5)
	e.Tdisc.SetNumSteps(nsteps)
	e.SetParameters([]float64{0.3, 0.7})
	return
}
