// Copyright 2017 The Gorb Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rb

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
	"github.com/cpmech/gosl/utl"
)

// Solve performs the online time-dependent solve with the first N basis
// functions at the current parameter, marching the generalized Euler
// recurrence
//
//   (M/dt + theta*A) u_k = (M/dt - (1-theta)*A) u_{k-1} + f(t_k,t_{k-1})
//
// where M, A and f are the theta-weighted affine sums of the reduced
// operators. At every time level the outputs, the output error bounds and the
// solution error bound are computed and recorded; the returned value is the
// error bound at the final time level. Trajectories from the previous Solve
// call are overwritten.
//
// When the Param capability is set the parameter is re-evaluated at each time
// level, the reduced system is reassembled and the uncached residual path is
// used; otherwise the problem is treated as LTI and the cached residual terms
// are employed
func (o *TransientEvaluation) Solve(N int) (bound float64, err error) {

	// contract checks
	o.checkBasisSize(N)
	if o.Stability == nil {
		chk.Panic("a stability (coercivity) estimator must be set before calling Solve")
	}
	K := o.Tdisc.NumSteps()
	if K > 0 && o.Tdisc.DeltaT() <= 0 {
		chk.Panic("time-step size must be set before calling Solve with %d time-steps", K)
	}

	// trajectory storage
	nout := o.Expansion.NumOutputs()
	o.RBOutputsAllK = utl.Alloc(nout, K+1)
	o.RBOutputErrorBoundsAllK = utl.Alloc(nout, K+1)
	o.ErrorBoundAllK = make([]float64, K+1)
	o.RBTemporalSolutionData = make([]la.Vector, K+1)

	// time-varying parameter path?
	timeVarying := o.Param != nil
	if timeVarying {
		o.SetParameters(o.Param(0))
	}

	// initial condition
	o.Tdisc.SetTimeStep(0)
	o.RBSolution = la.NewVector(N)
	copy(o.RBSolution, o.RBInitialConditionAllN[N-1])
	o.OldRBSolution = la.NewVector(N)
	errSum := math.Pow(o.InitialL2ErrorAllN[N-1], 2)
	o.ErrorBoundAllK[0] = math.Sqrt(errSum)
	o.RBTemporalSolutionData[0] = o.RBSolution.GetCopy()
	o.recordOutputs(0)
	if K == 0 {
		return o.ErrorBoundAllK[0], nil
	}

	// operators (constant over the whole march in the LTI case)
	lhs, rhsMat, fvec := o.assembleSystem(N)
	if !timeVarying {
		o.CacheOnlineResidualTerms(N)
	}

	// time loop
	rhs := la.NewVector(N)
	fblend := fvec
	for k := 1; k <= K; k++ {
		o.Tdisc.SetTimeStep(k)

		// reassemble for the new parameter, blending the forcing terms of
		// the two time levels
		if timeVarying {
			fprev := fvec
			o.SetParameters(o.Param(o.Tdisc.Time()))
			lhs, rhsMat, fvec = o.assembleSystem(N)
			theta := o.Tdisc.EulerTheta()
			fblend = la.NewVector(N)
			la.VecAdd(fblend, theta, fvec, 1-theta, fprev)
		}

		// advance
		o.OldRBSolution = o.RBSolution
		la.MatVecMul(rhs, 1, rhsMat, o.OldRBSolution)
		la.VecAdd(rhs, 1, rhs, 1, fblend)
		x := la.NewVector(N)
		if err = denSolve(x, lhs, rhs); err != nil {
			return 0, chk.Err("online solve with N=%d failed at time step %d: %v", N, k, err)
		}
		o.RBSolution = x
		o.RBTemporalSolutionData[k] = x.GetCopy()

		// error bound
		var eps float64
		if timeVarying {
			eps = o.UncachedComputeResidualDualNorm(N)
		} else {
			eps = o.ComputeResidualDualNorm(N)
		}
		alphaLB := o.Stability.AlphaLB(o.Mu)
		errSum += o.ResidualScalingNumer(alphaLB) * eps * eps
		o.ErrorBoundAllK[k] = math.Sqrt(errSum)

		// outputs
		o.recordOutputs(k)
	}
	return o.ErrorBoundAllK[K], nil
}

// assembleSystem builds the N-by-N left- and right-hand-side matrices of the
// generalized Euler recurrence and the reduced forcing vector, all from the
// affine sums weighted by the current theta coefficients
func (o *TransientEvaluation) assembleSystem(N int) (lhs, rhsMat *la.Matrix, fvec la.Vector) {
	Qa, Qm, Qf := o.Expansion.NumA(), o.Expansion.NumM(), o.Expansion.NumF()
	dt := o.Tdisc.DeltaT()
	theta := o.Tdisc.EulerTheta()
	lhs = la.NewMatrix(N, N)
	rhsMat = la.NewMatrix(N, N)
	for i := 0; i < N; i++ {
		for j := 0; j < N; j++ {
			mass, stiff := 0.0, 0.0
			for qm := 0; qm < Qm; qm++ {
				mass += o.Expansion.ThetaM(qm, o.Mu) * o.RBMq[qm][i][j]
			}
			for qa := 0; qa < Qa; qa++ {
				stiff += o.Expansion.ThetaA(qa, o.Mu) * o.RBAq[qa][i][j]
			}
			lhs.Set(i, j, mass/dt+theta*stiff)
			rhsMat.Set(i, j, mass/dt-(1-theta)*stiff)
		}
	}
	fvec = la.NewVector(N)
	for qf := 0; qf < Qf; qf++ {
		tf := o.Expansion.ThetaF(qf, o.Mu)
		for i := 0; i < N; i++ {
			fvec[i] += tf * o.RBFq[qf][i]
		}
	}
	return
}

// recordOutputs stores the output values and output error bounds at time
// level k. Each output bound is the solution bound scaled by the output's
// dual norm at the current parameter
func (o *TransientEvaluation) recordOutputs(k int) {
	bound := o.ErrorBoundAllK[k]
	for i := 0; i < o.Expansion.NumOutputs(); i++ {
		o.RBOutputsAllK[i][k] = o.EvalOutput(i, o.RBSolution)
		o.RBOutputErrorBoundsAllK[i][k] = bound * o.EvalOutputDualNorm(i)
	}
}

// denSolve solves the dense system A*x = b, converting failures of the
// underlying kernel (singular or ill-conditioned A) into errors
func denSolve(x la.Vector, A *la.Matrix, b la.Vector) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = chk.Err("dense solver kernel failed: %v", r)
		}
	}()
	la.DenSolve(x, A, b, true)
	for i := range x {
		if math.IsNaN(x[i]) || math.IsInf(x[i], 0) {
			return chk.Err("solution vector has non-finite entries (singular system)")
		}
	}
	return
}
