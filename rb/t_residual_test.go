// Copyright 2017 The Gorb Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rb

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"
)

// setStepState installs a fabricated pair of consecutive reduced solutions
func setStepState(e *TransientEvaluation, N int) {
	e.RBSolution = la.NewVector(N)
	e.OldRBSolution = la.NewVector(N)
	for i := 0; i < N; i++ {
		e.RBSolution[i] = 0.4 + 0.2*float64(i)
		e.OldRBSolution[i] = 0.3 - 0.1*float64(i)
	}
}

func Test_resid01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("resid01. cached and uncached residual norms agree")

	e := buildTwoTermModel(3, 4)
	for N := 1; N <= 3; N++ {
		setStepState(e, N)
		e.CacheOnlineResidualTerms(N)
		fast := e.ComputeResidualDualNorm(N)
		slow := e.UncachedComputeResidualDualNorm(N)
		chk.Float64(tst, io.Sf("N=%d", N), 1e-14, fast, slow)
	}
}

func Test_resid02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("resid02. equivalence holds for all theta values")

	for _, theta := range []float64{0, 0.25, 0.5, 1} {
		e := buildTwoTermModel(2, 4)
		e.Tdisc.SetEulerTheta(theta)
		setStepState(e, 2)
		e.CacheOnlineResidualTerms(2)
		chk.Float64(tst, io.Sf("theta=%v", theta), 1e-14, e.ComputeResidualDualNorm(2), e.UncachedComputeResidualDualNorm(2))
	}
}

func Test_resid03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("resid03. stale cache after a parameter change panics")

	defer chk.RecoverTstPanicIsOK(tst)
	e := buildTwoTermModel(2, 4)
	setStepState(e, 2)
	e.CacheOnlineResidualTerms(2)
	e.SetParameters([]float64{0.9, 0.1})
	e.ComputeResidualDualNorm(2)
}

func Test_resid04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("resid04. stale cache after a basis-size change panics")

	defer chk.RecoverTstPanicIsOK(tst)
	e := buildTwoTermModel(3, 4)
	setStepState(e, 3)
	e.CacheOnlineResidualTerms(2)
	e.ComputeResidualDualNorm(3)
}

func Test_resid05(tst *testing.T) {

	//verbose()
	chk.PrintTitle("resid05. residual scaling factor and override")

	e := buildTwoTermModel(2, 4)
	e.Tdisc.SetDeltaT(0.2)
	chk.Float64(tst, "default scaling", 1e-15, e.ResidualScalingNumer(4), 0.05)

	e.Bound = squaredBound{}
	chk.Float64(tst, "override scaling", 1e-15, e.ResidualScalingNumer(4), 0.2/16.0)
}

// squaredBound is an alternate bound formula scaling by 1/alpha^2
type squaredBound struct{}

func (squaredBound) ResidualScalingNumer(e *TransientEvaluation, alphaLB float64) float64 {
	return e.Tdisc.DeltaT() / (alphaLB * alphaLB)
}

func Test_resid06(tst *testing.T) {

	//verbose()
	chk.PrintTitle("resid06. non-positive alphaLB panics")

	defer chk.RecoverTstPanicIsOK(tst)
	e := buildTwoTermModel(2, 4)
	e.ResidualScalingNumer(0)
}
