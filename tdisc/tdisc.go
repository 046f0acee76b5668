// Copyright 2017 The Gorb Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package tdisc holds the generalized Euler ("theta") temporal discretization data
package tdisc

import (
	"github.com/cpmech/gosl/chk"
)

// Discretization holds the parameters of a generalized Euler scheme:
//  eulerTheta = 0   => Forward Euler
//  eulerTheta = 0.5 => Crank-Nicolson
//  eulerTheta = 1   => Backward Euler
// The current step index always satisfies 0 <= currentStep <= nSteps.
type Discretization struct {
	deltaT      float64 // time-step size
	eulerTheta  float64 // scheme parameter
	currentStep int     // current time-step index
	nSteps      int     // total number of time-steps
}

// DeltaT returns the time-step size
func (o *Discretization) DeltaT() float64 { return o.deltaT }

// SetDeltaT sets the time-step size. dt must be positive
func (o *Discretization) SetDeltaT(dt float64) {
	if dt <= 0 {
		chk.Panic("time-step size must be positive. dt=%v is invalid", dt)
	}
	o.deltaT = dt
}

// EulerTheta returns the scheme parameter
func (o *Discretization) EulerTheta() float64 { return o.eulerTheta }

// SetEulerTheta sets the scheme parameter. theta must be within [0,1]
func (o *Discretization) SetEulerTheta(theta float64) {
	if theta < 0 || theta > 1 {
		chk.Panic("euler theta must be within [0,1]. theta=%v is invalid", theta)
	}
	o.eulerTheta = theta
}

// TimeStep returns the current time-step index
func (o *Discretization) TimeStep() int { return o.currentStep }

// SetTimeStep sets the current time-step index. k must be within [0,nSteps]
func (o *Discretization) SetTimeStep(k int) {
	if k < 0 || k > o.nSteps {
		chk.Panic("time-step index must be within [0,%d]. k=%d is invalid", o.nSteps, k)
	}
	o.currentStep = k
}

// NumSteps returns the total number of time-steps
func (o *Discretization) NumSteps() int { return o.nSteps }

// SetNumSteps sets the total number of time-steps. K must be non-negative and
// cannot drop below the current step index
func (o *Discretization) SetNumSteps(K int) {
	if K < 0 || K < o.currentStep {
		chk.Panic("number of time-steps must be within [%d,inf). K=%d is invalid", o.currentStep, K)
	}
	o.nSteps = K
}

// Time returns the physical time corresponding to the current step
func (o *Discretization) Time() float64 {
	return float64(o.currentStep) * o.deltaT
}
