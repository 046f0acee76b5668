// Copyright 2017 The Gorb Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package ana implements closed-form solutions used to verify the online solver
package ana

import (
	"github.com/cpmech/gosl/chk"
)

// SingleModeTheta computes the exact trajectory of the scalar generalized
// Euler recurrence
//
//   (M/dt + theta*L) u_k = (M/dt - (1-theta)*L) u_{k-1} + F
//
// which is the N=1, single-affine-term reduction of the online solve. The
// named schemes are recovered with theta=0 (Forward Euler), theta=0.5
// (Crank-Nicolson) and theta=1 (Backward Euler)
type SingleModeTheta struct {
	M     float64 // mass coefficient
	L     float64 // stiffness coefficient
	F     float64 // forcing
	U0    float64 // initial value
	Dt    float64 // time-step size
	Theta float64 // scheme parameter
}

// Growth returns the per-step amplification factor
func (o *SingleModeTheta) Growth() float64 {
	den := o.M/o.Dt + o.Theta*o.L
	if den == 0 {
		chk.Panic("degenerate recurrence: M/dt + theta*L = 0 (M=%v dt=%v theta=%v L=%v)", o.M, o.Dt, o.Theta, o.L)
	}
	return (o.M/o.Dt - (1-o.Theta)*o.L) / den
}

// Value returns u_k
func (o *SingleModeTheta) Value(k int) float64 {
	g := o.Growth()
	if o.L == 0 {
		// pure integration of the forcing
		u := o.U0
		for i := 0; i < k; i++ {
			u = g*u + o.F/(o.M/o.Dt)
		}
		return u
	}
	uinf := o.F / o.L // steady state
	gk := 1.0
	for i := 0; i < k; i++ {
		gk *= g
	}
	return uinf + gk*(o.U0-uinf)
}

// Trajectory returns u_0 .. u_K
func (o *SingleModeTheta) Trajectory(K int) (u []float64) {
	u = make([]float64, K+1)
	for k := 0; k <= K; k++ {
		u[k] = o.Value(k)
	}
	return
}
