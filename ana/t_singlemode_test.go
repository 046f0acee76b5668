// Copyright 2017 The Gorb Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ana

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_singlemode01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("singlemode01. backward Euler decay")

	// M=1 L=1 F=0 u0=1 dt=1 theta=1  =>  u_k = u_{k-1}/2
	sm := SingleModeTheta{M: 1, L: 1, F: 0, U0: 1, Dt: 1, Theta: 1}
	chk.Float64(tst, "growth", 1e-17, sm.Growth(), 0.5)
	chk.Float64(tst, "u5", 1e-17, sm.Value(5), 1.0/32.0)
}

func Test_singlemode02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("singlemode02. named schemes")

	// forward Euler: g = 1 - dt*L
	fe := SingleModeTheta{M: 1, L: 2, F: 0, U0: 1, Dt: 0.1, Theta: 0}
	chk.Float64(tst, "FE growth", 1e-15, fe.Growth(), 1-0.1*2)

	// Crank-Nicolson: g = (1 - dt*L/2)/(1 + dt*L/2)
	cn := SingleModeTheta{M: 1, L: 2, F: 0, U0: 1, Dt: 0.1, Theta: 0.5}
	chk.Float64(tst, "CN growth", 1e-15, cn.Growth(), (1-0.1)/(1+0.1))

	// backward Euler: g = 1/(1 + dt*L)
	be := SingleModeTheta{M: 1, L: 2, F: 0, U0: 1, Dt: 0.1, Theta: 1}
	chk.Float64(tst, "BE growth", 1e-15, be.Growth(), 1.0/1.2)
}

func Test_singlemode03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("singlemode03. nonzero forcing approaches steady state")

	sm := SingleModeTheta{M: 1, L: 4, F: 2, U0: 0, Dt: 0.5, Theta: 1}
	u := sm.Trajectory(200)
	chk.Float64(tst, "u_200 ~ F/L", 1e-10, u[200], 0.5)
}
