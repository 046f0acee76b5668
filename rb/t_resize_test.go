// Copyright 2017 The Gorb Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rb

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

// icStub projects a unit initial condition onto the first basis vector
type icStub struct{}

func (icStub) Project(N int) (coefs []float64, l2err float64, err error) {
	coefs = make([]float64, N)
	coefs[0] = 1
	l2err = 0.1 / float64(N)
	return
}

func Test_resize01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("resize01. growth preserves previously computed entries")

	e := buildTwoTermModel(2, 6)
	bound1, err := e.Solve(2)
	if err != nil {
		tst.Errorf("solve failed: %v", err)
		return
	}
	u1 := make([]float64, 7)
	for k := 0; k <= 6; k++ {
		u1[k] = e.RBTemporalSolutionData[k][0]
	}

	// grow; the new rows/columns stay zero, which must not disturb N=2 solves
	e.ResizeDataStructures(5)
	chk.Int(tst, "Nmax", e.Nmax, 5)
	bound2, err := e.Solve(2)
	if err != nil {
		tst.Errorf("solve after resize failed: %v", err)
		return
	}
	chk.Float64(tst, "bound before/after resize", 1e-15, bound1, bound2)
	for k := 0; k <= 6; k++ {
		chk.Float64(tst, "u_k before/after resize", 1e-15, u1[k], e.RBTemporalSolutionData[k][0])
	}
}

func Test_resize02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("resize02. resizing is idempotent and never shrinks")

	e := buildTwoTermModel(3, 2)
	ic := make([]float64, 3)
	copy(ic, e.RBInitialConditionAllN[2])
	e.ResizeDataStructures(3)
	e.ResizeDataStructures(2)
	chk.Int(tst, "Nmax", e.Nmax, 3)
	chk.Array(tst, "initial condition untouched", 1e-17, e.RBInitialConditionAllN[2], ic)
}

func Test_resize03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("resize03. initial-condition projection is delegated")

	expansion := &ConstantExpansion{CoefsA: []float64{1}, CoefsM: []float64{1}, CoefsF: []float64{0}}
	e := new(TransientEvaluation)
	e.Init(expansion, &ConstantStability{Alpha: 1})
	e.ICProj = icStub{}
	if err := e.ResizeDataStructures(3); err != nil {
		tst.Errorf("resize failed: %v", err)
		return
	}
	for n := 1; n <= 3; n++ {
		chk.Int(tst, "len(ic)", len(e.RBInitialConditionAllN[n-1]), n)
		chk.Float64(tst, "ic[0]", 1e-17, e.RBInitialConditionAllN[n-1][0], 1)
		chk.Float64(tst, "l2err", 1e-17, e.InitialL2ErrorAllN[n-1], 0.1/float64(n))
	}
}

func Test_resize04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("resize04. representor slots grow and can be released")

	e := buildTwoTermModel(2, 2)
	chk.Int(tst, "representor slots", len(e.MqRepresentor[0]), 2)
	e.ResizeDataStructures(4)
	chk.Int(tst, "representor slots after resize", len(e.MqRepresentor[0]), 4)
	e.ClearRieszRepresentors()
	for qm := range e.MqRepresentor {
		for i, r := range e.MqRepresentor[qm] {
			if r != nil {
				tst.Errorf("representor [%d][%d] was not released", qm, i)
				return
			}
		}
	}
}

// icFlaky fails the projection at a given basis size once, then succeeds
type icFlaky struct {
	failAt int
	failed bool
}

func (o *icFlaky) Project(N int) (coefs []float64, l2err float64, err error) {
	if N == o.failAt && !o.failed {
		o.failed = true
		return nil, 0, chk.Err("projection failed for N=%d", N)
	}
	return icStub{}.Project(N)
}

func Test_resize05(tst *testing.T) {

	//verbose()
	chk.PrintTitle("resize05. failed growth installs nothing and can be retried")

	expansion := &ConstantExpansion{CoefsA: []float64{1}, CoefsM: []float64{1}, CoefsF: []float64{0}}
	e := new(TransientEvaluation)
	e.Init(expansion, &ConstantStability{Alpha: 1})
	e.ICProj = &icFlaky{failAt: 3}
	if err := e.ResizeDataStructures(4); err == nil {
		tst.Errorf("resize should have failed at the flaky projection")
		return
	}
	chk.Int(tst, "Nmax untouched", e.Nmax, 0)
	chk.Int(tst, "no initial conditions installed", len(e.RBInitialConditionAllN), 0)
	chk.Int(tst, "no projection errors installed", len(e.InitialL2ErrorAllN), 0)

	// the retry must produce exactly one row per basis size
	if err := e.ResizeDataStructures(4); err != nil {
		tst.Errorf("retried resize failed: %v", err)
		return
	}
	chk.Int(tst, "Nmax", e.Nmax, 4)
	chk.Int(tst, "rows", len(e.RBInitialConditionAllN), 4)
	for n := 1; n <= 4; n++ {
		chk.Int(tst, "len(ic)", len(e.RBInitialConditionAllN[n-1]), n)
		chk.Float64(tst, "ic[0]", 1e-17, e.RBInitialConditionAllN[n-1][0], 1)
		chk.Float64(tst, "l2err", 1e-17, e.InitialL2ErrorAllN[n-1], 0.1/float64(n))
	}
}
