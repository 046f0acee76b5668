// Copyright 2017 The Gorb Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_query01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("query01. load yaml query")

	dir := tst.TempDir()
	fn := filepath.Join(dir, "query.yaml")
	data := []byte("data_dir: /tmp/gorb/offline\nn: 3\nmu: [0.1, 2.5]\ndelta_t: 0.05\neuler_theta: 0.5\n")
	if err := os.WriteFile(fn, data, 0644); err != nil {
		tst.Fatalf("cannot write test file: %v", err)
	}

	q, err := Load(fn)
	if err != nil {
		tst.Errorf("load failed: %v", err)
		return
	}
	chk.String(tst, q.DataDir, "/tmp/gorb/offline")
	chk.Int(tst, "n", q.N, 3)
	chk.Array(tst, "mu", 1e-17, q.Mu, []float64{0.1, 2.5})
	chk.Float64(tst, "delta_t", 1e-17, q.DeltaT, 0.05)
	chk.Float64(tst, "euler_theta", 1e-17, q.EulerTheta, 0.5)
	chk.Int(tst, "n_time_steps (default)", q.NumSteps, -1)
}

func Test_query02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("query02. validation catches bad values")

	q := Default()
	q.DataDir = "somewhere"
	q.N = 0
	if err := q.Validate(); err == nil {
		tst.Errorf("validation should have failed for n=0")
		return
	}

	q.N = 2
	q.EulerTheta = 2
	if err := q.Validate(); err == nil {
		tst.Errorf("validation should have failed for euler_theta=2")
	}
}
