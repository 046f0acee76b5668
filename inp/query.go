// Copyright 2017 The Gorb Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package inp reads the online-query input data
package inp

import (
	"os"

	"github.com/cpmech/gosl/chk"
	"gopkg.in/yaml.v3"
)

// Query describes one online evaluation request: which offline-data
// directory to load, the basis size, the parameter vector, and optional
// overrides of the persisted temporal discretization
type Query struct {
	DataDir    string    `yaml:"data_dir"`     // directory with the persisted offline data
	N          int       `yaml:"n"`            // basis size for the online solve
	Mu         []float64 `yaml:"mu"`           // parameter vector
	NumSteps   int       `yaml:"n_time_steps"` // override; negative keeps the persisted value
	DeltaT     float64   `yaml:"delta_t"`      // override; zero keeps the persisted value
	EulerTheta float64   `yaml:"euler_theta"`  // override; negative keeps the persisted value
	Ascii      bool      `yaml:"ascii"`        // print terminal graph of the error bound
	Figure     bool      `yaml:"figure"`       // save a figure with bound and outputs
	DirOut     string    `yaml:"dir_out"`      // output directory for figures
}

// Default returns a Query with default values
func Default() *Query {
	return &Query{
		NumSteps:   -1,
		DeltaT:     0,
		EulerTheta: -1,
		Ascii:      true,
		DirOut:     "/tmp/gorb",
	}
}

// Load reads a Query from a yaml file
func Load(path string) (q *Query, err error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, chk.Err("cannot read query file %q: %v", path, err)
	}
	q = Default()
	if err = yaml.Unmarshal(b, q); err != nil {
		return nil, chk.Err("query file %q is invalid: %v", path, err)
	}
	if err = q.Validate(); err != nil {
		return nil, err
	}
	return
}

// Validate checks the query data
func (o *Query) Validate() error {
	if o.DataDir == "" {
		return chk.Err("query: data_dir must be given")
	}
	if o.N < 1 {
		return chk.Err("query: basis size n must be at least 1. n=%d is invalid", o.N)
	}
	if o.EulerTheta > 1 {
		return chk.Err("query: euler_theta must be within [0,1]. theta=%v is invalid", o.EulerTheta)
	}
	if o.DeltaT < 0 {
		return chk.Err("query: delta_t must be positive. dt=%v is invalid", o.DeltaT)
	}
	return nil
}
