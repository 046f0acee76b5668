// Copyright 2017 The Gorb Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rb

import (
	"github.com/cpmech/gosl/la"
	"github.com/cpmech/gosl/utl"

	"github.com/cpmech/gorb/tdisc"
)

// TransientEvaluation extends Evaluation with the data required to perform
// online solves and a posteriori error estimation for transient (generalized
// Euler) problems. One instance per worker; instances share no mutable state
type TransientEvaluation struct {
	Evaluation

	// temporal discretization
	Tdisc tdisc.Discretization

	// capabilities
	ICProj ICProjector                  // initial-condition projection (offline stage)
	Bound  BoundFormula                 // error-bound formula; nil means TransientBound
	Param  func(t float64) []float64    // optional time-varying parameter path

	// reduced operators [offline]
	RBL2Matrix [][]float64   // [Nmax][Nmax] reduced L2 (mass inner product) matrix
	RBMq       [][][]float64 // [Qm][Nmax][Nmax] reduced mass matrices

	// trajectories from the most recent Solve
	RBOutputsAllK           [][]float64 // [nout][K+1] output values per time level
	RBOutputErrorBoundsAllK [][]float64 // [nout][K+1] output error bounds per time level
	OldRBSolution           la.Vector   // reduced solution at the previous time level
	RBTemporalSolutionData  []la.Vector // [K+1] reduced solution per time level
	ErrorBoundAllK          []float64   // [K+1] solution error bound per time level

	// initial-condition data per basis size [offline]
	InitialL2ErrorAllN     []float64   // [Nmax] initial L2 projection error
	RBInitialConditionAllN [][]float64 // [Nmax] projected initial condition (entry N-1 has length N)

	// representor norms [offline]
	FqMqNorms [][][]float64   // [Qf][Qm][Nmax] forcing-mass inner products
	MqMqNorms [][][]float64   // [Qm(Qm+1)/2][Nmax][Nmax] mass-mass inner products
	AqMqNorms [][][][]float64 // [Qa][Qm][Nmax][Nmax] stiffness-mass inner products

	// cached residual terms, valid for a fixed (mu, N) only
	cachedFqTerm float64
	cachedFqAq   la.Vector
	cachedFqMq   la.Vector
	cachedAqAq   *la.Matrix
	cachedAqMq   *la.Matrix
	cachedMqMq   *la.Matrix
	cacheN       int       // basis size the cache was computed for; 0 means no cache
	cacheMu      []float64 // parameter the cache was computed for

	// mass-operator Riesz representors; basis dependent, hence owned here.
	// Released by ClearRieszRepresentors once the offline stage is finished
	MqRepresentor [][]la.Vector // [Qm][N] full-order vectors
}

// Init allocates the affine-term-indexed dimensions of all data structures.
// Basis-size dimensions start at zero; call ResizeDataStructures afterwards
func (o *TransientEvaluation) Init(expansion ThetaExpansion, stability StabilityEstimator) {
	o.InitBase(expansion, stability)
	Qa, Qm, Qf := expansion.NumA(), expansion.NumM(), expansion.NumF()
	o.RBL2Matrix = utl.Alloc(0, 0)
	o.RBMq = utl.Deep3alloc(Qm, 0, 0)
	o.FqMqNorms = utl.Deep3alloc(Qf, Qm, 0)
	o.MqMqNorms = utl.Deep3alloc(symPairs(Qm), 0, 0)
	o.AqMqNorms = utl.Deep4alloc(Qa, Qm, 0, 0)
	o.MqRepresentor = make([][]la.Vector, Qm)
}

// ResizeDataStructures grows all basis-size-indexed quantities to support
// bases up to NmaxNew. The call is idempotent for sizes already reached and
// never destroys entries computed for smaller basis sizes. The new per-N
// initial-condition rows are obtained from the ICProj capability; without a
// projector the initial condition is zero with zero projection error
func (o *TransientEvaluation) ResizeDataStructures(NmaxNew int) (err error) {
	if NmaxNew <= o.Nmax {
		return
	}
	Nold := o.Nmax
	o.resizeBase(NmaxNew)
	o.RBL2Matrix = growSquare(o.RBL2Matrix, NmaxNew)
	for q := range o.RBMq {
		o.RBMq[q] = growSquare(o.RBMq[q], NmaxNew)
	}
	for qf := range o.FqMqNorms {
		for qm := range o.FqMqNorms[qf] {
			o.FqMqNorms[qf][qm] = growVector(o.FqMqNorms[qf][qm], NmaxNew)
		}
	}
	for q := range o.MqMqNorms {
		o.MqMqNorms[q] = growSquare(o.MqMqNorms[q], NmaxNew)
	}
	for qa := range o.AqMqNorms {
		for qm := range o.AqMqNorms[qa] {
			o.AqMqNorms[qa][qm] = growSquare(o.AqMqNorms[qa][qm], NmaxNew)
		}
	}
	for qm := range o.MqRepresentor {
		for len(o.MqRepresentor[qm]) < NmaxNew {
			o.MqRepresentor[qm] = append(o.MqRepresentor[qm], nil)
		}
	}
	// stage the new per-N rows first so a failed projection leaves the
	// already-installed entries untouched and the call can be retried
	newCoefs := make([][]float64, 0, NmaxNew-Nold)
	newErrs := make([]float64, 0, NmaxNew-Nold)
	for N := Nold + 1; N <= NmaxNew; N++ {
		var coefs []float64
		var l2err float64
		if o.ICProj != nil {
			coefs, l2err, err = o.ICProj.Project(N)
			if err != nil {
				return
			}
		} else {
			coefs = make([]float64, N)
		}
		newCoefs = append(newCoefs, coefs)
		newErrs = append(newErrs, l2err)
	}
	o.RBInitialConditionAllN = append(o.RBInitialConditionAllN, newCoefs...)
	o.InitialL2ErrorAllN = append(o.InitialL2ErrorAllN, newErrs...)
	o.Nmax = NmaxNew
	return
}

// ClearRieszRepresentors releases the mass-operator Riesz representors. The
// representor norm tables needed for online queries are retained, so this is
// safe once the offline (greedy) stage has finished
func (o *TransientEvaluation) ClearRieszRepresentors() {
	for qm := range o.MqRepresentor {
		for i := range o.MqRepresentor[qm] {
			o.MqRepresentor[qm][i] = nil
		}
	}
}

// Clear resets the per-solve trajectories and the residual cache. Offline
// data (operators, norms, initial conditions) is kept
func (o *TransientEvaluation) Clear() {
	o.RBOutputsAllK = nil
	o.RBOutputErrorBoundsAllK = nil
	o.OldRBSolution = nil
	o.RBTemporalSolutionData = nil
	o.ErrorBoundAllK = nil
	o.RBSolution = nil
	o.invalidateCache()
}

// invalidateCache marks the cached residual terms as unusable
func (o *TransientEvaluation) invalidateCache() {
	o.cacheN = 0
	o.cacheMu = nil
}
