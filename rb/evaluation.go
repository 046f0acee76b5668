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

// Evaluation holds the non-transient (steady) reduced operators and
// representor norms produced by the offline stage. All basis-size-indexed
// quantities are sized for bases up to Nmax and grow monotonically via
// ResizeDataStructures; entries for smaller N are never destroyed
type Evaluation struct {

	// capabilities
	Expansion ThetaExpansion     // theta functions of the affine decomposition
	Stability StabilityEstimator // coercivity lower bound provider

	// current state
	Mu         []float64 // current parameter vector
	Nmax       int       // maximum basis size currently supported
	RBSolution la.Vector // reduced coefficients from the most recent solve step

	// reduced operators [offline]
	RBAq            [][][]float64   // [Qa][Nmax][Nmax] reduced stiffness matrices
	RBFq            [][]float64     // [Qf][Nmax] reduced forcing vectors
	RBOutputVectors [][][]float64   // [nout][Ql_i][Nmax] reduced output functionals

	// representor norms [offline]
	FqNorms         []float64     // [Qf(Qf+1)/2] forcing-forcing inner products
	FqAqNorms       [][][]float64 // [Qf][Qa][Nmax] forcing-stiffness inner products
	AqAqNorms       [][][]float64 // [Qa(Qa+1)/2][Nmax][Nmax] stiffness-stiffness inner products
	OutputDualNorms [][]float64   // [nout][Ql_i(Ql_i+1)/2] output dual norm inner products
}

// InitBase allocates the leading (affine-term-indexed) dimensions according
// to the expansion. Basis-size dimensions start at zero and are grown by
// ResizeDataStructures
func (o *Evaluation) InitBase(expansion ThetaExpansion, stability StabilityEstimator) {
	o.Expansion = expansion
	o.Stability = stability
	Qa, Qf := expansion.NumA(), expansion.NumF()
	nout := expansion.NumOutputs()
	o.RBAq = utl.Deep3alloc(Qa, 0, 0)
	o.RBFq = utl.Alloc(Qf, 0)
	o.FqNorms = make([]float64, symPairs(Qf))
	o.FqAqNorms = utl.Deep3alloc(Qf, Qa, 0)
	o.AqAqNorms = utl.Deep3alloc(symPairs(Qa), 0, 0)
	o.RBOutputVectors = make([][][]float64, nout)
	o.OutputDualNorms = make([][]float64, nout)
	for i := 0; i < nout; i++ {
		Ql := expansion.NumOutputTerms(i)
		o.RBOutputVectors[i] = utl.Alloc(Ql, 0)
		o.OutputDualNorms[i] = make([]float64, symPairs(Ql))
	}
}

// SetParameters sets the current parameter vector
func (o *Evaluation) SetParameters(mu []float64) {
	o.Mu = make([]float64, len(mu))
	copy(o.Mu, mu)
}

// resizeBase grows the steady quantities to support bases up to NmaxNew
func (o *Evaluation) resizeBase(NmaxNew int) {
	for q := range o.RBAq {
		o.RBAq[q] = growSquare(o.RBAq[q], NmaxNew)
	}
	for q := range o.RBFq {
		o.RBFq[q] = growVector(o.RBFq[q], NmaxNew)
	}
	for qf := range o.FqAqNorms {
		for qa := range o.FqAqNorms[qf] {
			o.FqAqNorms[qf][qa] = growVector(o.FqAqNorms[qf][qa], NmaxNew)
		}
	}
	for q := range o.AqAqNorms {
		o.AqAqNorms[q] = growSquare(o.AqAqNorms[q], NmaxNew)
	}
	for i := range o.RBOutputVectors {
		for q := range o.RBOutputVectors[i] {
			o.RBOutputVectors[i][q] = growVector(o.RBOutputVectors[i][q], NmaxNew)
		}
	}
}

// EvalOutputDualNorm computes the dual norm of output functional i at the
// current parameter, using the affine expansion of the output
func (o *Evaluation) EvalOutputDualNorm(i int) float64 {
	Ql := o.Expansion.NumOutputTerms(i)
	sum, q := 0.0, 0
	for q1 := 0; q1 < Ql; q1++ {
		t1 := o.Expansion.ThetaOutput(i, q1, o.Mu)
		for q2 := q1; q2 < Ql; q2++ {
			delta := 2.0
			if q1 == q2 {
				delta = 1.0
			}
			sum += delta * t1 * o.Expansion.ThetaOutput(i, q2, o.Mu) * o.OutputDualNorms[i][q]
			q++
		}
	}
	return math.Sqrt(math.Abs(sum))
}

// EvalOutput computes the value of output functional i against the reduced
// coefficients u (size N)
func (o *Evaluation) EvalOutput(i int, u la.Vector) (val float64) {
	for q := 0; q < o.Expansion.NumOutputTerms(i); q++ {
		dot := 0.0
		for j := 0; j < len(u); j++ {
			dot += o.RBOutputVectors[i][q][j] * u[j]
		}
		val += o.Expansion.ThetaOutput(i, q, o.Mu) * dot
	}
	return
}

// auxiliary ///////////////////////////////////////////////////////////////////////////////////////

// symPairs returns the number of unordered pairs (q1,q2) with q1 <= q2 < Q
func symPairs(Q int) int { return Q * (Q + 1) / 2 }

// growVector extends v to length n, preserving existing entries
func growVector(v []float64, n int) []float64 {
	if len(v) >= n {
		return v
	}
	return append(v, make([]float64, n-len(v))...)
}

// growSquare extends the square table a to n-by-n, preserving existing entries
func growSquare(a [][]float64, n int) [][]float64 {
	if len(a) >= n {
		return a
	}
	for i := range a {
		a[i] = growVector(a[i], n)
	}
	for i := len(a); i < n; i++ {
		a = append(a, make([]float64, n))
	}
	return a
}

// checkBasisSize panics if N is out of the contract range [1,Nmax]
func (o *Evaluation) checkBasisSize(N int) {
	if N < 1 || N > o.Nmax {
		chk.Panic("basis size must be within [1,%d]. N=%d is invalid", o.Nmax, N)
	}
}
