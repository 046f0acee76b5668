// Copyright 2017 The Gorb Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package rb implements the online stage of the certified reduced basis method
// for parametrized, time-invariant linear dynamical systems
package rb

// ThetaExpansion evaluates the parameter-dependent coefficients ("theta
// functions") of the affine decomposition of the stiffness operator (A), the
// mass operator (M), the forcing term (F) and the output functionals
type ThetaExpansion interface {
	NumA() int                               // number of affine stiffness terms (Q_a)
	NumM() int                               // number of affine mass terms (Q_m)
	NumF() int                               // number of affine forcing terms (Q_f)
	NumOutputs() int                         // number of output functionals
	NumOutputTerms(i int) int                // number of affine terms of output i (Q_l_i)
	ThetaA(q int, mu []float64) float64      // stiffness coefficient q at mu
	ThetaM(q int, mu []float64) float64      // mass coefficient q at mu
	ThetaF(q int, mu []float64) float64      // forcing coefficient q at mu
	ThetaOutput(i, q int, mu []float64) float64 // coefficient q of output i at mu
}

// ConstantExpansion implements ThetaExpansion with coefficients that do not
// depend on mu. Handy for single-term problems and for tests
type ConstantExpansion struct {
	CoefsA   []float64   // stiffness coefficients
	CoefsM   []float64   // mass coefficients
	CoefsF   []float64   // forcing coefficients
	CoefsOut [][]float64 // output coefficients
}

func (o *ConstantExpansion) NumA() int { return len(o.CoefsA) }
func (o *ConstantExpansion) NumM() int { return len(o.CoefsM) }
func (o *ConstantExpansion) NumF() int { return len(o.CoefsF) }
func (o *ConstantExpansion) NumOutputs() int { return len(o.CoefsOut) }
func (o *ConstantExpansion) NumOutputTerms(i int) int { return len(o.CoefsOut[i]) }

func (o *ConstantExpansion) ThetaA(q int, mu []float64) float64 { return o.CoefsA[q] }
func (o *ConstantExpansion) ThetaM(q int, mu []float64) float64 { return o.CoefsM[q] }
func (o *ConstantExpansion) ThetaF(q int, mu []float64) float64 { return o.CoefsF[q] }
func (o *ConstantExpansion) ThetaOutput(i, q int, mu []float64) float64 { return o.CoefsOut[i][q] }

// FuncExpansion implements ThetaExpansion with explicit coefficient functions
// of mu, one per affine term
type FuncExpansion struct {
	FnA   []func(mu []float64) float64
	FnM   []func(mu []float64) float64
	FnF   []func(mu []float64) float64
	FnOut [][]func(mu []float64) float64
}

func (o *FuncExpansion) NumA() int { return len(o.FnA) }
func (o *FuncExpansion) NumM() int { return len(o.FnM) }
func (o *FuncExpansion) NumF() int { return len(o.FnF) }
func (o *FuncExpansion) NumOutputs() int { return len(o.FnOut) }
func (o *FuncExpansion) NumOutputTerms(i int) int { return len(o.FnOut[i]) }

func (o *FuncExpansion) ThetaA(q int, mu []float64) float64 { return o.FnA[q](mu) }
func (o *FuncExpansion) ThetaM(q int, mu []float64) float64 { return o.FnM[q](mu) }
func (o *FuncExpansion) ThetaF(q int, mu []float64) float64 { return o.FnF[q](mu) }
func (o *FuncExpansion) ThetaOutput(i, q int, mu []float64) float64 { return o.FnOut[i][q](mu) }

// ComponentExpansion implements ThetaExpansion with the affine coefficients
// taken directly from the parameter vector, laid out as
// mu = [theta_A_0..theta_A_{Qa-1}, theta_M_0.., theta_F_0..]; output
// coefficients are 1. This is the expansion used by the command-line driver,
// where the thetas are not available as code
type ComponentExpansion struct {
	Qa, Qm, Qf int
	QOut       []int
}

func (o *ComponentExpansion) NumA() int { return o.Qa }
func (o *ComponentExpansion) NumM() int { return o.Qm }
func (o *ComponentExpansion) NumF() int { return o.Qf }
func (o *ComponentExpansion) NumOutputs() int { return len(o.QOut) }
func (o *ComponentExpansion) NumOutputTerms(i int) int { return o.QOut[i] }

func (o *ComponentExpansion) ThetaA(q int, mu []float64) float64 { return mu[q] }
func (o *ComponentExpansion) ThetaM(q int, mu []float64) float64 { return mu[o.Qa+q] }
func (o *ComponentExpansion) ThetaF(q int, mu []float64) float64 { return mu[o.Qa+o.Qm+q] }
func (o *ComponentExpansion) ThetaOutput(i, q int, mu []float64) float64 { return 1 }

// StabilityEstimator provides a lower bound on the coercivity (stability)
// constant at mu. Typically computed offline, e.g. with a successive
// constraint method; a constant bound suffices for many problems
type StabilityEstimator interface {
	AlphaLB(mu []float64) float64
}

// ConstantStability implements StabilityEstimator with a fixed bound
type ConstantStability struct {
	Alpha float64
}

func (o *ConstantStability) AlphaLB(mu []float64) float64 { return o.Alpha }

// ICProjector projects the truth initial condition onto the first N basis
// vectors, returning the reduced coefficients and the L2 projection error.
// Implemented by the offline stage; the online engine only stores the results
type ICProjector interface {
	Project(N int) (coefs []float64, l2err float64, err error)
}
