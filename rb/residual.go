// Copyright 2017 The Gorb Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rb

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
)

// BoundFormula converts a raw residual dual norm into the numerator of a
// rigorous solution error bound. Alternate bound formulations are additional
// implementations of this interface, not subclasses
type BoundFormula interface {
	ResidualScalingNumer(e *TransientEvaluation, alphaLB float64) float64
}

// TransientBound is the default bound formula for the generalized Euler
// scheme: the squared residual norm of each step enters the accumulated
// squared bound scaled by deltaT/alphaLB
type TransientBound struct{}

// ResidualScalingNumer returns deltaT/alphaLB
func (TransientBound) ResidualScalingNumer(e *TransientEvaluation, alphaLB float64) float64 {
	return e.Tdisc.DeltaT() / alphaLB
}

// ResidualScalingNumer returns the residual scaling factor of the installed
// bound formula. alphaLB must be positive
func (o *TransientEvaluation) ResidualScalingNumer(alphaLB float64) float64 {
	if alphaLB <= 0 {
		chk.Panic("coercivity lower bound must be positive. alphaLB=%v is invalid", alphaLB)
	}
	if o.Bound != nil {
		return o.Bound.ResidualScalingNumer(o, alphaLB)
	}
	return TransientBound{}.ResidualScalingNumer(o, alphaLB)
}

// CacheOnlineResidualTerms precomputes, for the current (fixed) parameter,
// every product of representor norms and theta coefficients appearing in the
// residual expansion, leaving only the contractions against the per-step
// solution vectors for ComputeResidualDualNorm. Must be called again whenever
// the parameter or the basis size changes
func (o *TransientEvaluation) CacheOnlineResidualTerms(N int) {
	o.checkBasisSize(N)
	Qa, Qm, Qf := o.Expansion.NumA(), o.Expansion.NumM(), o.Expansion.NumF()

	// forcing-forcing scalar
	o.cachedFqTerm = 0
	q := 0
	for qf1 := 0; qf1 < Qf; qf1++ {
		tf1 := o.Expansion.ThetaF(qf1, o.Mu)
		for qf2 := qf1; qf2 < Qf; qf2++ {
			delta := pairWeight(qf1, qf2)
			o.cachedFqTerm += delta * tf1 * o.Expansion.ThetaF(qf2, o.Mu) * o.FqNorms[q]
			q++
		}
	}

	// forcing-stiffness and forcing-mass vectors
	o.cachedFqAq = la.NewVector(N)
	o.cachedFqMq = la.NewVector(N)
	for qf := 0; qf < Qf; qf++ {
		tf := o.Expansion.ThetaF(qf, o.Mu)
		for qa := 0; qa < Qa; qa++ {
			ta := o.Expansion.ThetaA(qa, o.Mu)
			for i := 0; i < N; i++ {
				o.cachedFqAq[i] += tf * ta * o.FqAqNorms[qf][qa][i]
			}
		}
		for qm := 0; qm < Qm; qm++ {
			tm := o.Expansion.ThetaM(qm, o.Mu)
			for i := 0; i < N; i++ {
				o.cachedFqMq[i] += tf * tm * o.FqMqNorms[qf][qm][i]
			}
		}
	}

	// stiffness-stiffness matrix
	o.cachedAqAq = la.NewMatrix(N, N)
	q = 0
	for qa1 := 0; qa1 < Qa; qa1++ {
		ta1 := o.Expansion.ThetaA(qa1, o.Mu)
		for qa2 := qa1; qa2 < Qa; qa2++ {
			c := pairWeight(qa1, qa2) * ta1 * o.Expansion.ThetaA(qa2, o.Mu)
			for i := 0; i < N; i++ {
				for j := 0; j < N; j++ {
					o.cachedAqAq.Set(i, j, o.cachedAqAq.Get(i, j)+c*o.AqAqNorms[q][i][j])
				}
			}
			q++
		}
	}

	// stiffness-mass matrix
	o.cachedAqMq = la.NewMatrix(N, N)
	for qa := 0; qa < Qa; qa++ {
		ta := o.Expansion.ThetaA(qa, o.Mu)
		for qm := 0; qm < Qm; qm++ {
			c := ta * o.Expansion.ThetaM(qm, o.Mu)
			for i := 0; i < N; i++ {
				for j := 0; j < N; j++ {
					o.cachedAqMq.Set(i, j, o.cachedAqMq.Get(i, j)+c*o.AqMqNorms[qa][qm][i][j])
				}
			}
		}
	}

	// mass-mass matrix
	o.cachedMqMq = la.NewMatrix(N, N)
	q = 0
	for qm1 := 0; qm1 < Qm; qm1++ {
		tm1 := o.Expansion.ThetaM(qm1, o.Mu)
		for qm2 := qm1; qm2 < Qm; qm2++ {
			c := pairWeight(qm1, qm2) * tm1 * o.Expansion.ThetaM(qm2, o.Mu)
			for i := 0; i < N; i++ {
				for j := 0; j < N; j++ {
					o.cachedMqMq.Set(i, j, o.cachedMqMq.Get(i, j)+c*o.MqMqNorms[q][i][j])
				}
			}
			q++
		}
	}

	// validity tag
	o.cacheN = N
	o.cacheMu = make([]float64, len(o.Mu))
	copy(o.cacheMu, o.Mu)
}

// ComputeResidualDualNorm computes the dual norm of the time-discrete
// residual for the solution currently stored, contracting the cached terms
// from CacheOnlineResidualTerms against the current and previous reduced
// coefficient vectors. Valid only while the parameter is fixed in time; a
// cache computed for a different (mu, N) is a contract violation
func (o *TransientEvaluation) ComputeResidualDualNorm(N int) float64 {
	o.checkBasisSize(N)
	if o.cacheN != N || !sameParams(o.cacheMu, o.Mu) {
		chk.Panic("residual cache is stale: cached for N=%d, requested N=%d with the current parameter. call CacheOnlineResidualTerms first", o.cacheN, N)
	}

	uth, mcf := o.stepCoefficients(N)

	residSq := o.cachedFqTerm
	residSq += 2 * la.VecDot(uth, o.cachedFqAq)
	residSq += 2 * la.VecDot(mcf, o.cachedFqMq)
	for i := 0; i < N; i++ {
		for j := 0; j < N; j++ {
			residSq += uth[i]*uth[j]*o.cachedAqAq.Get(i, j) +
				2*uth[i]*mcf[j]*o.cachedAqMq.Get(i, j) +
				mcf[i]*mcf[j]*o.cachedMqMq.Get(i, j)
		}
	}

	// round-off can push the squared norm slightly below zero
	return math.Sqrt(math.Abs(residSq))
}

// UncachedComputeResidualDualNorm computes the dual norm of the time-discrete
// residual by evaluating the full affine expansion with the current theta
// coefficients. More expensive than the cached path, but correct when the
// parameter changes between time steps
func (o *TransientEvaluation) UncachedComputeResidualDualNorm(N int) float64 {
	o.checkBasisSize(N)
	Qa, Qm, Qf := o.Expansion.NumA(), o.Expansion.NumM(), o.Expansion.NumF()

	uth, mcf := o.stepCoefficients(N)

	// forcing-forcing
	residSq := 0.0
	q := 0
	for qf1 := 0; qf1 < Qf; qf1++ {
		tf1 := o.Expansion.ThetaF(qf1, o.Mu)
		for qf2 := qf1; qf2 < Qf; qf2++ {
			residSq += pairWeight(qf1, qf2) * tf1 * o.Expansion.ThetaF(qf2, o.Mu) * o.FqNorms[q]
			q++
		}
	}

	// forcing-stiffness and forcing-mass
	for qf := 0; qf < Qf; qf++ {
		tf := o.Expansion.ThetaF(qf, o.Mu)
		for qa := 0; qa < Qa; qa++ {
			c := 2 * tf * o.Expansion.ThetaA(qa, o.Mu)
			for i := 0; i < N; i++ {
				residSq += c * uth[i] * o.FqAqNorms[qf][qa][i]
			}
		}
		for qm := 0; qm < Qm; qm++ {
			c := 2 * tf * o.Expansion.ThetaM(qm, o.Mu)
			for i := 0; i < N; i++ {
				residSq += c * mcf[i] * o.FqMqNorms[qf][qm][i]
			}
		}
	}

	// stiffness-stiffness
	q = 0
	for qa1 := 0; qa1 < Qa; qa1++ {
		ta1 := o.Expansion.ThetaA(qa1, o.Mu)
		for qa2 := qa1; qa2 < Qa; qa2++ {
			c := pairWeight(qa1, qa2) * ta1 * o.Expansion.ThetaA(qa2, o.Mu)
			for i := 0; i < N; i++ {
				for j := 0; j < N; j++ {
					residSq += c * uth[i] * uth[j] * o.AqAqNorms[q][i][j]
				}
			}
			q++
		}
	}

	// stiffness-mass
	for qa := 0; qa < Qa; qa++ {
		ta := o.Expansion.ThetaA(qa, o.Mu)
		for qm := 0; qm < Qm; qm++ {
			c := 2 * ta * o.Expansion.ThetaM(qm, o.Mu)
			for i := 0; i < N; i++ {
				for j := 0; j < N; j++ {
					residSq += c * uth[i] * mcf[j] * o.AqMqNorms[qa][qm][i][j]
				}
			}
		}
	}

	// mass-mass
	q = 0
	for qm1 := 0; qm1 < Qm; qm1++ {
		tm1 := o.Expansion.ThetaM(qm1, o.Mu)
		for qm2 := qm1; qm2 < Qm; qm2++ {
			c := pairWeight(qm1, qm2) * tm1 * o.Expansion.ThetaM(qm2, o.Mu)
			for i := 0; i < N; i++ {
				for j := 0; j < N; j++ {
					residSq += c * mcf[i] * mcf[j] * o.MqMqNorms[q][i][j]
				}
			}
			q++
		}
	}

	return math.Sqrt(math.Abs(residSq))
}

// stepCoefficients returns the theta-blended solution vector and the discrete
// time-derivative coefficients of the current step:
//   uth = theta*u_k + (1-theta)*u_{k-1}
//   mcf = -(u_k - u_{k-1})/deltaT
func (o *TransientEvaluation) stepCoefficients(N int) (uth, mcf la.Vector) {
	theta := o.Tdisc.EulerTheta()
	dt := o.Tdisc.DeltaT()
	uth = la.NewVector(N)
	mcf = la.NewVector(N)
	for i := 0; i < N; i++ {
		uth[i] = theta*o.RBSolution[i] + (1-theta)*o.OldRBSolution[i]
		mcf[i] = -(o.RBSolution[i] - o.OldRBSolution[i]) / dt
	}
	return
}

// pairWeight returns 1 for diagonal pairs and 2 for off-diagonal pairs of a
// symmetric affine double sum stored in upper-triangular order
func pairWeight(q1, q2 int) float64 {
	if q1 == q2 {
		return 1
	}
	return 2
}

// sameParams compares two parameter vectors exactly. The cache validity tag
// requires bitwise equality, not closeness
func sameParams(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
