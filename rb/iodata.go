// Copyright 2017 The Gorb Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rb

import (
	"bytes"
	"encoding/json"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"
)

// OfflineDataVersion is the version tag of the persisted layout
const OfflineDataVersion = 1

// artifact file names, one logical quantity per file
const (
	fnManifest    = "manifest.json"
	fnTdisc       = "discretization.json"
	fnL2Matrix    = "rb_L2_matrix.json"
	fnAqMatrices  = "rb_A_q.json"
	fnMqMatrices  = "rb_M_q.json"
	fnFqVectors   = "rb_F_q.json"
	fnOutVectors  = "rb_output_vectors.json"
	fnFqNorms     = "fq_norms.json"
	fnFqAqNorms   = "fq_aq_norms.json"
	fnAqAqNorms   = "aq_aq_norms.json"
	fnFqMqNorms   = "fq_mq_norms.json"
	fnMqMqNorms   = "mq_mq_norms.json"
	fnAqMqNorms   = "aq_mq_norms.json"
	fnOutDualNrms = "output_dual_norms.json"
	fnInitialCond = "initial_conditions.json"
)

// artifact payloads. every artifact declares its dimensions inline so the
// reader can validate consistency before installing anything in memory
type (
	manifestData struct {
		Version    int   `json:"version"`
		Nmax       int   `json:"n_max"`
		Qa         int   `json:"q_a"`
		Qm         int   `json:"q_m"`
		Qf         int   `json:"q_f"`
		NumOutputs int   `json:"n_outputs"`
		QOutputs   []int `json:"q_outputs"`
	}
	tdiscData struct {
		NumSteps   int     `json:"n_time_steps"`
		DeltaT     float64 `json:"delta_t"`
		EulerTheta float64 `json:"euler_theta"`
	}
	matrixData struct {
		N    int         `json:"n"`
		Vals [][]float64 `json:"vals"`
	}
	matrixSetData struct {
		Count int           `json:"count"`
		N     int           `json:"n"`
		Vals  [][][]float64 `json:"vals"`
	}
	vectorSetData struct {
		Count int         `json:"count"`
		N     int         `json:"n"`
		Vals  [][]float64 `json:"vals"`
	}
	scalarSetData struct {
		Count int       `json:"count"`
		Vals  []float64 `json:"vals"`
	}
	deep3Data struct {
		D1   int           `json:"d1"`
		D2   int           `json:"d2"`
		D3   int           `json:"d3"`
		Vals [][][]float64 `json:"vals"`
	}
	deep4Data struct {
		D1   int             `json:"d1"`
		D2   int             `json:"d2"`
		D3   int             `json:"d3"`
		D4   int             `json:"d4"`
		Vals [][][][]float64 `json:"vals"`
	}
	outputSetData struct {
		NumOutputs int           `json:"n_outputs"`
		QOutputs   []int         `json:"q_outputs"`
		N          int           `json:"n"`
		Vals       [][][]float64 `json:"vals"`
	}
	outputDualData struct {
		NumOutputs int         `json:"n_outputs"`
		Vals       [][]float64 `json:"vals"`
	}
	initialCondData struct {
		Nmax     int         `json:"n_max"`
		L2Errors []float64   `json:"l2_errors"`
		Coefs    [][]float64 `json:"coefs"`
	}
)

// Info summarizes a persisted offline-data directory without loading the
// operator tables
type Info struct {
	Version    int
	Nmax       int
	Qa, Qm, Qf int
	NumOutputs int
	QOutputs   []int
	NumSteps   int
	DeltaT     float64
	EulerTheta float64
}

// ReadOfflineInfo reads the manifest and discretization artifacts only
func ReadOfflineInfo(dirout string) (nfo Info, err error) {
	var man manifestData
	if err = loadArtifact(dirout, fnManifest, &man); err != nil {
		return
	}
	var td tdiscData
	if err = loadArtifact(dirout, fnTdisc, &td); err != nil {
		return
	}
	nfo = Info{man.Version, man.Nmax, man.Qa, man.Qm, man.Qf, man.NumOutputs, man.QOutputs, td.NumSteps, td.DeltaT, td.EulerTheta}
	return
}

// WriteOfflineDataToFiles serializes every persisted quantity into a
// directory of JSON artifacts, one logical quantity per file, segregating the
// offline stage from the online stage
func (o *TransientEvaluation) WriteOfflineDataToFiles(dirout string) (err error) {
	Qa, Qm, Qf := o.Expansion.NumA(), o.Expansion.NumM(), o.Expansion.NumF()
	nout := o.Expansion.NumOutputs()
	qouts := make([]int, nout)
	for i := 0; i < nout; i++ {
		qouts[i] = o.Expansion.NumOutputTerms(i)
	}
	artifacts := []struct {
		fn   string
		data interface{}
	}{
		{fnManifest, manifestData{OfflineDataVersion, o.Nmax, Qa, Qm, Qf, nout, qouts}},
		{fnTdisc, tdiscData{o.Tdisc.NumSteps(), o.Tdisc.DeltaT(), o.Tdisc.EulerTheta()}},
		{fnL2Matrix, matrixData{o.Nmax, o.RBL2Matrix}},
		{fnAqMatrices, matrixSetData{Qa, o.Nmax, o.RBAq}},
		{fnMqMatrices, matrixSetData{Qm, o.Nmax, o.RBMq}},
		{fnFqVectors, vectorSetData{Qf, o.Nmax, o.RBFq}},
		{fnOutVectors, outputSetData{nout, qouts, o.Nmax, o.RBOutputVectors}},
		{fnFqNorms, scalarSetData{symPairs(Qf), o.FqNorms}},
		{fnFqAqNorms, deep3Data{Qf, Qa, o.Nmax, o.FqAqNorms}},
		{fnAqAqNorms, deep3Data{symPairs(Qa), o.Nmax, o.Nmax, o.AqAqNorms}},
		{fnFqMqNorms, deep3Data{Qf, Qm, o.Nmax, o.FqMqNorms}},
		{fnMqMqNorms, deep3Data{symPairs(Qm), o.Nmax, o.Nmax, o.MqMqNorms}},
		{fnAqMqNorms, deep4Data{Qa, Qm, o.Nmax, o.Nmax, o.AqMqNorms}},
		{fnOutDualNrms, outputDualData{nout, o.OutputDualNorms}},
		{fnInitialCond, initialCondData{o.Nmax, o.InitialL2ErrorAllN, o.RBInitialConditionAllN}},
	}
	for _, a := range artifacts {
		if err = saveArtifact(dirout, a.fn, a.data); err != nil {
			return
		}
	}
	return
}

// ReadOfflineDataFromFiles reconstructs the state saved by
// WriteOfflineDataToFiles so that subsequent Solve calls for any N up to the
// persisted Nmax reproduce same-session results. The expansion (code, not
// data) must already be installed and must match the persisted affine-term
// counts. The load is all-or-nothing: on error no partial state is installed
func (o *TransientEvaluation) ReadOfflineDataFromFiles(dirout string) (err error) {
	if o.Expansion == nil {
		return chk.Err("a theta expansion must be installed before reading offline data from %q", dirout)
	}

	// manifest
	var man manifestData
	if err = loadArtifact(dirout, fnManifest, &man); err != nil {
		return
	}
	if man.Version != OfflineDataVersion {
		return chk.Err("artifact %q: unsupported offline data version %d (want %d)", fnManifest, man.Version, OfflineDataVersion)
	}
	Qa, Qm, Qf := o.Expansion.NumA(), o.Expansion.NumM(), o.Expansion.NumF()
	nout := o.Expansion.NumOutputs()
	if man.Qa != Qa || man.Qm != Qm || man.Qf != Qf || man.NumOutputs != nout || len(man.QOutputs) != nout {
		return chk.Err("artifact %q: affine-term counts (Qa=%d Qm=%d Qf=%d nout=%d) do not match the installed expansion (Qa=%d Qm=%d Qf=%d nout=%d)",
			fnManifest, man.Qa, man.Qm, man.Qf, man.NumOutputs, Qa, Qm, Qf, nout)
	}
	for i := 0; i < nout; i++ {
		if man.QOutputs[i] != o.Expansion.NumOutputTerms(i) {
			return chk.Err("artifact %q: output %d has %d affine terms; the installed expansion has %d", fnManifest, i, man.QOutputs[i], o.Expansion.NumOutputTerms(i))
		}
	}
	N := man.Nmax

	// discretization
	var td tdiscData
	if err = loadArtifact(dirout, fnTdisc, &td); err != nil {
		return
	}
	if td.NumSteps < 0 || td.EulerTheta < 0 || td.EulerTheta > 1 || (td.NumSteps > 0 && td.DeltaT <= 0) {
		return chk.Err("artifact %q: invalid discretization parameters (K=%d dt=%v theta=%v)", fnTdisc, td.NumSteps, td.DeltaT, td.EulerTheta)
	}

	// operators and norms
	var l2 matrixData
	var aq, mq matrixSetData
	var fq vectorSetData
	var outs outputSetData
	var fqn scalarSetData
	var fqaq, aqaq, fqmq, mqmq deep3Data
	var aqmq deep4Data
	var outd outputDualData
	var ic initialCondData
	steps := []struct {
		fn   string
		data interface{}
	}{
		{fnL2Matrix, &l2}, {fnAqMatrices, &aq}, {fnMqMatrices, &mq},
		{fnFqVectors, &fq}, {fnOutVectors, &outs}, {fnFqNorms, &fqn},
		{fnFqAqNorms, &fqaq}, {fnAqAqNorms, &aqaq}, {fnFqMqNorms, &fqmq},
		{fnMqMqNorms, &mqmq}, {fnAqMqNorms, &aqmq}, {fnOutDualNrms, &outd},
		{fnInitialCond, &ic},
	}
	for _, s := range steps {
		if err = loadArtifact(dirout, s.fn, s.data); err != nil {
			return
		}
	}

	// cross-file dimension validation against the manifest
	if err = firstErr(
		checkDeep2(fnL2Matrix, l2.Vals, l2.N, l2.N, N, N),
		checkDeep3(fnAqMatrices, aq.Vals, aq.Count, aq.N, aq.N, Qa, N, N),
		checkDeep3(fnMqMatrices, mq.Vals, mq.Count, mq.N, mq.N, Qm, N, N),
		checkDeep2(fnFqVectors, fq.Vals, fq.Count, fq.N, Qf, N),
		checkDeep1(fnFqNorms, fqn.Vals, fqn.Count, symPairs(Qf)),
		checkDeep3(fnFqAqNorms, fqaq.Vals, fqaq.D1, fqaq.D2, fqaq.D3, Qf, Qa, N),
		checkDeep3(fnAqAqNorms, aqaq.Vals, aqaq.D1, aqaq.D2, aqaq.D3, symPairs(Qa), N, N),
		checkDeep3(fnFqMqNorms, fqmq.Vals, fqmq.D1, fqmq.D2, fqmq.D3, Qf, Qm, N),
		checkDeep3(fnMqMqNorms, mqmq.Vals, mqmq.D1, mqmq.D2, mqmq.D3, symPairs(Qm), N, N),
		checkDeep4(fnAqMqNorms, aqmq.Vals, aqmq.D1, aqmq.D2, aqmq.D3, aqmq.D4, Qa, Qm, N, N),
	); err != nil {
		return
	}
	if outs.NumOutputs != nout || len(outs.Vals) != nout {
		return chk.Err("artifact %q: expected %d outputs, found %d", fnOutVectors, nout, outs.NumOutputs)
	}
	for i := 0; i < nout; i++ {
		Ql := o.Expansion.NumOutputTerms(i)
		if e := checkDeep2(fnOutVectors, outs.Vals[i], Ql, outs.N, Ql, N); e != nil {
			return e
		}
		if len(outd.Vals) != nout || len(outd.Vals[i]) != symPairs(Ql) {
			return chk.Err("artifact %q: output %d dual-norm table has wrong size", fnOutDualNrms, i)
		}
	}
	if ic.Nmax != N || len(ic.L2Errors) != N || len(ic.Coefs) != N {
		return chk.Err("artifact %q: declared n_max=%d is inconsistent with manifest n_max=%d", fnInitialCond, ic.Nmax, N)
	}
	for n := 1; n <= N; n++ {
		if len(ic.Coefs[n-1]) != n {
			return chk.Err("artifact %q: initial condition for N=%d has %d coefficients", fnInitialCond, n, len(ic.Coefs[n-1]))
		}
	}

	// install (no failure past this point); rewind the step index first so a
	// previously solved instance can accept a shorter persisted march
	o.Tdisc.SetTimeStep(0)
	o.Tdisc.SetNumSteps(td.NumSteps)
	o.Tdisc.SetEulerTheta(td.EulerTheta)
	if td.DeltaT > 0 {
		o.Tdisc.SetDeltaT(td.DeltaT)
	}
	o.Nmax = N
	o.RBL2Matrix = l2.Vals
	o.RBAq = aq.Vals
	o.RBMq = mq.Vals
	o.RBFq = fq.Vals
	o.RBOutputVectors = outs.Vals
	o.FqNorms = fqn.Vals
	o.FqAqNorms = fqaq.Vals
	o.AqAqNorms = aqaq.Vals
	o.FqMqNorms = fqmq.Vals
	o.MqMqNorms = mqmq.Vals
	o.AqMqNorms = aqmq.Vals
	o.OutputDualNorms = outd.Vals
	o.InitialL2ErrorAllN = ic.L2Errors
	o.RBInitialConditionAllN = ic.Coefs
	o.MqRepresentor = make([][]la.Vector, Qm)
	for qm := range o.MqRepresentor {
		o.MqRepresentor[qm] = make([]la.Vector, N)
	}
	o.invalidateCache()
	return nil
}

// auxiliary ///////////////////////////////////////////////////////////////////////////////////////

// saveArtifact writes one artifact as indented JSON inside dirout
func saveArtifact(dirout, fn string, data interface{}) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = chk.Err("cannot write artifact %q into %q: %v", fn, dirout, r)
		}
	}()
	b, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return chk.Err("cannot encode artifact %q: %v", fn, err)
	}
	var buf bytes.Buffer
	buf.Write(b)
	io.WriteFileD(dirout, fn, &buf)
	return
}

// loadArtifact reads one JSON artifact from dirout
func loadArtifact(dirout, fn string, data interface{}) (err error) {
	b, err := io.ReadFile(dirout + "/" + fn)
	if err != nil {
		return chk.Err("cannot read artifact %q from %q: %v", fn, dirout, err)
	}
	if err = json.Unmarshal(b, data); err != nil {
		return chk.Err("artifact %q is corrupt: %v", fn, err)
	}
	return
}

// dimension checks; declared dims must match both the payload and the manifest
func checkDeep1(fn string, a []float64, decl, want int) error {
	if decl != want || len(a) != want {
		return chk.Err("artifact %q: expected %d entries, declared %d, found %d", fn, want, decl, len(a))
	}
	return nil
}

func checkDeep2(fn string, a [][]float64, d1, d2, w1, w2 int) error {
	if d1 != w1 || d2 != w2 || len(a) != w1 {
		return chk.Err("artifact %q: expected dims [%d][%d], declared [%d][%d], found %d rows", fn, w1, w2, d1, d2, len(a))
	}
	for i := range a {
		if len(a[i]) != w2 {
			return chk.Err("artifact %q: row %d has %d entries (want %d)", fn, i, len(a[i]), w2)
		}
	}
	return nil
}

func checkDeep3(fn string, a [][][]float64, d1, d2, d3, w1, w2, w3 int) error {
	if d1 != w1 || d2 != w2 || d3 != w3 || len(a) != w1 {
		return chk.Err("artifact %q: expected dims [%d][%d][%d], declared [%d][%d][%d]", fn, w1, w2, w3, d1, d2, d3)
	}
	for i := range a {
		if e := checkDeep2(fn, a[i], w2, w3, w2, w3); e != nil {
			return e
		}
	}
	return nil
}

func checkDeep4(fn string, a [][][][]float64, d1, d2, d3, d4, w1, w2, w3, w4 int) error {
	if d1 != w1 || d2 != w2 || d3 != w3 || d4 != w4 || len(a) != w1 {
		return chk.Err("artifact %q: expected dims [%d][%d][%d][%d], declared [%d][%d][%d][%d]", fn, w1, w2, w3, w4, d1, d2, d3, d4)
	}
	for i := range a {
		if e := checkDeep3(fn, a[i], w2, w3, w4, w2, w3, w4); e != nil {
			return e
		}
	}
	return nil
}

// firstErr returns the first non-nil error
func firstErr(errs ...error) error {
	for _, e := range errs {
		if e != nil {
			return e
		}
	}
	return nil
}
