// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"bytes"
	"encoding/gob"
	"encoding/json"
	"math"
	"os"
	"path/filepath"

	"github.com/PyFEA/FEA-Mesh-Convergence/out"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// Summary records the results of a study
type Summary struct {

	// main data
	Key     string    // key of study
	Dirout  string    // directory where results are stored
	Sizes   []float64 // [niter] element sizes
	Values  []float64 // [niter] monitored values
	Present []bool    // [niter] value is available
	Jobs    []string  // [niter] job names
	Codes   []int     // [niter] exit codes of solver; -1 => not run
	Status  []string  // [niter] status of run; e.g. StatusOk, StatusNoReport
	Ref     float64   // reference value; 0 => not available
}

// Append appends the result of one element size. The value is present only with StatusOk;
// non-finite values are recorded as StatusMissing
func (o *Summary) Append(job string, size, val float64, status string, code int) {
	if status == StatusOk && (math.IsNaN(val) || math.IsInf(val, 0)) {
		status = StatusMissing
	}
	present := status == StatusOk
	if !present {
		val = 0
	}
	o.Jobs = append(o.Jobs, job)
	o.Sizes = append(o.Sizes, size)
	o.Values = append(o.Values, val)
	o.Present = append(o.Present, present)
	o.Codes = append(o.Codes, code)
	o.Status = append(o.Status, status)
}

// Table returns the results table
func (o *Summary) Table() (tab *out.Table) {
	tab = new(out.Table)
	for i, size := range o.Sizes {
		tab.Set(size, o.Values[i], o.Present[i])
	}
	return
}

// Save saves summary to <Dirout>/<Key>_sum.<enctype>; enctype is "json" or "gob"
func (o Summary) Save(enctype string, verbose bool) (fn string, err error) {

	// encode summary
	var buf bytes.Buffer
	switch enctype {
	case "json":
		enc := json.NewEncoder(&buf)
		enc.SetIndent("", "  ")
		err = enc.Encode(o)
	case "gob":
		err = gob.NewEncoder(&buf).Encode(o)
	default:
		return "", chk.Err("cannot save summary: encoder %q is not available", enctype)
	}
	if err != nil {
		return "", chk.Err("cannot encode summary:\n%v", err)
	}

	// save file
	fn = out_sum_path(o.Dirout, o.Key, enctype)
	if err = os.WriteFile(fn, buf.Bytes(), 0644); err != nil {
		return "", chk.Err("cannot save summary:\n%v", err)
	}
	if verbose {
		io.Pfblue2("file <%s> written\n", fn)
	}
	return
}

// ReadSummary reads summary back
func ReadSummary(dir, fnkey, enctype string) (o *Summary, err error) {

	// read file
	fn := out_sum_path(dir, fnkey, enctype)
	b, err := os.ReadFile(fn)
	if err != nil {
		return nil, chk.Err("cannot open summary:\n%v", err)
	}

	// decode summary
	var sum Summary
	switch enctype {
	case "json":
		err = json.Unmarshal(b, &sum)
	case "gob":
		err = gob.NewDecoder(bytes.NewReader(b)).Decode(&sum)
	default:
		return nil, chk.Err("cannot read summary: decoder %q is not available", enctype)
	}
	if err != nil {
		return nil, chk.Err("cannot decode summary <%s>:\n%v", fn, err)
	}
	n := len(sum.Sizes)
	if len(sum.Values) != n || len(sum.Present) != n || len(sum.Jobs) != n || len(sum.Codes) != n || len(sum.Status) != n {
		return nil, chk.Err("summary <%s> is inconsistent", fn)
	}
	return &sum, nil
}

// auxiliary ///////////////////////////////////////////////////////////////////////////////////////

func out_sum_path(dir, fnkey, enctype string) string {
	return filepath.Join(dir, io.Sf("%s_sum.%s", fnkey, enctype))
}
