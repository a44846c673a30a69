// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"bytes"
	"fmt"
	goio "io"
	"math"
	"os"
	"path/filepath"
	"sort"

	"github.com/cpmech/gosl/io"
)

// TableHeader is the first line of results tables
const TableHeader = "# Element Size       UY"

// Row holds the result of one element size
type Row struct {
	Size float64 // element size
	Val  float64 // monitored value
	Ok   bool    // value is available
}

// Table holds results by element size. Sizes are unique
type Table struct {
	Rows []*Row // in order of insertion
}

// Set sets the result of an element size, replacing any previous one
func (o *Table) Set(size, val float64, ok bool) {
	for _, r := range o.Rows {
		if r.Size == size {
			r.Val, r.Ok = val, ok
			return
		}
	}
	o.Rows = append(o.Rows, &Row{size, val, ok})
}

// Get returns the result of an element size
func (o *Table) Get(size float64) (val float64, ok bool) {
	for _, r := range o.Rows {
		if r.Size == size {
			return r.Val, r.Ok
		}
	}
	return
}

// Sorted returns the rows sorted by decreasing element size
func (o *Table) Sorted() []*Row {
	rows := make([]*Row, len(o.Rows))
	copy(rows, o.Rows)
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Size > rows[j].Size })
	return rows
}

// Series returns element sizes and values of available results, by decreasing size
func (o *Table) Series() (x, y []float64) {
	for _, r := range o.Sorted() {
		if r.Ok {
			x = append(x, r.Size)
			y = append(y, r.Val)
		}
	}
	return
}

// Write writes the table; missing values are written as nan
func (o *Table) Write(w goio.Writer) error {
	var buf bytes.Buffer
	io.Ff(&buf, "%s\n", TableHeader)
	for _, r := range o.Sorted() {
		if !r.Ok || math.IsNaN(r.Val) {
			io.Ff(&buf, "%12.4f %12s\n", r.Size, "nan")
			continue
		}
		io.Ff(&buf, "%12.4f %12.4f\n", r.Size, r.Val)
	}
	_, err := w.Write(buf.Bytes())
	return err
}

// WriteFile writes the table to <dirout>/<fn>
func (o *Table) WriteFile(dirout, fn string) (path string, err error) {
	path = filepath.Join(dirout, fn)
	var buf bytes.Buffer
	if err = o.Write(&buf); err != nil {
		return
	}
	if err = os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return "", fmt.Errorf("cannot write results table: %w", err)
	}
	return
}
