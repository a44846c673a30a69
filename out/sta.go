// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package out implements result extraction from solver reports, tables and plotting
package out

import (
	"bufio"
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
)

// ErrNoReport is returned when the status report cannot be opened
var ErrNoReport = errors.New("status report not available")

// default layout of result rows in status reports
const (
	StaNcols = 10 // number of fields
	StaCol   = -1 // column with monitored value
)

// MaxLine is the longest line of a status report that can be read
const MaxLine = math.MaxInt32

// StaReader scrapes the monitored value from a status report. Result rows have exactly
// Ncols whitespace-separated fields; e.g.
//   1     1   1     0     1     1    1.00     1.00      1.000  -0.5117
type StaReader struct {
	Ncols int // number of fields of result rows
	Col   int // column with the value; negative counts from the end (-1 => last)
}

// NewStaReader returns a reader with the default layout
func NewStaReader() StaReader {
	return StaReader{Ncols: StaNcols, Col: StaCol}
}

// Parse returns the value of the last result row in lines. ok is false if no line is a
// result row
func (o StaReader) Parse(lines []string) (val float64, ok bool) {
	for _, line := range lines {
		if v, found := o.value(line); found {
			val, ok = v, true
		}
	}
	return
}

// Read returns the value of the last result row of the report in path. ok is false if
// there is no result row. A missing or unreadable report gives an error wrapping
// ErrNoReport and the underlying error
func (o StaReader) Read(path string) (val float64, ok bool, err error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, false, fmt.Errorf("%w: %w", ErrNoReport, err)
	}
	defer f.Close()
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), MaxLine)
	for sc.Scan() {
		if v, found := o.value(sc.Text()); found {
			val, ok = v, true
		}
	}
	if err = sc.Err(); err != nil {
		return 0, false, fmt.Errorf("%w: %w", ErrNoReport, err)
	}
	return
}

// value returns the monitored value if line is a result row
func (o StaReader) value(line string) (float64, bool) {
	fields := strings.Fields(line)
	if len(fields) != o.Ncols {
		return 0, false
	}
	col := o.Col
	if col < 0 {
		col += o.Ncols
	}
	if col < 0 || col >= o.Ncols {
		return 0, false
	}
	v, err := strconv.ParseFloat(fields[col], 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// ReadSta reads the monitored value in the last column of 10-field rows
func ReadSta(path string) (val float64, ok bool, err error) {
	return NewStaReader().Read(path)
}
