// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

const staText = `
 Abaqus/Standard 2024                  DATE 12-Mar-2024 TIME 10:15:31
 SUMMARY OF JOB INFORMATION:
 STEP  INC ATT SEVERE EQUIL TOTAL  TOTAL      STEP       INC OF       DOF
                DISCON ITERS ITERS  TIME/    TIME/LPF    TIME/LPF    MONITOR
              ITERS               FREQ
   1     1   1     0     1     1  0.100      0.100      0.1000      -0.05117
   1     2   1     0     1     1  0.250      0.250      0.1500      -0.1279
   1     3   1     0     1     1   1.00       1.00      0.7500      -0.5117

 THE ANALYSIS HAS COMPLETED SUCCESSFULLY
`

func writeSta(tst *testing.T, text string) string {
	fn := filepath.Join(tst.TempDir(), "job.sta")
	if err := os.WriteFile(fn, []byte(text), 0644); err != nil {
		tst.Fatalf("cannot write report:\n%v", err)
	}
	return fn
}

func Test_sta01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("sta01. last result row")

	val, ok, err := ReadSta(writeSta(tst, staText))
	if err != nil {
		tst.Errorf("ReadSta failed:\n%v", err)
		return
	}
	io.Pforan("val = %v\n", val)
	if !ok {
		tst.Errorf("value must be found")
		return
	}
	chk.Float64(tst, "val", 1e-15, val, -0.5117)

	// rows with other field counts are ignored
	r := NewStaReader()
	val, ok = r.Parse([]string{"a b c", "1 2 3 4 5 6 7 8 9 10", "1 2 3 4 5 6 7 8 9 10", "1 2 3 4 5"})
	if !ok {
		tst.Errorf("value must be found")
		return
	}
	chk.Float64(tst, "val", 1e-15, val, 10)

	// other column
	r.Col = 6
	val, _ = r.Parse([]string{"1 2 3 4 5 6 7.5 8 9 10"})
	chk.Float64(tst, "val at col 6", 1e-15, val, 7.5)
	r.Col = -2
	val, _ = r.Parse([]string{"1 2 3 4 5 6 7 8 9.25 10"})
	chk.Float64(tst, "val at col -2", 1e-15, val, 9.25)
}

func Test_sta02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("sta02. no result")

	// header with 10 words is not a result row
	val, ok, err := ReadSta(writeSta(tst, " STEP  INC ATT SEVERE EQUIL TOTAL  TOTAL      STEP       INC OF\n\n 1 2 3\n"))
	if err != nil {
		tst.Errorf("ReadSta failed:\n%v", err)
		return
	}
	if ok {
		tst.Errorf("value must be absent; got %v", val)
		return
	}

	// empty report
	_, ok, err = ReadSta(writeSta(tst, ""))
	if err != nil || ok {
		tst.Errorf("empty report must give no value and no error; ok=%v err=%v", ok, err)
		return
	}

	// missing report
	_, _, err = ReadSta(filepath.Join(tst.TempDir(), "missing.sta"))
	if !errors.Is(err, ErrNoReport) {
		tst.Errorf("ErrNoReport expected; got %v", err)
		return
	}
	if !errors.Is(err, fs.ErrNotExist) {
		tst.Errorf("fs.ErrNotExist expected; got %v", err)
		return
	}

	// lines longer than the default scanner buffer
	row := "  1     1   1     0     1     1    1.00     1.00      1.000  -0.5117\n"
	long := strings.Repeat("x", 70000) + "\n"
	val, ok, err = ReadSta(writeSta(tst, row+long))
	if err != nil || !ok {
		tst.Errorf("long line must be skipped; ok=%v err=%v", ok, err)
		return
	}
	chk.Float64(tst, "value before long line", 1e-15, val, -0.5117)
	val, ok, err = ReadSta(writeSta(tst, long+row))
	if err != nil || !ok {
		tst.Errorf("long line must be skipped; ok=%v err=%v", ok, err)
		return
	}
	chk.Float64(tst, "value after long line", 1e-15, val, -0.5117)
}

func Test_table01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("table01. order and format")

	var tab Table
	tab.Set(4.6, -0.5, true)
	tab.Set(6.0, -0.4, true)
	tab.Set(3.5, 0, false)
	tab.Set(4.6, -0.52, true)
	chk.Int(tst, "nrows", len(tab.Rows), 3)

	var buf bytes.Buffer
	if err := tab.Write(&buf); err != nil {
		tst.Errorf("Write failed:\n%v", err)
		return
	}
	io.Pforan("%s", buf.String())
	chk.String(tst, buf.String(), "# Element Size       UY\n"+
		"      6.0000      -0.4000\n"+
		"      4.6000      -0.5200\n"+
		"      3.5000          nan\n")

	x, y := tab.Series()
	chk.Array(tst, "x", 1e-15, x, []float64{6, 4.6})
	chk.Array(tst, "y", 1e-15, y, []float64{-0.4, -0.52})

	val, ok := tab.Get(3.5)
	if ok || val != 0 {
		tst.Errorf("3.5 must be absent")
		return
	}

	dir := tst.TempDir()
	fn, err := tab.WriteFile(dir, "ElemSize_VS_UY.txt")
	if err != nil {
		tst.Errorf("WriteFile failed:\n%v", err)
		return
	}
	b, err := os.ReadFile(fn)
	if err != nil {
		tst.Errorf("cannot read table:\n%v", err)
		return
	}
	chk.String(tst, string(b), buf.String())
}

func Test_plot01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("plot01")

	var tab Table
	if _, err := PlotConvergence(&tab, tst.TempDir(), "Mesh_Conv"); err == nil {
		tst.Errorf("plot of empty table must fail")
		return
	}

	if chk.Verbose {
		tab.Set(6, -0.48, true)
		tab.Set(6/1.3, -0.50, true)
		tab.Set(6/1.3/1.3, -0.51, true)
		fn, err := PlotConvergence(&tab, "/tmp/meshconv", "Mesh_Conv")
		if err != nil {
			tst.Errorf("PlotConvergence failed:\n%v", err)
			return
		}
		io.Pfblue2("file <%s> written\n", fn)
	}
}
