// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

func Test_study01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("study01. defaults")

	o, err := Default()
	if err != nil {
		tst.Errorf("Default failed:\n%v", err)
		return
	}
	io.Pforan("o = %+v\n", o)
	chk.String(tst, o.Prefix, "Static_ElemSize_")
	chk.String(tst, o.DirStage, "temp")
	chk.Int(tst, "niter", o.Niter, 10)
	chk.String(tst, o.Decay, "size / 1.3")
	chk.Float64(tst, "size0", 1e-15, o.Mesh.Size0, 6)
	chk.Float64(tst, "length", 1e-15, o.Mesh.Length, 100)
	chk.Float64(tst, "height", 1e-15, o.Mesh.Height, 20)
	chk.String(tst, o.Deck.Instance, "Beam-1")
	chk.String(tst, o.Deck.Generic, "CPS4")
	chk.String(tst, o.Deck.Reduced, "CPS4R")
	chk.Int(tst, "nbanner", o.Deck.Nbanner, 2)
	chk.String(tst, o.Solver.Exe, "abq2024")
	chk.String(tst, o.Report.Ext, ".sta")
	chk.Int(tst, "ncols", o.Report.Ncols, 10)
	chk.Int(tst, "col", o.Report.Col, -1)
	chk.String(tst, o.Output.Table, "ElemSize_VS_UY.txt")
	if o.Solver.Timeout != 0 {
		tst.Errorf("default timeout must be zero; got %v", o.Solver.Timeout)
	}
}

func Test_study02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("study02. read file")

	dir := tst.TempDir()
	fn := filepath.Join(dir, "beam.yaml")
	text := `desc: cantilever
niter: 4
decay: size / 2
dirout: work
mesh:
  size0: 8
deck:
  template: StaticBeam_template.inp
solver:
  exe: /opt/solver/bin/run
  timeout: 90s
report:
  col: 2
`
	if err := os.WriteFile(fn, []byte(text), 0644); err != nil {
		tst.Errorf("cannot write study file:\n%v", err)
		return
	}
	o, err := ReadStudy(fn)
	if err != nil {
		tst.Errorf("ReadStudy failed:\n%v", err)
		return
	}
	chk.String(tst, o.Key, "beam")
	chk.String(tst, o.Desc, "cantilever")
	chk.Int(tst, "niter", o.Niter, 4)
	chk.Float64(tst, "size0", 1e-15, o.Mesh.Size0, 8)
	chk.Float64(tst, "height (default)", 1e-15, o.Mesh.Height, 20)
	chk.String(tst, o.DirOut, filepath.Join(dir, "work"))
	chk.String(tst, o.DirStage, filepath.Join(dir, "work", "temp"))
	chk.String(tst, o.Deck.Template, filepath.Join(dir, "StaticBeam_template.inp"))
	chk.String(tst, o.Solver.Exe, "/opt/solver/bin/run")
	chk.Int(tst, "col", o.Report.Col, 2)
	if o.Solver.Timeout != 90*time.Second {
		tst.Errorf("timeout must be 90s; got %v", o.Solver.Timeout)
		return
	}

	// environment override
	tst.Setenv("MESHCONV_SOLVER_EXE", "fake-solver")
	o, err = ReadStudy(fn)
	if err != nil {
		tst.Errorf("ReadStudy failed:\n%v", err)
		return
	}
	chk.String(tst, o.Solver.Exe, "fake-solver")

	// missing file
	_, err = ReadStudy(filepath.Join(dir, "missing.yaml"))
	if err == nil {
		tst.Errorf("missing study file must fail")
	}
}

func Test_study03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("study03. validation")

	ok, err := Default()
	if err != nil {
		tst.Errorf("Default failed:\n%v", err)
		return
	}
	for _, tc := range []struct {
		name string
		edit func(o *Study)
	}{
		{"zero size", func(o *Study) { o.Mesh.Size0 = 0 }},
		{"nan size", func(o *Study) { o.Mesh.Size0 = math.NaN() }},
		{"negative height", func(o *Study) { o.Mesh.Height = -1 }},
		{"no iterations", func(o *Study) { o.Niter = 0 }},
		{"no template", func(o *Study) { o.Deck.Template = "" }},
		{"no solver", func(o *Study) { o.Solver.Exe = "" }},
		{"negative timeout", func(o *Study) { o.Solver.Timeout = -time.Second }},
		{"column out of range", func(o *Study) { o.Report.Col = 10 }},
		{"column before start", func(o *Study) { o.Report.Col = -11 }},
		{"bad encoder", func(o *Study) { o.Output.Enc = "xml" }},
		{"bad decay", func(o *Study) { o.Decay = "size /" }},
		{"bad reference", func(o *Study) { o.Ref.E = 1000; o.Ref.Nu = 0.5 }},
	} {
		o := *ok
		tc.edit(&o)
		if err := o.Validate(); err == nil {
			tst.Errorf("%s: Validate must fail", tc.name)
		}
	}
}

func Test_decay01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("decay01. element sizes")

	d, err := NewDecay("size / 1.3")
	if err != nil {
		tst.Errorf("NewDecay failed:\n%v", err)
		return
	}
	sizes, err := d.Sizes(6, 10, 0)
	if err != nil {
		tst.Errorf("Sizes failed:\n%v", err)
		return
	}
	io.Pforan("sizes = %v\n", sizes)
	chk.Int(tst, "nsizes", len(sizes), 10)
	chk.Float64(tst, "first", 1e-15, sizes[0], 6)
	chk.Float64(tst, "second", 1e-15, sizes[1], 6/1.3)
	chk.Float64(tst, "last", 1e-12, sizes[9], 6/math.Pow(1.3, 9))

	// lower limit
	sizes, err = d.Sizes(6, 10, 2)
	if err != nil {
		tst.Errorf("Sizes failed:\n%v", err)
		return
	}
	chk.Int(tst, "nsizes with minsize", len(sizes), 5)

	// integer rule and iteration variable
	d, err = NewDecay("size - 1 - iter")
	if err != nil {
		tst.Errorf("NewDecay failed:\n%v", err)
		return
	}
	sizes, err = d.Sizes(10, 4, 0)
	if err != nil {
		tst.Errorf("Sizes failed:\n%v", err)
		return
	}
	chk.Array(tst, "sizes", 1e-15, sizes, []float64{10, 9, 7, 4})
}

func Test_decay02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("decay02. invalid rules")

	for _, rule := range []string{"", "size *", "unknown / 2"} {
		if _, err := NewDecay(rule); err == nil {
			tst.Errorf("rule %q must fail to compile", rule)
		}
	}
	for _, rule := range []string{"size", "size * 2", "size - 10", "0"} {
		d, err := NewDecay(rule)
		if err != nil {
			tst.Errorf("NewDecay(%q) failed:\n%v", rule, err)
			return
		}
		if _, err = d.Next(6, 0); err == nil {
			tst.Errorf("rule %q must be rejected", rule)
		}
	}
}

func Test_jobname01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("jobname01")

	chk.String(tst, JobName("Static_ElemSize_", 6), "Static_ElemSize_6p00")
	chk.String(tst, JobName("Static_ElemSize_", 6/1.3), "Static_ElemSize_4p62")
	chk.String(tst, JobName("Static_ElemSize_", 2.5), "Static_ElemSize_2p50")
	chk.String(tst, JobName("J", 12), "J12p00")
}

func Test_study04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("study04. example study file")

	fn := filepath.Join("..", "examples", "cantilever", "study.yaml")
	o, err := ReadStudy(fn)
	if err != nil {
		tst.Errorf("ReadStudy failed:\n%v", err)
		return
	}
	io.Pforan("%+v\n", o)
	chk.String(tst, o.Key, "study")
	chk.String(tst, o.Deck.Template, filepath.Join("..", "examples", "cantilever", "StaticBeam_template.inp"))
	chk.String(tst, o.DirStage, filepath.Join("..", "examples", "cantilever", "temp"))
	chk.Int(tst, "niter", o.Niter, 10)
	chk.String(tst, o.Output.Metrics, "meshconv.prom")
	if o.Solver.Timeout != 30*time.Minute {
		tst.Errorf("timeout must be 30m; got %v", o.Solver.Timeout)
		return
	}
	chk.Float64(tst, "E", 1e-15, o.Ref.E, 210000)
	chk.Float64(tst, "load", 1e-15, o.Ref.Load, -1000)
	if _, err = os.Stat(o.Deck.Template); err != nil {
		tst.Errorf("template of example must exist:\n%v", err)
	}
}
