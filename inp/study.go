// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package inp implements the input data of a mesh-convergence study read from a
// (.yaml, .json or .toml) study file
package inp

import (
	"math"
	"path/filepath"
	"strings"
	"time"

	"github.com/PyFEA/FEA-Mesh-Convergence/ana"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment variables overriding the study file;
// e.g. MESHCONV_SOLVER_EXE
const EnvPrefix = "MESHCONV"

// MeshData holds data of the rectangular domain and its mesh
type MeshData struct {
	Size0   float64 `mapstructure:"size0"`   // initial element size
	Length  float64 `mapstructure:"length"`  // length of domain
	Height  float64 `mapstructure:"height"`  // height of domain
	Display bool    `mapstructure:"display"` // also write .vtu files of meshes
}

// DeckData holds data to assemble input decks
type DeckData struct {
	Template string `mapstructure:"template"` // template file
	Instance string `mapstructure:"instance"` // part instance; e.g. Beam-1
	Generic  string `mapstructure:"generic"`  // element type of mesher; e.g. CPS4
	Reduced  string `mapstructure:"reduced"`  // element type of deck; e.g. CPS4R
	Nbanner  int    `mapstructure:"nbanner"`  // number of banner lines of mesh files
}

// SolverData holds data of the external solver
type SolverData struct {
	Exe     string        `mapstructure:"exe"`     // executable; e.g. abq2024
	Timeout time.Duration `mapstructure:"timeout"` // max duration of one run; 0 => no limit
}

// ReportData holds data to scrape the status report
type ReportData struct {
	Ext   string `mapstructure:"ext"`   // extension of report file; e.g. .sta
	Ncols int    `mapstructure:"ncols"` // number of fields of result rows
	Col   int    `mapstructure:"col"`   // column with monitored value; negative => from the end
}

// OutputData holds data for output files
type OutputData struct {
	Table   string `mapstructure:"table"`   // results table; e.g. ElemSize_VS_UY.txt
	Plot    string `mapstructure:"plot"`    // key of convergence plot file; empty => no plot
	Metrics string `mapstructure:"metrics"` // prometheus text file; empty => no metrics file
	Enc     string `mapstructure:"enc"`     // encoder of summary: "json" or "gob"; empty => no summary
}

// LogData holds logging options
type LogData struct {
	Level  string `mapstructure:"level"`  // debug, info, warn or error
	Format string `mapstructure:"format"` // text or json
}

// MonitorData holds options of the progress monitor
type MonitorData struct {
	Addr string `mapstructure:"addr"` // listen address; e.g. :8080; empty => no monitor
}

// RefData holds data of the closed-form reference solution of the cantilever; E == 0 => no reference
type RefData struct {
	E    float64 `mapstructure:"e"`    // Young's modulus
	Nu   float64 `mapstructure:"nu"`   // Poisson's coefficient
	Thk  float64 `mapstructure:"thk"`  // thickness
	Load float64 `mapstructure:"load"` // force along y at the loaded corner
}

// RefPrms returns the parameters of the reference solution
func (o *Study) RefPrms() dbf.Params {
	return dbf.Params{
		&dbf.P{N: "L", V: o.Mesh.Length},
		&dbf.P{N: "H", V: o.Mesh.Height},
		&dbf.P{N: "thk", V: o.Ref.Thk},
		&dbf.P{N: "E", V: o.Ref.E},
		&dbf.P{N: "nu", V: o.Ref.Nu},
		&dbf.P{N: "P", V: o.Ref.Load},
	}
}

// Study holds all input data of a mesh-convergence study
type Study struct {

	// global information
	Desc     string  `mapstructure:"desc"`     // description of study
	Prefix   string  `mapstructure:"prefix"`   // job name prefix; e.g. Static_ElemSize_
	DirOut   string  `mapstructure:"dirout"`   // working directory: meshes, decks and results
	DirStage string  `mapstructure:"dirstage"` // staging directory where the solver runs
	Niter    int     `mapstructure:"niter"`    // number of element sizes
	Decay    string  `mapstructure:"decay"`    // rule for next element size; e.g. "size / 1.3"
	MinSize  float64 `mapstructure:"minsize"`  // stop when element size falls below; 0 => no limit

	// sections
	Mesh    MeshData    `mapstructure:"mesh"`
	Deck    DeckData    `mapstructure:"deck"`
	Solver  SolverData  `mapstructure:"solver"`
	Report  ReportData  `mapstructure:"report"`
	Output  OutputData  `mapstructure:"output"`
	Log     LogData     `mapstructure:"log"`
	Monitor MonitorData `mapstructure:"monitor"`
	Ref     RefData     `mapstructure:"ref"`

	// derived
	Key string // key of study; study filename without extension
}

// setDefaults sets default values
func setDefaults(v *viper.Viper) {
	v.SetDefault("desc", "mesh convergence study")
	v.SetDefault("prefix", "Static_ElemSize_")
	v.SetDefault("dirout", ".")
	v.SetDefault("dirstage", "temp")
	v.SetDefault("niter", 10)
	v.SetDefault("decay", "size / 1.3")
	v.SetDefault("minsize", 0.0)
	v.SetDefault("mesh.size0", 6.0)
	v.SetDefault("mesh.length", 100.0)
	v.SetDefault("mesh.height", 20.0)
	v.SetDefault("mesh.display", false)
	v.SetDefault("deck.template", "StaticBeam_template.inp")
	v.SetDefault("deck.instance", "Beam-1")
	v.SetDefault("deck.generic", "CPS4")
	v.SetDefault("deck.reduced", "CPS4R")
	v.SetDefault("deck.nbanner", 2)
	v.SetDefault("solver.exe", "abq2024")
	v.SetDefault("solver.timeout", time.Duration(0))
	v.SetDefault("report.ext", ".sta")
	v.SetDefault("report.ncols", 10)
	v.SetDefault("report.col", -1)
	v.SetDefault("output.table", "ElemSize_VS_UY.txt")
	v.SetDefault("output.plot", "Mesh_Conv")
	v.SetDefault("output.metrics", "")
	v.SetDefault("output.enc", "json")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("monitor.addr", "")
	v.SetDefault("ref.e", 0.0)
	v.SetDefault("ref.nu", 0.3)
	v.SetDefault("ref.thk", 1.0)
	v.SetDefault("ref.load", -1.0)
}

// newViper returns a viper instance with defaults and environment overrides
func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Default returns the default study; environment overrides are applied
func Default() (*Study, error) {
	return decode(newViper(), "study")
}

// ReadStudy reads a study file. Relative directories and the template are resolved with
// respect to the directory of the study file
func ReadStudy(fn string) (*Study, error) {
	v := newViper()
	v.SetConfigFile(fn)
	if err := v.ReadInConfig(); err != nil {
		return nil, chk.Err("cannot read study file %q:\n%v", fn, err)
	}
	o, err := decode(v, io.FnKey(fn))
	if err != nil {
		return nil, err
	}
	dir := filepath.Dir(fn)
	o.DirOut = rel(dir, o.DirOut)
	o.DirStage = rel(o.DirOut, o.DirStage)
	o.Deck.Template = rel(dir, o.Deck.Template)
	return o, nil
}

// decode unmarshals and checks data
func decode(v *viper.Viper, key string) (*Study, error) {
	var o Study
	if err := v.Unmarshal(&o); err != nil {
		return nil, chk.Err("cannot decode study data:\n%v", err)
	}
	o.Key = key
	if err := o.Validate(); err != nil {
		return nil, err
	}
	return &o, nil
}

// Validate checks input data
func (o *Study) Validate() error {
	pos := func(name string, x float64) error {
		if !(x > 0) || math.IsInf(x, 0) {
			return chk.Err("%s must be positive; %g is invalid", name, x)
		}
		return nil
	}
	for _, err := range []error{
		pos("mesh.size0", o.Mesh.Size0),
		pos("mesh.length", o.Mesh.Length),
		pos("mesh.height", o.Mesh.Height),
	} {
		if err != nil {
			return err
		}
	}
	if o.Niter < 1 {
		return chk.Err("niter must be at least 1; %d is invalid", o.Niter)
	}
	if o.MinSize < 0 {
		return chk.Err("minsize cannot be negative; %g is invalid", o.MinSize)
	}
	if o.Deck.Template == "" {
		return chk.Err("deck.template is required")
	}
	if o.Deck.Instance == "" {
		return chk.Err("deck.instance is required")
	}
	if o.Deck.Nbanner < 0 {
		return chk.Err("deck.nbanner cannot be negative")
	}
	if o.Solver.Exe == "" {
		return chk.Err("solver.exe is required")
	}
	if o.Solver.Timeout < 0 {
		return chk.Err("solver.timeout cannot be negative")
	}
	if o.Report.Ncols < 1 {
		return chk.Err("report.ncols must be at least 1; %d is invalid", o.Report.Ncols)
	}
	if o.Report.Col < -o.Report.Ncols || o.Report.Col >= o.Report.Ncols {
		return chk.Err("report.col=%d is out of range for %d columns", o.Report.Col, o.Report.Ncols)
	}
	switch o.Output.Enc {
	case "", "json", "gob":
	default:
		return chk.Err("output.enc must be json or gob; %q is invalid", o.Output.Enc)
	}
	if _, err := NewDecay(o.Decay); err != nil {
		return err
	}
	if o.Ref.E != 0 {
		var sol ana.Cantilever
		if err := sol.Init(o.RefPrms()); err != nil {
			return chk.Err("invalid reference data:\n%v", err)
		}
	}
	return nil
}

// JobName returns the job name for an element size; e.g. Static_ElemSize_6p00
func JobName(prefix string, size float64) string {
	return prefix + strings.Replace(io.Sf("%.2f", size), ".", "p", 1)
}

func rel(dir, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}
