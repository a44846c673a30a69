// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package fem drives mesh-convergence studies: for decreasing element sizes, it generates
// meshes, assembles input decks, runs the external solver and collects results
package fem

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/PyFEA/FEA-Mesh-Convergence/ana"
	"github.com/PyFEA/FEA-Mesh-Convergence/deck"
	"github.com/PyFEA/FEA-Mesh-Convergence/inp"
	"github.com/PyFEA/FEA-Mesh-Convergence/msh"
	"github.com/PyFEA/FEA-Mesh-Convergence/out"
	"github.com/cpmech/gosl/chk"
)

// stages of one iteration
const (
	StageMesh    = "mesh"
	StageDeck    = "deck"
	StageSolve   = "solve"
	StageExtract = "extract"
	StageDone    = "done"
)

// MeshPrefix prefixes the names of mesh files
const MeshPrefix = "mesh_"

// Event reports the progress of a study
type Event struct {
	Iter    int       `json:"iter"`             // index of element size
	Job     string    `json:"job"`              // job name
	Size    float64   `json:"size"`             // element size
	Stage   string    `json:"stage"`            // stage just started; or StageDone
	Value   float64   `json:"value"`            // monitored value (at StageDone)
	Present bool      `json:"present"`          // value is available (at StageDone)
	Status  string    `json:"status,omitempty"` // status of run (at StageDone); e.g. StatusNoReport
	Err     string    `json:"error,omitempty"`  // error message, if any
	Time    time.Time `json:"time"`             // time of event
}

// Study runs a mesh-convergence study
type Study struct {
	Cfg     *inp.Study      // input data
	Runner  Runner          // runs the solver
	Log     *slog.Logger    // logger
	Metrics *Metrics        // metrics of solver runs
	Summary *Summary        // results
	Table   *out.Table      // results by element size
	Notify  func(Event)     // optional observer
	Verbose bool            // print names of written files
	Ref     *ana.Cantilever // reference solution; may be nil
	decay   *inp.Decay      // computes next element size
	reader  out.StaReader   // scrapes status reports
}

// NewStudy returns a new study
//  runner -- nil => the executable in cfg
//  logger -- nil => discard log records
func NewStudy(cfg *inp.Study, runner Runner, logger *slog.Logger) (o *Study, err error) {
	if cfg == nil {
		return nil, chk.Err("study input data is required")
	}
	if err = cfg.Validate(); err != nil {
		return
	}
	o = &Study{Cfg: cfg, Runner: runner, Log: logger}
	if o.Runner == nil {
		o.Runner = &Solver{Exe: cfg.Solver.Exe, Timeout: cfg.Solver.Timeout}
	}
	if o.Log == nil {
		o.Log = discard()
	}
	o.decay, err = inp.NewDecay(cfg.Decay)
	if err != nil {
		return nil, err
	}
	o.reader = out.StaReader{Ncols: cfg.Report.Ncols, Col: cfg.Report.Col}
	o.Metrics = NewMetrics()
	o.Summary = &Summary{Key: cfg.Key, Dirout: cfg.DirOut}
	o.Table = new(out.Table)
	if cfg.Ref.E != 0 {
		o.Ref = new(ana.Cantilever)
		if err = o.Ref.Init(cfg.RefPrms()); err != nil {
			return nil, err
		}
		o.Summary.Ref = o.Ref.TipDeflection()
	}
	return
}

// Run runs all iterations and writes the results. Mesh, deck and decay errors stop the
// study; solver failures and missing values are recorded as gaps. Results obtained so far
// are written even if the study stops
func (o *Study) Run(ctx context.Context) (err error) {

	// output directory
	if err = os.MkdirAll(o.Cfg.DirOut, 0755); err != nil {
		return chk.Err("cannot create output directory:\n%v", err)
	}
	defer func() {
		err = errors.Join(err, o.Finish())
	}()

	// iterations
	size := o.Cfg.Mesh.Size0
	o.Log.Info("study started", "key", o.Cfg.Key, "niter", o.Cfg.Niter, "size0", size, "decay", o.Cfg.Decay)
	for it := 0; it < o.Cfg.Niter; it++ {
		if err = ctx.Err(); err != nil {
			o.Log.Warn("study interrupted", "iter", it)
			return
		}
		if o.Cfg.MinSize > 0 && size < o.Cfg.MinSize {
			o.Log.Info("minimum element size reached", "size", size, "minsize", o.Cfg.MinSize)
			return
		}
		if err = o.Step(ctx, it, size); err != nil {
			return
		}
		if it == o.Cfg.Niter-1 {
			break
		}
		if size, err = o.decay.Next(size, it); err != nil {
			return
		}
	}
	o.Log.Info("study finished", "nsizes", len(o.Summary.Sizes))
	return
}

// Step runs the iteration with index it and element size size
func (o *Study) Step(ctx context.Context, it int, size float64) (err error) {

	job := inp.JobName(o.Cfg.Prefix, size)
	log := o.Log.With("iter", it, "job", job, "size", size)
	o.Metrics.Iteration.Set(float64(it))
	o.Metrics.ElemSize.Set(size)
	ev := Event{Iter: it, Job: job, Size: size}

	// mesh
	o.notify(ev, StageMesh)
	rect := &msh.Rect{
		Name:    MeshPrefix + job,
		Size:    size,
		Length:  o.Cfg.Mesh.Length,
		Height:  o.Cfg.Mesh.Height,
		Display: o.Cfg.Mesh.Display,
		Dirout:  o.Cfg.DirOut,
	}
	mesh, meshfn, err := rect.Generate()
	if err != nil {
		return o.fail(ev, log, fmt.Errorf("cannot generate mesh of %q: %w", job, err))
	}
	log.Debug("mesh generated", "file", meshfn, "nverts", len(mesh.Verts), "ncells", len(mesh.Cells))

	// deck
	o.notify(ev, StageDeck)
	opts := deck.Options{
		Instance: o.Cfg.Deck.Instance,
		Generic:  o.Cfg.Deck.Generic,
		Reduced:  o.Cfg.Deck.Reduced,
		Nbanner:  o.Cfg.Deck.Nbanner,
	}
	deckfn, err := deck.AssembleFile(o.Cfg.Deck.Template, meshfn, o.Cfg.DirOut, job, opts)
	if err != nil {
		return o.fail(ev, log, fmt.Errorf("cannot assemble deck of %q: %w", job, err))
	}
	log.Debug("deck assembled", "file", deckfn)

	// solve
	o.notify(ev, StageSolve)
	info, err := o.Runner.Run(ctx, job, o.Cfg.DirOut, o.Cfg.DirStage)
	code := -1
	if info != nil {
		code = info.ExitCode
		o.Metrics.Duration.Observe(info.Elapsed.Seconds())
	}
	if err != nil {
		if errors.Is(err, ErrNoDeck) || ctx.Err() != nil {
			return o.fail(ev, log, err)
		}
		status := StatusFailed
		if info != nil && info.TimedOut {
			status = StatusTimeout
		}
		log.Warn("solver run failed", "status", status, "error", err)
		ev.Err = err.Error()
		o.record(ev, log, 0, status, code)
		return nil
	}
	log.Info("solver finished", "exit", code, "elapsed", info.Elapsed)

	// extract
	o.notify(ev, StageExtract)
	sta := filepath.Join(o.Cfg.DirStage, job+o.Cfg.Report.Ext)
	val, ok, err := o.reader.Read(sta)
	status := StatusMissing
	switch {
	case err != nil:
		log.Warn("status report not available", "file", sta, "error", err)
		ev.Err = err.Error()
		status = StatusNoReport
	case ok:
		status = StatusOk
	}
	o.record(ev, log, val, status, code)
	return nil
}

// Finish writes the results table, the plot, the summary and the metrics
func (o *Study) Finish() (err error) {
	cfg := o.Cfg

	// table
	fn, err := o.Table.WriteFile(cfg.DirOut, cfg.Output.Table)
	if err != nil {
		return
	}
	o.Log.Info("results table written", "file", fn, "nrows", len(o.Table.Rows))

	// plot
	if x, _ := o.Table.Series(); cfg.Output.Plot != "" && len(x) > 0 {
		fn, e := out.PlotConvergence(o.Table, cfg.DirOut, cfg.Output.Plot)
		if e != nil {
			o.Log.Warn("convergence plot not written", "error", e)
		} else {
			o.Log.Info("convergence plot written", "file", fn)
		}
	}

	// summary
	if cfg.Output.Enc != "" {
		if fn, err = o.Summary.Save(cfg.Output.Enc, o.Verbose); err != nil {
			return
		}
		o.Log.Debug("summary written", "file", fn)
	}

	// metrics
	if cfg.Output.Metrics != "" {
		fn = cfg.Output.Metrics
		if !filepath.IsAbs(fn) {
			fn = filepath.Join(cfg.DirOut, fn)
		}
		if err = o.Metrics.WriteFile(fn); err != nil {
			return
		}
		o.Log.Debug("metrics written", "file", fn)
	}
	return
}

// auxiliary ///////////////////////////////////////////////////////////////////////////////////////

func (o *Study) notify(ev Event, stage string) {
	if o.Notify == nil {
		return
	}
	ev.Stage = stage
	ev.Time = time.Now()
	o.Notify(ev)
}

func (o *Study) record(ev Event, log *slog.Logger, val float64, status string, code int) {
	o.Summary.Append(ev.Job, ev.Size, val, status, code)
	n := len(o.Summary.Sizes) - 1
	val, ok := o.Summary.Values[n], o.Summary.Present[n]
	status = o.Summary.Status[n]
	o.Metrics.Runs.WithLabelValues(status).Inc()
	if ok {
		o.Metrics.Value.WithLabelValues(ev.Job).Set(val)
	}
	o.Table.Set(ev.Size, val, ok)
	if ok && o.Ref != nil {
		relerr := o.Ref.RelError(val)
		o.Metrics.RelError.WithLabelValues(ev.Job).Set(relerr)
		log.Info("result", "value", val, "ref", o.Summary.Ref, "relerr", relerr)
	} else if ok {
		log.Info("result", "value", val)
	} else {
		log.Warn("result missing", "status", status)
	}
	ev.Value, ev.Present, ev.Status = val, ok, status
	o.notify(ev, StageDone)
}

func (o *Study) fail(ev Event, log *slog.Logger, err error) error {
	log.Error("study stopped", "error", err)
	ev.Err = err.Error()
	o.notify(ev, StageDone)
	return err
}
