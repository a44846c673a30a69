// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/PyFEA/FEA-Mesh-Convergence/fem"
	"github.com/PyFEA/FEA-Mesh-Convergence/inp"
	"github.com/PyFEA/FEA-Mesh-Convergence/mon"
	"github.com/PyFEA/FEA-Mesh-Convergence/out"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func main() {

	// catch errors
	defer func() {
		if err := recover(); err != nil {
			io.PfRed("ERROR: %v\n", err)
			os.Exit(1)
		}
	}()

	// read input parameters
	var cfg *inp.Study
	var err error
	if len(os.Args) > 1 {
		fnamepath, _ := io.ArgToFilename(0, "", ".yaml", true)
		cfg, err = inp.ReadStudy(fnamepath)
	} else {
		cfg, err = inp.Default()
	}
	if err != nil {
		chk.Panic("%v", err)
	}
	verbose := io.ArgToBool(1, true)
	replot := io.ArgToBool(2, false)

	// message
	if verbose {
		io.PfWhite("\nMeshconv -- mesh convergence studies with an external FE solver\n\n")
		io.Pf("%-24s = %v\n", "study", cfg.Key)
		io.Pf("%-24s = %v\n", "output directory", cfg.DirOut)
		io.Pf("%-24s = %v\n", "staging directory", cfg.DirStage)
		io.Pf("%-24s = %v\n", "template", cfg.Deck.Template)
		io.Pf("%-24s = %v\n", "solver", cfg.Solver.Exe)
		io.Pf("%-24s = %v\n", "initial element size", cfg.Mesh.Size0)
		io.Pf("%-24s = %v\n", "number of sizes", cfg.Niter)
		io.Pf("%-24s = %v\n\n", "decay", cfg.Decay)
	}

	// results of previous run
	if replot {
		tab, err := export(cfg, verbose)
		if err != nil {
			chk.Panic("%v", err)
		}
		if verbose {
			tab.Write(os.Stdout)
		}
		return
	}

	// study
	logger := fem.NewLogger(cfg.Log.Level, cfg.Log.Format, os.Stderr)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	study, err := fem.NewStudy(cfg, nil, logger)
	if err != nil {
		chk.Panic("%v", err)
	}
	study.Verbose = verbose

	// monitor
	if cfg.Monitor.Addr != "" {
		hub := mon.NewHub(logger)
		go hub.Run(ctx)
		srv := &http.Server{Addr: cfg.Monitor.Addr, Handler: mon.Handler(hub, study.Metrics.Registry)}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("monitor stopped", "error", err)
			}
		}()
		defer func() {
			sctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			srv.Shutdown(sctx)
		}()
		study.Notify = func(ev fem.Event) { hub.Broadcast(ev) }
		logger.Info("monitor listening", "addr", cfg.Monitor.Addr)
	}

	// run
	err = study.Run(ctx)
	if verbose {
		io.Pf("\n")
		study.Table.Write(os.Stdout)
		if study.Ref != nil {
			io.Pf("\n%-24s = %12.4f\n", "reference UY", study.Summary.Ref)
		}
	}
	if err != nil {
		chk.Panic("study failed:\n%v", err)
	}
}

// export writes the table and the plot from the summary of a previous run
func export(cfg *inp.Study, verbose bool) (tab *out.Table, err error) {
	if cfg.Output.Enc == "" {
		return nil, chk.Err("output.enc must be set to read results back")
	}
	sum, err := fem.ReadSummary(cfg.DirOut, cfg.Key, cfg.Output.Enc)
	if err != nil {
		return
	}
	tab = sum.Table()
	fn, err := tab.WriteFile(cfg.DirOut, cfg.Output.Table)
	if err != nil {
		return
	}
	if verbose {
		io.Pfblue2("file <%s> written\n", fn)
	}
	if cfg.Output.Plot != "" {
		fn, err = out.PlotConvergence(tab, cfg.DirOut, cfg.Output.Plot)
		if err != nil {
			return
		}
		if verbose {
			io.Pfblue2("file <%s> written\n", fn)
		}
	}
	return
}
