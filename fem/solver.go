// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"context"
	"errors"
	"fmt"
	goio "io"
	"os"
	"os/exec"
	"path/filepath"
	"time"
)

// ErrNoDeck is returned when the input deck to be run does not exist
var ErrNoDeck = errors.New("input deck not found")

// WaitDelay bounds the wait for output pipes after the solver has been killed
const WaitDelay = 5 * time.Second

// Runner runs one job of the external solver
//  Input:
//   job  -- job name; the deck is <wdir>/<job>.inp
//   wdir -- working directory with the deck
//   tdir -- staging directory where the solver runs and writes its reports
type Runner interface {
	Run(ctx context.Context, job, wdir, tdir string) (*RunInfo, error)
}

// RunInfo holds information about a finished run
type RunInfo struct {
	Job      string        // job name
	Deck     string        // staged deck
	ExitCode int           // exit status of solver; not interpreted
	Elapsed  time.Duration // wall time
	TimedOut bool          // the run was killed after Timeout
}

// Solver runs an external solver executable as
//   <Exe> int ask=off job=<job>.inp
// in the staging directory
type Solver struct {
	Exe     string        // executable; e.g. abq2024
	Timeout time.Duration // max duration of one run; 0 => no limit
	Stdout  goio.Writer   // standard output of solver; nil => os.Stdout
	Stderr  goio.Writer   // standard error of solver; nil => os.Stderr
}

// Args returns the arguments passed to the executable
func (o *Solver) Args(job string) []string {
	return []string{"int", "ask=off", "job=" + job + ".inp"}
}

// Run copies the deck to tdir and runs the solver there until it finishes. The working
// directory of the calling process is not changed. On timeout or cancellation, the solver and
// all processes it started are killed
func (o *Solver) Run(ctx context.Context, job, wdir, tdir string) (info *RunInfo, err error) {

	// stage deck
	info = &RunInfo{Job: job, ExitCode: -1}
	info.Deck, err = Stage(job, wdir, tdir)
	if err != nil {
		return
	}
	dir, err := filepath.Abs(tdir)
	if err != nil {
		return
	}

	// command
	if o.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.Timeout)
		defer cancel()
	}
	cmd := exec.CommandContext(ctx, o.Exe, o.Args(job)...)
	cmd.Dir = dir
	cmd.WaitDelay = WaitDelay
	killGroup(cmd)
	cmd.Stdout, cmd.Stderr = o.Stdout, o.Stderr
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}

	// run
	t0 := time.Now()
	err = cmd.Run()
	info.Elapsed = time.Since(t0)
	if cmd.ProcessState != nil {
		info.ExitCode = cmd.ProcessState.ExitCode()
	}
	if o.Timeout > 0 && errors.Is(ctx.Err(), context.DeadlineExceeded) {
		info.TimedOut = true
		return info, fmt.Errorf("solver %q killed after %v: %w", o.Exe, o.Timeout, ctx.Err())
	}
	if ctx.Err() != nil {
		return info, fmt.Errorf("solver %q interrupted: %w", o.Exe, ctx.Err())
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return info, nil
	}
	if err != nil {
		return info, fmt.Errorf("cannot run solver %q: %w", o.Exe, err)
	}
	return
}

// Stage copies <wdir>/<job>.inp to <tdir>/<job>.inp, creating tdir if needed
func Stage(job, wdir, tdir string) (fn string, err error) {
	src := filepath.Join(wdir, job+".inp")
	b, err := os.ReadFile(src)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrNoDeck, err)
	}
	if err = os.MkdirAll(tdir, 0755); err != nil {
		return "", fmt.Errorf("cannot create staging directory: %w", err)
	}
	fn = filepath.Join(tdir, job+".inp")
	if err = os.WriteFile(fn, b, 0644); err != nil {
		return "", fmt.Errorf("cannot stage deck: %w", err)
	}
	return
}
