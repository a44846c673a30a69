// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build unix

package fem

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"testing"
	"time"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// launcher starts the analysis as a child process and waits for it
const launcher = `#!/bin/sh
sleep 30 &
echo $! > child.pid
echo started
wait
`

// alive tells whether pid runs; zombies are dead
func alive(pid int) bool {
	if syscall.Kill(pid, 0) != nil {
		return false
	}
	b, err := os.ReadFile(filepath.Join("/proc", strconv.Itoa(pid), "stat"))
	if err != nil {
		return true
	}
	return !strings.Contains(string(b), ") Z ")
}

func Test_solver03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("solver03. timeout kills the launcher and its children")

	dir := tst.TempDir()
	tdir := filepath.Join(dir, "temp")
	writeDeck(tst, dir, "job")

	var stdout bytes.Buffer
	s := &Solver{
		Exe:     writeScript(tst, dir, "launcher.sh", launcher),
		Timeout: 500 * time.Millisecond,
		Stdout:  &stdout,
	}
	t0 := time.Now()
	info, err := s.Run(context.Background(), "job", dir, tdir)
	elapsed := time.Since(t0)
	io.Pforan("elapsed = %v  err = %v\n", elapsed, err)
	if err == nil || !info.TimedOut {
		tst.Errorf("timeout expected; got %v", err)
		return
	}
	if elapsed >= WaitDelay {
		tst.Errorf("output pipe must be closed by killing the children; elapsed = %v", elapsed)
		return
	}
	chk.String(tst, strings.TrimSpace(stdout.String()), "started")

	// child
	b, err := os.ReadFile(filepath.Join(tdir, "child.pid"))
	if err != nil {
		tst.Errorf("cannot read pid of child:\n%v", err)
		return
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(b)))
	if err != nil {
		tst.Errorf("invalid pid of child:\n%v", err)
		return
	}
	deadline := time.Now().Add(2 * time.Second)
	for alive(pid) {
		if time.Now().After(deadline) {
			syscall.Kill(pid, syscall.SIGKILL)
			tst.Errorf("child %d must be killed with the launcher", pid)
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
}
