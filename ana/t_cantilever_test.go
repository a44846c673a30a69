// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ana

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/plt"
	"github.com/cpmech/gosl/utl"
)

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

func Test_cantilever01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("cantilever01. tip deflection")

	var sol Cantilever
	if err := sol.Init(sol.GetPrms()); err != nil {
		tst.Errorf("Init failed:\n%v", err)
		return
	}

	// I = 1*20³/12; A = 20; G = 210000/2.6
	I := 8000.0 / 12.0
	G := 210000.0 / 2.6
	bend := -100.0 * 100.0 * 100.0 / (3.0 * 210000.0 * I)
	shear := -100.0 / (5.0 / 6.0 * G * 20.0)
	io.Pforan("bend = %v  shear = %v\n", bend, shear)
	chk.Float64(tst, "I", 1e-12, sol.I, I)
	chk.Float64(tst, "tip", 1e-15, sol.TipDeflection(), bend+shear)
	chk.Float64(tst, "clamped", 1e-15, sol.Deflection(0), 0)
	chk.Float64(tst, "relerr", 1e-15, sol.RelError(1.1*(bend+shear)), 0.1)

	// linear in P
	var sol2 Cantilever
	sol2.Init(dbf.Params{&dbf.P{N: "P", V: -2}})
	chk.Float64(tst, "2P", 1e-15, sol2.TipDeflection(), 2*sol.TipDeflection())

	if chk.Verbose {
		s := utl.LinSpace(0, sol.L, 21)
		u := make([]float64, len(s))
		for i := range s {
			u[i] = sol.Deflection(s[i])
		}
		plt.Reset(false, nil)
		plt.Plot(s, u, &plt.A{C: "b", M: ".", Ls: "-", L: "uy"})
		plt.Gll("distance from clamped end", "uy", nil)
		plt.Save("/tmp/meshconv", "ana_cantilever01")
	}
}

func Test_cantilever02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("cantilever02. invalid parameters")

	var sol Cantilever
	bad := dbf.Params{
		&dbf.P{N: "L", V: 0},
		&dbf.P{N: "thk", V: -1},
		&dbf.P{N: "nu", V: 0.5},
	}
	for _, p := range bad {
		if err := sol.Init(dbf.Params{p}); err == nil {
			tst.Errorf("%s=%g must fail", p.N, p.V)
			return
		}
	}
}
