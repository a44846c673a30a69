// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shp

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

func Test_shape01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("shape01. nodal values and derivatives")

	for name := range factory {
		io.Pfyel("--------------------------------- %-6s---------------------------------\n", name)
		o := Get(name)

		// S_m(node n) == δ_mn
		r := make([]float64, 2)
		for n := 0; n < o.Nverts; n++ {
			for i := 0; i < o.Gndim; i++ {
				r[i] = o.NatCoords[i][n]
			}
			o.Func(o.S, o.DSdR, r, false)
			for m := 0; m < o.Nverts; m++ {
				δ := 0.0
				if m == n {
					δ = 1
				}
				chk.Float64(tst, io.Sf("%s: S%d(node%d)", name, m, n), 1e-15, o.S[m], δ)
			}
		}

		// dSdR by central differences
		h := 1e-6
		r0 := []float64{0.3, 0.1}
		o.Func(o.S, o.DSdR, r0, true)
		S := make([]float64, o.Nverts)
		for j := 0; j < o.Gndim; j++ {
			rp := []float64{r0[0], r0[1]}
			rm := []float64{r0[0], r0[1]}
			rp[j] += h
			rm[j] -= h
			Sp := make([]float64, o.Nverts)
			o.Func(Sp, nil, rp, false)
			o.Func(S, nil, rm, false)
			for m := 0; m < o.Nverts; m++ {
				chk.Float64(tst, io.Sf("%s: dS%d/dR%d", name, m, j), 1e-9, o.DSdR[m][j], (Sp[m]-S[m])/(2*h))
			}
		}
	}
}

func Test_shape02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("shape02. measure and orientation")

	// unit length and areas
	lin := Get("lin2")
	L, err := lin.Measure([][]float64{{0, 3}, {0, 4}})
	if err != nil {
		tst.Errorf("Measure failed:\n%v", err)
		return
	}
	chk.Float64(tst, "length", 1e-15, L, 5)

	tri := Get("tri3")
	A, err := tri.Measure([][]float64{{0, 2, 0}, {0, 0, 1}})
	if err != nil {
		tst.Errorf("Measure failed:\n%v", err)
		return
	}
	chk.Float64(tst, "area of tri3", 1e-15, A, 1)

	qua := Get("qua4")
	x := [][]float64{{10, 13, 13, 10}, {8, 8, 9, 9}}
	A, err = qua.Measure(x)
	if err != nil {
		tst.Errorf("Measure failed:\n%v", err)
		return
	}
	chk.Float64(tst, "area of qua4", 1e-14, A, 3)
	jmin, err := qua.MinDet(x)
	if err != nil {
		tst.Errorf("MinDet failed:\n%v", err)
		return
	}
	chk.Float64(tst, "J of rectangle", 1e-15, jmin, 0.75)

	// clockwise cell
	_, err = qua.MinDet([][]float64{{10, 10, 13, 13}, {8, 9, 9, 8}})
	if err == nil {
		tst.Errorf("clockwise cell must fail")
		return
	}

	// unknown and misused shapes
	if Get("hex8") != nil {
		tst.Errorf("hex8 is not available")
		return
	}
	if _, err = qua.MinDet([][]float64{{0, 1, 1, 0}}); err == nil {
		tst.Errorf("1D coordinates must fail for qua4")
	}
}
