// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package ana implements analytical solutions
package ana

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

// Cantilever implements the linear elastic solution of a cantilever of rectangular
// cross-section, clamped at x = -L and loaded by a point force P (along y) at x = 0.
// Bending (Euler-Bernoulli) and shear (Timoshenko) contributions are included
//
//    ↓ P
//    +-------------------------+/
//    |                         |/
//    +-------------------------+/
//    0                        -L
type Cantilever struct {

	// input
	L   float64 // length
	H   float64 // height
	Thk float64 // thickness
	E   float64 // Young's modulus
	ν   float64 // Poisson's coefficient
	P   float64 // force along y; negative => downwards

	// derived
	I float64 // second moment of area
	A float64 // area of cross-section
	G float64 // shear modulus
	κ float64 // shear correction factor
}

// Init initialises this structure
func (o *Cantilever) Init(prms dbf.Params) (err error) {

	// default values
	o.L = 100
	o.H = 20
	o.Thk = 1
	o.E = 210000
	o.ν = 0.3
	o.P = -1

	// parameters
	for _, p := range prms {
		switch p.N {
		case "L":
			o.L = p.V
		case "H":
			o.H = p.V
		case "thk":
			o.Thk = p.V
		case "E":
			o.E = p.V
		case "nu":
			o.ν = p.V
		case "P":
			o.P = p.V
		}
	}

	// check
	if o.L <= 0 || o.H <= 0 || o.Thk <= 0 || o.E <= 0 {
		return chk.Err("L, H, thk and E must be positive. L=%g, H=%g, thk=%g, E=%g", o.L, o.H, o.Thk, o.E)
	}
	if o.ν < 0 || o.ν >= 0.5 {
		return chk.Err("nu must be in [0, 0.5). nu=%g is invalid", o.ν)
	}

	// derived
	o.A = o.Thk * o.H
	o.I = o.Thk * math.Pow(o.H, 3) / 12.0
	o.G = o.E / (2.0 * (1.0 + o.ν))
	o.κ = 5.0 / 6.0
	return
}

// GetPrms gets (an example) of parameters
func (o Cantilever) GetPrms() dbf.Params {
	return dbf.Params{
		&dbf.P{N: "L", V: 100},
		&dbf.P{N: "H", V: 20},
		&dbf.P{N: "thk", V: 1},
		&dbf.P{N: "E", V: 210000},
		&dbf.P{N: "nu", V: 0.3},
		&dbf.P{N: "P", V: -1},
	}
}

// Deflection returns the vertical displacement at distance s from the clamped end
func (o Cantilever) Deflection(s float64) float64 {
	bend := o.P * s * s * (3.0*o.L - s) / (6.0 * o.E * o.I)
	shear := o.P * s / (o.κ * o.G * o.A)
	return bend + shear
}

// TipDeflection returns the vertical displacement at the loaded end
func (o Cantilever) TipDeflection() float64 {
	return o.Deflection(o.L)
}

// RelError returns |u - uref| / |uref|
func (o Cantilever) RelError(u float64) float64 {
	ref := o.TipDeflection()
	return math.Abs((u - ref) / ref)
}
