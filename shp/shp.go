// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package shp implements shape structures/routines of low-order cells
package shp

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"
)

// constants
const MINDET = 1.0e-14 // minimum determinant allowed for dxdR

// ShpFunc is the shape functions callback function
type ShpFunc func(S []float64, dSdR [][]float64, r []float64, derivs bool)

// Ipoint holds the natural coordinates and weight of an integration point
type Ipoint struct {
	R float64
	S float64
	W float64
}

// Shape holds geometry data
type Shape struct {

	// geometry
	Type      string      // name; e.g. "qua4"
	Func      ShpFunc     // shape/derivs function callback function
	Gndim     int         // geometry of shape; e.g. "lin2" => gnd == 1 (even in 2D meshes)
	Nverts    int         // number of vertices in cell; e.g. "qua4" => 4
	VtkCode   int         // VTK code
	NatCoords [][]float64 // natural coordinates [gndim][nverts]
	Ips       []Ipoint    // default integration points

	// scratchpad
	S    []float64   // [nverts] shape functions
	J    float64     // Jacobian: determinant of dxdr (norm of dxdr for lines)
	DSdR [][]float64 // [nverts][gndim] derivatives of S w.r.t natural coordinates
	DxdR [][]float64 // [ndim][gndim] derivatives of real coordinates w.r.t natural coordinates
}

// factory holds all Shapes available
var factory = make(map[string]*Shape)

// Get returns a new Shape structure; nil if geoType is not available
func Get(geoType string) *Shape {
	s, ok := factory[geoType]
	if !ok {
		return nil
	}
	return &Shape{
		Type:      s.Type,
		Func:      s.Func,
		Gndim:     s.Gndim,
		Nverts:    s.Nverts,
		VtkCode:   s.VtkCode,
		NatCoords: s.NatCoords,
		Ips:       s.Ips,
		S:         make([]float64, s.Nverts),
		DSdR:      utl.Alloc(s.Nverts, s.Gndim),
	}
}

// CalcAtR calculates S, DSdR, DxdR and J at natural coordinates r
//  Input:
//   x[ndim][nverts] -- coordinates matrix of cell
//  Note: returns an error if J is too small or negative
func (o *Shape) CalcAtR(x [][]float64, r []float64) (err error) {

	// S and dSdR
	o.Func(o.S, o.DSdR, r, true)

	// dxdR := sum_n x * dSdR   =>  dx_i/dR_j := sum_n x^n_i * dS^n/dR_j
	ndim := len(x)
	if len(o.DxdR) != ndim {
		o.DxdR = utl.Alloc(ndim, o.Gndim)
	}
	for i := 0; i < ndim; i++ {
		for j := 0; j < o.Gndim; j++ {
			o.DxdR[i][j] = 0.0
			for n := 0; n < o.Nverts; n++ {
				o.DxdR[i][j] += x[i][n] * o.DSdR[n][j]
			}
		}
	}

	// J
	switch o.Gndim {
	case 1:
		o.J = 0
		for i := 0; i < ndim; i++ {
			o.J += o.DxdR[i][0] * o.DxdR[i][0]
		}
		o.J = math.Sqrt(o.J)
	case 2:
		if ndim != 2 {
			return chk.Err("%s cells require 2D coordinates; got %d", o.Type, ndim)
		}
		o.J = o.DxdR[0][0]*o.DxdR[1][1] - o.DxdR[0][1]*o.DxdR[1][0]
	}
	if o.J < MINDET {
		return chk.Err("invalid %s cell: det(dxdR) = %g is too small or negative", o.Type, o.J)
	}
	return
}

// MinDet returns the smallest determinant of dxdR at the integration points
func (o *Shape) MinDet(x [][]float64) (jmin float64, err error) {
	jmin = math.Inf(1)
	for _, ip := range o.Ips {
		if err = o.CalcAtR(x, []float64{ip.R, ip.S}); err != nil {
			return
		}
		jmin = math.Min(jmin, o.J)
	}
	return
}

// Measure returns the length (lines) or area (surfaces) of a cell
func (o *Shape) Measure(x [][]float64) (res float64, err error) {
	for _, ip := range o.Ips {
		if err = o.CalcAtR(x, []float64{ip.R, ip.S}); err != nil {
			return
		}
		res += o.J * ip.W
	}
	return
}
