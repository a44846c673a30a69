// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msh

import (
	"math"

	"github.com/PyFEA/FEA-Mesh-Convergence/shp"
	"github.com/cpmech/gosl/chk"
)

// shapes maps cell types to shape names
var shapes = map[string]string{
	TypeLin2: "lin2",
	TypeTri3: "tri3",
	TypeQua4: "qua4",
}

// Quality holds mesh quality data
type Quality struct {
	MinDet  float64 // smallest det(dxdR) of surface cells at integration points
	Area    float64 // total area of surface cells
	Length  float64 // total length of line cells
	Ncells2 int     // number of surface cells
}

// Check verifies that all surface cells are counter-clockwise and not degenerated and
// computes the quality data
func (o *Mesh) Check() (q Quality, err error) {
	q.MinDet = math.Inf(1)
	cache := make(map[string]*shp.Shape)
	for _, c := range o.Cells {
		sh, ok := cache[c.Type]
		if !ok {
			sh = shp.Get(shapes[c.Type])
			if sh == nil {
				return q, chk.Err("cell %d: type %q is not available", c.Id, c.Type)
			}
			cache[c.Type] = sh
		}
		if len(c.Verts) != sh.Nverts {
			return q, chk.Err("cell %d: %s requires %d vertices; got %d", c.Id, c.Type, sh.Nverts, len(c.Verts))
		}
		x := make([][]float64, 2)
		for i := range x {
			x[i] = make([]float64, sh.Nverts)
			for m, id := range c.Verts {
				x[i][m] = o.Verts[id-1].C[i]
			}
		}
		meas, e := sh.Measure(x)
		if e != nil {
			return q, chk.Err("cell %d:\n%v", c.Id, e)
		}
		if sh.Gndim == 1 {
			q.Length += meas
			continue
		}
		jmin, e := sh.MinDet(x)
		if e != nil {
			return q, chk.Err("cell %d:\n%v", c.Id, e)
		}
		q.MinDet = math.Min(q.MinDet, jmin)
		q.Area += meas
		q.Ncells2++
	}
	return
}
