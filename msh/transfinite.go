// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msh

import (
	"sort"

	"github.com/cpmech/gosl/chk"
)

// Generate meshes all entities up to dimension dim (1 or 2)
//  Nodes are numbered as follows: points first, then the interior of lines (in line
//  direction), then the interior of surfaces. Cells of lines come before cells of surfaces.
func (o *Model) Generate(dim int) (err error) {

	// check
	if o.closed {
		return ErrClosed
	}
	if !o.synced {
		return ErrNotSynchronized
	}
	if dim < 1 || dim > 2 {
		return chk.Err("cannot generate mesh of dimension %d", dim)
	}

	// new mesh
	o.mesh = &Mesh{Name: o.Name}
	o.pointVerts = make(map[int]int)
	o.lineVerts = make(map[int][]int)
	o.surfVerts = make(map[int][]int)
	o.entCells = make(map[[2]int][]int)

	// points
	for _, p := range o.points {
		o.pointVerts[p.Tag] = o.addVert(0, p.Tag, p.X)
	}

	// lines
	for _, l := range o.lines {
		n := l.N
		if n < 2 {
			n = 2
		}
		a, b := o.point(l.P1).X, o.point(l.P2).X
		ids := make([]int, n)
		ids[0], ids[n-1] = o.pointVerts[l.P1], o.pointVerts[l.P2]
		for i := 1; i < n-1; i++ {
			t := float64(i) / float64(n-1)
			ids[i] = o.addVert(1, l.Tag, []float64{
				a[0] + t*(b[0]-a[0]),
				a[1] + t*(b[1]-a[1]),
				a[2] + t*(b[2]-a[2]),
			})
		}
		o.lineVerts[l.Tag] = ids
		for i := 0; i < n-1; i++ {
			o.addCell(1, l.Tag, TypeLin2, ids[i], ids[i+1])
		}
	}
	if dim == 1 {
		return
	}

	// surfaces
	for _, s := range o.surfs {
		err = o.transfinite(s)
		if err != nil {
			o.mesh = nil
			return
		}
	}
	return
}

// transfinite generates a structured grid on a surface bounded by four lines using
// transfinite (Coons) interpolation of the boundary nodes
func (o *Model) transfinite(s *Surface) (err error) {

	// check
	if !s.Transfinite {
		return chk.Err("surface %d is not transfinite; only structured meshes are supported", s.Tag)
	}
	loop := o.loops[s.Loop-1]
	if len(loop.Lines) != 4 {
		return chk.Err("transfinite surface %d must be bounded by 4 lines; %d given", s.Tag, len(loop.Lines))
	}

	// sides: s0 A→B, s1 B→C, s2 C→D, s3 D→A
	var sides [4][]int
	for k, l := range loop.Lines {
		if o.line(iabs(l)).N < 2 {
			return chk.Err("line %d of transfinite surface %d is not seeded", iabs(l), s.Tag)
		}
		ids := o.lineVerts[iabs(l)]
		if l < 0 {
			ids = reversed(ids)
		}
		sides[k] = ids
	}
	n1, n2 := len(sides[0]), len(sides[1])
	if len(sides[2]) != n1 || len(sides[3]) != n2 {
		return errorf(ErrIncompatibleSeeds, "surface %d: lines %v have %d, %d, %d, %d nodes", s.Tag, loop.Lines, n1, n2, len(sides[2]), len(sides[3]))
	}

	// boundary of grid
	grid := make([][]int, n1)
	for i := 0; i < n1; i++ {
		grid[i] = make([]int, n2)
		grid[i][0] = sides[0][i]
		grid[i][n2-1] = sides[2][n1-1-i]
	}
	for j := 0; j < n2; j++ {
		grid[n1-1][j] = sides[1][j]
		grid[0][j] = sides[3][n2-1-j]
	}

	// interior nodes
	x := func(i, j int) []float64 { return o.mesh.Verts[grid[i][j]-1].C }
	c00, c10, c01, c11 := x(0, 0), x(n1-1, 0), x(0, n2-1), x(n1-1, n2-1)
	for i := 1; i < n1-1; i++ {
		u := float64(i) / float64(n1-1)
		for j := 1; j < n2-1; j++ {
			v := float64(j) / float64(n2-1)
			b, t, l, r := x(i, 0), x(i, n2-1), x(0, j), x(n1-1, j)
			c := make([]float64, 3)
			for k := 0; k < 3; k++ {
				c[k] = (1-v)*b[k] + v*t[k] + (1-u)*l[k] + u*r[k] -
					((1-u)*(1-v)*c00[k] + u*(1-v)*c10[k] + (1-u)*v*c01[k] + u*v*c11[k])
			}
			grid[i][j] = o.addVert(2, s.Tag, c)
		}
	}

	// cells
	for i := 0; i < n1-1; i++ {
		for j := 0; j < n2-1; j++ {
			a, b, c, d := grid[i][j], grid[i+1][j], grid[i+1][j+1], grid[i][j+1]
			if o.area(a, b, c, d) < 0 {
				b, d = d, b
			}
			if s.Recombine {
				o.addCell(2, s.Tag, TypeQua4, a, b, c, d)
			} else {
				o.addCell(2, s.Tag, TypeTri3, a, b, c)
				o.addCell(2, s.Tag, TypeTri3, a, c, d)
			}
		}
	}

	// all vertices of surface
	var all []int
	for i := 0; i < n1; i++ {
		all = append(all, grid[i]...)
	}
	sort.Ints(all)
	o.surfVerts[s.Tag] = all
	return
}

// resolve returns a copy of group with vertices and cells filled in
func (o *Model) resolve(g *Group) *Group {
	r := &Group{Tag: g.Tag, Dim: g.Dim, Name: g.Name, Entities: g.Entities}
	set := make(map[int]bool)
	for _, t := range g.Entities {
		switch g.Dim {
		case 0:
			set[o.pointVerts[t]] = true
		case 1:
			for _, id := range o.lineVerts[t] {
				set[id] = true
			}
		case 2:
			for _, id := range o.surfVerts[t] {
				set[id] = true
			}
		}
		r.Cells = append(r.Cells, o.entCells[[2]int{g.Dim, t}]...)
	}
	for id := range set {
		if id > 0 {
			r.Verts = append(r.Verts, id)
		}
	}
	sort.Ints(r.Verts)
	sort.Ints(r.Cells)
	return r
}

func (o *Model) addVert(dim, tag int, x []float64) int {
	v := &Vert{Id: len(o.mesh.Verts) + 1, Dim: dim, Tag: tag, C: []float64{x[0], x[1], x[2]}}
	o.mesh.Verts = append(o.mesh.Verts, v)
	return v.Id
}

func (o *Model) addCell(dim, tag int, ctype string, verts ...int) {
	c := &Cell{Id: len(o.mesh.Cells) + 1, Tag: tag, Dim: dim, Type: ctype, Verts: verts}
	o.mesh.Cells = append(o.mesh.Cells, c)
	key := [2]int{dim, tag}
	o.entCells[key] = append(o.entCells[key], c.Id)
}

// area returns twice the signed area of polygon with given vertices (xy-plane)
func (o *Model) area(ids ...int) (a float64) {
	for k := range ids {
		p := o.mesh.Verts[ids[k]-1].C
		q := o.mesh.Verts[ids[(k+1)%len(ids)]-1].C
		a += p[0]*q[1] - q[0]*p[1]
	}
	return
}

func reversed(ids []int) []int {
	r := make([]int, len(ids))
	for i, id := range ids {
		r[len(ids)-1-i] = id
	}
	return r
}
