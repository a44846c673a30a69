// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package msh implements a small structured-mesh kernel for rectangular domains and writers
// for the solver-native (Abaqus) mesh format
package msh

import (
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"
)

// cell types (solver-native names)
const (
	TypeLin2 = "T3D2" // 2-node line
	TypeTri3 = "CPS3" // 3-node triangle, plane stress
	TypeQua4 = "CPS4" // 4-node quadrilateral, plane stress
)

// Vert holds vertex data
type Vert struct {
	Id  int       // id (1-based, as exported)
	Dim int       // dimension of geometric entity the vertex is classified on
	Tag int       // tag of geometric entity the vertex is classified on
	C   []float64 // coordinates (size==3)
}

// Cell holds cell data
type Cell struct {
	Id    int    // id (1-based, as exported)
	Tag   int    // tag of geometric entity (line or surface) the cell belongs to
	Dim   int    // dimension of entity: 1 (lines) or 2 (surfaces)
	Type  string // cell type; e.g. "CPS4"
	Verts []int  // vertices ids
}

// Group holds a physical group; i.e. a named set of geometric entities
type Group struct {
	Tag      int    // physical tag (preserved on export)
	Dim      int    // dimension of entities: 0, 1 or 2
	Name     string // name; e.g. "RIGHT"
	Entities []int  // tags of geometric entities

	// derived (after meshing)
	Verts []int // vertices on entities, including boundaries, sorted
	Cells []int // cells on entities (none for points)
}

// Mesh holds the mesh artifact
type Mesh struct {
	Name   string   // name of model
	Verts  []*Vert  // vertices
	Cells  []*Cell  // cells
	Groups []*Group // physical groups in creation order
}

// Group returns a group by name or nil
func (o *Mesh) Group(name string) *Group {
	for _, g := range o.Groups {
		if g.Name == name {
			return g
		}
	}
	return nil
}

// Limits returns the bounding box of all vertices
func (o *Mesh) Limits() (xmin, xmax, ymin, ymax float64) {
	if len(o.Verts) == 0 {
		return
	}
	xmin, xmax = o.Verts[0].C[0], o.Verts[0].C[0]
	ymin, ymax = o.Verts[0].C[1], o.Verts[0].C[1]
	for _, v := range o.Verts {
		xmin = utl.Min(xmin, v.C[0])
		xmax = utl.Max(xmax, v.C[0])
		ymin = utl.Min(ymin, v.C[1])
		ymax = utl.Max(ymax, v.C[1])
	}
	return
}

// CellsOfType returns all cells with given type
func (o *Mesh) CellsOfType(ctype string) (cells []*Cell) {
	for _, c := range o.Cells {
		if c.Type == ctype {
			cells = append(cells, c)
		}
	}
	return
}

// String returns a short description of *Mesh
func (o Mesh) String() string {
	l := io.Sf("mesh %q: %d verts, %d cells\n", o.Name, len(o.Verts), len(o.Cells))
	for _, g := range o.Groups {
		l += io.Sf("  group %3d (dim=%d) %-12s entities=%v nverts=%d ncells=%d\n", g.Tag, g.Dim, g.Name, g.Entities, len(g.Verts), len(g.Cells))
	}
	return l
}
