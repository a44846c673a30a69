// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msh

import (
	"math"
	"path/filepath"
)

// default dimensions of the rectangle
const (
	DefaultLength = 100.0
	DefaultHeight = 20.0
)

// names of groups
const (
	GroupRight  = "RIGHT"
	GroupTop    = "TOP"
	GroupLeft   = "LEFT"
	GroupBottom = "BOTTOM"
	GroupAll    = "ALL"
	GroupLoad   = "TopRCorner" // point where the load is applied
	GroupMonit  = "BotRCorner" // point where the displacement is monitored
)

// Rect holds the input data to generate a structured mesh of a rectangle with its
// bottom-right corner at the origin, extending towards negative x and positive y
type Rect struct {
	Name    string  // model name; the mesh is written to <Dirout>/<Name>.inp
	Size    float64 // element size
	Length  float64 // length along x
	Height  float64 // height along y
	Display bool    // also write <Name>.vtu for visualisation
	Dirout  string  // output directory
}

// NewRect returns a Rect with default dimensions
func NewRect(name string, size float64) *Rect {
	return &Rect{Name: name, Size: size, Length: DefaultLength, Height: DefaultHeight}
}

// Seeds returns the number of nodes along an edge with length dim. Edges shorter than size
// get a single segment
func Seeds(dim, size float64) int {
	return max(2, int(math.Floor(dim/size))+1)
}

// Build defines geometry, groups and mesh controls in m
//  Winding: p1→p2 right edge, p2→p3 top, p3→p4 left, p4→p1 bottom
func (o *Rect) Build(m *Model) (err error) {

	// check
	for _, x := range []float64{o.Size, o.Length, o.Height} {
		if !(x > 0) || math.IsInf(x, 0) {
			return errorf(ErrInvalidSize, "size=%g, length=%g, height=%g", o.Size, o.Length, o.Height)
		}
	}

	// points
	var p [4]int
	for i, x := range [][]float64{{0, 0}, {0, o.Height}, {-o.Length, o.Height}, {-o.Length, 0}} {
		if p[i], err = m.AddPoint(x[0], x[1], 0); err != nil {
			return
		}
	}

	// lines, loop and face
	var l [4]int
	for i := 0; i < 4; i++ {
		if l[i], err = m.AddLine(p[i], p[(i+1)%4]); err != nil {
			return
		}
	}
	loop, err := m.AddCurveLoop(l[:])
	if err != nil {
		return
	}
	face, err := m.AddPlaneSurface([]int{loop})
	if err != nil {
		return
	}

	// edge and domain groups
	for i, name := range []string{GroupRight, GroupTop, GroupLeft, GroupBottom} {
		if _, err = m.AddPhysicalGroup(1, []int{l[i]}, name); err != nil {
			return
		}
	}
	if _, err = m.AddPhysicalGroup(2, []int{face}, GroupAll); err != nil {
		return
	}

	// seeds: opposite edges must have the same number of nodes
	nx := Seeds(o.Length, o.Size)
	ny := Seeds(o.Height, o.Size)
	for i, n := range []int{ny, nx, ny, nx} {
		if err = m.SetTransfiniteCurve(l[i], n); err != nil {
			return
		}
	}
	if err = m.SetTransfiniteSurface(face); err != nil {
		return
	}
	if err = m.SetRecombine(face); err != nil {
		return
	}
	if err = m.Synchronize(); err != nil {
		return
	}

	// point groups
	if _, err = m.AddPhysicalGroup(0, []int{p[1]}, GroupLoad); err != nil {
		return
	}
	_, err = m.AddPhysicalGroup(0, []int{p[0]}, GroupMonit)
	return
}

// Generate builds and meshes the rectangle and writes <Dirout>/<Name>.inp
//  Output:
//   mesh -- the mesh artifact
//   fn   -- path of written mesh file
func (o *Rect) Generate() (mesh *Mesh, fn string, err error) {
	fn = filepath.Join(o.Dirout, o.Name+".inp")
	err = With(o.Name, func(m *Model) (err error) {
		if err = o.Build(m); err != nil {
			return
		}
		if err = m.Generate(2); err != nil {
			return
		}
		if err = m.Write(fn); err != nil {
			return
		}
		if o.Display {
			if err = m.Write(filepath.Join(o.Dirout, o.Name+".vtu")); err != nil {
				return
			}
		}
		mesh = m.Mesh()
		_, err = mesh.Check()
		return
	})
	return
}

// Generate generates a structured mesh of the default rectangle with given element size
// and writes it to <name>.inp
func Generate(name string, size float64) (*Mesh, error) {
	mesh, _, err := NewRect(name, size).Generate()
	return mesh, err
}
