// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msh

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/cpmech/gosl/chk"
)

// errors
var (
	ErrClosed            = errors.New("meshing context is closed")
	ErrNotSynchronized   = errors.New("geometry must be synchronized before meshing")
	ErrNotMeshed         = errors.New("model has not been meshed")
	ErrIncompatibleSeeds = errors.New("opposite curves of transfinite surface have different number of nodes")
	ErrInvalidSize       = errors.New("element size and dimensions must be positive")
)

// Point holds a geometric point
type Point struct {
	Tag int       // tag
	X   []float64 // coordinates (size==3)
}

// Line holds a straight line between two points
type Line struct {
	Tag    int // tag
	P1, P2 int // start and end point tags
	N      int // number of nodes along line (transfinite); 0 => not seeded
}

// Loop holds a closed curve loop
type Loop struct {
	Tag   int   // tag
	Lines []int // signed line tags; negative => reversed
}

// Surface holds a plane surface
type Surface struct {
	Tag         int  // tag
	Loop        int  // tag of outer loop
	Transfinite bool // structured (transfinite) meshing requested
	Recombine   bool // recombine triangles into quadrilaterals
}

// Model holds a geometric model and its mesh. A Model is a meshing context: it owns all
// geometry, groups and mesh data and must be released with Close
type Model struct {
	Name string // name of model

	// geometry
	points []*Point
	lines  []*Line
	loops  []*Loop
	surfs  []*Surface
	groups []*Group

	// state
	synced bool  // geometry synchronized and not modified afterwards
	closed bool  // context released
	mesh   *Mesh // mesh; nil if not meshed

	// derived (after meshing)
	pointVerts map[int]int   // point tag => vertex id
	lineVerts  map[int][]int // line tag => vertices ids along line
	surfVerts  map[int][]int // surface tag => all vertices ids
	entCells   map[[2]int][]int
}

// Open acquires a new meshing context
func Open(name string) *Model {
	return &Model{Name: name}
}

// Close releases the meshing context; it is safe to call Close more than once
func (o *Model) Close() {
	o.points, o.lines, o.loops, o.surfs, o.groups = nil, nil, nil, nil, nil
	o.mesh = nil
	o.pointVerts, o.lineVerts, o.surfVerts, o.entCells = nil, nil, nil, nil
	o.synced = false
	o.closed = true
}

// With acquires a meshing context, calls fcn and releases the context on all exit paths
func With(name string, fcn func(m *Model) error) error {
	m := Open(name)
	defer m.Close()
	return fcn(m)
}

// geometry //////////////////////////////////////////////////////////////////////////////////////

// AddPoint adds a point and returns its tag
func (o *Model) AddPoint(x, y, z float64) (tag int, err error) {
	if err = o.modify(); err != nil {
		return
	}
	tag = len(o.points) + 1
	o.points = append(o.points, &Point{tag, []float64{x, y, z}})
	return
}

// AddLine adds a straight line from point p1 to point p2 and returns its tag
func (o *Model) AddLine(p1, p2 int) (tag int, err error) {
	if err = o.modify(); err != nil {
		return
	}
	if o.point(p1) == nil || o.point(p2) == nil {
		return 0, chk.Err("cannot add line: points %d and %d must exist", p1, p2)
	}
	if p1 == p2 {
		return 0, chk.Err("cannot add degenerate line with both ends at point %d", p1)
	}
	tag = len(o.lines) + 1
	o.lines = append(o.lines, &Line{Tag: tag, P1: p1, P2: p2})
	return
}

// AddCurveLoop adds a closed loop of lines and returns its tag
//  lines -- signed line tags; a negative tag means the line is traversed from end to start
func (o *Model) AddCurveLoop(lines []int) (tag int, err error) {
	if err = o.modify(); err != nil {
		return
	}
	if len(lines) < 3 {
		return 0, chk.Err("curve loop needs at least 3 lines; %d given", len(lines))
	}
	for i, l := range lines {
		if o.line(iabs(l)) == nil {
			return 0, chk.Err("cannot add curve loop: line %d does not exist", l)
		}
		_, b := o.ends(l)
		c, _ := o.ends(lines[(i+1)%len(lines)])
		if b != c {
			return 0, chk.Err("curve loop is not closed: line %d ends at point %d but next line starts at point %d", l, b, c)
		}
	}
	tag = len(o.loops) + 1
	o.loops = append(o.loops, &Loop{tag, append([]int{}, lines...)})
	return
}

// AddPlaneSurface adds a plane surface bounded by the given loops and returns its tag.
// Only one (outer) loop is supported
func (o *Model) AddPlaneSurface(loops []int) (tag int, err error) {
	if err = o.modify(); err != nil {
		return
	}
	if len(loops) != 1 {
		return 0, chk.Err("plane surface with holes is not supported; %d loops given", len(loops))
	}
	if loops[0] < 1 || loops[0] > len(o.loops) {
		return 0, chk.Err("cannot add plane surface: loop %d does not exist", loops[0])
	}
	tag = len(o.surfs) + 1
	o.surfs = append(o.surfs, &Surface{Tag: tag, Loop: loops[0]})
	return
}

// AddPhysicalGroup adds a named group of entities with dimension dim and returns its tag.
// Tags are sequential over all dimensions and are preserved on export
func (o *Model) AddPhysicalGroup(dim int, tags []int, name string) (tag int, err error) {
	if o.closed {
		return 0, ErrClosed
	}
	if name == "" {
		return 0, chk.Err("physical group must have a name")
	}
	for _, g := range o.groups {
		if g.Name == name {
			return 0, chk.Err("physical group named %q exists already", name)
		}
	}
	if len(tags) == 0 {
		return 0, chk.Err("physical group %q has no entities", name)
	}
	for _, t := range tags {
		if !o.exists(dim, t) {
			return 0, chk.Err("cannot add physical group %q: entity (dim=%d, tag=%d) does not exist", name, dim, t)
		}
	}
	tag = len(o.groups) + 1
	o.groups = append(o.groups, &Group{Tag: tag, Dim: dim, Name: name, Entities: append([]int{}, tags...)})
	return
}

// mesh controls /////////////////////////////////////////////////////////////////////////////////

// SetTransfiniteCurve sets the number of nodes along a line
func (o *Model) SetTransfiniteCurve(line, n int) (err error) {
	if err = o.modify(); err != nil {
		return
	}
	l := o.line(iabs(line))
	if l == nil {
		return chk.Err("cannot seed line %d: it does not exist", line)
	}
	if n < 2 {
		return chk.Err("number of nodes along line %d must be at least 2; %d given", line, n)
	}
	l.N = n
	return
}

// SetTransfiniteSurface requests structured meshing of a surface
func (o *Model) SetTransfiniteSurface(surf int) (err error) {
	if err = o.modify(); err != nil {
		return
	}
	s := o.surf(surf)
	if s == nil {
		return chk.Err("cannot set transfinite surface %d: it does not exist", surf)
	}
	s.Transfinite = true
	return
}

// SetRecombine requests quadrilaterals instead of triangles on a surface
func (o *Model) SetRecombine(surf int) (err error) {
	if err = o.modify(); err != nil {
		return
	}
	s := o.surf(surf)
	if s == nil {
		return chk.Err("cannot recombine surface %d: it does not exist", surf)
	}
	s.Recombine = true
	return
}

// Synchronize freezes the geometry; it must be called before Generate and again after any
// change to geometry or mesh controls
func (o *Model) Synchronize() error {
	if o.closed {
		return ErrClosed
	}
	o.synced = true
	return nil
}

// output ////////////////////////////////////////////////////////////////////////////////////////

// Mesh returns the mesh with physical groups resolved or nil if not meshed
func (o *Model) Mesh() *Mesh {
	if o.closed || o.mesh == nil {
		return nil
	}
	o.mesh.Groups = o.mesh.Groups[:0]
	for _, g := range o.groups {
		o.mesh.Groups = append(o.mesh.Groups, o.resolve(g))
	}
	return o.mesh
}

// Write writes the mesh to a file; the format is selected by extension (.inp or .vtu)
func (o *Model) Write(fn string) error {
	if o.closed {
		return ErrClosed
	}
	m := o.Mesh()
	if m == nil {
		return ErrNotMeshed
	}
	switch filepath.Ext(fn) {
	case ".inp":
		return m.SaveInp(fn)
	case ".vtu":
		return m.SaveVtu(fn)
	}
	return chk.Err("cannot write mesh file %q: unknown extension", fn)
}

// auxiliary /////////////////////////////////////////////////////////////////////////////////////

func (o *Model) modify() error {
	if o.closed {
		return ErrClosed
	}
	o.synced = false
	o.mesh = nil
	return nil
}

func (o *Model) point(tag int) *Point {
	if tag < 1 || tag > len(o.points) {
		return nil
	}
	return o.points[tag-1]
}

func (o *Model) line(tag int) *Line {
	if tag < 1 || tag > len(o.lines) {
		return nil
	}
	return o.lines[tag-1]
}

func (o *Model) surf(tag int) *Surface {
	if tag < 1 || tag > len(o.surfs) {
		return nil
	}
	return o.surfs[tag-1]
}

func (o *Model) exists(dim, tag int) bool {
	switch dim {
	case 0:
		return o.point(tag) != nil
	case 1:
		return o.line(tag) != nil
	case 2:
		return o.surf(tag) != nil
	}
	return false
}

// ends returns the start and end points of a signed line
func (o *Model) ends(signed int) (a, b int) {
	l := o.line(iabs(signed))
	if signed < 0 {
		return l.P2, l.P1
	}
	return l.P1, l.P2
}

func iabs(val int) int {
	if val < 0 {
		return -val
	}
	return val
}

func errorf(sentinel error, msg string, prm ...interface{}) error {
	return fmt.Errorf("%w: %s", sentinel, fmt.Sprintf(msg, prm...))
}
