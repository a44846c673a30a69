// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msh

import (
	"bytes"
	"math"
	"os"
	"path/filepath"

	"github.com/cpmech/gosl/io"
)

// IdsPerLine is the number of ids written per data line of element and node sets
const IdsPerLine = 10

// SaveInp writes the mesh in Abaqus format to file fn
func (o *Mesh) SaveInp(fn string) error {
	var buf bytes.Buffer
	o.WriteInp(&buf, filepath.Base(fn))
	return saveFile(fn, &buf)
}

// WriteInp writes the mesh in Abaqus format
//  The first two lines are a banner (*Heading and the file name). Only cells of entities
//  belonging to a physical group are written. Every physical group is written as a node set
//  and, if it owns cells, as an element set, named after the group
func (o *Mesh) WriteInp(buf *bytes.Buffer, banner string) {

	// banner
	io.Ff(buf, "*Heading\n %s\n", banner)

	// nodes
	io.Ff(buf, "*NODE\n")
	for _, v := range o.Verts {
		io.Ff(buf, "%d, %.16g, %.16g, %.16g\n", v.Id, clean(v.C[0]), clean(v.C[1]), clean(v.C[2]))
	}

	// cells by entity
	io.Ff(buf, "******* E L E M E N T S *************\n")
	done := make(map[[2]int]bool)
	for _, g := range o.Groups {
		for _, t := range g.Entities {
			key := [2]int{g.Dim, t}
			if g.Dim == 0 || done[key] {
				continue
			}
			done[key] = true
			first := true
			for _, c := range o.Cells {
				if c.Dim != g.Dim || c.Tag != t {
					continue
				}
				if first {
					io.Ff(buf, "*ELEMENT, type=%s, ELSET=%s%d\n", c.Type, entityName(g.Dim), t)
					first = false
				}
				io.Ff(buf, "%d", c.Id)
				for _, id := range c.Verts {
					io.Ff(buf, ", %d", id)
				}
				io.Ff(buf, "\n")
			}
		}
	}

	// element sets
	for _, g := range o.Groups {
		if len(g.Cells) > 0 {
			io.Ff(buf, "*ELSET,ELSET=%s\n", g.Name)
			writeIds(buf, g.Cells)
		}
	}

	// node sets
	for _, g := range o.Groups {
		io.Ff(buf, "*NSET,NSET=%s\n", g.Name)
		writeIds(buf, g.Verts)
	}
}

// auxiliary /////////////////////////////////////////////////////////////////////////////////////

func writeIds(buf *bytes.Buffer, ids []int) {
	for i, id := range ids {
		if i%IdsPerLine != 0 {
			io.Ff(buf, ", ")
		}
		io.Ff(buf, "%d", id)
		if (i+1)%IdsPerLine == 0 || i == len(ids)-1 {
			io.Ff(buf, "\n")
		}
	}
}

func entityName(dim int) string {
	if dim == 1 {
		return "Line"
	}
	return "Surface"
}

// clean removes round-off noise around zero (and negative zeros)
func clean(x float64) float64 {
	if math.Abs(x) < 1e-12 {
		return 0
	}
	return x
}

func saveFile(fn string, buf *bytes.Buffer) (err error) {
	fil, err := os.Create(fn)
	if err != nil {
		return
	}
	defer func() {
		if e := fil.Close(); err == nil {
			err = e
		}
	}()
	_, err = fil.Write(buf.Bytes())
	return
}
