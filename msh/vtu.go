// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msh

import (
	"bytes"

	"github.com/PyFEA/FEA-Mesh-Convergence/shp"
	"github.com/cpmech/gosl/io"
)

// SaveVtu writes the 2D cells of the mesh to a ParaView (.vtu) file
func (o *Mesh) SaveVtu(fn string) error {
	var buf bytes.Buffer
	o.WriteVtu(&buf)
	return saveFile(fn, &buf)
}

// WriteVtu writes the 2D cells of the mesh in VTK unstructured grid format. Point data holds
// vertex ids; cell data holds cell ids and entity tags
func (o *Mesh) WriteVtu(buf *bytes.Buffer) {

	// cells to be drawn
	var cells []*Cell
	for _, c := range o.Cells {
		if c.Dim == 2 {
			cells = append(cells, c)
		}
	}

	// header
	io.Ff(buf, "<?xml version=\"1.0\"?>\n<VTKFile type=\"UnstructuredGrid\" version=\"0.1\" byte_order=\"LittleEndian\">\n<UnstructuredGrid>\n")
	io.Ff(buf, "<Piece NumberOfPoints=\"%d\" NumberOfCells=\"%d\">\n", len(o.Verts), len(cells))

	// coordinates
	io.Ff(buf, "<Points>\n<DataArray type=\"Float64\" NumberOfComponents=\"3\" format=\"ascii\">\n")
	for _, v := range o.Verts {
		io.Ff(buf, "%23.15e %23.15e %23.15e ", v.C[0], v.C[1], v.C[2])
	}
	io.Ff(buf, "\n</DataArray>\n</Points>\n")

	// connectivities (vtu ids are 0-based)
	io.Ff(buf, "<Cells>\n<DataArray type=\"Int32\" Name=\"connectivity\" format=\"ascii\">\n")
	for _, c := range cells {
		for _, id := range c.Verts {
			io.Ff(buf, "%d ", id-1)
		}
	}
	io.Ff(buf, "\n</DataArray>\n<DataArray type=\"Int32\" Name=\"offsets\" format=\"ascii\">\n")
	var offset int
	for _, c := range cells {
		offset += len(c.Verts)
		io.Ff(buf, "%d ", offset)
	}
	io.Ff(buf, "\n</DataArray>\n<DataArray type=\"UInt8\" Name=\"types\" format=\"ascii\">\n")
	for _, c := range cells {
		io.Ff(buf, "%d ", shp.Get(shapes[c.Type]).VtkCode)
	}
	io.Ff(buf, "\n</DataArray>\n</Cells>\n")

	// points data
	io.Ff(buf, "<PointData Scalars=\"TheScalars\">\n")
	io.Ff(buf, "<DataArray type=\"Int32\" Name=\"nid\" NumberOfComponents=\"1\" format=\"ascii\">\n")
	for _, v := range o.Verts {
		io.Ff(buf, "%d ", v.Id)
	}
	io.Ff(buf, "\n</DataArray>\n</PointData>\n")

	// cells data
	io.Ff(buf, "<CellData Scalars=\"TheScalars\">\n")
	io.Ff(buf, "<DataArray type=\"Int32\" Name=\"eid\" NumberOfComponents=\"1\" format=\"ascii\">\n")
	for _, c := range cells {
		io.Ff(buf, "%d ", c.Id)
	}
	io.Ff(buf, "\n</DataArray>\n<DataArray type=\"Int32\" Name=\"tag\" NumberOfComponents=\"1\" format=\"ascii\">\n")
	for _, c := range cells {
		io.Ff(buf, "%d ", c.Tag)
	}
	io.Ff(buf, "\n</DataArray>\n</CellData>\n")

	// footer
	io.Ff(buf, "</Piece>\n</UnstructuredGrid>\n</VTKFile>\n")
}
