// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package deck

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cpmech/gosl/chk"
)

// Options holds data to transform a mesh export into deck sections
type Options struct {
	Instance string // name of part instance in assembly; e.g. "Beam-1"
	Generic  string // element type written by the mesher; e.g. "CPS4"
	Reduced  string // element type used in the deck; e.g. "CPS4R"
	Nbanner  int    // number of banner lines at the top of the mesh export
}

// DefaultOptions returns the options for plane-stress quadrilaterals with reduced integration
func DefaultOptions() Options {
	return Options{Instance: "Beam-1", Generic: "CPS4", Reduced: "CPS4R", Nbanner: 2}
}

// Deck holds an assembled input deck
type Deck struct {
	JobName string   // job name; the deck is written to <JobName>.inp
	Blocks  []*Block // sections of the mesh
	Mesh    string   // text injected in the mesh slot
	Sets    string   // text injected in the assembly-sets slot
	Text    string   // complete deck
}

// Normalize replaces every occurrence of the generic element type by the reduced one
func Normalize(text, generic, reduced string) string {
	if generic == "" {
		return text
	}
	return strings.ReplaceAll(text, generic, reduced)
}

// TrimHeader drops the first n lines
func TrimHeader(lines []string, n int) []string {
	if n >= len(lines) {
		return nil
	}
	return lines[n:]
}

// Build transforms the mesh export text and injects it into the template
func Build(tpl *Template, jobName, meshText string, opts Options) (o *Deck, err error) {

	// check
	if jobName == "" || strings.ContainsAny(jobName, `/\`) {
		return nil, chk.Err("invalid job name %q", jobName)
	}

	// mesh sections
	lines := TrimHeader(SplitLines(Normalize(meshText, opts.Generic, opts.Reduced)), opts.Nbanner)
	o = &Deck{JobName: jobName, Blocks: Parse(lines)}
	o.Mesh = Join(o.Blocks)
	if strings.TrimSpace(o.Mesh) == "" {
		return nil, ErrEmptyMesh
	}
	o.Sets = AssemblySets(o.Blocks, opts.Instance)

	// fill template
	o.Text, err = tpl.Fill(map[Slot]string{
		SlotMesh:         o.Mesh,
		SlotAssemblySets: o.Sets,
		SlotJobName:      jobName,
	})
	if err != nil {
		return nil, err
	}
	return
}

// Assemble reads the template file and builds the deck
func Assemble(templatePath, jobName, meshText string, opts Options) (*Deck, error) {
	tpl, err := ReadTemplate(templatePath)
	if err != nil {
		return nil, err
	}
	return Build(tpl, jobName, meshText, opts)
}

// Write writes the deck to <dirout>/<JobName>.inp
func (o *Deck) Write(dirout string) (fn string, err error) {
	fn = filepath.Join(dirout, o.JobName+".inp")
	err = os.WriteFile(fn, []byte(o.Text), 0644)
	if err != nil {
		return "", fmt.Errorf("cannot write deck: %w", err)
	}
	return
}

// AssembleFile reads the mesh export in meshPath, assembles the deck and writes it to
// <dirout>/<jobName>.inp
func AssembleFile(templatePath, meshPath, dirout, jobName string, opts Options) (fn string, err error) {
	b, err := os.ReadFile(meshPath)
	if err != nil {
		return "", fmt.Errorf("cannot read mesh export: %w", err)
	}
	o, err := Assemble(templatePath, jobName, string(b), opts)
	if err != nil {
		return
	}
	return o.Write(dirout)
}
