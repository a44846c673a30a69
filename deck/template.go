// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package deck

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
)

// errors
var (
	ErrMissingSlot    = errors.New("template slot is missing")
	ErrDuplicateSlot  = errors.New("template slot occurs more than once")
	ErrUnresolvedSlot = errors.New("deck contains an unresolved template slot")
	ErrEmptyMesh      = errors.New("mesh text is empty")
)

// Slot identifies a placeholder of the deck template
type Slot int

// slots
const (
	SlotMesh         Slot = iota // mesh: nodes, elements and sets of the part
	SlotAssemblySets             // node sets bound to the part instance
	SlotJobName                  // job name
)

// Token returns the literal placeholder of a slot
func (s Slot) Token() string {
	switch s {
	case SlotMesh:
		return "<BEAM_MESH>"
	case SlotAssemblySets:
		return "<ASSEMBLY_SETS>"
	case SlotJobName:
		return "<JOBNAME>"
	}
	return ""
}

func (s Slot) String() string {
	return s.Token()
}

// Slots returns all slots
func Slots() []Slot {
	return []Slot{SlotMesh, SlotAssemblySets, SlotJobName}
}

// Template holds a deck template where every slot occurs exactly once
type Template struct {
	Text string       // template text
	pos  map[Slot]int // position of each slot in Text
}

// ReadTemplate reads and checks a template file
func ReadTemplate(fn string) (*Template, error) {
	b, err := os.ReadFile(fn)
	if err != nil {
		return nil, fmt.Errorf("cannot read deck template: %w", err)
	}
	t, err := ParseTemplate(string(b))
	if err != nil {
		return nil, fmt.Errorf("template %q: %w", fn, err)
	}
	return t, nil
}

// ParseTemplate checks that every slot occurs exactly once in text
func ParseTemplate(text string) (*Template, error) {
	o := &Template{Text: text, pos: make(map[Slot]int)}
	for _, s := range Slots() {
		n := strings.Count(text, s.Token())
		switch {
		case n == 0:
			return nil, fmt.Errorf("%w: %s", ErrMissingSlot, s)
		case n > 1:
			return nil, fmt.Errorf("%w: %s found %d times", ErrDuplicateSlot, s, n)
		}
		o.pos[s] = strings.Index(text, s.Token())
	}
	return o, nil
}

// Fill replaces every slot by its value in a single pass; inserted values are not scanned
// for slots again. Every slot must be given and the result must not contain any slot token
func (o *Template) Fill(values map[Slot]string) (string, error) {

	// check
	for _, s := range Slots() {
		if _, ok := values[s]; !ok {
			return "", fmt.Errorf("%w: no value for %s", ErrMissingSlot, s)
		}
	}

	// slots in order of appearance
	order := Slots()
	sort.Slice(order, func(i, j int) bool { return o.pos[order[i]] < o.pos[order[j]] })

	// splice
	var sb strings.Builder
	last := 0
	for _, s := range order {
		sb.WriteString(o.Text[last:o.pos[s]])
		sb.WriteString(values[s])
		last = o.pos[s] + len(s.Token())
	}
	sb.WriteString(o.Text[last:])
	res := sb.String()

	// no placeholder may survive
	if err := CheckResolved(res); err != nil {
		return "", err
	}
	return res, nil
}

// CheckResolved returns an error if text contains any slot token
func CheckResolved(text string) error {
	for _, s := range Slots() {
		if strings.Contains(text, s.Token()) {
			return fmt.Errorf("%w: %s", ErrUnresolvedSlot, s)
		}
	}
	return nil
}
