// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"math"

	"github.com/antonmedv/expr"
	"github.com/antonmedv/expr/vm"
	"github.com/cpmech/gosl/chk"
)

// DecayEnv holds the variables available to decay rules
type DecayEnv struct {
	Size float64 `expr:"size"` // current element size
	Iter int     `expr:"iter"` // index of current element size
}

// Decay computes the next element size from the current one
type Decay struct {
	Rule string      // rule; e.g. "size / 1.3"
	prog *vm.Program // compiled rule
}

// NewDecay compiles a decay rule. Rules may use the variables 'size' and 'iter'
func NewDecay(rule string) (o *Decay, err error) {
	if rule == "" {
		return nil, chk.Err("decay rule is empty")
	}
	o = &Decay{Rule: rule}
	o.prog, err = expr.Compile(rule, expr.Env(DecayEnv{}), expr.AsFloat64())
	if err != nil {
		return nil, chk.Err("cannot compile decay rule %q:\n%v", rule, err)
	}
	return
}

// Next returns the element size following size at iteration iter. The result must be
// positive and smaller than size
func (o *Decay) Next(size float64, iter int) (float64, error) {
	res, err := expr.Run(o.prog, DecayEnv{Size: size, Iter: iter})
	if err != nil {
		return 0, chk.Err("decay rule %q failed:\n%v", o.Rule, err)
	}
	next, ok := res.(float64)
	if !ok {
		return 0, chk.Err("decay rule %q gives %T instead of a number", o.Rule, res)
	}
	if !(next > 0) || math.IsInf(next, 0) || next >= size {
		return 0, chk.Err("decay rule %q must give a positive size smaller than %g; got %g", o.Rule, size, next)
	}
	return next, nil
}

// Sizes returns up to n element sizes starting at size0. The sequence stops early when a
// size falls below minSize (if positive)
func (o *Decay) Sizes(size0 float64, n int, minSize float64) (sizes []float64, err error) {
	size := size0
	for i := 0; i < n; i++ {
		if minSize > 0 && size < minSize {
			break
		}
		sizes = append(sizes, size)
		if i == n-1 {
			break
		}
		size, err = o.Next(size, i)
		if err != nil {
			return
		}
	}
	return
}
