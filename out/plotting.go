// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"path/filepath"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/plt"
)

// labels of convergence plots
const (
	LabelSize = "Element Size"
	LabelVal  = "UY at Monitored Node"
)

// PlotConvergence plots the monitored value versus element size, with element sizes
// decreasing from left to right, and saves the figure to <dirout>/<fnkey>.png. Missing
// values are skipped
func PlotConvergence(tab *Table, dirout, fnkey string) (fn string, err error) {
	x, y := tab.Series()
	if len(x) == 0 {
		return "", chk.Err("cannot plot convergence: there are no results")
	}

	// plotting panics if the backend fails
	defer func() {
		if r := recover(); r != nil {
			fn, err = "", chk.Err("cannot plot convergence:\n%v", r)
		}
	}()

	plt.Reset(false, nil)
	plt.Plot(x, y, &plt.A{C: "b", M: "o", Ls: "-", L: "Mesh convergence"})
	if len(x) > 1 {
		plt.AxisXrange(x[0], x[len(x)-1])
	}
	plt.Gll(LabelSize, LabelVal, &plt.A{LegLoc: "best"})
	plt.Save(dirout, fnkey)
	return filepath.Join(dirout, fnkey+".png"), nil
}
