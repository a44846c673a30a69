// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shp

import "math"

func init() {
	g := 1.0 / math.Sqrt(3.0)

	// lin2
	factory["lin2"] = &Shape{
		Type:      "lin2",
		Func:      FuncLin2,
		Gndim:     1,
		Nverts:    2,
		VtkCode:   3,
		NatCoords: [][]float64{{-1, 1}},
		Ips:       []Ipoint{{-g, 0, 1}, {g, 0, 1}},
	}

	// tri3
	factory["tri3"] = &Shape{
		Type:      "tri3",
		Func:      FuncTri3,
		Gndim:     2,
		Nverts:    3,
		VtkCode:   5,
		NatCoords: [][]float64{{0, 1, 0}, {0, 0, 1}},
		Ips:       []Ipoint{{1.0 / 3.0, 1.0 / 3.0, 0.5}},
	}

	// qua4
	factory["qua4"] = &Shape{
		Type:      "qua4",
		Func:      FuncQua4,
		Gndim:     2,
		Nverts:    4,
		VtkCode:   9,
		NatCoords: [][]float64{{-1, 1, 1, -1}, {-1, -1, 1, 1}},
		Ips:       []Ipoint{{-g, -g, 1}, {g, -g, 1}, {g, g, 1}, {-g, g, 1}},
	}
}

// FuncLin2 calculates the shape functions (S) and derivatives of shape functions (dSdR) of lin2
// elements
//
//   -1     0    +1
//    0-----------1-->r
//
func FuncLin2(S []float64, dSdR [][]float64, R []float64, derivs bool) {
	r := R[0]
	S[0] = 0.5 * (1.0 - r)
	S[1] = 0.5 * (1.0 + r)
	if !derivs {
		return
	}
	dSdR[0][0] = -0.5
	dSdR[1][0] = 0.5
}

// FuncTri3 calculates the shape functions (S) and derivatives of shape functions (dSdR) of tri3
// elements
//
//    s
//    |
//    2, (0,1)
//    | ',
//    |   ',
//    |     ',
//    |       ',
//    0-----------1 ---- r
//  (0,0)       (1,0)
//
func FuncTri3(S []float64, dSdR [][]float64, R []float64, derivs bool) {
	r, s := R[0], R[1]
	S[0] = 1.0 - r - s
	S[1] = r
	S[2] = s
	if !derivs {
		return
	}
	dSdR[0][0], dSdR[0][1] = -1.0, -1.0
	dSdR[1][0], dSdR[1][1] = 1.0, 0.0
	dSdR[2][0], dSdR[2][1] = 0.0, 1.0
}

// FuncQua4 calculates the shape functions (S) and derivatives of shape functions (dSdR) of qua4
// elements
//
//    3-----------2
//    |     s     |
//    |     |     |
//    |     +--r  |
//    |           |
//    |           |
//    0-----------1
//
func FuncQua4(S []float64, dSdR [][]float64, R []float64, derivs bool) {
	r, s := R[0], R[1]
	S[0] = (1.0 - r - s + r*s) / 4.0
	S[1] = (1.0 + r - s - r*s) / 4.0
	S[2] = (1.0 + r + s + r*s) / 4.0
	S[3] = (1.0 - r + s - r*s) / 4.0
	if !derivs {
		return
	}
	dSdR[0][0], dSdR[0][1] = (-1.0+s)/4.0, (-1.0+r)/4.0
	dSdR[1][0], dSdR[1][1] = (+1.0-s)/4.0, (-1.0-r)/4.0
	dSdR[2][0], dSdR[2][1] = (+1.0+s)/4.0, (+1.0+r)/4.0
	dSdR[3][0], dSdR[3][1] = (-1.0-s)/4.0, (+1.0-r)/4.0
}
