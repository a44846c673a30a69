// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build !unix

package fem

import "os/exec"

// killGroup keeps the default cancellation: only the launched process is killed
func killGroup(cmd *exec.Cmd) {}
