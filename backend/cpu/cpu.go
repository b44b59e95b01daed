// Copyright 2026 PINN ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package cpu

import (
	internalcpu "github.com/pinn-ml/pinn/internal/backend/cpu"
	"github.com/pinn-ml/pinn/tensor"
)

// Backend is the CPU backend implementation: pure Go kernels with
// chunked parallelism for large element-wise operations and matrix
// multiplication.
type Backend = internalcpu.CPUBackend

// Compile-time check that Backend implements tensor.Backend.
var _ tensor.Backend = (*Backend)(nil)

// New creates a new CPU backend.
func New() *Backend {
	return internalcpu.New()
}
