// Copyright 2026 PINN ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides the CPU compute backend.
//
// The backend implements every tensor operation in pure Go. Element-wise
// kernels use unrolled loops and are parallelized across goroutine chunks
// above a size threshold; reductions stay sequential so results are
// bit-for-bit reproducible regardless of core count.
//
// Example:
//
//	backend := cpu.New()
//	x := tensor.Zeros[float64](tensor.Shape{2, 3}, backend)
//
// For training, wrap it with autodiff:
//
//	backend := autodiff.New(cpu.New())
package cpu
