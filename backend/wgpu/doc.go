// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package wgpu sizes and owns the GPU drawable for a stage store using
// gogpu/wgpu.
//
// The Driver acquires instance, adapter, device, and queue, and keeps one
// standing observation on the store: whenever logical size, pixel ratio,
// or the quality scalar changes, it recomputes the physical drawable
// dimensions and validates them against the device's texture limits. The
// host window system owns the surface; the driver owns drawable geometry
// and device lifetime.
package wgpu
