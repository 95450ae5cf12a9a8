// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package camera provides the perspective and orthographic cameras mutated
// by the stage render-state store.
//
// Both camera types keep their view and projection matrices lazily: setters
// mark the affected matrix dirty and the matrix accessors recompute on
// demand. This makes it cheap for the resize reactor to adjust projection
// parameters many times between frames.
//
// Matrix math uses go-gl/mathgl (float32, column-major, right-handed with
// the camera looking down -Z), matching the rest of the GoGPU ecosystem.
package camera
