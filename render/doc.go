// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package render defines the boundary between the stage store and the
// renderers that consume it.
//
// Renderer is what the loop invokes on automatic frames. DeviceHandle is
// the host-owned GPU device handoff: the host application creates the
// device and passes it in, the library never creates its own. For
// CPU-side consumers, AdaptiveTarget turns the store's performance scalar
// into reduced-resolution rendering with a full-size resolve.
package render
