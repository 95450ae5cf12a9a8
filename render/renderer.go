// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"time"

	"github.com/gogpu/stage"
)

// Renderer renders one automatic frame for a store. It runs after the
// frame's subscribers, and only while no manual subscriber is registered.
//
// Implementations should read Performance().Current from the store's
// state before expensive work: it is the adaptive quality scalar the
// governor lowers under load.
//
// Renderer aliases stage.Renderer so implementations in this package plug
// straight into stage.WithRenderer without an import cycle.
type Renderer = stage.Renderer

// Func adapts a plain function to the Renderer interface.
type Func func(s *stage.Store, dt time.Duration) error

// RenderFrame implements Renderer.
func (f Func) RenderFrame(s *stage.Store, dt time.Duration) error {
	return f(s, dt)
}
