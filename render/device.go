// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

// DeviceHandle provides GPU device access from the host application.
//
// This interface is the primary integration point between stage and GPU
// frameworks like gogpu. The host application (e.g., gogpu.App) implements
// DeviceHandle and passes it to stage renderers, allowing them to use the
// shared GPU device.
//
// Key principle: stage RECEIVES the device from the host, it does NOT
// create one. This enables:
//   - Shared GPU resources between stage renderers and the host application
//   - Zero device creation overhead in stage
//   - Consistent resource management across the stack
//
// DeviceHandle is an alias for gpucontext.DeviceProvider, providing a
// stage-specific name for the interface while maintaining full
// compatibility with the gpucontext ecosystem.
type DeviceHandle = gpucontext.DeviceProvider

// DrawableFormat is the texture format stage drawables use. sRGB encoding
// is applied in the present shader when the store's Linear flag is off,
// so the storage format is the same either way.
const DrawableFormat = gputypes.TextureFormatBGRA8Unorm
