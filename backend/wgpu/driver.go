// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpu

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/core"

	"github.com/gogpu/stage"
	"github.com/gogpu/stage/render"
)

// ErrNoGPU indicates no compatible GPU adapter was found.
var ErrNoGPU = errors.New("wgpu: no compatible GPU adapter")

// ErrNotInitialized indicates the driver was used before Init.
var ErrNotInitialized = errors.New("wgpu: driver not initialized")

// fallbackMaxDim bounds the drawable when the device limit is unreadable.
const fallbackMaxDim = 8192

// Driver owns the GPU device for a stage store and keeps the physical
// drawable sized to the store's logical size × pixel ratio × quality
// scalar. It must be initialized with Init before use and released with
// Close.
type Driver struct {
	mu sync.Mutex

	instance *core.Instance
	adapter  core.AdapterID
	device   core.DeviceID
	queue    core.QueueID

	info         *GPUInfo
	maxDim       uint32
	presentSPIRV []uint32
	format       gputypes.TextureFormat

	drawableW uint32
	drawableH uint32

	initialized bool
}

// NewDriver creates an uninitialized driver.
func NewDriver() *Driver {
	return &Driver{}
}

// Init acquires the GPU: instance, adapter (high-performance preference),
// device with default limits, and queue. The present shader is compiled
// to SPIR-V here so shader errors surface before the first frame.
//
// Init is idempotent; a second call on an initialized driver is a no-op.
func (d *Driver) Init() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.initialized {
		return nil
	}

	desc := &gputypes.InstanceDescriptor{
		Backends: gputypes.BackendsPrimary,
		Flags:    0,
	}
	d.instance = core.NewInstance(desc)

	adapterID, err := d.instance.RequestAdapter(&gputypes.RequestAdapterOptions{
		PowerPreference: gputypes.PowerPreferenceHighPerformance,
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrNoGPU, err)
	}
	d.adapter = adapterID

	d.info, _ = getGPUInfo(adapterID)
	if d.info != nil {
		stage.Logger().Info("wgpu: adapter selected", "gpu", d.info.String(), "driver", d.info.Driver)
	}

	deviceID, err := createDevice(adapterID, "stage-wgpu-device")
	if err != nil {
		_ = releaseAdapter(adapterID)
		d.adapter = core.AdapterID{}
		return err
	}
	d.device = deviceID

	queueID, err := core.GetDeviceQueue(deviceID)
	if err != nil {
		_ = releaseDevice(deviceID)
		_ = releaseAdapter(adapterID)
		d.device = core.DeviceID{}
		d.adapter = core.AdapterID{}
		return fmt.Errorf("get device queue: %w", err)
	}
	d.queue = queueID

	d.maxDim, err = maxTextureDimension(deviceID)
	if err != nil || d.maxDim == 0 {
		stage.Logger().Warn("wgpu: device limits unavailable, assuming defaults",
			"maxTextureDimension2D", fallbackMaxDim, "error", err)
		d.maxDim = fallbackMaxDim
	}

	d.presentSPIRV, err = CompileShader(presentShaderWGSL)
	if err != nil {
		d.teardownLocked()
		return fmt.Errorf("present shader: %w", err)
	}

	d.format = render.DrawableFormat
	d.initialized = true
	stage.Logger().Debug("wgpu: driver initialized", "maxTextureDimension2D", d.maxDim)
	return nil
}

// Attach installs the standing observation that keeps the drawable sized
// to the store. The drawable tracks (logical size, pixel ratio, quality):
// physical = ceil(logical × ratio × quality), clamped to the device's
// texture limit. Returns the detach handle, which is idempotent.
func (d *Driver) Attach(s *stage.Store) (detach func(), err error) {
	d.mu.Lock()
	if !d.initialized {
		d.mu.Unlock()
		return nil, ErrNotInitialized
	}
	d.mu.Unlock()

	detach = stage.Observe(s,
		func(st stage.State) drawableKey {
			return drawableKey{
				Width:      st.Size.Width,
				Height:     st.Size.Height,
				PixelRatio: st.Viewport.PixelRatio,
				Scale:      st.Performance.Current,
			}
		},
		func(a, b drawableKey) bool { return a == b },
		d.applyDrawable,
	)

	// Size the drawable for the state as it stands.
	st := s.Get()
	d.applyDrawable(drawableKey{
		Width:      st.Size.Width,
		Height:     st.Size.Height,
		PixelRatio: st.Viewport.PixelRatio,
		Scale:      st.Performance.Current,
	})
	return detach, nil
}

// drawableKey is the slice of store state the drawable depends on.
type drawableKey struct {
	Width      float64
	Height     float64
	PixelRatio float64
	Scale      float64
}

func (d *Driver) applyDrawable(k drawableKey) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.initialized {
		return
	}
	w, h, clamped := drawableSize(k, d.maxDim)
	if clamped {
		stage.Logger().Warn("wgpu: drawable clamped to device limit",
			"requested", fmt.Sprintf("%vx%v", k.Width*k.PixelRatio*k.Scale, k.Height*k.PixelRatio*k.Scale),
			"limit", d.maxDim)
	}
	if w == d.drawableW && h == d.drawableH {
		return
	}
	d.drawableW, d.drawableH = w, h
	stage.Logger().Debug("wgpu: drawable resized", "width", w, "height", h, "scale", k.Scale)
}

// drawableSize computes the physical drawable dimensions for a key,
// clamping to [1, maxDim]. NaN inputs (viewport before the first size)
// yield the 1×1 placeholder drawable.
func drawableSize(k drawableKey, maxDim uint32) (w, h uint32, clamped bool) {
	w, cw := physicalExtent(k.Width*k.PixelRatio*k.Scale, maxDim)
	h, ch := physicalExtent(k.Height*k.PixelRatio*k.Scale, maxDim)
	return w, h, cw || ch
}

func physicalExtent(v float64, maxDim uint32) (uint32, bool) {
	if math.IsNaN(v) || v < 1 {
		return 1, false
	}
	px := uint64(math.Ceil(v))
	if px > uint64(maxDim) {
		return maxDim, true
	}
	return uint32(px), false
}

// DrawableSize returns the current physical drawable dimensions.
func (d *Driver) DrawableSize() (width, height uint32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.drawableW, d.drawableH
}

// Format returns the drawable texture format.
func (d *Driver) Format() gputypes.TextureFormat {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.format
}

// PresentShader returns the precompiled present-pass SPIR-V words.
func (d *Driver) PresentShader() []uint32 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.presentSPIRV
}

// Info returns the selected adapter's description, or nil before Init.
func (d *Driver) Info() *GPUInfo {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.info
}

// Close releases GPU resources in reverse acquisition order. Close is
// idempotent; the driver must not be used afterwards.
func (d *Driver) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.initialized {
		return nil
	}
	d.teardownLocked()
	stage.Logger().Debug("wgpu: driver closed")
	return nil
}

func (d *Driver) teardownLocked() {
	// Queue is released when the device is dropped.
	if err := releaseDevice(d.device); err != nil {
		stage.Logger().Warn("wgpu: release device", "error", err)
	}
	if err := releaseAdapter(d.adapter); err != nil {
		stage.Logger().Warn("wgpu: release adapter", "error", err)
	}
	d.device = core.DeviceID{}
	d.adapter = core.AdapterID{}
	d.queue = core.QueueID{}
	d.instance = nil
	d.info = nil
	d.presentSPIRV = nil
	d.initialized = false
}
