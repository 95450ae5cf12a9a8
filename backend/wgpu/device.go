// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpu

import (
	"fmt"

	"github.com/gogpu/wgpu/core"
	types "github.com/gogpu/gputypes"
)

// GPUInfo contains information about the selected GPU.
type GPUInfo struct {
	// Name is the GPU name (e.g., "NVIDIA GeForce RTX 3080").
	Name string
	// Vendor is the GPU vendor.
	Vendor string
	// DeviceType is the type of GPU (discrete, integrated, etc.).
	DeviceType types.DeviceType
	// Backend is the graphics API in use (Vulkan, Metal, DX12).
	Backend types.Backend
	// Driver is the driver version string.
	Driver string
}

// String returns a human-readable description of the GPU.
func (g *GPUInfo) String() string {
	return fmt.Sprintf("%s (%s, %s)", g.Name, g.DeviceType, g.Backend)
}

// getGPUInfo retrieves information about the GPU adapter.
func getGPUInfo(adapterID core.AdapterID) (*GPUInfo, error) {
	info, err := core.GetAdapterInfo(adapterID)
	if err != nil {
		return nil, fmt.Errorf("get adapter info: %w", err)
	}

	return &GPUInfo{
		Name:       info.Name,
		Vendor:     info.Vendor,
		DeviceType: info.DeviceType,
		Backend:    info.Backend,
		Driver:     info.Driver,
	}, nil
}

// createDevice creates a logical device from an adapter with default limits.
func createDevice(adapterID core.AdapterID, label string) (core.DeviceID, error) {
	desc := &types.DeviceDescriptor{
		Label:            label,
		RequiredFeatures: nil,
		RequiredLimits:   types.DefaultLimits(),
	}

	deviceID, err := core.RequestDevice(adapterID, desc)
	if err != nil {
		return core.DeviceID{}, fmt.Errorf("create device: %w", err)
	}
	return deviceID, nil
}

// releaseDevice releases a device and its associated resources.
func releaseDevice(deviceID core.DeviceID) error {
	if deviceID.IsZero() {
		return nil
	}
	if err := core.DeviceDrop(deviceID); err != nil {
		return fmt.Errorf("release device: %w", err)
	}
	return nil
}

// releaseAdapter releases an adapter.
func releaseAdapter(adapterID core.AdapterID) error {
	if adapterID.IsZero() {
		return nil
	}
	if err := core.AdapterDrop(adapterID); err != nil {
		return fmt.Errorf("release adapter: %w", err)
	}
	return nil
}

// maxTextureDimension reads the device's 2D texture size limit.
func maxTextureDimension(deviceID core.DeviceID) (uint32, error) {
	limits, err := core.GetDeviceLimits(deviceID)
	if err != nil {
		return 0, fmt.Errorf("get device limits: %w", err)
	}
	return limits.MaxTextureDimension2D, nil
}
