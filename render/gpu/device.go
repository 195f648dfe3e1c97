// Copyright 2026 The knotviz Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/core"
	"github.com/gogpu/wgpu/types"

	"github.com/knotviz/knotviz/render"
)

// Info describes the adapter a renderer is running on.
type Info struct {
	Name       string
	Vendor     string
	DeviceType types.DeviceType
	Backend    types.Backend
	Driver     string
}

// String returns a human-readable description of the GPU.
func (i *Info) String() string {
	return fmt.Sprintf("%s (%s, %s)", i.Name, i.DeviceType, i.Backend)
}

// deviceState owns the GPU resource chain for one renderer: instance,
// adapter, device and queue, released in reverse order on close.
type deviceState struct {
	instance *core.Instance
	adapter  core.AdapterID
	device   core.DeviceID
	queue    core.QueueID
	info     *Info
}

// Probe reports whether a GPU adapter can be acquired right now. The
// probed instance and adapter are throwaway; a renderer acquires its own
// chain when constructed.
func Probe() error {
	instance := core.NewInstance(&gputypes.InstanceDescriptor{
		Backends: gputypes.BackendsPrimary,
		Flags:    0,
	})
	adapterID, err := instance.RequestAdapter(&gputypes.RequestAdapterOptions{
		PowerPreference: gputypes.PowerPreferenceHighPerformance,
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrNoGPU, err)
	}
	return releaseAdapter(adapterID)
}

// acquireDevice builds the full instance/adapter/device/queue chain.
func acquireDevice(label string) (*deviceState, error) {
	instance := core.NewInstance(&gputypes.InstanceDescriptor{
		Backends: gputypes.BackendsPrimary,
		Flags:    0,
	})

	adapterID, err := instance.RequestAdapter(&gputypes.RequestAdapterOptions{
		PowerPreference: gputypes.PowerPreferenceHighPerformance,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoGPU, err)
	}

	info, err := adapterInfo(adapterID)
	if err == nil {
		render.Logger().Debug("gpu adapter", "gpu", info.String(), "driver", info.Driver)
	}

	deviceID, err := core.RequestDevice(adapterID, &types.DeviceDescriptor{
		Label:            label,
		RequiredFeatures: nil,
		RequiredLimits:   types.DefaultLimits(),
	})
	if err != nil {
		_ = releaseAdapter(adapterID)
		return nil, fmt.Errorf("gpu: device creation failed: %w", err)
	}

	queueID, err := core.GetDeviceQueue(deviceID)
	if err != nil {
		_ = releaseDevice(deviceID)
		_ = releaseAdapter(adapterID)
		return nil, fmt.Errorf("gpu: queue retrieval failed: %w", err)
	}

	return &deviceState{
		instance: instance,
		adapter:  adapterID,
		device:   deviceID,
		queue:    queueID,
		info:     info,
	}, nil
}

// release drops the chain in reverse order of creation. The queue is
// released with the device.
func (d *deviceState) release() {
	if d == nil {
		return
	}
	if !d.device.IsZero() {
		if err := releaseDevice(d.device); err != nil {
			render.Logger().Warn("gpu device release", "error", err)
		}
		d.device = core.DeviceID{}
	}
	if !d.adapter.IsZero() {
		if err := releaseAdapter(d.adapter); err != nil {
			render.Logger().Warn("gpu adapter release", "error", err)
		}
		d.adapter = core.AdapterID{}
	}
	d.instance = nil
	d.queue = core.QueueID{}
	d.info = nil
}

func adapterInfo(adapterID core.AdapterID) (*Info, error) {
	info, err := core.GetAdapterInfo(adapterID)
	if err != nil {
		return nil, fmt.Errorf("gpu: adapter info: %w", err)
	}
	return &Info{
		Name:       info.Name,
		Vendor:     info.Vendor,
		DeviceType: info.DeviceType,
		Backend:    info.Backend,
		Driver:     info.Driver,
	}, nil
}

func releaseDevice(deviceID core.DeviceID) error {
	if deviceID.IsZero() {
		return nil
	}
	if err := core.DeviceDrop(deviceID); err != nil {
		return fmt.Errorf("gpu: device drop: %w", err)
	}
	return nil
}

func releaseAdapter(adapterID core.AdapterID) error {
	if adapterID.IsZero() {
		return nil
	}
	if err := core.AdapterDrop(adapterID); err != nil {
		return fmt.Errorf("gpu: adapter drop: %w", err)
	}
	return nil
}
