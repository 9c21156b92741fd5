// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package compositor

import (
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

// DeviceHandle provides GPU device access from the host application.
//
// The compositor receives the device from the host; it never creates one.
// DeviceHandle is an alias for gpucontext.DeviceProvider.
type DeviceHandle = gpucontext.DeviceProvider

// NullDeviceHandle is a DeviceHandle without a device. Used for headless
// runs where no GPU is available.
type NullDeviceHandle struct{}

// Device returns nil.
func (NullDeviceHandle) Device() gpucontext.Device { return nil }

// Queue returns nil.
func (NullDeviceHandle) Queue() gpucontext.Queue { return nil }

// Adapter returns nil.
func (NullDeviceHandle) Adapter() gpucontext.Adapter { return nil }

// SurfaceFormat returns TextureFormatUndefined.
func (NullDeviceHandle) SurfaceFormat() gputypes.TextureFormat {
	return gputypes.TextureFormatUndefined
}

var _ DeviceHandle = NullDeviceHandle{}

// Device is a compositor bound to a host GPU device. It keeps the retained
// scene in an embedded Software compositor and refuses transactions while
// the host has no device.
type Device struct {
	*Software
	handle DeviceHandle
}

// NewDevice creates a Device compositor using the host's device handle.
func NewDevice(handle DeviceHandle) (*Device, error) {
	if handle == nil {
		return nil, ErrNilDeviceHandle
	}
	return &Device{Software: NewSoftware(), handle: handle}, nil
}

// Ready reports whether the host currently provides a device.
func (d *Device) Ready() bool {
	return d.handle.Device() != nil && d.handle.Queue() != nil
}

// SurfaceFormat returns the host surface format.
func (d *Device) SurfaceFormat() gputypes.TextureFormat {
	return d.handle.SurfaceFormat()
}

// Commit applies tx if the host provides a device.
func (d *Device) Commit(tx Transaction) error {
	if !d.Ready() {
		return ErrNoDevice
	}
	return d.Software.Commit(tx)
}

var _ Compositor = (*Device)(nil)
