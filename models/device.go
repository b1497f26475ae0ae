// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// DeviceType is the kind of device as reported to the sync service.
type DeviceType string

const (
	DeviceDesktop DeviceType = "desktop"
	DeviceMobile  DeviceType = "mobile"
	DeviceTablet  DeviceType = "tablet"
	DeviceVR      DeviceType = "vr"
	DeviceTV      DeviceType = "tv"
	DeviceUnknown DeviceType = "unknown"
)

// ParseDeviceType maps an identity provider device type onto [DeviceType].
// Anything unrecognised becomes [DeviceUnknown].
func ParseDeviceType(raw string) DeviceType {
	switch DeviceType(raw) {
	case DeviceDesktop, DeviceMobile, DeviceTablet, DeviceVR, DeviceTV:
		return DeviceType(raw)
	default:
		return DeviceUnknown
	}
}

// DeviceDescriptor describes the local device for a sync run.
type DeviceDescriptor struct {
	ID          string     `json:"fxa_device_id"`
	DisplayName string     `json:"name"`
	Kind        DeviceType `json:"kind"`
}
