package render

import (
	"strings"

	"videepat_foods/internal/domain/models"
)

type Device string

const (
	DeviceMobile  Device = "mobile"
	DeviceTablet  Device = "tablet"
	DeviceDesktop Device = "desktop"
)

func ParseDevice(s string) (Device, bool) {
	switch Device(strings.ToLower(strings.TrimSpace(s))) {
	case DeviceMobile:
		return DeviceMobile, true
	case DeviceTablet:
		return DeviceTablet, true
	case DeviceDesktop:
		return DeviceDesktop, true
	}
	return "", false
}

// DeviceFromUserAgent classifies a request by its User-Agent header.
// Unknown agents are treated as desktop.
func DeviceFromUserAgent(ua string) Device {
	ua = strings.ToLower(ua)

	switch {
	case strings.Contains(ua, "ipad"), strings.Contains(ua, "tablet"),
		strings.Contains(ua, "android") && !strings.Contains(ua, "mobile"):
		return DeviceTablet
	case strings.Contains(ua, "mobi"), strings.Contains(ua, "iphone"), strings.Contains(ua, "ipod"):
		return DeviceMobile
	}
	return DeviceDesktop
}

// Visible reports whether a block with visibility v shows on device d.
func Visible(v models.Visibility, d Device) bool {
	switch d {
	case DeviceMobile:
		return v.Mobile
	case DeviceTablet:
		return v.Tablet
	}
	return v.Desktop
}
