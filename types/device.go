package types

import "strconv"

// Product is the emulator family a virtual device belongs to.
type Product string

const (
	ProductGeneric Product = "ose"     // webOS OSE image, driven directly through the manager
	ProductTV      Product = "tv"      // LG webOS TV SDK emulator
	ProductSignage Product = "signage" // LG webOS Signage SDK emulator
)

// Default resource settings applied to a new Device.
const (
	DefaultCPUs         = 2
	DefaultRAM          = 4096 // MB
	DefaultVRAM         = 128  // MB
	DefaultMonitorCount = 2
	DefaultScaleFactor  = 0.7
	DefaultHostSSHPort  = 6622
)

// Device describes the virtual device an operation acts on.
// It lives for a single invocation; the manager's registry is the source of truth.
type Device struct {
	Name    string  `json:"name"`
	Product Product `json:"product"`
	Version string  `json:"version,omitempty"`

	CPUs         int     `json:"cpus"`
	RAM          int     `json:"ram"`  // MB
	VRAM         int     `json:"vram"` // MB
	MonitorCount int     `json:"monitor_count"`
	ScaleFactor  float64 `json:"scale_factor"`
	HostSSHPort  int     `json:"host_ssh_port"`

	// Image is the disk image attached after create/import.
	Image string `json:"image,omitempty"`
	// DiskFile is attached before configuration by the hidden create path.
	DiskFile string `json:"disk_file,omitempty"`
}

// NewDevice returns a generic Device with default resources.
func NewDevice(name string) *Device {
	return &Device{
		Name:         name,
		Product:      ProductGeneric,
		CPUs:         DefaultCPUs,
		RAM:          DefaultRAM,
		VRAM:         DefaultVRAM,
		MonitorCount: DefaultMonitorCount,
		ScaleFactor:  DefaultScaleFactor,
		HostSSHPort:  DefaultHostSSHPort,
	}
}

// ScaleFactorString formats the scale factor the way the manager expects it ("0.7").
func (d *Device) ScaleFactorString() string {
	return strconv.FormatFloat(d.ScaleFactor, 'f', -1, 64)
}

// IsSDKProduct reports whether the device is launched through an SDK launcher
// instead of the manager.
func (d *Device) IsSDKProduct() bool {
	return d.Product == ProductTV || d.Product == ProductSignage
}

// DeviceInfo is one registered device as reported by the manager.
type DeviceInfo struct {
	Name    string `json:"name"`
	ID      string `json:"id"`
	GuestOS string `json:"guest_os"`
	Running bool   `json:"running"`
	// Active marks the first entry of the manager's running list.
	Active bool `json:"active"`
}

// Resolution is the outcome of resolving a user-supplied name or identifier.
type Resolution struct {
	Name    string  `json:"name"`
	ID      string  `json:"id"`
	Product Product `json:"product"`
	Version string  `json:"version,omitempty"`
}

// Device builds a Device for the resolved entry, carrying product and version.
func (r *Resolution) Device() *Device {
	d := NewDevice(r.Name)
	d.Product = r.Product
	d.Version = r.Version
	return d
}
