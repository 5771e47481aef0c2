package types

import "strconv"

// Modification holds the settings a modify request changes. Zero values are
// left untouched.
type Modification struct {
	RAM          int
	VRAM         int
	CPUs         int
	MonitorCount int
	Name         string
	OSType       string
	DiskFile     string
}

// Args renders the modifyvm flag list in a fixed order.
func (m *Modification) Args() []string {
	var args []string
	add := func(flag, value string) { args = append(args, flag, value) }
	if m.RAM > 0 {
		add("--memory", strconv.Itoa(m.RAM))
	}
	if m.VRAM > 0 {
		add("--vram", strconv.Itoa(m.VRAM))
	}
	if m.CPUs > 0 {
		add("--cpus", strconv.Itoa(m.CPUs))
	}
	if m.MonitorCount > 0 {
		add("--monitorcount", strconv.Itoa(m.MonitorCount))
	}
	if m.Name != "" {
		add("--name", m.Name)
	}
	if m.OSType != "" {
		add("--ostype", m.OSType)
	}
	return args
}

// Empty reports whether the modification changes nothing.
func (m *Modification) Empty() bool {
	return m == nil || (len(m.Args()) == 0 && m.DiskFile == "")
}

// ValidOSType reports whether t is a guest OS type accepted by modify.
func ValidOSType(t string) bool {
	return t == "Linux" || t == "Linux_64"
}
