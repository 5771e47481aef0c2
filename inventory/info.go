package inventory

import "strings"

// Guest OS types the tool manages. Devices with any other guest type are
// not listed and cannot be resolved.
const (
	GuestLinux64 = "Other Linux (64-bit)"
	GuestLinux32 = "Other Linux (32-bit)"
)

const (
	keyGuestOS        = "Guest OS"
	controllerNamePfx = "Storage Controller Name (0):"
	controllerIdxPfx  = "#0:"
)

// Info is a parsed "showvminfo" listing: `Key: value` pairs, one per line.
type Info struct {
	lines []string
}

// ParseInfo wraps a detailed-info listing.
func ParseInfo(text string) *Info {
	return &Info{lines: splitLines(text)}
}

// Field returns the value of the first line whose key is exactly key.
// The scan ends at the first empty line, which closes the general section.
func (i *Info) Field(key string) (string, bool) {
	for _, line := range i.lines {
		if line == "" {
			break
		}
		k, v, ok := strings.Cut(line, ":")
		if ok && k == key {
			return strings.TrimSpace(v), true
		}
	}
	return "", false
}

// GuestOS returns the "Guest OS" value, empty if absent.
func (i *Info) GuestOS() string {
	v, _ := i.Field(keyGuestOS)
	return v
}

// IsLinux reports whether the guest is one of the recognized Linux types.
func (i *Info) IsLinux() bool {
	switch i.GuestOS() {
	case GuestLinux64, GuestLinux32:
		return true
	}
	return false
}

// StorageController returns the name of the first storage controller.
// Newer manager versions print "Storage Controller Name (0): IDE"; older ones
// print "#0: 'IDE', Type: PIIX4, ...".
func (i *Info) StorageController() string {
	for _, line := range i.lines {
		if rest, ok := strings.CutPrefix(line, controllerNamePfx); ok {
			return strings.TrimSpace(rest)
		}
		if rest, ok := strings.CutPrefix(line, controllerIdxPfx); ok {
			desc, _, _ := strings.Cut(rest, ",")
			return unwrap(strings.TrimSpace(desc))
		}
	}
	return ""
}

// Select returns every line whose key is one of keys, in listing order.
func (i *Info) Select(keys ...string) []string {
	want := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		want[k] = struct{}{}
	}
	var out []string
	for _, line := range i.lines {
		k, _, _ := strings.Cut(line, ":")
		if _, ok := want[k]; ok {
			out = append(out, line)
		}
	}
	return out
}
