package utils

import (
	"fmt"
	"strconv"
	"strings"

	units "github.com/docker/go-units"
)

// ParseMB parses a memory size into megabytes. A bare number is already in
// MB ("4096"); a suffixed value is a binary size ("4G", "512MiB").
func ParseMB(s string) (int, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		if n <= 0 {
			return 0, fmt.Errorf("size must be positive: %d", n)
		}
		return n, nil
	}
	b, err := units.RAMInBytes(s)
	if err != nil {
		return 0, err
	}
	if b < units.MiB {
		return 0, fmt.Errorf("size %s is below 1 MB", s)
	}
	return int(b / units.MiB), nil
}

// FormatMB renders a MB count in human form ("4GiB").
func FormatMB(mb int) string {
	return units.BytesSize(float64(mb) * units.MiB)
}
