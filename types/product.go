package types

import "strings"

const (
	tvPrefix      = "LG webOS TV Emulator"
	signagePrefix = "LG webOS SIGNAGE Emulator"
)

// ClassifyName infers product and version from the SDK naming convention,
// e.g. "LG webOS TV Emulator 5.0" is (tv, "5.0"). Any other name is generic
// with no version.
func ClassifyName(name string) (Product, string) {
	switch {
	case strings.HasPrefix(name, tvPrefix):
		return ProductTV, versionAfter(name, tvPrefix)
	case strings.HasPrefix(name, signagePrefix):
		return ProductSignage, versionAfter(name, signagePrefix)
	default:
		return ProductGeneric, ""
	}
}

func versionAfter(name, prefix string) string {
	return strings.TrimSpace(strings.TrimPrefix(name, prefix))
}
