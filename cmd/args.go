package cmd

import "strings"

// singleDash maps the multi-letter single-dash flags accepted on the command
// line to their long forms; pflag only parses single-letter shorthands.
var singleDash = map[string]string{
	"-vd": "--vd",
	"-ds": "--default-settings",
	"-cc": "--create-with-custom",
}

// normalizeArgs rewrites multi-letter single-dash flags, including their
// "-vd=name" form. Arguments after "--" are left alone.
func normalizeArgs(args []string) []string {
	out := make([]string, 0, len(args))
	for i, a := range args {
		if a == "--" {
			return append(out, args[i:]...)
		}
		flag, value, hasValue := strings.Cut(a, "=")
		if long, ok := singleDash[flag]; ok {
			if hasValue {
				a = long + "=" + value
			} else {
				a = long
			}
		}
		out = append(out, a)
	}
	return out
}
