// Package inventory parses the manager's human-oriented text listings into
// structured records. Nothing else in the module reads raw manager output.
package inventory

import "strings"

// Record is one line of a "list vms" or "list runningvms" listing.
type Record struct {
	Name string
	ID   string
}

// ParseList parses `"name" {id}` lines. Parsing stops at the first empty line;
// lines that do not carry a quoted name are skipped.
func ParseList(text string) []Record {
	var out []Record
	for _, line := range splitLines(text) {
		if line == "" {
			break
		}
		rec, ok := parseListLine(line)
		if !ok {
			continue
		}
		out = append(out, rec)
	}
	return out
}

func parseListLine(line string) (Record, bool) {
	if !strings.HasPrefix(line, `"`) {
		return Record{}, false
	}
	sep := strings.Index(line, `" `)
	if sep < 0 {
		return Record{}, false
	}
	return Record{
		Name: line[1:sep],
		ID:   unwrap(strings.TrimSpace(line[sep+2:])),
	}, true
}

// unwrap removes one layer of surrounding quotes, or failing that, braces.
func unwrap(s string) string {
	if len(s) < 2 {
		return s
	}
	switch {
	case s[0] == '"' && s[len(s)-1] == '"':
		return s[1 : len(s)-1]
	case s[0] == '{' && s[len(s)-1] == '}':
		return s[1 : len(s)-1]
	case s[0] == '\'' && s[len(s)-1] == '\'':
		return s[1 : len(s)-1]
	}
	return s
}

func splitLines(text string) []string {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, "\r")
	}
	return lines
}
