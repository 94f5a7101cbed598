package domain

import "strings"

// FormatAddress joins address parts into one line, e.g.
// "123 Main St, Apt 4, Springfield, IL 62701". Empty parts are skipped.
func FormatAddress(street1, street2, city, state, zip string) string {
	var parts []string
	for _, p := range []string{street1, street2} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}

	var csz []string
	for _, p := range []string{city, state, zip} {
		if p = strings.TrimSpace(p); p != "" {
			csz = append(csz, p)
		}
	}
	if len(csz) > 0 {
		line := strings.Join(csz[:min(2, len(csz))], ", ")
		if len(csz) > 2 {
			line += " " + csz[2]
		}
		parts = append(parts, line)
	}

	return strings.Join(parts, ", ")
}
