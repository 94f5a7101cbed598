package export

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename makes name safe for a Content-Disposition header.
// Replaces non-alphanumeric chars (except - _) with _, collapses consecutive
// underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns {sanitized_name}_{YYYY-MM-DD}.{ext}.
func BuildFilename(name, ext string, on time.Time) string {
	return fmt.Sprintf("%s_%s.%s", SanitizeFilename(name), on.Format("2006-01-02"), ext)
}

// DocumentFilename names a rendered estimate or invoice, e.g.
// "INV-0003_Jane_Doe.pdf".
func DocumentFilename(prefix, clientName, ext string) string {
	return fmt.Sprintf("%s_%s.%s", SanitizeFilename(prefix), SanitizeFilename(clientName), ext)
}
