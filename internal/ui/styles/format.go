// Package styles contains Lip Gloss style definitions.
package styles

import (
	"github.com/muesli/reflow/truncate"
)

// TruncateString truncates a string to fit within maxWidth cells, adding an
// ellipsis if needed. ANSI sequences are preserved.
func TruncateString(s string, maxWidth int) string {
	if maxWidth < 1 {
		return ""
	}
	if maxWidth <= 3 {
		return truncate.String(s, uint(maxWidth))
	}
	return truncate.StringWithTail(s, uint(maxWidth), "...")
}
