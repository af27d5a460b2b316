package components

import (
	"github.com/quizdrill/quizdrill/internal/ui/theme"
)

// FilterChip renders one segment of a filter bar. Active chips get the
// primary background; inactive ones render dim.
func FilterChip(label string, active bool) string {
	if active {
		return theme.FilterActive.Render(label)
	}
	return theme.FilterInactive.Render(label)
}
