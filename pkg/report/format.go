package report

import "fmt"

// FormatDuration renders whole seconds as "1h 1m". Seconds are truncated,
// not rounded, so 3661 gives "1h 1m".
func FormatDuration(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%dh %dm", seconds/3600, (seconds%3600)/60)
}

// Hours converts a duration in seconds to fractional hours.
func Hours(seconds int) float64 {
	return float64(seconds) / 3600
}
