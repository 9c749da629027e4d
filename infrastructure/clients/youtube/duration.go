package youtube

import (
	"fmt"
	"regexp"
	"strconv"
)

var durationPattern = regexp.MustCompile(`PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?`)

// formatDuration normalizes an ISO-8601 video duration ("PT1H2M3S") to
// "h:mm:ss" when an hour or longer, else "m:ss". Minutes and seconds are
// zero padded; the leading component is not. Unparseable input becomes
// "0:00".
func formatDuration(iso string) string {
	m := durationPattern.FindStringSubmatch(iso)
	if m == nil {
		return "0:00"
	}

	hours := atoiDefault(m[1])
	minutes := atoiDefault(m[2])
	seconds := atoiDefault(m[3])

	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%d:%02d", minutes, seconds)
}

func atoiDefault(s string) int {
	if s == "" {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
