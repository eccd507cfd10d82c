package venue

import (
	"fmt"
	"strconv"
	"strings"
)

// ToMinutes converts an HH:MM clock string to minutes since midnight.
func ToMinutes(clock string) (int, error) {
	parts := strings.Split(clock, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid time %q, expected HH:MM", clock)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("invalid hour in %q", clock)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid minute in %q", clock)
	}
	return h*60 + m, nil
}

// TimeOverlap reports whether the two half-open windows [aStart, aEnd) and
// [bStart, bEnd) intersect. Back-to-back bookings (one ending exactly when the
// other starts) do not overlap.
func TimeOverlap(aStart, aEnd, bStart, bEnd string) (bool, error) {
	a1, err := ToMinutes(aStart)
	if err != nil {
		return false, err
	}
	a2, err := ToMinutes(aEnd)
	if err != nil {
		return false, err
	}
	b1, err := ToMinutes(bStart)
	if err != nil {
		return false, err
	}
	b2, err := ToMinutes(bEnd)
	if err != nil {
		return false, err
	}

	return max(a1, b1) < min(a2, b2), nil
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
