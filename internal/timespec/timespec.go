// Package timespec parses compact durations such as "1h30m" or "45s".
package timespec

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"time"
)

// ErrNoDuration is returned when none of the h, m, s segments is present.
var ErrNoDuration = errors.New("no duration segments found")

// ErrOutOfRange is returned when the total does not fit in a time.Duration.
var ErrOutOfRange = errors.New("duration out of range")

// Segments must appear in h, m, s order at the start of the input.
// Anything after the last recognised segment is ignored.
var specRe = regexp.MustCompile(`^(?:(\d+)h)?(?:(\d+)m)?(?:(\d+)s)?`)

var units = [...]time.Duration{time.Hour, time.Minute, time.Second}

// Parse converts s into a duration. "30m1h" yields 30m: the trailing "1h"
// is out of order and therefore ignored.
func Parse(s string) (time.Duration, error) {
	m := specRe.FindStringSubmatch(s)
	if m == nil {
		return 0, ErrNoDuration
	}

	var (
		total time.Duration
		found bool
	)
	for i, part := range m[1:] {
		if part == "" {
			continue
		}
		n, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			if errors.Is(err, strconv.ErrRange) {
				return 0, ErrOutOfRange
			}
			return 0, err
		}
		if n > math.MaxInt64/int64(units[i]) {
			return 0, ErrOutOfRange
		}
		seg := time.Duration(n) * units[i]
		if total > math.MaxInt64-seg {
			return 0, ErrOutOfRange
		}
		total += seg
		found = true
	}
	if !found {
		return 0, ErrNoDuration
	}
	return total, nil
}
