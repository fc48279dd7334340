package subtitle

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// H:MM:SS,mmm in any of its SRT, VTT and ASS spellings. Hours are optional
// and the fraction may have one to three digits.
var clockRegex = regexp.MustCompile(
	`^(?:(\d+):)?(\d{1,2}):(\d{1,2})(?:[,.](\d{1,3}))?$`,
)

const arrow = "-->"

func parseClock(s string) (time.Duration, error) {
	m := clockRegex.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0, fmt.Errorf("invalid timestamp %q", s)
	}

	var hours int
	if m[1] != "" {
		h, err := strconv.Atoi(m[1])
		if err != nil {
			return 0, fmt.Errorf("invalid hours in %q: %w", s, err)
		}
		hours = h
	}
	minutes, _ := strconv.Atoi(m[2])
	seconds, _ := strconv.Atoi(m[3])
	if minutes > 59 || seconds > 59 {
		return 0, fmt.Errorf("invalid timestamp %q: field out of range", s)
	}

	// ".5" is half a second, ".50" (ASS centiseconds) as well
	frac := m[4] + strings.Repeat("0", 3-len(m[4]))
	millis, _ := strconv.Atoi(frac)

	return time.Duration(hours)*time.Hour +
		time.Duration(minutes)*time.Minute +
		time.Duration(seconds)*time.Second +
		time.Duration(millis)*time.Millisecond, nil
}

// ParseTimestamp reads a subtitle clock value (00:01:02,500, 01:02.500) or a
// Go duration (1m2.5s, -500ms). A leading minus negates a clock value.
func ParseTimestamp(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty timestamp")
	}

	clock, negative := s, false
	if strings.HasPrefix(clock, "-") {
		clock, negative = clock[1:], true
	}
	if d, err := parseClock(clock); err == nil {
		if negative {
			return -d, nil
		}
		return d, nil
	}

	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid timestamp %q", s)
	}
	return d, nil
}

// parses "start --> end", ignoring VTT cue settings after the end
func parseTiming(line string) (time.Duration, time.Duration, error) {
	left, right, ok := strings.Cut(line, arrow)
	if !ok {
		return 0, 0, fmt.Errorf("missing %q in timing line", arrow)
	}
	fields := strings.Fields(right)
	if len(fields) == 0 {
		return 0, 0, fmt.Errorf("missing end timestamp")
	}

	start, err := parseClock(left)
	if err != nil {
		return 0, 0, fmt.Errorf("start: %w", err)
	}
	end, err := parseClock(fields[0])
	if err != nil {
		return 0, 0, fmt.Errorf("end: %w", err)
	}
	return start, end, nil
}

func formatSRTTime(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	millis := int(d.Milliseconds()) % 1000

	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, seconds, millis)
}

func formatVTTTime(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	millis := int(d.Milliseconds()) % 1000

	return fmt.Sprintf("%02d:%02d:%02d.%03d", hours, minutes, seconds, millis)
}

func formatASSTime(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	centis := (int(d.Milliseconds()) % 1000) / 10

	return fmt.Sprintf("%d:%02d:%02d.%02d", hours, minutes, seconds, centis)
}

// FormatTimestamp renders d as an SRT clock, with a leading minus when
// negative.
func FormatTimestamp(d time.Duration) string {
	if d < 0 {
		return "-" + formatSRTTime(-d)
	}
	return formatSRTTime(d)
}
