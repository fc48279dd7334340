package subtitle

import (
	"strconv"
	"strings"

	"github.com/mgpai22/subcut/internal/timeline"
)

func (d *Decoder) decodeSRT(yield func(timeline.Block) bool) {
	for p := range d.paragraphs() {
		b, reason := parseSRTCue(p.lines, d.strict)
		if reason != "" {
			if !d.malformed(p.line, reason) {
				return
			}
			continue
		}
		if !yield(b) {
			return
		}
	}
}

// parseSRTCue reads index, timing and content lines. Lenient parsing accepts
// a missing or non-numeric index line.
func parseSRTCue(lines []string, strict bool) (timeline.Block, string) {
	if strings.Contains(lines[0], arrow) {
		if strict {
			return timeline.Block{}, "missing cue index"
		}
	} else {
		if _, err := strconv.Atoi(strings.TrimSpace(lines[0])); err != nil && strict {
			return timeline.Block{}, "invalid cue index " + strconv.Quote(lines[0])
		}
		lines = lines[1:]
	}

	if len(lines) == 0 || !strings.Contains(lines[0], arrow) {
		return timeline.Block{}, "missing timing line"
	}

	start, end, err := parseTiming(lines[0])
	if err != nil {
		return timeline.Block{}, err.Error()
	}

	return timeline.Block{
		Start:   start,
		End:     end,
		Content: strings.Join(lines[1:], "\n"),
	}, ""
}
