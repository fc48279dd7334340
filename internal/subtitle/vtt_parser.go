package subtitle

import (
	"strings"

	"github.com/mgpai22/subcut/internal/timeline"
)

func (d *Decoder) decodeVTT(yield func(timeline.Block) bool) {
	headerParsed := false

	for p := range d.paragraphs() {
		first := strings.TrimSpace(p.lines[0])

		if !headerParsed {
			headerParsed = true
			if strings.HasPrefix(first, "WEBVTT") {
				continue
			}
			if !d.malformed(p.line, "missing WEBVTT header") {
				return
			}
		}

		// comments and metadata blocks carry no cues
		if strings.HasPrefix(first, "NOTE") ||
			strings.HasPrefix(first, "STYLE") ||
			strings.HasPrefix(first, "REGION") {
			continue
		}

		lines := p.lines
		if !strings.Contains(lines[0], arrow) {
			// cue identifier
			lines = lines[1:]
		}
		if len(lines) == 0 || !strings.Contains(lines[0], arrow) {
			if !d.malformed(p.line, "missing timing line") {
				return
			}
			continue
		}

		start, end, err := parseTiming(lines[0])
		if err != nil {
			if !d.malformed(p.line, err.Error()) {
				return
			}
			continue
		}

		b := timeline.Block{
			Start:   start,
			End:     end,
			Content: strings.Join(lines[1:], "\n"),
		}
		if !yield(b) {
			return
		}
	}
}
