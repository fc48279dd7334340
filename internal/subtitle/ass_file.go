package subtitle

import (
	"fmt"
	"strings"

	"github.com/mgpai22/subcut/internal/timeline"
)

// column layout of the [Events] section, taken from its Format line
type assLayout struct {
	columns []string
	start   int
	end     int
	text    int
}

var defaultASSColumns = []string{
	"Layer", "Start", "End", "Style", "Name",
	"MarginL", "MarginR", "MarginV", "Effect", "Text",
}

func newASSLayout(columns []string) (assLayout, error) {
	layout := assLayout{columns: columns, start: -1, end: -1, text: -1}
	for i, col := range columns {
		switch strings.ToLower(col) {
		case "start":
			layout.start = i
		case "end":
			layout.end = i
		case "text":
			layout.text = i
		}
	}

	if layout.start < 0 || layout.end < 0 || layout.text < 0 {
		return layout, fmt.Errorf(
			"Format line needs Start, End and Text columns, got %s",
			strings.Join(columns, ", "),
		)
	}
	return layout, nil
}

func (d *Decoder) decodeASS(yield func(timeline.Block) bool) {
	layout, _ := newASSLayout(defaultASSColumns)
	inEventsSection := false

	for lineNum, line := range d.lines() {
		trimmedLine := strings.TrimSpace(line)

		if strings.HasPrefix(trimmedLine, "[") &&
			strings.HasSuffix(trimmedLine, "]") {
			sectionName := strings.ToLower(
				strings.TrimSuffix(strings.TrimPrefix(trimmedLine, "["), "]"),
			)
			inEventsSection = sectionName == "events"
			continue
		}

		if !inEventsSection {
			continue
		}

		if strings.HasPrefix(trimmedLine, "Format:") {
			columns := strings.Split(strings.TrimPrefix(trimmedLine, "Format:"), ",")
			for i, col := range columns {
				columns[i] = strings.TrimSpace(col)
			}
			l, err := newASSLayout(columns)
			if err != nil {
				// nothing below this line can be read reliably
				d.err = &timeline.MalformedBlockError{Line: lineNum, Reason: err.Error()}
				return
			}
			layout = l
			continue
		}

		if !strings.HasPrefix(trimmedLine, "Dialogue:") {
			continue
		}

		b, err := layout.parseDialogue(trimmedLine)
		if err != nil {
			if !d.malformed(lineNum, err.Error()) {
				return
			}
			continue
		}
		if !yield(b) {
			return
		}
	}
}

func (l assLayout) parseDialogue(line string) (timeline.Block, error) {
	content := strings.TrimSpace(strings.TrimPrefix(line, "Dialogue:"))

	parts := splitASSFields(content, len(l.columns))
	if len(parts) < len(l.columns) {
		return timeline.Block{}, fmt.Errorf(
			"expected %d fields, got %d",
			len(l.columns),
			len(parts),
		)
	}

	start, err := parseClock(parts[l.start])
	if err != nil {
		return timeline.Block{}, fmt.Errorf("start: %w", err)
	}
	end, err := parseClock(parts[l.end])
	if err != nil {
		return timeline.Block{}, fmt.Errorf("end: %w", err)
	}

	// override tags such as {\an8} stay in the content
	text := strings.ReplaceAll(parts[l.text], "\\N", "\n")
	text = strings.ReplaceAll(text, "\\n", "\n")

	return timeline.Block{Start: start, End: end, Content: text}, nil
}

// splits at most numFields-1 commas; the last field keeps its commas
func splitASSFields(content string, numFields int) []string {
	if numFields <= 0 {
		return nil
	}

	parts := make([]string, 0, numFields)
	remaining := content

	for i := 0; i < numFields-1; i++ {
		idx := strings.Index(remaining, ",")
		if idx == -1 {
			return append(parts, remaining)
		}
		parts = append(parts, remaining[:idx])
		remaining = remaining[idx+1:]
	}

	parts = append(parts, remaining)

	return parts
}

func escapeASSText(text string) string {
	return strings.ReplaceAll(text, "\n", "\\N")
}
