package subtitle

import (
	"bufio"
	"fmt"
	"io"
	"iter"
	"strings"

	"github.com/mgpai22/subcut/internal/timeline"
)

// Encoder writes cues in one subtitle format.
type Encoder struct {
	w      io.Writer
	format Format
	opts   EncodeOptions
}

func NewEncoder(w io.Writer, format Format, opts EncodeOptions) (*Encoder, error) {
	format, err := ParseFormat(string(format))
	if err != nil {
		return nil, err
	}
	if _, err := lookupEncoding(opts.Encoding); err != nil {
		return nil, err
	}
	return &Encoder{w: w, format: format, opts: opts}, nil
}

// Encode writes every cue of seq that has text, sorted by start and end and
// numbered from 1.
//
// In strict mode a cue that does not end after it starts, or starts before
// zero, fails the whole write with a *timeline.MalformedBlockError. Otherwise
// such cues are dropped.
func (e *Encoder) Encode(seq iter.Seq[timeline.Block]) error {
	blocks := make([]timeline.Block, 0)
	for b := range seq {
		b.Content = removeBlankLines(b.Content)
		if strings.TrimSpace(b.Content) == "" {
			continue
		}
		blocks = append(blocks, b)
	}

	if e.opts.Strict {
		for i, b := range blocks {
			if err := validate(b); err != nil {
				err.Index = i + 1
				return err
			}
		}
		blocks = timeline.Sort(blocks)
	} else {
		blocks = repair(blocks)
	}

	w, closer, err := encodingWriter(e.w, e.opts.Encoding)
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(w)

	switch e.format {
	case FormatSRT:
		err = writeSRT(bw, blocks)
	case FormatVTT:
		err = writeVTT(bw, blocks)
	case FormatASS:
		err = writeASS(bw, blocks)
	case FormatJSON:
		err = encodeJSON(bw, blocks)
	}
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", e.format, err)
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write %s: %w", e.format, err)
	}
	return closer.Close()
}

func validate(b timeline.Block) *timeline.MalformedBlockError {
	switch {
	case b.Start < 0:
		return &timeline.MalformedBlockError{
			Reason: "starts before zero at " + FormatTimestamp(b.Start),
		}
	case b.End <= b.Start:
		return &timeline.MalformedBlockError{Reason: fmt.Sprintf(
			"ends at %s, not after its start %s",
			FormatTimestamp(b.End),
			FormatTimestamp(b.Start),
		)}
	}
	return nil
}

// repair drops cues that cannot be written and renumbers the rest in order.
func repair(blocks []timeline.Block) []timeline.Block {
	kept := blocks[:0]
	for _, b := range blocks {
		if b.Start < 0 || b.End <= b.Start {
			continue
		}
		kept = append(kept, b)
	}
	return timeline.Sort(kept)
}

// a blank line terminates an SRT or VTT cue
func removeBlankLines(content string) string {
	if !strings.Contains(content, "\n") {
		return content
	}

	lines := strings.Split(content, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if strings.TrimSpace(line) != "" {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}

func writeSRT(w *bufio.Writer, blocks []timeline.Block) error {
	for _, b := range blocks {
		if _, err := fmt.Fprintf(w, "%d\n%s --> %s\n%s\n\n",
			b.Index,
			formatSRTTime(b.Start),
			formatSRTTime(b.End),
			b.Content); err != nil {
			return err
		}
	}
	return nil
}

func writeVTT(w *bufio.Writer, blocks []timeline.Block) error {
	if _, err := w.WriteString("WEBVTT\n\n"); err != nil {
		return err
	}

	for _, b := range blocks {
		if _, err := fmt.Fprintf(w, "%d\n%s --> %s\n%s\n\n",
			b.Index,
			formatVTTTime(b.Start),
			formatVTTTime(b.End),
			b.Content); err != nil {
			return err
		}
	}
	return nil
}

const assHeader = `[Script Info]
Title: subcut
ScriptType: v4.00+
Collisions: Normal
PlayDepth: 0

[V4+ Styles]
Format: Name, Fontname, Fontsize, PrimaryColour, SecondaryColour, OutlineColour, BackColour, Bold, Italic, Underline, StrikeOut, ScaleX, ScaleY, Spacing, Angle, BorderStyle, Outline, Shadow, Alignment, MarginL, MarginR, MarginV, Encoding
Style: Default,Arial,20,&H00FFFFFF,&H000000FF,&H00000000,&H00000000,0,0,0,0,100,100,0,0,1,2,2,2,10,10,10,1

[Events]
Format: Layer, Start, End, Style, Name, MarginL, MarginR, MarginV, Effect, Text
`

func writeASS(w *bufio.Writer, blocks []timeline.Block) error {
	if _, err := w.WriteString(assHeader); err != nil {
		return err
	}

	for _, b := range blocks {
		if _, err := fmt.Fprintf(w, "Dialogue: 0,%s,%s,Default,,0,0,0,,%s\n",
			formatASSTime(b.Start),
			formatASSTime(b.End),
			escapeASSText(b.Content)); err != nil {
			return err
		}
	}
	return nil
}
