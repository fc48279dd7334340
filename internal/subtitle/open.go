package subtitle

import (
	"bufio"
	"fmt"
	"io"
	"iter"
	"strings"

	"github.com/mgpai22/subcut/internal/timeline"
	"go.uber.org/zap"
)

const maxLineSize = 1024 * 1024

// Decoder reads cues from a subtitle stream. Like bufio.Scanner it reports
// failures after iteration through Err.
type Decoder struct {
	r      io.Reader
	format Format
	strict bool
	log    *zap.SugaredLogger
	err    error
}

// NewDecoder returns a decoder reading format from r.
func NewDecoder(r io.Reader, format Format, opts DecodeOptions) (*Decoder, error) {
	format, err := ParseFormat(string(format))
	if err != nil {
		return nil, err
	}
	r, err = decodingReader(r, opts.Encoding)
	if err != nil {
		return nil, err
	}

	log := opts.Logger
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	return &Decoder{r: r, format: format, strict: opts.Strict, log: log}, nil
}

// Blocks yields the decoded cues numbered from 1. The sequence reads the
// underlying stream and can be ranged over only once.
func (d *Decoder) Blocks() iter.Seq[timeline.Block] {
	return func(yield func(timeline.Block) bool) {
		var cues func(func(timeline.Block) bool)
		switch d.format {
		case FormatSRT:
			cues = d.decodeSRT
		case FormatVTT:
			cues = d.decodeVTT
		case FormatASS:
			cues = d.decodeASS
		case FormatJSON:
			cues = d.decodeJSON
		}

		index := 0
		for b := range cues {
			index++
			b.Index = index
			if !yield(b) {
				return
			}
		}
	}
}

// Err returns the first error met while decoding.
func (d *Decoder) Err() error {
	return d.err
}

// Decode reads every cue from r.
func Decode(r io.Reader, format Format, opts DecodeOptions) ([]timeline.Block, error) {
	dec, err := NewDecoder(r, format, opts)
	if err != nil {
		return nil, err
	}
	blocks := timeline.Materialize(dec.Blocks())
	if err := dec.Err(); err != nil {
		return nil, err
	}
	return blocks, nil
}

// malformed records a bad cue and reports whether decoding may go on.
func (d *Decoder) malformed(line int, reason string) bool {
	if d.strict {
		d.err = &timeline.MalformedBlockError{Line: line, Reason: reason}
		return false
	}
	d.log.Warnw("skipping malformed cue", "line", line, "reason", reason)
	return true
}

func (d *Decoder) lines() iter.Seq2[int, string] {
	return func(yield func(int, string) bool) {
		scanner := bufio.NewScanner(d.r)
		scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

		lineNum := 0
		for scanner.Scan() {
			line := scanner.Text()
			lineNum++

			if lineNum == 1 {
				line = strings.TrimPrefix(line, bom)
			}
			if !yield(lineNum, line) {
				return
			}
		}

		if err := scanner.Err(); err != nil {
			d.err = fmt.Errorf("error reading %s: %w", d.format, err)
		}
	}
}

// run of non-blank lines
type paragraph struct {
	line  int
	lines []string
}

func (d *Decoder) paragraphs() iter.Seq[paragraph] {
	return func(yield func(paragraph) bool) {
		var p paragraph
		for lineNum, line := range d.lines() {
			if strings.TrimSpace(line) == "" {
				if len(p.lines) > 0 {
					if !yield(p) {
						return
					}
					p = paragraph{}
				}
				continue
			}
			if len(p.lines) == 0 {
				p.line = lineNum
			}
			p.lines = append(p.lines, line)
		}

		if len(p.lines) > 0 {
			yield(p)
		}
	}
}
