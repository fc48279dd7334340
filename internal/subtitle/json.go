package subtitle

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/bytedance/sonic"
	"github.com/mgpai22/subcut/internal/timeline"
)

// JSON representation of a cue
type record struct {
	Index   int    `json:"index"`
	StartMs int64  `json:"start_ms"`
	EndMs   int64  `json:"end_ms"`
	Content string `json:"content"`
}

func (d *Decoder) decodeJSON(yield func(timeline.Block) bool) {
	data, err := io.ReadAll(d.r)
	if err != nil {
		d.err = fmt.Errorf("error reading json: %w", err)
		return
	}
	data = bytes.TrimPrefix(data, []byte(bom))

	var records []record
	if err := sonic.Unmarshal(data, &records); err != nil {
		d.err = &timeline.MalformedBlockError{Reason: "invalid json: " + err.Error()}
		return
	}

	for _, r := range records {
		b := timeline.Block{
			Start:   time.Duration(r.StartMs) * time.Millisecond,
			End:     time.Duration(r.EndMs) * time.Millisecond,
			Content: r.Content,
		}
		if !yield(b) {
			return
		}
	}
}

func encodeJSON(w io.Writer, blocks []timeline.Block) error {
	records := make([]record, len(blocks))
	for i, b := range blocks {
		records[i] = record{
			Index:   b.Index,
			StartMs: b.Start.Milliseconds(),
			EndMs:   b.End.Milliseconds(),
			Content: b.Content,
		}
	}

	data, err := sonic.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal cues: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return err
	}
	return nil
}
