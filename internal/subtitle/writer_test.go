package subtitle

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/mgpai22/subcut/internal/timeline"
	"golang.org/x/text/encoding/simplifiedchinese"
)

func encodeString(t *testing.T, blocks []timeline.Block, format Format, opts EncodeOptions) string {
	t.Helper()
	var buf bytes.Buffer
	enc, err := NewEncoder(&buf, format, opts)
	if err != nil {
		t.Fatalf("NewEncoder failed: %v", err)
	}
	if err := enc.Encode(timeline.FromSlice(blocks)); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	return buf.String()
}

func cue(index int, start, end time.Duration, content string) timeline.Block {
	return timeline.Block{Index: index, Start: start, End: end, Content: content}
}

func TestEncodeSRT(t *testing.T) {
	blocks := []timeline.Block{
		cue(9, time.Second, 2500*time.Millisecond, "Hello"),
		cue(3, time.Minute+2003*time.Millisecond, time.Hour, "Two\n\nlines"),
	}

	got := encodeString(t, blocks, FormatSRT, EncodeOptions{Strict: true})
	want := `1
00:00:01,000 --> 00:00:02,500
Hello

2
00:01:02,003 --> 01:00:00,000
Two
lines

`
	if got != want {
		t.Errorf("unexpected output:\n%s\nwant:\n%s", got, want)
	}
}

func TestEncodeVTTHeader(t *testing.T) {
	got := encodeString(t, []timeline.Block{cue(1, 0, time.Second, "hi")}, FormatVTT, EncodeOptions{Strict: true})
	if !strings.HasPrefix(got, "WEBVTT\n\n1\n00:00:00.000 --> 00:00:01.000\nhi\n") {
		t.Errorf("unexpected output:\n%s", got)
	}
}

func TestEncodeASSEscapesNewlines(t *testing.T) {
	got := encodeString(t, []timeline.Block{cue(1, 1500*time.Millisecond, 4*time.Second, "a\nb")}, FormatASS, EncodeOptions{Strict: true})
	if !strings.Contains(got, "Dialogue: 0,0:00:01.50,0:00:04.00,Default,,0,0,0,,a\\Nb\n") {
		t.Errorf("unexpected output:\n%s", got)
	}
	if !strings.Contains(got, "Style: Default,Arial,20") {
		t.Error("default style missing")
	}
}

func TestEncodeStrictRejectsBadCue(t *testing.T) {
	tests := []struct {
		name  string
		block timeline.Block
	}{
		{name: "empty range", block: cue(1, 2*time.Second, 2*time.Second, "x")},
		{name: "backwards", block: cue(1, 3*time.Second, 2*time.Second, "x")},
		{name: "negative start", block: cue(1, -time.Second, 2*time.Second, "x")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blocks := []timeline.Block{cue(1, 0, time.Second, "fine"), tt.block}
			enc, err := NewEncoder(&bytes.Buffer{}, FormatSRT, EncodeOptions{Strict: true})
			if err != nil {
				t.Fatalf("NewEncoder failed: %v", err)
			}

			err = enc.Encode(timeline.FromSlice(blocks))
			var malformed *timeline.MalformedBlockError
			if !errors.As(err, &malformed) {
				t.Fatalf("expected *timeline.MalformedBlockError, got %v", err)
			}
			if malformed.Index != 2 {
				t.Errorf("expected block 2 to be reported, got %d", malformed.Index)
			}
		})
	}
}

func TestEncodeLenientRepairs(t *testing.T) {
	blocks := []timeline.Block{
		cue(1, 5*time.Second, 6*time.Second, "late"),
		cue(2, time.Second, 2*time.Second, "  "),
		cue(3, -time.Second, time.Second, "negative"),
		cue(4, 4*time.Second, 3*time.Second, "backwards"),
		cue(5, 2*time.Second, 3*time.Second, "early"),
		cue(6, 7*time.Second, 7*time.Second, "zero length"),
	}

	var buf bytes.Buffer
	enc, err := NewEncoder(&buf, FormatJSON, EncodeOptions{})
	if err != nil {
		t.Fatalf("NewEncoder failed: %v", err)
	}
	if err := enc.Encode(timeline.FromSlice(blocks)); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	got, err := Decode(&buf, FormatJSON, DecodeOptions{Strict: true})
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	want := []timeline.Block{
		cue(1, 2*time.Second, 3*time.Second, "early"),
		cue(2, 5*time.Second, 6*time.Second, "late"),
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d blocks, got %+v", len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("block %d: got %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestRoundTrip(t *testing.T) {
	blocks := []timeline.Block{
		cue(1, time.Second, 2500*time.Millisecond, "Hello, world"),
		cue(2, 3*time.Second, 4250*time.Millisecond, "Two\nlines"),
		cue(3, time.Hour, time.Hour+10*time.Millisecond, timeline.PlacementTop+"top"),
	}

	for _, format := range []Format{FormatSRT, FormatVTT, FormatASS, FormatJSON} {
		t.Run(string(format), func(t *testing.T) {
			out := encodeString(t, blocks, format, EncodeOptions{Strict: true})
			got := decodeString(t, out, format, true)

			if len(got) != len(blocks) {
				t.Fatalf("expected %d blocks, got %d", len(blocks), len(got))
			}
			for i := range blocks {
				if got[i] != blocks[i] {
					t.Errorf("block %d: got %+v, want %+v", i, got[i], blocks[i])
				}
			}
		})
	}
}

func TestEncodeEncoding(t *testing.T) {
	got := encodeString(t, []timeline.Block{cue(1, 0, time.Second, "你好")}, FormatSRT, EncodeOptions{Encoding: "gbk"})

	want, err := simplifiedchinese.GBK.NewEncoder().String("1\n00:00:00,000 --> 00:00:01,000\n你好\n\n")
	if err != nil {
		t.Fatalf("failed to encode fixture: %v", err)
	}
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestEncodeDropsEmptyCues(t *testing.T) {
	blocks := []timeline.Block{
		cue(1, 0, time.Second, "kept"),
		cue(2, time.Second, 2*time.Second, ""),
		cue(3, 2*time.Second, 3*time.Second, "\n \n"),
		cue(4, 3*time.Second, 4*time.Second, "also kept"),
	}

	got := encodeString(t, blocks, FormatSRT, EncodeOptions{Strict: true})
	want := "1\n00:00:00,000 --> 00:00:01,000\nkept\n\n" +
		"2\n00:00:03,000 --> 00:00:04,000\nalso kept\n\n"
	if got != want {
		t.Errorf("unexpected output:\n%s\nwant:\n%s", got, want)
	}
}

func TestEncodeStrictSorts(t *testing.T) {
	blocks := []timeline.Block{
		cue(1, 5*time.Second, 6*time.Second, "B"),
		cue(2, time.Second, 3*time.Second, "A long"),
		cue(3, time.Second, 2*time.Second, "A"),
	}

	got := encodeString(t, blocks, FormatSRT, EncodeOptions{Strict: true})
	want := "1\n00:00:01,000 --> 00:00:02,000\nA\n\n" +
		"2\n00:00:01,000 --> 00:00:03,000\nA long\n\n" +
		"3\n00:00:05,000 --> 00:00:06,000\nB\n\n"
	if got != want {
		t.Errorf("unexpected output:\n%s\nwant:\n%s", got, want)
	}
}
