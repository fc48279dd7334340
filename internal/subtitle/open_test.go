package subtitle

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/mgpai22/subcut/internal/timeline"
	"golang.org/x/text/encoding/simplifiedchinese"
)

func decodeString(t *testing.T, content string, format Format, strict bool) []timeline.Block {
	t.Helper()
	blocks, err := Decode(strings.NewReader(content), format, DecodeOptions{Strict: strict})
	if err != nil {
		t.Fatalf("failed to decode %s: %v", format, err)
	}
	return blocks
}

func TestDecodeSRT(t *testing.T) {
	content := "\ufeff" + `1
00:00:01,000 --> 00:00:04,000
Hello, world!

2
00:00:05,500 --> 00:00:08,200
This is a test.
With multiple lines.

3
00:00:10,000 --> 00:00:12,500
Final subtitle.
`
	blocks := decodeString(t, content, FormatSRT, true)
	if len(blocks) != 3 {
		t.Fatalf("expected 3 blocks, got %d", len(blocks))
	}

	if blocks[0].Start != 1*time.Second {
		t.Errorf("block 0: expected start 1s, got %v", blocks[0].Start)
	}
	if blocks[0].End != 4*time.Second {
		t.Errorf("block 0: expected end 4s, got %v", blocks[0].End)
	}
	if blocks[0].Content != "Hello, world!" {
		t.Errorf("block 0: expected 'Hello, world!', got %q", blocks[0].Content)
	}

	expectedText := "This is a test.\nWith multiple lines."
	if blocks[1].Content != expectedText {
		t.Errorf("block 1: expected %q, got %q", expectedText, blocks[1].Content)
	}
	if blocks[1].Start != 5500*time.Millisecond {
		t.Errorf("block 1: expected start 5.5s, got %v", blocks[1].Start)
	}

	for i, b := range blocks {
		if b.Index != i+1 {
			t.Errorf("block %d: expected index %d, got %d", i, i+1, b.Index)
		}
	}
}

func TestDecodeVTT(t *testing.T) {
	content := `WEBVTT

NOTE this block is ignored
even across lines

1
00:00:01.000 --> 00:00:04.000
Hello, world!

2
00:00:05.500 --> 00:00:08.200 align:start position:10%
This is a test.
With multiple lines.

00:10.000 --> 00:12.500
No cue identifier.
`
	blocks := decodeString(t, content, FormatVTT, true)
	if len(blocks) != 3 {
		t.Fatalf("expected 3 blocks, got %d", len(blocks))
	}

	if blocks[0].Start != 1*time.Second {
		t.Errorf("block 0: expected start 1s, got %v", blocks[0].Start)
	}
	if blocks[1].End != 8200*time.Millisecond {
		t.Errorf("block 1: expected end 8.2s, got %v", blocks[1].End)
	}
	if blocks[2].Start != 10*time.Second {
		t.Errorf("block 2: expected start 10s, got %v", blocks[2].Start)
	}
	if blocks[2].Content != "No cue identifier." {
		t.Errorf("block 2: expected 'No cue identifier.', got %q", blocks[2].Content)
	}
}

func TestDecodeVTTWithoutHeader(t *testing.T) {
	content := `00:00:01.000 --> 00:00:02.000
headless
`
	if _, err := Decode(strings.NewReader(content), FormatVTT, DecodeOptions{Strict: true}); err == nil {
		t.Error("expected error for missing WEBVTT header")
	}

	blocks := decodeString(t, content, FormatVTT, false)
	if len(blocks) != 1 || blocks[0].Content != "headless" {
		t.Errorf("expected the cue to survive lenient decoding, got %+v", blocks)
	}
}

func TestDecodeASS(t *testing.T) {
	content := `[Script Info]
Title: Test Subtitles
ScriptType: v4.00+

[V4+ Styles]
Format: Name, Fontname, Fontsize, PrimaryColour, SecondaryColour, OutlineColour, BackColour, Bold, Italic, Underline, StrikeOut, ScaleX, ScaleY, Spacing, Angle, BorderStyle, Outline, Shadow, Alignment, MarginL, MarginR, MarginV, Encoding
Style: Default,Arial,20,&H00FFFFFF,&H000000FF,&H00000000,&H00000000,0,0,0,0,100,100,0,0,1,2,2,2,10,10,10,1

[Events]
Format: Layer, Start, End, Style, Name, MarginL, MarginR, MarginV, Effect, Text
Comment: 0,0:00:00.00,0:00:01.00,Default,,0,0,0,,not a cue
Dialogue: 0,0:00:01.00,0:00:04.00,Default,,0,0,0,,Hello, world!
Dialogue: 0,0:00:05.50,0:00:08.20,Default,,0,0,0,,{\pos(100,200)}This has positioning.
Dialogue: 0,0:00:10.00,0:00:12.50,Default,,0,0,0,,Line with\Nnewline.
`
	blocks := decodeString(t, content, FormatASS, true)
	if len(blocks) != 3 {
		t.Fatalf("expected 3 blocks, got %d", len(blocks))
	}

	// the text column keeps its commas
	if blocks[0].Content != "Hello, world!" {
		t.Errorf("block 0: expected 'Hello, world!', got %q", blocks[0].Content)
	}
	if blocks[1].Start != 5500*time.Millisecond {
		t.Errorf("block 1: expected start 5.5s, got %v", blocks[1].Start)
	}
	if blocks[1].Content != `{\pos(100,200)}This has positioning.` {
		t.Errorf("block 1: expected override tags to be kept, got %q", blocks[1].Content)
	}
	if blocks[2].Content != "Line with\nnewline." {
		t.Errorf("block 2: expected 'Line with\\nnewline.', got %q", blocks[2].Content)
	}
}

func TestDecodeASSMissingTextColumn(t *testing.T) {
	content := `[Events]
Format: Layer, Start, End
Dialogue: 0,0:00:01.00,0:00:04.00
`
	_, err := Decode(strings.NewReader(content), FormatASS, DecodeOptions{})
	if !errors.Is(err, timeline.ErrMalformedBlock) {
		t.Errorf("expected malformed block error, got %v", err)
	}
}

const malformedSRT = `1
00:00:01,000 --> 00:00:02,000
ok

2
00:00:xx,000 --> 00:00:04,000
bad

3
00:00:05,000 --> 00:00:06,000
fine
`

func TestDecodeStrictStopsAtMalformedCue(t *testing.T) {
	dec, err := NewDecoder(strings.NewReader(malformedSRT), FormatSRT, DecodeOptions{Strict: true})
	if err != nil {
		t.Fatalf("NewDecoder failed: %v", err)
	}

	blocks := timeline.Materialize(dec.Blocks())
	if len(blocks) != 1 {
		t.Errorf("expected decoding to stop after 1 block, got %d", len(blocks))
	}

	var malformed *timeline.MalformedBlockError
	if !errors.As(dec.Err(), &malformed) {
		t.Fatalf("expected *timeline.MalformedBlockError, got %v", dec.Err())
	}
	if malformed.Line != 5 {
		t.Errorf("expected line 5, got %d", malformed.Line)
	}
}

func TestDecodeLenientSkipsMalformedCue(t *testing.T) {
	blocks := decodeString(t, malformedSRT, FormatSRT, false)
	if len(blocks) != 2 {
		t.Fatalf("expected 2 blocks, got %d", len(blocks))
	}
	if blocks[1].Content != "fine" || blocks[1].Index != 2 {
		t.Errorf("expected renumbered 'fine' cue, got %+v", blocks[1])
	}
}

func TestDecodeLenientMissingIndex(t *testing.T) {
	content := `00:00:01,000 --> 00:00:02,000
no index
`
	if _, err := Decode(strings.NewReader(content), FormatSRT, DecodeOptions{Strict: true}); err == nil {
		t.Error("expected strict decoding to require a cue index")
	}
	blocks := decodeString(t, content, FormatSRT, false)
	if len(blocks) != 1 || blocks[0].Content != "no index" {
		t.Errorf("unexpected blocks: %+v", blocks)
	}
}

func TestDecodeEncoding(t *testing.T) {
	utf8Content := "1\n00:00:01,000 --> 00:00:02,000\n你好\n"
	gbk, err := simplifiedchinese.GBK.NewEncoder().String(utf8Content)
	if err != nil {
		t.Fatalf("failed to encode fixture: %v", err)
	}

	blocks, err := Decode(strings.NewReader(gbk), FormatSRT, DecodeOptions{Encoding: "gbk"})
	if err != nil {
		t.Fatalf("failed to decode gbk: %v", err)
	}
	if len(blocks) != 1 || blocks[0].Content != "你好" {
		t.Errorf("unexpected blocks: %+v", blocks)
	}

	if _, err := NewDecoder(strings.NewReader(""), FormatSRT, DecodeOptions{Encoding: "klingon"}); err == nil {
		t.Error("expected error for unknown encoding")
	}
}

func TestDecodeJSON(t *testing.T) {
	content := `[{"index": 7, "start_ms": 1000, "end_ms": 2500, "content": "a\nb"}]`
	blocks := decodeString(t, content, FormatJSON, true)
	want := timeline.Block{Index: 1, Start: time.Second, End: 2500 * time.Millisecond, Content: "a\nb"}
	if len(blocks) != 1 || blocks[0] != want {
		t.Errorf("expected %+v, got %+v", want, blocks)
	}

	if _, err := Decode(strings.NewReader("{"), FormatJSON, DecodeOptions{}); err == nil {
		t.Error("expected error for invalid json")
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{path: "movie.srt", want: FormatSRT},
		{path: "movie.SRT", want: FormatSRT},
		{path: "movie.vtt", want: FormatVTT},
		{path: "movie.ssa", want: FormatASS},
		{path: "dump.json", want: FormatJSON},
		{path: "notes.txt", wantErr: true},
		{path: "noext", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := FormatFromPath(tt.path)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error, got %s", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}

	_, err := ParseFormat("txt")
	if err == nil || !strings.Contains(err.Error(), "unsupported") {
		t.Errorf("expected 'unsupported' in error, got: %v", err)
	}
}
