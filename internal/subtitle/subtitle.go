// Package subtitle reads and writes timed text files as timeline blocks.
package subtitle

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

// represents supported subtitle formats
type Format string

const (
	FormatSRT  Format = "srt"
	FormatVTT  Format = "vtt"
	FormatASS  Format = "ass"
	FormatJSON Format = "json"
)

const bom = "\ufeff"

type DecodeOptions struct {
	// Strict stops at the first malformed cue instead of skipping it.
	Strict bool
	// Encoding is a WHATWG label such as "gbk" or "latin1". Empty means UTF-8.
	Encoding string
	Logger   *zap.SugaredLogger
}

type EncodeOptions struct {
	// Strict rejects cues that cannot be written faithfully; otherwise the
	// timeline is repaired before writing.
	Strict   bool
	Encoding string
}

// ParseFormat resolves a format name as given on the command line.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(name), ".")) {
	case "srt":
		return FormatSRT, nil
	case "vtt", "webvtt":
		return FormatVTT, nil
	case "ass", "ssa":
		return FormatASS, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unsupported subtitle format: %s", name)
	}
}

// subtitle format based on file extension
func FormatFromPath(path string) (Format, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return "", fmt.Errorf("cannot infer subtitle format from %q", path)
	}
	return ParseFormat(ext)
}

// file extension for a format
func (f Format) Extension() string {
	if f == FormatASS {
		return ".ass"
	}
	return "." + string(f)
}

// returns nil for UTF-8, which needs no transcoding
func lookupEncoding(name string) (encoding.Encoding, error) {
	if name == "" {
		return nil, nil
	}
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, fmt.Errorf("unknown encoding %q: %w", name, err)
	}
	if canonical, _ := htmlindex.Name(enc); canonical == "utf-8" {
		return nil, nil
	}
	return enc, nil
}

func decodingReader(r io.Reader, name string) (io.Reader, error) {
	enc, err := lookupEncoding(name)
	if err != nil || enc == nil {
		return r, err
	}
	return transform.NewReader(r, enc.NewDecoder()), nil
}

// the returned closer flushes any pending transcoded bytes
func encodingWriter(w io.Writer, name string) (io.Writer, io.Closer, error) {
	enc, err := lookupEncoding(name)
	if err != nil {
		return nil, nil, err
	}
	if enc == nil {
		return w, nopCloser{}, nil
	}
	tw := transform.NewWriter(w, enc.NewEncoder())
	return tw, tw, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
