package cli

import (
	"context"
	"fmt"
	"io"
	"iter"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/mgpai22/subcut/internal/subtitle"
	"github.com/mgpai22/subcut/internal/timeline"
	"github.com/mgpai22/subcut/internal/watch"
	"github.com/spf13/cobra"
)

// source is one opened subtitle input, decoded lazily.
type source struct {
	name   string
	format subtitle.Format
	dec    *subtitle.Decoder
	file   *os.File
}

func isStdio(path string) bool {
	return path == "" || path == "-"
}

func inputArg(args []string) string {
	if len(args) == 0 {
		return "-"
	}
	return args[0]
}

func openSource(cmd *cobra.Command, path string) (*source, error) {
	format, err := inputFormat(cmd, path)
	if err != nil {
		return nil, err
	}

	src := &source{name: path, format: format}
	var r io.Reader
	if isStdio(path) {
		src.name = "stdin"
		r = cmd.InOrStdin()
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open subtitle file: %w", err)
		}
		src.file = f
		r = f
	}

	dec, err := subtitle.NewDecoder(r, format, subtitle.DecodeOptions{
		Strict:   strictMode(cmd),
		Encoding: encodingName(cmd),
		Logger:   logger.SugaredLogger,
	})
	if err != nil {
		_ = src.Close()
		return nil, fmt.Errorf("failed to read %s: %w", src.name, err)
	}
	src.dec = dec

	logger.Debugw("Opened subtitle input", "input", src.name, "format", format)
	return src, nil
}

func (s *source) Blocks() iter.Seq[timeline.Block] {
	return s.dec.Blocks()
}

func (s *source) Err() error {
	if err := s.dec.Err(); err != nil {
		return fmt.Errorf("failed to parse %s: %w", s.name, err)
	}
	return nil
}

func (s *source) Close() error {
	if s.file == nil {
		return nil
	}
	return s.file.Close()
}

// readBlocks decodes a whole input for operations that need it in memory.
func readBlocks(cmd *cobra.Command, path string) ([]timeline.Block, subtitle.Format, error) {
	src, err := openSource(cmd, path)
	if err != nil {
		return nil, "", err
	}
	defer func() {
		_ = src.Close()
	}()

	blocks := timeline.Materialize(src.Blocks())
	if err := src.Err(); err != nil {
		return nil, "", err
	}

	logger.Infow("Parsed subtitle file",
		"input", src.name,
		"blocks", len(blocks),
		"format", src.format,
	)
	return blocks, src.format, nil
}

func inputFormat(cmd *cobra.Command, path string) (subtitle.Format, error) {
	if name, _ := cmd.Flags().GetString("input-format"); name != "" {
		return subtitle.ParseFormat(name)
	}
	if isStdio(path) {
		return subtitle.FormatSRT, nil
	}
	return subtitle.FormatFromPath(path)
}

func outputFormat(cmd *cobra.Command, path string, fallback subtitle.Format) (subtitle.Format, error) {
	if name, _ := cmd.Flags().GetString("format"); name != "" {
		return subtitle.ParseFormat(name)
	}
	if !isStdio(path) && filepath.Ext(path) != "" {
		return subtitle.FormatFromPath(path)
	}
	return fallback, nil
}

func strictMode(cmd *cobra.Command) bool {
	if cmd.Flags().Changed("strict") {
		strict, _ := cmd.Flags().GetBool("strict")
		return strict
	}
	return cfg.StrictValue()
}

func encodingName(cmd *cobra.Command) string {
	if name, _ := cmd.Flags().GetString("encoding"); name != "" {
		return name
	}
	return cfg.Encoding
}

// writeTimeline drains seq and writes it to --output or stdout. Decoding
// errors from sources are checked before anything is written.
func writeTimeline(
	cmd *cobra.Command,
	seq iter.Seq[timeline.Block],
	fallback subtitle.Format,
	sources ...*source,
) error {
	outputPath, _ := cmd.Flags().GetString("output")
	format, err := outputFormat(cmd, outputPath, fallback)
	if err != nil {
		return err
	}

	blocks := timeline.Materialize(seq)
	for _, src := range sources {
		if err := src.Err(); err != nil {
			return err
		}
	}

	opts := subtitle.EncodeOptions{
		Strict:   strictMode(cmd),
		Encoding: encodingName(cmd),
	}
	encode := func(w io.Writer) error {
		enc, err := subtitle.NewEncoder(w, format, opts)
		if err != nil {
			return err
		}
		if err := enc.Encode(timeline.FromSlice(blocks)); err != nil {
			return fmt.Errorf("failed to write subtitles: %w", err)
		}
		return nil
	}

	if isStdio(outputPath) {
		return encode(cmd.OutOrStdout())
	}

	if err := writeFileAtomic(outputPath, encode); err != nil {
		return err
	}

	logger.Infow("Wrote subtitle file",
		"output", outputPath,
		"blocks", len(blocks),
		"format", format,
	)
	absOutput, _ := filepath.Abs(outputPath)
	fmt.Fprintf(cmd.OutOrStdout(), "Subtitles written: %s\n", absOutput)
	return nil
}

// writeFileAtomic writes to a temporary file next to path and renames it
// into place once write succeeds.
func writeFileAtomic(path string, write func(io.Writer) error) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if err = write(tmp); err != nil {
		return err
	}
	if err = tmp.Chmod(0o644); err != nil {
		return fmt.Errorf("failed to set output permissions: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to close output file: %w", err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to move output into place: %w", err)
	}
	return nil
}

// parseTime accepts subtitle timestamps, Go durations and bare
// milliseconds.
func parseTime(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Duration(ms) * time.Millisecond, nil
	}
	return subtitle.ParseTimestamp(s)
}

func timeFlag(cmd *cobra.Command, name string) (time.Duration, error) {
	value, _ := cmd.Flags().GetString(name)
	d, err := parseTime(value)
	if err != nil {
		return 0, fmt.Errorf("invalid --%s: %w", name, err)
	}
	return d, nil
}

// runPipeline runs fn once, or keeps rerunning it under --watch.
func runPipeline(
	cmd *cobra.Command,
	inputs []string,
	fn func(ctx context.Context) error,
) error {
	watching, _ := cmd.Flags().GetBool("watch")
	if !watching {
		return fn(cmd.Context())
	}

	outputPath, _ := cmd.Flags().GetString("output")
	if isStdio(outputPath) {
		return fmt.Errorf("--watch needs an output file: use -o")
	}
	absOutput, _ := filepath.Abs(outputPath)
	for _, path := range inputs {
		if isStdio(path) {
			return fmt.Errorf("--watch cannot read from stdin")
		}
		if absInput, _ := filepath.Abs(path); absInput == absOutput {
			return fmt.Errorf("--watch output must differ from input %s", path)
		}
	}

	logger.Infow("Watching for changes", "inputs", inputs, "output", outputPath)
	return watch.Run(cmd.Context(), inputs, logger.SugaredLogger, fn)
}

type editFunc func(iter.Seq[timeline.Block]) (iter.Seq[timeline.Block], error)

// editFile streams one input through edit into the output.
func editFile(cmd *cobra.Command, path string, edit editFunc) error {
	return runPipeline(cmd, []string{path}, func(ctx context.Context) error {
		src, err := openSource(cmd, path)
		if err != nil {
			return err
		}
		defer func() {
			_ = src.Close()
		}()

		seq, err := edit(src.Blocks())
		if err != nil {
			return err
		}
		return writeTimeline(cmd, seq, src.format, src)
	})
}
