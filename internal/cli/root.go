package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mgpai22/subcut/internal/config"
	"github.com/mgpai22/subcut/internal/logging"
	"github.com/spf13/cobra"
)

var (
	verbose bool
	logger  = logging.Nop()
	cfg     = config.Default()
)

var rootCmd = &cobra.Command{
	Use:   "subcut",
	Short: "Cut, splice and retime subtitle timelines",
	Long: `Subcut edits subtitle files as timelines of timed cues.

It can split, find, remove, insert and paste cues, merge several tracks,
remove near-duplicates, and correct timing drift. SRT, WebVTT, ASS/SSA and
JSON are read and written; output goes to stdout unless -o is given.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger = logging.NewLogger(verbose)

		path, _ := cmd.Flags().GetString("config")
		explicit := path != ""
		if !explicit {
			path = config.DefaultPath()
		}

		loaded, err := config.Load(path, explicit)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
		logger.Debugw("Loaded config", "path", path)
		return nil
	},
}

// Execute runs the command tree until it finishes or the process is
// interrupted.
func Execute() error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().
		BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		StringP("output", "o", "", "Output file path (default stdout)")
	rootCmd.PersistentFlags().
		String("format", "", "Output format: srt, vtt, ass, json (default from output extension or input)")
	rootCmd.PersistentFlags().
		String("input-format", "", "Input format (default from input extension, srt for stdin)")
	rootCmd.PersistentFlags().
		StringP("encoding", "e", "", "Character encoding of input and output (e.g. gbk, latin1)")
	rootCmd.PersistentFlags().
		Bool("strict", true, "Fail on malformed cues instead of skipping or repairing them")
	rootCmd.PersistentFlags().
		String("config", "", "Config file (default $XDG_CONFIG_HOME/subcut/config.yaml)")
	rootCmd.PersistentFlags().
		Bool("watch", false, "Rerun whenever an input file changes (needs -o)")
}
