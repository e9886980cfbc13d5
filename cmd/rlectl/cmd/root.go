package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cocosip/go-dicom-rle/internal/logging"
)

// logOutput is the destination opened for the running command, closed when
// the command finishes
var logOutput io.WriteCloser

func init() {
	cobra.OnFinalize(closeLogOutput)
}

func closeLogOutput() {
	if logOutput == nil {
		return
	}
	if err := logOutput.Close(); err != nil {
		fmt.Fprintln(os.Stderr, "failed to close log output:", err)
	}
	logOutput = nil
}

func NewRoot(ctx context.Context, gitsha string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rlectl",
		Short: "encode, decode and inspect DICOM RLE Lossless streams",
		Long:  "rlectl converts raw frames to and from the segmented RLE Lossless format (1.2.840.10008.1.2.5)",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logLevel, _ := cmd.Flags().GetString("log-level")
			logFile, _ := cmd.Flags().GetString("log-file")
			logJSON, _ := cmd.Flags().GetBool("log-json")

			var level slog.Level
			err := level.UnmarshalText([]byte(strings.ToUpper(logLevel)))
			if err != nil {
				level = slog.LevelInfo
			}
			closeLogOutput()
			logOutput = logging.Output(logFile)
			slog.SetDefault(logging.Logger(logOutput, logJSON, level))
			if err != nil {
				slog.WarnContext(ctx, "invalid log level, defaulting to INFO", "level", logLevel, "error", err)
			}
		},
		Run: func(cmd *cobra.Command, args []string) {
			printCommandTree(cmd.OutOrStdout(), cmd, 0)
		},
		SilenceUsage: true,
	}
	cmd.AddCommand(
		NewVersionCmd(ctx, gitsha),
		NewEncodeCmd(ctx),
		NewDecodeCmd(ctx),
		NewInspectCmd(ctx),
		NewTranscodeCmd(ctx),
	)
	pf := cmd.PersistentFlags()
	pf.String("log-level", "INFO", "Log level (DEBUG, INFO, WARN, ERROR)")
	pf.String("log-file", "", "rotate logs into this file instead of stderr")
	pf.Bool("log-json", false, "emit logs as JSON")
	return cmd
}

func printCommandTree(w io.Writer, cmd *cobra.Command, indent int) {
	fmt.Fprintln(w, strings.Repeat("\t", indent), cmd.Use+":", cmd.Short)
	for _, subCmd := range cmd.Commands() {
		printCommandTree(w, subCmd, indent+1)
	}
}

func NewVersionCmd(ctx context.Context, gitsha string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "git sha for this build",
		Long:  "git sha for this build",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), gitsha)
		},
	}
	return cmd
}
