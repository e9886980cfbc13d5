package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

// readInput reads the named file, or the command's stdin for "-"
func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	switch path {
	case "":
		return nil, fmt.Errorf("input path is required, use -i (or - for stdin)")
	case "-":
		return io.ReadAll(cmd.InOrStdin())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	return data, nil
}

// writeOutput writes data to the named file, or the command's stdout for "-"
func writeOutput(cmd *cobra.Command, path string, data []byte) error {
	switch path {
	case "":
		return fmt.Errorf("output path is required, use -o (or - for stdout)")
	case "-":
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
