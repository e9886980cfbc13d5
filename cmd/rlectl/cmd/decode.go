package cmd

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/cocosip/go-dicom-rle/rle"
)

// NewDecodeCmd expands an RLE stream back into a raw frame
func NewDecodeCmd(ctx context.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decode",
		Short: "RLE decode a stream",
		Long:  "Decompresses one RLE Lossless stream into the raw frame. The stream does not carry its geometry, so it must be given.",
		RunE: func(cmd *cobra.Command, args []string) error {
			attrs, err := attributesFromFlags(cmd)
			if err != nil {
				return err
			}
			in, _ := cmd.Flags().GetString("in")
			out, _ := cmd.Flags().GetString("out")
			encoded, err := readInput(cmd, in)
			if err != nil {
				return err
			}
			raw, err := rle.Decode(encoded, attrs)
			if err != nil {
				return err
			}
			slog.InfoContext(ctx, "decoded frame", "encoded", len(encoded), "raw", len(raw))
			return writeOutput(cmd, out, raw)
		},
	}
	pf := cmd.PersistentFlags()
	pf.StringP("in", "i", "", "RLE stream path (- for stdin)")
	pf.StringP("out", "o", "", "raw frame path (- for stdout)")
	addGeometryFlags(cmd)
	return cmd
}
