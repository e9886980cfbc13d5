package cmd

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/cocosip/go-dicom-rle/rle"
)

// NewEncodeCmd compresses one raw frame into an RLE stream
func NewEncodeCmd(ctx context.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "encode",
		Short: "RLE encode a raw frame",
		Long:  "Compresses one uncompressed frame (native byte order, little endian) into an RLE Lossless stream.",
		RunE: func(cmd *cobra.Command, args []string) error {
			attrs, err := attributesFromFlags(cmd)
			if err != nil {
				return err
			}
			in, _ := cmd.Flags().GetString("in")
			out, _ := cmd.Flags().GetString("out")
			raw, err := readInput(cmd, in)
			if err != nil {
				return err
			}
			enc, err := rle.NewEncoder(attrs)
			if err != nil {
				return err
			}
			encoded, err := enc.Encode(raw)
			if err != nil {
				return err
			}
			slog.InfoContext(ctx, "encoded frame",
				"segments", enc.Geometry().NumberOfSegments,
				"raw", len(raw),
				"encoded", len(encoded))
			return writeOutput(cmd, out, encoded)
		},
	}
	pf := cmd.PersistentFlags()
	pf.StringP("in", "i", "", "raw frame path (- for stdin)")
	pf.StringP("out", "o", "", "RLE stream path (- for stdout)")
	addGeometryFlags(cmd)
	return cmd
}
