package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/cocosip/go-dicom/pkg/dicom/parser"
	"github.com/cocosip/go-dicom/pkg/dicom/transfer"
	"github.com/cocosip/go-dicom/pkg/dicom/writer"
	"github.com/cocosip/go-dicom/pkg/imaging/codec"
	"github.com/spf13/cobra"
)

// NewTranscodeCmd rewrites a DICOM file to or from RLE Lossless through the
// go-dicom transcoder and the registered RLE codec
func NewTranscodeCmd(ctx context.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transcode",
		Short: "transcode a DICOM file to or from RLE Lossless",
		Long:  "Reads a DICOM file and writes it with RLE Lossless (--to rle) or Explicit VR Little Endian (--to explicit) pixel data.",
		RunE: func(cmd *cobra.Command, args []string) error {
			in, _ := cmd.Flags().GetString("in")
			out, _ := cmd.Flags().GetString("out")
			to, _ := cmd.Flags().GetString("to")
			if in == "" || out == "" {
				return fmt.Errorf("both -i and -o are required")
			}
			var target *transfer.Syntax
			switch to {
			case "rle":
				target = transfer.RLELossless
			case "explicit":
				target = transfer.ExplicitVRLittleEndian
			default:
				return fmt.Errorf("unknown target %q (rle|explicit)", to)
			}
			return transcodeFile(ctx, in, out, target)
		},
	}
	pf := cmd.PersistentFlags()
	pf.StringP("in", "i", "", "source DICOM file")
	pf.StringP("out", "o", "", "destination DICOM file")
	pf.String("to", "rle", "target transfer syntax (rle|explicit)")
	return cmd
}

func transcodeFile(ctx context.Context, inputPath, outputPath string, target *transfer.Syntax) error {
	res, err := parser.ParseFile(inputPath,
		parser.WithReadOption(parser.ReadAll),
		parser.WithLargeObjectSize(100*1024*1024),
	)
	if err != nil {
		return fmt.Errorf("failed to read DICOM file: %w", err)
	}
	source := res.TransferSyntax
	log := slog.With("source", source.UID().UID(), "target", target.UID().UID())

	if source.UID().UID() == target.UID().UID() {
		log.InfoContext(ctx, "already in target transfer syntax, copying")
		if err := writer.WriteFile(outputPath, res.Dataset, writer.WithTransferSyntax(source)); err != nil {
			return fmt.Errorf("failed to write file: %w", err)
		}
		return nil
	}

	transcoder := codec.NewTranscoder(source, target, codec.WithCodecRegistry(codec.GetGlobalRegistry()))
	ds, err := transcoder.Transcode(res.Dataset)
	if err != nil {
		return fmt.Errorf("transcode failed: %w", err)
	}
	if err := writer.WriteFile(outputPath, ds, writer.WithTransferSyntax(target)); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	if info, err := os.Stat(outputPath); err == nil {
		log.InfoContext(ctx, "transcoded", "output", outputPath, "bytes", info.Size())
	}
	return nil
}
