package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/gocarina/gocsv"
	"github.com/spf13/cobra"

	"github.com/cocosip/go-dicom-rle/rle"
)

// NewInspectCmd prints the segment table of an RLE stream
func NewInspectCmd(ctx context.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "print the RLE header and segment table",
		Long:  "Parses the 64 byte RLE header and prints each segment's offset and length.",
		RunE: func(cmd *cobra.Command, args []string) error {
			in, _ := cmd.Flags().GetString("in")
			if in == "" && len(args) > 0 {
				in = args[0]
			}
			encoded, err := readInput(cmd, in)
			if err != nil {
				return err
			}
			header, segments, err := rle.Inspect(encoded)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			switch format, _ := cmd.Flags().GetString("format"); format {
			case "text":
				fmt.Fprintf(w, "stream length: %d\n", len(encoded))
				fmt.Fprintf(w, "segments: %d\n", header.NumberOfSegments)
				for _, s := range segments {
					fmt.Fprintf(w, "  %2d  offset %8d  length %8d\n", s.Index, s.Offset, s.Length)
				}
			case "json":
				j, err := json.Marshal(segments)
				if err != nil {
					return err
				}
				fmt.Fprintln(w, string(j))
			case "csv":
				return gocsv.Marshal(segments, w)
			default:
				return fmt.Errorf("unknown format %q (text|json|csv)", format)
			}
			return nil
		},
	}
	pf := cmd.PersistentFlags()
	pf.StringP("in", "i", "", "RLE stream path (- for stdin)")
	pf.StringP("format", "f", "text", "output format (text|json|csv)")
	return cmd
}
