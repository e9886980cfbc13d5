package cmd

import (
	"fmt"

	"github.com/cocosip/go-dicom/pkg/dicom/parser"
	"github.com/cocosip/go-dicom/pkg/dicom/tag"
	"github.com/spf13/cobra"

	"github.com/cocosip/go-dicom-rle/rle"
)

func addGeometryFlags(cmd *cobra.Command) {
	pf := cmd.PersistentFlags()
	pf.Uint32("width", 0, "frame width (Columns)")
	pf.Uint32("height", 0, "frame height (Rows)")
	pf.Uint32("bits-allocated", 8, "bits allocated per sample")
	pf.Uint32("samples-per-pixel", 1, "samples per pixel")
	pf.Uint16("planar-configuration", 0, "0 = interleaved, 1 = planar")
	pf.String("dicom", "", "take the geometry from this DICOM file instead of flags")
}

// attributesFromFlags builds the frame attributes from --dicom when set,
// otherwise from the individual geometry flags
func attributesFromFlags(cmd *cobra.Command) (rle.Attributes, error) {
	if path, _ := cmd.Flags().GetString("dicom"); path != "" {
		return attributesFromDICOM(path)
	}
	var attrs rle.Attributes
	attrs.Width, _ = cmd.Flags().GetUint32("width")
	attrs.Height, _ = cmd.Flags().GetUint32("height")
	attrs.BitsAllocated, _ = cmd.Flags().GetUint32("bits-allocated")
	attrs.SamplesPerPixel, _ = cmd.Flags().GetUint32("samples-per-pixel")
	pc, _ := cmd.Flags().GetUint16("planar-configuration")
	attrs.PlanarConfiguration = rle.PlanarConfiguration(pc)
	return attrs, attrs.Validate()
}

func attributesFromDICOM(path string) (rle.Attributes, error) {
	result, err := parser.ParseFile(path, parser.WithReadOption(parser.ReadAll))
	if err != nil {
		return rle.Attributes{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	ds := result.Dataset
	attrs := rle.Attributes{
		Width:               uint32(ds.TryGetUInt16(tag.Columns, 0)),
		Height:              uint32(ds.TryGetUInt16(tag.Rows, 0)),
		BitsAllocated:       uint32(ds.TryGetUInt16(tag.BitsAllocated, 0)),
		SamplesPerPixel:     uint32(ds.TryGetUInt16(tag.SamplesPerPixel, 1)),
		PlanarConfiguration: rle.PlanarConfiguration(ds.TryGetUInt16(tag.PlanarConfiguration, 0)),
	}
	return attrs, attrs.Validate()
}
