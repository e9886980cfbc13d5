package rle

import (
	"fmt"
	"log/slog"

	"github.com/cocosip/go-dicom/pkg/dicom/transfer"
	"github.com/cocosip/go-dicom/pkg/imaging/codec"
	"github.com/cocosip/go-dicom/pkg/imaging/imagetypes"
)

var _ codec.Codec = (*RLELosslessCodec)(nil)

const rleLosslessName = "RLE Lossless"

// RLELosslessCodec implements the go-dicom codec.Codec interface for RLE Lossless
// Transfer Syntax UID: 1.2.840.10008.1.2.5
type RLELosslessCodec struct {
	transferSyntax *transfer.Syntax
}

// NewRLELosslessCodec creates a new RLE Lossless codec
func NewRLELosslessCodec() *RLELosslessCodec {
	return &RLELosslessCodec{
		transferSyntax: transfer.RLELossless,
	}
}

// Name returns the codec name
func (c *RLELosslessCodec) Name() string {
	return rleLosslessName
}

// TransferSyntax returns the transfer syntax this codec handles
func (c *RLELosslessCodec) TransferSyntax() *transfer.Syntax {
	return c.transferSyntax
}

// GetDefaultParameters returns the default codec parameters
func (c *RLELosslessCodec) GetDefaultParameters() codec.Parameters {
	return NewRLEParameters()
}

// Encode encodes every frame of oldPixelData into newPixelData
func (c *RLELosslessCodec) Encode(oldPixelData imagetypes.PixelData, newPixelData imagetypes.PixelData, parameters codec.Parameters) error {
	attrs, err := c.frameAttributes(oldPixelData, newPixelData, parameters)
	if err != nil {
		return err
	}
	encoder, err := NewEncoder(attrs)
	if err != nil {
		return fmt.Errorf("RLE encode: %w", err)
	}

	return c.eachFrame(oldPixelData, func(frameIndex int, frameData []byte) error {
		encoded, err := encoder.Encode(frameData)
		if err != nil {
			return fmt.Errorf("RLE encode failed for frame %d: %w", frameIndex, err)
		}
		slog.Debug("rle: encoded frame", "frame", frameIndex, "raw", len(frameData), "encoded", len(encoded))
		if err := newPixelData.AddFrame(encoded); err != nil {
			return fmt.Errorf("failed to add encoded frame %d: %w", frameIndex, err)
		}
		return nil
	})
}

// Decode decodes every RLE frame of oldPixelData into newPixelData
func (c *RLELosslessCodec) Decode(oldPixelData imagetypes.PixelData, newPixelData imagetypes.PixelData, parameters codec.Parameters) error {
	attrs, err := c.frameAttributes(oldPixelData, newPixelData, parameters)
	if err != nil {
		return err
	}
	decoder, err := NewDecoder(attrs)
	if err != nil {
		return fmt.Errorf("RLE decode: %w", err)
	}

	return c.eachFrame(oldPixelData, func(frameIndex int, frameData []byte) error {
		decoded, err := decoder.Decode(frameData)
		if err != nil {
			return fmt.Errorf("RLE decode failed for frame %d: %w", frameIndex, err)
		}
		slog.Debug("rle: decoded frame", "frame", frameIndex, "encoded", len(frameData), "raw", len(decoded))
		if err := newPixelData.AddFrame(decoded); err != nil {
			return fmt.Errorf("failed to add decoded frame %d: %w", frameIndex, err)
		}
		return nil
	})
}

func (c *RLELosslessCodec) frameAttributes(oldPixelData, newPixelData imagetypes.PixelData, parameters codec.Parameters) (Attributes, error) {
	if oldPixelData == nil || newPixelData == nil {
		return Attributes{}, fmt.Errorf("source and destination PixelData cannot be nil")
	}
	frameInfo := oldPixelData.GetFrameInfo()
	if frameInfo == nil {
		return Attributes{}, fmt.Errorf("failed to get frame info from source pixel data")
	}

	params := c.extractParameters(parameters)
	if err := params.Validate(); err != nil {
		return Attributes{}, fmt.Errorf("invalid RLE parameters: %w", err)
	}
	return params.apply(attributesFromFrameInfo(frameInfo)), nil
}

func (c *RLELosslessCodec) extractParameters(parameters codec.Parameters) *RLEParameters {
	if parameters == nil {
		return NewRLEParameters()
	}
	if rp, ok := parameters.(*RLEParameters); ok {
		return rp
	}
	rleParams := NewRLEParameters()
	if v := parameters.GetParameter("planarConfiguration"); v != nil {
		if pc, ok := v.(int); ok {
			rleParams.PlanarConfiguration = pc
		}
	}
	return rleParams
}

func (c *RLELosslessCodec) eachFrame(pixelData imagetypes.PixelData, fn func(frameIndex int, frameData []byte) error) error {
	frameCount := pixelData.FrameCount()
	if frameCount == 0 {
		return fmt.Errorf("source pixel data is empty (no frames)")
	}
	for frameIndex := 0; frameIndex < frameCount; frameIndex++ {
		frameData, err := pixelData.GetFrame(frameIndex)
		if err != nil {
			return fmt.Errorf("failed to get frame %d: %w", frameIndex, err)
		}
		if len(frameData) == 0 {
			return fmt.Errorf("frame %d pixel data is empty", frameIndex)
		}
		if err := fn(frameIndex, frameData); err != nil {
			return err
		}
	}
	return nil
}

func attributesFromFrameInfo(frameInfo *imagetypes.FrameInfo) Attributes {
	return Attributes{
		Width:               uint32(frameInfo.Width),
		Height:              uint32(frameInfo.Height),
		BitsAllocated:       uint32(frameInfo.BitsAllocated),
		SamplesPerPixel:     uint32(frameInfo.SamplesPerPixel),
		PlanarConfiguration: PlanarConfiguration(frameInfo.PlanarConfiguration),
	}
}

// RegisterRLELosslessCodec registers the RLE Lossless codec with the global registry
func RegisterRLELosslessCodec() {
	registry := codec.GetGlobalRegistry()
	registry.RegisterCodec(transfer.RLELossless, NewRLELosslessCodec())
}

func init() {
	RegisterRLELosslessCodec()
}
