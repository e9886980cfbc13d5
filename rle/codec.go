package rle

import (
	"github.com/cocosip/go-dicom-rle/codec"
	"github.com/cocosip/go-dicom/pkg/dicom/transfer"
)

const codecName = "rle-lossless"

// Codec implements the codec.Codec interface for RLE Lossless.
// RLE frames do not record their geometry, so Decode only works on a codec
// bound to Attributes with NewCodecFor.
type Codec struct {
	attrs *Attributes
}

// NewCodec creates an RLE Lossless codec that can encode any frame
func NewCodec() *Codec {
	return &Codec{}
}

// NewCodecFor creates an RLE Lossless codec that decodes frames described by attrs
func NewCodecFor(attrs Attributes) *Codec {
	return &Codec{attrs: &attrs}
}

// Encode encodes pixel data using RLE Lossless
func (c *Codec) Encode(params codec.EncodeParams) ([]byte, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	return Encode(params.PixelData, Attributes{
		Width:               uint32(params.Width),
		Height:              uint32(params.Height),
		BitsAllocated:       uint32(params.BitDepth),
		SamplesPerPixel:     uint32(params.Components),
		PlanarConfiguration: PlanarConfiguration(params.PlanarConfiguration),
	})
}

// Decode decodes RLE Lossless data
func (c *Codec) Decode(data []byte) (*codec.DecodeResult, error) {
	if c.attrs == nil {
		return nil, ErrGeometryRequired
	}

	pixelData, err := Decode(data, *c.attrs)
	if err != nil {
		return nil, err
	}

	return &codec.DecodeResult{
		PixelData:           pixelData,
		Width:               int(c.attrs.Width),
		Height:              int(c.attrs.Height),
		Components:          int(c.attrs.SamplesPerPixel),
		BitDepth:            int(c.attrs.BitsAllocated),
		PlanarConfiguration: int(c.attrs.PlanarConfiguration),
	}, nil
}

// UID returns the DICOM Transfer Syntax UID for RLE Lossless
func (c *Codec) UID() string {
	return transfer.RLELossless.UID().UID()
}

// Name returns the human-readable name
func (c *Codec) Name() string {
	return codecName
}

func init() {
	codec.Register(NewCodec())
}
