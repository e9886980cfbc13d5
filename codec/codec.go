package codec

// Codec is the universal interface for all image codecs
type Codec interface {
	// Encode encodes pixel data
	Encode(params EncodeParams) ([]byte, error)

	// Decode decodes compressed data
	Decode(data []byte) (*DecodeResult, error)

	// UID returns the unique identifier (typically DICOM Transfer Syntax UID)
	UID() string

	// Name returns a human-readable name
	Name() string
}

// EncodeParams contains parameters for encoding
type EncodeParams struct {
	PixelData           []byte  // Raw pixel data
	Width               int     // Image width
	Height              int     // Image height
	Components          int     // Number of color components (1=grayscale, 3=RGB)
	BitDepth            int     // Bits allocated per sample (8, 16, 32)
	PlanarConfiguration int     // 0=color-by-pixel, 1=color-by-plane
	Options             Options // Codec-specific options
}

// Options is an interface for codec-specific encoding options
type Options interface {
	// Validate checks if the options are valid
	Validate() error
}

// DecodeResult contains the result of decoding
type DecodeResult struct {
	PixelData           []byte // Decoded pixel data
	Width               int    // Image width
	Height              int    // Image height
	Components          int    // Number of color components
	BitDepth            int    // Bits allocated per sample
	PlanarConfiguration int    // Layout of PixelData
}

// Validate checks the geometry fields shared by every codec
func (p EncodeParams) Validate() error {
	if p.Width <= 0 || p.Height <= 0 || p.Components <= 0 || p.BitDepth <= 0 {
		return ErrInvalidParameter
	}
	if p.PlanarConfiguration != 0 && p.PlanarConfiguration != 1 {
		return ErrInvalidParameter
	}
	if p.Options != nil {
		return p.Options.Validate()
	}
	return nil
}
