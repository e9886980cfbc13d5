package rle

import (
	"fmt"
	"math"

	"github.com/hashicorp/go-multierror"
)

// MaxSegments is the number of offset slots in the RLE header
const MaxSegments = 15

// MaxFrameSize is the largest raw frame, in bytes, that can be described.
// Segment offsets are signed 32-bit values.
const MaxFrameSize = math.MaxInt32 - HeaderSize

// PlanarConfiguration mirrors DICOM (0028,0006)
type PlanarConfiguration uint16

const (
	// Interleaved stores samples color-by-pixel (R1 G1 B1 R2 G2 B2 ...)
	Interleaved PlanarConfiguration = 0
	// Planar stores samples color-by-plane (R1 R2 ... G1 G2 ... B1 B2 ...)
	Planar PlanarConfiguration = 1
)

// Attributes describes the frame a stream was (or will be) encoded from.
// The RLE stream itself does not carry them.
type Attributes struct {
	Width               uint32 // Columns (0028,0011)
	Height              uint32 // Rows (0028,0010)
	BitsAllocated       uint32 // (0028,0100)
	SamplesPerPixel     uint32 // (0028,0002)
	PlanarConfiguration PlanarConfiguration
}

// Validate reports every attribute that cannot describe an RLE frame.
// The returned error matches ErrInvalidGeometry.
func (a Attributes) Validate() error {
	var result *multierror.Error
	if a.Width == 0 || a.Height == 0 {
		result = multierror.Append(result,
			fmt.Errorf("%w: width/height has an invalid value [w: %d, h: %d]", ErrInvalidGeometry, a.Width, a.Height))
	}
	if a.BitsAllocated == 0 || a.SamplesPerPixel == 0 {
		result = multierror.Append(result,
			fmt.Errorf("%w: bits allocated/samples per pixel has an invalid value [allocated: %d, samples: %d]",
				ErrInvalidGeometry, a.BitsAllocated, a.SamplesPerPixel))
	}
	if a.PlanarConfiguration != Interleaved && a.PlanarConfiguration != Planar {
		result = multierror.Append(result,
			fmt.Errorf("%w: planar configuration must be 0 or 1, got %d", ErrInvalidGeometry, a.PlanarConfiguration))
	}
	if result == nil {
		if n := uint64(bytesAllocated(a.BitsAllocated)) * uint64(a.SamplesPerPixel); n > MaxSegments {
			result = multierror.Append(result,
				fmt.Errorf("%w: %d segments required, at most %d supported", ErrInvalidGeometry, n, MaxSegments))
		} else if pixels := uint64(a.Width) * uint64(a.Height); pixels > MaxFrameSize/n {
			result = multierror.Append(result,
				fmt.Errorf("%w: frame of %d pixels x %d bytes exceeds %d bytes", ErrInvalidGeometry, pixels, n, MaxFrameSize))
		}
	}
	return result.ErrorOrNil()
}

// Geometry holds the byte layout derived from Attributes
type Geometry struct {
	Attributes

	BytesAllocated   int // ceil(BitsAllocated/8)
	PixelCount       int // Width*Height
	FrameSize        int // PixelCount*BytesAllocated*SamplesPerPixel
	ImageByteSize    int // FrameSize rounded up to even
	NumberOfSegments int // BytesAllocated*SamplesPerPixel
}

// NewGeometry validates attrs and derives the frame layout
func NewGeometry(attrs Attributes) (*Geometry, error) {
	if err := attrs.Validate(); err != nil {
		return nil, err
	}

	g := &Geometry{
		Attributes:     attrs,
		BytesAllocated: bytesAllocated(attrs.BitsAllocated),
		PixelCount:     int(attrs.Width) * int(attrs.Height),
	}
	g.NumberOfSegments = g.BytesAllocated * int(attrs.SamplesPerPixel)
	g.FrameSize = g.PixelCount * g.NumberOfSegments
	g.ImageByteSize = g.FrameSize
	if g.ImageByteSize&1 == 1 {
		g.ImageByteSize++
	}
	return g, nil
}

func bytesAllocated(bits uint32) int {
	return int((uint64(bits) + 7) / 8)
}
