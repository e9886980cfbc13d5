package rle

import "fmt"

// Decoder expands RLE frames that share one geometry.
// It keeps no state between calls and is safe for concurrent use.
type Decoder struct {
	geometry *Geometry
}

// NewDecoder creates a decoder for frames described by attrs
func NewDecoder(attrs Attributes) (*Decoder, error) {
	g, err := NewGeometry(attrs)
	if err != nil {
		return nil, err
	}
	return &Decoder{geometry: g}, nil
}

// Decode expands an RLE byte stream into a raw frame of
// Width*Height*SamplesPerPixel*ceil(BitsAllocated/8) bytes
func Decode(encoded []byte, attrs Attributes) ([]byte, error) {
	dec, err := NewDecoder(attrs)
	if err != nil {
		return nil, err
	}
	return dec.Decode(encoded)
}

// Geometry returns the layout frames are decoded into
func (dec *Decoder) Geometry() *Geometry {
	return dec.geometry
}

// Decode expands one frame
func (dec *Decoder) Decode(encoded []byte) ([]byte, error) {
	g := dec.geometry

	header, err := ParseHeader(encoded)
	if err != nil {
		return nil, err
	}
	if int64(header.NumberOfSegments) != int64(g.NumberOfSegments) {
		return nil, fmt.Errorf("%w [expected: %d, got: %d]",
			ErrSegmentCountMismatch, g.NumberOfSegments, header.NumberOfSegments)
	}

	// The working buffer keeps the even pad byte so a padded last run still fits
	decoded := make([]byte, g.ImageByteSize)
	for s := 0; s < g.NumberOfSegments; s++ {
		start, stride, err := g.SegmentLayout(s)
		if err != nil {
			return nil, err
		}
		offset, length, err := header.SegmentRange(s, len(encoded))
		if err != nil {
			return nil, err
		}
		if at, err := decodeSegment(decoded, start, stride, encoded[offset:offset+length]); err != nil {
			return nil, &SegmentError{Segment: s, Position: offset + at, Err: err}
		}
	}
	return decoded[:g.FrameSize], nil
}
