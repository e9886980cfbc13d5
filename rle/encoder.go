package rle

import (
	"fmt"
	"math"
)

// Encoder compresses frames that share one geometry.
// It keeps no state between calls and is safe for concurrent use.
type Encoder struct {
	geometry *Geometry
}

// NewEncoder creates an encoder for frames described by attrs
func NewEncoder(attrs Attributes) (*Encoder, error) {
	g, err := NewGeometry(attrs)
	if err != nil {
		return nil, err
	}
	return &Encoder{geometry: g}, nil
}

// Encode compresses pixelData to an RLE byte stream.
// pixelData: raw frame, interleaved or planar as attrs.PlanarConfiguration says
// Returns: 64-byte header followed by one token stream per segment
func Encode(pixelData []byte, attrs Attributes) ([]byte, error) {
	enc, err := NewEncoder(attrs)
	if err != nil {
		return nil, err
	}
	return enc.Encode(pixelData)
}

// Geometry returns the layout frames are encoded with
func (enc *Encoder) Geometry() *Geometry {
	return enc.geometry
}

// Encode compresses one frame
func (enc *Encoder) Encode(pixelData []byte) ([]byte, error) {
	g := enc.geometry

	// Reserve the header so segment offsets come out absolute
	run := newRunEncoder(HeaderSize + g.ImageByteSize)
	run.out = run.out[:HeaderSize]

	header := Header{NumberOfSegments: uint32(g.NumberOfSegments)}
	for s := 0; s < g.NumberOfSegments; s++ {
		pos, stride, err := g.SegmentLayout(s)
		if err != nil {
			return nil, err
		}

		run.padEven()
		if header.Offsets[s], err = segmentOffset(int64(len(run.out))); err != nil {
			return nil, err
		}

		for p := 0; p < g.PixelCount; p++ {
			if pos >= len(pixelData) {
				return nil, &SegmentError{Segment: s, Position: pos, Err: ErrBufferOverrun}
			}
			run.writeByte(pixelData[pos])
			pos += stride
		}
		run.flush()
	}
	run.padEven()

	if err := header.put(run.out); err != nil {
		return nil, err
	}
	return run.out, nil
}

// segmentOffset converts a stream position into a header offset
func segmentOffset(pos int64) (int32, error) {
	if pos > math.MaxInt32 {
		return 0, fmt.Errorf("%w [offset: %d]", ErrStreamTooLarge, pos)
	}
	return int32(pos), nil
}
