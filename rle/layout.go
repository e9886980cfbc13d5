package rle

import "fmt"

// SegmentLayout returns where segment s lives in the frame buffer: the index
// of its first byte and the distance between consecutive bytes. Segments are
// ordered most significant byte first within each sample.
func (g *Geometry) SegmentLayout(s int) (start, stride int, err error) {
	if s < 0 || s >= g.NumberOfSegments {
		return 0, 0, fmt.Errorf("%w [segment: %d, segments: %d]", ErrSegmentOutOfRange, s, g.NumberOfSegments)
	}

	sample := s / g.BytesAllocated
	sampleByte := s % g.BytesAllocated

	if g.PlanarConfiguration == Interleaved {
		start = sample * g.BytesAllocated
		stride = int(g.SamplesPerPixel) * g.BytesAllocated
	} else {
		start = sample * g.BytesAllocated * g.PixelCount
		stride = g.BytesAllocated
	}
	start += g.BytesAllocated - sampleByte - 1
	return start, stride, nil
}
