package rle

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidGeometry is returned when image attributes cannot describe an RLE frame
	ErrInvalidGeometry = errors.New("rle: invalid image geometry")

	// ErrSegmentOutOfRange is returned for a segment index outside the segment table
	ErrSegmentOutOfRange = errors.New("rle: segment number out of range")

	// ErrBufferOverrun is returned when the encoder reads past the end of the frame buffer
	ErrBufferOverrun = errors.New("rle: read position is past end of frame buffer")

	// ErrTruncatedHeader is returned when the encoded stream is shorter than the RLE header
	ErrTruncatedHeader = errors.New("rle: data too short for header")

	// ErrSegmentCountMismatch is returned when the header disagrees with the image geometry
	ErrSegmentCountMismatch = errors.New("rle: unexpected number of segments")

	// ErrStreamTooLarge is returned when a segment would start beyond a 32-bit header offset
	ErrStreamTooLarge = errors.New("rle: encoded stream too large for segment offsets")

	// ErrInvalidSegmentOffset is returned when a segment offset points outside the stream
	ErrInvalidSegmentOffset = errors.New("rle: invalid segment offset")

	ErrTruncatedLiteralRun   = errors.New("rle: literal run exceeds input buffer length")
	ErrTruncatedReplicateRun = errors.New("rle: replicate run is missing its value byte")
	ErrOutputOverrun         = errors.New("rle: run exceeds output buffer length")

	// ErrReservedControl is returned for the unused control byte -128
	ErrReservedControl = errors.New("rle: reserved control byte")

	// ErrGeometryRequired is returned when a registry codec is asked to decode without geometry
	ErrGeometryRequired = errors.New("rle: decoding requires image geometry")
)

// SegmentError reports a failure inside one segment together with the
// offending position. Position is a pixel buffer index for encode failures
// and a token stream index for decode failures.
type SegmentError struct {
	Segment  int
	Position int
	Err      error
}

func (e *SegmentError) Error() string {
	return fmt.Sprintf("%v [segment: %d, position: %d]", e.Err, e.Segment, e.Position)
}

func (e *SegmentError) Unwrap() error {
	return e.Err
}
