package rle

import (
	"encoding/binary"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// makeFrame builds a header with the given count and offsets followed by body
func makeFrame(count uint32, offsets []int32, body ...byte) []byte {
	data := make([]byte, HeaderSize, HeaderSize+len(body))
	binary.LittleEndian.PutUint32(data, count)
	for i, off := range offsets {
		binary.LittleEndian.PutUint32(data[4+i*4:], uint32(off))
	}
	return append(data, body...)
}

var gray3x3 = Attributes{Width: 3, Height: 3, BitsAllocated: 8, SamplesPerPixel: 1}

var golden3x3Raw = []byte{
	0x00, 0xFF, 0x00,
	0xFF, 0x00, 0xFF,
	0x00, 0xFF, 0x00,
}

var golden3x3Encoded = makeFrame(1, []int32{0x40},
	0x08, 0x00, 0xFF, 0x00, 0xFF, 0x00, 0xFF, 0x00, 0xFF, 0x00)

func TestDecode_Golden(t *testing.T) {
	decoded, err := Decode(golden3x3Encoded, gray3x3)
	require.NoError(t, err)
	assert.Equal(t, golden3x3Raw, decoded)
}

func TestDecode_InvalidAttributes(t *testing.T) {
	tests := []struct {
		name  string
		attrs Attributes
	}{
		{"MissingHeight", Attributes{Width: 3, BitsAllocated: 8, SamplesPerPixel: 1}},
		{"MissingSamplesPerPixel", Attributes{Width: 3, Height: 3, BitsAllocated: 8}},
		{"FrameTooLarge", Attributes{Width: 0xFFFFFFFF, Height: 0xFFFFFFFF, BitsAllocated: 8, SamplesPerPixel: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// one segment, matching a single byte per pixel
			_, err := Decode(golden3x3Encoded, tt.attrs)
			assert.ErrorIs(t, err, ErrInvalidGeometry)
		})
	}
}

func TestDecode_SegmentCountMismatch(t *testing.T) {
	data := makeFrame(2, []int32{0x40})
	_, err := Decode(data, gray3x3)
	require.ErrorIs(t, err, ErrSegmentCountMismatch)
	assert.Contains(t, err.Error(), "expected: 1, got: 2")
}

func TestDecode_TruncatedHeader(t *testing.T) {
	_, err := Decode(golden3x3Encoded[:HeaderSize-1], gray3x3)
	assert.ErrorIs(t, err, ErrTruncatedHeader)
}

func TestDecode_InvalidSegmentOffset(t *testing.T) {
	tests := []struct {
		name    string
		offsets []int32
	}{
		{"InsideHeader", []int32{0x10}},
		{"Negative", []int32{-4}},
		{"PastEnd", []int32{0x1000}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(makeFrame(1, tt.offsets, 0x00, 0x01), Attributes{Width: 1, Height: 1, BitsAllocated: 8, SamplesPerPixel: 1})
			assert.ErrorIs(t, err, ErrInvalidSegmentOffset)
		})
	}

	t.Run("Decreasing", func(t *testing.T) {
		attrs := Attributes{Width: 1, Height: 1, BitsAllocated: 16, SamplesPerPixel: 1}
		_, err := Decode(makeFrame(2, []int32{0x42, 0x40}, 0x00, 0x01, 0x00, 0x02), attrs)
		assert.ErrorIs(t, err, ErrInvalidSegmentOffset)
	})
}

func TestDecode_RunErrors(t *testing.T) {
	gray1x1 := Attributes{Width: 1, Height: 1, BitsAllocated: 8, SamplesPerPixel: 1}

	tests := []struct {
		name    string
		attrs   Attributes
		body    []byte
		wantErr error
	}{
		{"TruncatedLiteral", gray3x3, []byte{0x02, 0x01}, ErrTruncatedLiteralRun},
		{"TruncatedLiteralBoundary", gray3x3, []byte{0x00}, ErrTruncatedLiteralRun},
		{"TruncatedReplicate", gray3x3, []byte{0xFE}, ErrTruncatedReplicateRun},
		{"LiteralOverrun", gray1x1, []byte{0x02, 0x01, 0x02, 0x03}, ErrOutputOverrun},
		{"ReplicateOverrun", gray1x1, []byte{0xFE, 0x07}, ErrOutputOverrun},
		{"ReservedControl", gray3x3, []byte{0x80, 0x00}, ErrReservedControl},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(makeFrame(1, []int32{0x40}, tt.body...), tt.attrs)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)

			var segErr *SegmentError
			require.True(t, errors.As(err, &segErr))
			assert.Equal(t, 0, segErr.Segment)
			assert.Equal(t, HeaderSize, segErr.Position)
		})
	}
}

func TestDecode_ErrorReportsSegmentAndPosition(t *testing.T) {
	attrs := Attributes{Width: 2, Height: 1, BitsAllocated: 16, SamplesPerPixel: 1}
	// segment 0 is fine, segment 1 has a valid literal followed by a truncated one
	data := makeFrame(2, []int32{0x40, 0x44},
		0xFF, 0x01, 0x00, 0x00,
		0x00, 0x02, 0x05, 0x03)
	_, err := Decode(data, attrs)

	var segErr *SegmentError
	require.True(t, errors.As(err, &segErr))
	assert.Equal(t, 1, segErr.Segment)
	assert.Equal(t, 0x46, segErr.Position)
	assert.ErrorIs(t, err, ErrTruncatedLiteralRun)
}

func TestDecode_TrailingPadByteIgnored(t *testing.T) {
	attrs := Attributes{Width: 1, Height: 1, BitsAllocated: 8, SamplesPerPixel: 1}
	decoded, err := Decode(makeFrame(1, []int32{0x40}, 0x00, 0xAA, 0x00), attrs)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xAA}, decoded)
}

func TestDecode_StopsWhenOutputFull(t *testing.T) {
	attrs := Attributes{Width: 2, Height: 1, BitsAllocated: 8, SamplesPerPixel: 1}
	// The second token would overrun, but the output is already complete
	decoded, err := Decode(makeFrame(1, []int32{0x40}, 0xFF, 0x09, 0xFE, 0x01), attrs)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x09, 0x09}, decoded)
}

func TestDecode_StridedSegments(t *testing.T) {
	// 2x1 RGB, interleaved: each segment is one color plane
	attrs := Attributes{Width: 2, Height: 1, BitsAllocated: 8, SamplesPerPixel: 3}
	data := makeFrame(3, []int32{0x40, 0x42, 0x44},
		0xFF, 0x10,
		0xFF, 0x20,
		0x01, 0x30, 0x31)
	decoded, err := Decode(data, attrs)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x10, 0x20, 0x30, 0x10, 0x20, 0x31}, decoded)

	attrs.PlanarConfiguration = Planar
	decoded, err = Decode(data, attrs)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x10, 0x10, 0x20, 0x20, 0x30, 0x31}, decoded)
}
