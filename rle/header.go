package rle

import (
	"encoding/binary"
	"fmt"

	"github.com/noxer/bytewriter"
)

// HeaderSize is the fixed size of the RLE header: a segment count followed by
// MaxSegments offsets, all 32-bit little endian.
const HeaderSize = 4 + MaxSegments*4

// Header is the segment table at the start of every RLE frame.
// Offsets are absolute from the start of the frame; unused slots are zero.
type Header struct {
	NumberOfSegments uint32
	Offsets          [MaxSegments]int32
}

// MarshalBinary encodes the header into its 64-byte wire form
func (h *Header) MarshalBinary() ([]byte, error) {
	data := make([]byte, HeaderSize)
	if err := h.put(data); err != nil {
		return nil, err
	}
	return data, nil
}

// put writes the header into the first HeaderSize bytes of dst
func (h *Header) put(dst []byte) error {
	w := bytewriter.New(dst[:HeaderSize])
	if err := binary.Write(w, binary.LittleEndian, h.NumberOfSegments); err != nil {
		return fmt.Errorf("rle: failed to write segment count: %w", err)
	}
	if err := binary.Write(w, binary.LittleEndian, h.Offsets); err != nil {
		return fmt.Errorf("rle: failed to write segment offsets: %w", err)
	}
	return nil
}

// ParseHeader reads the segment table from the start of an RLE frame.
// It does not check the offsets; SegmentRange does that per segment.
func ParseHeader(data []byte) (*Header, error) {
	if len(data) < HeaderSize {
		return nil, fmt.Errorf("%w [length: %d, want: %d]", ErrTruncatedHeader, len(data), HeaderSize)
	}

	h := &Header{
		NumberOfSegments: binary.LittleEndian.Uint32(data[0:4]),
	}
	for i := range h.Offsets {
		h.Offsets[i] = int32(binary.LittleEndian.Uint32(data[4+i*4:]))
	}
	return h, nil
}

// SegmentRange returns the position and length of segment s inside a stream
// of streamLen bytes. A segment ends where the next one starts; the last one
// runs to the end of the stream.
func (h *Header) SegmentRange(s, streamLen int) (offset, length int, err error) {
	count := int(h.NumberOfSegments)
	if s < 0 || s >= count || s >= MaxSegments {
		return 0, 0, fmt.Errorf("%w [segment: %d, segments: %d]", ErrSegmentOutOfRange, s, count)
	}

	offset = int(h.Offsets[s])
	end := streamLen
	if s < count-1 && s+1 < MaxSegments {
		end = int(h.Offsets[s+1])
	}

	if offset < HeaderSize || offset > streamLen || end < offset || end > streamLen {
		return 0, 0, fmt.Errorf("%w [segment: %d, offset: %d, end: %d, length: %d]",
			ErrInvalidSegmentOffset, s, offset, end, streamLen)
	}
	return offset, end - offset, nil
}

// SegmentInfo describes one segment of an encoded frame
type SegmentInfo struct {
	Index  int `json:"index" csv:"segment"`
	Offset int `json:"offset" csv:"offset"`
	Length int `json:"length" csv:"length"`
}

// Inspect parses the header of an encoded frame and resolves every segment's
// byte range without decoding any tokens.
func Inspect(encoded []byte) (*Header, []SegmentInfo, error) {
	h, err := ParseHeader(encoded)
	if err != nil {
		return nil, nil, err
	}
	if h.NumberOfSegments == 0 || h.NumberOfSegments > MaxSegments {
		return nil, nil, fmt.Errorf("%w [got: %d, supported: 1-%d]", ErrSegmentCountMismatch, h.NumberOfSegments, MaxSegments)
	}

	segments := make([]SegmentInfo, 0, h.NumberOfSegments)
	for s := 0; s < int(h.NumberOfSegments); s++ {
		offset, length, err := h.SegmentRange(s, len(encoded))
		if err != nil {
			return nil, nil, err
		}
		segments = append(segments, SegmentInfo{Index: s, Offset: offset, Length: length})
	}
	return h, segments, nil
}
