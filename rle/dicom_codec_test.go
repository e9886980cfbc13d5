package rle

import (
	"bytes"
	"errors"
	"testing"

	codecHelpers "github.com/cocosip/go-dicom-rle/codec"
	"github.com/cocosip/go-dicom/pkg/dicom/transfer"
	"github.com/cocosip/go-dicom/pkg/imaging/codec"
	"github.com/cocosip/go-dicom/pkg/imaging/imagetypes"
)

func TestRLELosslessCodecInterface(t *testing.T) {
	c := NewRLELosslessCodec()

	var _ codec.Codec = c

	if c.Name() != "RLE Lossless" {
		t.Errorf("Name() = %q, want %q", c.Name(), "RLE Lossless")
	}

	ts := c.TransferSyntax()
	if ts == nil {
		t.Fatal("Transfer syntax should not be nil")
	}
	if ts.UID().UID() != transfer.RLELossless.UID().UID() {
		t.Errorf("Transfer syntax UID mismatch: got %s, want %s",
			ts.UID().UID(), transfer.RLELossless.UID().UID())
	}

	if _, ok := c.GetDefaultParameters().(*RLEParameters); !ok {
		t.Errorf("GetDefaultParameters() returned %T, want *RLEParameters", c.GetDefaultParameters())
	}
}

func TestRLELosslessCodecRegistry(t *testing.T) {
	registry := codec.GetGlobalRegistry()
	retrieved, exists := registry.GetCodec(transfer.RLELossless)
	if !exists {
		t.Fatal("RLE Lossless codec not found in registry")
	}
	// replaces go-dicom's built-in RLE codec of the same name
	if _, ok := retrieved.(*RLELosslessCodec); !ok {
		t.Errorf("Registered codec is %T, want *RLELosslessCodec", retrieved)
	}
}

func TestRLELosslessCodecMultiFrame(t *testing.T) {
	width, height := uint16(48), uint16(40)
	frameInfo := &imagetypes.FrameInfo{
		Width:                     width,
		Height:                    height,
		BitsAllocated:             16,
		BitsStored:                12,
		HighBit:                   11,
		SamplesPerPixel:           1,
		PixelRepresentation:       0,
		PlanarConfiguration:       0,
		PhotometricInterpretation: "MONOCHROME2",
	}

	frameSize := int(width) * int(height) * 2
	src := codecHelpers.NewTestPixelData(frameInfo)
	frames := make([][]byte, 3)
	for f := range frames {
		frames[f] = make([]byte, frameSize)
		for i := 0; i < frameSize; i += 2 {
			v := uint16((i/2)%int(width)*16 + f*100)
			frames[f][i] = byte(v)
			frames[f][i+1] = byte(v >> 8)
		}
		if err := src.AddFrame(frames[f]); err != nil {
			t.Fatalf("AddFrame failed: %v", err)
		}
	}

	c := NewRLELosslessCodec()

	encoded := codecHelpers.NewEncapsulatedTestPixelData(frameInfo)
	if err := c.Encode(src, encoded, nil); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if encoded.FrameCount() != len(frames) {
		t.Fatalf("Encoded frame count = %d, want %d", encoded.FrameCount(), len(frames))
	}

	decoded := codecHelpers.NewTestPixelData(frameInfo)
	if err := c.Decode(encoded, decoded, nil); err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	for f := range frames {
		got, err := decoded.GetFrame(f)
		if err != nil {
			t.Fatalf("GetFrame(%d) failed: %v", f, err)
		}
		if !bytes.Equal(got, frames[f]) {
			t.Errorf("Frame %d does not round trip", f)
		}
	}
}

func TestRLELosslessCodecPlanarParameter(t *testing.T) {
	frameInfo := &imagetypes.FrameInfo{
		Width:                     2,
		Height:                    1,
		BitsAllocated:             8,
		BitsStored:                8,
		HighBit:                   7,
		SamplesPerPixel:           3,
		PlanarConfiguration:       0,
		PhotometricInterpretation: "RGB",
	}
	planar := []byte{0x10, 0x11, 0x20, 0x21, 0x30, 0x31}

	src := codecHelpers.NewTestPixelData(frameInfo)
	if err := src.AddFrame(planar); err != nil {
		t.Fatalf("AddFrame failed: %v", err)
	}

	c := NewRLELosslessCodec()
	params := NewRLEParameters().WithPlanarConfiguration(1)

	encoded := codecHelpers.NewEncapsulatedTestPixelData(frameInfo)
	if err := c.Encode(src, encoded, params); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	// Decoding with the frame's own (interleaved) configuration reorders the samples
	decoded := codecHelpers.NewTestPixelData(frameInfo)
	if err := c.Decode(encoded, decoded, nil); err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	got, _ := decoded.GetFrame(0)
	want := []byte{0x10, 0x20, 0x30, 0x11, 0x21, 0x31}
	if !bytes.Equal(got, want) {
		t.Errorf("Decoded = % X, want % X", got, want)
	}

	generic := codec.NewBaseParameters()
	generic.SetParameter("planarConfiguration", 1)
	roundTrip := codecHelpers.NewTestPixelData(frameInfo)
	if err := c.Decode(encoded, roundTrip, generic); err != nil {
		t.Fatalf("Decode with generic parameters failed: %v", err)
	}
	got, _ = roundTrip.GetFrame(0)
	if !bytes.Equal(got, planar) {
		t.Errorf("Decoded = % X, want % X", got, planar)
	}
}

func TestRLELosslessCodecErrors(t *testing.T) {
	c := NewRLELosslessCodec()
	frameInfo := &imagetypes.FrameInfo{Width: 4, Height: 4, BitsAllocated: 8, SamplesPerPixel: 1}

	if err := c.Encode(nil, codecHelpers.NewTestPixelData(frameInfo), nil); err == nil {
		t.Error("Encode with nil source should fail")
	}

	empty := codecHelpers.NewTestPixelData(frameInfo)
	if err := c.Encode(empty, codecHelpers.NewTestPixelData(frameInfo), nil); err == nil {
		t.Error("Encode with no frames should fail")
	}

	corrupt := codecHelpers.NewEncapsulatedTestPixelData(frameInfo)
	if err := corrupt.AddFrame(makeFrame(2, []int32{0x40, 0x42}, 0x00, 0x01, 0x00, 0x02)); err != nil {
		t.Fatalf("AddFrame failed: %v", err)
	}
	err := c.Decode(corrupt, codecHelpers.NewTestPixelData(frameInfo), nil)
	if !errors.Is(err, ErrSegmentCountMismatch) {
		t.Errorf("Decode error = %v, want %v", err, ErrSegmentCountMismatch)
	}

	bad := NewRLEParameters().WithPlanarConfiguration(3)
	src := codecHelpers.NewTestPixelData(frameInfo)
	if err := src.AddFrame(make([]byte, 16)); err != nil {
		t.Fatalf("AddFrame failed: %v", err)
	}
	if err := c.Encode(src, codecHelpers.NewTestPixelData(frameInfo), bad); err == nil {
		t.Error("Encode with invalid parameters should fail")
	}
}
