package rle

import (
	"fmt"

	"github.com/cocosip/go-dicom/pkg/imaging/codec"
)

// Ensure RLEParameters implements codec.Parameters
var _ codec.Parameters = (*RLEParameters)(nil)

// RLEParameters contains parameters for RLE Lossless compression
type RLEParameters struct {
	// PlanarConfiguration overrides the frame's (0028,0006) value
	// - -1: use the value from the frame info (default)
	// -  0: color-by-pixel
	// -  1: color-by-plane
	PlanarConfiguration int

	// internal storage for compatibility with generic parameter interface
	params map[string]interface{}
}

// NewRLEParameters creates a new RLEParameters with default values
func NewRLEParameters() *RLEParameters {
	return &RLEParameters{
		PlanarConfiguration: -1,
		params:              make(map[string]interface{}),
	}
}

// GetParameter retrieves a parameter by name (implements codec.Parameters)
func (p *RLEParameters) GetParameter(name string) interface{} {
	switch name {
	case "planarConfiguration":
		return p.PlanarConfiguration
	default:
		return p.params[name]
	}
}

// SetParameter sets a parameter value (implements codec.Parameters)
func (p *RLEParameters) SetParameter(name string, value interface{}) {
	switch name {
	case "planarConfiguration":
		if v, ok := value.(int); ok {
			p.PlanarConfiguration = v
		}
	default:
		p.params[name] = value
	}
}

// Validate checks if the parameters are valid
func (p *RLEParameters) Validate() error {
	if p.PlanarConfiguration < -1 || p.PlanarConfiguration > 1 {
		return fmt.Errorf("%w: planarConfiguration must be -1, 0 or 1, got %d", ErrInvalidGeometry, p.PlanarConfiguration)
	}
	return nil
}

// WithPlanarConfiguration sets the planar configuration override and returns the parameters for chaining
func (p *RLEParameters) WithPlanarConfiguration(pc int) *RLEParameters {
	p.PlanarConfiguration = pc
	return p
}

// apply overrides attrs with any explicitly set parameter
func (p *RLEParameters) apply(attrs Attributes) Attributes {
	if p.PlanarConfiguration >= 0 {
		attrs.PlanarConfiguration = PlanarConfiguration(p.PlanarConfiguration)
	}
	return attrs
}
