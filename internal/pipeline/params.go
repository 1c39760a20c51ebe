package pipeline

import "fmt"

// Parameter names accepted by SetParameter. The six numeric knobs carry
// declared [min, max] ranges; the two booleans are visibility toggles.
const (
	ParamEdgeLow        = "edgeLow"
	ParamEdgeHigh       = "edgeHigh"
	ParamApertureSize   = "apertureSize"
	ParamHoughThreshold = "houghThreshold"
	ParamMinLineLength  = "minLineLength"
	ParamMaxLineGap     = "maxLineGap"
	ParamShowEdges      = "showEdges"
	ParamShowLines      = "showLines"
)

// Declared parameter ranges. These mirror the tuning sliders: hysteresis
// thresholds run the full gradient-magnitude scale, the aperture slider
// tops out at 25, and the Hough knobs start at 1.
const (
	edgeThresholdMin = 0
	edgeThresholdMax = 1000
	apertureMin      = 0
	apertureMax      = 25
	houghKnobMin     = 1
	houghKnobMax     = 1000
)

// ParameterSet is the full set of tuning knobs for one recompute. Values
// are always within their declared ranges; Set clamps rather than
// rejecting out-of-range input. ParameterSet is a value type: Set returns
// an updated copy, so a set handed to a pipeline stage never changes
// underneath it.
type ParameterSet struct {
	// EdgeLow and EdgeHigh are the hysteresis thresholds for edge
	// detection. If EdgeLow > EdgeHigh the detector swaps them.
	EdgeLow  int `yaml:"edgeLow"`
	EdgeHigh int `yaml:"edgeHigh"`

	// ApertureSize is the gradient-kernel size; the edge detector
	// normalizes it to an odd value of at least 3.
	ApertureSize int `yaml:"apertureSize"`

	// HoughThreshold is the minimum accumulator vote count for a
	// candidate line.
	HoughThreshold int `yaml:"houghThreshold"`

	// MinLineLength discards detected runs shorter than this.
	MinLineLength int `yaml:"minLineLength"`

	// MaxLineGap is the largest gap bridged when tracing a line.
	MaxLineGap int `yaml:"maxLineGap"`

	// ShowEdges and ShowLines gate the two overlay passes.
	ShowEdges bool `yaml:"showEdges"`
	ShowLines bool `yaml:"showLines"`
}

// DefaultParameters returns the starting knob positions.
func DefaultParameters() ParameterSet {
	return ParameterSet{
		EdgeLow:        50,
		EdgeHigh:       150,
		ApertureSize:   3,
		HoughThreshold: 100,
		MinLineLength:  300,
		MaxLineGap:     5,
	}
}

// Set returns a copy of the set with the named parameter updated. Numeric
// values are clamped into the declared range, never rejected. Boolean
// parameters treat any nonzero value as true. Unknown names are an error
// and leave the returned copy equal to the receiver.
func (p ParameterSet) Set(name string, value int) (ParameterSet, error) {
	switch name {
	case ParamEdgeLow:
		p.EdgeLow = clampInt(value, edgeThresholdMin, edgeThresholdMax)
	case ParamEdgeHigh:
		p.EdgeHigh = clampInt(value, edgeThresholdMin, edgeThresholdMax)
	case ParamApertureSize:
		p.ApertureSize = clampInt(value, apertureMin, apertureMax)
	case ParamHoughThreshold:
		p.HoughThreshold = clampInt(value, houghKnobMin, houghKnobMax)
	case ParamMinLineLength:
		p.MinLineLength = clampInt(value, houghKnobMin, houghKnobMax)
	case ParamMaxLineGap:
		p.MaxLineGap = clampInt(value, houghKnobMin, houghKnobMax)
	case ParamShowEdges:
		p.ShowEdges = value != 0
	case ParamShowLines:
		p.ShowLines = value != 0
	default:
		return p, fmt.Errorf("unknown parameter %q", name)
	}
	return p, nil
}

func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
