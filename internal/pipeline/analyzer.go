// Package pipeline drives the decode, edge-detection, line-detection,
// overlay and scaling stages as one synchronous recompute, and owns the
// gallery position and parameter set between recomputes.
//
// The Analyzer is host-independent: a GUI, a CLI or a test harness feeds
// it parameter changes and navigation events and receives finished
// composite buffers. It performs no I/O of its own beyond the ReadFunc
// supplied at construction.
package pipeline

import (
	"linescope/internal/detection"
	"linescope/internal/gallery"
	"linescope/internal/imaging"
	"linescope/internal/render"
)

// Direction selects which way Navigate moves through the gallery.
type Direction int

const (
	Next Direction = iota
	Previous
)

// Options configures an Analyzer. Zero fields take defaults: the standard
// viewport bounds, the fixed marker palette and the default parameters.
type Options struct {
	// ViewportWidth and ViewportHeight bound the scaled composite.
	ViewportWidth  int
	ViewportHeight int

	// Palette supplies the overlay marker colors and stroke width.
	Palette render.Palette

	// Params is the initial parameter set.
	Params ParameterSet
}

// Analyzer runs the full image-analysis pipeline for the image currently
// selected in its gallery. One recompute is a single synchronous pass:
// decode -> edge detection -> line detection -> overlay -> viewport fit.
// There is no background work; a recompute blocks until its composite is
// ready.
type Analyzer struct {
	gallery *gallery.Gallery
	read    imaging.ReadFunc
	cache   *imaging.BufferCache

	params   ParameterSet
	palette  render.Palette
	maxW     int
	maxH     int
	lastGood *imaging.Buffer
}

// New creates an Analyzer over the given ordered image identifiers. Raw
// encoded bytes per identifier come from read. Returns
// gallery.ErrNoImages if ids is empty.
func New(ids []string, read imaging.ReadFunc, opts Options) (*Analyzer, error) {
	g, err := gallery.New(ids)
	if err != nil {
		return nil, err
	}

	if opts.ViewportWidth == 0 {
		opts.ViewportWidth = imaging.DefaultViewportWidth
	}
	if opts.ViewportHeight == 0 {
		opts.ViewportHeight = imaging.DefaultViewportHeight
	}
	if opts.Palette == (render.Palette{}) {
		opts.Palette = render.DefaultPalette()
	}
	if opts.Params == (ParameterSet{}) {
		opts.Params = DefaultParameters()
	}

	return &Analyzer{
		gallery: g,
		read:    read,
		cache:   imaging.NewBufferCache(),
		params:  opts.Params,
		palette: opts.Palette,
		maxW:    opts.ViewportWidth,
		maxH:    opts.ViewportHeight,
	}, nil
}

// SetParameter clamps value into the named parameter's declared range and
// stores it, returning the updated set. Unknown names are an error and
// leave the stored set unchanged.
func (a *Analyzer) SetParameter(name string, value int) (ParameterSet, error) {
	updated, err := a.params.Set(name, value)
	if err != nil {
		return a.params, err
	}
	a.params = updated
	return updated, nil
}

// Parameters returns the current parameter set.
func (a *Analyzer) Parameters() ParameterSet {
	return a.params
}

// CurrentImage returns the identifier of the active image.
func (a *Analyzer) CurrentImage() string {
	return a.gallery.Current()
}

// Gallery exposes read-only gallery position for status display.
func (a *Analyzer) Gallery() (index, length int) {
	return a.gallery.Index(), a.gallery.Len()
}

// Navigate advances the gallery in the given direction and recomputes the
// composite for the newly selected image. If the new image fails to
// decode, the navigation is rolled back so that a failure leaves the
// gallery state exactly as it was.
func (a *Analyzer) Navigate(dir Direction) (*imaging.Buffer, error) {
	switch dir {
	case Previous:
		a.gallery.Previous()
	default:
		a.gallery.Next()
	}

	composite, err := a.Recompute()
	if err != nil {
		// Roll back so the failure leaves prior state untouched.
		if dir == Previous {
			a.gallery.Next()
		} else {
			a.gallery.Previous()
		}
		return nil, err
	}
	return composite, nil
}

// Recompute runs the full pipeline on the current image with the current
// parameters and returns the scaled composite. Decode failures surface
// the error (wrapping imaging.ErrDecode) and leave the gallery, the
// parameter set and the last-good composite untouched.
func (a *Analyzer) Recompute() (*imaging.Buffer, error) {
	src, err := a.cache.Load(a.gallery.Current(), a.read)
	if err != nil {
		return nil, err
	}

	p := a.params
	edges := imaging.DetectEdges(src, p.EdgeLow, p.EdgeHigh, p.ApertureSize)
	segments := detection.DetectSegments(edges, p.HoughThreshold, p.MinLineLength, p.MaxLineGap)
	composite := render.Overlay(src, edges, segments, p.ShowEdges, p.ShowLines, a.palette)
	scaled := imaging.FitViewport(composite, a.maxW, a.maxH)

	a.lastGood = scaled
	return scaled, nil
}

// LastComposite returns the most recent successfully computed composite,
// or nil before the first successful recompute.
func (a *Analyzer) LastComposite() *imaging.Buffer {
	return a.lastGood
}
