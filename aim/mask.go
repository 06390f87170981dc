package aim

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/sirupsen/logrus"
)

// BBox is a geographic bounding box in degrees.
type BBox struct {
	West, South, East, North float64
}

// positiveExtent reports whether the box spans a nonzero area.
func (b BBox) positiveExtent() bool {
	return b.East > b.West && b.North > b.South
}

// MaskDescriptor identifies a baked terrain-class raster: where to load it
// from, its pixel dimensions, and the geographic box it covers. The baking
// service that produces rasters is an external collaborator; the descriptor
// is the whole contract.
type MaskDescriptor struct {
	Source string `yaml:"source"` // loader-specific handle (file path or URL)
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	BBox   BBox   `yaml:"bbox"`
}

func (d MaskDescriptor) validate() error {
	if d.Source == "" {
		return errors.New("mask descriptor: empty source")
	}
	if d.Width <= 0 || d.Height <= 0 {
		return fmt.Errorf("mask descriptor: non-positive dimensions %dx%d", d.Width, d.Height)
	}
	if !d.BBox.positiveExtent() {
		return fmt.Errorf("mask descriptor: degenerate bbox %+v", d.BBox)
	}
	return nil
}

// MaskLoader resolves a descriptor to its class-per-pixel buffer, in
// row-major order with north as row 0. Implementations live in
// sub-packages (aim/maskpng) and register through NewMaskLoaderFunc.
type MaskLoader interface {
	Load(ctx context.Context, desc MaskDescriptor) ([]TerrainClass, error)
}

// NewMaskLoaderFunc is the registration hook for the default MaskLoader
// implementation. Importing aim/maskpng sets it via init(), breaking the
// import cycle between aim/ (interface owner) and the decoder package.
var NewMaskLoaderFunc func() MaskLoader

// ErrNoMaskLoader is returned by NewTerrainSampler when no loader was
// passed and none has been registered.
var ErrNoMaskLoader = errors.New("no mask loader registered (import aim/maskpng or pass one explicitly)")

// RasterMask is an immutable-once-ready georeferenced class grid. It is
// never mutated after construction, so it may be sampled concurrently
// without synchronization.
type RasterMask struct {
	width, height int
	bbox          BBox
	classes       []TerrainClass // row-major, north = row 0
}

// NewRasterMask builds a mask from a decoded class buffer.
func NewRasterMask(width, height int, bbox BBox, classes []TerrainClass) (*RasterMask, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("raster mask: non-positive dimensions %dx%d", width, height)
	}
	if !bbox.positiveExtent() {
		return nil, fmt.Errorf("raster mask: degenerate bbox %+v", bbox)
	}
	if len(classes) != width*height {
		return nil, fmt.Errorf("raster mask: buffer length %d != %dx%d", len(classes), width, height)
	}
	return &RasterMask{width: width, height: height, bbox: bbox, classes: classes}, nil
}

// newFallbackMask returns the degenerate 1x1 all-rough mask used when the
// source raster cannot be loaded. Sampling stays total at the cost of a
// worst-case terrain guess everywhere.
func newFallbackMask(bbox BBox) *RasterMask {
	return &RasterMask{width: 1, height: 1, bbox: bbox, classes: []TerrainClass{ClassRough}}
}

// Width returns the pixel width.
func (m *RasterMask) Width() int { return m.width }

// Height returns the pixel height.
func (m *RasterMask) Height() int { return m.height }

// classAt resolves a geographic point to a class. Points are projected
// linearly over the bbox and clamped to the grid; the v axis is inverted
// relative to latitude (north is row 0).
func (m *RasterMask) classAt(p GeoPoint) TerrainClass {
	u := int((p.Lon - m.bbox.West) / (m.bbox.East - m.bbox.West) * float64(m.width))
	v := int((m.bbox.North - p.Lat) / (m.bbox.North - m.bbox.South) * float64(m.height))
	if u < 0 {
		u = 0
	} else if u >= m.width {
		u = m.width - 1
	}
	if v < 0 {
		v = 0
	} else if v >= m.height {
		v = m.height - 1
	}
	idx := v*m.width + u
	if idx < 0 || idx >= len(m.classes) {
		// Unreachable after clamping, but a pixel read must never escalate.
		return ClassRough
	}
	return m.classes[idx]
}

// TerrainSampler resolves geographic points to terrain classes through a
// RasterMask with a loading -> ready (or fallback-ready) lifecycle.
// Sampling is total: before Ready completes it answers rough, and any
// failure during the pixel read maps to rough rather than propagating.
type TerrainSampler struct {
	desc   MaskDescriptor
	loader MaskLoader

	readyOnce sync.Once
	loadErr   error
	mask      atomic.Pointer[RasterMask]
}

// NewTerrainSampler validates the descriptor and wires the loader. A nil
// loader falls back to the registered NewMaskLoaderFunc. Fails fast on a
// malformed descriptor; nothing is loaded until Ready.
func NewTerrainSampler(desc MaskDescriptor, loader MaskLoader) (*TerrainSampler, error) {
	if err := desc.validate(); err != nil {
		return nil, err
	}
	if loader == nil {
		if NewMaskLoaderFunc == nil {
			return nil, ErrNoMaskLoader
		}
		loader = NewMaskLoaderFunc()
	}
	return &TerrainSampler{desc: desc, loader: loader}, nil
}

// Ready performs the one-time loading -> ready transition. Idempotent:
// after the first call completes, later calls are no-ops returning the
// same outcome. On load failure the sampler degrades to a 1x1 all-rough
// fallback, marks itself ready, and still returns the original error so
// the caller knows precision was lost.
func (s *TerrainSampler) Ready(ctx context.Context) error {
	s.readyOnce.Do(func() {
		classes, err := s.loader.Load(ctx, s.desc)
		if err == nil {
			var mask *RasterMask
			mask, err = NewRasterMask(s.desc.Width, s.desc.Height, s.desc.BBox, classes)
			if err == nil {
				s.mask.Store(mask)
				return
			}
		}
		logrus.Warnf("mask %s failed to load, degrading to all-rough fallback: %v", s.desc.Source, err)
		s.loadErr = fmt.Errorf("mask %s: %w", s.desc.Source, err)
		s.mask.Store(newFallbackMask(s.desc.BBox))
	})
	return s.loadErr
}

// Sample resolves one point to its terrain class. Never blocks and never
// panics: before Ready completes it logs a warning and answers rough.
func (s *TerrainSampler) Sample(p GeoPoint) TerrainClass {
	mask := s.mask.Load()
	if mask == nil {
		logrus.Warnf("terrain sample before mask %s is ready, defaulting to rough", s.desc.Source)
		return ClassRough
	}
	return mask.classAt(p)
}

// SampleClasses is the batch lookup the optimizer feeds on: one class per
// input point, in order.
func (s *TerrainSampler) SampleClasses(points []GeoPoint) []TerrainClass {
	classes := make([]TerrainClass, len(points))
	for i, p := range points {
		classes[i] = s.Sample(p)
	}
	return classes
}
