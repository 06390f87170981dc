// Package maskpng decodes baked terrain-class rasters from PNG files.
// The baking service encodes one terrain class per pixel in the red
// channel (0-8); any other value fails closed to rough.
package maskpng

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/caddie-sim/caddie-sim/aim"
)

// Loader loads class buffers from PNG files on the local filesystem.
type Loader struct{}

// NewLoader returns a filesystem-backed PNG mask loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load decodes desc.Source and converts it to a row-major class buffer
// (north = row 0, matching PNG row order). The decoded dimensions must
// match the descriptor exactly; a stale descriptor is a load failure, not
// a silent rescale.
func (l *Loader) Load(ctx context.Context, desc aim.MaskDescriptor) ([]aim.TerrainClass, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(desc.Source)
	if err != nil {
		return nil, fmt.Errorf("open mask: %w", err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode mask %s: %w", desc.Source, err)
	}

	bounds := img.Bounds()
	if bounds.Dx() != desc.Width || bounds.Dy() != desc.Height {
		return nil, fmt.Errorf("mask %s is %dx%d, descriptor says %dx%d",
			desc.Source, bounds.Dx(), bounds.Dy(), desc.Width, desc.Height)
	}

	classes := make([]aim.TerrainClass, 0, desc.Width*desc.Height)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			classes = append(classes, classOf(img, x, y))
		}
	}
	return classes, nil
}

// classOf reads the class id from a pixel's red channel.
func classOf(img image.Image, x, y int) aim.TerrainClass {
	r, _, _, _ := img.At(x, y).RGBA()
	return aim.ClampTerrainClass(int(r >> 8))
}
