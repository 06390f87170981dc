package maskpng

import (
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caddie-sim/caddie-sim/aim"
)

// writeMaskPNG bakes a w x h PNG whose red channel carries the class grid.
func writeMaskPNG(t *testing.T, classes [][]uint8) string {
	t.Helper()
	h := len(classes)
	w := len(classes[0])
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: classes[y][x], A: 255})
		}
	}

	path := filepath.Join(t.TempDir(), "mask.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
	return path
}

func testBBox() aim.BBox {
	return aim.BBox{West: 0, South: 0, East: 0.01, North: 0.01}
}

func TestLoad_DecodesClassGrid(t *testing.T) {
	// GIVEN a 3x2 mask: top row green/fairway/water, bottom row all rough
	path := writeMaskPNG(t, [][]uint8{
		{0, 1, 4},
		{8, 8, 8},
	})
	desc := aim.MaskDescriptor{Source: path, Width: 3, Height: 2, BBox: testBBox()}

	// WHEN loading
	classes, err := NewLoader().Load(context.Background(), desc)
	require.NoError(t, err)

	// THEN the buffer is row-major with north as row 0
	want := []aim.TerrainClass{
		aim.ClassGreen, aim.ClassFairway, aim.ClassWater,
		aim.ClassRough, aim.ClassRough, aim.ClassRough,
	}
	assert.Equal(t, want, classes)
}

func TestLoad_UnknownPixelValues_FailClosedToRough(t *testing.T) {
	// GIVEN pixels outside the 0-8 class range
	path := writeMaskPNG(t, [][]uint8{{200, 9}})
	desc := aim.MaskDescriptor{Source: path, Width: 2, Height: 1, BBox: testBBox()}

	classes, err := NewLoader().Load(context.Background(), desc)
	require.NoError(t, err)
	assert.Equal(t, []aim.TerrainClass{aim.ClassRough, aim.ClassRough}, classes)
}

func TestLoad_DimensionMismatch_Errors(t *testing.T) {
	// GIVEN a descriptor that disagrees with the decoded image size
	path := writeMaskPNG(t, [][]uint8{{1, 1}, {1, 1}})
	desc := aim.MaskDescriptor{Source: path, Width: 10, Height: 10, BBox: testBBox()}

	// THEN a stale descriptor is a load failure, not a silent rescale
	_, err := NewLoader().Load(context.Background(), desc)
	assert.Error(t, err)
}

func TestLoad_MissingFile_Errors(t *testing.T) {
	desc := aim.MaskDescriptor{Source: "/nonexistent/mask.png", Width: 2, Height: 2, BBox: testBBox()}
	_, err := NewLoader().Load(context.Background(), desc)
	assert.Error(t, err)
}

func TestLoad_CancelledContext_Errors(t *testing.T) {
	path := writeMaskPNG(t, [][]uint8{{1}})
	desc := aim.MaskDescriptor{Source: path, Width: 1, Height: 1, BBox: testBBox()}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewLoader().Load(ctx, desc)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRegister_WiresDefaultLoader(t *testing.T) {
	// Importing this package must make samplers constructible without an
	// explicit loader.
	require.NotNil(t, aim.NewMaskLoaderFunc)

	path := writeMaskPNG(t, [][]uint8{{1}})
	desc := aim.MaskDescriptor{Source: path, Width: 1, Height: 1, BBox: testBBox()}
	sampler, err := aim.NewTerrainSampler(desc, nil)
	require.NoError(t, err)
	require.NoError(t, sampler.Ready(context.Background()))
	assert.Equal(t, aim.ClassFairway, sampler.Sample(aim.GeoPoint{Lon: 0.005, Lat: 0.005}))
}

func TestEndToEnd_FairwayWithWaterCarry(t *testing.T) {
	// GIVEN a 16x16 course: water band across rows 6-9, fairway elsewhere
	grid := make([][]uint8, 16)
	for y := range grid {
		grid[y] = make([]uint8, 16)
		for x := range grid[y] {
			if y >= 6 && y <= 9 {
				grid[y][x] = 4 // water
			} else {
				grid[y][x] = 1 // fairway
			}
		}
	}
	path := writeMaskPNG(t, grid)
	desc := aim.MaskDescriptor{Source: path, Width: 16, Height: 16, BBox: testBBox()}
	sampler, err := aim.NewTerrainSampler(desc, nil)
	require.NoError(t, err)
	require.NoError(t, sampler.Ready(context.Background()))

	// THEN points in the band read water and points outside read fairway
	// (north = row 0: the band sits in the upper-middle latitudes)
	assert.Equal(t, aim.ClassWater, sampler.Sample(aim.GeoPoint{Lon: 0.005, Lat: 0.0055}))
	assert.Equal(t, aim.ClassFairway, sampler.Sample(aim.GeoPoint{Lon: 0.005, Lat: 0.001}))
	assert.Equal(t, aim.ClassFairway, sampler.Sample(aim.GeoPoint{Lon: 0.005, Lat: 0.009}))
}
