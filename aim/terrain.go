package aim

import "fmt"

// TerrainClass is a discrete course-surface category resolved from the
// raster mask. Values are stable wire ids (0-8); anything outside the
// known range fails closed to ClassRough.
type TerrainClass uint8

const (
	ClassGreen TerrainClass = iota
	ClassFairway
	ClassTee
	ClassSand
	ClassWater
	ClassHazard
	ClassOutOfBounds
	ClassRecovery
	ClassRough

	// NumTerrainClasses is the histogram width used by ESResult.
	NumTerrainClasses = 9
)

var terrainClassNames = [NumTerrainClasses]string{
	"green", "fairway", "tee", "sand", "water", "hazard", "ob", "recovery", "rough",
}

// String returns the semantic name of the class ("rough" for unknown ids).
func (c TerrainClass) String() string {
	if int(c) >= len(terrainClassNames) {
		return terrainClassNames[ClassRough]
	}
	return terrainClassNames[c]
}

// Valid reports whether c is one of the nine known class ids.
func (c TerrainClass) Valid() bool {
	return int(c) < NumTerrainClasses
}

// ClampTerrainClass maps an arbitrary raw class value onto a known
// TerrainClass, failing closed to rough for out-of-range input.
func ClampTerrainClass(raw int) TerrainClass {
	if raw < 0 || raw >= NumTerrainClasses {
		return ClassRough
	}
	return TerrainClass(raw)
}

// ParseTerrainClass resolves a semantic class name ("fairway", "water", ...)
// to its TerrainClass id. Used by scenario configs that spell classes by name.
func ParseTerrainClass(name string) (TerrainClass, error) {
	for i, n := range terrainClassNames {
		if n == name {
			return TerrainClass(i), nil
		}
	}
	return ClassRough, fmt.Errorf("unknown terrain class %q", name)
}
