package tilescape

import "fmt"

// BaseTileSize is the tile edge length in world units at full detail.
// Power of 2 so tile boundaries align with typical surface sizes.
const BaseTileSize = 1024

// lodMultipliers maps a level of detail to the factor applied to
// BaseTileSize. LOD 1 tiles cover 4x the linear extent of LOD 0 tiles.
var lodMultipliers = [2]int{1, 4}

// EffectiveTileSize returns the world-space edge length of a tile at the
// given level of detail. Unknown levels clamp to the coarsest tier.
func EffectiveTileSize(lod uint8) int {
	if int(lod) >= len(lodMultipliers) {
		lod = uint8(len(lodMultipliers) - 1)
	}
	return BaseTileSize * lodMultipliers[lod]
}

// LODMultiplier returns the node-size filter factor for a level of
// detail: nodes smaller than 2px times this factor are skipped when
// rendering at that level.
func LODMultiplier(lod uint8) float64 {
	if int(lod) >= len(lodMultipliers) {
		lod = uint8(len(lodMultipliers) - 1)
	}
	return float64(lodMultipliers[lod])
}

// TileCoord addresses one tile of the world grid at a given level of
// detail. It is a value type; two coordinates naming the same tile
// compare equal, which makes TileCoord usable directly as a cache key.
type TileCoord struct {
	X, Y int32
	LOD  uint8
}

// Bounds returns the world-space rectangle covered by the tile.
func (c TileCoord) Bounds() Rect {
	size := float64(EffectiveTileSize(c.LOD))
	return Rect{
		X: float64(c.X) * size,
		Y: float64(c.Y) * size,
		W: size,
		H: size,
	}
}

// String formats the coordinate for logs and debug overlays.
func (c TileCoord) String() string {
	return fmt.Sprintf("(%d,%d)@%d", c.X, c.Y, c.LOD)
}
