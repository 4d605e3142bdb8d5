package renderer

import (
	"image"
	"math/rand"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Tile represents a rectangular region of the image to be rendered
type Tile struct {
	ID      int             // Unique tile identifier
	Bounds  image.Rectangle // Pixel bounds (x0,y0,x1,y1)
	Random  *rand.Rand      // Tile-specific random generator for deterministic results
	Sampler core.Sampler    // Sampler drawing from Random
}

// NewTile creates a tile whose random stream depends only on the render seed and tile ID
func NewTile(id int, bounds image.Rectangle, seed int64) *Tile {
	random := rand.New(rand.NewSource(tileSeed(seed, id)))

	return &Tile{
		ID:      id,
		Bounds:  bounds,
		Random:  random,
		Sampler: core.NewRandomSampler(random),
	}
}

// tileSeed mixes the render seed with the tile ID; +42 avoids seed 0
func tileSeed(seed int64, id int) int64 {
	return seed*1000003 + int64(id) + 42
}

// NewTileGrid creates a grid of tiles covering the entire image
func NewTileGrid(width, height, tileSize int, seed int64) []*Tile {
	var tiles []*Tile
	tileID := 0

	tilesX := (width + tileSize - 1) / tileSize // Ceiling division
	tilesY := (height + tileSize - 1) / tileSize

	for tileY := 0; tileY < tilesY; tileY++ {
		for tileX := 0; tileX < tilesX; tileX++ {
			x0 := tileX * tileSize
			y0 := tileY * tileSize
			x1 := min(x0+tileSize, width) // Don't exceed image bounds
			y1 := min(y0+tileSize, height)

			tiles = append(tiles, NewTile(tileID, image.Rect(x0, y0, x1, y1), seed))
			tileID++
		}
	}

	return tiles
}
