package geohash

import (
	"github.com/mmcloughlin/geohash"
)

// MaxPrecision is the longest geohash the index stores per position.
const MaxPrecision = 12

// Encode coordinates into a geohash with specified precision.
func Encode(lat, lon float64, precision uint) string {
	return geohash.EncodeWithPrecision(lat, lon, precision)
}

// GetNeighbors returns the geohashes of neighboring cells.
func GetNeighbors(hash string) []string {
	neighbors := geohash.Neighbors(hash)
	return neighbors
}

// CoveringCells returns the cell containing (lat, lon) and its eight
// neighbours at the finest precision whose cells are at least radius degrees
// on each side, so that every point within radius lies in one of them.
func CoveringCells(lat, lon, radius float64, maxPrecision uint) []string {
	precision := maxPrecision
	for ; precision > 1; precision-- {
		box := geohash.BoundingBox(Encode(lat, lon, precision))
		if box.MaxLat-box.MinLat >= radius && box.MaxLng-box.MinLng >= radius {
			break
		}
	}
	hash := Encode(lat, lon, precision)
	return append(GetNeighbors(hash), hash)
}
