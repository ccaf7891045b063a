package interpolation

import (
	"math"
	"sort"

	"seismic-api/internal/models"

	"gonum.org/v1/gonum/spatial/kdtree"
)

// station is a reference point in the k-d tree. row is its position in the reference table.
type station struct {
	lat, lon float64
	row      int
}

// Compare implements kdtree.Comparable. Dimension 0 is latitude, 1 is longitude.
func (s station) Compare(c kdtree.Comparable, d kdtree.Dim) float64 {
	q := c.(station)
	switch d {
	case 0:
		return s.lat - q.lat
	case 1:
		return s.lon - q.lon
	default:
		panic("illegal dimension")
	}
}

func (s station) Dims() int { return 2 }

// Distance returns the squared planar distance in degree space, as kdtree expects.
func (s station) Distance(c kdtree.Comparable) float64 {
	q := c.(station)
	dlat := s.lat - q.lat
	dlon := s.lon - q.lon
	return dlat*dlat + dlon*dlon
}

type stations []station

func (p stations) Index(i int) kdtree.Comparable         { return p[i] }
func (p stations) Len() int                               { return len(p) }
func (p stations) Slice(start, end int) kdtree.Interface { return p[start:end] }

// Pivot uses median of medians so the tree shape depends only on the input order.
func (p stations) Pivot(d kdtree.Dim) int {
	plane := stationPlane{stations: p, Dim: d}
	return kdtree.Partition(plane, kdtree.MedianOfMedians(plane))
}

type stationPlane struct {
	stations
	kdtree.Dim
}

func (p stationPlane) Less(i, j int) bool {
	a, b := p.stations[i], p.stations[j]
	switch p.Dim {
	case 0:
		return a.lat < b.lat
	case 1:
		return a.lon < b.lon
	default:
		panic("illegal dimension")
	}
}

func (p stationPlane) Slice(start, end int) kdtree.SortSlicer {
	return stationPlane{stations: p.stations[start:end], Dim: p.Dim}
}

func (p stationPlane) Swap(i, j int) {
	p.stations[i], p.stations[j] = p.stations[j], p.stations[i]
}

// neighbor is one result of a k-nearest query.
type neighbor struct {
	row      int
	distance float64
}

// spatialIndex answers k-nearest-neighbor queries over a fixed set of stations.
type spatialIndex struct {
	tree *kdtree.Tree
	size int
}

// newSpatialIndex builds a tree over the given table rows.
func newSpatialIndex(coords []models.Coordinate, rows []int) *spatialIndex {
	pts := make(stations, len(rows))
	for i, row := range rows {
		pts[i] = station{lat: coords[row].Latitude, lon: coords[row].Longitude, row: row}
	}
	return &spatialIndex{tree: kdtree.New(pts, false), size: len(pts)}
}

// nearest returns up to k neighbors ordered by distance, ties broken by table row.
func (ix *spatialIndex) nearest(lat, lon float64, k int) []neighbor {
	if k > ix.size {
		k = ix.size
	}
	if k <= 0 {
		return nil
	}

	keeper := kdtree.NewNKeeper(k)
	ix.tree.NearestSet(keeper, station{lat: lat, lon: lon, row: -1})

	out := make([]neighbor, 0, k)
	for _, cd := range keeper.Heap {
		s, ok := cd.Comparable.(station)
		if !ok {
			// unfilled sentinel slot
			continue
		}
		out = append(out, neighbor{row: s.row, distance: math.Sqrt(cd.Dist)})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].distance != out[j].distance {
			return out[i].distance < out[j].distance
		}
		return out[i].row < out[j].row
	})
	return out
}
