package interpolation

import (
	"errors"
	"fmt"
	"math"
	"time"

	"seismic-api/internal/metrics"
	"seismic-api/internal/models"
	"seismic-api/internal/reference"

	"gonum.org/v1/gonum/floats"
)

const (
	// Neighbors is the number of nearest valid reference points used per query.
	Neighbors = 12
	// Power is the IDW distance exponent.
	Power = 2.0
	// CoincidenceWeight replaces the weight of a neighbor at zero distance.
	// Every weight is capped at this value so no weight, or sum of Neighbors weights, can overflow.
	CoincidenceWeight = 1e150
)

var (
	// ErrUnknownColumn is returned when a prefix and site class resolve to no column, even via Default.
	ErrUnknownColumn = errors.New("interpolation: unknown value column")
	// ErrInsufficientData is returned when fewer than Neighbors valid reference points exist for a column.
	ErrInsufficientData = errors.New("interpolation: insufficient reference data")
)

// Estimate is an interpolated value. Valid is false when the value could not be computed for the query.
type Estimate struct {
	Value float64
	Valid bool
}

// Engine interpolates coefficient values from the reference table with inverse distance weighting.
// It is safe for concurrent use.
type Engine struct {
	table *reference.Table
	cache *indexCache
}

// NewEngine creates an engine over an immutable reference table.
func NewEngine(table *reference.Table) *Engine {
	return &Engine{table: table, cache: newIndexCache()}
}

// Interpolate estimates the coefficient for prefix and site class at the given coordinates.
func (e *Engine) Interpolate(lat, lon float64, prefix models.Prefix, siteClass string) (est Estimate, err error) {
	start := time.Now()
	defer func() {
		metrics.ObserveInterpolation(string(prefix), outcome(est, err), time.Since(start))
	}()

	column, ok := e.table.Lookup().Resolve(prefix, siteClass)
	if !ok {
		return Estimate{}, fmt.Errorf("%w: %s for site class %q", ErrUnknownColumn, prefix, siteClass)
	}

	coords, values, err := e.table.ColumnValues(column)
	if err != nil {
		return Estimate{}, fmt.Errorf("%w: %v", ErrUnknownColumn, err)
	}

	rows := validRows(values)
	if len(rows) < Neighbors {
		return Estimate{}, fmt.Errorf("%w: column %s has %d valid points, need %d",
			ErrInsufficientData, column, len(rows), Neighbors)
	}

	if !finite(lat) || !finite(lon) {
		return Estimate{}, nil
	}

	index := e.cache.get(coords, rows)
	nbrs := index.nearest(lat, lon, Neighbors)

	distances := make([]float64, len(nbrs))
	for i, n := range nbrs {
		distances[i] = n.distance
	}
	weights, ok := idwWeights(distances, Power)
	if !ok {
		return Estimate{}, nil
	}

	var sum float64
	for i, n := range nbrs {
		sum += weights[i] * values[n.row]
	}
	if !finite(sum) {
		return Estimate{}, nil
	}
	return Estimate{Value: sum, Valid: true}, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// idwWeights returns normalized inverse distance weights. ok is false when the weight sum is zero or not finite.
func idwWeights(distances []float64, power float64) ([]float64, bool) {
	weights := make([]float64, len(distances))
	for i, d := range distances {
		w := CoincidenceWeight
		if d > 0 {
			w = math.Min(1/math.Pow(d, power), CoincidenceWeight)
		}
		weights[i] = w
	}

	total := floats.Sum(weights)
	if total <= 0 || !finite(total) {
		return nil, false
	}
	floats.Scale(1/total, weights)
	return weights, true
}

func validRows(values []float64) []int {
	rows := make([]int, 0, len(values))
	for i, v := range values {
		if !math.IsNaN(v) {
			rows = append(rows, i)
		}
	}
	return rows
}

func outcome(est Estimate, err error) string {
	switch {
	case errors.Is(err, ErrUnknownColumn):
		return "unknown_column"
	case errors.Is(err, ErrInsufficientData):
		return "insufficient_data"
	case err != nil:
		return "error"
	case !est.Valid:
		return "missing"
	default:
		return "ok"
	}
}
