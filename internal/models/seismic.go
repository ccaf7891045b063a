package models

// Prefix identifies which seismic design coefficient is being interpolated.
type Prefix string

const (
	// SDS is the short-period design spectral acceleration.
	SDS Prefix = "SDS"
	// SD1 is the one-second design spectral acceleration.
	SD1 Prefix = "SD1"
)

// Prefixes lists every supported coefficient prefix.
var Prefixes = []Prefix{SDS, SD1}

// DefaultSiteClass names the fallback column suffix used when a site class has no dedicated column.
const DefaultSiteClass = "Default"

// Coordinate is a latitude/longitude pair in degrees.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// ReferencePoint is one station of the reference table with its coefficient values per value column.
// A NaN value means the station has no observation for that column.
type ReferencePoint struct {
	Latitude   float64            `json:"latitude"`
	Longitude  float64            `json:"longitude"`
	Values     map[string]float64 `json:"values"`
	Attributes map[string]string  `json:"attributes,omitempty"`
}

// InterpolationResult is the response for a single point query. A nil coefficient means it could not be computed.
type InterpolationResult struct {
	Latitude  float64  `json:"Latitude"`
	Longitude float64  `json:"Longitude"`
	SDS       *float64 `json:"SDS"`
	SD1       *float64 `json:"SD1"`
	SiteClass string   `json:"SiteClass"`
}
