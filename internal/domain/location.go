package domain

import "strings"

// Location is a saved place the widget can show prayer times for.
// City is the identity key: two locations are the same iff their City
// labels match exactly.
type Location struct {
	City string  `json:"city"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

// Valid reports whether the location has a usable identity and coordinates.
func (l Location) Valid() bool {
	return l.City != "" &&
		l.Lat >= -90 && l.Lat <= 90 &&
		l.Lon >= -180 && l.Lon <= 180
}

// Same reports city-identity equality (case-sensitive).
func (l Location) Same(other Location) bool {
	return l.City == other.City
}

// DisplayName returns the short badge form of the city label:
// "Istanbul, Istanbul, TUR" -> "ISTANBUL".
func (l Location) DisplayName() string {
	name, _, _ := strings.Cut(l.City, ",")
	return strings.ToUpper(strings.TrimSpace(name))
}
