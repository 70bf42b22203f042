package utils

import (
	"math"
)

// CalculateDistanceMeters returns the great-circle distance between two
// coordinates in meters. Meters are the canonical distance unit throughout
// the service; API boundaries convert from kilometers where needed.
func CalculateDistanceMeters(lat1, lon1, lat2, lon2 float64) float64 {
	return haversineDistance(lat1, lon1, lat2, lon2) * MetersPerKilometer
}

func CalculateDistanceKM(lat1, lon1, lat2, lon2 float64) float64 {
	return haversineDistance(lat1, lon1, lat2, lon2)
}

func haversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	// Convert to radians
	lat1Rad := lat1 * math.Pi / 180
	lon1Rad := lon1 * math.Pi / 180
	lat2Rad := lat2 * math.Pi / 180
	lon2Rad := lon2 * math.Pi / 180

	// Differences
	dLat := lat2Rad - lat1Rad
	dLon := lon2Rad - lon1Rad

	// Haversine formula
	a := math.Sin(dLat/2)*math.Sin(dLat/2) + math.Cos(lat1Rad)*math.Cos(lat2Rad)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusKM * c
}

func IsWithinRadiusMeters(centerLat, centerLon, pointLat, pointLon, radiusMeters float64) bool {
	return CalculateDistanceMeters(centerLat, centerLon, pointLat, pointLon) <= radiusMeters
}

func KilometersToMeters(km float64) float64 {
	return km * MetersPerKilometer
}

func MetersToKilometers(m float64) float64 {
	return m / MetersPerKilometer
}
