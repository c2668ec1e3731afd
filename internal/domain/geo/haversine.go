package geo

import "math"

// earthRadiusKM is the mean Earth radius used by the haversine formula.
const earthRadiusKM = 6371.0

// HaversineKM returns the great-circle distance in kilometres between two
// points given in decimal degrees (WGS84), rounded to 2 decimal places.
//
// The function is total: coordinates outside the valid latitude/longitude
// ranges are not rejected, they simply propagate through the math. Range
// validation belongs to the ingestion boundary, not here.
func HaversineKM(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := degToRad(lat2 - lat1)
	dLon := degToRad(lon2 - lon1)

	rLat1 := degToRad(lat1)
	rLat2 := degToRad(lat2)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rLat1)*math.Cos(rLat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return RoundKM(earthRadiusKM * c)
}

// RoundKM rounds a distance to 2 decimal places, half away from zero on the
// scaled value.
func RoundKM(km float64) float64 {
	return math.Round(km*100) / 100
}

func degToRad(deg float64) float64 {
	return deg * math.Pi / 180.0
}
