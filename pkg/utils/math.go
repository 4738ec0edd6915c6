package utils

import "math"

// RoundDecimal rounds a float64 value to the specified number of decimal places.
// Halves are rounded to even, so RoundDecimal(0.0125, 3) returns 0.012.
func RoundDecimal(value float64, decimals int) float64 {
	pow := math.Pow(10, float64(decimals))
	return math.RoundToEven(value*pow) / pow
}

func RoundSlice(values []float64, decimals int) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = RoundDecimal(v, decimals)
	}
	return out
}

func RoundMatrix(rows [][]float64, decimals int) [][]float64 {
	out := make([][]float64, len(rows))
	for i, r := range rows {
		out[i] = RoundSlice(r, decimals)
	}
	return out
}
