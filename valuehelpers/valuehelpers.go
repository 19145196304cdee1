package valuehelpers

import (
	"math"
	"strconv"
	"strings"
)

/*
Normalise a value from one range (minVal:maxVal) to fit within a new range (newMin:newMax).
An empty source range maps everything onto newMin.
*/
func Normalise[T ~int | ~float32 | ~float64](val, minVal, maxVal, newMin, newMax T) T {
	oldRange := maxVal - minVal
	if oldRange == 0 {
		return newMin
	}
	return newMin + (val-minVal)*(newMax-newMin)/oldRange
}

/*
Constrain a value between a lower (min) and upper (max) limit
*/
func Constrain[T ~int | ~float32 | ~float64](val, min, max T) T {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

/*
ParseAmount reads an amount typed by a user. Empty or unparseable text returns fallback,
NaN and infinities count as unparseable. Grouping characters (spaces, underscores, commas) are ignored.
*/
func ParseAmount(text string, fallback float64) float64 {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '_', ',', '\u00a0':
			return -1
		}
		return r
	}, strings.TrimSpace(text))
	if cleaned == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return fallback
	}
	return v
}
