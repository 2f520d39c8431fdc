package report

import (
	"fmt"
	"math"
)

// viridisStops samples the viridis colour map at nine evenly spaced points.
var viridisStops = [][3]float64{
	{0x44, 0x01, 0x54},
	{0x47, 0x2c, 0x7a},
	{0x3b, 0x51, 0x8b},
	{0x2c, 0x71, 0x8e},
	{0x21, 0x90, 0x8d},
	{0x27, 0xad, 0x81},
	{0x5c, 0xc8, 0x63},
	{0xaa, 0xdc, 0x32},
	{0xfd, 0xe7, 0x25},
}

// Viridis returns n hex colours (RRGGBB) spread evenly over the viridis map,
// from dark purple to yellow. A single colour is the dark end of the map.
func Viridis(n int) []string {
	colors := make([]string, n)
	for i := range colors {
		t := 0.0
		if n > 1 {
			t = float64(i) / float64(n-1)
		}
		colors[i] = viridisAt(t)
	}
	return colors
}

func viridisAt(t float64) string {
	t = math.Max(0, math.Min(1, t))
	pos := t * float64(len(viridisStops)-1)
	lo := int(math.Floor(pos))
	if lo >= len(viridisStops)-1 {
		lo = len(viridisStops) - 2
	}
	frac := pos - float64(lo)

	var rgb [3]int
	for c := 0; c < 3; c++ {
		a, b := viridisStops[lo][c], viridisStops[lo+1][c]
		rgb[c] = int(math.Round(a + (b-a)*frac))
	}
	return fmt.Sprintf("%02X%02X%02X", rgb[0], rgb[1], rgb[2])
}
