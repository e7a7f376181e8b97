package charts

import (
	"image/color"
	"math"
)

var (
	coolEnd = color.RGBA{R: 59, G: 76, B: 192, A: 255}
	midTone = color.RGBA{R: 221, G: 221, B: 221, A: 255}
	warmEnd = color.RGBA{R: 180, G: 4, B: 38, A: 255}
)

// diverging maps v in [-1, 1] onto a blue-grey-red scale with 0 at the
// neutral midpoint. Values outside the range are clamped.
func diverging(v float64) color.RGBA {
	v = math.Max(-1, math.Min(1, v))
	if v < 0 {
		return lerp(midTone, coolEnd, -v)
	}
	return lerp(midTone, warmEnd, v)
}

func lerp(a, b color.RGBA, t float64) color.RGBA {
	mix := func(x, y uint8) uint8 {
		return uint8(math.Round(float64(x) + (float64(y)-float64(x))*t))
	}
	return color.RGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: 255}
}
