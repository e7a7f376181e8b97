package charts

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"
	"strconv"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"listings-eda/models"
)

var (
	face      = basicfont.Face7x13
	white     = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	black     = color.RGBA{A: 255}
	axisGrey  = color.RGBA{R: 90, G: 90, B: 90, A: 255}
	nanGrey   = color.RGBA{R: 200, G: 200, B: 200, A: 255}
	hbarColor = color.RGBA{R: 76, G: 114, B: 176, A: 255}
)

// HorizontalBar renders one bar per count, first entry on top.
func (r *Renderer) HorizontalBar(file, title, xLabel string, counts []models.Count) (string, error) {
	if len(counts) == 0 {
		return "", fmt.Errorf("chart %s: no bars", file)
	}

	labelW := 0
	maxCount := 0
	for _, c := range counts {
		labelW = max(labelW, textWidth(truncate(c.Label, 32)))
		maxCount = max(maxCount, c.Count)
	}

	const top, bottom, gap = 50, 50, 6
	left := labelW + 20
	right := textWidth(strconv.Itoa(maxCount)) + 24
	width := max(r.width, left+right+200)
	height := max(r.height, top+bottom+len(counts)*22)
	img := canvas(width, height)

	plotW := width - left - right
	barH := (height-top-bottom)/len(counts) - gap
	drawCentered(img, width/2, 25, title, black)

	for i, c := range counts {
		y := top + i*(barH+gap)
		w := int(math.Round(float64(plotW) * float64(c.Count) / float64(maxCount)))
		fill(img, image.Rect(left, y, left+w, y+barH), hbarColor)

		label := truncate(c.Label, 32)
		drawText(img, left-8-textWidth(label), y+barH/2+4, label, black)
		drawText(img, left+w+6, y+barH/2+4, strconv.Itoa(c.Count), axisGrey)
	}

	axisY := height - bottom + 4
	fill(img, image.Rect(left, top-2, left+1, axisY), axisGrey)
	fill(img, image.Rect(left, axisY, left+plotW, axisY+1), axisGrey)
	drawCentered(img, left+plotW/2, height-15, xLabel, black)

	return r.write(file, func(w io.Writer) error { return png.Encode(w, img) })
}

// Heatmap renders a square matrix with each cell annotated. Colours follow a
// blue-white-red scale over [-1, 1] centred at 0; NaN cells are grey.
func (r *Renderer) Heatmap(file, title string, m models.CorrMatrix) (string, error) {
	n := len(m.Columns)
	if n == 0 {
		return "", fmt.Errorf("chart %s: empty matrix", file)
	}

	labelW := 0
	for _, c := range m.Columns {
		labelW = max(labelW, textWidth(truncate(c, 20)))
	}

	const top, barW = 50, 20
	left := labelW + 16
	bottom := labelW + 24
	cell := clamp((min(r.width-left-barW-90, r.height-top-bottom))/n, 36, 90)
	width := left + n*cell + barW + 90
	height := top + n*cell + bottom
	img := canvas(width, height)

	drawCentered(img, left+n*cell/2, 25, title, black)

	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			v := m.Values[i][j]
			x0, y0 := left+j*cell, top+i*cell
			rect := image.Rect(x0, y0, x0+cell, y0+cell)

			col, text := nanGrey, "nan"
			if !math.IsNaN(v) {
				col, text = diverging(v), strconv.FormatFloat(v, 'f', 2, 64)
			}
			fill(img, rect, col)

			ink := black
			if !math.IsNaN(v) && math.Abs(v) > 0.6 {
				ink = white
			}
			drawCentered(img, x0+cell/2, y0+cell/2+4, text, ink)
		}

		label := truncate(m.Columns[i], 20)
		drawText(img, left-6-textWidth(label), top+i*cell+cell/2+4, label, black)
	}

	// Column labels are drawn vertically, one character per line.
	for j, c := range m.Columns {
		x := left + j*cell + cell/2 - 3
		for k, ch := range truncate(c, 20) {
			drawText(img, x, top+n*cell+14+k*11, string(ch), black)
		}
	}

	drawColorBar(img, left+n*cell+24, top, barW, n*cell)

	return r.write(file, func(w io.Writer) error { return png.Encode(w, img) })
}

func drawColorBar(img *image.RGBA, x, y, w, h int) {
	for k := 0; k < h; k++ {
		v := 1 - 2*float64(k)/float64(h-1)
		fill(img, image.Rect(x, y+k, x+w, y+k+1), diverging(v))
	}
	for _, tick := range []float64{1, 0.5, 0, -0.5, -1} {
		ty := y + int(math.Round((1-tick)/2*float64(h-1)))
		fill(img, image.Rect(x+w, ty, x+w+4, ty+1), axisGrey)
		drawText(img, x+w+7, ty+4, strconv.FormatFloat(tick, 'f', 1, 64), black)
	}
}

func canvas(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(white), image.Point{}, draw.Src)
	return img
}

func fill(img *image.RGBA, rect image.Rectangle, c color.Color) {
	draw.Draw(img, rect, image.NewUniform(c), image.Point{}, draw.Src)
}

// drawText draws s with its baseline starting at (x, y).
func drawText(img *image.RGBA, x, y int, s string, c color.Color) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)},
	}
	d.DrawString(s)
}

func drawCentered(img *image.RGBA, cx, y int, s string, c color.Color) {
	drawText(img, cx-textWidth(s)/2, y, s, c)
}

func textWidth(s string) int {
	return font.MeasureString(face, s).Ceil()
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-3]) + "..."
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}
