package charts

import (
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"listings-eda/models"
)

func decodePNG(t *testing.T, path string) (int, int) {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	img, err := png.Decode(f)
	require.NoError(t, err)
	b := img.Bounds()
	return b.Dx(), b.Dy()
}

func TestBar(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "run")
	r := NewRenderer(dir, 800, 500)

	path, err := r.Bar("bar.png", BarSpec{
		Title:        "Average Price by Neighbourhood Group",
		YLabel:       "price",
		Labels:       []string{"Manhattan", "Brooklyn", "Queens"},
		Values:       []float64{160, 65, 300},
		RotateLabels: true,
	})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "bar.png"), path)

	w, h := decodePNG(t, path)
	assert.Equal(t, 800, w)
	assert.Equal(t, 500, h)
}

func TestBarSingleZeroValue(t *testing.T) {
	r := NewRenderer(t.TempDir(), 800, 500)
	_, err := r.Bar("zero.png", BarSpec{Title: "t", Labels: []string{"a"}, Values: []float64{0}})
	assert.NoError(t, err)
}

func TestBarRejectsBadInput(t *testing.T) {
	r := NewRenderer(t.TempDir(), 800, 500)

	_, err := r.Bar("empty.png", BarSpec{Title: "t"})
	assert.Error(t, err)

	_, err = r.Bar("mismatch.png", BarSpec{Title: "t", Labels: []string{"a"}, Values: []float64{1, 2}})
	assert.Error(t, err)
}

func TestHistogram(t *testing.T) {
	r := NewRenderer(t.TempDir(), 800, 500)
	bins := make([]models.HistogramBin, 50)
	for i := range bins {
		bins[i] = models.HistogramBin{Lower: float64(i) * 7.3, Upper: float64(i+1) * 7.3, Count: i % 7}
	}

	path, err := r.Histogram("hist.png", "Distribution of Availability", "Number of Listings", bins)
	require.NoError(t, err)
	w, _ := decodePNG(t, path)
	assert.GreaterOrEqual(t, w, 800)
}

func TestHorizontalBar(t *testing.T) {
	r := NewRenderer(t.TempDir(), 800, 500)
	counts := []models.Count{
		{Label: "Williamsburg", Count: 12},
		{Label: "Harlem", Count: 9},
		{Label: "A neighbourhood with a really very long name indeed", Count: 1},
	}

	path, err := r.HorizontalBar("top.png", "Top 10 Neighbourhoods", "Number of Listings", counts)
	require.NoError(t, err)
	w, h := decodePNG(t, path)
	assert.Equal(t, 800, w)
	assert.Equal(t, 500, h)

	_, err = r.HorizontalBar("none.png", "t", "x", nil)
	assert.Error(t, err)
}

func TestHeatmap(t *testing.T) {
	r := NewRenderer(t.TempDir(), 800, 500)
	m := models.CorrMatrix{
		Columns: []string{"price", "minimum_nights", "availability_365"},
		Values: [][]float64{
			{1, 0.12, -0.4},
			{0.12, 1, math.NaN()},
			{-0.4, math.NaN(), 1},
		},
	}

	path, err := r.Heatmap("corr.png", "Correlation Heatmap", m)
	require.NoError(t, err)
	w, h := decodePNG(t, path)
	assert.Positive(t, w)
	assert.Positive(t, h)

	_, err = r.Heatmap("empty.png", "t", models.CorrMatrix{})
	assert.Error(t, err)
}

func TestDiverging(t *testing.T) {
	assert.Equal(t, midTone, diverging(0))
	assert.Equal(t, coolEnd, diverging(-1))
	assert.Equal(t, warmEnd, diverging(1))
	assert.Equal(t, warmEnd, diverging(3), "values are clamped")
	assert.Greater(t, diverging(0.5).R, diverging(-0.5).R)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
}
