package services

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"listings-eda/models"
)

// MeanByGroup averages the numeric values of valueCol per non-null value of
// groupCol. Groups are returned in order of first appearance and labelled by
// their first spelling; groups with no numeric value are omitted. Cells that
// compare equal by Value.Key share a group.
func MeanByGroup(t *models.Table, groupCol, valueCol string) []models.GroupMean {
	gi, vi := t.Index(groupCol), t.Index(valueCol)
	if gi < 0 || vi < 0 {
		return nil
	}

	var order []string
	labels := make(map[string]string)
	values := make(map[string][]float64)
	for i := 0; i < t.Len(); i++ {
		row := t.Row(i)
		g := row[gi]
		v, ok := row[vi].Float()
		if g.IsNull() || !ok {
			continue
		}
		key := g.Key()
		if _, seen := values[key]; !seen {
			order = append(order, key)
			labels[key] = g.String()
		}
		values[key] = append(values[key], v)
	}

	out := make([]models.GroupMean, 0, len(order))
	for _, key := range order {
		xs := values[key]
		out = append(out, models.GroupMean{Group: labels[key], Mean: stat.Mean(xs, nil), N: len(xs)})
	}
	return out
}

// ValueCounts counts each non-null value of col, ordered by descending count
// with ties broken lexicographically. Cells that compare equal by Value.Key,
// such as 1 and 1.0, are counted together under their first spelling.
func ValueCounts(t *models.Table, col string) []models.Count {
	counts := make(map[string]int)
	labels := make(map[string]string)
	for _, v := range t.Column(col) {
		if v.IsNull() {
			continue
		}
		key := v.Key()
		if _, seen := labels[key]; !seen {
			labels[key] = v.String()
		}
		counts[key]++
	}

	out := make([]models.Count, 0, len(counts))
	for key, n := range counts {
		out = append(out, models.Count{Label: labels[key], Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Label < out[j].Label
	})
	return out
}

// TopN returns the n most frequent values of col.
func TopN(t *models.Table, col string, n int) []models.Count {
	counts := ValueCounts(t, col)
	if len(counts) > n {
		counts = counts[:n]
	}
	return counts
}

// Mode returns the most frequent non-null value of col. Ties go to the
// lexicographically smallest value. ok is false when col has no values.
func Mode(t *models.Table, col string) (string, bool) {
	counts := ValueCounts(t, col)
	if len(counts) == 0 {
		return "", false
	}
	return counts[0].Label, true
}

// Numbers returns the numeric cells of col, skipping everything else.
func Numbers(t *models.Table, col string) []float64 {
	var xs []float64
	for _, v := range t.Column(col) {
		if f, ok := v.Float(); ok && !math.IsNaN(f) && !math.IsInf(f, 0) {
			xs = append(xs, f)
		}
	}
	return xs
}

// Mean averages the numeric cells of col. ok is false when there are none.
func Mean(t *models.Table, col string) (float64, bool) {
	xs := Numbers(t, col)
	if len(xs) == 0 {
		return 0, false
	}
	return stat.Mean(xs, nil), true
}

// Histogram buckets the numeric cells of col into bins equal-width bins over
// the observed range. The last bin includes its upper edge. A degenerate range
// is widened by 0.5 on each side.
func Histogram(t *models.Table, col string, bins int) []models.HistogramBin {
	xs := Numbers(t, col)
	if len(xs) == 0 || bins < 1 {
		return nil
	}

	lo, hi := floats.Min(xs), floats.Max(xs)
	if lo == hi {
		lo, hi = lo-0.5, hi+0.5
	}
	width := (hi - lo) / float64(bins)

	out := make([]models.HistogramBin, bins)
	for i := range out {
		out[i].Lower = lo + float64(i)*width
		out[i].Upper = lo + float64(i+1)*width
	}
	out[bins-1].Upper = hi

	for _, x := range xs {
		i := int((x - lo) / width)
		if i >= bins {
			i = bins - 1
		}
		if i < 0 {
			i = 0
		}
		out[i].Count++
	}
	return out
}

// Correlation computes the Pearson correlation matrix over the numeric
// columns of t. Each pair uses only rows where both cells are numeric; pairs
// with fewer than two such rows or zero variance are NaN.
func Correlation(t *models.Table) models.CorrMatrix {
	cols := t.NumericColumns()
	m := models.CorrMatrix{Columns: cols, Values: make([][]float64, len(cols))}
	for i := range cols {
		m.Values[i] = make([]float64, len(cols))
	}

	idx := make([]int, len(cols))
	for i, c := range cols {
		idx[i] = t.Index(c)
	}

	for i := range cols {
		for j := i; j < len(cols); j++ {
			r := pairwisePearson(t, idx[i], idx[j])
			m.Values[i][j] = r
			m.Values[j][i] = r
		}
	}
	return m
}

func pairwisePearson(t *models.Table, a, b int) float64 {
	var xs, ys []float64
	for i := 0; i < t.Len(); i++ {
		row := t.Row(i)
		x, okx := row[a].Float()
		y, oky := row[b].Float()
		if okx && oky {
			xs = append(xs, x)
			ys = append(ys, y)
		}
	}
	if len(xs) < 2 {
		return math.NaN()
	}
	if stat.Variance(xs, nil) == 0 || stat.Variance(ys, nil) == 0 {
		return math.NaN()
	}
	r := stat.Correlation(xs, ys, nil)
	// Rounding can push |r| just past 1.
	return math.Max(-1, math.Min(1, r))
}

// round2 rounds half away from zero to two decimal places.
func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
