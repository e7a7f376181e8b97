package services

import (
	"fmt"
	"io"
	"math"

	"github.com/dustin/go-humanize"

	"listings-eda/models"
	"listings-eda/utils"
)

// CleanOptions parameterises the cleaning pipeline.
type CleanOptions struct {
	// RequiredColumns must be non-null in every kept row, for those of them
	// present in the table.
	RequiredColumns []string
	// PriceColumn is coerced to numbers and filtered against PriceCeiling.
	PriceColumn  string
	PriceCeiling float64
}

// DefaultCleanOptions returns the listing defaults.
func DefaultCleanOptions() CleanOptions {
	return CleanOptions{
		RequiredColumns: []string{
			models.ColName, models.ColHostName, models.ColNeighbourhood, models.ColPrice,
		},
		PriceColumn:  models.ColPrice,
		PriceCeiling: 1000,
	}
}

// Cleaner turns a raw table into one ready for aggregation.
type Cleaner struct {
	logger *utils.Logger
	out    io.Writer
	opts   CleanOptions
}

// NewCleaner creates a Cleaner that prints shapes to out.
func NewCleaner(logger *utils.Logger, out io.Writer, opts CleanOptions) *Cleaner {
	return &Cleaner{logger: logger, out: out, opts: opts}
}

// Clean runs deduplication, null filtering, price coercion and the price
// ceiling filter, in that order. Steps whose columns are absent are skipped.
// The input table is not modified. The shape before cleaning is printed by
// Preview.
func (c *Cleaner) Clean(t *models.Table) *models.Table {
	rows := t.Len()

	t = c.dropDuplicates(t)
	t = c.dropMissing(t, c.presentRequired(t))
	t = c.coercePrice(t)
	t = c.filterPrice(t)

	after, cols := t.Shape()
	fmt.Fprintf(c.out, "\nData after cleaning: (%d, %d)\n", after, cols)
	c.logger.Info("[cleaner] Cleaned %s → %s rows (dropped %s)",
		humanize.Comma(int64(rows)), humanize.Comma(int64(after)), humanize.Comma(int64(rows-after)))
	return t
}

// dropDuplicates keeps the first occurrence of each fully identical row.
func (c *Cleaner) dropDuplicates(t *models.Table) *models.Table {
	seen := utils.NewKeySet(t.Len())
	out := t.Filter(func(row []models.Value) bool {
		return seen.Add(models.RowKey(row))
	})
	c.logDropped("duplicate rows", t, out)
	return out
}

// presentRequired returns the required columns that exist in t.
func (c *Cleaner) presentRequired(t *models.Table) []string {
	var present []string
	for _, col := range c.opts.RequiredColumns {
		if t.HasColumn(col) {
			present = append(present, col)
		}
	}
	return present
}

// dropMissing removes rows with a null in any of cols. No-op for empty cols.
func (c *Cleaner) dropMissing(t *models.Table, cols []string) *models.Table {
	if len(cols) == 0 {
		c.logger.Debug("[cleaner] No required columns present, null filter skipped")
		return t
	}
	idx := make([]int, len(cols))
	for i, col := range cols {
		idx[i] = t.Index(col)
	}
	out := t.Filter(func(row []models.Value) bool {
		for _, i := range idx {
			if row[i].IsNull() {
				return false
			}
		}
		return true
	})
	c.logDropped(fmt.Sprintf("rows with missing %v", cols), t, out)
	return out
}

// coercePrice converts the price column to numbers; anything that cannot be
// converted, including infinities and NaN, becomes null.
func (c *Cleaner) coercePrice(t *models.Table) *models.Table {
	if !t.HasColumn(c.opts.PriceColumn) {
		return t
	}
	values := t.Column(c.opts.PriceColumn)
	invalid := 0
	for i, v := range values {
		values[i] = v.ToNumber()
		if f, ok := values[i].Float(); ok && (math.IsInf(f, 0) || math.IsNaN(f)) {
			values[i] = models.Null()
		}
		if values[i].IsNull() && !v.IsNull() {
			invalid++
		}
	}
	if invalid > 0 {
		c.logger.Debug("[cleaner] %d non-numeric %s values coerced to missing", invalid, c.opts.PriceColumn)
	}
	out, err := t.WithColumn(c.opts.PriceColumn, values)
	if err != nil {
		c.logger.Error("[cleaner] Price coercion failed: %v", err)
		return t
	}
	return out
}

// filterPrice keeps rows priced at or below the ceiling. Missing prices fail
// the comparison and are dropped too.
func (c *Cleaner) filterPrice(t *models.Table) *models.Table {
	idx := t.Index(c.opts.PriceColumn)
	if idx < 0 {
		return t
	}
	out := t.Filter(func(row []models.Value) bool {
		p, ok := row[idx].Float()
		return ok && p <= c.opts.PriceCeiling
	})
	c.logDropped(fmt.Sprintf("rows with %s missing or above %g", c.opts.PriceColumn, c.opts.PriceCeiling), t, out)
	return out
}

func (c *Cleaner) logDropped(what string, before, after *models.Table) {
	if n := before.Len() - after.Len(); n > 0 {
		c.logger.Info("[cleaner] Dropped %s %s", humanize.Comma(int64(n)), what)
	}
}
