package services

import (
	"bytes"
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"listings-eda/models"
	"listings-eda/utils"
)

func newTestLogger() *utils.Logger { return utils.NewNopLogger() }

func newTestCleaner(out *bytes.Buffer) *Cleaner {
	return NewCleaner(newTestLogger(), out, DefaultCleanOptions())
}

func listingTable(rows ...[]string) *models.Table {
	header := []string{"name", "host_name", "neighbourhood", "price"}
	values := make([][]models.Value, len(rows))
	for i, r := range rows {
		values[i] = make([]models.Value, len(r))
		for j, cell := range r {
			values[i][j] = models.ParseValue(cell)
		}
	}
	return models.NewTable(header, values)
}

func TestCleanerDropsDuplicateAndNonNumericPrice(t *testing.T) {
	var out bytes.Buffer
	raw := listingTable(
		[]string{"Loft", "Ann", "Harlem", "120"},
		[]string{"Loft", "Ann", "Harlem", "120"},
		[]string{"Room", "Bob", "Midtown", "abc"},
		[]string{"Cabin", "Cy", "Astoria", "80"},
	)

	cleaned := newTestCleaner(&out).Clean(raw)

	rowsBefore, _ := raw.Shape()
	rowsAfter, cols := cleaned.Shape()
	assert.Less(t, rowsAfter, rowsBefore)
	assert.Equal(t, 2, rowsAfter)
	assert.Equal(t, 4, cols)
	assert.Equal(t, "Loft", cleaned.Row(0)[0].Raw)
	assert.Equal(t, "Cabin", cleaned.Row(1)[0].Raw)

	assert.NotContains(t, out.String(), "Dataset Shape", "the shape before cleaning is printed by Preview")
	assert.Contains(t, out.String(), "Data after cleaning: (2, 4)")
}

func TestCleanerDropsNonFinitePrices(t *testing.T) {
	var out bytes.Buffer
	raw := listingTable(
		[]string{"a", "h", "n", "10"},
		[]string{"b", "h", "n", "20"},
		[]string{"c", "h", "n", "-inf"},
		[]string{"d", "h", "n", "30"},
		[]string{"e", "h", "n", "-Infinity"},
	)

	cleaned := newTestCleaner(&out).Clean(raw)

	require.Equal(t, 3, cleaned.Len())
	mean, ok := Mean(cleaned, "price")
	require.True(t, ok)
	assert.Equal(t, 20.0, mean)
}

func TestCleanerPriceCeiling(t *testing.T) {
	var out bytes.Buffer
	raw := listingTable(
		[]string{"a", "h", "n", "50"},
		[]string{"b", "h", "n", "1000"},
		[]string{"c", "h", "n", "1500"},
		[]string{"d", "h", "n", ""},
	)

	cleaned := newTestCleaner(&out).Clean(raw)

	require.Equal(t, 2, cleaned.Len())
	prices := cleaned.Column("price")
	assert.Equal(t, 50.0, prices[0].Num)
	assert.Equal(t, 1000.0, prices[1].Num)
}

func TestCleanerPriceOnlyTable(t *testing.T) {
	var out bytes.Buffer
	raw := models.NewTable([]string{"price"}, [][]models.Value{
		{models.Number(50)}, {models.Number(1000)}, {models.Number(1500)}, {models.Null()},
	})

	cleaned := newTestCleaner(&out).Clean(raw)
	assert.Equal(t, 2, cleaned.Len())
}

func TestCleanerWithoutRequiredColumns(t *testing.T) {
	var out bytes.Buffer
	raw := models.NewTable([]string{"room_type", "minimum_nights"}, [][]models.Value{
		{models.Text("Private room"), models.Null()},
		{models.Null(), models.Number(3)},
		{models.Null(), models.Number(3)},
	})

	cleaned := newTestCleaner(&out).Clean(raw)

	assert.Equal(t, 2, cleaned.Len(), "only the duplicate goes when no required column exists")
}

func TestCleanerIgnoresNullsOutsideRequiredColumns(t *testing.T) {
	var out bytes.Buffer
	raw := models.NewTable([]string{"name", "price", "room_type"}, [][]models.Value{
		{models.Text("a"), models.Number(10), models.Null()},
		{models.Null(), models.Number(10), models.Text("x")},
	})

	cleaned := newTestCleaner(&out).Clean(raw)

	require.Equal(t, 1, cleaned.Len())
	assert.Equal(t, "a", cleaned.Row(0)[0].Raw)
}

func TestCleanerDoesNotModifyInput(t *testing.T) {
	var out bytes.Buffer
	raw := listingTable([]string{"a", "h", "n", "abc"})

	newTestCleaner(&out).Clean(raw)

	assert.Equal(t, models.KindText, raw.Column("price")[0].Kind)
	assert.Equal(t, 1, raw.Len())
}

func randomListingTable(r *rand.Rand, n int) *models.Table {
	cells := []string{"", "NA", "abc", "10", "999.5", "1000", "1000.01", "5000", "x", "y"}
	header := []string{"name", "host_name", "neighbourhood", "price", "room_type"}
	rows := make([][]models.Value, n)
	for i := range rows {
		rows[i] = make([]models.Value, len(header))
		for j := range header {
			rows[i][j] = models.ParseValue(cells[r.Intn(len(cells))])
		}
	}
	return models.NewTable(header, rows)
}

func TestCleanerInvariants(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	c := NewCleaner(newTestLogger(), &bytes.Buffer{}, DefaultCleanOptions())

	for iter := 0; iter < 50; iter++ {
		raw := randomListingTable(r, 5+r.Intn(60))
		cleaned := c.Clean(raw)

		t.Run(fmt.Sprintf("iteration %d", iter), func(t *testing.T) {
			assert.LessOrEqual(t, cleaned.Len(), raw.Len())

			seen := make(map[string]bool)
			for i := 0; i < cleaned.Len(); i++ {
				row := cleaned.Row(i)
				key := models.RowKey(row)
				assert.False(t, seen[key], "duplicate row %v", row)
				seen[key] = true

				for _, col := range []string{"name", "host_name", "neighbourhood", "price"} {
					assert.False(t, row[cleaned.Index(col)].IsNull(), "null %s in row %d", col, i)
				}

				price, ok := row[cleaned.Index("price")].Float()
				assert.True(t, ok, "price must be numeric")
				assert.LessOrEqual(t, price, 1000.0)
			}

			again := c.Clean(cleaned)
			assert.Equal(t, cleaned.Records(), again.Records(), "cleaning must be idempotent")
		})
	}
}
