package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseValue(t *testing.T) {
	tests := []struct {
		raw  string
		kind Kind
		num  float64
	}{
		{"120", KindNumber, 120},
		{" 99.5 ", KindNumber, 99.5},
		{"-3e2", KindNumber, -300},
		{"", KindNull, 0},
		{"   ", KindNull, 0},
		{"NA", KindNull, 0},
		{"NaN", KindNull, 0},
		{"None", KindNull, 0},
		{"abc", KindText, 0},
		{"$120", KindText, 0},
	}

	for _, tt := range tests {
		v := ParseValue(tt.raw)
		assert.Equal(t, tt.kind, v.Kind, "ParseValue(%q)", tt.raw)
		if tt.kind == KindNumber {
			assert.Equal(t, tt.num, v.Num, "ParseValue(%q)", tt.raw)
		}
	}
}

func TestValueToNumber(t *testing.T) {
	assert.True(t, Text("abc").ToNumber().IsNull())
	assert.True(t, Null().ToNumber().IsNull())
	assert.Equal(t, 42.0, Text("42").ToNumber().Num)
	assert.Equal(t, Number(7), Number(7).ToNumber())
}

func TestValueKey(t *testing.T) {
	assert.Equal(t, Null().Key(), Null().Key())
	assert.Equal(t, ParseValue("1.0").Key(), ParseValue("1").Key())
	assert.NotEqual(t, Text("1").Key(), Number(1).Key())
	assert.NotEqual(t, Text("").Key(), Null().Key())
}

func TestNewTableNormalisesHeader(t *testing.T) {
	tbl := NewTable([]string{" name ", "", "price", "price"}, [][]Value{
		{Text("a")},
	})

	assert.Equal(t, []string{"name", "Unnamed: 1", "price", "price.1"}, tbl.Columns())
	rows, cols := tbl.Shape()
	assert.Equal(t, 1, rows)
	assert.Equal(t, 4, cols)
	assert.True(t, tbl.Row(0)[3].IsNull(), "short rows are padded")
}

func TestTableFilterAndWithColumn(t *testing.T) {
	tbl := NewTable([]string{"name", "price"}, [][]Value{
		{Text("a"), Number(10)},
		{Text("b"), Number(2000)},
	})

	cheap := tbl.Filter(func(r []Value) bool { return r[1].Num < 1000 })
	assert.Equal(t, 1, cheap.Len())
	assert.Equal(t, 2, tbl.Len(), "filter must not modify the source")

	replaced, err := tbl.WithColumn("price", []Value{Null(), Number(5)})
	require.NoError(t, err)
	assert.True(t, replaced.Column("price")[0].IsNull())
	assert.Equal(t, 10.0, tbl.Column("price")[0].Num, "WithColumn must not modify the source")

	_, err = tbl.WithColumn("missing", []Value{Null(), Null()})
	assert.Error(t, err)
	_, err = tbl.WithColumn("price", []Value{Null()})
	assert.Error(t, err)
}

func TestNumericColumns(t *testing.T) {
	tbl := NewTable([]string{"name", "price", "reviews", "empty"}, [][]Value{
		{Text("a"), Number(10), Number(1), Null()},
		{Text("b"), Text("abc"), Null(), Null()},
	})

	assert.Equal(t, []string{"reviews"}, tbl.NumericColumns())
}

func TestHeadAndRecords(t *testing.T) {
	tbl := NewTable([]string{"name", "price"}, [][]Value{
		{Text("a"), Number(10)},
		{Text("b"), Null()},
		{Text("c"), Number(3)},
	})

	head := tbl.Head(2)
	assert.Equal(t, 2, head.Len())
	assert.Equal(t, 3, tbl.Head(10).Len())

	assert.Equal(t, [][]string{
		{"name", "price"},
		{"a", "10"},
		{"b", "NaN"},
	}, head.Records())
}

func TestRowKey(t *testing.T) {
	a := []Value{Text("x"), Null()}
	b := []Value{Text("x"), Null()}
	c := []Value{Text("x"), Text("")}
	assert.Equal(t, RowKey(a), RowKey(b))
	assert.NotEqual(t, RowKey(a), RowKey(c))
}
