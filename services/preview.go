package services

import (
	"fmt"
	"io"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"listings-eda/models"
)

// Preview prints the shape, the column list and the first rows of t.
func Preview(out io.Writer, t *models.Table, rows int) error {
	r, c := t.Shape()
	fmt.Fprintf(out, "Dataset Shape: (%d, %d)\n", r, c)
	fmt.Fprintf(out, "\nColumns:\n %q\n", t.Columns())

	head := t.Head(rows)
	fmt.Fprintf(out, "\nFirst %d rows:\n", head.Len())
	if head.Len() == 0 || len(t.Columns()) == 0 {
		fmt.Fprintln(out, " (no rows)")
		return nil
	}

	df := dataframe.LoadRecords(head.Records(),
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
	)
	if df.Err != nil {
		return fmt.Errorf("preview: %w", df.Err)
	}
	fmt.Fprintln(out, df)
	return nil
}
