package services

import (
	"fmt"
	"io"
	"strings"

	"listings-eda/models"
)

// summaryStat fills one field of the summary when its column exists.
type summaryStat struct {
	requires string
	apply    func(t *models.Table, s *models.Summary)
}

var summaryStats = []summaryStat{
	{models.ColPrice, func(t *models.Table, s *models.Summary) {
		if avg, ok := Mean(t, models.ColPrice); ok {
			avg = round2(avg)
			s.AveragePrice = &avg
		}
	}},
	{models.ColRoomType, func(t *models.Table, s *models.Summary) {
		if mode, ok := Mode(t, models.ColRoomType); ok {
			s.MostCommonRoomType = &mode
		}
	}},
	{models.ColNeighbourhoodGroup, func(t *models.Table, s *models.Summary) {
		if mode, ok := Mode(t, models.ColNeighbourhoodGroup); ok {
			s.TopNeighbourhoodGroup = &mode
		}
	}},
}

// Summarise computes the headline statistics of a cleaned table. Each
// statistic is skipped when its column is absent or empty.
func Summarise(t *models.Table) *models.Summary {
	s := &models.Summary{Columns: t.Columns()}
	s.RowsAfter = t.Len()
	for _, st := range summaryStats {
		if t.HasColumn(st.requires) {
			st.apply(t, s)
		}
	}
	return s
}

// PrintSummary writes the summary insights to out. Lines whose statistic was
// skipped are omitted.
func PrintSummary(out io.Writer, s *models.Summary) {
	sep := strings.Repeat("═", 54)

	fmt.Fprintf(out, "\n\033[1;35m%s\033[0m\n", sep)
	fmt.Fprintf(out, "\033[1;35m  SUMMARY INSIGHTS\033[0m\n")
	fmt.Fprintf(out, "\033[1;35m%s\033[0m\n\n", sep)

	if s.AveragePrice != nil {
		fmt.Fprintf(out, "Average price: %.2f\n", *s.AveragePrice)
	}
	if s.MostCommonRoomType != nil {
		fmt.Fprintf(out, "Most common room type: %s\n", *s.MostCommonRoomType)
	}
	if s.TopNeighbourhoodGroup != nil {
		fmt.Fprintf(out, "Neighbourhood group with most listings: %s\n", *s.TopNeighbourhoodGroup)
	}

	fmt.Fprintf(out, "\n\033[1;35m%s\033[0m\n\n", sep)
}
