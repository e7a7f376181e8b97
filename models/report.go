package models

// Well-known listing columns.
const (
	ColName               = "name"
	ColHostName           = "host_name"
	ColNeighbourhood      = "neighbourhood"
	ColNeighbourhoodGroup = "neighbourhood_group"
	ColRoomType           = "room_type"
	ColPrice              = "price"
	ColAvailability       = "availability_365"
)

// Count is the frequency of one categorical value.
type Count struct {
	Label string
	Count int
}

// GroupMean is the mean of a numeric column within one group.
type GroupMean struct {
	Group string
	Mean  float64
	N     int
}

// HistogramBin is one equal-width bucket. Lower is inclusive; Upper is
// exclusive except for the last bin.
type HistogramBin struct {
	Lower float64
	Upper float64
	Count int
}

// CorrMatrix is a square Pearson correlation matrix. Undefined entries are NaN.
type CorrMatrix struct {
	Columns []string
	Values  [][]float64
}

// Summary holds the headline statistics printed at the end of a run.
// Nil fields were skipped because their source column was absent.
type Summary struct {
	RunID                 string      `yaml:"run_id"`
	Source                string      `yaml:"source"`
	RowsBefore            int         `yaml:"rows_before"`
	RowsAfter             int         `yaml:"rows_after"`
	Columns               []string    `yaml:"columns"`
	AveragePrice          *float64    `yaml:"average_price,omitempty"`
	MostCommonRoomType    *string     `yaml:"most_common_room_type,omitempty"`
	TopNeighbourhoodGroup *string     `yaml:"top_neighbourhood_group,omitempty"`
	Charts                []ChartFile `yaml:"charts,omitempty"`
	SkippedSteps          []string    `yaml:"skipped_steps,omitempty"`
}

// ChartFile records a rendered chart artifact.
type ChartFile struct {
	Step string `yaml:"step"`
	Path string `yaml:"path"`
}
