package services

import (
	"fmt"

	"listings-eda/charts"
	"listings-eda/models"
	"listings-eda/utils"
)

// Step is one reporting step. It runs only when every column in Requires
// exists, and returns the path of the artifact it wrote, if any.
type Step struct {
	Name     string
	Requires []string
	Run      func(t *models.Table) (string, error)
}

// StepResult records the outcome of one step.
type StepResult struct {
	Name     string
	Artifact string
	Skipped  bool
	Err      error
}

// Runner evaluates steps in order against a read-only table.
type Runner struct {
	logger *utils.Logger
	steps  []Step
}

// NewRunner creates a Runner over steps.
func NewRunner(logger *utils.Logger, steps []Step) *Runner {
	return &Runner{logger: logger, steps: steps}
}

// Run executes every step whose columns are present. A failing step is
// logged and does not stop the rest.
func (r *Runner) Run(t *models.Table) []StepResult {
	results := make([]StepResult, 0, len(r.steps))
	for _, s := range r.steps {
		if !t.HasColumns(s.Requires...) {
			r.logger.Info("[report] Skipping %q: needs columns %v", s.Name, s.Requires)
			results = append(results, StepResult{Name: s.Name, Skipped: true})
			continue
		}

		path, err := s.Run(t)
		if err != nil {
			r.logger.Error("[report] %q failed: %v", s.Name, err)
		} else if path != "" {
			r.logger.Info("[report] %q → %s", s.Name, path)
		}
		results = append(results, StepResult{Name: s.Name, Artifact: path, Err: err})
	}
	return results
}

// ReportOptions parameterises the standard reporting steps.
type ReportOptions struct {
	HistogramBins int
	TopN          int
}

// DefaultReportOptions returns the listing defaults.
func DefaultReportOptions() ReportOptions {
	return ReportOptions{HistogramBins: 50, TopN: 10}
}

// Reports builds the standard listing reports. A nil renderer computes the
// aggregates without writing charts.
type Reports struct {
	logger   *utils.Logger
	renderer *charts.Renderer
	opts     ReportOptions
}

// NewReports creates the report set.
func NewReports(logger *utils.Logger, renderer *charts.Renderer, opts ReportOptions) *Reports {
	return &Reports{logger: logger, renderer: renderer, opts: opts}
}

// Steps returns the reporting steps in presentation order.
func (rp *Reports) Steps() []Step {
	return []Step{
		{
			Name:     "Average price by neighbourhood group",
			Requires: []string{models.ColNeighbourhoodGroup, models.ColPrice},
			Run:      rp.priceByGroup,
		},
		{
			Name:     "Room type distribution",
			Requires: []string{models.ColRoomType},
			Run:      rp.roomTypes,
		},
		{
			Name:     "Availability histogram",
			Requires: []string{models.ColAvailability},
			Run:      rp.availability,
		},
		{
			Name:     fmt.Sprintf("Top %d neighbourhoods", rp.opts.TopN),
			Requires: []string{models.ColNeighbourhood},
			Run:      rp.topNeighbourhoods,
		},
		{
			Name: "Correlation heatmap",
			Run:  rp.correlation,
		},
	}
}

func (rp *Reports) priceByGroup(t *models.Table) (string, error) {
	means := MeanByGroup(t, models.ColNeighbourhoodGroup, models.ColPrice)
	if len(means) == 0 {
		rp.logger.Warn("[report] No priced listings with a neighbourhood group")
		return "", nil
	}
	labels := make([]string, len(means))
	values := make([]float64, len(means))
	for i, m := range means {
		labels[i], values[i] = m.Group, m.Mean
		rp.logger.Debug("[report] %s: mean price %.2f over %d listings", m.Group, m.Mean, m.N)
	}
	if rp.renderer == nil {
		return "", nil
	}
	return rp.renderer.Bar("01_avg_price_by_neighbourhood_group.png", charts.BarSpec{
		Title:        "Average Price by Neighbourhood Group",
		YLabel:       "price",
		Labels:       labels,
		Values:       values,
		RotateLabels: true,
	})
}

func (rp *Reports) roomTypes(t *models.Table) (string, error) {
	counts := ValueCounts(t, models.ColRoomType)
	if len(counts) == 0 {
		rp.logger.Warn("[report] room_type has no values")
		return "", nil
	}
	labels := make([]string, len(counts))
	values := make([]float64, len(counts))
	for i, c := range counts {
		labels[i], values[i] = c.Label, float64(c.Count)
	}
	if rp.renderer == nil {
		return "", nil
	}
	return rp.renderer.Bar("02_room_type_distribution.png", charts.BarSpec{
		Title:  "Distribution of Room Types",
		YLabel: "count",
		Labels: labels,
		Values: values,
	})
}

func (rp *Reports) availability(t *models.Table) (string, error) {
	bins := Histogram(t, models.ColAvailability, rp.opts.HistogramBins)
	if len(bins) == 0 {
		rp.logger.Warn("[report] availability_365 has no numeric values")
		return "", nil
	}
	if rp.renderer == nil {
		return "", nil
	}
	return rp.renderer.Histogram("03_availability_histogram.png",
		"Distribution of Availability (days/year)", "Number of Listings", bins)
}

func (rp *Reports) topNeighbourhoods(t *models.Table) (string, error) {
	top := TopN(t, models.ColNeighbourhood, rp.opts.TopN)
	if len(top) == 0 {
		rp.logger.Warn("[report] neighbourhood has no values")
		return "", nil
	}
	if rp.renderer == nil {
		return "", nil
	}
	return rp.renderer.HorizontalBar("04_top_neighbourhoods.png",
		fmt.Sprintf("Top %d Neighbourhoods by Listing Count", rp.opts.TopN), "Number of Listings", top)
}

func (rp *Reports) correlation(t *models.Table) (string, error) {
	m := Correlation(t)
	if len(m.Columns) == 0 {
		rp.logger.Info("[report] No numeric columns to correlate")
		return "", nil
	}
	if rp.renderer == nil {
		return "", nil
	}
	return rp.renderer.Heatmap("05_correlation_heatmap.png", "Correlation Heatmap", m)
}
