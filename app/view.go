package app

import (
	"fmt"

	"tagplot/internal/analysis"
	"tagplot/internal/bounds"
	"tagplot/internal/transform"
)

// histogramBins matches the original dashboard's 100-bin histogram.
const histogramBins = 100

// View is the renderable state of the dashboard for the current selection.
// It is a pure value: producing one never mutates the panel.
type View struct {
	Tag         string                 `json:"tag"`
	Description string                 `json:"description"`
	Title       string                 `json:"title"`
	LogScale    bool                   `json:"log_scale"`
	Index       []string               `json:"index"`
	Values      []float64              `json:"values"`
	MA15        []float64              `json:"ma15"`
	MA30        []float64              `json:"ma30"`
	Histogram   analysis.HistogramData `json:"histogram"`
	Summary     *analysis.Summary      `json:"summary,omitempty"`
	Bounds      bounds.Range           `json:"bounds"`
	RangeLow    float64                `json:"range_low"`
	RangeHigh   float64                `json:"range_high"`
}

// Render produces the view for the current tag and log-scale flag: the column
// sliced from its first non-missing value, optionally robust-scaled, with
// 15 and 30 period trailing moving averages, a histogram over the tag's
// bounds (or the scaled data's own extent), and descriptive statistics when
// the describe panel is enabled.
func (p *Panel) Render() (*View, error) {
	p.mu.Lock()
	state := p.stateLocked()
	describe := p.describe
	b := p.bounds[state.Tag]
	col, ok := p.frame.Column(state.Tag)
	p.mu.Unlock()

	if !ok {
		return nil, fmt.Errorf("unknown tag %q", state.Tag)
	}

	if first := col.FirstValid(); first > 0 {
		col = col.SliceFrom(first)
	}

	title := fmt.Sprintf("%s - closing price", state.Tag)
	histLow, histHigh := b.Min, b.Max
	if state.LogScale {
		scaled, err := transform.RobustScale(col)
		if err != nil {
			return nil, err
		}
		col = scaled
		title = fmt.Sprintf("%s - log of closing price", state.Tag)
		if min, ok := col.Min(); ok {
			histLow = min
		}
		if max, ok := col.Max(); ok {
			histHigh = max
		}
	}

	view := &View{
		Tag:         state.Tag,
		Description: state.Description,
		Title:       title,
		LogScale:    state.LogScale,
		Index:       col.Index,
		Values:      col.Values,
		MA15:        analysis.MovingAverage(col.Values, 15),
		MA30:        analysis.MovingAverage(col.Values, 30),
		Histogram:   analysis.Histogram(col.Values, histogramBins, histLow, histHigh),
		Bounds:      b,
		RangeLow:    state.RangeLow,
		RangeHigh:   state.RangeHigh,
	}

	if describe {
		summary, err := analysis.Describe(col.Values)
		if err != nil {
			return nil, err
		}
		view.Summary = &summary
	}
	return view, nil
}
