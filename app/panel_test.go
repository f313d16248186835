package app

import (
	"math"
	"math/rand"
	"reflect"
	"testing"

	"tagplot/domain/series"
)

func testFrame() *series.Frame {
	return series.NewFrame(
		[]string{"2020-01-02", "2020-01-03", "2020-01-06", "2020-01-07"},
		map[string][]float64{
			"AAPL": {75.1, 74.4, 74.9, 74.6},
			"GOOG": {68.4, 68.0, 69.9, 69.8},
			"MSFT": {math.NaN(), 158.6, 159.0, 157.7},
		},
	)
}

func testAliases() map[string]interface{} {
	return map[string]interface{}{
		"AAPL": "Apple",
		"GOOG": "Alphabet",
		"MSFT": "Microsoft",
	}
}

func TestNewPanel_InitialState(t *testing.T) {
	p, err := NewPanel(testFrame(), testAliases())
	if err != nil {
		t.Fatal(err)
	}

	state := p.State()
	if state.Tag != "AAPL" {
		t.Errorf("initial tag = %q, want first column", state.Tag)
	}
	if state.Description != "Apple" {
		t.Errorf("initial description = %q, want Apple", state.Description)
	}
	if state.LogScale {
		t.Error("log scale should start disabled")
	}
	if state.RangeLow != 74.4 || state.RangeHigh != 75.1 {
		t.Errorf("initial range = (%v, %v), want AAPL bounds", state.RangeLow, state.RangeHigh)
	}
}

func TestNewPanel_RejectsEmptyFrame(t *testing.T) {
	if _, err := NewPanel(nil, nil); err == nil {
		t.Fatal("expected error for nil frame")
	}
	empty := series.NewFrame([]string{"0"}, nil)
	if _, err := NewPanel(empty, nil); err == nil {
		t.Fatal("expected error for frame without columns")
	}
}

func TestPanel_TagDescriptionSync(t *testing.T) {
	p, err := NewPanel(testFrame(), testAliases())
	if err != nil {
		t.Fatal(err)
	}

	state, err := p.SetTag("GOOG")
	if err != nil {
		t.Fatal(err)
	}
	if state.Description != "Alphabet" {
		t.Errorf("description = %q after tag change, want Alphabet", state.Description)
	}

	state, err = p.SetDescription("Microsoft")
	if err != nil {
		t.Fatal(err)
	}
	if state.Tag != "MSFT" {
		t.Errorf("tag = %q after description change, want MSFT", state.Tag)
	}
}

// Any interleaving of tag and description events must leave the pair
// consistent with the alias mapping.
func TestPanel_SyncConvergence(t *testing.T) {
	p, err := NewPanel(testFrame(), testAliases())
	if err != nil {
		t.Fatal(err)
	}
	aliases := p.Aliases()

	events := []func() (WidgetState, error){
		func() (WidgetState, error) { return p.SetTag("MSFT") },
		func() (WidgetState, error) { return p.SetDescription("Apple") },
		func() (WidgetState, error) { return p.SetTag("AAPL") },
		func() (WidgetState, error) { return p.SetDescription("Alphabet") },
		func() (WidgetState, error) { return p.SetDescription("Alphabet") },
		func() (WidgetState, error) { return p.SetTag("GOOG") },
	}
	for i, ev := range events {
		state, err := ev()
		if err != nil {
			t.Fatalf("event %d: %v", i, err)
		}
		if aliases[state.Tag] != state.Description {
			t.Fatalf("event %d: tag %q paired with %q, want %q",
				i, state.Tag, state.Description, aliases[state.Tag])
		}
	}
}

func TestPanel_ReselectingTagKeepsRange(t *testing.T) {
	p, err := NewPanel(testFrame(), testAliases())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := p.SetRange(74.5, 75.0); err != nil {
		t.Fatal(err)
	}

	state, err := p.SetTag("AAPL")
	if err != nil {
		t.Fatal(err)
	}
	if state.RangeLow != 74.5 || state.RangeHigh != 75.0 {
		t.Errorf("re-selecting the current tag reset the range: (%v, %v)", state.RangeLow, state.RangeHigh)
	}

	state, err = p.SetTag("GOOG")
	if err != nil {
		t.Fatal(err)
	}
	if state.RangeLow != 68.0 || state.RangeHigh != 69.9 {
		t.Errorf("switching tags should reset the range to the new bounds: (%v, %v)", state.RangeLow, state.RangeHigh)
	}
}

func TestPanel_SetRange(t *testing.T) {
	p, err := NewPanel(testFrame(), testAliases())
	if err != nil {
		t.Fatal(err)
	}

	state, err := p.SetRange(0, 1000)
	if err != nil {
		t.Fatal(err)
	}
	if state.RangeLow != 74.4 || state.RangeHigh != 75.1 {
		t.Errorf("range not clamped to bounds: (%v, %v)", state.RangeLow, state.RangeHigh)
	}

	if _, err := p.SetRange(80, 70); err == nil {
		t.Error("expected error when low exceeds high")
	}
}

func TestPanel_UnknownSelections(t *testing.T) {
	p, err := NewPanel(testFrame(), testAliases())
	if err != nil {
		t.Fatal(err)
	}
	before := p.State()

	if _, err := p.SetTag("TSLA"); err == nil {
		t.Error("expected error for unknown tag")
	}
	if _, err := p.SetDescription("Tesla"); err == nil {
		t.Error("expected error for unknown description")
	}
	if got := p.State(); got != before {
		t.Errorf("rejected events mutated state: %+v", got)
	}
}

func TestPanel_Sampling(t *testing.T) {
	frame := testFrame()
	rng := rand.New(rand.NewSource(1))
	p, err := NewPanel(frame, testAliases(), WithSampleRate(0.5), WithRand(rng))
	if err != nil {
		t.Fatal(err)
	}

	if frame.NumRows() != 2 {
		t.Fatalf("rows after 0.5 sampling = %d, want 2", frame.NumRows())
	}
	index := frame.Index()
	for i := 1; i < len(index); i++ {
		if !(index[i] > index[i-1]) {
			t.Errorf("sampled index not ascending: %v", index)
		}
	}
	state := p.State()
	if state.Tag != "AAPL" {
		t.Errorf("tag = %q, want AAPL", state.Tag)
	}
}

func TestRender(t *testing.T) {
	p, err := NewPanel(testFrame(), testAliases())
	if err != nil {
		t.Fatal(err)
	}

	view, err := p.Render()
	if err != nil {
		t.Fatal(err)
	}

	if view.Title != "AAPL - closing price" {
		t.Errorf("title = %q", view.Title)
	}
	if len(view.Values) != 4 || len(view.MA15) != 4 || len(view.MA30) != 4 {
		t.Errorf("series lengths = %d/%d/%d, want 4", len(view.Values), len(view.MA15), len(view.MA30))
	}
	if len(view.Histogram.Counts) != histogramBins {
		t.Errorf("histogram bins = %d, want %d", len(view.Histogram.Counts), histogramBins)
	}
	if view.Summary == nil {
		t.Fatal("summary missing with describe enabled")
	}
	if view.Summary.Count != 4 {
		t.Errorf("summary count = %d, want 4", view.Summary.Count)
	}
}

func TestRender_SlicesLeadingMissing(t *testing.T) {
	p, err := NewPanel(testFrame(), testAliases())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := p.SetTag("MSFT"); err != nil {
		t.Fatal(err)
	}

	view, err := p.Render()
	if err != nil {
		t.Fatal(err)
	}
	if len(view.Values) != 3 {
		t.Fatalf("values = %v, want leading missing row sliced off", view.Values)
	}
	if view.Index[0] != "2020-01-03" {
		t.Errorf("index starts at %q, want first valid row", view.Index[0])
	}
}

func TestRender_LogScale(t *testing.T) {
	p, err := NewPanel(testFrame(), testAliases())
	if err != nil {
		t.Fatal(err)
	}
	p.SetLogScale(true)

	view, err := p.Render()
	if err != nil {
		t.Fatal(err)
	}
	if view.Title != "AAPL - log of closing price" {
		t.Errorf("title = %q", view.Title)
	}
	if !view.LogScale {
		t.Error("view should carry the log-scale flag")
	}
	// The transform centers on the median, so scaled values straddle zero.
	var low, high float64 = math.Inf(1), math.Inf(-1)
	for _, v := range view.Values {
		low = math.Min(low, v)
		high = math.Max(high, v)
	}
	if !(low <= 0 && high >= 0) {
		t.Errorf("scaled values (%v, %v) do not straddle zero", low, high)
	}
}

func TestRender_DoesNotMutatePanel(t *testing.T) {
	p, err := NewPanel(testFrame(), testAliases())
	if err != nil {
		t.Fatal(err)
	}
	before := p.State()

	first, err := p.Render()
	if err != nil {
		t.Fatal(err)
	}
	second, err := p.Render()
	if err != nil {
		t.Fatal(err)
	}

	if p.State() != before {
		t.Error("rendering mutated the widget state")
	}
	if !reflect.DeepEqual(first.Values, second.Values) || !reflect.DeepEqual(first.Index, second.Index) {
		t.Error("repeated renders disagree")
	}
}

func TestRender_WithoutDescribe(t *testing.T) {
	p, err := NewPanel(testFrame(), testAliases(), WithDescribe(false))
	if err != nil {
		t.Fatal(err)
	}
	view, err := p.Render()
	if err != nil {
		t.Fatal(err)
	}
	if view.Summary != nil {
		t.Error("summary should be omitted when describe is disabled")
	}
}
