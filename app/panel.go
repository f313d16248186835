// Package app holds the dashboard controller: the panel owns the loaded
// frame, the sanitized aliases and bounds, and the widget state, and enforces
// the tag/description sync rules.
package app

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"tagplot/domain/series"
	"tagplot/internal/alias"
	"tagplot/internal/bounds"
)

// WidgetState is a snapshot of the user-facing selection.
type WidgetState struct {
	Tag         string  `json:"tag"`
	Description string  `json:"description"`
	LogScale    bool    `json:"log_scale"`
	RangeLow    float64 `json:"range_low"`
	RangeHigh   float64 `json:"range_high"`
}

// Panel is the dashboard controller. The frame, aliases and bounds are
// read-only after construction; only the widget state mutates, guarded by a
// mutex because widget events and render requests arrive on server goroutines.
type Panel struct {
	mu       sync.Mutex
	frame    *series.Frame
	aliases  alias.Mapping
	reverse  map[string]string
	bounds   bounds.Table
	describe bool

	tag         string
	description string
	logScale    bool
	rangeLow    float64
	rangeHigh   float64
}

type panelOptions struct {
	describe   bool
	sampleRate float64
	rng        *rand.Rand
}

// PanelOption configures panel construction.
type PanelOption func(*panelOptions)

// WithDescribe toggles the descriptive-statistics panel.
func WithDescribe(describe bool) PanelOption {
	return func(o *panelOptions) { o.describe = describe }
}

// WithSampleRate retains only the given fraction of rows, chosen at random
// once during construction.
func WithSampleRate(rate float64) PanelOption {
	return func(o *panelOptions) { o.sampleRate = rate }
}

// WithRand sets the random source used for sub-sampling.
func WithRand(rng *rand.Rand) PanelOption {
	return func(o *panelOptions) { o.rng = rng }
}

// NewPanel builds a ready panel: it sub-samples the frame if requested,
// sanitizes the aliases against the frame's columns, computes the bounds
// table, and selects the first column with its bounds.
func NewPanel(frame *series.Frame, rawAliases map[string]interface{}, opts ...PanelOption) (*Panel, error) {
	options := panelOptions{describe: true, sampleRate: 1.0}
	for _, opt := range opts {
		opt(&options)
	}

	if frame == nil || frame.NumColumns() == 0 {
		return nil, fmt.Errorf("dataset has no numeric columns to plot")
	}

	if options.sampleRate > 0 && options.sampleRate < 1 {
		rng := options.rng
		if rng == nil {
			rng = rand.New(rand.NewSource(time.Now().UnixNano()))
		}
		frame.Sample(options.sampleRate, rng)
	}

	p := &Panel{
		frame:    frame,
		aliases:  alias.Sanitize(rawAliases, frame.Columns()),
		bounds:   bounds.ForFrame(frame),
		describe: options.describe,
	}
	p.reverse = p.aliases.Reverse()

	p.tag = frame.Columns()[0]
	p.description, _ = p.aliases.Description(p.tag)
	b := p.bounds[p.tag]
	p.rangeLow, p.rangeHigh = b.Min, b.Max
	return p, nil
}

// Tags returns the selectable tags in ascending order.
func (p *Panel) Tags() []string {
	return p.aliases.Tags()
}

// Descriptions returns the selectable descriptions in ascending order.
func (p *Panel) Descriptions() []string {
	return p.aliases.Descriptions()
}

// Aliases returns the sanitized tag→description mapping.
func (p *Panel) Aliases() map[string]string {
	return p.aliases.Raw()
}

// Bounds returns the display range for a tag.
func (p *Panel) Bounds(tag string) (bounds.Range, bool) {
	b, ok := p.bounds[tag]
	return b, ok
}

// State returns a snapshot of the widget state.
func (p *Panel) State() WidgetState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stateLocked()
}

func (p *Panel) stateLocked() WidgetState {
	return WidgetState{
		Tag:         p.tag,
		Description: p.description,
		LogScale:    p.logScale,
		RangeLow:    p.rangeLow,
		RangeHigh:   p.rangeHigh,
	}
}

// SetTag handles a tag-changed event. The description field is updated only
// when it disagrees with the new tag's alias, so re-selecting the current tag
// is a no-op and the handler pair cannot cycle.
func (p *Panel) SetTag(tag string) (WidgetState, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	d, ok := p.aliases.Description(tag)
	if !ok {
		return p.stateLocked(), fmt.Errorf("unknown tag %q", tag)
	}
	if p.tag != tag {
		p.tag = tag
		b := p.bounds[tag]
		p.rangeLow, p.rangeHigh = b.Min, b.Max
	}
	if p.description != d {
		p.description = d
	}
	return p.stateLocked(), nil
}

// SetDescription handles a description-changed event, the inverse of SetTag:
// the tag field is written only when the reverse-mapped tag disagrees.
func (p *Panel) SetDescription(description string) (WidgetState, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	tag, ok := p.reverse[description]
	if !ok {
		return p.stateLocked(), fmt.Errorf("unknown description %q", description)
	}
	p.description = description
	if p.tag != tag {
		p.tag = tag
		b := p.bounds[tag]
		p.rangeLow, p.rangeHigh = b.Min, b.Max
	}
	return p.stateLocked(), nil
}

// SetLogScale handles a log-scale toggle.
func (p *Panel) SetLogScale(enabled bool) WidgetState {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.logScale = enabled
	return p.stateLocked()
}

// SetRange handles a range-slider change. The selection is clamped to the
// current tag's bounds.
func (p *Panel) SetRange(low, high float64) (WidgetState, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if low > high {
		return p.stateLocked(), fmt.Errorf("range low %v exceeds high %v", low, high)
	}
	b := p.bounds[p.tag]
	if low < b.Min {
		low = b.Min
	}
	if high > b.Max {
		high = b.Max
	}
	p.rangeLow, p.rangeHigh = low, high
	return p.stateLocked(), nil
}
