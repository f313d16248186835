package ui

import (
	"encoding/json"
	"html/template"
	"math"
	"net/http"

	"tagplot/app"
	"tagplot/internal/analysis"
	"tagplot/internal/bounds"
)

type indexPageData struct {
	Tags         []string
	Descriptions []string
	State        app.WidgetState
	Notes        template.HTML
	HasNotes     bool
}

// handleIndex renders the dashboard page.
func (a *App) handleIndex(w http.ResponseWriter, r *http.Request) {
	data := indexPageData{
		Tags:         a.panel.Tags(),
		Descriptions: a.panel.Descriptions(),
		State:        a.panel.State(),
		Notes:        a.notes,
		HasNotes:     a.notes != "",
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := a.templates.ExecuteTemplate(w, "dashboard.html", data); err != nil {
		a.log.Error("failed to render dashboard page: %v", err)
		http.Error(w, "failed to render page", http.StatusInternalServerError)
	}
}

// handleView produces the composite view for the current selection.
func (a *App) handleView(w http.ResponseWriter, r *http.Request) {
	view, err := a.panel.Render()
	if err != nil {
		a.log.Error("render failed: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, wireViewFrom(view))
}

// handleState returns the current widget state.
func (a *App) handleState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, a.panel.State())
}

// widgetEvent is a widget-change request. Only the fields present are
// applied, each through the panel's guarded sync handlers.
type widgetEvent struct {
	Tag         *string     `json:"tag,omitempty"`
	Description *string     `json:"description,omitempty"`
	LogScale    *bool       `json:"log_scale,omitempty"`
	Range       *[2]float64 `json:"range,omitempty"`
}

// handleWidgets applies widget-change events posted by the page.
func (a *App) handleWidgets(w http.ResponseWriter, r *http.Request) {
	var event widgetEvent
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		http.Error(w, "invalid widget event", http.StatusBadRequest)
		return
	}

	state, err := a.applyEvent(event)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, state)
}

func (a *App) applyEvent(event widgetEvent) (app.WidgetState, error) {
	state := a.panel.State()
	var err error
	if event.Tag != nil {
		if state, err = a.panel.SetTag(*event.Tag); err != nil {
			return state, err
		}
	}
	if event.Description != nil {
		if state, err = a.panel.SetDescription(*event.Description); err != nil {
			return state, err
		}
	}
	if event.LogScale != nil {
		state = a.panel.SetLogScale(*event.LogScale)
	}
	if event.Range != nil {
		if state, err = a.panel.SetRange(event.Range[0], event.Range[1]); err != nil {
			return state, err
		}
	}
	return state, nil
}

func (a *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"status": "ok"})
}

// wireView mirrors app.View with NaN values encoded as JSON nulls.
type wireView struct {
	Tag         string                 `json:"tag"`
	Description string                 `json:"description"`
	Title       string                 `json:"title"`
	LogScale    bool                   `json:"log_scale"`
	Index       []string               `json:"index"`
	Values      []*float64             `json:"values"`
	MA15        []*float64             `json:"ma15"`
	MA30        []*float64             `json:"ma30"`
	Histogram   analysis.HistogramData `json:"histogram"`
	Summary     map[string]*float64    `json:"summary,omitempty"`
	Count       *int                   `json:"count,omitempty"`
	Bounds      bounds.Range           `json:"bounds"`
	RangeLow    float64                `json:"range_low"`
	RangeHigh   float64                `json:"range_high"`
}

func wireViewFrom(v *app.View) wireView {
	out := wireView{
		Tag:         v.Tag,
		Description: v.Description,
		Title:       v.Title,
		LogScale:    v.LogScale,
		Index:       v.Index,
		Values:      wireFloats(v.Values),
		MA15:        wireFloats(v.MA15),
		MA30:        wireFloats(v.MA30),
		Histogram:   v.Histogram,
		Bounds:      v.Bounds,
		RangeLow:    v.RangeLow,
		RangeHigh:   v.RangeHigh,
	}
	if v.Summary != nil {
		count := v.Summary.Count
		out.Count = &count
		out.Summary = map[string]*float64{
			"mean":   wireFloat(v.Summary.Mean),
			"std":    wireFloat(v.Summary.Std),
			"min":    wireFloat(v.Summary.Min),
			"q25":    wireFloat(v.Summary.Q25),
			"median": wireFloat(v.Summary.Median),
			"q75":    wireFloat(v.Summary.Q75),
			"max":    wireFloat(v.Summary.Max),
		}
	}
	return out
}

func wireFloats(values []float64) []*float64 {
	out := make([]*float64, len(values))
	for i := range values {
		out[i] = wireFloat(values[i])
	}
	return out
}

func wireFloat(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
	}
}
