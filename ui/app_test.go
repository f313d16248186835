package ui

import (
	"bytes"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"

	"tagplot/app"
	"tagplot/domain/series"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	frame := series.NewFrame(
		[]string{"2020-01-02", "2020-01-03", "2020-01-06"},
		map[string][]float64{
			"AAPL": {75.1, 74.4, 74.9},
			"GOOG": {math.NaN(), 68.0, 69.9},
		},
	)
	panel, err := app.NewPanel(frame, map[string]interface{}{
		"AAPL": "Apple",
		"GOOG": "Alphabet",
	})
	if err != nil {
		t.Fatal(err)
	}
	a, err := NewApp(panel, Config{})
	if err != nil {
		t.Fatal(err)
	}
	return a
}

func TestHandleIndex(t *testing.T) {
	a := newTestApp(t)
	rec := httptest.NewRecorder()
	a.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{"<select", "AAPL", "Apple", "Alphabet"} {
		if !strings.Contains(body, want) {
			t.Errorf("page missing %q", want)
		}
	}
}

func TestHandleState(t *testing.T) {
	a := newTestApp(t)
	rec := httptest.NewRecorder()
	a.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/state", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var state app.WidgetState
	if err := json.NewDecoder(rec.Body).Decode(&state); err != nil {
		t.Fatal(err)
	}
	if state.Tag != "AAPL" || state.Description != "Apple" {
		t.Errorf("state = %+v", state)
	}
}

func TestHandleWidgets(t *testing.T) {
	a := newTestApp(t)

	post := func(body string) (*httptest.ResponseRecorder, app.WidgetState) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/widgets", bytes.NewBufferString(body))
		a.Router().ServeHTTP(rec, req)
		var state app.WidgetState
		if rec.Code == http.StatusOK {
			if err := json.NewDecoder(rec.Body).Decode(&state); err != nil {
				t.Fatal(err)
			}
		}
		return rec, state
	}

	rec, state := post(`{"tag":"GOOG"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	if state.Description != "Alphabet" {
		t.Errorf("description = %q after tag event", state.Description)
	}

	rec, state = post(`{"description":"Apple","log_scale":true}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if state.Tag != "AAPL" || !state.LogScale {
		t.Errorf("state = %+v after combined event", state)
	}

	if rec, _ = post(`{"tag":"TSLA"}`); rec.Code != http.StatusBadRequest {
		t.Errorf("unknown tag: status = %d, want 400", rec.Code)
	}
	if rec, _ = post(`not json`); rec.Code != http.StatusBadRequest {
		t.Errorf("malformed body: status = %d, want 400", rec.Code)
	}
}

func TestHandleView(t *testing.T) {
	a := newTestApp(t)
	rec := httptest.NewRecorder()
	a.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/view", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	var view struct {
		Title  string     `json:"title"`
		Index  []string   `json:"index"`
		Values []*float64 `json:"values"`
		MA15   []*float64 `json:"ma15"`
		Count  *int       `json:"count"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&view); err != nil {
		t.Fatal(err)
	}
	if view.Title != "AAPL - closing price" {
		t.Errorf("title = %q", view.Title)
	}
	if len(view.Values) != 3 || len(view.MA15) != 3 {
		t.Fatalf("lengths = %d/%d, want 3", len(view.Values), len(view.MA15))
	}
	// Three points cannot fill a 15 period window, so the average is null.
	for i, v := range view.MA15 {
		if v != nil {
			t.Errorf("ma15[%d] = %v, want null", i, *v)
		}
	}
	if view.Count == nil || *view.Count != 3 {
		t.Errorf("count = %v, want 3", view.Count)
	}
}

func TestHandleView_MissingValuesEncodeAsNull(t *testing.T) {
	a := newTestApp(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/widgets", bytes.NewBufferString(`{"tag":"GOOG"}`))
	a.Router().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("widget event failed: %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	a.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/view", nil))
	var view struct {
		Index  []string   `json:"index"`
		Values []*float64 `json:"values"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&view); err != nil {
		t.Fatal(err)
	}
	// GOOG's leading missing row is sliced off before rendering.
	if len(view.Values) != 2 {
		t.Fatalf("values = %d entries, want leading missing row sliced", len(view.Values))
	}
	if view.Index[0] != "2020-01-03" {
		t.Errorf("index starts at %q", view.Index[0])
	}
	for i, v := range view.Values {
		if v == nil {
			t.Errorf("values[%d] unexpectedly null", i)
		}
	}
}

func TestHandleHealth(t *testing.T) {
	a := newTestApp(t)
	rec := httptest.NewRecorder()
	a.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestWebSocketSync(t *testing.T) {
	a := newTestApp(t)
	server := httptest.NewServer(a.Router())
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()

	var state app.WidgetState
	if err := conn.ReadJSON(&state); err != nil {
		t.Fatal(err)
	}
	if state.Tag != "AAPL" {
		t.Errorf("initial state tag = %q", state.Tag)
	}

	if err := conn.WriteJSON(map[string]interface{}{"description": "Alphabet"}); err != nil {
		t.Fatal(err)
	}
	if err := conn.ReadJSON(&state); err != nil {
		t.Fatal(err)
	}
	if state.Tag != "GOOG" || state.Description != "Alphabet" {
		t.Errorf("state after event = %+v", state)
	}
}
