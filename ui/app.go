// Package ui serves the dashboard: an HTML page, a JSON view API, a
// websocket channel for widget sync, and the port-retrying host bootstrap.
package ui

import (
	"embed"
	"fmt"
	"html/template"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"tagplot/app"
	"tagplot/internal"
)

//go:embed templates/*.html
var embeddedFiles embed.FS

// Config holds UI application configuration.
type Config struct {
	// WebsocketOrigin is the port remote pages are allowed to open the
	// widget-sync socket from. Zero allows same-origin only.
	WebsocketOrigin int
	// NotesPath optionally names a markdown file rendered into the notes
	// panel.
	NotesPath string
}

// App is the UI application around a single dashboard panel.
type App struct {
	router    *chi.Mux
	panel     *app.Panel
	templates *template.Template
	notes     template.HTML
	wsOrigin  int
	log       *internal.Logger
}

// NewApp creates the UI application for a ready panel.
func NewApp(panel *app.Panel, config Config) (*App, error) {
	funcMap := template.FuncMap{
		"printf": fmt.Sprintf,
	}
	templates, err := template.New("").Funcs(funcMap).ParseFS(embeddedFiles, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	a := &App{
		router:    chi.NewRouter(),
		panel:     panel,
		templates: templates,
		wsOrigin:  config.WebsocketOrigin,
		log:       internal.DefaultLogger,
	}

	if config.NotesPath != "" {
		notes, err := renderNotes(config.NotesPath)
		if err != nil {
			return nil, fmt.Errorf("failed to render notes file: %w", err)
		}
		a.notes = notes
	}

	a.setupMiddleware()
	a.setupRoutes()
	return a, nil
}

func (a *App) setupMiddleware() {
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))
}

func (a *App) setupRoutes() {
	a.router.Get("/", a.handleIndex)
	a.router.Get("/api/view", a.handleView)
	a.router.Get("/api/state", a.handleState)
	a.router.Post("/api/widgets", a.handleWidgets)
	a.router.Get("/ws", a.handleWebSocket)
	a.router.Get("/healthz", a.handleHealth)
}

// Router exposes the HTTP handler for hosting and tests.
func (a *App) Router() *chi.Mux {
	return a.router
}
