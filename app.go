// Package mdpress is a web front end for publishing markdown documents to
// WordPress. It wraps the document/publisher/wordpress pipeline with an Echo
// server: an upload form, credential checking, optional AI-assisted content
// generation, and a SQLite history of past publishes.
//
// Users provide their own templ components via the ViewFuncs struct, and
// mdpress handles handler logic, middleware, and the publishing pipeline.
package mdpress

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"

	"github.com/eringen/mdpress/aigen"
)

// ViewFuncs holds user-provided templ components that the framework calls
// when rendering pages. This is the inversion-of-control mechanism that
// lets users own and customize all templates.
type ViewFuncs struct {
	Home        func(creds CredentialStatus, csrfToken string) templ.Component
	History     func(records []PublishRecord, csrfToken string) templ.Component
	NotFound    func() templ.Component
	ServerError func() templ.Component
}

// App is the central mdpress application. It wires together the store,
// handlers, middleware, pipeline, and user-provided templates.
type App struct {
	Config Config
	Echo   *echo.Echo
	Store  *Store
	Views  ViewFuncs

	generator    *aigen.Generator
	limiter      *RateLimiter
	customRoutes []func(*App)
	staticDir    string
}

// New creates a new mdpress App with the given configuration and view functions.
func New(cfg Config, views ViewFuncs, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config:    cfg,
		Echo:      echo.New(),
		Views:     views,
		staticDir: "public",
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Start initializes the store, generator, middleware, and routes, and starts
// the server.
func (a *App) Start() error {
	if a.Config.SessionSecret == "" {
		return fmt.Errorf("mdpress: SessionSecret is required")
	}

	store, err := NewStore(a.Config.DatabasePath)
	if err != nil {
		return fmt.Errorf("mdpress: init store: %w", err)
	}
	a.Store = store

	if a.Config.AnthropicAPIKey != "" {
		gen, err := aigen.New(aigen.Config{
			APIKey: a.Config.AnthropicAPIKey,
			Model:  a.Config.AnthropicModel,
		})
		if err != nil {
			return fmt.Errorf("mdpress: init generator: %w", err)
		}
		a.generator = gen
	}

	// Publishes and generations hit remote services; cap them per IP.
	a.limiter = NewRateLimiter(10, rateWindow)

	a.setupMiddleware()
	a.setupRoutes()

	for _, fn := range a.customRoutes {
		fn(a)
	}

	if err := a.Echo.Start(a.Config.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (a *App) setupRoutes() {
	e := a.Echo

	// User's static assets
	e.Static("/public", a.staticDir)
	e.GET("/favicon.svg", a.handleFavicon)

	// Pages
	e.GET("/", a.handleHome)
	e.GET("/history/", a.handleHistory)
	e.GET("/sample.md", a.handleSample)

	// API
	e.POST("/api/credentials/check/", a.handleCredentialsCheck)
	e.POST("/api/credentials/clear/", a.handleCredentialsClear)
	e.POST("/api/publish/", a.handlePublish)
	e.POST("/api/generate/", a.handleGenerate)
}

func (a *App) handleFavicon(c echo.Context) error {
	return c.File(a.staticDir + "/favicon.svg")
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	he, ok := err.(*echo.HTTPError)
	if ok && he.Code == http.StatusNotFound && a.Views.NotFound != nil {
		_ = RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 && a.Views.ServerError != nil {
		c.Logger().Errorf("server error: %v", err)
		_ = RenderStatus(c, code, a.Views.ServerError())
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.Store != nil {
		return a.Store.Close()
	}
	return nil
}

// EnvOr returns the value of the environment variable key, or fallback if empty.
// This is a convenience function for use in main.go files.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// MustEnv returns the value of the environment variable key, or fatally exits if empty.
func MustEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		log.Fatalf("mdpress: required environment variable %s is not set", key)
	}
	return v
}
