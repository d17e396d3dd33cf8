package web

import (
	"bytes"
	"embed"
	"html/template"
	"io"
	"net/http"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/dance-party/internal/server"
	"github.com/desertthunder/dance-party/internal/services"
	"github.com/desertthunder/dance-party/internal/session"
)

//go:embed templates/*.html
var templateFiles embed.FS

// Options configures an [App].
type Options struct {
	Manager *session.Manager // required
	Client  services.Client  // required
	Logger  *log.Logger
}

// App serves the web front-end for one local user.
type App struct {
	manager   *session.Manager
	client    services.Client
	logger    *log.Logger
	templates *template.Template
	router    *server.BasicRouter

	once          sync.Once
	authenticated chan struct{}
}

// New parses the embedded templates and registers every route.
func New(opts Options) (*App, error) {
	templates, err := template.ParseFS(templateFiles, "templates/*.html")
	if err != nil {
		return nil, err
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	a := &App{
		manager:       opts.Manager,
		client:        opts.Client,
		logger:        logger,
		templates:     templates,
		router:        server.NewBasicRouter(),
		authenticated: make(chan struct{}, 1),
	}
	a.routes()
	return a, nil
}

func (a *App) routes() {
	a.router.Use(server.RequestID, server.AccessLog(a.logger), server.Recover(a.logger))

	a.router.HandleFunc("", "/", a.handleHome)
	a.router.HandleFunc(http.MethodGet, "/login", a.handleLogin)
	a.router.HandleFunc(http.MethodPost, "/callback", a.handleCallback)
	a.router.Handle(http.MethodGet, "/owner", a.requireAuth(http.HandlerFunc(a.handleOwner)))
	a.router.Handle(http.MethodPost, "/owner/queue", a.requireAuth(http.HandlerFunc(a.handleQueue)))
	a.router.HandleFunc(http.MethodPost, "/logout", a.handleLogout)
}

// Handler returns the root [http.Handler].
func (a *App) Handler() http.Handler {
	return a.router
}

// Authenticated receives once, after the first callback that stores an access token.
func (a *App) Authenticated() <-chan struct{} {
	return a.authenticated
}

func (a *App) signalAuthenticated() {
	a.once.Do(func() {
		a.authenticated <- struct{}{}
		close(a.authenticated)
	})
}

// render executes name into a buffer so a template error never leaves a half written page.
func (a *App) render(w http.ResponseWriter, status int, name string, data any) {
	var buf bytes.Buffer
	if err := a.templates.ExecuteTemplate(&buf, name, data); err != nil {
		a.logger.Error("failed to render template", "template", name, "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

type errorPage struct {
	Title   string
	Status  int
	Message string
}

// fail renders err with the provider's status, or fallback when err carries none.
func (a *App) fail(w http.ResponseWriter, r *http.Request, err error, fallback int) {
	status := services.StatusCode(err)
	if status == 0 {
		status = fallback
	}

	a.logger.Error("request failed",
		"path", r.URL.Path,
		"status", status,
		"error", err,
		"request_id", server.RequestIDFrom(r.Context()),
	)
	a.render(w, status, "error.html", errorPage{Title: "Error", Status: status, Message: err.Error()})
}
