package web

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/desertthunder/dance-party/internal/models"
	"github.com/desertthunder/dance-party/internal/server"
)

type homePage struct {
	Title         string
	Authenticated bool
}

type noticePage struct {
	Title    string
	Messages []string
	Alert    string
	Target   string
}

type ownerPage struct {
	Title   string
	Profile models.Profile
	Query   string
	Rows    []models.SearchRow
	Queued  string
}

// handleHome serves the bridge page at "/" and sends every unknown path back to it.
func (a *App) handleHome(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	ok, err := a.manager.With(&requestNavigator{}, nil).IsAuthenticated()
	if err != nil {
		a.fail(w, r, err, http.StatusInternalServerError)
		return
	}
	a.render(w, http.StatusOK, "home.html", homePage{Title: "Home", Authenticated: ok})
}

func (a *App) handleLogin(w http.ResponseWriter, r *http.Request) {
	nav := &requestNavigator{}
	if err := a.manager.With(nav, nil).Login(); err != nil {
		a.fail(w, r, err, http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, nav.target(), http.StatusFound)
}

// handleCallback validates the fragment posted by the bridge script.
func (a *App) handleCallback(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	nav := &requestNavigator{fragment: r.PostForm.Get("fragment"), path: r.PostForm.Get("path")}
	notices := &noticeCollector{}

	ok, err := a.manager.With(nav, notices).IsAuthenticated()
	if err != nil {
		a.fail(w, r, err, http.StatusInternalServerError)
		return
	}

	if len(notices.messages) > 0 {
		a.render(w, http.StatusOK, "notice.html", noticePage{
			Title:    "Authentication",
			Messages: notices.messages,
			Alert:    strings.Join(notices.messages, "\n"),
			Target:   nav.target(),
		})
		return
	}

	if ok && nav.reset {
		a.logger.Info("login completed", "request_id", server.RequestIDFrom(r.Context()))
		a.signalAuthenticated()
	}
	http.Redirect(w, r, nav.target(), http.StatusSeeOther)
}

// requireAuth guards the protected routes. Unauthenticated requests are redirected to "/".
func (a *App) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ok, err := a.manager.With(&requestNavigator{}, nil).IsAuthenticated()
		if err != nil {
			a.fail(w, r, err, http.StatusInternalServerError)
			return
		}
		if !ok {
			http.Redirect(w, r, "/", http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (a *App) handleOwner(w http.ResponseWriter, r *http.Request) {
	user, err := a.client.FetchProfile(r.Context())
	if err != nil {
		a.fail(w, r, err, http.StatusBadGateway)
		return
	}

	page := ownerPage{
		Title:   "Owner",
		Profile: models.NewProfile(user),
		Query:   strings.TrimSpace(r.URL.Query().Get("q")),
		Queued:  r.URL.Query().Get("queued"),
	}

	if page.Query != "" {
		result, err := a.client.Search(r.Context(), page.Query)
		if err != nil {
			a.fail(w, r, err, http.StatusBadGateway)
			return
		}
		page.Rows = models.FlattenSearch(result)
	}

	a.render(w, http.StatusOK, "owner.html", page)
}

func (a *App) handleQueue(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	uri := strings.TrimSpace(r.PostForm.Get("uri"))
	if uri == "" {
		http.Error(w, "Missing track uri", http.StatusBadRequest)
		return
	}

	if err := a.client.EnqueueTrack(r.Context(), uri); err != nil {
		a.fail(w, r, err, http.StatusBadGateway)
		return
	}

	query := url.Values{}
	if q := r.PostForm.Get("q"); q != "" {
		query.Set("q", q)
	}
	query.Set("queued", uri)
	http.Redirect(w, r, "/owner?"+query.Encode(), http.StatusSeeOther)
}

func (a *App) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := a.manager.With(&requestNavigator{}, nil).Logout(); err != nil {
		a.fail(w, r, err, http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
