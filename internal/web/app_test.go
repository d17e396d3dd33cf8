package web

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/desertthunder/dance-party/internal/session"
	"github.com/desertthunder/dance-party/internal/shared"
	tu "github.com/desertthunder/dance-party/internal/testing"
	"github.com/zmb3/spotify/v2"
)

type fixture struct {
	app    *App
	store  *session.MemoryStore
	client *tu.MockClient
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := session.NewMemoryStore()
	client := &tu.MockClient{
		Profile: &spotify.PrivateUser{
			User:  spotify.User{ID: "u1", DisplayName: "DJ Test"},
			Email: "dj@example.com",
		},
		Results: &spotify.SearchResult{
			Tracks: &spotify.FullTrackPage{Tracks: []spotify.FullTrack{
				{SimpleTrack: spotify.SimpleTrack{Name: "One More Time", URI: "spotify:track:t1"}},
			}},
		},
	}

	manager := session.NewManager(session.Options{
		ClientID:    "cid",
		RedirectURI: "http://127.0.0.1:3000/",
		Store:       store,
	})

	app, err := New(Options{Manager: manager, Client: client})
	if err != nil {
		t.Fatalf("failed to create app: %v", err)
	}
	return &fixture{app: app, store: store, client: client}
}

func (f *fixture) do(method, target string, form url.Values) *httptest.ResponseRecorder {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}

	rec := httptest.NewRecorder()
	f.app.Handler().ServeHTTP(rec, req)
	return rec
}

// login runs GET /login and returns the state sent to the provider.
func (f *fixture) login(t *testing.T) string {
	t.Helper()
	rec := f.do(http.MethodGet, "/login", nil)
	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302 from /login, got %d", rec.Code)
	}

	u, err := url.Parse(rec.Header().Get("Location"))
	if err != nil {
		t.Fatalf("invalid Location: %v", err)
	}
	return u.Query().Get("state")
}

func (f *fixture) authenticate(t *testing.T) {
	t.Helper()
	if err := f.store.Set(session.AccessTokenKey, "tok1"); err != nil {
		t.Fatalf("failed to seed token: %v", err)
	}
}

func (f *fixture) token() string {
	token, _, _ := f.store.Get(session.AccessTokenKey)
	return token
}

func TestHome(t *testing.T) {
	t.Run("logged out", func(t *testing.T) {
		f := newFixture(t)
		rec := f.do(http.MethodGet, "/", nil)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		body := rec.Body.String()
		if !strings.Contains(body, `href="/login"`) {
			t.Error("expected login link")
		}
		if !strings.Contains(body, "window.location.hash") || !strings.Contains(body, `action="/callback"`) {
			t.Error("expected bridge script posting to /callback")
		}
		if rec.Header().Get("X-Request-ID") == "" {
			t.Error("expected request id header")
		}
	})

	t.Run("logged in", func(t *testing.T) {
		f := newFixture(t)
		f.authenticate(t)

		body := f.do(http.MethodGet, "/", nil).Body.String()
		if !strings.Contains(body, `href="/owner"`) {
			t.Error("expected owner link")
		}
	})

	t.Run("unknown paths redirect home", func(t *testing.T) {
		f := newFixture(t)
		for _, path := range []string{"/nope", "/owner/extra/deep", "/favicon.ico"} {
			rec := f.do(http.MethodGet, path, nil)
			if rec.Code != http.StatusFound || rec.Header().Get("Location") != "/" {
				t.Errorf("%s: expected 302 to /, got %d %q", path, rec.Code, rec.Header().Get("Location"))
			}
		}
	})

	t.Run("rejects non GET", func(t *testing.T) {
		f := newFixture(t)
		if rec := f.do(http.MethodPost, "/", nil); rec.Code != http.StatusMethodNotAllowed {
			t.Errorf("expected 405, got %d", rec.Code)
		}
	})
}

func TestLogin(t *testing.T) {
	f := newFixture(t)
	rec := f.do(http.MethodGet, "/login", nil)

	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}

	u, err := url.Parse(rec.Header().Get("Location"))
	if err != nil {
		t.Fatalf("invalid Location: %v", err)
	}
	if u.Host != "accounts.spotify.com" || u.Path != "/authorize" {
		t.Errorf("unexpected authorize endpoint %s", u)
	}

	q := u.Query()
	if q.Get("response_type") != "token" || q.Get("client_id") != "cid" {
		t.Errorf("unexpected params %v", q)
	}

	stored, ok, _ := f.store.Get(session.StateKey)
	if !ok || stored != q.Get("state") {
		t.Errorf("expected stored state %q to match %q", stored, q.Get("state"))
	}
}

func TestCallback(t *testing.T) {
	t.Run("valid round trip", func(t *testing.T) {
		f := newFixture(t)
		state := f.login(t)

		rec := f.do(http.MethodPost, "/callback", url.Values{
			"fragment": {fmt.Sprintf("#access_token=tok1&token_type=Bearer&expires_in=3600&state=%s", state)},
			"path":     {"/"},
		})

		if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/" {
			t.Errorf("expected 303 to /, got %d %q", rec.Code, rec.Header().Get("Location"))
		}
		if f.token() != "tok1" {
			t.Errorf("expected token to be stored, got %q", f.token())
		}
		if _, ok, _ := f.store.Get(session.StateKey); ok {
			t.Error("expected state to be cleared")
		}

		select {
		case <-f.app.Authenticated():
		default:
			t.Error("expected authenticated signal")
		}
	})

	t.Run("tampered state", func(t *testing.T) {
		f := newFixture(t)
		f.login(t)

		rec := f.do(http.MethodPost, "/callback", url.Values{
			"fragment": {"#access_token=evil&state=wrong"},
			"path":     {"/"},
		})

		if rec.Code != http.StatusOK {
			t.Fatalf("expected notice page, got %d", rec.Code)
		}
		body := rec.Body.String()
		if !strings.Contains(body, session.AuthErrorMessage) || !strings.Contains(body, "alert(") {
			t.Errorf("expected alert with auth error, got: %s", body)
		}
		if f.token() != "" {
			t.Errorf("expected no token, got %q", f.token())
		}

		select {
		case <-f.app.Authenticated():
			t.Error("expected no authenticated signal")
		default:
		}
	})

	t.Run("replayed fragment", func(t *testing.T) {
		f := newFixture(t)
		state := f.login(t)
		form := url.Values{"fragment": {"access_token=tok1&state=" + state}, "path": {"/"}}

		f.do(http.MethodPost, "/callback", form)
		f.do(http.MethodPost, "/logout", nil)

		rec := f.do(http.MethodPost, "/callback", form)
		if !strings.Contains(rec.Body.String(), session.AuthErrorMessage) {
			t.Error("expected replay to be rejected")
		}
		if f.token() != "" {
			t.Errorf("expected no token after replay, got %q", f.token())
		}
	})

	t.Run("no access token", func(t *testing.T) {
		f := newFixture(t)
		f.login(t)

		rec := f.do(http.MethodPost, "/callback", url.Values{
			"fragment": {"#error=access_denied&state=x"},
			"path":     {"/"},
		})
		if rec.Code != http.StatusSeeOther {
			t.Errorf("expected 303, got %d", rec.Code)
		}
		if f.token() != "" {
			t.Error("expected no token")
		}
	})

	t.Run("unsafe path", func(t *testing.T) {
		f := newFixture(t)
		state := f.login(t)

		rec := f.do(http.MethodPost, "/callback", url.Values{
			"fragment": {"access_token=tok1&state=" + state},
			"path":     {"//evil.example.com/steal"},
		})
		if rec.Header().Get("Location") != "/" {
			t.Errorf("expected redirect to /, got %q", rec.Header().Get("Location"))
		}
	})

	t.Run("requires POST", func(t *testing.T) {
		f := newFixture(t)
		if rec := f.do(http.MethodGet, "/callback", nil); rec.Code != http.StatusMethodNotAllowed {
			t.Errorf("expected 405, got %d", rec.Code)
		}
	})
}

func TestOwner(t *testing.T) {
	t.Run("redirects when unauthenticated", func(t *testing.T) {
		f := newFixture(t)
		rec := f.do(http.MethodGet, "/owner", nil)

		if rec.Code != http.StatusFound || rec.Header().Get("Location") != "/" {
			t.Errorf("expected 302 to /, got %d %q", rec.Code, rec.Header().Get("Location"))
		}
		if f.client.ProfileHits != 0 {
			t.Error("expected no API call before authentication")
		}
	})

	t.Run("renders profile", func(t *testing.T) {
		f := newFixture(t)
		f.authenticate(t)

		rec := f.do(http.MethodGet, "/owner", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		body := rec.Body.String()
		if !strings.Contains(body, "DJ Test") || !strings.Contains(body, "dj@example.com") {
			t.Errorf("expected profile on page, got: %s", body)
		}
		if len(f.client.Queries) != 0 {
			t.Error("expected no search without a query")
		}
	})

	t.Run("search", func(t *testing.T) {
		f := newFixture(t)
		f.authenticate(t)

		rec := f.do(http.MethodGet, "/owner?q=daft+punk", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if len(f.client.Queries) != 1 || f.client.Queries[0] != "daft punk" {
			t.Errorf("expected search for 'daft punk', got %v", f.client.Queries)
		}

		body := rec.Body.String()
		if !strings.Contains(body, "One More Time") || !strings.Contains(body, `value="spotify:track:t1"`) {
			t.Errorf("expected track with queue form, got: %s", body)
		}
	})

	t.Run("provider status is kept", func(t *testing.T) {
		f := newFixture(t)
		f.authenticate(t)
		f.client.Err = fmt.Errorf("%w: %w", shared.ErrAPIRequest, spotify.Error{Status: http.StatusUnauthorized, Message: "The access token expired"})

		rec := f.do(http.MethodGet, "/owner", nil)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "The access token expired") {
			t.Error("expected provider message on error page")
		}
	})

	t.Run("transport error is 502", func(t *testing.T) {
		f := newFixture(t)
		f.authenticate(t)
		f.client.Err = errors.New("dial tcp: connection refused")

		if rec := f.do(http.MethodGet, "/owner", nil); rec.Code != http.StatusBadGateway {
			t.Errorf("expected 502, got %d", rec.Code)
		}
	})

	t.Run("store failure", func(t *testing.T) {
		manager := session.NewManager(session.Options{Store: &tu.FailingStore{Err: errors.New("disk full")}})
		app, err := New(Options{Manager: manager, Client: &tu.MockClient{}})
		if err != nil {
			t.Fatalf("failed to create app: %v", err)
		}

		rec := httptest.NewRecorder()
		app.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/owner", nil))
		if rec.Code != http.StatusInternalServerError {
			t.Errorf("expected 500, got %d", rec.Code)
		}
	})
}

func TestQueue(t *testing.T) {
	t.Run("queues and redirects back", func(t *testing.T) {
		f := newFixture(t)
		f.authenticate(t)

		rec := f.do(http.MethodPost, "/owner/queue", url.Values{"uri": {"spotify:track:t1"}, "q": {"daft punk"}})
		if rec.Code != http.StatusSeeOther {
			t.Fatalf("expected 303, got %d", rec.Code)
		}
		if want := "/owner?q=daft+punk&queued=spotify%3Atrack%3At1"; rec.Header().Get("Location") != want {
			t.Errorf("expected Location %q, got %q", want, rec.Header().Get("Location"))
		}
		if len(f.client.Queued) != 1 || f.client.Queued[0] != "spotify:track:t1" {
			t.Errorf("expected track to be queued, got %v", f.client.Queued)
		}
	})

	t.Run("requires uri", func(t *testing.T) {
		f := newFixture(t)
		f.authenticate(t)

		if rec := f.do(http.MethodPost, "/owner/queue", url.Values{}); rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("requires auth", func(t *testing.T) {
		f := newFixture(t)
		rec := f.do(http.MethodPost, "/owner/queue", url.Values{"uri": {"spotify:track:t1"}})

		if rec.Code != http.StatusFound {
			t.Errorf("expected 302, got %d", rec.Code)
		}
		if len(f.client.Queued) != 0 {
			t.Error("expected nothing queued")
		}
	})

	t.Run("no active device", func(t *testing.T) {
		f := newFixture(t)
		f.authenticate(t)
		f.client.Err = spotify.Error{Status: http.StatusNotFound, Message: "No active device found"}

		rec := f.do(http.MethodPost, "/owner/queue", url.Values{"uri": {"spotify:track:t1"}})
		if rec.Code != http.StatusNotFound {
			t.Errorf("expected 404, got %d", rec.Code)
		}
	})
}

func TestLogout(t *testing.T) {
	f := newFixture(t)
	f.authenticate(t)

	for range 2 {
		rec := f.do(http.MethodPost, "/logout", nil)
		if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/" {
			t.Errorf("expected 303 to /, got %d %q", rec.Code, rec.Header().Get("Location"))
		}
	}
	if f.token() != "" {
		t.Error("expected token to be removed")
	}

	if rec := f.do(http.MethodGet, "/owner", nil); rec.Code != http.StatusFound {
		t.Errorf("expected owner to redirect after logout, got %d", rec.Code)
	}
}

func TestLocalPath(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"/", "/"},
		{"/owner", "/owner"},
		{"/owner#access_token=x", "/owner"},
		{"/owner?x=1", "/owner"},
		{"", "/"},
		{"owner", "/"},
		{"//evil.com", "/"},
		{`/\evil.com`, "/"},
		{"https://evil.com/", "/"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := localPath(tt.in); got != tt.want {
				t.Errorf("localPath(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
