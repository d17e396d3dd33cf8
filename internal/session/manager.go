package session

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"golang.org/x/oauth2"

	spotifyauth "github.com/zmb3/spotify/v2/auth"
)

// AuthErrorMessage is sent to the [Notifier] when a callback fails state validation.
const AuthErrorMessage = "There was an error during the authentication"

// DefaultScopes are requested on every login.
var DefaultScopes = []string{
	spotifyauth.ScopeUserReadPrivate,
	spotifyauth.ScopeUserReadEmail,
}

// Options configures a [Manager].
type Options struct {
	ClientID    string
	RedirectURI string
	Store       Store
	Navigator   Navigator   // defaults to a navigator with no fragment that ignores redirects
	Notifier    Notifier    // defaults to discarding messages
	Logger      *log.Logger // defaults to discarding output
	Intn        IndexFunc   // nonce index generator, defaults to crypto/rand
}

// Manager owns the implicit-flow handshake and the persisted access token.
type Manager struct {
	auth     *spotifyauth.Authenticator
	store    Store
	nav      Navigator
	notifier Notifier
	logger   *log.Logger
	intn     IndexFunc
}

// NewManager creates a [Manager] from opts.
//
// opts.Store is required.
func NewManager(opts Options) *Manager {
	if opts.Navigator == nil {
		opts.Navigator = nopNavigator{}
	}
	if opts.Notifier == nil {
		opts.Notifier = NotifierFunc(func(string) {})
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	auth := spotifyauth.New(
		spotifyauth.WithClientID(opts.ClientID),
		spotifyauth.WithRedirectURL(opts.RedirectURI),
		spotifyauth.WithScopes(DefaultScopes...),
	)

	return &Manager{
		auth:     auth,
		store:    opts.Store,
		nav:      opts.Navigator,
		notifier: opts.Notifier,
		logger:   opts.Logger,
		intn:     opts.Intn,
	}
}

// With returns a copy of m bound to nav and notifier. A nil argument keeps m's current one.
//
// The HTTP front-end builds one per request, since each request carries its own fragment and response.
func (m *Manager) With(nav Navigator, notifier Notifier) *Manager {
	c := *m
	if nav != nil {
		c.nav = nav
	}
	if notifier != nil {
		c.notifier = notifier
	}
	return &c
}

// GenerateLoginURL stores a fresh nonce under [StateKey] and returns the authorization URL carrying it.
func (m *Manager) GenerateLoginURL() (string, error) {
	state := GenerateRandomString(NonceLength, m.intn)
	if err := m.store.Set(StateKey, state); err != nil {
		return "", fmt.Errorf("failed to store auth state: %w", err)
	}

	m.logger.Debug("stored login state")
	return m.auth.AuthURL(state, oauth2.SetAuthURLParam("response_type", "token")), nil
}

// Login sends the navigator to a freshly generated authorization URL.
func (m *Manager) Login() error {
	url, err := m.GenerateLoginURL()
	if err != nil {
		return err
	}
	m.nav.RedirectTo(url)
	return nil
}

// IsAuthenticated consumes the navigator's fragment, validating it when it carries an access_token, and
// reports whether an access token is stored afterward.
func (m *Manager) IsAuthenticated() (bool, error) {
	params := ParseFragment(m.nav.CurrentFragment())
	if reason, ok := params[ErrorParam]; ok {
		m.logger.Warn("authorization was not granted", "error", reason)
	}

	if params.Has(AccessTokenParam) {
		if err := m.ValidateCallback(params); err != nil {
			return false, err
		}
	}

	token, err := m.AccessToken()
	if err != nil {
		return false, err
	}
	return token != "", nil
}

// ValidateCallback checks the callback's state against the stored nonce.
//
// A token whose state is missing or does not match is discarded: the notifier is told and the user is
// logged out. Otherwise the nonce is removed and the token, if any, is stored. Only store failures are
// returned as errors.
func (m *Manager) ValidateCallback(params HashParams) error {
	token := params[AccessTokenParam]
	state, hasState := params[StateParam]

	stored, hasStored, err := m.store.Get(StateKey)
	if err != nil {
		return fmt.Errorf("failed to read auth state: %w", err)
	}

	if token != "" && (!hasState || !hasStored || state != stored) {
		m.logger.Warn("rejected authorization callback", "has_state", hasState, "has_stored_state", hasStored)
		m.notifier.Notify(AuthErrorMessage)
		return m.Logout()
	}

	if err := m.store.Remove(StateKey); err != nil {
		return fmt.Errorf("failed to clear auth state: %w", err)
	}

	if token == "" {
		return nil
	}

	if err := m.store.Set(AccessTokenKey, token); err != nil {
		return fmt.Errorf("failed to store access token: %w", err)
	}

	m.logger.Info("stored access token")
	m.nav.ResetPathWithoutFragment()
	return nil
}

// Logout removes the stored access token and resets the visible URL. Safe to call when logged out.
func (m *Manager) Logout() error {
	if err := m.store.Remove(AccessTokenKey); err != nil {
		return fmt.Errorf("failed to remove access token: %w", err)
	}
	m.nav.ResetPathWithoutFragment()
	return nil
}

// AccessToken returns the stored access token, or "" when there is none.
func (m *Manager) AccessToken() (string, error) {
	token, _, err := m.store.Get(AccessTokenKey)
	if err != nil {
		return "", fmt.Errorf("failed to read access token: %w", err)
	}
	return token, nil
}

// TokenSource returns the store-backed [oauth2.TokenSource] for API clients.
func (m *Manager) TokenSource() oauth2.TokenSource {
	return TokenSource(m.store)
}
