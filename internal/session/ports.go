package session

// Storage keys shared with the browser-era front-end.
const (
	StateKey       = "spotify_auth_state"
	AccessTokenKey = "spotify_access_token"
)

// Store persists string values under string keys.
//
// Remove must not fail when the key is absent.
type Store interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Remove(key string) error
}

// Navigator abstracts the browser's address bar.
type Navigator interface {
	CurrentFragment() string   // CurrentFragment returns the raw URL fragment, with or without the leading '#'
	RedirectTo(url string)     // RedirectTo sends the user agent to url
	ResetPathWithoutFragment() // ResetPathWithoutFragment replaces the visible URL with the page path
}

// Notifier surfaces a message to the user.
type Notifier interface {
	Notify(message string)
}

// NotifierFunc adapts a function to [Notifier].
type NotifierFunc func(message string)

// Notify calls f(message).
func (f NotifierFunc) Notify(message string) {
	f(message)
}

type nopNavigator struct{}

func (nopNavigator) CurrentFragment() string { return "" }
func (nopNavigator) RedirectTo(string) {}
func (nopNavigator) ResetPathWithoutFragment() {}

// StaticNavigator is a [Navigator] over a fixed fragment that records where it was sent.
//
// Used where there is no address bar, e.g. a redirect URL pasted into the CLI.
type StaticNavigator struct {
	Fragment   string
	Redirected string
	Reset      bool
}

func (n *StaticNavigator) CurrentFragment() string { return n.Fragment }
func (n *StaticNavigator) RedirectTo(url string) { n.Redirected = url }
func (n *StaticNavigator) ResetPathWithoutFragment() { n.Reset = true }
