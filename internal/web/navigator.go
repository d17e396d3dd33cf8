package web

import (
	"strings"

	"github.com/desertthunder/dance-party/internal/session"
)

var (
	_ session.Navigator = (*requestNavigator)(nil)
	_ session.Notifier  = (*noticeCollector)(nil)
)

// requestNavigator is the [session.Navigator] for a single HTTP request.
//
// Redirects and URL resets are recorded and turned into the response afterward.
type requestNavigator struct {
	fragment string
	path     string
	redirect string
	reset    bool
}

func (n *requestNavigator) CurrentFragment() string { return n.fragment }

func (n *requestNavigator) RedirectTo(url string) { n.redirect = url }

func (n *requestNavigator) ResetPathWithoutFragment() { n.reset = true }

// target is where the browser goes next: an explicit redirect, else the page path without its fragment.
func (n *requestNavigator) target() string {
	if n.redirect != "" {
		return n.redirect
	}
	return localPath(n.path)
}

// localPath keeps p only when it is a path on this origin.
func localPath(p string) string {
	if i := strings.IndexAny(p, "#?"); i >= 0 {
		p = p[:i]
	}
	if !strings.HasPrefix(p, "/") || strings.HasPrefix(p, "//") || strings.Contains(p, `\`) {
		return "/"
	}
	return p
}

// noticeCollector gathers notifications for the response page.
type noticeCollector struct {
	messages []string
}

func (c *noticeCollector) Notify(message string) {
	c.messages = append(c.messages, message)
}
