// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"net/http"
	"os"
	"sync"
	"testing"

	"github.com/zmb3/spotify/v2"
)

// RecordingNavigator is a navigation test double that records redirects and URL resets.
type RecordingNavigator struct {
	Fragment  string
	Redirects []string
	Resets    int
}

func (n *RecordingNavigator) CurrentFragment() string { return n.Fragment }

func (n *RecordingNavigator) RedirectTo(url string) {
	n.Redirects = append(n.Redirects, url)
}

func (n *RecordingNavigator) ResetPathWithoutFragment() {
	n.Resets++
}

// RecordingNotifier collects notification messages.
type RecordingNotifier struct {
	mu       sync.Mutex
	Messages []string
}

func (n *RecordingNotifier) Notify(message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Messages = append(n.Messages, message)
}

// Count returns the number of notifications received.
func (n *RecordingNotifier) Count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.Messages)
}

// FailingStore is a key/value store whose every operation returns Err.
type FailingStore struct {
	Err error
}

func (s *FailingStore) Get(string) (string, bool, error) { return "", false, s.Err }
func (s *FailingStore) Set(string, string) error { return s.Err }
func (s *FailingStore) Remove(string) error { return s.Err }

// MockClient is a test double for [services.Client]
type MockClient struct {
	Profile     *spotify.PrivateUser
	Results     *spotify.SearchResult
	Err         error
	Queries     []string
	Queued      []string
	ProfileHits int
}

func (m *MockClient) FetchProfile(ctx context.Context) (*spotify.PrivateUser, error) {
	m.ProfileHits++
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Profile, nil
}

func (m *MockClient) Search(ctx context.Context, query string) (*spotify.SearchResult, error) {
	m.Queries = append(m.Queries, query)
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Results, nil
}

func (m *MockClient) EnqueueTrack(ctx context.Context, trackURI string) error {
	m.Queued = append(m.Queued, trackURI)
	return m.Err
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
	Requests []*http.Request
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	m.Requests = append(m.Requests, req)
	return m.response, m.err
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}
