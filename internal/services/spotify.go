// Spotify API implementation of [Client]
//
// Endpoints: https://developer.spotify.com/documentation/web-api/reference/
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/dance-party/internal/shared"
	"github.com/hashicorp/go-cleanhttp"
	"github.com/zmb3/spotify/v2"
	"golang.org/x/oauth2"
)

// DefaultBaseURL is the Spotify Web API root.
const DefaultBaseURL = "https://api.spotify.com/v1/"

// SearchTypes are the result kinds requested by [SpotifyService.Search].
const SearchTypes = spotify.SearchTypeAlbum | spotify.SearchTypeArtist | spotify.SearchTypeTrack

// SpotifyService implements [Client] over the Spotify Web API.
type SpotifyService struct {
	client     *spotify.Client
	httpClient *http.Client
	baseURL    string
	logger     *log.Logger
}

// SpotifyServiceOpts configures a [SpotifyService].
type SpotifyServiceOpts struct {
	// TokenSource supplies the bearer token for every request. Required.
	TokenSource oauth2.TokenSource
	// BaseURL defaults to [DefaultBaseURL].
	BaseURL string
	// HTTPClient provides the underlying transport, defaults to a pooled go-cleanhttp client.
	HTTPClient *http.Client
	Logger     *log.Logger
}

// NewSpotifyService creates a [SpotifyService] that authorizes requests with opts.TokenSource.
func NewSpotifyService(opts SpotifyServiceOpts) (*SpotifyService, error) {
	if opts.TokenSource == nil {
		return nil, fmt.Errorf("%w: token source is required", shared.ErrInvalidArgument)
	}

	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}

	base := opts.HTTPClient
	if base == nil {
		base = cleanhttp.DefaultPooledClient()
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	httpClient := &http.Client{
		Transport:     &oauth2.Transport{Source: opts.TokenSource, Base: statusTransport{base: base.Transport}},
		CheckRedirect: base.CheckRedirect,
		Jar:           base.Jar,
		Timeout:       base.Timeout,
	}

	return &SpotifyService{
		client:     spotify.New(httpClient, spotify.WithBaseURL(baseURL)),
		httpClient: httpClient,
		baseURL:    baseURL,
		logger:     logger,
	}, nil
}

// FetchProfile retrieves the current authenticated user's profile (GET /me).
func (s *SpotifyService) FetchProfile(ctx context.Context) (*spotify.PrivateUser, error) {
	s.logger.Debug("fetching profile")

	var user *spotify.PrivateUser
	err := withStatus(ctx, func(ctx context.Context) (err error) {
		user, err = s.client.CurrentUser(ctx)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("%w: fetch profile: %w", shared.ErrAPIRequest, err)
	}
	return user, nil
}

// Search runs GET /search?type=album,artist,track&q=query.
func (s *SpotifyService) Search(ctx context.Context, query string) (*spotify.SearchResult, error) {
	s.logger.Debug("searching", "query", query)

	var result *spotify.SearchResult
	err := withStatus(ctx, func(ctx context.Context) (err error) {
		result, err = s.client.Search(ctx, query, SearchTypes)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("%w: search: %w", shared.ErrAPIRequest, err)
	}
	return result, nil
}

// EnqueueTrack runs POST /me/player/queue?uri=trackURI. The response body is ignored.
func (s *SpotifyService) EnqueueTrack(ctx context.Context, trackURI string) error {
	s.logger.Debug("queueing track", "uri", trackURI)

	endpoint := s.baseURL + "me/player/queue?uri=" + url.QueryEscape(trackURI)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: enqueue track: %w", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: enqueue track: %w", shared.ErrAPIRequest, decodeError(resp))
	}

	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

// decodeError reads Spotify's {"error": {"status", "message"}} envelope.
//
// Bodies that don't match still produce a [spotify.Error] with the response status.
func decodeError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))

	var envelope struct {
		E spotify.Error `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil || envelope.E.Message == "" {
		message := strings.TrimSpace(string(body))
		if message == "" {
			message = http.StatusText(resp.StatusCode)
		}
		return spotify.Error{Status: resp.StatusCode, Message: message}
	}

	if envelope.E.Status == 0 {
		envelope.E.Status = resp.StatusCode
	}
	return envelope.E
}

// StatusCode returns the provider's HTTP status carried by err, or 0 when err did not come from a response.
func StatusCode(err error) int {
	var se spotify.Error
	if errors.As(err, &se) {
		return se.Status
	}
	return 0
}

type statusKey struct{}

// statusTransport records the status of each response in the request's context, if it carries a slot.
type statusTransport struct {
	base http.RoundTripper
}

func (t statusTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.base
	if base == nil {
		base = http.DefaultTransport
	}

	resp, err := base.RoundTrip(req)
	if resp != nil {
		if status, ok := req.Context().Value(statusKey{}).(*int); ok {
			*status = resp.StatusCode
		}
	}
	return resp, err
}

// withStatus runs call and makes sure an error caused by a non-2xx response carries that status.
//
// The zmb3 client only sets [spotify.Error.Status] when the error body has one, and returns a plain
// error for empty or non-JSON bodies.
func withStatus(ctx context.Context, call func(ctx context.Context) error) error {
	var status int
	err := call(context.WithValue(ctx, statusKey{}, &status))
	if err == nil || status < 300 || StatusCode(err) != 0 {
		return err
	}

	var se spotify.Error
	if errors.As(err, &se) {
		se.Status = status
		return se
	}
	return spotify.Error{Status: status, Message: err.Error()}
}
