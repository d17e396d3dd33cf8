// package services defines interface Client for the Spotify Web API
package services

import (
	"context"

	"github.com/zmb3/spotify/v2"
)

// Client defines the authenticated Spotify operations used by the CLI and the web front-end.
type Client interface {
	// FetchProfile returns the current user's profile.
	FetchProfile(ctx context.Context) (*spotify.PrivateUser, error)

	// Search looks up albums, artists and tracks matching free-text query.
	Search(ctx context.Context, query string) (*spotify.SearchResult, error)

	// EnqueueTrack appends the item identified by trackURI (e.g. "spotify:track:...") to the active
	// playback queue.
	EnqueueTrack(ctx context.Context, trackURI string) error
}
