package session

import (
	"fmt"

	"golang.org/x/oauth2"
)

type storeTokenSource struct {
	store Store
}

// TokenSource returns an [oauth2.TokenSource] that reads [AccessTokenKey] from store on every call.
//
// An absent token yields an empty bearer token rather than an error; the provider rejects the request.
// Wrap it in an [oauth2.Transport] directly: [oauth2.ReuseTokenSource] would cache a token past logout.
func TokenSource(store Store) oauth2.TokenSource {
	return storeTokenSource{store: store}
}

func (s storeTokenSource) Token() (*oauth2.Token, error) {
	token, _, err := s.store.Get(AccessTokenKey)
	if err != nil {
		return nil, fmt.Errorf("failed to read access token: %w", err)
	}
	return &oauth2.Token{AccessToken: token, TokenType: "Bearer"}, nil
}
