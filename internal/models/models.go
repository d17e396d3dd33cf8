package models

import (
	"strings"

	"github.com/zmb3/spotify/v2"
)

// Kind names the category a [SearchRow] came from.
type Kind string

const (
	KindAlbum  Kind = "album"
	KindArtist Kind = "artist"
	KindTrack  Kind = "track"
)

// SearchRow is one search hit, regardless of its kind.
type SearchRow struct {
	Kind   Kind   `json:"kind"`
	Name   string `json:"name"`
	Artist string `json:"artist,omitempty"` // comma separated; empty for artists
	Album  string `json:"album,omitempty"`  // tracks only
	URI    string `json:"uri"`
}

// Queueable reports whether the row can be sent to the player queue.
func (r SearchRow) Queueable() bool {
	return r.Kind == KindTrack && r.URI != ""
}

// Profile is the displayable part of [spotify.PrivateUser].
type Profile struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Email       string `json:"email"`
	Country     string `json:"country"`
	Product     string `json:"product"`
	Followers   uint   `json:"followers"`
	URI         string `json:"uri"`
}

// NewProfile copies the fields of user that the UI shows. A nil user yields the zero Profile.
func NewProfile(user *spotify.PrivateUser) Profile {
	if user == nil {
		return Profile{}
	}
	return Profile{
		ID:          user.ID,
		DisplayName: user.DisplayName,
		Email:       user.Email,
		Country:     user.Country,
		Product:     user.Product,
		Followers:   uint(user.Followers.Count),
		URI:         string(user.URI),
	}
}

// Name returns the display name, falling back to the account id.
func (p Profile) Name() string {
	if p.DisplayName != "" {
		return p.DisplayName
	}
	return p.ID
}

// FlattenSearch converts result into rows ordered albums, artists, tracks.
func FlattenSearch(result *spotify.SearchResult) []SearchRow {
	if result == nil {
		return nil
	}

	var rows []SearchRow
	if result.Albums != nil {
		for _, album := range result.Albums.Albums {
			rows = append(rows, SearchRow{
				Kind:   KindAlbum,
				Name:   album.Name,
				Artist: artistNames(album.Artists),
				URI:    string(album.URI),
			})
		}
	}

	if result.Artists != nil {
		for _, artist := range result.Artists.Artists {
			rows = append(rows, SearchRow{
				Kind: KindArtist,
				Name: artist.Name,
				URI:  string(artist.URI),
			})
		}
	}

	if result.Tracks != nil {
		for _, track := range result.Tracks.Tracks {
			rows = append(rows, SearchRow{
				Kind:   KindTrack,
				Name:   track.Name,
				Artist: artistNames(track.Artists),
				Album:  track.Album.Name,
				URI:    string(track.URI),
			})
		}
	}

	return rows
}

// ParseKind returns the [Kind] named by s.
func ParseKind(s string) (Kind, bool) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case KindAlbum, KindArtist, KindTrack:
		return k, true
	}
	return "", false
}

// Filter returns the rows of the given kind.
func Filter(rows []SearchRow, kind Kind) []SearchRow {
	var out []SearchRow
	for _, row := range rows {
		if row.Kind == kind {
			out = append(out, row)
		}
	}
	return out
}

func artistNames(artists []spotify.SimpleArtist) string {
	names := make([]string, 0, len(artists))
	for _, a := range artists {
		names = append(names, a.Name)
	}
	return strings.Join(names, ", ")
}
