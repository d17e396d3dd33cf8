// Package models defines the view rows shared by the CLI and the web front-end.
//
// The Spotify client returns nested pages of albums, artists and tracks. [FlattenSearch] turns a
// [spotify.SearchResult] into a single ordered slice of [SearchRow] values:
//   - [KindAlbum] rows first, in provider order
//   - then [KindArtist] rows
//   - then [KindTrack] rows, the only ones that can be queued
//
// [Profile] is the subset of the current user's account shown by `spotify me` and the /owner page.
package models
