// Package services implements the Spotify Web API calls the front-end makes once a user is logged in.
//
// # Client Interface
//
// [Client] covers the three calls: current user profile, search across albums/artists/tracks and appending a
// track to the active playback queue. [SpotifyService] implements it.
//
// # Authorization
//
// Every request carries "Authorization: Bearer <token>" through an [oauth2.Transport]. The token source reads
// the session store on each request, so a logout or a new login takes effect on the next call. Nothing checks
// that a token is present before sending; the provider answers 401 and the caller sees that.
//
// # Error Handling
//
// Errors wrap [shared.ErrAPIRequest]. Non-2xx answers keep the provider's status and message as a
// [spotify.Error], reachable with [errors.As]. There are no retries.
package services
