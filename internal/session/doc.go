// Package session implements the client side of the Spotify OAuth implicit flow.
//
// # Handshake
//
// [Manager.Login] generates a 16 character nonce, stores it under [StateKey] and sends the browser to the
// authorization endpoint with response_type=token. The provider redirects back to the app's origin with
// access_token and state in the URL fragment. [Manager.IsAuthenticated] parses that fragment and, when it
// carries an access_token, runs [Manager.ValidateCallback]:
//
//   - state missing or different from the stored nonce: the [Notifier] is told and the user is logged out
//   - state matches: the nonce is removed, the token is stored under [AccessTokenKey] and the visible URL
//     is reset to the bare path
//
// The nonce is removed on first use, so a replayed fragment can never be validated twice.
//
// # Ports
//
// The manager never touches a concrete browser. It depends on three small interfaces:
//   - [Store] : key/value persistence ("local storage"), see [MemoryStore] and repositories.LocalStorage
//   - [Navigator] : current fragment, outbound redirect, reset of the visible URL
//   - [Notifier] : user-visible notification of a rejected callback
//
// # Limitations
//
// Tokens are trusted until the provider rejects them; there is no expiry or refresh.
// Two tabs logging in at the same time race on [StateKey] and the last writer wins.
package session
