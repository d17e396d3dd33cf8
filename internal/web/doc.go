// Package web implements the browser front-end of the implicit flow.
//
// The access token comes back in the URL fragment, which browsers never send to a server. The home page
// carries a small bridge script: when location.hash is set it posts the fragment and the page path to
// POST /callback, where a request-scoped [session.Navigator] hands the fragment to the session manager.
//
// Routes
//
//	GET  /             → home page and bridge script
//	*    /anything     → redirect to /
//	GET  /login        → redirect to the authorization URL
//	POST /callback     → validate the posted fragment
//	GET  /owner        → profile and search (requires auth)
//	POST /owner/queue  → add a track to the player queue (requires auth)
//	POST /logout       → forget the access token
//
// Redirects keep the fragment, so a redirect_uri pointing anywhere on this origin still lands on the bridge.
package web
