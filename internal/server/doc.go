// Package server provides HTTP routing, middleware, and the OAuth callback handler used by `spotq login`.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
// [Middleware] wraps handlers in reverse order (last added executes first).
// The [BasicRouter] implementation uses [http.ServeMux] internally with method filtering.
//
// # OAuth Callback Handler
//
// [OAuthHandler] implements the OAuth2 authorization code callback. It validates the state parameter,
// exchanges the code for a token, and sends the result through a channel. Only the first callback is processed.
//
// The login command starts a temporary server on the redirect URI's host, waits for one result, and shuts down.
package server
