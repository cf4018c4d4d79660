// Package spotify is a minimal Spotify Web API client.
//
// A [Client] is created either from application credentials ([WithClient]) or from an existing access token
// ([WithToken]). Application tokens are obtained explicitly with [Client.AppToken]; [Client.Query] never fetches one
// on its own and fails with ErrMissingToken when no token is active.
//
// GET responses are memoized in a cache backend under the resolved URL plus the Authorization header, so cached
// data never leaks across tokens. The backend defaults to the process-wide value of [DefaultCache] at construction
// time.
package spotify

