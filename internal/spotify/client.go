package spotify

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/spotq/internal/cache"
	"github.com/desertthunder/spotq/internal/shared"
	"github.com/desertthunder/spotq/internal/transport"
	"golang.org/x/oauth2"
)

const (
	APIEndpoint      = "https://api.spotify.com"
	AccountsEndpoint = "https://accounts.spotify.com"
	DefaultVersion   = "v1"

	tokenPath     = "/api/token"
	authorizePath = "/authorize"
	keySep        = "|"
)

var absoluteURL = regexp.MustCompile(`^https?://`)

// Client performs raw Spotify Web API requests, memoizing responses in a [cache.Backend].
//
// A Client holds per-session mutable state (active token, last result) and is not safe for concurrent use.
// Use one Client per logical session or guard it externally.
type Client struct {
	clientID     string
	clientSecret string
	token        *Token

	lastResult string
	lastOK     bool

	cache     cache.Backend
	transport transport.Transport
	version   string
	apiURL    string
	accounts  string
	logger    *log.Logger
	metrics   *Metrics
}

// Option configures a [Client].
type Option func(*Client)

// WithCache sets the cache backend, overriding the process-wide default.
func WithCache(b cache.Backend) Option {
	return func(c *Client) {
		if b != nil {
			c.cache = b
		}
	}
}

// WithTransport sets the HTTP collaborator.
func WithTransport(t transport.Transport) Option {
	return func(c *Client) {
		if t != nil {
			c.transport = t
		}
	}
}

// WithVersion sets the API version path segment (default "v1").
func WithVersion(v string) Option {
	return func(c *Client) {
		if v = strings.Trim(v, "/ "); v != "" {
			c.version = v
		}
	}
}

// WithEndpoints overrides the API and accounts base URLs. Empty values keep the defaults.
func WithEndpoints(apiURL, accountsURL string) Option {
	return func(c *Client) {
		if apiURL != "" {
			c.apiURL = strings.TrimRight(apiURL, "/")
		}
		if accountsURL != "" {
			c.accounts = strings.TrimRight(accountsURL, "/")
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithMetrics enables Prometheus counters.
func WithMetrics(m *Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

func newClient(opts ...Option) *Client {
	c := &Client{
		cache:     DefaultCache(),
		transport: transport.NewHTTP(nil),
		version:   DefaultVersion,
		apiURL:    APIEndpoint,
		accounts:  AccountsEndpoint,
		logger:    shared.NewLogger(nil),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithClient creates a client that authenticates with application credentials. It has no token until [Client.AppToken] succeeds.
func WithClient(clientID, clientSecret string, opts ...Option) *Client {
	c := newClient(opts...)
	c.clientID = clientID
	c.clientSecret = clientSecret
	return c
}

// WithToken creates a client from an existing access token.
func WithToken(token *Token, opts ...Option) *Client {
	c := newClient(opts...)
	c.token = token
	return c
}

// Token returns the active token, or nil.
func (c *Client) Token() *Token { return c.token }

// SetToken replaces the active token. Cached responses are keyed by token, so earlier entries stop matching.
func (c *Client) SetToken(t *Token) { c.token = t }

// Cache returns the active cache backend.
func (c *Client) Cache() cache.Backend { return c.cache }

// SetCache swaps the cache backend of this client only. nil selects the pass-through backend.
func (c *Client) SetCache(b cache.Backend) {
	if b == nil {
		b = cache.Null{}
	}
	c.cache = b
}

// LastResult returns the body of the last request and whether that request succeeded.
func (c *Client) LastResult() (string, bool) { return c.lastResult, c.lastOK }

// TokenURL is the accounts service token endpoint.
func (c *Client) TokenURL() string { return c.accounts + tokenPath }

// TokenCacheKey is the cache key for this client's application token.
//
// It is scoped by client id so different applications sharing one backend never see each other's tokens.
func (c *Client) TokenCacheKey() string { return c.TokenURL() + keySep + c.clientID }

// ResolveURL returns query unchanged when it is an absolute http(s) URL,
// otherwise the API base and version joined with the relative path.
func (c *Client) ResolveURL(query string) string {
	if absoluteURL.MatchString(query) {
		return query
	}
	return c.apiURL + "/" + c.version + "/" + strings.TrimLeft(query, "/")
}

// CacheKey is the token-scoped cache key for a resolved URL.
func (c *Client) CacheKey(resolvedURL string) string {
	return resolvedURL + keySep + c.token.Authorization()
}

// AppToken obtains an application token with the client credentials grant and makes it the active token.
//
// A token stored in the cache is adopted without a network call and without checking its age.
func (c *Client) AppToken(ctx context.Context) (*Token, error) {
	if c.clientID == "" || c.clientSecret == "" {
		return nil, fmt.Errorf("%w: client id and secret are required for an app token", shared.ErrMissingCredentials)
	}

	uri := c.TokenURL()
	key := c.TokenCacheKey()
	logger := shared.WithLogger(c.logger, "request_id", shared.GenerateID(), "url", uri)

	if record, ok := c.cache.Fetch(ctx, key); ok {
		c.metrics.lookup("token", true)
		t, err := ParseToken(record)
		if err == nil {
			logger.Debug("using cached app token")
			c.token = t
			return t, nil
		}
		logger.Warn("ignoring unreadable cached token", "error", err)
	} else {
		c.metrics.lookup("token", false)
	}

	form := url.Values{}
	form.Set("grant_type", "client_credentials")

	resp, err := c.transport.Post(ctx, uri, []byte(form.Encode()), map[string]string{
		"Authorization": basicAuth(c.clientID, c.clientSecret),
		"Content-Type":  "application/x-www-form-urlencoded",
	})
	if err != nil {
		c.metrics.request("token", "failure")
		return nil, fmt.Errorf("%w: %v", shared.ErrTransportFailure, err)
	}
	if !resp.Success() {
		c.metrics.request("token", "failure")
		return nil, fmt.Errorf("%w: token endpoint returned status %d", shared.ErrTransportFailure, resp.Status())
	}

	t, err := ParseToken(resp.Content())
	if err != nil {
		c.metrics.request("token", "failure")
		return nil, err
	}

	c.metrics.request("token", "success")
	c.cache.Store(ctx, key, resp.Content())
	c.token = t
	logger.Debug("fetched app token", "expires_in", t.ExpiresIn)
	return t, nil
}

// Query performs an authenticated GET against a relative API path or an absolute URL.
//
// Responses are cached under the resolved URL and authorization header. Without an active token the call fails
// with [shared.ErrMissingToken]; no token is fetched automatically.
func (c *Client) Query(ctx context.Context, query string) (string, error) {
	auth, err := c.authorization("query")
	if err != nil {
		return "", err
	}

	uri := c.ResolveURL(query)
	key := uri + keySep + auth
	logger := shared.WithLogger(c.logger, "request_id", shared.GenerateID(), "url", uri)

	if record, ok := c.cache.Fetch(ctx, key); ok {
		c.metrics.lookup("query", true)
		logger.Debug("cache hit")
		return record, nil
	}
	c.metrics.lookup("query", false)
	logger.Debug("cache miss")

	resp, err := c.transport.Get(ctx, uri, map[string]string{"Authorization": auth})
	if err != nil {
		c.fail("query")
		return "", fmt.Errorf("%w: %v", shared.ErrTransportFailure, err)
	}
	if !resp.Success() {
		c.fail("query")
		return "", fmt.Errorf("%w: GET %s returned status %d", shared.ErrTransportFailure, uri, resp.Status())
	}

	c.metrics.request("query", "success")
	c.lastResult, c.lastOK = resp.Content(), true
	return c.cache.Store(ctx, key, c.lastResult), nil
}

// Post performs an authenticated POST with a JSON body. POST responses are never cached.
func (c *Client) Post(ctx context.Context, query string, body []byte) (string, error) {
	auth, err := c.authorization("post")
	if err != nil {
		return "", err
	}

	uri := c.ResolveURL(query)
	resp, err := c.transport.Post(ctx, uri, body, map[string]string{
		"Authorization": auth,
		"Content-Type":  "application/json",
	})
	if err != nil {
		c.fail("post")
		return "", fmt.Errorf("%w: %v", shared.ErrTransportFailure, err)
	}
	if !resp.Success() {
		c.fail("post")
		return "", fmt.Errorf("%w: POST %s returned status %d", shared.ErrTransportFailure, uri, resp.Status())
	}

	c.metrics.request("post", "success")
	c.lastResult, c.lastOK = resp.Content(), true
	return c.lastResult, nil
}

func (c *Client) authorization(kind string) (string, error) {
	auth := c.token.Authorization()
	if auth == "" {
		c.logger.Warn("spotify API: no access token specified")
		c.metrics.request(kind, "missing_token")
		return "", shared.ErrMissingToken
	}
	return auth, nil
}

func (c *Client) fail(kind string) {
	c.metrics.request(kind, "failure")
	c.lastResult, c.lastOK = "", false
}

// OAuthConfig returns an authorization code flow config for this client's credentials and accounts service.
//
// Tokens it produces can be installed with [Client.SetToken] via [FromOAuth2].
func (c *Client) OAuthConfig(redirectURL string, scopes ...string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     c.clientID,
		ClientSecret: c.clientSecret,
		RedirectURL:  redirectURL,
		Scopes:       scopes,
		Endpoint: oauth2.Endpoint{
			AuthURL:   c.accounts + authorizePath,
			TokenURL:  c.TokenURL(),
			AuthStyle: oauth2.AuthStyleInHeader,
		},
	}
}

// TokenSource exposes the active token to [golang.org/x/oauth2] based clients.
func (c *Client) TokenSource() oauth2.TokenSource {
	return tokenSource{c: c}
}

type tokenSource struct {
	c *Client
}

func (s tokenSource) Token() (*oauth2.Token, error) {
	if s.c.token.Authorization() == "" {
		return nil, shared.ErrMissingToken
	}
	return s.c.token.OAuth2(), nil
}
