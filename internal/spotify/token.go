package spotify

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/desertthunder/spotq/internal/shared"
	"golang.org/x/oauth2"
)

const defaultTokenType = "Bearer"

// Token is an access token as returned by the accounts service.
type Token struct {
	TokenType   string `json:"token_type"`
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in,omitempty"`
	Scope       string `json:"scope,omitempty"`
}

// NewToken builds a bearer token from a raw access token.
func NewToken(accessToken string) *Token {
	return &Token{TokenType: defaultTokenType, AccessToken: accessToken}
}

// ParseToken decodes a token response body.
func ParseToken(body string) (*Token, error) {
	var t Token
	if err := json.Unmarshal([]byte(body), &t); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrInvalidToken, err)
	}
	if t.AccessToken == "" {
		return nil, fmt.Errorf("%w: response has no access_token", shared.ErrInvalidToken)
	}
	return &t, nil
}

// Authorization returns the Authorization header value "<token_type> <access_token>".
//
// It is empty when there is no access token. A missing token type defaults to Bearer.
func (t *Token) Authorization() string {
	if t == nil || strings.TrimSpace(t.AccessToken) == "" {
		return ""
	}
	tokenType := strings.TrimSpace(t.TokenType)
	if tokenType == "" {
		tokenType = defaultTokenType
	}
	return tokenType + " " + t.AccessToken
}

// OAuth2 converts t to an [oauth2.Token]. Expiry is computed from ExpiresIn relative to now.
func (t *Token) OAuth2() *oauth2.Token {
	if t == nil {
		return nil
	}
	tok := &oauth2.Token{AccessToken: t.AccessToken, TokenType: t.TokenType}
	if t.ExpiresIn > 0 {
		tok.Expiry = time.Now().Add(time.Duration(t.ExpiresIn) * time.Second)
	}
	return tok
}

// FromOAuth2 converts an [oauth2.Token] into a [Token].
func FromOAuth2(tok *oauth2.Token) *Token {
	if tok == nil {
		return nil
	}
	t := &Token{TokenType: tok.Type(), AccessToken: tok.AccessToken}
	if !tok.Expiry.IsZero() {
		if secs := int(time.Until(tok.Expiry).Seconds()); secs > 0 {
			t.ExpiresIn = secs
		}
	}
	return t
}

// basicAuth returns the client credentials header value for the token endpoint.
func basicAuth(clientID, clientSecret string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(clientID+":"+clientSecret))
}
