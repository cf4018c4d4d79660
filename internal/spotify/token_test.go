package spotify

import (
	"errors"
	"testing"
	"time"

	"github.com/desertthunder/spotq/internal/shared"
	"golang.org/x/oauth2"
)

func TestToken(t *testing.T) {
	t.Run("ParseToken", func(t *testing.T) {
		tok, err := ParseToken(`{"access_token":"abc","token_type":"bearer","expires_in":3600,"scope":""}`)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if tok.AccessToken != "abc" || tok.TokenType != "bearer" || tok.ExpiresIn != 3600 {
			t.Errorf("unexpected token %+v", tok)
		}
	})

	t.Run("ParseToken Errors", func(t *testing.T) {
		for _, body := range []string{"", "not json", `{"token_type":"Bearer"}`, `[]`} {
			if _, err := ParseToken(body); !errors.Is(err, shared.ErrInvalidToken) {
				t.Errorf("body %q: expected ErrInvalidToken, got %v", body, err)
			}
		}
	})

	t.Run("Authorization", func(t *testing.T) {
		tests := []struct {
			name  string
			token *Token
			want  string
		}{
			{"nil", nil, ""},
			{"empty access", &Token{TokenType: "Bearer"}, ""},
			{"default type", &Token{AccessToken: "abc"}, "Bearer abc"},
			{"verbatim type", &Token{TokenType: "bearer", AccessToken: "abc"}, "bearer abc"},
			{"NewToken", NewToken("xyz"), "Bearer xyz"},
		}
		for _, tt := range tests {
			if got := tt.token.Authorization(); got != tt.want {
				t.Errorf("%s: expected %q, got %q", tt.name, tt.want, got)
			}
		}
	})

	t.Run("OAuth2 Round Trip", func(t *testing.T) {
		tok := &Token{TokenType: "Bearer", AccessToken: "abc", ExpiresIn: 120}
		o := tok.OAuth2()
		if o.AccessToken != "abc" || o.Expiry.Before(time.Now()) {
			t.Errorf("unexpected oauth2 token %+v", o)
		}

		back := FromOAuth2(o)
		if back.AccessToken != "abc" || back.ExpiresIn <= 0 || back.ExpiresIn > 120 {
			t.Errorf("unexpected token %+v", back)
		}

		if (*Token)(nil).OAuth2() != nil || FromOAuth2(nil) != nil {
			t.Error("expected nil conversions to return nil")
		}
	})

	t.Run("FromOAuth2 Without Expiry", func(t *testing.T) {
		back := FromOAuth2(&oauth2.Token{AccessToken: "abc"})
		if back.TokenType != "Bearer" || back.ExpiresIn != 0 {
			t.Errorf("unexpected token %+v", back)
		}
	})

	t.Run("basicAuth", func(t *testing.T) {
		if got := basicAuth("id", "secret"); got != "Basic aWQ6c2VjcmV0" {
			t.Errorf("unexpected header %s", got)
		}
	})
}
