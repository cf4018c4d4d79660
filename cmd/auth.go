package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/desertthunder/spotq/internal/server"
	"github.com/desertthunder/spotq/internal/shared"
	"github.com/desertthunder/spotq/internal/spotify"
	"github.com/urfave/cli/v3"
	"golang.org/x/oauth2"
)

var loginTimeout = 2 * time.Minute

// Login runs the authorization code flow and installs the resulting user token.
func (r *Runner) Login(ctx context.Context, cmd *cli.Command) error {
	creds := r.config.Credentials.Spotify
	if !creds.HasClient() {
		return fmt.Errorf("%w: credentials.spotify.client_id and client_secret are required", shared.ErrMissingCredentials)
	}

	client, err := r.apiClient()
	if err != nil {
		return err
	}

	conf := client.OAuthConfig(creds.RedirectURI, cmd.StringSlice("scope")...)
	token, err := r.doOAuth(ctx, conf, !cmd.Bool("no-browser"))
	if err != nil {
		return err
	}

	t := spotify.FromOAuth2(token)
	client.SetToken(t)

	if err := r.saveToken(t); err != nil {
		return err
	}
	return r.writePlain("✓ Logged in, token expires in %ds\n", t.ExpiresIn)
}

// doOAuth executes the OAuth2 authorization flow with a local HTTP server on the redirect URI's host.
func (r *Runner) doOAuth(ctx context.Context, conf *oauth2.Config, openBrowser bool) (*oauth2.Token, error) {
	redirect, err := url.Parse(conf.RedirectURL)
	if err != nil || redirect.Host == "" {
		return nil, fmt.Errorf("%w: redirect_uri %q", shared.ErrInvalidConfig, conf.RedirectURL)
	}

	state := shared.GenerateState()
	authURL := conf.AuthCodeURL(state)
	oauthHandler := server.NewOAuthHandler(conf, state, redirect.Path)
	router := server.NewBasicRouter(server.Logging(r.logger))
	router.Handler(oauthHandler)

	listener, err := net.Listen("tcp", redirect.Host)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", redirect.Host, err)
	}

	httpServer := &http.Server{Handler: router, ReadHeaderTimeout: 10 * time.Second}
	serverErrors := make(chan error, 1)
	go func() {
		r.logger.Infof("starting OAuth callback server at %v", listener.Addr())
		if err := httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- err
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			r.logger.Warn("error shutting down server", "error", err)
		}
	}()

	opened := false
	if openBrowser {
		r.writePlain("→ Opening browser for Spotify authorization...\n")
		if err := shared.OpenBrowser(authURL); err != nil {
			r.logger.Warnf("failed to open browser automatically %v", err)
		} else {
			opened = true
		}
	}
	if !opened {
		r.writePlain("Open this URL in your browser:\n%s\n\n", authURL)
	}

	r.writePlain("→ Waiting for authorization (%s timeout)...\n", loginTimeout)

	timeout := time.NewTimer(loginTimeout)
	defer timeout.Stop()

	var result server.OAuthResult
	select {
	case result = <-oauthHandler.Result():
	case err := <-serverErrors:
		return nil, fmt.Errorf("server error: %w", err)
	case <-timeout.C:
		return nil, fmt.Errorf("%w: authorization timed out after %s", shared.ErrTimeout, loginTimeout)
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	if result.Error() != nil {
		return nil, fmt.Errorf("authorization failed: %w", result.Error())
	}
	if result.Token == nil {
		return nil, fmt.Errorf("no token received")
	}
	return result.Token, nil
}
