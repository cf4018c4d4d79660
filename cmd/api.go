package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/desertthunder/spotq/internal/formatter"
	"github.com/desertthunder/spotq/internal/shared"
	"github.com/urfave/cli/v3"
)

// Token requests an application token and prints it.
func (r *Runner) Token(ctx context.Context, cmd *cli.Command) error {
	if !r.config.Credentials.Spotify.HasClient() {
		return fmt.Errorf("%w: credentials.spotify.client_id and client_secret are required", shared.ErrMissingCredentials)
	}

	client, err := r.apiClient()
	if err != nil {
		return err
	}

	token, err := client.AppToken(ctx)
	if err != nil {
		return err
	}

	if cmd.Bool("save") {
		if err := r.saveToken(token); err != nil {
			return err
		}
	}

	if cmd.Bool("json") {
		return r.writeJSON(token, cmd.Bool("pretty"))
	}
	return r.writePlain("%s\n", token.Authorization())
}

// Query runs a GET through the cache and prints the body.
func (r *Runner) Query(ctx context.Context, cmd *cli.Command) error {
	path := strings.TrimSpace(cmd.StringArg("path"))
	if path == "" {
		return fmt.Errorf("%w: path", shared.ErrMissingArgument)
	}

	client, err := r.authorized(ctx)
	if err != nil {
		return err
	}

	r.logger.Debug("GET request", "path", path)

	body, err := client.Query(ctx, path)
	if err != nil {
		return err
	}

	out := body
	if cmd.Bool("pretty") {
		if pretty, err := formatter.PrettyJSON(body); err == nil {
			out = pretty
		}
	}

	if file := cmd.String("output"); file != "" {
		if err := formatter.WriteFile(file, []byte(out)); err != nil {
			return err
		}
		r.logger.Info("response saved", "path", file, "bytes", len(out))
	} else if err := r.writePlain("%s\n", out); err != nil {
		return err
	}

	if cmd.Bool("stats") {
		return r.writeStats()
	}
	return nil
}

// Post sends a JSON body and prints the response.
func (r *Runner) Post(ctx context.Context, cmd *cli.Command) error {
	path := strings.TrimSpace(cmd.StringArg("path"))
	if path == "" {
		return fmt.Errorf("%w: path", shared.ErrMissingArgument)
	}

	data := cmd.String("data")
	if data == "" {
		return fmt.Errorf("%w: --data flag is required", shared.ErrMissingArgument)
	}

	var jsonTest any
	if err := json.Unmarshal([]byte(data), &jsonTest); err != nil {
		return fmt.Errorf("%w: data is not valid JSON: %v", shared.ErrInvalidInput, err)
	}

	client, err := r.authorized(ctx)
	if err != nil {
		return err
	}

	r.logger.Debug("POST request", "path", path)

	body, err := client.Post(ctx, path, []byte(data))
	if err != nil {
		return err
	}

	if pretty, err := formatter.PrettyJSON(body); err == nil {
		body = pretty
	}
	return r.writePlain("%s\n", body)
}
