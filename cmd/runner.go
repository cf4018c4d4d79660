package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/spotq/internal/cache"
	"github.com/desertthunder/spotq/internal/shared"
	"github.com/desertthunder/spotq/internal/spotify"
	"github.com/desertthunder/spotq/internal/transport"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	configPath string
	transport  transport.Transport
	httpClient *http.Client
	cache      *cache.Recording
	client     *spotify.Client
	registry   *prometheus.Registry
	metrics    *spotify.Metrics
	logger     *log.Logger
	output     io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	ConfigPath string
	Transport  transport.Transport
	HTTPClient *http.Client
	Cache      cache.Backend
	Logger     *log.Logger
	Output     io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}

	r := &Runner{
		config:     opts.Config,
		configPath: opts.ConfigPath,
		transport:  opts.Transport,
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
		output:     opts.Output,
		registry:   prometheus.NewRegistry(),
	}
	r.metrics = spotify.NewMetrics(r.registry)
	if opts.Cache != nil {
		r.cache = cache.NewRecording(opts.Cache)
	}
	return r
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, tokenCommand, loginCommand, queryCommand, postCommand, cacheCommand,
		trackCommand, albumCommand, artistCommand, playlistCommand, searchCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// Init loads configuration and applies global flags. It runs before every command.
//
// The config file is optional: when it does not exist the runner keeps its current configuration.
func (r *Runner) Init(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	if path := cmd.String("config"); path != "" {
		r.configPath = path
	}

	if r.configPath != "" {
		if _, err := os.Stat(r.configPath); err == nil {
			config, err := shared.LoadConfig(r.configPath)
			if err != nil {
				return ctx, err
			}
			r.config = config
		}
	}

	if err := shared.ApplyEnv(r.config); err != nil {
		return ctx, err
	}

	if level := cmd.String("log-level"); level != "" {
		r.config.Log.Level = level
	}
	if backend := cmd.String("cache"); backend != "" {
		r.config.Cache.Backend = backend
	}

	if r.config.Log.File != "" {
		r.logger = shared.NewFileLogger(r.config.Log)
	} else {
		shared.SetLogLevelString(r.logger, r.config.Log.Level)
	}
	return ctx, nil
}

// Close releases the cache backend opened for this run.
func (r *Runner) Close(ctx context.Context, cmd *cli.Command) error {
	if r.cache == nil {
		return nil
	}
	if err := cache.Close(r.cache); err != nil && !errors.Is(err, shared.ErrUnsupported) {
		return err
	}
	return nil
}

// SetLogger replaces the runner's logger. Clients built afterwards use it.
func (r *Runner) SetLogger(l *log.Logger) {
	r.logger = l
}

// backend opens the configured cache and installs it as the process default.
func (r *Runner) backend() (*cache.Recording, error) {
	if r.cache == nil {
		b, err := cache.Open(r.config.Cache, r.logger)
		if err != nil {
			return nil, err
		}
		r.cache = cache.NewRecording(b)
		r.logger.Debug("cache ready", "backend", cache.Name(b))
	}

	spotify.SetDefaultCache(r.cache)
	return r.cache, nil
}

// apiClient builds the API client from configuration. Clients are built once per run.
func (r *Runner) apiClient() (*spotify.Client, error) {
	if r.client != nil {
		return r.client, nil
	}

	// The opened backend becomes the process default, which the client captures at construction.
	if _, err := r.backend(); err != nil {
		return nil, err
	}

	t := r.transport
	if t == nil {
		timeout, err := r.config.API.RequestTimeout()
		if err != nil {
			return nil, err
		}
		hc := *r.httpClient
		if timeout > 0 {
			hc.Timeout = timeout
		}
		t = transport.NewHTTP(&hc)
	}

	opts := []spotify.Option{
		spotify.WithTransport(t),
		spotify.WithVersion(r.config.API.Version),
		spotify.WithEndpoints(r.config.API.BaseURL, r.config.API.AccountsURL),
		spotify.WithLogger(r.logger),
		spotify.WithMetrics(r.metrics),
	}

	creds := r.config.Credentials.Spotify
	client := spotify.WithClient(creds.ClientID, creds.ClientSecret, opts...)
	if creds.AccessToken != "" {
		client.SetToken(&spotify.Token{TokenType: creds.TokenType, AccessToken: creds.AccessToken})
	}

	r.client = client
	return client, nil
}

// authorized returns a client with an active token, requesting an app token when only credentials are configured.
func (r *Runner) authorized(ctx context.Context) (*spotify.Client, error) {
	client, err := r.apiClient()
	if err != nil {
		return nil, err
	}
	if client.Token().Authorization() == "" && r.config.Credentials.Spotify.HasClient() {
		if _, err := client.AppToken(ctx); err != nil {
			return nil, fmt.Errorf("failed to get app token: %w", err)
		}
	}
	return client, nil
}

// saveToken writes the token into the config file so later runs can skip the token request.
func (r *Runner) saveToken(token *spotify.Token) error {
	if r.config == nil {
		return fmt.Errorf("%w: config is nil", shared.ErrInvalidConfig)
	}
	if token == nil || token.AccessToken == "" {
		return fmt.Errorf("%w: token cannot be empty", shared.ErrInvalidToken)
	}

	r.config.Credentials.Spotify.AccessToken = token.AccessToken
	r.config.Credentials.Spotify.TokenType = token.TokenType

	if r.configPath == "" {
		return nil
	}
	if err := shared.SaveConfig(r.configPath, r.config); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	r.logger.Info("token saved", "path", r.configPath)
	return nil
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writeBytes(data []byte) error {
	if _, err := r.output.Write(data); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// writeStats prints cache counters and request metrics for this run.
func (r *Runner) writeStats() error {
	if r.cache != nil {
		s := r.cache.Stats()
		if err := r.writePlain("cache: %s hits=%d misses=%d stores=%d\n", cache.Name(r.cache), s.Hits, s.Misses, s.Stores); err != nil {
			return err
		}
	}

	families, err := r.registry.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}

	lines := []string{}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			labels := []string{}
			for _, lp := range m.GetLabel() {
				labels = append(labels, lp.GetName()+"="+lp.GetValue())
			}
			lines = append(lines, fmt.Sprintf("%s{%s} %.0f", mf.GetName(), strings.Join(labels, ","), m.GetCounter().GetValue()))
		}
	}
	sort.Strings(lines)

	for _, line := range lines {
		if err := r.writePlain("%s\n", line); err != nil {
			return err
		}
	}
	return nil
}
