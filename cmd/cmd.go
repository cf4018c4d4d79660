// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// setupCommand writes the example config and prepares the configured cache.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "setup",
		Usage:  "Create config.toml and run cache migrations",
		Action: r.Setup,
	}
}

// tokenCommand fetches an application token
func tokenCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "token",
		Usage: "Fetch an app token with the client credentials grant",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output the token as JSON",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print output",
			},
			&cli.BoolFlag{
				Name:  "save",
				Usage: "Save the access token to the config file",
			},
		},
		Action: r.Token,
	}
}

// loginCommand runs the authorization code flow for a user token
func loginCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "login",
		Usage: "Authorize as a Spotify user and save the access token",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:  "scope",
				Usage: "OAuth scopes to request",
				Value: []string{"user-read-private", "playlist-read-private", "user-library-read"},
			},
			&cli.BoolFlag{
				Name:  "no-browser",
				Usage: "Print the authorization URL instead of opening a browser",
			},
		},
		Action: r.Login,
	}
}

// queryCommand runs a raw GET
func queryCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "query",
		Aliases: []string{"get"},
		Usage:   "GET an API path or absolute URL, prints the response body",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "path",
			},
		},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print JSON output",
				Value: true,
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Write the body to a file instead of stdout",
			},
			&cli.BoolFlag{
				Name:  "stats",
				Usage: "Print cache and request counters after the query",
			},
		},
		Action: r.Query,
	}
}

// postCommand runs a raw POST
func postCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "post",
		Usage: "POST a JSON body to an API path or absolute URL",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "path",
			},
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "data",
				Aliases:  []string{"d"},
				Usage:    "JSON body to send",
				Required: true,
			},
		},
		Action: r.Post,
	}
}

// cacheCommand manages the response cache
func cacheCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "cache",
		Usage: "Inspect or clear the response cache",
		Commands: []*cli.Command{
			{
				Name:   "clear",
				Usage:  "Remove every cached response",
				Action: r.CacheClear,
			},
			{
				Name:  "stats",
				Usage: "Show the backend and number of cached entries",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.CacheStats,
			},
		},
	}
}

func typedFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:  "json",
			Usage: "Output decoded JSON",
		},
		&cli.BoolFlag{
			Name:  "pretty",
			Usage: "Pretty-print JSON output",
			Value: true,
		},
	}
}

func trackCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "track",
		Usage:     "Show a track",
		Arguments: []cli.Argument{&cli.StringArg{Name: "id"}},
		Flags:     typedFlags(),
		Action:    r.Track,
	}
}

func albumCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "album",
		Usage:     "Show an album and its tracks",
		Arguments: []cli.Argument{&cli.StringArg{Name: "id"}},
		Flags:     typedFlags(),
		Action:    r.Album,
	}
}

func artistCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "artist",
		Usage:     "Show an artist",
		Arguments: []cli.Argument{&cli.StringArg{Name: "id"}},
		Flags:     typedFlags(),
		Action:    r.Artist,
	}
}

func playlistCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "playlist",
		Usage:     "Show a playlist and its first page of tracks",
		Arguments: []cli.Argument{&cli.StringArg{Name: "id"}},
		Flags: append(typedFlags(), &cli.BoolFlag{
			Name:  "csv",
			Usage: "Output tracks as CSV",
		}),
		Action: r.Playlist,
	}
}

func searchCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "search",
		Usage:     "Search the catalog",
		Arguments: []cli.Argument{&cli.StringArg{Name: "query"}},
		Flags: append(typedFlags(),
			&cli.StringSliceFlag{
				Name:    "type",
				Aliases: []string{"t"},
				Usage:   "Item types to search (album, artist, playlist, track, show, episode, audiobook)",
				Value:   []string{"track"},
			},
			&cli.BoolFlag{
				Name:  "csv",
				Usage: "Output matching tracks as CSV",
			},
		),
		Action: r.Search,
	}
}

// tuiCommand returns the top-level TUI command for interactive queries.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "tui",
		Aliases:   []string{"interactive", "ui"},
		Usage:     "Launch the interactive query browser",
		Arguments: []cli.Argument{&cli.StringArg{Name: "path"}},
		Action:    r.TUI,
	}
}
