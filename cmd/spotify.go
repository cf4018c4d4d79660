package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/spotq/internal/formatter"
	"github.com/desertthunder/spotq/internal/shared"
	"github.com/urfave/cli/v3"
	zspotify "github.com/zmb3/spotify/v2"
)

// Track prints a track.
func (r *Runner) Track(ctx context.Context, cmd *cli.Command) error {
	id, err := requiredArg(cmd, "id")
	if err != nil {
		return err
	}
	client, err := r.authorized(ctx)
	if err != nil {
		return err
	}

	track, err := client.Track(ctx, id)
	if err != nil {
		return err
	}
	if cmd.Bool("json") {
		return r.writeJSON(track, cmd.Bool("pretty"))
	}
	return r.writeBytes(formatter.TrackText(track))
}

// Album prints an album with its tracks.
func (r *Runner) Album(ctx context.Context, cmd *cli.Command) error {
	id, err := requiredArg(cmd, "id")
	if err != nil {
		return err
	}
	client, err := r.authorized(ctx)
	if err != nil {
		return err
	}

	album, err := client.Album(ctx, id)
	if err != nil {
		return err
	}
	if cmd.Bool("json") {
		return r.writeJSON(album, cmd.Bool("pretty"))
	}
	return r.writeBytes(formatter.AlbumText(album))
}

// Artist prints an artist.
func (r *Runner) Artist(ctx context.Context, cmd *cli.Command) error {
	id, err := requiredArg(cmd, "id")
	if err != nil {
		return err
	}
	client, err := r.authorized(ctx)
	if err != nil {
		return err
	}

	artist, err := client.Artist(ctx, id)
	if err != nil {
		return err
	}
	if cmd.Bool("json") {
		return r.writeJSON(artist, cmd.Bool("pretty"))
	}
	return r.writeBytes(formatter.ArtistText(artist))
}

// Playlist prints a playlist with the first page of its tracks.
func (r *Runner) Playlist(ctx context.Context, cmd *cli.Command) error {
	id, err := requiredArg(cmd, "id")
	if err != nil {
		return err
	}
	client, err := r.authorized(ctx)
	if err != nil {
		return err
	}

	playlist, err := client.Playlist(ctx, id)
	if err != nil {
		return err
	}

	switch {
	case cmd.Bool("csv"):
		tracks := make([]zspotify.FullTrack, 0, len(playlist.Tracks.Tracks))
		for _, item := range playlist.Tracks.Tracks {
			tracks = append(tracks, item.Track)
		}
		data, err := formatter.TracksToCSV(tracks)
		if err != nil {
			return err
		}
		return r.writeBytes(data)
	case cmd.Bool("json"):
		return r.writeJSON(playlist, cmd.Bool("pretty"))
	default:
		return r.writeBytes(formatter.PlaylistText(playlist))
	}
}

// Search prints catalog matches.
func (r *Runner) Search(ctx context.Context, cmd *cli.Command) error {
	q, err := requiredArg(cmd, "query")
	if err != nil {
		return err
	}
	client, err := r.authorized(ctx)
	if err != nil {
		return err
	}

	result, err := client.Search(ctx, q, cmd.StringSlice("type")...)
	if err != nil {
		return err
	}

	switch {
	case cmd.Bool("csv"):
		var tracks []zspotify.FullTrack
		if result.Tracks != nil {
			tracks = result.Tracks.Tracks
		}
		data, err := formatter.TracksToCSV(tracks)
		if err != nil {
			return err
		}
		return r.writeBytes(data)
	case cmd.Bool("json"):
		return r.writeJSON(result, cmd.Bool("pretty"))
	default:
		return r.writeBytes(formatter.SearchText(result))
	}
}

func requiredArg(cmd *cli.Command, name string) (string, error) {
	v := strings.TrimSpace(cmd.StringArg(name))
	if v == "" {
		return "", fmt.Errorf("%w: %s", shared.ErrMissingArgument, name)
	}
	return v, nil
}
