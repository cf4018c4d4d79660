package spotify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/desertthunder/spotq/internal/shared"
	zspotify "github.com/zmb3/spotify/v2"
)

// SearchTypes are the item types accepted by [Client.Search].
var SearchTypes = []string{"album", "artist", "playlist", "track", "show", "episode", "audiobook"}

// Track fetches a track by id.
func (c *Client) Track(ctx context.Context, id string) (*zspotify.FullTrack, error) {
	var t zspotify.FullTrack
	if err := c.queryInto(ctx, "tracks", id, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// Album fetches an album by id.
func (c *Client) Album(ctx context.Context, id string) (*zspotify.FullAlbum, error) {
	var a zspotify.FullAlbum
	if err := c.queryInto(ctx, "albums", id, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// Artist fetches an artist by id.
func (c *Client) Artist(ctx context.Context, id string) (*zspotify.FullArtist, error) {
	var a zspotify.FullArtist
	if err := c.queryInto(ctx, "artists", id, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// Playlist fetches a playlist by id. Only the first page of items is included.
func (c *Client) Playlist(ctx context.Context, id string) (*zspotify.FullPlaylist, error) {
	var p zspotify.FullPlaylist
	if err := c.queryInto(ctx, "playlists", id, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Search runs a catalog search. types defaults to "track".
func (c *Client) Search(ctx context.Context, q string, types ...string) (*zspotify.SearchResult, error) {
	if strings.TrimSpace(q) == "" {
		return nil, fmt.Errorf("%w: search query is empty", shared.ErrInvalidInput)
	}
	if len(types) == 0 {
		types = []string{"track"}
	}
	for _, t := range types {
		if !validSearchType(t) {
			return nil, fmt.Errorf("%w: unknown search type %q", shared.ErrInvalidInput, t)
		}
	}

	params := url.Values{}
	params.Set("q", q)
	params.Set("type", strings.Join(types, ","))

	body, err := c.Query(ctx, "search?"+params.Encode())
	if err != nil {
		return nil, err
	}

	var result zspotify.SearchResult
	if err := json.Unmarshal([]byte(body), &result); err != nil {
		return nil, fmt.Errorf("failed to decode search result: %w", err)
	}
	return &result, nil
}

func (c *Client) queryInto(ctx context.Context, resource, id string, v any) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Errorf("%w: %s id is empty", shared.ErrInvalidInput, strings.TrimSuffix(resource, "s"))
	}

	body, err := c.Query(ctx, resource+"/"+url.PathEscape(id))
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(body), v); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", resource, err)
	}
	return nil
}

func validSearchType(t string) bool {
	for _, s := range SearchTypes {
		if s == t {
			return true
		}
	}
	return false
}
