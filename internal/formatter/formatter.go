// package formatter renders API responses as pretty JSON, plain text, and CSV
package formatter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	zspotify "github.com/zmb3/spotify/v2"
)

// PrettyJSON indents a JSON document. Non-JSON input is an error.
func PrettyJSON(body string) (string, error) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, []byte(body), "", "  "); err != nil {
		return "", fmt.Errorf("failed to format JSON: %w", err)
	}
	return buf.String(), nil
}

// FormatDuration renders milliseconds as m:ss.
func FormatDuration(ms int) string {
	secs := ms / 1000
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

// ArtistNames joins artist names with ", ".
func ArtistNames(artists []zspotify.SimpleArtist) string {
	names := make([]string, 0, len(artists))
	for _, a := range artists {
		names = append(names, a.Name)
	}
	return strings.Join(names, ", ")
}

// TrackText renders a track as plain text.
func TrackText(t *zspotify.FullTrack) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "Track: %s\n", t.Name)
	fmt.Fprintf(&buf, "Artists: %s\n", ArtistNames(t.Artists))
	if t.Album.Name != "" {
		fmt.Fprintf(&buf, "Album: %s\n", t.Album.Name)
	}
	fmt.Fprintf(&buf, "Duration: %s\n", FormatDuration(int(t.Duration)))
	if isrc := t.ExternalIDs["isrc"]; isrc != "" {
		fmt.Fprintf(&buf, "ISRC: %s\n", isrc)
	}
	fmt.Fprintf(&buf, "ID: %s\n", t.ID)
	return buf.Bytes()
}

// AlbumText renders an album and its first page of tracks.
func AlbumText(a *zspotify.FullAlbum) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "Album: %s\n", a.Name)
	fmt.Fprintf(&buf, "Artists: %s\n", ArtistNames(a.Artists))
	if a.ReleaseDate != "" {
		fmt.Fprintf(&buf, "Released: %s\n", a.ReleaseDate)
	}
	fmt.Fprintf(&buf, "Tracks: %d\n\n", len(a.Tracks.Tracks))

	for i, t := range a.Tracks.Tracks {
		fmt.Fprintf(&buf, "%d. %s [%s]\n", i+1, t.Name, FormatDuration(int(t.Duration)))
	}
	return buf.Bytes()
}

// ArtistText renders an artist.
func ArtistText(a *zspotify.FullArtist) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "Artist: %s\n", a.Name)
	if len(a.Genres) > 0 {
		fmt.Fprintf(&buf, "Genres: %s\n", strings.Join(a.Genres, ", "))
	}
	fmt.Fprintf(&buf, "ID: %s\n", a.ID)
	return buf.Bytes()
}

// PlaylistText renders a playlist and its first page of items.
func PlaylistText(p *zspotify.FullPlaylist) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "Playlist: %s\n", p.Name)
	if p.Description != "" {
		fmt.Fprintf(&buf, "Description: %s\n", p.Description)
	}
	if p.Owner.DisplayName != "" {
		fmt.Fprintf(&buf, "Owner: %s\n", p.Owner.DisplayName)
	}
	fmt.Fprintf(&buf, "Tracks: %d\n\n", len(p.Tracks.Tracks))

	for i, item := range p.Tracks.Tracks {
		fmt.Fprintf(&buf, "%d. %s - %s\n", i+1, ArtistNames(item.Track.Artists), item.Track.Name)
	}
	return buf.Bytes()
}

// SearchText renders every non-empty section of a search result.
func SearchText(r *zspotify.SearchResult) []byte {
	var buf bytes.Buffer
	if r.Tracks != nil && len(r.Tracks.Tracks) > 0 {
		buf.WriteString("Tracks:\n")
		for i, t := range r.Tracks.Tracks {
			fmt.Fprintf(&buf, "%d. %s - %s (%s)\n", i+1, ArtistNames(t.Artists), t.Name, t.ID)
		}
	}
	if r.Albums != nil && len(r.Albums.Albums) > 0 {
		buf.WriteString("Albums:\n")
		for i, a := range r.Albums.Albums {
			fmt.Fprintf(&buf, "%d. %s - %s (%s)\n", i+1, ArtistNames(a.Artists), a.Name, a.ID)
		}
	}
	if r.Artists != nil && len(r.Artists.Artists) > 0 {
		buf.WriteString("Artists:\n")
		for i, a := range r.Artists.Artists {
			fmt.Fprintf(&buf, "%d. %s (%s)\n", i+1, a.Name, a.ID)
		}
	}
	if r.Playlists != nil && len(r.Playlists.Playlists) > 0 {
		buf.WriteString("Playlists:\n")
		for i, p := range r.Playlists.Playlists {
			fmt.Fprintf(&buf, "%d. %s (%s)\n", i+1, p.Name, p.ID)
		}
	}
	if buf.Len() == 0 {
		buf.WriteString("No results\n")
	}
	return buf.Bytes()
}

// TracksToCSV converts tracks to CSV with columns: ID, Title, Artist, Album, Duration, ISRC
func TracksToCSV(tracks []zspotify.FullTrack) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Title", "Artist", "Album", "Duration", "ISRC"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, t := range tracks {
		record := []string{
			string(t.ID),
			t.Name,
			ArtistNames(t.Artists),
			t.Album.Name,
			strconv.Itoa(int(t.Duration) / 1000),
			t.ExternalIDs["isrc"],
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// WriteFile writes data to path, creating or truncating it.
func WriteFile(path string, data []byte) error {
	if path == "" {
		return fmt.Errorf("empty output path")
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
