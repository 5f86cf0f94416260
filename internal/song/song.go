// Package song defines the playable media item passed through the player.
package song

import (
	"fmt"
	"hash/fnv"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dhowden/tag"
)

const (
	extMP3  = ".mp3"
	extFLAC = ".flac"
	extWAV  = ".wav"
	extOGG  = ".ogg"
)

// Song is an immutable description of a playable item.
// It is passed by value so observers cannot mutate the player's copy.
type Song struct {
	ID          int64  // stable identifier derived from the path
	Path        string // file path for playback
	Title       string
	Artist      string
	AlbumArtist string
	Album       string
	Genre       string
	Year        int
	TrackNumber int
	Duration    time.Duration
}

// String returns "Artist - Title", or the title alone when the artist is unknown.
func (s Song) String() string {
	if s.Artist == "" {
		return s.Title
	}
	return s.Artist + " - " + s.Title
}

// IsZero returns true for the zero Song.
func (s Song) IsZero() bool {
	return s.Path == "" && s.ID == 0
}

// IDFromPath hashes a cleaned path into a positive identifier.
func IDFromPath(path string) int64 {
	h := fnv.New64a()
	h.Write([]byte(filepath.Clean(path)))
	return int64(h.Sum64() >> 1)
}

// IsMusicFile reports whether the path has a playable extension.
func IsMusicFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case extMP3, extFLAC, extWAV, extOGG:
		return true
	}
	return false
}

// FromPath builds a Song from a file, reading its tags when possible.
// A file without readable tags still yields a Song titled after the file name.
func FromPath(path string) Song {
	s := Song{
		ID:    IDFromPath(path),
		Path:  path,
		Title: strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
	}

	f, err := os.Open(path)
	if err != nil {
		return s
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		return s
	}

	if title := m.Title(); title != "" {
		s.Title = title
	}
	s.Artist = m.Artist()
	s.AlbumArtist = m.AlbumArtist()
	if s.AlbumArtist == "" {
		s.AlbumArtist = s.Artist
	}
	s.Album = m.Album()
	s.Genre = m.Genre()
	s.Year = m.Year()
	s.TrackNumber, _ = m.Track()
	return s
}

// FormatDuration formats a duration as M:SS.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	m := int(d.Minutes())
	sec := int(d.Seconds()) % 60
	return fmt.Sprintf("%d:%02d", m, sec)
}
