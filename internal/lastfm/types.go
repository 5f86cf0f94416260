package lastfm

import (
	"time"

	"github.com/llehouerou/jockey/internal/song"
)

// ScrobbleTrack contains track metadata for scrobbling.
type ScrobbleTrack struct {
	Artist      string
	Track       string
	Album       string
	AlbumArtist string
	Duration    time.Duration
	Timestamp   time.Time // When playback started
}

// TrackFromSong builds the scrobble metadata of a song started at startedAt.
// Songs without an artist fall back to the album artist.
func TrackFromSong(s song.Song, startedAt time.Time) ScrobbleTrack {
	artist := s.Artist
	if artist == "" {
		artist = s.AlbumArtist
	}
	return ScrobbleTrack{
		Artist:      artist,
		Track:       s.Title,
		Album:       s.Album,
		AlbumArtist: s.AlbumArtist,
		Duration:    s.Duration,
		Timestamp:   startedAt,
	}
}

// Valid reports whether Last.fm would accept the track.
func (t ScrobbleTrack) Valid() bool {
	return t.Artist != "" && t.Track != ""
}
