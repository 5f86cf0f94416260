package lastfm

import (
	"context"

	"github.com/llehouerou/jockey/internal/logger"
	"github.com/llehouerou/jockey/internal/state"
)

// MaxAttempts is how many times a pending scrobble is resubmitted before it
// is left for DeleteOldPendingScrobbles to expire.
const MaxAttempts = 10

// Submitter submits scrobbles; *Client implements it.
type Submitter interface {
	Scrobble(track ScrobbleTrack) error
}

// PendingStore holds scrobbles that could not be submitted.
type PendingStore interface {
	AddPendingScrobble(s state.PendingScrobble) error
	GetPendingScrobbles() ([]state.PendingScrobble, error)
	DeletePendingScrobble(id int64) error
	UpdatePendingScrobbleAttempt(id int64, errMsg string) error
}

// RetryResult counts the outcome of a RetryPending run.
type RetryResult struct {
	Succeeded int
	Failed    int
}

// ToPending converts a track that failed to submit into a pending row.
func ToPending(t ScrobbleTrack, err error) state.PendingScrobble {
	p := state.PendingScrobble{
		Artist:      t.Artist,
		Track:       t.Track,
		Album:       t.Album,
		AlbumArtist: t.AlbumArtist,
		Duration:    t.Duration,
		Timestamp:   t.Timestamp,
	}
	if err != nil {
		p.LastError = err.Error()
	}
	return p
}

func fromPending(p state.PendingScrobble) ScrobbleTrack {
	return ScrobbleTrack{
		Artist:      p.Artist,
		Track:       p.Track,
		Album:       p.Album,
		AlbumArtist: p.AlbumArtist,
		Duration:    p.Duration,
		Timestamp:   p.Timestamp,
	}
}

// RetryPending resubmits pending scrobbles oldest first. Successful ones are
// deleted; failures increment the attempt count. Scrobbles that reached
// MaxAttempts are skipped.
func RetryPending(ctx context.Context, sub Submitter, store PendingStore) (RetryResult, error) {
	var res RetryResult

	pending, err := store.GetPendingScrobbles()
	if err != nil {
		return res, err
	}

	for i := range pending {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		p := &pending[i]
		if p.Attempts >= MaxAttempts {
			continue
		}

		if err := sub.Scrobble(fromPending(*p)); err != nil {
			res.Failed++
			if uerr := store.UpdatePendingScrobbleAttempt(p.ID, err.Error()); uerr != nil {
				logger.Warnf("[lastfm] update pending scrobble %d: %v", p.ID, uerr)
			}
			continue
		}
		res.Succeeded++
		if derr := store.DeletePendingScrobble(p.ID); derr != nil {
			logger.Warnf("[lastfm] delete pending scrobble %d: %v", p.ID, derr)
		}
	}

	return res, nil
}
