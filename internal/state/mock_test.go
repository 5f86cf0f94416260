package state

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMock_QueueIsCopied(t *testing.T) {
	m := NewMock()
	songs := testSongs(2)

	require.NoError(t, m.SaveQueue(QueueState{Songs: songs, CurrentIndex: 1}))
	songs[0].Title = "changed"

	st, err := m.GetQueue()
	require.NoError(t, err)
	assert.Equal(t, "Song 1", st.Songs[0].Title)
	assert.Equal(t, 1, m.QueueSaves())
}

func TestMock_SavePositionUpdatesQueue(t *testing.T) {
	m := NewMock()
	m.SavePosition(1, time.Second)

	st, _ := m.GetQueue()
	assert.Nil(t, st, "position without a queue is ignored")

	_ = m.SaveQueue(QueueState{Songs: testSongs(2)})
	m.SavePosition(1, 3*time.Second)

	st, _ = m.GetQueue()
	assert.Equal(t, 1, st.CurrentIndex)
	assert.Equal(t, 3*time.Second, st.Position)
}

func TestMock_PlayCounts(t *testing.T) {
	m := NewMock()
	songs := testSongs(2)
	now := time.Now()

	_ = m.IncrementPlayCount(songs[0], now)
	_ = m.IncrementPlayCount(songs[1], now)
	_ = m.IncrementPlayCount(songs[1], now)
	_ = m.IncrementSkipCount(songs[0], now)

	top, err := m.TopPlayCounts(5)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, int64(2), top[0].SongID)

	pc, _ := m.GetPlayCount(1)
	require.NotNil(t, pc)
	assert.Equal(t, 1, pc.Plays)
	assert.Equal(t, 1, pc.Skips)
}

func TestMock_PendingScrobbles(t *testing.T) {
	m := NewMock()

	_ = m.AddPendingScrobble(PendingScrobble{Track: "a"})
	_ = m.AddPendingScrobble(PendingScrobble{Track: "b"})
	pending, _ := m.GetPendingScrobbles()
	require.Len(t, pending, 2)

	_ = m.UpdatePendingScrobbleAttempt(pending[0].ID, "down")
	_ = m.DeletePendingScrobble(pending[1].ID)

	pending, _ = m.GetPendingScrobbles()
	require.Len(t, pending, 1)
	assert.Equal(t, 1, pending[0].Attempts)
	assert.Equal(t, "down", pending[0].LastError)
}

func TestMock_SetError(t *testing.T) {
	m := NewMock()
	boom := errors.New("disk full")
	m.SetError(boom)

	assert.ErrorIs(t, m.SaveQueue(QueueState{}), boom)
	assert.ErrorIs(t, m.IncrementPlayCount(testSongs(1)[0], time.Now()), boom)
	assert.ErrorIs(t, m.AddPendingScrobble(PendingScrobble{}), boom)
}
