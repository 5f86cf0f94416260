package song

import (
	"os"
	"path/filepath"
	"sort"
)

// Collect resolves files and directories into songs.
// Files are taken as-is when they are music files; directories are walked
// recursively and their songs sorted by path. Argument order is preserved.
func Collect(paths ...string) ([]Song, error) {
	var songs []Song
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}

		if !info.IsDir() {
			if IsMusicFile(p) {
				songs = append(songs, FromPath(p))
			}
			continue
		}

		found, err := collectDir(p)
		if err != nil {
			return nil, err
		}
		songs = append(songs, found...)
	}
	return songs, nil
}

func collectDir(root string) ([]Song, error) {
	var songs []Song
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, walkErr error) error {
		if walkErr != nil {
			return nil //nolint:nilerr // unreadable entries are skipped
		}
		if d.IsDir() || !IsMusicFile(path) {
			return nil
		}
		songs = append(songs, FromPath(path))
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(songs, func(i, j int) bool {
		return songs[i].Path < songs[j].Path
	})
	return songs, nil
}
