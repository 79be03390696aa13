package out

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	captureout "travellog/internal/modules/capture/port/out"
)

var imageExts = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".heic": true, ".webp": true,
}

// DirectoryPhotoLibrary exposes the images directly inside one directory.
// A missing or unreadable directory counts as declined access.
type DirectoryPhotoLibrary struct {
	dir string
}

func NewDirectoryPhotoLibrary(dir string) captureout.PhotoLibrary {
	return &DirectoryPhotoLibrary{dir: dir}
}

func (l *DirectoryPhotoLibrary) RequestPermission(context.Context) (captureout.Permission, error) {
	if strings.TrimSpace(l.dir) == "" {
		return captureout.PermissionDenied, nil
	}
	info, err := os.Stat(l.dir)
	if err != nil || !info.IsDir() {
		return captureout.PermissionDenied, nil
	}
	f, err := os.Open(l.dir)
	if err != nil {
		return captureout.PermissionDenied, nil
	}
	_ = f.Close()
	return captureout.PermissionGranted, nil
}

func (l *DirectoryPhotoLibrary) Images(ctx context.Context) ([]captureout.ImageRef, error) {
	entries, err := os.ReadDir(l.dir)
	if err != nil {
		return nil, fmt.Errorf("read photos dir: %w", err)
	}
	type photo struct {
		path    string
		modTime time.Time
	}
	var photos []photo
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if e.IsDir() || !imageExts[strings.ToLower(filepath.Ext(e.Name()))] {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		abs, err := filepath.Abs(filepath.Join(l.dir, e.Name()))
		if err != nil {
			continue
		}
		photos = append(photos, photo{path: abs, modTime: info.ModTime()})
	}
	sort.SliceStable(photos, func(i, j int) bool {
		if photos[i].modTime.Equal(photos[j].modTime) {
			return photos[i].path < photos[j].path
		}
		return photos[i].modTime.After(photos[j].modTime)
	})
	out := make([]captureout.ImageRef, len(photos))
	for i, p := range photos {
		out[i] = captureout.ImageRef((&url.URL{Scheme: "file", Path: filepath.ToSlash(p.path)}).String())
	}
	return out, nil
}
