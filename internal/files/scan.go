package files

import (
	"context"
	"fmt"
	"os"
	"path"

	"github.com/dustin/go-humanize"
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"

	"emoji-gallery/internal/logger"
)

// ImageEntry is one image found under the root. Path is slash-separated and
// relative to the root.
type ImageEntry struct {
	Name     string `json:"name"`
	Path     string `json:"path"`
	Size     int64  `json:"size"`
	MimeType string `json:"mimeType"`
}

// LinkResolver decides whether a symlinked file may be listed. Root
// implements it, so a listed link is always one the image endpoint serves.
type LinkResolver interface {
	Resolve(rel string) (string, error)
}

// Scanner walks the root depth-first and collects image entries.
type Scanner struct {
	fs    billy.Filesystem
	links LinkResolver
	log   logger.LoggerService
}

// NewScanner returns a scanner over fsys. Symlinked files are checked with
// links; a nil links skips every symlink.
func NewScanner(fsys billy.Filesystem, links LinkResolver, log logger.LoggerService) *Scanner {
	if log == nil {
		log = logger.Discard()
	}
	return &Scanner{
		fs:    fsys,
		links: links,
		log:   log,
	}
}

// NewRootScanner scans the OS directory behind root.
func NewRootScanner(root Root, log logger.LoggerService) *Scanner {
	return NewScanner(osfs.New(root.Canonical), root, log)
}

// Scan returns every image under the root in traversal order. Any read
// failure discards what was collected so far.
func (s *Scanner) Scan(ctx context.Context) ([]ImageEntry, error) {
	entries := make([]ImageEntry, 0)
	if err := s.walk(ctx, "", &entries); err != nil {
		return nil, err
	}

	var total int64
	for _, e := range entries {
		total += e.Size
	}
	s.log.Debug(fmt.Sprintf("scan found %d images (%s)", len(entries), humanize.Bytes(uint64(total))))
	return entries, nil
}

func (s *Scanner) walk(ctx context.Context, dir string, out *[]ImageEntry) error {
	if err := ctx.Err(); err != nil {
		return &ScanError{Path: displayPath(dir), Err: err}
	}

	infos, err := s.fs.ReadDir(dir)
	if err != nil {
		return &ScanError{Path: displayPath(dir), Err: err}
	}

	for _, info := range infos {
		rel := path.Join(dir, info.Name())
		mode := info.Mode()

		switch {
		case mode&os.ModeSymlink != 0:
			entry, ok := s.linkedEntry(rel, info.Name())
			if ok {
				*out = append(*out, entry)
			}
		case info.IsDir():
			if err := s.walk(ctx, rel, out); err != nil {
				return err
			}
		case !mode.IsRegular() || !IsImage(info.Name()):
			continue
		default:
			*out = append(*out, newEntry(rel, info.Name(), info.Size()))
		}
	}
	return nil
}

// linkedEntry lists a symlinked image only if it resolves to a regular image
// file inside the root. Links to directories are never followed.
func (s *Scanner) linkedEntry(rel, name string) (ImageEntry, bool) {
	if s.links == nil || !IsImage(name) {
		return ImageEntry{}, false
	}

	target, err := s.links.Resolve(rel)
	if err != nil {
		s.log.Warn(fmt.Sprintf("skipping symlink %s: %v", rel, err))
		return ImageEntry{}, false
	}
	if !IsImage(target) {
		s.log.Warn(fmt.Sprintf("skipping symlink %s: target is not an image", rel))
		return ImageEntry{}, false
	}

	info, err := s.fs.Stat(rel)
	if err != nil {
		s.log.Warn(fmt.Sprintf("skipping symlink %s: %v", rel, err))
		return ImageEntry{}, false
	}
	return newEntry(rel, name, info.Size()), true
}

func newEntry(rel, name string, size int64) ImageEntry {
	return ImageEntry{
		Name:     name,
		Path:     rel,
		Size:     size,
		MimeType: MimeType(name),
	}
}

func displayPath(rel string) string {
	if rel == "" {
		return "."
	}
	return rel
}
