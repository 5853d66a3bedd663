package files

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestNewRoot(t *testing.T) {
	base := t.TempDir()
	writeTree(t, base, map[string]string{"file.png": "x"})

	var cfgErr *ConfigError

	_, err := NewRoot("  ")
	if !errors.As(err, &cfgErr) || !errors.Is(err, ErrRootNotConfigured) {
		t.Fatalf("expected not configured error, got %v", err)
	}

	_, err = NewRoot(filepath.Join(base, "missing"))
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected config error for missing dir, got %v", err)
	}

	_, err = NewRoot(filepath.Join(base, "file.png"))
	if !errors.Is(err, ErrNotDirectory) {
		t.Fatalf("expected not a directory, got %v", err)
	}

	root, err := NewRoot(base)
	if err != nil {
		t.Fatalf("new root: %v", err)
	}
	if !filepath.IsAbs(root.Canonical) {
		t.Fatalf("expected absolute canonical root, got %s", root.Canonical)
	}
	if !root.Configured() {
		t.Fatalf("expected configured root")
	}
}

func TestResolveRejectsMissingPath(t *testing.T) {
	root := mustRoot(t, t.TempDir())

	for _, in := range []string{"", "   "} {
		_, err := root.Resolve(in)
		var invalid *InvalidPathError
		if !errors.As(err, &invalid) {
			t.Fatalf("%q: expected InvalidPathError, got %v", in, err)
		}
		if invalid.Reason != ReasonMissingPath {
			t.Fatalf("%q: expected reason %q, got %q", in, ReasonMissingPath, invalid.Reason)
		}
	}
}

func TestResolveRejectsEscapes(t *testing.T) {
	base := t.TempDir()
	writeTree(t, base, map[string]string{"a.png": "a", "sub/b.jpg": "b"})
	root := mustRoot(t, base)

	inputs := []string{
		"..",
		"../outside.png",
		"../../etc/passwd",
		"sub/../../etc/passwd",
		"sub/../../" + filepath.Base(base) + "/a.png",
		"/etc/passwd",
		filepath.Join(base, "a.png"),
	}
	for _, in := range inputs {
		_, err := root.Resolve(in)
		var invalid *InvalidPathError
		if !errors.As(err, &invalid) {
			t.Fatalf("%q: expected InvalidPathError, got %v", in, err)
		}
		if invalid.Reason != ReasonEscapesRoot {
			t.Fatalf("%q: expected reason %q, got %q", in, ReasonEscapesRoot, invalid.Reason)
		}
	}

	_, err := root.Resolve("a\x00.png")
	var invalid *InvalidPathError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidPathError for NUL byte, got %v", err)
	}
}

func TestResolveAcceptsContainedFiles(t *testing.T) {
	base := t.TempDir()
	writeTree(t, base, map[string]string{"a.png": "a", "sub/b.jpg": "b", "..dots.png": "d"})
	root := mustRoot(t, base)

	cases := map[string]string{
		"a.png":        "a.png",
		"sub/b.jpg":    filepath.Join("sub", "b.jpg"),
		"./sub/b.jpg":  filepath.Join("sub", "b.jpg"),
		"sub/../a.png": "a.png",
		"sub//b.jpg":   filepath.Join("sub", "b.jpg"),
		"..dots.png":   "..dots.png",
	}
	for in, want := range cases {
		got, err := root.Resolve(in)
		if err != nil {
			t.Fatalf("%q: unexpected error %v", in, err)
		}
		if got != filepath.Join(root.Canonical, want) {
			t.Fatalf("%q: expected %s, got %s", in, filepath.Join(root.Canonical, want), got)
		}
	}
}

func TestResolveNotFound(t *testing.T) {
	base := t.TempDir()
	writeTree(t, base, map[string]string{"a.png": "a", "sub/b.jpg": "b"})
	root := mustRoot(t, base)

	for _, in := range []string{"missing.png", "sub", ".", "a.png/x.png", "sub/"} {
		_, err := root.Resolve(in)
		var nf *NotFoundError
		if !errors.As(err, &nf) {
			t.Fatalf("%q: expected NotFoundError, got %v", in, err)
		}
	}
}

func TestResolveSymlinks(t *testing.T) {
	base := t.TempDir()
	outside := t.TempDir()
	writeTree(t, base, map[string]string{"a.png": "a", "sub/b.jpg": "b"})
	writeTree(t, outside, map[string]string{"secret.png": "s"})

	symlinkOrSkip(t, filepath.Join(base, "a.png"), filepath.Join(base, "alias.png"))
	symlinkOrSkip(t, filepath.Join(outside, "secret.png"), filepath.Join(base, "escape.png"))
	symlinkOrSkip(t, outside, filepath.Join(base, "outdir"))
	symlinkOrSkip(t, filepath.Join("..", "a.png"), filepath.Join(base, "sub", "up.png"))

	root := mustRoot(t, base)

	got, err := root.Resolve("alias.png")
	if err != nil {
		t.Fatalf("alias: %v", err)
	}
	if got != filepath.Join(root.Canonical, "a.png") {
		t.Fatalf("alias resolved to %s", got)
	}

	got, err = root.Resolve("sub/up.png")
	if err != nil {
		t.Fatalf("relative link inside root: %v", err)
	}
	if got != filepath.Join(root.Canonical, "a.png") {
		t.Fatalf("relative link resolved to %s", got)
	}

	for _, in := range []string{"escape.png", "outdir/secret.png"} {
		_, err := root.Resolve(in)
		var invalid *InvalidPathError
		if !errors.As(err, &invalid) {
			t.Fatalf("%q: expected InvalidPathError, got %v", in, err)
		}
	}
}

func TestResolveUnconfiguredRoot(t *testing.T) {
	_, err := Root{}.Resolve("a.png")
	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigError, got %v", err)
	}
}

func TestIsWithinBase(t *testing.T) {
	base := filepath.Join(string(os.PathSeparator), "srv", "emoji")
	if !isWithinBase(base, base) {
		t.Fatalf("base must contain itself")
	}
	if !isWithinBase(base, filepath.Join(base, "a", "b.png")) {
		t.Fatalf("expected descendant to be contained")
	}
	if isWithinBase(base, filepath.Join(string(os.PathSeparator), "srv", "emoji-other", "a.png")) {
		t.Fatalf("sibling with shared prefix must not be contained")
	}
	if isWithinBase(base, filepath.Dir(base)) {
		t.Fatalf("parent must not be contained")
	}
	if !isWithinBase(base, filepath.Join(base, "..x")) {
		t.Fatalf("names starting with dots stay inside")
	}
}
