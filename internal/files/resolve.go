package files

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

const (
	ReasonMissingPath = "missing path"
	ReasonEscapesRoot = "path escapes root"
	ReasonMalformed   = "malformed path"
)

// Root is the configured emoji directory. Original is what the operator
// wrote, Canonical is the absolute, symlink-free form every containment
// check compares against.
type Root struct {
	Original  string
	Canonical string
}

// NewRoot canonicalizes dir and checks that it is an existing directory.
func NewRoot(dir string) (Root, error) {
	trimmed := strings.TrimSpace(dir)
	if trimmed == "" {
		return Root{}, &ConfigError{Err: ErrRootNotConfigured}
	}

	abs, err := filepath.Abs(trimmed)
	if err != nil {
		return Root{}, &ConfigError{Dir: trimmed, Err: err}
	}
	canonical, err := filepath.EvalSymlinks(filepath.Clean(abs))
	if err != nil {
		return Root{}, &ConfigError{Dir: trimmed, Err: err}
	}

	info, err := os.Stat(canonical)
	if err != nil {
		return Root{}, &ConfigError{Dir: trimmed, Err: err}
	}
	if !info.IsDir() {
		return Root{}, &ConfigError{Dir: trimmed, Err: ErrNotDirectory}
	}

	return Root{
		Original:  trimmed,
		Canonical: filepath.Clean(canonical),
	}, nil
}

// Configured reports whether r came out of a successful NewRoot.
func (r Root) Configured() bool {
	return r.Canonical != ""
}

// Resolve maps an untrusted, slash-separated path relative to the root onto
// an absolute path of an existing regular file inside the root. Lexical
// escapes are rejected before the filesystem is consulted; symlinks are then
// resolved and the physical target is checked again.
func (r Root) Resolve(rel string) (string, error) {
	if !r.Configured() {
		return "", &ConfigError{Err: ErrRootNotConfigured}
	}
	if strings.TrimSpace(rel) == "" {
		return "", &InvalidPathError{Path: rel, Reason: ReasonMissingPath}
	}
	if strings.ContainsRune(rel, 0) {
		return "", &InvalidPathError{Path: rel, Reason: ReasonMalformed}
	}

	cleaned, ok := cleanRelative(rel)
	if !ok {
		return "", &InvalidPathError{Path: rel, Reason: ReasonEscapesRoot}
	}

	joined := filepath.Join(r.Canonical, cleaned)
	if !isWithinBase(r.Canonical, joined) {
		return "", &InvalidPathError{Path: rel, Reason: ReasonEscapesRoot}
	}

	resolved, err := filepath.EvalSymlinks(joined)
	if err != nil {
		return "", &NotFoundError{Path: rel, Err: err}
	}
	if !isWithinBase(r.Canonical, resolved) {
		return "", &InvalidPathError{Path: rel, Reason: ReasonEscapesRoot}
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return "", &NotFoundError{Path: rel, Err: err}
	}
	if !info.Mode().IsRegular() {
		return "", &NotFoundError{Path: rel, Err: ErrNotRegular}
	}

	return resolved, nil
}

// cleanRelative converts rel to a cleaned native path and reports false for
// absolute overrides and for anything that climbs above its starting point.
func cleanRelative(rel string) (string, bool) {
	native := filepath.FromSlash(rel)
	if filepath.IsAbs(native) || filepath.VolumeName(native) != "" {
		return "", false
	}
	if strings.HasPrefix(native, string(os.PathSeparator)) {
		return "", false
	}

	cleaned := filepath.Clean(native)
	if cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(os.PathSeparator)) {
		return "", false
	}
	return cleaned, true
}

func pathEqual(a, b string) bool {
	if runtime.GOOS == "windows" {
		return strings.EqualFold(a, b)
	}
	return a == b
}

func isWithinBase(base, target string) bool {
	base = normalizeForCompare(base)
	target = normalizeForCompare(target)

	if pathEqual(base, target) {
		return true
	}
	rel, err := filepath.Rel(base, target)
	if err != nil {
		return false
	}
	if rel == "." {
		return true
	}
	if strings.HasPrefix(rel, ".."+string(os.PathSeparator)) || rel == ".." {
		return false
	}
	return !filepath.IsAbs(rel)
}

func normalizeForCompare(path string) string {
	cleaned := filepath.Clean(path)
	if runtime.GOOS == "windows" {
		return strings.ToLower(cleaned)
	}
	return cleaned
}
