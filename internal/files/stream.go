package files

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"
)

// DefaultChunkSize bounds each read from disk while streaming.
const DefaultChunkSize = 32 << 10

var dispositionEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\r", "", "\n", "")

// Streamer copies a resolved image to an HTTP response.
type Streamer struct {
	chunkSize int
}

func NewStreamer(chunkSize int) *Streamer {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	return &Streamer{chunkSize: chunkSize}
}

// Stream sends the file at absPath, which must already have passed
// Root.Resolve. name is the entry name the client asked for; it drives the
// content type and the disposition filename so both match the listing.
// The copy stops as soon as the request context is done.
func (s *Streamer) Stream(w http.ResponseWriter, r *http.Request, absPath, name string) error {
	// absPath was accepted moments ago, so a failure here is a transient
	// I/O error, including the file vanishing in between.
	f, err := os.Open(absPath)
	if err != nil {
		return &StreamError{Path: absPath, Err: err}
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return &StreamError{Path: absPath, Err: err}
	}
	if !info.Mode().IsRegular() {
		return &StreamError{Path: absPath, Err: ErrNotRegular}
	}

	h := w.Header()
	h.Set("Content-Type", MimeType(name))
	h.Set("Content-Disposition", ContentDisposition(name))
	h.Set("Content-Length", strconv.FormatInt(info.Size(), 10))
	h.Set("Last-Modified", info.ModTime().UTC().Format(http.TimeFormat))
	h.Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(http.StatusOK)

	if r.Method == http.MethodHead {
		return nil
	}
	return s.copy(r.Context(), w, f, absPath)
}

func (s *Streamer) copy(ctx context.Context, w io.Writer, src io.Reader, absPath string) error {
	buf := make([]byte, s.chunkSize)
	for {
		if err := ctx.Err(); err != nil {
			return &StreamError{Path: absPath, Err: err, HeadersSent: true}
		}

		n, readErr := src.Read(buf)
		if n > 0 {
			if _, err := w.Write(buf[:n]); err != nil {
				return &StreamError{Path: absPath, Err: err, HeadersSent: true}
			}
		}
		if errors.Is(readErr, io.EOF) {
			return nil
		}
		if readErr != nil {
			return &StreamError{Path: absPath, Err: readErr, HeadersSent: true}
		}
	}
}

// ContentDisposition builds an inline disposition carrying name. Non-ASCII
// names additionally get an RFC 5987 filename* parameter.
func ContentDisposition(name string) string {
	v := `inline; filename="` + dispositionEscaper.Replace(name) + `"`
	if !isASCII(name) {
		v += "; filename*=UTF-8''" + url.PathEscape(name)
	}
	return v
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}
