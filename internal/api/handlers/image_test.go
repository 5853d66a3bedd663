package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"emoji-gallery/internal/api/utils"
	"emoji-gallery/internal/files"
	"emoji-gallery/internal/logger"
)

func TestStreamImageFileRemovedAfterResolve(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.png"), []byte("PNGDATA"), 0o644))

	root, err := files.NewRoot(dir)
	require.NoError(t, err)
	target, err := root.Resolve("a.png")
	require.NoError(t, err)
	require.NoError(t, os.Remove(target))

	var logs bytes.Buffer
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/image?path=a.png", nil)
	streamImage(rec, req, logger.NewWriter(&logs, false), files.NewStreamer(0), target, "a.png")

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	var out utils.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, "STREAM_FAILED", out.Code)
	assert.Contains(t, logs.String(), "[ERROR] image stream failed")
}

func TestWriteFilesErrorStatus(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"invalid", &files.InvalidPathError{Path: "..", Reason: files.ReasonEscapesRoot}, http.StatusBadRequest, "INVALID_PATH"},
		{"not found", &files.NotFoundError{Path: "x.png"}, http.StatusNotFound, "FILE_NOT_FOUND"},
		{"config", &files.ConfigError{Err: files.ErrRootNotConfigured}, http.StatusInternalServerError, "EMOJI_DIR_INVALID"},
		{"scan", &files.ScanError{Path: "sub", Err: os.ErrPermission}, http.StatusInternalServerError, "SCAN_FAILED"},
		{"stream", &files.StreamError{Path: "a.png", Err: os.ErrNotExist}, http.StatusInternalServerError, "STREAM_FAILED"},
		{"other", os.ErrClosed, http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeFilesError(rec, logger.Discard(), tc.err)

			assert.Equal(t, tc.status, rec.Code)
			var out utils.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
			assert.Equal(t, tc.code, out.Code)
		})
	}
}
