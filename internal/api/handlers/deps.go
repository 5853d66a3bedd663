package handlers

import (
	"errors"
	"net/http"
	"time"

	"emoji-gallery/internal/api/utils"
	"emoji-gallery/internal/files"
	"emoji-gallery/internal/logger"
)

// Deps is what the emoji handlers share. EmojiDir is reopened on every
// request, so a directory that appears after startup is picked up.
type Deps struct {
	EmojiDir    string
	ScanTimeout time.Duration
	ChunkSize   int
	Logger      logger.LoggerService
}

func (d Deps) log() logger.LoggerService {
	if d.Logger == nil {
		return logger.Discard()
	}
	return d.Logger
}

// writeFilesError maps the files error kinds onto HTTP responses. Details
// stay in the server log; clients get a generic message.
func writeFilesError(w http.ResponseWriter, log logger.LoggerService, err error) {
	var (
		cfgErr      *files.ConfigError
		scanErr     *files.ScanError
		invalidErr  *files.InvalidPathError
		notFoundErr *files.NotFoundError
		streamErr   *files.StreamError
	)

	switch {
	case errors.As(err, &invalidErr):
		utils.WriteError(w, http.StatusBadRequest, "Invalid file path", "INVALID_PATH", map[string]any{
			"reason": invalidErr.Reason,
		})
	case errors.As(err, &notFoundErr):
		utils.WriteError(w, http.StatusNotFound, "Image not found", "FILE_NOT_FOUND", nil)
	case errors.As(err, &cfgErr):
		log.Error("emoji directory unavailable", err)
		utils.WriteError(w, http.StatusInternalServerError, "Emoji directory is not configured", "EMOJI_DIR_INVALID", nil)
	case errors.As(err, &scanErr):
		log.Error("emoji scan failed", err)
		utils.WriteError(w, http.StatusInternalServerError, "Failed to list emojis", "SCAN_FAILED", nil)
	case errors.As(err, &streamErr):
		log.Error("image stream failed", err)
		utils.WriteError(w, http.StatusInternalServerError, "Failed to read image", "STREAM_FAILED", nil)
	default:
		log.Error("unexpected error", err)
		utils.WriteError(w, http.StatusInternalServerError, "Internal error", "INTERNAL_ERROR", nil)
	}
}
