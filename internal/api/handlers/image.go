package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"

	"emoji-gallery/internal/files"
	"emoji-gallery/internal/logger"
)

func NewImageHandler(deps Deps) http.HandlerFunc {
	log := deps.log()
	streamer := files.NewStreamer(deps.ChunkSize)
	return func(w http.ResponseWriter, r *http.Request) {
		root, err := files.NewRoot(deps.EmojiDir)
		if err != nil {
			writeFilesError(w, log, err)
			return
		}

		rel := r.URL.Query().Get("path")
		target, err := root.Resolve(rel)
		if err != nil {
			writeFilesError(w, log, err)
			return
		}

		name := filepath.Base(filepath.Clean(filepath.FromSlash(rel)))
		if !files.IsImage(name) || !files.IsImage(target) {
			writeFilesError(w, log, &files.NotFoundError{Path: rel})
			return
		}

		streamImage(w, r, log, streamer, target, name)
	}
}

// streamImage sends a resolved target. Errors before the headers go out get
// a JSON error body; later ones can only be logged.
func streamImage(w http.ResponseWriter, r *http.Request, log logger.LoggerService, streamer *files.Streamer, target, name string) {
	err := streamer.Stream(w, r, target, name)
	if err == nil {
		return
	}

	var streamErr *files.StreamError
	if errors.As(err, &streamErr) && streamErr.HeadersSent {
		if r.Context().Err() != nil {
			log.Debug(fmt.Sprintf("client went away while streaming %s", name))
			return
		}
		log.Error("image stream aborted", err)
		return
	}
	writeFilesError(w, log, err)
}
