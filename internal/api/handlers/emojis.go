package handlers

import (
	"context"
	"net/http"

	"emoji-gallery/internal/api/dto"
	"emoji-gallery/internal/api/utils"
	"emoji-gallery/internal/files"
)

func NewListEmojisHandler(deps Deps) http.HandlerFunc {
	log := deps.log()
	return func(w http.ResponseWriter, r *http.Request) {
		root, err := files.NewRoot(deps.EmojiDir)
		if err != nil {
			writeFilesError(w, log, err)
			return
		}

		ctx := r.Context()
		if deps.ScanTimeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, deps.ScanTimeout)
			defer cancel()
		}

		entries, err := files.NewRootScanner(root, log).Scan(ctx)
		if err != nil {
			writeFilesError(w, log, err)
			return
		}

		utils.WriteJSON(w, http.StatusOK, dto.ListEmojisResponse{
			Emojis:        entries,
			GroupedEmojis: files.Group(entries),
		})
	}
}
