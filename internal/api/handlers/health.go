package handlers

import (
	"net/http"

	"emoji-gallery/internal/api/dto"
	"emoji-gallery/internal/api/utils"
	"emoji-gallery/internal/files"
)

func NewHealthHandler(deps Deps) http.HandlerFunc {
	log := deps.log()
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := files.NewRoot(deps.EmojiDir); err != nil {
			log.Warn("health: " + err.Error())
			utils.WriteError(w, http.StatusServiceUnavailable, "Emoji directory unavailable", "EMOJI_DIR_UNAVAILABLE", nil)
			return
		}

		utils.WriteJSON(w, http.StatusOK, dto.HealthResponse{
			Status:     "ok",
			Extensions: files.Extensions(),
		})
	}
}
