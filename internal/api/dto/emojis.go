package dto

import "emoji-gallery/internal/files"

type ListEmojisResponse struct {
	Emojis        []files.ImageEntry `json:"emojis"`
	GroupedEmojis files.GroupedIndex `json:"groupedEmojis"`
}

type HealthResponse struct {
	Status     string   `json:"status"`
	Extensions []string `json:"extensions"`
}
