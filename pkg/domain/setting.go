package domain

import "time"

// SettingEmbeddingModel keeps the model used for stored anchor embeddings
const SettingEmbeddingModel = "embedding_model"

// Setting represents a key-value configuration setting
type Setting struct {
	Key       string
	Value     string
	UpdatedAt time.Time
}
