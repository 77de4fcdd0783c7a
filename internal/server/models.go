package server

import "github.com/Shivang1109/GRAMSEVAK-AI-VERTEX/models"

// QueryRequest is the payload of POST /query. Lang is advisory only; the
// pipeline handles Hindi, Hinglish and English text alike.
type QueryRequest struct {
	Text        string `json:"text"`
	Lang        string `json:"lang"`
	NetworkType string `json:"network_type"`
	UserType    string `json:"user_type"`
	Category    string `json:"category"`
	Simulate2G  bool   `json:"simulate_2g"`
}

// QueryResponse envelopes the answer with delivery metadata.
type QueryResponse struct {
	ResponseID         string  `json:"response_id"`
	Mode               string  `json:"mode"`
	Category           string  `json:"category"`
	CategoryConfidence float64 `json:"category_confidence"`
	BytesUsed          int     `json:"bytes_used"`
	ResponseTimeMs     int64   `json:"response_time_ms"`
	Cached             bool    `json:"cached"`

	Answer models.Answer `json:"answer"`
}

// FeedbackRequest is the payload of POST /feedback.
type FeedbackRequest struct {
	ResponseID string `json:"response_id"`
	IsHelpful  bool   `json:"is_helpful"`
	Category   string `json:"category"`
}

// TokenRequest is the admin login payload for POST /api/auth/token.
type TokenRequest struct {
	Password string `json:"password"`
}

// TokenResponse carries the signed admin JWT.
type TokenResponse struct {
	Token string `json:"token"`
}
