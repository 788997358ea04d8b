package dto

// RetrieveWeights parametrize the ranking; zero values disable a signal.
type RetrieveWeights struct {
	Text            float64 `json:"text"`
	DifficultyMatch float64 `json:"difficulty_match"`
	Trickiness      float64 `json:"trickiness"`
}

// RetrieveRequest is the retrieval surface contract.
type RetrieveRequest struct {
	Query            string          `json:"query" validate:"required"`
	TopK             int             `json:"top_k"`
	Weights          RetrieveWeights `json:"weights"`
	TargetDifficulty string          `json:"target_difficulty"`
	SubjectFilter    string          `json:"subject_filter"`
}

type RetrievedSnippet struct {
	Text  string  `json:"text"`
	Score float64 `json:"score"`
}

type RetrieveResponse struct {
	ChunkCount int                `json:"chunk_count"`
	Retrieved  []RetrievedSnippet `json:"retrieved"`
}
