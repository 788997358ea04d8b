package dto

type CompilePdfRequest struct {
	Latex  string `json:"latex" validate:"required"`
	Title  string `json:"title"`
	Preset string `json:"preset"`
}

type CompilePdfResponse struct {
	ArtifactRef      string `json:"artifact_ref"`
	ExpiresInSeconds int    `json:"expires_in_seconds"`
}
