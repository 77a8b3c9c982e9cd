package llm

import "rojak/internal/translate"

// GenerateRequest is the request payload for a text2text-generation endpoint.
type GenerateRequest struct {
	Inputs     string                   `json:"inputs"`
	Parameters translate.DecodingConfig `json:"parameters"`
	Options    GenerateOptions          `json:"options"`
}

// GenerateOptions controls how the inference server handles the request.
type GenerateOptions struct {
	// WaitForModel blocks until the model is loaded instead of failing with 503.
	WaitForModel bool `json:"wait_for_model"`
	// UseCache is disabled so identical prompts still run through the model.
	UseCache bool `json:"use_cache"`
}

// Generation is a single generated sequence.
type Generation struct {
	GeneratedText string `json:"generated_text"`
}

// ErrorResponse is returned by the inference server on failure.
type ErrorResponse struct {
	Error string `json:"error"`
}
