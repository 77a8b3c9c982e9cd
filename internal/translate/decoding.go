// Package translate holds the model-facing translation logic: building the
// prefixed prompt with its decoding parameters, and reducing raw generated
// text to a single display-ready sentence.
package translate

import (
	"errors"
	"fmt"
	"strings"
)

// Prefix is the task instruction the translation model was trained with.
const Prefix = "terjemah ke Inggeris: "

// ErrEmptyInput is returned when the text to translate is empty or whitespace only.
var ErrEmptyInput = errors.New("input cannot be empty")

// Mode selects one of the supported decoding configurations.
type Mode string

const (
	// ModeStrict suppresses run-on and hallucinated continuations.
	ModeStrict Mode = "strict"
	// ModeDefault is the looser configuration used with the fine-tuned model.
	ModeDefault Mode = "default"
)

// ParseMode converts a configuration string into a Mode.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeStrict:
		return ModeStrict, nil
	case ModeDefault:
		return ModeDefault, nil
	default:
		return "", fmt.Errorf("unknown decoding mode %q (want %q or %q)", s, ModeStrict, ModeDefault)
	}
}

// DecodingConfig holds generation parameters sent to the model.
// Zero values mean "not set" and are left to the model runtime defaults.
type DecodingConfig struct {
	MaxLength          int     `json:"max_length,omitempty"`
	MaxNewTokens       int     `json:"max_new_tokens,omitempty"`
	MinLength          int     `json:"min_length,omitempty"`
	NumBeams           int     `json:"num_beams,omitempty"`
	NoRepeatNgramSize  int     `json:"no_repeat_ngram_size,omitempty"`
	RepetitionPenalty  float64 `json:"repetition_penalty,omitempty"`
	Temperature        float64 `json:"temperature,omitempty"`
	LengthPenalty      float64 `json:"length_penalty,omitempty"`
	DoSample           bool    `json:"do_sample"`
	EarlyStopping      bool    `json:"early_stopping,omitempty"`
	NumReturnSequences int     `json:"num_return_sequences"`
}

// TranslationRequest is the prompt built for a single submission.
type TranslationRequest struct {
	RawInput       string
	PrefixedPrompt string
}

// StrictConfig returns the strict decoding parameters.
// MaxLength is kept alongside MaxNewTokens; the runtime lets MaxNewTokens win.
func StrictConfig() DecodingConfig {
	return DecodingConfig{
		MaxLength:          30,
		MaxNewTokens:       15,
		MinLength:          5,
		NumBeams:           2,
		NoRepeatNgramSize:  2,
		RepetitionPenalty:  3.0,
		Temperature:        0.2,
		LengthPenalty:      0.4,
		DoSample:           false,
		EarlyStopping:      true,
		NumReturnSequences: 1,
	}
}

// DefaultConfig returns the default decoding parameters.
func DefaultConfig() DecodingConfig {
	return DecodingConfig{
		MaxLength:          30,
		NumBeams:           2,
		DoSample:           false,
		EarlyStopping:      true,
		NumReturnSequences: 1,
	}
}

// ConfigFor returns the decoding parameters for mode.
// Unknown modes fall back to strict.
func ConfigFor(mode Mode) DecodingConfig {
	if mode == ModeDefault {
		return DefaultConfig()
	}
	return StrictConfig()
}

// Configure builds the prompt and decoding parameters for rawInput.
// rawInput goes into the prompt as given; only the emptiness check trims it.
func Configure(rawInput string, mode Mode) (TranslationRequest, DecodingConfig, error) {
	if strings.TrimSpace(rawInput) == "" {
		return TranslationRequest{}, DecodingConfig{}, ErrEmptyInput
	}
	req := TranslationRequest{
		RawInput:       rawInput,
		PrefixedPrompt: Prefix + rawInput,
	}
	return req, ConfigFor(mode), nil
}
