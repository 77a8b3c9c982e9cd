package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_generator.go -package=mocks rojak/internal/service Generator
//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_translation_store.go -package=mocks rojak/internal/service TranslationStore
//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_event_publisher.go -package=mocks rojak/internal/service EventPublisher
//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_translation_service.go -package=mocks rojak/internal/service TranslationService

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"golang.org/x/text/unicode/norm"

	"rojak/internal/contextutil"
	"rojak/internal/events"
	"rojak/internal/storage"
	"rojak/internal/translate"
)

// Warnings attached to a successful translation that was not persisted.
const (
	WarningLoginToSave = "Please log in to save translations."
	WarningSaveFailed  = "Failed to save translation."
)

// Generator produces raw text from a prompt.
// This interface is defined from the service layer's perspective (consumer-first).
type Generator interface {
	Generate(ctx context.Context, prompt string, params translate.DecodingConfig) (string, error)
}

// TranslationStore persists translations per user.
type TranslationStore interface {
	Save(ctx context.Context, rec *storage.TranslationRecord) error
	ListByUser(ctx context.Context, user string) ([]storage.TranslationRecord, error)
	Delete(ctx context.Context, user, id string) error
	CountByUser(ctx context.Context, user string) (int, error)
}

// EventPublisher announces completed translations.
type EventPublisher interface {
	PublishTranslation(ctx context.Context, event events.TranslationEvent) error
}

// TranslateRequest represents a translation request in the domain layer.
// User is empty when nobody is logged in.
type TranslateRequest struct {
	Text string
	User string
}

// TranslateResponse represents a completed translation.
type TranslateResponse struct {
	RequestID string
	Input     string
	Output    string
	Timestamp time.Time
	Saved     bool
	RecordID  string
	Warning   string
}

// TranslationService translates code-switched text and records the result.
type TranslationService interface {
	Translate(ctx context.Context, req TranslateRequest) (TranslateResponse, error)
}

// TranslationOptions tunes how requests are sent to the generator.
type TranslationOptions struct {
	Mode           translate.Mode
	SlangExpansion bool
}

type translationService struct {
	generator Generator
	store     TranslationStore
	publisher EventPublisher
	opts      TranslationOptions
	now       func() time.Time
}

// NewTranslationService creates a new TranslationService.
// A nil publisher disables events.
func NewTranslationService(generator Generator, store TranslationStore, publisher EventPublisher, opts TranslationOptions) TranslationService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	if opts.Mode == "" {
		opts.Mode = translate.ModeStrict
	}
	return &translationService{
		generator: generator,
		store:     store,
		publisher: publisher,
		opts:      opts,
		now:       time.Now,
	}
}

// Translate runs one interaction: configure, generate, normalise, then save
// and announce the result. Save and publish failures do not fail the request.
func (s *translationService) Translate(ctx context.Context, req TranslateRequest) (TranslateResponse, error) {
	requestID := ulid.Make().String()
	logger := contextutil.LoggerFromContext(ctx).With("translation_id", requestID)

	if strings.TrimSpace(req.Text) == "" {
		logger.WarnContext(ctx, "empty text in translate request")
		return TranslateResponse{}, &ValidationError{
			Field:   "text",
			Message: "cannot be empty",
		}
	}

	// Only the model sees the composed form; the text is echoed and saved as submitted
	modelInput := norm.NFC.String(req.Text)
	if s.opts.SlangExpansion {
		// Keep the original when the text was nothing but dropped particles
		if expanded := translate.ExpandSlang(modelInput); expanded != "" {
			modelInput = expanded
		}
	}

	prompt, params, err := translate.Configure(modelInput, s.opts.Mode)
	if err != nil {
		if errors.Is(err, translate.ErrEmptyInput) {
			return TranslateResponse{}, &ValidationError{Field: "text", Message: "cannot be empty"}
		}
		return TranslateResponse{}, WrapError(err, "failed to configure translation")
	}

	start := s.now()
	raw, err := s.generator.Generate(ctx, prompt.PrefixedPrompt, params)
	if err != nil {
		logger.ErrorContext(ctx, "failed to generate translation", "error", err)
		return TranslateResponse{}, fmt.Errorf("failed to generate translation: %w: %w", ErrExternalService, err)
	}

	resp := TranslateResponse{
		RequestID: requestID,
		Input:     req.Text,
		Output:    translate.Normalize(raw),
		Timestamp: s.now().UTC(),
	}
	logger.InfoContext(ctx, "translation generated",
		"mode", s.opts.Mode,
		"input_length", len(req.Text),
		"raw_length", len(raw),
		"output_length", len(resp.Output),
		"duration_ms", s.now().Sub(start).Milliseconds(),
	)

	s.persist(ctx, req.User, &resp)

	event := events.TranslationEvent{
		ID:         requestID,
		User:       req.User,
		InputText:  resp.Input,
		OutputText: resp.Output,
		Mode:       string(s.opts.Mode),
		Timestamp:  resp.Timestamp,
	}
	if err := s.publisher.PublishTranslation(ctx, event); err != nil {
		logger.WarnContext(ctx, "failed to publish translation event", "error", err)
	}

	return resp, nil
}

// persist saves resp for user and records the outcome on resp.
func (s *translationService) persist(ctx context.Context, user string, resp *TranslateResponse) {
	logger := contextutil.LoggerFromContext(ctx)

	if user == "" {
		resp.Warning = WarningLoginToSave
		return
	}

	rec := &storage.TranslationRecord{
		User:       user,
		InputText:  resp.Input,
		OutputText: resp.Output,
	}
	if err := s.store.Save(ctx, rec); err != nil {
		logger.ErrorContext(ctx, "failed to save translation", "user", user, "error", err)
		resp.Warning = WarningSaveFailed
		return
	}

	resp.Saved = true
	resp.RecordID = rec.ID
	if !rec.Timestamp.IsZero() {
		resp.Timestamp = rec.Timestamp.UTC()
	}
}
