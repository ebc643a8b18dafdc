// Package assist turns a short prompt into proposal prose. Failures never
// reach the caller: they come back as fixed placeholder text.
package assist

import (
	"context"
	"errors"
	"strings"

	"github.com/alexisbeaulieu97/proposa/internal/logger"
	proposaerrors "github.com/alexisbeaulieu97/proposa/pkg/errors"
)

const (
	// PlaceholderText is returned when no backend is configured.
	PlaceholderText = "This is placeholder text because no API key is configured. Provide a real prompt and configure a key to generate content for this proposal section."

	// ErrorText is returned when the backend fails.
	ErrorText = "There was an error generating content. Please check your API key and try again."
)

// SystemPrompt frames every request.
const SystemPrompt = "You are an expert proposal writer. Based on the prompt below, write a clear, concise and persuasive section for a business proposal. The tone must be professional and confident. Focus only on the requested content. Do not add titles or headings unless asked."

// ErrEmptyCompletion reports a backend answer without text.
var ErrEmptyCompletion = errors.New("empty completion")

// Backend completes a prompt.
type Backend interface {
	Complete(ctx context.Context, system, prompt string) (string, error)
}

// Assistant wraps a Backend with the placeholder rules.
type Assistant struct {
	backend Backend
	logger  *logger.Logger
}

// New builds an Assistant. A nil backend makes every call return
// PlaceholderText.
func New(backend Backend, log *logger.Logger) *Assistant {
	return &Assistant{backend: backend, logger: log}
}

// Configured reports whether a backend is attached.
func (a *Assistant) Configured() bool {
	return a != nil && a.backend != nil
}

// Generate returns prose for prompt.
func (a *Assistant) Generate(ctx context.Context, prompt string) string {
	if !a.Configured() {
		return PlaceholderText
	}
	text, err := a.backend.Complete(ctx, SystemPrompt, prompt)
	if err == nil && strings.TrimSpace(text) == "" {
		err = ErrEmptyCompletion
	}
	if err != nil {
		a.logger.Error(ctx, "text generation failed", "error", proposaerrors.NewExternalError("assist", err))
		return ErrorText
	}
	return strings.TrimSpace(text)
}
