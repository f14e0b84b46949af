// Package llm wraps Gemini text generation behind a small interface and
// handles falling back across model names that the API no longer serves.
package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"google.golang.org/genai"
)

// Generator produces a text completion for a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// DefaultModels is the preferred candidate order.
var DefaultModels = []string{
	"gemini-2.5-flash",
	"gemini-1.5-flash",
	"gemini-2.0-flash-exp",
}

var (
	ErrNoModel       = errors.New("no available generative model")
	ErrEmptyResponse = errors.New("empty model response")
)

// ModelSelector tracks which candidate model is currently in use. It is
// owned by whoever builds the Gemini client and is safe for concurrent use.
type ModelSelector struct {
	mu         sync.Mutex
	candidates []string
	current    int
}

func NewModelSelector(candidates []string) *ModelSelector {
	if len(candidates) == 0 {
		candidates = DefaultModels
	}
	c := make([]string, len(candidates))
	copy(c, candidates)
	return &ModelSelector{candidates: c}
}

// Current returns the selected model, or ErrNoModel once every candidate
// has been ruled out.
func (s *ModelSelector) Current() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current >= len(s.candidates) {
		return "", ErrNoModel
	}
	return s.candidates[s.current], nil
}

// Advance moves past failed if it is still the selected model. Concurrent
// callers that saw the same failure advance only once.
func (s *ModelSelector) Advance(failed string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current < len(s.candidates) && s.candidates[s.current] == failed {
		s.current++
	}
}

// Reset makes the first candidate current again.
func (s *ModelSelector) Reset() {
	s.mu.Lock()
	s.current = 0
	s.mu.Unlock()
}

// Candidates returns a copy of the candidate list.
func (s *ModelSelector) Candidates() []string {
	out := make([]string, len(s.candidates))
	copy(out, s.candidates)
	return out
}

// Selection reports the model that served a generation.
type Selection struct {
	Model    string
	Attempts int
}

// contentFunc is the single Gemini call Gemini depends on.
type contentFunc func(ctx context.Context, model, prompt string) (string, error)

// Gemini implements Generator on the genai client with model fallback.
type Gemini struct {
	selector *ModelSelector
	generate contentFunc
	logger   *slog.Logger
}

// NewGemini creates a Gemini API client for apiKey.
func NewGemini(ctx context.Context, apiKey string, selector *ModelSelector, logger *slog.Logger) (*Gemini, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	call := func(ctx context.Context, model, prompt string) (string, error) {
		resp, err := client.Models.GenerateContent(ctx, model, genai.Text(prompt), nil)
		if err != nil {
			return "", err
		}
		return resp.Text(), nil
	}
	return newGemini(call, selector, logger), nil
}

func newGemini(call contentFunc, selector *ModelSelector, logger *slog.Logger) *Gemini {
	if selector == nil {
		selector = NewModelSelector(nil)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Gemini{selector: selector, generate: call, logger: logger}
}

func (g *Gemini) Generate(ctx context.Context, prompt string) (string, error) {
	text, _, err := g.GenerateWithSelection(ctx, prompt)
	return text, err
}

// GenerateWithSelection tries the selected model and moves down the
// candidate list while the API reports the model as not found. Any other
// error is returned as is. A call that exhausts the list rewinds the
// selector, so the next call walks the candidates again.
func (g *Gemini) GenerateWithSelection(ctx context.Context, prompt string) (string, Selection, error) {
	var sel Selection
	for {
		model, err := g.selector.Current()
		if err != nil {
			g.selector.Reset()
			return "", sel, err
		}
		sel.Model = model
		sel.Attempts++

		text, err := g.generate(ctx, model, prompt)
		if err == nil {
			if strings.TrimSpace(text) == "" {
				return "", sel, ErrEmptyResponse
			}
			return text, sel, nil
		}
		if !IsModelNotFound(err) {
			return "", sel, fmt.Errorf("generate with %s: %w", model, err)
		}
		g.logger.Warn("model unavailable, trying next candidate", "model", model, "error", err)
		g.selector.Advance(model)
	}
}

// IsModelNotFound reports whether err means the model name is not served.
// API errors are judged by status code; other errors by their text.
func IsModelNotFound(err error) bool {
	if err == nil {
		return false
	}
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code == http.StatusNotFound
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return apiErrPtr.Code == http.StatusNotFound
	}
	return strings.Contains(strings.ToLower(err.Error()), "not found")
}
