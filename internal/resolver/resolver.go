// Package resolver answers a chat message by trying the FAQ table, then
// department routing, then the generative model, and tags the answer with
// the tier that produced it.
package resolver

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/MikeSquared-Agency/frontdesk/internal/catalog"
	"github.com/MikeSquared-Agency/frontdesk/internal/conversation"
	"github.com/MikeSquared-Agency/frontdesk/internal/gemini"
	"github.com/MikeSquared-Agency/frontdesk/internal/metrics"
)

// Source names the tier an answer came from.
type Source string

const (
	SourceFAQ        Source = "faq"
	SourceDepartment Source = "department"
	SourceGemini     Source = "gemini"
)

// FallbackAnswer is returned when the model responds without a usable answer.
const FallbackAnswer = "I couldn't get a proper response."

// ErrEmptyMessage is returned for a message that is blank after trimming.
// It is a client error and no lookup is attempted.
var ErrEmptyMessage = errors.New("empty message")

// Result is the answer to a single message.
type Result struct {
	Answer string `json:"answer"`
	Source Source `json:"source"`
}

// Generator produces text from a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type Resolver struct {
	kb     *catalog.KnowledgeBase
	depts  *catalog.Departments
	llm    Generator
	logger *slog.Logger
}

// New wires the three tiers. The tables are shared read-only and may be
// empty; llm must not be nil.
func New(kb *catalog.KnowledgeBase, depts *catalog.Departments, llm Generator, logger *slog.Logger) *Resolver {
	return &Resolver{kb: kb, depts: depts, llm: llm, logger: logger}
}

// Resolve answers message using history as context for the model tier.
// The only error is ErrEmptyMessage; past that check a Result is always
// returned. A tier whose answer is empty is treated as a miss.
func (r *Resolver) Resolve(ctx context.Context, message string, history []conversation.Turn) (Result, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return Result{}, ErrEmptyMessage
	}

	if answer, ok := r.kb.Find(message); ok && answer != "" {
		return Result{Answer: answer, Source: SourceFAQ}, nil
	}

	if answer, ok := r.depts.Find(message); ok && answer != "" {
		return Result{Answer: answer, Source: SourceDepartment}, nil
	}

	return Result{Answer: r.AskAI(ctx, message, history), Source: SourceGemini}, nil
}

// AskAI sends the last turns of history plus prompt to the model. It never
// fails: a missing answer becomes FallbackAnswer and any other failure is
// described in the returned text.
func (r *Resolver) AskAI(ctx context.Context, prompt string, history []conversation.Turn) string {
	fullPrompt := conversation.FormatPrompt(prompt, history)

	text, err := r.llm.Generate(ctx, fullPrompt)
	switch {
	case err == nil:
		return text
	case errors.Is(err, gemini.ErrNoCandidates):
		r.logger.Warn("model returned no candidates")
		metrics.UpstreamError()
		return FallbackAnswer
	default:
		r.logger.Error("model call failed", "error", err)
		metrics.UpstreamError()
		return "Gemini Error: " + err.Error()
	}
}
