package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/slidesmith/slidesmith/internal/domain/entities"
	"github.com/slidesmith/slidesmith/internal/domain/services"
)

// ChatMessage is one deck generation request.
type ChatMessage struct {
	Message     string `json:"message"`
	LLMProvider string `json:"llm_provider"`
	APIKey      string `json:"api_key"`
}

// FileSet lists the artifact paths a request produced.
type FileSet struct {
	PPTX     string `json:"pptx"`
	Markdown string `json:"markdown"`
	JSON     string `json:"json"`
}

// ChatResponse is the successful reply to a deck request.
type ChatResponse struct {
	ID       string         `json:"id"`
	Message  string         `json:"message"`
	Markdown string         `json:"markdown"`
	Deck     *entities.Deck `json:"deck"`
	Files    FileSet        `json:"files"`
}

// errorResponse is the JSON error envelope.
type errorResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

// handleHealth reports service liveness.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleTemplates lists available templates.
func (s *Server) handleTemplates(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"templates": s.svc.Templates.List()})
}

// handleChat runs one deck request through the pipeline.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var msg ChatMessage
	if err := json.NewDecoder(r.Body).Decode(&msg); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: true, Message: "invalid JSON body"})
		return
	}

	resp, err := s.generate(r, msg)
	if err != nil {
		status, message := errorStatus(err)
		s.logger.Warn("chat request failed",
			slog.Int("status", status), slog.String("error", err.Error()))
		writeJSON(w, status, errorResponse{Error: true, Message: message})
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// generate resolves the generator, extracts intent and runs the deck
// pipeline in a fresh per-request work directory.
func (s *Server) generate(r *http.Request, msg ChatMessage) (*ChatResponse, error) {
	ctx := r.Context()

	provider, apiKey := msg.LLMProvider, msg.APIKey
	if provider == "" {
		provider, apiKey = s.svc.DefaultProvider, s.svc.DefaultAPIKey
	}

	gen, err := s.svc.Generators(provider, apiKey)
	if err != nil {
		return nil, err
	}

	input, err := s.svc.Intent.Extract(ctx, msg.Message, gen)
	if err != nil {
		return nil, err
	}

	architect, err := services.NewArchitect(
		s.svc.Parser, s.svc.Validator, s.svc.Assembler,
		s.svc.Templates, s.svc.Sanitizer, s.svc.WorkRoot, s.logger,
	)
	if err != nil {
		return nil, err
	}

	result, err := architect.GenerateDeck(ctx, input, gen)
	if err != nil {
		return nil, err
	}

	return &ChatResponse{
		ID:       uuid.NewString(),
		Message:  fmt.Sprintf("Generated %d slides on %q", len(result.Deck.Slides), input.Topic),
		Markdown: result.Markdown,
		Deck:     result.Deck,
		Files: FileSet{
			PPTX:     result.PPTXFile,
			Markdown: result.MarkdownFile,
			JSON:     result.JSONFile,
		},
	}, nil
}

// errorStatus maps pipeline errors to HTTP status codes. Validation
// failures are the caller's fault; parse failures mean the model output
// was unusable; everything else is internal.
func errorStatus(err error) (int, string) {
	var validationErr *entities.ValidationError
	if errors.As(err, &validationErr) {
		return http.StatusBadRequest, validationErr.Error()
	}

	var parseErr *entities.ParseError
	if errors.As(err, &parseErr) {
		return http.StatusUnprocessableEntity, parseErr.Error()
	}

	return http.StatusInternalServerError, "deck generation failed"
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
