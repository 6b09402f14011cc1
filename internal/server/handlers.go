package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/promptrefiner/promptrefiner/apimodels"
	"github.com/promptrefiner/promptrefiner/internal/auth"
	"github.com/promptrefiner/promptrefiner/internal/refiner"
)

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.authenticate(w, r)
	if !ok {
		return
	}

	var req apimodels.AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
		return
	}
	defer r.Body.Close()

	slog.Debug("Received analyze request", "modality", req.Modality, "web_search", req.UseWebSearch)

	result, err := s.refiner.Analyze(r.Context(), sess, req)
	if err != nil {
		s.writeFailure(w, "Prompt analysis failed", err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleRefine(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.authenticate(w, r)
	if !ok {
		return
	}

	var req apimodels.RefineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
		return
	}
	defer r.Body.Close()

	slog.Debug("Received refine request", "questions", len(req.Questions), "variation", req.VariationHint != "")

	result, err := s.refiner.Refine(r.Context(), sess, req)
	if err != nil {
		s.writeFailure(w, "Prompt refinement failed", err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleGenerateSystemPrompt(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.authenticate(w, r)
	if !ok {
		return
	}

	var req apimodels.GenerateSystemPromptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
		return
	}
	defer r.Body.Close()

	result, err := s.refiner.GenerateSystemPrompt(r.Context(), sess, req)
	if err != nil {
		s.writeFailure(w, "System prompt generation failed", err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// authenticate resolves the caller's session or writes the 401 itself.
func (s *Server) authenticate(w http.ResponseWriter, r *http.Request) (auth.Session, bool) {
	sess, err := s.verifier.FromRequest(r)
	if err != nil {
		if errors.Is(err, auth.ErrUnauthenticated) {
			writeError(w, http.StatusUnauthorized, "You must be signed in.")
		} else {
			slog.Error("session verification failed", "error", err)
			writeError(w, http.StatusInternalServerError, "Unable to verify your session.")
		}
		return auth.Session{}, false
	}
	return sess, true
}

// writeFailure maps an orchestration error to its external status. Typed
// status errors carry their own code; anything else is an unexpected 500.
func (s *Server) writeFailure(w http.ResponseWriter, prefix string, err error) {
	var statusErr *refiner.StatusError
	if errors.As(err, &statusErr) {
		if statusErr.Code >= http.StatusInternalServerError {
			slog.Error(prefix, "error", err, "status", statusErr.Code)
		}
		writeError(w, statusErr.Code, statusErr.Message)
		return
	}

	slog.Error(prefix, "error", err)
	writeError(w, http.StatusInternalServerError, fmt.Sprintf("%s: %v", prefix, err))
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("encoding response failed", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, apimodels.ErrorResponse{Error: message})
}
