package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/debatecast/debatecast/pkg/debate"
	"github.com/debatecast/debatecast/pkg/llm"
	"github.com/debatecast/debatecast/pkg/persona"
)

// envelope is the uniform response shape: success carries data, errors
// carry a message and nothing else.
type envelope struct {
	Status  string `json:"status"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, env envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(env); err != nil {
		log.Printf("[Server] failed to encode response: %v", err)
	}
}

func writeSuccess(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, envelope{Status: "success", Data: data})
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, envelope{Status: "error", Message: msg})
}

// handleCreateDebate validates request bounds, runs the debate, and maps
// the outcome onto the response envelope.
func (s *Server) handleCreateDebate(w http.ResponseWriter, r *http.Request) {
	var req debate.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}

	if req.Topic == "" {
		writeError(w, http.StatusBadRequest, "topic is required")
		return
	}
	if len(req.Topic) > s.cfg.MaxTopicLength {
		writeError(w, http.StatusBadRequest, "topic too long")
		return
	}
	if req.Rounds < 1 || req.Rounds > s.cfg.MaxRounds {
		writeError(w, http.StatusBadRequest, "rounds must be between 1 and 5")
		return
	}
	if len(req.ParticipantIDs) < 2 || len(req.ParticipantIDs) > s.cfg.MaxParticipants {
		writeError(w, http.StatusBadRequest, "participants must number between 2 and 5")
		return
	}

	result, err := s.engine.Run(r.Context(), req)
	if err != nil {
		var vErr *debate.ValidationError
		if errors.As(err, &vErr) {
			writeError(w, http.StatusBadRequest, vErr.Error())
			return
		}

		var gErr *llm.GenerationError
		if errors.As(err, &gErr) {
			// Surface which model failed, never the backend's raw error,
			// which can echo credentials or endpoints.
			log.Printf("[Server] debate failed: %v", err)
			writeError(w, http.StatusBadGateway, "text generation failed for model "+gErr.ModelID)
			return
		}

		log.Printf("[Server] debate failed: %v", err)
		writeError(w, http.StatusInternalServerError, "debate failed")
		return
	}

	writeSuccess(w, result)
}

// handleListPersonas returns all persona definitions.
func (s *Server) handleListPersonas(w http.ResponseWriter, r *http.Request) {
	ids, err := s.personas.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list personas")
		return
	}

	out := make([]persona.Persona, 0, len(ids))
	for _, id := range ids {
		p, err := s.personas.Get(r.Context(), id)
		if err != nil {
			continue
		}
		out = append(out, p)
	}
	writeSuccess(w, out)
}

// handleAddPersona registers a new persona.
func (s *Server) handleAddPersona(w http.ResponseWriter, r *http.Request) {
	var p persona.Persona
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}

	if err := s.personas.Add(r.Context(), p); err != nil {
		var existsErr *persona.ErrAlreadyExists
		if errors.As(err, &existsErr) {
			writeError(w, http.StatusConflict, existsErr.Error())
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, envelope{Status: "success", Data: p})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, map[string]string{"status": "ok"})
}
