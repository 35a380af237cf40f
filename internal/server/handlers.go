package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/claude/gymlog/internal/document"
	"github.com/claude/gymlog/internal/models"
)

// maxParseBody caps the markdown accepted by POST /api/v1/parse.
const maxParseBody = 10 << 20

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, userInfoFromContext(r))
}

func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	body := http.MaxBytesReader(w, r.Body, maxParseBody)
	result, err := s.markdown.Ingest(r.Context(), body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, map[string]string{"error": "request body too large"})
			return
		}
		s.log.Error("parse error", "error", err)
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if len(result.UnmappedExercises) > 0 {
		s.log.Info("unmapped exercises", "request_id", requestIDFromContext(r), "names", result.UnmappedExercises)
	}
	writeDocument(w, result.Document)
}

func (s *Server) handleDocument(w http.ResponseWriter, r *http.Request) {
	doc, err := s.source.Document(r.Context())
	if err != nil {
		s.log.Error("document error", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeDocument(w, doc)
}

func (s *Server) handleTaxonomy(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"muscle_groups":    s.tax.Groups(),
		"mapped_exercises": s.tax.Size(),
	})
}

func (s *Server) handleLookup(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name parameter required"})
		return
	}
	group, ok := s.tax.Lookup(name)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no muscle group for " + name})
		return
	}
	writeJSON(w, http.StatusOK, models.Exercise{Name: name, MuscleGroup: &group})
}

func (s *Server) handleProgress(w http.ResponseWriter, r *http.Request) {
	exercise := r.URL.Query().Get("exercise")
	if exercise == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "exercise parameter required"})
		return
	}
	doc, err := s.source.Document(r.Context())
	if err != nil {
		s.log.Error("document error", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, document.Progress(doc, exercise))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeDocument uses the same encoding as the JSON output file.
func writeDocument(w http.ResponseWriter, doc *models.Document) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	document.WriteJSON(w, doc)
}
