package api

import (
	"errors"
	"net/http"

	"reel_planner/internal/domain"
)

type GenerateIdeasRequest struct {
	Niche string `json:"niche" validate:"required"`
}

type SaveIdeaRequest struct {
	domain.ReelIdea
	Niche string `json:"niche" validate:"required"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type statusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func (s *Server) root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, messageResponse{Message: s.cfg.AppName + " is running"})
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) generateIdeas(w http.ResponseWriter, r *http.Request) {
	var req GenerateIdeasRequest
	if status, err := decodeJSON(w, r, &req); err != nil {
		writeError(w, status, err.Error())
		return
	}

	ideas, err := s.ideas.Generate(r.Context(), req.Niche)
	if err != nil {
		s.logger.Error("generate ideas", "niche", req.Niche, "error", err)
		writeError(w, statusFor(err), err.Error())
		return
	}
	if ideas == nil {
		ideas = []domain.ReelIdea{}
	}

	writeJSON(w, http.StatusOK, ideas)
}

func (s *Server) saveIdea(w http.ResponseWriter, r *http.Request) {
	var req SaveIdeaRequest
	if status, err := decodeJSON(w, r, &req); err != nil {
		writeError(w, status, err.Error())
		return
	}

	if _, err := s.ideas.Save(r.Context(), req.Niche, req.ReelIdea); err != nil {
		status := statusFor(err)
		if status == http.StatusUnprocessableEntity {
			writeError(w, status, err.Error())
			return
		}
		s.logger.Error("save idea", "niche", req.Niche, "error", err)
		writeError(w, status, "Failed to save idea: "+err.Error())
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "Idea saved successfully"})
}

func (s *Server) getSavedIdeas(w http.ResponseWriter, r *http.Request) {
	ideas, err := s.ideas.List(r.Context())
	if err != nil {
		s.logger.Error("list saved ideas", "error", err)
		writeError(w, statusFor(err), "Failed to fetch saved ideas: "+err.Error())
		return
	}
	if ideas == nil {
		ideas = []domain.SavedIdea{}
	}

	writeJSON(w, http.StatusOK, ideas)
}

func (s *Server) deleteIdea(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("idea_id")

	if err := s.ideas.Delete(r.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Idea not found or already deleted")
			return
		}
		s.logger.Error("delete idea", "id", id, "error", err)
		writeError(w, statusFor(err), "Failed to delete idea: "+err.Error())
		return
	}

	writeJSON(w, http.StatusOK, statusResponse{Status: "success", Message: "Idea deleted successfully"})
}
