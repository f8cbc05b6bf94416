package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dgallion1/clinsum/internal/docstore"
	"github.com/dgallion1/clinsum/internal/taxonomy"
	"github.com/go-chi/chi/v5"
)

type createdResponse struct {
	ID string `json:"id"`
}

func (s *Server) handleListDiagnoses(w http.ResponseWriter, r *http.Request) {
	entries, err := s.diagnoses.List(r.Context())
	if err != nil {
		s.log.Error("list diagnoses", "error", err)
		jsonError(w, http.StatusInternalServerError, "could not list diagnoses")
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (s *Server) handleSearchDiagnoses(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("q")
	if term == "" {
		jsonError(w, http.StatusBadRequest, "query parameter q is required")
		return
	}
	entries, err := s.diagnoses.Search(r.Context(), term)
	if err != nil {
		s.log.Error("search diagnoses", "term", term, "error", err)
		jsonError(w, http.StatusInternalServerError, "search failed")
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (s *Server) handleCreateDiagnosis(w http.ResponseWriter, r *http.Request) {
	var node taxonomy.Node
	if err := json.NewDecoder(r.Body).Decode(&node); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	id, err := s.diagnoses.Create(r.Context(), &node)
	if err != nil {
		if node.Text == "" {
			jsonError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.log.Error("create diagnosis", "error", err)
		jsonError(w, http.StatusInternalServerError, "could not create diagnosis")
		return
	}
	writeJSON(w, http.StatusCreated, createdResponse{ID: id})
}

func (s *Server) handleGetDiagnosis(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	node, err := s.diagnoses.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			jsonError(w, http.StatusNotFound, "diagnosis not found")
			return
		}
		s.log.Error("get diagnosis", "id", id, "error", err)
		jsonError(w, http.StatusInternalServerError, "could not load diagnosis")
		return
	}
	writeJSON(w, http.StatusOK, node)
}

func (s *Server) handleUpdateDiagnosis(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var node taxonomy.Node
	if err := json.NewDecoder(r.Body).Decode(&node); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := s.diagnoses.Update(r.Context(), id, &node); err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			jsonError(w, http.StatusNotFound, "diagnosis not found")
			return
		}
		if node.Text == "" {
			jsonError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.log.Error("update diagnosis", "id", id, "error", err)
		jsonError(w, http.StatusInternalServerError, "could not update diagnosis")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteDiagnosis(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.diagnoses.Delete(r.Context(), id); err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			jsonError(w, http.StatusNotFound, "diagnosis not found")
			return
		}
		s.log.Error("delete diagnosis", "id", id, "error", err)
		jsonError(w, http.StatusInternalServerError, "could not delete diagnosis")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
