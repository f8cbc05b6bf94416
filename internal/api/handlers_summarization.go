package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/dgallion1/clinsum/internal/metrics"
	"github.com/dgallion1/clinsum/internal/parser"
	"github.com/dgallion1/clinsum/internal/report"
	"github.com/dgallion1/clinsum/internal/summarize"
)

type anonymizeResponse struct {
	Text string `json:"text"`
}

// handleAnonymize accepts a multipart report upload, extracts the sections of
// interest, and returns the redacted text.
func (s *Server) handleAnonymize(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, http.StatusBadRequest, "missing file field")
		return
	}
	defer file.Close()

	if !parser.IsSupportedExtension(header.Filename) {
		jsonError(w, http.StatusUnsupportedMediaType, "unsupported file type")
		return
	}

	p, err := parser.ForFile(header.Filename)
	if err != nil {
		jsonError(w, http.StatusUnsupportedMediaType, err.Error())
		return
	}

	doc, err := p.Parse(file)
	if err != nil {
		s.log.Error("parse report", "filename", header.Filename, "error", err)
		jsonError(w, http.StatusUnprocessableEntity, "could not parse report")
		return
	}

	text, err := s.anonymizer.Anonymize(doc)
	if err != nil {
		if errors.Is(err, report.ErrIdentityNotFound) {
			jsonError(w, http.StatusBadRequest, "report has no patient name line")
			return
		}
		s.log.Error("anonymize report", "error", err)
		jsonError(w, http.StatusInternalServerError, "anonymization failed")
		return
	}

	metrics.ReportsAnonymized.Inc()
	writeJSON(w, http.StatusOK, anonymizeResponse{Text: text})
}

type summarizeRequest struct {
	Report string `json:"report"`
}

// handleSummarize summarizes an already-anonymized report, serving a cached
// summary when the identical report was seen before.
func (s *Server) handleSummarize(w http.ResponseWriter, r *http.Request) {
	var req summarizeRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)).Decode(&req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Report == "" {
		jsonError(w, http.StatusBadRequest, "report is required")
		return
	}

	result, err := s.summarizer.Summarize(r.Context(), req.Report)
	if err != nil {
		if errors.Is(err, summarize.ErrAmbiguousCache) {
			s.log.Error("ambiguous summary cache", "error", err)
			jsonError(w, http.StatusInternalServerError, "duplicate cached reports")
			return
		}
		s.log.Error("summarize report", "error", err)
		jsonError(w, http.StatusBadGateway, "summarization failed")
		return
	}

	metrics.ReportsSummarized.WithLabelValues(strconv.FormatBool(result.Cached)).Inc()
	status := http.StatusCreated
	if result.Cached {
		status = http.StatusOK
	}
	writeJSON(w, status, result)
}
