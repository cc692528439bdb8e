// internal/server/handlers.go
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	xmlerrors "xmlgen-service/internal/common/errors"
	"xmlgen-service/internal/generator"
)

// GenerateResponse is returned by both generation endpoints.
type GenerateResponse struct {
	DownloadID     string   `json:"downloadId"`
	DownloadURL    string   `json:"downloadUrl"`
	MessageType    string   `json:"messageType"`
	Classification string   `json:"classification"`
	Files          []string `json:"files"`
	Failures       []string `json:"failures,omitempty"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// handleGenerateMultipart accepts a browser-style upload: the template as
// a multipart file plus the three counts as form fields.
func (s *Server) handleGenerateMultipart(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Server.MaxUploadBytes)

	file, _, err := r.FormFile("template")
	if err != nil {
		s.writeError(w, http.StatusBadRequest, xmlerrors.NewInvalidParameterError("template", "missing multipart file field"))
		return
	}
	defer file.Close()

	template, err := io.ReadAll(file)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("failed to read template upload: %w", err))
		return
	}

	job := generator.Job{Template: template}
	fields := []struct {
		name string
		dst  *int
	}{
		{"numTransactions", &job.NumTransactions},
		{"numBatches", &job.NumBatches},
		{"numCopies", &job.NumCopies},
	}
	for _, f := range fields {
		v, err := strconv.Atoi(r.FormValue(f.name))
		if err != nil {
			s.writeError(w, http.StatusBadRequest,
				xmlerrors.NewInvalidParameterError(f.name, fmt.Sprintf("not an integer: %q", r.FormValue(f.name))))
			return
		}
		*f.dst = v
	}

	s.runJob(w, r, job)
}

// handleGenerateJSON accepts the same job as a JSON document, validated
// against a JSON schema before any work starts.
func (s *Server) handleGenerateJSON(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Server.MaxUploadBytes)

	body, err := io.ReadAll(r.Body)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("failed to read request body: %w", err))
		return
	}

	if err := validateGenerateRequest(body); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	var req generateRequest
	if err := json.Unmarshal(body, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("malformed JSON body: %w", err))
		return
	}

	s.runJob(w, r, generator.Job{
		Template:        []byte(req.Template),
		NumTransactions: req.NumTransactions,
		NumBatches:      req.NumBatches,
		NumCopies:       req.NumCopies,
	})
}

// runJob executes the job, stores the archive and answers with the
// download handle. Shared by both generation endpoints.
func (s *Server) runJob(w http.ResponseWriter, r *http.Request, job generator.Job) {
	result, err := s.service.Generate(r.Context(), job)
	if err != nil {
		s.writeError(w, statusForError(err), err)
		return
	}
	if len(result.Files) == 0 {
		s.writeError(w, http.StatusInternalServerError,
			fmt.Errorf("all %d copies failed", job.NumCopies))
		return
	}

	archiveName := generator.ArchiveName(result.TypeCode, result.Classification, time.Now())
	id, err := s.archives.Put(r.Context(), archiveName, result.Files)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}

	resp := GenerateResponse{
		DownloadID:     id,
		DownloadURL:    "/download/" + id,
		MessageType:    result.TypeCode,
		Classification: result.Classification,
	}
	for _, f := range result.Files {
		resp.Files = append(resp.Files, f.Name)
	}
	for _, f := range result.Failures {
		resp.Failures = append(resp.Failures, f.Err.Error())
	}

	s.writeJSON(w, http.StatusOK, resp)
}

// handleDownload streams a stored archive exactly once.
func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	name, data, err := s.archives.Take(r.Context(), id)
	if err != nil {
		if errors.Is(err, xmlerrors.ErrArchiveNotFound) {
			s.writeError(w, http.StatusNotFound, err)
			return
		}
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	code := http.StatusOK
	if err := s.redis.Ping(r.Context()); err != nil {
		status = "degraded"
		code = http.StatusServiceUnavailable
	}
	s.writeJSON(w, code, map[string]string{"status": status})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.log.Error("failed to encode response", map[string]interface{}{"error": err.Error()})
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	resp := errorResponse{Error: err.Error()}
	var ge *xmlerrors.GenerationError
	if errors.As(err, &ge) {
		resp.Error = ge.Message
		resp.Code = string(ge.Code)
		resp.Details = ge.Details
	}
	if status >= 500 {
		s.log.Error("request failed", map[string]interface{}{"status": status, "error": err.Error()})
	}
	s.writeJSON(w, status, resp)
}

// statusForError maps generation error codes to HTTP statuses.
func statusForError(err error) int {
	var ge *xmlerrors.GenerationError
	if !errors.As(err, &ge) {
		return http.StatusInternalServerError
	}
	switch ge.Code {
	case xmlerrors.ErrCodeInvalidParameter, xmlerrors.ErrCodeTemplateParseFailed:
		return http.StatusBadRequest
	case xmlerrors.ErrCodeMissingBatchTemplate:
		return http.StatusUnprocessableEntity
	case xmlerrors.ErrCodeArchiveNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
