// Package api exposes the screening engine over HTTP. Responses use the
// {success, message} envelope the screening front-end expects.
package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/rejoyj/Resume-Filter/internal/export"
	"github.com/rejoyj/Resume-Filter/internal/models"
	"github.com/rejoyj/Resume-Filter/internal/notify"
	"github.com/rejoyj/Resume-Filter/internal/parser"
	"github.com/rejoyj/Resume-Filter/internal/screening"
)

// maxUploadBytes caps one candidate upload request.
const maxUploadBytes = 32 << 20

// Server handles HTTP requests.
type Server struct {
	screener   *screening.Screener
	parse      *parser.Client
	dispatcher *notify.Dispatcher
	templates  *notify.Registry
	pageSize   int
	log        *zap.Logger
}

// NewServer creates a new API server. pageSize 0 falls back to the ranking
// default; a nil logger disables logging.
func NewServer(screener *screening.Screener, parse *parser.Client, dispatcher *notify.Dispatcher, templates *notify.Registry, pageSize int, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{
		screener:   screener,
		parse:      parse,
		dispatcher: dispatcher,
		templates:  templates,
		pageSize:   pageSize,
		log:        log,
	}
}

// Router returns the HTTP router.
func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /job", s.handleJob)
	mux.HandleFunc("POST /candidates", s.handleCandidates)
	mux.HandleFunc("GET /results", s.handleResults)
	mux.HandleFunc("GET /export", s.handleExport)
	mux.HandleFunc("GET /templates", s.handleTemplates)
	mux.HandleFunc("POST /mail", s.handleMail)
	mux.HandleFunc("POST /broadcast", s.handleBroadcast)
	mux.HandleFunc("GET /health", s.handleHealth)

	return s.loggingMiddleware(mux)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// handleJob stores the job description candidates will be screened against.
func (s *Server) handleJob(w http.ResponseWriter, r *http.Request) {
	var job models.JobDescription
	if err := json.NewDecoder(r.Body).Decode(&job); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid job description payload")
		return
	}

	id, err := s.screener.SetJob(job)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "job description saved",
		"job_id":  id,
	})
}

// handleCandidates accepts resume uploads, forwards them to the parse
// service, and rescreens the session. Per-file outcomes are always reported;
// one bad file never fails the request.
func (s *Server) handleCandidates(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		s.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to parse form: %v", err))
		return
	}

	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		s.respondError(w, http.StatusBadRequest, "no files uploaded")
		return
	}

	uploads := make([]parser.Upload, 0, len(files))
	opened := make([]io.Closer, 0, len(files))
	defer func() {
		for _, f := range opened {
			f.Close()
		}
	}()
	for _, header := range files {
		file, err := header.Open()
		if err != nil {
			s.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to open %s: %v", header.Filename, err))
			return
		}
		opened = append(opened, file)
		uploads = append(uploads, parser.Upload{Filename: header.Filename, Content: file})
	}

	candidates, outcomes := s.parse.ParseBatch(r.Context(), uploads)
	s.screener.AddCandidates(candidates)

	if err := s.screener.Screen(r.Context()); err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": fmt.Sprintf("processed %d of %d files", len(candidates), len(files)),
		"results": outcomes,
	})
}

// handleResults serves one page of the ranked view. A q parameter applies a
// search over the full set; an empty q clears it.
func (s *Server) handleResults(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	if query.Has("q") {
		q := query.Get("q")
		if q == "" {
			s.screener.ClearSearch()
		} else if err := s.screener.Search(q); err != nil {
			s.respondError(w, http.StatusNotFound, err.Error())
			return
		}
	}

	page := 1
	if v := query.Get("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			s.respondError(w, http.StatusBadRequest, "page must be a number")
			return
		}
		page = n
	}

	results, err := s.screener.Results(page, s.pageSize)
	if err != nil {
		s.respondError(w, http.StatusNotFound, err.Error())
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"results": results,
	})
}

// handleExport streams the current ranked view as a downloadable artifact.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	format := export.Format(r.URL.Query().Get("format"))
	if format == "" {
		format = export.FormatCSV
	}

	// Render to a buffer first so a failure can still produce a JSON error
	// instead of a half-written download.
	var buf bytes.Buffer
	var filename, contentType string

	switch format {
	case export.FormatCSV:
		filename, contentType = "candidates.csv", "text/csv"
		if err := s.screener.ExportCSV(&buf); err != nil {
			s.respondError(w, http.StatusNotFound, err.Error())
			return
		}
	case export.FormatExcel:
		filename, contentType = "candidates.xlsx", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
		if err := s.screener.ExportExcel("", &buf); err != nil {
			s.respondError(w, http.StatusNotFound, err.Error())
			return
		}
	default:
		s.respondError(w, http.StatusBadRequest, fmt.Sprintf("unsupported export format: %q", format))
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		s.log.Warn("export download aborted", zap.Error(err))
	}
}

func (s *Server) handleTemplates(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"templates": s.templates.List(),
	})
}

// mailRequest selects a template and the candidate emails to send it to.
type mailRequest struct {
	TemplateID string   `json:"template_id"`
	Recipients []string `json:"recipients"`
}

// handleMail sends a template to selected candidates, merging each
// candidate's own details into the body. Outcomes are per-recipient; the
// request succeeds as long as it was well-formed.
func (s *Server) handleMail(w http.ResponseWriter, r *http.Request) {
	var req mailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid mail payload")
		return
	}
	if len(req.Recipients) == 0 {
		s.respondError(w, http.StatusBadRequest, "please select at least one recipient")
		return
	}

	template, err := s.templates.Get(req.TemplateID)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	byEmail := make(map[string]models.Candidate)
	for _, c := range s.screener.Candidates() {
		if c.Email != "" {
			byEmail[notify.CanonicalAddress(c.Email)] = c
		}
	}

	var sent []string
	var failed []notify.Failure
	for _, address := range req.Recipients {
		candidate, ok := byEmail[notify.CanonicalAddress(address)]
		if !ok {
			failed = append(failed, notify.Failure{Address: address, Reason: "not a known candidate"})
			continue
		}

		job := notify.NewJob(template.ID, template.Subject, notify.MergeBody(template.Body, candidate))
		if err := job.AddRecipient(address); err != nil {
			failed = append(failed, notify.Failure{Address: address, Reason: err.Error()})
			continue
		}

		result, err := s.dispatcher.Send(r.Context(), job)
		if err != nil {
			failed = append(failed, notify.Failure{Address: address, Reason: err.Error()})
			continue
		}
		sent = append(sent, result.Succeeded...)
		failed = append(failed, result.Failed...)
	}

	s.respondJSON(w, http.StatusOK, map[string]any{
		"success": len(failed) == 0,
		"message": fmt.Sprintf("sent %d of %d messages", len(sent), len(req.Recipients)),
		"sent":    sent,
		"failed":  failed,
	})
}

// handleBroadcast sends one free-form message to selected roster entries.
func (s *Server) handleBroadcast(w http.ResponseWriter, r *http.Request) {
	var req notify.BroadcastRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid broadcast payload")
		return
	}

	roster, err := s.screener.Roster()
	if err != nil {
		s.respondError(w, http.StatusNotFound, err.Error())
		return
	}

	job, err := notify.BuildBroadcastJob(roster, req)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := s.dispatcher.Send(r.Context(), job)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]any{
		"success": result.State == notify.StateCompleted,
		"message": fmt.Sprintf("delivered to %d of %d recipients", len(result.Succeeded), len(job.Recipients())),
		"result":  result,
	})
}

// respondJSON sends a JSON response.
func (s *Server) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Warn("failed to encode JSON response", zap.Error(err))
	}
}

// respondError sends an error response in the shared envelope.
func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]any{
		"success": false,
		"message": message,
	})
}

// loggingMiddleware logs HTTP requests.
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("remote", r.RemoteAddr),
			zap.Duration("took", time.Since(start)),
		)
	})
}
