// Package parser talks to the external resume parsing service. Document
// understanding lives behind that service; this client only moves bytes out
// and structured candidate records back.
package parser

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rejoyj/Resume-Filter/internal/models"
)

// DefaultTimeout bounds a single parse call.
const DefaultTimeout = 60 * time.Second

// Client is an HTTP client for the parse service.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *zap.Logger
}

// NewClient creates a parse service client. A nil logger disables logging.
func NewClient(baseURL string, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: DefaultTimeout},
		log:        log,
	}
}

// Upload is one document handed to the parse service.
type Upload struct {
	Filename string
	Content  io.Reader
}

// parseResponse is the service's envelope for a single document.
type parseResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    struct {
		Name       string   `json:"name"`
		Email      string   `json:"email"`
		Phone      string   `json:"phone"`
		Skills     []string `json:"skills"`
		Experience *float64 `json:"experience"`
	} `json:"data"`
}

// ParseDocument sends one document to the service and maps the response to a
// Candidate. Optional fields the parser could not extract stay absent; a
// missing experience figure is kept as nil rather than coerced to zero.
func (c *Client) ParseDocument(ctx context.Context, filename string, r io.Reader) (models.Candidate, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return models.Candidate{}, fmt.Errorf("failed to build upload form: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return models.Candidate{}, fmt.Errorf("failed to read %s: %w", filename, err)
	}
	if err := mw.Close(); err != nil {
		return models.Candidate{}, fmt.Errorf("failed to finalize upload form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/parse", &body)
	if err != nil {
		return models.Candidate{}, fmt.Errorf("failed to build parse request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return models.Candidate{}, &models.ParseError{Filename: filename, Reason: err.Error()}
	}
	defer resp.Body.Close()

	var parsed parseResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return models.Candidate{}, &models.ParseError{Filename: filename, Reason: "malformed response from parse service"}
	}

	if resp.StatusCode != http.StatusOK || !parsed.Success {
		reason := parsed.Message
		if reason == "" {
			reason = fmt.Sprintf("parse service returned status %d", resp.StatusCode)
		}
		return models.Candidate{}, &models.ParseError{Filename: filename, Reason: reason}
	}

	candidate := models.Candidate{
		ID:              uuid.New().String(),
		Name:            parsed.Data.Name,
		Email:           parsed.Data.Email,
		Phone:           parsed.Data.Phone,
		Skills:          parsed.Data.Skills,
		YearsExperience: parsed.Data.Experience,
		SourceDocument:  filename,
	}

	c.log.Debug("parsed document",
		zap.String("filename", filename),
		zap.String("candidate", candidate.Name))

	return candidate, nil
}

// ParseBatch parses each upload in turn, collecting candidates from the
// successes and a per-file outcome for everything. One bad file never stops
// the rest of the batch.
func (c *Client) ParseBatch(ctx context.Context, uploads []Upload) ([]models.Candidate, []models.FileOutcome) {
	candidates := make([]models.Candidate, 0, len(uploads))
	outcomes := make([]models.FileOutcome, 0, len(uploads))

	for _, up := range uploads {
		candidate, err := c.ParseDocument(ctx, up.Filename, up.Content)
		if err != nil {
			c.log.Warn("document failed to parse",
				zap.String("filename", up.Filename),
				zap.Error(err))
			outcomes = append(outcomes, models.FileOutcome{
				Filename: up.Filename,
				Status:   "error",
				Message:  err.Error(),
			})
			continue
		}

		candidates = append(candidates, candidate)
		outcomes = append(outcomes, models.FileOutcome{
			Filename: up.Filename,
			Status:   "success",
		})
	}

	return candidates, outcomes
}
