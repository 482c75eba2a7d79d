package parser

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rejoyj/Resume-Filter/internal/models"
)

func TestParseDocument_MapsPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/parse" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("server could not parse multipart body: %v", err)
		}
		if _, _, err := r.FormFile("file"); err != nil {
			t.Errorf("missing file part: %v", err)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"success": true,
			"data": {
				"name": "Akshaya R",
				"email": "rathinamakshaya4@gmail.com",
				"phone": "9361205707",
				"skills": ["Python", "SQL"],
				"experience": 3.5
			}
		}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, nil)
	got, err := client.ParseDocument(context.Background(), "akshaya.pdf", strings.NewReader("pdf bytes"))
	if err != nil {
		t.Fatalf("ParseDocument() failed: %v", err)
	}

	if got.Name != "Akshaya R" || got.Email != "rathinamakshaya4@gmail.com" || got.Phone != "9361205707" {
		t.Errorf("candidate = %+v", got)
	}
	if len(got.Skills) != 2 {
		t.Errorf("skills = %v", got.Skills)
	}
	if got.YearsExperience == nil || *got.YearsExperience != 3.5 {
		t.Errorf("years experience = %v, want 3.5", got.YearsExperience)
	}
	if got.SourceDocument != "akshaya.pdf" {
		t.Errorf("source document = %q", got.SourceDocument)
	}
	if got.ID == "" {
		t.Error("candidate was not assigned an ID")
	}
}

// TestParseDocument_OptionalFieldsAbsent checks that fields the service did
// not extract stay absent instead of becoming zero values that look real.
func TestParseDocument_OptionalFieldsAbsent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success": true, "data": {"name": "Rejoy"}}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, nil)
	got, err := client.ParseDocument(context.Background(), "rejoy.pdf", strings.NewReader("x"))
	if err != nil {
		t.Fatalf("ParseDocument() failed: %v", err)
	}

	if got.Email != "" || got.Phone != "" {
		t.Errorf("expected empty contact fields, got %+v", got)
	}
	if got.YearsExperience != nil {
		t.Errorf("years experience = %v, want nil", got.YearsExperience)
	}
	if got.Years() != 0 {
		t.Errorf("Years() = %v, want 0 for absent experience", got.Years())
	}
}

func TestParseDocument_ServiceFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"success": false, "message": "could not extract text"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, nil)
	_, err := client.ParseDocument(context.Background(), "scan.pdf", strings.NewReader("x"))

	var pErr *models.ParseError
	if !errors.As(err, &pErr) {
		t.Fatalf("error = %v, want ParseError", err)
	}
	if pErr.Filename != "scan.pdf" {
		t.Errorf("filename = %q, want scan.pdf", pErr.Filename)
	}
	if !strings.Contains(pErr.Reason, "could not extract text") {
		t.Errorf("reason = %q", pErr.Reason)
	}
}

// TestParseBatch_ContinuesPastFailures feeds one good and one bad file and
// expects a candidate plus two outcomes, in upload order.
func TestParseBatch_ContinuesPastFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("server could not parse multipart body: %v", err)
		}
		_, header, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("missing file part: %v", err)
		}

		w.Header().Set("Content-Type", "application/json")
		if header.Filename == "bad.pdf" {
			w.Write([]byte(`{"success": false, "message": "unreadable"}`))
			return
		}
		w.Write([]byte(`{"success": true, "data": {"name": "Good One"}}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, nil)
	candidates, outcomes := client.ParseBatch(context.Background(), []Upload{
		{Filename: "good.pdf", Content: strings.NewReader("a")},
		{Filename: "bad.pdf", Content: strings.NewReader("b")},
	})

	if len(candidates) != 1 || candidates[0].Name != "Good One" {
		t.Errorf("candidates = %+v, want just Good One", candidates)
	}
	if len(outcomes) != 2 {
		t.Fatalf("outcomes = %d, want 2", len(outcomes))
	}
	if outcomes[0].Filename != "good.pdf" || outcomes[0].Status != "success" {
		t.Errorf("first outcome = %+v", outcomes[0])
	}
	if outcomes[1].Filename != "bad.pdf" || outcomes[1].Status != "error" || outcomes[1].Message == "" {
		t.Errorf("second outcome = %+v", outcomes[1])
	}
}
