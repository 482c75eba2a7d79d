package repository

import (
	"errors"
	"testing"

	"github.com/rejoyj/Resume-Filter/internal/models"
)

func TestMemoryRepository_SaveAssignsID(t *testing.T) {
	repo := NewMemoryRepository()

	id, err := repo.Save(models.JobDescription{Title: "Backend Engineer"})
	if err != nil {
		t.Fatalf("Save() failed: %v", err)
	}
	if id == "" {
		t.Fatal("Save() returned an empty ID")
	}

	got, err := repo.Load(id)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if got.Title != "Backend Engineer" || got.ID != id {
		t.Errorf("loaded job = %+v", got)
	}
}

func TestMemoryRepository_SaveReplacesExisting(t *testing.T) {
	repo := NewMemoryRepository()

	id, err := repo.Save(models.JobDescription{Title: "Data Analyst"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := repo.Save(models.JobDescription{ID: id, Title: "Senior Data Analyst"}); err != nil {
		t.Fatal(err)
	}

	got, err := repo.Load(id)
	if err != nil {
		t.Fatal(err)
	}
	if got.Title != "Senior Data Analyst" {
		t.Errorf("title = %q, want updated title", got.Title)
	}

	jobs, err := repo.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(jobs) != 1 {
		t.Errorf("List() = %d jobs, want 1 after replace", len(jobs))
	}
}

func TestMemoryRepository_SaveRequiresTitle(t *testing.T) {
	repo := NewMemoryRepository()

	_, err := repo.Save(models.JobDescription{})
	var vErr *models.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("error = %v, want ValidationError", err)
	}
	if vErr.Field != "title" {
		t.Errorf("field = %q, want title", vErr.Field)
	}
}

func TestMemoryRepository_LoadUnknownID(t *testing.T) {
	repo := NewMemoryRepository()
	if _, err := repo.Load("missing"); err == nil {
		t.Error("Load() of unknown ID should fail")
	}
}

func TestMemoryRepository_ListOrderedByTitle(t *testing.T) {
	repo := NewMemoryRepository()
	for _, title := range []string{"Zoologist", "Analyst", "Manager"} {
		if _, err := repo.Save(models.JobDescription{Title: title}); err != nil {
			t.Fatal(err)
		}
	}

	jobs, err := repo.List()
	if err != nil {
		t.Fatal(err)
	}

	want := []string{"Analyst", "Manager", "Zoologist"}
	for i, job := range jobs {
		if job.Title != want[i] {
			t.Fatalf("List() order = %v", jobs)
		}
	}
}
