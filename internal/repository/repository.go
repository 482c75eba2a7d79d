// Package repository persists job descriptions. The rest of the engine only
// ever talks through the JobRepository interface, so a database-backed
// implementation can replace the in-memory one without touching callers.
package repository

import (
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/rejoyj/Resume-Filter/internal/models"
)

// JobRepository stores job descriptions by ID.
type JobRepository interface {
	Save(job models.JobDescription) (string, error)
	Load(id string) (models.JobDescription, error)
	List() ([]models.JobDescription, error)
}

// MemoryRepository is an in-memory JobRepository, safe for concurrent use.
type MemoryRepository struct {
	mu   sync.RWMutex
	jobs map[string]models.JobDescription
}

// NewMemoryRepository creates an empty in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{jobs: make(map[string]models.JobDescription)}
}

// Save stores the job, assigning an ID when it has none, and returns the ID.
// Saving with an existing ID replaces that record.
func (r *MemoryRepository) Save(job models.JobDescription) (string, error) {
	if job.Title == "" {
		return "", &models.ValidationError{Field: "title", Message: "job title is required"}
	}
	if job.ID == "" {
		job.ID = uuid.New().String()
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.jobs[job.ID] = job
	return job.ID, nil
}

// Load returns the job stored under id.
func (r *MemoryRepository) Load(id string) (models.JobDescription, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	job, ok := r.jobs[id]
	if !ok {
		return models.JobDescription{}, fmt.Errorf("no job description with id %s", id)
	}
	return job, nil
}

// List returns every stored job, ordered by title for stable output.
func (r *MemoryRepository) List() ([]models.JobDescription, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	jobs := make([]models.JobDescription, 0, len(r.jobs))
	for _, job := range r.jobs {
		jobs = append(jobs, job)
	}
	sort.Slice(jobs, func(i, j int) bool { return jobs[i].Title < jobs[j].Title })
	return jobs, nil
}
