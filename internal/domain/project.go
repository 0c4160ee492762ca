package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Project-specific validation errors
var (
	// ErrProjectIDEmpty is returned when a project ID is empty or nil.
	ErrProjectIDEmpty = errors.New("project ID cannot be empty")

	// ErrProjectNameEmpty is returned when a project's name is empty.
	ErrProjectNameEmpty = errors.New("project name cannot be empty")
)

// Project groups related tasks together.
type Project struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewProject creates a new Project with the given name and description.
// It generates a new UUID for the project ID and sets the creation/update timestamps.
// Returns an error if validation fails.
func NewProject(name, description string) (*Project, error) {
	project := &Project{
		ID:          uuid.New(),
		Name:        name,
		Description: description,
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}

	if err := project.Validate(); err != nil {
		return nil, err
	}

	return project, nil
}

// Validate checks if the Project has valid data.
// Returns an error if any field fails validation.
func (p *Project) Validate() error {
	if p.ID == uuid.Nil {
		return ErrProjectIDEmpty
	}

	if p.Name == "" {
		return ErrProjectNameEmpty
	}

	return nil
}

// Update applies a new name and description and refreshes the UpdatedAt
// timestamp. Returns an error if the resulting project is invalid.
func (p *Project) Update(name, description string) error {
	origName, origDescription := p.Name, p.Description
	p.Name = name
	p.Description = description

	if err := p.Validate(); err != nil {
		p.Name, p.Description = origName, origDescription
		return err
	}

	p.UpdatedAt = time.Now().UTC()
	return nil
}
