package cms

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"crestline.dev/internal/ids"
)

// ProjectService manages developments shown on the marketing site.
type ProjectService struct {
	store ProjectStore
}

func NewProjectService(store ProjectStore) (*ProjectService, error) {
	if store == nil {
		return nil, errors.New("project store is required")
	}
	return &ProjectService{store: store}, nil
}

type CreateProjectInput struct {
	Title     string `json:"title" validate:"required,min=2,max=200"`
	Summary   string `json:"summary" validate:"required"`
	Location  string `json:"location" validate:"required"`
	Status    string `json:"status" validate:"required,oneof=upcoming ongoing completed"`
	Featured  bool   `json:"featured"`
	Published bool   `json:"published"`
}

func (s *ProjectService) Create(ctx context.Context, in CreateProjectInput) (*Project, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	project := &Project{
		ID:        ids.New(),
		Title:     strings.TrimSpace(in.Title),
		Slug:      Slugify(in.Title),
		Summary:   strings.TrimSpace(in.Summary),
		Location:  strings.TrimSpace(in.Location),
		Status:    in.Status,
		Featured:  in.Featured,
		Published: in.Published,
	}
	if err := s.store.Create(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

func (s *ProjectService) Get(ctx context.Context, id string) (*Project, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("%w: project id is required", ErrInvalidInput)
	}
	return s.store.Find(ctx, id)
}

func (s *ProjectService) List(ctx context.Context, f ProjectFilter) ([]*Project, error) {
	if f.Status != nil {
		status := strings.TrimSpace(strings.ToLower(*f.Status))
		switch status {
		case ProjectUpcoming, ProjectOngoing, ProjectCompleted:
			f.Status = &status
		default:
			return nil, fmt.Errorf("%w: unsupported status %s", ErrInvalidInput, status)
		}
	}
	return s.store.List(ctx, f)
}

type UpdateProjectInput struct {
	Title     *string `json:"title" validate:"omitempty,min=2,max=200"`
	Summary   *string `json:"summary"`
	Location  *string `json:"location"`
	Status    *string `json:"status" validate:"omitempty,oneof=upcoming ongoing completed"`
	Featured  *bool   `json:"featured"`
	Published *bool   `json:"published"`
}

func (s *ProjectService) Update(ctx context.Context, id string, in UpdateProjectInput) (*Project, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	project, err := s.store.Find(ctx, strings.TrimSpace(id))
	if err != nil {
		return nil, err
	}
	if in.Title != nil {
		project.Title = strings.TrimSpace(*in.Title)
		project.Slug = Slugify(*in.Title)
	}
	if in.Summary != nil {
		project.Summary = strings.TrimSpace(*in.Summary)
	}
	if in.Location != nil {
		project.Location = strings.TrimSpace(*in.Location)
	}
	if in.Status != nil {
		project.Status = *in.Status
	}
	if in.Featured != nil {
		project.Featured = *in.Featured
	}
	if in.Published != nil {
		project.Published = *in.Published
	}
	if err := s.store.Update(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

func (s *ProjectService) Delete(ctx context.Context, id string) (*Project, error) {
	project, err := s.store.Find(ctx, strings.TrimSpace(id))
	if err != nil {
		return nil, err
	}
	if err := s.store.Delete(ctx, project.ID); err != nil {
		return nil, err
	}
	return project, nil
}
