package cms

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"crestline.dev/internal/ids"
)

// CareerService manages careers-page listings.
type CareerService struct {
	store CareerStore
}

func NewCareerService(store CareerStore) (*CareerService, error) {
	if store == nil {
		return nil, errors.New("career store is required")
	}
	return &CareerService{store: store}, nil
}

type CreateJobInput struct {
	Title       string `json:"title" validate:"required,min=2,max=200"`
	Department  string `json:"department" validate:"required"`
	Location    string `json:"location" validate:"required"`
	Description string `json:"description" validate:"required"`
	Open        bool   `json:"open"`
}

func (s *CareerService) Create(ctx context.Context, in CreateJobInput) (*JobOpening, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	job := &JobOpening{
		ID:          ids.New(),
		Title:       strings.TrimSpace(in.Title),
		Department:  strings.TrimSpace(in.Department),
		Location:    strings.TrimSpace(in.Location),
		Description: in.Description,
		Open:        in.Open,
	}
	if err := s.store.Create(ctx, job); err != nil {
		return nil, err
	}
	return job, nil
}

func (s *CareerService) Get(ctx context.Context, id string) (*JobOpening, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("%w: job id is required", ErrInvalidInput)
	}
	return s.store.Find(ctx, id)
}

func (s *CareerService) List(ctx context.Context, openOnly bool) ([]*JobOpening, error) {
	return s.store.List(ctx, openOnly)
}

type UpdateJobInput struct {
	Title       *string `json:"title" validate:"omitempty,min=2,max=200"`
	Department  *string `json:"department"`
	Location    *string `json:"location"`
	Description *string `json:"description"`
	Open        *bool   `json:"open"`
}

func (s *CareerService) Update(ctx context.Context, id string, in UpdateJobInput) (*JobOpening, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	job, err := s.store.Find(ctx, strings.TrimSpace(id))
	if err != nil {
		return nil, err
	}
	if in.Title != nil {
		job.Title = strings.TrimSpace(*in.Title)
	}
	if in.Department != nil {
		job.Department = strings.TrimSpace(*in.Department)
	}
	if in.Location != nil {
		job.Location = strings.TrimSpace(*in.Location)
	}
	if in.Description != nil {
		job.Description = *in.Description
	}
	if in.Open != nil {
		job.Open = *in.Open
	}
	if err := s.store.Update(ctx, job); err != nil {
		return nil, err
	}
	return job, nil
}

func (s *CareerService) Delete(ctx context.Context, id string) (*JobOpening, error) {
	job, err := s.store.Find(ctx, strings.TrimSpace(id))
	if err != nil {
		return nil, err
	}
	if err := s.store.Delete(ctx, job.ID); err != nil {
		return nil, err
	}
	return job, nil
}
