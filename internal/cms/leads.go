package cms

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"crestline.dev/internal/ids"
)

// LeadService manages contact-form enquiries. Creation is the only
// unauthenticated mutation in the system, which is why the corresponding
// route carries its own rate limit.
type LeadService struct {
	store LeadStore
}

func NewLeadService(store LeadStore) (*LeadService, error) {
	if store == nil {
		return nil, errors.New("lead store is required")
	}
	return &LeadService{store: store}, nil
}

type CreateLeadInput struct {
	Name      string `json:"name" validate:"required,min=2,max=120"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone" validate:"omitempty,max=32"`
	Message   string `json:"message" validate:"required,max=4000"`
	ProjectID string `json:"project_id"`
}

func (s *LeadService) Create(ctx context.Context, in CreateLeadInput) (*Lead, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	lead := &Lead{
		ID:        ids.New(),
		Name:      strings.TrimSpace(in.Name),
		Email:     strings.TrimSpace(strings.ToLower(in.Email)),
		Phone:     strings.TrimSpace(in.Phone),
		Message:   strings.TrimSpace(in.Message),
		ProjectID: strings.TrimSpace(in.ProjectID),
		Status:    LeadNew,
	}
	if err := s.store.Create(ctx, lead); err != nil {
		return nil, err
	}
	return lead, nil
}

func (s *LeadService) List(ctx context.Context, f LeadFilter) ([]*Lead, error) {
	if f.Status != nil {
		status := strings.TrimSpace(strings.ToLower(*f.Status))
		switch status {
		case LeadNew, LeadContacted, LeadClosed:
			f.Status = &status
		default:
			return nil, fmt.Errorf("%w: unsupported status %s", ErrInvalidInput, status)
		}
	}
	return s.store.List(ctx, f)
}

func (s *LeadService) Get(ctx context.Context, id string) (*Lead, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("%w: lead id is required", ErrInvalidInput)
	}
	return s.store.Find(ctx, id)
}

// UpdateStatus moves a lead through new -> contacted -> closed.
func (s *LeadService) UpdateStatus(ctx context.Context, id, status string) (*Lead, error) {
	status = strings.TrimSpace(strings.ToLower(status))
	switch status {
	case LeadNew, LeadContacted, LeadClosed:
	default:
		return nil, fmt.Errorf("%w: unsupported status %s", ErrInvalidInput, status)
	}
	lead, err := s.store.Find(ctx, strings.TrimSpace(id))
	if err != nil {
		return nil, err
	}
	lead.Status = status
	if err := s.store.Update(ctx, lead); err != nil {
		return nil, err
	}
	return lead, nil
}
