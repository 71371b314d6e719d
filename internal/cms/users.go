package cms

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"crestline.dev/internal/auth"
	"crestline.dev/internal/ids"
)

// UserService manages accounts and enforces the role hierarchy against the
// target record, not just the caller's coarse role. A caller that clears the
// admin gate may still be denied a specific mutation when the target
// outranks them.
type UserService struct {
	store UserStore
}

func NewUserService(store UserStore) (*UserService, error) {
	if store == nil {
		return nil, errors.New("user store is required")
	}
	return &UserService{store: store}, nil
}

type CreateUserInput struct {
	Name     string `json:"name" validate:"required,min=2,max=120"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"required"`
}

func (s *UserService) Create(ctx context.Context, actor auth.Identity, in CreateUserInput) (*User, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	role, ok := auth.ParseRole(in.Role)
	if !ok {
		return nil, fmt.Errorf("%w: unknown role %q", ErrInvalidInput, in.Role)
	}
	if !auth.CanAssign(actor.Role, role) {
		return nil, ErrForbidden
	}
	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	user := &User{
		ID:           ids.New(),
		Name:         strings.TrimSpace(in.Name),
		Email:        strings.TrimSpace(strings.ToLower(in.Email)),
		PasswordHash: hash,
		Role:         role,
		Active:       true,
	}
	if err := s.store.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) List(ctx context.Context) ([]*User, error) {
	return s.store.List(ctx)
}

func (s *UserService) Get(ctx context.Context, id string) (*User, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	return s.store.Find(ctx, id)
}

type UpdateUserInput struct {
	Name     *string `json:"name" validate:"omitempty,min=2,max=120"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Password *string `json:"password" validate:"omitempty,min=8"`
	Role     *string `json:"role"`
	Active   *bool   `json:"active"`
}

// Update applies a partial update to the target account. Self-edits are
// allowed for every role, including super_admin, but may not change role or
// active flag; edits to other accounts require strictly higher rank.
func (s *UserService) Update(ctx context.Context, actor auth.Identity, id string, in UpdateUserInput) (*User, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	target, err := s.store.Find(ctx, strings.TrimSpace(id))
	if err != nil {
		return nil, err
	}

	self := auth.CanModifySelf(actor.UserID, target.ID)
	if !self && !auth.CanModifyOther(actor.Role, target.Role) {
		return nil, ErrForbidden
	}
	if self && (in.Role != nil || in.Active != nil) {
		// Changing one's own role or deactivating oneself risks lockout.
		return nil, ErrForbidden
	}

	if in.Name != nil {
		target.Name = strings.TrimSpace(*in.Name)
	}
	if in.Email != nil {
		target.Email = strings.TrimSpace(strings.ToLower(*in.Email))
	}
	if in.Password != nil {
		hash, err := auth.HashPassword(*in.Password)
		if err != nil {
			return nil, err
		}
		target.PasswordHash = hash
	}
	if in.Role != nil {
		role, ok := auth.ParseRole(*in.Role)
		if !ok {
			return nil, fmt.Errorf("%w: unknown role %q", ErrInvalidInput, *in.Role)
		}
		if !auth.CanAssign(actor.Role, role) {
			return nil, ErrForbidden
		}
		target.Role = role
	}
	if in.Active != nil {
		target.Active = *in.Active
	}

	if err := s.store.Update(ctx, target); err != nil {
		return nil, err
	}
	return target, nil
}

// Delete removes the target account. Self-deletion is denied; others require
// strictly higher rank, which keeps every super_admin record untouchable.
func (s *UserService) Delete(ctx context.Context, actor auth.Identity, id string) (*User, error) {
	target, err := s.store.Find(ctx, strings.TrimSpace(id))
	if err != nil {
		return nil, err
	}
	if auth.CanModifySelf(actor.UserID, target.ID) {
		return nil, ErrForbidden
	}
	if !auth.CanModifyOther(actor.Role, target.Role) {
		return nil, ErrForbidden
	}
	if err := s.store.Delete(ctx, target.ID); err != nil {
		return nil, err
	}
	return target, nil
}

// Authenticate verifies login credentials and returns the matching active
// account. Every failure mode maps to the same error to avoid leaking which
// part of the credential was wrong.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return nil, ErrForbidden
	}
	user, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		return nil, ErrForbidden
	}
	if !user.Active {
		return nil, ErrForbidden
	}
	if err := auth.VerifyPassword(user.PasswordHash, password); err != nil {
		return nil, ErrForbidden
	}
	return user, nil
}
