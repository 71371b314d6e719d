package cms

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"crestline.dev/internal/ids"
)

// BlogService manages articles on the public blog.
type BlogService struct {
	store BlogStore
}

func NewBlogService(store BlogStore) (*BlogService, error) {
	if store == nil {
		return nil, errors.New("blog store is required")
	}
	return &BlogService{store: store}, nil
}

type CreateBlogInput struct {
	Title     string   `json:"title" validate:"required,min=2,max=200"`
	Body      string   `json:"body" validate:"required"`
	Tags      []string `json:"tags" validate:"omitempty,dive,min=1"`
	Published bool     `json:"published"`
}

func (s *BlogService) Create(ctx context.Context, authorID string, in CreateBlogInput) (*BlogPost, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	post := &BlogPost{
		ID:        ids.New(),
		Title:     strings.TrimSpace(in.Title),
		Slug:      Slugify(in.Title),
		Body:      in.Body,
		Tags:      normalizeTags(in.Tags),
		Published: in.Published,
		AuthorID:  authorID,
	}
	if err := s.store.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *BlogService) Get(ctx context.Context, id string) (*BlogPost, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("%w: post id is required", ErrInvalidInput)
	}
	return s.store.Find(ctx, id)
}

func (s *BlogService) List(ctx context.Context, f BlogFilter) ([]*BlogPost, error) {
	if f.Tag != nil {
		tag := strings.TrimSpace(strings.ToLower(*f.Tag))
		if tag == "" {
			f.Tag = nil
		} else {
			f.Tag = &tag
		}
	}
	return s.store.List(ctx, f)
}

type UpdateBlogInput struct {
	Title     *string  `json:"title" validate:"omitempty,min=2,max=200"`
	Body      *string  `json:"body"`
	Tags      []string `json:"tags" validate:"omitempty,dive,min=1"`
	Published *bool    `json:"published"`
}

func (s *BlogService) Update(ctx context.Context, id string, in UpdateBlogInput) (*BlogPost, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	post, err := s.store.Find(ctx, strings.TrimSpace(id))
	if err != nil {
		return nil, err
	}
	if in.Title != nil {
		post.Title = strings.TrimSpace(*in.Title)
		post.Slug = Slugify(*in.Title)
	}
	if in.Body != nil {
		post.Body = *in.Body
	}
	if in.Tags != nil {
		post.Tags = normalizeTags(in.Tags)
	}
	if in.Published != nil {
		post.Published = *in.Published
	}
	if err := s.store.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *BlogService) Delete(ctx context.Context, id string) (*BlogPost, error) {
	post, err := s.store.Find(ctx, strings.TrimSpace(id))
	if err != nil {
		return nil, err
	}
	if err := s.store.Delete(ctx, post.ID); err != nil {
		return nil, err
	}
	return post, nil
}

func normalizeTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(tags))
	var out []string
	for _, tag := range tags {
		tag = strings.TrimSpace(strings.ToLower(tag))
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}
