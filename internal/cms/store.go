package cms

import "context"

// UserStore manages back-office accounts.
type UserStore interface {
	Create(ctx context.Context, u *User) error
	Find(ctx context.Context, id string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context) ([]*User, error)
	Update(ctx context.Context, u *User) error
	Delete(ctx context.Context, id string) error
}

// ProjectStore manages developments.
type ProjectStore interface {
	Create(ctx context.Context, p *Project) error
	Find(ctx context.Context, id string) (*Project, error)
	List(ctx context.Context, f ProjectFilter) ([]*Project, error)
	Update(ctx context.Context, p *Project) error
	Delete(ctx context.Context, id string) error
}

// BlogStore manages blog posts.
type BlogStore interface {
	Create(ctx context.Context, p *BlogPost) error
	Find(ctx context.Context, id string) (*BlogPost, error)
	List(ctx context.Context, f BlogFilter) ([]*BlogPost, error)
	Update(ctx context.Context, p *BlogPost) error
	Delete(ctx context.Context, id string) error
}

// LeadStore manages enquiries.
type LeadStore interface {
	Create(ctx context.Context, l *Lead) error
	Find(ctx context.Context, id string) (*Lead, error)
	List(ctx context.Context, f LeadFilter) ([]*Lead, error)
	Update(ctx context.Context, l *Lead) error
}

// CareerStore manages job openings.
type CareerStore interface {
	Create(ctx context.Context, j *JobOpening) error
	Find(ctx context.Context, id string) (*JobOpening, error)
	List(ctx context.Context, openOnly bool) ([]*JobOpening, error)
	Update(ctx context.Context, j *JobOpening) error
	Delete(ctx context.Context, id string) error
}
