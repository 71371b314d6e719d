package cms

import (
	"errors"
	"time"

	"crestline.dev/internal/auth"
)

var (
	ErrInvalidInput = errors.New("cms: invalid input")
	ErrNotFound     = errors.New("cms: not found")
	ErrConflict     = errors.New("cms: resource conflict")
	ErrForbidden    = errors.New("cms: forbidden")
)

// User is a back-office account. The role field drives every authorization
// decision; email is display/audit only.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         auth.Role `json:"role"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Project statuses.
const (
	ProjectUpcoming  = "upcoming"
	ProjectOngoing   = "ongoing"
	ProjectCompleted = "completed"
)

// Project is a development shown on the marketing site.
type Project struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Slug      string    `json:"slug"`
	Summary   string    `json:"summary"`
	Location  string    `json:"location"`
	Status    string    `json:"status"`
	Featured  bool      `json:"featured"`
	Published bool      `json:"published"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BlogPost is an article on the public blog.
type BlogPost struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Slug      string    `json:"slug"`
	Body      string    `json:"body"`
	Tags      []string  `json:"tags,omitempty"`
	Published bool      `json:"published"`
	AuthorID  string    `json:"author_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Lead statuses.
const (
	LeadNew       = "new"
	LeadContacted = "contacted"
	LeadClosed    = "closed"
)

// Lead is a contact-form enquiry, optionally tied to a project.
type Lead struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Message   string    `json:"message"`
	ProjectID string    `json:"project_id,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// JobOpening is a careers-page listing.
type JobOpening struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Department  string    `json:"department"`
	Location    string    `json:"location"`
	Description string    `json:"description"`
	Open        bool      `json:"open"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Structured filter criteria. Named optional fields rather than open-ended
// dictionaries keep the persistence boundary type safe.

type ProjectFilter struct {
	Status        *string
	Featured      *bool
	PublishedOnly bool
	Limit         int
	Offset        int
}

type BlogFilter struct {
	Tag           *string
	PublishedOnly bool
	Limit         int
	Offset        int
}

type LeadFilter struct {
	Status    *string
	ProjectID *string
	Limit     int
	Offset    int
}
