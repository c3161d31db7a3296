package notice

import (
	"errors"
	"time"
)

var (
	ErrNotFound      = errors.New("notice not found")
	ErrTitleRequired = errors.New("title is required")
	ErrBodyRequired  = errors.New("body is required")
)

// Notice is an entry on the condominium notice board. A notice may be scoped
// to one amenity (maintenance closures, rule changes) or address the whole
// building when AmenityID is nil.
type Notice struct {
	ID          string
	Title       string
	Body        string
	AmenityID   *string
	AmenityName string // joined, empty for building-wide notices
	AuthorID    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Filter defines parameters for listing notices.
type Filter struct {
	Keyword   string
	AmenityID string
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}
