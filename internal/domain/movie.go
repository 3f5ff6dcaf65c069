package domain

import (
	"context"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Movie struct {
	ID            uuid.UUID
	Title         string
	YearOfRelease int
	Genres        []string
	Slug          string
	Rating        *decimal.Decimal
	UserRating    *int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

var slugSeparators = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify derives a movie's URL identifier from its title and release year:
// the lower-cased title with non-alphanumeric runs collapsed to single
// hyphens, suffixed with the year. Deriving twice from the same title/year
// always yields the same slug.
func Slugify(title string, yearOfRelease int) string {
	slug := strings.ToLower(title)
	slug = slugSeparators.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")

	return slug + "-" + strconv.Itoa(yearOfRelease)
}

// MovieRepository lookups take the requesting user's id so results can carry
// that user's own rating. Pass uuid.Nil for anonymous requests.
type MovieRepository interface {
	Create(ctx context.Context, movie *Movie) error
	GetById(ctx context.Context, id uuid.UUID, userId uuid.UUID) (*Movie, error)
	GetBySlug(ctx context.Context, slug string, userId uuid.UUID) (*Movie, error)
	GetAll(ctx context.Context, options QueryOptions) ([]*Movie, *Metadata, error)
	Update(ctx context.Context, movie *Movie) error
	Delete(ctx context.Context, id uuid.UUID) error
}
