package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/movielib/movie-catalog-service/internal/domain"
)

const movieColumns = `m.id, m.title, m.year_of_release, m.slug, m.genres, m.avg_rating, r.value, m.created_at, m.updated_at`

type PostgresMovieRepository struct {
	db *pgxpool.Pool
}

func NewPostgresMovieRepository(db *pgxpool.Pool) *PostgresMovieRepository {
	return &PostgresMovieRepository{
		db: db,
	}
}

func (p *PostgresMovieRepository) Create(ctx context.Context, movie *domain.Movie) error {
	query := `INSERT INTO movies (id, title, year_of_release, slug, genres)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at`

	return p.db.QueryRow(ctx,
		query,
		movie.ID,
		movie.Title,
		movie.YearOfRelease,
		movie.Slug,
		movie.Genres).Scan(&movie.CreatedAt, &movie.UpdatedAt)
}

func (p *PostgresMovieRepository) GetById(ctx context.Context, id uuid.UUID, userId uuid.UUID) (*domain.Movie, error) {
	query := fmt.Sprintf(`SELECT %s
		FROM movies m
		LEFT JOIN ratings r ON r.movie_id = m.id AND r.user_id = $2
		WHERE m.id = $1`, movieColumns)

	return p.getOne(ctx, query, id, userId)
}

func (p *PostgresMovieRepository) GetBySlug(ctx context.Context, slug string, userId uuid.UUID) (*domain.Movie, error) {
	query := fmt.Sprintf(`SELECT %s
		FROM movies m
		LEFT JOIN ratings r ON r.movie_id = m.id AND r.user_id = $2
		WHERE m.slug = $1`, movieColumns)

	return p.getOne(ctx, query, slug, userId)
}

func (p *PostgresMovieRepository) getOne(ctx context.Context, query string, args ...any) (*domain.Movie, error) {
	movie, err := scanMovie(p.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}
		return nil, err
	}

	return movie, nil
}

// GetAll applies the title/year filters, the multi-key sort and the paging
// window in a single query. The count(*) OVER() window gives the number of
// rows matching the filters before LIMIT/OFFSET is applied. When OFFSET lands
// past the last match the page query returns no rows at all and carries no
// window count, so the total is fetched with a separate count query and an
// out-of-range page still reports it correctly.
func (p *PostgresMovieRepository) GetAll(ctx context.Context, options domain.QueryOptions) ([]*domain.Movie, *domain.Metadata, error) {
	query := fmt.Sprintf(`SELECT count(*) OVER(), %s
		FROM movies m
		LEFT JOIN ratings r ON r.movie_id = m.id AND r.user_id = $1
		WHERE ($2 = '' OR m.title ILIKE '%%' || $2 || '%%')
			AND ($3::int IS NULL OR m.year_of_release = $3)
		ORDER BY %s
		LIMIT $4 OFFSET $5`, movieColumns, orderByClause(options.Sort))

	rows, err := p.db.Query(ctx, query, options.UserID, escapeLike(options.Title), options.Year, options.Limit(), options.Offset())
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	totalRecords := 0
	movies := []*domain.Movie{}

	for rows.Next() {
		var (
			movie      domain.Movie
			avgRating  pgtype.Numeric
			userRating *int
		)

		err := rows.Scan(
			&totalRecords,
			&movie.ID,
			&movie.Title,
			&movie.YearOfRelease,
			&movie.Slug,
			&movie.Genres,
			&avgRating,
			&userRating,
			&movie.CreatedAt,
			&movie.UpdatedAt,
		)

		if err != nil {
			return nil, nil, err
		}

		movie.Rating = numericToDecimal(avgRating)
		movie.UserRating = userRating

		movies = append(movies, &movie)
	}

	if err = rows.Err(); err != nil {
		return nil, nil, err
	}

	if len(movies) == 0 {
		totalRecords, err = p.countMovies(ctx, options)
		if err != nil {
			return nil, nil, err
		}
	}

	metadata := domain.NewMetadata(totalRecords, options.Page, options.PageSize)

	return movies, metadata, nil
}

func (p *PostgresMovieRepository) countMovies(ctx context.Context, options domain.QueryOptions) (int, error) {
	query := `SELECT count(*)
		FROM movies m
		WHERE ($1 = '' OR m.title ILIKE '%' || $1 || '%')
			AND ($2::int IS NULL OR m.year_of_release = $2)`

	var total int
	err := p.db.QueryRow(ctx, query, escapeLike(options.Title), options.Year).Scan(&total)

	return total, err
}

func (p *PostgresMovieRepository) Update(ctx context.Context, movie *domain.Movie) error {
	query := `UPDATE movies
		SET title = $2, year_of_release = $3, slug = $4, genres = $5, updated_at = now()
		WHERE id = $1
		RETURNING updated_at`

	err := p.db.QueryRow(ctx,
		query,
		movie.ID,
		movie.Title,
		movie.YearOfRelease,
		movie.Slug,
		movie.Genres).Scan(&movie.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrRecordNotFound
		}
		return err
	}

	return nil
}

// Delete removes the movie row; its ratings go with it via the ON DELETE
// CASCADE constraint on ratings.movie_id.
func (p *PostgresMovieRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := p.db.Exec(ctx, `DELETE FROM movies WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrRecordNotFound
	}

	return nil
}

// sortColumns whitelists the fields a caller may sort by. Sort keys are
// validated against domain.QueryOptions before a query is built, so an
// unknown field never reaches the ORDER BY clause.
var sortColumns = map[domain.SortField]string{
	domain.SortFieldTitle: "m.title",
	domain.SortFieldYear:  "m.year_of_release",
}

func orderByClause(keys []domain.SortKey) string {
	clauses := make([]string, 0, len(keys)+1)

	for _, key := range keys {
		direction := "ASC"
		if key.Descending {
			direction = "DESC"
		}
		clauses = append(clauses, sortColumns[key.Field]+" "+direction)
	}

	// trailing id key keeps ties deterministic across calls
	clauses = append(clauses, "m.id ASC")

	return strings.Join(clauses, ", ")
}

func scanMovie(row pgx.Row) (*domain.Movie, error) {
	var (
		movie      domain.Movie
		avgRating  pgtype.Numeric
		userRating *int
	)

	err := row.Scan(
		&movie.ID,
		&movie.Title,
		&movie.YearOfRelease,
		&movie.Slug,
		&movie.Genres,
		&avgRating,
		&userRating,
		&movie.CreatedAt,
		&movie.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	movie.Rating = numericToDecimal(avgRating)
	movie.UserRating = userRating

	return &movie, nil
}

// escapeLike makes the title filter a literal substring match: %, _ and the
// escape character itself lose their LIKE meaning before the parameter is
// wrapped in wildcards.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func numericToDecimal(n pgtype.Numeric) *decimal.Decimal {
	if !n.Valid || n.NaN {
		return nil
	}

	d := decimal.NewFromBigInt(n.Int, n.Exp)

	return &d
}
