package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/movielib/movie-catalog-service/internal/domain"
)

type PostgresRatingRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRatingRepository(db *pgxpool.Pool) *PostgresRatingRepository {
	return &PostgresRatingRepository{
		db: db,
	}
}

// Rate upserts the (movie, user) rating and rewrites the movie's average in
// one transaction. The movie row is locked first, which both reports a
// missing movie and serializes concurrent rating writes on the same movie so
// the re-read of the full rating set never loses an update.
func (p *PostgresRatingRepository) Rate(ctx context.Context, movieId, userId uuid.UUID, value int) error {
	return runInTx(ctx, p.db, func(tx pgx.Tx) error {
		if err := lockMovie(ctx, tx, movieId); err != nil {
			return err
		}

		query := `INSERT INTO ratings (movie_id, user_id, value)
			VALUES ($1, $2, $3)
			ON CONFLICT (movie_id, user_id)
			DO UPDATE SET value = EXCLUDED.value, updated_at = now()`

		_, err := tx.Exec(ctx, query, movieId, userId, value)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.CheckViolation {
				return domain.ValidationError{
					Field:   "rating",
					Message: fmt.Sprintf("must be between %d and %d", domain.MinRating, domain.MaxRating),
				}
			}

			return err
		}

		return recomputeAverage(ctx, tx, movieId)
	})
}

// Delete removes the user's rating for the movie if one exists and rewrites
// the average either way. A missing rating is not an error; a missing movie
// is.
func (p *PostgresRatingRepository) Delete(ctx context.Context, movieId, userId uuid.UUID) error {
	return runInTx(ctx, p.db, func(tx pgx.Tx) error {
		if err := lockMovie(ctx, tx, movieId); err != nil {
			return err
		}

		_, err := tx.Exec(ctx, `DELETE FROM ratings WHERE movie_id = $1 AND user_id = $2`, movieId, userId)
		if err != nil {
			return err
		}

		return recomputeAverage(ctx, tx, movieId)
	})
}

func (p *PostgresRatingRepository) GetAllForUser(ctx context.Context, userId uuid.UUID) ([]domain.MovieRating, error) {
	query := `SELECT r.movie_id, m.slug, m.title, r.value
		FROM ratings r
		INNER JOIN movies m ON m.id = r.movie_id
		WHERE r.user_id = $1
		ORDER BY m.title ASC, r.movie_id ASC`

	rows, err := p.db.Query(ctx, query, userId)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ratings := []domain.MovieRating{}

	for rows.Next() {
		var rating domain.MovieRating

		err := rows.Scan(&rating.MovieID, &rating.Slug, &rating.Title, &rating.Value)
		if err != nil {
			return nil, err
		}

		ratings = append(ratings, rating)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return ratings, nil
}

func lockMovie(ctx context.Context, tx pgx.Tx, movieId uuid.UUID) error {
	var id uuid.UUID

	err := tx.QueryRow(ctx, `SELECT id FROM movies WHERE id = $1 FOR UPDATE`, movieId).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrRecordNotFound
		}
		return err
	}

	return nil
}

// recomputeAverage re-reads the full current rating set for the movie and
// persists its mean, rather than patching the stored average incrementally.
func recomputeAverage(ctx context.Context, tx pgx.Tx, movieId uuid.UUID) error {
	rows, _ := tx.Query(ctx, `SELECT value FROM ratings WHERE movie_id = $1`, movieId)

	values, err := pgx.CollectRows(rows, pgx.RowTo[int])
	if err != nil {
		return err
	}

	var avg *float64
	if mean, ok := domain.AverageRating(values); ok {
		f := mean.InexactFloat64()
		avg = &f
	}

	_, err = tx.Exec(ctx, `UPDATE movies SET avg_rating = $2 WHERE id = $1`, movieId, avg)

	return err
}

func runInTx(ctx context.Context, db *pgxpool.Pool, fn func(tx pgx.Tx) error) error {
	var txOptions pgx.TxOptions

	tx, err := db.BeginTx(ctx, txOptions)
	if err != nil {
		return err
	}

	err = fn(tx)
	if err == nil {
		return tx.Commit(ctx)
	}

	rollbackErr := tx.Rollback(ctx)
	if rollbackErr != nil {
		return errors.Join(err, rollbackErr)
	}

	return err
}
