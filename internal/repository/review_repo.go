package repository

import (
	"database/sql"
	"fmt"

	"detallado/internal/db"
)

type ReviewRepository struct {
	DB *sql.DB
}

func NewReviewRepository(database *sql.DB) *ReviewRepository {
	return &ReviewRepository{DB: database}
}

func (r *ReviewRepository) Create(rev *db.Review) error {
	query := `
		INSERT INTO reviews (user_id, rating, comment, language, approved, created_at)
		VALUES ($1, $2, $3, $4, FALSE, NOW())
		RETURNING id, created_at`
	return r.DB.QueryRow(query, rev.UserID, rev.Rating, rev.Comment, rev.Language).
		Scan(&rev.ID, &rev.CreatedAt)
}

func (r *ReviewRepository) ListForUser(userID int) ([]db.Review, error) {
	query := `
		SELECT rv.id, rv.user_id, u.name, rv.rating, rv.comment, rv.language, rv.approved, rv.created_at
		FROM reviews rv
		JOIN users u ON u.id = rv.user_id
		WHERE rv.user_id = $1
		ORDER BY rv.created_at DESC`
	return r.queryReviews(query, userID)
}

// ListApproved returns the public testimonials for the marketing pages.
func (r *ReviewRepository) ListApproved(limit int) ([]db.Review, error) {
	query := `
		SELECT rv.id, rv.user_id, u.name, rv.rating, rv.comment, rv.language, rv.approved, rv.created_at
		FROM reviews rv
		JOIN users u ON u.id = rv.user_id
		WHERE rv.approved = TRUE
		ORDER BY rv.created_at DESC
		LIMIT $1`
	return r.queryReviews(query, limit)
}

func (r *ReviewRepository) queryReviews(query string, args ...interface{}) ([]db.Review, error) {
	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying reviews: %w", err)
	}
	defer rows.Close()

	var reviews []db.Review
	for rows.Next() {
		var rev db.Review
		err := rows.Scan(&rev.ID, &rev.UserID, &rev.UserName, &rev.Rating, &rev.Comment, &rev.Language, &rev.Approved, &rev.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("error scanning review: %w", err)
		}
		reviews = append(reviews, rev)
	}
	return reviews, rows.Err()
}

func (r *ReviewRepository) Delete(id, userID int) error {
	result, err := r.DB.Exec(`DELETE FROM reviews WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("error deleting review: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
