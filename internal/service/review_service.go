package service

import (
	"strings"

	"detallado/internal/db"
	"detallado/internal/entities"
	httperrors "detallado/internal/errors"
	"detallado/internal/repository"
)

const testimonialsLimit = 20

type ReviewService struct {
	Repo *repository.ReviewRepository
}

func NewReviewService(repo *repository.ReviewRepository) *ReviewService {
	return &ReviewService{Repo: repo}
}

func (s *ReviewService) Create(userID int, userName string, req entities.ReviewRequest) (*entities.ReviewResponse, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, httperrors.ErrBadRequest("rating must be between 1 and 5")
	}
	if strings.TrimSpace(req.Comment) == "" {
		return nil, httperrors.ErrBadRequest("comment is required")
	}

	review := &db.Review{
		UserID:   userID,
		UserName: userName,
		Rating:   req.Rating,
		Comment:  strings.TrimSpace(req.Comment),
		Language: normalizeLanguage(req.Language),
	}
	if err := s.Repo.Create(review); err != nil {
		return nil, err
	}
	resp := toReviewResponse(review)
	return &resp, nil
}

func (s *ReviewService) ListForUser(userID int) ([]entities.ReviewResponse, error) {
	reviews, err := s.Repo.ListForUser(userID)
	if err != nil {
		return nil, err
	}
	return toReviewResponses(reviews), nil
}

// Testimonials lists approved reviews for the public marketing pages.
func (s *ReviewService) Testimonials() ([]entities.ReviewResponse, error) {
	reviews, err := s.Repo.ListApproved(testimonialsLimit)
	if err != nil {
		return nil, err
	}
	return toReviewResponses(reviews), nil
}

func (s *ReviewService) Delete(userID, reviewID int) error {
	return s.Repo.Delete(reviewID, userID)
}

func toReviewResponses(reviews []db.Review) []entities.ReviewResponse {
	out := make([]entities.ReviewResponse, 0, len(reviews))
	for i := range reviews {
		out = append(out, toReviewResponse(&reviews[i]))
	}
	return out
}

func toReviewResponse(r *db.Review) entities.ReviewResponse {
	return entities.ReviewResponse{
		ID:        r.ID,
		UserName:  r.UserName,
		Rating:    r.Rating,
		Comment:   r.Comment,
		Language:  r.Language,
		Approved:  r.Approved,
		CreatedAt: r.CreatedAt.Format("2006-01-02"),
	}
}
