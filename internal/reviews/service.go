package reviews

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/dookiees/bakery-backend/pkg/db/models"
	"github.com/dookiees/bakery-backend/pkg/enums"
	"github.com/dookiees/bakery-backend/pkg/logger"
)

// ReviewDTO is the storefront-facing review shape, mapped from review-type
// gallery rows.
type ReviewDTO struct {
	ID           string    `json:"id"`
	ProductID    string    `json:"cookie_id"`
	CustomerName string    `json:"customer_name"`
	Rating       int       `json:"rating"`
	Comment      string    `json:"comment"`
	ImageURL     string    `json:"image_url"`
	CreatedAt    time.Time `json:"created_at"`
}

// Repository reads review rows out of the shared gallery table.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// ListReviews returns review-type gallery rows, featured first, newest first.
func (r *Repository) ListReviews(ctx context.Context) ([]models.GalleryItem, error) {
	var rows []models.GalleryItem
	err := r.db.WithContext(ctx).
		Where("type = ?", enums.GalleryTypeReview).
		Order("is_featured DESC").
		Order("created_at DESC").
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

type reviewReader interface {
	ListReviews(ctx context.Context) ([]models.GalleryItem, error)
}

// Service exposes storefront review reads.
type Service interface {
	ListReviews(ctx context.Context) []ReviewDTO
}

type service struct {
	repo reviewReader
	log  *logger.Logger
}

// NewService constructs a reviews service instance.
func NewService(repo reviewReader, log *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("reviews repository required")
	}
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, log: log}, nil
}

// ListReviews returns all reviews, degrading to an empty list on backend
// failure.
func (s *service) ListReviews(ctx context.Context) []ReviewDTO {
	rows, err := s.repo.ListReviews(ctx)
	if err != nil {
		s.log.Error(ctx, "reviews list degraded to empty", err)
		return []ReviewDTO{}
	}

	reviews := make([]ReviewDTO, 0, len(rows))
	for _, row := range rows {
		reviews = append(reviews, toReviewDTO(&row))
	}
	return reviews
}

func toReviewDTO(row *models.GalleryItem) ReviewDTO {
	review := ReviewDTO{
		ID:           row.ID.String(),
		ProductID:    "general",
		CustomerName: "Anonymous",
		Rating:       5,
		ImageURL:     row.ImageURL,
		CreatedAt:    row.CreatedAt,
	}
	if row.MenuID != nil {
		review.ProductID = row.MenuID.String()
	}
	if row.CustomerName != nil && *row.CustomerName != "" {
		review.CustomerName = *row.CustomerName
	}
	if row.Rating != nil {
		review.Rating = *row.Rating
	}
	if row.Caption != nil {
		review.Comment = *row.Caption
	}
	return review
}
