package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dookiees/bakery-backend/pkg/db/models"
	"github.com/dookiees/bakery-backend/pkg/enums"
	"github.com/dookiees/bakery-backend/pkg/pagination"
)

// Repository provides read access to menu rows for the storefront.
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

func withGallery(db *gorm.DB) *gorm.DB {
	return db.Preload("Gallery", func(db *gorm.DB) *gorm.DB {
		return db.Order("sort_order ASC, created_at ASC")
	})
}

// ListAvailable returns one page of available menu items ordered by their
// explicit sort key, plus the total count of available items.
func (r *Repository) ListAvailable(ctx context.Context, params pagination.Params) ([]models.Menu, int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&models.Menu{}).
		Where("status = ?", enums.MenuStatusAvailable).
		Count(&total).
		Error
	if err != nil {
		return nil, 0, err
	}

	var menus []models.Menu
	err = withGallery(r.db.WithContext(ctx)).
		Where("status = ?", enums.MenuStatusAvailable).
		Order("sort_order ASC, created_at ASC").
		Offset(params.Offset()).
		Limit(params.Limit).
		Find(&menus).
		Error
	if err != nil {
		return nil, 0, err
	}
	return menus, total, nil
}

// FindBySlug loads an available menu item by its slug, falling back to an id
// match so older links that used the raw id keep resolving.
func (r *Repository) FindBySlug(ctx context.Context, slug string) (*models.Menu, error) {
	available := func() *gorm.DB {
		return withGallery(r.db.WithContext(ctx)).
			Where("status = ?", enums.MenuStatusAvailable)
	}

	var menu models.Menu
	err := available().Where("slug = ?", slug).First(&menu).Error
	if err == nil {
		return &menu, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	id, parseErr := uuid.Parse(slug)
	if parseErr != nil {
		return nil, err
	}
	if err := available().Where("id = ?", id).First(&menu).Error; err != nil {
		return nil, err
	}
	return &menu, nil
}

// ListBestSellers returns all available menu items flagged as best sellers.
func (r *Repository) ListBestSellers(ctx context.Context) ([]models.Menu, error) {
	var menus []models.Menu
	err := withGallery(r.db.WithContext(ctx)).
		Where("status = ? AND is_best_seller = ?", enums.MenuStatusAvailable, true).
		Order("sort_order ASC, created_at ASC").
		Find(&menus).
		Error
	if err != nil {
		return nil, err
	}
	return menus, nil
}
