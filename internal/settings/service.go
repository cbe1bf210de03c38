package settings

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/dookiees/bakery-backend/pkg/db/models"
	pkgerrors "github.com/dookiees/bakery-backend/pkg/errors"
	"github.com/dookiees/bakery-backend/pkg/logger"
)

// Repository reads and writes the single site_settings row.
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

// Get loads the settings row.
func (r *Repository) Get(ctx context.Context) (*models.SiteSettings, error) {
	var row models.SiteSettings
	if err := r.db.WithContext(ctx).Order("updated_at DESC").First(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// Save persists the settings row, creating it on first write.
func (r *Repository) Save(ctx context.Context, row *models.SiteSettings) error {
	return r.db.WithContext(ctx).Save(row).Error
}

// SettingsDTO is the admin-facing settings shape.
type SettingsDTO struct {
	SiteName     *string `json:"site_name"`
	LineOA       *string `json:"line_oa"`
	Announcement *string `json:"announcement"`
}

// UpdateInput carries optional mutation values for the settings row.
type UpdateInput struct {
	SiteName     *string
	LineOA       *string
	Announcement *string
}

type settingsStore interface {
	Get(ctx context.Context) (*models.SiteSettings, error)
	Save(ctx context.Context, row *models.SiteSettings) error
}

// Service exposes site settings reads plus the admin update surface.
type Service interface {
	Get(ctx context.Context) (*SettingsDTO, error)
	Update(ctx context.Context, input UpdateInput) (*SettingsDTO, error)
	LineOA(ctx context.Context) string
}

type service struct {
	repo      settingsStore
	defaultOA string
	log       *logger.Logger
}

// NewService constructs a settings service instance. defaultOA is the LINE OA
// identifier used when no settings row carries one.
func NewService(repo settingsStore, defaultOA string, log *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("settings repository required")
	}
	if defaultOA == "" {
		return nil, fmt.Errorf("default line oa required")
	}
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, defaultOA: defaultOA, log: log}, nil
}

func (s *service) Get(ctx context.Context) (*SettingsDTO, error) {
	row, err := s.repo.Get(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &SettingsDTO{}, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading site settings")
	}
	return toDTO(row), nil
}

func (s *service) Update(ctx context.Context, input UpdateInput) (*SettingsDTO, error) {
	row, err := s.repo.Get(ctx)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading site settings")
		}
		row = &models.SiteSettings{}
	}

	if input.SiteName != nil {
		row.SiteName = input.SiteName
	}
	if input.LineOA != nil {
		row.LineOA = input.LineOA
	}
	if input.Announcement != nil {
		row.Announcement = input.Announcement
	}

	if err := s.repo.Save(ctx, row); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "saving site settings")
	}
	return toDTO(row), nil
}

// LineOA resolves the messaging channel identifier. A missing settings row,
// an empty value, or a backend failure all fall back to the configured
// default; this path must never fail.
func (s *service) LineOA(ctx context.Context) string {
	row, err := s.repo.Get(ctx)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.log.Warn(ctx, fmt.Sprintf("site settings unavailable, using default line oa: %v", err))
		}
		return s.defaultOA
	}
	if row.LineOA == nil || *row.LineOA == "" {
		return s.defaultOA
	}
	return *row.LineOA
}

func toDTO(row *models.SiteSettings) *SettingsDTO {
	return &SettingsDTO{
		SiteName:     row.SiteName,
		LineOA:       row.LineOA,
		Announcement: row.Announcement,
	}
}
