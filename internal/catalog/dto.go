package catalog

import (
	"time"

	"github.com/dookiees/bakery-backend/pkg/db/models"
	"github.com/dookiees/bakery-backend/pkg/enums"
)

// placeholderImageURL is served when a menu item has no primary image and no
// gallery images attached.
const placeholderImageURL = "/images/placeholder-cookie.webp"

// ProductImage is a single entry in a product's ordered image list.
type ProductImage struct {
	ID        string `json:"id"`
	ProductID string `json:"cookie_id"`
	ImageURL  string `json:"image_url"`
	IsPrimary bool   `json:"is_main"`
	Alt       string `json:"alt"`
}

// ProductDTO is the storefront-facing product shape.
type ProductDTO struct {
	ID           string             `json:"id"`
	Slug         string             `json:"slug"`
	Name         string             `json:"name"`
	Description  string             `json:"description"`
	Price        float64            `json:"price"`
	Category     enums.MenuCategory `json:"category"`
	Rating       float64            `json:"rating"`
	IsBestSeller bool               `json:"is_best_seller"`
	Status       enums.MenuStatus   `json:"status"`
	Images       []ProductImage     `json:"images"`
	Tags         []string           `json:"tags"`
	CreatedAt    time.Time          `json:"created_at"`
}

// toProductDTO shapes a menu row plus its gallery rows into the storefront
// product model. The designated primary image leads the image list, followed
// by gallery images in stored order; review-type gallery rows are excluded.
func toProductDTO(menu *models.Menu) ProductDTO {
	images := make([]ProductImage, 0, len(menu.Gallery)+1)
	if menu.ImageURL != nil && *menu.ImageURL != "" {
		images = append(images, ProductImage{
			ID:        "main",
			ProductID: menu.ID.String(),
			ImageURL:  *menu.ImageURL,
			IsPrimary: true,
			Alt:       menu.Name,
		})
	}
	for _, item := range menu.Gallery {
		if item.Type != enums.GalleryTypeGallery {
			continue
		}
		alt := menu.Name
		if item.Title != nil && *item.Title != "" {
			alt = *item.Title
		}
		images = append(images, ProductImage{
			ID:        item.ID.String(),
			ProductID: menu.ID.String(),
			ImageURL:  item.ImageURL,
			IsPrimary: false,
			Alt:       alt,
		})
	}
	if len(images) == 0 {
		images = append(images, ProductImage{
			ID:        "placeholder",
			ProductID: menu.ID.String(),
			ImageURL:  placeholderImageURL,
			IsPrimary: true,
			Alt:       menu.Name,
		})
	}

	tags := []string(menu.Tags)
	if tags == nil {
		tags = []string{}
	}

	return ProductDTO{
		ID:           menu.ID.String(),
		Slug:         menu.Slug,
		Name:         menu.Name,
		Description:  menu.Description,
		Price:        menu.Price.InexactFloat64(),
		Category:     menu.Category,
		Rating:       menu.Rating,
		IsBestSeller: menu.IsBestSeller,
		Status:       menu.Status,
		Images:       images,
		Tags:         tags,
		CreatedAt:    menu.CreatedAt,
	}
}
