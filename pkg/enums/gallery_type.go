package enums

import "fmt"

// GalleryType distinguishes rows in the shared gallery table.
type GalleryType string

const (
	GalleryTypeGallery GalleryType = "gallery"
	GalleryTypeReview  GalleryType = "review"
)

var validGalleryTypes = []GalleryType{
	GalleryTypeGallery,
	GalleryTypeReview,
}

// String implements fmt.Stringer.
func (g GalleryType) String() string {
	return string(g)
}

// IsValid reports whether the value matches a known GalleryType.
func (g GalleryType) IsValid() bool {
	for _, candidate := range validGalleryTypes {
		if candidate == g {
			return true
		}
	}
	return false
}

// ParseGalleryType converts raw input into a GalleryType.
func ParseGalleryType(value string) (GalleryType, error) {
	for _, candidate := range validGalleryTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid gallery type %q", value)
}
