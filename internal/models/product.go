package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Brand struct {
	ID   int64  `gorm:"primaryKey" json:"id"`
	Name string `json:"name"`
}

type Category struct {
	ID   int64  `gorm:"primaryKey" json:"id"`
	Name string `json:"name"`
}

type ProductPhoto struct {
	ID        int64  `gorm:"primaryKey" json:"id"`
	ProductID int64  `json:"product_id"`
	ImageURL  string `json:"image_url"`
	IsMain    bool   `json:"is_main"`
}

type Product struct {
	ID          int64           `gorm:"primaryKey" json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `gorm:"type:numeric(18,2)" json:"price"`
	BrandID     int64           `json:"brand_id"`
	Brand       *Brand          `gorm:"foreignKey:BrandID" json:"brand,omitempty"`
	CategoryID  int64           `json:"category_id"`
	Category    *Category       `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Photos      []ProductPhoto  `gorm:"foreignKey:ProductID" json:"photos,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// MainPhotoURL returns the URL of the main photo, or the first photo when no
// photo is flagged as main. Empty string when the product has no photos loaded.
func (p *Product) MainPhotoURL() string {
	for _, photo := range p.Photos {
		if photo.IsMain {
			return photo.ImageURL
		}
	}

	if len(p.Photos) > 0 {
		return p.Photos[0].ImageURL
	}

	return ""
}

// ProductQueryParams drives the catalog read path through the specification
// engine. Zero values mean "no filter".
type ProductQueryParams struct {
	BrandID    int64
	CategoryID int64
	Search     string
	Sort       string // "name", "priceAsc" or "priceDesc"
	Page       int
	PageSize   int
}

type PaginatedResponse struct {
	Data     any   `json:"data"`
	Total    int64 `json:"total"`
	Page     int   `json:"page"`
	PageSize int   `json:"pageSize"`
}
