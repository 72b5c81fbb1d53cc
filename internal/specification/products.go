package specification

import (
	"strings"

	"github.com/Next-Gene/primecare/internal/models"
)

const defaultPageSize = 10

// ProductsWithDetails builds the catalog listing specification: optional
// brand/category filters, case-insensitive name search, one of the supported
// sort orders and pagination. Brand, category and photos are always attached.
func ProductsWithDetails(params models.ProductQueryParams) Specification {
	spec := productCriteria(params)

	switch params.Sort {
	case "priceAsc":
		spec = spec.SortBy("price")
	case "priceDesc":
		spec = spec.SortByDesc("price")
	default:
		spec = spec.SortBy("name")
	}

	page := params.Page
	if page < 1 {
		page = 1
	}

	size := params.PageSize
	if size < 1 {
		size = defaultPageSize
	}

	return spec.
		Paginate((page-1)*size, size).
		Include("Brand").
		Include("Category").
		Include("Photos")
}

// ProductsCount is the matching count specification: same criteria, no
// paging, no includes.
func ProductsCount(params models.ProductQueryParams) Specification {
	return productCriteria(params).CriteriaOnly()
}

// ProductByID fetches a single product with its details eagerly loaded.
func ProductByID(id int64) Specification {
	return New("id = ?", id).
		Include("Brand").
		Include("Category").
		Include("Photos")
}

func productCriteria(params models.ProductQueryParams) Specification {
	var (
		conditions []string
		args       []any
	)

	if params.BrandID != 0 {
		conditions = append(conditions, "brand_id = ?")
		args = append(args, params.BrandID)
	}

	if params.CategoryID != 0 {
		conditions = append(conditions, "category_id = ?")
		args = append(args, params.CategoryID)
	}

	if params.Search != "" {
		conditions = append(conditions, "LOWER(name) LIKE ?")
		args = append(args, "%"+strings.ToLower(params.Search)+"%")
	}

	return New(strings.Join(conditions, " AND "), args...)
}
