package service

import (
	"context"
	"errors"

	apperrors "github.com/Next-Gene/primecare/internal/errors"
	"github.com/Next-Gene/primecare/internal/models"
	repository "github.com/Next-Gene/primecare/internal/repositories"
	"github.com/Next-Gene/primecare/internal/specification"
)

// ProductService is the catalog read path. All queries are composed through
// the specification engine.
type ProductService struct {
	products   repository.Repository[models.Product]
	brands     repository.Repository[models.Brand]
	categories repository.Repository[models.Category]
}

func NewProductService(
	products repository.Repository[models.Product],
	brands repository.Repository[models.Brand],
	categories repository.Repository[models.Category],
) *ProductService {
	return &ProductService{products: products, brands: brands, categories: categories}
}

func (s *ProductService) GetProductByID(ctx context.Context, id int64) (*models.Product, error) {
	product, err := s.products.GetBySpec(ctx, specification.ProductByID(id))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFoundError("Product not found").WithError(err)
		}

		return nil, apperrors.PersistenceError("Failed to fetch product").WithError(err)
	}

	return product, nil
}

// ListProducts returns one catalog page plus the total count of matching
// rows. The count uses the same criteria without paging, so includes and page
// bounds never change the reported total.
func (s *ProductService) ListProducts(ctx context.Context, params models.ProductQueryParams) (*models.PaginatedResponse, error) {
	total, err := s.products.CountBySpec(ctx, specification.ProductsCount(params))
	if err != nil {
		return nil, apperrors.PersistenceError("Failed to count products").WithError(err)
	}

	products, err := s.products.ListBySpec(ctx, specification.ProductsWithDetails(params))
	if err != nil {
		return nil, apperrors.PersistenceError("Failed to list products").WithError(err)
	}

	page := params.Page
	if page < 1 {
		page = 1
	}

	size := params.PageSize
	if size < 1 {
		size = 10
	}

	return &models.PaginatedResponse{
		Data:     products,
		Total:    total,
		Page:     page,
		PageSize: size,
	}, nil
}

func (s *ProductService) ListBrands(ctx context.Context) ([]models.Brand, error) {
	brands, err := s.brands.ListBySpec(ctx, specification.New("").SortBy("name"))
	if err != nil {
		return nil, apperrors.PersistenceError("Failed to list brands").WithError(err)
	}

	return brands, nil
}

func (s *ProductService) ListCategories(ctx context.Context) ([]models.Category, error) {
	categories, err := s.categories.ListBySpec(ctx, specification.New("").SortBy("name"))
	if err != nil {
		return nil, apperrors.PersistenceError("Failed to list categories").WithError(err)
	}

	return categories, nil
}
