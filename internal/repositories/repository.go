package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Next-Gene/primecare/internal/specification"
	"gorm.io/gorm"
)

// ErrNotFound is returned when a read or delete matches no row. Services map
// it to the caller-facing error taxonomy.
var ErrNotFound = gorm.ErrRecordNotFound

// Repository is the per-entity persistence surface. Every durable read and
// write goes through it; spec-based reads delegate query composition to the
// specification package. A repository obtained standalone persists
// immediately; one obtained from a UnitOfWork runs on its transaction and
// only becomes durable at Commit.
type Repository[T any] interface {
	GetByID(ctx context.Context, id int64) (*T, error)
	GetAll(ctx context.Context) ([]T, error)
	GetBySpec(ctx context.Context, spec specification.Specification) (*T, error)
	ListBySpec(ctx context.Context, spec specification.Specification) ([]T, error)
	CountBySpec(ctx context.Context, spec specification.Specification) (int64, error)
	Add(ctx context.Context, entity *T) error
	Update(ctx context.Context, entity *T) error
	Delete(ctx context.Context, id int64) error
}

type gormRepository[T any] struct {
	db *gorm.DB

	// affected accumulates mutated-row counts for a surrounding unit of
	// work; nil outside one.
	affected *int64
}

func NewRepository[T any](db *gorm.DB) Repository[T] {
	return &gormRepository[T]{db: db}
}

func (r *gormRepository[T]) GetByID(ctx context.Context, id int64) (*T, error) {
	dbCtx, cancel := WithDBTimeout(ctx)
	defer cancel()

	var entity T

	if err := r.db.WithContext(dbCtx).First(&entity, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("failed to get %T by id %d: %w", entity, id, err)
	}

	return &entity, nil
}

func (r *gormRepository[T]) GetAll(ctx context.Context) ([]T, error) {
	dbCtx, cancel := WithDBTimeout(ctx)
	defer cancel()

	var entities []T

	if err := r.db.WithContext(dbCtx).Find(&entities).Error; err != nil {
		return nil, fmt.Errorf("failed to list %T: %w", entities, err)
	}

	return entities, nil
}

func (r *gormRepository[T]) GetBySpec(ctx context.Context, spec specification.Specification) (*T, error) {
	dbCtx, cancel := WithDBTimeout(ctx)
	defer cancel()

	var entity T

	query := specification.Apply(r.db.WithContext(dbCtx), spec)

	if err := query.First(&entity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("failed to get %T by specification: %w", entity, err)
	}

	return &entity, nil
}

func (r *gormRepository[T]) ListBySpec(ctx context.Context, spec specification.Specification) ([]T, error) {
	dbCtx, cancel := WithDBTimeout(ctx)
	defer cancel()

	var entities []T

	query := specification.Apply(r.db.WithContext(dbCtx), spec)

	if err := query.Find(&entities).Error; err != nil {
		return nil, fmt.Errorf("failed to list %T by specification: %w", entities, err)
	}

	return entities, nil
}

// CountBySpec counts rows matching the criteria only; sorting, paging and
// includes are deliberately ignored so the total is stable across pages.
func (r *gormRepository[T]) CountBySpec(ctx context.Context, spec specification.Specification) (int64, error) {
	dbCtx, cancel := WithDBTimeout(ctx)
	defer cancel()

	var (
		entity T
		count  int64
	)

	query := specification.Apply(r.db.WithContext(dbCtx).Model(&entity), spec.CriteriaOnly())

	if err := query.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count %T by specification: %w", entity, err)
	}

	return count, nil
}

func (r *gormRepository[T]) Add(ctx context.Context, entity *T) error {
	dbCtx, cancel := WithDBTimeout(ctx)
	defer cancel()

	result := r.db.WithContext(dbCtx).Create(entity)
	if result.Error != nil {
		return fmt.Errorf("failed to create %T: %w", *entity, result.Error)
	}

	r.track(result.RowsAffected)

	return nil
}

func (r *gormRepository[T]) Update(ctx context.Context, entity *T) error {
	dbCtx, cancel := WithDBTimeout(ctx)
	defer cancel()

	result := r.db.WithContext(dbCtx).Save(entity)
	if result.Error != nil {
		return fmt.Errorf("failed to update %T: %w", *entity, result.Error)
	}

	r.track(result.RowsAffected)

	return nil
}

func (r *gormRepository[T]) Delete(ctx context.Context, id int64) error {
	dbCtx, cancel := WithDBTimeout(ctx)
	defer cancel()

	var entity T

	result := r.db.WithContext(dbCtx).Delete(&entity, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete %T with id %d: %w", entity, id, result.Error)
	}

	if result.RowsAffected == 0 {
		return ErrNotFound
	}

	r.track(result.RowsAffected)

	return nil
}

func (r *gormRepository[T]) track(rows int64) {
	if r.affected != nil {
		*r.affected += rows
	}
}
