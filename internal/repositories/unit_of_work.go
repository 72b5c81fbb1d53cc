package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Next-Gene/primecare/internal/models"
	"gorm.io/gorm"
)

// UnitOfWork groups repository operations into one atomic commit. Repeated
// accessor calls within the same unit of work return the same repository
// instance; all of them run on a single database transaction.
type UnitOfWork interface {
	Products() Repository[models.Product]
	DeliveryMethods() Repository[models.DeliveryMethod]
	Orders() Repository[models.Order]

	// Commit flushes every pending change atomically and returns the number
	// of affected entities. Callers must treat an error or a zero count as
	// "nothing was persisted".
	Commit(ctx context.Context) (int64, error)
	Rollback(ctx context.Context) error
}

type UnitOfWorkFactory interface {
	Begin(ctx context.Context) (UnitOfWork, error)
}

type gormUnitOfWork struct {
	tx       *gorm.DB
	repos    map[string]any
	affected int64
	finished bool
}

type gormUnitOfWorkFactory struct {
	db *gorm.DB
}

func NewUnitOfWorkFactory(db *gorm.DB) UnitOfWorkFactory {
	return &gormUnitOfWorkFactory{db: db}
}

func (f *gormUnitOfWorkFactory) Begin(ctx context.Context) (UnitOfWork, error) {
	tx := f.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}

	return &gormUnitOfWork{tx: tx, repos: make(map[string]any)}, nil
}

// repositoryFor memoizes one repository per entity type name. The type key is
// resolved at compile time through the generic instantiation; no runtime
// reflection over entity types is involved.
func repositoryFor[T any](u *gormUnitOfWork) Repository[T] {
	key := fmt.Sprintf("%T", *new(T))

	if cached, ok := u.repos[key]; ok {
		return cached.(Repository[T])
	}

	repo := &gormRepository[T]{db: u.tx, affected: &u.affected}
	u.repos[key] = repo

	return repo
}

func (u *gormUnitOfWork) Products() Repository[models.Product] {
	return repositoryFor[models.Product](u)
}

func (u *gormUnitOfWork) DeliveryMethods() Repository[models.DeliveryMethod] {
	return repositoryFor[models.DeliveryMethod](u)
}

func (u *gormUnitOfWork) Orders() Repository[models.Order] {
	return repositoryFor[models.Order](u)
}

func (u *gormUnitOfWork) Commit(ctx context.Context) (int64, error) {
	if u.finished {
		return 0, errors.New("unit of work already finished")
	}

	u.finished = true

	if err := u.tx.WithContext(ctx).Commit().Error; err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return u.affected, nil
}

func (u *gormUnitOfWork) Rollback(ctx context.Context) error {
	if u.finished {
		return nil
	}

	u.finished = true

	if err := u.tx.WithContext(ctx).Rollback().Error; err != nil {
		return fmt.Errorf("failed to rollback transaction: %w", err)
	}

	return nil
}
