package gorm

import (
	"context"

	"github.com/de-scientist/notely-new/internal/core/model"
	"github.com/de-scientist/notely-new/internal/core/port"
	"github.com/ncruces/go-sqlite3"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// CreateCategory implements [port.NoteStore]. Creation is idempotent on the
// label, an existing category with the same label is returned as is.
func (s *Store) CreateCategory(ctx context.Context, label string) (model.PersistedCategory, error) {
	var category Category

	err := s.withRetry(ctx, func(ctx context.Context, db *gorm.DB) error {
		if err := db.Where("label = ?", label).Attrs(Category{
			ID:    string(model.NewCategoryID()),
			Label: label,
		}).FirstOrCreate(&category).Error; err != nil {
			return errors.WithStack(err)
		}

		return nil
	}, sqlite3.LOCKED, sqlite3.BUSY)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return &wrappedCategory{&category}, nil
}

// QueryCategories implements [port.NoteStore].
func (s *Store) QueryCategories(ctx context.Context) ([]model.PersistedCategory, error) {
	db, err := s.getDatabase(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	var categories []*Category

	if err := db.Order("label asc").Find(&categories).Error; err != nil {
		return nil, errors.WithStack(err)
	}

	wrappedCategories := make([]model.PersistedCategory, 0, len(categories))
	for _, c := range categories {
		wrappedCategories = append(wrappedCategories, &wrappedCategory{c})
	}

	return wrappedCategories, nil
}

// DeleteCategory implements [port.NoteStore]. Notes of the deleted category
// are detached, not deleted.
func (s *Store) DeleteCategory(ctx context.Context, id model.CategoryID) error {
	err := s.withRetry(ctx, func(ctx context.Context, db *gorm.DB) error {
		var category Category
		if err := db.First(&category, "id = ?", string(id)).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.WithStack(port.ErrNotFound)
			}

			return errors.WithStack(err)
		}

		if err := db.Unscoped().Model(&Note{}).Where("category_id = ?", category.ID).Update("category_id", nil).Error; err != nil {
			return errors.WithStack(err)
		}

		if err := db.Delete(&category).Error; err != nil {
			return errors.WithStack(err)
		}

		return nil
	}, sqlite3.LOCKED, sqlite3.BUSY)
	if err != nil {
		return errors.WithStack(err)
	}

	return nil
}
