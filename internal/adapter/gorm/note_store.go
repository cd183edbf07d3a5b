package gorm

import (
	"context"

	"github.com/de-scientist/notely-new/internal/core/model"
	"github.com/de-scientist/notely-new/internal/core/port"
	"github.com/ncruces/go-sqlite3"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// CreateNote implements [port.NoteStore].
func (s *Store) CreateNote(ctx context.Context, fields port.NoteFields) (model.PersistedNote, error) {
	note := &Note{
		ID: string(model.NewNoteID()),
	}

	err := s.withRetry(ctx, func(ctx context.Context, db *gorm.DB) error {
		if fields.Title != nil {
			note.Title = *fields.Title
		}
		if fields.Content != nil {
			note.Content = *fields.Content
		}
		if fields.Pinned != nil {
			note.Pinned = *fields.Pinned
		}

		categoryID, err := resolveCategory(db, fields.Category)
		if err != nil {
			return errors.WithStack(err)
		}

		note.CategoryID = categoryID

		if err := db.Create(note).Error; err != nil {
			return errors.WithStack(err)
		}

		if err := db.Preload("Category").First(note, "id = ?", note.ID).Error; err != nil {
			return errors.WithStack(err)
		}

		return nil
	}, sqlite3.LOCKED, sqlite3.BUSY)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return &wrappedNote{note}, nil
}

// UpdateNote implements [port.NoteStore].
func (s *Store) UpdateNote(ctx context.Context, id model.NoteID, fields port.NoteFields) (model.PersistedNote, error) {
	var note Note

	err := s.withRetry(ctx, func(ctx context.Context, db *gorm.DB) error {
		if err := db.First(&note, "id = ?", string(id)).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.WithStack(port.ErrNotFound)
			}

			return errors.WithStack(err)
		}

		updates := map[string]any{}

		if fields.Title != nil {
			updates["title"] = *fields.Title
		}
		if fields.Content != nil {
			updates["content"] = *fields.Content
		}
		if fields.Pinned != nil {
			updates["pinned"] = *fields.Pinned
		}
		if fields.Category != nil {
			categoryID, err := resolveCategory(db, fields.Category)
			if err != nil {
				return errors.WithStack(err)
			}

			updates["category_id"] = categoryID
		}

		if len(updates) > 0 {
			if err := db.Model(&note).Updates(updates).Error; err != nil {
				return errors.WithStack(err)
			}
		}

		if err := db.Preload("Category").First(&note, "id = ?", note.ID).Error; err != nil {
			return errors.WithStack(err)
		}

		return nil
	}, sqlite3.LOCKED, sqlite3.BUSY)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return &wrappedNote{&note}, nil
}

// UpdateNoteShareState implements [port.NoteStore].
func (s *Store) UpdateNoteShareState(ctx context.Context, id model.NoteID, state port.ShareState) (model.PersistedNote, error) {
	var note Note

	err := s.withRetry(ctx, func(ctx context.Context, db *gorm.DB) error {
		if err := db.First(&note, "id = ?", string(id)).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.WithStack(port.ErrNotFound)
			}

			return errors.WithStack(err)
		}

		if err := db.Model(&note).Updates(map[string]any{
			"public":      state.Public,
			"share_token": state.ShareToken,
		}).Error; err != nil {
			return errors.WithStack(err)
		}

		if err := db.Preload("Category").First(&note, "id = ?", note.ID).Error; err != nil {
			return errors.WithStack(err)
		}

		return nil
	}, sqlite3.LOCKED, sqlite3.BUSY)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return &wrappedNote{&note}, nil
}

// GetNoteByID implements [port.NoteStore].
func (s *Store) GetNoteByID(ctx context.Context, id model.NoteID) (model.PersistedNote, error) {
	var note Note

	err := s.withRetry(ctx, func(ctx context.Context, db *gorm.DB) error {
		if err := db.Preload("Category").First(&note, "id = ?", string(id)).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.WithStack(port.ErrNotFound)
			}

			return errors.WithStack(err)
		}

		return nil
	}, sqlite3.LOCKED, sqlite3.BUSY)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return &wrappedNote{&note}, nil
}

// FindNoteByShareToken implements [port.NoteStore].
func (s *Store) FindNoteByShareToken(ctx context.Context, token string) (model.PersistedNote, error) {
	var note Note

	err := s.withRetry(ctx, func(ctx context.Context, db *gorm.DB) error {
		if err := db.Preload("Category").First(&note, "share_token = ? AND public = ?", token, true).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.WithStack(port.ErrNotFound)
			}

			return errors.WithStack(err)
		}

		return nil
	}, sqlite3.LOCKED, sqlite3.BUSY)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return &wrappedNote{&note}, nil
}

// ShareTokenExists implements [port.ShareTokenChecker]. Trashed notes are
// included in the probe, the unique index spans all rows.
func (s *Store) ShareTokenExists(ctx context.Context, token string) (bool, error) {
	db, err := s.getDatabase(ctx)
	if err != nil {
		return false, errors.WithStack(err)
	}

	var count int64
	if err := db.Unscoped().Model(&Note{}).Where("share_token = ?", token).Count(&count).Error; err != nil {
		return false, errors.WithStack(err)
	}

	return count > 0, nil
}

// QueryNotes implements [port.NoteStore].
func (s *Store) QueryNotes(ctx context.Context, opts port.QueryNotesOptions) ([]model.PersistedNote, int64, error) {
	var (
		notes []*Note
		total int64
	)

	err := s.withRetry(ctx, func(ctx context.Context, db *gorm.DB) error {
		query := db.Model(&Note{})

		if opts.Trashed {
			query = query.Unscoped().Where("deleted_at IS NOT NULL")
		}

		if opts.Category != nil {
			query = query.Where("category_id = ?", string(*opts.Category))
		}

		if err := query.Count(&total).Error; err != nil {
			return errors.WithStack(err)
		}

		if opts.Page != nil {
			limit := 10
			if opts.Limit != nil {
				limit = *opts.Limit
			}
			query = query.Offset(*opts.Page * limit)
		}

		if opts.Limit != nil {
			query = query.Limit(*opts.Limit)
		}

		query = query.Preload("Category").Order("pinned desc, updated_at desc")

		if err := query.Find(&notes).Error; err != nil {
			return errors.WithStack(err)
		}

		return nil
	}, sqlite3.LOCKED, sqlite3.BUSY)
	if err != nil {
		return nil, 0, errors.WithStack(err)
	}

	wrappedNotes := make([]model.PersistedNote, 0, len(notes))
	for _, n := range notes {
		wrappedNotes = append(wrappedNotes, &wrappedNote{n})
	}

	return wrappedNotes, total, nil
}

// TrashNote implements [port.NoteStore]. The public share state is cleared
// in the same transaction as the soft delete so no public link can serve
// trashed content.
func (s *Store) TrashNote(ctx context.Context, id model.NoteID) (model.PersistedNote, error) {
	var note Note

	err := s.withRetry(ctx, func(ctx context.Context, db *gorm.DB) error {
		if err := db.First(&note, "id = ?", string(id)).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.WithStack(port.ErrNotFound)
			}

			return errors.WithStack(err)
		}

		if err := db.Model(&note).Updates(map[string]any{
			"public":      false,
			"share_token": nil,
		}).Error; err != nil {
			return errors.WithStack(err)
		}

		if err := db.Delete(&note).Error; err != nil {
			return errors.WithStack(err)
		}

		if err := db.Unscoped().Preload("Category").First(&note, "id = ?", note.ID).Error; err != nil {
			return errors.WithStack(err)
		}

		return nil
	}, sqlite3.LOCKED, sqlite3.BUSY)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return &wrappedNote{&note}, nil
}

// RestoreNote implements [port.NoteStore].
func (s *Store) RestoreNote(ctx context.Context, id model.NoteID) (model.PersistedNote, error) {
	var note Note

	err := s.withRetry(ctx, func(ctx context.Context, db *gorm.DB) error {
		if err := db.Unscoped().First(&note, "id = ? AND deleted_at IS NOT NULL", string(id)).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.WithStack(port.ErrNotFound)
			}

			return errors.WithStack(err)
		}

		if err := db.Unscoped().Model(&note).Update("deleted_at", nil).Error; err != nil {
			return errors.WithStack(err)
		}

		if err := db.Preload("Category").First(&note, "id = ?", note.ID).Error; err != nil {
			return errors.WithStack(err)
		}

		return nil
	}, sqlite3.LOCKED, sqlite3.BUSY)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return &wrappedNote{&note}, nil
}

// PurgeNote implements [port.NoteStore].
func (s *Store) PurgeNote(ctx context.Context, id model.NoteID) error {
	err := s.withRetry(ctx, func(ctx context.Context, db *gorm.DB) error {
		res := db.Unscoped().Delete(&Note{}, "id = ?", string(id))
		if res.Error != nil {
			return errors.WithStack(res.Error)
		}

		if res.RowsAffected == 0 {
			return errors.WithStack(port.ErrNotFound)
		}

		return nil
	}, sqlite3.LOCKED, sqlite3.BUSY)
	if err != nil {
		return errors.WithStack(err)
	}

	return nil
}

// CountNotes implements [port.NoteStore].
func (s *Store) CountNotes(ctx context.Context) (int64, error) {
	db, err := s.getDatabase(ctx)
	if err != nil {
		return 0, errors.WithStack(err)
	}

	var total int64

	if err := db.Model(&Note{}).Count(&total).Error; err != nil {
		return 0, errors.WithStack(err)
	}

	return total, nil
}

func resolveCategory(db *gorm.DB, id *model.CategoryID) (*string, error) {
	if id == nil || *id == "" {
		return nil, nil
	}

	var category Category
	if err := db.First(&category, "id = ?", string(*id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.WithStack(port.ErrNotFound)
		}

		return nil, errors.WithStack(err)
	}

	return &category.ID, nil
}

var _ port.NoteStore = &Store{}
