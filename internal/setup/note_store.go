package setup

import (
	"context"

	gormAdapter "github.com/de-scientist/notely-new/internal/adapter/gorm"
	"github.com/de-scientist/notely-new/internal/config"
	"github.com/de-scientist/notely-new/internal/core/port"
	"github.com/pkg/errors"
)

var getNoteStoreFromConfig = createFromConfigOnce(func(ctx context.Context, conf *config.Config) (port.NoteStore, error) {
	db, err := getGormDatabaseFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return gormAdapter.NewStore(db), nil
})
