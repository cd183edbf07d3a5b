package setup

import (
	"context"

	bleveAdapter "github.com/de-scientist/notely-new/internal/adapter/bleve"
	"github.com/de-scientist/notely-new/internal/config"
	"github.com/de-scientist/notely-new/internal/core/port"
	"github.com/pkg/errors"
)

var getBleveIndexFromConfig = createFromConfigOnce(func(ctx context.Context, conf *config.Config) (port.Index, error) {
	index, err := bleveAdapter.Open(conf.Storage.Bleve.DSN)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return index, nil
})
