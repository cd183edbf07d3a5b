package setup

import (
	"context"

	"github.com/de-scientist/notely-new/internal/config"
	"github.com/de-scientist/notely-new/internal/core/service"
	"github.com/pkg/errors"
)

var getNoteManagerFromConfig = createFromConfigOnce(func(ctx context.Context, conf *config.Config) (*service.NoteManager, error) {
	store, err := getNoteStoreFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	index, err := getBleveIndexFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	llmClient, err := getLLMClientFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return service.NewNoteManager(store, index, llmClient), nil
})
