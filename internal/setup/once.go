package setup

import (
	"context"
	"sync"

	"github.com/de-scientist/notely-new/internal/config"
	"github.com/pkg/errors"
)

// createFromConfigOnce memoizes a config-based constructor so shared
// components are built a single time however many consumers ask for them.
func createFromConfigOnce[T any](fn func(ctx context.Context, conf *config.Config) (T, error)) func(ctx context.Context, conf *config.Config) (T, error) {
	var (
		once  sync.Once
		value T
		err   error
	)

	return func(ctx context.Context, conf *config.Config) (T, error) {
		once.Do(func() {
			value, err = fn(ctx, conf)
		})
		if err != nil {
			var empty T
			return empty, errors.WithStack(err)
		}

		return value, nil
	}
}
