package setup

import (
	"context"
	"log/slog"
	gohttp "net/http"

	"github.com/de-scientist/notely-new/internal/config"
	"github.com/de-scientist/notely-new/internal/http"
	"github.com/de-scientist/notely-new/internal/http/authz"
	"github.com/de-scientist/notely-new/internal/http/handler/api"
	"github.com/de-scientist/notely-new/internal/http/handler/metrics"
	"github.com/de-scientist/notely-new/internal/http/handler/shared"
	"github.com/de-scientist/notely-new/internal/http/middleware/ratelimit"
	"github.com/pkg/errors"
)

func NewHTTPServerFromConfig(ctx context.Context, conf *config.Config) (*http.Server, error) {
	noteManager, err := getNoteManagerFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.Wrap(err, "could not create note manager from config")
	}

	total, err := noteManager.CountNotes(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "could not count notes")
	}

	slog.InfoContext(ctx, "note store ready", slog.Int64("notes", total))

	assertAdmin := authz.Middleware(authz.Has(authz.RoleAdmin))

	sharedHandler := shared.NewHandler(noteManager)

	var sharedMount gohttp.Handler = sharedHandler
	if conf.HTTP.RateLimit.Enabled {
		sharedMount = ratelimit.Middleware(ratelimit.Options{
			TrustHeaders: conf.HTTP.RateLimit.TrustHeaders,
			Interval:     conf.HTTP.RateLimit.MinInterval,
			MaxBurst:     conf.HTTP.RateLimit.MaxBurst,
			CacheSize:    conf.HTTP.RateLimit.CacheSize,
			CacheTTL:     conf.HTTP.RateLimit.CacheTTL,
		})(sharedHandler)
	}

	options := []http.OptionFunc{
		http.WithAddress(conf.HTTP.Address),
		http.WithBaseURL(conf.HTTP.BaseURL),
		http.WithUsers(getUsersFromConfig(conf)...),
		http.WithMount("/api/v1/", api.NewHandler(noteManager)),
		http.WithMount("/shared/", sharedMount),
		http.WithMount("/metrics/", assertAdmin(metrics.NewHandler())),
	}

	server := http.NewServer(options...)

	return server, nil
}

func getUsersFromConfig(conf *config.Config) []http.User {
	users := make([]http.User, 0, 2)

	if conf.HTTP.Auth.User.Username != "" {
		users = append(users, http.User{
			Username: conf.HTTP.Auth.User.Username,
			Password: conf.HTTP.Auth.User.Password,
			Roles:    []string{authz.RoleUser},
		})
	}

	if conf.HTTP.Auth.Admin.Username != "" {
		users = append(users, http.User{
			Username: conf.HTTP.Auth.Admin.Username,
			Password: conf.HTTP.Auth.Admin.Password,
			Roles:    []string{authz.RoleUser, authz.RoleAdmin},
		})
	}

	return users
}
