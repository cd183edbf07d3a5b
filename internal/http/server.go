package http

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/cors"
	sloghttp "github.com/samber/slog-http"
)

type Server struct {
	opts *Options
}

func NewServer(funcs ...OptionFunc) *Server {
	return &Server{
		opts: NewOptions(funcs...),
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	for prefix, handler := range s.opts.Mounts {
		if prefix == "/" {
			mux.Handle(prefix, handler)
			continue
		}

		mux.Handle(prefix, http.StripPrefix(strings.TrimSuffix(prefix, "/"), handler))
	}

	var handler http.Handler = mux

	handler = s.basicAuth(handler)
	handler = cors.AllowAll().Handler(handler)
	handler = sloghttp.New(slog.Default())(handler)
	handler = sloghttp.Recovery(handler)

	return handler
}

// Run serves until the context is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:    s.opts.Address,
		Handler: s.Handler(),
	}

	errs := make(chan error, 1)

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errs <- errors.WithStack(err)
			return
		}

		errs <- nil
	}()

	select {
	case err := <-errs:
		return errors.WithStack(err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(<-errs)
}
