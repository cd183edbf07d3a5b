package service

import (
	"context"

	"github.com/de-scientist/notely-new/internal/core/port"
	"github.com/de-scientist/notely-new/internal/crypto"
	"github.com/de-scientist/notely-new/internal/metrics"
	"github.com/pkg/errors"
)

const (
	// shareTokenBytes worth of entropy, hex-encoded to a 16 character
	// token. Collisions are negligible at this size, the probe loop
	// exists as a safety net only.
	shareTokenBytes = 8

	maxShareTokenAttempts = 5
)

type ShareTokenAllocatorOptions struct {
	TokenBytes  int
	MaxAttempts int
}

type ShareTokenAllocatorOptionFunc func(opts *ShareTokenAllocatorOptions)

func NewShareTokenAllocatorOptions(funcs ...ShareTokenAllocatorOptionFunc) *ShareTokenAllocatorOptions {
	opts := &ShareTokenAllocatorOptions{
		TokenBytes:  shareTokenBytes,
		MaxAttempts: maxShareTokenAttempts,
	}
	for _, fn := range funcs {
		fn(opts)
	}
	return opts
}

func WithShareTokenMaxAttempts(maxAttempts int) ShareTokenAllocatorOptionFunc {
	return func(opts *ShareTokenAllocatorOptions) {
		opts.MaxAttempts = maxAttempts
	}
}

func WithShareTokenBytes(tokenBytes int) ShareTokenAllocatorOptionFunc {
	return func(opts *ShareTokenAllocatorOptions) {
		opts.TokenBytes = tokenBytes
	}
}

// ShareTokenAllocator produces short, hard to guess public share tokens,
// unique among all tokens stored at the moment of allocation.
//
// Each call draws a fresh random candidate and probes the checker for an
// existing binding, retrying on conflict up to the attempt budget. The
// allocator never writes: binding the returned token to a note is the
// caller's update, and the store's unique index on the token column remains
// the authoritative backstop against two concurrent allocations observing
// the same free token.
type ShareTokenAllocator struct {
	checker     port.ShareTokenChecker
	tokenBytes  int
	maxAttempts int
}

// Allocate returns a token not bound to any note at probe time, or
// port.ErrShareTokenExhausted after the attempt budget is spent. Exhaustion
// indicates token-space saturation or a broken random source and is fatal
// to the enclosing request.
func (a *ShareTokenAllocator) Allocate(ctx context.Context) (string, error) {
	for range a.maxAttempts {
		token, err := crypto.RandomHex(a.tokenBytes)
		if err != nil {
			return "", errors.WithStack(err)
		}

		exists, err := a.checker.ShareTokenExists(ctx, token)
		if err != nil {
			return "", errors.WithStack(err)
		}

		if !exists {
			return token, nil
		}

		metrics.ShareTokenCollisions.Add(1)
	}

	metrics.ShareTokenExhaustions.Add(1)

	return "", errors.WithStack(port.ErrShareTokenExhausted)
}

func NewShareTokenAllocator(checker port.ShareTokenChecker, funcs ...ShareTokenAllocatorOptionFunc) *ShareTokenAllocator {
	opts := NewShareTokenAllocatorOptions(funcs...)
	return &ShareTokenAllocator{
		checker:     checker,
		tokenBytes:  opts.TokenBytes,
		maxAttempts: opts.MaxAttempts,
	}
}
