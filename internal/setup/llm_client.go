package setup

import (
	"context"
	"time"

	"github.com/bornholm/genai/llm"
	"github.com/de-scientist/notely-new/internal/config"
	"github.com/pkg/errors"
	"golang.org/x/time/rate"

	"github.com/bornholm/genai/llm/provider"
	_ "github.com/bornholm/genai/llm/provider/openai"
)

var getLLMClientFromConfig = createFromConfigOnce(func(ctx context.Context, conf *config.Config) (llm.Client, error) {
	if !conf.LLM.Enabled {
		return nil, nil
	}

	client, err := provider.Create(ctx, provider.WithConfig(&provider.Config{
		Provider:            provider.Name(conf.LLM.Provider.Name),
		BaseURL:             conf.LLM.Provider.BaseURL,
		Key:                 conf.LLM.Provider.Key,
		ChatCompletionModel: conf.LLM.Provider.ChatCompletionModel,
	}))
	if err != nil {
		return nil, errors.WithStack(err)
	}

	if conf.LLM.Provider.MinInterval != 0 {
		return NewRateLimitedClient(client, conf.LLM.Provider.MinInterval), nil
	}

	return client, nil
})

type RateLimitedClient struct {
	limiter *rate.Limiter
	client  llm.Client
}

// ChatCompletion implements llm.Client.
func (r *RateLimitedClient) ChatCompletion(ctx context.Context, funcs ...llm.ChatCompletionOptionFunc) (llm.CompletionResponse, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, errors.WithStack(err)
	}
	return r.client.ChatCompletion(ctx, funcs...)
}

// Embeddings implements llm.Client.
func (r *RateLimitedClient) Embeddings(ctx context.Context, funcs ...llm.EmbeddingsOptionFunc) (llm.EmbeddingsResponse, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, errors.WithStack(err)
	}
	return r.client.Embeddings(ctx, funcs...)
}

func NewRateLimitedClient(client llm.Client, minDelay time.Duration) *RateLimitedClient {
	return &RateLimitedClient{
		limiter: rate.NewLimiter(rate.Every(minDelay), 1),
		client:  client,
	}
}

var _ llm.Client = &RateLimitedClient{}
