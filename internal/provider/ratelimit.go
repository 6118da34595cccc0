package provider

import (
	"context"

	"golang.org/x/time/rate"
)

// rateLimitedModel throttles Complete calls on the wrapped model.
type rateLimitedModel struct {
	inner   Model
	limiter *rate.Limiter
}

// WrapWithRateLimit returns a model whose Complete calls are limited to rps
// requests per second with the given burst. A non-positive rps returns the
// model unchanged.
func WrapWithRateLimit(inner Model, rps float64, burst int) Model {
	if rps <= 0 || inner == nil {
		return inner
	}
	if burst < 1 {
		burst = 1
	}
	return &rateLimitedModel{
		inner:   inner,
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
	}
}

func (m *rateLimitedModel) Provider() string { return m.inner.Provider() }
func (m *rateLimitedModel) Name() string     { return m.inner.Name() }

func (m *rateLimitedModel) Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	if err := m.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return m.inner.Complete(ctx, req)
}
