// Package provider generates proposed category records. External providers
// are tried in priority order behind one interface; a deterministic local
// generator terminates the chain so generation as a whole can never fail.
package provider

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"wordbank/internal/model"
)

const defaultAttemptTimeout = 30 * time.Second

// Provider is one external generation capability.
type Provider interface {
	Name() string
	Generate(ctx context.Context, n int) ([]model.Draft, error)
}

// Chain tries providers in order and degrades to the local fallback
// generator. Generate always returns exactly n drafts and never errors.
type Chain struct {
	providers []Provider
	fallback  *Fallback
	timeout   time.Duration
	log       *zap.Logger
}

// NewChain builds a chain over the given providers. timeout bounds each
// provider attempt so an unresponsive upstream cannot stall generation.
func NewChain(log *zap.Logger, timeout time.Duration, providers ...Provider) *Chain {
	if timeout <= 0 {
		timeout = defaultAttemptTimeout
	}
	return &Chain{
		providers: providers,
		fallback:  NewFallback(),
		timeout:   timeout,
		log:       log,
	}
}

// HasProviders reports whether any external provider is configured.
func (c *Chain) HasProviders() bool {
	return len(c.providers) > 0
}

// Generate returns exactly n drafts. A provider failure of any kind is
// logged and the next provider is tried; a short but non-empty provider
// batch is topped up from the fallback generator.
func (c *Chain) Generate(ctx context.Context, n int) []model.Draft {
	if n <= 0 {
		return nil
	}
	for _, p := range c.providers {
		drafts, err := c.attempt(ctx, p, n)
		if err != nil {
			c.log.Warn("provider generation failed",
				zap.String("provider", p.Name()),
				zap.Int("requested", n),
				zap.Error(err))
			continue
		}
		if len(drafts) < n {
			drafts = append(drafts, c.fallback.Generate(n-len(drafts))...)
		}
		return drafts
	}
	return c.fallback.Generate(n)
}

func (c *Chain) attempt(ctx context.Context, p Provider, n int) ([]model.Draft, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	drafts, err := p.Generate(ctx, n)
	if err != nil {
		return nil, err
	}
	if len(drafts) == 0 {
		return nil, errors.New("provider returned no usable items")
	}
	if len(drafts) > n {
		drafts = drafts[:n]
	}
	return drafts, nil
}

// prompt is shared by all external providers.
func prompt(n int) string {
	return fmt.Sprintf("Generate %d categories for a word-guessing game. "+
		"Respond with a JSON array only. Each item must be shaped as "+
		`{"categoryName": string, "words": [string, ...]} with 5 to 20 short words per category.`, n)
}
