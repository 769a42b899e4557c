package llm

import (
	"context"
)

// Option allows optional parameters like Temperature or MaxTokens.
type Option func(*Options)

type Options struct {
	Temperature float64
	MaxTokens   int
	Model       string // Override default model
}

func WithTemperature(temp float64) Option {
	return func(o *Options) {
		o.Temperature = temp
	}
}

func WithMaxTokens(n int) Option {
	return func(o *Options) {
		o.MaxTokens = n
	}
}

func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

// LLMProvider defines the contract for any LLM backend. The core never
// retries and accepts whatever text comes back, including garbage; the
// calling service decides how to degrade.
type LLMProvider interface {
	Generate(ctx context.Context, prompt string, options ...Option) (string, error)
}
