// Package composer turns the generation form into one prompt and forwards
// it to a hosted language model.
package composer

import (
	"context"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	ctypes "trendmindAPI/internal/types/composer"
)

// Fixed sampling parameters for every generation.
const (
	Temperature float32 = 0.6
	MaxTokens           = 500
	TopP        float32 = 1
)

type CompletionRequest struct {
	Model       string
	Prompt      string
	Temperature float32
	MaxTokens   int
	TopP        float32
}

// Generator is a hosted text-generation backend.
type Generator interface {
	Name() string
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

var generationsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "composer_generations_total",
		Help: "Post generations by provider and outcome",
	},
	[]string{"provider", "outcome"},
)

// Collectors returns the composer metrics for registration.
func Collectors() []prometheus.Collector {
	return []prometheus.Collector{generationsTotal}
}

type Composer struct {
	gen    Generator
	model  string
	logger *zap.Logger
}

func New(gen Generator, model string, logger *zap.Logger) *Composer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Composer{gen: gen, model: model, logger: logger.Named("composer")}
}

// Generate makes exactly one call to the backend. Failures, including a
// panicking backend, are reported in the result and never escape.
func (c *Composer) Generate(ctx context.Context, req ctypes.GenerateRequest) (result ctypes.GenerateResult) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("generator panicked", zap.String("provider", c.gen.Name()), zap.Any("panic", r))
			generationsTotal.WithLabelValues(c.gen.Name(), "error").Inc()
			result = ctypes.GenerateResult{Success: false, Error: ctypes.ErrConnect}
		}
	}()

	text, err := c.gen.Complete(ctx, CompletionRequest{
		Model:       c.model,
		Prompt:      BuildPrompt(req),
		Temperature: Temperature,
		MaxTokens:   MaxTokens,
		TopP:        TopP,
	})
	if err != nil {
		c.logger.Error("generation failed",
			zap.String("provider", c.gen.Name()),
			zap.String("model", c.model),
			zap.Error(err),
		)
		generationsTotal.WithLabelValues(c.gen.Name(), "error").Inc()
		return ctypes.GenerateResult{Success: false, Error: ctypes.ErrConnect}
	}

	content := strings.TrimSpace(text)
	if content == "" {
		c.logger.Warn("empty completion", zap.String("provider", c.gen.Name()))
		generationsTotal.WithLabelValues(c.gen.Name(), "empty").Inc()
		return ctypes.GenerateResult{Success: true, Content: ctypes.FallbackContent}
	}

	generationsTotal.WithLabelValues(c.gen.Name(), "ok").Inc()
	return ctypes.GenerateResult{Success: true, Content: content}
}
