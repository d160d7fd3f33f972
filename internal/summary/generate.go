package summary

import (
	"context"
	"strings"
	"time"

	"github.com/jonathan/resume-builder/internal/llm"
	"github.com/jonathan/resume-builder/internal/storage"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/sirupsen/logrus"
)

// Sampling settings for summary requests
const (
	Temperature = 0.4
	MaxTokens   = 240
)

// Generator produces professional summaries with an LLM client
type Generator struct {
	client  llm.Client
	timeout time.Duration
	logger  logrus.FieldLogger
}

// NewGenerator creates a Generator. A zero timeout uses storage.AITimeout.
func NewGenerator(client llm.Client, timeout time.Duration, logger logrus.FieldLogger) *Generator {
	if timeout <= 0 {
		timeout = storage.AITimeout
	}
	return &Generator{client: client, timeout: timeout, logger: logger}
}

// Generate validates cv and asks the model for a summary. Validation failures
// return before any request is made. When the budget expires the result is a
// *storage.TimeoutError and the in-flight request is left to finish on its own.
func (g *Generator) Generate(ctx context.Context, cv types.CvRecord) (string, error) {
	if err := Validate(cv); err != nil {
		return "", err
	}

	system, err := SystemPrompt()
	if err != nil {
		return "", err
	}
	prompt, err := BuildPrompt(cv)
	if err != nil {
		return "", err
	}

	start := time.Now()
	text, err := storage.WithTimeout(ctx, g.timeout, storage.AITimeoutMessage, func(ctx context.Context) (string, error) {
		return g.client.GenerateText(ctx, llm.Request{
			System:      system,
			Prompt:      prompt,
			Temperature: Temperature,
			MaxTokens:   MaxTokens,
			Tier:        llm.TierLite,
		})
	})
	if err != nil {
		g.logger.WithFields(logrus.Fields{
			"model":    g.client.GetModel(llm.TierLite),
			"duration": time.Since(start),
			"error":    err.Error(),
		}).Warn("Summary generation failed")
		return "", err
	}

	summary, err := Clean(text)
	if err != nil {
		return "", err
	}

	g.logger.WithFields(logrus.Fields{
		"model":    g.client.GetModel(llm.TierLite),
		"duration": time.Since(start),
		"words":    len(strings.Fields(summary)),
	}).Info("Summary generated")

	return summary, nil
}

// Apply returns a copy of cv with its professional summary set
func Apply(cv types.CvRecord, summary string) types.CvRecord {
	out := cv.Clone()
	out.ProfessionalSummary = types.StringPtr(summary)
	return out
}
