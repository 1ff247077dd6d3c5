// Package analyzer turns raw diagnostic report text into a structured
// AnalysisReport by prompting Claude and recovering JSON from the response.
package analyzer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/clm6/transformer-diagnostic-ai/internal/config"
	"github.com/clm6/transformer-diagnostic-ai/internal/model"
	"github.com/clm6/transformer-diagnostic-ai/pkg/anthropic"
)

// ErrTimeout marks an analysis that exceeded its deadline. Callers distinguish
// it from other upstream failures because retrying with a longer window is a
// reasonable response, while retrying a malformed-JSON failure is not.
var ErrTimeout = eris.New("analyzer: analysis deadline exceeded")

// ResponseError records a model response the pipeline could not turn into a
// report. The raw response is preserved for debugging; it is never persisted
// as a report.
type ResponseError struct {
	Message     string `json:"error"`
	RawResponse string `json:"raw_response,omitempty"`
}

func (e *ResponseError) Error() string {
	return "analyzer: " + e.Message
}

// Analyzer generates diagnostic reports via a single Claude call per document.
type Analyzer struct {
	client      anthropic.Client
	model       string
	maxTokens   int64
	temperature float64
	timeout     time.Duration

	now func() time.Time
}

// New creates an Analyzer from config.
func New(client anthropic.Client, cfg config.AnthropicConfig) *Analyzer {
	return &Analyzer{
		client:      client,
		model:       cfg.Model,
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
		timeout:     cfg.Timeout(),
		now:         time.Now,
	}
}

// GenerateReport analyzes document text for one piece of equipment. The
// returned report carries whatever the model produced; callers validate and
// backfill before persisting.
func (a *Analyzer) GenerateReport(ctx context.Context, text, equipmentName, documentDate string) (*model.AnalysisReport, error) {
	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	analysisDate := a.now().Format("2006-01-02")
	prompt := BuildPrompt(equipmentName, documentDate, analysisDate, text)

	temp := a.temperature
	resp, err := a.client.CreateMessage(ctx, anthropic.MessageRequest{
		Model:       a.model,
		MaxTokens:   a.maxTokens,
		System:      systemPrompt,
		Temperature: &temp,
		Messages: []anthropic.Message{
			{Role: "user", Content: prompt},
		},
	})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, eris.Wrapf(ErrTimeout, "equipment %s", equipmentName)
		}
		return nil, eris.Wrap(err, "analyzer: create message")
	}

	resp.Usage.LogCost(a.model, "diagnostic_analysis")

	raw := resp.Text()
	cleaned := cleanJSON(raw)
	if cleaned == "" || cleaned[0] != '{' {
		return nil, &ResponseError{
			Message:     "failed to extract JSON from response",
			RawResponse: raw,
		}
	}

	var report model.AnalysisReport
	if err := json.Unmarshal([]byte(cleaned), &report); err != nil {
		zap.L().Warn("analyzer: response JSON did not parse",
			zap.String("equipment", equipmentName),
			zap.Error(err),
		)
		return nil, &ResponseError{
			Message:     fmt.Sprintf("JSON parsing error: %v", err),
			RawResponse: raw,
		}
	}

	return &report, nil
}
